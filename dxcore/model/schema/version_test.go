/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package schema_test

import (
	"encoding/json"
	"testing"

	"dirpx.dev/dxltype/dxcore/model/schema"
	"gopkg.in/yaml.v3"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    schema.Version
		wantErr bool
	}{
		{name: "plain", input: "1.0.0", want: schema.Version{Major: 1}},
		{name: "v prefix", input: "v1.2.3", want: schema.Version{Major: 1, Minor: 2, Patch: 3}},
		{name: "padded", input: " 2.0.1 ", want: schema.Version{Major: 2, Patch: 1}},
		{name: "prerelease", input: "1.0.0-rc.1", wantErr: true},
		{name: "metadata", input: "1.0.0+build", wantErr: true},
		{name: "short", input: "1.0", wantErr: true},
		{name: "garbage", input: "one", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := schema.ParseVersion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseVersion(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersion_Compatible(t *testing.T) {
	tests := []struct {
		name string
		doc  schema.Version
		want bool
	}{
		{"same", schema.Version{Major: 1}, true},
		{"newer minor", schema.Version{Major: 1, Minor: 4}, true},
		{"patch", schema.Version{Major: 1, Patch: 9}, true},
		{"next major", schema.Version{Major: 2}, false},
		{"zero", schema.Version{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := schema.Supported.Compatible(tt.doc); got != tt.want {
				t.Errorf("Supported.Compatible(%v) = %v, want %v", tt.doc, got, tt.want)
			}
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	a := schema.Version{Major: 1, Minor: 2}
	b := schema.Version{Major: 1, Minor: 10}

	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare ordering wrong for %v and %v", a, b)
	}
	if !a.Equal(&a) || a.Equal(b) || a.Equal("1.2.0") {
		t.Error("Equal() gave unexpected results")
	}
}

func TestVersion_Validate(t *testing.T) {
	if err := (schema.Version{Major: -1}).Validate(); err == nil {
		t.Error("Validate() should reject negative components")
	}
	if _, err := json.Marshal(schema.Version{Minor: -2}); err == nil {
		t.Error("json.Marshal() should reject negative components")
	}
}

func TestVersion_Serialization(t *testing.T) {
	v := schema.Version{Major: 1, Minor: 1}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != `"1.1.0"` {
		t.Errorf("json.Marshal() = %s", data)
	}

	var fromJSON schema.Version
	if err := json.Unmarshal(data, &fromJSON); err != nil || fromJSON != v {
		t.Errorf("json.Unmarshal() = %v, %v", fromJSON, err)
	}

	out, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	var fromYAML schema.Version
	if err := yaml.Unmarshal(out, &fromYAML); err != nil || fromYAML != v {
		t.Errorf("yaml.Unmarshal() = %v, %v", fromYAML, err)
	}

	if err := json.Unmarshal([]byte(`1`), &fromJSON); err == nil {
		t.Error("json.Unmarshal(1) should fail")
	}
}
