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

package linetype

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Name
		wantErr bool
	}{
		{"plain", "DASHED", "DASHED", false},
		{"mixed case kept", "Hidden2", "Hidden2", false},
		{"trimmed", "  CENTER  ", "CENTER", false},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
		{"with space inside", "GAS LINE", "GAS LINE", false},
		{"underscore", "GAS_LINE", "GAS_LINE", false},
		{"unicode", "LIGNE_TIRÉE", "LIGNE_TIRÉE", false},
		{"bylayer", "BYLAYER", "", true},
		{"bylayer lower", "bylayer", "", true},
		{"byblock", "ByBlock", "", true},
		{"comma", "A,B", "", true},
		{"semicolon", "A;B", "", true},
		{"asterisk", "*DASHED", "", true},
		{"slash", "A/B", "", true},
		{"control", "A\tB", "", true},
		{"too long", strings.Repeat("X", NameMaxLen+1), "", true},
		{"max length", strings.Repeat("X", NameMaxLen), Name(strings.Repeat("X", NameMaxLen)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestName_Validate_SurroundingWhitespace(t *testing.T) {
	if err := Name(" DASHED").Validate(); err == nil {
		t.Error("Validate() should reject leading whitespace")
	}
	if err := Name("").Validate(); err != nil {
		t.Errorf("zero Name should be valid, got %v", err)
	}
}

func TestName_Equal(t *testing.T) {
	tests := []struct {
		a, b Name
		want bool
	}{
		{"DASHED", "dashed", true},
		{"Dashed", "DASHED", true},
		{"DASHED", "DASHED2", false},
		{"", "", true},
		{"TIR\u00c9E", "tire\u0301e", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.a)+"="+string(tt.b), func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Name(%q).Equal(%q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestName_IsContinuous(t *testing.T) {
	for _, n := range []Name{"CONTINUOUS", "continuous", "Continuous"} {
		if !n.IsContinuous() {
			t.Errorf("%q.IsContinuous() = false, want true", n)
		}
	}
	if Name("CONTINUOUS2").IsContinuous() {
		t.Error("CONTINUOUS2 should not be continuous")
	}
}

func TestName_JSON(t *testing.T) {
	data, err := json.Marshal(Name("Dashed"))
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != `"Dashed"` {
		t.Errorf("json.Marshal() = %s", data)
	}

	var n Name
	if err := json.Unmarshal([]byte(`"  CENTER "`), &n); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if n != "CENTER" {
		t.Errorf("json.Unmarshal() = %q, want CENTER", n)
	}

	if err := json.Unmarshal([]byte(`"BYLAYER"`), &n); err == nil {
		t.Error("json.Unmarshal(BYLAYER) should fail")
	}
	if _, err := json.Marshal(Name("A|B")); err == nil {
		t.Error("json.Marshal(A|B) should fail")
	}
}

func TestName_YAML(t *testing.T) {
	var n Name
	if err := yaml.Unmarshal([]byte("Hidden2"), &n); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if n != "Hidden2" {
		t.Errorf("yaml.Unmarshal() = %q", n)
	}
	if err := yaml.Unmarshal([]byte(`"A=B"`), &n); err == nil {
		t.Error("yaml.Unmarshal(A=B) should fail")
	}
}
