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
	"testing"

	"gopkg.in/yaml.v3"
)

func TestTier_String(t *testing.T) {
	tests := []struct {
		name string
		tier Tier
		want string
	}{
		{"Simple", Simple, "simple"},
		{"Complex", Complex, "complex"},
		{"Unknown", Tier(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tier.String(); got != tt.want {
				t.Errorf("Tier.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Tier
		wantErr bool
	}{
		{"simple", "simple", Simple, false},
		{"Simple", "Simple", Simple, false},
		{"SIMPLE", "SIMPLE", Simple, false},
		{"complex", "complex", Complex, false},
		{"COMPLEX", "COMPLEX", Complex, false},
		{"empty", "", Simple, true},
		{"invalid", "fancy", Simple, true},
		{"number", "1", Simple, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseTier() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseTier() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTier_Covers(t *testing.T) {
	tests := []struct {
		name     string
		target   Tier
		required Tier
		want     bool
	}{
		{"simple covers simple", Simple, Simple, true},
		{"complex covers simple", Complex, Simple, true},
		{"complex covers complex", Complex, Complex, true},
		{"simple does not cover complex", Simple, Complex, false},
		{"invalid target", Tier(7), Simple, false},
		{"invalid requirement", Complex, Tier(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.target.Covers(tt.required); got != tt.want {
				t.Errorf("%v.Covers(%v) = %v, want %v", tt.target, tt.required, got, tt.want)
			}
		})
	}
}

func TestTier_JSON(t *testing.T) {
	data, err := json.Marshal(Complex)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != `"complex"` {
		t.Errorf("json.Marshal() = %s, want \"complex\"", data)
	}

	if _, err := json.Marshal(Tier(5)); err == nil {
		t.Error("json.Marshal(Tier(5)) should fail")
	}

	tests := []struct {
		name    string
		input   string
		want    Tier
		wantErr bool
	}{
		{"string", `"simple"`, Simple, false},
		{"numeric", `1`, Complex, false},
		{"invalid numeric", `9`, Simple, true},
		{"invalid string", `"huge"`, Simple, true},
		{"wrong type", `true`, Simple, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Tier
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Errorf("json.Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("json.Unmarshal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTier_YAML(t *testing.T) {
	data, err := yaml.Marshal(Complex)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}

	var got Tier
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if got != Complex {
		t.Errorf("YAML round-trip = %v, want complex", got)
	}

	if err := yaml.Unmarshal([]byte("medium"), &got); err == nil {
		t.Error("yaml.Unmarshal(medium) should fail")
	}
}

func TestElementKind_Parse(t *testing.T) {
	tests := []struct {
		input   string
		want    ElementKind
		wantErr bool
	}{
		{"dash", KindDash, false},
		{"POINT", KindPoint, false},
		{"Gap", KindGap, false},
		{"text", KindText, false},
		{"SHAPE", KindShape, false},
		{"glyph", KindDash, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseElementKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseElementKind() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseElementKind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestElementKind_Complex(t *testing.T) {
	for _, k := range []ElementKind{KindDash, KindPoint, KindGap} {
		if k.Complex() {
			t.Errorf("%v.Complex() = true, want false", k)
		}
	}
	for _, k := range []ElementKind{KindText, KindShape} {
		if !k.Complex() {
			t.Errorf("%v.Complex() = false, want true", k)
		}
	}
}

func TestElementKind_JSON_RejectsNumbers(t *testing.T) {
	var k ElementKind
	if err := json.Unmarshal([]byte(`3`), &k); err == nil {
		t.Error("json.Unmarshal(3) should fail for ElementKind")
	}
	if err := json.Unmarshal([]byte(`"shape"`), &k); err != nil || k != KindShape {
		t.Errorf("json.Unmarshal(\"shape\") = %v, %v", k, err)
	}
}
