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
	stderrors "errors"
	"math"
	"strings"
	"testing"

	"dirpx.dev/dxltype/dxcore/errors"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func gasLine(t *testing.T) Pattern {
	t.Helper()
	p, err := NewPattern("GAS_LINE", "Gas line ----GAS----", Complex, []Element{
		Dash(0.5),
		Gap(0.2),
		Text(0, "GAS", "STANDARD", Placement{XOffset: -0.1, YOffset: -0.05, Scale: 0.1}),
		Gap(0.25),
	})
	if err != nil {
		t.Fatalf("NewPattern(GAS_LINE) error = %v", err)
	}
	return p
}

func TestNewPattern(t *testing.T) {
	tests := []struct {
		name       string
		pname      Name
		tier       Tier
		elements   []Element
		wantLength float64
		wantReason string
	}{
		{
			name:       "dashed",
			pname:      "DASHED",
			tier:       Simple,
			elements:   []Element{Dash(0.5), Gap(0.25)},
			wantLength: 0.75,
		},
		{
			name:       "signed dash gap",
			pname:      "HIDDEN",
			tier:       Simple,
			elements:   []Element{Dash(0.25), Dash(-0.125)},
			wantLength: 0.375,
		},
		{
			name:       "dash dot",
			pname:      "DASHDOT",
			tier:       Simple,
			elements:   []Element{Dash(0.5), Gap(0.25), Point(), Gap(0.25)},
			wantLength: 1,
		},
		{
			name:       "solid",
			pname:      "MYSOLID",
			tier:       Simple,
			elements:   []Element{Dash(0)},
			wantLength: 0,
		},
		{
			name:       "complex tier with only dashes",
			pname:      "FANCY",
			tier:       Complex,
			elements:   []Element{Dash(1)},
			wantLength: 1,
		},
		{
			name:       "empty name",
			pname:      "",
			tier:       Simple,
			elements:   []Element{Dash(1)},
			wantReason: "name must not be empty",
		},
		{
			name:       "reserved name",
			pname:      "BYLAYER",
			tier:       Simple,
			elements:   []Element{Dash(1)},
			wantReason: "reserved",
		},
		{
			name:       "no elements",
			pname:      "EMPTY",
			tier:       Simple,
			wantReason: "element sequence must not be empty",
		},
		{
			name:       "bad tier",
			pname:      "X",
			tier:       Tier(3),
			elements:   []Element{Dash(1)},
			wantReason: "unknown tier",
		},
		{
			name:       "invalid element",
			pname:      "X",
			tier:       Simple,
			elements:   []Element{Dash(1), Gap(0)},
			wantReason: "element 1: Length must be > 0 for a gap",
		},
		{
			name:       "text in simple",
			pname:      "X",
			tier:       Simple,
			elements:   []Element{Dash(1), Text(0, "A", "", Placement{})},
			wantReason: "requires the complex tier",
		},
		{
			name:       "zero total",
			pname:      "DOTS",
			tier:       Simple,
			elements:   []Element{Point(), Point()},
			wantReason: "total length must be > 0",
		},
		{
			name:       "total overflows",
			pname:      "HUGE",
			tier:       Simple,
			elements:   []Element{Dash(math.MaxFloat64), Gap(math.MaxFloat64)},
			wantReason: "total length must be finite",
		},
		{
			name:       "continuous redefined",
			pname:      "continuous",
			tier:       Simple,
			elements:   []Element{Dash(1), Gap(1)},
			wantReason: "CONTINUOUS must be solid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPattern(tt.pname, "", tt.tier, tt.elements)
			if tt.wantReason == "" {
				if err != nil {
					t.Fatalf("NewPattern() error = %v", err)
				}
				if p.TotalLength() != tt.wantLength {
					t.Errorf("TotalLength() = %v, want %v", p.TotalLength(), tt.wantLength)
				}
				return
			}

			var ipe *errors.InconsistentPatternError
			if !stderrors.As(err, &ipe) {
				t.Fatalf("NewPattern() error = %v, want *errors.InconsistentPatternError", err)
			}
			if !strings.Contains(ipe.Reason, tt.wantReason) {
				t.Errorf("Reason = %q, want it to contain %q", ipe.Reason, tt.wantReason)
			}
			if !p.IsZero() {
				t.Errorf("NewPattern() returned non-zero pattern on error: %v", p)
			}
		})
	}
}

func TestNewPattern_CopiesElements(t *testing.T) {
	elements := []Element{Dash(0.5), Gap(0.25)}
	p, err := NewPattern("DASHED", "", Simple, elements)
	if err != nil {
		t.Fatalf("NewPattern() error = %v", err)
	}

	elements[0] = Dash(99)
	if p.Element(0).Length != 0.5 {
		t.Errorf("pattern changed after caller mutated input: %v", p)
	}

	out := p.Elements()
	out[1] = Gap(42)
	if p.Element(1).Length != 0.25 {
		t.Errorf("pattern changed after caller mutated Elements(): %v", p)
	}
}

func TestContinuous(t *testing.T) {
	c := Continuous()
	if !c.IsSolid() {
		t.Error("Continuous().IsSolid() = false")
	}
	if c.TotalLength() != 0 {
		t.Errorf("Continuous().TotalLength() = %v, want 0", c.TotalLength())
	}
	if c.Name() != ContinuousName {
		t.Errorf("Continuous().Name() = %q", c.Name())
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Continuous().Validate() = %v", err)
	}
	if c.Tier() != Simple {
		t.Errorf("Continuous().Tier() = %v", c.Tier())
	}
}

func TestPattern_HasGlyphs(t *testing.T) {
	if !gasLine(t).HasGlyphs() {
		t.Error("GAS_LINE.HasGlyphs() = false")
	}
	if Continuous().HasGlyphs() {
		t.Error("CONTINUOUS.HasGlyphs() = true")
	}
}

func TestPattern_Equal(t *testing.T) {
	a, _ := NewPattern("DASHED", "d", Simple, []Element{Dash(0.5), Gap(0.25)})
	b, _ := NewPattern("dashed", "d", Simple, []Element{Dash(0.5), Gap(0.25)})
	c, _ := NewPattern("DASHED", "d", Simple, []Element{Dash(0.5), Gap(0.3)})
	d, _ := NewPattern("DASHED", "other", Simple, []Element{Dash(0.5), Gap(0.25)})

	if !a.Equal(b) {
		t.Error("patterns differing only in name case should be equal")
	}
	if a.Equal(c) {
		t.Error("patterns with different elements should differ")
	}
	if a.Equal(d) {
		t.Error("patterns with different descriptions should differ")
	}
}

func TestPattern_String(t *testing.T) {
	p, _ := NewPattern("DASHED", "", Simple, []Element{Dash(0.5), Gap(0.25)})
	want := "Pattern{Name:DASHED, Tier:simple, Length:0.75, Elements:[Dash(0.5) Gap(0.25)]}"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPattern_JSON(t *testing.T) {
	p := gasLine(t)

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var got Pattern
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("JSON round-trip mismatch (-want +got):\n%s", diff)
	}
	if got.TotalLength() != p.TotalLength() {
		t.Errorf("TotalLength() = %v, want %v", got.TotalLength(), p.TotalLength())
	}
}

func TestPattern_JSON_DeclaredLengthIgnored(t *testing.T) {
	input := `{"name":"DASHED","length":123,"elements":[{"kind":"dash","length":0.5},{"kind":"gap","length":0.25}]}`

	var p Pattern
	if err := json.Unmarshal([]byte(input), &p); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if p.TotalLength() != 0.75 {
		t.Errorf("TotalLength() = %v, want 0.75", p.TotalLength())
	}
	if p.Tier() != Simple {
		t.Errorf("Tier() = %v, want inferred simple", p.Tier())
	}
}

func TestPattern_JSON_TierInferred(t *testing.T) {
	input := `{"name":"TRACKS","elements":[{"kind":"dash","length":0.5},{"kind":"shape","length":0,"glyph":"TRACK1"}]}`

	var p Pattern
	if err := json.Unmarshal([]byte(input), &p); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if p.Tier() != Complex {
		t.Errorf("Tier() = %v, want complex", p.Tier())
	}
}

func TestPattern_JSON_Invalid(t *testing.T) {
	inputs := []string{
		`{"name":"","elements":[{"kind":"dash","length":1}]}`,
		`{"name":"X","elements":[]}`,
		`{"name":"X","tier":"simple","elements":[{"kind":"text","length":0,"text":"A"}]}`,
		`{"name":"X","elements":[{"kind":"point","length":0}]}`,
		`{"name":"BYBLOCK","elements":[{"kind":"dash","length":1}]}`,
	}
	for _, in := range inputs {
		var p Pattern
		if err := json.Unmarshal([]byte(in), &p); err == nil {
			t.Errorf("json.Unmarshal(%s) should fail", in)
		}
	}

	if _, err := json.Marshal(Pattern{}); err == nil {
		t.Error("json.Marshal(zero Pattern) should fail")
	}
}

func TestPattern_YAML(t *testing.T) {
	input := `
name: HIDDEN
description: Hidden __ __ __
elements:
  - kind: dash
    length: 0.25
  - kind: gap
    length: 0.125
`
	var p Pattern
	if err := yaml.Unmarshal([]byte(input), &p); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	want, _ := NewPattern("HIDDEN", "Hidden __ __ __", Simple, []Element{Dash(0.25), Gap(0.125)})
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("yaml.Unmarshal() mismatch (-want +got):\n%s", diff)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	var again Pattern
	if err := yaml.Unmarshal(data, &again); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if !again.Equal(p) {
		t.Errorf("YAML round-trip = %v, want %v", again, p)
	}
}
