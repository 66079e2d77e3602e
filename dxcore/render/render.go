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

// Package render turns a resolved pattern and an effective scale into the
// concrete dash sequence an external renderer samples along a stroke.
package render

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"dirpx.dev/dxltype/dxcore/errors"
	"dirpx.dev/dxltype/dxcore/model/linetype"
	"dirpx.dev/dxltype/dxcore/scale"
)

// Sequence is a pattern scaled for rendering.
//
// A Sequence is a standalone value: it holds its own copy of the scaled
// elements and no reference to the Pattern or registry it came from, so it
// stays valid after the registry entry is redefined or removed.
type Sequence struct {
	name     linetype.Name
	scale    float64
	elements []linetype.Element
	length   float64
}

// Build scales every element of p by factor.
//
// Lengths, glyph offsets and glyph scales are multiplied by factor; rotation
// angles are not. Zero-length elements stay zero.
//
// Build fails with:
//   - *errors.InvalidScaleError if factor is not finite and > 0, or if the
//     pattern cannot be represented at that scale (a length overflows to
//     infinity, or a gap or glyph scale underflows to zero).
//   - the pattern's validation error if p is not a valid Pattern.
//   - *errors.UnsupportedCapabilityError if supported does not cover the
//     pattern's tier. supported is the capability of the target format;
//     Build has no notion of format versions itself.
func Build(p linetype.Pattern, factor float64, supported linetype.Tier) (Sequence, error) {
	if !(factor > 0) || math.IsInf(factor, 1) {
		return Sequence{}, &errors.InvalidScaleError{Factor: scale.FactorEffective, Value: factor}
	}
	if err := p.Validate(); err != nil {
		return Sequence{}, err
	}
	if !supported.Covers(p.Tier()) {
		return Sequence{}, &errors.UnsupportedCapabilityError{
			Name:      p.Name().String(),
			Required:  p.Tier().String(),
			Supported: supported.String(),
		}
	}

	src := p.Elements()
	out := Sequence{
		name:     p.Name(),
		scale:    factor,
		elements: make([]linetype.Element, len(src)),
	}
	for i, e := range src {
		scaled := e.Scaled(factor)
		if scaled.Validate() != nil {
			return Sequence{}, &errors.InvalidScaleError{Factor: scale.FactorEffective, Value: factor}
		}
		out.elements[i] = scaled
		out.length += scaled.Advance()
	}
	if math.IsInf(out.length, 0) || (out.length == 0 && !p.IsSolid()) {
		return Sequence{}, &errors.InvalidScaleError{Factor: scale.FactorEffective, Value: factor}
	}
	return out, nil
}

// Name returns the name of the source pattern.
func (s Sequence) Name() linetype.Name { return s.name }

// Scale returns the effective scale the sequence was built with.
func (s Sequence) Scale() float64 { return s.scale }

// TotalLength returns the scaled pattern length.
func (s Sequence) TotalLength() float64 { return s.length }

// Len returns the number of elements.
func (s Sequence) Len() int { return len(s.elements) }

// Element returns the i-th scaled element.
func (s Sequence) Element(i int) linetype.Element { return s.elements[i] }

// Elements returns a copy of the scaled elements.
func (s Sequence) Elements() []linetype.Element {
	return append([]linetype.Element(nil), s.elements...)
}

// IsSolid reports whether the sequence is an unbroken stroke.
func (s Sequence) IsSolid() bool {
	return len(s.elements) == 1 && s.elements[0].Kind == linetype.KindDash && s.elements[0].Length == 0
}

// Equal reports whether two sequences have the same name (ignoring case),
// scale and elements.
func (s Sequence) Equal(other Sequence) bool {
	if !s.name.Equal(other.name) || s.scale != other.scale || len(s.elements) != len(other.elements) {
		return false
	}
	for i := range s.elements {
		if !s.elements[i].Equal(other.elements[i]) {
			return false
		}
	}
	return true
}

// Locate maps a distance along the stroke to the element drawn there and
// the offset into that element. The pattern repeats every TotalLength, and
// negative distances count back from the start.
//
// Zero-advance elements (points, glyphs) occupy no distance and are never
// returned. A solid sequence, or a non-finite distance, reports (0, 0).
func (s Sequence) Locate(distance float64) (index int, offset float64) {
	if s.IsSolid() || s.length <= 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return 0, 0
	}

	d := math.Mod(distance, s.length)
	if d < 0 {
		d += s.length
	}

	last := 0
	for i, e := range s.elements {
		adv := e.Advance()
		if adv == 0 {
			continue
		}
		if d < adv {
			return i, d
		}
		d -= adv
		last = i
	}
	// Rounding left d at the very end of the pattern.
	return last, s.elements[last].Advance()
}

// String renders the sequence, e.g. "DASHED x2 [Dash(1) Gap(0.5)]".
func (s Sequence) String() string {
	parts := make([]string, len(s.elements))
	for i, e := range s.elements {
		parts[i] = e.String()
	}
	return s.name.String() + " x" + strconv.FormatFloat(s.scale, 'g', -1, 64) +
		" [" + strings.Join(parts, " ") + "]"
}

type sequenceDoc struct {
	Name     linetype.Name      `json:"name" yaml:"name"`
	Scale    float64            `json:"scale" yaml:"scale"`
	Length   float64            `json:"length" yaml:"length"`
	Elements []linetype.Element `json:"elements" yaml:"elements"`
}

func (s Sequence) doc() sequenceDoc {
	return sequenceDoc{Name: s.name, Scale: s.scale, Length: s.length, Elements: s.Elements()}
}

// MarshalJSON encodes the sequence for renderers that consume JSON.
func (s Sequence) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.doc())
}

// MarshalYAML encodes the sequence as a YAML mapping.
func (s Sequence) MarshalYAML() (interface{}, error) {
	return s.doc(), nil
}
