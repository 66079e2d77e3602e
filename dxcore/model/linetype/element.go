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
	"fmt"
	"math"
	"strconv"
	"strings"

	"dirpx.dev/dxltype/dxcore/errors"
	"dirpx.dev/dxltype/dxcore/model"
	"gopkg.in/yaml.v3"
)

// redactedTextLen is the number of runes of embedded text kept by Redacted.
const redactedTextLen = 12

// Element is one entry of a pattern's element sequence.
//
// Element is a tagged union: Kind selects the variant and decides which of
// the remaining fields are meaningful.
//
//	Kind        Length            Text/Style   Glyph   Rotation/Offsets/Scale
//	KindDash    signed, finite    -            -       -
//	KindPoint   0                 -            -       -
//	KindGap     > 0               -            -       -
//	KindText    finite advance    required     -       yes
//	KindShape   finite advance    -            required yes
//
// Fields marked "-" must hold their zero value; Validate rejects anything
// else. Use the constructors (Dash, Point, Gap, Text, Shape) rather than
// struct literals.
//
// For Text and Shape, Length is the advance the element contributes to the
// pattern (usually 0: the glyph hangs off the preceding dash), XOffset and
// YOffset place the glyph relative to the current position along and across
// the stroke, Scale sizes the glyph, and Rotation is in degrees, relative to
// the stroke direction unless AbsoluteRotation is set.
type Element struct {
	Kind             ElementKind `json:"kind" yaml:"kind"`
	Length           float64     `json:"length" yaml:"length"`
	Text             string      `json:"text,omitempty" yaml:"text,omitempty"`
	Style            string      `json:"style,omitempty" yaml:"style,omitempty"`
	Glyph            string      `json:"glyph,omitempty" yaml:"glyph,omitempty"`
	Rotation         float64     `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	AbsoluteRotation bool        `json:"absolute_rotation,omitempty" yaml:"absolute_rotation,omitempty"`
	XOffset          float64     `json:"x_offset,omitempty" yaml:"x_offset,omitempty"`
	YOffset          float64     `json:"y_offset,omitempty" yaml:"y_offset,omitempty"`
	Scale            float64     `json:"scale,omitempty" yaml:"scale,omitempty"`
}

// Compile-time assertions that Element implements model.Model and
// model.Comparable.
var _ model.Model = (*Element)(nil)
var _ model.Comparable[Element] = Element{}

// Placement positions the glyph of a Text or Shape element.
type Placement struct {
	Rotation         float64
	AbsoluteRotation bool
	XOffset          float64
	YOffset          float64
	Scale            float64
}

// Dash returns a dash element. Positive length draws, negative length leaves
// a gap, zero renders a point.
func Dash(length float64) Element {
	return Element{Kind: KindDash, Length: length}
}

// Point returns a zero-length dot.
func Point() Element {
	return Element{Kind: KindPoint}
}

// Gap returns a pen-up element. length must be positive.
func Gap(length float64) Element {
	return Element{Kind: KindGap, Length: length}
}

// Text returns a text element with the given advance, content and style
// reference. A zero p.Scale is taken as 1.
func Text(length float64, content, style string, p Placement) Element {
	return Element{
		Kind:             KindText,
		Length:           length,
		Text:             content,
		Style:            style,
		Rotation:         p.Rotation,
		AbsoluteRotation: p.AbsoluteRotation,
		XOffset:          p.XOffset,
		YOffset:          p.YOffset,
		Scale:            defaultGlyphScale(p.Scale),
	}
}

// Shape returns a shape element with the given advance and glyph reference.
// A zero p.Scale is taken as 1.
func Shape(length float64, glyph string, p Placement) Element {
	return Element{
		Kind:             KindShape,
		Length:           length,
		Glyph:            glyph,
		Rotation:         p.Rotation,
		AbsoluteRotation: p.AbsoluteRotation,
		XOffset:          p.XOffset,
		YOffset:          p.YOffset,
		Scale:            defaultGlyphScale(p.Scale),
	}
}

func defaultGlyphScale(s float64) float64 {
	if s == 0 {
		return 1
	}
	return s
}

// Placement returns the glyph placement of a Text or Shape element.
func (e Element) Placement() Placement {
	return Placement{
		Rotation:         e.Rotation,
		AbsoluteRotation: e.AbsoluteRotation,
		XOffset:          e.XOffset,
		YOffset:          e.YOffset,
		Scale:            e.Scale,
	}
}

// Advance returns the distance the element occupies along the stroke, the
// absolute value of Length.
func (e Element) Advance() float64 {
	return math.Abs(e.Length)
}

// Draws reports whether the element puts ink on the stroke itself: a
// positive dash, a zero dash or a point. Text and shape glyphs are drawn
// separately and do not count.
func (e Element) Draws() bool {
	switch e.Kind {
	case KindDash:
		return e.Length >= 0
	case KindPoint:
		return true
	case KindGap, KindText, KindShape:
		return false
	default:
		return false
	}
}

// Scaled returns a copy of the element with every length-bearing field
// multiplied by factor.
//
// Length always scales. For Text and Shape the offsets and the glyph scale
// scale too; the rotation angle does not. A zero-length element stays zero.
func (e Element) Scaled(factor float64) Element {
	out := e
	switch e.Kind {
	case KindDash, KindPoint, KindGap:
		out.Length = e.Length * factor
	case KindText, KindShape:
		out.Length = e.Length * factor
		out.XOffset = e.XOffset * factor
		out.YOffset = e.YOffset * factor
		out.Scale = e.Scale * factor
	}
	return out
}

// TypeName returns "Element".
func (e Element) TypeName() string {
	return "Element"
}

// IsZero reports whether every field holds its zero value. Note that the
// zero Element is a valid zero-length dash.
func (e Element) IsZero() bool {
	return e == Element{}
}

// Equal reports whether two elements are identical field by field.
func (e Element) Equal(other Element) bool {
	return e == other
}

// String renders the element in a compact form close to the LIN notation:
//
//	Dash(0.5)  Gap(0.25)  Point
//	Text("GAS",STANDARD,L=0,S=0.1,R=0,X=-0.1,Y=-0.05)
//	Shape(TRACK1,L=0,S=0.25,A=90,X=0,Y=0)
func (e Element) String() string {
	return e.format(e.Text)
}

// Redacted is String with embedded text shortened to a few characters.
func (e Element) Redacted() string {
	text := e.Text
	if r := []rune(text); len(r) > redactedTextLen {
		text = string(r[:redactedTextLen]) + "..."
	}
	return e.format(text)
}

func (e Element) format(text string) string {
	switch e.Kind {
	case KindDash:
		return "Dash(" + formatFloat(e.Length) + ")"
	case KindPoint:
		return "Point"
	case KindGap:
		return "Gap(" + formatFloat(e.Length) + ")"
	case KindText:
		return "Text(" + strconv.Quote(text) + "," + e.Style + "," + e.formatPlacement() + ")"
	case KindShape:
		return "Shape(" + e.Glyph + "," + e.formatPlacement() + ")"
	default:
		return "Element(" + e.Kind.String() + ")"
	}
}

func (e Element) formatPlacement() string {
	rot := "R="
	if e.AbsoluteRotation {
		rot = "A="
	}
	return strings.Join([]string{
		"L=" + formatFloat(e.Length),
		"S=" + formatFloat(e.Scale),
		rot + formatFloat(e.Rotation),
		"X=" + formatFloat(e.XOffset),
		"Y=" + formatFloat(e.YOffset),
	}, ",")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Validate checks the per-kind rules in the Element documentation. Failures
// are reported as *errors.ValidationError naming the offending field.
func (e Element) Validate() error {
	if !e.Kind.Valid() {
		return e.invalid("Kind", "unknown element kind", int(e.Kind))
	}
	if !finite(e.Length) {
		return e.invalid("Length", "must be finite", e.Length)
	}

	switch e.Kind {
	case KindDash, KindPoint, KindGap:
		if e.Kind == KindPoint && e.Length != 0 {
			return e.invalid("Length", "must be 0 for a point", e.Length)
		}
		if e.Kind == KindGap && e.Length <= 0 {
			return e.invalid("Length", "must be > 0 for a gap", e.Length)
		}
		if e.Text != "" || e.Style != "" || e.Glyph != "" {
			return e.invalid("", e.Kind.String()+" element must not carry text or glyph references", nil)
		}
		if e.Rotation != 0 || e.AbsoluteRotation || e.XOffset != 0 || e.YOffset != 0 || e.Scale != 0 {
			return e.invalid("", e.Kind.String()+" element must not carry glyph placement", nil)
		}
	case KindText, KindShape:
		if e.Kind == KindText {
			if e.Text == "" {
				return e.invalid("Text", "must not be empty", nil)
			}
			if e.Glyph != "" {
				return e.invalid("Glyph", "must be empty for a text element", e.Glyph)
			}
		} else {
			if e.Glyph == "" {
				return e.invalid("Glyph", "must not be empty", nil)
			}
			if e.Text != "" || e.Style != "" {
				return e.invalid("Text", "must be empty for a shape element", e.Text)
			}
		}
		if !finite(e.Rotation) {
			return e.invalid("Rotation", "must be finite", e.Rotation)
		}
		if !finite(e.XOffset) {
			return e.invalid("XOffset", "must be finite", e.XOffset)
		}
		if !finite(e.YOffset) {
			return e.invalid("YOffset", "must be finite", e.YOffset)
		}
		if !finite(e.Scale) || e.Scale <= 0 {
			return e.invalid("Scale", "must be finite and > 0", e.Scale)
		}
	}

	return nil
}

func (e Element) invalid(field, reason string, value any) error {
	return &errors.ValidationError{Type: e.TypeName(), Field: field, Reason: reason, Value: value}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// normalize fills in defaults omitted by serialized input.
func (e *Element) normalize() {
	if e.Kind.Complex() {
		e.Scale = defaultGlyphScale(e.Scale)
	}
}

// MarshalJSON validates the element and encodes it as a JSON object.
func (e Element) MarshalJSON() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", e.TypeName(), err)
	}
	type element Element
	return json.Marshal(element(e))
}

// UnmarshalJSON decodes a JSON object, defaults a missing glyph scale to 1
// and validates the result.
func (e *Element) UnmarshalJSON(data []byte) error {
	type element Element
	if err := json.Unmarshal(data, (*element)(e)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON into %s: %w", e.TypeName(), err)
	}
	e.normalize()
	if err := e.Validate(); err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", e.TypeName(), err)
	}
	return nil
}

// MarshalYAML validates the element and encodes it as a YAML mapping.
func (e Element) MarshalYAML() (interface{}, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", e.TypeName(), err)
	}
	type element Element
	return element(e), nil
}

// UnmarshalYAML decodes a YAML mapping, defaults a missing glyph scale to 1
// and validates the result.
func (e *Element) UnmarshalYAML(node *yaml.Node) error {
	type element Element
	if err := node.Decode((*element)(e)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML into %s: %w", e.TypeName(), err)
	}
	e.normalize()
	if err := e.Validate(); err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", e.TypeName(), err)
	}
	return nil
}
