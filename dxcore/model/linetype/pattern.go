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
	"fmt"
	"strings"

	"dirpx.dev/dxltype/dxcore/errors"
	"dirpx.dev/dxltype/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Pattern is an immutable, validated linetype definition: a name, a
// description, a capability tier and a non-empty ordered element sequence
// whose total length is derived from the elements.
//
// Patterns are constructed with NewPattern (or decoded from JSON/YAML, which
// goes through NewPattern) and never change afterwards. The element slice is
// private and Elements hands out copies, so a Pattern obtained from a
// registry remains a valid snapshot after the registry entry is redefined.
//
// Invariants, checked at construction:
//   - Name is non-zero and valid.
//   - Tier is a defined constant.
//   - The element sequence is non-empty and every element is valid.
//   - Text and Shape elements appear only when Tier is Complex.
//   - TotalLength, the sum of element advances, is finite and > 0, except for the
//     solid form (exactly one zero-length dash), whose total length is 0.
//
// The zero Pattern is not valid; it is only useful as a "no pattern"
// sentinel in failed return paths.
type Pattern struct {
	name        Name
	description string
	tier        Tier
	elements    []Element
	length      float64
}

// Compile-time assertions that Pattern implements model.Model and
// model.Comparable.
var _ model.Model = (*Pattern)(nil)
var _ model.Comparable[Pattern] = Pattern{}

// continuous is the built-in solid pattern. It is built once; Pattern values
// are immutable so sharing it is safe.
var continuous = *model.MustValidate(&Pattern{
	name:        ContinuousName,
	description: "Solid line",
	tier:        Simple,
	elements:    []Element{Dash(0)},
	length:      0,
})

// Continuous returns the built-in CONTINUOUS pattern: a single zero-length
// dash, rendered as an unbroken stroke.
func Continuous() Pattern {
	return continuous
}

// NewPattern validates the inputs and returns an immutable Pattern.
//
// The element slice is copied. The total length is always computed from the
// elements; persisted formats that declare a length treat it as a hint only
// and discard it. Every failure is reported as an
// *errors.InconsistentPatternError.
//
// Example:
//
//	dashed, err := linetype.NewPattern("DASHED", "Dashed __ __ __", linetype.Simple,
//	    []linetype.Element{linetype.Dash(0.5), linetype.Gap(0.25)})
func NewPattern(name Name, description string, tier Tier, elements []Element) (Pattern, error) {
	p := Pattern{
		name:        name,
		description: description,
		tier:        tier,
		elements:    append([]Element(nil), elements...),
	}
	p.length = totalLength(p.elements)

	if err := p.Validate(); err != nil {
		return Pattern{}, err
	}
	return p, nil
}

func totalLength(elements []Element) float64 {
	var total float64
	for _, e := range elements {
		total += e.Advance()
	}
	return total
}

// Name returns the pattern name as registered.
func (p Pattern) Name() Name {
	return p.name
}

// Key returns the case-folded lookup key of the pattern name.
func (p Pattern) Key() string {
	return p.name.Key()
}

// Description returns the human-readable description, for example
// "Dashed __ __ __". It may be empty.
func (p Pattern) Description() string {
	return p.description
}

// Tier returns the capability tier the pattern requires.
func (p Pattern) Tier() Tier {
	return p.tier
}

// TotalLength returns the sum of the absolute element lengths.
func (p Pattern) TotalLength() float64 {
	return p.length
}

// Len returns the number of elements.
func (p Pattern) Len() int {
	return len(p.elements)
}

// Element returns the i-th element. It panics if i is out of range.
func (p Pattern) Element(i int) Element {
	return p.elements[i]
}

// Elements returns a copy of the element sequence.
func (p Pattern) Elements() []Element {
	return append([]Element(nil), p.elements...)
}

// IsSolid reports whether the pattern is the solid form: exactly one
// zero-length dash.
func (p Pattern) IsSolid() bool {
	return len(p.elements) == 1 &&
		p.elements[0].Kind == KindDash &&
		p.elements[0].Length == 0
}

// HasGlyphs reports whether any element is a Text or Shape element.
func (p Pattern) HasGlyphs() bool {
	for _, e := range p.elements {
		if e.Kind.Complex() {
			return true
		}
	}
	return false
}

// TypeName returns "Pattern".
func (p Pattern) TypeName() string {
	return "Pattern"
}

// IsZero reports whether the pattern is the zero value.
func (p Pattern) IsZero() bool {
	return p.name.IsZero() && p.description == "" && p.tier == Simple &&
		len(p.elements) == 0 && p.length == 0
}

// Equal reports whether two patterns have the same name (ignoring case),
// description, tier and element sequence.
func (p Pattern) Equal(other Pattern) bool {
	if !p.name.Equal(other.name) || p.description != other.description ||
		p.tier != other.tier || len(p.elements) != len(other.elements) {
		return false
	}
	for i := range p.elements {
		if !p.elements[i].Equal(other.elements[i]) {
			return false
		}
	}
	return true
}

// String renders the pattern with every element, for example:
//
//	Pattern{Name:DASHED, Tier:simple, Length:0.75, Elements:[Dash(0.5) Gap(0.25)]}
func (p Pattern) String() string {
	return p.format(Element.String)
}

// Redacted renders the pattern like String but with embedded text
// shortened.
func (p Pattern) Redacted() string {
	return p.format(Element.Redacted)
}

func (p Pattern) format(elem func(Element) string) string {
	parts := make([]string, len(p.elements))
	for i, e := range p.elements {
		parts[i] = elem(e)
	}
	return fmt.Sprintf("Pattern{Name:%s, Tier:%s, Length:%s, Elements:[%s]}",
		p.name, p.tier, formatFloat(p.length), strings.Join(parts, " "))
}

// Validate checks the invariants listed on Pattern and reports failures as
// *errors.InconsistentPatternError.
func (p Pattern) Validate() error {
	name := p.name.String()

	if p.name.IsZero() {
		return &errors.InconsistentPatternError{Reason: "name must not be empty"}
	}
	if err := p.name.Validate(); err != nil {
		return &errors.InconsistentPatternError{Name: name, Reason: err.Error()}
	}
	if !p.tier.Valid() {
		return &errors.InconsistentPatternError{Name: name, Reason: fmt.Sprintf("unknown tier %d", int(p.tier))}
	}
	if len(p.elements) == 0 {
		return &errors.InconsistentPatternError{Name: name, Reason: "element sequence must not be empty"}
	}

	for i, e := range p.elements {
		if err := e.Validate(); err != nil {
			return &errors.InconsistentPatternError{Name: name, Reason: elementReason(i, err)}
		}
		if e.Kind.Complex() && p.tier != Complex {
			return &errors.InconsistentPatternError{
				Name:   name,
				Reason: fmt.Sprintf("element %d: %s element requires the complex tier", i, e.Kind),
			}
		}
	}

	if p.length != totalLength(p.elements) {
		return &errors.InconsistentPatternError{Name: name, Reason: "total length does not match elements"}
	}
	if !finite(p.length) {
		return &errors.InconsistentPatternError{Name: name, Reason: "total length must be finite"}
	}
	if p.length <= 0 && !p.IsSolid() {
		return &errors.InconsistentPatternError{Name: name, Reason: "total length must be > 0"}
	}
	if p.name.IsContinuous() && !p.IsSolid() {
		return &errors.InconsistentPatternError{Name: name, Reason: "CONTINUOUS must be solid"}
	}

	return nil
}

func elementReason(i int, err error) string {
	var ve *errors.ValidationError
	if stderrors.As(err, &ve) {
		if ve.Field != "" {
			return fmt.Sprintf("element %d: %s %s", i, ve.Field, ve.Reason)
		}
		return fmt.Sprintf("element %d: %s", i, ve.Reason)
	}
	return fmt.Sprintf("element %d: %v", i, err)
}

// patternDoc is the persisted form of a Pattern.
//
// Tier is optional on input: when omitted it is inferred from the elements.
// Length is written for readers of the file and ignored on input.
type patternDoc struct {
	Name        Name      `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Tier        *Tier     `json:"tier,omitempty" yaml:"tier,omitempty"`
	Length      float64   `json:"length" yaml:"length"`
	Elements    []Element `json:"elements" yaml:"elements"`
}

func (p Pattern) doc() patternDoc {
	tier := p.tier
	return patternDoc{
		Name:        p.name,
		Description: p.description,
		Tier:        &tier,
		Length:      p.length,
		Elements:    p.Elements(),
	}
}

func (d patternDoc) pattern() (Pattern, error) {
	tier := Simple
	if d.Tier != nil {
		tier = *d.Tier
	} else {
		for _, e := range d.Elements {
			if e.Kind.Complex() {
				tier = Complex
				break
			}
		}
	}
	return NewPattern(d.Name, d.Description, tier, d.Elements)
}

// MarshalJSON validates the pattern and encodes it as a JSON object.
func (p Pattern) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", p.TypeName(), err)
	}
	return json.Marshal(p.doc())
}

// UnmarshalJSON decodes a JSON object and rebuilds the pattern through
// NewPattern; a declared length is ignored.
func (p *Pattern) UnmarshalJSON(data []byte) error {
	var d patternDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("cannot unmarshal JSON into %s: %w", p.TypeName(), err)
	}
	parsed, err := d.pattern()
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", p.TypeName(), err)
	}
	*p = parsed
	return nil
}

// MarshalYAML validates the pattern and encodes it as a YAML mapping.
func (p Pattern) MarshalYAML() (interface{}, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", p.TypeName(), err)
	}
	return p.doc(), nil
}

// UnmarshalYAML decodes a YAML mapping and rebuilds the pattern through
// NewPattern; a declared length is ignored.
func (p *Pattern) UnmarshalYAML(node *yaml.Node) error {
	var d patternDoc
	if err := node.Decode(&d); err != nil {
		return fmt.Errorf("cannot unmarshal YAML into %s: %w", p.TypeName(), err)
	}
	parsed, err := d.pattern()
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", p.TypeName(), err)
	}
	*p = parsed
	return nil
}
