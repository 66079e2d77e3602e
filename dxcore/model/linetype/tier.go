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

	"dirpx.dev/dxltype/dxcore/errors"
	"dirpx.dev/dxltype/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Tier is the capability tier of a pattern definition.
//
// Tiers are ordered. A pattern's tier states the minimum capability a target
// format must offer to carry the pattern; a caller's tier states the maximum
// capability its target format offers. The render builder compares the two
// and refuses to build a pattern whose tier exceeds the caller's.
//
// dxltype never maps tiers to file-format version numbers itself. The
// document writer decides which tier a given output version supports and
// passes it in.
type Tier int

const (
	// Simple patterns contain only dashes, gaps and points. Every format
	// that supports linetypes at all can carry them.
	Simple Tier = iota

	// Complex patterns may additionally embed text and shape glyphs. They
	// require a format with complex linetype support.
	Complex
)

// Compile-time check that Tier implements model.Model interface.
var _ model.Model = (*Tier)(nil)

// String constants for Tier values used in serialization, parsing and
// human-facing output. Changing any of these strings is a breaking change
// for catalog files and configuration.
const (
	SimpleStr  = "simple"
	ComplexStr = "complex"
)

// String returns the canonical lowercase name of the tier, or "unknown" for
// values outside the defined constants.
func (t Tier) String() string {
	switch t {
	case Simple:
		return SimpleStr
	case Complex:
		return ComplexStr
	default:
		return "unknown"
	}
}

// ParseTier converts a textual representation into a Tier value.
//
// Accepted inputs:
//
//	"simple",  "Simple",  "SIMPLE"  -> Simple
//	"complex", "Complex", "COMPLEX" -> Complex
//
// Any other input yields a *errors.ParseError.
func ParseTier(str string) (Tier, error) {
	switch str {
	case SimpleStr, "Simple", "SIMPLE":
		return Simple, nil
	case ComplexStr, "Complex", "COMPLEX":
		return Complex, nil
	default:
		return Simple, &errors.ParseError{Type: "Tier", Value: str}
	}
}

// Valid reports whether the Tier value is one of the defined constants.
func (t Tier) Valid() bool {
	return t == Simple || t == Complex
}

// Covers reports whether a target offering tier t can carry a pattern that
// requires tier required.
func (t Tier) Covers(required Tier) bool {
	return t.Valid() && required.Valid() && t >= required
}

// TypeName returns "Tier".
func (t Tier) TypeName() string {
	return "Tier"
}

// Redacted returns the same string as String; tiers carry no sensitive data.
func (t Tier) Redacted() string {
	return t.String()
}

// IsZero reports whether the Tier has its zero value, Simple.
//
// The zero value is a valid Tier, so IsZero returning true does not indicate
// an error condition.
func (t Tier) IsZero() bool {
	return t == Simple
}

// Equal reports whether this Tier equals other, which may be a Tier or a
// *Tier.
func (t Tier) Equal(other any) bool {
	switch v := other.(type) {
	case Tier:
		return t == v
	case *Tier:
		if v == nil {
			return false
		}
		return t == *v
	default:
		return false
	}
}

// Validate returns a *errors.MarshalError if the value is not a defined
// constant.
func (t Tier) Validate() error {
	if !t.Valid() {
		return &errors.MarshalError{Type: "Tier", Value: int(t)}
	}
	return nil
}

// MarshalJSON encodes a valid Tier as its canonical string.
func (t Tier) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, &errors.MarshalError{Type: "Tier", Value: int(t)}
	}
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON accepts either the string forms understood by ParseTier or
// the numeric constants 0 (Simple) and 1 (Complex).
func (t *Tier) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Tier", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return &errors.UnmarshalError{Type: "Tier", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseTier(str)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &errors.UnmarshalError{Type: "Tier", Data: data, Reason: err.Error()}
	}
	*t = Tier(i)
	if !t.Valid() {
		return &errors.UnmarshalError{Type: "Tier", Data: data, Reason: "invalid numeric value"}
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, &errors.MarshalError{Type: "Tier", Value: int(t)}
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseTier.
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML encodes a valid Tier as its canonical string.
func (t Tier) MarshalYAML() (any, error) {
	if !t.Valid() {
		return nil, &errors.MarshalError{Type: "Tier", Value: int(t)}
	}
	return t.String(), nil
}

// UnmarshalYAML decodes a scalar through ParseTier.
func (t *Tier) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "Tier", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseTier(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
