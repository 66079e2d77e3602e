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

// ElementKind tags the variant held by an Element.
//
// The set is closed. Every switch over ElementKind in this module lists all
// five constants and treats anything else as invalid, so adding a kind is a
// compile-and-review exercise across scaling, validation and serialization.
type ElementKind int

const (
	// KindDash is a stroke segment. Its length is signed: positive draws,
	// negative leaves a gap, zero renders a point.
	KindDash ElementKind = iota

	// KindPoint is a dot: a zero-length drawn element.
	KindPoint

	// KindGap is pen-up travel of a strictly positive length.
	KindGap

	// KindText embeds a text string drawn along the stroke.
	KindText

	// KindShape embeds a shape glyph drawn along the stroke.
	KindShape
)

// Compile-time check that ElementKind implements model.Model interface.
var _ model.Model = (*ElementKind)(nil)

// String constants for ElementKind values used in serialization and logs.
const (
	DashStr  = "dash"
	PointStr = "point"
	GapStr   = "gap"
	TextStr  = "text"
	ShapeStr = "shape"
)

// String returns the canonical lowercase name of the kind, or "unknown".
func (k ElementKind) String() string {
	switch k {
	case KindDash:
		return DashStr
	case KindPoint:
		return PointStr
	case KindGap:
		return GapStr
	case KindText:
		return TextStr
	case KindShape:
		return ShapeStr
	default:
		return "unknown"
	}
}

// ParseElementKind converts a textual representation into an ElementKind.
//
// Lowercase, CamelCase and uppercase spellings are accepted.
func ParseElementKind(str string) (ElementKind, error) {
	switch str {
	case DashStr, "Dash", "DASH":
		return KindDash, nil
	case PointStr, "Point", "POINT":
		return KindPoint, nil
	case GapStr, "Gap", "GAP":
		return KindGap, nil
	case TextStr, "Text", "TEXT":
		return KindText, nil
	case ShapeStr, "Shape", "SHAPE":
		return KindShape, nil
	default:
		return KindDash, &errors.ParseError{Type: "ElementKind", Value: str}
	}
}

// Valid reports whether the kind is one of the defined constants.
func (k ElementKind) Valid() bool {
	return k >= KindDash && k <= KindShape
}

// Complex reports whether elements of this kind are only legal inside
// Complex patterns.
func (k ElementKind) Complex() bool {
	return k == KindText || k == KindShape
}

// TypeName returns "ElementKind".
func (k ElementKind) TypeName() string {
	return "ElementKind"
}

// Redacted returns the same string as String.
func (k ElementKind) Redacted() string {
	return k.String()
}

// IsZero reports whether the kind is KindDash, the zero value.
func (k ElementKind) IsZero() bool {
	return k == KindDash
}

// Equal reports whether this kind equals other, which may be an ElementKind
// or a *ElementKind.
func (k ElementKind) Equal(other any) bool {
	switch v := other.(type) {
	case ElementKind:
		return k == v
	case *ElementKind:
		if v == nil {
			return false
		}
		return k == *v
	default:
		return false
	}
}

// Validate returns a *errors.MarshalError if the value is not a defined
// constant.
func (k ElementKind) Validate() error {
	if !k.Valid() {
		return &errors.MarshalError{Type: "ElementKind", Value: int(k)}
	}
	return nil
}

// MarshalJSON encodes a valid kind as its canonical string.
func (k ElementKind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "ElementKind", Value: int(k)}
	}
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON accepts the string forms understood by ParseElementKind.
// Unlike Tier, numeric input is rejected: element kinds are never stored as
// numbers.
func (k *ElementKind) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "ElementKind", Data: data, Reason: "empty data"}
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return &errors.UnmarshalError{Type: "ElementKind", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseElementKind(str)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k ElementKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "ElementKind", Value: int(k)}
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ElementKind) UnmarshalText(text []byte) error {
	parsed, err := ParseElementKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML encodes a valid kind as its canonical string.
func (k ElementKind) MarshalYAML() (any, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "ElementKind", Value: int(k)}
	}
	return k.String(), nil
}

// UnmarshalYAML decodes a scalar through ParseElementKind.
func (k *ElementKind) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "ElementKind", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseElementKind(str)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
