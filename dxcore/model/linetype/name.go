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
	"strings"
	"unicode"

	"dirpx.dev/dxltype/dxcore/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

const (
	// NameMaxLen is the maximum number of runes allowed in a Name.
	//
	// This matches the symbol table name limit of the drawing formats the
	// registry is loaded from.
	NameMaxLen = 255

	// ByLayerSentinel is the reserved entity attribute value meaning
	// "inherit the linetype of my layer".
	ByLayerSentinel = "BYLAYER"

	// ByBlockSentinel is the reserved entity attribute value meaning
	// "inherit the linetype of the enclosing block reference". It is
	// reserved so no pattern can be registered under it.
	ByBlockSentinel = "BYBLOCK"

	// ContinuousName is the name of the built-in solid pattern.
	ContinuousName Name = "CONTINUOUS"

	// forbiddenNameChars are characters symbol table names cannot hold.
	// The comma also separates fields in LIN files.
	forbiddenNameChars = "<>/\\\":;?*|,=`"
)

// Name is the identifier of a pattern definition.
//
// Names preserve the spelling they were given ("Dashed", "HIDDEN2") but
// compare case-insensitively: Key normalises the name to NFC and folds it
// with golang.org/x/text/cases, and Equal compares keys. The registry indexes
// definitions by Key, which is what makes "dashed" and "DASHED" the same
// linetype.
//
// The zero value (empty string) is valid as a Name on its own and means "no
// name"; a Pattern never carries a zero Name.
type Name string

// Compile-time assertion that Name implements model.Model.
var _ model.Model = (*Name)(nil)

// ParseName trims surrounding whitespace and validates the result.
//
// Empty or all-whitespace input yields the zero Name without error.
func ParseName(s string) (Name, error) {
	normalized := strings.TrimSpace(s)
	if normalized == "" {
		return "", nil
	}

	n := Name(normalized)
	if err := n.Validate(); err != nil {
		return "", err
	}
	return n, nil
}

// Key returns the case-folded NFC form of the name used for lookups, so a
// precomposed "É" and "E" followed by a combining acute name the same
// linetype.
//
// A fresh Caser is created per call because cases.Caser values carry state
// and must not be shared between goroutines.
func (n Name) Key() string {
	return cases.Fold().String(norm.NFC.String(string(n)))
}

// String returns the name as stored.
func (n Name) String() string {
	return string(n)
}

// Redacted returns the name as stored; linetype names are not sensitive.
func (n Name) Redacted() string {
	return string(n)
}

// TypeName returns "Name".
func (n Name) TypeName() string {
	return "Name"
}

// IsZero reports whether the name is empty.
func (n Name) IsZero() bool {
	return n == ""
}

// Equal reports whether two names denote the same linetype, ignoring case.
//
// Example:
//
//	linetype.Name("Dashed").Equal("DASHED") // true
func (n Name) Equal(other Name) bool {
	return n.Key() == other.Key()
}

// IsContinuous reports whether the name denotes the built-in solid pattern.
func (n Name) IsContinuous() bool {
	return n.Equal(ContinuousName)
}

// Validate checks that a non-zero name is usable as a symbol table entry.
//
// Validation rules:
//   - The zero value is valid.
//   - No leading or trailing whitespace.
//   - At most NameMaxLen runes.
//   - No control characters and none of <>/\":;?*|,=`.
//   - Not one of the reserved sentinels BYLAYER and BYBLOCK, in any case.
func (n Name) Validate() error {
	if n.IsZero() {
		return nil
	}

	str := string(n)
	if strings.TrimSpace(str) != str {
		return fmt.Errorf("Name %q contains leading or trailing whitespace", str)
	}

	if count := len([]rune(str)); count > NameMaxLen {
		return fmt.Errorf("Name %q is too long: %d runes (maximum %d)", str, count, NameMaxLen)
	}

	for _, r := range str {
		if unicode.IsControl(r) {
			return fmt.Errorf("Name %q contains control character (U+%04X)", str, r)
		}
		if strings.ContainsRune(forbiddenNameChars, r) {
			return fmt.Errorf("Name %q contains forbidden character %q", str, r)
		}
	}

	if n.Equal(ByLayerSentinel) || n.Equal(ByBlockSentinel) {
		return fmt.Errorf("Name %q is reserved", str)
	}

	return nil
}

// MarshalJSON encodes the name as a JSON string after validation.
func (n Name) MarshalJSON() ([]byte, error) {
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", n.TypeName(), err)
	}
	return json.Marshal(string(n))
}

// UnmarshalJSON decodes a JSON string through ParseName.
func (n *Name) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("cannot unmarshal JSON into %s: %w", n.TypeName(), err)
	}

	parsed, err := ParseName(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", n.TypeName(), err)
	}

	*n = parsed
	return nil
}

// MarshalYAML encodes the name as a YAML string after validation.
func (n Name) MarshalYAML() (interface{}, error) {
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", n.TypeName(), err)
	}
	return string(n), nil
}

// UnmarshalYAML decodes a YAML scalar through ParseName.
func (n *Name) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return fmt.Errorf("cannot unmarshal YAML into %s: %w", n.TypeName(), err)
	}

	parsed, err := ParseName(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", n.TypeName(), err)
	}

	*n = parsed
	return nil
}
