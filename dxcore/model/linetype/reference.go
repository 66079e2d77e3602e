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

	"dirpx.dev/dxltype/dxcore/errors"
	"dirpx.dev/dxltype/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Reference is the linetype attribute of a graphical entity: either an
// explicit pattern name or the BYLAYER sentinel.
//
// The zero Reference is ByLayer, which matches the default of a freshly
// created entity.
type Reference struct {
	name Name
}

var _ model.Model = (*Reference)(nil)
var _ model.Comparable[Reference] = Reference{}

// ByLayer returns the reference that inherits the layer's linetype.
func ByLayer() Reference {
	return Reference{}
}

// Explicit returns a reference to the named pattern. An empty name yields
// ByLayer.
func Explicit(name Name) Reference {
	return Reference{name: name}
}

// ParseReference interprets an entity's raw linetype attribute.
//
// Empty input and "BYLAYER" in any case give ByLayer. Anything else must be
// a valid Name and gives an explicit reference. BYBLOCK is rejected: block
// inheritance is not part of the entity to layer chain.
func ParseReference(s string) (Reference, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || Name(trimmed).Equal(ByLayerSentinel) {
		return ByLayer(), nil
	}

	name, err := ParseName(trimmed)
	if err != nil {
		return Reference{}, fmt.Errorf("invalid linetype reference %q: %w", s, err)
	}
	return Explicit(name), nil
}

// IsByLayer reports whether the reference inherits from the layer.
func (r Reference) IsByLayer() bool {
	return r.name.IsZero()
}

// Name returns the explicit pattern name and true, or "" and false for
// ByLayer.
func (r Reference) Name() (Name, bool) {
	return r.name, !r.name.IsZero()
}

// String returns the attribute value as it is stored on an entity: the
// pattern name, or "BYLAYER".
func (r Reference) String() string {
	if r.IsByLayer() {
		return ByLayerSentinel
	}
	return r.name.String()
}

// Redacted returns String.
func (r Reference) Redacted() string { return r.String() }

// TypeName returns "Reference".
func (r Reference) TypeName() string { return "Reference" }

// IsZero reports whether r is ByLayer.
func (r Reference) IsZero() bool { return r.IsByLayer() }

// Equal compares references the way names compare: case-insensitively.
func (r Reference) Equal(other Reference) bool {
	return r.name.Equal(other.name)
}

// Validate checks the explicit name, if any.
func (r Reference) Validate() error {
	if err := r.name.Validate(); err != nil {
		return &errors.ValidationError{Type: r.TypeName(), Field: "Name", Reason: err.Error(), Value: r.name.String()}
	}
	return nil
}

// MarshalJSON encodes the attribute value as a JSON string.
func (r Reference) MarshalJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a JSON string through ParseReference.
func (r *Reference) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Reference", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseReference(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalYAML encodes the attribute value as a YAML string.
func (r Reference) MarshalYAML() (interface{}, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r.String(), nil
}

// UnmarshalYAML decodes a scalar through ParseReference.
func (r *Reference) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Reference", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseReference(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
