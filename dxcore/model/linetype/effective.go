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

	"dirpx.dev/dxltype/dxcore/errors"
	"dirpx.dev/dxltype/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Effective is the outcome of resolving an entity's linetype: the pattern to
// render with and where it came from.
//
// Effective values are computed on demand and are not meant to be cached;
// the pattern inside is a snapshot of the registry entry at resolution time.
// The zero Effective has ProvenanceUnknown and does not validate.
type Effective struct {
	Pattern    Pattern
	Provenance Provenance
}

var _ model.Model = (*Effective)(nil)
var _ model.Comparable[Effective] = Effective{}

// String renders the pattern name and provenance, e.g. "DASHED (layer)".
func (e Effective) String() string {
	return fmt.Sprintf("%s (%s)", e.Pattern.Name(), e.Provenance)
}

// Redacted returns String.
func (e Effective) Redacted() string { return e.String() }

// TypeName returns "Effective".
func (e Effective) TypeName() string { return "Effective" }

// IsZero reports whether e is the zero value.
func (e Effective) IsZero() bool {
	return e.Pattern.IsZero() && e.Provenance.IsZero()
}

// Equal reports whether both the patterns and the provenances match.
func (e Effective) Equal(other Effective) bool {
	return e.Provenance == other.Provenance && e.Pattern.Equal(other.Pattern)
}

// Validate requires a resolved provenance and a valid pattern. A
// DefaultContinuous result must carry CONTINUOUS.
func (e Effective) Validate() error {
	if e.Provenance.IsZero() || !e.Provenance.Valid() {
		return &errors.ValidationError{
			Type:   e.TypeName(),
			Field:  "Provenance",
			Reason: "must be entity, layer or default",
			Value:  int(e.Provenance),
		}
	}
	if err := e.Pattern.Validate(); err != nil {
		return fmt.Errorf("invalid %s: %w", e.TypeName(), err)
	}
	if e.Provenance == DefaultContinuous && !e.Pattern.Name().IsContinuous() {
		return &errors.ValidationError{
			Type:   e.TypeName(),
			Field:  "Pattern",
			Reason: "default provenance requires CONTINUOUS",
			Value:  e.Pattern.Name().String(),
		}
	}
	return nil
}

type effectiveDoc struct {
	Provenance Provenance `json:"provenance" yaml:"provenance"`
	Pattern    Pattern    `json:"pattern" yaml:"pattern"`
}

// MarshalJSON validates e and encodes it as {"provenance", "pattern"}.
func (e Effective) MarshalJSON() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(effectiveDoc{Provenance: e.Provenance, Pattern: e.Pattern})
}

// UnmarshalJSON decodes and validates an Effective.
func (e *Effective) UnmarshalJSON(data []byte) error {
	var d effectiveDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return &errors.UnmarshalError{Type: "Effective", Data: data, Reason: err.Error()}
	}
	parsed := Effective{Pattern: d.Pattern, Provenance: d.Provenance}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*e = parsed
	return nil
}

// MarshalYAML validates e and encodes it as a mapping.
func (e Effective) MarshalYAML() (interface{}, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return effectiveDoc{Provenance: e.Provenance, Pattern: e.Pattern}, nil
}

// UnmarshalYAML decodes and validates an Effective.
func (e *Effective) UnmarshalYAML(node *yaml.Node) error {
	var d effectiveDoc
	if err := node.Decode(&d); err != nil {
		return &errors.UnmarshalError{Type: "Effective", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed := Effective{Pattern: d.Pattern, Provenance: d.Provenance}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*e = parsed
	return nil
}
