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
	"strings"

	"dirpx.dev/dxltype/dxcore/errors"
	"dirpx.dev/dxltype/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Provenance records where a resolved linetype came from.
//
// The zero value, ProvenanceUnknown, is a valid Provenance meaning "not
// resolved". An Effective linetype always carries one of the other three.
type Provenance int

const (
	// ProvenanceUnknown: no resolution has taken place.
	ProvenanceUnknown Provenance = iota

	// FromEntity: the entity named the pattern explicitly.
	FromEntity

	// FromLayer: the entity is BYLAYER and the pattern is its layer's.
	FromLayer

	// DefaultContinuous: the entity is BYLAYER but detached from any layer,
	// so CONTINUOUS was substituted.
	DefaultContinuous
)

var _ model.Model = (*Provenance)(nil)

// Canonical Provenance names.
const (
	ProvenanceUnknownStr = "unknown"
	FromEntityStr        = "entity"
	FromLayerStr         = "layer"
	DefaultContinuousStr = "default"
)

// String returns "unknown", "entity", "layer" or "default". Values outside
// the defined constants also render as "unknown".
func (p Provenance) String() string {
	switch p {
	case FromEntity:
		return FromEntityStr
	case FromLayer:
		return FromLayerStr
	case DefaultContinuous:
		return DefaultContinuousStr
	default:
		return ProvenanceUnknownStr
	}
}

// ParseProvenance maps a canonical name, in any case, back to its constant.
func ParseProvenance(s string) (Provenance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ProvenanceUnknownStr:
		return ProvenanceUnknown, nil
	case FromEntityStr:
		return FromEntity, nil
	case FromLayerStr:
		return FromLayer, nil
	case DefaultContinuousStr:
		return DefaultContinuous, nil
	default:
		return ProvenanceUnknown, &errors.ParseError{Type: "Provenance", Value: s}
	}
}

// Valid reports whether p is a defined constant, ProvenanceUnknown included.
func (p Provenance) Valid() bool {
	return p >= ProvenanceUnknown && p <= DefaultContinuous
}

// TypeName returns "Provenance".
func (p Provenance) TypeName() string { return "Provenance" }

// Redacted returns String.
func (p Provenance) Redacted() string { return p.String() }

// IsZero reports whether p is ProvenanceUnknown.
func (p Provenance) IsZero() bool { return p == ProvenanceUnknown }

// Equal reports whether other is the same Provenance.
func (p Provenance) Equal(other Provenance) bool { return p == other }

// Validate rejects values outside the defined constants.
func (p Provenance) Validate() error {
	if !p.Valid() {
		return &errors.ValidationError{Type: p.TypeName(), Reason: "unknown provenance", Value: int(p)}
	}
	return nil
}

// MarshalJSON encodes the canonical name.
func (p Provenance) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, &errors.MarshalError{Type: "Provenance", Value: int(p)}
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a canonical name through ParseProvenance.
func (p *Provenance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Provenance", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseProvenance(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Provenance) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, &errors.MarshalError{Type: "Provenance", Value: int(p)}
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Provenance) UnmarshalText(text []byte) error {
	parsed, err := ParseProvenance(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalYAML encodes the canonical name.
func (p Provenance) MarshalYAML() (interface{}, error) {
	if !p.Valid() {
		return nil, &errors.MarshalError{Type: "Provenance", Value: int(p)}
	}
	return p.String(), nil
}

// UnmarshalYAML decodes a scalar through ParseProvenance.
func (p *Provenance) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Provenance", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseProvenance(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
