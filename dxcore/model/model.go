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

// Package model defines the contracts that dxltype value types implement.
//
// Pattern definitions, pattern elements, linetype names, capability tiers,
// catalog schema versions and engine configuration all cross a persistence
// boundary: they are loaded from catalog files when a document is opened and
// written back when it is saved. The Model interface bundles what such a
// type needs to do that safely: validate itself, serialize to JSON and YAML,
// render itself for logs, name its type and report whether it is empty.
//
// Model types are immutable values unless documented otherwise, so
// concurrent reads are safe. Unmarshal methods mutate their receiver and
// need exclusive access.
//
// The generic helpers in this package (ValidateAll, ToJSON, ToYAML,
// FromJSON, FromYAML, MustValidate, SafeString) are constrained to Model and
// fail at compile time on types that do not implement it.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining the contracts required for dxltype
// value types.
//
// Implementations MUST satisfy all embedded interfaces. Methods defined on
// Model SHOULD NOT mutate the receiver unless explicitly documented.
//
// Example implementation:
//
//	type Swatch struct {
//	    Name string
//	}
//
//	func (s Swatch) Validate() error {
//	    if s.Name == "" {
//	        return errors.New("name required")
//	    }
//	    return nil
//	}
//
//	func (s Swatch) TypeName() string { return "Swatch" }
//	func (s Swatch) IsZero() bool     { return s.Name == "" }
//	func (s Swatch) Redacted() string { return "Swatch{" + s.Name + "}" }
//	func (s Swatch) String() string   { return "Swatch{" + s.Name + "}" }
//	// ... MarshalJSON, UnmarshalJSON, MarshalYAML, UnmarshalYAML
//
//	var _ Model = (*Swatch)(nil)  // Compile-time check
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable defines the contract for types that check their own
// invariants.
//
// Validate MUST return nil if and only if the instance is usable: every
// required field set, every numeric value finite and in range, every nested
// value valid. Failures SHOULD name the offending field, for example
// "Element.Length must be finite", rather than a generic "invalid".
//
// Validate MUST be fast, deterministic and free of side effects. It MUST NOT
// mutate the receiver and MUST NOT depend on external mutable state such as
// the contents of a registry.
//
// Callers SHOULD invoke Validate right after unmarshaling, after
// constructing values from user input, and before serializing.
type Validatable interface {
	// Validate checks that the instance satisfies all invariants. It
	// returns nil if the instance is valid, or a descriptive error.
	Validate() error
}

// Serializable defines the contract for types that round-trip through JSON
// and YAML.
//
// Marshal methods MUST call Validate first and refuse to encode invalid
// values. Unmarshal methods MUST call Validate after decoding and return the
// validation error if the decoded value is unusable; in that case the
// receiver MUST NOT be used.
//
// Implementations SHOULD use the local type alias pattern to avoid infinite
// recursion:
//
//	func (s Swatch) MarshalJSON() ([]byte, error) {
//	    if err := s.Validate(); err != nil {
//	        return nil, fmt.Errorf("cannot marshal invalid %s: %w", s.TypeName(), err)
//	    }
//	    type alias Swatch
//	    return json.Marshal((alias)(s))
//	}
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable defines the contract for types that provide string
// representations for logs and debugging.
//
// Redacted returns the form used in production logs. Linetype data is not
// sensitive, but text elements may embed arbitrary user strings, so types
// that carry free text SHOULD abbreviate it in Redacted. String MAY include
// everything.
//
// Both methods MUST be fast, MUST NOT mutate the receiver and MUST be safe
// to call concurrently.
type Loggable interface {
	// Redacted returns a representation suitable for production logs.
	Redacted() string

	// String returns the full human-readable representation.
	String() string
}

// Identifiable defines the contract for types that name themselves.
//
// TypeName MUST return a constant CamelCase name without package prefix,
// for example "Pattern" or "Tier". It is used in error messages and logs.
type Identifiable interface {
	// TypeName returns the canonical name of this model type.
	TypeName() string
}

// ZeroCheckable defines the contract for types that can report whether they
// are empty.
//
// IsZero MUST return true if and only if the instance carries no meaningful
// data. For enum-like types the zero constant may be a valid value, in which
// case IsZero only tells the caller the field was left at its default.
type ZeroCheckable interface {
	// IsZero reports whether this instance is in a zero or empty state.
	IsZero() bool
}

// Comparable defines the contract for types that can be compared for value
// equality.
//
// Equal MUST be reflexive, symmetric and transitive, and MUST compare every
// semantically significant field.
type Comparable[T any] interface {
	// Equal reports whether this instance is equal to other.
	Equal(other T) bool
}
