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

package model

import (
	"encoding/json"
	"fmt"
	"reflect"

	"dirpx.dev/dxltype/dxcore/errors"
	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates a slice of models and returns every validation error
// encountered, not just the first.
//
// Each failure is wrapped with the model's zero-based position and its type
// name, so a catalog loader can report "model[3] (Pattern): ..." for every
// bad entry in one pass. Failures are aggregated with rxmerr.Collector and
// the whole slice is always processed. An empty slice is valid and yields
// nil.
//
// Example:
//
//	if err := ValidateAll(patterns); err != nil {
//	    return fmt.Errorf("catalog rejected: %w", err)
//	}
func ValidateAll[T Model](models []T) error {
	c := rxmerr.NewCollector()

	for i, m := range models {
		if err := m.Validate(); err != nil {
			c.Append(fmt.Errorf("model[%d] (%s): %w", i, m.TypeName(), err))
		}
	}

	return c.Err()
}

// MustValidate validates a model and panics if validation fails.
//
// It is meant for package-level initialisation of built-in values and for
// test fixtures, where an invalid model is a programming error. It MUST NOT
// be used on data that came from a file or a user.
func MustValidate[T Model](m T) T {
	if err := m.Validate(); err != nil {
		panic(fmt.Sprintf("model validation failed for %s: %v", m.TypeName(), err))
	}
	return m
}

// SafeString returns the Redacted form of m, or its full String form when
// unsafe is true.
//
// Loggers in this module always pass false.
func SafeString[T Model](m T, unsafe bool) string {
	if unsafe {
		return m.String()
	}
	return m.Redacted()
}

// ToJSON validates m and encodes it as JSON.
//
// No encoding is attempted when validation fails; the returned error wraps
// the validation failure with the model's type name.
func ToJSON[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.Marshal(m)
}

// ToYAML validates m and encodes it as YAML.
//
// No encoding is attempted when validation fails; the returned error wraps
// the validation failure with the model's type name.
func ToYAML[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}

// FromJSON decodes JSON into m and validates the result.
//
// When T is a pointer type, a JSON null document would leave *m nil; that is
// reported as a *errors.ValidationError instead of being validated.
//
// If FromJSON returns an error the state of *m is undefined and MUST NOT be
// used.
//
// Example:
//
//	cfg := &config.Config{}
//	if err := FromJSON(data, &cfg); err != nil {
//	    return err
//	}
func FromJSON[T Model](data []byte, m *T) error {
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	if isNil(*m) {
		return nullDocument(*m)
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}

// FromYAML decodes YAML into m and validates the result. A null document
// ("~" or "null") is rejected as in FromJSON.
//
// If FromYAML returns an error the state of *m is undefined and MUST NOT be
// used.
func FromYAML[T Model](data []byte, m *T) error {
	if err := yaml.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	if isNil(*m) {
		return nullDocument(*m)
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}

// isNil reports whether m is a nil pointer. Decoders set pointer targets to
// nil on a null document.
func isNil[T Model](m T) bool {
	v := reflect.ValueOf(m)
	return !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil())
}

func nullDocument[T Model](m T) error {
	name := "document"
	if t := reflect.TypeOf(m); t != nil && t.Kind() == reflect.Pointer {
		name = t.Elem().Name()
	}
	return &errors.ValidationError{Type: name, Reason: "document is null"}
}
