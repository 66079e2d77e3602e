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

// Package schema versions the on-disk linetype catalog format.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"dirpx.dev/dxltype/dxcore/errors"
	"dirpx.dev/dxltype/dxcore/model"
	bsemver "github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"
)

// Supported is the catalog schema this build reads and writes.
var Supported = Version{Major: 1}

// Version is the semantic version of a catalog document's schema.
//
// The major component gates compatibility: a reader accepts any catalog whose
// major version equals its own, and ignores minor and patch differences
// (fields added in a newer minor are dropped on decode). Prerelease and
// build metadata are not used by catalogs and are rejected.
//
// Parsing and ordering are delegated to github.com/blang/semver/v4.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Compile-time assertion that Version implements model.Model.
var _ model.Model = (*Version)(nil)

// ParseVersion parses "Major.Minor.Patch", tolerating a leading "v".
func ParseVersion(s string) (Version, error) {
	bv, err := bsemver.Parse(strings.TrimPrefix(strings.TrimSpace(s), "v"))
	if err != nil {
		return Version{}, &errors.ParseError{Type: "Version", Value: s}
	}
	if len(bv.Pre) > 0 || len(bv.Build) > 0 {
		return Version{}, &errors.ParseError{Type: "Version", Value: s}
	}
	return Version{Major: int(bv.Major), Minor: int(bv.Minor), Patch: int(bv.Patch)}, nil
}

func (v Version) semver() bsemver.Version {
	return bsemver.Version{Major: uint64(v.Major), Minor: uint64(v.Minor), Patch: uint64(v.Patch)}
}

// String returns "Major.Minor.Patch".
func (v Version) String() string {
	return v.semver().String()
}

// Redacted returns the same as String.
func (v Version) Redacted() string {
	return v.String()
}

// TypeName returns "Version".
func (v Version) TypeName() string {
	return "Version"
}

// IsZero reports whether the version is 0.0.0, which catalogs treat as
// "not stated".
func (v Version) IsZero() bool {
	return v == Version{}
}

// Equal reports whether other is a Version with the same components.
func (v Version) Equal(other any) bool {
	switch o := other.(type) {
	case Version:
		return v == o
	case *Version:
		return o != nil && v == *o
	default:
		return false
	}
}

// Compare orders v against other: -1, 0 or +1.
func (v Version) Compare(other Version) int {
	return v.semver().Compare(other.semver())
}

// Compatible reports whether a reader at version v can load a document
// written at version doc: the major components must match.
func (v Version) Compatible(doc Version) bool {
	return v.Major == doc.Major
}

// Validate rejects negative components.
func (v Version) Validate() error {
	if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
		return &errors.ValidationError{
			Type:   v.TypeName(),
			Reason: "components must be non-negative",
			Value:  fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch),
		}
	}
	return nil
}

// MarshalJSON encodes the version as a JSON string.
func (v Version) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a JSON string through ParseVersion.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Version", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML encodes the version as a YAML string.
func (v Version) MarshalYAML() (interface{}, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.String(), nil
}

// UnmarshalYAML decodes a YAML scalar through ParseVersion.
func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Version", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
