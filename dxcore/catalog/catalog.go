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

// Package catalog loads and saves linetype definitions.
//
// Three formats are supported: YAML and JSON catalog documents
//
//	schema: 1.0.0
//	linetypes:
//	  - name: DASHED
//	    description: Dashed __ __ __
//	    elements:
//	      - {kind: dash, length: 0.5}
//	      - {kind: gap, length: 0.25}
//
// and AutoCAD-style .lin files (see ParseLIN). Declared pattern lengths are
// never trusted; every pattern is rebuilt from its elements.
//
// Loading is per pattern: one malformed definition is reported and skipped,
// the others are still returned.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"dirpx.dev/dxltype/dxcore/errors"
	"dirpx.dev/dxltype/dxcore/logging"
	"dirpx.dev/dxltype/dxcore/model"
	"dirpx.dev/dxltype/dxcore/model/linetype"
	"dirpx.dev/dxltype/dxcore/model/schema"
	"dirpx.dev/dxltype/dxcore/registry"
	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// Format selects a catalog encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatLIN  Format = "lin"
)

// ParseFormat accepts "yaml", "yml", "json" and "lin" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "lin":
		return FormatLIN, nil
	default:
		return "", &errors.ParseError{Type: "Format", Value: s}
	}
}

// FormatOf guesses the format from a file extension, defaulting to YAML.
func FormatOf(path string) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return FormatYAML
}

// File is a catalog document.
type File struct {
	Schema    schema.Version     `json:"schema" yaml:"schema"`
	Linetypes []linetype.Pattern `json:"linetypes" yaml:"linetypes"`
}

// rawFile defers pattern decoding so each entry can fail on its own.
type rawFile[T any] struct {
	Schema    schema.Version `json:"schema" yaml:"schema"`
	Linetypes []T            `json:"linetypes" yaml:"linetypes"`
}

// Decode parses a catalog.
//
// YAML and JSON documents must state a schema whose major version matches
// schema.Supported. LIN files carry no schema and are stamped with
// schema.Supported.
//
// A document-level failure (syntax, schema) returns an empty File. Pattern
// failures are combined into the returned error while the File still holds
// every pattern that decoded cleanly.
func Decode(data []byte, format Format) (File, error) {
	var (
		f   File
		err error
	)

	switch format {
	case FormatYAML:
		f, err = decodeYAML(data)
	case FormatJSON:
		f, err = decodeJSON(data)
	case FormatLIN:
		var patterns []linetype.Pattern
		patterns, err = ParseLIN(bytes.NewReader(data))
		f = File{Schema: schema.Supported, Linetypes: patterns}
	default:
		return File{}, &errors.ParseError{Type: "Format", Value: string(format)}
	}

	logging.Logger().Info("decoded linetype catalog",
		"format", string(format),
		"schema", f.Schema.String(),
		"linetypes", len(f.Linetypes),
		"failed", err != nil)
	return f, err
}

func checkSchema(v schema.Version) error {
	if !schema.Supported.Compatible(v) {
		return &errors.ValidationError{
			Type:   "File",
			Field:  "Schema",
			Reason: "incompatible with supported schema " + schema.Supported.String(),
			Value:  v.String(),
		}
	}
	return nil
}

func decodeYAML(data []byte) (File, error) {
	var raw rawFile[yaml.Node]
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return File{}, fmt.Errorf("cannot decode YAML catalog: %w", err)
	}
	if err := checkSchema(raw.Schema); err != nil {
		return File{}, err
	}

	f := File{Schema: raw.Schema}
	c := rxmerr.NewCollector()
	for i := range raw.Linetypes {
		var p linetype.Pattern
		if err := raw.Linetypes[i].Decode(&p); err != nil {
			c.Append(fmt.Errorf("linetypes[%d]: %w", i, err))
			continue
		}
		f.Linetypes = append(f.Linetypes, p)
	}
	return f, c.Err()
}

func decodeJSON(data []byte) (File, error) {
	var raw rawFile[json.RawMessage]
	if err := json.Unmarshal(data, &raw); err != nil {
		return File{}, fmt.Errorf("cannot decode JSON catalog: %w", err)
	}
	if err := checkSchema(raw.Schema); err != nil {
		return File{}, err
	}

	f := File{Schema: raw.Schema}
	c := rxmerr.NewCollector()
	for i, msg := range raw.Linetypes {
		var p linetype.Pattern
		if err := json.Unmarshal(msg, &p); err != nil {
			c.Append(fmt.Errorf("linetypes[%d]: %w", i, err))
			continue
		}
		f.Linetypes = append(f.Linetypes, p)
	}
	return f, c.Err()
}

// Encode serializes a catalog. Every pattern is validated first and all
// invalid ones are reported together; nothing is written in that case.
func Encode(f File, format Format) ([]byte, error) {
	ptrs := make([]*linetype.Pattern, len(f.Linetypes))
	for i := range f.Linetypes {
		ptrs[i] = &f.Linetypes[i]
	}
	if err := model.ValidateAll(ptrs); err != nil {
		return nil, fmt.Errorf("cannot encode catalog: %w", err)
	}

	if f.Schema.IsZero() {
		f.Schema = schema.Supported
	}
	if f.Linetypes == nil {
		f.Linetypes = []linetype.Pattern{}
	}

	switch format {
	case FormatYAML:
		return yaml.Marshal(f)
	case FormatJSON:
		return json.MarshalIndent(f, "", "  ")
	case FormatLIN:
		var buf bytes.Buffer
		if err := WriteLIN(&buf, f.Linetypes); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, &errors.ParseError{Type: "Format", Value: string(format)}
	}
}

// Populate registers patterns in order, as a document load does.
//
// Names already present fail with *errors.DuplicateNameError unless
// allowOverwrite is set. CONTINUOUS is the exception: a stored solid
// CONTINUOUS always replaces the built-in one, since every saved document
// carries it. Failures are combined; the remaining patterns are still
// registered.
func Populate(reg *registry.Registry, patterns []linetype.Pattern, allowOverwrite bool) error {
	c := rxmerr.NewCollector()
	added := 0
	for _, p := range patterns {
		overwrite := allowOverwrite || (p.Name().IsContinuous() && p.IsSolid())
		if err := reg.Register(p, overwrite); err != nil {
			c.Append(fmt.Errorf("linetype %s: %w", p.Name(), err))
			continue
		}
		added++
	}

	err := c.Err()
	logging.Logger().Info("populated linetype registry",
		"registered", added,
		"total", reg.Len(),
		"failed", err != nil)
	return err
}

// Snapshot captures the registry as a catalog at schema.Supported, patterns
// ordered by name.
func Snapshot(reg *registry.Registry) File {
	return File{Schema: schema.Supported, Linetypes: reg.Patterns()}
}
