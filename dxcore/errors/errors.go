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

// Package errors provides the error types shared by every dxltype package.
//
// Two families live here. The first is the generic family used by enum-like
// and model types when parsing, marshaling, unmarshaling and validating
// values (ParseError, MarshalError, UnmarshalError, ValidationError). The
// second is the linetype resolution taxonomy surfaced by the registry, the
// resolver, the scale resolver and the render builder:
//
//   - DuplicateNameError
//     A pattern with the same (case-insensitive) name is already registered
//     and the caller did not ask for an overwrite.
//
//   - ProtectedEntryError
//     The caller tried to remove CONTINUOUS or redefine it as anything but
//     a solid pattern.
//
//   - UndefinedLinetypeError
//     A lookup, or an entity's explicit linetype reference, names a pattern
//     the registry does not hold.
//
//   - BrokenLayerReferenceError
//     A BYLAYER entity points at a layer that is missing, or at a layer
//     whose linetype is not defined in the registry.
//
//   - InconsistentPatternError
//     A pattern definition violates a structural invariant (empty element
//     list, text or shape elements in a simple pattern, non-finite values).
//
//   - InvalidScaleError
//     A global, entity or effective scale factor is zero, negative or not
//     finite.
//
//   - UnsupportedCapabilityError
//     A pattern needs a higher capability tier than the target format
//     supports.
//
// The errors are plain value carriers with stable message formats. They are
// returned as pointers, so callers recognise them with errors.As:
//
//	var undef *errors.UndefinedLinetypeError
//	if stderrors.As(err, &undef) {
//	    log.Warn("missing linetype", "name", undef.Name)
//	}
//
// None of these errors is transient. Every one of them is a rejection of the
// input, so retrying the same call with the same input yields the same error.
package errors

import "strconv"

const prefix = "dxltype: "

// ParseError is returned when parsing a string into a strongly typed enum-like
// value fails.
//
// Type identifies the logical type being parsed (for example, "Tier" or
// "ElementKind"), and Value contains the exact string that could not be
// interpreted.
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "Tier").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"dxltype: invalid {Type} value: {Value}"
func (e *ParseError) Error() string {
	return prefix + "invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when marshaling a typed value fails due to it being
// outside the set of valid constants.
//
// In most cases a MarshalError indicates a programming error, such as an
// enum-like value produced by a numeric cast that was never validated.
type MarshalError struct {
	// Type is the logical name of the type being marshaled.
	Type string

	// Value is the underlying numeric representation that could not be
	// marshaled because it does not correspond to a known constant.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The error message format is:
//
//	"dxltype: cannot marshal invalid {Type} value: {Value}"
func (e *MarshalError) Error() string {
	return prefix + "cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when unmarshaling data into a typed value fails.
//
// The Data field is intentionally not included in the formatted message;
// callers can log it separately when appropriate.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The error message format is:
//
//	"dxltype: cannot unmarshal {Type}: {Reason}"
func (e *UnmarshalError) Error() string {
	return prefix + "cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError is returned when validation of a model type fails.
//
// Type identifies the logical name of the type being validated (for example,
// "Element", "Config"), Field optionally identifies which field failed
// validation, and Value optionally carries the offending value.
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the name of the field that failed validation.
	// May be empty if the error applies to the entire type.
	Field string

	// Reason is a short, human-readable explanation of why validation failed.
	Reason string

	// Value optionally contains the invalid value.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The error message format is:
//
//	"dxltype: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"dxltype: invalid {Type}: {Reason}" (when Field is empty)
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return prefix + "invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return prefix + "invalid " + e.Type + ": " + e.Reason
}

// DuplicateNameError is returned by the registry when a pattern is registered
// under a name that is already taken and overwriting was not requested.
//
// Name is the name as supplied by the caller; the clash itself is decided
// case-insensitively.
type DuplicateNameError struct {
	Name string
}

// Error implements the error interface for DuplicateNameError.
//
// The error message format is:
//
//	"dxltype: linetype already defined: {Name}"
func (e *DuplicateNameError) Error() string {
	return prefix + "linetype already defined: " + e.Name
}

// ProtectedEntryError is returned when an operation would remove the built-in
// CONTINUOUS pattern or replace it with a non-solid definition.
type ProtectedEntryError struct {
	// Name is the protected name the operation targeted.
	Name string

	// Op is the rejected operation, for example "remove" or "redefine".
	Op string
}

// Error implements the error interface for ProtectedEntryError.
//
// The error message format is:
//
//	"dxltype: cannot {Op} protected linetype {Name}"
func (e *ProtectedEntryError) Error() string {
	return prefix + "cannot " + e.Op + " protected linetype " + e.Name
}

// UndefinedLinetypeError is returned when a name does not resolve to a
// registered pattern.
type UndefinedLinetypeError struct {
	Name string
}

// Error implements the error interface for UndefinedLinetypeError.
//
// The error message format is:
//
//	"dxltype: undefined linetype: {Name}"
func (e *UndefinedLinetypeError) Error() string {
	return prefix + "undefined linetype: " + e.Name
}

// BrokenLayerReferenceError is returned when a BYLAYER entity cannot inherit
// a linetype from its layer.
//
// Linetype is empty when the layer itself is missing from the layer table.
// Err carries the underlying cause (usually an *UndefinedLinetypeError) and
// is exposed through Unwrap.
type BrokenLayerReferenceError struct {
	Layer    string
	Linetype string
	Err      error
}

// Error implements the error interface for BrokenLayerReferenceError.
//
// The error message format is one of:
//
//	"dxltype: broken layer reference: layer {Layer} not found"
//	"dxltype: broken layer reference: layer {Layer} uses undefined linetype {Linetype}"
func (e *BrokenLayerReferenceError) Error() string {
	if e.Linetype == "" {
		return prefix + "broken layer reference: layer " + strconv.Quote(e.Layer) + " not found"
	}
	return prefix + "broken layer reference: layer " + strconv.Quote(e.Layer) +
		" uses undefined linetype " + strconv.Quote(e.Linetype)
}

// Unwrap returns the underlying cause, if any.
func (e *BrokenLayerReferenceError) Unwrap() error {
	return e.Err
}

// InconsistentPatternError is returned when a pattern definition violates
// one of its structural invariants.
type InconsistentPatternError struct {
	// Name is the pattern name; may be empty when the name itself is at fault.
	Name string

	// Reason describes the violated invariant.
	Reason string
}

// Error implements the error interface for InconsistentPatternError.
//
// The error message format is:
//
//	"dxltype: inconsistent pattern {Name}: {Reason}"
func (e *InconsistentPatternError) Error() string {
	if e.Name == "" {
		return prefix + "inconsistent pattern: " + e.Reason
	}
	return prefix + "inconsistent pattern " + e.Name + ": " + e.Reason
}

// InvalidScaleError is returned when a scale factor is not a finite, strictly
// positive number.
//
// Factor names the offending factor ("global", "entity" or "effective").
type InvalidScaleError struct {
	Factor string
	Value  float64
}

// Error implements the error interface for InvalidScaleError.
//
// The error message format is:
//
//	"dxltype: invalid {Factor} scale: {Value} (must be finite and > 0)"
func (e *InvalidScaleError) Error() string {
	return prefix + "invalid " + e.Factor + " scale: " +
		strconv.FormatFloat(e.Value, 'g', -1, 64) + " (must be finite and > 0)"
}

// UnsupportedCapabilityError is returned when a pattern needs a higher
// capability tier than the caller's target format provides.
//
// Required and Supported hold the canonical tier names ("simple",
// "complex").
type UnsupportedCapabilityError struct {
	Name      string
	Required  string
	Supported string
}

// Error implements the error interface for UnsupportedCapabilityError.
//
// The error message format is:
//
//	"dxltype: linetype {Name} requires {Required} capability, target supports {Supported}"
func (e *UnsupportedCapabilityError) Error() string {
	return prefix + "linetype " + e.Name + " requires " + e.Required +
		" capability, target supports " + e.Supported
}

// SyntaxError is returned by text format readers when a line cannot be
// parsed.
type SyntaxError struct {
	// Format is the file format, for example "lin".
	Format string

	// Line is the 1-based line number.
	Line int

	// Reason describes what was wrong with the line.
	Reason string
}

// Error implements the error interface for SyntaxError.
//
// The error message format is:
//
//	"dxltype: {Format} line {Line}: {Reason}"
func (e *SyntaxError) Error() string {
	return prefix + e.Format + " line " + strconv.Itoa(e.Line) + ": " + e.Reason
}
