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

package errors

import (
	stderrors "errors"
	"math"
	"testing"
)

func TestGenericErrors_Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"parse",
			&ParseError{Type: "Tier", Value: "fancy"},
			"dxltype: invalid Tier value: fancy",
		},
		{
			"parse empty value",
			&ParseError{Type: "ElementKind", Value: ""},
			"dxltype: invalid ElementKind value: ",
		},
		{
			"marshal value 42 should be decimal not unicode",
			&MarshalError{Type: "Tier", Value: 42},
			"dxltype: cannot marshal invalid Tier value: 42",
		},
		{
			"marshal negative",
			&MarshalError{Type: "Provenance", Value: -1},
			"dxltype: cannot marshal invalid Provenance value: -1",
		},
		{
			"unmarshal",
			&UnmarshalError{Type: "Tier", Data: []byte(`{broken`), Reason: "unexpected end of JSON input"},
			"dxltype: cannot unmarshal Tier: unexpected end of JSON input",
		},
		{
			"validation with field",
			&ValidationError{Type: "Element", Field: "Length", Reason: "must be finite"},
			"dxltype: invalid Element.Length: must be finite",
		},
		{
			"validation without field",
			&ValidationError{Type: "Config", Reason: "invalid value"},
			"dxltype: invalid Config: invalid value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTaxonomyErrors_Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"duplicate",
			&DuplicateNameError{Name: "DASHED"},
			"dxltype: linetype already defined: DASHED",
		},
		{
			"protected remove",
			&ProtectedEntryError{Name: "CONTINUOUS", Op: "remove"},
			"dxltype: cannot remove protected linetype CONTINUOUS",
		},
		{
			"undefined",
			&UndefinedLinetypeError{Name: "HIDDEN2"},
			"dxltype: undefined linetype: HIDDEN2",
		},
		{
			"broken layer missing",
			&BrokenLayerReferenceError{Layer: "WALLS"},
			`dxltype: broken layer reference: layer "WALLS" not found`,
		},
		{
			"broken layer linetype",
			&BrokenLayerReferenceError{Layer: "0", Linetype: "GAS_LINE"},
			`dxltype: broken layer reference: layer "0" uses undefined linetype "GAS_LINE"`,
		},
		{
			"inconsistent named",
			&InconsistentPatternError{Name: "DASHED", Reason: "no elements"},
			"dxltype: inconsistent pattern DASHED: no elements",
		},
		{
			"inconsistent unnamed",
			&InconsistentPatternError{Reason: "name must not be empty"},
			"dxltype: inconsistent pattern: name must not be empty",
		},
		{
			"invalid scale",
			&InvalidScaleError{Factor: "entity", Value: -2.5},
			"dxltype: invalid entity scale: -2.5 (must be finite and > 0)",
		},
		{
			"invalid scale nan",
			&InvalidScaleError{Factor: "global", Value: math.NaN()},
			"dxltype: invalid global scale: NaN (must be finite and > 0)",
		},
		{
			"capability",
			&UnsupportedCapabilityError{Name: "GAS_LINE", Required: "complex", Supported: "simple"},
			"dxltype: linetype GAS_LINE requires complex capability, target supports simple",
		},
		{
			"lin syntax",
			&SyntaxError{Format: "lin", Line: 12, Reason: "pattern line without header"},
			"dxltype: lin line 12: pattern line without header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBrokenLayerReferenceError_Unwrap(t *testing.T) {
	cause := &UndefinedLinetypeError{Name: "GAS_LINE"}
	err := error(&BrokenLayerReferenceError{Layer: "0", Linetype: "GAS_LINE", Err: cause})

	var undef *UndefinedLinetypeError
	if !stderrors.As(err, &undef) {
		t.Fatalf("errors.As did not find *UndefinedLinetypeError in %v", err)
	}
	if undef.Name != "GAS_LINE" {
		t.Errorf("unwrapped Name = %q, want GAS_LINE", undef.Name)
	}

	bare := &BrokenLayerReferenceError{Layer: "0"}
	if bare.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want nil", bare.Unwrap())
	}
}

func TestErrors_Implements_Error_Interface(t *testing.T) {
	var _ error = (*ParseError)(nil)
	var _ error = (*MarshalError)(nil)
	var _ error = (*UnmarshalError)(nil)
	var _ error = (*ValidationError)(nil)
	var _ error = (*DuplicateNameError)(nil)
	var _ error = (*ProtectedEntryError)(nil)
	var _ error = (*UndefinedLinetypeError)(nil)
	var _ error = (*BrokenLayerReferenceError)(nil)
	var _ error = (*InconsistentPatternError)(nil)
	var _ error = (*InvalidScaleError)(nil)
	var _ error = (*UnsupportedCapabilityError)(nil)
	var _ error = (*SyntaxError)(nil)
}
