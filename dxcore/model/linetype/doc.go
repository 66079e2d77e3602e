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

// Package linetype defines the value types of linetype resolution.
//
// A linetype is a named dash pattern applied to linear entities (lines,
// arcs, circles, polylines). This package holds the immutable pieces:
//
//   - Element: one dash, point, gap, text glyph or shape glyph.
//   - Pattern: a validated, immutable element sequence with a name,
//     description, capability Tier and derived total length.
//   - Name: a pattern identifier compared case-insensitively.
//   - Reference: an entity's linetype attribute, either an explicit Name or
//     ByLayer.
//   - Effective: a resolved Pattern plus its Provenance.
//
// Length sign convention for dashes: positive draws, negative is a gap, zero
// is a point. A pattern's total length is the sum of absolute element
// lengths.
//
// Every type here is a value. Registries, resolvers and builders elsewhere
// in dxcore operate on these values without mutating them.
package linetype
