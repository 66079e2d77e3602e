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

// Package scale compounds the document-wide and per-entity linetype scales.
package scale

import (
	"math"

	"dirpx.dev/dxltype/dxcore/document"
	"dirpx.dev/dxltype/dxcore/errors"
)

const (
	// FactorGlobal names the document header scale in errors.
	FactorGlobal = "global"

	// FactorEntity names the per-entity scale in errors.
	FactorEntity = "entity"

	// FactorEffective names the compounded scale in errors.
	FactorEffective = "effective"
)

// Factors holds the two scale inputs of one entity.
type Factors struct {
	Global float64
	Entity float64
}

// FactorsOf reads the current factors from a document header and an entity.
// Nothing is cached: both values may change between calls.
func FactorsOf(header document.Header, entity document.Entity) Factors {
	return Factors{
		Global: header.GlobalLinetypeScale(),
		Entity: entity.LinetypeScale(),
	}
}

// Effective returns Global * Entity.
//
// Both factors must be finite and strictly positive; otherwise Effective
// fails with *errors.InvalidScaleError naming the first bad factor. A
// product that overflows to +Inf or underflows to 0 fails with
// FactorEffective. Values are never clamped.
func (f Factors) Effective() (float64, error) {
	if !positive(f.Global) {
		return 0, &errors.InvalidScaleError{Factor: FactorGlobal, Value: f.Global}
	}
	if !positive(f.Entity) {
		return 0, &errors.InvalidScaleError{Factor: FactorEntity, Value: f.Entity}
	}
	product := f.Global * f.Entity
	if !positive(product) {
		return 0, &errors.InvalidScaleError{Factor: FactorEffective, Value: product}
	}
	return product, nil
}

// Effective is FactorsOf(header, entity).Effective().
func Effective(header document.Header, entity document.Entity) (float64, error) {
	return FactorsOf(header, entity).Effective()
}

// positive reports whether v is finite and > 0. NaN fails the comparison.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
