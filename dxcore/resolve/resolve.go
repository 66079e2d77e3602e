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

// Package resolve determines which pattern an entity is drawn with.
//
// Resolution follows a fixed two-step chain, entity then layer, with
// CONTINUOUS as the only built-in fallback:
//
//  1. An explicit name on the entity is looked up in the registry. A miss is
//     an *errors.UndefinedLinetypeError; there is no fallback.
//  2. BYLAYER uses the linetype of the entity's layer. A missing layer or a
//     layer linetype the registry does not know is an
//     *errors.BrokenLayerReferenceError.
//  3. A BYLAYER entity with no layer resolves to CONTINUOUS.
//
// Nothing is cached. Every call reads the current entity, layer table and
// registry state.
package resolve

import (
	"fmt"
	"strings"

	"dirpx.dev/dxltype/dxcore/document"
	"dirpx.dev/dxltype/dxcore/errors"
	"dirpx.dev/dxltype/dxcore/model/linetype"
	"dirpx.dev/dxltype/dxcore/registry"
	"dirpx.dev/rxmerr"
)

// Resolver resolves entity linetypes against a pattern source, normally the
// document's *registry.Registry. A Resolver holds no state of its own and
// is safe for concurrent use if its source is.
type Resolver struct {
	patterns registry.Lookuper
}

// New returns a Resolver reading from patterns.
func New(patterns registry.Lookuper) *Resolver {
	return &Resolver{patterns: patterns}
}

// Resolve returns the effective linetype of entity.
//
// layers may be nil, in which case no layer can be determined and a BYLAYER
// entity gets CONTINUOUS.
func (r *Resolver) Resolve(entity document.Entity, layers document.LayerTable) (linetype.Effective, error) {
	raw := entity.Linetype()
	ref, err := linetype.ParseReference(raw)
	if err != nil {
		// An unparseable name can never be registered.
		return linetype.Effective{}, fmt.Errorf("%w (%v)",
			&errors.UndefinedLinetypeError{Name: strings.TrimSpace(raw)}, err)
	}

	if name, ok := ref.Name(); ok {
		p, err := r.patterns.Lookup(name)
		if err != nil {
			return linetype.Effective{}, err
		}
		return linetype.Effective{Pattern: p, Provenance: linetype.FromEntity}, nil
	}

	layerName, attached := entity.Layer()
	if !attached || layers == nil {
		return linetype.Effective{Pattern: linetype.Continuous(), Provenance: linetype.DefaultContinuous}, nil
	}

	return r.fromLayer(layerName, layers)
}

func (r *Resolver) fromLayer(layerName string, layers document.LayerTable) (linetype.Effective, error) {
	layer, ok := layers.Layer(layerName)
	if !ok {
		return linetype.Effective{}, &errors.BrokenLayerReferenceError{Layer: layerName}
	}

	raw := strings.TrimSpace(layer.Linetype())
	if raw == "" {
		raw = linetype.ContinuousName.String()
	}

	name, err := linetype.ParseName(raw)
	if err != nil {
		return linetype.Effective{}, &errors.BrokenLayerReferenceError{Layer: layerName, Linetype: raw, Err: err}
	}

	p, err := r.patterns.Lookup(name)
	if err != nil {
		return linetype.Effective{}, &errors.BrokenLayerReferenceError{Layer: layerName, Linetype: raw, Err: err}
	}
	return linetype.Effective{Pattern: p, Provenance: linetype.FromLayer}, nil
}

// Result is the outcome of resolving one entity in a batch. Exactly one of
// Effective and Err is meaningful.
type Result struct {
	Effective linetype.Effective
	Err       error
}

// ResolveAll resolves every entity independently.
//
// A failure for one entity never stops the batch: its Result carries the
// error and the remaining entities are still resolved. The returned error
// combines every failure, each prefixed with the entity's index, and is nil
// when all entities resolved. Callers decide whether any failure is fatal.
func (r *Resolver) ResolveAll(entities []document.Entity, layers document.LayerTable) ([]Result, error) {
	results := make([]Result, len(entities))
	c := rxmerr.NewCollector()

	for i, e := range entities {
		eff, err := r.Resolve(e, layers)
		results[i] = Result{Effective: eff, Err: err}
		if err != nil {
			c.Append(fmt.Errorf("entity[%d]: %w", i, err))
		}
	}

	return results, c.Err()
}
