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

// Package engine runs the whole linetype pipeline for an entity: resolve
// the pattern, compound the scales and build the dash sequence.
//
// The engine is where caller policy from config.Config is applied. The
// packages it composes never downgrade errors on their own.
package engine

import (
	stderrors "errors"
	"fmt"

	"dirpx.dev/dxltype/dxcore/catalog"
	"dirpx.dev/dxltype/dxcore/config"
	"dirpx.dev/dxltype/dxcore/document"
	"dirpx.dev/dxltype/dxcore/errors"
	"dirpx.dev/dxltype/dxcore/logging"
	"dirpx.dev/dxltype/dxcore/model/linetype"
	"dirpx.dev/dxltype/dxcore/registry"
	"dirpx.dev/dxltype/dxcore/render"
	"dirpx.dev/dxltype/dxcore/resolve"
	"dirpx.dev/dxltype/dxcore/scale"
	"dirpx.dev/rxmerr"
)

// Engine binds a document's registry to a configuration. It is safe for
// concurrent use; all mutable state lives in the registry.
type Engine struct {
	reg      *registry.Registry
	resolver *resolve.Resolver
	cfg      config.Config
}

// New returns an engine over reg. A nil reg gets a fresh registry holding
// only CONTINUOUS.
func New(reg *registry.Registry, cfg config.Config) *Engine {
	if reg == nil {
		reg = registry.New()
	}
	return &Engine{reg: reg, resolver: resolve.New(reg), cfg: cfg}
}

// Registry returns the registry the engine reads.
func (e *Engine) Registry() *registry.Registry { return e.reg }

// Config returns the engine configuration.
func (e *Engine) Config() config.Config { return e.cfg }

// Load registers the patterns of a catalog, honouring AllowOverwrite.
func (e *Engine) Load(f catalog.File) error {
	return catalog.Populate(e.reg, f.Linetypes, e.cfg.AllowOverwrite)
}

// Pattern resolves, scales and builds the dash sequence for one entity.
//
// With DowngradeBrokenLayers set, a *errors.BrokenLayerReferenceError is
// logged as a warning and CONTINUOUS is used instead, with provenance
// DefaultContinuous. Every other failure is returned unchanged.
func (e *Engine) Pattern(header document.Header, entity document.Entity, layers document.LayerTable) (render.Sequence, linetype.Effective, error) {
	eff, err := e.resolver.Resolve(entity, layers)
	if err != nil {
		var broken *errors.BrokenLayerReferenceError
		if !e.cfg.DowngradeBrokenLayers || !stderrors.As(err, &broken) {
			return render.Sequence{}, linetype.Effective{}, err
		}
		logging.Logger().Warn("broken layer reference, using CONTINUOUS",
			"layer", broken.Layer,
			"linetype", broken.Linetype,
			"error", err)
		eff = linetype.Effective{Pattern: linetype.Continuous(), Provenance: linetype.DefaultContinuous}
	}

	s, err := scale.Effective(header, entity)
	if err != nil {
		return render.Sequence{}, eff, err
	}

	seq, err := render.Build(eff.Pattern, s, e.cfg.Capability)
	if err != nil {
		return render.Sequence{}, eff, err
	}
	return seq, eff, nil
}

// Output is the pipeline result for one entity in a batch.
type Output struct {
	Sequence  render.Sequence
	Effective linetype.Effective
	Err       error
}

// PatternAll runs Pattern for every entity. Failures are recorded per
// entity and combined into the returned error; they never stop the batch.
func (e *Engine) PatternAll(header document.Header, entities []document.Entity, layers document.LayerTable) ([]Output, error) {
	out := make([]Output, len(entities))
	c := rxmerr.NewCollector()

	for i, ent := range entities {
		seq, eff, err := e.Pattern(header, ent, layers)
		out[i] = Output{Sequence: seq, Effective: eff, Err: err}
		if err != nil {
			c.Append(fmt.Errorf("entity[%d]: %w", i, err))
		}
	}
	return out, c.Err()
}
