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

// Package document describes the parts of a CAD document that linetype
// resolution reads: the header scale, an entity's linetype attributes and
// the layer table.
//
// The interfaces are what the resolver and scaler consume. The concrete
// types are small in-memory implementations for callers that do not have a
// document model of their own, and for tests.
package document

import (
	"sync"

	"dirpx.dev/dxltype/dxcore/model/linetype"
	"golang.org/x/text/cases"
)

// DefaultLayer is the layer every drawing has.
const DefaultLayer = "0"

// Header exposes document-wide settings.
type Header interface {
	// GlobalLinetypeScale returns $LTSCALE. It can change at any time.
	GlobalLinetypeScale() float64
}

// Entity exposes the linetype attributes of a linear graphical entity.
type Entity interface {
	// Linetype returns the raw linetype attribute: a pattern name or
	// "BYLAYER". An empty string means BYLAYER.
	Linetype() string

	// LinetypeScale returns the per-entity scale, 1.0 by default.
	LinetypeScale() float64

	// Layer returns the name of the entity's layer, and false when the
	// entity is not attached to any layer.
	Layer() (string, bool)
}

// Layer exposes the linetype attribute of a layer record.
type Layer interface {
	// Linetype returns the concrete pattern name of the layer. It is never
	// BYLAYER and defaults to CONTINUOUS.
	Linetype() string
}

// LayerTable looks layers up by name.
type LayerTable interface {
	Layer(name string) (Layer, bool)
}

// HeaderVars is an in-memory Header.
//
// Use NewHeader: the zero value has $LTSCALE = 0, which scale resolution
// rejects with *errors.InvalidScaleError rather than reading as 1.
type HeaderVars struct {
	LTScale float64
}

var _ Header = (*HeaderVars)(nil)

// NewHeader returns a header with $LTSCALE = 1.
func NewHeader() *HeaderVars {
	return &HeaderVars{LTScale: 1}
}

// GlobalLinetypeScale returns LTScale.
func (h *HeaderVars) GlobalLinetypeScale() float64 {
	return h.LTScale
}

// Attribs is an in-memory Entity.
//
// Use NewEntity or NewDetachedEntity: the zero value has a linetype scale of
// 0, which is reported as an invalid scale, never defaulted to 1.
type Attribs struct {
	LinetypeName string
	LTScale      float64
	LayerName    string
	Detached     bool
}

var _ Entity = Attribs{}

// NewEntity returns the attributes of a new entity on layer: BYLAYER,
// scale 1.
func NewEntity(layer string) Attribs {
	return Attribs{LinetypeName: linetype.ByLayerSentinel, LTScale: 1, LayerName: layer}
}

// NewDetachedEntity returns the attributes of a BYLAYER entity that belongs
// to no layer, such as one held in a clipboard buffer.
func NewDetachedEntity() Attribs {
	return Attribs{LinetypeName: linetype.ByLayerSentinel, LTScale: 1, Detached: true}
}

// Linetype returns LinetypeName.
func (a Attribs) Linetype() string { return a.LinetypeName }

// LinetypeScale returns LTScale.
func (a Attribs) LinetypeScale() float64 { return a.LTScale }

// Layer returns LayerName unless the entity is detached.
func (a Attribs) Layer() (string, bool) {
	if a.Detached {
		return "", false
	}
	return a.LayerName, true
}

// LayerRecord is an in-memory Layer.
type LayerRecord struct {
	Name         string
	LinetypeName string
}

var _ Layer = LayerRecord{}

// Linetype returns LinetypeName.
func (l LayerRecord) Linetype() string { return l.LinetypeName }

// Layers is an in-memory LayerTable keyed case-insensitively, as layer
// names are in drawing files. It is safe for concurrent use.
type Layers struct {
	mu      sync.RWMutex
	records map[string]LayerRecord
}

var _ LayerTable = (*Layers)(nil)

// NewLayers returns a table holding layer "0" with CONTINUOUS.
func NewLayers() *Layers {
	t := &Layers{records: make(map[string]LayerRecord)}
	t.Set(DefaultLayer, linetype.ContinuousName.String())
	return t
}

// Set adds or replaces a layer. An empty linetype means CONTINUOUS.
func (t *Layers) Set(name, ltype string) {
	if ltype == "" {
		ltype = linetype.ContinuousName.String()
	}
	t.mu.Lock()
	t.records[layerKey(name)] = LayerRecord{Name: name, LinetypeName: ltype}
	t.mu.Unlock()
}

// Delete removes a layer. Entities still pointing at it then fail BYLAYER
// resolution.
func (t *Layers) Delete(name string) {
	t.mu.Lock()
	delete(t.records, layerKey(name))
	t.mu.Unlock()
}

// Layer returns the record for name, ignoring case.
func (t *Layers) Layer(name string) (Layer, bool) {
	t.mu.RLock()
	rec, ok := t.records[layerKey(name)]
	t.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return rec, true
}

func layerKey(name string) string {
	return cases.Fold().String(name)
}
