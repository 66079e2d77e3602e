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

// Package registry holds the named linetype patterns of one document.
//
// A Registry is created when a document is opened and always contains the
// built-in CONTINUOUS pattern. Entries are added, redefined and removed by
// document edits; lookups are case-insensitive.
//
// Registry is safe for concurrent use. Lookups share a read lock and may run
// in parallel; mutations take the write lock, so a completed mutation is
// visible to every later lookup from any goroutine.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"dirpx.dev/dxltype/dxcore/errors"
	"dirpx.dev/dxltype/dxcore/logging"
	"dirpx.dev/dxltype/dxcore/model"
	"dirpx.dev/dxltype/dxcore/model/linetype"
)

// Lookuper resolves a linetype name to its current definition.
//
// *Registry implements it; resolvers depend on this interface so tests and
// read-only views can substitute their own source.
type Lookuper interface {
	Lookup(name linetype.Name) (linetype.Pattern, error)
}

var _ Lookuper = (*Registry)(nil)

// Registry maps case-folded linetype names to pattern definitions.
//
// Patterns are immutable values, so redefining a name replaces the entry
// without affecting Pattern values callers already hold.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]linetype.Pattern
}

// New returns a registry seeded with CONTINUOUS.
func New() *Registry {
	c := linetype.Continuous()
	return &Registry{
		entries: map[string]linetype.Pattern{c.Key(): c},
	}
}

// Register adds p under its name.
//
// If the name is already present (in any case), Register fails with
// *errors.DuplicateNameError unless allowOverwrite is true, in which case the
// entry is replaced. CONTINUOUS may only ever be redefined as a solid
// pattern; anything else fails with *errors.ProtectedEntryError. An invalid
// pattern (such as the zero Pattern) is rejected with its validation error.
func (r *Registry) Register(p linetype.Pattern, allowOverwrite bool) error {
	if p.Name().IsContinuous() && !p.IsSolid() {
		return &errors.ProtectedEntryError{Name: p.Name().String(), Op: "redefine"}
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("cannot register linetype: %w", err)
	}

	key := p.Key()

	r.mu.Lock()
	_, exists := r.entries[key]
	if exists && !allowOverwrite {
		r.mu.Unlock()
		return &errors.DuplicateNameError{Name: p.Name().String()}
	}
	r.entries[key] = p
	r.mu.Unlock()

	logging.Logger().Debug("registered linetype",
		"pattern", model.SafeString(&p, false),
		"replaced", exists)
	return nil
}

// Lookup returns the pattern registered under name, ignoring case, or
// *errors.UndefinedLinetypeError.
func (r *Registry) Lookup(name linetype.Name) (linetype.Pattern, error) {
	r.mu.RLock()
	p, ok := r.entries[name.Key()]
	r.mu.RUnlock()

	if !ok {
		return linetype.Pattern{}, &errors.UndefinedLinetypeError{Name: name.String()}
	}
	return p, nil
}

// Remove deletes the entry for name.
//
// CONTINUOUS cannot be removed (*errors.ProtectedEntryError). Removing a
// name that is not registered fails with *errors.UndefinedLinetypeError.
func (r *Registry) Remove(name linetype.Name) error {
	if name.IsContinuous() {
		return &errors.ProtectedEntryError{Name: name.String(), Op: "remove"}
	}

	key := name.Key()

	r.mu.Lock()
	if _, ok := r.entries[key]; !ok {
		r.mu.Unlock()
		return &errors.UndefinedLinetypeError{Name: name.String()}
	}
	delete(r.entries, key)
	r.mu.Unlock()

	logging.Logger().Debug("removed linetype", "name", name.String())
	return nil
}

// Contains reports whether name is registered, ignoring case.
func (r *Registry) Contains(name linetype.Name) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name.Key()]
	return ok
}

// Len returns the number of registered patterns, CONTINUOUS included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Names returns the registered names in their stored spelling, ordered by
// folded key.
func (r *Registry) Names() []linetype.Name {
	patterns := r.Patterns()
	names := make([]linetype.Name, len(patterns))
	for i, p := range patterns {
		names[i] = p.Name()
	}
	return names
}

// Patterns returns a snapshot of every registered pattern ordered by folded
// name. Later mutations do not affect the returned slice.
func (r *Registry) Patterns() []linetype.Pattern {
	r.mu.RLock()
	out := make([]linetype.Pattern, 0, len(r.entries))
	for _, p := range r.entries {
		out = append(out, p)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}
