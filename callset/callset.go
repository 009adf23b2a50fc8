// This file is part of Pinkernel.
//
// Pinkernel is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Pinkernel is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Pinkernel.  If not, see <https://www.gnu.org/licenses/>.

// Package callset is the event registry used by modules built on top of the
// kernel. Handlers are registered at startup against an event kind and are
// called in registration order when the event is invoked.
//
// The registry is sealed once startup is complete. Registering a handler
// after that is an error.
package callset

import (
	"fmt"
	"sync"

	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/logger"
)

// Sentinel error patterns.
const (
	Sealed    = "callset: registry sealed: cannot register %s for %v"
	Duplicate = "callset: %s already registered for %v"
)

// Kind is an event kind. Values are defined by the consumer.
type Kind int

// Handler is called when an event is invoked. The value of C is decided by
// the consumer and is passed unchanged from Invoke().
type Handler[C any] func(C)

type entry[C any] struct {
	name    string
	handler Handler[C]
}

// Registry maps event kinds to ordered lists of handlers.
type Registry[C any] struct {
	crit   sync.Mutex
	sets   map[Kind][]entry[C]
	names  map[Kind]string
	sealed bool
}

// NewRegistry is the preferred method of initialisation for the Registry
// type.
func NewRegistry[C any]() *Registry[C] {
	return &Registry[C]{
		sets:  make(map[Kind][]entry[C]),
		names: make(map[Kind]string),
	}
}

// Name gives a kind a name for logging.
func (r *Registry[C]) Name(kind Kind, name string) {
	r.crit.Lock()
	defer r.crit.Unlock()
	r.names[kind] = name
}

func (r *Registry[C]) kindName(kind Kind) string {
	if n, ok := r.names[kind]; ok {
		return n
	}
	return fmt.Sprintf("kind %d", int(kind))
}

// Register adds a handler to the end of the list for the kind. Handler names
// must be unique for each kind.
func (r *Registry[C]) Register(kind Kind, name string, handler Handler[C]) error {
	r.crit.Lock()
	defer r.crit.Unlock()

	if r.sealed {
		return curated.Errorf(Sealed, name, r.kindName(kind))
	}
	for _, e := range r.sets[kind] {
		if e.name == name {
			return curated.Errorf(Duplicate, name, r.kindName(kind))
		}
	}

	r.sets[kind] = append(r.sets[kind], entry[C]{name: name, handler: handler})
	return nil
}

// Seal the registry. No more handlers can be registered.
func (r *Registry[C]) Seal() {
	r.crit.Lock()
	defer r.crit.Unlock()
	r.sealed = true
}

// Invoke calls every handler registered for the kind, in the order they were
// registered. Returns the number of handlers called.
func (r *Registry[C]) Invoke(kind Kind, ctx C) int {
	r.crit.Lock()
	set := r.sets[kind]
	name := r.kindName(kind)
	r.crit.Unlock()

	logger.Logf(logger.Allow, "callset", "%s: %d handlers", name, len(set))
	for _, e := range set {
		e.handler(ctx)
	}
	return len(set)
}

// Handlers returns the names of the handlers for the kind in the order they
// will be called.
func (r *Registry[C]) Handlers(kind Kind) []string {
	r.crit.Lock()
	defer r.crit.Unlock()

	names := make([]string, 0, len(r.sets[kind]))
	for _, e := range r.sets[kind] {
		names = append(names, e.name)
	}
	return names
}
