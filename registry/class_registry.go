/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sort"
	"sync"

	"github.com/suparena/columnspace/errors"
	"github.com/suparena/columnspace/valueobject"
)

// ClassRegistry is a valueobject.Factory that hands out one Class per identifier.
type ClassRegistry struct {
	mu      sync.RWMutex
	classes map[string]*valueobject.Class
}

// Classes is the process-wide default factory.
var Classes = NewClassRegistry()

// NewClassRegistry creates an empty ClassRegistry.
func NewClassRegistry() *ClassRegistry {
	return &ClassRegistry{
		classes: make(map[string]*valueobject.Class),
	}
}

// Class returns the class registered under name, creating it on first request.
// A repeated request with the same fields returns the existing class; a request
// with different fields fails with a ClassConflictError.
func (r *ClassRegistry) Class(name string, fields []string) (*valueobject.Class, error) {
	requested, err := valueobject.NewClass(name, fields)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.classes[name]; ok {
		if !existing.Equal(requested) {
			return nil, errors.NewClassConflictError(name, existing.Fields(), fields)
		}
		return existing, nil
	}
	r.classes[name] = requested
	return requested, nil
}

// Lookup returns a previously created class.
func (r *ClassRegistry) Lookup(name string) (*valueobject.Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[name]
	return c, ok
}

// Names lists registered class identifiers in sorted order.
func (r *ClassRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
