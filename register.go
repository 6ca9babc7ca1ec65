/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package columnspace

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/suparena/columnspace/errors"
	"github.com/suparena/columnspace/internal/inflect"
	"github.com/suparena/columnspace/record"
	"github.com/suparena/columnspace/registry"
	"github.com/suparena/columnspace/valueobject"
)

type options struct {
	factory valueobject.Factory
	logger  *zap.Logger
}

// Option configures Register.
type Option func(*options)

// WithFactory sets the value class factory (default registry.Classes).
func WithFactory(f valueobject.Factory) Option {
	return func(o *options) {
		o.factory = f
	}
}

// WithLogger sets the logger used to report installed namespaces.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Register resolves spec against the schema and installs one accessor and one
// before-validation flush hook per namespace. Every namespace of the call is
// resolved and checked before any class is created or any accessor installed,
// so a failed call leaves the schema and the class factory unchanged.
// Registering an identical namespace again returns the accessor installed the
// first time.
func Register(s *record.Schema, spec Spec, opts ...Option) ([]*Accessor, error) {
	o := options{factory: registry.Classes, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if spec == nil {
		return nil, errors.NewValidationError("spec", "namespace spec is nil")
	}

	namespaces, err := spec.resolve(s)
	if err != nil {
		return nil, fmt.Errorf("register namespace: %w", err)
	}

	accessors := make([]*Accessor, len(namespaces))
	var pending []*Accessor
	for i, ns := range namespaces {
		if existing, ok := Lookup(s, ns.Name); ok && existing.namespace.sameAs(ns) {
			accessors[i] = existing
			continue
		}
		a := &Accessor{schema: s, namespace: ns}
		accessors[i] = a
		pending = append(pending, a)
	}

	exts := make([]record.Extension, len(pending))
	for i, a := range pending {
		exts[i] = a.extension()
	}
	if err := s.CanInstall(exts...); err != nil {
		return nil, fmt.Errorf("register namespace: %w", err)
	}
	if err := checkClasses(o.factory, s, pending); err != nil {
		return nil, err
	}

	for _, a := range pending {
		ns := a.namespace
		class, err := o.factory.Class(inflect.ClassName(s.Name(), ns.Name), ns.ShortNames)
		if err != nil {
			return nil, fmt.Errorf("register namespace %s: %w", ns.Name, err)
		}
		ns.Class = class
		a.slot = s.NewSlot()
	}
	if err := s.Install(exts...); err != nil {
		return nil, fmt.Errorf("register namespace: %w", err)
	}

	for _, a := range pending {
		o.logger.Debug("installed namespace",
			zap.String("schema", s.Name()),
			zap.String("namespace", a.namespace.Name),
			zap.String("class", a.namespace.Class.Name()),
			zap.Strings("fields", a.namespace.FlatFields))
	}
	return accessors, nil
}

// classLookup is implemented by factories that can report existing classes,
// such as registry.ClassRegistry.
type classLookup interface {
	Lookup(name string) (*valueobject.Class, bool)
}

// checkClasses rejects a batch whose class names are already taken with other
// fields, so a failed call creates no class at all.
func checkClasses(f valueobject.Factory, s *record.Schema, pending []*Accessor) error {
	lookup, ok := f.(classLookup)
	if !ok {
		return nil
	}
	for _, a := range pending {
		name := inflect.ClassName(s.Name(), a.namespace.Name)
		existing, ok := lookup.Lookup(name)
		if ok && !slices.Equal(existing.Fields(), a.namespace.ShortNames) {
			err := errors.NewClassConflictError(name, existing.Fields(), a.namespace.ShortNames)
			return fmt.Errorf("register namespace %s: %w", a.namespace.Name, err)
		}
	}
	return nil
}

// MustRegister is like Register but panics on error. It suits package-level
// schema setup, where a bad namespace is a programming error.
func MustRegister(s *record.Schema, spec Spec, opts ...Option) []*Accessor {
	accessors, err := Register(s, spec, opts...)
	if err != nil {
		panic(err)
	}
	return accessors
}

// Lookup returns the accessor installed on the schema under name.
func Lookup(s *record.Schema, name string) (*Accessor, bool) {
	m, ok := s.Method(name)
	if !ok {
		return nil, false
	}
	a, ok := m.Owner.(*Accessor)
	return a, ok
}

// Namespaces lists every namespace installed on the schema, sorted by name.
func Namespaces(s *record.Schema) []*Namespace {
	var out []*Namespace
	for _, name := range s.MethodNames() {
		if a, ok := Lookup(s, name); ok {
			out = append(out, a.namespace)
		}
	}
	return out
}
