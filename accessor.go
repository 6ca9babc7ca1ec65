/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package columnspace

import (
	"fmt"

	"github.com/suparena/columnspace/errors"
	"github.com/suparena/columnspace/record"
	"github.com/suparena/columnspace/valueobject"
)

// Accessor is the reader/writer pair and flush hook of one namespace.
// It holds no per-record state; each record keeps its cached value object in
// the slot the accessor owns.
type Accessor struct {
	schema    *record.Schema
	namespace *Namespace
	slot      record.SlotID
}

// Namespace returns the resolved namespace.
func (a *Accessor) Namespace() *Namespace { return a.namespace }

// Name returns the namespace name.
func (a *Accessor) Name() string { return a.namespace.Name }

// Get returns the record's value object, hydrating it from the current flat
// field values on first use. Later calls return the same object until Set
// replaces it or the record is reloaded.
func (a *Accessor) Get(rec *record.Record) *valueobject.Object {
	a.check(rec)

	if cached, ok := rec.Slot(a.slot); ok {
		return cached.(*valueobject.Object)
	}

	values := make(map[string]any, len(a.namespace.FlatFields))
	for i, f := range a.namespace.FlatFields {
		values[a.namespace.ShortNames[i]] = rec.Get(f)
	}

	// Keys are exactly the class fields, so construction cannot fail.
	obj, err := a.namespace.Class.New(values)
	if err != nil {
		panic(fmt.Sprintf("columnspace: hydrate %s: %v", a.namespace.Name, err))
	}
	rec.SetSlot(a.slot, obj)
	return obj
}

// Set replaces the record's value object. v is either a map of short names to
// values, built through the namespace class, or an object of that class.
// Flat fields are untouched until the next flush.
func (a *Accessor) Set(rec *record.Record, v any) error {
	a.check(rec)

	var obj *valueobject.Object
	switch tv := v.(type) {
	case map[string]any:
		built, err := a.namespace.Class.New(tv)
		if err != nil {
			return fmt.Errorf("assign %s: %w", a.namespace.Name, err)
		}
		obj = built
	case *valueobject.Object:
		if tv == nil || !tv.Class().Equal(a.namespace.Class) {
			return errors.NewValidationError(a.namespace.Name, fmt.Sprintf("expected a %s value", a.namespace.Class.Name()))
		}
		obj = tv
	default:
		return errors.NewValidationError(a.namespace.Name, fmt.Sprintf("cannot assign %T", v))
	}

	rec.SetSlot(a.slot, obj)
	return nil
}

// Flush copies the value object's state onto the flat fields. It hydrates
// first when nothing is cached, which writes the current values back unchanged.
func (a *Accessor) Flush(rec *record.Record) error {
	for short, v := range a.Get(rec).ToMap() {
		flat, ok := a.namespace.FlatName(short)
		if !ok {
			return errors.NewValidationError(short, fmt.Sprintf("not an attribute of %s", a.namespace.Name))
		}
		if err := rec.Set(flat, v); err != nil {
			return err
		}
	}
	return nil
}

func (a *Accessor) check(rec *record.Record) {
	if rec.Schema() != a.schema {
		panic(fmt.Sprintf("columnspace: namespace %s belongs to schema %s, not %s",
			a.namespace.Name, a.schema.Name(), rec.Schema().Name()))
	}
}

func (a *Accessor) extension() record.Extension {
	return record.Extension{
		Name:   a.namespace.Name,
		Claims: a.namespace.FlatFields,
		Method: record.Method{
			Read:  func(r *record.Record) any { return a.Get(r) },
			Write: a.Set,
			Owner: a,
		},
		Hook: a.Flush,
	}
}
