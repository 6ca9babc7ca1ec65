/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package record

import (
	"context"
	stderrors "errors"
	"fmt"
	"maps"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/columnspace/datastore"
	"github.com/suparena/columnspace/errors"
)

// Record is one instance of a Schema. It is not safe for concurrent use.
type Record struct {
	schema    *Schema
	values    map[string]any
	slots     map[SlotID]any
	persisted bool
}

// Schema returns the record's schema.
func (r *Record) Schema() *Schema { return r.schema }

// Get returns a flat field value, nil for unknown fields.
func (r *Record) Get(field string) any {
	return r.values[field]
}

// Lookup returns a flat field value and whether the field exists.
func (r *Record) Lookup(field string) (any, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Set assigns a flat field value.
func (r *Record) Set(field string, value any) error {
	if !r.schema.HasField(field) {
		return errors.NewUnknownFieldError(r.schema.name, []string{field})
	}
	r.values[field] = value
	return nil
}

// Attributes returns a copy of every flat field value.
func (r *Record) Attributes() map[string]any {
	return maps.Clone(r.values)
}

// Call invokes the reader of a method installed on the schema.
func (r *Record) Call(name string) (any, error) {
	m, ok := r.schema.Method(name)
	if !ok || m.Read == nil {
		return nil, fmt.Errorf("%s: undefined method %q", r.schema.name, name)
	}
	return m.Read(r), nil
}

// Assign invokes the writer of a method installed on the schema.
func (r *Record) Assign(name string, value any) error {
	m, ok := r.schema.Method(name)
	if !ok || m.Write == nil {
		return fmt.Errorf("%s: undefined method %q=", r.schema.name, name)
	}
	return m.Write(r, value)
}

// Slot returns the cached value held in a slot.
func (r *Record) Slot(id SlotID) (any, bool) {
	v, ok := r.slots[id]
	return v, ok
}

// SetSlot stores a value in a slot.
func (r *Record) SetSlot(id SlotID, v any) {
	r.slots[id] = v
}

// ClearSlots drops every cached slot value.
func (r *Record) ClearSlots() {
	clear(r.slots)
}

// Persisted reports whether the record was saved or loaded from a store.
func (r *Record) Persisted() bool { return r.persisted }

// KeyValue renders the key field as a string, "" when unset.
func (r *Record) KeyValue() string {
	if r.schema.key == "" {
		return ""
	}
	v := r.values[r.schema.key]
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Validate runs the before-validation hooks in installation order, then checks
// every field. Hook failures stop validation; field failures are joined.
func (r *Record) Validate() error {
	for _, h := range r.schema.snapshotHooks() {
		if err := h.fn(r); err != nil {
			return fmt.Errorf("%s before validation %s: %w", r.schema.name, h.name, err)
		}
	}

	var errs []error
	for _, f := range r.schema.fields {
		v := r.values[f.Name]
		if f.Required && blank(v) {
			errs = append(errs, errors.NewValidationError(f.Name, "is required"))
			continue
		}
		if f.Format == "" {
			continue
		}
		if s, ok := v.(string); ok && s != "" && !strfmt.Default.Validates(f.Format, s) {
			errs = append(errs, errors.NewValidationError(f.Name, fmt.Sprintf("is not a valid %s", f.Format)))
		}
	}
	return stderrors.Join(errs...)
}

// Save validates the record and writes its flat fields to the store.
func (r *Record) Save(ctx context.Context, store datastore.DataStore) error {
	if err := r.Validate(); err != nil {
		return err
	}

	key := r.KeyValue()
	if key == "" {
		return errors.NewValidationError(r.schema.key, "key is required to save")
	}

	err := store.Put(ctx, datastore.Item{
		Schema: r.schema.name,
		Key:    key,
		Fields: r.Attributes(),
	})
	if err != nil {
		return fmt.Errorf("save %s %q: %w", r.schema.name, key, err)
	}
	r.persisted = true
	return nil
}

// Reload replaces the flat fields with the stored version and drops every
// cached slot, so namespaces hydrate again on next read.
func (r *Record) Reload(ctx context.Context, store datastore.DataStore) error {
	key := r.KeyValue()
	if key == "" {
		return errors.NewValidationError(r.schema.key, "key is required to reload")
	}

	item, err := store.GetOne(ctx, r.schema.name, key)
	if err != nil {
		return fmt.Errorf("reload %s %q: %w", r.schema.name, key, err)
	}
	r.load(item.Fields)
	r.ClearSlots()
	return nil
}

func (r *Record) load(fields map[string]any) {
	for _, f := range r.schema.fields {
		r.values[f.Name] = fields[f.Name]
	}
	r.persisted = true
}

func blank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
