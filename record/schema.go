/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package record

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/columnspace/datastore"
	"github.com/suparena/columnspace/errors"
)

// Field declares one flat field of a schema.
type Field struct {
	Name string
	// Format names a strfmt format ("uuid", "email", "date-time", ...) that
	// non-empty string values must satisfy.
	Format string
	// Required rejects nil and empty-string values at validation time.
	Required bool
}

// Fields declares plain fields by name.
func Fields(names ...string) []Field {
	fields := make([]Field, len(names))
	for i, n := range names {
		fields[i] = Field{Name: n}
	}
	return fields
}

// SlotID identifies a per-record cache slot allocated from a schema.
type SlotID int

// Hook runs against a record before its fields are validated.
type Hook func(*Record) error

// Method is a named reader/writer pair installed on a schema.
type Method struct {
	Read  func(*Record) any
	Write func(*Record, any) error
	// Owner is whatever installed the method; the schema never inspects it.
	Owner any
}

// Extension bundles everything one namespace installs on a schema.
type Extension struct {
	// Name is the method name.
	Name string
	// Claims lists flat fields the extension takes ownership of.
	Claims []string
	Method Method
	// Hook runs before validation, after hooks installed earlier.
	Hook Hook
}

type namedHook struct {
	name string
	fn   Hook
}

// Option configures a Schema.
type Option func(*Schema)

// WithKey selects the field used as the persistence key.
func WithKey(field string) Option {
	return func(s *Schema) {
		s.key = field
	}
}

// Schema is a record type: an ordered set of known fields plus the methods
// and hooks installed on it.
type Schema struct {
	mu      sync.RWMutex
	name    string
	fields  []Field
	index   map[string]int
	key     string
	methods map[string]Method
	claims  map[string]string
	hooks   []namedHook
	slots   SlotID
}

// NewSchema creates a schema. The key defaults to "id" when such a field exists.
func NewSchema(name string, fields []Field, opts ...Option) (*Schema, error) {
	if name == "" {
		return nil, errors.NewValidationError("schema", "name must not be empty")
	}

	s := &Schema{
		name:    name,
		fields:  slices.Clone(fields),
		index:   make(map[string]int, len(fields)),
		methods: make(map[string]Method),
		claims:  make(map[string]string),
	}
	for i, f := range fields {
		if f.Name == "" {
			return nil, errors.NewValidationError("schema", fmt.Sprintf("%s: field %d has no name", name, i))
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, errors.NewValidationError(f.Name, fmt.Sprintf("declared twice in %s", name))
		}
		if f.Format != "" && !strfmt.Default.ContainsName(f.Format) {
			return nil, errors.NewValidationError(f.Name, fmt.Sprintf("unknown format %q", f.Format))
		}
		s.index[f.Name] = i
	}

	if _, ok := s.index["id"]; ok {
		s.key = "id"
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.key != "" && !s.HasField(s.key) {
		return nil, errors.NewUnknownFieldError(name, []string{s.key})
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(name string, fields []Field, opts ...Option) *Schema {
	s, err := NewSchema(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Key returns the key field name, or "" when the schema has none.
func (s *Schema) Key() string { return s.key }

// FieldNames returns the known field names in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// HasField reports whether name is a known field.
func (s *Schema) HasField(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Method returns the method installed under name.
func (s *Schema) Method(name string) (Method, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.methods[name]
	return m, ok
}

// MethodNames lists installed methods in sorted order.
func (s *Schema) MethodNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.methods))
	for n := range s.methods {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Claimant returns the extension that owns a flat field.
func (s *Schema) Claimant(field string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owner, ok := s.claims[field]
	return owner, ok
}

// NewSlot allocates a cache slot that every record of this schema carries.
func (s *Schema) NewSlot() SlotID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots++
	return s.slots
}

// BeforeValidation appends a hook run by Record.Validate.
func (s *Schema) BeforeValidation(name string, h Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, namedHook{name: name, fn: h})
}

// CanInstall reports the error Install would return for the batch without
// installing anything.
func (s *Schema) CanInstall(exts ...Extension) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, err := s.checkInstall(exts)
	return err
}

// Install adds a batch of extensions. Either every extension is installed or,
// on the first conflict, none is.
func (s *Schema) Install(exts ...Extension) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	claims, err := s.checkInstall(exts)
	if err != nil {
		return err
	}

	for _, ext := range exts {
		s.methods[ext.Name] = ext.Method
		if ext.Hook != nil {
			s.hooks = append(s.hooks, namedHook{name: ext.Name, fn: ext.Hook})
		}
	}
	for f, owner := range claims {
		s.claims[f] = owner
	}
	return nil
}

// checkInstall validates a batch against the installed state and itself,
// returning the field claims it would add. Callers hold s.mu.
func (s *Schema) checkInstall(exts []Extension) (map[string]string, error) {
	names := make(map[string]bool, len(exts))
	claims := make(map[string]string)
	for _, ext := range exts {
		if s.HasField(ext.Name) || names[ext.Name] {
			return nil, errors.NewMethodConflictError(s.name, ext.Name)
		}
		if _, taken := s.methods[ext.Name]; taken {
			return nil, errors.NewMethodConflictError(s.name, ext.Name)
		}
		names[ext.Name] = true

		for _, f := range ext.Claims {
			if !s.HasField(f) {
				return nil, errors.NewUnknownFieldError(s.name, []string{f})
			}
			if owner, taken := s.claims[f]; taken {
				return nil, errors.NewFieldClaimedError(f, ext.Name, owner)
			}
			if owner, taken := claims[f]; taken {
				return nil, errors.NewFieldClaimedError(f, ext.Name, owner)
			}
			claims[f] = ext.Name
		}
	}
	return claims, nil
}

// New builds a record. Attribute keys naming a field set that field; keys
// naming a method go through the method's writer after all fields are set.
func (s *Schema) New(attrs map[string]any) (*Record, error) {
	r := s.blank()

	var unknown, methods []string
	for k, v := range attrs {
		if s.HasField(k) {
			r.values[k] = v
			continue
		}
		if _, ok := s.Method(k); ok {
			methods = append(methods, k)
			continue
		}
		unknown = append(unknown, k)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errors.NewUnknownFieldError(s.name, unknown)
	}

	sort.Strings(methods)
	for _, name := range methods {
		if err := r.Assign(name, attrs[name]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Find loads a persisted record by key.
func (s *Schema) Find(ctx context.Context, store datastore.DataStore, key string) (*Record, error) {
	item, err := store.GetOne(ctx, s.name, key)
	if err != nil {
		return nil, fmt.Errorf("find %s %q: %w", s.name, key, err)
	}
	r := s.blank()
	r.load(item.Fields)
	return r, nil
}

func (s *Schema) blank() *Record {
	r := &Record{
		schema: s,
		values: make(map[string]any, len(s.fields)),
		slots:  make(map[SlotID]any),
	}
	for _, f := range s.fields {
		r.values[f.Name] = nil
	}
	return r
}

func (s *Schema) snapshotHooks() []namedHook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.hooks)
}
