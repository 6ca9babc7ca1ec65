/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package valueobject

import (
	"fmt"
	"slices"
	"strings"

	"github.com/suparena/columnspace/errors"
)

// Factory produces value classes. Requesting the same name with the same
// fields must be idempotent.
type Factory interface {
	Class(name string, fields []string) (*Class, error)
}

// Class describes a value object type: an identifier and an ordered set of
// property names.
type Class struct {
	name   string
	fields []string
	index  map[string]int
}

// NewClass validates the property list and builds a Class.
func NewClass(name string, fields []string) (*Class, error) {
	if name == "" {
		return nil, errors.NewValidationError("class", "name must not be empty")
	}
	if len(fields) == 0 {
		return nil, errors.NewValidationError("class", fmt.Sprintf("%s has no fields", name))
	}

	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f == "" {
			return nil, errors.NewValidationError("class", fmt.Sprintf("%s has an empty field name", name))
		}
		if _, dup := index[f]; dup {
			return nil, errors.NewValidationError(f, fmt.Sprintf("duplicate field in %s", name))
		}
		index[f] = i
	}

	return &Class{
		name:   name,
		fields: slices.Clone(fields),
		index:  index,
	}, nil
}

// Name returns the class identifier.
func (c *Class) Name() string { return c.name }

// Fields returns a copy of the ordered property names.
func (c *Class) Fields() []string { return slices.Clone(c.fields) }

// Has reports whether the class defines the property.
func (c *Class) Has(field string) bool {
	_, ok := c.index[field]
	return ok
}

// Equal reports whether two classes share an identifier and property list.
func (c *Class) Equal(other *Class) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}
	return c.name == other.name && slices.Equal(c.fields, other.fields)
}

// New builds an Object from a property mapping. Properties absent from the
// mapping start as nil; keys the class does not define are rejected.
func (c *Class) New(values map[string]any) (*Object, error) {
	obj := &Object{class: c, values: make([]any, len(c.fields))}

	var unknown []string
	for k, v := range values {
		i, ok := c.index[k]
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		obj.values[i] = v
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, errors.NewValidationError("", fmt.Sprintf("%s has no attribute(s) %s", c.name, strings.Join(unknown, ", ")))
	}
	return obj, nil
}

// Object is an instance of a Class holding one value per property.
type Object struct {
	class  *Class
	values []any
}

// Class returns the object's class.
func (o *Object) Class() *Class { return o.class }

// Get returns the property value, or nil for an undefined property.
func (o *Object) Get(field string) any {
	v, _ := o.Lookup(field)
	return v
}

// Lookup returns the property value and whether the class defines it.
func (o *Object) Lookup(field string) (any, bool) {
	i, ok := o.class.index[field]
	if !ok {
		return nil, false
	}
	return o.values[i], true
}

// Set assigns a property value.
func (o *Object) Set(field string, value any) error {
	i, ok := o.class.index[field]
	if !ok {
		return errors.NewValidationError(field, fmt.Sprintf("undefined attribute for %s", o.class.name))
	}
	o.values[i] = value
	return nil
}

// ToMap converts the object back into a property mapping.
func (o *Object) ToMap() map[string]any {
	m := make(map[string]any, len(o.values))
	for i, f := range o.class.fields {
		m[f] = o.values[i]
	}
	return m
}

func (o *Object) String() string {
	var b strings.Builder
	b.WriteString("#<")
	b.WriteString(o.class.name)
	for i, f := range o.class.fields {
		fmt.Fprintf(&b, " %s=%v", f, o.values[i])
	}
	b.WriteString(">")
	return b.String()
}
