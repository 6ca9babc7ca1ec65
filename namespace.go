/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package columnspace

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/suparena/columnspace/errors"
	"github.com/suparena/columnspace/record"
	"github.com/suparena/columnspace/valueobject"
)

// Spec selects the fields grouped into namespaces. It is one of Mapping,
// Prefix or Prefixes.
type Spec interface {
	resolve(s *record.Schema) ([]*Namespace, error)
}

// Group is one explicit namespace: flat fields listed verbatim.
type Group struct {
	Name   string
	Fields []string
}

// Mapping groups named fields under namespace names, in order.
type Mapping []Group

// Prefix groups every field starting with the prefix.
type Prefix string

// Prefixes applies the Prefix rule to each entry.
type Prefixes []string

var (
	// Separators are anything but Unicode letters and numbers.
	trailingSeparators = regexp.MustCompile(`[^\p{L}\p{N}]*\z`)
	leadingSeparators  = regexp.MustCompile(`\A[^\p{L}\p{N}]*`)
)

// Namespace is a resolved, immutable group of flat fields.
type Namespace struct {
	// Name is the accessor name installed on the schema.
	Name string
	// Prefix is the literal prefix, empty for explicit mappings.
	Prefix string
	// FlatFields and ShortNames correspond index by index.
	FlatFields []string
	ShortNames []string
	Class      *valueobject.Class

	toFlat  map[string]string
	toShort map[string]string
}

// FlatName maps a short name back to its flat field.
func (n *Namespace) FlatName(short string) (string, bool) {
	f, ok := n.toFlat[short]
	return f, ok
}

// ShortName maps a flat field to its short name.
func (n *Namespace) ShortName(flat string) (string, bool) {
	s, ok := n.toShort[flat]
	return s, ok
}

func (n *Namespace) sameAs(other *Namespace) bool {
	return n.Name == other.Name &&
		slices.Equal(n.FlatFields, other.FlatFields) &&
		slices.Equal(n.ShortNames, other.ShortNames)
}

func newNamespace(name, prefix string, flat, short []string) (*Namespace, error) {
	n := &Namespace{
		Name:       name,
		Prefix:     prefix,
		FlatFields: flat,
		ShortNames: short,
		toFlat:     make(map[string]string, len(flat)),
		toShort:    make(map[string]string, len(flat)),
	}
	for i, f := range flat {
		s := short[i]
		if s == "" {
			return nil, errors.NewValidationError(f, fmt.Sprintf("namespace %q leaves an empty attribute name", name))
		}
		if prev, dup := n.toFlat[s]; dup {
			return nil, errors.NewValidationError(f, fmt.Sprintf("namespace %q maps %q and %q to the same attribute %q", name, prev, f, s))
		}
		if _, dup := n.toShort[f]; dup {
			return nil, errors.NewValidationError(f, fmt.Sprintf("listed twice in namespace %q", name))
		}
		n.toFlat[s] = f
		n.toShort[f] = s
	}
	return n, nil
}

func (m Mapping) resolve(s *record.Schema) ([]*Namespace, error) {
	out := make([]*Namespace, 0, len(m))
	for _, g := range m {
		if g.Name == "" {
			return nil, errors.NewValidationError("namespace", "name must not be empty")
		}
		if len(g.Fields) == 0 {
			return nil, errors.NewValidationError(g.Name, "namespace lists no fields")
		}

		var unknown []string
		for _, f := range g.Fields {
			if !s.HasField(f) {
				unknown = append(unknown, f)
			}
		}
		if len(unknown) > 0 {
			return nil, errors.NewUnknownFieldError(s.Name(), unknown)
		}

		flat := slices.Clone(g.Fields)
		n, err := newNamespace(g.Name, "", flat, slices.Clone(flat))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (p Prefix) resolve(s *record.Schema) ([]*Namespace, error) {
	prefix := string(p)
	name := trailingSeparators.ReplaceAllString(prefix, "")
	if name == "" {
		return nil, errors.NewValidationError("prefix", fmt.Sprintf("%q yields an empty namespace name", prefix))
	}

	var flat, short []string
	for _, f := range s.FieldNames() {
		if !strings.HasPrefix(f, prefix) {
			continue
		}
		flat = append(flat, f)
		short = append(short, unprefix(f, prefix))
	}
	if len(flat) == 0 {
		return nil, errors.NewNoMatchingFieldError(s.Name(), prefix)
	}

	n, err := newNamespace(name, prefix, flat, short)
	if err != nil {
		return nil, err
	}
	return []*Namespace{n}, nil
}

func (ps Prefixes) resolve(s *record.Schema) ([]*Namespace, error) {
	var out []*Namespace
	for _, p := range ps {
		ns, err := Prefix(p).resolve(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ns...)
	}
	return out, nil
}

// unprefix strips the literal prefix and the separator run that follows it.
func unprefix(field, prefix string) string {
	return leadingSeparators.ReplaceAllString(strings.TrimPrefix(field, prefix), "")
}
