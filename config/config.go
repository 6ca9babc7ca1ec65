/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/suparena/columnspace"
	"github.com/suparena/columnspace/record"
	"github.com/suparena/columnspace/registry"
)

// File is a parsed configuration file.
type File struct {
	Schemas []SchemaConfig `yaml:"schemas"`
}

// SchemaConfig declares one record schema and its namespaces.
type SchemaConfig struct {
	Name       string            `yaml:"name"`
	Key        string            `yaml:"key"`
	Fields     []FieldConfig     `yaml:"fields"`
	Namespaces []NamespaceConfig `yaml:"namespaces"`
	IndexMap   map[string]string `yaml:"indexMap"`
}

// FieldConfig is either a bare field name or a {name, format, required} mapping.
type FieldConfig struct {
	Name     string `yaml:"name"`
	Format   string `yaml:"format"`
	Required bool   `yaml:"required"`
}

// UnmarshalYAML accepts both field forms.
func (f *FieldConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Name = node.Value
		return nil
	}
	type plain FieldConfig
	return node.Decode((*plain)(f))
}

// NamespaceConfig holds one namespace spec. A scalar is a prefix, a sequence
// is a list of prefixes and a mapping lists fields per namespace name.
type NamespaceConfig struct {
	Spec columnspace.Spec
}

// UnmarshalYAML decodes the spec according to the node kind. Mapping order is
// preserved, so hooks run in the order the file lists them.
func (n *NamespaceConfig) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		n.Spec = columnspace.Prefix(node.Value)
		return nil

	case yaml.SequenceNode:
		var prefixes []string
		if err := node.Decode(&prefixes); err != nil {
			return fmt.Errorf("line %d: prefix list: %w", node.Line, err)
		}
		n.Spec = columnspace.Prefixes(prefixes)
		return nil

	case yaml.MappingNode:
		mapping := make(columnspace.Mapping, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			var fields []string
			if err := node.Content[i+1].Decode(&fields); err != nil {
				return fmt.Errorf("line %d: namespace %q: %w", node.Content[i].Line, node.Content[i].Value, err)
			}
			mapping = append(mapping, columnspace.Group{Name: node.Content[i].Value, Fields: fields})
		}
		n.Spec = mapping
		return nil
	}
	return fmt.Errorf("line %d: unsupported namespace entry", node.Line)
}

// Load reads and parses a configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse parses configuration from YAML bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &f, nil
}

// Model is a schema built from configuration with its accessors by name.
type Model struct {
	Schema    *record.Schema
	Accessors map[string]*columnspace.Accessor
}

// Build creates every schema, registers its namespaces in file order and
// records its index map. The first failure aborts the build.
func (f *File) Build(opts ...columnspace.Option) (map[string]*Model, error) {
	models := make(map[string]*Model, len(f.Schemas))
	for _, sc := range f.Schemas {
		if _, dup := models[sc.Name]; dup {
			return nil, fmt.Errorf("schema %q declared twice", sc.Name)
		}

		m, err := sc.build(opts...)
		if err != nil {
			return nil, err
		}
		models[sc.Name] = m
	}

	for _, sc := range f.Schemas {
		if len(sc.IndexMap) > 0 {
			registry.RegisterIndexMap(sc.Name, sc.IndexMap)
		}
	}
	return models, nil
}

func (sc SchemaConfig) build(opts ...columnspace.Option) (*Model, error) {
	fields := make([]record.Field, len(sc.Fields))
	for i, fc := range sc.Fields {
		fields[i] = record.Field{Name: fc.Name, Format: fc.Format, Required: fc.Required}
	}

	var schemaOpts []record.Option
	if sc.Key != "" {
		schemaOpts = append(schemaOpts, record.WithKey(sc.Key))
	}
	s, err := record.NewSchema(sc.Name, fields, schemaOpts...)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", sc.Name, err)
	}

	m := &Model{Schema: s, Accessors: make(map[string]*columnspace.Accessor)}
	for _, nc := range sc.Namespaces {
		if nc.Spec == nil {
			continue
		}
		accessors, err := columnspace.Register(s, nc.Spec, opts...)
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", sc.Name, err)
		}
		for _, a := range accessors {
			m.Accessors[a.Name()] = a
		}
	}
	return m, nil
}
