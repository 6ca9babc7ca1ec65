/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package inflect turns namespace and schema names into value class identifiers.
package inflect

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var title = cases.Title(language.Und, cases.NoLower)

// Classify converts a snake_case (or otherwise separated) name into a
// CamelCase class identifier: "external" -> "External", "line_items" -> "LineItems".
func Classify(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	var b strings.Builder
	for _, w := range words {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// ClassName builds the qualified value class identifier for a namespace
// nested under a schema, e.g. ("products", "external") -> "Products::External".
func ClassName(schema, namespace string) string {
	return Classify(schema) + "::" + Classify(namespace)
}
