/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
)

// Item is a flat record as it travels to and from a backend.
type Item struct {
	// Schema is the record type name.
	Schema string
	// Key is the value of the schema's key field, rendered as a string.
	Key string
	// Fields holds every flat field value.
	Fields map[string]any
}

// DataStore persists flat records by schema name and key value.
type DataStore interface {
	GetOne(ctx context.Context, schema, key string) (*Item, error)

	Put(ctx context.Context, item Item) error

	Delete(ctx context.Context, schema, key string) error
}
