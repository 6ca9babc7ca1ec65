/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package columnspace

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/columnspace/datastore"
	"github.com/suparena/columnspace/record"
)

// Stores is a thread-safe catalogue of DataStore instances keyed by schema name.
type Stores struct {
	mu     sync.RWMutex
	stores map[string]datastore.DataStore
}

// NewStores creates an empty catalogue.
func NewStores() *Stores {
	return &Stores{
		stores: make(map[string]datastore.DataStore),
	}
}

// RegisterDataStore assigns the store that persists records of a schema.
func (st *Stores) RegisterDataStore(schema string, ds datastore.DataStore) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, exists := st.stores[schema]; exists {
		return fmt.Errorf("datastore for schema %q already registered", schema)
	}
	st.stores[schema] = ds
	return nil
}

// GetDataStore retrieves the store registered for a schema.
func (st *Stores) GetDataStore(schema string) (datastore.DataStore, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	ds, exists := st.stores[schema]
	if !exists {
		return nil, fmt.Errorf("datastore for schema %q not found", schema)
	}
	return ds, nil
}

// RemoveDataStore unregisters the store of a schema.
func (st *Stores) RemoveDataStore(schema string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, exists := st.stores[schema]; !exists {
		return fmt.Errorf("datastore for schema %q not found", schema)
	}
	delete(st.stores, schema)
	return nil
}

// ListDataStores returns the schema names that have a store, sorted.
func (st *Stores) ListDataStores() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()

	keys := make([]string, 0, len(st.stores))
	for k := range st.stores {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save flushes namespaces, validates and persists the record in its schema's store.
func (st *Stores) Save(ctx context.Context, rec *record.Record) error {
	ds, err := st.GetDataStore(rec.Schema().Name())
	if err != nil {
		return err
	}
	return rec.Save(ctx, ds)
}

// Load fetches a record of the schema by key.
func (st *Stores) Load(ctx context.Context, s *record.Schema, key string) (*record.Record, error) {
	ds, err := st.GetDataStore(s.Name())
	if err != nil {
		return nil, err
	}
	return s.Find(ctx, ds, key)
}
