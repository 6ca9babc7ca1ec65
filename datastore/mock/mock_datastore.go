/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides mock implementations of the DataStore interface for testing
package mock

import (
	"context"
	"maps"
	"sync"

	"github.com/suparena/columnspace/datastore"
	"github.com/suparena/columnspace/errors"
)

// DataStore is a mock implementation of datastore.DataStore for testing
type DataStore struct {
	mu          sync.RWMutex
	data        map[string]map[string]any
	getError    error
	putError    error
	deleteError error
}

var _ datastore.DataStore = (*DataStore)(nil)

// New creates a new mock DataStore
func New() *DataStore {
	return &DataStore{
		data: make(map[string]map[string]any),
	}
}

// WithGetError makes GetOne operations return an error
func (m *DataStore) WithGetError(err error) *DataStore {
	m.getError = err
	return m
}

// WithPutError makes Put operations return an error
func (m *DataStore) WithPutError(err error) *DataStore {
	m.putError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore) WithDeleteError(err error) *DataStore {
	m.deleteError = err
	return m
}

// GetOne retrieves a record by key
func (m *DataStore) GetOne(ctx context.Context, schema, key string) (*datastore.Item, error) {
	if m.getError != nil {
		return nil, m.getError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	fields, exists := m.data[compositeKey(schema, key)]
	if !exists {
		return nil, errors.NewNotFoundError(schema, key)
	}

	return &datastore.Item{Schema: schema, Key: key, Fields: maps.Clone(fields)}, nil
}

// Put stores a record
func (m *DataStore) Put(ctx context.Context, item datastore.Item) error {
	if m.putError != nil {
		return m.putError
	}
	if item.Key == "" {
		return errors.NewValidationError("key", "unable to extract key from record")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[compositeKey(item.Schema, item.Key)] = maps.Clone(item.Fields)
	return nil
}

// Delete removes a record by key
func (m *DataStore) Delete(ctx context.Context, schema, key string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ck := compositeKey(schema, key)
	if _, exists := m.data[ck]; !exists {
		return errors.NewNotFoundError(schema, key)
	}

	delete(m.data, ck)
	return nil
}

// Helper methods for testing

// GetData returns a copy of the stored fields keyed by "schema|key" (for testing)
func (m *DataStore) GetData() map[string]map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]map[string]any, len(m.data))
	for k, v := range m.data {
		result[k] = maps.Clone(v)
	}
	return result
}

// Count returns the number of stored records
func (m *DataStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all data
func (m *DataStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]map[string]any)
}

func compositeKey(schema, key string) string {
	return schema + "|" + key
}
