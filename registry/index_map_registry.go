/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"maps"
	"sync"
)

// IndexMapRegistry is a registry for schemas and their DynamoDB index maps.

var (
	indexMapRegistry = make(map[string]map[string]string)
	mu               sync.RWMutex
)

// RegisterIndexMap associates a schema name with a DynamoDB index map (PK, SK, etc.).
// Templates reference record fields with {field} macros.
func RegisterIndexMap(schema string, idxMap map[string]string) {
	mu.Lock()
	defer mu.Unlock()
	indexMapRegistry[schema] = maps.Clone(idxMap)
}

// GetIndexMap retrieves the index map for a schema, if any.
func GetIndexMap(schema string) (map[string]string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	m, ok := indexMapRegistry[schema]
	return m, ok
}

// UnregisterIndexMap removes the index map for a schema.
func UnregisterIndexMap(schema string) {
	mu.Lock()
	defer mu.Unlock()
	delete(indexMapRegistry, schema)
}
