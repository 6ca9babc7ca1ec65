/*
Package datastore defines the persistence contract for flat records.

Records are stored as flat field maps; namespaces never reach a backend on their
own, they are flushed onto flat fields before a record is validated and saved:

	type DataStore interface {
	    GetOne(ctx context.Context, schema, key string) (*Item, error)
	    Put(ctx context.Context, item Item) error
	    Delete(ctx context.Context, schema, key string) error
	}

Implementations:
  - ddb: DynamoDB implementation with macro-expanded single-table keys
  - mock: In-memory mock implementation for testing
*/
package datastore
