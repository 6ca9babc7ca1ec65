/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

The DynamodbDataStore supports:
  - Single-table design patterns
  - Macro-based key expansion (e.g., "PRODUCT#{id}")
  - Secondary index attributes written from the same index map
  - Automatic EntityType injection carrying the schema name

Macro Expansion:
Keys use macros that are replaced with flat field values of the record:

	registry.RegisterIndexMap("products", map[string]string{
	    "PK":     "PRODUCT#{id}",          // Becomes "PRODUCT#p-1"
	    "SK":     "PRODUCT#{id}",
	    "GSI1PK": "EXT#{external_product_id}",
	})

Because namespaces are flushed onto flat fields before every save, macros can
reference fields that callers only ever touch through a namespace.

GetOne and Delete take the key field value and substitute it for every macro
in the PK and SK templates.
*/
package ddb
