/*
Package registry holds the process-wide lookup tables used by columnspace.

Class Registry:
Hands out value classes keyed by identifier and acts as the default
valueobject.Factory. Re-requesting an identical class is a no-op:

	class, err := registry.Classes.Class("Products::External", []string{"product_id", "variant_id"})

Index Map Registry:
Associates a schema with DynamoDB key patterns:

	registry.RegisterIndexMap("products", map[string]string{
	    "PK": "PRODUCT#{id}",
	    "SK": "PRODUCT#{id}",
	})

Both registries are thread-safe and should be populated during initialization,
typically in init() functions or from configuration.
*/
package registry
