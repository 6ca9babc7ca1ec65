/*
Package record implements the host record type that namespaces attach to.

A Schema is an ordered set of flat fields together with the methods, cache
slots and before-validation hooks installed on it. A Record stores one value
per field:

	products := record.MustSchema("products", []record.Field{
	    {Name: "id", Required: true},
	    {Name: "sku", Format: "uuid"},
	    {Name: "external_product_id"},
	})

	p, _ := products.New(map[string]any{"id": "p-1"})
	p.Set("external_product_id", 3)

	err := p.Save(ctx, store) // hooks, field checks, then store.Put

Field formats are checked against the go-openapi/strfmt default registry.
*/
package record
