/*
Package columnspace groups flat record fields into namespaces: nested value
objects with shorter attribute names that stay in sync with the flat fields.

A namespace is declared once per schema, either by prefix or by an explicit
field list:

	products := record.MustSchema("products", record.Fields(
	    "id", "external_product_id", "external_variant_id", "a", "b",
	))

	external := columnspace.MustRegister(products, columnspace.Prefix("external_"))[0]
	foo := columnspace.MustRegister(products, columnspace.Mapping{
	    {Name: "foo", Fields: []string{"a", "b"}},
	})[0]

Reading a namespace builds its value object from the current flat values and
caches it on the record. Changes to the object reach the flat fields right
before validation, and therefore before every save:

	p, _ := products.New(map[string]any{"id": "p-1", "external_product_id": 3})

	external.Get(p).Set("product_id", 111)
	p.Get("external_product_id") // still 3

	p.Validate()
	p.Get("external_product_id") // 111

The same reader and writer are reachable by name through the schema:

	v, _ := p.Call("external")
	p.Assign("foo", map[string]any{"a": "11", "b": "22"})

Registration errors (unknown fields, prefixes matching nothing, fields claimed
by two namespaces, names clashing with fields) are reported by Register and
never deferred to record access. See the errors package.
*/
package columnspace
