/*
Package valueobject defines the lightweight value types that back a namespace.

A Class is an identifier plus an ordered list of property names. Objects are
built from a property mapping and convert back to one:

	class, _ := valueobject.NewClass("Products::External", []string{"product_id", "variant_id"})
	obj, _ := class.New(map[string]any{"product_id": 3})

	obj.Set("variant_id", 2)
	obj.ToMap() // map[product_id:3 variant_id:2]

Classes are obtained through a Factory; registry.Classes is the default one.
*/
package valueobject
