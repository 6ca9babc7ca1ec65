/*
Package config declares schemas and their namespaces in YAML and reads the AWS
settings used by the DynamoDB store.

	schemas:
	  - name: products
	    fields:
	      - id
	      - external_product_id
	      - {name: sku, format: uuid, required: true}
	    namespaces:
	      - external_                 # one prefix
	      - [billing_, shipping_]     # several prefixes
	      - {foo: [a, b]}             # explicit field lists
	    indexMap:
	      PK: "PRODUCT#{id}"
	      SK: "PRODUCT#{id}"

AWS settings come from the environment, optionally seeded from a .env file.
*/
package config
