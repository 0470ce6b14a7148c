// Command myorm manages the tables of myorm schemas.
//
// Schemas are YAML or JSON files mapping field names to field specs. The
// model name is derived from the file name, so product_type.yaml describes
// model ProductType and table product_types.
//
// Usage:
//
//	myorm ddl schemas/product.yaml
//	myorm init schemas/*.yaml --dsn "root:secret@tcp(localhost:3306)/shop"
//	myorm exists schemas/product.yaml
//	myorm count schemas/product.yaml --where '{"price": {"$lt": 10}}'
//
// Connection settings are read from flags, MYORM_ environment variables
// (also from .env), and .myorm.yaml, in this order of precedence.
package main

func main() {
	Execute()
}
