// Package myorm provides a minimal MySQL ORM-like layer for Go.
//
// # Overview
//
// Package myorm maps a named model and a declarative schema to a MySQL table,
// generates its CREATE TABLE statement, compiles filter objects into WHERE
// clauses and runs find, create, update and delete operations through a
// pluggable Driver.
//
// Key features include:
//   - Schemas declared in Go or parsed from YAML or JSON
//   - Table names inferred from model names (Product becomes products)
//   - Filter objects with $lt, $lte, $gt, $gte and $ne operators
//   - Parameterized statements; String() shows them with escaped literals
//   - JSON fields serialized on write and parsed on read
//   - One-shot pipelines with chainable projection, sorting and limits
//
// # Basic Usage
//
//	schema, _ := myorm.ParseSchema([]byte(`
//	name:
//	  type: string
//	  length: 32
//	  required: true
//	price:
//	  type: int
//	  required: true
//	parameters:
//	  type: json
//	  json: true
//	status:
//	  type: enum
//	  values: [enabled, hidden, disabled]
//	  default: enabled
//	`))
//
//	conn, _ := mysql.Open(mysql.Config{Host: "localhost", User: "root", Name: "shop"})
//	products := myorm.MustNewModel("Product", schema, conn, logger.StandardLogger)
//
//	// Create the table if it does not exist
//	products.Init(ctx)
//
//	// Insert a row
//	product, err := products.Create(ctx, myorm.Values{"name": "Widget", "price": 5})
//
//	// Find rows
//	rows, err := products.Find(myorm.Filter{"price": myorm.Lt(10)}).
//		Select("id", "name").
//		Sort("price", true).
//		Limit(10).
//		Exec(ctx)
//
//	// Update and delete
//	products.UpdateById(product["id"], myorm.Values{"price": 6}).Exec(ctx)
//	products.DeleteById(product["id"]).Exec(ctx)
//
// # Schema
//
// The id field is added automatically as an auto increment integer primary
// key. Fields are NOT NULL if required or if they have a default, otherwise
// NULL DEFAULT NULL. Zero defaults (0, "" and false) count as no default.
//
//	fmt.Println(products.DDL())
//	// CREATE TABLE `products` (`id` int NOT NULL AUTO_INCREMENT,PRIMARY KEY(`id`),
//	// `name` varchar(32) NOT NULL,`price` int NOT NULL,
//	// `parameters` json NULL DEFAULT NULL,
//	// `status` enum('enabled','hidden','disabled') NOT NULL DEFAULT 'enabled')
//
// # Filters
//
// Filter entries are combined with AND in sorted field order. A literal means
// equality, nil means IS NULL and a slice means IN:
//
//	myorm.Filter{"price": myorm.Filter{"$gte": 1, "$lt": 10}, "status": "enabled"}
//	// `price`<10 AND `price`>=1 AND `status`='enabled'
//
// Unknown operators and nested fields are rejected with an error wrapping
// ErrUnsupportedOperation, before anything is sent to the database.
//
// # Pipelines
//
// Find, FindOne, Update and Delete (and their One and ById variants) return
// pipelines. Nothing is sent until Exec is called, and a pipeline can only be
// executed once. Use SQL() to see the statement:
//
//	products.FindById(2).Select("id", "name").SQL().String()
//	// SELECT `id`,`name` FROM `products` WHERE `id`=2 LIMIT 1
//
// # Database Drivers
//
// A Driver runs statements with "?" placeholders. Package
// github.com/gopsql/myorm/mysql provides one for
// github.com/go-sql-driver/mysql. Any db.DB of github.com/gopsql/standard
// can be wrapped with NewDBDriver:
//
//	c, _ := sql.Open("mysql", dsn)
//	driver := myorm.NewDBDriver(standard.NewDB("mysql", c), "shop")
//	products := myorm.MustNewModel("Product", schema, driver)
package myorm
