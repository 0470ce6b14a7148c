package myorm

import (
	"context"
	"fmt"

	"github.com/gopsql/logger"
	"github.com/spf13/cast"
)

type (
	// Model is a database table described by a schema. Table name is
	// inferred from the model name (see ToTableName()). If the schema has no
	// "id" field, an auto increment integer primary key "id" is added.
	Model struct {
		driver         Driver
		logger         logger.Logger
		name           string
		collectionName string
		schema         *Schema
	}
)

// Initialize a Model from a name and a schema. The schema is validated, so
// errors wrap ErrSchema. For available options, see SetOptions().
//
//	products, err := myorm.NewModel("Product", schema, driver, logger.StandardLogger)
func NewModel(name string, schema *Schema, options ...interface{}) (*Model, error) {
	if schema == nil {
		schema = NewSchema()
	}
	schema = schema.WithId()
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("model %s: %w", name, err)
	}
	tableName := ToTableName(name)
	if DefaultTableNamer != nil {
		tableName = DefaultTableNamer(name)
	}
	m := &Model{
		name:           name,
		collectionName: tableName,
		schema:         schema,
	}
	m.SetOptions(options...)
	return m, nil
}

// MustNewModel is like NewModel but panics if the schema is invalid.
func MustNewModel(name string, schema *Schema, options ...interface{}) *Model {
	m, err := NewModel(name, schema, options...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Model) String() string {
	return fmt.Sprintf(`model %s (table: "%s") has %d fields`, m.name, m.collectionName, m.schema.Len())
}

// Name of the Model.
func (m Model) Name() string {
	return m.name
}

// Table name of the Model.
func (m Model) TableName() string {
	return m.collectionName
}

// Schema of the Model, including the "id" field.
func (m Model) Schema() *Schema {
	return m.schema
}

// Clone returns a copy of the model.
func (m *Model) Clone() *Model {
	c := *m
	return &c
}

// Quiet returns a copy of the model without logger.
func (m *Model) Quiet() *Model {
	return m.Clone().SetLogger(nil)
}

// SetOptions sets the driver (see SetDriver()) and/or logger (see
// SetLogger()).
func (m *Model) SetOptions(options ...interface{}) *Model {
	for _, option := range options {
		switch o := option.(type) {
		case Driver:
			m.SetDriver(o)
		case logger.Logger:
			m.SetLogger(o)
		}
	}
	return m
}

// Return the driver of the Model.
func (m *Model) Driver() Driver {
	return m.driver
}

// Set the driver for the Model. ErrNoConnection is returned by operations if
// no driver is set.
func (m *Model) SetDriver(driver Driver) *Model {
	m.driver = driver
	return m
}

// Set the logger for the Model. Use logger.StandardLogger if you want to use
// Go's built-in standard logging package. By default, no logger is used, so
// the SQL statements are not printed to the console.
func (m *Model) SetLogger(logger logger.Logger) *Model {
	m.logger = logger
	return m
}

// Query logs the statement and runs it with the driver of the Model.
func (m *Model) Query(ctx context.Context, query string, args ...interface{}) (*Result, error) {
	if m.driver == nil {
		return nil, ErrNoConnection
	}
	m.log(query, args)
	return m.driver.Query(ctx, query, args...)
}

func (m *Model) log(sql string, args []interface{}) {
	if m.logger == nil {
		return
	}
	if len(args) == 0 {
		m.logger.Debug(sql)
		return
	}
	m.logger.Debug(sql, args)
}

// DDL returns the CREATE TABLE statement of the Model.
//
//	CREATE TABLE `products` (`id` int NOT NULL AUTO_INCREMENT,PRIMARY KEY(`id`),`name` varchar(32) NOT NULL)
func (m Model) DDL() string {
	return CreateTable(m.collectionName, m.schema).String()
}

// TableExists checks information_schema.tables for the table of the Model in
// the database of the driver.
func (m *Model) TableExists(ctx context.Context) (bool, error) {
	if m.driver == nil {
		return false, ErrNoConnection
	}
	v, err := Select("information_schema.tables", Raw("COUNT(*)")).
		Where(Filter{"table_schema": m.driver.DatabaseName(), "table_name": m.collectionName}).
		Limit(1).
		TakeValue(ctx, m)
	if err != nil {
		return false, err
	}
	if v == nil {
		return false, nil
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Init creates the table of the Model if it does not exist. Returns true if
// the table was created, false if it already exists.
func (m *Model) Init(ctx context.Context) (bool, error) {
	exists, err := m.TableExists(ctx)
	if err != nil || exists {
		return false, err
	}
	if _, err := CreateTable(m.collectionName, m.schema).Execute(ctx, m); err != nil {
		return false, err
	}
	return true, nil
}

// Drop drops the table of the Model if it exists.
func (m *Model) Drop(ctx context.Context) error {
	_, err := DropTable(m.collectionName).Execute(ctx, m)
	return err
}

// Create inserts values and returns a copy of them with "id" set to the
// generated primary key. JSON fields are stored as JSON text and returned
// decoded. If decoding fails after the insert, the inserted values are
// returned with the error.
//
//	product, err := products.Create(ctx, myorm.Values{
//		"name":       "Widget",
//		"price":      100,
//		"parameters": map[string]interface{}{"a": 1},
//	})
//	// product["id"] is int64(1)
func (m *Model) Create(ctx context.Context, values Values) (Values, error) {
	stored, err := m.Serialize(values)
	if err != nil {
		return nil, err
	}
	result, err := Insert(m.collectionName, stored).Execute(ctx, m)
	if err != nil {
		return nil, err
	}
	if result.InsertId != 0 {
		stored["id"] = result.InsertId
	} else if _, ok := stored["id"]; !ok {
		return nil, ErrNoInsertId
	}
	// the row is written, so it is returned along with a decoding error
	err = m.Deserialize(Row(stored))
	return stored, err
}

// Count returns the number of rows matching filter.
func (m *Model) Count(ctx context.Context, filter Filter) (int64, error) {
	v, err := Select(m.collectionName, Raw("COUNT(*)")).Where(filter).TakeValue(ctx, m)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	return cast.ToInt64E(v)
}

// Find returns a pipeline fetching all rows matching filter.
func (m *Model) Find(filter Filter) *FindPipeline {
	return newFindPipeline(m, filter)
}

// FindOne returns a pipeline fetching the first row matching filter.
func (m *Model) FindOne(filter Filter) *FindOnePipeline {
	return newFindOnePipeline(m, filter)
}

// FindById is FindOne(Filter{"id": id}).
func (m *Model) FindById(id interface{}) *FindOnePipeline {
	return newFindOnePipeline(m, Filter{"id": id})
}

// Delete returns a pipeline deleting all rows matching filter.
func (m *Model) Delete(filter Filter) *DeletePipeline {
	return newDeletePipeline(m, filter, false)
}

// DeleteOne returns a pipeline deleting the first row matching filter.
func (m *Model) DeleteOne(filter Filter) *DeletePipeline {
	return newDeletePipeline(m, filter, true)
}

// DeleteById is DeleteOne(Filter{"id": id}).
func (m *Model) DeleteById(id interface{}) *DeletePipeline {
	return newDeletePipeline(m, Filter{"id": id}, true)
}

// Update returns a pipeline setting values on all rows matching filter.
func (m *Model) Update(filter Filter, values Values) *UpdatePipeline {
	return newUpdatePipeline(m, filter, values, false)
}

// UpdateOne returns a pipeline setting values on the first row matching
// filter.
func (m *Model) UpdateOne(filter Filter, values Values) *UpdatePipeline {
	return newUpdatePipeline(m, filter, values, true)
}

// UpdateById is UpdateOne(Filter{"id": id}, values).
func (m *Model) UpdateById(id interface{}, values Values) *UpdatePipeline {
	return newUpdatePipeline(m, Filter{"id": id}, values, true)
}
