package myorm

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
)

// fakeDriver records statements and replies with scripted results, in order.
// Without scripted results, an empty result is returned.
type fakeDriver struct {
	mu      sync.Mutex
	name    string
	queries []string
	args    [][]interface{}
	results []*Result
	err     error
}

func (d *fakeDriver) Query(ctx context.Context, query string, args ...interface{}) (*Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queries = append(d.queries, query)
	d.args = append(d.args, args)
	if d.err != nil {
		return nil, d.err
	}
	if len(d.results) == 0 {
		return &Result{Rows: []Row{}}, nil
	}
	r := d.results[0]
	d.results = d.results[1:]
	return r, nil
}

func (d *fakeDriver) Connect(ctx context.Context) error {
	return nil
}

func (d *fakeDriver) DatabaseName() string {
	return d.name
}

func (d *fakeDriver) reply(results ...*Result) *fakeDriver {
	d.results = append(d.results, results...)
	return d
}

func (d *fakeDriver) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queries)
}

func productSchema() *Schema {
	return NewSchema(
		Field{Name: "name", FieldSpec: FieldSpec{Type: TypeString, Length: 32, Required: true}},
		Field{Name: "price", FieldSpec: FieldSpec{Type: TypeInt, Required: true}},
		Field{Name: "parameters", FieldSpec: FieldSpec{Type: TypeJSON, JSON: true}},
		Field{Name: "status", FieldSpec: FieldSpec{Type: TypeEnum, Values: []string{"enabled", "hidden", "disabled"}, Default: "enabled"}},
	)
}

func newProducts(t *testing.T) (*Model, *fakeDriver) {
	t.Helper()
	d := &fakeDriver{name: "shop"}
	m, err := NewModel("Product", productSchema(), d)
	if err != nil {
		t.Fatal(err)
	}
	return m, d
}

func TestNewModel(t *testing.T) {
	t.Parallel()
	m, d := newProducts(t)
	if m.Name() != "Product" {
		t.Errorf("Name() = %q, want %q", m.Name(), "Product")
	}
	if m.TableName() != "products" {
		t.Errorf("TableName() = %q, want %q", m.TableName(), "products")
	}
	if m.Driver() != Driver(d) {
		t.Error("Driver() should return the driver option")
	}
	var names []string
	for _, f := range m.Schema().Fields() {
		names = append(names, f.Name)
	}
	want := []string{"id", "name", "price", "parameters", "status"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("fields = %v, want %v", names, want)
	}
	if got := m.String(); got != `model Product (table: "products") has 5 fields` {
		t.Errorf("String() = %q", got)
	}
}

func TestNewModelInvalidSchema(t *testing.T) {
	t.Parallel()
	schema := NewSchema(Field{Name: "status", FieldSpec: FieldSpec{Type: TypeEnum}})
	if _, err := NewModel("Product", schema); !IsSchemaErr(err) {
		t.Errorf("NewModel() error = %v, want ErrSchema", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("MustNewModel() should panic")
		}
	}()
	MustNewModel("Product", schema)
}

func TestModelDDL(t *testing.T) {
	t.Parallel()
	m, _ := newProducts(t)
	want := "CREATE TABLE `products` (" +
		"`id` int NOT NULL AUTO_INCREMENT,PRIMARY KEY(`id`)," +
		"`name` varchar(32) NOT NULL," +
		"`price` int NOT NULL," +
		"`parameters` json NULL DEFAULT NULL," +
		"`status` enum('enabled','hidden','disabled') NOT NULL DEFAULT 'enabled')"
	if got := m.DDL(); got != want {
		t.Errorf("DDL() = %q, want %q", got, want)
	}
}

func TestModelClone(t *testing.T) {
	t.Parallel()
	m, _ := newProducts(t)
	c := m.Clone()
	c.SetDriver(nil)
	if m.Driver() == nil {
		t.Error("changing the clone should not change the model")
	}
	if q := m.Quiet(); q == m || q.Driver() != m.Driver() {
		t.Error("Quiet() should return a copy with the same driver")
	}
}

func TestModelNoConnection(t *testing.T) {
	t.Parallel()
	m := MustNewModel("Product", productSchema())
	ctx := context.Background()
	if _, err := m.Create(ctx, Values{"name": "a", "price": 1}); err != ErrNoConnection {
		t.Errorf("Create() error = %v, want %v", err, ErrNoConnection)
	}
	if _, err := m.Find(nil).Exec(ctx); err != ErrNoConnection {
		t.Errorf("Find().Exec() error = %v, want %v", err, ErrNoConnection)
	}
	if _, err := m.TableExists(ctx); err != ErrNoConnection {
		t.Errorf("TableExists() error = %v, want %v", err, ErrNoConnection)
	}
}

func TestModelCreate(t *testing.T) {
	t.Parallel()
	m, d := newProducts(t)
	d.reply(&Result{InsertId: 7, AffectedRows: 1})

	product, err := m.Create(context.Background(), Values{
		"name":       "Widget",
		"price":      5,
		"parameters": map[string]interface{}{"a": 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	wantSQL := "INSERT INTO `products` (`name`,`parameters`,`price`) VALUES (?,?,?)"
	if d.queries[0] != wantSQL {
		t.Errorf("query = %q, want %q", d.queries[0], wantSQL)
	}
	wantArgs := []interface{}{"Widget", `{"a":1}`, 5}
	if !reflect.DeepEqual(d.args[0], wantArgs) {
		t.Errorf("args = %#v, want %#v", d.args[0], wantArgs)
	}
	want := Values{
		"id":         int64(7),
		"name":       "Widget",
		"price":      5,
		"parameters": map[string]interface{}{"a": float64(1)},
	}
	if !reflect.DeepEqual(product, want) {
		t.Errorf("Create() = %#v, want %#v", product, want)
	}
}

func TestModelCreateInsertId(t *testing.T) {
	t.Parallel()
	m, d := newProducts(t)
	d.reply(&Result{AffectedRows: 1}, &Result{AffectedRows: 1})
	ctx := context.Background()

	if _, err := m.Create(ctx, Values{"name": "a", "price": 1}); err != ErrNoInsertId {
		t.Errorf("Create() error = %v, want %v", err, ErrNoInsertId)
	}
	product, err := m.Create(ctx, Values{"id": 3, "name": "a", "price": 1})
	if err != nil {
		t.Fatal(err)
	}
	if product["id"] != 3 {
		t.Errorf("id = %v, want 3", product["id"])
	}
}

func TestModelCreateStringJSON(t *testing.T) {
	t.Parallel()
	m, d := newProducts(t)
	d.reply(&Result{InsertId: 4, AffectedRows: 1})
	product, err := m.Create(context.Background(), Values{"name": "W", "price": 1, "parameters": "hello"})
	if err != nil {
		t.Fatal(err)
	}
	if want := []interface{}{"W", `"hello"`, 1}; !reflect.DeepEqual(d.args[0], want) {
		t.Errorf("args = %#v, want %#v", d.args[0], want)
	}
	if product["parameters"] != "hello" || product["id"] != int64(4) {
		t.Errorf("Create() = %#v", product)
	}
}

func TestModelCreateDecodeError(t *testing.T) {
	t.Parallel()
	m := MustNewModel("Counter", NewSchema(
		Field{Name: "hits", FieldSpec: FieldSpec{Type: TypeInt}},
	), (&fakeDriver{}).reply(&Result{InsertId: 2, AffectedRows: 1}))
	product, err := m.Create(context.Background(), Values{"hits": "many"})
	if err == nil {
		t.Fatal("Create() should report the decoding error")
	}
	if product == nil || product["id"] != int64(2) || product["hits"] != "many" {
		t.Errorf("Create() = %#v, want the inserted values", product)
	}
}

func TestModelCreateDriverError(t *testing.T) {
	t.Parallel()
	m, d := newProducts(t)
	boom := errors.New("duplicate entry")
	d.err = boom
	if _, err := m.Create(context.Background(), Values{"name": "a", "price": 1}); err != boom {
		t.Errorf("Create() error = %v, want %v", err, boom)
	}
}

func TestModelTableExists(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		result *Result
		want   bool
	}{
		{"exists", &Result{Columns: []string{"COUNT(*)"}, Rows: []Row{{"COUNT(*)": int64(1)}}}, true},
		{"missing", &Result{Columns: []string{"COUNT(*)"}, Rows: []Row{{"COUNT(*)": "0"}}}, false},
		{"no rows", &Result{}, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, d := newProducts(t)
			d.reply(tt.result)
			got, err := m.TableExists(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("TableExists() = %v, want %v", got, tt.want)
			}
			wantSQL := "SELECT COUNT(*) FROM `information_schema`.`tables` WHERE `table_name`=? AND `table_schema`=? LIMIT 1"
			if d.queries[0] != wantSQL {
				t.Errorf("query = %q, want %q", d.queries[0], wantSQL)
			}
			if !reflect.DeepEqual(d.args[0], []interface{}{"products", "shop"}) {
				t.Errorf("args = %v", d.args[0])
			}
		})
	}
}

func TestModelInit(t *testing.T) {
	t.Parallel()
	m, d := newProducts(t)
	d.reply(&Result{Rows: []Row{{"COUNT(*)": int64(0)}}, Columns: []string{"COUNT(*)"}})
	created, err := m.Init(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Error("Init() = false, want true")
	}
	if len(d.queries) != 2 || d.queries[1] != m.DDL() {
		t.Errorf("queries = %q", d.queries)
	}

	m, d = newProducts(t)
	d.reply(&Result{Rows: []Row{{"COUNT(*)": int64(1)}}, Columns: []string{"COUNT(*)"}})
	if created, err = m.Init(context.Background()); err != nil || created {
		t.Errorf("Init() = %v, %v, want false, nil", created, err)
	}
	if len(d.queries) != 1 {
		t.Errorf("Init() of existing table sent %d queries", len(d.queries))
	}
}

func TestModelDrop(t *testing.T) {
	t.Parallel()
	m, d := newProducts(t)
	if err := m.Drop(context.Background()); err != nil {
		t.Fatal(err)
	}
	if d.queries[0] != "DROP TABLE IF EXISTS `products`" {
		t.Errorf("query = %q", d.queries[0])
	}
}

func TestModelCount(t *testing.T) {
	t.Parallel()
	m, d := newProducts(t)
	d.reply(&Result{Columns: []string{"COUNT(*)"}, Rows: []Row{{"COUNT(*)": "3"}}})
	n, err := m.Count(context.Background(), Filter{"status": "enabled"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}
	if d.queries[0] != "SELECT COUNT(*) FROM `products` WHERE `status`=?" {
		t.Errorf("query = %q", d.queries[0])
	}
}
