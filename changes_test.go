package myorm

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestSerialize(t *testing.T) {
	t.Parallel()
	m := MustNewModel("Product", productSchema())
	values := Values{
		"name":       "Widget",
		"parameters": map[string]interface{}{"colors": []string{"red"}},
		"extra":      map[string]interface{}{"kept": true},
	}
	got, err := m.Serialize(values)
	if err != nil {
		t.Fatal(err)
	}
	want := Values{
		"name":       "Widget",
		"parameters": `{"colors":["red"]}`,
		"extra":      map[string]interface{}{"kept": true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Serialize() = %#v, want %#v", got, want)
	}
	if _, ok := values["parameters"].(string); ok {
		t.Error("Serialize() should not change its argument")
	}

	tests := []struct {
		name  string
		value interface{}
		want  interface{}
	}{
		{"nil", nil, nil},
		{"json text", `{"a":1}`, `{"a":1}`},
		{"plain string", "hello", `"hello"`},
		{"bytes", []byte(`[1]`), `[1]`},
		{"number", 3, "3"},
		{"list", []int{1, 2}, "[1,2]"},
	}
	for _, tt := range tests {
		got, err := m.Serialize(Values{"parameters": tt.value})
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got["parameters"], tt.want) {
			t.Errorf("%s: Serialize() = %#v, want %#v", tt.name, got["parameters"], tt.want)
		}
	}

	if _, err := m.Serialize(Values{"parameters": make(chan int)}); err == nil {
		t.Error("Serialize() of a channel should fail")
	}
}

func TestDeserialize(t *testing.T) {
	t.Parallel()
	m := MustNewModel("Flag", NewSchema(
		Field{Name: "enabled", FieldSpec: FieldSpec{Type: TypeBool}},
		Field{Name: "count", FieldSpec: FieldSpec{Type: TypeBigInt}},
		Field{Name: "meta", FieldSpec: FieldSpec{Type: TypeText, JSON: true}},
	))
	row := Row{
		"id":      []byte("4"),
		"enabled": int64(1),
		"count":   "12",
		"meta":    []byte(`{"a":[1,2]}`),
		"other":   "untouched",
	}
	if err := m.Deserialize(row); err != nil {
		t.Fatal(err)
	}
	want := Row{
		"id":      int64(4),
		"enabled": true,
		"count":   int64(12),
		"meta":    map[string]interface{}{"a": []interface{}{float64(1), float64(2)}},
		"other":   "untouched",
	}
	if !reflect.DeepEqual(row, want) {
		t.Errorf("Deserialize() = %#v, want %#v", row, want)
	}

	invalid := Row{"meta": []byte("{not json")}
	if err := m.Deserialize(invalid); err != nil {
		t.Fatal(err)
	}
	if invalid["meta"] != "{not json" {
		t.Errorf("Deserialize() of invalid JSON = %#v, want the text", invalid["meta"])
	}
	if err := m.Deserialize(Row{"count": "many"}); err == nil {
		t.Error("Deserialize() of a non-numeric integer should fail")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	t.Parallel()
	m := MustNewModel("Product", productSchema())
	tests := []struct {
		name  string
		value interface{}
		want  interface{}
	}{
		{"object", map[string]interface{}{"a": 1}, map[string]interface{}{"a": float64(1)}},
		{"array", []interface{}{"x", 2}, []interface{}{"x", float64(2)}},
		{"number", 1.5, 1.5},
		{"bool", true, true},
		{"string", "hello", "hello"},
		{"quoted string", `"hello"`, "hello"},
		{"empty string", "", ""},
		{"null", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored, err := m.Serialize(Values{"parameters": tt.value})
			if err != nil {
				t.Fatal(err)
			}
			row := Row(stored)
			if err := m.Deserialize(row); err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(row["parameters"], tt.want) {
				t.Errorf("Deserialize(Serialize(%#v)) = %#v, want %#v", tt.value, row["parameters"], tt.want)
			}
		})
	}
}

func TestPermit(t *testing.T) {
	t.Parallel()
	m := MustNewModel("Product", productSchema())
	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"permit", m.Permit("price", "name", "unknown").PermittedFields(), []string{"name", "price"}},
		{"permit nothing", m.Permit().PermittedFields(), []string{}},
		{"all except", m.PermitAllExcept("id", "status").PermittedFields(), []string{"name", "price", "parameters"}},
		{"all", m.PermitAllExcept().PermittedFields(), []string{"id", "name", "price", "parameters", "status"}},
	}
	for _, tt := range tests {
		if !reflect.DeepEqual(tt.got, tt.want) {
			t.Errorf("%s: PermittedFields() = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

type bindFunc func(interface{}) error

func (f bindFunc) Bind(target interface{}) error { return f(target) }

func TestFilter(t *testing.T) {
	t.Parallel()
	m := MustNewModel("Product", productSchema()).Permit("name", "price")

	got := m.Filter(
		map[string]interface{}{"name": "Widget", "id": 1},
		Values{"status": "hidden"},
		`{"price": 10, "id": 2}`,
		[]byte(`not json`),
		strings.NewReader(`{"name": "Gadget"}`),
	)
	want := Values{"name": "Gadget", "price": json.Number("10")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter() = %#v, want %#v", got, want)
	}

	bound, err := m.Bind(bindFunc(func(target interface{}) error {
		return json.Unmarshal([]byte(`{"name": "Widget", "id": 5}`), target)
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(bound, Values{"name": "Widget"}) {
		t.Errorf("Bind() = %#v", bound)
	}
}
