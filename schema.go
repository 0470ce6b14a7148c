package myorm

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

type (
	// FieldType is the declared type of a schema field. Types map to MySQL
	// column types by name, except TypeString which becomes varchar.
	FieldType string

	// Rule is a referential action of a foreign key.
	Rule string

	// FieldSpec describes one column. It is decoded from YAML or JSON with
	// the keys type, length, required, default, primary, increment, values,
	// key and json.
	FieldSpec struct {
		Type      FieldType   `yaml:"type" json:"type"`
		Length    int         `yaml:"length,omitempty" json:"length,omitempty"`
		Required  bool        `yaml:"required,omitempty" json:"required,omitempty"`
		Default   interface{} `yaml:"default,omitempty" json:"default,omitempty"`
		Primary   bool        `yaml:"primary,omitempty" json:"primary,omitempty"`
		Increment bool        `yaml:"increment,omitempty" json:"increment,omitempty"`
		Values    []string    `yaml:"values,omitempty" json:"values,omitempty"` // enum values
		Key       *ForeignKey `yaml:"key,omitempty" json:"key,omitempty"`
		JSON      bool        `yaml:"json,omitempty" json:"json,omitempty"` // stored as JSON text
	}

	ForeignKey struct {
		Table  string `yaml:"table" json:"table"`
		Field  string `yaml:"field" json:"field"`
		Delete Rule   `yaml:"delete,omitempty" json:"delete,omitempty"`
		Update Rule   `yaml:"update,omitempty" json:"update,omitempty"`
	}

	// Field is a named FieldSpec.
	Field struct {
		Name string
		FieldSpec
	}

	// Schema is an ordered list of fields. Column order in generated DDL is
	// the order of the fields.
	Schema struct {
		fields []Field
		index  map[string]int
	}
)

const (
	TypeString    FieldType = "string"
	TypeChar      FieldType = "char"
	TypeText      FieldType = "text"
	TypeInt       FieldType = "int"
	TypeTinyInt   FieldType = "tinyint"
	TypeSmallInt  FieldType = "smallint"
	TypeBigInt    FieldType = "bigint"
	TypeFloat     FieldType = "float"
	TypeDouble    FieldType = "double"
	TypeDecimal   FieldType = "decimal"
	TypeBool      FieldType = "bool"
	TypeJSON      FieldType = "json"
	TypeEnum      FieldType = "enum"
	TypeDate      FieldType = "date"
	TypeDateTime  FieldType = "datetime"
	TypeTimestamp FieldType = "timestamp"
	TypeTime      FieldType = "time"
)

const (
	NoAction   Rule = "NO ACTION"
	Restrict   Rule = "RESTRICT"
	Cascade    Rule = "CASCADE"
	SetNull    Rule = "SET NULL"
	SetDefault Rule = "SET DEFAULT"
)

var fieldTypes = map[FieldType]bool{
	TypeString: true, TypeChar: true, TypeText: true,
	TypeInt: true, TypeTinyInt: true, TypeSmallInt: true, TypeBigInt: true,
	TypeFloat: true, TypeDouble: true, TypeDecimal: true, TypeBool: true,
	TypeJSON: true, TypeEnum: true,
	TypeDate: true, TypeDateTime: true, TypeTimestamp: true, TypeTime: true,
}

var rules = map[Rule]bool{
	NoAction: true, Restrict: true, Cascade: true, SetNull: true, SetDefault: true,
}

// SQLType returns the MySQL column type of the field type.
func (t FieldType) SQLType() string {
	if t == TypeString {
		return "varchar"
	}
	return string(t)
}

// IsInteger reports whether values of the type are integers.
func (t FieldType) IsInteger() bool {
	switch t {
	case TypeInt, TypeTinyInt, TypeSmallInt, TypeBigInt:
		return true
	}
	return false
}

func (r Rule) normalize() Rule {
	return Rule(strings.ToUpper(strings.TrimSpace(string(r))))
}

func (r Rule) orNoAction() Rule {
	if r == "" {
		return NoAction
	}
	return r.normalize()
}

// HasDefault reports whether the spec declares a usable default. Zero
// values (0, "", false) count as no default, so such columns stay nullable
// unless required.
func (f FieldSpec) HasDefault() bool {
	return !isZeroLiteral(f.Default)
}

// Nullable reports whether the column accepts NULL: it is neither required
// nor has a default.
func (f FieldSpec) Nullable() bool {
	return !f.Required && !f.HasDefault()
}

// Validate checks the spec for contradictions. Errors wrap ErrSchema.
func (f FieldSpec) Validate(name string) error {
	if name == "" {
		return fmt.Errorf("%w: field without name", ErrSchema)
	}
	if f.Type == "" {
		return fmt.Errorf("%w: field %q has no type", ErrSchema, name)
	}
	if !fieldTypes[f.Type] {
		return fmt.Errorf("%w: field %q has unknown type %q", ErrSchema, name, f.Type)
	}
	if f.Length < 0 {
		return fmt.Errorf("%w: field %q has negative length", ErrSchema, name)
	}
	if f.Type == TypeEnum {
		if len(f.Values) == 0 {
			return fmt.Errorf("%w: enum field %q has no values", ErrSchema, name)
		}
		if f.Length > 0 {
			return fmt.Errorf("%w: enum field %q cannot have a length", ErrSchema, name)
		}
	} else if len(f.Values) > 0 {
		return fmt.Errorf("%w: field %q of type %q cannot have enum values", ErrSchema, name, f.Type)
	}
	if f.Type == TypeString && f.Length == 0 {
		return fmt.Errorf("%w: string field %q needs a length", ErrSchema, name)
	}
	if f.Increment && !f.Type.IsInteger() {
		return fmt.Errorf("%w: auto increment field %q must be an integer", ErrSchema, name)
	}
	if f.Key != nil {
		if f.Key.Table == "" || f.Key.Field == "" {
			return fmt.Errorf("%w: foreign key of field %q needs table and field", ErrSchema, name)
		}
		for _, r := range []Rule{f.Key.Delete, f.Key.Update} {
			if r != "" && !rules[r.normalize()] {
				return fmt.Errorf("%w: foreign key of field %q has unknown rule %q", ErrSchema, name, r)
			}
		}
	}
	if f.HasDefault() {
		switch reflect.ValueOf(f.Default).Kind() {
		case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Func, reflect.Chan:
			if _, ok := f.Default.([]byte); !ok {
				return fmt.Errorf("%w: default of field %q must be a literal", ErrSchema, name)
			}
		}
	}
	return nil
}

// NewSchema creates a schema from fields in column order.
func NewSchema(fields ...Field) *Schema {
	s := &Schema{index: map[string]int{}}
	for _, f := range fields {
		s.add(f)
	}
	return s
}

// ParseSchema parses a YAML or JSON mapping from field name to field spec.
// Field order of the document is kept.
//
//	name:
//	  type: string
//	  length: 32
//	  required: true
//	status:
//	  type: enum
//	  values: [enabled, hidden, disabled]
//	  default: enabled
func ParseSchema(data []byte) (*Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: schema must be a mapping of field names to specs", ErrSchema)
	}
	s := NewSchema()
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		var spec FieldSpec
		if err := root.Content[i+1].Decode(&spec); err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrSchema, name, err)
		}
		if _, ok := s.index[name]; ok {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrSchema, name)
		}
		s.add(Field{Name: name, FieldSpec: spec})
	}
	return s, nil
}

func (s *Schema) add(f Field) {
	if _, ok := s.index[f.Name]; !ok {
		s.index[f.Name] = len(s.fields)
	}
	s.fields = append(s.fields, f)
}

// Fields returns the fields in column order.
func (s *Schema) Fields() []Field {
	return append([]Field{}, s.fields...)
}

// Field returns the spec of the named field.
func (s *Schema) Field(name string) (FieldSpec, bool) {
	if s == nil {
		return FieldSpec{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return s.fields[i].FieldSpec, true
}

func (s *Schema) Len() int {
	return len(s.fields)
}

// Validate checks every field and rejects duplicate names.
func (s *Schema) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: no schema", ErrSchema)
	}
	seen := map[string]bool{}
	for _, f := range s.fields {
		if seen[f.Name] {
			return fmt.Errorf("%w: duplicate field %q", ErrSchema, f.Name)
		}
		seen[f.Name] = true
		if err := f.Validate(f.Name); err != nil {
			return err
		}
	}
	return nil
}

// WithId returns the schema itself if it has an "id" field. Otherwise a copy
// with an auto increment integer primary key "id" as first field is
// returned.
func (s *Schema) WithId() *Schema {
	if _, ok := s.index["id"]; ok {
		return s
	}
	return NewSchema(append([]Field{{
		Name:      "id",
		FieldSpec: FieldSpec{Type: TypeInt, Primary: true, Increment: true},
	}}, s.fields...)...)
}

func isZeroLiteral(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || f != f
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
