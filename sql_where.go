package myorm

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type (
	// Filter describes a WHERE condition: a map from field name to either a
	// literal (equality) or an operator object such as Filter{"$lt": 10}.
	// Entries are combined with AND, in sorted field order.
	//
	//	myorm.Filter{"price": myorm.Lt(10), "status": "enabled"}
	//	// `price`<10 AND `status`='enabled'
	//
	// A nil value matches NULL and a slice matches any of its items:
	//
	//	myorm.Filter{"deleted_at": nil, "id": []int{1, 2}}
	//	// `deleted_at` IS NULL AND `id` IN (1,2)
	Filter map[string]interface{}

	// Operator is a comparison operator of a filter operator object.
	Operator int
)

const (
	OpLt Operator = iota + 1
	OpLte
	OpGt
	OpGte
	OpNe
)

const operatorSigil = "$"

var operators = map[string]Operator{
	"$lt":  OpLt,
	"$lte": OpLte,
	"$gt":  OpGt,
	"$gte": OpGte,
	"$ne":  OpNe,
}

// Key returns the filter key of the operator, like "$lt".
func (op Operator) Key() string {
	switch op {
	case OpLt:
		return "$lt"
	case OpLte:
		return "$lte"
	case OpGt:
		return "$gt"
	case OpGte:
		return "$gte"
	case OpNe:
		return "$ne"
	}
	return ""
}

// Symbol returns the SQL comparison symbol of the operator, like "<".
func (op Operator) Symbol() string {
	switch op {
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpNe:
		return "<>"
	}
	return ""
}

func (op Operator) String() string {
	return op.Key()
}

// Operator objects for a single comparison.
func Lt(value interface{}) Filter  { return Filter{"$lt": value} }
func Lte(value interface{}) Filter { return Filter{"$lte": value} }
func Gt(value interface{}) Filter  { return Filter{"$gt": value} }
func Gte(value interface{}) Filter { return Filter{"$gte": value} }
func Ne(value interface{}) Filter  { return Filter{"$ne": value} }

// ParseFilter parses a filter from YAML or JSON, like
// {"price": {"$lt": 10}, "status": "enabled"}.
func ParseFilter(data []byte) (Filter, error) {
	var f Filter
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f, nil
}

// Where adds " WHERE <conditions>" to the statement. Nothing is added for an
// empty filter. If table is given, fields are qualified with it.
func (s *SQL) Where(filter Filter, table ...string) *SQL {
	var t string
	if len(table) > 0 {
		t = table[0]
	}
	where, err := CompileWhere(filter, t)
	if err != nil {
		s.fail(err)
		return s
	}
	if where.sql == "" {
		return s
	}
	s.text(" WHERE ")
	return s.embed(where)
}

// CompileWhere compiles a filter to the conditions of a WHERE clause,
// without the WHERE keyword. The result is empty for an empty filter.
// Errors wrap ErrUnsupportedOperation.
//
// A nested object may only hold operators; each operator compares the field
// again, so {"price": {"$gt": 1, "$lt": 10}} becomes
// `price`>1 AND `price`<10.
func CompileWhere(filter Filter, table string) (*SQL, error) {
	out := newSQL("")
	prefix := ""
	if table != "" {
		prefix = EscapeId(table) + "."
	}
	first := true
	for _, field := range sortedKeys(filter) {
		if strings.HasPrefix(field, operatorSigil) {
			return nil, fmt.Errorf("%w: operator %q has no field", ErrUnsupportedOperation, field)
		}
		if !first {
			out.text(" AND ")
		}
		first = false
		target := prefix + EscapeId(field)
		value := filter[field]
		if ops, ok := asObject(value); ok {
			if err := compileOperators(out, target, ops); err != nil {
				return nil, err
			}
			continue
		}
		if err := compare(out, target, "=", value); err != nil {
			return nil, err
		}
	}
	if out.err != nil {
		return nil, out.err
	}
	return out, nil
}

func compileOperators(out *SQL, target string, ops map[string]interface{}) error {
	if len(ops) == 0 {
		return fmt.Errorf("%w: empty operator object for %s", ErrUnsupportedOperation, target)
	}
	for i, key := range sortedKeys(ops) {
		op, ok := operators[key]
		if !ok {
			if !strings.HasPrefix(key, operatorSigil) {
				return fmt.Errorf("%w: nested field %q in %s", ErrUnsupportedOperation, key, target)
			}
			return fmt.Errorf("%w: query operation %q not supported", ErrUnsupportedOperation, key)
		}
		if i > 0 {
			out.text(" AND ")
		}
		if err := compare(out, target, op.Symbol(), ops[key]); err != nil {
			return err
		}
	}
	return nil
}

func compare(out *SQL, target, symbol string, value interface{}) error {
	if value == nil {
		switch symbol {
		case "=":
			out.text(target + " IS NULL")
		case "<>":
			out.text(target + " IS NOT NULL")
		default:
			out.text(target + symbol + "NULL")
		}
		return nil
	}
	if items, ok := asList(value); ok {
		var in string
		switch symbol {
		case "=":
			in = " IN ("
		case "<>":
			in = " NOT IN ("
		default:
			return fmt.Errorf("%w: list operand for %q on %s", ErrUnsupportedOperation, symbol, target)
		}
		out.text(target + in)
		if len(items) == 0 {
			out.text("NULL")
		}
		for i, item := range items {
			if i > 0 {
				out.text(",")
			}
			out.value(item)
		}
		out.text(")")
		return nil
	}
	out.text(target + symbol)
	out.value(value)
	return nil
}

func asObject(value interface{}) (map[string]interface{}, bool) {
	switch v := value.(type) {
	case Filter:
		return v, true
	case map[string]interface{}:
		return v, true
	case Values:
		return v, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]interface{}, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func asList(value interface{}) ([]interface{}, bool) {
	if _, ok := value.([]byte); ok {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]interface{}, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
