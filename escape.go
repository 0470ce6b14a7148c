package myorm

import (
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// EscapeId quotes an identifier with backticks. Dots separate qualified
// names, so "information_schema.tables" becomes
// `information_schema`.`tables`. Backticks inside names are doubled.
func EscapeId(name string) string {
	return "`" + strings.Replace(strings.Replace(name, "`", "``", -1), ".", "`.`", -1) + "`"
}

// Escape renders a value as a MySQL literal:
//
//	| Go value                  | literal                    |
//	|---------------------------|----------------------------|
//	| nil                       | NULL                       |
//	| bool                      | true / false               |
//	| integers, floats          | 42, 1.5                    |
//	| string                    | 'it\'s'                    |
//	| []byte                    | X'0aff'                    |
//	| time.Time                 | '2006-01-02 15:04:05.000'  |
//	| slice, array              | 'a', 'b'                   |
//	| map with string keys      | `a` = 1, `b` = 'x'         |
//	| driver.Valuer             | escaped result of Value()  |
//
// Statements sent to the database use placeholders; Escape produces the
// literal rendition returned by SQL.String().
func Escape(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case Raw:
		return string(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return escapeString(v)
	case json.Number:
		return v.String()
	case []byte:
		return "X'" + hex.EncodeToString(v) + "'"
	case time.Time:
		return "'" + v.Format("2006-01-02 15:04:05.000") + "'"
	case *time.Time:
		if v == nil {
			return "NULL"
		}
		return Escape(*v)
	case driver.Valuer:
		dv, err := v.Value()
		if err != nil {
			return escapeString(err.Error())
		}
		return Escape(dv)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.String:
		return escapeString(rv.String())
	case reflect.Ptr:
		if rv.IsNil() {
			return "NULL"
		}
		return Escape(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		items := make([]string, rv.Len())
		for i := range items {
			item := rv.Index(i)
			if k := item.Kind(); (k == reflect.Slice || k == reflect.Array) && item.Type().Elem().Kind() != reflect.Uint8 {
				items[i] = "(" + Escape(item.Interface()) + ")"
				continue
			}
			items[i] = Escape(item.Interface())
		}
		return strings.Join(items, ", ")
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = EscapeId(k) + " = " + Escape(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
		}
		return strings.Join(pairs, ", ")
	}
	return escapeString(fmt.Sprint(value))
}

func escapeString(in string) string {
	var b strings.Builder
	b.Grow(len(in) + 2)
	b.WriteByte('\'')
	for i := 0; i < len(in); i++ {
		switch c := in[i]; c {
		case 0:
			b.WriteString(`\0`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\x1a':
			b.WriteString(`\Z`)
		case '"':
			b.WriteString(`\"`)
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
