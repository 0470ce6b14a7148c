package myorm

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// Serialize returns a copy of values ready for storage: every field of the
// schema with the JSON flag is converted to its JSON text. A string that is
// already valid JSON text is stored as is, any other string is encoded as a
// JSON string. Nil stays nil (NULL). Fields not in the schema are copied
// untouched.
func (m Model) Serialize(values Values) (Values, error) {
	out := make(Values, len(values))
	for field, value := range values {
		out[field] = value
		spec, ok := m.schema.Field(field)
		if !ok || !spec.JSON || value == nil {
			continue
		}
		if str, ok := text(value); ok {
			if json.Valid([]byte(str)) {
				out[field] = str
				continue
			}
			value = str
		}
		j, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("serialize %s.%s: %w", m.collectionName, field, err)
		}
		out[field] = string(j)
	}
	return out, nil
}

// Deserialize converts stored values of row in place: JSON fields are
// parsed, integer fields returned as text become int64 and bool fields
// become bool. JSON text that does not parse is kept as a string. Fields
// not in the schema are left untouched.
func (m Model) Deserialize(row Row) error {
	for field, value := range row {
		spec, ok := m.schema.Field(field)
		if !ok || value == nil {
			continue
		}
		var err error
		switch {
		case spec.JSON:
			value = decodeJSON(value)
		case spec.Type.IsInteger():
			if str, ok := text(value); ok {
				value, err = cast.ToInt64E(str)
			}
		case spec.Type == TypeBool:
			if str, ok := text(value); ok {
				value = str
			}
			value, err = cast.ToBoolE(value)
		}
		if err != nil {
			return fmt.Errorf("deserialize %s.%s: %w", m.collectionName, field, err)
		}
		row[field] = value
	}
	return nil
}

func decodeJSON(value interface{}) interface{} {
	str, ok := text(value)
	if !ok {
		return value
	}
	var out interface{}
	if err := json.Unmarshal([]byte(str), &out); err != nil {
		return str
	}
	return out
}

func text(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	}
	return "", false
}
