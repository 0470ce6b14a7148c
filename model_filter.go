package myorm

import (
	"bytes"
	"encoding/json"
	"io"
)

type (
	// ModelWithPermittedFields wraps a Model with a whitelist of fields for
	// mass assignment protection. Create instances using Permit or
	// PermitAllExcept, then use Filter to extract allowed fields from user
	// input.
	ModelWithPermittedFields struct {
		*Model
		permitted []string
	}
)

// Permit creates a ModelWithPermittedFields that only allows the specified
// schema fields in Filter operations. Names not in the schema are ignored.
// If no field names are provided, no fields are permitted.
func (m *Model) Permit(fieldNames ...string) *ModelWithPermittedFields {
	names := map[string]bool{}
	for _, name := range fieldNames {
		names[name] = true
	}
	out := []string{}
	for _, field := range m.schema.Fields() {
		if names[field.Name] {
			out = append(out, field.Name)
		}
	}
	return &ModelWithPermittedFields{m, out}
}

// PermitAllExcept creates a ModelWithPermittedFields that allows all schema
// fields except the specified ones. If no field names are provided, all
// fields (including "id") are permitted.
func (m *Model) PermitAllExcept(fieldNames ...string) *ModelWithPermittedFields {
	names := map[string]bool{}
	for _, name := range fieldNames {
		names[name] = true
	}
	out := []string{}
	for _, field := range m.schema.Fields() {
		if !names[field.Name] {
			out = append(out, field.Name)
		}
	}
	return &ModelWithPermittedFields{m, out}
}

// PermittedFields returns the names of the permitted fields in schema order.
func (m ModelWithPermittedFields) PermittedFields() []string {
	return append([]string{}, m.permitted...)
}

// Bind decodes an HTTP request using a Bind method (compatible with Echo and
// similar frameworks) and returns the permitted fields of it.
//
//	func handler(c echo.Context) error {
//		values, err := products.Permit("name", "price").Bind(c)
//		if err != nil {
//			return err
//		}
//		_, err = products.Create(c.Request().Context(), values)
//		return err
//	}
func (m ModelWithPermittedFields) Bind(ctx interface{ Bind(interface{}) error }) (Values, error) {
	in := map[string]interface{}{}
	if err := ctx.Bind(&in); err != nil {
		return nil, err
	}
	return m.Filter(in), nil
}

// Filter extracts only permitted fields from input data. Accepts Values,
// map[string]interface{}, JSON strings, []byte or io.Reader; input that is not
// a JSON object is ignored. JSON numbers are kept as json.Number. The returned
// Values can be passed to Create or Update.
//
//	values := products.Permit("name", "price").Filter(requestBody)
//
//	// later values override earlier ones
//	values := products.Permit("name").Filter(
//		map[string]interface{}{"name": "Widget"},
//		`{"name": "Gadget"}`,
//	) // name is "Gadget"
func (m ModelWithPermittedFields) Filter(inputs ...interface{}) Values {
	out := Values{}
	for _, input := range inputs {
		switch in := input.(type) {
		case Values:
			m.filterPermits(in, out)
		case map[string]interface{}:
			m.filterPermits(in, out)
		case string:
			m.filterJSON(bytes.NewReader([]byte(in)), out)
		case []byte:
			m.filterJSON(bytes.NewReader(in), out)
		case io.Reader:
			m.filterJSON(in, out)
		}
	}
	return out
}

func (m ModelWithPermittedFields) filterJSON(r io.Reader, out Values) {
	var in map[string]interface{}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if dec.Decode(&in) == nil {
		m.filterPermits(in, out)
	}
}

func (m ModelWithPermittedFields) filterPermits(in map[string]interface{}, out Values) {
	for _, name := range m.permitted {
		if v, ok := in[name]; ok {
			out[name] = v
		}
	}
}
