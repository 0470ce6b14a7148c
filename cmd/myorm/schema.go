package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gopsql/myorm"
)

type schemaFile struct {
	path   string
	model  string
	schema *myorm.Schema
}

// readSchemas parses every schema file. If model is set, it names the model
// of the only file; otherwise names come from the file names.
func readSchemas(paths []string, model string) ([]schemaFile, error) {
	if model != "" && len(paths) > 1 {
		return nil, fmt.Errorf("--model needs exactly one schema file, got %d", len(paths))
	}
	files := make([]schemaFile, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		schema, err := myorm.ParseSchema(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		name := model
		if name == "" {
			name = modelName(path)
		}
		files = append(files, schemaFile{path: path, model: name, schema: schema})
	}
	return files, nil
}

// modelName converts a file name like "product_type.yaml" to "ProductType".
func modelName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	var b strings.Builder
	upper := true
	for _, r := range base {
		if r == '_' || r == '-' || r == ' ' || r == '.' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
