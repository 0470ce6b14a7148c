package myorm

import (
	"strings"
	"unicode"
)

// DefaultTableNamer converts a model name to its table name when calling
// NewModel. Default is ToTableName.
var DefaultTableNamer func(string) string = ToTableName

// ToTableName returns the table name of a model name: its plural form in
// snake_case. For example, "ProductType" becomes "product_types" and
// "Address" becomes "addresses".
func ToTableName(name string) string {
	return PascalToSnake(ToPlural(name))
}

// Convert a word to its plural form. Add "es" for "s" or "S" ending, for
// other endings, add "s".
func ToPlural(in string) string {
	if in == "" {
		return ""
	}
	if strings.HasSuffix(in, "s") || strings.HasSuffix(in, "S") {
		return in + "es"
	}
	return in + "s"
}

// PascalToSnake converts a "PascalCase" word to "snake_case". Every
// character that is not lower case starts a new segment unless the previous
// character did too, so runs of capitals collapse into one segment:
// "ProductType" becomes "product_type" and "HTTPServers" becomes
// "httpservers". Digits count as capitals: "Item2" becomes "item_2".
func PascalToSnake(in string) string {
	var out []rune
	lastUpper := false
	for _, r := range in {
		if unicode.ToUpper(r) != r {
			out = append(out, r)
			lastUpper = false
			continue
		}
		if !lastUpper {
			out = append(out, '_')
		}
		out = append(out, unicode.ToLower(r))
		lastUpper = true
	}
	return strings.TrimPrefix(string(out), "_")
}
