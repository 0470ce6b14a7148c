package myorm

import (
	"strconv"
	"strings"
)

// CreateTable creates a CREATE TABLE statement from a schema. Columns are in
// schema order; the schema is used as given, see Schema.WithId(). For each
// field:
//
//	| spec                      | column                                  |
//	|---------------------------|-----------------------------------------|
//	| type string, length 32    | `f` varchar(32)                         |
//	| type enum, values a, b    | `f` enum('a','b')                       |
//	| increment                 | NOT NULL AUTO_INCREMENT                 |
//	| required or default       | NOT NULL                                |
//	| neither                   | NULL DEFAULT NULL                       |
//	| default x                 | DEFAULT 'x'                             |
//	| primary                   | PRIMARY KEY(`f`)                        |
//	| key (if not primary)      | FOREIGN KEY (`f`) REFERENCES `t`(`k`)   |
//	|                           | ON DELETE <rule> ON UPDATE <rule>       |
//
// Missing foreign key rules are NO ACTION. An invalid schema is kept as the
// statement error (see Err()).
func CreateTable(table string, schema *Schema) *SQL {
	s := newSQL("")
	if err := schema.Validate(); err != nil {
		s.fail(err)
		return s
	}
	lines := []string{}
	for _, f := range schema.fields {
		lines = append(lines, columnDefinition(f))
		if f.Primary {
			lines = append(lines, "PRIMARY KEY("+EscapeId(f.Name)+")")
		} else if f.Key != nil {
			lines = append(lines, "FOREIGN KEY ("+EscapeId(f.Name)+") REFERENCES "+
				EscapeId(f.Key.Table)+"("+EscapeId(f.Key.Field)+")"+
				" ON DELETE "+string(f.Key.Delete.orNoAction())+
				" ON UPDATE "+string(f.Key.Update.orNoAction()))
		}
	}
	return s.text("CREATE TABLE " + EscapeId(table) + " (" + strings.Join(lines, ",") + ")")
}

func columnDefinition(f Field) string {
	line := EscapeId(f.Name) + " " + f.Type.SQLType()
	if f.Type == TypeEnum {
		values := make([]string, len(f.Values))
		for i, v := range f.Values {
			values[i] = Escape(v)
		}
		line += "(" + strings.Join(values, ",") + ")"
	} else if f.Length > 0 {
		line += "(" + strconv.Itoa(f.Length) + ")"
	}
	if f.Increment {
		return line + " NOT NULL AUTO_INCREMENT"
	}
	nullable := f.Nullable()
	if nullable {
		line += " NULL"
	} else {
		line += " NOT NULL"
	}
	if f.HasDefault() {
		line += " DEFAULT " + Escape(f.Default)
	} else if nullable {
		line += " DEFAULT NULL"
	}
	return line
}

// DropTable creates a "DROP TABLE IF EXISTS" statement.
func DropTable(table string) *SQL {
	return newSQL("DROP TABLE IF EXISTS " + EscapeId(table))
}
