package myorm

// Values maps column names to values for INSERT and UPDATE statements.
// Columns are written in sorted order.
type Values map[string]interface{}

// Insert creates an INSERT statement with all columns and values of values
// in one pass.
//
//	myorm.Insert("products", myorm.Values{"name": "Widget", "price": 100})
//	// INSERT INTO `products` (`name`,`price`) VALUES ('Widget',100)
func Insert(table string, values Values) *SQL {
	keys := sortedKeys(values)
	s := newSQL("INSERT INTO " + EscapeId(table) + " (")
	for i, key := range keys {
		if i > 0 {
			s.text(",")
		}
		s.text(EscapeId(key))
	}
	s.text(") VALUES (")
	for i, key := range keys {
		if i > 0 {
			s.text(",")
		}
		s.value(values[key])
	}
	return s.text(")")
}
