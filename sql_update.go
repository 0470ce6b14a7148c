package myorm

import (
	"fmt"
)

// Update creates an UPDATE statement with a "field=value" assignment for
// every entry of values. Add conditions with Where().
//
//	myorm.Update("products", myorm.Values{"price": 90}).Where(myorm.Filter{"id": 2})
//	// UPDATE `products` SET `price`=90 WHERE `id`=2
func Update(table string, values Values) *SQL {
	s := newSQL("UPDATE " + EscapeId(table) + " SET ")
	if len(values) == 0 {
		s.fail(fmt.Errorf("%w: nothing to update in %s", ErrNoValues, table))
	}
	for i, key := range sortedKeys(values) {
		if i > 0 {
			s.text(",")
		}
		s.text(EscapeId(key) + "=")
		s.value(values[key])
	}
	return s
}
