package myorm

// Delete creates a DELETE statement. Add conditions with Where().
//
//	myorm.Delete("products").Where(myorm.Filter{"id": 2}).Limit(1)
//	// DELETE FROM `products` WHERE `id`=2 LIMIT 1
func Delete(table string) *SQL {
	return newSQL("DELETE FROM " + EscapeId(table))
}
