package myorm

import (
	"fmt"
	"strings"
)

// Select creates a SELECT statement. See (*SQL).Select for projections.
//
//	myorm.Select("products", "id", "name").
//		Where(myorm.Filter{"price": myorm.Lt(10)}).
//		Sort("id", true).
//		Limit(10, 20)
//	// SELECT `id`,`name` FROM `products` WHERE `price`<10 ORDER BY `id` DESC LIMIT 20, 10
func Select(table string, projection ...interface{}) *SQL {
	return newSQL("").Select(table, projection...)
}

// Select puts "SELECT <projection> FROM <table>" in front of the statement,
// so joins, conditions, sorting and limits may be added before or after it.
// Without projection "*" is selected. Projection entries can be column names
// (escaped, unless ending with "*"), Raw expressions or *SQL subqueries
// (embedded as is, see As()).
func (s *SQL) Select(table string, projection ...interface{}) *SQL {
	head := newSQL("SELECT ")
	if len(projection) == 0 {
		head.text("*")
	} else {
		head.projection(projection)
	}
	head.text(" FROM " + EscapeId(table))
	return s.prepend(head)
}

func (s *SQL) projection(fields []interface{}) {
	for i, field := range fields {
		if i > 0 {
			s.text(",")
		}
		switch f := field.(type) {
		case *SQL:
			if f == nil {
				s.fail(fmt.Errorf("%w: %v", ErrInvalidProjection, errNilSQL))
				continue
			}
			s.embed(f)
		case Raw:
			s.text(string(f))
		case string:
			if strings.HasSuffix(f, "*") {
				s.text(f)
			} else {
				s.text(EscapeId(f))
			}
		default:
			s.fail(fmt.Errorf("%w: %T", ErrInvalidProjection, field))
		}
	}
}

// Adds INNER JOIN: " INNER JOIN `foreign` ON `local`.`localField`=`foreign`.`foreignField`".
func (s *SQL) InnerJoin(localTable, localField, foreignTable, foreignField string) *SQL {
	return s.join(" INNER JOIN ", localTable, localField, foreignTable, foreignField)
}

// Adds LEFT JOIN, see InnerJoin.
func (s *SQL) LeftJoin(localTable, localField, foreignTable, foreignField string) *SQL {
	return s.join(" LEFT JOIN ", localTable, localField, foreignTable, foreignField)
}

func (s *SQL) join(kind, localTable, localField, foreignTable, foreignField string) *SQL {
	foreign := EscapeId(foreignTable)
	return s.text(kind + foreign + " ON " +
		EscapeId(localTable) + "." + EscapeId(localField) + "=" +
		foreign + "." + EscapeId(foreignField))
}
