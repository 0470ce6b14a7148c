package myorm

import (
	"context"
	"errors"
	"strconv"
)

type (
	// SQL accumulates one statement. It keeps two renditions in step: the
	// statement with "?" placeholders plus its arguments, which is what gets
	// sent to the database, and the same statement with escaped literals,
	// returned by String(). Configuration methods return the SQL itself for
	// chaining. The first compilation error is kept and returned by Err(),
	// Build() and every terminal method, before anything is sent.
	SQL struct {
		sql    string
		raw    string
		args   []interface{}
		sorted bool
		err    error
	}

	// Raw is an SQL expression that will not be escaped or parameterized.
	// Use for expressions like "COUNT(*)" or "NOW()".
	Raw string

	// Querier runs a statement with placeholder arguments. Driver and Model
	// are Queriers.
	Querier interface {
		Query(ctx context.Context, query string, args ...interface{}) (*Result, error)
	}
)

func newSQL(text string) *SQL {
	return &SQL{sql: text, raw: text}
}

func (s *SQL) text(str string) *SQL {
	s.sql += str
	s.raw += str
	return s
}

// value appends a placeholder for v. Subqueries are embedded in parentheses
// and Raw expressions are written as is.
func (s *SQL) value(v interface{}) *SQL {
	switch x := v.(type) {
	case *SQL:
		if x == nil {
			s.fail(errNilSQL)
			return s
		}
		s.text("(")
		s.embed(x)
		return s.text(")")
	case Raw:
		return s.text(string(x))
	}
	s.sql += "?"
	s.raw += Escape(v)
	s.args = append(s.args, v)
	return s
}

func (s *SQL) embed(o *SQL) *SQL {
	s.sql += o.sql
	s.raw += o.raw
	s.args = append(s.args, o.args...)
	s.fail(o.err)
	return s
}

func (s *SQL) prepend(o *SQL) *SQL {
	s.sql = o.sql + s.sql
	s.raw = o.raw + s.raw
	s.args = append(append([]interface{}{}, o.args...), s.args...)
	s.fail(o.err)
	return s
}

func (s *SQL) fail(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

// String returns the statement with values escaped inline.
func (s *SQL) String() string {
	return s.raw
}

// Err returns the first error that occurred while building the statement.
func (s *SQL) Err() error {
	return s.err
}

// Build returns the statement with "?" placeholders and its arguments.
func (s *SQL) Build() (string, []interface{}, error) {
	if s.err != nil {
		return "", nil, s.err
	}
	return s.sql, append([]interface{}{}, s.args...), nil
}

// Perform operations on the chain.
func (s *SQL) Tap(funcs ...func(*SQL) *SQL) *SQL {
	for i := range funcs {
		s = funcs[i](s)
	}
	return s
}

// Adds ORDER BY to the statement. Calling Sort again adds another sort key.
func (s *SQL) Sort(field string, descending ...bool) *SQL {
	if s.sorted {
		s.text(", ")
	} else {
		s.text(" ORDER BY ")
		s.sorted = true
	}
	s.text(EscapeId(field))
	if len(descending) > 0 && descending[0] {
		return s.text(" DESC")
	}
	return s.text(" ASC")
}

// Adds LIMIT to the statement. A non-zero skip is written first, MySQL
// style: Limit(10, 20) adds " LIMIT 20, 10".
func (s *SQL) Limit(count int, skip ...int) *SQL {
	if len(skip) > 0 && skip[0] != 0 {
		return s.text(" LIMIT " + strconv.Itoa(skip[0]) + ", " + strconv.Itoa(count))
	}
	return s.text(" LIMIT " + strconv.Itoa(count))
}

// As wraps the statement as a named derived table: "(...) AS `name`". The
// result can be used as a projection entry or a FROM item of another SQL.
func (s *SQL) As(name string) *SQL {
	s.sql = "(" + s.sql + ") AS " + EscapeId(name)
	s.raw = "(" + s.raw + ") AS " + EscapeId(name)
	return s
}

// Execute sends the statement and returns the result as is.
func (s *SQL) Execute(ctx context.Context, q Querier) (*Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	if q == nil {
		return nil, ErrNoConnection
	}
	return q.Query(ctx, s.sql, s.args...)
}

// TakeAll sends the statement and returns its rows.
func (s *SQL) TakeAll(ctx context.Context, q Querier) ([]Row, error) {
	result, err := s.Execute(ctx, q)
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}

// TakeOne sends the statement and returns its first row, or nil if there are
// no rows.
func (s *SQL) TakeOne(ctx context.Context, q Querier) (Row, error) {
	result, err := s.Execute(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(result.Rows) == 0 {
		return nil, nil
	}
	return result.Rows[0], nil
}

// TakeValue sends the statement and returns the first column of the first
// row, for example the result of COUNT(*). Nil is returned if there are no
// rows.
func (s *SQL) TakeValue(ctx context.Context, q Querier) (interface{}, error) {
	result, err := s.Execute(ctx, q)
	if err != nil {
		return nil, err
	}
	return result.Value(), nil
}

var errNilSQL = errors.New("nil subquery")
