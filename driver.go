package myorm

import (
	"context"
	"strings"

	"github.com/gopsql/db"
)

type (
	// Row maps column names to values of one result row.
	Row map[string]interface{}

	// Result of a statement. Rows and Columns are set for statements that
	// return rows, InsertId and AffectedRows for the others.
	Result struct {
		Columns      []string
		Rows         []Row
		InsertId     int64
		AffectedRows int64
	}

	// Driver runs statements against a database. It is shared by Models
	// and its lifecycle is managed by its creator.
	Driver interface {
		Querier
		// Connect establishes connectivity.
		Connect(ctx context.Context) error
		// DatabaseName returns the name of the active database (schema).
		DatabaseName() string
	}

	// DBConn is the part of db.DB (github.com/gopsql/db) needed to run
	// statements. Any db.DB, like the ones of github.com/gopsql/standard,
	// is a DBConn.
	DBConn interface {
		Query(query string, args ...interface{}) (db.Rows, error)
		Exec(query string, args ...interface{}) (db.Result, error)
	}

	dbDriver struct {
		conn DBConn
		name string
	}
)

// Value returns the first column of the first row, or nil if there are no
// rows.
func (r *Result) Value() interface{} {
	if r == nil || len(r.Rows) == 0 {
		return nil
	}
	if len(r.Columns) > 0 {
		return r.Rows[0][r.Columns[0]]
	}
	if len(r.Rows[0]) == 1 {
		for _, v := range r.Rows[0] {
			return v
		}
	}
	return nil
}

// NewDBDriver creates a Driver from a gopsql connection. Statements that
// return rows (SELECT, SHOW, ...) are run with Query, all others with Exec.
// Byte slice cells are returned as strings.
func NewDBDriver(conn DBConn, databaseName string) Driver {
	return &dbDriver{conn: conn, name: databaseName}
}

func (d *dbDriver) DatabaseName() string {
	return d.name
}

func (d *dbDriver) Connect(ctx context.Context) error {
	_, err := d.Query(ctx, "SELECT 1")
	return err
}

func (d *dbDriver) Query(ctx context.Context, query string, args ...interface{}) (*Result, error) {
	if d.conn == nil {
		return nil, ErrNoConnection
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c, ok := d.conn.(db.ConvertParameters); ok {
		query, args = c.ConvertParameters(query, args)
	}
	if !returnsRows(query) {
		return d.exec(query, args)
	}
	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	result := &Result{Columns: columns, Rows: []Row{}}
	for rows.Next() {
		cells := make([]interface{}, len(columns))
		dests := make([]interface{}, len(columns))
		for i := range cells {
			dests[i] = &cells[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, err
		}
		row := make(Row, len(columns))
		for i, column := range columns {
			if b, ok := cells[i].([]byte); ok {
				row[column] = string(b)
				continue
			}
			row[column] = cells[i]
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (d *dbDriver) exec(query string, args []interface{}) (*Result, error) {
	res, err := d.conn.Exec(query, args...)
	if err != nil {
		return nil, err
	}
	result := &Result{}
	if result.AffectedRows, err = res.RowsAffected(); err != nil {
		return nil, err
	}
	if r, ok := res.(interface{ LastInsertId() (int64, error) }); ok {
		if id, err := r.LastInsertId(); err == nil {
			result.InsertId = id
		}
	}
	return result, nil
}

func returnsRows(query string) bool {
	query = strings.TrimLeft(query, " \t\r\n(")
	end := strings.IndexAny(query, " \t\r\n(")
	if end == -1 {
		end = len(query)
	}
	switch strings.ToUpper(query[:end]) {
	case "SELECT", "SHOW", "DESCRIBE", "DESC", "EXPLAIN", "WITH", "VALUES", "TABLE":
		return true
	}
	return false
}
