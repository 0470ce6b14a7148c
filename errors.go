package myorm

import (
	"errors"
)

var (
	// ErrSchema is returned for malformed or contradictory field specs,
	// for example an enum field without values. Schemas are validated when
	// a Model is created, so these errors surface before any statement is
	// sent to the database.
	ErrSchema = errors.New("invalid schema")

	// ErrUnsupportedOperation is returned while compiling a filter that uses
	// an unknown "$" operator or a nested object that is not an operator
	// object.
	ErrUnsupportedOperation = errors.New("unsupported query operation")

	// ErrInvalidProjection is returned when a projection entry is neither a
	// column name, a Raw expression nor a *SQL subquery.
	ErrInvalidProjection = errors.New("invalid projection")

	// ErrNoValues is returned when an UPDATE has nothing to set.
	ErrNoValues = errors.New("no values")

	ErrNoConnection     = errors.New("no connection")
	ErrPipelineExecuted = errors.New("pipeline already executed")
	ErrNoInsertId       = errors.New("driver returned no insert id")
)

// IsSchemaErr returns true if err is or wraps ErrSchema.
func IsSchemaErr(err error) bool {
	return errors.Is(err, ErrSchema)
}

// IsUnsupportedOperationErr returns true if err is or wraps
// ErrUnsupportedOperation.
func IsUnsupportedOperationErr(err error) bool {
	return errors.Is(err, ErrUnsupportedOperation)
}
