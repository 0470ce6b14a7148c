package myorm

import (
	"context"
	"strconv"
	"sync/atomic"
)

// maxRows is the row count MySQL documents for an offset without a limit.
const maxRows = "18446744073709551615"

type (
	// pipeline is the state shared by all pipelines. A pipeline is
	// configured by its chain methods and executed once by Exec; further
	// Exec calls return ErrPipelineExecuted without sending anything.
	pipeline struct {
		model    *Model
		filter   Filter
		executed atomic.Bool
	}

	sortKey struct {
		field      string
		descending bool
	}

	// FindPipeline fetches the rows matching a filter. Projection, sorting
	// and limits may be configured in any order; the statement is built as
	// SELECT, WHERE, ORDER BY, LIMIT when it is executed.
	FindPipeline struct {
		pipeline
		projection []interface{}
		sorts      []sortKey
		count      int
		skip       int
	}

	// FindOnePipeline fetches the first row matching a filter.
	FindOnePipeline struct {
		find FindPipeline
	}

	// DeletePipeline deletes the rows matching a filter, or only the first
	// one if created by DeleteOne or DeleteById.
	DeletePipeline struct {
		pipeline
		one bool
	}

	// UpdatePipeline sets values on the rows matching a filter, or only on
	// the first one if created by UpdateOne or UpdateById.
	UpdatePipeline struct {
		pipeline
		values Values
		err    error
		one    bool
	}
)

func (p *pipeline) begin() error {
	if p.executed.Swap(true) {
		return ErrPipelineExecuted
	}
	return nil
}

// Executed reports whether Exec has been called.
func (p *pipeline) Executed() bool {
	return p.executed.Load()
}

func newFindPipeline(m *Model, filter Filter) *FindPipeline {
	return &FindPipeline{pipeline: pipeline{model: m, filter: filter}}
}

// Select keeps only fields in the result rows.
func (p *FindPipeline) Select(fields ...string) *FindPipeline {
	p.projection = p.projection[:0]
	for _, f := range fields {
		p.projection = append(p.projection, f)
	}
	return p
}

// Sort orders the rows by field. Calling Sort again adds another sort key.
func (p *FindPipeline) Sort(field string, descending ...bool) *FindPipeline {
	p.sorts = append(p.sorts, sortKey{field, len(descending) > 0 && descending[0]})
	return p
}

// Limit returns at most count rows, after skipping skip rows. A count of 0
// means no limit, so Limit(0, 20) returns every row after the first 20.
func (p *FindPipeline) Limit(count int, skip ...int) *FindPipeline {
	p.count = count
	p.skip = 0
	if len(skip) > 0 {
		p.skip = skip[0]
	}
	return p
}

// SQL builds the statement without executing it.
func (p *FindPipeline) SQL() *SQL {
	s := Select(p.model.collectionName, p.projection...).Where(p.filter)
	for _, k := range p.sorts {
		s.Sort(k.field, k.descending)
	}
	if p.count > 0 {
		s.Limit(p.count, p.skip)
	} else if p.skip > 0 {
		s.text(" LIMIT " + strconv.Itoa(p.skip) + ", " + maxRows)
	}
	return s
}

// Exec runs the statement and returns the deserialized rows.
func (p *FindPipeline) Exec(ctx context.Context) ([]Row, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}
	rows, err := p.SQL().TakeAll(ctx, p.model)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := p.model.Deserialize(row); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

func newFindOnePipeline(m *Model, filter Filter) *FindOnePipeline {
	p := &FindOnePipeline{}
	p.find.model = m
	p.find.filter = filter
	p.find.count = 1
	return p
}

// Select keeps only fields in the result row.
func (p *FindOnePipeline) Select(fields ...string) *FindOnePipeline {
	p.find.Select(fields...)
	return p
}

// Sort orders the candidate rows by field before the first one is taken.
func (p *FindOnePipeline) Sort(field string, descending ...bool) *FindOnePipeline {
	p.find.Sort(field, descending...)
	return p
}

// Skip skips n rows before the first one is taken.
func (p *FindOnePipeline) Skip(n int) *FindOnePipeline {
	p.find.skip = n
	return p
}

// Executed reports whether Exec has been called.
func (p *FindOnePipeline) Executed() bool {
	return p.find.Executed()
}

// SQL builds the statement without executing it.
func (p *FindOnePipeline) SQL() *SQL {
	return p.find.SQL()
}

// Exec runs the statement and returns the deserialized row. If no row
// matches, the row is nil and so is the error.
func (p *FindOnePipeline) Exec(ctx context.Context) (Row, error) {
	if err := p.find.begin(); err != nil {
		return nil, err
	}
	row, err := p.find.SQL().TakeOne(ctx, p.find.model)
	if err != nil || row == nil {
		return nil, err
	}
	if err := p.find.model.Deserialize(row); err != nil {
		return nil, err
	}
	return row, nil
}

func newDeletePipeline(m *Model, filter Filter, one bool) *DeletePipeline {
	return &DeletePipeline{pipeline: pipeline{model: m, filter: filter}, one: one}
}

// SQL builds the statement without executing it.
func (p *DeletePipeline) SQL() *SQL {
	s := Delete(p.model.collectionName).Where(p.filter)
	if p.one {
		s.Limit(1)
	}
	return s
}

// Exec runs the statement and returns the result of the driver, see
// Result.AffectedRows.
func (p *DeletePipeline) Exec(ctx context.Context) (*Result, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}
	return p.SQL().Execute(ctx, p.model)
}

func newUpdatePipeline(m *Model, filter Filter, values Values, one bool) *UpdatePipeline {
	p := &UpdatePipeline{pipeline: pipeline{model: m, filter: filter}, one: one}
	p.values, p.err = m.Serialize(values)
	return p
}

// SQL builds the statement without executing it.
func (p *UpdatePipeline) SQL() *SQL {
	if p.err != nil {
		s := newSQL("")
		s.fail(p.err)
		return s
	}
	s := Update(p.model.collectionName, p.values)
	s.Where(p.filter)
	if p.one {
		s.Limit(1)
	}
	return s
}

// Exec runs the statement and returns the result of the driver, see
// Result.AffectedRows.
func (p *UpdatePipeline) Exec(ctx context.Context) (*Result, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}
	return p.SQL().Execute(ctx, p.model)
}
