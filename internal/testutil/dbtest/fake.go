//go:build unit || e2e

package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockDBTX satisfies db.DBTX. Expectations are keyed by method and SQL text.
type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	ret := m.Called(ctx, query, args)
	return ret.Get(0).(pgconn.CommandTag), ret.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	ret := m.Called(ctx, query, args)
	rows, _ := ret.Get(0).(pgx.Rows)
	return rows, ret.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	ret := m.Called(ctx, query, args)
	return ret.Get(0).(pgx.Row)
}

// Tag builds a command tag reporting n affected rows.
func Tag(verb string, n int64) pgconn.CommandTag {
	if verb == "INSERT" {
		return pgconn.NewCommandTag(fmt.Sprintf("INSERT 0 %d", n))
	}
	return pgconn.NewCommandTag(fmt.Sprintf("%s %d", verb, n))
}

// Row is a single result row. Values are assigned to scan targets in order.
type Row struct {
	values []any
	err    error
}

func NewRow(values ...any) *Row { return &Row{values: values} }

func ErrRow(err error) *Row { return &Row{err: err} }

func (r *Row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.values, dest)
}

// Rows replays a fixed result set.
type Rows struct {
	data   [][]any
	pos    int
	err    error
	closed bool
}

func NewRows(data ...[]any) *Rows { return &Rows{data: data, pos: -1} }

// FailingRows yields the given rows, then reports err from Err.
func FailingRows(err error, data ...[]any) *Rows {
	return &Rows{data: data, pos: -1, err: err}
}

func (r *Rows) Close()                                       { r.closed = true }
func (r *Rows) Err() error                                   { return r.err }
func (r *Rows) CommandTag() pgconn.CommandTag                { return Tag("SELECT", int64(len(r.data))) }
func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *Rows) RawValues() [][]byte                          { return nil }
func (r *Rows) Conn() *pgx.Conn                              { return nil }
func (r *Rows) Closed() bool                                 { return r.closed }

func (r *Rows) Next() bool {
	if r.closed {
		return false
	}
	r.pos++
	if r.pos >= len(r.data) {
		r.closed = true
		return false
	}
	return true
}

func (r *Rows) Scan(dest ...any) error {
	return assign(r.data[r.pos], dest)
}

func (r *Rows) Values() ([]any, error) {
	return r.data[r.pos], nil
}

func assign(values, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("dbtest: %d values for %d scan targets", len(values), len(dest))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d)
		if target.Kind() != reflect.Pointer || target.IsNil() {
			return fmt.Errorf("dbtest: target %d is not a pointer", i)
		}
		v := values[i]
		if v == nil {
			target.Elem().Set(reflect.Zero(target.Elem().Type()))
			continue
		}
		val := reflect.ValueOf(v)
		if val.Type().AssignableTo(target.Elem().Type()) {
			target.Elem().Set(val)
			continue
		}
		if val.Type().ConvertibleTo(target.Elem().Type()) {
			target.Elem().Set(val.Convert(target.Elem().Type()))
			continue
		}
		if sc, ok := d.(sql.Scanner); ok {
			if err := sc.Scan(v); err != nil {
				return fmt.Errorf("dbtest: target %d: %w", i, err)
			}
			continue
		}
		return fmt.Errorf("dbtest: cannot assign %T to %s", v, target.Elem().Type())
	}
	return nil
}
