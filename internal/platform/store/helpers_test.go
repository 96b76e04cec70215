package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	perr "vidqa/internal/platform/errors"
)

type fakeRowQuerier struct {
	queryRows Rows
	queryErr  error
	scalar    any
}

func (f *fakeRowQuerier) Exec(context.Context, string, ...any) (CommandTag, error) {
	return nil, nil
}

func (f *fakeRowQuerier) Query(context.Context, string, ...any) (Rows, error) {
	return f.queryRows, f.queryErr
}

func (f *fakeRowQuerier) QueryRow(context.Context, string, ...any) Row {
	return scanVal{v: f.scalar}
}

// scanVal forces a single value into the first Scan destination
type scanVal struct{ v any }

func (s scanVal) Scan(dest ...any) error {
	if len(dest) == 0 {
		return nil
	}
	dv := reflect.ValueOf(dest[0])
	if dv.Kind() == reflect.Pointer && dv.Elem().CanSet() {
		dv.Elem().Set(reflect.ValueOf(s.v))
	}
	return nil
}

type fakeRows struct {
	data   [][]any
	idx    int
	err    error
	closed bool
}

func newRows(data [][]any) *fakeRows { return &fakeRows{data: data, idx: -1} }

func (r *fakeRows) Columns() []string { return nil }

func (r *fakeRows) Next() bool {
	if r.err != nil {
		return false
	}
	r.idx++
	return r.idx < len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.idx]
	if len(dest) != len(row) {
		return errors.New("dest len mismatch")
	}
	for i := range dest {
		dv := reflect.ValueOf(dest[i])
		if dv.Kind() != reflect.Pointer || !dv.Elem().CanSet() {
			return errors.New("dest not settable")
		}
		dv.Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Close()     { r.closed = true }

func TestScalar(t *testing.T) {
	f := &fakeRowQuerier{scalar: 7}
	got, err := Scalar[int](context.Background(), f, "select 7")
	if err != nil {
		t.Fatalf("Scalar err: %v", err)
	}
	if got != 7 {
		t.Fatalf("Scalar got %d want 7", got)
	}
}

func scanInt(r Row) (int, error) {
	var x int
	return x, r.Scan(&x)
}

func TestOneSingleRow(t *testing.T) {
	rows := newRows([][]any{{5}})
	f := &fakeRowQuerier{queryRows: rows}

	item, err := One(context.Background(), f, scanInt, "select")
	if err != nil {
		t.Fatalf("One err: %v", err)
	}
	if item != 5 {
		t.Fatalf("One item %d want 5", item)
	}
	if !rows.closed {
		t.Fatalf("rows not closed")
	}
}

func TestOneNotFoundAndTooMany(t *testing.T) {
	f1 := &fakeRowQuerier{queryRows: newRows(nil)}
	if _, err := One(context.Background(), f1, scanInt, "q"); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	f2 := &fakeRowQuerier{queryRows: newRows([][]any{{1}, {2}})}
	if _, err := One(context.Background(), f2, scanInt, "q"); err == nil {
		t.Fatalf("expected error for more than one row")
	}
}

func TestManyCollectsAllRows(t *testing.T) {
	type pair struct {
		Name  string
		Count int
	}
	rows := newRows([][]any{{"grace", 3}, {"faith", 1}})
	f := &fakeRowQuerier{queryRows: rows}

	out, err := Many(context.Background(), f, func(r Row) (pair, error) {
		var p pair
		return p, r.Scan(&p.Name, &p.Count)
	}, "select tags")
	if err != nil {
		t.Fatalf("Many err: %v", err)
	}
	if len(out) != 2 || out[0].Name != "grace" || out[1].Count != 1 {
		t.Fatalf("Many out = %+v", out)
	}
	if !rows.closed {
		t.Fatalf("rows not closed")
	}
}

func TestManyPropagatesErrors(t *testing.T) {
	f := &fakeRowQuerier{queryErr: errors.New("boom")}
	if _, err := Many(context.Background(), f, scanInt, "q"); err == nil {
		t.Fatalf("expected query error")
	}

	f2 := &fakeRowQuerier{queryRows: &fakeRows{idx: -1, err: errors.New("cursor")}}
	if _, err := Many(context.Background(), f2, scanInt, "q"); err == nil {
		t.Fatalf("expected rows error")
	}
}
