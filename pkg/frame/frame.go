// Package frame provides the in-memory tabular value produced by table loads
// and view builders.
//
// A Frame holds ordered, named columns and ordered rows. Columns promoted
// with SetIndex move out of Columns/Rows into Index/IndexRows; every row keeps
// its position. All operations return a new Frame and leave the receiver
// untouched.
package frame

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrColumnNotFound is returned when an operation names an unknown column.
	ErrColumnNotFound = errors.New("column not found")

	// ErrDuplicateIndex is returned when promoted index columns do not
	// uniquely identify every row.
	ErrDuplicateIndex = errors.New("duplicate index key")

	// ErrShape is returned when an operation's arguments do not fit the
	// frame's dimensions.
	ErrShape = errors.New("shape mismatch")
)

// Frame is a tabular value.
type Frame struct {
	// Index names the columns promoted to the row index, in order.
	Index []string
	// IndexRows holds the index tuple of each row; nil when Index is empty.
	IndexRows [][]any
	// Columns names the data columns, in order.
	Columns []string
	// Rows holds the data values, one slice per row, aligned with Columns.
	Rows [][]any
}

// New creates a frame from column names and rows.
// The slices are used as given; callers must not modify them afterwards.
func New(columns []string, rows [][]any) *Frame {
	if rows == nil {
		rows = [][]any{}
	}
	return &Frame{Columns: columns, Rows: rows}
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int {
	return len(f.Rows)
}

// NumCols returns the number of data columns (index columns excluded).
func (f *Frame) NumCols() int {
	return len(f.Columns)
}

// ColumnIndex returns the position of the named data column, or -1.
func (f *Frame) ColumnIndex(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named data column exists.
func (f *Frame) HasColumn(name string) bool {
	return f.ColumnIndex(name) >= 0
}

// Column returns a copy of the named column's values in row order.
func (f *Frame) Column(name string) ([]any, error) {
	idx := f.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	values := make([]any, len(f.Rows))
	for i, row := range f.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Value returns the value at the given row of the named column.
func (f *Frame) Value(row int, name string) (any, error) {
	idx := f.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	if row < 0 || row >= len(f.Rows) {
		return nil, fmt.Errorf("%w: row %d out of range [0,%d)", ErrShape, row, len(f.Rows))
	}
	return f.Rows[row][idx], nil
}

// Clone returns a deep copy of the frame's slices. Values are copied by
// assignment.
func (f *Frame) Clone() *Frame {
	out := &Frame{
		Index:   append([]string(nil), f.Index...),
		Columns: append([]string(nil), f.Columns...),
		Rows:    copyRows(f.Rows),
	}
	if f.IndexRows != nil {
		out.IndexRows = copyRows(f.IndexRows)
	}
	return out
}

// Rename returns a frame with data columns renamed according to mapping.
// Names absent from the frame are ignored.
func (f *Frame) Rename(mapping map[string]string) *Frame {
	out := f.Clone()
	for i, c := range out.Columns {
		if to, ok := mapping[c]; ok {
			out.Columns[i] = to
		}
	}
	return out
}

// SetColumns returns a frame whose data columns carry the given names.
func (f *Frame) SetColumns(names []string) (*Frame, error) {
	if len(names) != len(f.Columns) {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrShape, len(names), len(f.Columns))
	}
	out := f.Clone()
	copy(out.Columns, names)
	return out, nil
}

// Drop returns a frame without the named data columns.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	drop := make(map[int]bool, len(names))
	for _, name := range names {
		idx := f.ColumnIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
		}
		drop[idx] = true
	}
	keep := make([]int, 0, len(f.Columns)-len(drop))
	for i := range f.Columns {
		if !drop[i] {
			keep = append(keep, i)
		}
	}
	return f.selectColumns(keep), nil
}

// SliceColumns returns a frame with data columns [start, end).
func (f *Frame) SliceColumns(start, end int) (*Frame, error) {
	if start < 0 || end > len(f.Columns) || start > end {
		return nil, fmt.Errorf("%w: column slice [%d:%d] of %d columns", ErrShape, start, end, len(f.Columns))
	}
	keep := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		keep = append(keep, i)
	}
	return f.selectColumns(keep), nil
}

// AppendColumn returns a frame with a new data column added at the end.
func (f *Frame) AppendColumn(name string, values []any) (*Frame, error) {
	if len(values) != len(f.Rows) {
		return nil, fmt.Errorf("%w: %d values for %d rows", ErrShape, len(values), len(f.Rows))
	}
	out := f.Clone()
	out.Columns = append(out.Columns, name)
	for i := range out.Rows {
		out.Rows[i] = append(out.Rows[i], values[i])
	}
	return out, nil
}

// FilterRows returns a frame holding only rows whose keep flag is true,
// in their original order.
func (f *Frame) FilterRows(keep []bool) (*Frame, error) {
	if len(keep) != len(f.Rows) {
		return nil, fmt.Errorf("%w: %d flags for %d rows", ErrShape, len(keep), len(f.Rows))
	}
	out := &Frame{
		Index:   append([]string(nil), f.Index...),
		Columns: append([]string(nil), f.Columns...),
		Rows:    [][]any{},
	}
	if f.IndexRows != nil {
		out.IndexRows = [][]any{}
	}
	for i, ok := range keep {
		if !ok {
			continue
		}
		out.Rows = append(out.Rows, append([]any(nil), f.Rows[i]...))
		if f.IndexRows != nil {
			out.IndexRows = append(out.IndexRows, append([]any(nil), f.IndexRows[i]...))
		}
	}
	return out, nil
}

// SetIndex promotes the named data columns to the row index, replacing any
// existing index. The promoted tuple must be unique per row.
func (f *Frame) SetIndex(names ...string) (*Frame, error) {
	positions := make([]int, len(names))
	promoted := make(map[int]bool, len(names))
	for i, name := range names {
		idx := f.ColumnIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
		}
		positions[i] = idx
		promoted[idx] = true
	}

	keep := make([]int, 0, len(f.Columns)-len(promoted))
	for i := range f.Columns {
		if !promoted[i] {
			keep = append(keep, i)
		}
	}

	out := f.selectColumns(keep)
	out.Index = append([]string(nil), names...)
	out.IndexRows = make([][]any, len(f.Rows))

	seen := make(map[string]int, len(f.Rows))
	for r, row := range f.Rows {
		key := make([]any, len(positions))
		for i, p := range positions {
			key[i] = row[p]
		}
		fp := fingerprint(key)
		if prev, dup := seen[fp]; dup {
			return nil, fmt.Errorf("%w: rows %d and %d share %s", ErrDuplicateIndex, prev, r, fp)
		}
		seen[fp] = r
		out.IndexRows[r] = key
	}
	return out, nil
}

// Head returns a frame with at most n rows. A non-positive n returns all rows.
func (f *Frame) Head(n int) *Frame {
	if n <= 0 || n >= len(f.Rows) {
		return f.Clone()
	}
	out := f.Clone()
	out.Rows = out.Rows[:n]
	if out.IndexRows != nil {
		out.IndexRows = out.IndexRows[:n]
	}
	return out
}

// selectColumns builds a frame holding the data columns at the given
// positions. The index is carried over.
func (f *Frame) selectColumns(keep []int) *Frame {
	out := &Frame{
		Index:   append([]string(nil), f.Index...),
		Columns: make([]string, len(keep)),
		Rows:    make([][]any, len(f.Rows)),
	}
	for i, k := range keep {
		out.Columns[i] = f.Columns[k]
	}
	for r, row := range f.Rows {
		vals := make([]any, len(keep))
		for i, k := range keep {
			vals[i] = row[k]
		}
		out.Rows[r] = vals
	}
	if f.IndexRows != nil {
		out.IndexRows = copyRows(f.IndexRows)
	}
	return out
}

func copyRows(rows [][]any) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		out[i] = append([]any(nil), row...)
	}
	return out
}

// fingerprint renders an index tuple as a comparable string. Values are
// prefixed with their dynamic type so that 1 and "1" stay distinct.
func fingerprint(key []any) string {
	parts := make([]string, len(key))
	for i, v := range key {
		parts[i] = fmt.Sprintf("%T:%v", v, v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
