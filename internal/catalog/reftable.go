package catalog

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/mstables/pkg/core"
	"github.com/leapstack-labs/mstables/pkg/frame"
)

// RefTable is a reference table indexed by its surrogate key.
// It is immutable once built.
type RefTable struct {
	name  string
	data  *frame.Frame
	keyAt map[int64]int
}

// newRefTable indexes f by keyColumn. Keys must be integers and unique.
func newRefTable(name string, f *frame.Frame, keyColumn string) (*RefTable, error) {
	keys, err := f.Column(keyColumn)
	if err != nil {
		return nil, &core.SchemaError{Table: name, Message: fmt.Sprintf("missing key column %q", keyColumn)}
	}

	keyAt := make(map[int64]int, len(keys))
	for row, raw := range keys {
		key, ok := ToKey(raw)
		if !ok {
			return nil, &core.SchemaError{Table: name, Message: fmt.Sprintf("row %d: key %v is not an integer", row, raw)}
		}
		if prev, dup := keyAt[key]; dup {
			return nil, &core.SchemaError{Table: name, Message: fmt.Sprintf("duplicate key %d in rows %d and %d", key, prev, row)}
		}
		keyAt[key] = row
	}

	// Promote the key to the row index.
	indexed, err := f.SetIndex(keyColumn)
	if err != nil {
		return nil, &core.SchemaError{Table: name, Message: err.Error()}
	}

	return &RefTable{name: name, data: indexed, keyAt: keyAt}, nil
}

// Name returns the source table name.
func (t *RefTable) Name() string {
	return t.name
}

// Len returns the number of rows.
func (t *RefTable) Len() int {
	return t.data.NumRows()
}

// Keys returns every surrogate key in ascending order.
func (t *RefTable) Keys() []int64 {
	keys := make([]int64, 0, len(t.keyAt))
	for k := range t.keyAt {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Has reports whether key is present.
func (t *RefTable) Has(key int64) bool {
	_, ok := t.keyAt[key]
	return ok
}

// Lookup returns the value of column for the row keyed by key. The boolean
// is false when the key is absent; a present key with a nil value returns
// (nil, true).
func (t *RefTable) Lookup(key int64, column string) (any, bool, error) {
	row, ok := t.keyAt[key]
	if !ok {
		return nil, false, nil
	}
	v, err := t.data.Value(row, column)
	if err != nil {
		return nil, false, &core.SchemaError{Table: t.name, Message: err.Error()}
	}
	return v, true, nil
}

// Frame returns a copy of the table with the key promoted to the index.
func (t *RefTable) Frame() *frame.Frame {
	return t.data.Clone()
}

// ToKey converts a scanned key value to a surrogate key. Nil and
// non-integer values report false.
func ToKey(v any) (int64, bool) {
	switch k := v.(type) {
	case int64:
		return k, true
	case int:
		return int64(k), true
	case int32:
		return int64(k), true
	case int16:
		return int64(k), true
	case int8:
		return int64(k), true
	case uint32:
		return int64(k), true
	case uint16:
		return int64(k), true
	case uint8:
		return int64(k), true
	case float64:
		if k == float64(int64(k)) {
			return int64(k), true
		}
	}
	return 0, false
}
