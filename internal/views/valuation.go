package views

import (
	"context"
	"fmt"
	"slices"

	"github.com/leapstack-labs/mstables/internal/schema"
	"github.com/leapstack-labs/mstables/pkg/core"
	"github.com/leapstack-labs/mstables/pkg/frame"
)

// Valuation returns MSvaluation reshaped by its year-slot header row.
//
// The slot codes of the first row are resolved to dates and every value
// column is renamed to its measure prefix followed by the date of its slot,
// e.g. "PE_Y3" becomes "PE_2019-12-31". The index columns are promoted and
// the slot columns dropped. Header codes must resolve in every mode.
func (b *Builder) Valuation(ctx context.Context) (*frame.Frame, error) {
	f, err := b.loader.Table(ctx, schema.TableValuation)
	if err != nil {
		return nil, err
	}

	layout := schema.ValuationLayout
	if err := checkLayout(f, layout); err != nil {
		return nil, err
	}

	labels := make(map[string]string, len(layout.Slots))
	for _, slot := range layout.Slots {
		code := f.Rows[0][f.ColumnIndex(slot)]
		label, err := b.catalog.Date(code)
		if err != nil {
			return nil, withView(err, ViewValuation, slot)
		}
		labels[slot] = label
	}

	names := slices.Clone(f.Columns)
	for i := layout.SlotEnd(); i < len(names); i++ {
		col := names[i]
		if len(col) <= layout.PrefixLen {
			return nil, &core.SchemaError{Table: schema.TableValuation, Message: fmt.Sprintf("value column %q has no year slot", col)}
		}
		label, ok := labels[col[layout.PrefixLen:]]
		if !ok {
			return nil, &core.SchemaError{Table: schema.TableValuation, Message: fmt.Sprintf("value column %q names unknown year slot %q", col, col[layout.PrefixLen:])}
		}
		names[i] = col[:layout.PrefixLen] + label
	}

	out, err := f.SetColumns(names)
	if err != nil {
		return nil, err
	}
	if out, err = out.SetIndex(layout.IndexColumns...); err != nil {
		return nil, &core.SchemaError{Table: schema.TableValuation, Message: err.Error()}
	}
	if out, err = out.Drop(layout.Slots...); err != nil {
		return nil, &core.SchemaError{Table: schema.TableValuation, Message: err.Error()}
	}

	b.record(Stats{View: ViewValuation, RowsIn: f.NumRows(), RowsOut: out.NumRows()})
	return out, nil
}

// checkLayout verifies the fixed column positions the reshape depends on.
func checkLayout(f *frame.Frame, l schema.Layout) error {
	fail := func(format string, args ...any) error {
		return &core.SchemaError{Table: schema.TableValuation, Message: fmt.Sprintf(format, args...)}
	}

	if f.NumCols() < l.SlotEnd() {
		return fail("expected at least %d columns, found %d", l.SlotEnd(), f.NumCols())
	}
	for i, name := range l.IndexColumns {
		if f.Columns[i] != name {
			return fail("column %d is %q, expected index column %q", i, f.Columns[i], name)
		}
	}
	for i, slot := range l.Slots {
		if got := f.Columns[l.SlotStart+i]; got != slot {
			return fail("column %d is %q, expected year slot %q", l.SlotStart+i, got, slot)
		}
	}
	if f.NumRows() == 0 {
		return fail("no rows to read year-slot headers from")
	}
	return nil
}
