package views

import (
	"errors"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/leapstack-labs/mstables/pkg/core"
	"github.com/leapstack-labs/mstables/pkg/frame"
)

// relabel describes a time-period relabel of a base table.
type relabel struct {
	view  string
	table string
	// slots are resolved in order and appended after the other columns.
	slots []string
	// dates is the subset of slots cast to time.Time.
	dates map[string]bool
}

// relabelSlots resolves every slot column of f through TimeRefs. Each slot column
// is removed and its resolved values are appended under the same name.
func (b *Builder) relabelSlots(r relabel, f *frame.Frame) (*frame.Frame, error) {
	if len(r.slots) == 0 {
		return nil, &core.SchemaError{Table: r.table, Message: "no year-slot columns"}
	}

	stats := Stats{View: r.view, RowsIn: f.NumRows()}
	keep := make([]bool, f.NumRows())
	for i := range keep {
		keep[i] = true
	}

	resolved := make([][]any, len(r.slots))
	for s, slot := range r.slots {
		codes, err := f.Column(slot)
		if err != nil {
			return nil, &core.SchemaError{Table: r.table, Message: fmt.Sprintf("missing year-slot column %q", slot)}
		}

		values := make([]any, len(codes))
		for row, code := range codes {
			v, err := b.resolveSlot(r, slot, code)
			if err == nil {
				values[row] = v
				continue
			}
			var resErr *core.ResolutionError
			if b.mode != ModeDrop || !errors.As(err, &resErr) {
				return nil, err
			}
			if stats.Dropped == nil {
				stats.Dropped = map[string]int{}
			}
			stats.Dropped[slot]++
			keep[row] = false
		}
		resolved[s] = values
	}

	out, err := f.Drop(r.slots...)
	if err != nil {
		return nil, &core.SchemaError{Table: r.table, Message: err.Error()}
	}
	for s, slot := range r.slots {
		if out, err = out.AppendColumn(slot, resolved[s]); err != nil {
			return nil, err
		}
	}
	if out, err = out.FilterRows(keep); err != nil {
		return nil, err
	}

	stats.RowsOut = out.NumRows()
	b.record(stats)
	return out, nil
}

// resolveSlot resolves one time-period code, casting the label to a date
// when the slot requires it.
func (b *Builder) resolveSlot(r relabel, slot string, code any) (any, error) {
	label, err := b.catalog.Date(code)
	if err != nil {
		return nil, withView(err, r.view, slot)
	}
	if !r.dates[slot] {
		return label, nil
	}
	t, err := parseDate(label)
	if err != nil {
		return nil, &core.ResolutionError{View: r.view, Column: slot, Key: code, Reason: core.ReasonBadDate}
	}
	return t, nil
}

// withView fills in the view and coded column of a catalog resolution error.
func withView(err error, view, column string) error {
	var resErr *core.ResolutionError
	if !errors.As(err, &resErr) {
		return err
	}
	out := *resErr
	out.View = view
	out.Column = column
	return &out
}

func parseDate(label string) (time.Time, error) {
	return dateparse.ParseIn(label, time.UTC)
}

func slotSet(slots []string) map[string]bool {
	set := make(map[string]bool, len(slots))
	for _, s := range slots {
		set[s] = true
	}
	return set
}
