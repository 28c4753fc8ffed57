package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/leapstack-labs/mstables/pkg/frame"
)

// renderFrame writes at most limit rows of f as a table, index columns
// first. A non-positive limit renders every row.
func renderFrame(w io.Writer, f *frame.Frame, limit int) {
	total := f.NumRows()
	if total == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}
	shown := f.Head(limit)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault

	header := make(table.Row, 0, len(f.Index)+len(f.Columns))
	for _, col := range f.Index {
		header = append(header, col)
	}
	for _, col := range f.Columns {
		header = append(header, col)
	}
	t.AppendHeader(header)

	for i, values := range shown.Rows {
		row := make(table.Row, 0, len(header))
		if shown.IndexRows != nil {
			for _, v := range shown.IndexRows[i] {
				row = append(row, formatValue(v))
			}
		}
		for _, v := range values {
			row = append(row, formatValue(v))
		}
		t.AppendRow(row)
	}

	t.Render()
	if shown.NumRows() < total {
		_, _ = fmt.Fprintf(w, "(showing %s of %s rows)\n", humanize.Comma(int64(shown.NumRows())), humanize.Comma(int64(total)))
		return
	}
	_, _ = fmt.Fprintf(w, "(%s rows)\n", humanize.Comma(int64(total)))
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case time.Time:
		return val.Format(time.DateOnly)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
