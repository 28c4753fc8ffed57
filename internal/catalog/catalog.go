// Package catalog loads the reference tables of an mstables database once
// per session and resolves coded values against them.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/mstables/internal/schema"
	"github.com/leapstack-labs/mstables/pkg/core"
	"github.com/leapstack-labs/mstables/pkg/frame"
)

// TableLoader reads a whole table from the backing store.
type TableLoader interface {
	Table(ctx context.Context, name string) (*frame.Frame, error)
}

// Catalog is the read-only set of reference tables of one session.
type Catalog struct {
	tables map[string]*RefTable
	master *frame.Frame
}

// Load reads every reference table in schema.ReferenceTables order.
// TimeRefs sentinels are normalized to nil and the Countries ISO columns are
// renamed before indexing. Master is kept as loaded.
func Load(ctx context.Context, tl TableLoader, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Catalog{tables: make(map[string]*RefTable, len(schema.ReferenceTables))}
	for _, ref := range schema.ReferenceTables {
		f, err := tl.Table(ctx, ref.Name)
		if err != nil {
			return nil, err
		}

		switch ref.Name {
		case schema.TableTimeRefs:
			var n int
			f, n = normalizeSentinels(f)
			if n > 0 {
				logger.Debug("normalized time reference sentinels", slog.Int("count", n))
			}
		case schema.TableCountries:
			f = f.Rename(schema.CountryRenames)
		}

		if !ref.Indexed {
			c.master = f
			continue
		}

		t, err := newRefTable(ref.Name, f, schema.KeyColumn)
		if err != nil {
			return nil, err
		}
		c.tables[ref.Name] = t
	}

	logger.Debug("reference catalog loaded", slog.Int("tables", len(c.tables)))
	return c, nil
}

// normalizeSentinels replaces the missing-value sentinels in every non-key
// column with nil and reports how many cells changed.
func normalizeSentinels(f *frame.Frame) (*frame.Frame, int) {
	out := f.Clone()
	keyIdx := out.ColumnIndex(schema.KeyColumn)
	n := 0
	for _, row := range out.Rows {
		for i, v := range row {
			if i == keyIdx {
				continue
			}
			if s, ok := v.(string); ok && (s == schema.SentinelEmpty || s == schema.SentinelPlaceholder) {
				row[i] = nil
				n++
			}
		}
	}
	return out, n
}

// Get returns the indexed reference table with the given source name.
func (c *Catalog) Get(name string) (*RefTable, bool) {
	t, ok := c.tables[name]
	return t, ok
}

// Names returns the source names of all catalog tables in load order,
// Master included.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(schema.ReferenceTables))
	for _, ref := range schema.ReferenceTables {
		names = append(names, ref.Name)
	}
	return names
}

// Frame returns a copy of the named catalog table.
func (c *Catalog) Frame(name string) (*frame.Frame, error) {
	if name == schema.TableMaster {
		return c.Master(), nil
	}
	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("unknown reference table %q", name)
	}
	return t.Frame(), nil
}

// Master returns a copy of the Master table.
func (c *Catalog) Master() *frame.Frame {
	if c.master == nil {
		return frame.New(nil, nil)
	}
	return c.master.Clone()
}

// Accessors for the indexed reference tables.

func (c *Catalog) ColHeaders() *RefTable    { return c.tables[schema.TableColHeaders] }
func (c *Catalog) TimeRefs() *RefTable      { return c.tables[schema.TableTimeRefs] }
func (c *Catalog) URLs() *RefTable          { return c.tables[schema.TableURLs] }
func (c *Catalog) SecurityTypes() *RefTable { return c.tables[schema.TableSecurityTypes] }
func (c *Catalog) Tickers() *RefTable       { return c.tables[schema.TableTickers] }
func (c *Catalog) Sectors() *RefTable       { return c.tables[schema.TableSectors] }
func (c *Catalog) Industries() *RefTable    { return c.tables[schema.TableIndustries] }
func (c *Catalog) Styles() *RefTable        { return c.tables[schema.TableStockStyles] }
func (c *Catalog) Exchanges() *RefTable     { return c.tables[schema.TableExchanges] }
func (c *Catalog) Countries() *RefTable     { return c.tables[schema.TableCountries] }
func (c *Catalog) Companies() *RefTable     { return c.tables[schema.TableCompanies] }
func (c *Catalog) Currencies() *RefTable    { return c.tables[schema.TableCurrencies] }
func (c *Catalog) StockTypes() *RefTable    { return c.tables[schema.TableStockTypes] }

// Date resolves a time-period code to its date label.
func (c *Catalog) Date(code any) (string, error) {
	return c.label(c.TimeRefs(), code, schema.DatesColumn)
}

// Header resolves a column-header code to its label.
func (c *Catalog) Header(code any) (string, error) {
	return c.label(c.ColHeaders(), code, schema.HeaderColumn)
}

// label resolves code through t. Failures are *core.ResolutionError values
// with Column set to the reference column; callers fill in View and the
// coded column.
func (c *Catalog) label(t *RefTable, code any, column string) (string, error) {
	if code == nil {
		return "", &core.ResolutionError{Column: column, Key: code, Reason: core.ReasonNullKey}
	}
	key, ok := ToKey(code)
	if !ok {
		return "", &core.ResolutionError{Column: column, Key: code, Reason: core.ReasonMissingKey}
	}
	v, found, err := t.Lookup(key, column)
	if err != nil {
		return "", err
	}
	if !found {
		return "", &core.ResolutionError{Column: column, Key: code, Reason: core.ReasonMissingKey}
	}

	switch val := v.(type) {
	case nil:
		return "", &core.ResolutionError{Column: column, Key: code, Reason: core.ReasonAbsent}
	case string:
		return val, nil
	case time.Time:
		return val.Format(time.DateOnly), nil
	default:
		return fmt.Sprint(val), nil
	}
}
