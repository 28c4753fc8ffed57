package views

import (
	"context"
	"errors"
	"fmt"

	"github.com/leapstack-labs/mstables/internal/schema"
	"github.com/leapstack-labs/mstables/pkg/frame"
)

// ErrUnknownView is returned when a view is requested by an unknown name.
var ErrUnknownView = errors.New("unknown view")

// BuildFunc builds one view.
type BuildFunc func(*Builder, context.Context) (*frame.Frame, error)

// Definition describes a registered view.
type Definition struct {
	Name        string
	Table       string
	Description string
	Build       BuildFunc
}

var definitions = []Definition{
	{ViewQuoteHeader, schema.TableQuoteHeader, "quote header", (*Builder).QuoteHeader},
	{ViewValuation, schema.TableValuation, "valuation multiples by year", (*Builder).Valuation},
	{ViewKeyRatios, schema.TableFinancials, "key ratios by year", (*Builder).KeyRatios},
	{ViewFinHealth, schema.TableFinHealth, "financial health ratios", (*Builder).FinHealth},
	{ViewProfitability, schema.TableProfitability, "profitability ratios", (*Builder).Profitability},
	{ViewGrowth, schema.TableGrowth, "growth ratios", (*Builder).Growth},
	{ViewCashFlow, schema.TableCashFlow, "cash flow ratios by year", (*Builder).CashFlow},
	{ViewEfficiency, schema.TableEfficiency, "efficiency ratios", (*Builder).Efficiency},
	{ViewAnnualIS, schema.TableAnnualIS, "annual income statement", (*Builder).AnnualIS},
	{ViewQuarterlyIS, schema.TableQuarterlyIS, "quarterly income statement", (*Builder).QuarterlyIS},
	{ViewAnnualBS, schema.TableAnnualBS, "annual balance sheet", (*Builder).AnnualBS},
	{ViewQuarterlyBS, schema.TableQuarterlyBS, "quarterly balance sheet", (*Builder).QuarterlyBS},
	{ViewAnnualCF, schema.TableAnnualCF, "annual cash flow statement", (*Builder).AnnualCF},
	{ViewQuarterlyCF, schema.TableQuarterlyCF, "quarterly cash flow statement", (*Builder).QuarterlyCF},
	{ViewPriceHistory, schema.TablePriceHistory, "daily price history", (*Builder).PriceHistory},
}

// Definitions returns every view in registration order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Names returns every view name in registration order.
func Names() []string {
	names := make([]string, len(definitions))
	for i, d := range definitions {
		names[i] = d.Name
	}
	return names
}

// Lookup returns the definition of the named view.
func Lookup(name string) (Definition, bool) {
	for _, d := range definitions {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// Build materializes the named view.
func (b *Builder) Build(ctx context.Context, name string) (*frame.Frame, error) {
	d, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	return d.Build(b, ctx)
}
