package views

import (
	"context"

	"github.com/leapstack-labs/mstables/internal/schema"
	"github.com/leapstack-labs/mstables/pkg/frame"
)

// View names.
const (
	ViewQuoteHeader   = "quoteheader"
	ViewValuation     = "valuation"
	ViewKeyRatios     = "keyratios"
	ViewFinHealth     = "finhealth"
	ViewProfitability = "profitability"
	ViewGrowth        = "growth"
	ViewCashFlow      = "cfhealth"
	ViewEfficiency    = "efficiency"
	ViewAnnualIS      = "annual_is"
	ViewQuarterlyIS   = "quarterly_is"
	ViewAnnualBS      = "annual_bs"
	ViewQuarterlyBS   = "quarterly_bs"
	ViewAnnualCF      = "annual_cf"
	ViewQuarterlyCF   = "quarterly_cf"
	ViewPriceHistory  = "pricehistory"
)

// passthrough returns the base table as loaded.
func (b *Builder) passthrough(ctx context.Context, view, table string) (*frame.Frame, error) {
	f, err := b.loader.Table(ctx, table)
	if err != nil {
		return nil, err
	}
	b.record(Stats{View: view, RowsIn: f.NumRows(), RowsOut: f.NumRows()})
	return f, nil
}

// QuoteHeader returns MSheader unchanged.
func (b *Builder) QuoteHeader(ctx context.Context) (*frame.Frame, error) {
	return b.passthrough(ctx, ViewQuoteHeader, schema.TableQuoteHeader)
}

// KeyRatios returns MSfinancials with Y0..Y10 replaced by their period
// labels. Y0..Y9 become dates; Y10 keeps its label.
func (b *Builder) KeyRatios(ctx context.Context) (*frame.Frame, error) {
	f, err := b.loader.Table(ctx, schema.TableFinancials)
	if err != nil {
		return nil, err
	}
	return b.relabelSlots(relabel{
		view:  ViewKeyRatios,
		table: schema.TableFinancials,
		slots: schema.KeyRatioSlots,
		dates: slotSet(schema.KeyRatioDateSlots),
	}, f)
}

// FinHealth returns MSratio_financial unchanged.
func (b *Builder) FinHealth(ctx context.Context) (*frame.Frame, error) {
	return b.passthrough(ctx, ViewFinHealth, schema.TableFinHealth)
}

// Profitability returns MSratio_profitability unchanged.
func (b *Builder) Profitability(ctx context.Context) (*frame.Frame, error) {
	return b.passthrough(ctx, ViewProfitability, schema.TableProfitability)
}

// Growth returns MSratio_growth unchanged.
func (b *Builder) Growth(ctx context.Context) (*frame.Frame, error) {
	return b.passthrough(ctx, ViewGrowth, schema.TableGrowth)
}

// CashFlow returns MSratio_cashflow with every cf_Y column replaced by its
// period date.
func (b *Builder) CashFlow(ctx context.Context) (*frame.Frame, error) {
	f, err := b.loader.Table(ctx, schema.TableCashFlow)
	if err != nil {
		return nil, err
	}
	slots := schema.CashFlowSlots(f.Columns)
	return b.relabelSlots(relabel{
		view:  ViewCashFlow,
		table: schema.TableCashFlow,
		slots: slots,
		dates: slotSet(slots),
	}, f)
}

// Efficiency returns MSratio_efficiency unchanged.
func (b *Builder) Efficiency(ctx context.Context) (*frame.Frame, error) {
	return b.passthrough(ctx, ViewEfficiency, schema.TableEfficiency)
}

func (b *Builder) AnnualIS(ctx context.Context) (*frame.Frame, error) {
	return b.passthrough(ctx, ViewAnnualIS, schema.TableAnnualIS)
}

func (b *Builder) QuarterlyIS(ctx context.Context) (*frame.Frame, error) {
	return b.passthrough(ctx, ViewQuarterlyIS, schema.TableQuarterlyIS)
}

func (b *Builder) AnnualBS(ctx context.Context) (*frame.Frame, error) {
	return b.passthrough(ctx, ViewAnnualBS, schema.TableAnnualBS)
}

func (b *Builder) QuarterlyBS(ctx context.Context) (*frame.Frame, error) {
	return b.passthrough(ctx, ViewQuarterlyBS, schema.TableQuarterlyBS)
}

func (b *Builder) AnnualCF(ctx context.Context) (*frame.Frame, error) {
	return b.passthrough(ctx, ViewAnnualCF, schema.TableAnnualCF)
}

func (b *Builder) QuarterlyCF(ctx context.Context) (*frame.Frame, error) {
	return b.passthrough(ctx, ViewQuarterlyCF, schema.TableQuarterlyCF)
}

// PriceHistory returns MSpricehistory unchanged.
func (b *Builder) PriceHistory(ctx context.Context) (*frame.Frame, error) {
	return b.passthrough(ctx, ViewPriceHistory, schema.TablePriceHistory)
}
