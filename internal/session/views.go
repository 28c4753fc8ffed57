package session

import (
	"context"

	"github.com/leapstack-labs/mstables/internal/views"
	"github.com/leapstack-labs/mstables/pkg/frame"
)

// named builds a registered view by name.
func (s *Session) named(ctx context.Context, name string) (*frame.Frame, error) {
	d, _ := views.Lookup(name)
	return s.build(ctx, d)
}

// View methods, one per registered view.

func (s *Session) QuoteHeader(ctx context.Context) (*frame.Frame, error) {
	return s.named(ctx, views.ViewQuoteHeader)
}

func (s *Session) Valuation(ctx context.Context) (*frame.Frame, error) {
	return s.named(ctx, views.ViewValuation)
}

func (s *Session) KeyRatios(ctx context.Context) (*frame.Frame, error) {
	return s.named(ctx, views.ViewKeyRatios)
}

func (s *Session) FinHealth(ctx context.Context) (*frame.Frame, error) {
	return s.named(ctx, views.ViewFinHealth)
}

func (s *Session) Profitability(ctx context.Context) (*frame.Frame, error) {
	return s.named(ctx, views.ViewProfitability)
}

func (s *Session) Growth(ctx context.Context) (*frame.Frame, error) {
	return s.named(ctx, views.ViewGrowth)
}

func (s *Session) CashFlow(ctx context.Context) (*frame.Frame, error) {
	return s.named(ctx, views.ViewCashFlow)
}

func (s *Session) Efficiency(ctx context.Context) (*frame.Frame, error) {
	return s.named(ctx, views.ViewEfficiency)
}

func (s *Session) AnnualIS(ctx context.Context) (*frame.Frame, error) {
	return s.named(ctx, views.ViewAnnualIS)
}

func (s *Session) QuarterlyIS(ctx context.Context) (*frame.Frame, error) {
	return s.named(ctx, views.ViewQuarterlyIS)
}

func (s *Session) AnnualBS(ctx context.Context) (*frame.Frame, error) {
	return s.named(ctx, views.ViewAnnualBS)
}

func (s *Session) QuarterlyBS(ctx context.Context) (*frame.Frame, error) {
	return s.named(ctx, views.ViewQuarterlyBS)
}

func (s *Session) AnnualCF(ctx context.Context) (*frame.Frame, error) {
	return s.named(ctx, views.ViewAnnualCF)
}

func (s *Session) QuarterlyCF(ctx context.Context) (*frame.Frame, error) {
	return s.named(ctx, views.ViewQuarterlyCF)
}

func (s *Session) PriceHistory(ctx context.Context) (*frame.Frame, error) {
	return s.named(ctx, views.ViewPriceHistory)
}
