// Package schema describes the fixed layout of an mstables database: table
// names, reference key columns, year-slot vocabularies and the structural
// offsets of the valuation table.
//
// Schema drift is a breaking change. Code that depends on these names
// validates them and fails with a descriptive error instead of guessing.
package schema

import "strings"

// Reference table names.
const (
	TableColHeaders    = "ColHeaders"
	TableTimeRefs      = "TimeRefs"
	TableURLs          = "URLs"
	TableSecurityTypes = "SecurityTypes"
	TableTickers       = "Tickers"
	TableSectors       = "Sectors"
	TableIndustries    = "Industries"
	TableStockStyles   = "StockStyles"
	TableExchanges     = "Exchanges"
	TableCountries     = "Countries"
	TableCompanies     = "Companies"
	TableCurrencies    = "Currencies"
	TableStockTypes    = "StockTypes"
	TableMaster        = "Master"
)

// Base table names, one per view.
const (
	TableQuoteHeader   = "MSheader"
	TableValuation     = "MSvaluation"
	TableFinancials    = "MSfinancials"
	TableFinHealth     = "MSratio_financial"
	TableProfitability = "MSratio_profitability"
	TableGrowth        = "MSratio_growth"
	TableCashFlow      = "MSratio_cashflow"
	TableEfficiency    = "MSratio_efficiency"
	TableAnnualIS      = "MSreport_is_yr"
	TableQuarterlyIS   = "MSreport_is_qt"
	TableAnnualBS      = "MSreport_bs_yr"
	TableQuarterlyBS   = "MSreport_bs_qt"
	TableAnnualCF      = "MSreport_cf_yr"
	TableQuarterlyCF   = "MSreport_cf_qt"
	TablePriceHistory  = "MSpricehistory"
)

// KeyColumn is the surrogate key column of every indexed reference table.
const KeyColumn = "id"

// Reference value columns.
const (
	// DatesColumn holds the calendar label of a time-period code.
	DatesColumn = "dates"
	// HeaderColumn holds the label of a column-header code.
	HeaderColumn = "header"
)

// Missing-value sentinels normalized to nil in TimeRefs.
const (
	SentinelEmpty       = ""
	SentinelPlaceholder = "—" // em dash
)

// CountryRenames maps the ISO code columns of Countries to unambiguous names.
var CountryRenames = map[string]string{
	"a2_iso": "country_c2",
	"a3_un":  "country_c3",
}

// RefTable describes one reference table of the catalog.
type RefTable struct {
	Name string
	// Indexed tables are keyed by KeyColumn.
	Indexed bool
}

// ReferenceTables lists the catalog tables in load order.
var ReferenceTables = []RefTable{
	{Name: TableColHeaders, Indexed: true},
	{Name: TableTimeRefs, Indexed: true},
	{Name: TableURLs, Indexed: true},
	{Name: TableSecurityTypes, Indexed: true},
	{Name: TableTickers, Indexed: true},
	{Name: TableSectors, Indexed: true},
	{Name: TableIndustries, Indexed: true},
	{Name: TableStockStyles, Indexed: true},
	{Name: TableExchanges, Indexed: true},
	{Name: TableCountries, Indexed: true},
	{Name: TableCompanies, Indexed: true},
	{Name: TableCurrencies, Indexed: true},
	{Name: TableStockTypes, Indexed: true},
	{Name: TableMaster, Indexed: false},
}

// KeyRatioSlots are the year-slot columns of MSfinancials, oldest first.
// Y10 is the trailing-twelve-months slot.
var KeyRatioSlots = []string{"Y0", "Y1", "Y2", "Y3", "Y4", "Y5", "Y6", "Y7", "Y8", "Y9", "Y10"}

// KeyRatioDateSlots is the contiguous block of KeyRatioSlots cast to dates.
var KeyRatioDateSlots = KeyRatioSlots[:10]

// CashFlowSlotPrefix marks the year-slot columns of MSratio_cashflow.
const CashFlowSlotPrefix = "cf_Y"

// CashFlowSlots returns the cash-flow year-slot columns in table order.
func CashFlowSlots(columns []string) []string {
	var slots []string
	for _, c := range columns {
		if strings.HasPrefix(c, CashFlowSlotPrefix) {
			slots = append(slots, c)
		}
	}
	return slots
}

// Layout describes a table whose leading columns carry an index and a block
// of year-slot header codes, followed by value columns named
// <prefix><slot>.
type Layout struct {
	// IndexColumns are promoted to the row index.
	IndexColumns []string
	// SlotStart is the position of the first year-slot header column.
	SlotStart int
	// Slots names the year-slot header columns in order.
	Slots []string
	// PrefixLen is the length of the measure prefix on value columns.
	PrefixLen int
}

// SlotEnd is the position just past the last year-slot header column.
func (l Layout) SlotEnd() int {
	return l.SlotStart + len(l.Slots)
}

// ValuationLayout is the layout of MSvaluation: exchange_id, ticker_id,
// Y0..Y10 header codes, then value columns such as "PE_Y3".
var ValuationLayout = Layout{
	IndexColumns: []string{"exchange_id", "ticker_id"},
	SlotStart:    2,
	Slots:        KeyRatioSlots,
	PrefixLen:    3,
}
