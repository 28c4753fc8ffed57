package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// FixtureSchema creates a small but complete mstables database.
//
// TimeRefs: ids 1..10 are year ends 2013..2022, 11 is "TTM", 12 holds the
// empty-string sentinel and 13 the placeholder glyph.
const FixtureSchema = `
CREATE TABLE ColHeaders (id INTEGER PRIMARY KEY, header TEXT);
INSERT INTO ColHeaders VALUES (1, 'Revenue'), (2, 'Net Income'), (3, 'Operating Cash Flow');

CREATE TABLE TimeRefs (id INTEGER PRIMARY KEY, dates TEXT);
INSERT INTO TimeRefs VALUES
	(1, '2013-12-31'), (2, '2014-12-31'), (3, '2015-12-31'), (4, '2016-12-31'),
	(5, '2017-12-31'), (6, '2018-12-31'), (7, '2019-12-31'), (8, '2020-12-31'),
	(9, '2021-12-31'), (10, '2022-12-31'), (11, 'TTM'), (12, ''), (13, '—');

CREATE TABLE URLs (id INTEGER PRIMARY KEY, url TEXT);
INSERT INTO URLs VALUES (1, 'https://example.com/quote'), (2, 'https://example.com/ratios');

CREATE TABLE SecurityTypes (id INTEGER PRIMARY KEY, security_type TEXT);
INSERT INTO SecurityTypes VALUES (1, 'Stock'), (2, 'Fund');

CREATE TABLE Tickers (id INTEGER PRIMARY KEY, ticker TEXT);
INSERT INTO Tickers VALUES (1, 'AAPL'), (2, 'MSFT'), (3, 'SHEL');

CREATE TABLE Sectors (id INTEGER PRIMARY KEY, sector TEXT);
INSERT INTO Sectors VALUES (1, 'Technology'), (2, 'Energy');

CREATE TABLE Industries (id INTEGER PRIMARY KEY, industry TEXT);
INSERT INTO Industries VALUES (1, 'Consumer Electronics'), (2, 'Software'), (3, 'Oil & Gas Integrated');

CREATE TABLE StockStyles (id INTEGER PRIMARY KEY, style TEXT);
INSERT INTO StockStyles VALUES (1, 'Large Growth'), (2, 'Large Value');

CREATE TABLE Exchanges (id INTEGER PRIMARY KEY, exchange TEXT, exchange_sym TEXT, country_id INTEGER);
INSERT INTO Exchanges VALUES (1, 'NASDAQ', 'XNAS', 1), (2, 'London Stock Exchange', 'XLON', 2);

CREATE TABLE Countries (id INTEGER PRIMARY KEY, country TEXT, a2_iso TEXT, a3_un TEXT);
INSERT INTO Countries VALUES (1, 'United States', 'US', 'USA'), (2, 'United Kingdom', 'GB', 'GBR');

CREATE TABLE Companies (id INTEGER PRIMARY KEY, company TEXT);
INSERT INTO Companies VALUES (1, 'Apple Inc'), (2, 'Microsoft Corp'), (3, 'Shell PLC');

CREATE TABLE Currencies (id INTEGER PRIMARY KEY, currency TEXT, currency_code TEXT);
INSERT INTO Currencies VALUES (1, 'US Dollar', 'USD'), (2, 'Pound Sterling', 'GBP');

CREATE TABLE StockTypes (id INTEGER PRIMARY KEY, stock_type TEXT);
INSERT INTO StockTypes VALUES (1, 'Common'), (2, 'Preferred');

CREATE TABLE Master (ticker_id INTEGER, exchange_id INTEGER, company_id INTEGER, industry_id INTEGER, sector_id INTEGER, style_id INTEGER);
INSERT INTO Master VALUES (1, 1, 1, 1, 1, 1), (2, 1, 2, 2, 1, 1), (3, 2, 3, 3, 2, 2);

CREATE TABLE MSheader (ticker_id INTEGER, exchange_id INTEGER, last_price REAL, currency_id INTEGER);
INSERT INTO MSheader VALUES (1, 1, 189.5, 1), (2, 1, 402.1, 1), (3, 2, 27.3, 2);

CREATE TABLE MSvaluation (
	exchange_id INTEGER, ticker_id INTEGER,
	Y0 INTEGER, Y1 INTEGER, Y2 INTEGER, Y3 INTEGER, Y4 INTEGER, Y5 INTEGER,
	Y6 INTEGER, Y7 INTEGER, Y8 INTEGER, Y9 INTEGER, Y10 INTEGER,
	PE_Y8 REAL, PE_Y9 REAL, PE_Y10 REAL, PB_Y9 REAL, PB_Y10 REAL
);
INSERT INTO MSvaluation VALUES
	(1, 1, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 24.1, 28.3, 29.0, 40.2, 45.9),
	(1, 2, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 30.5, 34.9, 35.2, 11.8, 12.1),
	(2, 3, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 8.2, 7.9, 8.0, 1.1, 1.2);

CREATE TABLE MSfinancials (
	exchange_id INTEGER, ticker_id INTEGER,
	Y0 INTEGER, Y1 INTEGER, Y2 INTEGER, Y3 INTEGER, Y4 INTEGER, Y5 INTEGER,
	Y6 INTEGER, Y7 INTEGER, Y8 INTEGER, Y9 INTEGER, Y10 INTEGER,
	revenue_Y9 REAL
);
INSERT INTO MSfinancials VALUES
	(1, 1, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 394328.0),
	(1, 2, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 198270.0),
	(2, 3, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 381314.0);

CREATE TABLE MSratio_cashflow (exchange_id INTEGER, ticker_id INTEGER, cf_Y0 INTEGER, cf_Y1 INTEGER, cf_Y2 INTEGER, free_cash_flow REAL);
INSERT INTO MSratio_cashflow VALUES (1, 1, 8, 9, 10, 111443.0), (1, 2, 8, 9, 10, 65149.0), (2, 3, 8, 9, 10, 39787.0);

CREATE TABLE MSratio_financial (exchange_id INTEGER, ticker_id INTEGER, current_ratio REAL);
INSERT INTO MSratio_financial VALUES (1, 1, 0.88), (1, 2, 1.78), (2, 3, 1.37);

CREATE TABLE MSratio_profitability (exchange_id INTEGER, ticker_id INTEGER, gross_margin REAL);
INSERT INTO MSratio_profitability VALUES (1, 1, 43.3), (1, 2, 68.4), (2, 3, 28.1);

CREATE TABLE MSratio_growth (exchange_id INTEGER, ticker_id INTEGER, revenue_growth REAL);
INSERT INTO MSratio_growth VALUES (1, 1, 7.8), (1, 2, 18.0), (2, 3, 47.2);

CREATE TABLE MSratio_efficiency (exchange_id INTEGER, ticker_id INTEGER, asset_turnover REAL);
INSERT INTO MSratio_efficiency VALUES (1, 1, 1.12), (1, 2, 0.55), (2, 3, 0.86);

CREATE TABLE MSreport_is_yr (exchange_id INTEGER, ticker_id INTEGER, Y0 INTEGER, label1 INTEGER, value1 REAL);
INSERT INTO MSreport_is_yr VALUES (1, 1, 10, 1, 394328.0);
CREATE TABLE MSreport_is_qt (exchange_id INTEGER, ticker_id INTEGER, Q0 INTEGER, label1 INTEGER, value1 REAL);
INSERT INTO MSreport_is_qt VALUES (1, 1, 10, 1, 90146.0);
CREATE TABLE MSreport_bs_yr (exchange_id INTEGER, ticker_id INTEGER, Y0 INTEGER, label1 INTEGER, value1 REAL);
INSERT INTO MSreport_bs_yr VALUES (1, 1, 10, 2, 352755.0);
CREATE TABLE MSreport_bs_qt (exchange_id INTEGER, ticker_id INTEGER, Q0 INTEGER, label1 INTEGER, value1 REAL);
INSERT INTO MSreport_bs_qt VALUES (1, 1, 10, 2, 341998.0);
CREATE TABLE MSreport_cf_yr (exchange_id INTEGER, ticker_id INTEGER, Y0 INTEGER, label1 INTEGER, value1 REAL);
INSERT INTO MSreport_cf_yr VALUES (1, 1, 10, 3, 122151.0);
CREATE TABLE MSreport_cf_qt (exchange_id INTEGER, ticker_id INTEGER, Q0 INTEGER, label1 INTEGER, value1 REAL);
INSERT INTO MSreport_cf_qt VALUES (1, 1, 10, 3, 24127.0);

CREATE TABLE MSpricehistory (exchange_id INTEGER, ticker_id INTEGER, date TEXT, close REAL);
INSERT INTO MSpricehistory VALUES (1, 1, '2022-12-30', 129.93), (1, 1, '2022-12-29', 129.61), (1, 2, '2022-12-30', 239.82);
`

// WriteFixture writes FixtureSchema to a new SQLite file in a temporary
// directory, runs any extra statements after it, and returns the file path.
func WriteFixture(t testing.TB, extra ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mstables.sqlite")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open fixture database: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	for _, stmt := range append([]string{FixtureSchema}, extra...) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("failed to build fixture database: %v", err)
		}
	}
	return path
}
