package adapter

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/mstables/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseSQLAdapter_Close(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		expectErr bool
	}{
		{
			name:      "close with nil DB",
			setupDB:   false,
			expectErr: false,
		},
		{
			name:      "close with open DB",
			setupDB:   true,
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectClose()
				base.Attach(db, core.StoreConfig{Type: "mock"})
			}

			err := base.Close()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.False(t, base.IsConnected())
		})
	}
}

func TestBaseSQLAdapter_CloseTwice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	base := &BaseSQLAdapter{}
	base.Attach(db, core.StoreConfig{})

	require.NoError(t, base.Close())
	require.NoError(t, base.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBaseSQLAdapter_Query(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		setupMock func(mock sqlmock.Sqlmock)
		sql       string
		expectErr bool
		errMsg    string
	}{
		{
			name:      "query without connection",
			setupDB:   false,
			sql:       "SELECT 1",
			expectErr: true,
			errMsg:    "database connection not established",
		},
		{
			name:    "query success",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "ticker"}).
					AddRow(1, "AAPL").
					AddRow(2, "MSFT")
				mock.ExpectQuery("SELECT").WillReturnRows(rows)
			},
			sql:       `SELECT * FROM "Tickers"`,
			expectErr: false,
		},
		{
			name:    "query with error",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)
			},
			sql:       `SELECT * FROM "Nope"`,
			expectErr: true,
			errMsg:    "failed to execute query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				defer func() { _ = db.Close() }()

				if tt.setupMock != nil {
					tt.setupMock(mock)
				}
				base.Attach(db, core.StoreConfig{})
			}

			rows, err := base.Query(ctx, tt.sql)
			if tt.expectErr {
				require.Error(t, err)
				assert.Nil(t, rows)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				require.NoError(t, err)
				assert.NotNil(t, rows)
				defer func() { _ = rows.Close() }()
			}
		})
	}
}

func TestBaseSQLAdapter_QueryAfterClose(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	base := &BaseSQLAdapter{}
	base.Attach(db, core.StoreConfig{})
	require.NoError(t, base.Close())

	_, err = base.Query(context.Background(), "SELECT 1")
	require.ErrorIs(t, err, core.ErrSessionClosed)
}

func TestBaseSQLAdapter_QuoteIdent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "MSvaluation", want: `"MSvaluation"`},
		{in: "weird\"name", want: `"weird""name"`},
		{in: "", want: `""`},
	}

	base := &BaseSQLAdapter{}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, base.QuoteIdent(tt.in))
		})
	}
}
