package ledger

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ewallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
)

func TestEncodeTransactions_WireShape(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 500, time.FixedZone("BRT", -3*3600))
	encoded, err := EncodeTransactions([]entity.Transaction{{
		ID:        "t1",
		Amount:    decimal.RequireFromString("12.50"),
		Title:     "Groceries",
		Type:      entity.TransactionTypeExpense,
		Category:  "1",
		Date:      at,
		Synced:    false,
		CreatedAt: at,
		UpdatedAt: at,
	}})
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal([]byte(encoded), &raw))
	require.Len(t, raw, 1)

	record := raw[0]
	assert.Equal(t, "t1", record["id"])
	assert.Equal(t, 12.5, record["amount"], "amounts are JSON numbers")
	assert.Equal(t, "expense", record["type"])
	assert.Equal(t, "2025-06-01T15:00:00.0000005Z", record["date"])
	assert.Equal(t, false, record["synced"])
	assert.NotContains(t, record, "notes", "empty notes are omitted")
	assert.Contains(t, record, "createdAt")
	assert.Contains(t, record, "updatedAt")
}

func TestDecodeTransactions(t *testing.T) {
	t.Run("rejects a payload that is not an array", func(t *testing.T) {
		_, _, err := DecodeTransactions(`{"id":"x"}`)
		require.Error(t, err)
	})

	t.Run("accepts date-only values", func(t *testing.T) {
		transactions, skipped, err := DecodeTransactions(`[{"id":"a","amount":"3","title":"T","type":"income","category":"9","date":"2024-02-29","synced":true,"createdAt":"2024-02-29","updatedAt":"2024-02-29T08:00:00Z"}]`)
		require.NoError(t, err)
		assert.Empty(t, skipped)
		require.Len(t, transactions, 1)
		assert.True(t, transactions[0].Date.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
		assert.True(t, transactions[0].Synced)
	})

	t.Run("reports why each record was skipped", func(t *testing.T) {
		_, skipped, err := DecodeTransactions(`[
			{"id":"","amount":1,"title":"T","type":"income","category":"9","date":"2024-01-01","createdAt":"2024-01-01","updatedAt":"2024-01-01"},
			{"id":"b","title":"T","type":"income","category":"9","date":"2024-01-01","createdAt":"2024-01-01","updatedAt":"2024-01-01"},
			{"id":"c","amount":1,"title":"T","type":"refund","category":"9","date":"2024-01-01","createdAt":"2024-01-01","updatedAt":"2024-01-01"},
			{"id":"d","amount":1,"title":"T","type":"income","category":"9","date":"","createdAt":"2024-01-01","updatedAt":"2024-01-01"}
		]`)
		require.NoError(t, err)
		require.Len(t, skipped, 4)

		assert.True(t, errors.Is(skipped[0], domainerror.ErrInvalidTransactionID))
		assert.True(t, errors.Is(skipped[1], domainerror.ErrInvalidTransactionAmount))
		assert.True(t, errors.Is(skipped[2], domainerror.ErrInvalidTransactionType))
		assert.True(t, errors.Is(skipped[3], domainerror.ErrInvalidTransactionDate))
		assert.Equal(t, 3, skipped[3].Index)
		assert.Equal(t, "d", skipped[3].ID)
	})
}

func TestBudgetsCodec(t *testing.T) {
	budgets := []entity.Budget{
		{ID: "b1", CategoryID: "1", Amount: decimal.NewFromInt(300), Period: entity.BudgetPeriodMonthly, Spent: decimal.RequireFromString("42.10")},
		{ID: "b2", CategoryID: "3", Amount: decimal.NewFromInt(80), Period: entity.BudgetPeriodWeekly},
	}
	encoded, err := EncodeBudgets(budgets)
	require.NoError(t, err)

	decoded, skipped, err := DecodeBudgets(encoded)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, decoded, 2)
	assert.True(t, decoded[0].Spent.Equal(decimal.RequireFromString("42.10")))
	assert.True(t, decoded[1].Spent.IsZero())

	decoded, skipped, err = DecodeBudgets(`[{"id":"b3","categoryId":"1","amount":10,"period":"hourly"},{"id":"b4","categoryId":"1","amount":10,"period":"yearly"}]`)
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	assert.True(t, errors.Is(skipped[0], domainerror.ErrInvalidBudgetPeriod))
	require.Len(t, decoded, 1)
	assert.Equal(t, "b4", decoded[0].ID)
	assert.True(t, decoded[0].Spent.IsZero())
}

func TestDecodePreferences(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    func(p *entity.UserPreferences)
		wantErr error
	}{
		{
			name:    "empty object keeps every default",
			payload: `{}`,
			want:    func(*entity.UserPreferences) {},
		},
		{
			name:    "partial object overrides given fields",
			payload: `{"currency":"BRL","pinEnabled":true,"budgetAlerts":false}`,
			want: func(p *entity.UserPreferences) {
				p.Currency = "BRL"
				p.PinEnabled = true
				p.BudgetAlerts = false
			},
		},
		{
			name:    "unknown theme is rejected",
			payload: `{"theme":"neon"}`,
			wantErr: domainerror.ErrInvalidTheme,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePreferences(tt.payload)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			want := entity.DefaultPreferences()
			tt.want(&want)
			assert.Equal(t, want, got)
		})
	}
}

func TestSyncQueueAndOnboardedCodec(t *testing.T) {
	encoded, err := EncodeSyncQueue(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", encoded)

	ids, err := DecodeSyncQueue(`["a","","b","a"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	_, err = DecodeSyncQueue(`"a"`)
	require.Error(t, err)

	encoded, err = EncodeOnboarded(true)
	require.NoError(t, err)
	onboarded, err := DecodeOnboarded(encoded)
	require.NoError(t, err)
	assert.True(t, onboarded)

	_, err = DecodeOnboarded(`"yes"`)
	require.Error(t, err)
}
