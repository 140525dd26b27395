package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ewallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
)

// Slice names one independently persisted portion of the ledger state.
// The value doubles as the durable storage key.
type Slice string

const (
	SliceTransactions Slice = "ewallet_transactions"
	SlicePreferences  Slice = "ewallet_preferences"
	SliceBudgets      Slice = "ewallet_budgets"
	SliceOnboarded    Slice = "ewallet_onboarded"
	SliceSyncQueue    Slice = "ewallet_sync_queue"
)

// AllSlices lists every persisted slice in load order.
var AllSlices = []Slice{
	SliceTransactions,
	SlicePreferences,
	SliceBudgets,
	SliceOnboarded,
	SliceSyncQueue,
}

// dateOnlyLayout is accepted on decode for records written by hand.
const dateOnlyLayout = "2006-01-02"

// RecordError describes a malformed record dropped while decoding a slice.
type RecordError struct {
	Index int
	ID    string
	Err   error
}

// Error implements the error interface.
func (e RecordError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("record %d (id %q): %v", e.Index, e.ID, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e RecordError) Unwrap() error {
	return e.Err
}

// TransactionRecord is the serialized shape of a transaction.
type TransactionRecord struct {
	ID        string      `json:"id"`
	Amount    json.Number `json:"amount"`
	Title     string      `json:"title"`
	Type      string      `json:"type"`
	Category  string      `json:"category"`
	Date      string      `json:"date"`
	Notes     string      `json:"notes,omitempty"`
	Synced    bool        `json:"synced"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
}

// TransactionToRecord converts a transaction to its serialized shape.
func TransactionToRecord(t entity.Transaction) TransactionRecord {
	return TransactionRecord{
		ID:        t.ID,
		Amount:    json.Number(t.Amount.String()),
		Title:     t.Title,
		Type:      string(t.Type),
		Category:  t.Category,
		Date:      formatTime(t.Date),
		Notes:     t.Notes,
		Synced:    t.Synced,
		CreatedAt: formatTime(t.CreatedAt),
		UpdatedAt: formatTime(t.UpdatedAt),
	}
}

// ToEntity parses the record into a transaction.
func (r TransactionRecord) ToEntity() (entity.Transaction, error) {
	if strings.TrimSpace(r.ID) == "" {
		return entity.Transaction{}, domainerror.ErrInvalidTransactionID
	}
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("%w: %v", domainerror.ErrInvalidTransactionAmount, err)
	}
	txnType := entity.TransactionType(r.Type)
	if !txnType.IsValid() {
		return entity.Transaction{}, fmt.Errorf("%w: %q", domainerror.ErrInvalidTransactionType, r.Type)
	}
	date, err := parseTime(r.Date)
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("date: %w", err)
	}
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("createdAt: %w", err)
	}
	updatedAt, err := parseTime(r.UpdatedAt)
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("updatedAt: %w", err)
	}

	return entity.Transaction{
		ID:        r.ID,
		Amount:    amount,
		Title:     r.Title,
		Type:      txnType,
		Category:  r.Category,
		Date:      date,
		Notes:     r.Notes,
		Synced:    r.Synced,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// BudgetRecord is the serialized shape of a budget.
type BudgetRecord struct {
	ID         string      `json:"id"`
	CategoryID string      `json:"categoryId"`
	Amount     json.Number `json:"amount"`
	Period     string      `json:"period"`
	Spent      json.Number `json:"spent"`
}

// BudgetToRecord converts a budget to its serialized shape.
func BudgetToRecord(b entity.Budget) BudgetRecord {
	return BudgetRecord{
		ID:         b.ID,
		CategoryID: b.CategoryID,
		Amount:     json.Number(b.Amount.String()),
		Period:     string(b.Period),
		Spent:      json.Number(b.Spent.String()),
	}
}

// ToEntity parses the record into a budget.
func (r BudgetRecord) ToEntity() (entity.Budget, error) {
	if strings.TrimSpace(r.ID) == "" {
		return entity.Budget{}, errors.New("missing budget id")
	}
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return entity.Budget{}, fmt.Errorf("%w: %v", domainerror.ErrInvalidBudgetAmount, err)
	}
	spent := decimal.Zero
	if r.Spent != "" {
		if spent, err = parseAmount(r.Spent); err != nil {
			return entity.Budget{}, fmt.Errorf("spent: %w", err)
		}
	}
	period := entity.BudgetPeriod(r.Period)
	if !period.IsValid() {
		return entity.Budget{}, fmt.Errorf("%w: %q", domainerror.ErrInvalidBudgetPeriod, r.Period)
	}

	return entity.Budget{
		ID:         r.ID,
		CategoryID: r.CategoryID,
		Amount:     amount,
		Period:     period,
		Spent:      spent,
	}, nil
}

// PreferencesRecord is the serialized shape of the preferences singleton.
type PreferencesRecord struct {
	Currency             string `json:"currency"`
	Theme                string `json:"theme"`
	BiometricEnabled     bool   `json:"biometricEnabled"`
	PinEnabled           bool   `json:"pinEnabled"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	BudgetAlerts         bool   `json:"budgetAlerts"`
}

// PreferencesToRecord converts preferences to their serialized shape.
func PreferencesToRecord(p entity.UserPreferences) PreferencesRecord {
	return PreferencesRecord{
		Currency:             p.Currency,
		Theme:                string(p.Theme),
		BiometricEnabled:     p.BiometricEnabled,
		PinEnabled:           p.PinEnabled,
		NotificationsEnabled: p.NotificationsEnabled,
		BudgetAlerts:         p.BudgetAlerts,
	}
}

// ToEntity parses the record into preferences.
func (r PreferencesRecord) ToEntity() (entity.UserPreferences, error) {
	theme := entity.Theme(r.Theme)
	if !theme.IsValid() {
		return entity.UserPreferences{}, fmt.Errorf("%w: %q", domainerror.ErrInvalidTheme, r.Theme)
	}
	if strings.TrimSpace(r.Currency) == "" {
		return entity.UserPreferences{}, fmt.Errorf("%w: empty code", domainerror.ErrInvalidCurrency)
	}
	return entity.UserPreferences{
		Currency:             r.Currency,
		Theme:                theme,
		BiometricEnabled:     r.BiometricEnabled,
		PinEnabled:           r.PinEnabled,
		NotificationsEnabled: r.NotificationsEnabled,
		BudgetAlerts:         r.BudgetAlerts,
	}, nil
}

// EncodeTransactions serializes a transaction collection.
func EncodeTransactions(transactions []entity.Transaction) (string, error) {
	records := make([]TransactionRecord, len(transactions))
	for i, t := range transactions {
		records[i] = TransactionToRecord(t)
	}
	return marshal(records)
}

// DecodeTransactions parses a transaction collection. Malformed records and
// records repeating an earlier ID are skipped and reported; the error is
// only non-nil when the payload is not a JSON array at all.
func DecodeTransactions(data string) ([]entity.Transaction, []RecordError, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(data), &raws); err != nil {
		return nil, nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	transactions := make([]entity.Transaction, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	var skipped []RecordError
	for i, raw := range raws {
		var record TransactionRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			skipped = append(skipped, RecordError{Index: i, Err: err})
			continue
		}
		t, err := record.ToEntity()
		if err != nil {
			skipped = append(skipped, RecordError{Index: i, ID: record.ID, Err: err})
			continue
		}
		if _, dup := seen[t.ID]; dup {
			skipped = append(skipped, RecordError{Index: i, ID: t.ID, Err: errors.New("duplicate id")})
			continue
		}
		seen[t.ID] = struct{}{}
		transactions = append(transactions, t)
	}
	return transactions, skipped, nil
}

// EncodeBudgets serializes the budget list.
func EncodeBudgets(budgets []entity.Budget) (string, error) {
	records := make([]BudgetRecord, len(budgets))
	for i, b := range budgets {
		records[i] = BudgetToRecord(b)
	}
	return marshal(records)
}

// DecodeBudgets parses the budget list, skipping malformed records.
func DecodeBudgets(data string) ([]entity.Budget, []RecordError, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(data), &raws); err != nil {
		return nil, nil, fmt.Errorf("failed to decode budgets: %w", err)
	}

	budgets := make([]entity.Budget, 0, len(raws))
	var skipped []RecordError
	for i, raw := range raws {
		var record BudgetRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			skipped = append(skipped, RecordError{Index: i, Err: err})
			continue
		}
		b, err := record.ToEntity()
		if err != nil {
			skipped = append(skipped, RecordError{Index: i, ID: record.ID, Err: err})
			continue
		}
		budgets = append(budgets, b)
	}
	return budgets, skipped, nil
}

// EncodePreferences serializes the preferences singleton.
func EncodePreferences(p entity.UserPreferences) (string, error) {
	return marshal(PreferencesToRecord(p))
}

// DecodePreferences parses the preferences singleton. Fields missing from
// the payload keep their default values.
func DecodePreferences(data string) (entity.UserPreferences, error) {
	record := PreferencesToRecord(entity.DefaultPreferences())
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return entity.UserPreferences{}, fmt.Errorf("failed to decode preferences: %w", err)
	}
	return record.ToEntity()
}

// EncodeOnboarded serializes the onboarding flag.
func EncodeOnboarded(onboarded bool) (string, error) {
	return marshal(onboarded)
}

// DecodeOnboarded parses the onboarding flag.
func DecodeOnboarded(data string) (bool, error) {
	var onboarded bool
	if err := json.Unmarshal([]byte(data), &onboarded); err != nil {
		return false, fmt.Errorf("failed to decode onboarded flag: %w", err)
	}
	return onboarded, nil
}

// EncodeSyncQueue serializes the pending sync ids.
func EncodeSyncQueue(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	return marshal(ids)
}

// DecodeSyncQueue parses the pending sync ids, dropping blanks and repeats.
func DecodeSyncQueue(data string) ([]string, error) {
	var raw []string
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode sync queue: %w", err)
	}
	ids := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, id := range raw {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func marshal(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, domainerror.ErrInvalidTransactionDate
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err == nil {
		return t, nil
	}
	if d, dateErr := time.Parse(dateOnlyLayout, value); dateErr == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("%w: %v", domainerror.ErrInvalidTransactionDate, err)
}

func parseAmount(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, errors.New("missing amount")
	}
	return decimal.NewFromString(n.String())
}
