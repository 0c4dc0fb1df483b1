package expense

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"homefront/internal/domain/recurrence"
	"homefront/internal/shared/validation"
)

var categories = []string{
	"rent",
	"utilities",
	"groceries",
	"transport",
	"insurance",
	"subscriptions",
	"entertainment",
	"debt",
	"childcare",
	"shopping",
	"other",
}

// MaxAmount is the column limit of numeric(10,2).
var MaxAmount = decimal.RequireFromString("99999999.99")

// Domain errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrForbidden       = errors.New("access forbidden")
	ErrInvalidUser     = errors.New("valid user ID is required")
)

// Expense is money leaving the household, paid to someone.
type Expense struct {
	ID        string              `json:"id"`
	UserID    int64               `json:"userId"`
	Category  string              `json:"category"`
	To        string              `json:"to"`
	Amount    decimal.Decimal     `json:"amount"`
	Date      recurrence.Date     `json:"date"`
	Schedule  recurrence.Schedule `json:"-"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func (e Expense) MarshalJSON() ([]byte, error) {
	type alias Expense
	return json.Marshal(struct {
		alias
		recurrence.Fields
	}{alias(e), recurrence.FieldsOf(e.Schedule)})
}

func (e *Expense) Validate() error {
	if e.UserID <= 0 {
		return ErrInvalidUser
	}
	if e.Date.IsZero() {
		return validation.Errorf("date", "date is required")
	}
	return validation.First(
		validation.OneOf("category", e.Category, categories),
		validation.Required("to", e.To),
		validation.Positive("amount", e.Amount),
		validation.Between("amount", e.Amount, decimal.Zero, MaxAmount),
		validation.Scale("amount", e.Amount, 2),
	)
}

type CreateParams struct {
	Category string          `json:"category"`
	To       string          `json:"to"`
	Amount   decimal.Decimal `json:"amount"`
	Date     recurrence.Date `json:"date"`
	recurrence.Fields
}

type UpdateParams struct {
	Category *string          `json:"category"`
	To       *string          `json:"to"`
	Amount   *decimal.Decimal `json:"amount"`
	Date     *recurrence.Date `json:"date"`
	recurrence.Patch
}

func (p CreateParams) record(userID int64) (*Expense, error) {
	if p.Date.IsZero() {
		return nil, validation.Errorf("date", "date is required")
	}
	schedule, err := recurrence.Resolve(p.Fields, p.Date, false)
	if err != nil {
		return nil, err
	}
	return &Expense{
		UserID:   userID,
		Category: p.Category,
		To:       p.To,
		Amount:   p.Amount,
		Date:     p.Date,
		Schedule: schedule,
	}, nil
}

func (p UpdateParams) apply(current *Expense) (*Expense, error) {
	merged := *current
	if p.Category != nil {
		merged.Category = *p.Category
	}
	if p.To != nil {
		merged.To = *p.To
	}
	if p.Amount != nil {
		merged.Amount = *p.Amount
	}
	if p.Date != nil {
		merged.Date = *p.Date
	}

	schedule, err := recurrence.Resolve(recurrence.Merge(current.Schedule, p.Patch), merged.Date, false)
	if err != nil {
		return nil, err
	}
	merged.Schedule = schedule
	return &merged, nil
}

// Categories returns the accepted expense categories in display order.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}
