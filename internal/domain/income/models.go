package income

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"homefront/internal/domain/recurrence"
	"homefront/internal/shared/validation"
)

const (
	SourceJob        = "job"
	SourceBenefits   = "benefits"
	SourceGift       = "gift"
	SourceSideHustle = "side_hustle"
	SourceOther      = "other"
)

var sources = []string{SourceJob, SourceBenefits, SourceGift, SourceSideHustle, SourceOther}

// MaxAmount caps a single income.
var MaxAmount = decimal.RequireFromString("999999.99")

// Domain errors
var (
	ErrIncomeNotFound = errors.New("income not found")
	ErrForbidden      = errors.New("access forbidden")
	ErrInvalidUser    = errors.New("valid user ID is required")
)

// Income is a single source of money coming into the household.
type Income struct {
	ID        string              `json:"id"`
	UserID    int64               `json:"userId"`
	Source    string              `json:"source"`
	From      string              `json:"from"`
	Amount    decimal.Decimal     `json:"amount"`
	Date      recurrence.Date     `json:"date"`
	Schedule  recurrence.Schedule `json:"-"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// MarshalJSON flattens Schedule into isRecurring, frequency and endDate.
func (i Income) MarshalJSON() ([]byte, error) {
	type alias Income
	return json.Marshal(struct {
		alias
		recurrence.Fields
	}{alias(i), recurrence.FieldsOf(i.Schedule)})
}

// Validate checks the record as it would be stored.
func (i *Income) Validate() error {
	if i.UserID <= 0 {
		return ErrInvalidUser
	}
	return validation.First(
		validation.OneOf("source", i.Source, sources),
		validation.Required("from", i.From),
		validation.Positive("amount", i.Amount),
		validation.Between("amount", i.Amount, decimal.Zero, MaxAmount),
		validation.Scale("amount", i.Amount, 2),
		requireDate(i.Date),
	)
}

func requireDate(d recurrence.Date) error {
	if d.IsZero() {
		return validation.Errorf("date", "date is required")
	}
	return nil
}

// CreateParams contains parameters for recording a new income
type CreateParams struct {
	Source string          `json:"source"`
	From   string          `json:"from"`
	Amount decimal.Decimal `json:"amount"`
	Date   recurrence.Date `json:"date"`
	recurrence.Fields
}

// UpdateParams contains the fields a partial update may change
type UpdateParams struct {
	Source *string          `json:"source"`
	From   *string          `json:"from"`
	Amount *decimal.Decimal `json:"amount"`
	Date   *recurrence.Date `json:"date"`
	recurrence.Patch
}

func (p CreateParams) record(userID int64) (*Income, error) {
	if err := requireDate(p.Date); err != nil {
		return nil, err
	}
	schedule, err := recurrence.Resolve(p.Fields, p.Date, false)
	if err != nil {
		return nil, err
	}
	return &Income{
		UserID:   userID,
		Source:   p.Source,
		From:     p.From,
		Amount:   p.Amount,
		Date:     p.Date,
		Schedule: schedule,
	}, nil
}

// apply returns a copy of current with the supplied fields merged in.
func (p UpdateParams) apply(current *Income) (*Income, error) {
	merged := *current
	if p.Source != nil {
		merged.Source = *p.Source
	}
	if p.From != nil {
		merged.From = *p.From
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

// IsValidSource checks if the provided source is one of the income sources.
func IsValidSource(s string) bool {
	return validation.OneOf("source", s, sources) == nil
}
