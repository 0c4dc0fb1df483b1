package debt

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"homefront/internal/domain/recurrence"
	"homefront/internal/domain/snowball"
	"homefront/internal/shared/patch"
	"homefront/internal/shared/validation"
)

var debtTypes = []string{
	"credit_card",
	"loan",
	"mortgage",
	"overdraft",
	"bnpl",
	"car_finance",
	"utility",
	"other",
}

const MaxNotesLength = 1000

var (
	maxBalance    = decimal.RequireFromString("9999999999.99")
	maxAPR        = decimal.NewFromInt(100)
	maxMinPayment = decimal.RequireFromString("99999999.99")
)

// Domain errors
var (
	ErrDebtNotFound = errors.New("debt not found")
	ErrForbidden    = errors.New("access forbidden")
	ErrInvalidUser  = errors.New("valid user ID is required")
)

// Debt is money the household owes a creditor.
type Debt struct {
	ID          string              `json:"id"`
	UserID      int64               `json:"userId"`
	Creditor    string              `json:"creditor"`
	Holder      string              `json:"holder"`
	Type        string              `json:"type"`
	Balance     decimal.Decimal     `json:"balance"`
	APR         *decimal.Decimal    `json:"apr,omitempty"`
	MinPayment  *decimal.Decimal    `json:"minPayment,omitempty"`
	PaymentDate *int                `json:"paymentDate,omitempty"`
	Schedule    recurrence.Schedule `json:"-"`
	Notes       *string             `json:"notes,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

func (d Debt) MarshalJSON() ([]byte, error) {
	type alias Debt
	return json.Marshal(struct {
		alias
		recurrence.Fields
	}{alias(d), recurrence.FieldsOf(d.Schedule)})
}

func (d *Debt) Validate() error {
	if d.UserID <= 0 {
		return ErrInvalidUser
	}
	errs := []error{
		validation.Required("creditor", d.Creditor),
		validation.Required("holder", d.Holder),
		validation.OneOf("type", d.Type, debtTypes),
		validation.NonNegative("balance", d.Balance),
		validation.Between("balance", d.Balance, decimal.Zero, maxBalance),
		validation.Scale("balance", d.Balance, 2),
	}
	if d.APR != nil {
		errs = append(errs,
			validation.Between("apr", *d.APR, decimal.Zero, maxAPR),
			validation.Scale("apr", *d.APR, 2),
		)
	}
	if d.MinPayment != nil {
		errs = append(errs,
			validation.NonNegative("minPayment", *d.MinPayment),
			validation.Between("minPayment", *d.MinPayment, decimal.Zero, maxMinPayment),
			validation.Scale("minPayment", *d.MinPayment, 2),
		)
	}
	if d.PaymentDate != nil && (*d.PaymentDate < 1 || *d.PaymentDate > 31) {
		errs = append(errs, validation.Errorf("paymentDate", "paymentDate must be a day of the month between 1 and 31"))
	}
	if d.Notes != nil {
		errs = append(errs, validation.MaxLength("notes", *d.Notes, MaxNotesLength))
	}
	return validation.First(errs...)
}

// Snowball returns the simulator's view of the debt. Absent APR and minimum payment count as 0.
func (d *Debt) Snowball() snowball.Debt {
	out := snowball.Debt{
		ID:       d.ID,
		Creditor: d.Creditor,
		Balance:  d.Balance.InexactFloat64(),
	}
	if d.APR != nil {
		out.APR = d.APR.InexactFloat64()
	}
	if d.MinPayment != nil {
		out.MinimumPayment = d.MinPayment.InexactFloat64()
	}
	return out
}

// MinimumPayment returns the minimum payment, 0 when unset.
func (d *Debt) MinimumPayment() decimal.Decimal {
	if d.MinPayment == nil {
		return decimal.Zero
	}
	return *d.MinPayment
}

// NextPaymentDue returns the next payment day after t. Debts repeat from their
// creation date; PaymentDate, when set, pins the day of the month.
func (d *Debt) NextPaymentDue(t time.Time) (recurrence.Date, bool) {
	return recurrence.NextAfter(d.Schedule, d.paymentAnchor(), t)
}

// PaymentsDue lists the payment days within [from, to].
func (d *Debt) PaymentsDue(from, to recurrence.Date) []recurrence.Date {
	return recurrence.Occurrences(d.Schedule, d.paymentAnchor(), from, to)
}

func (d *Debt) paymentAnchor() recurrence.Date {
	anchor := recurrence.DateOf(d.CreatedAt)
	if d.PaymentDate != nil {
		first := recurrence.NewDate(anchor.Year(), anchor.Month(), 1)
		anchor = recurrence.NewDate(first.Year(), first.Month(), clampDay(first, *d.PaymentDate))
	}
	return anchor
}

func clampDay(month recurrence.Date, day int) int {
	last := month.AddDate(0, 1, -1).Day()
	if day > last {
		return last
	}
	return day
}

// CreateParams contains parameters for recording a new debt. Debts repeat monthly
// unless the recurrence fields say otherwise.
type CreateParams struct {
	Creditor    string           `json:"creditor"`
	Holder      string           `json:"holder"`
	Type        string           `json:"type"`
	Balance     decimal.Decimal  `json:"balance"`
	APR         *decimal.Decimal `json:"apr"`
	MinPayment  *decimal.Decimal `json:"minPayment"`
	PaymentDate *int             `json:"paymentDate"`
	Notes       *string          `json:"notes"`
	recurrence.Fields
}

// UpdateParams merges into a stored debt. The optional fields take null to clear them.
type UpdateParams struct {
	Creditor    *string                      `json:"creditor"`
	Holder      *string                      `json:"holder"`
	Type        *string                      `json:"type"`
	Balance     *decimal.Decimal             `json:"balance"`
	APR         patch.Field[decimal.Decimal] `json:"apr"`
	MinPayment  patch.Field[decimal.Decimal] `json:"minPayment"`
	PaymentDate patch.Field[int]             `json:"paymentDate"`
	Notes       patch.Field[string]          `json:"notes"`
	recurrence.Patch
}

// record builds the debt; end dates are checked against now since debts carry no date of their own.
func (p CreateParams) record(userID int64, now time.Time) (*Debt, error) {
	schedule, err := recurrence.Resolve(p.Fields, recurrence.DateOf(now), true)
	if err != nil {
		return nil, err
	}
	return &Debt{
		UserID:      userID,
		Creditor:    p.Creditor,
		Holder:      p.Holder,
		Type:        p.Type,
		Balance:     p.Balance,
		APR:         p.APR,
		MinPayment:  p.MinPayment,
		PaymentDate: p.PaymentDate,
		Notes:       p.Notes,
		Schedule:    schedule,
	}, nil
}

func (p UpdateParams) apply(current *Debt) (*Debt, error) {
	merged := *current
	if p.Creditor != nil {
		merged.Creditor = *p.Creditor
	}
	if p.Holder != nil {
		merged.Holder = *p.Holder
	}
	if p.Type != nil {
		merged.Type = *p.Type
	}
	if p.Balance != nil {
		merged.Balance = *p.Balance
	}
	p.APR.Apply(&merged.APR)
	p.MinPayment.Apply(&merged.MinPayment)
	p.PaymentDate.Apply(&merged.PaymentDate)
	p.Notes.Apply(&merged.Notes)

	schedule, err := recurrence.Resolve(recurrence.Merge(current.Schedule, p.Patch), recurrence.DateOf(current.CreatedAt), true)
	if err != nil {
		return nil, err
	}
	merged.Schedule = schedule
	return &merged, nil
}

// IsValidType checks if the provided debt type is supported.
func IsValidType(t string) bool {
	return validation.OneOf("type", t, debtTypes) == nil
}
