package debt

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"homefront/internal/domain/recurrence"
	"homefront/internal/shared/validation"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(i int) *int { return &i }

func validDebt() *Debt {
	return &Debt{
		UserID:     1,
		Creditor:   "Big Bank",
		Holder:     "Sam",
		Type:       "credit_card",
		Balance:    decimal.RequireFromString("1500.00"),
		APR:        dec("19.99"),
		MinPayment: dec("45"),
		Schedule:   recurrence.Recurring{Frequency: recurrence.Monthly},
	}
}

func TestDebt_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(d *Debt)
		wantField string
	}{
		{name: "valid", mutate: func(d *Debt) {}},
		{name: "zero balance", mutate: func(d *Debt) { d.Balance = decimal.Zero }},
		{name: "optional fields absent", mutate: func(d *Debt) { d.APR, d.MinPayment, d.PaymentDate, d.Notes = nil, nil, nil, nil }},
		{name: "apr 100", mutate: func(d *Debt) { d.APR = dec("100") }},
		{name: "missing creditor", mutate: func(d *Debt) { d.Creditor = "" }, wantField: "creditor"},
		{name: "missing holder", mutate: func(d *Debt) { d.Holder = "" }, wantField: "holder"},
		{name: "unknown type", mutate: func(d *Debt) { d.Type = "payday" }, wantField: "type"},
		{name: "negative balance", mutate: func(d *Debt) { d.Balance = decimal.NewFromInt(-1) }, wantField: "balance"},
		{name: "apr above 100", mutate: func(d *Debt) { d.APR = dec("100.01") }, wantField: "apr"},
		{name: "negative apr", mutate: func(d *Debt) { d.APR = dec("-0.5") }, wantField: "apr"},
		{name: "negative minimum", mutate: func(d *Debt) { d.MinPayment = dec("-10") }, wantField: "minPayment"},
		{name: "payment day 0", mutate: func(d *Debt) { d.PaymentDate = intPtr(0) }, wantField: "paymentDate"},
		{name: "payment day 32", mutate: func(d *Debt) { d.PaymentDate = intPtr(32) }, wantField: "paymentDate"},
		{name: "payment day 31", mutate: func(d *Debt) { d.PaymentDate = intPtr(31) }},
		{name: "notes too long", mutate: func(d *Debt) { n := strings.Repeat("x", MaxNotesLength+1); d.Notes = &n }, wantField: "notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDebt()
			tt.mutate(d)
			err := d.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			fe, ok := validation.AsFieldError(err)
			if !ok || fe.Field != tt.wantField {
				t.Errorf("Validate() = %v, want FieldError on %q", err, tt.wantField)
			}
		})
	}
}

func TestDebt_Snowball(t *testing.T) {
	d := validDebt()
	d.ID = "debt-1"

	got := d.Snowball()
	if got.ID != "debt-1" || got.Creditor != "Big Bank" {
		t.Errorf("identity not carried: %+v", got)
	}
	if got.Balance != 1500 || got.APR != 19.99 || got.MinimumPayment != 45 {
		t.Errorf("Snowball() = %+v", got)
	}

	d.APR, d.MinPayment = nil, nil
	got = d.Snowball()
	if got.APR != 0 || got.MinimumPayment != 0 {
		t.Errorf("absent APR and minimum should be 0, got %+v", got)
	}
	if !d.MinimumPayment().IsZero() {
		t.Errorf("MinimumPayment() = %s, want 0", d.MinimumPayment())
	}
}

func TestDebt_NextPaymentDue(t *testing.T) {
	d := validDebt()
	d.CreatedAt = time.Date(2024, time.February, 10, 15, 0, 0, 0, time.UTC)
	d.PaymentDate = intPtr(28)

	got, ok := d.NextPaymentDue(time.Date(2024, time.March, 29, 0, 0, 0, 0, time.UTC))
	if !ok {
		t.Fatal("expected a next payment")
	}
	if got.String() != "2024-04-28" {
		t.Errorf("NextPaymentDue() = %s, want 2024-04-28", got)
	}

	d.Schedule = recurrence.OneOff{}
	if _, ok := d.NextPaymentDue(time.Date(2024, time.March, 29, 0, 0, 0, 0, time.UTC)); ok {
		t.Error("one-off debt past its date should have no next payment")
	}
}

func TestDebt_PaymentsDue(t *testing.T) {
	d := validDebt()
	d.CreatedAt = time.Date(2024, time.February, 10, 15, 0, 0, 0, time.UTC)
	d.PaymentDate = intPtr(20)

	got := d.PaymentsDue(recurrence.NewDate(2024, time.March, 1), recurrence.NewDate(2024, time.May, 31))

	want := []string{"2024-03-20", "2024-04-20", "2024-05-20"}
	if len(got) != len(want) {
		t.Fatalf("PaymentsDue() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Errorf("PaymentsDue()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDebt_MarshalJSON(t *testing.T) {
	d := validDebt()
	d.APR = nil

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	body := string(data)
	if strings.Contains(body, `"apr"`) {
		t.Errorf("absent apr should be omitted: %s", body)
	}
	for _, want := range []string{`"minPayment":"45"`, `"balance":"1500"`, `"frequency":"monthly"`} {
		if !strings.Contains(body, want) {
			t.Errorf("JSON %s missing %s", body, want)
		}
	}
}

func TestIsValidType(t *testing.T) {
	for _, typ := range []string{"credit_card", "loan", "mortgage", "overdraft", "bnpl", "car_finance", "utility", "other"} {
		if !IsValidType(typ) {
			t.Errorf("IsValidType(%q) = false", typ)
		}
	}
	if IsValidType("Loan") {
		t.Error("types are case sensitive")
	}
}
