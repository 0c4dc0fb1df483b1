package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"homefront/internal/domain/recurrence"
	"homefront/internal/domain/snowball"
)

// MaxTargets is how many upcoming snowball targets a summary lists.
const MaxTargets = 3

// UpcomingWindow is how far ahead a summary lists debt payments.
const UpcomingWindow = 30 * 24 * time.Hour

// Totals are face-value sums of the user's records. Amounts are not normalised by
// frequency: a weekly income counts once, the same as a monthly one.
type Totals struct {
	TotalIncome          decimal.Decimal `json:"totalIncome"`
	TotalExpenses        decimal.Decimal `json:"totalExpenses"`
	TotalMinimumPayments decimal.Decimal `json:"totalMinimumPayments"`
	TotalDebt            decimal.Decimal `json:"totalDebt"`
	Surplus              decimal.Decimal `json:"surplus"`
	ExtraMonthlyBudget   decimal.Decimal `json:"extraMonthlyBudget"`
}

// Plan is the projected snowball payoff.
type Plan struct {
	MonthsToPayoff     int             `json:"monthsToPayoff"`
	TotalMonthlyOutlay decimal.Decimal `json:"totalMonthlyOutlay"`
	Converged          bool            `json:"converged"`
}

// Target is a debt in snowball order. Focus marks the one receiving the extra budget.
type Target struct {
	snowball.Debt
	Focus          bool             `json:"focus"`
	NextPaymentDue *recurrence.Date `json:"nextPaymentDue,omitempty"`
}

// Payment is a debt payment falling due inside UpcomingWindow.
type Payment struct {
	DebtID   string          `json:"debtId"`
	Creditor string          `json:"creditor"`
	Due      recurrence.Date `json:"due"`
	Amount   decimal.Decimal `json:"amount"`
}

type Summary struct {
	UserID       int64     `json:"userId"`
	Totals       Totals    `json:"totals"`
	IncomeCount  int       `json:"incomeCount"`
	ExpenseCount int       `json:"expenseCount"`
	DebtCount    int       `json:"debtCount"`
	Plan         Plan      `json:"plan"`
	Targets      []Target  `json:"targets"`
	Upcoming     []Payment `json:"upcoming"`
	GeneratedAt  time.Time `json:"generatedAt"`
}
