package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"homefront/internal/domain/debt"
	"homefront/internal/domain/expense"
	"homefront/internal/domain/income"
	"homefront/internal/domain/recurrence"
	"homefront/internal/domain/snowball"
)

// Aggregate sums the records. The extra budget is what is left of the surplus
// after minimum payments, never below zero.
func Aggregate(incomes []*income.Income, expenses []*expense.Expense, debts []*debt.Debt) Totals {
	var t Totals
	for _, in := range incomes {
		t.TotalIncome = t.TotalIncome.Add(in.Amount)
	}
	for _, e := range expenses {
		t.TotalExpenses = t.TotalExpenses.Add(e.Amount)
	}
	for _, d := range debts {
		t.TotalDebt = t.TotalDebt.Add(d.Balance)
		t.TotalMinimumPayments = t.TotalMinimumPayments.Add(d.MinimumPayment())
	}

	t.Surplus = t.TotalIncome.Sub(t.TotalExpenses)
	t.ExtraMonthlyBudget = decimal.Max(decimal.Zero, t.Surplus.Sub(t.TotalMinimumPayments))
	return t
}

// Build computes the full summary from loaded records.
func Build(userID int64, incomes []*income.Income, expenses []*expense.Expense, debts []*debt.Debt, now time.Time) *Summary {
	totals := Aggregate(incomes, expenses, debts)

	simDebts := make([]snowball.Debt, len(debts))
	for i, d := range debts {
		simDebts[i] = d.Snowball()
	}

	result := snowball.Simulate(snowball.Input{
		Debts:              simDebts,
		ExtraMonthlyBudget: totals.ExtraMonthlyBudget.InexactFloat64(),
	})

	// Exact decimal rather than the simulator's float sum; nothing is paid without debts.
	outlay := decimal.Zero
	if len(debts) > 0 {
		outlay = totals.TotalMinimumPayments.Add(totals.ExtraMonthlyBudget)
	}

	byID := make(map[string]*debt.Debt, len(debts))
	for _, d := range debts {
		byID[d.ID] = d
	}

	ordered := snowball.Order(simDebts)
	targets := make([]Target, 0, MaxTargets)
	for i, d := range ordered {
		if i == MaxTargets {
			break
		}
		target := Target{Debt: d, Focus: i == 0}
		if src, ok := byID[d.ID]; ok {
			if due, ok := src.NextPaymentDue(now); ok {
				target.NextPaymentDue = &due
			}
		}
		targets = append(targets, target)
	}

	return &Summary{
		UserID:       userID,
		Totals:       totals,
		IncomeCount:  len(incomes),
		ExpenseCount: len(expenses),
		DebtCount:    len(debts),
		Plan: Plan{
			MonthsToPayoff:     result.MonthsToPayoff,
			TotalMonthlyOutlay: outlay,
			Converged:          result.Converged,
		},
		Targets:     targets,
		Upcoming:    upcoming(debts, now),
		GeneratedAt: now.UTC(),
	}
}

// upcoming lists minimum payments due from today through UpcomingWindow, earliest first.
func upcoming(debts []*debt.Debt, now time.Time) []Payment {
	from := recurrence.DateOf(now)
	to := recurrence.DateOf(now.Add(UpcomingWindow))

	out := []Payment{}
	for _, d := range debts {
		amount := d.MinimumPayment()
		if amount.IsZero() || d.Balance.IsZero() {
			continue
		}
		for _, due := range d.PaymentsDue(from, to) {
			out = append(out, Payment{DebtID: d.ID, Creditor: d.Creditor, Due: due, Amount: amount})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Due.Before(out[j].Due.Time)
	})
	return out
}
