// Package snowball projects a debt-snowball payoff: every month each debt gets
// its minimum payment, the smallest remaining balance also gets the extra
// budget, and a cleared debt's minimum rolls into the extra.
package snowball

import "sort"

// MaxMonths bounds the simulation at 50 years.
const MaxMonths = 600

// Debt is the simulator's view of a debt. ID and Creditor are carried for reporting.
type Debt struct {
	ID             string  `json:"id"`
	Creditor       string  `json:"creditor"`
	Balance        float64 `json:"balance"`
	APR            float64 `json:"apr"`
	MinimumPayment float64 `json:"minimumPayment"`
}

type Input struct {
	Debts              []Debt
	ExtraMonthlyBudget float64
}

type Result struct {
	MonthsToPayoff     int     `json:"monthsToPayoff"`
	TotalMonthlyOutlay float64 `json:"totalMonthlyOutlay"`
	// Converged is false when debts were still outstanding after MaxMonths;
	// MonthsToPayoff then reports MaxMonths.
	Converged bool `json:"converged"`
}

// Simulate runs the payoff month by month. It never mutates in.Debts.
//
// A debt cleared during a month frees its minimum payment for the debts after
// it in the same month, so the next debt in line receives the accumulated
// extra straight away.
func Simulate(in Input) Result {
	if len(in.Debts) == 0 {
		return Result{Converged: true}
	}

	remaining := Order(in.Debts)

	var totalMinimum float64
	for _, d := range remaining {
		totalMinimum += d.MinimumPayment
	}

	months := 0
	for len(remaining) > 0 && months < MaxMonths {
		extra := in.ExtraMonthlyBudget
		kept := remaining[:0]

		for _, d := range remaining {
			interest := d.Balance * d.APR / 100 / 12
			payment := d.MinimumPayment
			if len(kept) == 0 {
				payment += extra
			}
			d.Balance -= payment - interest

			if d.Balance <= 0 {
				extra += d.MinimumPayment
				continue
			}
			kept = append(kept, d)
		}

		remaining = kept
		months++
	}

	return Result{
		MonthsToPayoff:     months,
		TotalMonthlyOutlay: totalMinimum + in.ExtraMonthlyBudget,
		Converged:          len(remaining) == 0,
	}
}

// Order returns a copy of debts in snowball order: smallest balance first,
// ties kept in input order.
func Order(debts []Debt) []Debt {
	ordered := make([]Debt, len(debts))
	copy(ordered, debts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Balance < ordered[j].Balance
	})
	return ordered
}
