package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"homefront/internal/domain/dashboard"
	"homefront/internal/shared/messages"
)

const DefaultWorkerCount = 4

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

func IsValidFormat(f string) bool {
	switch f {
	case FormatTable, FormatJSON, FormatYAML:
		return true
	}
	return false
}

type SummaryProvider interface {
	Summary(ctx context.Context, userID int64) (*dashboard.Summary, error)
}

// ReportRow is one user's line in the payoff report. Amounts are fixed two-place
// decimal strings so json and yaml output stay exact.
type ReportRow struct {
	UserID         int64  `json:"userId" yaml:"user_id"`
	Incomes        int    `json:"incomes" yaml:"incomes"`
	Expenses       int    `json:"expenses" yaml:"expenses"`
	Debts          int    `json:"debts" yaml:"debts"`
	TotalIncome    string `json:"totalIncome" yaml:"total_income"`
	TotalExpenses  string `json:"totalExpenses" yaml:"total_expenses"`
	TotalDebt      string `json:"totalDebt" yaml:"total_debt"`
	Surplus        string `json:"surplus" yaml:"surplus"`
	MonthlyOutlay  string `json:"monthlyOutlay" yaml:"monthly_outlay"`
	MonthsToPayoff int    `json:"monthsToPayoff" yaml:"months_to_payoff"`
	Converged      bool   `json:"converged" yaml:"converged"`
	NextTarget     string `json:"nextTarget,omitempty" yaml:"next_target,omitempty"`
	Error          string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ParseUserIDs parses a comma-separated list of user IDs.
func ParseUserIDs(s string) ([]int64, error) {
	var ids []int64
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid user ID %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// BuildReport computes summaries concurrently, at most workers at a time. A
// failing user gets a row with Error set; only context cancellation aborts the run.
func BuildReport(ctx context.Context, summaries SummaryProvider, userIDs []int64, workers int) ([]ReportRow, error) {
	if workers < 1 {
		workers = 1
	}

	rows := make([]ReportRow, len(userIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, id := range userIDs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := summaries.Summary(gctx, id)
			if err != nil {
				rows[i] = ReportRow{UserID: id, Error: err.Error()}
				return nil
			}
			rows[i] = rowOf(s)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func rowOf(s *dashboard.Summary) ReportRow {
	row := ReportRow{
		UserID:         s.UserID,
		Incomes:        s.IncomeCount,
		Expenses:       s.ExpenseCount,
		Debts:          s.DebtCount,
		TotalIncome:    s.Totals.TotalIncome.StringFixed(2),
		TotalExpenses:  s.Totals.TotalExpenses.StringFixed(2),
		TotalDebt:      s.Totals.TotalDebt.StringFixed(2),
		Surplus:        s.Totals.Surplus.StringFixed(2),
		MonthlyOutlay:  s.Plan.TotalMonthlyOutlay.StringFixed(2),
		MonthsToPayoff: s.Plan.MonthsToPayoff,
		Converged:      s.Plan.Converged,
	}
	if len(s.Targets) > 0 {
		row.NextTarget = s.Targets[0].Creditor
	}
	return row
}

func WriteReport(w io.Writer, format string, rows []ReportRow) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable:
		return writeTable(w, rows)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeTable(w io.Writer, rows []ReportRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "USER\tINCOME\tEXPENSES\tSURPLUS\tDEBT\tOUTLAY/MO\tPAYOFF\tNEXT\t")

	failed := 0
	for _, r := range rows {
		if r.Error != "" {
			failed++
			fmt.Fprintf(tw, "%d\terror: %s\t\t\t\t\t\t\t\n", r.UserID, r.Error)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.UserID,
			money(r.TotalIncome),
			money(r.TotalExpenses),
			money(r.Surplus),
			money(r.TotalDebt),
			money(r.MonthlyOutlay),
			payoffLabel(r),
			r.NextTarget,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s users, %s failed\n", humanize.Comma(int64(len(rows))), humanize.Comma(int64(failed)))
	return err
}

func payoffLabel(r ReportRow) string {
	switch {
	case r.Debts == 0:
		return "debt free"
	case !r.Converged:
		return "never"
	default:
		return strconv.Itoa(r.MonthsToPayoff) + " mo"
	}
}

func money(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return messages.Money(d)
}
