package scheduler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"homefront/internal/domain/dashboard"
	"homefront/internal/shared/messages"
)

type SummaryProvider interface {
	Summary(ctx context.Context, userID int64) (*dashboard.Summary, error)
}

type Pusher interface {
	SendToUser(ctx context.Context, userID int64, title, body string, data map[string]string) (int, error)
}

type RecipientLister interface {
	Recipients(ctx context.Context) ([]int64, error)
}

// PayoffDigestJob pushes a user's current payoff projection to their devices.
type PayoffDigestJob struct {
	userID    int64
	summaries SummaryProvider
	pusher    Pusher
	messages  *messages.Messages
}

func NewPayoffDigestJob(userID int64, summaries SummaryProvider, pusher Pusher, msgs *messages.Messages) *PayoffDigestJob {
	return &PayoffDigestJob{
		userID:    userID,
		summaries: summaries,
		pusher:    pusher,
		messages:  msgs,
	}
}

func (j *PayoffDigestJob) UserID() int64 { return j.userID }

func (j *PayoffDigestJob) Description() string { return "payoff digest" }

func (j *PayoffDigestJob) Execute(ctx context.Context) error {
	summary, err := j.summaries.Summary(ctx, j.userID)
	if err != nil {
		return fmt.Errorf("failed to build summary: %w", err)
	}

	kind, text := ComposeDigest(summary, j.messages)
	data := map[string]string{
		"type":           kind,
		"monthsToPayoff": strconv.Itoa(summary.Plan.MonthsToPayoff),
	}
	if len(summary.Targets) > 0 && summary.Targets[0].NextPaymentDue != nil {
		data["nextPaymentDue"] = summary.Targets[0].NextPaymentDue.String()
	}

	if _, err := j.pusher.SendToUser(ctx, j.userID, text.Title, text.Body, data); err != nil {
		return fmt.Errorf("failed to push digest: %w", err)
	}
	return nil
}

// ComposeDigest picks and renders the digest message for a summary. It returns
// the message kind alongside the text.
func ComposeDigest(s *dashboard.Summary, msgs *messages.Messages) (string, messages.MessageText) {
	if s.DebtCount == 0 {
		return "debt_free", msgs.DebtFree.Render(map[string]string{
			"surplus": messages.Money(s.Totals.Surplus),
		})
	}

	outlay := messages.Money(s.Plan.TotalMonthlyOutlay)
	totalDebt := messages.Money(s.Totals.TotalDebt)

	if !s.Plan.Converged || len(s.Targets) == 0 {
		return "payoff_stalled", msgs.PayoffStalled.Render(map[string]string{
			"outlay":     outlay,
			"total_debt": totalDebt,
		})
	}

	focus := s.Targets[0]
	return "payoff_digest", msgs.PayoffDigest.Render(map[string]string{
		"months":     strconv.Itoa(s.Plan.MonthsToPayoff),
		"outlay":     outlay,
		"total_debt": totalDebt,
		"creditor":   focus.Creditor,
		"balance":    messages.Money(decimal.NewFromFloat(focus.Balance)),
	})
}

// NewPayoffDigestProvider returns a JobProvider with one digest job per user
// that has an active device.
func NewPayoffDigestProvider(recipients RecipientLister, summaries SummaryProvider, pusher Pusher, msgs *messages.Messages) JobProvider {
	return func(ctx context.Context) ([]Job, error) {
		userIDs, err := recipients.Recipients(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list recipients: %w", err)
		}

		jobs := make([]Job, 0, len(userIDs))
		for _, id := range userIDs {
			jobs = append(jobs, NewPayoffDigestJob(id, summaries, pusher, msgs))
		}
		return jobs, nil
	}
}
