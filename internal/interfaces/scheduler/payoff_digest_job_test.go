package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"homefront/internal/domain/dashboard"
	"homefront/internal/domain/recurrence"
	"homefront/internal/domain/snowball"
	"homefront/internal/shared/messages"
)

type MockSummaryProvider struct {
	SummaryFunc func(ctx context.Context, userID int64) (*dashboard.Summary, error)
}

func (m *MockSummaryProvider) Summary(ctx context.Context, userID int64) (*dashboard.Summary, error) {
	return m.SummaryFunc(ctx, userID)
}

type sentPush struct {
	userID      int64
	title, body string
	data        map[string]string
}

type MockPusher struct {
	SendToUserFunc func(ctx context.Context, userID int64, title, body string, data map[string]string) (int, error)
	sent           []sentPush
}

func (m *MockPusher) SendToUser(ctx context.Context, userID int64, title, body string, data map[string]string) (int, error) {
	m.sent = append(m.sent, sentPush{userID, title, body, data})
	if m.SendToUserFunc != nil {
		return m.SendToUserFunc(ctx, userID, title, body, data)
	}
	return 1, nil
}

type MockRecipientLister struct {
	RecipientsFunc func(ctx context.Context) ([]int64, error)
}

func (m *MockRecipientLister) Recipients(ctx context.Context) ([]int64, error) {
	return m.RecipientsFunc(ctx)
}

func testMessages() *messages.Messages {
	return &messages.Messages{
		PayoffDigest:  messages.MessageText{Title: "{months} months", Body: "{outlay} clears {total_debt}; next {creditor} at {balance}"},
		PayoffStalled: messages.MessageText{Title: "Stalled", Body: "{outlay} vs {total_debt}"},
		DebtFree:      messages.MessageText{Title: "Debt free", Body: "surplus {surplus}"},
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComposeDigest(t *testing.T) {
	tests := []struct {
		name      string
		summary   *dashboard.Summary
		wantKind  string
		wantTitle string
		wantBody  string
	}{
		{
			name: "debt free",
			summary: &dashboard.Summary{
				Totals: dashboard.Totals{Surplus: dec("1250.5")},
				Plan:   dashboard.Plan{Converged: true},
			},
			wantKind:  "debt_free",
			wantTitle: "Debt free",
			wantBody:  "surplus £1,250.50",
		},
		{
			name: "on track",
			summary: &dashboard.Summary{
				DebtCount: 2,
				Totals:    dashboard.Totals{TotalDebt: dec("3000")},
				Plan:      dashboard.Plan{MonthsToPayoff: 12, TotalMonthlyOutlay: dec("300"), Converged: true},
				Targets: []dashboard.Target{
					{Debt: snowball.Debt{Creditor: "Visa", Balance: 250}, Focus: true},
					{Debt: snowball.Debt{Creditor: "Car", Balance: 2750}},
				},
			},
			wantKind:  "payoff_digest",
			wantTitle: "12 months",
			wantBody:  "£300.00 clears £3,000.00; next Visa at £250.00",
		},
		{
			name: "not converging",
			summary: &dashboard.Summary{
				DebtCount: 1,
				Totals:    dashboard.Totals{TotalDebt: dec("50000")},
				Plan:      dashboard.Plan{MonthsToPayoff: snowball.MaxMonths, TotalMonthlyOutlay: dec("10")},
				Targets:   []dashboard.Target{{Debt: snowball.Debt{Creditor: "Loan", Balance: 50000}, Focus: true}},
			},
			wantKind:  "payoff_stalled",
			wantTitle: "Stalled",
			wantBody:  "£10.00 vs £50,000.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, text := ComposeDigest(tt.summary, testMessages())
			if kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", kind, tt.wantKind)
			}
			if text.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", text.Title, tt.wantTitle)
			}
			if text.Body != tt.wantBody {
				t.Errorf("body = %q, want %q", text.Body, tt.wantBody)
			}
		})
	}
}

func TestPayoffDigestJob_Execute(t *testing.T) {
	due := recurrence.NewDate(2024, time.July, 1)
	summaries := &MockSummaryProvider{
		SummaryFunc: func(ctx context.Context, userID int64) (*dashboard.Summary, error) {
			if userID != 7 {
				t.Errorf("Summary() userID = %d, want 7", userID)
			}
			return &dashboard.Summary{
				UserID:    7,
				DebtCount: 1,
				Totals:    dashboard.Totals{TotalDebt: dec("500")},
				Plan:      dashboard.Plan{MonthsToPayoff: 5, TotalMonthlyOutlay: dec("100"), Converged: true},
				Targets: []dashboard.Target{{
					Debt:           snowball.Debt{Creditor: "Store card", Balance: 500},
					Focus:          true,
					NextPaymentDue: &due,
				}},
			}, nil
		},
	}
	pusher := &MockPusher{}

	job := NewPayoffDigestJob(7, summaries, pusher, testMessages())
	if err := job.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(pusher.sent) != 1 {
		t.Fatalf("pushes sent = %d, want 1", len(pusher.sent))
	}
	got := pusher.sent[0]
	if got.userID != 7 || got.title != "5 months" {
		t.Errorf("push = %+v", got)
	}
	if !strings.Contains(got.body, "Store card") {
		t.Errorf("body = %q, want creditor name", got.body)
	}
	if got.data["type"] != "payoff_digest" || got.data["monthsToPayoff"] != "5" || got.data["nextPaymentDue"] != "2024-07-01" {
		t.Errorf("data = %v", got.data)
	}
}

func TestPayoffDigestJob_Errors(t *testing.T) {
	t.Run("summary fails", func(t *testing.T) {
		summaries := &MockSummaryProvider{
			SummaryFunc: func(ctx context.Context, userID int64) (*dashboard.Summary, error) {
				return nil, errors.New("db down")
			},
		}
		pusher := &MockPusher{}

		err := NewPayoffDigestJob(1, summaries, pusher, testMessages()).Execute(context.Background())
		if err == nil {
			t.Fatal("Execute() expected error, got nil")
		}
		if len(pusher.sent) != 0 {
			t.Error("nothing should be pushed when the summary fails")
		}
	})

	t.Run("push fails", func(t *testing.T) {
		summaries := &MockSummaryProvider{
			SummaryFunc: func(ctx context.Context, userID int64) (*dashboard.Summary, error) {
				return &dashboard.Summary{UserID: userID, Plan: dashboard.Plan{Converged: true}}, nil
			},
		}
		pushErr := errors.New("fcm unavailable")
		pusher := &MockPusher{
			SendToUserFunc: func(ctx context.Context, userID int64, title, body string, data map[string]string) (int, error) {
				return 0, pushErr
			},
		}

		err := NewPayoffDigestJob(1, summaries, pusher, testMessages()).Execute(context.Background())
		if !errors.Is(err, pushErr) {
			t.Errorf("Execute() error = %v, want wrapped %v", err, pushErr)
		}
	})
}

func TestNewPayoffDigestProvider(t *testing.T) {
	recipients := &MockRecipientLister{
		RecipientsFunc: func(ctx context.Context) ([]int64, error) {
			return []int64{3, 9}, nil
		},
	}

	provider := NewPayoffDigestProvider(recipients, &MockSummaryProvider{}, &MockPusher{}, testMessages())
	jobs, err := provider(context.Background())
	if err != nil {
		t.Fatalf("provider() error = %v", err)
	}
	if len(jobs) != 2 || jobs[0].UserID() != 3 || jobs[1].UserID() != 9 {
		t.Errorf("jobs = %v, want users 3 and 9", jobs)
	}

	recipients.RecipientsFunc = func(ctx context.Context) ([]int64, error) {
		return nil, errors.New("db down")
	}
	if _, err := provider(context.Background()); err == nil {
		t.Error("provider() expected error, got nil")
	}
}
