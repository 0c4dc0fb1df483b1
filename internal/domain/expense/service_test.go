package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"homefront/internal/domain/recurrence"
	"homefront/internal/shared/validation"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc       func(ctx context.Context, exp *Expense) (*Expense, error)
	GetByIDFunc      func(ctx context.Context, id string) (*Expense, error)
	ListByUserIDFunc func(ctx context.Context, userID int64) ([]*Expense, error)
	UpdateFunc       func(ctx context.Context, exp *Expense) (*Expense, error)
	DeleteFunc       func(ctx context.Context, id string) error
}

func (m *MockRepository) Create(ctx context.Context, exp *Expense) (*Expense, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, exp)
	}
	return exp, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Expense, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrExpenseNotFound
}

func (m *MockRepository) ListByUserID(ctx context.Context, userID int64) ([]*Expense, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, exp *Expense) (*Expense, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, exp)
	}
	return exp, nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	ctx := context.Background()
	date := recurrence.NewDate(2024, time.April, 3)
	monthly := "monthly"
	end := recurrence.NewDate(2024, time.April, 3)

	tests := []struct {
		name      string
		params    CreateParams
		wantField string
	}{
		{
			name:   "valid rent",
			params: CreateParams{Category: "rent", To: "Landlord", Amount: decimal.NewFromInt(950), Date: date},
		},
		{
			name:   "valid monthly subscription",
			params: CreateParams{Category: "subscriptions", To: "Streaming", Amount: decimal.RequireFromString("9.99"), Date: date, Fields: recurrence.Fields{Frequency: &monthly}},
		},
		{
			name:      "unknown category",
			params:    CreateParams{Category: "holidays", To: "Airline", Amount: decimal.NewFromInt(300), Date: date},
			wantField: "category",
		},
		{
			name:      "missing payee",
			params:    CreateParams{Category: "groceries", Amount: decimal.NewFromInt(60), Date: date},
			wantField: "to",
		},
		{
			name:      "zero amount",
			params:    CreateParams{Category: "groceries", To: "Shop", Date: date},
			wantField: "amount",
		},
		{
			name:      "end date not after date",
			params:    CreateParams{Category: "utilities", To: "Power Co", Amount: decimal.NewFromInt(80), Date: date, Fields: recurrence.Fields{Frequency: &monthly, EndDate: &end}},
			wantField: "endDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			svc := NewService(&MockRepository{
				CreateFunc: func(ctx context.Context, exp *Expense) (*Expense, error) {
					called = true
					return exp, nil
				},
			})

			got, err := svc.Create(ctx, 3, tt.params)

			if tt.wantField != "" {
				fe, ok := validation.AsFieldError(err)
				if !ok || fe.Field != tt.wantField {
					t.Fatalf("Create() error = %v, want FieldError on %q", err, tt.wantField)
				}
				if called {
					t.Error("invalid expense reached the repository")
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() unexpected error: %v", err)
			}
			if got.UserID != 3 {
				t.Errorf("UserID = %d, want 3", got.UserID)
			}
		})
	}
}

func TestUpdateAndDelete_OwnerScoped(t *testing.T) {
	ctx := context.Background()
	stored := &Expense{
		ID: "exp-1", UserID: 1, Category: "rent", To: "Landlord",
		Amount: decimal.NewFromInt(900), Date: recurrence.NewDate(2024, time.January, 1),
		Schedule: recurrence.Recurring{Frequency: recurrence.Monthly},
	}
	svc := NewService(&MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*Expense, error) {
			if id != "exp-1" {
				return nil, ErrExpenseNotFound
			}
			return stored, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			t.Errorf("Delete reached repository for %s", id)
			return nil
		},
	})

	if _, err := svc.Update(ctx, 2, "exp-1", UpdateParams{To: strPtr("Someone")}); !errors.Is(err, ErrForbidden) {
		t.Errorf("Update() other owner error = %v, want ErrForbidden", err)
	}
	if _, err := svc.Update(ctx, 1, "nope", UpdateParams{}); !errors.Is(err, ErrExpenseNotFound) {
		t.Errorf("Update() missing error = %v, want ErrExpenseNotFound", err)
	}
	if err := svc.Delete(ctx, 2, "exp-1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("Delete() other owner error = %v, want ErrForbidden", err)
	}

	got, err := svc.Update(ctx, 1, "exp-1", UpdateParams{Category: strPtr("utilities")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Category != "utilities" || got.To != "Landlord" {
		t.Errorf("Update() = %+v", got)
	}
}

func TestCategories(t *testing.T) {
	got := Categories()
	if len(got) != 11 {
		t.Fatalf("len(Categories()) = %d, want 11", len(got))
	}
	got[0] = "changed"
	if Categories()[0] != "rent" {
		t.Error("Categories must return a copy")
	}
}
