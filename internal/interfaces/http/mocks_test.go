package http

import (
	"context"
	"net/http"

	"homefront/internal/domain/dashboard"
	"homefront/internal/domain/debt"
	"homefront/internal/domain/expense"
	"homefront/internal/domain/income"
	"homefront/internal/domain/notification"
	"homefront/internal/domain/user"
	"homefront/internal/shared/middleware"
)

// MockExpenseRepo implements expense.Repository for testing
type MockExpenseRepo struct {
	CreateFunc       func(ctx context.Context, e *expense.Expense) (*expense.Expense, error)
	GetByIDFunc      func(ctx context.Context, id string) (*expense.Expense, error)
	ListByUserIDFunc func(ctx context.Context, userID int64) ([]*expense.Expense, error)
	UpdateFunc       func(ctx context.Context, e *expense.Expense) (*expense.Expense, error)
	DeleteFunc       func(ctx context.Context, id string) error
}

func (m *MockExpenseRepo) Create(ctx context.Context, e *expense.Expense) (*expense.Expense, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	created := *e
	created.ID = "exp-new"
	return &created, nil
}

func (m *MockExpenseRepo) GetByID(ctx context.Context, id string) (*expense.Expense, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, expense.ErrExpenseNotFound
}

func (m *MockExpenseRepo) ListByUserID(ctx context.Context, userID int64) ([]*expense.Expense, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockExpenseRepo) Update(ctx context.Context, e *expense.Expense) (*expense.Expense, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, e)
	}
	return e, nil
}

func (m *MockExpenseRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockIncomeRepo implements income.Repository for testing
type MockIncomeRepo struct {
	CreateFunc       func(ctx context.Context, in *income.Income) (*income.Income, error)
	GetByIDFunc      func(ctx context.Context, id string) (*income.Income, error)
	ListByUserIDFunc func(ctx context.Context, userID int64) ([]*income.Income, error)
	UpdateFunc       func(ctx context.Context, in *income.Income) (*income.Income, error)
	DeleteFunc       func(ctx context.Context, id string) error
}

func (m *MockIncomeRepo) Create(ctx context.Context, in *income.Income) (*income.Income, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	created := *in
	created.ID = "inc-new"
	return &created, nil
}

func (m *MockIncomeRepo) GetByID(ctx context.Context, id string) (*income.Income, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, income.ErrIncomeNotFound
}

func (m *MockIncomeRepo) ListByUserID(ctx context.Context, userID int64) ([]*income.Income, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockIncomeRepo) Update(ctx context.Context, in *income.Income) (*income.Income, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, in)
	}
	return in, nil
}

func (m *MockIncomeRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockDebtRepo implements debt.Repository for testing
type MockDebtRepo struct {
	CreateFunc       func(ctx context.Context, d *debt.Debt) (*debt.Debt, error)
	GetByIDFunc      func(ctx context.Context, id string) (*debt.Debt, error)
	ListByUserIDFunc func(ctx context.Context, userID int64) ([]*debt.Debt, error)
	UpdateFunc       func(ctx context.Context, d *debt.Debt) (*debt.Debt, error)
	DeleteFunc       func(ctx context.Context, id string) error
}

func (m *MockDebtRepo) Create(ctx context.Context, d *debt.Debt) (*debt.Debt, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, d)
	}
	created := *d
	created.ID = "debt-new"
	return &created, nil
}

func (m *MockDebtRepo) GetByID(ctx context.Context, id string) (*debt.Debt, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, debt.ErrDebtNotFound
}

func (m *MockDebtRepo) ListByUserID(ctx context.Context, userID int64) ([]*debt.Debt, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockDebtRepo) Update(ctx context.Context, d *debt.Debt) (*debt.Debt, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, d)
	}
	return d, nil
}

func (m *MockDebtRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockUserRepo implements user.Repository for testing
type MockUserRepo struct {
	CreateFunc     func(ctx context.Context, params user.CreateUserParams) (*user.User, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*user.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
	UpdateFunc     func(ctx context.Context, userID int64, params user.UpdateUserParams) (*user.User, error)
}

func (m *MockUserRepo) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return &user.User{ID: 1, Email: params.Email, Name: params.Name, PasswordHash: params.PasswordHash}, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, user.ErrUserNotFound
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, user.ErrUserNotFound
}

func (m *MockUserRepo) List(ctx context.Context) ([]*user.User, error) {
	return nil, nil
}

func (m *MockUserRepo) Update(ctx context.Context, userID int64, params user.UpdateUserParams) (*user.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, params)
	}
	return nil, user.ErrUserNotFound
}

// MockNotificationRepo implements notification.Repository for testing
type MockNotificationRepo struct {
	UpsertDeviceTokenFunc func(ctx context.Context, params notification.CreateDeviceTokenParams) (*notification.DeviceToken, error)
	DeleteTokenFunc       func(ctx context.Context, userID int64, token string) error
}

func (m *MockNotificationRepo) UpsertDeviceToken(ctx context.Context, params notification.CreateDeviceTokenParams) (*notification.DeviceToken, error) {
	if m.UpsertDeviceTokenFunc != nil {
		return m.UpsertDeviceTokenFunc(ctx, params)
	}
	return &notification.DeviceToken{ID: "1", UserID: params.UserID, Token: params.Token, DeviceType: params.DeviceType, IsActive: true}, nil
}

func (m *MockNotificationRepo) GetActiveTokensByUserID(ctx context.Context, userID int64) ([]*notification.DeviceToken, error) {
	return nil, nil
}

func (m *MockNotificationRepo) ListUserIDsWithActiveTokens(ctx context.Context) ([]int64, error) {
	return nil, nil
}

func (m *MockNotificationRepo) DeactivateToken(ctx context.Context, token string) error {
	return nil
}

func (m *MockNotificationRepo) DeleteToken(ctx context.Context, userID int64, token string) error {
	if m.DeleteTokenFunc != nil {
		return m.DeleteTokenFunc(ctx, userID, token)
	}
	return nil
}

// MockSummaryProvider implements SummaryProvider for testing
type MockSummaryProvider struct {
	SummaryFunc func(ctx context.Context, userID int64) (*dashboard.Summary, error)
}

func (m *MockSummaryProvider) Summary(ctx context.Context, userID int64) (*dashboard.Summary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, userID)
	}
	return &dashboard.Summary{UserID: userID}, nil
}

func withUser(req *http.Request, userID int64) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
}
