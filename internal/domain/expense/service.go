package expense

import (
	"context"
)

// Service contains the business logic for expense operations.
// Every operation takes the owner explicitly; records of other users are ErrForbidden.
type Service struct {
	repo Repository
}

// NewService creates a new expense service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Expense, error) {
	if userID <= 0 {
		return nil, ErrInvalidUser
	}
	return s.repo.ListByUserID(ctx, userID)
}

// Get retrieves an expense and checks it belongs to userID
func (s *Service) Get(ctx context.Context, userID int64, id string) (*Expense, error) {
	if userID <= 0 {
		return nil, ErrInvalidUser
	}

	exp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exp.UserID != userID {
		return nil, ErrForbidden
	}
	return exp, nil
}

// Create validates params and stores a new expense for userID.
func (s *Service) Create(ctx context.Context, userID int64, params CreateParams) (*Expense, error) {
	if userID <= 0 {
		return nil, ErrInvalidUser
	}

	exp, err := params.record(userID)
	if err != nil {
		return nil, err
	}
	if err := exp.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, exp)
}

// Update merges params onto the stored expense and revalidates the result before saving.
func (s *Service) Update(ctx context.Context, userID int64, id string, params UpdateParams) (*Expense, error) {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	merged, err := params.apply(current)
	if err != nil {
		return nil, err
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, merged)
}

func (s *Service) Delete(ctx context.Context, userID int64, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
