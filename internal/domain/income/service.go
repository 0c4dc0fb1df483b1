package income

import (
	"context"
)

// Service contains the business logic for income operations.
// Every operation takes the owner explicitly; records of other users are ErrForbidden.
type Service struct {
	repo Repository
}

// NewService creates a new income service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Income, error) {
	if userID <= 0 {
		return nil, ErrInvalidUser
	}
	return s.repo.ListByUserID(ctx, userID)
}

// Get retrieves an income and checks it belongs to userID
func (s *Service) Get(ctx context.Context, userID int64, id string) (*Income, error) {
	if userID <= 0 {
		return nil, ErrInvalidUser
	}

	in, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.UserID != userID {
		return nil, ErrForbidden
	}
	return in, nil
}

// Create validates params and stores a new income for userID.
func (s *Service) Create(ctx context.Context, userID int64, params CreateParams) (*Income, error) {
	if userID <= 0 {
		return nil, ErrInvalidUser
	}

	in, err := params.record(userID)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, in)
}

// Update merges params onto the stored income and revalidates the result before saving.
func (s *Service) Update(ctx context.Context, userID int64, id string, params UpdateParams) (*Income, error) {
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
