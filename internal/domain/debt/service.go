package debt

import (
	"context"
	"time"
)

// Service contains the business logic for debt operations
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new debt service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Debt, error) {
	if userID <= 0 {
		return nil, ErrInvalidUser
	}
	return s.repo.ListByUserID(ctx, userID)
}

// Get retrieves a debt, returning ErrForbidden when it belongs to someone else
func (s *Service) Get(ctx context.Context, userID int64, id string) (*Debt, error) {
	if userID <= 0 {
		return nil, ErrInvalidUser
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.UserID != userID {
		return nil, ErrForbidden
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, userID int64, params CreateParams) (*Debt, error) {
	if userID <= 0 {
		return nil, ErrInvalidUser
	}

	d, err := params.record(userID, s.now())
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, d)
}

// Update applies a partial update. The merged debt must still be valid as a whole.
func (s *Service) Update(ctx context.Context, userID int64, id string, params UpdateParams) (*Debt, error) {
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
