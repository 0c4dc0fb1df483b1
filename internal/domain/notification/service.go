package notification

import (
	"context"
	"log"
)

// Service contains the business logic for device registration and push delivery
type Service struct {
	repo      Repository
	messenger Messenger
}

// NewService creates a new notification service. messenger may be nil, in which
// case pushes are logged and dropped.
func NewService(repo Repository, messenger Messenger) *Service {
	return &Service{repo: repo, messenger: messenger}
}

// RegisterDevice registers a device token for the authenticated user.
// If the token already belongs to another user, it is reassigned.
func (s *Service) RegisterDevice(ctx context.Context, params CreateDeviceTokenParams) (*DeviceToken, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpsertDeviceToken(ctx, params)
}

// UnregisterDevice removes one of the user's device tokens
func (s *Service) UnregisterDevice(ctx context.Context, userID int64, token string) error {
	if userID <= 0 {
		return ErrInvalidUser
	}
	if token == "" {
		return ErrInvalidToken
	}
	return s.repo.DeleteToken(ctx, userID, token)
}

// Recipients lists users with at least one active device
func (s *Service) Recipients(ctx context.Context) ([]int64, error) {
	return s.repo.ListUserIDsWithActiveTokens(ctx)
}

// SendToUser pushes a notification to every active device of the user.
// Returns the number of devices targeted.
func (s *Service) SendToUser(ctx context.Context, userID int64, title, body string, data map[string]string) (int, error) {
	if userID <= 0 {
		return 0, ErrInvalidUser
	}

	tokens, err := s.repo.GetActiveTokensByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, nil
	}

	if s.messenger == nil {
		log.Printf("Push skipped for user %d: messenger not configured", userID)
		return 0, nil
	}

	tokenStrings := make([]string, len(tokens))
	for i, t := range tokens {
		tokenStrings[i] = t.Token
	}

	if err := s.messenger.SendMulticast(ctx, tokenStrings, title, body, data); err != nil {
		return 0, err
	}
	return len(tokenStrings), nil
}

// DeactivateToken marks a token the push provider rejected as inactive
func (s *Service) DeactivateToken(ctx context.Context, token string) error {
	return s.repo.DeactivateToken(ctx, token)
}
