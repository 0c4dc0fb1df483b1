package notification

import "context"

// Repository defines the interface for device token data access.
// Defined in the domain layer, implemented in the infrastructure layer.
type Repository interface {
	// UpsertDeviceToken registers token for the user, reassigning it if another user held it
	UpsertDeviceToken(ctx context.Context, params CreateDeviceTokenParams) (*DeviceToken, error)
	GetActiveTokensByUserID(ctx context.Context, userID int64) ([]*DeviceToken, error)
	// ListUserIDsWithActiveTokens returns the users that can receive pushes
	ListUserIDsWithActiveTokens(ctx context.Context) ([]int64, error)
	DeactivateToken(ctx context.Context, token string) error
	// DeleteToken removes a token owned by userID; ErrDeviceTokenNotFound otherwise
	DeleteToken(ctx context.Context, userID int64, token string) error
}
