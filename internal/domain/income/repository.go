package income

import "context"

// Repository defines the interface for income data access
// This interface is defined in the domain layer, but implemented in the infrastructure layer
type Repository interface {
	// Create stores a validated income and returns it with ID and timestamps set
	Create(ctx context.Context, in *Income) (*Income, error)

	// GetByID retrieves an income by its ID
	GetByID(ctx context.Context, id string) (*Income, error)

	// ListByUserID retrieves all incomes for a specific user, newest first
	ListByUserID(ctx context.Context, userID int64) ([]*Income, error)

	// Update overwrites the stored income and stamps updated_at
	Update(ctx context.Context, in *Income) (*Income, error)

	// Delete removes an income
	Delete(ctx context.Context, id string) error
}
