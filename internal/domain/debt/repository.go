package debt

import "context"

// Repository defines the interface for debt data access
// This interface is defined in the domain layer, but implemented in the infrastructure layer
type Repository interface {
	// Create stores a validated debt and returns it with ID and timestamps set
	Create(ctx context.Context, d *Debt) (*Debt, error)

	// GetByID retrieves a debt by its ID
	GetByID(ctx context.Context, id string) (*Debt, error)

	// ListByUserID retrieves all debts for a specific user, smallest balance first
	ListByUserID(ctx context.Context, userID int64) ([]*Debt, error)

	// Update overwrites the stored debt and stamps updated_at
	Update(ctx context.Context, d *Debt) (*Debt, error)

	// Delete removes a debt
	Delete(ctx context.Context, id string) error
}
