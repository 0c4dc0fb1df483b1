package expense

import "context"

// Repository defines the interface for expense data access
// This interface is defined in the domain layer, but implemented in the infrastructure layer
type Repository interface {
	// Create stores a validated expense and returns it with ID and timestamps set
	Create(ctx context.Context, exp *Expense) (*Expense, error)

	// GetByID retrieves an expense by its ID
	GetByID(ctx context.Context, id string) (*Expense, error)

	// ListByUserID retrieves all expenses for a specific user, newest first
	ListByUserID(ctx context.Context, userID int64) ([]*Expense, error)

	// Update overwrites the stored expense and stamps updated_at
	Update(ctx context.Context, exp *Expense) (*Expense, error)

	// Delete removes an expense
	Delete(ctx context.Context, id string) error
}
