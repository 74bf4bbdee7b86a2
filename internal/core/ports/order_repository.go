package ports

import (
	"context"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The update is
	// conditional on the aggregate's version; a concurrent modification
	// surfaces as errs.ConcurrencyConflictError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError if the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllReadyForPickup retrieves orders waiting for a rider.
	// Used by the auto-dispatch job.
	GetAllReadyForPickup(ctx context.Context) ([]*order.Order, error)
}
