package ports

import (
	"context"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	// Add persists a new rider aggregate to storage.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Update persists changes to an existing rider aggregate. The update is
	// conditional on the aggregate's version: when another transaction
	// modified the rider in the meantime, zero rows match and the update
	// surfaces as errs.ConcurrencyConflictError. Reservation races resolve
	// through this path, with exactly one winner.
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError if the rider does not exist.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetAllAvailable retrieves every rider that is online, available, and
	// not bound to an order. Used by the auto-dispatch job.
	GetAllAvailable(ctx context.Context) ([]*rider.Rider, error)
}
