package ports

import (
	"context"

	"gochop/internal/core/domain/model/kernel"
)

// LocationPublisher streams rider location updates for orders in flight.
// The transport is opaque to the core; publishing is best effort and
// implementations swallow and log failures.
type LocationPublisher interface {
	Publish(ctx context.Context, orderID kernel.UUID, riderID kernel.UUID, point kernel.GeoPoint)
}
