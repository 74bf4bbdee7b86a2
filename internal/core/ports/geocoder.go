package ports

import (
	"context"

	"gochop/internal/core/domain/model/kernel"
)

// Geocoder resolves a delivery address to coordinates at order-creation
// time. Failure is soft: the order is created without a geocoded point.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (kernel.GeoPoint, error)
}
