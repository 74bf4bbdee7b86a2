package commands

import (
	"errors"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/pkg/guard"
)

var ErrUpdateRiderLocationCommandIsNotConstructed = errors.New(
	"UpdateRiderLocationCommand must be created via NewUpdateRiderLocationCommand constructor",
)

// UpdateRiderLocationCommand represents a rider reporting a fresh location.
type UpdateRiderLocationCommand struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID
	point   kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateRiderLocationCommand creates a location report.
func NewUpdateRiderLocationCommand(riderID kernel.UUID, point kernel.GeoPoint) (UpdateRiderLocationCommand, error) {
	if err := errors.Join(riderID.Validate(), point.Validate()); err != nil {
		return UpdateRiderLocationCommand{}, err
	}

	return UpdateRiderLocationCommand{
		riderID: riderID,
		point:   point,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateRiderLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRiderLocationCommandIsNotConstructed)
}

// RiderID returns the id of the reporting rider.
func (c UpdateRiderLocationCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Point returns the reported location.
func (c UpdateRiderLocationCommand) Point() kernel.GeoPoint {
	return c.point
}
