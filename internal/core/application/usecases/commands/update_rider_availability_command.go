package commands

import (
	"errors"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/rider"
	"gochop/internal/pkg/errs"
	"gochop/internal/pkg/guard"
)

var ErrUpdateRiderAvailabilityCommandIsNotConstructed = errors.New(
	"UpdateRiderAvailabilityCommand must be created via NewUpdateRiderAvailabilityCommand constructor",
)

// UpdateRiderAvailabilityCommand represents a rider toggling duty status
// and availability. Nil fields leave the corresponding state untouched.
type UpdateRiderAvailabilityCommand struct { //nolint:recvcheck //using for validation
	riderID     kernel.UUID
	status      *rider.Status
	isAvailable *bool

	guard guard.ConstructorGuard
}

// NewUpdateRiderAvailabilityCommand creates an availability update request.
// At least one of status and isAvailable must be present.
func NewUpdateRiderAvailabilityCommand(
	riderID kernel.UUID,
	status *rider.Status,
	isAvailable *bool,
) (UpdateRiderAvailabilityCommand, error) {
	cmd := UpdateRiderAvailabilityCommand{
		status:      status,
		isAvailable: isAvailable,
		guard:       guard.NewConstructorGuard(),
	}

	if err := riderID.Validate(); err != nil {
		return UpdateRiderAvailabilityCommand{}, err
	}
	cmd.riderID = riderID

	if status == nil && isAvailable == nil {
		return UpdateRiderAvailabilityCommand{}, errs.NewValueIsRequiredError("status or isAvailable")
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return UpdateRiderAvailabilityCommand{}, err
		}
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateRiderAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRiderAvailabilityCommandIsNotConstructed)
}

// RiderID returns the id of the rider being updated.
func (c UpdateRiderAvailabilityCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Status returns the requested duty status, nil to leave unchanged.
func (c UpdateRiderAvailabilityCommand) Status() *rider.Status {
	return c.status
}

// IsAvailable returns the requested availability, nil to leave unchanged.
func (c UpdateRiderAvailabilityCommand) IsAvailable() *bool {
	return c.isAvailable
}
