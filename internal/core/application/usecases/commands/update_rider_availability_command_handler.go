package commands

import (
	"context"
)

// UpdateRiderAvailabilityCommandHandler applies a rider's duty status and
// availability toggle. The domain rejects becoming available while an
// active order is held, and going offline forces unavailability.
type UpdateRiderAvailabilityCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewUpdateRiderAvailabilityCommandHandler creates a handler for availability updates.
func NewUpdateRiderAvailabilityCommandHandler(uowFactory RiderUoWFactory) UpdateRiderAvailabilityCommandHandler {
	return UpdateRiderAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the availability update command.
func (h UpdateRiderAvailabilityCommandHandler) Handle(ctx context.Context, cmd UpdateRiderAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.RiderRepository().Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}

	if err = r.ChangeAvailability(cmd.Status(), cmd.IsAvailable()); err != nil {
		return err
	}

	if err = uow.RiderRepository().Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
