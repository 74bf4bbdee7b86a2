package commands

import (
	"context"

	"gochop/internal/core/domain/model/rider"
)

// CreateRiderCommandHandler onboards a new rider. Riders start offline and
// unavailable; they go on duty through the availability update.
type CreateRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewCreateRiderCommandHandler creates a handler for rider onboarding.
func NewCreateRiderCommandHandler(uowFactory RiderUoWFactory) CreateRiderCommandHandler {
	return CreateRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rider onboarding command.
func (h CreateRiderCommandHandler) Handle(ctx context.Context, cmd CreateRiderCommand) error {
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

	r, err := rider.NewRider(cmd.RiderID(), cmd.UserID())
	if err != nil {
		return err
	}

	if err = uow.RiderRepository().Add(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
