package commands

import (
	"context"
	"time"

	"gochop/internal/core/ports"
)

// UpdateRiderLocationCommandHandler records a rider's location report and,
// when the rider is carrying an order, publishes the update so the
// customer can follow the delivery. Publishing is best effort and happens
// after the commit.
type UpdateRiderLocationCommandHandler struct {
	uowFactory RiderUoWFactory
	publisher  ports.LocationPublisher
}

// NewUpdateRiderLocationCommandHandler creates a handler for location reports.
func NewUpdateRiderLocationCommandHandler(
	uowFactory RiderUoWFactory,
	publisher ports.LocationPublisher,
) UpdateRiderLocationCommandHandler {
	return UpdateRiderLocationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the location report command.
func (h UpdateRiderLocationCommandHandler) Handle(ctx context.Context, cmd UpdateRiderLocationCommand) error {
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

	if err = r.MoveTo(cmd.Point(), time.Now()); err != nil {
		return err
	}

	if err = uow.RiderRepository().Update(ctx, r); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if orderID := r.CurrentOrderID(); orderID != nil {
		h.publisher.Publish(ctx, *orderID, r.ID(), cmd.Point())
	}

	return nil
}
