package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/order"
	"gochop/internal/core/domain/model/rider"
	"gochop/internal/core/domain/services"
	"gochop/internal/core/ports"
	"gochop/internal/pkg/errs"
	"gochop/internal/pkg/lockgroup"
)

// ChangeOrderStatusCommandHandler is the order state machine. It loads the
// order, authorizes the actor, applies the transition with its side effects,
// and commits order and rider mutations in one transaction.
//
// Side effects per target status:
//   - AssignedToRider: reserves the rider named in the payload; the rider
//     must be online and available, and a concurrent reservation loses with
//     rider.ErrRiderUnavailable when the conditional update misses.
//   - Cancelled: records who cancelled and why, refunds completed card
//     payments (failure is recorded, never fatal), and frees the rider.
//   - Delivered: stamps the actual delivery time, frees the rider, and
//     credits the order's delivery fee to the rider's earnings.
//   - Accepted: sets the estimated delivery time from the restaurant's
//     preparation minutes.
//
// Transitions of the same order serialize on an in-process lock so the
// status history stays ordered; cross-process races resolve through the
// repositories' version checks. Notifications fire after the commit and can
// never fail the transition: the customer hears about every transition, and
// an assignment additionally notifies the reserved rider.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	locks      *lockgroup.LockGroup
	dispatcher services.Dispatcher
	payments   ports.PaymentGateway
	notifier   ports.Notifier
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	locks *lockgroup.LockGroup,
	dispatcher services.Dispatcher,
	payments ports.PaymentGateway,
	notifier ports.Notifier,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		dispatcher: dispatcher,
		payments:   payments,
		notifier:   notifier,
	}
}

// Handle processes the transition command.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.locks.Lock(cmd.OrderID().String())
	defer h.locks.Unlock(cmd.OrderID().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.AuthorizeTransition(cmd.ActorRole(), cmd.Target()); err != nil {
		return err
	}
	if err = h.checkOwnership(ctx, uow, o, cmd); err != nil {
		return err
	}

	var assignedRider *rider.Rider

	now := time.Now()
	switch cmd.Target() {
	case order.StatusAssignedToRider:
		assignedRider, err = h.assignRider(ctx, uow, o, cmd, now)
	case order.StatusCancelled:
		err = h.cancel(ctx, uow, o, cmd, now)
	case order.StatusDelivered:
		err = h.deliver(ctx, uow, o, cmd, now)
	case order.StatusAccepted:
		err = h.accept(ctx, uow, o, cmd, now)
	default:
		err = o.ChangeStatus(cmd.Target(), now, cmd.Note())
	}
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, o.CustomerID().String(), "Order update",
		fmt.Sprintf("Your order is now %s", cmd.Target()))

	if assignedRider != nil {
		h.notifier.Notify(ctx, assignedRider.UserID().String(), "New delivery assignment",
			fmt.Sprintf("You have been assigned order %s", o.ID()))
	}

	return nil
}

// checkOwnership resolves the actor against the loaded aggregates:
// restaurants must own the order's restaurant, riders must be the assigned
// rider, customers must have placed the order. Admin passes unconditionally.
func (h ChangeOrderStatusCommandHandler) checkOwnership(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	cmd ChangeOrderStatusCommand,
) error {
	switch cmd.ActorRole() {
	case kernel.RoleRestaurant:
		rest, err := uow.RestaurantRepository().Get(ctx, o.RestaurantID())
		if err != nil {
			return err
		}
		if !rest.OwnerID().IsEqual(cmd.ActorID()) {
			return errs.NewNotAuthorizedError(cmd.ActorRole().String(), "manage another restaurant's order")
		}
	case kernel.RoleRider:
		if o.RiderID() == nil || !o.RiderID().IsEqual(cmd.ActorID()) {
			return errs.NewNotAuthorizedError(cmd.ActorRole().String(), "update another rider's order")
		}
	case kernel.RoleCustomer:
		if !o.CustomerID().IsEqual(cmd.ActorID()) {
			return errs.NewNotAuthorizedError(cmd.ActorRole().String(), "cancel another customer's order")
		}
	default:
	}
	return nil
}

func (h ChangeOrderStatusCommandHandler) assignRider(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	cmd ChangeOrderStatusCommand,
	now time.Time,
) (*rider.Rider, error) {
	if cmd.RiderID() == nil {
		return nil, errs.NewValueIsRequiredError("riderId")
	}

	r, err := uow.RiderRepository().Get(ctx, *cmd.RiderID())
	if err != nil {
		return nil, err
	}

	note := cmd.Note()
	if note == "" {
		note = "Assigned to rider"
	}
	if err = h.dispatcher.Reserve(o, r, now, note); err != nil {
		return nil, err
	}

	// The conditional update is where a concurrent reservation of the same
	// rider loses: the winner bumped the version, so this update matches
	// zero rows.
	if err = uow.RiderRepository().Update(ctx, r); err != nil {
		if errors.Is(err, errs.ErrConcurrencyConflict) {
			return nil, rider.ErrRiderUnavailable
		}
		return nil, err
	}
	return r, nil
}

func (h ChangeOrderStatusCommandHandler) cancel(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	cmd ChangeOrderStatusCommand,
	now time.Time,
) error {
	if err := o.Cancel(cmd.ActorRole(), cmd.Note(), now); err != nil {
		return err
	}

	if o.Payment().IsRefundable() {
		refundErr := h.payments.Refund(ctx, o.Payment().ExternalPaymentID(), o.Totals().Total)
		if err := o.SetRefundOutcome(refundErr == nil); err != nil {
			return err
		}
	}

	return h.releaseRider(ctx, uow, o)
}

func (h ChangeOrderStatusCommandHandler) deliver(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	cmd ChangeOrderStatusCommand,
	now time.Time,
) error {
	if err := o.Deliver(now, cmd.Note()); err != nil {
		return err
	}

	if o.RiderID() == nil {
		return nil
	}

	r, err := uow.RiderRepository().Get(ctx, *o.RiderID())
	if err != nil {
		return err
	}
	if err = h.dispatcher.Release(r); err != nil {
		return err
	}
	if err = r.CreditEarnings(o.Totals().DeliveryFee); err != nil {
		return err
	}
	return uow.RiderRepository().Update(ctx, r)
}

func (h ChangeOrderStatusCommandHandler) accept(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	cmd ChangeOrderStatusCommand,
	now time.Time,
) error {
	rest, err := uow.RestaurantRepository().Get(ctx, o.RestaurantID())
	if err != nil {
		return err
	}
	return o.Accept(now, rest.Policy().PreparationMinutes, cmd.Note())
}

func (h ChangeOrderStatusCommandHandler) releaseRider(ctx context.Context, uow UoW, o *order.Order) error {
	if o.RiderID() == nil {
		return nil
	}

	r, err := uow.RiderRepository().Get(ctx, *o.RiderID())
	if err != nil {
		return err
	}
	if err = h.dispatcher.Release(r); err != nil {
		return err
	}
	return uow.RiderRepository().Update(ctx, r)
}
