package commands

import (
	"context"

	"gochop/internal/core/domain/model/order"
	"gochop/internal/pkg/errs"
)

// RateOrderCommandHandler applies post-delivery ratings: it fills the
// order's rating slots and folds the scores into the restaurant's and
// rider's running means, all in one transaction.
//
// Only the ordering customer may rate, only after delivery, and each slot
// at most once (a second attempt fails with order.ErrAlreadyRated).
type RateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewRateOrderCommandHandler creates a handler for order rating operations.
func NewRateOrderCommandHandler(uowFactory UoWFactory) RateOrderCommandHandler {
	return RateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rating command.
func (h RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) error {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !o.CustomerID().IsEqual(cmd.CustomerID()) {
		return errs.NewNotAuthorizedError("customer", "rate another customer's order")
	}

	if cmd.RestaurantScore() != nil {
		if err = h.rateRestaurant(ctx, uow, o, *cmd.RestaurantScore(), cmd.RestaurantComment()); err != nil {
			return err
		}
	}
	if cmd.RiderScore() != nil {
		if err = h.rateRider(ctx, uow, o, *cmd.RiderScore(), cmd.RiderComment()); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h RateOrderCommandHandler) rateRestaurant(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	score int,
	comment string,
) error {
	rating, err := order.NewRating(score, comment)
	if err != nil {
		return err
	}
	if err = o.RateRestaurant(rating); err != nil {
		return err
	}

	rest, err := uow.RestaurantRepository().Get(ctx, o.RestaurantID())
	if err != nil {
		return err
	}
	if err = rest.AddRating(score); err != nil {
		return err
	}
	return uow.RestaurantRepository().Update(ctx, rest)
}

func (h RateOrderCommandHandler) rateRider(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	score int,
	comment string,
) error {
	if o.RiderID() == nil {
		return errs.NewValueIsRequiredError("riderId")
	}

	rating, err := order.NewRating(score, comment)
	if err != nil {
		return err
	}
	if err = o.RateRider(rating); err != nil {
		return err
	}

	r, err := uow.RiderRepository().Get(ctx, *o.RiderID())
	if err != nil {
		return err
	}
	if err = r.AddRating(score); err != nil {
		return err
	}
	return uow.RiderRepository().Update(ctx, r)
}
