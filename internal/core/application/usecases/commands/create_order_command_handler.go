package commands

import (
	"context"
	"fmt"
	"time"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/order"
	"gochop/internal/core/domain/services"
	"gochop/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation:
// pricing the requested lines against the restaurant, charging card
// payments, geocoding the delivery address, and persisting the new order
// in Pending status.
//
// A declined card charge aborts the whole creation with
// ports.ErrPaymentFailed and nothing is persisted. Geocoding failure is
// soft: the order is created without a geocoded point. The restaurant
// owner's "New Order" notification fires after the commit and can never
// fail the creation.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	pricer     services.OrderPricer
	payments   ports.PaymentGateway
	geocoder   ports.Geocoder
	notifier   ports.Notifier
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	pricer services.OrderPricer,
	payments ports.PaymentGateway,
	geocoder ports.Geocoder,
	notifier ports.Notifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricer:     pricer,
		payments:   payments,
		geocoder:   geocoder,
		notifier:   notifier,
	}
}

// Handle processes the order creation command.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	rest, err := uow.RestaurantRepository().Get(ctx, cmd.RestaurantID())
	if err != nil {
		return err
	}

	items, totals, err := h.pricer.Price(rest, cmd.Lines(), 0)
	if err != nil {
		return err
	}

	var point *kernel.GeoPoint
	if geocoded, geocodeErr := h.geocoder.Geocode(ctx, cmd.Address()); geocodeErr == nil {
		point = &geocoded
	}

	address, err := order.NewAddress(cmd.Address(), point, cmd.Instructions())
	if err != nil {
		return err
	}

	payment, err := h.collectPayment(ctx, cmd, totals.Total)
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(), cmd.RestaurantID(),
		items, totals, payment, address, time.Now(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, rest.OwnerID().String(), "New Order",
		fmt.Sprintf("Order %s was placed at %s", newOrder.ID(), rest.Name()))

	return nil
}

func (h CreateOrderCommandHandler) collectPayment(
	ctx context.Context,
	cmd CreateOrderCommand,
	total float64,
) (order.Payment, error) {
	if cmd.PaymentMethod() != order.PaymentMethodCard {
		return order.NewPayment(cmd.PaymentMethod(), order.PaymentStatusPending, "")
	}

	paymentID, err := h.payments.Charge(ctx, total, cmd.PaymentToken(),
		fmt.Sprintf("GoChop order %s", cmd.OrderID()))
	if err != nil {
		return order.Payment{}, err
	}
	return order.NewPayment(order.PaymentMethodCard, order.PaymentStatusCompleted, paymentID)
}
