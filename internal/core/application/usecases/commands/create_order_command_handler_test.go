package commands_test

import (
	"errors"
	"testing"

	"gochop/internal/core/application/usecases/commands"
	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/order"
	"gochop/internal/core/domain/model/restaurant"
	"gochop/internal/core/domain/services"
	"gochop/internal/core/ports"
	"gochop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_CashSuccess(t *testing.T) {
	ctx := t.Context()

	ownerID := kernel.NewUUID()
	rest, menuItemID := fixtureRestaurant(t, ownerID)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), rest.ID(),
		fixtureLines(menuItemID), order.PaymentMethodCash, "",
		"12 Allen Avenue, Ikeja", "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	restRepo := new(MockRestaurantRepository)
	uow := new(MockUoW)
	geocoder := new(MockGeocoder)
	payments := new(MockPaymentGateway)
	notifier := new(MockNotifier)

	point, err := kernel.NewGeoPoint(3.3515, 6.6018)
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restRepo).Once(),
		restRepo.On("Get", ctx, rest.ID()).Return(rest, nil).Once(),
		geocoder.On("Geocode", ctx, "12 Allen Avenue, Ikeja").Return(point, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, ownerID.String(), "New Order", mock.AnythingOfType("string")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(
		factory, services.NewOrderPricer(), payments, geocoder, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	payments.AssertNotCalled(t, "Charge")
	uow.AssertExpectations(t)

	// Verify the persisted order: pending, priced, geocoded.
	added := orderRepo.Calls[0].Arguments[1].(*order.Order)
	assert.Equal(t, order.StatusPending, added.Status())
	assert.InDelta(t, 20.0, added.Totals().Subtotal, 0.001)
	assert.InDelta(t, 1.5, added.Totals().TaxAmount, 0.001)
	assert.InDelta(t, 26.5, added.Totals().Total, 0.001)
	require.NotNil(t, added.Address().Point())
	geocoded, err := added.Address().Point().IsEqual(point)
	require.NoError(t, err)
	assert.True(t, geocoded)
	assert.Equal(t, order.PaymentMethodCash, added.Payment().Method())
	assert.Equal(t, order.PaymentStatusPending, added.Payment().Status())
}

func TestCreateOrderCommandHandler_Handle_CardSuccess(t *testing.T) {
	ctx := t.Context()

	ownerID := kernel.NewUUID()
	rest, menuItemID := fixtureRestaurant(t, ownerID)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), rest.ID(),
		fixtureLines(menuItemID), order.PaymentMethodCard, "tok_visa",
		"12 Allen Avenue, Ikeja", "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	restRepo := new(MockRestaurantRepository)
	uow := new(MockUoW)
	geocoder := new(MockGeocoder)
	payments := new(MockPaymentGateway)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restRepo).Once(),
		restRepo.On("Get", ctx, rest.ID()).Return(rest, nil).Once(),
		geocoder.On("Geocode", ctx, "12 Allen Avenue, Ikeja").
			Return(nil, errors.New("geocoder down")).
			Once(),
		payments.On("Charge", ctx, 26.5, "tok_visa", mock.AnythingOfType("string")).
			Return("pay_abc", nil).
			Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, ownerID.String(), "New Order", mock.AnythingOfType("string")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(
		factory, services.NewOrderPricer(), payments, geocoder, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	payments.AssertExpectations(t)

	// Geocoding failed, so the order carries no point; the card charge
	// completed before persistence.
	added := orderRepo.Calls[0].Arguments[1].(*order.Order)
	assert.Nil(t, added.Address().Point())
	assert.Equal(t, order.PaymentStatusCompleted, added.Payment().Status())
	assert.Equal(t, "pay_abc", added.Payment().ExternalPaymentID())
}

func TestCreateOrderCommandHandler_Handle_PaymentDeclined(t *testing.T) {
	ctx := t.Context()

	rest, menuItemID := fixtureRestaurant(t, kernel.NewUUID())

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), rest.ID(),
		fixtureLines(menuItemID), order.PaymentMethodCard, "tok_declined",
		"12 Allen Avenue, Ikeja", "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	restRepo := new(MockRestaurantRepository)
	uow := new(MockUoW)
	geocoder := new(MockGeocoder)
	payments := new(MockPaymentGateway)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restRepo).Once(),
		restRepo.On("Get", ctx, rest.ID()).Return(rest, nil).Once(),
		geocoder.On("Geocode", ctx, "12 Allen Avenue, Ikeja").
			Return(nil, errors.New("geocoder down")).
			Once(),
		payments.On("Charge", ctx, 26.5, "tok_declined", mock.AnythingOfType("string")).
			Return("", ports.ErrPaymentFailed).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(
		factory, services.NewOrderPricer(), payments, geocoder, notifier)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, ports.ErrPaymentFailed)

	// Nothing persisted, no notification.
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_RestaurantClosed(t *testing.T) {
	ctx := t.Context()

	rest, menuItemID := fixtureRestaurant(t, kernel.NewUUID())
	require.NoError(t, rest.ChangeStatus(restaurant.StatusClosed))

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), rest.ID(),
		fixtureLines(menuItemID), order.PaymentMethodCash, "",
		"12 Allen Avenue, Ikeja", "",
	)
	require.NoError(t, err)

	restRepo := new(MockRestaurantRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restRepo).Once(),
		restRepo.On("Get", ctx, rest.ID()).Return(rest, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(
		factory, services.NewOrderPricer(),
		new(MockPaymentGateway), new(MockGeocoder), new(MockNotifier))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCreateOrderCommandHandler_Handle_RestaurantNotFound(t *testing.T) {
	ctx := t.Context()

	restaurantID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), restaurantID,
		fixtureLines(kernel.NewUUID()), order.PaymentMethodCash, "",
		"12 Allen Avenue, Ikeja", "",
	)
	require.NoError(t, err)

	restRepo := new(MockRestaurantRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restRepo).Once(),
		restRepo.On("Get", ctx, restaurantID).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(
		factory, services.NewOrderPricer(),
		new(MockPaymentGateway), new(MockGeocoder), new(MockNotifier))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(
		factory, services.NewOrderPricer(),
		new(MockPaymentGateway), new(MockGeocoder), new(MockNotifier))
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		fixtureLines(kernel.NewUUID()), order.PaymentMethodCash, "",
		"12 Allen Avenue, Ikeja", "",
	)
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(
		factory, services.NewOrderPricer(),
		new(MockPaymentGateway), new(MockGeocoder), new(MockNotifier))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "begin error")
}
