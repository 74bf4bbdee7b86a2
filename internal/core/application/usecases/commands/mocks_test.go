package commands_test

import (
	"context"
	"testing"
	"time"

	"gochop/internal/core/application/usecases/commands"
	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/order"
	"gochop/internal/core/domain/model/restaurant"
	"gochop/internal/core/domain/model/rider"
	"gochop/internal/core/domain/services"
	"gochop/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllReadyForPickup(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Add(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Update(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderRepository) GetAllAvailable(ctx context.Context) ([]*rider.Rider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rider.Rider), args.Error(1)
}

type MockRestaurantRepository struct{ mock.Mock }

func (m *MockRestaurantRepository) Add(ctx context.Context, r *restaurant.Restaurant) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRestaurantRepository) Update(ctx context.Context, r *restaurant.Restaurant) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.Restaurant), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RiderRepository() ports.RiderRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderRepository)
}

func (m *MockUoW) RestaurantRepository() ports.RestaurantRepository {
	args := m.Called()
	return args.Get(0).(ports.RestaurantRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockRiderUoW struct{ mock.Mock }

func (m *MockRiderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRiderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRiderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRiderUoW) RiderRepository() ports.RiderRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderRepository)
}

type MockRiderUoWFactory struct{ mock.Mock }

func (m *MockRiderUoWFactory) Create() commands.RiderUoW {
	args := m.Called()
	return args.Get(0).(commands.RiderUoW)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Charge(
	ctx context.Context,
	amount float64,
	token string,
	description string,
) (string, error) {
	args := m.Called(ctx, amount, token, description)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, paymentID string, amount float64) error {
	args := m.Called(ctx, paymentID, amount)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, recipientID string, title string, body string) {
	m.Called(ctx, recipientID, title, body)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return kernel.GeoPoint{}, args.Error(1)
	}
	return args.Get(0).(kernel.GeoPoint), args.Error(1)
}

type MockLocationPublisher struct{ mock.Mock }

func (m *MockLocationPublisher) Publish(
	ctx context.Context,
	orderID kernel.UUID,
	riderID kernel.UUID,
	point kernel.GeoPoint,
) {
	m.Called(ctx, orderID, riderID, point)
}

// Fixtures shared by the handler tests below.

func fixtureRestaurant(t *testing.T, ownerID kernel.UUID) (*restaurant.Restaurant, kernel.UUID) {
	t.Helper()

	menuItemID := kernel.NewUUID()
	rest, err := restaurant.NewRestaurant(
		kernel.NewUUID(), ownerID, "Mama Nkechi Kitchen",
		restaurant.PricingPolicy{
			MinimumOrder:       5,
			DeliveryFee:        5,
			TaxPercentage:      7.5,
			PreparationMinutes: 30,
		},
	)
	require.NoError(t, err)

	item, err := restaurant.NewMenuItem(menuItemID, "Jollof Rice", 10, nil, true, nil)
	require.NoError(t, err)
	require.NoError(t, rest.AddMenuItem(item))

	return rest, menuItemID
}

func fixtureCashPayment(t *testing.T) order.Payment {
	t.Helper()
	payment, err := order.NewPayment(order.PaymentMethodCash, order.PaymentStatusPending, "")
	require.NoError(t, err)
	return payment
}

func fixtureCardPayment(t *testing.T) order.Payment {
	t.Helper()
	payment, err := order.NewPayment(order.PaymentMethodCard, order.PaymentStatusCompleted, "pay_test_123")
	require.NoError(t, err)
	return payment
}

func fixtureOrder(t *testing.T, customerID, restaurantID kernel.UUID, payment order.Payment) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), "Jollof Rice", 10, 2, nil)
	require.NoError(t, err)

	address, err := order.NewAddress("12 Allen Avenue, Ikeja", nil, "")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), customerID, restaurantID,
		[]order.Item{item},
		order.Totals{Subtotal: 20, TaxAmount: 1.5, DeliveryFee: 5, Total: 26.5},
		payment, address, time.Now(),
	)
	require.NoError(t, err)
	return o
}

func fixtureOnlineRider(t *testing.T) *rider.Rider {
	t.Helper()

	r, err := rider.NewRider(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	online := rider.StatusOnline
	available := true
	require.NoError(t, r.ChangeAvailability(&online, &available))
	return r
}

func fixtureLines(menuItemID kernel.UUID) []services.LineRequest {
	return []services.LineRequest{{MenuItemID: menuItemID, Quantity: 2}}
}
