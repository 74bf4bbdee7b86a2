package queries_test

import (
	"testing"
	"time"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

// mockAggregateTracker is a no-op tracker for seeding aggregates in query tests.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// createTestOrder builds a pending cash order with fixed totals.
func createTestOrder(t *testing.T, createdAt time.Time) *order.Order {
	t.Helper()
	return createTestOrderWithTotals(t, createdAt, order.Totals{
		Subtotal:    20.0,
		TaxAmount:   1.5,
		DeliveryFee: 5.0,
		Total:       26.5,
	})
}

// createTestOrderWithTotals builds a pending cash order with the given totals.
func createTestOrderWithTotals(t *testing.T, createdAt time.Time, totals order.Totals) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), "Jollof Rice", 10.0, 2, nil)
	require.NoError(t, err)

	payment, err := order.NewPayment(order.PaymentMethodCash, order.PaymentStatusPending, "")
	require.NoError(t, err)

	address, err := order.NewAddress("12 Allen Avenue, Ikeja", nil, "")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{item}, totals, payment, address, createdAt,
	)
	require.NoError(t, err)

	return o
}

// deliverTestOrder builds an order carried to Delivered by the given rider,
// created at createdAt and handed over at deliveredAt.
func deliverTestOrder(
	t *testing.T,
	riderID kernel.UUID,
	createdAt time.Time,
	deliveredAt time.Time,
	totals order.Totals,
) *order.Order {
	t.Helper()

	o := createTestOrderWithTotals(t, createdAt, totals)

	require.NoError(t, o.Accept(createdAt, 30, ""))
	require.NoError(t, o.ChangeStatus(order.StatusPreparing, createdAt, ""))
	require.NoError(t, o.ChangeStatus(order.StatusReadyForPickup, createdAt, ""))
	require.NoError(t, o.AssignRider(riderID, createdAt, ""))
	require.NoError(t, o.ChangeStatus(order.StatusPickedUp, createdAt, ""))
	require.NoError(t, o.ChangeStatus(order.StatusOnTheWay, createdAt, ""))
	require.NoError(t, o.Deliver(deliveredAt, ""))

	return o
}
