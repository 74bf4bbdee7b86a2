package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/order"
)

func TestStatusFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    order.Status
		wantErr bool
	}{
		{input: "pending", want: order.StatusPending},
		{input: "accepted", want: order.StatusAccepted},
		{input: "preparing", want: order.StatusPreparing},
		{input: "ready_for_pickup", want: order.StatusReadyForPickup},
		{input: "assigned_to_rider", want: order.StatusAssignedToRider},
		{input: "picked_up", want: order.StatusPickedUp},
		{input: "on_the_way", want: order.StatusOnTheWay},
		{input: "delivered", want: order.StatusDelivered},
		{input: "cancelled", want: order.StatusCancelled},
		{input: "unknown", wantErr: true},
		{input: "", wantErr: true},
		{input: "DELIVERED", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			status, err := order.StatusFromString(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, order.StatusUnknown, status)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
			assert.Equal(t, tt.input, status.String())
		})
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("all named statuses are valid", func(t *testing.T) {
		for _, status := range []order.Status{
			order.StatusPending, order.StatusAccepted, order.StatusPreparing,
			order.StatusReadyForPickup, order.StatusAssignedToRider, order.StatusPickedUp,
			order.StatusOnTheWay, order.StatusDelivered, order.StatusCancelled,
		} {
			require.NoError(t, status.Validate(), status.String())
		}
	})

	t.Run("unknown and out of range are invalid", func(t *testing.T) {
		assert.Error(t, order.StatusUnknown.Validate())
		assert.Error(t, order.Status(42).Validate())
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.StatusDelivered.IsTerminal())
	assert.True(t, order.StatusCancelled.IsTerminal())

	for _, status := range []order.Status{
		order.StatusPending, order.StatusAccepted, order.StatusPreparing,
		order.StatusReadyForPickup, order.StatusAssignedToRider,
		order.StatusPickedUp, order.StatusOnTheWay,
	} {
		assert.False(t, status.IsTerminal(), status.String())
	}
}

func TestStatus_RequiresRider(t *testing.T) {
	assert.True(t, order.StatusAssignedToRider.RequiresRider())
	assert.True(t, order.StatusPickedUp.RequiresRider())
	assert.True(t, order.StatusOnTheWay.RequiresRider())

	assert.False(t, order.StatusPending.RequiresRider())
	assert.False(t, order.StatusDelivered.RequiresRider())
	assert.False(t, order.StatusCancelled.RequiresRider())
}

func TestStatus_AllowedForRole(t *testing.T) {
	all := []order.Status{
		order.StatusPending, order.StatusAccepted, order.StatusPreparing,
		order.StatusReadyForPickup, order.StatusAssignedToRider, order.StatusPickedUp,
		order.StatusOnTheWay, order.StatusDelivered, order.StatusCancelled,
	}

	t.Run("admin may request any valid status", func(t *testing.T) {
		for _, status := range all {
			assert.True(t, status.AllowedForRole(kernel.RoleAdmin), status.String())
		}
		assert.False(t, order.StatusUnknown.AllowedForRole(kernel.RoleAdmin))
	})

	t.Run("restaurant targets", func(t *testing.T) {
		allowed := map[order.Status]bool{
			order.StatusAccepted:       true,
			order.StatusPreparing:      true,
			order.StatusReadyForPickup: true,
			order.StatusCancelled:      true,
		}
		for _, status := range all {
			assert.Equal(t, allowed[status], status.AllowedForRole(kernel.RoleRestaurant), status.String())
		}
	})

	t.Run("rider targets", func(t *testing.T) {
		allowed := map[order.Status]bool{
			order.StatusPickedUp:  true,
			order.StatusOnTheWay:  true,
			order.StatusDelivered: true,
		}
		for _, status := range all {
			assert.Equal(t, allowed[status], status.AllowedForRole(kernel.RoleRider), status.String())
		}
	})

	t.Run("customer targets", func(t *testing.T) {
		for _, status := range all {
			assert.Equal(t, status == order.StatusCancelled, status.AllowedForRole(kernel.RoleCustomer), status.String())
		}
	})

	t.Run("unknown role is never allowed", func(t *testing.T) {
		for _, status := range all {
			assert.False(t, status.AllowedForRole(kernel.RoleUnknown), status.String())
		}
	})
}
