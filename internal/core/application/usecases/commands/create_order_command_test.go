package commands_test

import (
	"testing"

	"gochop/internal/core/application/usecases/commands"
	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/order"
	"gochop/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	// Arrange
	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	lines := fixtureLines(kernel.NewUUID())

	// Act
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, restaurantID,
		lines, order.PaymentMethodCash, "",
		"12 Allen Avenue, Ikeja", "ring the bell",
	)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, customerID, cmd.CustomerID())
	assert.Equal(t, restaurantID, cmd.RestaurantID())
	assert.Equal(t, lines, cmd.Lines())
	assert.Equal(t, order.PaymentMethodCash, cmd.PaymentMethod())
	assert.Equal(t, "12 Allen Avenue, Ikeja", cmd.Address())
	assert.Equal(t, "ring the bell", cmd.Instructions())
}

func TestNewCreateOrderCommand_CardRequiresToken(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		fixtureLines(kernel.NewUUID()), order.PaymentMethodCard, "",
		"12 Allen Avenue, Ikeja", "",
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrPaymentTokenIsRequired)
}

func TestNewCreateOrderCommand_CardWithToken(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		fixtureLines(kernel.NewUUID()), order.PaymentMethodCard, "tok_visa",
		"12 Allen Avenue, Ikeja", "",
	)

	require.NoError(t, err)
	assert.Equal(t, "tok_visa", cmd.PaymentToken())
}

func TestNewCreateOrderCommand_EmptyLines(t *testing.T) {
	testCases := []struct {
		name  string
		lines []services.LineRequest
	}{
		{name: "nil lines", lines: nil},
		{name: "empty lines", lines: []services.LineRequest{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := commands.NewCreateOrderCommand(
				kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
				tc.lines, order.PaymentMethodCash, "",
				"12 Allen Avenue, Ikeja", "",
			)

			require.Error(t, err)
			assert.ErrorIs(t, err, commands.ErrItemsAreRequired)
		})
	}
}

func TestNewCreateOrderCommand_EmptyAddress(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		fixtureLines(kernel.NewUUID()), order.PaymentMethodCash, "",
		"", "",
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrAddressIsRequired)
}

func TestNewCreateOrderCommand_InvalidIDs(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.UUID{}, kernel.UUID{}, kernel.UUID{},
		fixtureLines(kernel.NewUUID()), order.PaymentMethodCash, "",
		"12 Allen Avenue, Ikeja", "",
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_InvalidPaymentMethod(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		fixtureLines(kernel.NewUUID()), order.PaymentMethodUnknown, "",
		"12 Allen Avenue, Ikeja", "",
	)

	require.Error(t, err)
}

func TestCreateOrderCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.CreateOrderCommand

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
