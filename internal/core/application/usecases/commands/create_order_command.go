package commands

import (
	"errors"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/order"
	"gochop/internal/core/domain/services"
	"gochop/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired       = errors.New("at least one order item is required")
	ErrAddressIsRequired      = errors.New("delivery address is required")
	ErrPaymentTokenIsRequired = errors.New("payment token is required for card payments")
)

// CreateOrderCommand represents a customer checkout: the restaurant, the
// requested lines, the payment method, and the delivery address.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), customerID, restaurantID,
//	    lines, order.PaymentMethodCard, "tok_visa",
//	    "12 Allen Avenue, Ikeja", "ring the bell",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customerID    kernel.UUID
	restaurantID  kernel.UUID
	lines         []services.LineRequest
	paymentMethod order.PaymentMethod
	paymentToken  string
	address       string
	instructions  string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates all ids, requires at least one line and a delivery address,
// and requires a payment token for card payments.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	lines []services.LineRequest,
	paymentMethod order.PaymentMethod,
	paymentToken string,
	address string,
	instructions string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		paymentToken: paymentToken,
		instructions: instructions,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setLines(lines),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setAddress(address),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	if paymentMethod == order.PaymentMethodCard && paymentToken == "" {
		return CreateOrderCommand{}, ErrPaymentTokenIsRequired
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the id the new order will be created with.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the id of the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantID returns the id of the restaurant being ordered from.
func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Lines returns the requested order lines.
func (c CreateOrderCommand) Lines() []services.LineRequest {
	return c.lines
}

// PaymentMethod returns how the customer pays.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// PaymentToken returns the method-specific charge token, empty for cash.
func (c CreateOrderCommand) PaymentToken() string {
	return c.paymentToken
}

// Address returns the free-text delivery address.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// Instructions returns the delivery instructions, possibly empty.
func (c CreateOrderCommand) Instructions() string {
	return c.instructions
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.restaurantID = id
	return nil
}

func (c *CreateOrderCommand) setLines(lines []services.LineRequest) error {
	if len(lines) == 0 {
		return ErrItemsAreRequired
	}
	c.lines = lines
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}

func (c *CreateOrderCommand) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}
	c.address = address
	return nil
}
