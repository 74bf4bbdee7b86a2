package commands

import (
	"errors"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/pkg/errs"
	"gochop/internal/pkg/guard"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand represents a customer rating a delivered order. Either
// or both of the restaurant and rider scores may be present; each fills
// its slot on the order at most once.
type RateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID

	restaurantScore   *int
	restaurantComment string
	riderScore        *int
	riderComment      string

	guard guard.ConstructorGuard
}

// NewRateOrderCommand creates a rating request. At least one score must be
// present; score range validation happens in the domain when the rating is
// applied.
func NewRateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	restaurantScore *int,
	restaurantComment string,
	riderScore *int,
	riderComment string,
) (RateOrderCommand, error) {
	cmd := RateOrderCommand{
		restaurantScore:   restaurantScore,
		restaurantComment: restaurantComment,
		riderScore:        riderScore,
		riderComment:      riderComment,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
	); err != nil {
		return RateOrderCommand{}, err
	}

	if restaurantScore == nil && riderScore == nil {
		return RateOrderCommand{}, errs.NewValueIsRequiredError("rating")
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

// OrderID returns the id of the order being rated.
func (c RateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the id of the rating customer.
func (c RateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantScore returns the restaurant score, nil when not rating the restaurant.
func (c RateOrderCommand) RestaurantScore() *int {
	return c.restaurantScore
}

// RestaurantComment returns the restaurant comment, possibly empty.
func (c RateOrderCommand) RestaurantComment() string {
	return c.restaurantComment
}

// RiderScore returns the rider score, nil when not rating the rider.
func (c RateOrderCommand) RiderScore() *int {
	return c.riderScore
}

// RiderComment returns the rider comment, possibly empty.
func (c RateOrderCommand) RiderComment() string {
	return c.riderComment
}

func (c *RateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *RateOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}
