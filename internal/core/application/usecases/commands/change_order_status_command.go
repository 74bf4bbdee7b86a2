package commands

import (
	"errors"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/order"
	"gochop/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a request to move an order to a target
// status on behalf of an authenticated actor. The optional rider id is the
// payload of an AssignedToRider transition; the optional note lands in the
// order's status history (and doubles as the cancellation reason).
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorRole kernel.Role
	actorID   kernel.UUID
	target    order.Status
	riderID   *kernel.UUID
	note      string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a transition request.
// The order id, actor id, role and target status must all be valid; a rider
// id, when present, must be valid too.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	actorRole kernel.Role,
	actorID kernel.UUID,
	target order.Status,
	riderID *kernel.UUID,
	note string,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		riderID: riderID,
		note:    note,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorRole(actorRole),
		cmd.setActorID(actorID),
		cmd.setTarget(target),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return ChangeOrderStatusCommand{}, err
		}
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the id of the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorRole returns the role of the requesting actor.
func (c ChangeOrderStatusCommand) ActorRole() kernel.Role {
	return c.actorRole
}

// ActorID returns the id of the requesting actor. For restaurants this is
// the owner's user id, for riders the rider id, for customers the customer id.
func (c ChangeOrderStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Target returns the requested target status.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

// RiderID returns the rider payload of an assignment, nil otherwise.
func (c ChangeOrderStatusCommand) RiderID() *kernel.UUID {
	return c.riderID
}

// Note returns the optional history note.
func (c ChangeOrderStatusCommand) Note() string {
	return c.note
}

func (c *ChangeOrderStatusCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ChangeOrderStatusCommand) setActorRole(role kernel.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.actorRole = role
	return nil
}

func (c *ChangeOrderStatusCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}

func (c *ChangeOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
