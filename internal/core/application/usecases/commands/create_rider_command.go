package commands

import (
	"errors"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/pkg/guard"
)

var ErrCreateRiderCommandIsNotConstructed = errors.New(
	"CreateRiderCommand must be created via NewCreateRiderCommand constructor",
)

// CreateRiderCommand represents onboarding a new rider for a user account.
type CreateRiderCommand struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateRiderCommand creates a rider onboarding request.
func NewCreateRiderCommand(riderID kernel.UUID, userID kernel.UUID) (CreateRiderCommand, error) {
	if err := errors.Join(riderID.Validate(), userID.Validate()); err != nil {
		return CreateRiderCommand{}, err
	}

	return CreateRiderCommand{
		riderID: riderID,
		userID:  userID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRiderCommand) Validate() error {
	return c.guard.Validate(ErrCreateRiderCommandIsNotConstructed)
}

// RiderID returns the id the new rider will be created with.
func (c CreateRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

// UserID returns the id of the user account behind the rider.
func (c CreateRiderCommand) UserID() kernel.UUID {
	return c.userID
}
