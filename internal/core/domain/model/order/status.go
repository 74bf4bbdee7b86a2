package order

import (
	"fmt"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// The happy path runs
//
//	Pending ─> Accepted ─> Preparing ─> ReadyForPickup ─> AssignedToRider
//	        ─> PickedUp ─> OnTheWay ─> Delivered
//
// with Cancelled reachable from any non-terminal state. Delivered and
// Cancelled are terminal: no further transitions are accepted.
//
// Authorization is a per-role allowed-target check rather than a strict
// adjacency graph. A restaurant may, for example, move an order straight
// from Pending to Cancelled. Only the terminal guard constrains the
// current status for every role; customers are additionally limited to
// cancelling orders that are still Pending.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status right after checkout.
	StatusPending

	// StatusAccepted means the restaurant confirmed the order.
	StatusAccepted

	// StatusPreparing means the kitchen is working on the order.
	StatusPreparing

	// StatusReadyForPickup means the order awaits a rider.
	StatusReadyForPickup

	// StatusAssignedToRider means a rider has been reserved for the order.
	StatusAssignedToRider

	// StatusPickedUp means the rider collected the order from the restaurant.
	StatusPickedUp

	// StatusOnTheWay means the rider is en route to the customer.
	StatusOnTheWay

	// StatusDelivered means the order reached the customer. Terminal.
	StatusDelivered

	// StatusCancelled means the order was called off. Terminal.
	StatusCancelled
)

// getStatusStrings returns a map of Status values to their wire representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:         "unknown",
		StatusPending:         "pending",
		StatusAccepted:        "accepted",
		StatusPreparing:       "preparing",
		StatusReadyForPickup:  "ready_for_pickup",
		StatusAssignedToRider: "assigned_to_rider",
		StatusPickedUp:        "picked_up",
		StatusOnTheWay:        "on_the_way",
		StatusDelivered:       "delivered",
		StatusCancelled:       "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:         "pending",
		StatusAccepted:        "accepted",
		StatusPreparing:       "preparing",
		StatusReadyForPickup:  "ready_for_pickup",
		StatusAssignedToRider: "assigned_to_rider",
		StatusPickedUp:        "picked_up",
		StatusOnTheWay:        "on_the_way",
		StatusDelivered:       "delivered",
		StatusCancelled:       "cancelled",
	}
}

// StatusFromString parses a status from its wire representation.
// Returns an error for any input that is not a valid status name.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and any other values outside the defined set are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// Returns "unknown" for invalid status values.
// This method implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// RequiresRider reports whether an order in this status must hold a rider
// reference. The rider reference is retained for history after Delivered
// and Cancelled, so those statuses merely permit one.
func (s Status) RequiresRider() bool {
	return s == StatusAssignedToRider || s == StatusPickedUp || s == StatusOnTheWay
}

// getAllowedTargets returns, per role, the set of target statuses the role may
// request. Admin is handled separately since it may request any valid status.
func getAllowedTargets() map[kernel.Role]map[Status]bool {
	return map[kernel.Role]map[Status]bool{
		kernel.RoleRestaurant: {
			StatusAccepted:       true,
			StatusPreparing:      true,
			StatusReadyForPickup: true,
			StatusCancelled:      true,
		},
		kernel.RoleRider: {
			StatusPickedUp:  true,
			StatusOnTheWay:  true,
			StatusDelivered: true,
		},
		kernel.RoleCustomer: {
			StatusCancelled: true,
		},
	}
}

// AllowedForRole reports whether role may request a transition to this status.
// Ownership checks (restaurant owns the order, rider is the assigned rider,
// customer placed the order) are enforced separately by the caller.
func (s Status) AllowedForRole(role kernel.Role) bool {
	if role == kernel.RoleAdmin {
		return s.Validate() == nil
	}
	targets, ok := getAllowedTargets()[role]
	return ok && targets[s]
}
