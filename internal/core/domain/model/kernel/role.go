package kernel

import (
	"fmt"

	"gochop/internal/pkg/errs"
)

// Role identifies the kind of actor performing an operation.
// Every state-changing request carries a Role, and the order state machine
// uses it to decide which status transitions the actor may perform.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleCustomer is the person who placed the order.
	RoleCustomer

	// RoleRestaurant is the restaurant preparing the order.
	RoleRestaurant

	// RoleRider is the courier delivering the order.
	RoleRider

	// RoleAdmin is a back-office operator with full transition rights.
	RoleAdmin
)

// getRoleStrings returns a map of Role values to their wire representations.
// All roles are included for string conversion.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "unknown",
		RoleCustomer:   "customer",
		RoleRestaurant: "restaurant",
		RoleRider:      "rider",
		RoleAdmin:      "admin",
	}
}

// getValidRoleStrings returns a map of only valid Role values.
// Only valid roles are included to support validation and parsing.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleCustomer:   "customer",
		RoleRestaurant: "restaurant",
		RoleRider:      "rider",
		RoleAdmin:      "admin",
	}
}

// RoleFromString parses a role from its wire representation.
// Valid inputs are "customer", "restaurant", "rider" and "admin".
// Returns an error for any other input, including the empty string.
//
// This function is used when reading roles from request headers
// or reconstructing entities from persistence.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role is invalid", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
//
// Valid roles are: RoleCustomer, RoleRestaurant, RoleRider, RoleAdmin.
// RoleUnknown (0) and any other values are invalid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire representation of the role.
// Returns "unknown" for invalid role values.
// This method implements the fmt.Stringer interface.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
