package restaurant

import (
	"fmt"

	"gochop/internal/pkg/errs"
)

// Status is the restaurant's operating state. Orders are only accepted
// while the restaurant is open.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusOpen means the restaurant accepts new orders.
	StatusOpen

	// StatusClosed means the restaurant is not operating.
	StatusClosed

	// StatusBusy means the kitchen is saturated and rejects new orders.
	StatusBusy
)

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusOpen:   "open",
		StatusClosed: "closed",
		StatusBusy:   "busy",
	}
}

// StatusFromString parses a restaurant status from its wire representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"restaurant status is invalid", fmt.Errorf("%q is not a valid restaurant status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"restaurant status is invalid", fmt.Errorf("%d is not a valid restaurant status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// This method implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getValidStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
