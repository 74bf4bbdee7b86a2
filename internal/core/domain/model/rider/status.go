package rider

import (
	"fmt"

	"gochop/internal/pkg/errs"
)

// Status is the rider's duty state.
//
// Offline riders receive no work. Online riders may be reserved for an
// order, which flips them to Busy until release.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusOffline means the rider is off duty.
	StatusOffline

	// StatusOnline means the rider is on duty and can be reserved.
	StatusOnline

	// StatusBusy means the rider is carrying an order.
	StatusBusy
)

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusOffline: "offline",
		StatusOnline:  "online",
		StatusBusy:    "busy",
	}
}

// StatusFromString parses a rider status from its wire representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"rider status is invalid", fmt.Errorf("%q is not a valid rider status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"rider status is invalid", fmt.Errorf("%d is not a valid rider status", s))
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
