package order

import (
	"fmt"

	"gochop/internal/pkg/errs"
)

// PaymentMethod is how the customer pays for the order.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined payment method.
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentMethodCash is paid to the rider on delivery.
	PaymentMethodCash

	// PaymentMethodCard is charged through the payment gateway at checkout.
	PaymentMethodCard

	// PaymentMethodWallet is debited from the customer's in-app balance.
	PaymentMethodWallet
)

func getValidPaymentMethodStrings() map[PaymentMethod]string {
	//nolint:exhaustive // PaymentMethodUnknown is intentionally excluded as it's invalid
	return map[PaymentMethod]string{
		PaymentMethodCash:   "cash",
		PaymentMethodCard:   "card",
		PaymentMethodWallet: "wallet",
	}
}

// PaymentMethodFromString parses a payment method from its wire representation.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getValidPaymentMethodStrings() {
		if str == s {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentMethod is invalid", fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	if _, ok := getValidPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentMethod is invalid", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the wire representation of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getValidPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatus is the settlement state of the order's payment.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentStatusPending means payment has not been collected yet.
	PaymentStatusPending

	// PaymentStatusCompleted means the charge went through.
	PaymentStatusCompleted

	// PaymentStatusFailed means the charge was attempted and rejected.
	PaymentStatusFailed

	// PaymentStatusRefunded means a completed charge was returned.
	PaymentStatusRefunded
)

func getValidPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentStatusUnknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentStatusPending:   "pending",
		PaymentStatusCompleted: "completed",
		PaymentStatusFailed:    "failed",
		PaymentStatusRefunded:  "refunded",
	}
}

// PaymentStatusFromString parses a payment status from its wire representation.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getValidPaymentStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus is invalid", fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentStatus is invalid", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the wire representation of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getValidPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// RefundStatus records the outcome of the refund attempted during cancellation
// of a card-paid order. RefundStatusNone means no refund was applicable.
type RefundStatus int

const (
	// RefundStatusNone means no refund was attempted.
	RefundStatusNone RefundStatus = iota

	// RefundStatusCompleted means the gateway confirmed the refund.
	RefundStatusCompleted

	// RefundStatusFailed means the refund attempt errored. The cancellation
	// still completes; reconciliation happens out of band.
	RefundStatusFailed
)

func getRefundStatusStrings() map[RefundStatus]string {
	return map[RefundStatus]string{
		RefundStatusNone:      "none",
		RefundStatusCompleted: "completed",
		RefundStatusFailed:    "failed",
	}
}

// RefundStatusFromString parses a refund status from its wire representation.
func RefundStatusFromString(s string) (RefundStatus, error) {
	for status, str := range getRefundStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return RefundStatusNone, errs.NewValueIsInvalidErrorWithCause(
		"refundStatus is invalid", fmt.Errorf("%q is not a valid refund status", s))
}

// String returns the wire representation of the refund status.
func (s RefundStatus) String() string {
	if str, ok := getRefundStatusStrings()[s]; ok {
		return str
	}
	return "none"
}

// Payment is the order's payment record.
// A card payment is charged at checkout, so it arrives Completed with the
// gateway's payment id set; cash and wallet payments start Pending.
type Payment struct {
	method            PaymentMethod
	status            PaymentStatus
	externalPaymentID string
}

// NewPayment creates a validated Payment record.
func NewPayment(method PaymentMethod, status PaymentStatus, externalPaymentID string) (Payment, error) {
	if err := method.Validate(); err != nil {
		return Payment{}, err
	}
	if err := status.Validate(); err != nil {
		return Payment{}, err
	}
	return Payment{
		method:            method,
		status:            status,
		externalPaymentID: externalPaymentID,
	}, nil
}

// Method returns the payment method.
func (p Payment) Method() PaymentMethod {
	return p.method
}

// Status returns the payment status.
func (p Payment) Status() PaymentStatus {
	return p.status
}

// ExternalPaymentID returns the gateway's payment id, empty if never charged.
func (p Payment) ExternalPaymentID() string {
	return p.externalPaymentID
}

// IsRefundable reports whether cancelling the order should attempt a refund.
func (p Payment) IsRefundable() bool {
	return p.method == PaymentMethodCard && p.status == PaymentStatusCompleted
}
