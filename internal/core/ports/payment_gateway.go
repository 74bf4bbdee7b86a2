package ports

import (
	"context"
	"errors"
)

// ErrPaymentFailed is returned when the payment gateway declines or fails a
// charge. Order creation with a card payment aborts on this error and
// nothing is persisted.
var ErrPaymentFailed = errors.New("payment failed")

// PaymentGateway is the external card-payment processor.
type PaymentGateway interface {
	// Charge attempts to collect amount using the method-specific token and
	// returns the gateway's payment id. A declined or failed charge wraps
	// ErrPaymentFailed.
	Charge(ctx context.Context, amount float64, token string, description string) (string, error)

	// Refund returns a previously collected payment. Callers during
	// cancellation treat failure as non-fatal and record it on the order.
	Refund(ctx context.Context, paymentID string, amount float64) error
}
