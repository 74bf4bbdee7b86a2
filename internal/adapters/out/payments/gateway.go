// Package payments implements the card-payment gateway port against an
// external HTTP processor.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gochop/internal/core/ports"
)

const requestTimeout = 10 * time.Second

// HTTPGateway talks JSON to the payment processor's REST API.
type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPGateway creates a gateway client for the given processor endpoint.
func NewHTTPGateway(baseURL string, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type chargeRequest struct {
	Amount      float64 `json:"amount"`
	Token       string  `json:"token"`
	Description string  `json:"description"`
}

type chargeResponse struct {
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
}

// Charge collects amount using the card token. A non-2xx response or a
// non-succeeded status wraps ports.ErrPaymentFailed so callers can branch on
// the decline without parsing gateway specifics.
func (g *HTTPGateway) Charge(ctx context.Context, amount float64, token string, description string) (string, error) {
	var resp chargeResponse
	err := g.post(ctx, "/v1/charges", chargeRequest{
		Amount:      amount,
		Token:       token,
		Description: description,
	}, &resp)
	if err != nil {
		return "", err
	}

	if resp.Status != "succeeded" {
		return "", fmt.Errorf("%w: charge status %q", ports.ErrPaymentFailed, resp.Status)
	}

	return resp.PaymentID, nil
}

type refundRequest struct {
	PaymentID string  `json:"paymentId"`
	Amount    float64 `json:"amount"`
}

// Refund returns a previously collected payment.
func (g *HTTPGateway) Refund(ctx context.Context, paymentID string, amount float64) error {
	return g.post(ctx, "/v1/refunds", refundRequest{
		PaymentID: paymentID,
		Amount:    amount,
	}, &struct{}{})
}

func (g *HTTPGateway) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrPaymentFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: gateway responded %d", ports.ErrPaymentFailed, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
