// Package geo resolves delivery addresses to coordinates through an external
// geocoding HTTP service.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"gochop/internal/core/domain/model/kernel"
)

const requestTimeout = 5 * time.Second

// HTTPGeocoder queries a geocoding REST API. Order creation treats geocoding
// failure as soft, so the client keeps a short timeout and never retries.
type HTTPGeocoder struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGeocoder creates a geocoder client for the given service endpoint.
func NewHTTPGeocoder(baseURL string) *HTTPGeocoder {
	return &HTTPGeocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type geocodeResponse struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Geocode resolves the address to a point.
func (g *HTTPGeocoder) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	endpoint := g.baseURL + "/v1/geocode?address=" + url.QueryEscape(address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return kernel.GeoPoint{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return kernel.GeoPoint{}, fmt.Errorf("geocoder responded %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return kernel.GeoPoint{}, err
	}

	return kernel.NewGeoPoint(decoded.Longitude, decoded.Latitude)
}
