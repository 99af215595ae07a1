// Package geocode resolves street addresses to coordinates through a
// Nominatim-compatible search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/placemark/placemark-server/internal/apperror"
	"github.com/placemark/placemark-server/internal/model"
)

// Internal adapter interface to enable mocking without a real upstream.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

var _ model.Geocoder = (*Client)(nil)

type Client struct {
	http      httpDoer
	baseURL   string
	userAgent string
}

// NewClient creates a geocoding client against baseURL. The user agent
// is required by public Nominatim instances.
func NewClient(baseURL string, userAgent string, timeout time.Duration) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// NewClientWithDoer allows injecting a mockable HTTP client (used in tests).
func NewClientWithDoer(doer httpDoer, baseURL string, userAgent string) *Client {
	return &Client{
		http:      doer,
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve looks up the address and returns the first match. Any failure,
// including an empty result set, is wrapped as a geocode failure and
// surfaced to the caller unchanged.
func (c *Client) Resolve(ctx context.Context, address string) (model.Coordinates, error) {
	reqURL := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", c.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return model.Coordinates{}, apperror.NewGeocodeFailed(address, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return model.Coordinates{}, apperror.NewGeocodeFailed(address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Coordinates{}, apperror.NewGeocodeFailed(address, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return model.Coordinates{}, apperror.NewGeocodeFailed(address, err)
	}

	if len(results) == 0 {
		return model.Coordinates{}, apperror.NewGeocodeFailed(address, fmt.Errorf("no results"))
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return model.Coordinates{}, apperror.NewGeocodeFailed(address, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return model.Coordinates{}, apperror.NewGeocodeFailed(address, err)
	}

	return model.Coordinates{Lat: lat, Lng: lng}, nil
}
