// Package routing holds the HTTP clients for the external travel-time
// providers. Both providers are rate-limited and flaky; clients report
// plain errors and leave per-leg degradation to the caller.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/kyteam/stayrank/internal/config"
	"github.com/kyteam/stayrank/internal/geo"
)

// TransitClient queries the public-transit routing provider. The
// provider returns a human-readable duration which is passed through
// verbatim.
type TransitClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewTransitClient(cfg config.ProviderConfig, logger *logrus.Logger) *TransitClient {
	return &TransitClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type transitResponse struct {
	Duration string `json:"duration"`
}

// TransitDuration returns the provider-native duration text for a trip
// from origin to dest.
func (c *TransitClient) TransitDuration(ctx context.Context, origin, dest geo.Coordinate) (string, error) {
	endpoint, err := c.buildURL(origin, dest)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build transit request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transit provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transit provider returned status %d", resp.StatusCode)
	}

	var body transitResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode transit response: %w", err)
	}
	if body.Duration == "" {
		return "", fmt.Errorf("transit provider returned empty duration")
	}

	return body.Duration, nil
}

func (c *TransitClient) buildURL(origin, dest geo.Coordinate) (string, error) {
	u, err := url.Parse(c.baseURL + "/v1/transit")
	if err != nil {
		return "", fmt.Errorf("invalid transit base URL: %w", err)
	}

	q := u.Query()
	q.Set("origin_lat", strconv.FormatFloat(origin.Lat, 'f', -1, 64))
	q.Set("origin_lon", strconv.FormatFloat(origin.Lon, 'f', -1, 64))
	q.Set("dest_lat", strconv.FormatFloat(dest.Lat, 'f', -1, 64))
	q.Set("dest_lon", strconv.FormatFloat(dest.Lon, 'f', -1, 64))
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
