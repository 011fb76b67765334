package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/kyteam/stayrank/internal/config"
	"github.com/kyteam/stayrank/internal/geo"
)

// GeocodeClient resolves a street address to a coordinate. Used only to
// backfill accommodations that were ingested without one.
type GeocodeClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewGeocodeClient(cfg config.ProviderConfig, logger *logrus.Logger) *GeocodeClient {
	return &GeocodeClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type geocodeResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Geocode returns the coordinate for address.
func (c *GeocodeClient) Geocode(ctx context.Context, address string) (geo.Coordinate, error) {
	u, err := url.Parse(c.baseURL + "/v1/geocode")
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("invalid geocode base URL: %w", err)
	}
	q := u.Query()
	q.Set("query", address)
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.Coordinate{}, fmt.Errorf("geocode provider returned status %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return geo.Coordinate{}, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	coord := geo.Coordinate{Lat: body.Lat, Lon: body.Lon}
	if err := coord.Validate(); err != nil {
		return geo.Coordinate{}, fmt.Errorf("geocode provider returned %w", err)
	}
	return coord, nil
}
