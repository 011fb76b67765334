package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kyteam/stayrank/internal/config"
	"github.com/kyteam/stayrank/internal/geo"
)

// DrivingClient queries the car-routing provider, which reports trip
// durations in milliseconds.
type DrivingClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewDrivingClient(cfg config.ProviderConfig, logger *logrus.Logger) *DrivingClient {
	return &DrivingClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type drivingResponse struct {
	DurationMs int64 `json:"duration_ms"`
}

// DrivingDuration returns the driving time from origin to dest.
func (c *DrivingClient) DrivingDuration(ctx context.Context, origin, dest geo.Coordinate) (time.Duration, error) {
	endpoint, err := c.buildURL(origin, dest)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build driving request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("driving provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("driving provider returned status %d", resp.StatusCode)
	}

	var body drivingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode driving response: %w", err)
	}
	if body.DurationMs < 0 {
		return 0, fmt.Errorf("driving provider returned negative duration %d", body.DurationMs)
	}

	return time.Duration(body.DurationMs) * time.Millisecond, nil
}

func (c *DrivingClient) buildURL(origin, dest geo.Coordinate) (string, error) {
	u, err := url.Parse(c.baseURL + "/v1/driving")
	if err != nil {
		return "", fmt.Errorf("invalid driving base URL: %w", err)
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
