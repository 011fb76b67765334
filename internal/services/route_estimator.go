package services

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kyteam/stayrank/internal/config"
	"github.com/kyteam/stayrank/internal/geo"
	"github.com/kyteam/stayrank/internal/messaging"
	"github.com/kyteam/stayrank/pkg/models"
)

// RouteEstimate is the outcome of a route-time lookup. Geocoded is set
// when the accommodation had no stored coordinate and one was fetched
// during this call, so the caller can persist the backfill.
type RouteEstimate struct {
	Response        models.RouteEstimateResponse
	AccommodationID int64
	Coordinate      geo.Coordinate
	Geocoded        bool
}

// RouteEstimatorService answers "how long to get there" for a named
// accommodation, querying the transit and driving providers in parallel.
// A failed provider degrades its own leg only; the other leg still
// carries a real estimate.
type RouteEstimatorService struct {
	catalog  CatalogStore
	geocoder Geocoder
	transit  TransitProvider
	driving  DrivingProvider
	events   EventPublisher
	cfg      *config.ProvidersConfig
	logger   *logrus.Logger
}

func NewRouteEstimatorService(
	catalog CatalogStore,
	geocoder Geocoder,
	transit TransitProvider,
	driving DrivingProvider,
	events EventPublisher,
	cfg *config.ProvidersConfig,
	logger *logrus.Logger,
) *RouteEstimatorService {
	return &RouteEstimatorService{
		catalog:  catalog,
		geocoder: geocoder,
		transit:  transit,
		driving:  driving,
		events:   events,
		cfg:      cfg,
		logger:   logger,
	}
}

// Estimate resolves hotelName to an accommodation, backfills its
// coordinate if needed, and fans out to both route providers.
func (s *RouteEstimatorService) Estimate(ctx context.Context, origin geo.Coordinate, hotelName string) (*RouteEstimate, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	matches, err := s.catalog.SearchByName(ctx, hotelName)
	if err != nil {
		return nil, fmt.Errorf("failed to search accommodations: %w", err)
	}
	if len(matches) == 0 {
		return nil, ErrAccommodationNotFound
	}
	accommodation := matches[0]

	destination, geocoded, err := s.destinationCoordinate(ctx, &accommodation)
	if err != nil {
		return nil, err
	}

	transitTime, drivingTime := s.queryProviders(ctx, origin, destination)

	s.publishEstimated(ctx, accommodation.ID, transitTime, drivingTime)

	return &RouteEstimate{
		Response: models.RouteEstimateResponse{
			Name:        accommodation.Name,
			Address:     accommodation.Address,
			Latitude:    destination.Lat,
			Longitude:   destination.Lon,
			TransitTime: transitTime,
			CarTime:     drivingTime,
		},
		AccommodationID: accommodation.ID,
		Coordinate:      destination,
		Geocoded:        geocoded,
	}, nil
}

// destinationCoordinate prefers the stored coordinate and falls back to
// a single geocoder lookup keyed on the street address.
func (s *RouteEstimatorService) destinationCoordinate(ctx context.Context, accommodation *models.Accommodation) (geo.Coordinate, bool, error) {
	if coord, ok := accommodation.Coordinate(); ok {
		return coord, false, nil
	}

	geocodeCtx, cancel := context.WithTimeout(ctx, s.cfg.Geocode.Timeout)
	defer cancel()

	coord, err := s.geocoder.Geocode(geocodeCtx, accommodation.Address)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"accommodation_id": accommodation.ID,
			"error":            err.Error(),
		}).Warn("Geocoder lookup failed")
		return geo.Coordinate{}, false, ErrGeolocationUnavailable
	}
	return coord, true, nil
}

// queryProviders runs both provider calls concurrently, each under its
// own timeout. Either leg falls back to the unavailable marker on error.
func (s *RouteEstimatorService) queryProviders(ctx context.Context, origin, destination geo.Coordinate) (transitTime, drivingTime string) {
	transitTime = models.ProviderUnavailable
	drivingTime = models.ProviderUnavailable

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		transitCtx, cancel := context.WithTimeout(ctx, s.cfg.Transit.Timeout)
		defer cancel()

		text, err := s.transit.TransitDuration(transitCtx, origin, destination)
		if err != nil {
			s.logger.WithError(err).Warn("Transit provider unavailable")
			return
		}
		transitTime = text
	}()

	go func() {
		defer wg.Done()
		drivingCtx, cancel := context.WithTimeout(ctx, s.cfg.Driving.Timeout)
		defer cancel()

		duration, err := s.driving.DrivingDuration(drivingCtx, origin, destination)
		if err != nil {
			s.logger.WithError(err).Warn("Driving provider unavailable")
			return
		}
		drivingTime = formatDrivingMinutes(duration)
	}()

	wg.Wait()
	return transitTime, drivingTime
}

// formatDrivingMinutes renders a driving duration as whole minutes,
// rounded to the nearest minute.
func formatDrivingMinutes(d time.Duration) string {
	return fmt.Sprintf("%d minutes", int(math.Round(d.Minutes())))
}

func (s *RouteEstimatorService) publishEstimated(ctx context.Context, accommodationID int64, transitTime, drivingTime string) {
	if s.events == nil {
		return
	}
	event := messaging.RouteEstimatedEvent{
		EventID:          uuid.New(),
		AccommodationID:  accommodationID,
		TransitAvailable: transitTime != models.ProviderUnavailable,
		DrivingAvailable: drivingTime != models.ProviderUnavailable,
		EstimatedAt:      time.Now(),
	}
	if err := s.events.PublishRouteEstimated(ctx, event); err != nil {
		s.logger.WithError(err).Warn("Failed to publish route-estimated event")
	}
}
