package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kyteam/stayrank/internal/config"
	"github.com/kyteam/stayrank/internal/database"
	"github.com/kyteam/stayrank/internal/messaging"
	"github.com/kyteam/stayrank/internal/routing"
	"github.com/kyteam/stayrank/internal/store"
	"github.com/kyteam/stayrank/internal/text"
)

type Services struct {
	Health         *HealthService
	Catalog        *store.CatalogStore
	Gazetteer      *GazetteerIndex
	Events         *messaging.EventPublisher
	Recommendation *RecommendationService
	RouteEstimator *RouteEstimatorService

	logger *logrus.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger, db *database.Database) (*Services, error) {
	healthService := NewHealthService(cfg, logger, db)

	catalogStore := store.NewCatalogStore(db.PG, logger)
	preferenceStore := store.NewPreferenceStore(db.PG, logger)
	gazetteerStore := store.NewGazetteerStore(db.PG, logger)

	gazetteerIndex, err := NewGazetteerIndex(ctx, gazetteerStore, cfg.Gazetteer.RefreshInterval, logger)
	if err != nil {
		return nil, err
	}

	events := messaging.NewEventPublisher(cfg, logger)

	resolver := NewLocationResolver(text.NewNounTokenizer(), gazetteerIndex, logger)
	personalization := NewPersonalizationService(preferenceStore, cfg.Recommendation.Personalization, logger)
	ranking := NewRankingService(cfg.Recommendation.RegionBoostWeight, logger)

	recommendation := NewRecommendationService(
		catalogStore, resolver, personalization, ranking,
		db.Cache, events, cfg, logger,
	)

	routeEstimator := NewRouteEstimatorService(
		catalogStore,
		routing.NewGeocodeClient(cfg.Providers.Geocode, logger),
		routing.NewTransitClient(cfg.Providers.Transit, logger),
		routing.NewDrivingClient(cfg.Providers.Driving, logger),
		events,
		&cfg.Providers,
		logger,
	)

	return &Services{
		Health:         healthService,
		Catalog:        catalogStore,
		Gazetteer:      gazetteerIndex,
		Events:         events,
		Recommendation: recommendation,
		RouteEstimator: routeEstimator,
		logger:         logger,
	}, nil
}

// Stop shuts down background loops and the event publisher.
func (s *Services) Stop() {
	if s.Gazetteer != nil {
		s.Gazetteer.Stop()
	}
	if s.Events != nil {
		if err := s.Events.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close event publisher")
		}
	}
}
