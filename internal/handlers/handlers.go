package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/kyteam/stayrank/internal/services"
)

type Handlers struct {
	Health         *HealthHandler
	Recommendation *RecommendationHandler
	Route          *RouteHandler
	Accommodation  *AccommodationHandler
}

func New(logger *logrus.Logger, services *services.Services) *Handlers {
	return &Handlers{
		Health:         NewHealthHandler(logger, services.Health),
		Recommendation: NewRecommendationHandler(services.Recommendation, logger),
		Route:          NewRouteHandler(services.RouteEstimator, services.Catalog, logger),
		Accommodation:  NewAccommodationHandler(services.Catalog, logger),
	}
}
