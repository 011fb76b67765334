package services

import (
	"context"
	"time"

	"github.com/kyteam/stayrank/internal/geo"
	"github.com/kyteam/stayrank/internal/messaging"
	"github.com/kyteam/stayrank/pkg/models"
)

// CatalogStore is the read-only accommodation snapshot source.
// UpdateCoordinates exists solely for the coordinate backfill performed
// by the route-estimate handler.
type CatalogStore interface {
	ListAccommodations(ctx context.Context) ([]models.Accommodation, error)
	SearchByName(ctx context.Context, name string) ([]models.Accommodation, error)
	UpdateCoordinates(ctx context.Context, id int64, coord geo.Coordinate) error
}

// PreferenceStore returns a user's liked accommodations.
type PreferenceStore interface {
	LikedAccommodations(ctx context.Context, userID int64) ([]models.Accommodation, error)
}

// GazetteerSource loads the static place-name lookup rows.
type GazetteerSource interface {
	ListRegions(ctx context.Context) ([]models.Region, error)
}

// Tokenizer splits free text into candidate place-name tokens. It is an
// opaque capability; any failure is treated as "no tokens" upstream.
type Tokenizer interface {
	Tokenize(ctx context.Context, input string) ([]string, error)
}

// TransitProvider returns the public-transit duration between two
// coordinates as provider-native text.
type TransitProvider interface {
	TransitDuration(ctx context.Context, origin, dest geo.Coordinate) (string, error)
}

// DrivingProvider returns the driving duration between two coordinates.
type DrivingProvider interface {
	DrivingDuration(ctx context.Context, origin, dest geo.Coordinate) (time.Duration, error)
}

// Geocoder resolves a street address to a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Coordinate, error)
}

// EventPublisher emits recommendation activity events. Implementations
// must be safe to call concurrently.
type EventPublisher interface {
	PublishRecommendationServed(ctx context.Context, event messaging.RecommendationServedEvent) error
	PublishRouteEstimated(ctx context.Context, event messaging.RouteEstimatedEvent) error
}

// Recommender is the handler-facing surface of the recommendation
// pipeline.
type Recommender interface {
	Recommend(ctx context.Context, req *models.RecommendationRequest) (*models.RecommendationResponse, error)
}

// RouteEstimator is the handler-facing surface of the route-time lookup.
type RouteEstimator interface {
	Estimate(ctx context.Context, origin geo.Coordinate, hotelName string) (*RouteEstimate, error)
}
