package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/kyteam/stayrank/internal/config"
	"github.com/kyteam/stayrank/internal/geo"
	"github.com/kyteam/stayrank/internal/messaging"
	"github.com/kyteam/stayrank/pkg/models"
)

// RecommendationService orchestrates one recommendation request: resolve
// the location, build the weight profile, pull the candidate snapshot,
// rank, cache and publish. Each request works on its own snapshot; no
// state is shared across requests.
type RecommendationService struct {
	catalog         CatalogStore
	resolver        *LocationResolver
	personalization *PersonalizationService
	ranking         *RankingService
	cache           *redis.Client
	events          EventPublisher
	recCfg          *config.RecommendationConfig
	defaultCoord    geo.Coordinate
	logger          *logrus.Logger
}

func NewRecommendationService(
	catalog CatalogStore,
	resolver *LocationResolver,
	personalization *PersonalizationService,
	ranking *RankingService,
	cache *redis.Client,
	events EventPublisher,
	cfg *config.Config,
	logger *logrus.Logger,
) *RecommendationService {
	return &RecommendationService{
		catalog:         catalog,
		resolver:        resolver,
		personalization: personalization,
		ranking:         ranking,
		cache:           cache,
		events:          events,
		recCfg:          &cfg.Recommendation,
		defaultCoord: geo.Coordinate{
			Lat: cfg.Gazetteer.DefaultLatitude,
			Lon: cfg.Gazetteer.DefaultLongitude,
		},
		logger: logger,
	}
}

// Recommend returns the ordered top-N accommodations for the request.
func (s *RecommendationService) Recommend(ctx context.Context, req *models.RecommendationRequest) (*models.RecommendationResponse, error) {
	maxDistanceKm := s.recCfg.MaxDistanceKm
	if req.MaxDistanceKm != nil {
		maxDistanceKm = *req.MaxDistanceKm
	}
	topN := s.recCfg.TopN
	if req.Count > 0 {
		topN = req.Count
	}

	cacheKey := s.cacheKey(req, maxDistanceKm, topN)
	if cached := s.cachedResponse(ctx, cacheKey); cached != nil {
		s.logger.Debug("Recommendation cache hit")
		cached.CacheHit = true
		return cached, nil
	}

	candidates, err := s.catalog.ListAccommodations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate snapshot: %w", err)
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidatesAtAll
	}

	var explicit *geo.Coordinate
	if req.ExplicitLocation != nil {
		explicit = &geo.Coordinate{Lat: req.ExplicitLocation[0], Lon: req.ExplicitLocation[1]}
	}
	location := s.resolver.Resolve(ctx, req.FreeText, explicit, s.defaultCoord)

	defaults := s.defaultProfile(candidates)
	weights := s.personalization.BuildProfile(ctx, req.UserID, defaults)

	ranked, err := s.ranking.Rank(candidates, location, location.SourceToken, maxDistanceKm, weights, topN)
	if err != nil {
		return nil, err
	}

	response := &models.RecommendationResponse{
		Recommendations: make([]models.RecommendedAccommodation, len(ranked)),
		ResolvedLat:     location.Coordinate.Lat,
		ResolvedLon:     location.Coordinate.Lon,
		LocationMatched: location.Matched,
		GeneratedAt:     time.Now(),
	}
	for i, entry := range ranked {
		response.Recommendations[i] = models.RecommendedAccommodation{
			ID:         entry.Accommodation.ID,
			Name:       entry.Accommodation.Name,
			Price:      entry.Accommodation.Price,
			Rating:     entry.Accommodation.Rating,
			Address:    entry.Accommodation.Address,
			FinalScore: entry.FinalScore,
		}
	}

	s.cacheResponse(ctx, cacheKey, response)
	s.publishServed(ctx, req, location, len(ranked))

	return response, nil
}

// defaultProfile picks the review-aware profile when any candidate
// carries a per-review mean, otherwise the base profile.
func (s *RecommendationService) defaultProfile(candidates []models.Accommodation) WeightProfile {
	for _, c := range candidates {
		if c.AvgReview != nil {
			return WeightProfileFromConfig(s.recCfg.Weights.Reviewed)
		}
	}
	return WeightProfileFromConfig(s.recCfg.Weights.Base)
}

func (s *RecommendationService) cacheKey(req *models.RecommendationRequest, maxDistanceKm float64, topN int) string {
	userPart := "anon"
	if req.UserID != nil {
		userPart = fmt.Sprintf("%d", *req.UserID)
	}
	locPart := "none"
	if req.ExplicitLocation != nil {
		locPart = fmt.Sprintf("%.6f:%.6f", req.ExplicitLocation[0], req.ExplicitLocation[1])
	}
	return fmt.Sprintf("recommendations:%s:%s:%s:%.1f:%d",
		userPart, locPart, req.FreeText, maxDistanceKm, topN)
}

func (s *RecommendationService) cachedResponse(ctx context.Context, key string) *models.RecommendationResponse {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	var response models.RecommendationResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		return nil
	}
	return &response
}

func (s *RecommendationService) cacheResponse(ctx context.Context, key string, response *models.RecommendationResponse) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.recCfg.CacheTTL).Err(); err != nil {
		s.logger.WithError(err).Warn("Failed to cache recommendation response")
	}
}

func (s *RecommendationService) publishServed(ctx context.Context, req *models.RecommendationRequest, location ResolvedLocation, count int) {
	if s.events == nil {
		return
	}
	event := messaging.RecommendationServedEvent{
		EventID:     uuid.New(),
		UserID:      req.UserID,
		ResultCount: count,
		ResolvedLat: location.Coordinate.Lat,
		ResolvedLon: location.Coordinate.Lon,
		Matched:     location.Matched,
		ServedAt:    time.Now(),
	}
	if err := s.events.PublishRecommendationServed(ctx, event); err != nil {
		s.logger.WithError(err).Warn("Failed to publish recommendation-served event")
	}
}
