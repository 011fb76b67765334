package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/kyteam/stayrank/internal/config"
)

// WeightProfile is the fixed-shape set of scoring weights for one
// request. Weights are non-negative and need not sum to 1; the composite
// score is not itself bounded to [0, 1].
type WeightProfile struct {
	Distance float64
	Price    float64
	Rating   float64
	Review   float64
}

// WeightProfileFromConfig converts a configured default profile.
func WeightProfileFromConfig(cfg config.WeightProfileConfig) WeightProfile {
	return WeightProfile{
		Distance: cfg.Distance,
		Price:    cfg.Price,
		Rating:   cfg.Rating,
		Review:   cfg.Review,
	}
}

// Fixed multiplicative adjustments applied to the default profile from a
// user's liked history. This is a heuristic nudge, not a learned model:
// users who liked pricier places are assumed slightly less
// price-sensitive, users who liked highly rated places slightly more
// rating-sensitive.
const (
	priceWeightUp    = 1.1
	priceWeightDown  = 0.9
	ratingWeightUp   = 1.2
	ratingWeightDown = 0.8
)

// PersonalizationService derives a per-request weight profile from a
// user's liked accommodations.
type PersonalizationService struct {
	prefs  PreferenceStore
	cfg    config.PersonalizationConfig
	logger *logrus.Logger
}

func NewPersonalizationService(prefs PreferenceStore, cfg config.PersonalizationConfig, logger *logrus.Logger) *PersonalizationService {
	return &PersonalizationService{
		prefs:  prefs,
		cfg:    cfg,
		logger: logger,
	}
}

// BuildProfile returns the defaults unchanged for anonymous users, users
// without likes, and on any preference-store failure. Personalization
// must never fail a request.
func (s *PersonalizationService) BuildProfile(ctx context.Context, userID *int64, defaults WeightProfile) WeightProfile {
	if userID == nil {
		return defaults
	}

	liked, err := s.prefs.LikedAccommodations(ctx, *userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", *userID).
			Warn("Preference store unavailable, using default weights")
		return defaults
	}
	if len(liked) == 0 {
		return defaults
	}

	prices := make([]float64, len(liked))
	ratings := make([]float64, len(liked))
	for i, a := range liked {
		prices[i] = a.Price
		ratings[i] = a.Rating
	}

	meanPrice := stat.Mean(prices, nil)
	meanRating := stat.Mean(ratings, nil)

	profile := defaults
	if meanPrice > s.cfg.PriceThreshold {
		profile.Price *= priceWeightUp
	} else {
		profile.Price *= priceWeightDown
	}
	if meanRating > s.cfg.RatingThreshold {
		profile.Rating *= ratingWeightUp
	} else {
		profile.Rating *= ratingWeightDown
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":     *userID,
		"liked":       len(liked),
		"mean_price":  meanPrice,
		"mean_rating": meanRating,
	}).Debug("Personalized weight profile")

	return profile
}
