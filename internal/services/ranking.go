package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kyteam/stayrank/internal/geo"
	"github.com/kyteam/stayrank/pkg/models"
)

// RankingService filters, normalizes, scores and orders a candidate
// snapshot against a resolved location. Ranking one request is a pure,
// single-threaded computation over in-memory data.
type RankingService struct {
	regionBoostWeight float64
	logger            *logrus.Logger
}

// NewRankingService creates a ranking service. regionBoostWeight is the
// fixed bonus weight for an address/region-token match; it is separate
// from the personalizable profile.
func NewRankingService(regionBoostWeight float64, logger *logrus.Logger) *RankingService {
	return &RankingService{
		regionBoostWeight: regionBoostWeight,
		logger:            logger,
	}
}

// Rank orders candidates by composite score and returns at most topN of
// them. Candidates without coordinates are discarded up front; a fully
// empty usable set yields ErrNoCandidatesAtAll, a radius filter that
// removes everything yields ErrNoCandidatesInRange. Ties preserve
// catalog order.
func (s *RankingService) Rank(
	candidates []models.Accommodation,
	location ResolvedLocation,
	regionToken string,
	maxDistanceKm float64,
	weights WeightProfile,
	topN int,
) ([]models.ScoredAccommodation, error) {
	if err := location.Coordinate.Validate(); err != nil {
		return nil, fmt.Errorf("resolved location: %w", err)
	}

	scored := make([]models.ScoredAccommodation, 0, len(candidates))
	usable := 0
	for _, candidate := range candidates {
		coord, ok := candidate.Coordinate()
		if !ok {
			continue
		}
		usable++

		distance, err := geo.DistanceKm(location.Coordinate, coord)
		if err != nil {
			// Bad stored coordinates are a data defect, not a request
			// failure.
			s.logger.WithError(err).WithField("accommodation_id", candidate.ID).
				Warn("Skipping accommodation with malformed coordinates")
			continue
		}
		if distance > maxDistanceKm {
			continue
		}

		entry := models.ScoredAccommodation{
			Accommodation: candidate,
			DistanceKm:    distance,
		}
		if addressContainsRegion(candidate.Address, regionToken) {
			entry.RegionBoost = 1
		}
		scored = append(scored, entry)
	}

	if usable == 0 {
		return nil, ErrNoCandidatesAtAll
	}
	if len(scored) == 0 {
		return nil, ErrNoCandidatesInRange
	}

	// Invert before scaling so smaller distance and price score higher.
	invDistances := make([]float64, len(scored))
	invPrices := make([]float64, len(scored))
	for i, entry := range scored {
		invDistances[i] = inverseMetric(entry.DistanceKm)
		invPrices[i] = inverseMetric(entry.Accommodation.Price)
	}
	normDistances := MinMaxScale(invDistances)
	normPrices := MinMaxScale(invPrices)

	for i := range scored {
		scored[i].NormalizedDistance = normDistances[i]
		scored[i].NormalizedPrice = normPrices[i]

		score := weights.Distance*scored[i].NormalizedDistance +
			weights.Price*scored[i].NormalizedPrice +
			weights.Rating*scored[i].Accommodation.Rating +
			s.regionBoostWeight*scored[i].RegionBoost

		if avg := scored[i].Accommodation.AvgReview; avg != nil {
			score += weights.Review * *avg
		}

		scored[i].FinalScore = score
	}

	// Stable sort keeps equal-score candidates in catalog order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})

	if topN <= 0 {
		return []models.ScoredAccommodation{}, nil
	}
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored, nil
}

// addressContainsRegion reports whether an accommodation address matches
// the recognized region token. Matching is deliberately case-sensitive
// substring containment; an absent token matches nothing, so candidates
// outside the recognized region simply receive no boost.
func addressContainsRegion(address, token string) bool {
	return token != "" && strings.Contains(address, token)
}
