package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyteam/stayrank/internal/geo"
	"github.com/kyteam/stayrank/pkg/models"
)

var rankOrigin = ResolvedLocation{
	Coordinate: geo.Coordinate{Lat: 36.3504, Lon: 127.3845},
	Matched:    true,
}

func baseWeights() WeightProfile {
	return WeightProfile{Distance: 0.3, Price: 0.2, Rating: 0.5}
}

func accommodationAt(id int64, name string, lat, lon, price, rating float64) models.Accommodation {
	return models.Accommodation{
		ID:        id,
		Name:      name,
		Address:   "대전 중구 은행동",
		Price:     price,
		Rating:    rating,
		Latitude:  float64Ptr(lat),
		Longitude: float64Ptr(lon),
	}
}

func TestRank_RatingOutweighsProximity(t *testing.T) {
	// A is closer and cheaper but poorly rated; B wins on rating weight.
	a := accommodationAt(1, "호텔 A", 36.3510, 127.3850, 50000, 2.0)
	b := accommodationAt(2, "호텔 B", 36.3600, 127.3950, 90000, 4.8)

	rs := NewRankingService(0.2, testLogger())
	ranked, err := rs.Rank([]models.Accommodation{a, b}, rankOrigin, "", 10, baseWeights(), 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, int64(2), ranked[0].Accommodation.ID)
	assert.Equal(t, int64(1), ranked[1].Accommodation.ID)
	assert.Greater(t, ranked[0].FinalScore, ranked[1].FinalScore)
}

func TestRank_RadiusFilterEmpty(t *testing.T) {
	// ~5 km away with a 1 km cap.
	far := accommodationAt(1, "호텔 A", 36.3950, 127.3845, 50000, 4.0)

	rs := NewRankingService(0.2, testLogger())
	_, err := rs.Rank([]models.Accommodation{far}, rankOrigin, "", 1, baseWeights(), 10)
	assert.ErrorIs(t, err, ErrNoCandidatesInRange)
}

func TestRank_NoUsableCandidates(t *testing.T) {
	noCoords := models.Accommodation{ID: 1, Name: "좌표 없는 호텔", Price: 50000, Rating: 4.0}

	rs := NewRankingService(0.2, testLogger())
	_, err := rs.Rank([]models.Accommodation{noCoords}, rankOrigin, "", 10, baseWeights(), 10)
	assert.ErrorIs(t, err, ErrNoCandidatesAtAll)
}

func TestRank_MissingCoordinatesExcluded(t *testing.T) {
	withCoords := accommodationAt(1, "호텔 A", 36.3510, 127.3850, 50000, 4.0)
	noCoords := models.Accommodation{ID: 2, Name: "좌표 없는 호텔", Price: 10000, Rating: 5.0}

	rs := NewRankingService(0.2, testLogger())
	ranked, err := rs.Rank([]models.Accommodation{withCoords, noCoords}, rankOrigin, "", 10, baseWeights(), 10)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, int64(1), ranked[0].Accommodation.ID)
}

func TestRank_RegionBoostBreaksTie(t *testing.T) {
	// Identical except for the address; the region match must win.
	inRegion := accommodationAt(1, "호텔 A", 36.3510, 127.3850, 50000, 4.0)
	inRegion.Address = "대전 유성구 봉명동 123"
	outRegion := accommodationAt(2, "호텔 B", 36.3510, 127.3850, 50000, 4.0)
	outRegion.Address = "대전 중구 은행동 45"

	rs := NewRankingService(0.2, testLogger())
	ranked, err := rs.Rank([]models.Accommodation{outRegion, inRegion}, rankOrigin, "유성", 10, baseWeights(), 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, int64(1), ranked[0].Accommodation.ID)
	assert.InDelta(t, 0.2, ranked[0].FinalScore-ranked[1].FinalScore, 1e-9)
	assert.Equal(t, 1.0, ranked[0].RegionBoost)
	assert.Equal(t, 0.0, ranked[1].RegionBoost)
}

func TestRank_TieKeepsCatalogOrder(t *testing.T) {
	first := accommodationAt(10, "호텔 A", 36.3510, 127.3850, 50000, 4.0)
	second := accommodationAt(20, "호텔 B", 36.3510, 127.3850, 50000, 4.0)

	rs := NewRankingService(0.2, testLogger())
	ranked, err := rs.Rank([]models.Accommodation{first, second}, rankOrigin, "", 10, baseWeights(), 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, int64(10), ranked[0].Accommodation.ID)
	assert.Equal(t, int64(20), ranked[1].Accommodation.ID)
}

func TestRank_ReviewScoreBlended(t *testing.T) {
	reviewed := accommodationAt(1, "호텔 A", 36.3510, 127.3850, 50000, 4.0)
	reviewed.AvgReview = float64Ptr(4.5)
	unreviewed := accommodationAt(2, "호텔 B", 36.3510, 127.3850, 50000, 4.0)

	weights := WeightProfile{Distance: 0.3, Price: 0.1, Rating: 0.3, Review: 0.2}
	rs := NewRankingService(0.2, testLogger())
	ranked, err := rs.Rank([]models.Accommodation{unreviewed, reviewed}, rankOrigin, "", 10, weights, 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, int64(1), ranked[0].Accommodation.ID)
	assert.InDelta(t, 0.2*4.5, ranked[0].FinalScore-ranked[1].FinalScore, 1e-9)
}

func TestRank_TopN(t *testing.T) {
	candidates := []models.Accommodation{
		accommodationAt(1, "호텔 A", 36.3510, 127.3850, 50000, 4.5),
		accommodationAt(2, "호텔 B", 36.3520, 127.3860, 60000, 4.0),
		accommodationAt(3, "호텔 C", 36.3530, 127.3870, 70000, 3.5),
	}
	rs := NewRankingService(0.2, testLogger())

	t.Run("truncates to topN", func(t *testing.T) {
		ranked, err := rs.Rank(candidates, rankOrigin, "", 10, baseWeights(), 2)
		require.NoError(t, err)
		assert.Len(t, ranked, 2)
	})

	t.Run("topN larger than pool returns all", func(t *testing.T) {
		ranked, err := rs.Rank(candidates, rankOrigin, "", 10, baseWeights(), 100)
		require.NoError(t, err)
		assert.Len(t, ranked, 3)
	})

	t.Run("non-positive topN returns empty", func(t *testing.T) {
		ranked, err := rs.Rank(candidates, rankOrigin, "", 10, baseWeights(), 0)
		require.NoError(t, err)
		assert.Empty(t, ranked)
	})
}

func TestRank_SingleCandidateNormalization(t *testing.T) {
	// A pool of one gets the saturated normalized metrics.
	only := accommodationAt(1, "호텔 A", 36.3510, 127.3850, 50000, 4.0)

	rs := NewRankingService(0.2, testLogger())
	ranked, err := rs.Rank([]models.Accommodation{only}, rankOrigin, "", 10, baseWeights(), 10)
	require.NoError(t, err)
	require.Len(t, ranked, 1)

	assert.Equal(t, 1.0, ranked[0].NormalizedDistance)
	assert.Equal(t, 1.0, ranked[0].NormalizedPrice)
	assert.InDelta(t, 0.3+0.2+0.5*4.0, ranked[0].FinalScore, 1e-9)
}

func TestRank_InvalidResolvedLocation(t *testing.T) {
	bad := ResolvedLocation{Coordinate: geo.Coordinate{Lat: 120, Lon: 200}}

	rs := NewRankingService(0.2, testLogger())
	_, err := rs.Rank([]models.Accommodation{accommodationAt(1, "호텔 A", 36.3510, 127.3850, 50000, 4.0)}, bad, "", 10, baseWeights(), 10)
	assert.ErrorIs(t, err, geo.ErrInvalidCoordinate)
}
