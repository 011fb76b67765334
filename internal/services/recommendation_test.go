package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kyteam/stayrank/internal/config"
	"github.com/kyteam/stayrank/pkg/models"
)

func recommendationConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Recommendation = config.RecommendationConfig{
		MaxDistanceKm:     10,
		TopN:              10,
		RegionBoostWeight: 0.2,
		Weights: config.WeightsConfig{
			Base:     config.WeightProfileConfig{Distance: 0.3, Price: 0.2, Rating: 0.5},
			Reviewed: config.WeightProfileConfig{Distance: 0.3, Price: 0.1, Rating: 0.3, Review: 0.2},
		},
		Personalization: config.PersonalizationConfig{PriceThreshold: 100000, RatingThreshold: 4.0},
		CacheTTL:        5 * time.Minute,
	}
	cfg.Gazetteer.DefaultLatitude = 36.3504
	cfg.Gazetteer.DefaultLongitude = 127.3845
	return cfg
}

func recommendationFixture(t *testing.T, catalog *MockCatalogStore, tokenizer *MockTokenizer, prefs *MockPreferenceStore) *RecommendationService {
	t.Helper()

	cfg := recommendationConfig()
	resolver := NewLocationResolver(tokenizer, testGazetteer(t), testLogger())
	personalization := NewPersonalizationService(prefs, cfg.Recommendation.Personalization, testLogger())
	ranking := NewRankingService(cfg.Recommendation.RegionBoostWeight, testLogger())

	return NewRecommendationService(catalog, resolver, personalization, ranking, nil, nil, cfg, testLogger())
}

func TestRecommend_EndToEnd(t *testing.T) {
	catalog := &MockCatalogStore{}
	catalog.On("ListAccommodations", mock.Anything).Return([]models.Accommodation{
		accommodationAt(1, "호텔 A", 36.3620, 127.3560, 50000, 2.0),
		accommodationAt(2, "호텔 B", 36.3700, 127.3650, 90000, 4.8),
	}, nil)

	tokenizer := &MockTokenizer{}
	tokenizer.On("Tokenize", mock.Anything, "유성구 근처 숙소").
		Return([]string{"유성구", "근처", "숙소"}, nil)

	svc := recommendationFixture(t, catalog, tokenizer, &MockPreferenceStore{})

	resp, err := svc.Recommend(context.Background(), &models.RecommendationRequest{
		FreeText: "유성구 근처 숙소",
	})
	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 2)

	assert.True(t, resp.LocationMatched)
	assert.Equal(t, 36.3621, resp.ResolvedLat)
	assert.Equal(t, 127.3565, resp.ResolvedLon)
	assert.Equal(t, int64(2), resp.Recommendations[0].ID)
	assert.False(t, resp.CacheHit)
}

func TestRecommend_ExplicitLocationEchoedBack(t *testing.T) {
	catalog := &MockCatalogStore{}
	catalog.On("ListAccommodations", mock.Anything).Return([]models.Accommodation{
		accommodationAt(1, "호텔 A", 36.3620, 127.3560, 50000, 4.0),
	}, nil)

	svc := recommendationFixture(t, catalog, &MockTokenizer{}, &MockPreferenceStore{})

	resp, err := svc.Recommend(context.Background(), &models.RecommendationRequest{
		ExplicitLocation: &[2]float64{36.3620, 127.3560},
	})
	require.NoError(t, err)

	assert.True(t, resp.LocationMatched)
	assert.Equal(t, 36.3620, resp.ResolvedLat)
	assert.Equal(t, 127.3560, resp.ResolvedLon)
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	catalog := &MockCatalogStore{}
	catalog.On("ListAccommodations", mock.Anything).Return([]models.Accommodation{}, nil)

	svc := recommendationFixture(t, catalog, &MockTokenizer{}, &MockPreferenceStore{})

	_, err := svc.Recommend(context.Background(), &models.RecommendationRequest{FreeText: "아무데나"})
	assert.ErrorIs(t, err, ErrNoCandidatesAtAll)
}

func TestRecommend_CatalogFailure(t *testing.T) {
	catalog := &MockCatalogStore{}
	catalog.On("ListAccommodations", mock.Anything).
		Return([]models.Accommodation(nil), errors.New("db down"))

	svc := recommendationFixture(t, catalog, &MockTokenizer{}, &MockPreferenceStore{})

	_, err := svc.Recommend(context.Background(), &models.RecommendationRequest{})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoCandidatesAtAll)
}

func TestRecommend_ReviewedProfileWhenReviewDataPresent(t *testing.T) {
	// Two otherwise identical candidates; only the review blend can
	// separate them, which proves the reviewed profile was selected.
	reviewed := accommodationAt(1, "호텔 A", 36.3620, 127.3560, 50000, 4.0)
	reviewed.AvgReview = float64Ptr(4.5)
	plain := accommodationAt(2, "호텔 B", 36.3620, 127.3560, 50000, 4.0)

	catalog := &MockCatalogStore{}
	catalog.On("ListAccommodations", mock.Anything).
		Return([]models.Accommodation{plain, reviewed}, nil)

	svc := recommendationFixture(t, catalog, &MockTokenizer{}, &MockPreferenceStore{})

	resp, err := svc.Recommend(context.Background(), &models.RecommendationRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, int64(1), resp.Recommendations[0].ID)
	assert.Greater(t, resp.Recommendations[0].FinalScore, resp.Recommendations[1].FinalScore)
}

func TestRecommend_RequestOverridesDefaults(t *testing.T) {
	catalog := &MockCatalogStore{}
	catalog.On("ListAccommodations", mock.Anything).Return([]models.Accommodation{
		accommodationAt(1, "호텔 A", 36.3510, 127.3850, 50000, 4.5),
		accommodationAt(2, "호텔 B", 36.3520, 127.3860, 60000, 4.0),
		accommodationAt(3, "호텔 C", 36.3530, 127.3870, 70000, 3.5),
	}, nil)

	svc := recommendationFixture(t, catalog, &MockTokenizer{}, &MockPreferenceStore{})

	resp, err := svc.Recommend(context.Background(), &models.RecommendationRequest{
		ExplicitLocation: &[2]float64{36.3504, 127.3845},
		Count:            1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Recommendations, 1)
}

func TestRecommend_PersonalizedUser(t *testing.T) {
	catalog := &MockCatalogStore{}
	catalog.On("ListAccommodations", mock.Anything).Return([]models.Accommodation{
		accommodationAt(1, "호텔 A", 36.3620, 127.3560, 50000, 4.0),
	}, nil)

	prefs := &MockPreferenceStore{}
	prefs.On("LikedAccommodations", mock.Anything, int64(7)).Return([]models.Accommodation{
		likedAccommodation(150000, 4.5),
	}, nil)

	svc := recommendationFixture(t, catalog, &MockTokenizer{}, prefs)

	resp, err := svc.Recommend(context.Background(), &models.RecommendationRequest{
		ExplicitLocation: &[2]float64{36.3620, 127.3560},
		UserID:           int64Ptr(7),
	})
	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 1)
	prefs.AssertExpectations(t)

	// Single candidate with saturated metrics scores the sum of the
	// adjusted weights plus the rating term.
	expected := 0.3 + 0.2*1.1 + 0.5*1.2*4.0
	assert.InDelta(t, expected, resp.Recommendations[0].FinalScore, 1e-9)
}
