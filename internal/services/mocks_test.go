package services

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/kyteam/stayrank/internal/geo"
	"github.com/kyteam/stayrank/internal/messaging"
	"github.com/kyteam/stayrank/pkg/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func float64Ptr(v float64) *float64 { return &v }
func int64Ptr(v int64) *int64       { return &v }

type MockCatalogStore struct {
	mock.Mock
}

func (m *MockCatalogStore) ListAccommodations(ctx context.Context) ([]models.Accommodation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Accommodation), args.Error(1)
}

func (m *MockCatalogStore) SearchByName(ctx context.Context, name string) ([]models.Accommodation, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]models.Accommodation), args.Error(1)
}

func (m *MockCatalogStore) UpdateCoordinates(ctx context.Context, id int64, coord geo.Coordinate) error {
	args := m.Called(ctx, id, coord)
	return args.Error(0)
}

type MockPreferenceStore struct {
	mock.Mock
}

func (m *MockPreferenceStore) LikedAccommodations(ctx context.Context, userID int64) ([]models.Accommodation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Accommodation), args.Error(1)
}

type MockGazetteerSource struct {
	mock.Mock
}

func (m *MockGazetteerSource) ListRegions(ctx context.Context) ([]models.Region, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Region), args.Error(1)
}

type MockTokenizer struct {
	mock.Mock
}

func (m *MockTokenizer) Tokenize(ctx context.Context, input string) ([]string, error) {
	args := m.Called(ctx, input)
	return args.Get(0).([]string), args.Error(1)
}

type MockTransitProvider struct {
	mock.Mock
}

func (m *MockTransitProvider) TransitDuration(ctx context.Context, origin, dest geo.Coordinate) (string, error) {
	args := m.Called(ctx, origin, dest)
	return args.String(0), args.Error(1)
}

type MockDrivingProvider struct {
	mock.Mock
}

func (m *MockDrivingProvider) DrivingDuration(ctx context.Context, origin, dest geo.Coordinate) (time.Duration, error) {
	args := m.Called(ctx, origin, dest)
	return args.Get(0).(time.Duration), args.Error(1)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (geo.Coordinate, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(geo.Coordinate), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishRecommendationServed(ctx context.Context, event messaging.RecommendationServedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishRouteEstimated(ctx context.Context, event messaging.RouteEstimatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
