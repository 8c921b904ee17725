package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/traffic-route-matcher/internal/domain"
)

// MockTrafficFeedRepository is a mock of TrafficFeedRepository
type MockTrafficFeedRepository struct {
	mock.Mock
}

func (m *MockTrafficFeedRepository) FetchEvents(ctx context.Context) ([]domain.TrafficEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrafficEvent), args.Error(1)
}

// MockTrafficEventRepository is a mock of TrafficEventRepository
type MockTrafficEventRepository struct {
	mock.Mock
}

func (m *MockTrafficEventRepository) UpsertEvents(ctx context.Context, events []domain.AnnotatedEvent) (int, error) {
	args := m.Called(ctx, events)
	return args.Int(0), args.Error(1)
}

func (m *MockTrafficEventRepository) ResolveMissing(ctx context.Context, currentIDs []string, resolvedAt time.Time) (int64, error) {
	args := m.Called(ctx, currentIDs, resolvedAt)
	return args.Get(0).(int64), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockGeocodingRepository is a mock of GeocodingRepository
type MockGeocodingRepository struct {
	mock.Mock
}

func (m *MockGeocodingRepository) Geocode(ctx context.Context, roadName, locality, description string) (domain.Location, error) {
	args := m.Called(ctx, roadName, locality, description)
	return args.Get(0).(domain.Location), args.Error(1)
}
