package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/traffic-route-matcher/internal/domain"
	"github.com/traffic-route-matcher/internal/usecase"
)

func TestMonitoringUseCase_RunCycle(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("full cycle", func(t *testing.T) {
		feed := new(MockTrafficFeedRepository)
		events := new(MockTrafficEventRepository)
		stream := new(MockStreamRepository)

		feed.On("FetchEvents", ctx).Return(feedEvents(), nil)
		events.On("UpsertEvents", ctx, mock.MatchedBy(func(annotated []domain.AnnotatedEvent) bool {
			return len(annotated) == 2 &&
				annotated[0].IsAnnotated() &&
				!annotated[1].IsAnnotated()
		})).Return(2, nil)
		events.On("ResolveMissing", ctx, []string{"1", "2"}, mock.Anything).Return(int64(3), nil)
		stream.On("PublishToStream", ctx, domain.StreamTrafficAnnotated, mock.MatchedBy(func(msg domain.TrafficAnnotatedEvent) bool {
			return msg.EventID == "1" && msg.Route.IsSet()
		})).Return(nil).Once()

		uc := usecase.NewMonitoringUseCase(feed, events, stream, nil, testMatcher(), 1, logger)
		report, err := uc.RunCycle(ctx)

		require.NoError(t, err)
		assert.True(t, report.MatchingEnabled)
		assert.Equal(t, 2, report.EventsFetched)
		assert.Equal(t, 1, report.EventsMatched)
		assert.Equal(t, 2, report.EventsPersisted)
		assert.Equal(t, int64(3), report.EventsResolved)
		assert.Equal(t, 1, report.EventsPublished)
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", report.CycleID.String())

		feed.AssertExpectations(t)
		events.AssertExpectations(t)
		stream.AssertExpectations(t)
	})

	t.Run("fetch failure aborts cycle", func(t *testing.T) {
		feed := new(MockTrafficFeedRepository)
		events := new(MockTrafficEventRepository)

		feed.On("FetchEvents", ctx).Return(nil, errors.New("timeout"))

		uc := usecase.NewMonitoringUseCase(feed, events, nil, nil, testMatcher(), 1, logger)
		report, err := uc.RunCycle(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetch traffic events")
		require.NotNil(t, report)
		assert.Zero(t, report.EventsFetched)
		events.AssertNotCalled(t, "UpsertEvents", mock.Anything, mock.Anything)
	})

	t.Run("upsert failure skips resolve", func(t *testing.T) {
		feed := new(MockTrafficFeedRepository)
		events := new(MockTrafficEventRepository)

		feed.On("FetchEvents", ctx).Return(feedEvents(), nil)
		events.On("UpsertEvents", ctx, mock.Anything).Return(0, errors.New("connection reset"))

		uc := usecase.NewMonitoringUseCase(feed, events, nil, nil, testMatcher(), 1, logger)
		report, err := uc.RunCycle(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "persist traffic events")
		assert.Equal(t, 1, report.EventsMatched)
		events.AssertNotCalled(t, "ResolveMissing", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("resolve failure is not fatal", func(t *testing.T) {
		feed := new(MockTrafficFeedRepository)
		events := new(MockTrafficEventRepository)

		feed.On("FetchEvents", ctx).Return(feedEvents(), nil)
		events.On("UpsertEvents", ctx, mock.Anything).Return(2, nil)
		events.On("ResolveMissing", ctx, mock.Anything, mock.Anything).Return(int64(0), errors.New("deadlock"))

		uc := usecase.NewMonitoringUseCase(feed, events, nil, nil, testMatcher(), 1, logger)
		report, err := uc.RunCycle(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, report.EventsPersisted)
		assert.Zero(t, report.EventsResolved)
	})

	t.Run("publish failures are counted out", func(t *testing.T) {
		feed := new(MockTrafficFeedRepository)
		events := new(MockTrafficEventRepository)
		stream := new(MockStreamRepository)

		feed.On("FetchEvents", ctx).Return(feedEvents(), nil)
		events.On("UpsertEvents", ctx, mock.Anything).Return(2, nil)
		events.On("ResolveMissing", ctx, mock.Anything, mock.Anything).Return(int64(0), nil)
		stream.On("PublishToStream", ctx, mock.Anything, mock.Anything).Return(errors.New("redis down"))

		uc := usecase.NewMonitoringUseCase(feed, events, stream, nil, testMatcher(), 1, logger)
		report, err := uc.RunCycle(ctx)

		require.NoError(t, err)
		assert.Zero(t, report.EventsPublished)
	})

	t.Run("without route index events are stored unannotated", func(t *testing.T) {
		feed := new(MockTrafficFeedRepository)
		events := new(MockTrafficEventRepository)
		stream := new(MockStreamRepository)

		feed.On("FetchEvents", ctx).Return(feedEvents(), nil)
		events.On("UpsertEvents", ctx, mock.MatchedBy(func(annotated []domain.AnnotatedEvent) bool {
			for _, e := range annotated {
				if e.IsAnnotated() {
					return false
				}
			}
			return len(annotated) == 2
		})).Return(2, nil)
		events.On("ResolveMissing", ctx, mock.Anything, mock.Anything).Return(int64(0), nil)

		uc := usecase.NewMonitoringUseCase(feed, events, stream, nil, nil, 1, logger)
		report, err := uc.RunCycle(ctx)

		require.NoError(t, err)
		assert.False(t, uc.MatchingEnabled())
		assert.False(t, report.MatchingEnabled)
		assert.Zero(t, report.EventsMatched)
		stream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cycles do not overlap", func(t *testing.T) {
		feed := new(MockTrafficFeedRepository)
		events := new(MockTrafficEventRepository)

		started := make(chan struct{})
		release := make(chan struct{})
		feed.On("FetchEvents", ctx).Run(func(mock.Arguments) {
			close(started)
			<-release
		}).Return([]domain.TrafficEvent{}, nil).Once()
		events.On("UpsertEvents", ctx, mock.Anything).Return(0, nil)
		events.On("ResolveMissing", ctx, mock.Anything, mock.Anything).Return(int64(0), nil)

		uc := usecase.NewMonitoringUseCase(feed, events, nil, nil, testMatcher(), 1, logger)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RunCycle(ctx)
			assert.NoError(t, err)
		}()

		<-started
		_, err := uc.RunCycle(ctx)
		assert.ErrorIs(t, err, usecase.ErrCycleInProgress)

		close(release)
		wg.Wait()
	})
}
