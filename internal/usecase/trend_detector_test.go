package usecase_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/observability"
	"github.com/infra-status-service/internal/usecase"
)

const (
	trendWindow    = 60 * time.Minute
	trendThreshold = 5
)

func availableLog(id int64, neighborhood string, at time.Time) domain.ServiceLogCreated {
	reporter := uuid.New()
	return domain.ServiceLogCreated{Log: domain.ServiceLog{
		ID:           id,
		ReporterID:   &reporter,
		ServiceType:  domain.ServiceElectricity,
		Status:       domain.StatusAvailable,
		Neighborhood: neighborhood,
		CreatedAt:    at,
	}}
}

func newTrendDetector(counter *memoryTrendCounter, publisher *MockNotificationPublisher, clock clockwork.Clock) *usecase.TrendDetector {
	return usecase.NewTrendDetector(counter, publisher, trendWindow, trendThreshold, clock,
		observability.NewMetricsForTesting(), zap.NewNop())
}

func TestTrendDetector_OnServiceLogCreated(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	t.Run("fires exactly once on the fifth report in the window", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(start)
		publisher := &MockNotificationPublisher{}
		publisher.On("PublishServiceAvailable", ctx, mock.Anything).Return(nil)
		detector := newTrendDetector(newMemoryTrendCounter(), publisher, clock)

		var fifth domain.ServiceLogCreated
		for i := int64(1); i <= 6; i++ {
			ev := availableLog(i, "Mezzeh", start.Add(time.Duration(i)*5*time.Minute))
			if i == 5 {
				fifth = ev
			}
			require.NoError(t, detector.OnServiceLogCreated(ctx, ev))
		}

		publisher.AssertNumberOfCalls(t, "PublishServiceAvailable", 1)
		job := publisher.Calls[0].Arguments.Get(1).(domain.ServiceAvailableEvent)
		assert.Equal(t, domain.ServiceElectricity, job.ServiceType)
		assert.Equal(t, "Mezzeh", job.Neighborhood)
		assert.Equal(t, int64(5), job.TriggerLogID)
		require.NotNil(t, job.ExcludeUserID)
		assert.Equal(t, *fifth.Log.ReporterID, *job.ExcludeUserID)
	})

	t.Run("cut_off reports are not counted", func(t *testing.T) {
		publisher := &MockNotificationPublisher{}
		counter := newMemoryTrendCounter()
		detector := newTrendDetector(counter, publisher, clockwork.NewFakeClockAt(start))

		for i := int64(1); i <= 10; i++ {
			ev := availableLog(i, "Mezzeh", start.Add(time.Duration(i)*time.Minute))
			ev.Log.Status = domain.StatusCutOff
			require.NoError(t, detector.OnServiceLogCreated(ctx, ev))
		}

		publisher.AssertNotCalled(t, "PublishServiceAvailable", mock.Anything, mock.Anything)
		assert.Empty(t, counter.entries)
	})

	t.Run("reports outside the window do not accumulate", func(t *testing.T) {
		publisher := &MockNotificationPublisher{}
		detector := newTrendDetector(newMemoryTrendCounter(), publisher, clockwork.NewFakeClockAt(start))

		// по одному сообщению в 20 минут: в окне 60 минут не больше четырех
		for i := int64(1); i <= 8; i++ {
			ev := availableLog(i, "Mezzeh", start.Add(time.Duration(i)*21*time.Minute))
			require.NoError(t, detector.OnServiceLogCreated(ctx, ev))
		}

		publisher.AssertNotCalled(t, "PublishServiceAvailable", mock.Anything, mock.Anything)
	})

	t.Run("neighborhoods are counted separately", func(t *testing.T) {
		publisher := &MockNotificationPublisher{}
		detector := newTrendDetector(newMemoryTrendCounter(), publisher, clockwork.NewFakeClockAt(start))

		for i := int64(1); i <= 8; i++ {
			neighborhood := "Mezzeh"
			if i%2 == 0 {
				neighborhood = "mezzeh"
			}
			require.NoError(t, detector.OnServiceLogCreated(ctx, availableLog(i, neighborhood, start.Add(time.Duration(i)*time.Minute))))
		}

		publisher.AssertNotCalled(t, "PublishServiceAvailable", mock.Anything, mock.Anything)
	})

	t.Run("redelivered event does not fire again", func(t *testing.T) {
		publisher := &MockNotificationPublisher{}
		publisher.On("PublishServiceAvailable", ctx, mock.Anything).Return(nil)
		detector := newTrendDetector(newMemoryTrendCounter(), publisher, clockwork.NewFakeClockAt(start))

		var last domain.ServiceLogCreated
		for i := int64(1); i <= 5; i++ {
			last = availableLog(i, "Mezzeh", start.Add(time.Duration(i)*time.Minute))
			require.NoError(t, detector.OnServiceLogCreated(ctx, last))
		}
		require.NoError(t, detector.OnServiceLogCreated(ctx, last))

		publisher.AssertNumberOfCalls(t, "PublishServiceAvailable", 1)
	})

	t.Run("reports processed out of timestamp order fire once", func(t *testing.T) {
		publisher := &MockNotificationPublisher{}
		publisher.On("PublishServiceAvailable", ctx, mock.Anything).Return(nil)
		detector := newTrendDetector(newMemoryTrendCounter(), publisher, clockwork.NewFakeClockAt(start))

		for i := int64(1); i <= 4; i++ {
			require.NoError(t, detector.OnServiceLogCreated(ctx, availableLog(i, "Mezzeh", start.Add(time.Duration(i)*time.Minute))))
		}
		later := availableLog(6, "Mezzeh", start.Add(10*time.Minute+time.Millisecond))
		earlier := availableLog(5, "Mezzeh", start.Add(10*time.Minute))
		require.NoError(t, detector.OnServiceLogCreated(ctx, later))
		require.NoError(t, detector.OnServiceLogCreated(ctx, earlier))

		publisher.AssertNumberOfCalls(t, "PublishServiceAvailable", 1)
		job := publisher.Calls[0].Arguments.Get(1).(domain.ServiceAvailableEvent)
		assert.Equal(t, int64(6), job.TriggerLogID)
	})

	t.Run("counter failure is returned", func(t *testing.T) {
		counter := newMemoryTrendCounter()
		counter.err = stderrors.New("redis down")
		publisher := &MockNotificationPublisher{}
		detector := newTrendDetector(counter, publisher, clockwork.NewFakeClockAt(start))

		err := detector.OnServiceLogCreated(ctx, availableLog(1, "Mezzeh", start))

		assert.Error(t, err)
		publisher.AssertNotCalled(t, "PublishServiceAvailable", mock.Anything, mock.Anything)
	})
}

// Пятое сообщение через Submit ставит одно задание и не ждет рассылки
func TestIngestUseCase_TrendIntegration(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC))

	logs := &MockServiceLogRepository{}
	cache := &MockCacheRepository{}
	depts := &MockDepartmentRepository{}
	publisher := &MockNotificationPublisher{}

	var nextID int64
	logs.On("Create", ctx, mock.AnythingOfType("*domain.ServiceLog")).
		Run(func(args mock.Arguments) {
			nextID++
			l := args.Get(1).(*domain.ServiceLog)
			l.ID = nextID
			l.CreatedAt = clock.Now()
		}).
		Return(nil)
	logs.On("ServiceTypesByReporter", ctx, mock.Anything, mock.Anything).Return([]domain.ServiceType{}, nil)
	logs.On("DailyAvailability", ctx, mock.Anything).Return([]domain.ServiceAvailability{}, nil)
	cache.On("InvalidateHeatmap", ctx, mock.Anything, mock.Anything).Return(nil)
	depts.On("GetBySlug", ctx, mock.Anything).Return(&domain.Department{ID: 1}, nil)
	publisher.On("PublishServiceAvailable", ctx, mock.Anything).Return(nil)

	metrics := observability.NewMetricsForTesting()
	detector := usecase.NewTrendDetector(newMemoryTrendCounter(), publisher, trendWindow, trendThreshold, clock, metrics, zap.NewNop())
	uc := usecase.NewIngestUseCase(logs, cache, usecase.NewDepartmentResolver(depts, zap.NewNop()),
		clock, time.UTC, metrics, zap.NewNop(), detector)

	reporters := make([]uuid.UUID, 6)
	for i := range reporters {
		reporters[i] = uuid.New()
		clock.Advance(2 * time.Minute)
		_, err := uc.Submit(ctx, &domain.Actor{UserID: reporters[i]}, dtoAvailable("Mezzeh"))
		require.NoError(t, err)
	}

	publisher.AssertNumberOfCalls(t, "PublishServiceAvailable", 1)
	job := publisher.Calls[0].Arguments.Get(1).(domain.ServiceAvailableEvent)
	assert.Equal(t, int64(5), job.TriggerLogID)
	assert.Equal(t, reporters[4], *job.ExcludeUserID)
}
