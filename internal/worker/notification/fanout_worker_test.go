package notification_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/usecase/dto"
	"github.com/infra-status-service/internal/worker"
	"github.com/infra-status-service/internal/worker/notification"
)

const (
	testStream   = "stream:notify:service_available"
	testGroup    = "notification-fanout-workers"
	claimMinIdle = 5 * time.Minute
)

type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) ClaimStale(ctx context.Context, stream, group, consumer string, minIdle time.Duration, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, minIdle, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	return m.Called(ctx, stream, group, messageIDs).Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}

type MockFanOuter struct {
	mock.Mock
}

func (m *MockFanOuter) FanOut(ctx context.Context, event domain.ServiceAvailableEvent) (dto.FanOutResult, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(dto.FanOutResult), args.Error(1)
}

const validJob = `{"service_type":"electricity","neighborhood":"Mezzeh","trigger_log_id":5,"fired_at":"2025-03-10T18:00:00Z"}`

func TestFanOutWorker_ProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("fans out and acks each job", func(t *testing.T) {
		streams := &MockStreamRepository{}
		fanOut := &MockFanOuter{}
		streams.On("ConsumeBatch", ctx, testStream, testGroup, mock.Anything, mock.Anything).
			Return([]domain.StreamMessage{{ID: "1-0", Data: validJob}}, nil)
		streams.On("AckMessages", ctx, testStream, testGroup, []string{"1-0"}).Return(nil)
		fanOut.On("FanOut", ctx, mock.MatchedBy(func(e domain.ServiceAvailableEvent) bool {
			return e.Neighborhood == "Mezzeh" && e.ServiceType == domain.ServiceElectricity && e.TriggerLogID == 5
		})).Return(dto.FanOutResult{Batches: 1, Delivered: 3}, nil)

		w := notification.NewFanOutWorker(streams, fanOut, testStream, testGroup, claimMinIdle, zap.NewNop())
		processed, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, processed)
		streams.AssertExpectations(t)
		fanOut.AssertExpectations(t)
	})

	t.Run("malformed job is acked without fan-out", func(t *testing.T) {
		streams := &MockStreamRepository{}
		fanOut := &MockFanOuter{}
		streams.On("ConsumeBatch", ctx, testStream, testGroup, mock.Anything, mock.Anything).
			Return([]domain.StreamMessage{{ID: "1-0", Data: "{not json"}, {ID: "2-0", Data: `{"service_type":"gas"}`}}, nil)
		streams.On("AckMessages", ctx, testStream, testGroup, mock.Anything).Return(nil)

		w := notification.NewFanOutWorker(streams, fanOut, testStream, testGroup, claimMinIdle, zap.NewNop())
		processed, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, processed)
		streams.AssertNumberOfCalls(t, "AckMessages", 2)
		fanOut.AssertNotCalled(t, "FanOut", mock.Anything, mock.Anything)
	})

	t.Run("cancelled fan-out stays pending", func(t *testing.T) {
		streams := &MockStreamRepository{}
		fanOut := &MockFanOuter{}
		streams.On("ConsumeBatch", ctx, testStream, testGroup, mock.Anything, mock.Anything).
			Return([]domain.StreamMessage{{ID: "1-0", Data: validJob}}, nil)
		fanOut.On("FanOut", ctx, mock.Anything).Return(dto.FanOutResult{Delivered: 1}, context.Canceled)

		w := notification.NewFanOutWorker(streams, fanOut, testStream, testGroup, claimMinIdle, zap.NewNop())
		_, err := w.ProcessBatch(ctx)

		assert.ErrorIs(t, err, context.Canceled)
		streams.AssertNotCalled(t, "AckMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("directory failure stays pending for retry", func(t *testing.T) {
		streams := &MockStreamRepository{}
		fanOut := &MockFanOuter{}
		streams.On("ConsumeBatch", ctx, testStream, testGroup, mock.Anything, mock.Anything).
			Return([]domain.StreamMessage{{ID: "1-0", Data: validJob}, {ID: "2-0", Data: validJob}}, nil)
		streams.On("AckMessages", ctx, testStream, testGroup, []string{"2-0"}).Return(nil)
		fanOut.On("FanOut", ctx, mock.Anything).Return(dto.FanOutResult{}, stderrors.New("connection refused")).Once()
		fanOut.On("FanOut", ctx, mock.Anything).Return(dto.FanOutResult{Batches: 1, Delivered: 2}, nil).Once()

		w := notification.NewFanOutWorker(streams, fanOut, testStream, testGroup, claimMinIdle, zap.NewNop())
		processed, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, processed)
		streams.AssertNotCalled(t, "AckMessages", ctx, testStream, testGroup, []string{"1-0"})
		streams.AssertExpectations(t)
	})

	t.Run("empty queue", func(t *testing.T) {
		streams := &MockStreamRepository{}
		streams.On("ConsumeBatch", ctx, testStream, testGroup, mock.Anything, mock.Anything).Return(nil, nil)

		w := notification.NewFanOutWorker(streams, &MockFanOuter{}, testStream, testGroup, claimMinIdle, zap.NewNop())
		processed, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		assert.Zero(t, processed)
	})
}

func TestFanOutWorker_ReclaimStale(t *testing.T) {
	ctx := context.Background()

	t.Run("stale job from a previous consumer is fanned out and acked", func(t *testing.T) {
		streams := &MockStreamRepository{}
		fanOut := &MockFanOuter{}
		streams.On("ClaimStale", ctx, testStream, testGroup, mock.Anything, claimMinIdle, mock.Anything).
			Return([]domain.StreamMessage{{ID: "7-0", Data: validJob, Deliveries: 2}}, nil)
		streams.On("AckMessages", ctx, testStream, testGroup, []string{"7-0"}).Return(nil)
		fanOut.On("FanOut", ctx, mock.Anything).Return(dto.FanOutResult{Batches: 1, Delivered: 4}, nil)

		w := notification.NewFanOutWorker(streams, fanOut, testStream, testGroup, claimMinIdle, zap.NewNop())
		processed, err := w.ReclaimStale(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, processed)
		streams.AssertExpectations(t)
		fanOut.AssertExpectations(t)
	})

	t.Run("job over the delivery limit is dropped", func(t *testing.T) {
		streams := &MockStreamRepository{}
		fanOut := &MockFanOuter{}
		streams.On("ClaimStale", ctx, testStream, testGroup, mock.Anything, claimMinIdle, mock.Anything).
			Return([]domain.StreamMessage{{ID: "7-0", Data: validJob, Deliveries: 6}}, nil)
		streams.On("AckMessages", ctx, testStream, testGroup, []string{"7-0"}).Return(nil)

		w := notification.NewFanOutWorker(streams, fanOut, testStream, testGroup, claimMinIdle, zap.NewNop())
		_, err := w.ReclaimStale(ctx)

		require.NoError(t, err)
		streams.AssertExpectations(t)
		fanOut.AssertNotCalled(t, "FanOut", mock.Anything, mock.Anything)
	})

	t.Run("claim failure is returned", func(t *testing.T) {
		streams := &MockStreamRepository{}
		streams.On("ClaimStale", ctx, testStream, testGroup, mock.Anything, claimMinIdle, mock.Anything).
			Return(nil, stderrors.New("NOGROUP"))

		w := notification.NewFanOutWorker(streams, &MockFanOuter{}, testStream, testGroup, claimMinIdle, zap.NewNop())
		_, err := w.ReclaimStale(ctx)

		assert.Error(t, err)
	})
}

func TestWorkerManager_StartStop(t *testing.T) {
	streams := &MockStreamRepository{}
	streams.On("CreateConsumerGroup", mock.Anything, testStream, testGroup).Return(nil)
	streams.On("ClaimStale", mock.Anything, testStream, testGroup, mock.Anything, claimMinIdle, mock.Anything).Return(nil, nil)
	streams.On("ConsumeBatch", mock.Anything, testStream, testGroup, mock.Anything, mock.Anything).Return(nil, nil)

	manager := worker.NewWorkerManager(zap.NewNop())
	manager.Register(notification.NewFanOutWorker(streams, &MockFanOuter{}, testStream, testGroup, claimMinIdle, zap.NewNop()))

	require.NoError(t, manager.Start(context.Background()))
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, manager.Stop(ctx))
	streams.AssertCalled(t, "CreateConsumerGroup", mock.Anything, testStream, testGroup)
	// при старте зависшие задания забираются до чтения новых
	streams.AssertCalled(t, "ClaimStale", mock.Anything, testStream, testGroup, mock.Anything, claimMinIdle, mock.Anything)
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	assert.Error(t, worker.NewWorkerManager(zap.NewNop()).Start(context.Background()))
}
