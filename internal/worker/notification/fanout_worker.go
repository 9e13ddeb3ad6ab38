package notification

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/domain/repository"
	"github.com/infra-status-service/internal/usecase/dto"
	"github.com/infra-status-service/internal/worker"
)

const (
	maxJobsPerRead  = 10
	emptyQueueSleep = 200 * time.Millisecond
	errorSleep      = time.Second
	reclaimInterval = 30 * time.Second
	// после стольких выдач задание считается неисполнимым и подтверждается
	maxDeliveries = 5
)

// FanOuter - рассылка по району, реализуется NotificationUseCase
type FanOuter interface {
	FanOut(ctx context.Context, event domain.ServiceAvailableEvent) (dto.FanOutResult, error)
}

// FanOutWorker забирает задания "услуга восстановлена" из Redis Stream
// и рассылает уведомления жителям района
type FanOutWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	fanOut       FanOuter
	consumerName string
	claimMinIdle time.Duration
	lastReclaim  time.Time
}

// NewFanOutWorker создает новый FanOutWorker. Имя потребителя - имя хоста,
// оно не меняется между перезапусками одного экземпляра.
func NewFanOutWorker(
	streamRepo repository.StreamRepository,
	fanOut FanOuter,
	stream string,
	consumerGroup string,
	claimMinIdle time.Duration,
	logger *zap.Logger,
) *FanOutWorker {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "fanout"
	}

	return &FanOutWorker{
		BaseWorker:   worker.NewBaseWorker("notification-fanout", stream, consumerGroup, logger),
		streamRepo:   streamRepo,
		fanOut:       fanOut,
		consumerName: hostname,
		claimMinIdle: claimMinIdle,
	}
}

// Start создает consumer group и обрабатывает задания до остановки.
// Зависшие pending задания забираются при старте и затем раз в reclaimInterval.
func (w *FanOutWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting fan-out worker",
		zap.String("stream", w.Stream()),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Duration("claim_min_idle", w.claimMinIdle))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.Stream(), w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		if time.Since(w.lastReclaim) >= reclaimInterval {
			w.lastReclaim = time.Now()
			if _, err := w.ReclaimStale(ctx); err != nil {
				logger.Error("Failed to reclaim stale jobs", zap.Error(err))
			}
		}

		processed, err := w.ProcessBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.Pause(ctx, errorSleep)
			continue
		}
		if processed == 0 {
			w.Pause(ctx, emptyQueueSleep)
		}
	}
}

// ProcessBatch читает новые задания без блокировки и выполняет рассылку по каждому
func (w *FanOutWorker) ProcessBatch(ctx context.Context) (int, error) {
	messages, err := w.streamRepo.ConsumeBatch(ctx, w.Stream(), w.ConsumerGroup(), w.consumerName, maxJobsPerRead)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	return w.handle(ctx, messages)
}

// ReclaimStale забирает задания, простоявшие в pending дольше claimMinIdle:
// прерванные рассылки, ошибки справочника и задания упавших экземпляров.
func (w *FanOutWorker) ReclaimStale(ctx context.Context) (int, error) {
	messages, err := w.streamRepo.ClaimStale(ctx, w.Stream(), w.ConsumerGroup(), w.consumerName, w.claimMinIdle, maxJobsPerRead)
	if err != nil {
		return 0, fmt.Errorf("failed to claim stale jobs: %w", err)
	}
	return w.handle(ctx, messages)
}

// handle подтверждает задание после успешной рассылки. Задание с ошибкой
// остается в pending и будет забрано повторно; прерванная отменой рассылка
// тоже. Битые задания и задания сверх maxDeliveries подтверждаются сразу.
func (w *FanOutWorker) handle(ctx context.Context, messages []domain.StreamMessage) (int, error) {
	logger := w.Logger()

	for i, msg := range messages {
		event, err := parseEvent(msg)
		if err != nil {
			logger.Warn("Malformed fan-out job, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			w.ack(ctx, msg.ID)
			continue
		}

		if msg.Deliveries > maxDeliveries {
			logger.Error("Fan-out job exceeded delivery attempts, dropping",
				zap.String("message_id", msg.ID),
				zap.String("neighborhood", event.Neighborhood),
				zap.Int64("deliveries", msg.Deliveries))
			w.ack(ctx, msg.ID)
			continue
		}

		result, err := w.fanOut.FanOut(ctx, event)
		if err != nil {
			if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
				logger.Warn("Fan-out interrupted, job left pending",
					zap.String("message_id", msg.ID),
					zap.Int("delivered", result.Delivered))
				return i, err
			}
			logger.Error("Fan-out failed, job left pending for retry",
				zap.String("message_id", msg.ID),
				zap.String("neighborhood", event.Neighborhood),
				zap.Int("delivered", result.Delivered),
				zap.Int64("deliveries", msg.Deliveries),
				zap.Error(err))
			continue
		}

		w.ack(ctx, msg.ID)
	}

	return len(messages), nil
}

func (w *FanOutWorker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessages(ctx, w.Stream(), w.ConsumerGroup(), []string{id}); err != nil {
		// неподтвержденное задание будет разослано повторно
		w.Logger().Error("Failed to ack fan-out job", zap.String("message_id", id), zap.Error(err))
	}
}

func parseEvent(msg domain.StreamMessage) (domain.ServiceAvailableEvent, error) {
	var event domain.ServiceAvailableEvent
	if msg.Data == "" {
		return event, fmt.Errorf("empty payload")
	}
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return event, err
	}
	if !event.ServiceType.Valid() || event.Neighborhood == "" {
		return event, fmt.Errorf("incomplete event: service_type=%q neighborhood=%q", event.ServiceType, event.Neighborhood)
	}
	return event, nil
}
