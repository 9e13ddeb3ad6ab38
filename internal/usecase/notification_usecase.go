package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/domain/repository"
	"github.com/infra-status-service/internal/observability"
	"github.com/infra-status-service/internal/usecase/dto"
)

const defaultFanOutBatchSize = 100

// NotificationUseCase рассылает "услуга восстановлена" жителям района
// порциями, не загружая всех адресатов сразу
type NotificationUseCase struct {
	users      repository.UserDirectory
	dispatcher repository.Dispatcher
	batchSize  int
	metrics    *observability.Metrics
	logger     *zap.Logger
}

func NewNotificationUseCase(
	users repository.UserDirectory,
	dispatcher repository.Dispatcher,
	batchSize int,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *NotificationUseCase {
	if batchSize <= 0 {
		batchSize = defaultFanOutBatchSize
	}
	return &NotificationUseCase{
		users:      users,
		dispatcher: dispatcher,
		batchSize:  batchSize,
		metrics:    metrics,
		logger:     logger,
	}
}

// FanOut проходит по жителям района страницами по batchSize.
// Ошибки отдельных адресатов учитываются в результате; ошибка возвращается
// только при сбое справочника или отмене контекста.
func (uc *NotificationUseCase) FanOut(ctx context.Context, event domain.ServiceAvailableEvent) (dto.FanOutResult, error) {
	start := time.Now()
	var result dto.FanOutResult
	defer func() {
		uc.metrics.FanOutDuration.Observe(time.Since(start).Seconds())
		uc.metrics.FanOutRecipientCount.Observe(float64(result.Delivered + result.Failed))
	}()

	payload := domain.NotificationPayload{
		Kind:         domain.NotificationKindServiceAvailable,
		ServiceType:  event.ServiceType,
		Neighborhood: event.Neighborhood,
	}

	var after *uuid.UUID
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		page, err := uc.users.ListIDsInNeighborhood(ctx, event.Neighborhood, event.ExcludeUserID, after, uc.batchSize)
		if err != nil {
			return result, err
		}
		if len(page) == 0 {
			break
		}
		result.Batches++

		failures, err := uc.dispatcher.Dispatch(ctx, page, payload)
		attempted := len(page)
		if err != nil {
			// прерванная порция: считаем только явные ошибки
			attempted = len(failures)
		}
		result.Failed += len(failures)
		result.Delivered += attempted - len(failures)
		uc.metrics.NotificationsFailed.Add(float64(len(failures)))
		uc.metrics.NotificationsSent.Add(float64(attempted - len(failures)))

		for _, f := range failures {
			uc.logger.Warn("Notification delivery failed",
				zap.String("user_id", f.UserID.String()),
				zap.String("neighborhood", event.Neighborhood),
				zap.Error(f.Err))
		}
		if err != nil {
			return result, err
		}

		if len(page) < uc.batchSize {
			break
		}
		last := page[len(page)-1]
		after = &last
	}

	uc.logger.Info("Neighborhood fan-out completed",
		zap.String("service_type", string(event.ServiceType)),
		zap.String("neighborhood", event.Neighborhood),
		zap.Int64("trigger_log_id", event.TriggerLogID),
		zap.Int("batches", result.Batches),
		zap.Int("delivered", result.Delivered),
		zap.Int("failed", result.Failed))

	return result, nil
}
