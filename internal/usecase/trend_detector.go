package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/domain/repository"
	"github.com/infra-status-service/internal/observability"
)

// TrendDetector срабатывает, когда в районе набирается ровно threshold
// сообщений "available" за окно window. Шестое и последующие сообщения в том же
// окне не срабатывают; рассылка ставится в очередь и не блокирует запрос.
type TrendDetector struct {
	counter   repository.TrendCounter
	publisher repository.NotificationPublisher
	window    time.Duration
	threshold int64
	clock     clockwork.Clock
	metrics   *observability.Metrics
	logger    *zap.Logger
}

func NewTrendDetector(
	counter repository.TrendCounter,
	publisher repository.NotificationPublisher,
	window time.Duration,
	threshold int64,
	clock clockwork.Clock,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *TrendDetector {
	return &TrendDetector{
		counter:   counter,
		publisher: publisher,
		window:    window,
		threshold: threshold,
		clock:     clock,
		metrics:   metrics,
		logger:    logger,
	}
}

func (d *TrendDetector) Name() string {
	return "trend_detector"
}

// OnServiceLogCreated учитывает запись в окне и при пересечении порога
// ставит задание на рассылку. cut_off записи не учитываются.
func (d *TrendDetector) OnServiceLogCreated(ctx context.Context, event domain.ServiceLogCreated) error {
	log := event.Log
	if log.Status != domain.StatusAvailable || log.Neighborhood == "" {
		return nil
	}

	at := log.CreatedAt
	if at.IsZero() {
		at = d.clock.Now()
	}

	count, added, err := d.counter.Record(ctx,
		domain.TrendKey(log.ServiceType, log.Neighborhood),
		strconv.FormatInt(log.ID, 10),
		at,
		d.window,
	)
	if err != nil {
		d.metrics.TrendCounterErrors.Inc()
		return fmt.Errorf("record trend entry: %w", err)
	}

	if !added || count != d.threshold {
		d.logger.Debug("Trend not fired",
			zap.Int64("log_id", log.ID),
			zap.Int64("count", count),
			zap.Bool("added", added))
		return nil
	}

	job := domain.ServiceAvailableEvent{
		ServiceType:   log.ServiceType,
		Neighborhood:  log.Neighborhood,
		ExcludeUserID: log.ReporterID,
		TriggerLogID:  log.ID,
		FiredAt:       d.clock.Now(),
	}
	if err := d.publisher.PublishServiceAvailable(ctx, job); err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}

	d.metrics.TrendFired.WithLabelValues(string(log.ServiceType)).Inc()
	d.logger.Info("Service restoration trend fired",
		zap.String("service_type", string(log.ServiceType)),
		zap.String("neighborhood", log.Neighborhood),
		zap.Int64("trigger_log_id", log.ID))

	return nil
}
