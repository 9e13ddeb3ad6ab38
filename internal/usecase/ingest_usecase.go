package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/domain/repository"
	"github.com/infra-status-service/internal/observability"
	"github.com/infra-status-service/internal/pkg/utils"
	"github.com/infra-status-service/internal/pkg/validator"
	"github.com/infra-status-service/internal/usecase/dto"
)

// PostWriteHook получает событие о новой записи в рамках той же операции.
// Ошибка хука логируется и не отменяет запись.
type PostWriteHook interface {
	Name() string
	OnServiceLogCreated(ctx context.Context, event domain.ServiceLogCreated) error
}

// IngestUseCase принимает сообщения жителей о наличии услуг
type IngestUseCase struct {
	logs     repository.ServiceLogRepository
	cache    repository.CacheRepository
	resolver *DepartmentResolver
	hooks    []PostWriteHook
	clock    clockwork.Clock
	location *time.Location
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewIngestUseCase создает новый экземпляр IngestUseCase
func NewIngestUseCase(
	logs repository.ServiceLogRepository,
	cache repository.CacheRepository,
	resolver *DepartmentResolver,
	clock clockwork.Clock,
	location *time.Location,
	metrics *observability.Metrics,
	logger *zap.Logger,
	hooks ...PostWriteHook,
) *IngestUseCase {
	if location == nil {
		location = time.UTC
	}
	return &IngestUseCase{
		logs:     logs,
		cache:    cache,
		resolver: resolver,
		hooks:    hooks,
		clock:    clock,
		location: location,
		metrics:  metrics,
		logger:   logger,
	}
}

// Submit валидирует и сохраняет запись, затем публикует ServiceLogCreated хукам.
// reporter == nil - анонимное сообщение.
func (uc *IngestUseCase) Submit(ctx context.Context, reporter *domain.Actor, req dto.SubmitServiceLogRequest) (*dto.SubmitServiceLogResponse, error) {
	// 1. Валидация до любых побочных эффектов
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	logDate, err := resolveDate(req.LogDate, uc.clock, uc.location)
	if err != nil {
		return nil, err
	}

	log := &domain.ServiceLog{
		ServiceType:   domain.ServiceType(req.ServiceType),
		Status:        domain.ServiceStatus(req.Status),
		Neighborhood:  req.Neighborhood,
		LogDate:       logDate,
		Quality:       req.Quality,
		Notes:         req.Notes,
		ArrivalTime:   req.ArrivalTime,
		DepartureTime: req.DepartureTime,
	}
	if reporter != nil {
		id := reporter.UserID
		log.ReporterID = &id
	}

	// 2. Департамент по типу услуги
	log.DepartmentID = uc.resolver.Resolve(ctx, log.ServiceType)

	// 3. Запись
	if err := uc.logs.Create(ctx, log); err != nil {
		return nil, err
	}
	uc.metrics.ReportsIngested.WithLabelValues(string(log.ServiceType), string(log.Status)).Inc()

	uc.logger.Info("Service log created",
		zap.Int64("id", log.ID),
		zap.String("service_type", string(log.ServiceType)),
		zap.String("status", string(log.Status)),
		zap.String("neighborhood", log.Neighborhood))

	if err := uc.cache.InvalidateHeatmap(ctx, log.ServiceType, logDate); err != nil {
		uc.logger.Warn("Failed to invalidate heatmap snapshot", zap.Error(err))
	}

	// 4. Событие после записи
	uc.publish(ctx, domain.ServiceLogCreated{Log: *log})

	return &dto.SubmitServiceLogResponse{
		Log:                   *log,
		ReporterServiceTypes:  uc.reporterTypes(ctx, log.ReporterID, logDate),
		CommunityAvailability: uc.availability(ctx, logDate),
	}, nil
}

func (uc *IngestUseCase) publish(ctx context.Context, event domain.ServiceLogCreated) {
	for _, hook := range uc.hooks {
		if err := hook.OnServiceLogCreated(ctx, event); err != nil {
			uc.metrics.HookErrors.WithLabelValues(hook.Name()).Inc()
			uc.logger.Error("Post-write hook failed",
				zap.String("hook", hook.Name()),
				zap.Int64("log_id", event.Log.ID),
				zap.Error(err))
		}
	}
}

// Сводки ответа: запись уже сохранена, поэтому ошибки чтения не возвращаются
func (uc *IngestUseCase) reporterTypes(ctx context.Context, reporterID *uuid.UUID, date time.Time) []domain.ServiceType {
	if reporterID == nil {
		return []domain.ServiceType{}
	}
	types, err := uc.logs.ServiceTypesByReporter(ctx, *reporterID, date)
	if err != nil {
		uc.logger.Warn("Failed to load reporter service types", zap.Error(err))
		return []domain.ServiceType{}
	}
	if types == nil {
		types = []domain.ServiceType{}
	}
	return types
}

func (uc *IngestUseCase) availability(ctx context.Context, date time.Time) []domain.ServiceAvailability {
	stats, err := uc.logs.DailyAvailability(ctx, date)
	if err != nil {
		uc.logger.Warn("Failed to load community availability", zap.Error(err))
		return []domain.ServiceAvailability{}
	}
	for i := range stats {
		stats[i].Percent = utils.Percent(stats[i].AvailableCount, stats[i].Total)
	}
	if stats == nil {
		stats = []domain.ServiceAvailability{}
	}
	return stats
}
