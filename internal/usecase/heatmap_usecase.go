package usecase

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/domain/repository"
	"github.com/infra-status-service/internal/observability"
	"github.com/infra-status-service/internal/pkg/validator"
	"github.com/infra-status-service/internal/usecase/dto"
)

// HeatmapUseCase строит карту районов по сообщениям за день
type HeatmapUseCase struct {
	logs     repository.ServiceLogRepository
	zones    repository.ZoneRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration
	clock    clockwork.Clock
	location *time.Location
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewHeatmapUseCase создает новый экземпляр HeatmapUseCase
func NewHeatmapUseCase(
	logs repository.ServiceLogRepository,
	zones repository.ZoneRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	clock clockwork.Clock,
	location *time.Location,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *HeatmapUseCase {
	if location == nil {
		location = time.UTC
	}
	return &HeatmapUseCase{
		logs:     logs,
		zones:    zones,
		cache:    cache,
		cacheTTL: cacheTTL,
		clock:    clock,
		location: location,
		metrics:  metrics,
		logger:   logger,
	}
}

// GetHeatmap - тип по умолчанию electricity, дата по умолчанию сегодня
func (uc *HeatmapUseCase) GetHeatmap(ctx context.Context, req dto.HeatmapRequest) (*domain.Heatmap, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	serviceType := domain.ServiceElectricity
	if req.ServiceType != "" {
		serviceType = domain.ServiceType(req.ServiceType)
	}
	date, err := resolveDate(req.Date, uc.clock, uc.location)
	if err != nil {
		return nil, err
	}

	return uc.Heatmap(ctx, serviceType, date)
}

// Heatmap - снимок из кеша или расчет. Сбой кеша деградирует до расчета,
// сбой хранилища возвращается ошибкой. Поколение читается до подсчета:
// если за время расчета пришла новая запись, снимок не сохраняется.
func (uc *HeatmapUseCase) Heatmap(ctx context.Context, serviceType domain.ServiceType, date time.Time) (*domain.Heatmap, error) {
	cached, err := uc.cache.GetHeatmap(ctx, serviceType, date)
	switch {
	case err != nil:
		uc.metrics.HeatmapCache.WithLabelValues("error").Inc()
		uc.logger.Warn("Failed to get heatmap from cache", zap.Error(err))
	case cached != nil:
		uc.metrics.HeatmapCache.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		uc.metrics.HeatmapCache.WithLabelValues("miss").Inc()
	}

	generation, genErr := uc.cache.HeatmapGeneration(ctx, serviceType, date)
	if genErr != nil {
		uc.logger.Warn("Failed to read heatmap generation, snapshot will not be cached", zap.Error(genErr))
	}

	hm, err := uc.compute(ctx, serviceType, date)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		stored, err := uc.cache.SetHeatmap(ctx, hm, date, generation, uc.cacheTTL)
		switch {
		case err != nil:
			uc.logger.Warn("Failed to cache heatmap", zap.Error(err))
		case !stored:
			uc.metrics.HeatmapCache.WithLabelValues("stale").Inc()
			uc.logger.Debug("Heatmap snapshot superseded by a newer report",
				zap.String("service_type", string(serviceType)),
				zap.Int64("generation", generation))
		}
	}

	return hm, nil
}

func (uc *HeatmapUseCase) compute(ctx context.Context, serviceType domain.ServiceType, date time.Time) (*domain.Heatmap, error) {
	tallies, err := uc.logs.TallyByNeighborhood(ctx, serviceType, date)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(tallies))
	for _, t := range tallies {
		names = append(names, t.Neighborhood)
	}

	zones, err := uc.zones.ListByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]domain.Zone, len(zones))
	for _, z := range zones {
		// при дублях имени берется первая зона по id
		if _, ok := byName[z.Name]; !ok {
			byName[z.Name] = z
		}
	}

	hm := domain.BuildHeatmap(serviceType, date, tallies, byName)
	if len(hm.Unmatched) > 0 {
		uc.logger.Debug("Neighborhoods without zone geometry",
			zap.String("service_type", string(serviceType)),
			zap.Strings("neighborhoods", hm.Unmatched))
	}

	return hm, nil
}
