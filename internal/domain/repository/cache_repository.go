package repository

import (
	"context"
	"time"

	"github.com/infra-status-service/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу, nil при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetHeatmap получает снимок heatmap, nil при промахе
	GetHeatmap(ctx context.Context, serviceType domain.ServiceType, date time.Time) (*domain.Heatmap, error)

	// HeatmapGeneration - номер поколения данных (type, date), 0 если записей не было.
	// Читается до подсчета, который потом сохраняется через SetHeatmap.
	HeatmapGeneration(ctx context.Context, serviceType domain.ServiceType, date time.Time) (int64, error)

	// SetHeatmap сохраняет снимок, только если поколение не изменилось с момента
	// чтения. false - снимок устарел и не сохранен.
	SetHeatmap(ctx context.Context, hm *domain.Heatmap, date time.Time, generation int64, ttl time.Duration) (bool, error)

	// InvalidateHeatmap увеличивает поколение и удаляет снимок после новой записи
	InvalidateHeatmap(ctx context.Context, serviceType domain.ServiceType, date time.Time) error
}
