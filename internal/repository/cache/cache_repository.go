package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

// generationTTL - поколение живет дольше любого снимка, иначе сброс в 0
// совпал бы с номером, прочитанным до сброса
const generationTTL = 48 * time.Hour

// setIfGenerationScript пишет снимок, только если поколение совпадает с прочитанным.
// KEYS[1] - поколение, KEYS[2] - снимок; ARGV[1] - поколение, ARGV[2] - данные, ARGV[3] - ttl мс
var setIfGenerationScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current ~= tonumber(ARGV[1]) then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// HeatmapKey - ключ снимка heatmap: heatmap:{service_type}:{YYYY-MM-DD}
func HeatmapKey(serviceType domain.ServiceType, date time.Time) string {
	return fmt.Sprintf("heatmap:%s:%s", serviceType, date.Format(domain.DateLayout))
}

// HeatmapGenerationKey - счетчик записей, меняющих heatmap за день
func HeatmapGenerationKey(serviceType domain.ServiceType, date time.Time) string {
	return HeatmapKey(serviceType, date) + ":gen"
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) GetHeatmap(ctx context.Context, serviceType domain.ServiceType, date time.Time) (*domain.Heatmap, error) {
	data, err := r.Get(ctx, HeatmapKey(serviceType, date))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var hm domain.Heatmap
	if err := json.Unmarshal(data, &hm); err != nil {
		r.logger.Error("Failed to unmarshal heatmap from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal heatmap: %w", err)
	}

	return &hm, nil
}

func (r *cacheRepository) HeatmapGeneration(ctx context.Context, serviceType domain.ServiceType, date time.Time) (int64, error) {
	gen, err := r.client.Get(ctx, HeatmapGenerationKey(serviceType, date)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		r.logger.Error("Failed to read heatmap generation", zap.Error(err))
		return 0, fmt.Errorf("heatmap generation: %w", err)
	}
	return gen, nil
}

func (r *cacheRepository) SetHeatmap(ctx context.Context, hm *domain.Heatmap, date time.Time, generation int64, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(hm)
	if err != nil {
		r.logger.Error("Failed to marshal heatmap", zap.Error(err))
		return false, fmt.Errorf("marshal heatmap: %w", err)
	}

	stored, err := setIfGenerationScript.Run(ctx, r.client,
		[]string{HeatmapGenerationKey(hm.ServiceType, date), HeatmapKey(hm.ServiceType, date)},
		generation, data, ttl.Milliseconds(),
	).Int()
	if err != nil {
		r.logger.Error("Failed to set heatmap snapshot", zap.Error(err))
		return false, fmt.Errorf("cache set error: %w", err)
	}
	return stored == 1, nil
}

// InvalidateHeatmap - INCR поколения и DEL снимка в одной транзакции
func (r *cacheRepository) InvalidateHeatmap(ctx context.Context, serviceType domain.ServiceType, date time.Time) error {
	genKey := HeatmapGenerationKey(serviceType, date)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, HeatmapKey(serviceType, date))
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to invalidate heatmap", zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}
