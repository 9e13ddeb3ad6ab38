package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain/repository"
)

// slidingWindowScript добавляет member в ZSET и считает элементы окна
// одной атомарной операцией. Верхняя граница счета открыта: created_at
// ставит база, и порядок меток не обязан совпадать с порядком вызовов
// скрипта. Более поздняя по времени запись, пришедшая раньше, тоже
// учитывается, поэтому значение count получает ровно один вызов.
//
// KEYS[1] - ключ окна
// ARGV[1] - member, ARGV[2] - время записи в мс, ARGV[3] - длина окна в мс
// Возвращает {added, count}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local member = ARGV[1]
local at = tonumber(ARGV[2])
local window = tonumber(ARGV[3])

local added = redis.call('ZADD', key, 'NX', at, member)
redis.call('ZREMRANGEBYSCORE', key, '-inf', '(' .. (at - window))
local count = redis.call('ZCOUNT', key, at - window, '+inf')
redis.call('PEXPIRE', key, window)
return {added, count}
`)

type trendCounter struct {
	client *redis.Client
	logger *zap.Logger
}

func NewTrendCounter(redis *Redis) repository.TrendCounter {
	return &trendCounter{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (c *trendCounter) Record(ctx context.Context, key, member string, at time.Time, window time.Duration) (int64, bool, error) {
	res, err := slidingWindowScript.Run(ctx, c.client,
		[]string{key},
		member, at.UnixMilli(), window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		c.logger.Error("Failed to record trend entry",
			zap.String("key", key),
			zap.Error(err))
		return 0, false, fmt.Errorf("trend counter: %w", err)
	}
	if len(res) != 2 {
		return 0, false, fmt.Errorf("trend counter: unexpected reply %v", res)
	}

	return res[1], res[0] == 1, nil
}
