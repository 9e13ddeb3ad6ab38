package repository

import (
	"context"
	"time"
)

// TrendCounter - атомарный счетчик скользящего окна.
// Record добавляет запись member с временем at и в той же атомарной операции
// считает записи ключа в интервале [at-window, at].
// added=false значит, что member уже был учтен (повторная доставка).
type TrendCounter interface {
	Record(ctx context.Context, key, member string, at time.Time, window time.Duration) (count int64, added bool, err error)
}
