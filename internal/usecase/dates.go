package usecase

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/pkg/errors"
)

// today - полночь текущего дня в часовом поясе loc
func today(clock clockwork.Clock, loc *time.Location) time.Time {
	now := clock.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

// resolveDate разбирает YYYY-MM-DD; пустая строка - сегодня
func resolveDate(raw string, clock clockwork.Clock, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return today(clock, loc), nil
	}
	d, err := time.ParseInLocation(domain.DateLayout, raw, loc)
	if err != nil {
		return time.Time{}, errors.ErrValidation.WithDetails(map[string]interface{}{
			"fields": map[string]interface{}{"date": "datetime"},
		})
	}
	return d, nil
}
