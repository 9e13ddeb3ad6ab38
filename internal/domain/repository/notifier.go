package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/infra-status-service/internal/domain"
)

// NotificationPublisher ставит задание на рассылку в очередь
type NotificationPublisher interface {
	PublishServiceAvailable(ctx context.Context, event domain.ServiceAvailableEvent) error
}

// Dispatcher доставляет уведомление адресатам вне запроса.
// Ошибки по отдельным адресатам возвращаются списком и не прерывают пачку.
type Dispatcher interface {
	Dispatch(ctx context.Context, recipients []uuid.UUID, payload domain.NotificationPayload) ([]domain.DeliveryFailure, error)
}
