package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/infra-status-service/internal/domain"
)

// ServiceLogRepository - журнал сообщений жителей. Только добавление и чтение.
type ServiceLogRepository interface {
	// Create сохраняет запись и заполняет ID
	Create(ctx context.Context, log *domain.ServiceLog) error

	// TallyByNeighborhood группирует записи типа/даты по району
	TallyByNeighborhood(ctx context.Context, serviceType domain.ServiceType, date time.Time) ([]domain.NeighborhoodTally, error)

	// ServiceTypesByReporter - типы услуг, о которых пользователь уже сообщил за день
	ServiceTypesByReporter(ctx context.Context, reporterID uuid.UUID, date time.Time) ([]domain.ServiceType, error)

	// DailyAvailability - доля "available" по всему городу за день, по типам услуг
	DailyAvailability(ctx context.Context, date time.Time) ([]domain.ServiceAvailability, error)
}
