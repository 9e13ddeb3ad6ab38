package repository

import (
	"context"

	"github.com/infra-status-service/internal/domain"
)

type ZoneRepository interface {
	Create(ctx context.Context, zone *domain.Zone) error
	Get(ctx context.Context, id int64) (*domain.Zone, error)
	Update(ctx context.Context, zone *domain.Zone) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Zone, error)

	// ListByNames - зоны с точным (регистрозависимым) совпадением имени
	ListByNames(ctx context.Context, names []string) ([]domain.Zone, error)
}
