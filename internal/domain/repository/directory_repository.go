package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/infra-status-service/internal/domain"
)

// DepartmentRepository - справочник департаментов
type DepartmentRepository interface {
	// GetBySlug возвращает nil, nil если департамента нет
	GetBySlug(ctx context.Context, slug string) (*domain.Department, error)

	// SlugForUser - слаг департамента пользователя, "" если не привязан
	SlugForUser(ctx context.Context, userID uuid.UUID) (string, error)
}

// UserDirectory - выборка получателей уведомлений
type UserDirectory interface {
	// ListIDsInNeighborhood возвращает до limit id пользователей района,
	// упорядоченных по id и больших after, без exclude
	ListIDsInNeighborhood(ctx context.Context, neighborhood string, exclude *uuid.UUID, after *uuid.UUID, limit int) ([]uuid.UUID, error)
}
