package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/domain/repository"
)

// DepartmentResolver назначает департамент записи по типу услуги.
// Отсутствие департамента не ошибка: поле остается пустым.
type DepartmentResolver struct {
	departments repository.DepartmentRepository
	logger      *zap.Logger
}

func NewDepartmentResolver(departments repository.DepartmentRepository, logger *zap.Logger) *DepartmentResolver {
	return &DepartmentResolver{
		departments: departments,
		logger:      logger,
	}
}

func (r *DepartmentResolver) Resolve(ctx context.Context, serviceType domain.ServiceType) *int64 {
	slug := domain.DepartmentSlugForService(serviceType)

	dept, err := r.departments.GetBySlug(ctx, slug)
	if err != nil {
		r.logger.Warn("Failed to resolve department",
			zap.String("slug", slug),
			zap.Error(err))
		return nil
	}
	if dept == nil {
		r.logger.Warn("Department not found, leaving unset", zap.String("slug", slug))
		return nil
	}

	id := dept.ID
	return &id
}
