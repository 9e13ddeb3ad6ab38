package usecase

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/domain/repository"
	"github.com/infra-status-service/internal/pkg/errors"
	"github.com/infra-status-service/internal/pkg/validator"
	"github.com/infra-status-service/internal/usecase/dto"
)

// ZoneUseCase - полигоны районов, которые ведут сотрудники
type ZoneUseCase struct {
	zones       repository.ZoneRepository
	permissions *PermissionResolver
	logger      *zap.Logger
}

func NewZoneUseCase(zones repository.ZoneRepository, permissions *PermissionResolver, logger *zap.Logger) *ZoneUseCase {
	return &ZoneUseCase{
		zones:       zones,
		permissions: permissions,
		logger:      logger,
	}
}

func (uc *ZoneUseCase) List(ctx context.Context) ([]domain.Zone, error) {
	return uc.zones.List(ctx)
}

func (uc *ZoneUseCase) Create(ctx context.Context, actor *domain.Actor, req dto.ZoneRequest) (*domain.Zone, error) {
	polygon, err := uc.authorizeAndParse(ctx, actor, req)
	if err != nil {
		return nil, err
	}

	zone := &domain.Zone{
		Name:    req.Name,
		Kind:    domain.ZoneKindNeighborhood,
		Polygon: polygon,
	}
	if err := uc.zones.Create(ctx, zone); err != nil {
		return nil, err
	}

	uc.logger.Info("Zone created", zap.Int64("id", zone.ID), zap.String("name", zone.Name))
	return zone, nil
}

// Update заменяет имя и полигон; отсутствующая зона - ZONE_NOT_FOUND
func (uc *ZoneUseCase) Update(ctx context.Context, actor *domain.Actor, id int64, req dto.ZoneRequest) (*domain.Zone, error) {
	polygon, err := uc.authorizeAndParse(ctx, actor, req)
	if err != nil {
		return nil, err
	}

	zone := &domain.Zone{
		ID:      id,
		Name:    req.Name,
		Polygon: polygon,
	}
	if err := uc.zones.Update(ctx, zone); err != nil {
		return nil, err
	}

	uc.logger.Info("Zone updated", zap.Int64("id", id), zap.String("name", zone.Name))
	return zone, nil
}

func (uc *ZoneUseCase) Delete(ctx context.Context, actor *domain.Actor, id int64) error {
	if err := uc.permissions.AuthorizeZoneEdit(ctx, actor); err != nil {
		return err
	}
	if err := uc.zones.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("Zone deleted", zap.Int64("id", id))
	return nil
}

func (uc *ZoneUseCase) authorizeAndParse(ctx context.Context, actor *domain.Actor, req dto.ZoneRequest) (domain.Polygon, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	if err := uc.permissions.AuthorizeZoneEdit(ctx, actor); err != nil {
		return nil, err
	}

	var polygon domain.Polygon
	if len(req.Polygon) == 0 {
		return nil, errors.ErrInvalidGeometry.WithMessage("polygon is required")
	}
	if err := json.Unmarshal(req.Polygon, &polygon); err != nil {
		return nil, errors.ErrInvalidGeometry.WithMessage("polygon must be an array of rings of [lon, lat] pairs")
	}
	if err := domain.ValidatePolygon(polygon); err != nil {
		return nil, errors.ErrInvalidGeometry.WithMessage(err.Error())
	}
	return polygon, nil
}
