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

// AssetUseCase - изменение узлов и линий сетей с проверкой прав.
// Порядок: валидация полей, авторизация, разбор геометрии, запись.
type AssetUseCase struct {
	assets      repository.AssetRepository
	permissions *PermissionResolver
	logger      *zap.Logger
}

// NewAssetUseCase создает новый экземпляр AssetUseCase
func NewAssetUseCase(assets repository.AssetRepository, permissions *PermissionResolver, logger *zap.Logger) *AssetUseCase {
	return &AssetUseCase{
		assets:      assets,
		permissions: permissions,
		logger:      logger,
	}
}

func (uc *AssetUseCase) CreateNode(ctx context.Context, actor *domain.Actor, req dto.CreateNodeRequest) (*domain.Node, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	network := domain.NetworkType(req.NetworkType)
	if err := uc.permissions.AuthorizeNetwork(ctx, actor, network); err != nil {
		return nil, err
	}

	if req.Latitude == nil || req.Longitude == nil {
		return nil, errors.ErrInvalidGeometry.WithMessage("latitude and longitude are required")
	}
	point := domain.Position{*req.Longitude, *req.Latitude}
	if err := domain.ValidatePosition(point); err != nil {
		return nil, errors.ErrInvalidGeometry.WithMessage(err.Error())
	}

	node := &domain.Node{
		NetworkType: network,
		Subtype:     req.Subtype,
		Point:       point,
		Status:      statusOrDefault(req.Status),
		Metadata:    metadataOrEmpty(req.Metadata),
	}
	if err := uc.assets.CreateNode(ctx, node); err != nil {
		return nil, err
	}

	uc.logger.Info("Node created",
		zap.Int64("id", node.ID),
		zap.String("network_type", string(network)),
		zap.String("actor", actor.UserID.String()))
	return node, nil
}

func (uc *AssetUseCase) CreateLine(ctx context.Context, actor *domain.Actor, req dto.CreateLineRequest) (*domain.Line, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	network := domain.NetworkType(req.NetworkType)
	if err := uc.permissions.AuthorizeNetwork(ctx, actor, network); err != nil {
		return nil, err
	}

	var coords domain.LineString
	if len(req.Coordinates) == 0 {
		return nil, errors.ErrInvalidGeometry.WithMessage("coordinates are required")
	}
	if err := json.Unmarshal(req.Coordinates, &coords); err != nil {
		return nil, errors.ErrInvalidGeometry.WithMessage("coordinates must be an array of [lon, lat] pairs")
	}
	if err := domain.ValidateLineString(coords); err != nil {
		return nil, errors.ErrInvalidGeometry.WithMessage(err.Error())
	}

	line := &domain.Line{
		NetworkType: network,
		Coordinates: coords,
		Status:      statusOrDefault(req.Status),
		Metadata:    metadataOrEmpty(req.Metadata),
	}
	if err := uc.assets.CreateLine(ctx, line); err != nil {
		return nil, err
	}

	uc.logger.Info("Line created",
		zap.Int64("id", line.ID),
		zap.String("network_type", string(network)),
		zap.Int("vertices", len(coords)))
	return line, nil
}

// UpdateNode - права проверяются по сети сохраненного узла
func (uc *AssetUseCase) UpdateNode(ctx context.Context, actor *domain.Actor, id int64, req dto.UpdateAssetRequest) (*domain.Node, error) {
	patch, err := toPatch(req)
	if err != nil {
		return nil, err
	}
	current, err := uc.assets.GetNode(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.permissions.AuthorizeNetwork(ctx, actor, current.NetworkType); err != nil {
		return nil, err
	}
	return uc.assets.UpdateNode(ctx, id, patch)
}

func (uc *AssetUseCase) UpdateLine(ctx context.Context, actor *domain.Actor, id int64, req dto.UpdateAssetRequest) (*domain.Line, error) {
	patch, err := toPatch(req)
	if err != nil {
		return nil, err
	}
	current, err := uc.assets.GetLine(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.permissions.AuthorizeNetwork(ctx, actor, current.NetworkType); err != nil {
		return nil, err
	}
	return uc.assets.UpdateLine(ctx, id, patch)
}

// DeleteNode - жесткое удаление; отсутствующий id дает NODE_NOT_FOUND
func (uc *AssetUseCase) DeleteNode(ctx context.Context, actor *domain.Actor, id int64) error {
	current, err := uc.assets.GetNode(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.permissions.AuthorizeNetwork(ctx, actor, current.NetworkType); err != nil {
		return err
	}
	if err := uc.assets.DeleteNode(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("Node deleted", zap.Int64("id", id))
	return nil
}

func (uc *AssetUseCase) DeleteLine(ctx context.Context, actor *domain.Actor, id int64) error {
	current, err := uc.assets.GetLine(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.permissions.AuthorizeNetwork(ctx, actor, current.NetworkType); err != nil {
		return err
	}
	if err := uc.assets.DeleteLine(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("Line deleted", zap.Int64("id", id))
	return nil
}

func toPatch(req dto.UpdateAssetRequest) (domain.AssetPatch, error) {
	if err := validator.Validate(req); err != nil {
		return domain.AssetPatch{}, err
	}
	if req.Status == nil && req.Metadata == nil {
		return domain.AssetPatch{}, errors.ErrInvalidRequest.WithMessage("nothing to update")
	}

	var patch domain.AssetPatch
	if req.Status != nil {
		s := domain.AssetStatus(*req.Status)
		patch.Status = &s
	}
	if req.Metadata != nil {
		m := metadataOrEmpty(*req.Metadata)
		patch.Metadata = &m
	}
	return patch, nil
}

func statusOrDefault(s string) domain.AssetStatus {
	if s == "" {
		return domain.AssetActive
	}
	return domain.AssetStatus(s)
}

func metadataOrEmpty(m domain.Metadata) domain.Metadata {
	if m == nil {
		return domain.Metadata{}
	}
	return m
}
