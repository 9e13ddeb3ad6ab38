package usecase

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/domain/repository"
	"github.com/infra-status-service/internal/pkg/validator"
	"github.com/infra-status-service/internal/usecase/dto"
)

// GeoExportUseCase отдает геометрию без изменений: без перепроекции,
// округления и перестановки координат. Цвета вычисляются при чтении.
type GeoExportUseCase struct {
	assets   repository.AssetRepository
	zones    repository.ZoneRepository
	heatmap  *HeatmapUseCase
	clock    clockwork.Clock
	location *time.Location
	logger   *zap.Logger
}

func NewGeoExportUseCase(
	assets repository.AssetRepository,
	zones repository.ZoneRepository,
	heatmap *HeatmapUseCase,
	clock clockwork.Clock,
	location *time.Location,
	logger *zap.Logger,
) *GeoExportUseCase {
	if location == nil {
		location = time.UTC
	}
	return &GeoExportUseCase{
		assets:   assets,
		zones:    zones,
		heatmap:  heatmap,
		clock:    clock,
		location: location,
		logger:   logger,
	}
}

// ListAssets - все узлы и линии в том виде, в каком они сохранены
func (uc *GeoExportUseCase) ListAssets(ctx context.Context) (*domain.NetworkAssets, error) {
	nodes, err := uc.assets.ListNodes(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := uc.assets.ListLines(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.NetworkAssets{Nodes: nodes, Lines: lines}, nil
}

// DisplayLayer объединяет узлы, линии и зоны в одну FeatureCollection.
// С service_type зоны окрашиваются по сегодняшнему heatmap.
func (uc *GeoExportUseCase) DisplayLayer(ctx context.Context, req dto.DisplayLayerRequest) (*domain.FeatureCollection, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	assets, err := uc.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	zones, err := uc.zones.List(ctx)
	if err != nil {
		return nil, err
	}

	statuses := map[string]domain.HeatmapStatus{}
	if req.ServiceType != "" {
		hm, err := uc.heatmap.Heatmap(ctx, domain.ServiceType(req.ServiceType), today(uc.clock, uc.location))
		if err != nil {
			return nil, err
		}
		statuses = hm.StatusByNeighborhood()
	}

	features := make([]domain.Feature, 0, len(assets.Nodes)+len(assets.Lines)+len(zones))
	for _, z := range zones {
		features = append(features, domain.ZoneFeature(z, statuses[z.Name]))
	}
	for _, l := range assets.Lines {
		features = append(features, domain.LineFeature(l))
	}
	for _, n := range assets.Nodes {
		features = append(features, domain.NodeFeature(n))
	}

	uc.logger.Debug("Display layer built",
		zap.Int("zones", len(zones)),
		zap.Int("lines", len(assets.Lines)),
		zap.Int("nodes", len(assets.Nodes)))

	return domain.NewFeatureCollection(features), nil
}
