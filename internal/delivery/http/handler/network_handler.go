package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/delivery/http/middleware"
	"github.com/infra-status-service/internal/pkg/utils"
	"github.com/infra-status-service/internal/usecase"
	"github.com/infra-status-service/internal/usecase/dto"
)

// NetworkHandler - узлы и линии инженерных сетей
type NetworkHandler struct {
	assetUC  *usecase.AssetUseCase
	exportUC *usecase.GeoExportUseCase
	logger   *zap.Logger
}

// NewNetworkHandler создает новый экземпляр NetworkHandler
func NewNetworkHandler(assetUC *usecase.AssetUseCase, exportUC *usecase.GeoExportUseCase, logger *zap.Logger) *NetworkHandler {
	return &NetworkHandler{
		assetUC:  assetUC,
		exportUC: exportUC,
		logger:   logger,
	}
}

// ListAssets godoc
// @Summary Все узлы и линии
// @Description Объекты сетей в том виде, в каком они сохранены
// @Tags Network
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=domain.NetworkAssets}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/network/assets [get]
func (h *NetworkHandler) ListAssets(c *fiber.Ctx) error {
	assets, err := h.exportUC.ListAssets(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, assets, &utils.Meta{Total: len(assets.Nodes) + len(assets.Lines)})
}

// DisplayLayer godoc
// @Summary Слой отображения
// @Description FeatureCollection узлов, линий и зон с display_color. С service_type зоны окрашиваются по сегодняшнему heatmap.
// @Tags Network
// @Produce json
// @Param service_type query string false "electricity или water"
// @Success 200 {object} domain.FeatureCollection
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/network/layers [get]
func (h *NetworkHandler) DisplayLayer(c *fiber.Ctx) error {
	var req dto.DisplayLayerRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}

	fc, err := h.exportUC.DisplayLayer(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return c.JSON(fc)
}

// CreateNode godoc
// @Summary Создать узел
// @Tags Network
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateNodeRequest true "Узел"
// @Success 201 {object} utils.SuccessResponse{data=domain.Node}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/network/nodes [post]
func (h *NetworkHandler) CreateNode(c *fiber.Ctx) error {
	var req dto.CreateNodeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}

	node, err := h.assetUC.CreateNode(c.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, node)
}

// UpdateNode godoc
// @Summary Изменить статус или metadata узла
// @Tags Network
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID узла"
// @Param request body dto.UpdateAssetRequest true "Изменения"
// @Success 200 {object} utils.SuccessResponse{data=domain.Node}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/network/nodes/{id} [patch]
func (h *NetworkHandler) UpdateNode(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.UpdateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}

	node, err := h.assetUC.UpdateNode(c.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, node, nil)
}

// DeleteNode godoc
// @Summary Удалить узел
// @Tags Network
// @Security BearerAuth
// @Param id path int true "ID узла"
// @Success 204
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/network/nodes/{id} [delete]
func (h *NetworkHandler) DeleteNode(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := h.assetUC.DeleteNode(c.Context(), middleware.ActorFrom(c), id); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateLine godoc
// @Summary Создать линию
// @Tags Network
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLineRequest true "Линия"
// @Success 201 {object} utils.SuccessResponse{data=domain.Line}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/network/lines [post]
func (h *NetworkHandler) CreateLine(c *fiber.Ctx) error {
	var req dto.CreateLineRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}

	line, err := h.assetUC.CreateLine(c.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, line)
}

// UpdateLine godoc
// @Summary Изменить статус или metadata линии
// @Tags Network
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID линии"
// @Param request body dto.UpdateAssetRequest true "Изменения"
// @Success 200 {object} utils.SuccessResponse{data=domain.Line}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/network/lines/{id} [patch]
func (h *NetworkHandler) UpdateLine(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.UpdateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}

	line, err := h.assetUC.UpdateLine(c.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, line, nil)
}

// DeleteLine godoc
// @Summary Удалить линию
// @Tags Network
// @Security BearerAuth
// @Param id path int true "ID линии"
// @Success 204
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/network/lines/{id} [delete]
func (h *NetworkHandler) DeleteLine(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := h.assetUC.DeleteLine(c.Context(), middleware.ActorFrom(c), id); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
