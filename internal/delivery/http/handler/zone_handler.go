package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/delivery/http/middleware"
	"github.com/infra-status-service/internal/pkg/utils"
	"github.com/infra-status-service/internal/usecase"
	"github.com/infra-status-service/internal/usecase/dto"
)

// ZoneHandler - полигоны районов
type ZoneHandler struct {
	zoneUC *usecase.ZoneUseCase
	logger *zap.Logger
}

func NewZoneHandler(zoneUC *usecase.ZoneUseCase, logger *zap.Logger) *ZoneHandler {
	return &ZoneHandler{
		zoneUC: zoneUC,
		logger: logger,
	}
}

// List godoc
// @Summary Список зон
// @Tags Zones
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Zone}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/zones [get]
func (h *ZoneHandler) List(c *fiber.Ctx) error {
	zones, err := h.zoneUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, zones, &utils.Meta{Total: len(zones)})
}

// Create godoc
// @Summary Создать зону
// @Tags Zones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ZoneRequest true "Зона"
// @Success 201 {object} utils.SuccessResponse{data=domain.Zone}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/zones [post]
func (h *ZoneHandler) Create(c *fiber.Ctx) error {
	var req dto.ZoneRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}

	zone, err := h.zoneUC.Create(c.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, zone)
}

// Update godoc
// @Summary Заменить имя и полигон зоны
// @Tags Zones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID зоны"
// @Param request body dto.ZoneRequest true "Зона"
// @Success 200 {object} utils.SuccessResponse{data=domain.Zone}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/zones/{id} [put]
func (h *ZoneHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.ZoneRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}

	zone, err := h.zoneUC.Update(c.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, zone, nil)
}

// Delete godoc
// @Summary Удалить зону
// @Tags Zones
// @Security BearerAuth
// @Param id path int true "ID зоны"
// @Success 204
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/zones/{id} [delete]
func (h *ZoneHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := h.zoneUC.Delete(c.Context(), middleware.ActorFrom(c), id); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
