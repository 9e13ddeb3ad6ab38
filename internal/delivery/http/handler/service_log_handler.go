package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/delivery/http/middleware"
	"github.com/infra-status-service/internal/pkg/utils"
	"github.com/infra-status-service/internal/usecase"
	"github.com/infra-status-service/internal/usecase/dto"
)

// ServiceLogHandler - сообщения жителей и heatmap
type ServiceLogHandler struct {
	ingestUC  *usecase.IngestUseCase
	heatmapUC *usecase.HeatmapUseCase
	logger    *zap.Logger
}

// NewServiceLogHandler создает новый экземпляр ServiceLogHandler
func NewServiceLogHandler(ingestUC *usecase.IngestUseCase, heatmapUC *usecase.HeatmapUseCase, logger *zap.Logger) *ServiceLogHandler {
	return &ServiceLogHandler{
		ingestUC:  ingestUC,
		heatmapUC: heatmapUC,
		logger:    logger,
	}
}

// Submit godoc
// @Summary Сообщить о наличии услуги
// @Description Сохраняет сообщение жителя (electricity/water, available/cut_off). Токен необязателен: без него сообщение анонимное.
// @Tags ServiceLogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitServiceLogRequest true "Сообщение"
// @Success 201 {object} utils.SuccessResponse{data=dto.SubmitServiceLogResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/service-logs [post]
func (h *ServiceLogHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitServiceLogRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}

	resp, err := h.ingestUC.Submit(c.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, resp)
}

// Heatmap godoc
// @Summary Heatmap районов
// @Description GeoJSON FeatureCollection районов с долей сообщений "available" за день
// @Tags ServiceLogs
// @Produce json
// @Param service_type query string false "electricity или water" default(electricity)
// @Param date query string false "Дата YYYY-MM-DD, по умолчанию сегодня"
// @Success 200 {object} domain.Heatmap
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/service-logs/heatmap [get]
func (h *ServiceLogHandler) Heatmap(c *fiber.Ctx) error {
	var req dto.HeatmapRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}

	hm, err := h.heatmapUC.GetHeatmap(c.Context(), req)
	if err != nil {
		h.logger.Error("Failed to build heatmap", zap.Error(err))
		return utils.SendError(c, err)
	}

	return c.JSON(hm)
}
