package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/delivery/http/middleware"
	"github.com/infra-status-service/internal/pkg/utils"
	"github.com/infra-status-service/internal/usecase"
	"github.com/infra-status-service/internal/usecase/dto"
)

type ProblemReportHandler struct {
	reportUC *usecase.ProblemReportUseCase
	logger   *zap.Logger
}

func NewProblemReportHandler(reportUC *usecase.ProblemReportUseCase, logger *zap.Logger) *ProblemReportHandler {
	return &ProblemReportHandler{
		reportUC: reportUC,
		logger:   logger,
	}
}

// Create godoc
// @Summary Сообщить о проблеме в точке
// @Tags ProblemReports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProblemReportRequest true "Сообщение"
// @Success 201 {object} utils.SuccessResponse{data=domain.ProblemReport}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/problem-reports [post]
func (h *ProblemReportHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProblemReportRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}

	report, err := h.reportUC.Create(c.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, report)
}

// List godoc
// @Summary Список сообщений о проблемах
// @Tags ProblemReports
// @Produce json
// @Param category query string false "electricity, water, sanitation, safety"
// @Param status query string false "open, in_progress, resolved"
// @Param limit query int false "Максимум записей" default(100)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.ProblemReport}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/problem-reports [get]
func (h *ProblemReportHandler) List(c *fiber.Ctx) error {
	var req dto.ListProblemReportsRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, invalidBody())
	}

	reports, err := h.reportUC.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, reports, &utils.Meta{Total: len(reports), Limit: req.Limit})
}
