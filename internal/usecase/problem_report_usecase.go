package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/domain/repository"
	"github.com/infra-status-service/internal/pkg/validator"
	"github.com/infra-status-service/internal/usecase/dto"
)

const defaultProblemReportLimit = 100

// ProblemReportUseCase - точечные сообщения о проблемах, вне трендов и heatmap
type ProblemReportUseCase struct {
	reports repository.ProblemReportRepository
	zones   repository.ZoneRepository
	logger  *zap.Logger
}

func NewProblemReportUseCase(reports repository.ProblemReportRepository, zones repository.ZoneRepository, logger *zap.Logger) *ProblemReportUseCase {
	return &ProblemReportUseCase{
		reports: reports,
		zones:   zones,
		logger:  logger,
	}
}

func (uc *ProblemReportUseCase) Create(ctx context.Context, reporter *domain.Actor, req dto.CreateProblemReportRequest) (*domain.ProblemReport, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	if req.ZoneID != nil {
		if _, err := uc.zones.Get(ctx, *req.ZoneID); err != nil {
			return nil, err
		}
	}

	report := &domain.ProblemReport{
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Category:    domain.ProblemCategory(req.Category),
		Severity:    req.Severity,
		Description: req.Description,
		ZoneID:      req.ZoneID,
		Status:      domain.ProblemOpen,
	}
	if reporter != nil {
		id := reporter.UserID
		report.ReporterID = &id
	}

	if err := uc.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	uc.logger.Info("Problem report created",
		zap.Int64("id", report.ID),
		zap.String("category", string(report.Category)),
		zap.Int("severity", report.Severity))
	return report, nil
}

func (uc *ProblemReportUseCase) List(ctx context.Context, req dto.ListProblemReportsRequest) ([]domain.ProblemReport, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultProblemReportLimit
	}

	return uc.reports.List(ctx, domain.ProblemReportFilter{
		Category: domain.ProblemCategory(req.Category),
		Status:   domain.ProblemStatus(req.Status),
		Limit:    limit,
	})
}
