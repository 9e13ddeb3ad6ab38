package repository

import (
	"context"

	"github.com/infra-status-service/internal/domain"
)

type ProblemReportRepository interface {
	Create(ctx context.Context, report *domain.ProblemReport) error
	List(ctx context.Context, filter domain.ProblemReportFilter) ([]domain.ProblemReport, error)
}
