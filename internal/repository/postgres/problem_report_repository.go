package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/domain/repository"
	"github.com/infra-status-service/internal/pkg/errors"
)

type problemReportRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewProblemReportRepository создает новый экземпляр ProblemReportRepository
func NewProblemReportRepository(db *DB) repository.ProblemReportRepository {
	return &problemReportRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *problemReportRepository) Create(ctx context.Context, report *domain.ProblemReport) error {
	if report.Status == "" {
		report.Status = domain.ProblemOpen
	}

	query := `
		INSERT INTO problem_reports (
			reporter_id, latitude, longitude, category, severity, description, zone_id, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		report.ReporterID,
		report.Latitude,
		report.Longitude,
		string(report.Category),
		report.Severity,
		report.Description,
		report.ZoneID,
		string(report.Status),
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert problem report",
			zap.String("category", string(report.Category)),
			zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *problemReportRepository) List(ctx context.Context, filter domain.ProblemReportFilter) ([]domain.ProblemReport, error) {
	query := `
		SELECT id, reporter_id, latitude, longitude, category, severity,
			description, zone_id, status, created_at
		FROM problem_reports
	`

	var (
		conditions []string
		args       []interface{}
	)
	if filter.Category != "" {
		args = append(args, string(filter.Category))
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	reports := []domain.ProblemReport{}
	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		r.logger.Error("Failed to list problem reports", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return reports, nil
}
