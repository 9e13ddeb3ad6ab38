package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/domain/repository"
	"github.com/infra-status-service/internal/pkg/errors"
)

type serviceLogRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewServiceLogRepository создает новый экземпляр ServiceLogRepository
func NewServiceLogRepository(db *DB) repository.ServiceLogRepository {
	return &serviceLogRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// Create вставляет запись; neighborhood сохраняется как есть
func (r *serviceLogRepository) Create(ctx context.Context, log *domain.ServiceLog) error {
	query := `
		INSERT INTO service_logs (
			reporter_id, service_type, status, neighborhood, department_id,
			log_date, quality, notes, arrival_time, departure_time
		) VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		log.ReporterID,
		string(log.ServiceType),
		string(log.Status),
		log.Neighborhood,
		log.DepartmentID,
		log.LogDate.Format(domain.DateLayout),
		log.Quality,
		log.Notes,
		log.ArrivalTime,
		log.DepartureTime,
	).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert service log",
			zap.String("service_type", string(log.ServiceType)),
			zap.String("neighborhood", log.Neighborhood),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *serviceLogRepository) TallyByNeighborhood(ctx context.Context, serviceType domain.ServiceType, date time.Time) ([]domain.NeighborhoodTally, error) {
	query := `
		SELECT
			neighborhood,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'available') AS available_count
		FROM service_logs
		WHERE service_type = $1 AND log_date = $2::date
		GROUP BY neighborhood
		ORDER BY neighborhood
	`

	var tallies []domain.NeighborhoodTally
	if err := r.db.SelectContext(ctx, &tallies, query, string(serviceType), date.Format(domain.DateLayout)); err != nil {
		r.logger.Error("Failed to tally service logs",
			zap.String("service_type", string(serviceType)),
			zap.Time("date", date),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return tallies, nil
}

func (r *serviceLogRepository) ServiceTypesByReporter(ctx context.Context, reporterID uuid.UUID, date time.Time) ([]domain.ServiceType, error) {
	query := `
		SELECT DISTINCT service_type
		FROM service_logs
		WHERE reporter_id = $1 AND log_date = $2::date
		ORDER BY service_type
	`

	var types []domain.ServiceType
	if err := r.db.SelectContext(ctx, &types, query, reporterID, date.Format(domain.DateLayout)); err != nil {
		r.logger.Error("Failed to get reporter service types",
			zap.String("reporter_id", reporterID.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return types, nil
}

func (r *serviceLogRepository) DailyAvailability(ctx context.Context, date time.Time) ([]domain.ServiceAvailability, error) {
	query := `
		SELECT
			service_type,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'available') AS available_count
		FROM service_logs
		WHERE log_date = $1::date
		GROUP BY service_type
		ORDER BY service_type
	`

	var stats []domain.ServiceAvailability
	if err := r.db.SelectContext(ctx, &stats, query, date.Format(domain.DateLayout)); err != nil {
		r.logger.Error("Failed to get daily availability", zap.Time("date", date), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return stats, nil
}
