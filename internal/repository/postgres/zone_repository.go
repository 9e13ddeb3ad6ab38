package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/domain/repository"
	"github.com/infra-status-service/internal/pkg/errors"
)

const zoneColumns = `id, name, kind, polygon, created_at, updated_at`

type zoneRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewZoneRepository создает новый экземпляр ZoneRepository
func NewZoneRepository(db *DB) repository.ZoneRepository {
	return &zoneRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *zoneRepository) Create(ctx context.Context, zone *domain.Zone) error {
	if zone.Kind == "" {
		zone.Kind = domain.ZoneKindNeighborhood
	}

	query := `
		INSERT INTO zones (name, kind, polygon)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query, zone.Name, zone.Kind, zone.Polygon).
		Scan(&zone.ID, &zone.CreatedAt, &zone.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert zone", zap.String("name", zone.Name), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *zoneRepository) Get(ctx context.Context, id int64) (*domain.Zone, error) {
	var zone domain.Zone
	err := r.db.GetContext(ctx, &zone, `SELECT `+zoneColumns+` FROM zones WHERE id = $1`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrZoneNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get zone", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &zone, nil
}

// Update заменяет имя и полигон
func (r *zoneRepository) Update(ctx context.Context, zone *domain.Zone) error {
	query := `
		UPDATE zones
		SET name = $2, polygon = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING kind, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query, zone.ID, zone.Name, zone.Polygon).
		Scan(&zone.Kind, &zone.CreatedAt, &zone.UpdatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.ErrZoneNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update zone", zap.Int64("id", zone.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *zoneRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM zones WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete zone", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrZoneNotFound
	}
	return nil
}

func (r *zoneRepository) List(ctx context.Context) ([]domain.Zone, error) {
	zones := []domain.Zone{}
	if err := r.db.SelectContext(ctx, &zones, `SELECT `+zoneColumns+` FROM zones ORDER BY id`); err != nil {
		r.logger.Error("Failed to list zones", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return zones, nil
}

// ListByNames - регистрозависимое совпадение имени, только зоны районов
func (r *zoneRepository) ListByNames(ctx context.Context, names []string) ([]domain.Zone, error) {
	zones := []domain.Zone{}
	if len(names) == 0 {
		return zones, nil
	}

	query, args, err := sqlx.In(
		`SELECT `+zoneColumns+` FROM zones WHERE kind = ? AND name IN (?) ORDER BY id`,
		domain.ZoneKindNeighborhood, names,
	)
	if err != nil {
		r.logger.Error("Failed to build zone lookup", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := r.db.SelectContext(ctx, &zones, r.db.Rebind(query), args...); err != nil {
		r.logger.Error("Failed to list zones by names", zap.Int("names", len(names)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return zones, nil
}
