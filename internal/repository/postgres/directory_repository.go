package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/domain/repository"
	"github.com/infra-status-service/internal/pkg/errors"
)

type departmentRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewDepartmentRepository создает новый экземпляр DepartmentRepository
func NewDepartmentRepository(db *DB) repository.DepartmentRepository {
	return &departmentRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *departmentRepository) GetBySlug(ctx context.Context, slug string) (*domain.Department, error) {
	var dept domain.Department
	err := r.db.GetContext(ctx, &dept, `SELECT id, slug, name FROM departments WHERE slug = $1`, slug)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get department", zap.String("slug", slug), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &dept, nil
}

func (r *departmentRepository) SlugForUser(ctx context.Context, userID uuid.UUID) (string, error) {
	query := `
		SELECT d.slug
		FROM users u
		JOIN departments d ON d.id = u.department_id
		WHERE u.id = $1
	`

	var slug string
	err := r.db.GetContext(ctx, &slug, query, userID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		r.logger.Error("Failed to get user department", zap.String("user_id", userID.String()), zap.Error(err))
		return "", errors.ErrDatabaseError
	}
	return slug, nil
}

type userDirectory struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewUserDirectory создает новый экземпляр UserDirectory
func NewUserDirectory(db *DB) repository.UserDirectory {
	return &userDirectory{
		db:     db.DB,
		logger: db.logger,
	}
}

// ListIDsInNeighborhood - keyset пагинация по id
func (r *userDirectory) ListIDsInNeighborhood(ctx context.Context, neighborhood string, exclude *uuid.UUID, after *uuid.UUID, limit int) ([]uuid.UUID, error) {
	query := `
		SELECT id
		FROM users
		WHERE neighborhood = $1
			AND ($2::uuid IS NULL OR id <> $2::uuid)
			AND ($3::uuid IS NULL OR id > $3::uuid)
		ORDER BY id
		LIMIT $4
	`

	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, neighborhood, exclude, after, limit); err != nil {
		r.logger.Error("Failed to list neighborhood users",
			zap.String("neighborhood", neighborhood),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return ids, nil
}
