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

const (
	nodeColumns = `id, network_type, subtype, point, status, metadata, created_at, updated_at`
	lineColumns = `id, network_type, coordinates, status, metadata, created_at, updated_at`
)

type assetRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAssetRepository создает новый экземпляр AssetRepository
func NewAssetRepository(db *DB) repository.AssetRepository {
	return &assetRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *assetRepository) CreateNode(ctx context.Context, node *domain.Node) error {
	query := `
		INSERT INTO network_nodes (network_type, subtype, point, status, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		string(node.NetworkType), node.Subtype, node.Point, string(node.Status), node.Metadata,
	).Scan(&node.ID, &node.CreatedAt, &node.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert node",
			zap.String("network_type", string(node.NetworkType)),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *assetRepository) GetNode(ctx context.Context, id int64) (*domain.Node, error) {
	var node domain.Node
	err := r.db.GetContext(ctx, &node, `SELECT `+nodeColumns+` FROM network_nodes WHERE id = $1`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNodeNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get node", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &node, nil
}

func (r *assetRepository) UpdateNode(ctx context.Context, id int64, patch domain.AssetPatch) (*domain.Node, error) {
	status, metadata, err := patchArgs(patch)
	if err != nil {
		return nil, errors.ErrInvalidRequest
	}

	query := `
		UPDATE network_nodes
		SET status = COALESCE($2::text, status),
			metadata = COALESCE($3::jsonb, metadata),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + nodeColumns

	var node domain.Node
	err = r.db.GetContext(ctx, &node, query, id, status, metadata)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNodeNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update node", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &node, nil
}

func (r *assetRepository) DeleteNode(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "network_nodes", id, errors.ErrNodeNotFound)
}

func (r *assetRepository) ListNodes(ctx context.Context) ([]domain.Node, error) {
	nodes := []domain.Node{}
	if err := r.db.SelectContext(ctx, &nodes, `SELECT `+nodeColumns+` FROM network_nodes ORDER BY id`); err != nil {
		r.logger.Error("Failed to list nodes", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return nodes, nil
}

func (r *assetRepository) CreateLine(ctx context.Context, line *domain.Line) error {
	query := `
		INSERT INTO network_lines (network_type, coordinates, status, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		string(line.NetworkType), line.Coordinates, string(line.Status), line.Metadata,
	).Scan(&line.ID, &line.CreatedAt, &line.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert line",
			zap.String("network_type", string(line.NetworkType)),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *assetRepository) GetLine(ctx context.Context, id int64) (*domain.Line, error) {
	var line domain.Line
	err := r.db.GetContext(ctx, &line, `SELECT `+lineColumns+` FROM network_lines WHERE id = $1`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrLineNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get line", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &line, nil
}

func (r *assetRepository) UpdateLine(ctx context.Context, id int64, patch domain.AssetPatch) (*domain.Line, error) {
	status, metadata, err := patchArgs(patch)
	if err != nil {
		return nil, errors.ErrInvalidRequest
	}

	query := `
		UPDATE network_lines
		SET status = COALESCE($2::text, status),
			metadata = COALESCE($3::jsonb, metadata),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + lineColumns

	var line domain.Line
	err = r.db.GetContext(ctx, &line, query, id, status, metadata)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrLineNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update line", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &line, nil
}

func (r *assetRepository) DeleteLine(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "network_lines", id, errors.ErrLineNotFound)
}

func (r *assetRepository) ListLines(ctx context.Context) ([]domain.Line, error) {
	lines := []domain.Line{}
	if err := r.db.SelectContext(ctx, &lines, `SELECT `+lineColumns+` FROM network_lines ORDER BY id`); err != nil {
		r.logger.Error("Failed to list lines", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return lines, nil
}

// deleteByID - жесткое удаление одной строки, notFound если строки нет
func (r *assetRepository) deleteByID(ctx context.Context, table string, id int64, notFound error) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete asset", zap.String("table", table), zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to read affected rows", zap.String("table", table), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

// patchArgs превращает AssetPatch в аргументы COALESCE; nil оставляет поле без изменений
func patchArgs(patch domain.AssetPatch) (status, metadata interface{}, err error) {
	if patch.Status != nil {
		status = string(*patch.Status)
	}
	if patch.Metadata != nil {
		metadata, err = patch.Metadata.Value()
		if err != nil {
			return nil, nil, err
		}
	}
	return status, metadata, nil
}
