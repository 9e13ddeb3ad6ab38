package repository

import (
	"context"

	"github.com/infra-status-service/internal/domain"
)

// AssetRepository - узлы и линии инженерных сетей
type AssetRepository interface {
	CreateNode(ctx context.Context, node *domain.Node) error
	GetNode(ctx context.Context, id int64) (*domain.Node, error)
	UpdateNode(ctx context.Context, id int64, patch domain.AssetPatch) (*domain.Node, error)
	// DeleteNode возвращает ErrNodeNotFound, если записи нет
	DeleteNode(ctx context.Context, id int64) error
	ListNodes(ctx context.Context) ([]domain.Node, error)

	CreateLine(ctx context.Context, line *domain.Line) error
	GetLine(ctx context.Context, id int64) (*domain.Line, error)
	UpdateLine(ctx context.Context, id int64, patch domain.AssetPatch) (*domain.Line, error)
	DeleteLine(ctx context.Context, id int64) error
	ListLines(ctx context.Context) ([]domain.Line, error)
}
