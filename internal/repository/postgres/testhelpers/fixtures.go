package testhelpers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// InsertUser добавляет пользователя в справочник; пустой deptSlug - без департамента
func InsertUser(ctx context.Context, db *sqlx.DB, id uuid.UUID, neighborhood, deptSlug, role string) error {
	var deptID interface{}
	if deptSlug != "" {
		var idValue int64
		if err := db.GetContext(ctx, &idValue, `SELECT id FROM departments WHERE slug = $1`, deptSlug); err != nil {
			return fmt.Errorf("lookup department %s: %w", deptSlug, err)
		}
		deptID = idValue
	}

	if role == "" {
		role = "citizen"
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, neighborhood, department_id, role) VALUES ($1, $2, $3, $4)`,
		id, neighborhood, deptID, role,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// DepartmentID возвращает id департамента из справочника
func DepartmentID(ctx context.Context, db *sqlx.DB, slug string) (int64, error) {
	var id int64
	if err := db.GetContext(ctx, &id, `SELECT id FROM departments WHERE slug = $1`, slug); err != nil {
		return 0, fmt.Errorf("get department %s: %w", slug, err)
	}
	return id, nil
}

// RawColumn читает колонку как текст, без декодирования JSON
func RawColumn(ctx context.Context, db *sqlx.DB, table, column string, id int64) (string, error) {
	var raw string
	query := fmt.Sprintf(`SELECT %s::text FROM %s WHERE id = $1`, column, table)
	if err := db.GetContext(ctx, &raw, query, id); err != nil {
		return "", fmt.Errorf("read %s.%s: %w", table, column, err)
	}
	return raw, nil
}
