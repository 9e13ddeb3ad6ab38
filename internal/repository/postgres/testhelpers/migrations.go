package testhelpers

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ApplyMigrations применяет migrations/*.up.sql по порядку номеров.
// Миграции написаны с IF NOT EXISTS, повторный запуск на той же базе безопасен.
func ApplyMigrations(db *sqlx.DB, migrationsPath string, logger *zap.Logger) error {
	return runMigrations(db, migrationsPath, "*.up.sql", false, logger)
}

// RollbackMigrations применяет *.down.sql в обратном порядке
func RollbackMigrations(db *sqlx.DB, migrationsPath string, logger *zap.Logger) error {
	return runMigrations(db, migrationsPath, "*.down.sql", true, logger)
}

func runMigrations(db *sqlx.DB, migrationsPath, pattern string, reverse bool, logger *zap.Logger) error {
	files, err := filepath.Glob(filepath.Join(migrationsPath, pattern))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations matching %s in %s", pattern, migrationsPath)
	}

	sort.Strings(files)
	if reverse {
		sort.Sort(sort.Reverse(sort.StringSlice(files)))
	}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", filepath.Base(file), err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", filepath.Base(file), err)
		}
		logger.Debug("Applied migration", zap.String("file", filepath.Base(file)))
	}

	return nil
}
