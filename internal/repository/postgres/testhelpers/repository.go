package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain/repository"
	"github.com/infra-status-service/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// Repositories - все Postgres репозитории поверх одной тестовой базы
type Repositories struct {
	ServiceLogs    repository.ServiceLogRepository
	Assets         repository.AssetRepository
	Zones          repository.ZoneRepository
	Departments    repository.DepartmentRepository
	Users          repository.UserDirectory
	ProblemReports repository.ProblemReportRepository
}

// NewRepositoriesForTest creates every repository with test database and logger
func NewRepositoriesForTest(db *sqlx.DB, logger *zap.Logger) *Repositories {
	pgDB := NewDBForTest(db, logger)
	return &Repositories{
		ServiceLogs:    postgres.NewServiceLogRepository(pgDB),
		Assets:         postgres.NewAssetRepository(pgDB),
		Zones:          postgres.NewZoneRepository(pgDB),
		Departments:    postgres.NewDepartmentRepository(pgDB),
		Users:          postgres.NewUserDirectory(pgDB),
		ProblemReports: postgres.NewProblemReportRepository(pgDB),
	}
}
