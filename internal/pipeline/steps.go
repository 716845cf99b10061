package pipeline

import (
	"context"
	"database/sql"
	"fmt"

	"dataitjobs/internal/database"
	"dataitjobs/internal/database/migration"
	"dataitjobs/internal/database/seeder"
	"dataitjobs/internal/dataset"

	"go.uber.org/zap"
)

type Migrator interface {
	Migrate(ctx context.Context) (applied int, err error)
}

type Seeder interface {
	Seed(ctx context.Context, t dataset.Tables, replace bool) (map[string]int64, error)
}

type DBMigrator struct {
	DB     *sql.DB
	Runner migration.Runner
}

func (m DBMigrator) Migrate(ctx context.Context) (int, error) {
	if m.DB == nil {
		return 0, fmt.Errorf("nil db")
	}
	res, err := m.Runner.Run(ctx, m.DB)
	return len(res.Applied), err
}

type DBSeeder struct {
	DB     database.DB
	Logger *zap.Logger
}

func (s DBSeeder) Seed(ctx context.Context, t dataset.Tables, replace bool) (map[string]int64, error) {
	r := seeder.Runner{Seeders: seeder.ForTables(t, replace), Logger: s.Logger}
	return r.Run(ctx, s.DB)
}
