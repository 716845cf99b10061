package seeder

import (
	"context"

	"dataitjobs/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) (int64, error)
}
