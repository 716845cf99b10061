package repository

import (
	"context"

	"dataitjobs/internal/database"
)

type JobQueryRepository interface {
	CountJobs(ctx context.Context) (int, error)
	CountSkills(ctx context.Context) (int, error)
	CountJobSkills(ctx context.Context) (int, error)
}

type PostgresJobQueryRepository struct {
	db database.DB
}

func NewPostgresJobQueryRepository(db database.DB) *PostgresJobQueryRepository {
	return &PostgresJobQueryRepository{db: db}
}

func (r *PostgresJobQueryRepository) CountJobs(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(1) FROM job_postings`)
}

func (r *PostgresJobQueryRepository) CountSkills(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(1) FROM skills`)
}

func (r *PostgresJobQueryRepository) CountJobSkills(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(1) FROM job_skills`)
}

func (r *PostgresJobQueryRepository) count(ctx context.Context, query string) (int, error) {
	row := r.db.QueryRow(ctx, query)
	var c int
	if err := row.Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}
