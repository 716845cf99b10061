package repository

import (
	"context"

	"dataitjobs/internal/database"
)

type JobSkillRow struct {
	JobID   string
	SkillID string
}

type JobSkillRepository interface {
	ListLinks(ctx context.Context) ([]JobSkillRow, error)
}

type PostgresJobSkillRepository struct {
	db database.DB
}

func NewPostgresJobSkillRepository(db database.DB) *PostgresJobSkillRepository {
	return &PostgresJobSkillRepository{db: db}
}

func (r *PostgresJobSkillRepository) ListLinks(ctx context.Context) ([]JobSkillRow, error) {
	rows, err := r.db.Query(ctx, `SELECT job_id, skill_id FROM job_skills ORDER BY job_id ASC, skill_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobSkillRow, 0)
	for rows.Next() {
		var l JobSkillRow
		if err := rows.Scan(&l.JobID, &l.SkillID); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
