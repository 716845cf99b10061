package repository

import (
	"context"

	"dataitjobs/internal/database"
)

type SkillRow struct {
	ID   string
	Name string
	Type string
}

type SkillRepository interface {
	ListSkills(ctx context.Context) ([]SkillRow, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListSkills(ctx context.Context) ([]SkillRow, error) {
	rows, err := r.db.Query(ctx, `SELECT skill_id, COALESCE(skills, ''), COALESCE(type, '') FROM skills ORDER BY skill_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SkillRow, 0)
	for rows.Next() {
		var s SkillRow
		if err := rows.Scan(&s.ID, &s.Name, &s.Type); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
