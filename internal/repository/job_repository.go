package repository

import (
	"context"
	"time"

	"dataitjobs/internal/database"
)

type JobPostingRow struct {
	ID            string
	TitleShort    string
	Title         string
	PostedAt      *time.Time
	SalaryYearAvg *float64
	Country       string
	ScheduleType  string
}

type JobRepository interface {
	ListPostings(ctx context.Context) ([]JobPostingRow, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) ListPostings(ctx context.Context) ([]JobPostingRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT job_id, COALESCE(job_title_short, ''), COALESCE(job_title, ''), job_posted_date,
		        salary_year_avg, COALESCE(job_country, ''), COALESCE(job_schedule_type, '')
		 FROM job_postings
		 ORDER BY job_id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobPostingRow, 0)
	for rows.Next() {
		var j JobPostingRow
		if err := rows.Scan(&j.ID, &j.TitleShort, &j.Title, &j.PostedAt, &j.SalaryYearAvg, &j.Country, &j.ScheduleType); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
