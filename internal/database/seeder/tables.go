package seeder

import (
	"context"

	"dataitjobs/internal/database"
	"dataitjobs/internal/domain/job"
	"dataitjobs/internal/domain/skill"
)

var (
	jobColumns   = []string{"job_id", "job_title_short", "job_title", "job_posted_date", "salary_year_avg", "job_country", "job_schedule_type"}
	skillColumns = []string{"skill_id", "skills", "type"}
	linkColumns  = []string{"job_id", "skill_id"}
)

type SkillsSeeder struct {
	Skills []skill.Skill
}

func (SkillsSeeder) Name() string { return "skills" }

func (s SkillsSeeder) Run(ctx context.Context, db database.DB) (int64, error) {
	if err := EnsureTableColumns(ctx, db, "skills", skillColumns...); err != nil {
		return 0, err
	}
	rows := make([][]any, 0, len(s.Skills))
	for _, sk := range s.Skills {
		rows = append(rows, []any{sk.ID, sk.Name, sk.Type})
	}
	return upsert(ctx, db, "skills", skillColumns, []string{"skill_id"}, rows)
}

type JobPostingsSeeder struct {
	Jobs []job.Posting
}

func (JobPostingsSeeder) Name() string { return "job_postings" }

func (s JobPostingsSeeder) Run(ctx context.Context, db database.DB) (int64, error) {
	if err := EnsureTableColumns(ctx, db, "job_postings", jobColumns...); err != nil {
		return 0, err
	}
	rows := make([][]any, 0, len(s.Jobs))
	for _, j := range s.Jobs {
		var posted any
		if j.HasPostedAt() {
			posted = j.PostedAt.UTC()
		}
		var salary any
		if j.HasSalary() {
			salary = j.Salary()
		}
		rows = append(rows, []any{j.ID, j.TitleShort, j.Title, posted, salary, j.Country, j.ScheduleType})
	}
	return upsert(ctx, db, "job_postings", jobColumns, []string{"job_id"}, rows)
}

type JobSkillsSeeder struct {
	Links []skill.JobSkill
}

func (JobSkillsSeeder) Name() string { return "job_skills" }

func (s JobSkillsSeeder) Run(ctx context.Context, db database.DB) (int64, error) {
	if err := EnsureTableColumns(ctx, db, "job_skills", linkColumns...); err != nil {
		return 0, err
	}
	rows := make([][]any, 0, len(s.Links))
	for _, l := range s.Links {
		rows = append(rows, []any{l.JobID, l.SkillID})
	}
	return upsert(ctx, db, "job_skills", linkColumns, linkColumns, rows)
}

// TruncateSeeder empties the dashboard tables so the next seeders replace
// the dataset instead of merging into it.
type TruncateSeeder struct{}

func (TruncateSeeder) Name() string { return "truncate" }

func (TruncateSeeder) Run(ctx context.Context, db database.DB) (int64, error) {
	_, err := db.Exec(ctx, `TRUNCATE job_skills, job_postings, skills`)
	return 0, err
}
