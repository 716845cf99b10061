package dataset

import (
	"context"
	"strconv"

	"dataitjobs/internal/pkg/apperror"
	"dataitjobs/internal/repository"
)

type PostgresSource struct {
	jobs   repository.JobRepository
	skills repository.SkillRepository
	links  repository.JobSkillRepository
}

func NewPostgresSource(jobs repository.JobRepository, skills repository.SkillRepository, links repository.JobSkillRepository) *PostgresSource {
	return &PostgresSource{jobs: jobs, skills: skills, links: links}
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Read(ctx context.Context) (RawTables, error) {
	if s == nil || s.jobs == nil || s.skills == nil || s.links == nil {
		return RawTables{}, apperror.Unavailable("postgres source not configured", nil)
	}

	jobRows, err := s.jobs.ListPostings(ctx)
	if err != nil {
		return RawTables{}, apperror.Unavailable("list job postings", err)
	}
	skillRows, err := s.skills.ListSkills(ctx)
	if err != nil {
		return RawTables{}, apperror.Unavailable("list skills", err)
	}
	linkRows, err := s.links.ListLinks(ctx)
	if err != nil {
		return RawTables{}, apperror.Unavailable("list job skills", err)
	}

	out := RawTables{
		Jobs:   make([]RawJob, 0, len(jobRows)),
		Skills: make([]RawSkill, 0, len(skillRows)),
		Links:  make([]RawLink, 0, len(linkRows)),
	}
	for _, r := range jobRows {
		j := RawJob{
			ID:           r.ID,
			TitleShort:   r.TitleShort,
			Title:        r.Title,
			Country:      r.Country,
			ScheduleType: r.ScheduleType,
		}
		if r.PostedAt != nil {
			j.PostedDate = r.PostedAt.UTC().Format("2006-01-02 15:04:05")
		}
		if r.SalaryYearAvg != nil {
			j.SalaryYearAvg = strconv.FormatFloat(*r.SalaryYearAvg, 'f', -1, 64)
		}
		out.Jobs = append(out.Jobs, j)
	}
	for _, r := range skillRows {
		out.Skills = append(out.Skills, RawSkill{ID: r.ID, Name: r.Name, Type: r.Type})
	}
	for _, r := range linkRows {
		out.Links = append(out.Links, RawLink{JobID: r.JobID, SkillID: r.SkillID})
	}
	return out, nil
}
