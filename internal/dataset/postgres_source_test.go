package dataset

import (
	"context"
	"errors"
	"testing"
	"time"

	"dataitjobs/internal/pkg/apperror"
	"dataitjobs/internal/repository"
)

type fakeJobRepo struct {
	rows []repository.JobPostingRow
	err  error
}

func (f fakeJobRepo) ListPostings(context.Context) ([]repository.JobPostingRow, error) {
	return f.rows, f.err
}

type fakeSkillRepo struct{ rows []repository.SkillRow }

func (f fakeSkillRepo) ListSkills(context.Context) ([]repository.SkillRow, error) { return f.rows, nil }

type fakeLinkRepo struct{ rows []repository.JobSkillRow }

func (f fakeLinkRepo) ListLinks(context.Context) ([]repository.JobSkillRow, error) { return f.rows, nil }

func TestPostgresSource_Read(t *testing.T) {
	posted := time.Date(2023, time.May, 4, 12, 0, 0, 0, time.UTC)
	salary := 101500.5
	src := NewPostgresSource(
		fakeJobRepo{rows: []repository.JobPostingRow{
			{ID: "1", TitleShort: "Data Analyst", PostedAt: &posted, SalaryYearAvg: &salary, Country: "Indonesia"},
			{ID: "2", TitleShort: "Data Engineer"},
		}},
		fakeSkillRepo{rows: []repository.SkillRow{{ID: "10", Name: "sql", Type: "programming"}}},
		fakeLinkRepo{rows: []repository.JobSkillRow{{JobID: "1", SkillID: "10"}}},
	)

	raw, err := src.Read(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	tables := Preprocess(raw)
	if len(tables.Jobs) != 2 || len(tables.Links) != 1 {
		t.Fatalf("unexpected sizes: jobs=%d links=%d", len(tables.Jobs), len(tables.Links))
	}
	if !tables.Jobs[0].PostedAt.Equal(posted) {
		t.Fatalf("posted date not preserved: %s", tables.Jobs[0].PostedAt)
	}
	if tables.Jobs[0].Salary() != salary {
		t.Fatalf("salary not preserved: %v", tables.Jobs[0].Salary())
	}
	if tables.Jobs[1].HasSalary() || tables.Jobs[1].HasPostedAt() {
		t.Fatalf("expected null salary and date for second job")
	}
}

func TestPostgresSource_ErrorIsUnavailable(t *testing.T) {
	src := NewPostgresSource(fakeJobRepo{err: errors.New("dial tcp: refused")}, fakeSkillRepo{}, fakeLinkRepo{})
	_, err := src.Read(context.Background())
	if apperror.TypeOf(err) != apperror.TypeUnavailable {
		t.Fatalf("expected unavailable, got %v", err)
	}
}
