package seeder

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"dataitjobs/internal/database"
	"dataitjobs/internal/dataset"
	"dataitjobs/internal/domain/job"
	"dataitjobs/internal/domain/skill"
)

type copyCall struct {
	table   string
	columns []string
	rows    [][]any
}

type fakeDB struct {
	columns   map[string][]string
	execs     []string
	copies    []copyCall
	commits   int
	copyErr   error
	mergeRows int64
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		columns: map[string][]string{
			"job_postings": jobColumns,
			"skills":       skillColumns,
			"job_skills":   linkColumns,
		},
		mergeRows: 1,
	}
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error { return nil }
func (f *fakeDB) SQLDB() *sql.DB { return nil }

func (f *fakeDB) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	f.execs = append(f.execs, query)
	return 0, nil
}

func (f *fakeDB) Query(_ context.Context, _ string, args ...any) (database.Rows, error) {
	table, _ := args[0].(string)
	return &fakeRows{values: f.columns[table], pos: -1}, nil
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) database.Row { return nil }

func (f *fakeDB) Begin(context.Context) (database.Tx, error) { return &fakeTx{db: f}, nil }

type fakeTx struct {
	db *fakeDB
}

func (t *fakeTx) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	t.db.execs = append(t.db.execs, query)
	if strings.HasPrefix(query, "INSERT") {
		return t.db.mergeRows, nil
	}
	return 0, nil
}

func (t *fakeTx) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (t *fakeTx) QueryRow(context.Context, string, ...any) database.Row { return nil }

func (t *fakeTx) CopyFrom(_ context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if t.db.copyErr != nil {
		return 0, t.db.copyErr
	}
	t.db.copies = append(t.db.copies, copyCall{table: table, columns: columns, rows: rows})
	return int64(len(rows)), nil
}

func (t *fakeTx) Commit(context.Context) error {
	t.db.commits++
	return nil
}

func (t *fakeTx) Rollback(context.Context) error { return nil }

type fakeRows struct {
	values []string
	pos    int
}

func (r *fakeRows) Close() {}
func (r *fakeRows) Err() error { return nil }

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos < len(r.values)
}

func (r *fakeRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.values[r.pos]
	return nil
}

func sampleTables() dataset.Tables {
	salary := 95000.0
	return dataset.Tables{
		Jobs: []job.Posting{
			{ID: "1", TitleShort: "Data Analyst", Title: "Data Analyst II", PostedAt: time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), SalaryYearAvg: &salary, Country: "US", ScheduleType: "Full-time"},
			{ID: "2", TitleShort: "Data Engineer"},
		},
		Skills: []skill.Skill{{ID: "10", Name: "sql", Type: skill.TypeLanguage}},
		Links:  []skill.JobSkill{{JobID: "1", SkillID: "10"}, {JobID: "2", SkillID: "10"}},
	}
}

func TestForTables_Order(t *testing.T) {
	got := ForTables(sampleTables(), true)
	want := []string{"truncate", "skills", "job_postings", "job_skills"}
	if len(got) != len(want) {
		t.Fatalf("expected %d seeders, got %d", len(want), len(got))
	}
	for i, s := range got {
		if s.Name() != want[i] {
			t.Fatalf("seeder %d: expected %s, got %s", i, want[i], s.Name())
		}
	}

	if n := len(ForTables(sampleTables(), false)); n != 3 {
		t.Fatalf("expected 3 seeders without replace, got %d", n)
	}
}

func TestRunner_SeedsAllTables(t *testing.T) {
	db := newFakeDB()
	written, err := Runner{Seeders: ForTables(sampleTables(), false)}.Run(context.Background(), db)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(db.copies) != 3 || db.commits != 3 {
		t.Fatalf("expected 3 copies and commits, got %d/%d", len(db.copies), db.commits)
	}
	if db.copies[0].table != "staging_skills" || db.copies[1].table != "staging_job_postings" {
		t.Fatalf("unexpected copy order: %s, %s", db.copies[0].table, db.copies[1].table)
	}
	if written["job_skills"] != 1 {
		t.Fatalf("expected merge count recorded, got %v", written)
	}

	jobs := db.copies[1].rows
	if jobs[0][3] == nil || jobs[0][4] != 95000.0 {
		t.Fatalf("expected posted date and salary on first job, got %v", jobs[0])
	}
	if jobs[1][3] != nil || jobs[1][4] != nil {
		t.Fatalf("expected NULL date and salary on second job, got %v", jobs[1])
	}
}

func TestRunner_StopsOnError(t *testing.T) {
	db := newFakeDB()
	db.copyErr = errors.New("copy failed")

	_, err := Runner{Seeders: ForTables(sampleTables(), false)}.Run(context.Background(), db)
	if err == nil || !strings.Contains(err.Error(), "seed skills") {
		t.Fatalf("expected skills seed error, got %v", err)
	}
	if db.commits != 0 {
		t.Fatalf("expected no commits, got %d", db.commits)
	}
}

func TestRunner_NilDB(t *testing.T) {
	if _, err := (Runner{}).Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}

func TestEnsureTableColumns_ListsMissing(t *testing.T) {
	db := newFakeDB()
	db.columns["skills"] = []string{"skill_id"}

	err := EnsureTableColumns(context.Background(), db, "skills", skillColumns...)
	if err == nil {
		t.Fatalf("expected schema mismatch")
	}
	if !strings.Contains(err.Error(), "skills.skills") || !strings.Contains(err.Error(), "skills.type") {
		t.Fatalf("expected both missing columns listed, got %v", err)
	}
}

func TestMergeQuery(t *testing.T) {
	q := mergeQuery("skills", "staging_skills", skillColumns, []string{"skill_id"})
	want := "INSERT INTO skills (skill_id, skills, type) SELECT skill_id, skills, type FROM staging_skills ON CONFLICT (skill_id) DO UPDATE SET skills = EXCLUDED.skills, type = EXCLUDED.type"
	if q != want {
		t.Fatalf("unexpected query:\n got %s\nwant %s", q, want)
	}

	q = mergeQuery("job_skills", "staging_job_skills", linkColumns, linkColumns)
	if !strings.HasSuffix(q, "DO NOTHING") {
		t.Fatalf("expected DO NOTHING for key-only table, got %s", q)
	}
}

func TestTruncateSeeder(t *testing.T) {
	db := newFakeDB()
	if _, err := (TruncateSeeder{}).Run(context.Background(), db); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(db.execs) != 1 || !strings.HasPrefix(db.execs[0], "TRUNCATE") {
		t.Fatalf("expected truncate, got %v", db.execs)
	}
}
