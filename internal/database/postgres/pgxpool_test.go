package postgres

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dataitjobs/internal/config"
	"dataitjobs/internal/database/migration"
	"dataitjobs/internal/database/seeder"
	"dataitjobs/internal/dataset"
	"dataitjobs/internal/domain/job"
	"dataitjobs/internal/domain/skill"
	"dataitjobs/internal/pkg/apperror"
	"dataitjobs/internal/repository"

	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConnect_NotConfigured(t *testing.T) {
	_, err := Connect(context.Background(), config.DatabaseConfig{}, nil)
	if apperror.TypeOf(err) != apperror.TypeUnavailable {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestZapTraceLogger_Levels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := zapTraceLogger(zap.New(core))

	l.Log(context.Background(), tracelog.LogLevelError, "Query", map[string]any{"sql": "SELECT 1"})
	l.Log(context.Background(), tracelog.LogLevelWarn, "slow", nil)
	l.Log(context.Background(), tracelog.LogLevelInfo, "Query", nil)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []zapcore.Level{zap.ErrorLevel, zap.WarnLevel, zap.DebugLevel}
	for i, e := range entries {
		if e.Level != want[i] {
			t.Fatalf("entry %d: expected %s, got %s", i, want[i], e.Level)
		}
	}
	if entries[0].ContextMap()["sql"] != "SELECT 1" {
		t.Fatalf("expected trace data as fields, got %v", entries[0].ContextMap())
	}
}

// TestImportRoundTrip needs a disposable database: set TEST_DB_HOST,
// TEST_DB_NAME, TEST_DB_USER and TEST_DB_PASSWORD.
func TestImportRoundTrip(t *testing.T) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set")
	}
	cfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     envOr("TEST_DB_PORT", "5432"),
		DBName:     os.Getenv("TEST_DB_NAME"),
		DBUser:     os.Getenv("TEST_DB_USER"),
		DBPassword: os.Getenv("TEST_DB_PASSWORD"),
		DBSSLMode:  "disable",
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := Connect(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close()

	runner := migration.Runner{Dir: filepath.Join("..", "..", "..", "migrations")}
	if _, err := runner.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	salary := 120000.0
	tables := dataset.Tables{
		Jobs: []job.Posting{
			{ID: "t1", TitleShort: "Data Engineer", PostedAt: time.Date(2023, 4, 1, 9, 0, 0, 0, time.UTC), SalaryYearAvg: &salary, Country: "Germany"},
			{ID: "t2", TitleShort: "Data Analyst"},
		},
		Skills: []skill.Skill{{ID: "s1", Name: "python", Type: skill.TypeLanguage}},
		Links:  []skill.JobSkill{{JobID: "t1", SkillID: "s1"}},
	}
	if _, err := (seeder.Runner{Seeders: seeder.ForTables(tables, true)}).Run(ctx, db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// seeding twice merges instead of failing on duplicate keys
	if _, err := (seeder.Runner{Seeders: seeder.ForTables(tables, false)}).Run(ctx, db); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	src := dataset.NewPostgresSource(
		repository.NewPostgresJobRepository(db),
		repository.NewPostgresSkillRepository(db),
		repository.NewPostgresJobSkillRepository(db),
	)
	raw, err := src.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got := dataset.Preprocess(raw)
	if len(got.Jobs) != 2 || len(got.Skills) != 1 || len(got.Links) != 1 {
		t.Fatalf("unexpected sizes: %d/%d/%d", len(got.Jobs), len(got.Skills), len(got.Links))
	}
	if got.Jobs[0].ID != "t1" || got.Jobs[0].Salary() != salary || !got.Jobs[0].HasPostedAt() {
		t.Fatalf("unexpected first job: %+v", got.Jobs[0])
	}
	if got.Jobs[1].HasSalary() || got.Jobs[1].HasPostedAt() {
		t.Fatalf("expected NULL salary and date on second job: %+v", got.Jobs[1])
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
