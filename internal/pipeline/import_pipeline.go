package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dataitjobs/internal/analytics"
	"dataitjobs/internal/dataset"
	"dataitjobs/internal/pkg/apperror"
	"dataitjobs/internal/pkg/logger"
	"dataitjobs/internal/repository"

	"go.uber.org/zap"
)

// ExportTopK is the per-title row limit of the debug export.
const ExportTopK = 10

type ImportPipeline struct {
	source   dataset.Source
	migrator Migrator
	seeder   Seeder
	counts   repository.JobQueryRepository

	log *zap.Logger
	now func() time.Time
}

type ImportParams struct {
	SkipMigrate bool
	SkipSeed    bool
	Replace     bool
	ExportPath  string
}

type ImportReport struct {
	Source            string           `json:"source"`
	MigrationsApplied int              `json:"migrations_applied"`
	RawJobs           int              `json:"raw_jobs"`
	Jobs              int              `json:"jobs"`
	Skills            int              `json:"skills"`
	Links             int              `json:"links"`
	DroppedJobs       int              `json:"dropped_jobs"`
	DroppedLinks      int              `json:"dropped_links"`
	Seeded            map[string]int64 `json:"seeded,omitempty"`
	StoredJobs        int              `json:"stored_jobs"`
	StoredSkills      int              `json:"stored_skills"`
	StoredLinks       int              `json:"stored_links"`
	ExportPath        string           `json:"export_path,omitempty"`
	ExportRows        int              `json:"export_rows"`
	Duration          time.Duration    `json:"duration"`
}

func NewImportPipeline(
	source dataset.Source,
	migrator Migrator,
	seeder Seeder,
	counts repository.JobQueryRepository,
	log *zap.Logger,
) *ImportPipeline {
	return &ImportPipeline{
		source:   source,
		migrator: migrator,
		seeder:   seeder,
		counts:   counts,
		log:      logger.OrNop(log),
		now:      time.Now,
	}
}

// Run migrates the schema, reads and cleans the source tables, seeds them and
// optionally writes the top-skills debug export. Unlike the dashboard loader
// it never falls back to generated data: a bad source fails the import.
func (p *ImportPipeline) Run(ctx context.Context, params ImportParams) (rep ImportReport, err error) {
	if p == nil || p.source == nil {
		return rep, apperror.Unavailable("no data source configured", nil)
	}
	start := p.now()
	rep.Source = p.source.Name()

	p.log.Info("import started", zap.String("source", rep.Source))
	defer func() {
		rep.Duration = p.now().Sub(start)
		p.log.Info("import finished", zap.String("source", rep.Source), zap.Duration("duration", rep.Duration))
	}()

	if !params.SkipMigrate && p.migrator != nil {
		n, err := p.step("migrate", func() (int, error) { return p.migrator.Migrate(ctx) })
		if err != nil {
			return rep, fmt.Errorf("migrate: %w", err)
		}
		rep.MigrationsApplied = n
	}

	var raw dataset.RawTables
	if _, err := p.step("read", func() (int, error) {
		var err error
		raw, err = p.source.Read(ctx)
		return len(raw.Jobs), err
	}); err != nil {
		return rep, fmt.Errorf("read %s: %w", rep.Source, err)
	}

	tables := dataset.Preprocess(raw)
	rep.RawJobs = len(raw.Jobs)
	rep.Jobs = len(tables.Jobs)
	rep.Skills = len(tables.Skills)
	rep.Links = len(tables.Links)
	rep.DroppedJobs = len(raw.Jobs) - len(tables.Jobs)
	rep.DroppedLinks = len(raw.Links) - len(tables.Links)
	if tables.Empty() {
		return rep, apperror.Malformed("no job postings left after cleaning", nil)
	}

	if !params.SkipSeed && p.seeder != nil {
		if _, err := p.step("seed", func() (int, error) {
			var err error
			rep.Seeded, err = p.seeder.Seed(ctx, tables, params.Replace)
			return len(tables.Jobs), err
		}); err != nil {
			return rep, fmt.Errorf("seed: %w", err)
		}
		if err := p.verify(ctx, &rep); err != nil {
			return rep, fmt.Errorf("verify: %w", err)
		}
	}

	if params.ExportPath != "" {
		n, err := p.step("export", func() (int, error) { return exportTopSkills(params.ExportPath, tables) })
		if err != nil {
			return rep, fmt.Errorf("export: %w", err)
		}
		rep.ExportPath = params.ExportPath
		rep.ExportRows = n
	}

	return rep, nil
}

func (p *ImportPipeline) step(name string, fn func() (int, error)) (int, error) {
	stepStart := p.now()
	p.log.Info("import step started", zap.String("step", name))
	n, err := fn()
	if err != nil {
		p.log.Error("import step failed",
			zap.String("step", name),
			zap.String("error_type", string(apperror.TypeOf(err))),
			zap.Error(err),
			zap.ByteString("stack", apperror.StackOf(err)),
		)
		return n, err
	}
	p.log.Info("import step finished",
		zap.String("step", name),
		zap.Int("items", n),
		zap.Duration("duration", p.now().Sub(stepStart)),
	)
	return n, nil
}

func (p *ImportPipeline) verify(ctx context.Context, rep *ImportReport) error {
	if p.counts == nil {
		return nil
	}
	var err error
	if rep.StoredJobs, err = p.counts.CountJobs(ctx); err != nil {
		return err
	}
	if rep.StoredSkills, err = p.counts.CountSkills(ctx); err != nil {
		return err
	}
	if rep.StoredLinks, err = p.counts.CountJobSkills(ctx); err != nil {
		return err
	}
	if rep.StoredJobs < rep.Jobs {
		p.log.Warn("stored postings fewer than imported",
			zap.Int("stored", rep.StoredJobs),
			zap.Int("imported", rep.Jobs),
		)
	}
	return nil
}

// exportTopSkills writes the top skills per job title, the same rows the
// skills page charts without filters.
func exportTopSkills(path string, tables dataset.Tables) (int, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, err
		}
	}
	rows := analytics.New(tables).TopSkills(analytics.Filter{TopK: ExportTopK})

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if err := analytics.WriteSkillCountsCSV(f, rows); err != nil {
		_ = f.Close()
		return 0, err
	}
	return len(rows), f.Close()
}
