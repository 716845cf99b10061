package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dataitjobs/internal/config"
	"dataitjobs/internal/database/migration"
	dbpostgres "dataitjobs/internal/database/postgres"
	"dataitjobs/internal/dataset"
	"dataitjobs/internal/pipeline"
	"dataitjobs/internal/pkg/logger"
	"dataitjobs/internal/repository"

	"go.uber.org/zap"
)

func main() {
	dataDir := flag.String("data-dir", "", "directory holding the three source CSV files (default DATA_DIR)")
	migrationsDir := flag.String("migrations", "migrations", "directory of V<n>__<name>.sql migrations")
	export := flag.String("export", "", "write the top-skills debug CSV to this path")
	replace := flag.Bool("replace", false, "empty the dashboard tables before seeding")
	dryRun := flag.Bool("dry-run", false, "read and clean the files without touching the database")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall import timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	lg, err := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	dir := cfg.Data.Dir
	if *dataDir != "" {
		dir = *dataDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	var (
		migrator pipeline.Migrator
		seeder   pipeline.Seeder
		counts   repository.JobQueryRepository
	)
	if !*dryRun {
		if !cfg.Database.Configured() {
			lg.Fatal("DB_HOST and DB_NAME are required unless -dry-run is set")
		}
		db, err := dbpostgres.Connect(ctx, cfg.Database, lg.Named("postgres"))
		if err != nil {
			lg.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer func() { _ = db.Close() }()

		migrator = pipeline.DBMigrator{
			DB:     db.SQLDB(),
			Runner: migration.Runner{Dir: *migrationsDir, Logger: lg.Named("migration")},
		}
		seeder = pipeline.DBSeeder{DB: db, Logger: lg.Named("seeder")}
		counts = repository.NewPostgresJobQueryRepository(db)
	}

	p := pipeline.NewImportPipeline(dataset.NewCSVSource(dir), migrator, seeder, counts, lg.Named("import"))
	rep, err := p.Run(ctx, pipeline.ImportParams{
		SkipMigrate: *dryRun,
		SkipSeed:    *dryRun,
		Replace:     *replace,
		ExportPath:  *export,
	})
	if err != nil {
		lg.Fatal("import failed", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		lg.Fatal("failed to print report", zap.Error(err))
	}
}
