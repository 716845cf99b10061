package dataset

import (
	"context"
	"fmt"
	"time"

	"dataitjobs/internal/pkg/apperror"
	"dataitjobs/internal/pkg/logger"

	"go.uber.org/zap"
)

const SyntheticWarning = "Source data could not be loaded; showing a generated sample dataset."

type LoadResult struct {
	Tables    Tables
	Source    string
	Synthetic bool
	Warning   string
	LoadedAt  time.Time
}

type LoaderOptions struct {
	SyntheticSeed int64
	SyntheticJobs int
}

type Loader struct {
	source Source
	opts   LoaderOptions
	logger *zap.Logger
	now    func() time.Time
}

func NewLoader(source Source, opts LoaderOptions, logger *zap.Logger) *Loader {
	return &Loader{source: source, opts: opts, logger: logger, now: time.Now}
}

// Load reads and cleans the source tables. Any read failure falls back to the
// synthetic dataset; Load itself never fails.
func (l *Loader) Load(ctx context.Context) LoadResult {
	log := logger.OrNop(nil)
	now := time.Now
	var opts LoaderOptions
	if l != nil {
		log = logger.OrNop(l.logger)
		opts = l.opts
		if l.now != nil {
			now = l.now
		}
	}

	start := now()
	raw, name, err := l.read(ctx)
	if err == nil {
		tables := Preprocess(raw)
		log.Info("dataset loaded",
			zap.String("source", name),
			zap.Int("jobs", len(tables.Jobs)),
			zap.Int("skills", len(tables.Skills)),
			zap.Int("links", len(tables.Links)),
			zap.Int("dropped_jobs", len(raw.Jobs)-len(tables.Jobs)),
			zap.Int("dropped_links", len(raw.Links)-len(tables.Links)),
			zap.Duration("duration", now().Sub(start)),
		)
		return LoadResult{Tables: tables, Source: name, LoadedAt: now()}
	}

	log.Warn("dataset load failed, using synthetic data",
		zap.String("source", name),
		zap.String("error_type", string(apperror.TypeOf(err))),
		zap.Error(err),
		zap.ByteString("stack", apperror.StackOf(err)),
		zap.Int64("seed", opts.SyntheticSeed),
	)

	tables := Preprocess(Synthetic(opts.SyntheticSeed, opts.SyntheticJobs))
	return LoadResult{
		Tables:    tables,
		Source:    "synthetic",
		Synthetic: true,
		Warning:   SyntheticWarning,
		LoadedAt:  now(),
	}
}

func (l *Loader) read(ctx context.Context) (raw RawTables, name string, err error) {
	if l == nil || l.source == nil {
		return RawTables{}, "none", apperror.Unavailable("no data source configured", nil)
	}
	name = l.source.Name()

	defer func() {
		if r := recover(); r != nil {
			err = apperror.Internal("data source panicked", fmt.Errorf("%v", r))
		}
	}()

	raw, err = l.source.Read(ctx)
	if err != nil {
		return RawTables{}, name, err
	}
	if len(raw.Jobs) == 0 {
		return RawTables{}, name, apperror.Malformed("data source returned no job postings", nil)
	}
	return raw, name, nil
}
