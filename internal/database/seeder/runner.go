package seeder

import (
	"context"
	"fmt"
	"time"

	"dataitjobs/internal/database"
	"dataitjobs/internal/pkg/logger"

	"go.uber.org/zap"
)

type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

// Run executes the seeders in order and stops at the first failure. The
// returned map holds rows written per seeder name.
func (r Runner) Run(ctx context.Context, db database.DB) (map[string]int64, error) {
	if db == nil {
		return nil, fmt.Errorf("nil db")
	}
	log := logger.OrNop(r.Logger)

	written := make(map[string]int64, len(r.Seeders))
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		n, err := s.Run(ctx, db)
		if err != nil {
			log.Error("seed failed", zap.String("seeder", s.Name()), zap.Error(err))
			return written, fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		written[s.Name()] = n
		log.Info("seed finished",
			zap.String("seeder", s.Name()),
			zap.Int64("rows", n),
			zap.Duration("duration", time.Since(start)),
		)
	}
	return written, nil
}
