package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"dataitjobs/internal/analytics"
	"dataitjobs/internal/dataset"
	"dataitjobs/internal/pkg/logger"

	"go.uber.org/zap"
)

type DatasetLoader interface {
	Load(ctx context.Context) dataset.LoadResult
}

type ReloadNotifier interface {
	DatasetReloaded(generation uint64, source string, synthetic bool)
}

// Snapshot is one loaded dataset. It is never mutated after publication.
type Snapshot struct {
	Data       *analytics.Dataset
	Generation uint64
	// Version fingerprints the loaded rows; view cache keys use it.
	Version    string
	Source     string
	Synthetic  bool
	Warning    string
	LoadedAt   time.Time
}

// DatasetStore loads the dataset once and serves it to every request until
// an explicit reload.
type DatasetStore struct {
	loader   DatasetLoader
	cache    ViewCache
	notifier ReloadNotifier
	logger   *zap.Logger

	mu         sync.Mutex
	current    atomic.Pointer[Snapshot]
	generation uint64
}

func NewDatasetStore(loader DatasetLoader, cache ViewCache, notifier ReloadNotifier, log *zap.Logger) *DatasetStore {
	return &DatasetStore{loader: loader, cache: cache, notifier: notifier, logger: logger.OrNop(log)}
}

// Get returns the current snapshot, loading it on first use.
func (s *DatasetStore) Get(ctx context.Context) *Snapshot {
	if snap := s.current.Load(); snap != nil {
		return snap
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if snap := s.current.Load(); snap != nil {
		return snap
	}
	return s.loadLocked(ctx)
}

// Reload replaces the snapshot, drops cached views of older generations and
// tells connected dashboards. Concurrent reloads across instances are
// rejected with ErrReloadInProgress.
func (s *DatasetStore) Reload(ctx context.Context) (*Snapshot, error) {
	if s.cache != nil {
		ok, err := s.cache.SetIfNotExists(ctx, reloadLockKey, "1", time.Minute)
		if err == nil && !ok {
			return nil, ErrReloadInProgress
		}
	}

	s.mu.Lock()
	snap := s.loadLocked(ctx)
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, viewCachePrefix+"*"); err != nil {
			s.logger.Warn("view cache purge failed", zap.Error(err))
		}
		if err := s.cache.Delete(ctx, reloadLockKey); err != nil {
			s.logger.Debug("reload lock release failed", zap.Error(err))
		}
	}
	if s.notifier != nil {
		s.notifier.DatasetReloaded(snap.Generation, snap.Source, snap.Synthetic)
	}
	return snap, nil
}

func (s *DatasetStore) loadLocked(ctx context.Context) *Snapshot {
	var res dataset.LoadResult
	if s.loader != nil {
		res = s.loader.Load(ctx)
	} else {
		res = dataset.NewLoader(nil, dataset.LoaderOptions{}, s.logger).Load(ctx)
	}

	s.generation++
	snap := &Snapshot{
		Data:       analytics.New(res.Tables),
		Generation: s.generation,
		Version:    res.Tables.Fingerprint(),
		Source:     res.Source,
		Synthetic:  res.Synthetic,
		Warning:    res.Warning,
		LoadedAt:   res.LoadedAt,
	}
	s.current.Store(snap)

	s.logger.Info("dataset published",
		zap.Uint64("generation", snap.Generation),
		zap.String("version", snap.Version),
		zap.String("source", snap.Source),
		zap.Bool("synthetic", snap.Synthetic),
		zap.Int("jobs", len(res.Tables.Jobs)),
	)
	return snap
}
