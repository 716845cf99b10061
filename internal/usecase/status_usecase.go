package usecase

import (
	"context"
	"time"

	"dataitjobs/internal/domain"
)

type StatusUsecase interface {
	GetStatus(ctx context.Context) (*domain.DatasetStatus, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// clientCounter reports how many dashboards listen for reload events.
type clientCounter interface {
	ClientCount() int
}

type Status struct {
	store   *DatasetStore
	db      pinger
	redis   pinger
	clients clientCounter
	now     func() time.Time
}

// NewStatusUsecase accepts nil pingers for stores that are not configured
// and a nil counter when there is no websocket hub.
func NewStatusUsecase(store *DatasetStore, db pinger, redis pinger, clients clientCounter) *Status {
	return &Status{store: store, db: db, redis: redis, clients: clients, now: time.Now}
}

func (u *Status) GetStatus(ctx context.Context) (*domain.DatasetStatus, error) {
	snap := u.store.Get(ctx)
	tables := snap.Data.Tables()

	live := 0
	if u.clients != nil {
		live = u.clients.ClientCount()
	}

	return &domain.DatasetStatus{
		Source:          snap.Source,
		Synthetic:       snap.Synthetic,
		Warning:         snap.Warning,
		Generation:      snap.Generation,
		TotalJobs:       len(tables.Jobs),
		TotalSkills:     len(tables.Skills),
		TotalLinks:      len(tables.Links),
		LoadedAt:        snap.LoadedAt,
		DatabaseHealthy: healthy(ctx, u.db),
		RedisHealthy:    healthy(ctx, u.redis),
		LiveClients:     live,
		ServerTime:      u.now().UTC(),
	}, nil
}

func healthy(ctx context.Context, p pinger) bool {
	if p == nil {
		return false
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.Ping(pingCtx) == nil
}
