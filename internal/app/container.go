package app

import (
	"context"
	"errors"
	"time"

	"dataitjobs/internal/config"
	"dataitjobs/internal/database"
	dbpostgres "dataitjobs/internal/database/postgres"
	"dataitjobs/internal/dataset"
	"dataitjobs/internal/infrastructure/cache"
	"dataitjobs/internal/pkg/jwt"
	"dataitjobs/internal/pkg/logger"
	"dataitjobs/internal/repository"
	"dataitjobs/internal/usecase"
	"dataitjobs/internal/ws"

	"go.uber.org/zap"
)

// Container holds the long-lived dependencies shared by the commands.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	// DB is nil when Postgres is not configured.
	DB    database.DB
	Redis *cache.Redis
	Views *cache.Tiered

	Hub       *ws.Hub
	Store     *usecase.DatasetStore
	Dashboard *usecase.Dashboard
	Status    *usecase.Status
	AdminAuth *usecase.AdminAuth
	JWT       *jwt.HMACService
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	log = logger.OrNop(log)
	c := &Container{Config: cfg, Logger: log}

	if cfg.Database.Configured() {
		connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		db, err := dbpostgres.Connect(connCtx, cfg.Database, log.Named("postgres"))
		cancel()
		if err != nil {
			if cfg.Data.Source == config.DataSourcePostgres {
				return nil, err
			}
			log.Warn("postgres unavailable, continuing without it", zap.Error(err))
		} else {
			c.DB = db
		}
	}

	c.Redis = cache.NewRedis(cfg.Redis, cfg.Cache.TTL, log.Named("redis"))
	c.Views = cache.NewTiered(cache.NewMemory(cfg.Cache.MaxEntries, cfg.Cache.TTL), c.Redis, log.Named("cache"))

	c.Hub = ws.NewHub(log.Named("ws"))

	loader := dataset.NewLoader(c.source(), dataset.LoaderOptions{
		SyntheticSeed: cfg.Data.SyntheticSeed,
		SyntheticJobs: cfg.Data.SyntheticJobs,
	}, log.Named("dataset"))
	c.Store = usecase.NewDatasetStore(loader, c.Views, ws.NewNotifier(c.Hub), log.Named("store"))
	c.Dashboard = usecase.NewDashboard(c.Store, c.Views, cfg.Cache.TTL, log.Named("dashboard"))

	var dbPing, redisPing interface {
		Ping(ctx context.Context) error
	}
	if c.DB != nil {
		dbPing = c.DB
	}
	if c.Redis.Available() {
		redisPing = c.Redis
	}
	c.Status = usecase.NewStatusUsecase(c.Store, dbPing, redisPing, c.Hub)

	if cfg.Admin.JWTSecret != "" {
		c.JWT = jwt.NewHMACService(cfg.Admin.JWTSecret, cfg.Admin.JWTExpiresIn, cfg.App.AppName)
		c.AdminAuth = usecase.NewAdminAuth(cfg.Admin.Username, cfg.Admin.PasswordHash, c.JWT)
	} else {
		log.Warn("JWT_SECRET not set, admin endpoints disabled")
	}

	return c, nil
}

// source picks the dataset source. Postgres is used only when selected and
// connected; otherwise the flat files are read.
func (c *Container) source() dataset.Source {
	if c.Config.Data.Source == config.DataSourcePostgres && c.DB != nil {
		return dataset.NewPostgresSource(
			repository.NewPostgresJobRepository(c.DB),
			repository.NewPostgresSkillRepository(c.DB),
			repository.NewPostgresJobSkillRepository(c.DB),
		)
	}
	return dataset.NewCSVSource(c.Config.Data.Dir)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
