package migration

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"dataitjobs/internal/pkg/logger"

	"go.uber.org/zap"
)

const lockKey int64 = 746295114

type Runner struct {
	Dir    string
	Logger *zap.Logger
}

type Result struct {
	Applied []Migration
	Skipped int
}

// Run applies every migration in Dir that is not yet recorded in
// schema_migrations. The advisory lock and all statements share one
// connection so the lock is released on the session that took it.
func (r Runner) Run(ctx context.Context, db *sql.DB) (Result, error) {
	if db == nil {
		return Result{}, errors.New("nil db")
	}
	log := logger.OrNop(r.Logger)

	migs, err := r.Load()
	if err != nil {
		return Result{}, err
	}
	if len(migs) == 0 {
		log.Info("no migrations found", zap.String("dir", r.Dir))
		return Result{}, nil
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return Result{}, err
	}
	defer conn.Close()

	if err := ensureSchemaMigrations(ctx, conn); err != nil {
		return Result{}, err
	}

	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockKey); err != nil {
		return Result{}, err
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockKey)
	}()

	applied, err := getApplied(ctx, conn)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, m := range migs {
		if a, ok := applied[m.Version]; ok {
			if a.Checksum != m.Checksum {
				return res, fmt.Errorf("migration checksum mismatch: version=%d name=%s", m.Version, m.Name)
			}
			res.Skipped++
			continue
		}

		start := time.Now()
		if err := applyOne(ctx, conn, m); err != nil {
			return res, err
		}
		log.Info("migration applied",
			zap.Int64("version", m.Version),
			zap.String("name", m.Name),
			zap.Duration("duration", time.Since(start)),
		)
		res.Applied = append(res.Applied, m)
	}

	return res, nil
}

// Load reads and validates the migration files without touching a database.
func (r Runner) Load() ([]Migration, error) {
	dir, err := resolveDir(r.Dir)
	if err != nil {
		return nil, err
	}
	return loadMigrations(dir)
}

type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

type appliedMigration struct {
	Version  int64
	Checksum string
}

var fileRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

func resolveDir(dir string) (string, error) {
	if strings.TrimSpace(dir) != "" {
		return dir, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), "migrations"), nil
}

func loadMigrations(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	migs := make([]Migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		m := fileRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		v, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid migration version: %s", name)
		}

		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		sqlText := strings.TrimSpace(string(b))
		if sqlText == "" {
			return nil, fmt.Errorf("empty migration file: %s", name)
		}

		h := sha256.Sum256([]byte(sqlText))
		migs = append(migs, Migration{
			Version:  v,
			Name:     m[2],
			Filename: name,
			SQL:      sqlText,
			Checksum: hex.EncodeToString(h[:]),
		})
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	for i := 1; i < len(migs); i++ {
		if migs[i].Version == migs[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version: %d", migs[i].Version)
		}
	}

	return migs, nil
}

func ensureSchemaMigrations(ctx context.Context, conn *sql.Conn) error {
	_, err := conn.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	return err
}

func getApplied(ctx context.Context, conn *sql.Conn) (map[int64]appliedMigration, error) {
	rows, err := conn.QueryContext(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]appliedMigration{}
	for rows.Next() {
		var v int64
		var c string
		if err := rows.Scan(&v, &c); err != nil {
			return nil, err
		}
		out[v] = appliedMigration{Version: v, Checksum: c}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func applyOne(ctx context.Context, conn *sql.Conn, m Migration) error {
	tx, err := conn.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("apply migration failed: version=%d file=%s: %w", m.Version, m.Filename, err)
	}

	appliedAt := time.Now().UTC()
	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO schema_migrations (version, name, checksum, applied_at) VALUES ($1, $2, $3, $4)`,
		m.Version,
		m.Name,
		m.Checksum,
		appliedAt,
	)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
