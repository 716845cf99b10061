package seeder

import (
	"context"
	"fmt"
	"strings"

	"dataitjobs/internal/database"
)

// upsert bulk-loads rows into a session-local staging copy of table with COPY
// and merges them into table in one transaction. Rows whose key already
// exists are updated in place.
func upsert(ctx context.Context, db database.DB, table string, columns, keys []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	staging := "staging_" + table
	if _, err := tx.Exec(ctx, fmt.Sprintf(
		`CREATE TEMP TABLE %s (LIKE %s INCLUDING DEFAULTS) ON COMMIT DROP`, staging, table,
	)); err != nil {
		return 0, fmt.Errorf("create staging table: %w", err)
	}

	if _, err := tx.CopyFrom(ctx, staging, columns, rows); err != nil {
		return 0, fmt.Errorf("copy into %s: %w", staging, err)
	}

	n, err := tx.Exec(ctx, mergeQuery(table, staging, columns, keys))
	if err != nil {
		return 0, fmt.Errorf("merge into %s: %w", table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

func mergeQuery(table, staging string, columns, keys []string) string {
	isKey := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		isKey[k] = struct{}{}
	}
	var sets []string
	for _, c := range columns {
		if _, ok := isKey[c]; ok {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}

	cols := strings.Join(columns, ", ")
	q := fmt.Sprintf(
		`INSERT INTO %s (%s) SELECT %s FROM %s ON CONFLICT (%s) `,
		table, cols, cols, staging, strings.Join(keys, ", "),
	)
	if len(sets) == 0 {
		return q + "DO NOTHING"
	}
	return q + "DO UPDATE SET " + strings.Join(sets, ", ")
}
