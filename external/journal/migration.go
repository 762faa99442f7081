package journal

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS work_session_events (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		session_id BIGINT NOT NULL,
		employee TEXT NOT NULL,
		kind TEXT NOT NULL,
		occurred_at TIMESTAMPTZ NOT NULL,
		payload JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_session_events_session ON work_session_events (session_id, occurred_at DESC)`,
}

func RunMigration(ctx context.Context, pool *pgxpool.Pool) error {
	for _, s := range migrationStatements {
		stmt := strings.TrimSpace(s)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
