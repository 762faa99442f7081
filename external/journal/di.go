package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/do/v2"

	"github.com/segusengineering/worksync/internal/config"
	"github.com/segusengineering/worksync/internal/journal"
)

const databaseInitTimeout = 15 * time.Second

// RegisterDI provides the session journal. Without a configured database the
// agent still runs; transitions are simply not persisted.
func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (journal.Journal, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.DatabaseURL == "" {
			return journal.Noop{}, nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), databaseInitTimeout)
		defer cancel()

		p, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect database: %w", err)
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		if err := RunMigration(ctx, p); err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to run migration: %w", err)
		}
		return NewPostgresJournal(p), nil
	})
}
