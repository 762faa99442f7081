package journal

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/segusengineering/worksync/internal/journal"
)

type PostgresJournal struct {
	pool *pgxpool.Pool
}

func NewPostgresJournal(pool *pgxpool.Pool) journal.Journal {
	return &PostgresJournal{pool: pool}
}

func (j *PostgresJournal) Record(ctx context.Context, e journal.Entry) error {
	_, err := j.pool.Exec(ctx,
		`INSERT INTO work_session_events (session_id, employee, kind, occurred_at, payload)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.SessionID, e.Employee, e.Kind, e.OccurredAt, e.Payload)
	return err
}

func (j *PostgresJournal) RecentBySession(ctx context.Context, sessionID int64, limit int) ([]journal.Entry, error) {
	rows, err := j.pool.Query(ctx,
		`SELECT session_id, employee, kind, occurred_at, payload
		 FROM work_session_events WHERE session_id = $1
		 ORDER BY occurred_at DESC LIMIT $2`,
		sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []journal.Entry
	for rows.Next() {
		var e journal.Entry
		if err := rows.Scan(&e.SessionID, &e.Employee, &e.Kind, &e.OccurredAt, &e.Payload); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
