package state

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores state in the conversation_state table, data as jsonb.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Get(ctx context.Context, userID int64) (Record, error) {
	var rec Record
	err := p.pool.QueryRow(ctx,
		`SELECT step, data, updated_at FROM conversation_state WHERE user_id = $1`, userID,
	).Scan(&rec.Step, &rec.Data, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (p *Postgres) Put(ctx context.Context, userID int64, rec Record) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO conversation_state (user_id, step, data, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET step = EXCLUDED.step, data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		userID, rec.Step, []byte(rec.Data), rec.UpdatedAt)
	return err
}

func (p *Postgres) Delete(ctx context.Context, userID int64) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM conversation_state WHERE user_id = $1`, userID)
	return err
}

func (p *Postgres) Sweep(ctx context.Context, before time.Time) (int, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM conversation_state WHERE updated_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
