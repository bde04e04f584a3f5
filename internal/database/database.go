// internal/database/database.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// DB is the shared connection pool. It stays nil when no database is
// configured; callers must check before persisting.
var DB *pgxpool.Pool

// Connect opens the pool and prepares the schema. An empty dsn leaves DB
// nil and persistence disabled.
func Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		logrus.Info("database: no DSN configured, leaderboard disabled")
		return nil
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("database: open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("database: ping: %w", err)
	}
	DB = pool
	if err := ensureSchema(ctx); err != nil {
		return err
	}
	logrus.Info("database: connected")
	return nil
}

func ensureSchema(ctx context.Context) error {
	_, err := DB.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS scoreboard (
			id             UUID PRIMARY KEY,
			name           TEXT NOT NULL,
			score          BIGINT NOT NULL DEFAULT 0,
			last_played_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("database: ensure schema: %w", err)
	}
	return nil
}

// ScoreboardEntry is one row of the global running scoreboard. Lower is
// better: winners subtract their meten.
type ScoreboardEntry struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Score        int64     `json:"score"`
	LastPlayedAt time.Time `json:"lastPlayedAt"`
}

// CreatePlayerRecord inserts a fresh scoreboard row for a named player and
// returns its id. The id is held by the client; there are no accounts.
func CreatePlayerRecord(ctx context.Context, name string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := DB.Exec(ctx,
		`INSERT INTO scoreboard (id, name, score, last_played_at) VALUES ($1, $2, 0, now())`,
		id, name)
	if err != nil {
		return uuid.Nil, fmt.Errorf("database: create player record: %w", err)
	}
	return id, nil
}

// IncrementScore adds amount (possibly negative) to a player's running
// score and refreshes its last-played time.
func IncrementScore(ctx context.Context, id uuid.UUID, amount int) error {
	tag, err := DB.Exec(ctx,
		`UPDATE scoreboard SET score = score + $2, last_played_at = now() WHERE id = $1`,
		id, amount)
	if err != nil {
		return fmt.Errorf("database: increment score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("database: no scoreboard row %s", id)
	}
	return nil
}

// TopScores lists the best (lowest) running scores.
func TopScores(ctx context.Context, limit int) ([]ScoreboardEntry, error) {
	rows, err := DB.Query(ctx,
		`SELECT id, name, score, last_played_at FROM scoreboard ORDER BY score ASC, last_played_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("database: top scores: %w", err)
	}
	defer rows.Close()

	var out []ScoreboardEntry
	for rows.Next() {
		var e ScoreboardEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.LastPlayedAt); err != nil {
			return nil, fmt.Errorf("database: scan scoreboard row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
