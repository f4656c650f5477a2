package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nikitkaralius/weeklypoll/internal/models"
)

type PostgresStore struct {
	Pool *pgxpool.Pool
}

func NewPostgresPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 5
	cfg.MaxConnLifetime = 30 * time.Minute
	return pgxpool.NewWithConfig(ctx, cfg)
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{Pool: pool}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bot_settings (
			id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			group_chat_id BIGINT,
			latest_poll_id TEXT,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS polls (
			poll_id TEXT PRIMARY KEY,
			opened_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS poll_votes (
			poll_id TEXT NOT NULL REFERENCES polls (poll_id),
			voter_name TEXT NOT NULL,
			option_ids INT[] NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (poll_id, voter_name)
		)`,
	}
	for _, st := range stmts {
		if _, err := s.Pool.Exec(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) LoadSettings(ctx context.Context) (models.Settings, error) {
	var st models.Settings
	err := s.Pool.QueryRow(ctx, `SELECT group_chat_id, latest_poll_id FROM bot_settings WHERE id = 1`).
		Scan(&st.GroupChatID, &st.LatestPollID)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Settings{}, nil
	}
	if err != nil {
		return models.Settings{}, err
	}
	return st, nil
}

func (s *PostgresStore) SaveSettings(ctx context.Context, st models.Settings) error {
	_, err := s.Pool.Exec(ctx, `INSERT INTO bot_settings (id, group_chat_id, latest_poll_id, updated_at)
	VALUES (1, $1, $2, NOW())
	ON CONFLICT (id) DO UPDATE SET group_chat_id=EXCLUDED.group_chat_id, latest_poll_id=EXCLUDED.latest_poll_id, updated_at=NOW()`,
		st.GroupChatID, st.LatestPollID,
	)
	return err
}

func (s *PostgresStore) LoadVotes(ctx context.Context) (models.Votes, error) {
	votes := models.Votes{}

	rows, err := s.Pool.Query(ctx, `SELECT poll_id FROM polls`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var pollID string
		if err := rows.Scan(&pollID); err != nil {
			rows.Close()
			return nil, err
		}
		votes[pollID] = models.Ballot{}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.Pool.Query(ctx, `SELECT poll_id, voter_name, option_ids FROM poll_votes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			pollID, name string
			optionIDs    []int32
		)
		if err := rows.Scan(&pollID, &name, &optionIDs); err != nil {
			return nil, err
		}
		b, ok := votes[pollID]
		if !ok {
			b = models.Ballot{}
			votes[pollID] = b
		}
		b[name] = ArrayToIntSlice(optionIDs)
	}
	return votes, rows.Err()
}

// SaveVotes writes the ballot of pollID only. Ballot entries are never
// removed from the ledger, so an upsert per voter is enough.
func (s *PostgresStore) SaveVotes(ctx context.Context, votes models.Votes, pollID string) error {
	ballot := votes[pollID]
	return pgx.BeginFunc(ctx, s.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `INSERT INTO polls (poll_id, opened_at) VALUES ($1, NOW()) ON CONFLICT (poll_id) DO NOTHING`, pollID); err != nil {
			return err
		}
		for name, optionIDs := range ballot {
			_, err := tx.Exec(ctx, `INSERT INTO poll_votes (poll_id, voter_name, option_ids, updated_at)
			VALUES ($1,$2,$3, NOW())
			ON CONFLICT (poll_id, voter_name) DO UPDATE SET option_ids=EXCLUDED.option_ids, updated_at=NOW()`,
				pollID, name, IntSliceToArray(optionIDs),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func IntSliceToArray(a []int) []int32 {
	b := make([]int32, len(a))
	for i, v := range a {
		b[i] = int32(v)
	}
	return b
}

func ArrayToIntSlice(a []int32) []int {
	b := make([]int, len(a))
	for i, v := range a {
		b[i] = int(v)
	}
	return b
}
