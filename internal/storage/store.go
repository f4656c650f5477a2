package storage

import (
	"context"

	"github.com/nikitkaralius/weeklypoll/internal/models"
)

type SettingsStore interface {
	LoadSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, s models.Settings) error
}

// VoteStore persists the vote ledger. SaveVotes receives the full ledger and
// the id of the poll that changed; backends may write only that poll.
type VoteStore interface {
	LoadVotes(ctx context.Context) (models.Votes, error)
	SaveVotes(ctx context.Context, votes models.Votes, pollID string) error
}

type Store interface {
	SettingsStore
	VoteStore
}

// Result reports the outcome of a best-effort write. A failed write leaves
// the in-memory state authoritative, so callers usually only log it.
type Result struct {
	Target string
	Err    error
}

func (r Result) OK() bool { return r.Err == nil }
