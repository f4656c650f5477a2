package polls

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nikitkaralius/weeklypoll/internal/models"
	"github.com/nikitkaralius/weeklypoll/internal/storage"
)

// Ledger holds the ballots of every poll the bot has seen. Entries are never
// removed. Ledger is not safe for concurrent use; the app serialises access.
type Ledger struct {
	votes models.Votes
	store storage.VoteStore
	log   logrus.FieldLogger
}

func NewLedger(votes models.Votes, store storage.VoteStore, log logrus.FieldLogger) *Ledger {
	if votes == nil {
		votes = models.Votes{}
	}
	return &Ledger{votes: votes, store: store, log: log}
}

// LoadLedger reads the persisted ledger. A failed read starts from an empty
// ledger.
func LoadLedger(ctx context.Context, store storage.VoteStore, log logrus.FieldLogger) *Ledger {
	votes, err := store.LoadVotes(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to load votes, starting empty")
		votes = models.Votes{}
	}
	return NewLedger(votes, store, log)
}

// OpenPoll creates an empty entry for pollID unless one exists.
func (l *Ledger) OpenPoll(ctx context.Context, pollID string) storage.Result {
	if l.has(pollID) {
		return storage.Result{Target: pollID}
	}
	l.votes[pollID] = models.Ballot{}
	return l.persist(ctx, pollID)
}

// RecordAnswer replaces voter's ballot in pollID. Unknown polls are created
// on the fly. Indices outside the option set are dropped; an empty list
// (retracted vote) is kept as an empty ballot.
func (l *Ledger) RecordAnswer(ctx context.Context, pollID, voter string, optionIDs []int) storage.Result {
	b, ok := l.votes[pollID]
	if !ok {
		l.log.WithField("poll_id", pollID).Info("answer for unknown poll, opening it")
		b = models.Ballot{}
		l.votes[pollID] = b
	}

	opts := make([]int, 0, len(optionIDs))
	for _, id := range optionIDs {
		if !Option(id).Valid() {
			l.log.WithFields(logrus.Fields{"poll_id": pollID, "voter": voter, "option": id}).Warn("dropping unknown option")
			continue
		}
		opts = append(opts, id)
	}
	b[voter] = opts
	return l.persist(ctx, pollID)
}

// Summarize tallies pollID. Unknown polls give an empty view.
func (l *Ledger) Summarize(pollID string) SummaryView {
	return summarize(l.votes[pollID])
}

func (l *Ledger) has(pollID string) bool {
	_, ok := l.votes[pollID]
	return ok
}

func (l *Ledger) persist(ctx context.Context, pollID string) storage.Result {
	res := storage.Result{Target: pollID}
	if l.store == nil {
		return res
	}
	if err := l.store.SaveVotes(ctx, l.votes, pollID); err != nil {
		l.log.WithError(err).WithField("poll_id", pollID).Warn("failed to save votes")
		res.Err = err
	}
	return res
}
