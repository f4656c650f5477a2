package app

import (
	"context"

	"github.com/nikitkaralius/weeklypoll/internal/polls"
)

// Summary returns the tally of the latest poll, if any.
func (a *App) Summary(ctx context.Context) (polls.SummaryView, bool) {
	var (
		view polls.SummaryView
		ok   bool
	)
	_ = a.do(ctx, func(context.Context) error {
		var pollID string
		pollID, ok = a.settings.LatestPoll()
		if ok {
			view = a.ledger.Summarize(pollID)
		}
		return nil
	})
	return view, ok
}
