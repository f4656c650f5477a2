package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nikitkaralius/weeklypoll/internal/polls"
)

func (h *Handlers) HandlePollAnswer(ctx context.Context, pa *tgbotapi.PollAnswer) {
	if pa == nil {
		return
	}
	// Persist vote; write failures are logged by the ledger.
	h.app.RecordAnswer(ctx, polls.Answer{
		PollID:    pa.PollID,
		FullName:  polls.FullName(pa.User.FirstName, pa.User.LastName),
		Username:  pa.User.UserName,
		OptionIDs: pa.OptionIDs,
	})
}
