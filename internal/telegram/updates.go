package telegram

import (
	"context"
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type UpdateHandler interface {
	HandleMessage(ctx context.Context, msg *tgbotapi.Message)
	HandlePollAnswer(ctx context.Context, pa *tgbotapi.PollAnswer)
}

func Dispatch(ctx context.Context, h UpdateHandler, update tgbotapi.Update) {
	if update.Message != nil {
		h.HandleMessage(ctx, update.Message)
	}
	if update.PollAnswer != nil {
		h.HandlePollAnswer(ctx, update.PollAnswer)
	}
}

// Poll receives updates by long polling until ctx is done.
func (c *Client) Poll(ctx context.Context, h UpdateHandler, log logrus.FieldLogger) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message", "poll_answer"}
	updates := c.API.GetUpdatesChan(u)
	defer c.API.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			log.Info("stopping update polling")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			Dispatch(ctx, h, update)
		}
	}
}

// SetWebhook registers url with Telegram.
func (c *Client) SetWebhook(url string, log logrus.FieldLogger) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return err
	}
	wh.AllowedUpdates = []string{"message", "poll_answer"}
	if _, err := c.API.Request(wh); err != nil {
		return err
	}
	if info, err := c.API.GetWebhookInfo(); err == nil {
		log.WithField("pending_updates", info.PendingUpdateCount).Info("webhook set")
	}
	return nil
}

func WebhookHandler(h UpdateHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		Dispatch(r.Context(), h, update)
		w.WriteHeader(http.StatusOK)
	})
}
