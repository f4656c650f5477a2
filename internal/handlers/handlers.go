package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/nikitkaralius/weeklypoll/internal/app"
	"github.com/nikitkaralius/weeklypoll/internal/polls"
	"github.com/nikitkaralius/weeklypoll/internal/scheduler"
)

// Schedule is what /start and /help announce.
type Schedule struct {
	Poll    scheduler.Weekly
	Summary scheduler.Weekly
}

type Handlers struct {
	app         *app.App
	replies     app.Transport
	botUsername string
	schedule    Schedule
	log         logrus.FieldLogger
}

func New(a *app.App, replies app.Transport, botUsername string, schedule Schedule, log logrus.FieldLogger) *Handlers {
	return &Handlers{app: a, replies: replies, botUsername: botUsername, schedule: schedule, log: log}
}

func (h *Handlers) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg == nil || msg.Chat == nil || !msg.IsCommand() {
		return
	}
	cmd, ok := h.command(msg)
	if !ok {
		return
	}
	chat := msg.Chat
	labels := h.app.Labels()
	log := h.log.WithFields(logrus.Fields{"chat_id": chat.ID, "command": cmd})

	switch cmd {
	case "start", "help":
		h.reply(ctx, chat.ID, h.helpText(labels))
	case "chatid":
		text := fmt.Sprintf(labels.ChatInfo, chat.ID, chat.Title)
		if groupID, ok := h.app.GroupChat(ctx); ok {
			text += "\n" + fmt.Sprintf(labels.GroupInfo, groupID)
		}
		h.reply(ctx, chat.ID, text)
	case "setgroup":
		h.app.BindGroupChat(ctx, chat.ID)
		h.reply(ctx, chat.ID, fmt.Sprintf(labels.GroupBound, chat.ID))
	case "force_poll":
		if _, err := h.app.CreatePoll(ctx, chat.ID); err != nil {
			log.WithError(err).Error("forced poll failed")
			h.reply(ctx, chat.ID, labels.PollFailed)
			return
		}
		h.reply(ctx, chat.ID, labels.PollCreated)
	case "force_summary":
		if err := h.app.PostSummary(ctx, chat.ID); err != nil {
			log.WithError(err).Error("forced summary failed")
		}
	default:
		return
	}
	log.Debug("command handled")
}

// command strips the "@botname" suffix. Commands addressed to another bot in
// the same group are not ours.
func (h *Handlers) command(msg *tgbotapi.Message) (string, bool) {
	cmd := msg.CommandWithAt()
	name, target, found := strings.Cut(cmd, "@")
	if found && !strings.EqualFold(target, h.botUsername) {
		return "", false
	}
	return name, true
}

func (h *Handlers) helpText(l polls.Labels) string {
	p, s := h.schedule.Poll, h.schedule.Summary
	tz := "UTC"
	if p.Location != nil {
		tz = p.Location.String()
	}
	return fmt.Sprintf(l.Help,
		l.When(p.Day, p.Hour, p.Minute),
		l.When(s.Day, s.Hour, s.Minute),
		tz,
	)
}

func (h *Handlers) reply(ctx context.Context, chatID int64, text string) {
	if err := h.replies.SendMessage(ctx, chatID, text, false); err != nil {
		h.log.WithError(err).WithField("chat_id", chatID).Warn("reply failed")
	}
}
