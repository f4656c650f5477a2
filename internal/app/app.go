package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nikitkaralius/weeklypoll/internal/polls"
	"github.com/nikitkaralius/weeklypoll/internal/settings"
	"github.com/nikitkaralius/weeklypoll/internal/storage"
)

// ErrNoDestination is returned when neither a chat is bound nor a fallback
// is configured.
var ErrNoDestination = errors.New("no group chat configured")

// Transport posts to the chat service.
type Transport interface {
	// SendPoll posts a non-anonymous single-answer poll and returns its id.
	SendPoll(ctx context.Context, chatID int64, question string, options []string) (string, error)
	SendMessage(ctx context.Context, chatID int64, text string, html bool) error
}

// App owns the bot state. Every exported method runs on the loop started by
// Run, one at a time, so callers on different goroutines never race.
type App struct {
	settings  *settings.Store
	ledger    *polls.Ledger
	transport Transport
	labels    polls.Labels
	log       logrus.FieldLogger

	tasks chan task
}

type task struct {
	fn   func(ctx context.Context) error
	ctx  context.Context
	done chan error
}

func New(s *settings.Store, l *polls.Ledger, tr Transport, labels polls.Labels, log logrus.FieldLogger) *App {
	return &App{
		settings:  s,
		ledger:    l,
		transport: tr,
		labels:    labels,
		log:       log,
		tasks:     make(chan task),
	}
}

func (a *App) Labels() polls.Labels { return a.labels }

// Run processes submitted operations until ctx is done.
func (a *App) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-a.tasks:
			t.done <- t.fn(t.ctx)
		}
	}
}

func (a *App) do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := task{fn: fn, ctx: ctx, done: make(chan error, 1)}
	select {
	case a.tasks <- t:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-t.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CreatePoll posts a new poll to chatID, or to the configured group when
// chatID is zero, and makes it the latest poll.
func (a *App) CreatePoll(ctx context.Context, chatID int64) (string, error) {
	var pollID string
	err := a.do(ctx, func(ctx context.Context) error {
		var err error
		pollID, err = a.createPoll(ctx, chatID)
		return err
	})
	return pollID, err
}

func (a *App) createPoll(ctx context.Context, chatID int64) (string, error) {
	target, err := a.destination(chatID)
	if err != nil {
		return "", err
	}
	pollID, err := a.transport.SendPoll(ctx, target, a.labels.Question, a.labels.OptionTexts())
	if err != nil {
		return "", fmt.Errorf("send poll to %d: %w", target, err)
	}
	// The ledger entry must exist before the poll becomes the latest one.
	a.ledger.OpenPoll(ctx, pollID)
	a.settings.RecordLatestPoll(ctx, pollID)
	a.log.WithFields(logrus.Fields{"poll_id": pollID, "chat_id": target}).Info("poll created")
	return pollID, nil
}

// PostSummary posts the tally of the latest poll to chatID, or to the
// configured group when chatID is zero.
func (a *App) PostSummary(ctx context.Context, chatID int64) error {
	return a.do(ctx, func(ctx context.Context) error {
		return a.postSummary(ctx, chatID)
	})
}

func (a *App) postSummary(ctx context.Context, chatID int64) error {
	target, err := a.destination(chatID)
	if err != nil {
		return err
	}
	pollID, ok := a.settings.LatestPoll()
	if !ok {
		if err := a.transport.SendMessage(ctx, target, a.labels.NoData, false); err != nil {
			return fmt.Errorf("send no-data message to %d: %w", target, err)
		}
		return nil
	}
	text := polls.Render(a.ledger.Summarize(pollID), a.labels)
	if err := a.transport.SendMessage(ctx, target, text, true); err != nil {
		return fmt.Errorf("send summary of %s to %d: %w", pollID, target, err)
	}
	a.log.WithFields(logrus.Fields{"poll_id": pollID, "chat_id": target}).Info("summary posted")
	return nil
}

// ScheduledPoll is the weekly poll trigger. A missing destination is logged
// and the run skipped.
func (a *App) ScheduledPoll(ctx context.Context) error {
	_, err := a.CreatePoll(ctx, 0)
	if errors.Is(err, ErrNoDestination) {
		a.log.Warn("no group chat set, skipping poll creation")
		return nil
	}
	return err
}

// ScheduledSummary is the weekly summary trigger.
func (a *App) ScheduledSummary(ctx context.Context) error {
	err := a.PostSummary(ctx, 0)
	if errors.Is(err, ErrNoDestination) {
		a.log.Warn("no group chat set, skipping summary")
		return nil
	}
	return err
}

func (a *App) RecordAnswer(ctx context.Context, ans polls.Answer) storage.Result {
	var res storage.Result
	err := a.do(ctx, func(ctx context.Context) error {
		voter := ans.Voter()
		res = a.ledger.RecordAnswer(ctx, ans.PollID, voter, ans.OptionIDs)
		a.log.WithFields(logrus.Fields{"poll_id": ans.PollID, "voter": voter, "options": ans.OptionIDs}).Info("vote recorded")
		return nil
	})
	if err != nil {
		return storage.Result{Target: ans.PollID, Err: err}
	}
	return res
}

func (a *App) BindGroupChat(ctx context.Context, chatID int64) storage.Result {
	var res storage.Result
	err := a.do(ctx, func(ctx context.Context) error {
		res = a.settings.BindGroupChat(ctx, chatID)
		a.log.WithField("chat_id", chatID).Info("group chat bound")
		return nil
	})
	if err != nil {
		return storage.Result{Target: "group_chat_id", Err: err}
	}
	return res
}

// GroupChat reports the effective destination.
func (a *App) GroupChat(ctx context.Context) (int64, bool) {
	var (
		id int64
		ok bool
	)
	_ = a.do(ctx, func(context.Context) error {
		id, ok = a.settings.GroupChat()
		return nil
	})
	return id, ok
}

func (a *App) destination(chatID int64) (int64, error) {
	if chatID != 0 {
		return chatID, nil
	}
	if id, ok := a.settings.GroupChat(); ok {
		return id, nil
	}
	return 0, ErrNoDestination
}
