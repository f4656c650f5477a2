// Package testutil provides fakes shared by package tests.
package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/nikitkaralius/weeklypoll/internal/app"
	"github.com/nikitkaralius/weeklypoll/internal/polls"
	"github.com/nikitkaralius/weeklypoll/internal/settings"
	"github.com/nikitkaralius/weeklypoll/internal/storage"
)

var ErrSendFailed = errors.New("telegram: Bad Request: chat not found")

type SentPoll struct {
	ChatID   int64
	PollID   string
	Question string
	Options  []string
}

type SentMessage struct {
	ChatID int64
	Text   string
	HTML   bool
}

// Transport records everything the app sends. FailPolls and FailMessages make
// the matching calls return ErrSendFailed.
type Transport struct {
	mu           sync.Mutex
	Polls        []SentPoll
	Messages     []SentMessage
	FailPolls    bool
	FailMessages bool
}

func (t *Transport) SendPoll(_ context.Context, chatID int64, question string, options []string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.FailPolls {
		return "", ErrSendFailed
	}
	id := uuid.NewString()
	t.Polls = append(t.Polls, SentPoll{ChatID: chatID, PollID: id, Question: question, Options: append([]string{}, options...)})
	return id, nil
}

func (t *Transport) SendMessage(_ context.Context, chatID int64, text string, html bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.FailMessages {
		return ErrSendFailed
	}
	t.Messages = append(t.Messages, SentMessage{ChatID: chatID, Text: text, HTML: html})
	return nil
}

func (t *Transport) LastMessage() (SentMessage, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.Messages) == 0 {
		return SentMessage{}, false
	}
	return t.Messages[len(t.Messages)-1], true
}

func (t *Transport) LastPoll() (SentPoll, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.Polls) == 0 {
		return SentPoll{}, false
	}
	return t.Polls[len(t.Polls)-1], true
}

type Env struct {
	App       *app.App
	Store     *storage.MemoryStore
	Transport *Transport
	Hook      *test.Hook
}

// NewApp starts an App over in-memory storage and a recording transport. The
// loop stops when the test ends.
func NewApp(t *testing.T, fallbackChat int64, labels polls.Labels) *Env {
	t.Helper()
	log, hook := test.NewNullLogger()
	store := storage.NewMemoryStore()
	tr := &Transport{}

	ctx, cancel := context.WithCancel(context.Background())
	a := app.New(
		settings.Load(ctx, store, fallbackChat, log),
		polls.LoadLedger(ctx, store, log),
		tr, labels, log,
	)
	done := make(chan struct{})
	go func() {
		_ = a.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return &Env{App: a, Store: store, Transport: tr, Hook: hook}
}
