package settings

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nikitkaralius/weeklypoll/internal/models"
	"github.com/nikitkaralius/weeklypoll/internal/storage"
)

// Store holds the destination chat and the latest poll id. The in-memory
// copy is authoritative; writes are best effort.
type Store struct {
	cur      models.Settings
	fallback int64
	backend  storage.SettingsStore
	log      logrus.FieldLogger
}

// New wraps cur. fallback is the destination used while no chat is bound;
// zero means none.
func New(cur models.Settings, fallback int64, backend storage.SettingsStore, log logrus.FieldLogger) *Store {
	return &Store{cur: cur, fallback: fallback, backend: backend, log: log}
}

// Load reads persisted settings. A failed read starts from empty settings.
func Load(ctx context.Context, backend storage.SettingsStore, fallback int64, log logrus.FieldLogger) *Store {
	cur, err := backend.LoadSettings(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to load settings, starting empty")
		cur = models.Settings{}
	}
	return New(cur, fallback, backend, log)
}

// GroupChat returns the bound chat, or the fallback when none is bound.
func (s *Store) GroupChat() (int64, bool) {
	if s.cur.GroupChatID != nil {
		return *s.cur.GroupChatID, true
	}
	if s.fallback != 0 {
		return s.fallback, true
	}
	return 0, false
}

func (s *Store) BindGroupChat(ctx context.Context, chatID int64) storage.Result {
	s.cur.GroupChatID = &chatID
	return s.persist(ctx, "group_chat_id")
}

func (s *Store) RecordLatestPoll(ctx context.Context, pollID string) storage.Result {
	s.cur.LatestPollID = &pollID
	return s.persist(ctx, "latest_poll_id")
}

func (s *Store) LatestPoll() (string, bool) {
	if s.cur.LatestPollID == nil || *s.cur.LatestPollID == "" {
		return "", false
	}
	return *s.cur.LatestPollID, true
}

func (s *Store) persist(ctx context.Context, field string) storage.Result {
	res := storage.Result{Target: field}
	if s.backend == nil {
		return res
	}
	if err := s.backend.SaveSettings(ctx, s.cur.Clone()); err != nil {
		s.log.WithError(err).WithField("field", field).Warn("failed to save settings")
		res.Err = err
	}
	return res
}
