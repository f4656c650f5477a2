package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikitkaralius/weeklypoll/internal/models"
	"github.com/nikitkaralius/weeklypoll/internal/storage"
)

func TestGroupChatFallback(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx := context.Background()

	tests := []struct {
		name     string
		bound    *int64
		fallback int64
		want     int64
		wantOK   bool
	}{
		{name: "unset", wantOK: false},
		{name: "fallback only", fallback: -100, want: -100, wantOK: true},
		{name: "bound wins", bound: ptr(int64(-200)), fallback: -100, want: -200, wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			require.NoError(t, store.SaveSettings(ctx, models.Settings{GroupChatID: tt.bound}))

			s := Load(ctx, store, tt.fallback, log)
			got, ok := s.GroupChat()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBindGroupChatPersists(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	s := Load(ctx, store, 0, log)

	require.True(t, s.BindGroupChat(ctx, -42).OK())
	require.True(t, s.BindGroupChat(ctx, -42).OK())

	got, ok := s.GroupChat()
	require.True(t, ok)
	assert.Equal(t, int64(-42), got)

	persisted, err := store.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(-42), *persisted.GroupChatID)
}

func TestRecordLatestPoll(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	s := Load(ctx, store, 0, log)

	_, ok := s.LatestPoll()
	assert.False(t, ok)

	require.True(t, s.RecordLatestPoll(ctx, "p1").OK())
	require.True(t, s.RecordLatestPoll(ctx, "p2").OK())

	id, ok := s.LatestPoll()
	require.True(t, ok)
	assert.Equal(t, "p2", id)

	reloaded := Load(ctx, store, 0, log)
	id, ok = reloaded.LatestPoll()
	require.True(t, ok)
	assert.Equal(t, "p2", id)
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	log, hook := test.NewNullLogger()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	store.SaveErr = errors.New("read-only file system")
	s := Load(ctx, store, 0, log)

	res := s.BindGroupChat(ctx, -7)
	require.False(t, res.OK())
	assert.Equal(t, "group_chat_id", res.Target)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	got, ok := s.GroupChat()
	require.True(t, ok)
	assert.Equal(t, int64(-7), got)
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	log, hook := test.NewNullLogger()
	store := storage.NewMemoryStore()
	store.LoadErr = errors.New("corrupt settings.json")

	s := Load(context.Background(), store, -1, log)
	_, ok := s.LatestPoll()
	assert.False(t, ok)
	got, ok := s.GroupChat()
	assert.True(t, ok)
	assert.Equal(t, int64(-1), got)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func ptr[T any](v T) *T { return &v }
