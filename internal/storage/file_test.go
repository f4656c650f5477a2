package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikitkaralius/weeklypoll/internal/models"
)

func TestFileStoreMissingFilesYieldDefaults(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ctx := context.Background()

	st, err := s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, st.GroupChatID)
	assert.Nil(t, st.LatestPollID)

	votes, err := s.LoadVotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, votes)
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	ctx := context.Background()

	chatID := int64(-1001234)
	pollID := "5001"
	require.NoError(t, s.SaveSettings(ctx, models.Settings{GroupChatID: &chatID, LatestPollID: &pollID}))

	votes := models.Votes{
		"5001": {"Alice": {0}, "Bob (@bob)": {1}},
		"4000": {},
	}
	require.NoError(t, s.SaveVotes(ctx, votes, "5001"))

	st, err := s.LoadSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, st.GroupChatID)
	assert.Equal(t, chatID, *st.GroupChatID)
	assert.Equal(t, pollID, *st.LatestPollID)

	got, err := s.LoadVotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, votes, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{SettingsFile, VotesFile}, names, "temp files must not be left behind")
}

func TestFileStoreReadsLegacyLayout(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFile),
		[]byte(`{"group_chat_id": -42, "latest_poll_id": "abc"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, VotesFile),
		[]byte(`{"abc": {"Иван Петров (@ivan)": [2]}}`), 0o644))

	s := NewFileStore(dir)
	st, err := s.LoadSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(-42), *st.GroupChatID)
	assert.Equal(t, "abc", *st.LatestPollID)

	votes, err := s.LoadVotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2}, votes["abc"]["Иван Петров (@ivan)"])
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, VotesFile), []byte(`{not json`), 0o644))

	_, err := NewFileStore(dir).LoadVotes(context.Background())
	require.Error(t, err)
}

func TestFileStoreWriteFailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	ctx := context.Background()
	require.NoError(t, s.SaveVotes(ctx, models.Votes{"p1": {"Alice": {0}}}, "p1"))

	s.Dir = filepath.Join(dir, "missing")
	err := s.SaveVotes(ctx, models.Votes{"p1": {"Alice": {1}}}, "p1")
	require.Error(t, err)

	got, err := NewFileStore(dir).LoadVotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, got["p1"]["Alice"])
}
