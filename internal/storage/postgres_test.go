package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikitkaralius/weeklypoll/internal/models"
)

func setupPostgres(t *testing.T) *PostgresStore {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	pool, err := NewPostgresPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `DROP TABLE IF EXISTS poll_votes, polls, bot_settings`)
	require.NoError(t, err)

	s := NewPostgresStore(pool)
	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Migrate(ctx), "migrations must be re-runnable")
	return s
}

func TestPostgresStoreSettings(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	st, err := s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, st.GroupChatID)

	chatID := int64(-100500)
	require.NoError(t, s.SaveSettings(ctx, models.Settings{GroupChatID: &chatID}))
	pollID := "p9"
	require.NoError(t, s.SaveSettings(ctx, models.Settings{GroupChatID: &chatID, LatestPollID: &pollID}))

	st, err = s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, chatID, *st.GroupChatID)
	assert.Equal(t, pollID, *st.LatestPollID)
}

func TestPostgresStoreVotes(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	votes := models.Votes{"p1": {}}
	require.NoError(t, s.SaveVotes(ctx, votes, "p1"))

	votes["p1"]["Alice"] = []int{0}
	votes["p1"]["Bob"] = []int{1}
	require.NoError(t, s.SaveVotes(ctx, votes, "p1"))

	votes["p1"]["Alice"] = []int{2}
	votes["p2"] = models.Ballot{"Dan": {0}}
	require.NoError(t, s.SaveVotes(ctx, votes, "p1"))
	require.NoError(t, s.SaveVotes(ctx, votes, "p2"))

	got, err := s.LoadVotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, votes, got)
}
