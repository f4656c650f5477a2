package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyDB struct {
	failures int
	calls    int
}

func (f *flakyDB) Ping(context.Context) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestWaitForDB(t *testing.T) {
	log, _ := test.NewNullLogger()

	t.Run("ready after retries", func(t *testing.T) {
		db := &flakyDB{failures: 2}
		err := WaitForDB(context.Background(), db, time.Second, time.Millisecond, log)
		require.NoError(t, err)
		assert.Equal(t, 3, db.calls)
	})

	t.Run("timeout", func(t *testing.T) {
		db := &flakyDB{failures: 1 << 30}
		err := WaitForDB(context.Background(), db, 5*time.Millisecond, time.Millisecond, log)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("context cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		db := &flakyDB{failures: 1 << 30}
		err := WaitForDB(ctx, db, time.Minute, time.Second, log)
		require.ErrorIs(t, err, context.Canceled)
	})
}
