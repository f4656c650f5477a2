package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// WaitForDB pings db every interval until it answers or timeout elapses.
func WaitForDB(ctx context.Context, db Pinger, timeout, interval time.Duration, log logrus.FieldLogger) error {
	deadline := time.Now().Add(timeout)
	for attempt := 1; ; attempt++ {
		err := db.Ping(ctx)
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("database not ready after %s: %w", timeout, err)
		}
		log.WithError(err).WithField("attempt", attempt).Debug("database not ready yet")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
