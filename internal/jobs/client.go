package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/sirupsen/logrus"
)

// NewClient applies River's migrations and returns a client that runs the
// weekly jobs on a single worker.
func NewClient(ctx context.Context, pool *pgxpool.Pool, r Runner, poll, summary river.PeriodicSchedule) (*river.Client[pgx.Tx], error) {
	driver := riverpgxv5.New(pool)

	migrator, err := rivermigrate.New(driver, nil)
	if err != nil {
		return nil, fmt.Errorf("river migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil); err != nil {
		return nil, fmt.Errorf("river migrate: %w", err)
	}

	client, err := river.NewClient(driver, &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 1},
		},
		Workers:      Workers(r),
		PeriodicJobs: PeriodicJobs(poll, summary),
	})
	if err != nil {
		return nil, fmt.Errorf("river client: %w", err)
	}
	return client, nil
}

// Stop tries a soft stop that lets running jobs finish, then cancels them.
func Stop(client *river.Client[pgx.Tx], timeout time.Duration, log logrus.FieldLogger) {
	softStopCtx, softStopCtxCancel := context.WithTimeout(context.Background(), timeout)
	defer softStopCtxCancel()

	err := client.Stop(softStopCtx)
	if err == nil {
		log.Info("river soft stop succeeded")
		return
	}
	if !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("river stop failed")
		return
	}

	log.Warn("river soft stop timed out, cancelling running jobs")
	hardStopCtx, hardStopCtxCancel := context.WithTimeout(context.Background(), timeout)
	defer hardStopCtxCancel()

	// Jobs that ignore cancellation can still block here; give up after timeout.
	if err := client.StopAndCancel(hardStopCtx); err != nil {
		log.WithError(err).Error("river hard stop failed, exiting anyway")
	}
}
