package jobs

import (
	"context"

	"github.com/riverqueue/river"

	"github.com/nikitkaralius/weeklypoll/internal/scheduler"
)

var _ river.PeriodicSchedule = scheduler.Weekly{}

// PollArgs is the weekly poll trigger.
type PollArgs struct{}

// Kind implements river.JobArgs to identify this job type.
func (PollArgs) Kind() string { return "weekly_poll" }

// SummaryArgs is the weekly summary trigger.
type SummaryArgs struct{}

// Kind implements river.JobArgs to identify this job type.
func (SummaryArgs) Kind() string { return "weekly_summary" }

type Runner interface {
	ScheduledPoll(ctx context.Context) error
	ScheduledSummary(ctx context.Context) error
}

type PollWorker struct {
	river.WorkerDefaults[PollArgs]
	runner Runner
}

func NewPollWorker(r Runner) *PollWorker {
	return &PollWorker{runner: r}
}

func (w *PollWorker) Work(ctx context.Context, _ *river.Job[PollArgs]) error {
	return w.runner.ScheduledPoll(ctx)
}

type SummaryWorker struct {
	river.WorkerDefaults[SummaryArgs]
	runner Runner
}

func NewSummaryWorker(r Runner) *SummaryWorker {
	return &SummaryWorker{runner: r}
}

func (w *SummaryWorker) Work(ctx context.Context, _ *river.Job[SummaryArgs]) error {
	return w.runner.ScheduledSummary(ctx)
}

func Workers(r Runner) *river.Workers {
	workers := river.NewWorkers()
	river.AddWorker(workers, NewPollWorker(r))
	river.AddWorker(workers, NewSummaryWorker(r))
	return workers
}

// PeriodicJobs inserts one job per weekly slot. A failed send is not retried
// so a flaky network never posts the same poll twice.
func PeriodicJobs(poll, summary river.PeriodicSchedule) []*river.PeriodicJob {
	opts := &river.InsertOpts{MaxAttempts: 1}
	return []*river.PeriodicJob{
		river.NewPeriodicJob(poll, func() (river.JobArgs, *river.InsertOpts) {
			return PollArgs{}, opts
		}, nil),
		river.NewPeriodicJob(summary, func() (river.JobArgs, *river.InsertOpts) {
			return SummaryArgs{}, opts
		}, nil),
	}
}
