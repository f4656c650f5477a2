package scheduler

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

type Schedule interface {
	Next(current time.Time) time.Time
}

type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time                         { return time.Now() }
func (SystemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

type Job func(ctx context.Context) error

type Entry struct {
	Name     string
	Schedule Schedule
	Next     time.Time
	job      Job
}

// Scheduler keeps its entries ordered by next firing time and runs due jobs
// one after another from a single loop. Add must not be called concurrently
// with Run.
type Scheduler struct {
	clock   Clock
	log     logrus.FieldLogger
	entries []*Entry
}

func New(clock Clock, log logrus.FieldLogger) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock, log: log}
}

func (s *Scheduler) Add(name string, sched Schedule, job Job) {
	s.entries = append(s.entries, &Entry{
		Name:     name,
		Schedule: sched,
		Next:     sched.Next(s.clock.Now()),
		job:      job,
	})
	s.sort()
}

// Entries returns a snapshot ordered by next firing time.
func (s *Scheduler) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = *e
	}
	return out
}

// RunDue fires every entry due at now, earliest first, and reschedules each
// from now. Periods missed while the process was asleep collapse into a
// single firing. It returns the number of jobs fired.
func (s *Scheduler) RunDue(ctx context.Context, now time.Time) int {
	fired := 0
	for _, e := range s.entries {
		if e.Next.After(now) {
			break
		}
		log := s.log.WithField("job", e.Name).WithField("scheduled_at", e.Next)
		if err := e.job(ctx); err != nil {
			log.WithError(err).Error("scheduled job failed")
		} else {
			log.Info("scheduled job done")
		}
		e.Next = e.Schedule.Next(now)
		fired++
	}
	if fired > 0 {
		s.sort()
	}
	return fired
}

func (s *Scheduler) Run(ctx context.Context) error {
	for {
		if len(s.entries) == 0 {
			<-ctx.Done()
			return ctx.Err()
		}
		wait := s.entries[0].Next.Sub(s.clock.Now())
		if wait < 0 {
			wait = 0
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(wait):
			s.RunDue(ctx, s.clock.Now())
		}
	}
}

func (s *Scheduler) sort() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].Next.Before(s.entries[j].Next)
	})
}
