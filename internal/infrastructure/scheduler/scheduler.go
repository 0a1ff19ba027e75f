// Package scheduler runs periodic background jobs. The hub has exactly
// one: keeping the holiday calendar seeded for the prediction horizon.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/estagio-hub/estagio-hours-hub/pkg/logger"
)

// Job is a unit of periodic work.
type Job interface {
	// Name identifies the job in logs.
	Name() string

	// Interval is the pause between runs.
	Interval() time.Duration

	// Run executes the job once.
	Run(ctx context.Context) error
}

// Scheduler drives registered jobs on their intervals until stopped.
type Scheduler struct {
	jobs []Job
	log  *logger.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// New creates an empty scheduler.
func New(log *logger.Logger) *Scheduler {
	return &Scheduler{log: log}
}

// Register adds a job. Must be called before Start.
func (s *Scheduler) Register(job Job) {
	s.jobs = append(s.jobs, job)
}

// Start launches one goroutine per job. Each job runs immediately and
// then on its interval. Start returns right away.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, s.cancel = context.WithCancel(ctx)
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(ctx, job)
	}

	s.log.Info("scheduler started", logger.Int("jobs", len(s.jobs)))
}

// Stop cancels all jobs and waits for them to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	defer s.wg.Done()

	log := s.log.With(logger.String("job", job.Name()))
	run := func() {
		start := time.Now()
		if err := job.Run(ctx); err != nil {
			log.Error("job failed", logger.Err(err), logger.Latency(time.Since(start)))
			return
		}
		log.Info("job completed", logger.Latency(time.Since(start)))
	}

	run()

	ticker := time.NewTicker(job.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
