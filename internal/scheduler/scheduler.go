package scheduler

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// JobType represents the kinds of scheduled jobs
type JobType int

const (
	JobTypeRefresh JobType = iota
	JobTypeStartup
)

// String returns the string representation of a JobType
func (j JobType) String() string {
	switch j {
	case JobTypeRefresh:
		return "refresh"
	case JobTypeStartup:
		return "startup"
	default:
		return "unknown"
	}
}

// Refresher drops and reloads cached sources.
type Refresher interface {
	Invalidate()
	Warm(ctx context.Context) error
}

// Scheduler periodically clears and re-warms the source cache
type Scheduler struct {
	refresher Refresher
	logger    *logrus.Logger
	spec      string
	timeout   time.Duration
	cron      *cron.Cron
	jobMutex  sync.Mutex // Ensures sequential job execution
}

// NewScheduler creates a scheduler for the given cron spec. An empty spec
// disables scheduled refreshes.
func NewScheduler(refresher Refresher, spec string, timeout time.Duration, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	return &Scheduler{
		refresher: refresher,
		logger:    logger,
		spec:      spec,
		timeout:   timeout,
	}
}

// Start registers the refresh job and begins running it
func (s *Scheduler) Start() error {
	if s.spec == "" {
		s.logger.Info("No refresh schedule configured, scheduler disabled")
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(s.spec, func() { s.run(JobTypeRefresh) }); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", s.spec, err)
	}
	s.cron = c
	s.cron.Start()

	s.logger.WithField("schedule", s.spec).Info("Scheduler started")
	return nil
}

// Stop waits for a running job and stops the scheduler
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
}

// RunNow refreshes the sources immediately.
func (s *Scheduler) RunNow(ctx context.Context) error {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	s.refresher.Invalidate()
	return s.refresher.Warm(ctx)
}

func (s *Scheduler) run(job JobType) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	s.logger.WithField("job_type", job.String()).Info("Starting scheduled job")

	if err := s.RunNow(ctx); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"job_type": job.String(),
		}).Error("Scheduled job failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"job_type": job.String(),
		"duration": time.Since(start).String(),
	}).Info("Scheduled job completed successfully")
}

// Warmup runs the startup refresh in the background.
func (s *Scheduler) Warmup() {
	go s.run(JobTypeStartup)
}
