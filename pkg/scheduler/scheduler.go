package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"saganowatch/pkg/logger"
)

// Job statuses
const (
	JobStatusScheduled = "scheduled"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
)

var ErrJobNotFound = fmt.Errorf("job not found")

// JobFunc is the body of a scheduled job. The context is the scheduler's
// lifetime context.
type JobFunc func(ctx context.Context)

// Scheduler runs recurring jobs on cron schedules. Jobs that overrun their
// period are skipped rather than stacked, so a slow watch tick never
// overlaps the next one.
type Scheduler struct {
	cron      *cron.Cron
	ctx       context.Context
	jobs      map[string]*ScheduledJob
	jobsMutex sync.RWMutex
}

// ScheduledJob is one recurring job and its bookkeeping
type ScheduledJob struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Spec    string    `json:"spec"` // cron expression or @every form
	NextRun time.Time `json:"next_run"`
	LastRun time.Time `json:"last_run"`
	Status  string    `json:"status"`
	EntryID cron.EntryID

	run JobFunc
}

// New creates a scheduler bound to a lifetime context
func New(ctx context.Context) *Scheduler {
	cronScheduler := cron.New(
		cron.WithChain(
			cron.SkipIfStillRunning(cron.DefaultLogger),
			cron.Recover(cron.DefaultLogger),
		),
	)

	return &Scheduler{
		cron: cronScheduler,
		ctx:  ctx,
		jobs: make(map[string]*ScheduledJob),
	}
}

// AddJob registers a recurring job and returns its ID
func (s *Scheduler) AddJob(name, spec string, fn JobFunc) (string, error) {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()

	job := &ScheduledJob{
		ID:     uuid.New().String(),
		Name:   name,
		Spec:   spec,
		Status: JobStatusScheduled,
		run:    fn,
	}

	entryID, err := s.cron.AddFunc(spec, s.createJobFunction(job))
	if err != nil {
		return "", fmt.Errorf("failed to add cron job %s: %w", name, err)
	}
	job.EntryID = entryID
	s.updateJobNextRunTime(job)

	s.jobs[job.ID] = job

	logger.Info("Added scheduled job",
		zap.String("job_id", job.ID),
		zap.String("job_name", name),
		zap.String("spec", spec))
	return job.ID, nil
}

// RemoveJob unregisters a job
func (s *Scheduler) RemoveJob(jobID string) error {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	s.cron.Remove(job.EntryID)
	delete(s.jobs, jobID)

	logger.Info("Removed scheduled job", zap.String("job_id", jobID), zap.String("job_name", job.Name))
	return nil
}

// Start runs the scheduler until the lifetime context is cancelled
func (s *Scheduler) Start() error {
	logger.Info("Starting scheduler")
	s.cron.Start()

	s.jobsMutex.Lock()
	for _, job := range s.jobs {
		s.updateJobNextRunTime(job)
	}
	s.jobsMutex.Unlock()

	s.logScheduledJobs()

	<-s.ctx.Done()
	logger.Info("Scheduler context cancelled")
	return nil
}

// Shutdown stops scheduling and waits for running jobs, up to the given
// context's deadline.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down scheduler")

	cronCtx := s.cron.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("All scheduled jobs completed")
	case <-ctx.Done():
		logger.Warn("Scheduler shutdown timeout, some jobs may still be running")
	}
	return nil
}

// GetJobs returns all scheduled jobs
func (s *Scheduler) GetJobs() []*ScheduledJob {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()

	jobs := make([]*ScheduledJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		s.updateJobNextRunTime(job)
		jobs = append(jobs, job)
	}
	return jobs
}

// GetJob returns one scheduled job by ID
func (s *Scheduler) GetJob(jobID string) (*ScheduledJob, error) {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	return job, nil
}

// GetStatus returns scheduler status for the health endpoint
func (s *Scheduler) GetStatus() map[string]interface{} {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()

	return map[string]interface{}{
		"running":   s.cron != nil,
		"job_count": len(s.jobs),
		"entries":   len(s.cron.Entries()),
		"timestamp": time.Now().UTC(),
	}
}

func (s *Scheduler) createJobFunction(job *ScheduledJob) func() {
	return func() {
		logger.Debug("Executing scheduled job", zap.String("job_name", job.Name))

		s.updateJobStatus(job, JobStatusRunning)
		s.updateJobLastRun(job, time.Now())

		job.run(s.ctx)

		s.updateJobStatus(job, JobStatusCompleted)
	}
}

func (s *Scheduler) logScheduledJobs() {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()

	for _, job := range s.jobs {
		logger.Info("Scheduled job active",
			zap.String("job_name", job.Name),
			zap.String("spec", job.Spec),
			zap.Time("next_run", job.NextRun))
	}
}

// updateJobNextRunTime refreshes NextRun from the live cron entry. Caller
// holds at least a read lock.
func (s *Scheduler) updateJobNextRunTime(job *ScheduledJob) {
	for _, entry := range s.cron.Entries() {
		if entry.ID == job.EntryID {
			job.NextRun = entry.Next
			return
		}
	}
}

func (s *Scheduler) updateJobStatus(job *ScheduledJob, status string) {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()
	job.Status = status
}

func (s *Scheduler) updateJobLastRun(job *ScheduledJob, lastRun time.Time) {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()
	job.LastRun = lastRun
}
