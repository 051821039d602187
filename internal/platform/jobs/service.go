package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"shiftpay/internal/platform/metrics"
)

const (
	JobScheduleRefresh = "schedule_refresh"
	JobReportSend      = "report_send"
)

const (
	StatusQueued    = "queued"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// maxRuns bounds the in-memory run history.
const maxRuns = 100

type RunFunc func(context.Context) (any, error)

type Run struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Status     string     `json:"status"`
	QueuedAt   time.Time  `json:"queuedAt"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	Error      string     `json:"error,omitempty"`
	Details    any        `json:"details,omitempty"`
}

type job struct {
	ID   string
	Type string
	Run  RunFunc
}

// Service runs background jobs on a single worker and keeps a short
// history of their outcomes.
type Service struct {
	queue    chan job
	interval time.Duration
	refresh  RunFunc
	metrics  *metrics.Collector

	mu   sync.Mutex
	runs []Run

	wg sync.WaitGroup
}

// New returns a service that runs refresh every interval once started.
// A zero interval or nil refresh disables the ticker.
func New(interval time.Duration, refresh RunFunc, collector *metrics.Collector) *Service {
	return &Service{
		queue:    make(chan job, 128),
		interval: interval,
		refresh:  refresh,
		metrics:  collector,
	}
}

func (s *Service) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.worker(ctx)
	}()
	if s.interval > 0 && s.refresh != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.scheduleRefresh(ctx, s.interval)
		}()
	}
}

// Wait blocks until the goroutines started by Start have returned.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Enqueue queues run and returns its id, or "" when the queue is full.
func (s *Service) Enqueue(jobType string, run RunFunc) string {
	j := job{ID: uuid.NewString(), Type: jobType, Run: run}
	select {
	case s.queue <- j:
		s.record(Run{ID: j.ID, Type: jobType, Status: StatusQueued, QueuedAt: time.Now().UTC()})
		return j.ID
	default:
		slog.Warn("job queue full", "jobType", jobType)
		return ""
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run RunFunc) (any, error) {
	j := job{ID: uuid.NewString(), Type: jobType, Run: run}
	s.record(Run{ID: j.ID, Type: jobType, Status: StatusQueued, QueuedAt: time.Now().UTC()})
	return s.runJob(ctx, j)
}

// Runs returns the recorded runs, newest first.
func (s *Service) Runs() []Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Run, len(s.runs))
	for i, run := range s.runs {
		out[len(s.runs)-1-i] = run
	}
	return out
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "jobId", j.ID, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	started := time.Now().UTC()
	s.update(j.ID, func(run *Run) {
		run.Status = StatusRunning
		run.StartedAt = &started
	})

	details, err := j.Run(ctx)
	finished := time.Now().UTC()
	s.update(j.ID, func(run *Run) {
		run.FinishedAt = &finished
		run.Details = details
		run.Status = StatusCompleted
		if err != nil {
			run.Status = StatusFailed
			run.Error = err.Error()
		}
	})
	s.metrics.RecordJob(err)
	return details, err
}

func (s *Service) scheduleRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobScheduleRefresh, s.refresh)
		}
	}
}

func (s *Service) record(run Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	if len(s.runs) > maxRuns {
		s.runs = append([]Run(nil), s.runs[len(s.runs)-maxRuns:]...)
	}
}

func (s *Service) update(id string, fn func(*Run)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.runs) - 1; i >= 0; i-- {
		if s.runs[i].ID == id {
			fn(&s.runs[i])
			return
		}
	}
}
