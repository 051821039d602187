package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps process-wide counters. A nil Collector ignores records.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64

	jobsCompleted    uint64
	jobsFailed       uint64
	scheduleReloads  uint64
	scheduleFailures uint64
	reportsSent      uint64
	reportsFailed    uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordJob(err error) {
	if c == nil {
		return
	}
	if err != nil {
		atomic.AddUint64(&c.jobsFailed, 1)
		return
	}
	atomic.AddUint64(&c.jobsCompleted, 1)
}

func (c *Collector) RecordScheduleReload(err error) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.scheduleReloads, 1)
	if err != nil {
		atomic.AddUint64(&c.scheduleFailures, 1)
	}
}

func (c *Collector) RecordReport(err error) {
	if c == nil {
		return
	}
	if err != nil {
		atomic.AddUint64(&c.reportsFailed, 1)
		return
	}
	atomic.AddUint64(&c.reportsSent, 1)
}

func (c *Collector) Snapshot() map[string]any {
	if c == nil {
		return map[string]any{}
	}
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":         total,
		"errorsTotal":           errs,
		"rateLimitedTotal":      limited,
		"avgDurationMs":         avg,
		"totalDurationMs":       totalMs,
		"jobsCompletedTotal":    atomic.LoadUint64(&c.jobsCompleted),
		"jobsFailedTotal":       atomic.LoadUint64(&c.jobsFailed),
		"scheduleReloadsTotal":  atomic.LoadUint64(&c.scheduleReloads),
		"scheduleFailuresTotal": atomic.LoadUint64(&c.scheduleFailures),
		"reportsSentTotal":      atomic.LoadUint64(&c.reportsSent),
		"reportsFailedTotal":    atomic.LoadUint64(&c.reportsFailed),
	}
}
