// Package worker provides background prefetching of track analyses.
package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// defaultJobTimeout bounds a single prefetch.
const defaultJobTimeout = 30 * time.Second

// Prefetcher warms whatever cache sits behind a track id.
type Prefetcher interface {
	Prefetch(ctx context.Context, trackID string) error
}

// Job represents a queued prefetch.
type Job struct {
	ID      string
	TrackID string
}

// Pool manages background workers for async prefetch jobs.
type Pool struct {
	prefetcher Prefetcher
	workers    int
	timeout    time.Duration
	jobs       chan Job

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewPool creates a worker pool with the given worker count and queue size.
func NewPool(prefetcher Prefetcher, workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		prefetcher: prefetcher,
		workers:    workers,
		timeout:    defaultJobTimeout,
		jobs:       make(chan Job, queueSize),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop closes the queue and waits for queued jobs to drain.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// Submit queues a prefetch without blocking. It reports false when the queue
// is full or the pool has been stopped.
func (p *Pool) Submit(trackID string) (Job, bool) {
	job := Job{ID: uuid.NewString(), TrackID: trackID}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return Job{}, false
	}

	select {
	case p.jobs <- job:
		return job, true
	default:
		log.Printf("WARN worker: dropping job for %s", trackID)
		return Job{}, false
	}
}

func (p *Pool) processJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	start := time.Now()
	if err := p.prefetcher.Prefetch(ctx, job.TrackID); err != nil {
		log.Printf("WARN worker: job %s failed for track %s: %v", job.ID, job.TrackID, err)
		return
	}
	log.Printf("💾 Prefetched analysis for track %s (job %s, %s)", job.TrackID, job.ID, time.Since(start).Round(time.Millisecond))
}
