// Package parallel fans queued jobs out to a fixed set of workers.
package parallel

import (
	"runtime"
	"sync"
)

// Pool runs queued jobs on a fixed number of goroutines. A single-worker
// pool runs jobs inline on the caller, so slicing stays deterministic when
// concurrency is turned off.
type Pool struct {
	jobs chan func()
	wg   sync.WaitGroup
	stop sync.Once
}

// New starts a pool of the given size; sizes below one mean one worker per
// available CPU.
func New(workers int) *Pool {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{}
	if workers == 1 {
		return p
	}

	p.jobs = make(chan func(), workers)
	for range workers {
		p.wg.Go(func() {
			for f := range p.jobs {
				f()
			}
		})
	}
	return p
}

// Do queues f, blocking while all workers are busy. On a single-worker
// pool it runs f before returning.
func (p *Pool) Do(f func()) {
	if p.jobs == nil {
		f()
		return
	}
	p.jobs <- f
}

// Wait stops intake and blocks until every queued job has finished. Calling
// Wait more than once is fine; calling Do afterwards is not.
func (p *Pool) Wait() {
	if p.jobs == nil {
		return
	}
	p.stop.Do(func() { close(p.jobs) })
	p.wg.Wait()
}
