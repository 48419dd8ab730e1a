package workerpool

import (
	"sync"
)

// A Job is a unit of work submitted to a Pool. A non-nil return value
// is recorded and surfaced by Wait.
type Job func() error

// Pool runs Jobs across a fixed number of goroutines. The zero value is
// not usable; construct with New.
type Pool struct {
	jobs    chan Job
	stopped chan struct{}

	wg       sync.WaitGroup
	stopOnce sync.Once

	m   sync.Mutex
	err error
}

// New returns a Pool running jobs across n goroutines.
func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{
		// unbuffered: jobs are handed directly to an idle worker, so
		// Stop can account for every job that never started.
		jobs:    make(chan Job),
		stopped: make(chan struct{}),
	}
	for i := 0; i < n; i++ {
		go p.work()
	}
	return p
}

// Add submits jobs without blocking the caller.
func (p *Pool) Add(jobs []Job) {
	p.wg.Add(len(jobs))
	go p.feed(jobs)
}

// AddBlocking submits jobs, blocking until each has been handed to a worker.
func (p *Pool) AddBlocking(jobs []Job) {
	p.wg.Add(len(jobs))
	p.feed(jobs)
}

// Wait blocks until all submitted jobs have finished or the pool is stopped,
// and returns the first error returned by any job.
func (p *Pool) Wait() error {
	p.wg.Wait()
	p.m.Lock()
	defer p.m.Unlock()
	return p.err
}

// Stop prevents jobs that have not started from running. Jobs already
// running are not interrupted. Stop is idempotent.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopped)
	})
}

func (p *Pool) feed(jobs []Job) {
	for _, job := range jobs {
		select {
		case p.jobs <- job:
		case <-p.stopped:
			// job will never run
			p.wg.Done()
		}
	}
}

func (p *Pool) work() {
	for {
		select {
		case <-p.stopped:
			return
		case job := <-p.jobs:
			p.run(job)
		}
	}
}

func (p *Pool) run(job Job) {
	defer p.wg.Done()
	if err := job(); err != nil {
		p.m.Lock()
		if p.err == nil {
			p.err = err
		}
		p.m.Unlock()
	}
}
