package workerpool

import "sync"

// Job is a unit of work run by the pool.
type Job func() error

// Pool runs jobs on a fixed number of workers. Add never blocks the caller;
// Wait blocks until every added job has either run or been cancelled by Stop.
type Pool struct {
	jobs    chan Job
	quit    chan struct{}
	pending sync.WaitGroup
	stop    sync.Once
}

// New starts a pool with n workers.
func New(n int) *Pool {
	p := &Pool{
		jobs: make(chan Job),
		quit: make(chan struct{}),
	}
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

// Add enqueues jobs for execution.
func (p *Pool) Add(jobs []Job) {
	p.pending.Add(len(jobs))
	go func() {
		for i, job := range jobs {
			select {
			case p.jobs <- job:
			case <-p.quit:
				p.pending.Add(-(len(jobs) - i))
				return
			}
		}
	}()
}

// Wait blocks until all added jobs have run or been cancelled.
func (p *Pool) Wait() {
	p.pending.Wait()
}

// Stop discards jobs that have not started and releases the workers.
// In-flight jobs run to completion.
func (p *Pool) Stop() {
	p.stop.Do(func() {
		close(p.quit)
	})
}

func (p *Pool) worker() {
	for {
		select {
		case job := <-p.jobs:
			job()
			p.pending.Done()
		case <-p.quit:
			return
		}
	}
}
