// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package parallel runs batches of independent jobs on a fixed set of worker
// goroutines.
//
// It drives the producer side of a threaded device: jobs create, fill and
// drop resources concurrently while another goroutine presents frames.
package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gldevice"
)

// ErrPoolClosed is returned for jobs submitted after Close.
var ErrPoolClosed = errors.New("parallel: pool closed")

// Job is one unit of work.
type Job func() error

// Pool is a set of worker goroutines with per-worker queues. An idle worker
// steals from the other queues before blocking on its own.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	executed atomic.Uint64
	panics   atomic.Uint64
}

// New starts a pool. If workers is 0 or negative, GOMAXPROCS is used.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(8, workers*4)

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case fn := <-own:
			fn()
			continue
		default:
		}

		if fn := p.steal(id); fn != nil {
			fn()
			continue
		}

		select {
		case <-p.done:
			p.drain(own)
			return
		case fn := <-own:
			fn()
		}
	}
}

func (p *Pool) drain(queue chan func()) {
	for {
		select {
		case fn := <-queue:
			fn()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

// Batch tracks the jobs handed to one Start call.
type Batch struct {
	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

func (b *Batch) fail(err error) {
	b.mu.Lock()
	b.errs = append(b.errs, err)
	b.mu.Unlock()
}

// Wait blocks until every job of the batch has finished and returns their
// errors joined, or nil.
func (b *Batch) Wait() error {
	b.wg.Wait()
	b.mu.Lock()
	defer b.mu.Unlock()
	return errors.Join(b.errs...)
}

// Start distributes jobs round-robin and returns without waiting.
//
// A job that panics is reported as an error of its batch; the worker keeps
// running. Jobs submitted after Close fail with ErrPoolClosed. Start must not
// race with Close.
func (p *Pool) Start(jobs []Job) *Batch {
	b := &Batch{}
	if !p.running.Load() {
		if len(jobs) > 0 {
			b.fail(ErrPoolClosed)
		}
		return b
	}

	b.wg.Add(len(jobs))
	for i, job := range jobs {
		fn := func() {
			defer b.wg.Done()
			if err := p.run(i, job); err != nil {
				b.fail(err)
			}
		}
		select {
		case p.queues[i%p.workers] <- fn:
		case <-p.done:
			b.fail(ErrPoolClosed)
			b.wg.Done()
		}
	}
	return b
}

// Run distributes jobs and waits for them.
func (p *Pool) Run(jobs []Job) error {
	return p.Start(jobs).Wait()
}

func (p *Pool) run(index int, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.panics.Add(1)
			gldevice.Logger().Error("parallel: job panicked",
				"job", index, "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("parallel: job %d panicked: %v", index, r)
		}
	}()
	p.executed.Add(1)
	return job()
}

// Close stops accepting jobs, finishes the queued ones and joins the
// workers. It is safe to call more than once.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Executed returns the number of jobs run so far.
func (p *Pool) Executed() uint64 {
	return p.executed.Load()
}

// Panics returns the number of jobs that panicked.
func (p *Pool) Panics() uint64 {
	return p.panics.Load()
}
