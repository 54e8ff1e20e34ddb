// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mainthread runs closures on a single owner goroutine pinned to one
// OS thread and lets any goroutine call into it synchronously.
//
// The loop cycles WAITING -> DRAINING -> WAITING until an action sets the
// shutdown flag; it then terminates once the pending queue is observed empty,
// runs its release hook exactly once and exits.
//
// Calling Call (or anything built on it) from inside an action running on the
// loop deadlocks: the owner thread cannot service its own queue while it is
// executing. This is a usage contract and is not detected.
package mainthread

import (
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gldevice"
	"github.com/gogpu/gldevice/internal/affinity"
)

// workItem is one forwarded call and its completion signal.
type workItem struct {
	fn         func() error
	err        error
	panicValue any
	panicked   bool
	done       chan struct{}
}

// Stats holds loop counters.
type Stats struct {
	// Submitted is the number of accepted calls.
	Submitted uint64

	// Executed is the number of calls run on the owner thread.
	Executed uint64

	// Panics is the number of calls that panicked.
	Panics uint64

	// Wakes is the number of times the loop left its wait state.
	Wakes uint64
}

// Loop is an owner thread and its call queue.
type Loop struct {
	// mu guards pending and closed. It is the only lock shared between
	// callers and the owner thread.
	mu      sync.Mutex
	pending []*workItem
	closed  bool

	// spare is the owner thread's drained batch, reused as the next pending
	// slice. Owner thread only.
	spare []*workItem

	// wake is a binary semaphore raised after every enqueue.
	wake chan struct{}

	// shutdown is set by an action on the owner thread. Owner thread only.
	shutdown bool

	// exited is closed after the release hook has run.
	exited  chan struct{}
	release func()

	owner    affinity.Owner
	osThread atomic.Uint64

	submitted atomic.Uint64
	executed  atomic.Uint64
	panics    atomic.Uint64
	wakes     atomic.Uint64
}

// New starts an owner thread. release runs on the owner thread exactly once,
// after shutdown, before the thread exits; it may be nil.
func New(release func()) *Loop {
	l := &Loop{
		wake:    make(chan struct{}, 1),
		exited:  make(chan struct{}),
		release: release,
	}
	started := make(chan struct{})
	go l.run(started)
	<-started
	return l
}

// run is the owner thread.
func (l *Loop) run(started chan<- struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	l.owner.Bind()
	if tid, ok := affinity.OSThreadID(); ok {
		l.osThread.Store(tid)
	}
	gldevice.Logger().Debug("mainthread: owner thread started",
		"goroutine", l.owner.ID(), "thread", l.osThread.Load())
	close(started)

	for {
		<-l.wake
		l.wakes.Add(1)
		l.drain()
		if l.shutdown && l.tryClose() {
			break
		}
	}

	l.runRelease()
	l.owner.Release()
	gldevice.Logger().Debug("mainthread: owner thread terminated",
		"executed", l.executed.Load())
	close(l.exited)
}

// drain swaps the pending queue out and runs every captured item in order.
func (l *Loop) drain() {
	l.mu.Lock()
	batch := l.pending
	l.pending = l.spare
	l.mu.Unlock()

	for i, w := range batch {
		l.execute(w)
		batch[i] = nil
	}
	l.spare = batch[:0]
}

// tryClose marks the loop closed if nothing is pending. Items enqueued before
// this check are still drained; items after it are rejected by Call.
func (l *Loop) tryClose() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.pending) > 0 {
		return false
	}
	l.closed = true
	return true
}

// execute runs one item and releases its caller.
func (l *Loop) execute(w *workItem) {
	defer close(w.done)
	defer func() {
		if r := recover(); r != nil {
			w.panicked = true
			w.panicValue = r
			l.panics.Add(1)
			gldevice.Logger().Error("mainthread: forwarded call panicked",
				"panic", r, "stack", string(debug.Stack()))
		}
	}()
	l.executed.Add(1)
	w.err = w.fn()
}

// runRelease invokes the release hook, logging instead of crashing the
// process if it panics.
func (l *Loop) runRelease() {
	if l.release == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			gldevice.Logger().Error("mainthread: release hook panicked",
				"panic", r, "stack", string(debug.Stack()))
		}
	}()
	l.release()
}

// Call runs fn on the owner thread and blocks until it has finished.
//
// The error returned by fn is returned unchanged. If fn panics, the panic is
// recovered on the owner thread and re-raised here with the original value;
// the loop keeps running. Calls are executed exactly once, in the order their
// enqueue acquired the queue lock. There is no timeout or cancellation.
//
// Call returns gldevice.ErrDeviceClosed without running fn once the loop has
// terminated. Calling Call from the owner thread deadlocks.
func (l *Loop) Call(fn func() error) error {
	w := &workItem{fn: fn, done: make(chan struct{})}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return gldevice.ErrDeviceClosed
	}
	l.pending = append(l.pending, w)
	l.submitted.Add(1)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
		// A wake is already pending; the loop will pick this item up
		// with the same drain.
	}

	<-w.done
	if w.panicked {
		panic(w.panicValue)
	}
	return w.err
}

// Do runs fn on the owner thread and returns its result.
// It has the same semantics as Call; the result travels back through the
// completion handoff rather than through caller-side shared variables.
func Do[T any](l *Loop, fn func() (T, error)) (T, error) {
	var v T
	err := l.Call(func() error {
		var err error
		v, err = fn()
		return err
	})
	return v, err
}

// Shutdown sets the shutdown flag from the owner thread and joins it.
// Every call enqueued before the shutdown action is executed first.
// Shutdown returns gldevice.ErrDeviceClosed if the loop already terminated.
func (l *Loop) Shutdown() error {
	err := l.Call(func() error {
		l.shutdown = true
		return nil
	})
	if err != nil {
		return err
	}
	<-l.exited
	return nil
}

// Done returns a channel closed once the owner thread has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.exited
}

// OnOwner reports whether the caller is running on the owner thread.
func (l *Loop) OnOwner() bool {
	return l.owner.IsCurrent()
}

// OwnerThreadID returns the OS thread id of the owner thread where the
// platform exposes one.
func (l *Loop) OwnerThreadID() (uint64, bool) {
	tid := l.osThread.Load()
	return tid, tid != 0
}

// Stats returns a snapshot of the loop counters.
func (l *Loop) Stats() Stats {
	return Stats{
		Submitted: l.submitted.Load(),
		Executed:  l.executed.Load(),
		Panics:    l.panics.Load(),
		Wakes:     l.wakes.Load(),
	}
}
