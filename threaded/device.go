// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package threaded

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/gldevice"
	"github.com/gogpu/gldevice/backend"
	"github.com/gogpu/gldevice/internal/mainthread"
	"github.com/gogpu/gldevice/internal/reclaim"
)

// Device is a gldevice.Device that may be used from any goroutine.
type Device struct {
	loop *mainthread.Loop
	name string

	// backend is written and read only on the owner thread.
	backend    gldevice.Device
	releaseErr error

	garbage     reclaim.Set
	disposed    [gldevice.NumResourceKinds]atomic.Uint64
	checkpoints atomic.Uint64

	closeOnce sync.Once
	closeErr  error
}

var _ gldevice.Device = (*Device)(nil)

// Stats holds device counters.
type Stats struct {
	// Backend is the name of the backend, or "custom" for WithFactory.
	Backend string

	// Forwarded is the number of calls executed on the owner thread.
	Forwarded uint64

	// Panics is the number of forwarded calls that panicked.
	Panics uint64

	// Wakes is the number of times the owner thread woke up to drain calls.
	Wakes uint64

	// Checkpoints is the number of disposal drains: one per SwapBuffers and
	// a final one at Close.
	Checkpoints uint64

	// Disposed is the number of handles destroyed per resource kind.
	Disposed [gldevice.NumResourceKinds]uint64

	// PendingDisposals is the number of queued handles per resource kind.
	PendingDisposals reclaim.DrainStats
}

// New starts an owner thread and creates the backend on it.
//
// The backend factory is resolved once: WithFactory, else WithBackend, else
// the GLDEVICE_BACKEND environment variable, else the registry default. A
// factory error, typically wrapping gldevice.ErrUnsupported, stops the owner
// thread and is returned.
func New(params gldevice.PresentationParameters, opts ...Option) (*Device, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	name, factory := "custom", o.factory
	if factory == nil {
		var err error
		name, factory, err = backend.Select(o.backend)
		if err != nil {
			return nil, err
		}
	}

	d := &Device{name: name}
	d.loop = mainthread.New(d.release)

	created := false
	defer func() {
		if !created {
			_ = d.loop.Shutdown()
		}
	}()

	err := d.loop.Call(func() error {
		b, err := factory(params)
		if err != nil {
			return err
		}
		d.backend = b
		return nil
	})
	if err != nil {
		gldevice.Logger().Warn("threaded: backend creation failed", "backend", name, "err", err)
		return nil, err
	}
	created = true

	gldevice.Logger().Info("threaded: device created", "backend", name)
	return d, nil
}

// release disposes the backend on the owner thread after shutdown.
func (d *Device) release() {
	if d.backend == nil {
		return
	}
	d.checkpoint(d.backend)
	if err := d.backend.Close(); err != nil {
		gldevice.Logger().Warn("threaded: backend close failed", "backend", d.name, "err", err)
		d.releaseErr = err
	}
	d.backend = nil
}

// checkpoint destroys every queued handle. Owner thread only.
func (d *Device) checkpoint(b gldevice.Device) {
	st := d.garbage.DrainAll(b)
	for kind, n := range st {
		d.disposed[kind].Add(uint64(n))
	}
	d.checkpoints.Add(1)
}

// Close stops the owner thread. Calls forwarded before Close still run, then
// outstanding disposals are drained and the backend is closed. Close is
// idempotent and returns the backend's close error, if any.
func (d *Device) Close() error {
	d.closeOnce.Do(func() {
		if err := d.loop.Shutdown(); err != nil {
			d.closeErr = err
			return
		}
		d.closeErr = d.releaseErr
		gldevice.Logger().Info("threaded: device closed",
			"backend", d.name, "forwarded", d.loop.Stats().Executed)
	})
	return d.closeErr
}

// Invoke runs fn on the owner thread with the backend and waits for it.
// fn must not forward calls through d.
func (d *Device) Invoke(fn func(gldevice.Device) error) error {
	return d.loop.Call(func() error { return fn(d.backend) })
}

// Run runs fn on the owner thread with the backend and returns its result.
// fn must not forward calls through d.
func Run[T any](d *Device, fn func(gldevice.Device) (T, error)) (T, error) {
	return mainthread.Do(d.loop, func() (T, error) { return fn(d.backend) })
}

// Backend returns the name of the backend.
func (d *Device) Backend() string {
	return d.name
}

// Stats returns a snapshot of the device counters.
func (d *Device) Stats() Stats {
	ls := d.loop.Stats()
	st := Stats{
		Backend:          d.name,
		Forwarded:        ls.Executed,
		Panics:           ls.Panics,
		Wakes:            ls.Wakes,
		Checkpoints:      d.checkpoints.Load(),
		PendingDisposals: d.garbage.Pending(),
	}
	for kind := range st.Disposed {
		st.Disposed[kind] = d.disposed[kind].Load()
	}
	return st
}

// exec forwards an operation without an error result. It panics with
// gldevice.ErrDeviceClosed once the device is closed.
func (d *Device) exec(fn func(b gldevice.Device)) {
	if err := d.loop.Call(func() error {
		fn(d.backend)
		return nil
	}); err != nil {
		panic(err)
	}
}

// value forwards an operation returning a value without an error. It panics
// with gldevice.ErrDeviceClosed once the device is closed.
func value[T any](d *Device, fn func(b gldevice.Device) T) T {
	v, err := mainthread.Do(d.loop, func() (T, error) { return fn(d.backend), nil })
	if err != nil {
		panic(err)
	}
	return v
}
