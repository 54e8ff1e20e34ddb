// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package affinity identifies goroutines and OS threads so that code bound to
// a single owner can assert it is running there.
package affinity

import (
	"runtime"
	"sync/atomic"
)

// GoroutineID returns the current goroutine's id.
func GoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] >= '0' && buf[i] <= '9' {
			id = id*10 + uint64(buf[i]-'0')
		} else {
			break
		}
	}
	return id
}

// Owner records the goroutine that owns a resource.
// The zero value is unbound. Owner is safe for concurrent use.
type Owner struct {
	id atomic.Uint64
}

// Bind makes the calling goroutine the owner.
func (o *Owner) Bind() {
	o.id.Store(GoroutineID())
}

// Release clears the owner.
func (o *Owner) Release() {
	o.id.Store(0)
}

// ID returns the owning goroutine id, or 0 if unbound.
func (o *Owner) ID() uint64 {
	return o.id.Load()
}

// IsCurrent reports whether the calling goroutine is the owner.
// An unbound Owner is never current.
func (o *Owner) IsCurrent() bool {
	id := o.id.Load()
	return id != 0 && id == GoroutineID()
}
