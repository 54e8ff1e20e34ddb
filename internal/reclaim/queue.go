// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package reclaim defers resource destruction to the owner thread.
//
// Producers on any goroutine push handles without blocking and without taking
// a lock. The owner thread drains every queue at a synchronization checkpoint
// and destroys each handle exactly once.
package reclaim

import "sync/atomic"

// node is one queued handle.
type node[T any] struct {
	value T
	next  *node[T]
}

// Queue is an unbounded lock-free multi-producer, single-consumer queue.
//
// Push may be called from any goroutine. Drain must only be called from one
// goroutine at a time (the owner thread). The zero value is an empty queue.
type Queue[T any] struct {
	head    atomic.Pointer[node[T]]
	pending atomic.Int64
}

// Push appends v. It never blocks and never waits for the consumer.
func (q *Queue[T]) Push(v T) {
	n := &node[T]{value: v}
	q.pending.Add(1)
	for {
		old := q.head.Load()
		n.next = old
		if q.head.CompareAndSwap(old, n) {
			return
		}
	}
}

// Drain detaches every handle pushed so far and calls fn for each, oldest
// first. Handles pushed after the detach, including from inside fn, are left
// for the next Drain. It returns the number of handles passed to fn.
func (q *Queue[T]) Drain(fn func(T)) int {
	n := q.head.Swap(nil)
	if n == nil {
		return 0
	}

	// The list is newest first; reverse it so handles go out in push order.
	var ordered *node[T]
	count := 0
	for n != nil {
		next := n.next
		n.next = ordered
		ordered = n
		n = next
		count++
	}
	q.pending.Add(-int64(count))

	for n := ordered; n != nil; n = n.next {
		fn(n.value)
	}
	return count
}

// Pending returns the approximate number of queued handles.
func (q *Queue[T]) Pending() int {
	return int(q.pending.Load())
}
