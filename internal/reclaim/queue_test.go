// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package reclaim

import (
	"sync"
	"testing"
)

func TestQueueDrainEmpty(t *testing.T) {
	var q Queue[int]
	if n := q.Drain(func(int) { t.Error("fn called on empty queue") }); n != 0 {
		t.Errorf("Drain() = %d, want 0", n)
	}
	if q.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", q.Pending())
	}
}

func TestQueueDrainOrder(t *testing.T) {
	var q Queue[int]
	for i := 0; i < 10; i++ {
		q.Push(i)
	}
	if q.Pending() != 10 {
		t.Errorf("Pending() = %d, want 10", q.Pending())
	}

	var got []int
	if n := q.Drain(func(v int) { got = append(got, v) }); n != 10 {
		t.Errorf("Drain() = %d, want 10", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("Drain() order = %v, want push order", got)
		}
	}
	if q.Pending() != 0 {
		t.Errorf("Pending() after Drain = %d, want 0", q.Pending())
	}
}

func TestQueueConcurrentPushExactlyOnce(t *testing.T) {
	var q Queue[int]

	const producers = 16
	const perProducer = 1000
	seen := make([]int, producers*perProducer)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(p*perProducer + i)
			}
		}()
	}

	// Drain concurrently with the producers, as the owner thread would.
	stop := make(chan struct{})
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for {
			select {
			case <-stop:
				q.Drain(func(v int) { seen[v]++ })
				return
			default:
				q.Drain(func(v int) { seen[v]++ })
			}
		}
	}()

	wg.Wait()
	close(stop)
	<-drained

	for v, n := range seen {
		if n != 1 {
			t.Errorf("handle %d drained %d times, want 1", v, n)
		}
	}
}

func TestQueuePushDuringDrainDeferred(t *testing.T) {
	var q Queue[int]
	q.Push(1)
	q.Push(2)

	var first []int
	q.Drain(func(v int) {
		first = append(first, v)
		q.Push(v + 10)
	})
	if len(first) != 2 {
		t.Fatalf("first Drain() saw %v, want [1 2]", first)
	}
	if q.Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", q.Pending())
	}

	var second []int
	q.Drain(func(v int) { second = append(second, v) })
	if len(second) != 2 || second[0] != 11 || second[1] != 12 {
		t.Errorf("second Drain() = %v, want [11 12]", second)
	}
}
