// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mainthread

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogpu/gldevice"
	"github.com/gogpu/gldevice/internal/affinity"
)

func newTestLoop(t *testing.T) *Loop {
	t.Helper()
	l := New(nil)
	t.Cleanup(func() { _ = l.Shutdown() })
	return l
}

// waitSubmitted spins until the loop has accepted n calls.
func waitSubmitted(t *testing.T, l *Loop, n uint64) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for l.Stats().Submitted < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d submitted calls, have %d", n, l.Stats().Submitted)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestCallRunsOnOwner(t *testing.T) {
	l := newTestLoop(t)

	if l.OnOwner() {
		t.Error("OnOwner() = true on the test goroutine")
	}

	var onOwner bool
	if err := l.Call(func() error {
		onOwner = l.OnOwner()
		return nil
	}); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if !onOwner {
		t.Error("OnOwner() = false inside a forwarded call")
	}
}

func TestCallPreservesIssueOrder(t *testing.T) {
	l := newTestLoop(t)

	const n = 500
	var got []int
	for i := 0; i < n; i++ {
		if err := l.Call(func() error {
			got = append(got, i)
			return nil
		}); err != nil {
			t.Fatalf("Call(%d) error = %v", i, err)
		}
	}

	if len(got) != n {
		t.Fatalf("executed %d calls, want %d", len(got), n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("call %d executed at position %d", v, i)
		}
	}
}

func TestConcurrentCallsExactlyOnce(t *testing.T) {
	l := newTestLoop(t)

	const callers = 64
	const perCaller = 50
	counts := make([]int, callers*perCaller)

	var wg sync.WaitGroup
	for c := 0; c < callers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := -1
			for i := 0; i < perCaller; i++ {
				id := c*perCaller + i
				if err := l.Call(func() error {
					// Owner thread only: no synchronization needed.
					counts[id]++
					if id <= last {
						return errors.New("out of order")
					}
					last = id
					return nil
				}); err != nil {
					t.Errorf("Call() error = %v", err)
				}
			}
		}()
	}
	wg.Wait()

	for id, c := range counts {
		if c != 1 {
			t.Errorf("call %d executed %d times, want 1", id, c)
		}
	}

	st := l.Stats()
	if st.Executed != callers*perCaller {
		t.Errorf("Stats().Executed = %d, want %d", st.Executed, callers*perCaller)
	}
	if st.Wakes == 0 || st.Wakes > st.Submitted {
		t.Errorf("Stats().Wakes = %d, want 1..%d", st.Wakes, st.Submitted)
	}
}

func TestCallReturnsActionError(t *testing.T) {
	l := newTestLoop(t)

	errFault := errors.New("simulated backend fault")
	if err := l.Call(func() error { return errFault }); err != errFault {
		t.Errorf("Call() error = %v, want %v", err, errFault)
	}

	// The loop keeps serving after a failure.
	if err := l.Call(func() error { return nil }); err != nil {
		t.Errorf("Call() after failure error = %v", err)
	}
}

func TestCallRepanicsOnCaller(t *testing.T) {
	l := newTestLoop(t)

	type fault struct{ code int }
	want := &fault{code: 7}

	func() {
		defer func() {
			r := recover()
			if r != want {
				t.Errorf("recovered %v, want original panic value %v", r, want)
			}
		}()
		_ = l.Call(func() error { panic(want) })
		t.Error("Call() returned instead of panicking")
	}()

	if err := l.Call(func() error { return nil }); err != nil {
		t.Errorf("Call() after panic error = %v", err)
	}
	if got := l.Stats().Panics; got != 1 {
		t.Errorf("Stats().Panics = %d, want 1", got)
	}
}

func TestDoReturnsValue(t *testing.T) {
	l := newTestLoop(t)

	v, err := Do(l, func() (string, error) { return "owner", nil })
	if err != nil || v != "owner" {
		t.Errorf("Do() = %q, %v, want %q, nil", v, err, "owner")
	}

	errFault := errors.New("fault")
	n, err := Do(l, func() (int, error) { return 3, errFault })
	if !errors.Is(err, errFault) {
		t.Errorf("Do() error = %v, want %v", err, errFault)
	}
	if n != 3 {
		t.Errorf("Do() value = %d, want 3", n)
	}
}

func TestCallersReleasedIncrementally(t *testing.T) {
	l := newTestLoop(t)

	// Hold the owner thread so that the next calls queue up behind it.
	gate := make(chan struct{})
	go func() { _ = l.Call(func() error { <-gate; return nil }) }()
	waitSubmitted(t, l, 1)

	firstReleased := make(chan struct{})
	go func() {
		_ = l.Call(func() error { return nil })
		close(firstReleased)
	}()
	waitSubmitted(t, l, 2)

	secondErr := make(chan error, 1)
	go func() {
		secondErr <- l.Call(func() error {
			select {
			case <-firstReleased:
				return nil
			case <-time.After(5 * time.Second):
				return errors.New("first caller not released before second call ran")
			}
		})
	}()
	waitSubmitted(t, l, 3)

	close(gate)
	if err := <-secondErr; err != nil {
		t.Error(err)
	}
}

func TestShutdownDrainsPendingCalls(t *testing.T) {
	var released atomic.Int32
	var releasedOnOwner atomic.Bool
	var l *Loop
	l = New(func() {
		released.Add(1)
		releasedOnOwner.Store(l.OnOwner())
	})

	gate := make(chan struct{})
	go func() { _ = l.Call(func() error { <-gate; return nil }) }()
	waitSubmitted(t, l, 1)

	const queued = 20
	var executed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < queued; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Call(func() error {
				executed.Add(1)
				return nil
			}); err != nil {
				t.Errorf("queued Call() error = %v", err)
			}
		}()
	}
	waitSubmitted(t, l, 1+queued)

	shutdownDone := make(chan error, 1)
	go func() { shutdownDone <- l.Shutdown() }()
	waitSubmitted(t, l, 2+queued)
	close(gate)

	if err := <-shutdownDone; err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	wg.Wait()

	if got := executed.Load(); got != queued {
		t.Errorf("executed %d queued calls before shutdown, want %d", got, queued)
	}
	if got := released.Load(); got != 1 {
		t.Errorf("release hook ran %d times, want 1", got)
	}
	if !releasedOnOwner.Load() {
		t.Error("release hook did not run on the owner thread")
	}

	select {
	case <-l.Done():
	default:
		t.Error("Done() not closed after Shutdown")
	}
}

func TestCallAfterShutdown(t *testing.T) {
	l := New(nil)
	if err := l.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	ran := false
	if err := l.Call(func() error { ran = true; return nil }); !errors.Is(err, gldevice.ErrDeviceClosed) {
		t.Errorf("Call() after shutdown error = %v, want ErrDeviceClosed", err)
	}
	if ran {
		t.Error("Call() after shutdown executed its action")
	}
	if err := l.Shutdown(); !errors.Is(err, gldevice.ErrDeviceClosed) {
		t.Errorf("second Shutdown() error = %v, want ErrDeviceClosed", err)
	}
}

func TestReleaseHookPanicDoesNotHang(t *testing.T) {
	l := New(func() { panic("release failed") })
	done := make(chan error, 1)
	go func() { done <- l.Shutdown() }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Shutdown() hung after release hook panic")
	}
}

func TestOwnerStaysOnOneOSThread(t *testing.T) {
	l := newTestLoop(t)

	owner, ok := l.OwnerThreadID()
	if !ok {
		t.Skip("OS thread ids not available on this platform")
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				tid, err := Do(l, func() (uint64, error) {
					id, _ := affinity.OSThreadID()
					return id, nil
				})
				if err != nil {
					t.Errorf("Do() error = %v", err)
					return
				}
				if tid != owner {
					t.Errorf("call ran on OS thread %d, owner is %d", tid, owner)
					return
				}
			}
		}()
	}
	wg.Wait()
}
