// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build linux

package affinity

import "golang.org/x/sys/unix"

// OSThreadID returns the kernel id of the OS thread running the caller.
// The result is only stable for goroutines locked with runtime.LockOSThread.
func OSThreadID() (uint64, bool) {
	//nolint:gosec // G115: thread ids are positive
	return uint64(unix.Gettid()), true
}
