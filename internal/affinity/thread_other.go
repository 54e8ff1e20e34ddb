// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !linux

package affinity

// OSThreadID is not available on this platform.
func OSThreadID() (uint64, bool) {
	return 0, false
}
