// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software provides an in-memory reference implementation of
// gldevice.Device.
//
// The device keeps every resource in host memory: the back buffer and
// textures as image.RGBA or image.Gray levels, buffers as byte slices.
// Effects are WGSL sources compiled to SPIR-V with naga. Draw calls are
// validated and counted but not rasterized; occlusion queries report the
// number of primitives submitted while they were active.
//
// Like a native context, a software device belongs to the goroutine that
// created it. Every method checks this and panics with a *gldevice.OwnerError
// when called from elsewhere, which makes it a strict stand-in for a
// thread-bound driver in tests. Use the threaded package to call it from
// arbitrary goroutines.
//
// Importing the package registers it with the backend registry under
// backend.BackendSoftware.
package software
