// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gldevice defines a graphics device capability interface whose
// implementations must be driven from a single owner thread.
//
// # Overview
//
// A native graphics context (OpenGL and friends) belongs to the OS thread that
// created it. gldevice describes the device surface as a Go interface,
// [Device], and the threaded package implements that interface on top of any
// backend so that arbitrary goroutines can call it as if it were
// free-threaded:
//
//	dev, err := threaded.New(gldevice.PresentationParameters{
//		BackBufferWidth:  800,
//		BackBufferHeight: 600,
//		BackBufferFormat: gputypes.TextureFormatRGBA8Unorm,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
//
//	dev.SetBlendFactor(gputypes.Color{R: 1, A: 1})
//	dev.Clear(gldevice.ClearTarget, gputypes.Color{B: 1, A: 1}, 1, 0)
//	_ = dev.SwapBuffers(nil, nil, 0)
//
// # Architecture
//
//   - gldevice: capability interface, handle types, state payloads, errors
//   - threaded: device facade forwarding every call to the owner thread
//   - backend: backend registry and the GLDEVICE_BACKEND toggle
//   - backend/software: in-memory reference backend
//
// # Resource Disposal
//
// AddDispose* calls never block. On a threaded device they only queue the
// handle; the owner thread destroys queued handles during the next
// SwapBuffers, after the real swap completes. Once a handle has been passed to
// AddDispose* the caller must not use it again or dispose it a second time.
//
// # Logging
//
// gldevice is silent by default. Use [SetLogger] to enable diagnostics.
package gldevice

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
