// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package threaded exposes a thread-bound graphics backend as a device that
// any goroutine may call.
//
// A Device owns one owner thread: a goroutine locked to an OS thread that
// creates the backend and is the only code that ever touches it. Every
// operation is forwarded to that thread and the caller blocks until it has
// run, so results, errors and panics come back exactly as if the backend had
// been called directly. Calls from one goroutine execute in issue order.
//
// Disposal is not forwarded. AddDispose* only queue the handle and return at
// once, which makes them safe to call from finalizers. The queues are drained
// on the owner thread during SwapBuffers, right after the backend presents,
// and once more when the device is closed.
//
// Basic usage:
//
//	import _ "github.com/gogpu/gldevice/backend/software"
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
// The backend is chosen by WithBackend, then by the GLDEVICE_BACKEND
// environment variable, then by registry priority.
//
// Forwarding a call from inside code already running on the owner thread,
// for example from a function passed to Invoke, deadlocks.
package threaded
