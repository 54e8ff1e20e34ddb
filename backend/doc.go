// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend provides a pluggable device backend registry.
//
// A backend is a gldevice.Device implementation bound to the thread that
// creates it. Backends are registered by name via init() functions and
// selected at runtime. The software backend registers itself on import:
//
//	import _ "github.com/gogpu/gldevice/backend/software"
//
// # Backend Selection
//
// Select resolves a backend by explicit name, then by the GLDEVICE_BACKEND
// environment variable, then by priority:
//
//	name, factory, err := backend.Select("")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Factories are not called here. The threaded package calls the selected
// factory on its owner thread so that the device is created and used on the
// same OS thread.
//
// # Available Backends
//
// - "software": in-memory reference device (always available)
// - "native": driver-backed device, registered by an external package
package backend
