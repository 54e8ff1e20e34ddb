// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package threaded

import "github.com/gogpu/gldevice/backend"

// Option configures a Device during creation.
//
// Example:
//
//	// Use the environment or registry default
//	dev, err := threaded.New(params)
//
//	// Force a registered backend
//	dev, err := threaded.New(params, threaded.WithBackend("software"))
type Option func(*options)

// options holds optional configuration for Device creation.
type options struct {
	backend string
	factory backend.Factory
}

// WithBackend selects a registered backend by name. It takes precedence over
// the GLDEVICE_BACKEND environment variable.
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithFactory creates the backend with f instead of consulting the registry.
// f is called on the owner thread.
func WithFactory(f backend.Factory) Option {
	return func(o *options) {
		o.factory = f
	}
}
