// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

// Option configures a Device during creation.
type Option func(*options)

type options struct {
	strictAffinity bool
}

func defaultOptions() options {
	return options{strictAffinity: true}
}

// WithStrictAffinity controls the owner goroutine check. When enabled (the
// default) every method panics with a *gldevice.OwnerError if it is called
// from a goroutine other than the one that created the device.
func WithStrictAffinity(strict bool) Option {
	return func(o *options) {
		o.strictAffinity = strict
	}
}
