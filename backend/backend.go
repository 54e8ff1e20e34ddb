// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"
	"os"
	"strings"

	"github.com/gogpu/gldevice"
)

// Backend names.
const (
	// BackendNative is a driver-backed device bound to a native context.
	BackendNative = "native"

	// BackendSoftware is the in-memory reference device (always available).
	BackendSoftware = "software"
)

// EnvBackend is the environment variable that selects a backend by name.
const EnvBackend = "GLDEVICE_BACKEND"

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Factory creates a backend device for the given presentation parameters.
//
// A factory is invoked on the thread that will own the device; the returned
// device must only be used from that thread. A factory returns an error
// wrapping gldevice.ErrUnsupported when the parameters ask for a feature the
// backend cannot provide.
type Factory func(params gldevice.PresentationParameters) (gldevice.Device, error)

// FromEnv returns the backend name from EnvBackend, trimmed and lower-cased.
// An empty string means no preference.
func FromEnv() string {
	return strings.ToLower(strings.TrimSpace(os.Getenv(EnvBackend)))
}
