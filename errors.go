// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gldevice

import (
	"errors"
	"fmt"
)

// Common device errors.
var (
	// ErrUnsupported is returned when a backend cannot provide a requested
	// feature. Raised during device creation it is fatal.
	ErrUnsupported = errors.New("gldevice: unsupported feature")

	// ErrDeviceClosed is returned when an operation is forwarded to a device
	// whose owner thread has already terminated.
	ErrDeviceClosed = errors.New("gldevice: device closed")

	// ErrNotOwner is raised when a backend is touched from a goroutine other
	// than the one that owns it.
	ErrNotOwner = errors.New("gldevice: called off the owner thread")

	// ErrResourceDestroyed is returned when operating on a destroyed resource.
	ErrResourceDestroyed = errors.New("gldevice: resource has been destroyed")

	// ErrInvalidHandle is returned when a handle was not created by the
	// backend it is passed to.
	ErrInvalidHandle = errors.New("gldevice: invalid handle")

	// ErrOutOfRange is returned when an offset, size or index falls outside
	// the bounds of a resource.
	ErrOutOfRange = errors.New("gldevice: out of range")
)

// OwnerError reports an affinity violation: a backend method was invoked on a
// goroutine other than its owner.
type OwnerError struct {
	// Op is the backend operation that was called.
	Op string

	// Owner is the goroutine id that owns the backend.
	Owner uint64

	// Caller is the goroutine id that made the call.
	Caller uint64
}

// Error implements the error interface.
func (e *OwnerError) Error() string {
	return fmt.Sprintf("%v: %s on goroutine %d, owner is goroutine %d",
		ErrNotOwner, e.Op, e.Caller, e.Owner)
}

// Unwrap returns ErrNotOwner so that errors.Is(err, ErrNotOwner) holds.
func (e *OwnerError) Unwrap() error {
	return ErrNotOwner
}
