// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/gldevice"
)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	// Native > Software (Software is the fallback).
	backendPriority = []string{BackendNative, BackendSoftware}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
	gldevice.Logger().Debug("backend: registered", "name", name)
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Lookup returns the factory registered under name.
// The error wraps ErrBackendNotAvailable if there is none.
func Lookup(name string) (Factory, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return f, nil
}

// Default returns the name and factory of the best available backend based
// on priority, falling back to the first registered name in sorted order.
// Returns ErrBackendNotAvailable if no backends are registered.
func Default() (string, Factory, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if f, ok := factories[name]; ok {
			return name, f, nil
		}
	}

	// Fallback: first registered name, for a stable choice.
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", nil, ErrBackendNotAvailable
	}
	sort.Strings(names)
	return names[0], factories[names[0]], nil
}

// Select resolves a backend by name. An empty name consults EnvBackend, and
// if that is unset too, Default is used. It returns the resolved name.
func Select(name string) (string, Factory, error) {
	if name == "" {
		name = FromEnv()
	}
	if name == "" {
		return Default()
	}
	f, err := Lookup(name)
	if err != nil {
		return "", nil, err
	}
	return name, f, nil
}
