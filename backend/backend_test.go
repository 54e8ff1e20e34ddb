// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gldevice"
)

var errFactory = errors.New("test factory")

func testFactory(params gldevice.PresentationParameters) (gldevice.Device, error) {
	return nil, errFactory
}

// isolate swaps in an empty registry for the duration of the test.
func isolate(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := factories
	factories = make(map[string]Factory)
	registryMu.Unlock()

	t.Cleanup(func() {
		registryMu.Lock()
		factories = saved
		registryMu.Unlock()
	})
}

func TestRegisterAndLookup(t *testing.T) {
	isolate(t)

	if IsRegistered("test") {
		t.Fatal("IsRegistered(test) = true before Register")
	}
	Register("test", testFactory)
	if !IsRegistered("test") {
		t.Fatal("IsRegistered(test) = false after Register")
	}

	f, err := Lookup("test")
	if err != nil {
		t.Fatalf("Lookup(test) error = %v", err)
	}
	if _, err := f(gldevice.PresentationParameters{}); !errors.Is(err, errFactory) {
		t.Errorf("factory() error = %v, want %v", err, errFactory)
	}

	Unregister("test")
	if _, err := Lookup("test"); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Lookup() after Unregister error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestAvailableSorted(t *testing.T) {
	isolate(t)
	Register("zeta", testFactory)
	Register("alpha", testFactory)

	got := Available()
	want := []string{"alpha", "zeta"}
	if !slices.Equal(got, want) {
		t.Errorf("Available() = %v, want %v", got, want)
	}
}

func TestDefaultPriority(t *testing.T) {
	tests := []struct {
		name       string
		registered []string
		want       string
		wantErr    error
	}{
		{"empty", nil, "", ErrBackendNotAvailable},
		{"software only", []string{BackendSoftware}, BackendSoftware, nil},
		{"native wins", []string{BackendSoftware, BackendNative}, BackendNative, nil},
		{"fallback sorted", []string{"zeta", "beta"}, "beta", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for _, n := range tt.registered {
				Register(n, testFactory)
			}

			got, f, err := Default()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Default() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Default() = %q, want %q", got, tt.want)
			}
			if tt.wantErr == nil && f == nil {
				t.Error("Default() returned nil factory")
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvBackend, "  Software ")
	if got := FromEnv(); got != BackendSoftware {
		t.Errorf("FromEnv() = %q, want %q", got, BackendSoftware)
	}

	t.Setenv(EnvBackend, "")
	if got := FromEnv(); got != "" {
		t.Errorf("FromEnv() = %q, want empty", got)
	}
}

func TestSelect(t *testing.T) {
	isolate(t)
	Register(BackendSoftware, testFactory)
	Register("custom", testFactory)

	t.Run("explicit name", func(t *testing.T) {
		t.Setenv(EnvBackend, BackendSoftware)
		name, _, err := Select("custom")
		if err != nil || name != "custom" {
			t.Errorf("Select(custom) = %q, %v, want custom, nil", name, err)
		}
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(EnvBackend, "custom")
		name, _, err := Select("")
		if err != nil || name != "custom" {
			t.Errorf("Select() = %q, %v, want custom, nil", name, err)
		}
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvBackend, "")
		name, _, err := Select("")
		if err != nil || name != BackendSoftware {
			t.Errorf("Select() = %q, %v, want %q, nil", name, err, BackendSoftware)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		t.Setenv(EnvBackend, "vulkan")
		if _, _, err := Select(""); !errors.Is(err, ErrBackendNotAvailable) {
			t.Errorf("Select() error = %v, want ErrBackendNotAvailable", err)
		}
	})
}
