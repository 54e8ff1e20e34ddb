// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package threaded

import (
	"errors"

	"github.com/gogpu/gldevice"
	"github.com/gogpu/gldevice/backend"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Provider exposes a Device to gogpu packages that accept a
// gpucontext.DeviceProvider.
type Provider struct {
	d *Device
}

var _ gpucontext.DeviceProvider = (*Provider)(nil)

// Provider returns a gpucontext.DeviceProvider backed by d.
func (d *Device) Provider() *Provider {
	return &Provider{d: d}
}

// Device returns a *HostDevice. gpucontext.Device is a type token, so
// consumers reach Poll and Destroy by asserting the result:
//
//	if hd, ok := provider.Device().(interface{ Poll(bool); Destroy() }); ok {
//		hd.Poll(true)
//	}
func (p *Provider) Device() gpucontext.Device {
	return &HostDevice{d: p.d}
}

// Queue returns the host-side queue. Submissions go through the Device.
func (p *Provider) Queue() gpucontext.Queue {
	return hostQueue{}
}

// Adapter returns nil: a threaded device does not expose its adapter.
func (p *Provider) Adapter() gpucontext.Adapter {
	return nil
}

// AdapterInfo reports the backend renderer name. The software backend is
// reported as gpucontext.AdapterTypeSoftware; other backends as
// gpucontext.AdapterTypeUnknown. After Close the name is the backend name.
func (p *Provider) AdapterInfo() gpucontext.AdapterInfo {
	info := gpucontext.AdapterInfo{Name: p.d.name, Type: gpucontext.AdapterTypeUnknown}
	if p.d.name == backend.BackendSoftware {
		info.Type = gpucontext.AdapterTypeSoftware
	}
	caps, err := Run(p.d, func(b gldevice.Device) (gldevice.Capabilities, error) {
		return b.Capabilities(), nil
	})
	if err == nil && caps.Renderer != "" {
		info.Name = caps.Renderer
	}
	return info
}

// SurfaceFormat returns the back buffer format.
func (p *Provider) SurfaceFormat() gputypes.TextureFormat {
	return p.d.BackbufferFormat()
}

// HostDevice is the gpucontext.Device handed out by Provider.
type HostDevice struct {
	d *Device
}

// Poll forwards an empty call. Calls are synchronous, so once it returns
// every call forwarded before it has completed; wait is irrelevant.
func (h *HostDevice) Poll(wait bool) {
	err := h.d.Invoke(func(gldevice.Device) error { return nil })
	if err != nil && !errors.Is(err, gldevice.ErrDeviceClosed) {
		gldevice.Logger().Warn("threaded: poll failed", "err", err)
	}
}

// Destroy closes the device.
func (h *HostDevice) Destroy() {
	if err := h.d.Close(); err != nil {
		gldevice.Logger().Warn("threaded: destroy failed", "err", err)
	}
}

type hostQueue struct{}
