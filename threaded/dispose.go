// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package threaded

import "github.com/gogpu/gldevice"

// The AddDispose* methods queue a handle for destruction at the next
// SwapBuffers and return immediately. They never block on the owner thread
// and may be called from any goroutine, including finalizers. A handle must
// not be used or disposed again after it is queued.
//
// After Close the backend is gone: handles queued then are never destroyed.
// They stay counted in Stats().PendingDisposals and each one is logged at
// Debug.

func (d *Device) AddDisposeTexture(tex gldevice.Texture) {
	d.garbage.AddDisposeTexture(tex)
	d.checkLate(gldevice.KindTexture)
}

func (d *Device) AddDisposeRenderbuffer(rb gldevice.Renderbuffer) {
	d.garbage.AddDisposeRenderbuffer(rb)
	d.checkLate(gldevice.KindRenderbuffer)
}

func (d *Device) AddDisposeVertexBuffer(buf gldevice.Buffer) {
	d.garbage.AddDisposeVertexBuffer(buf)
	d.checkLate(gldevice.KindVertexBuffer)
}

func (d *Device) AddDisposeIndexBuffer(buf gldevice.Buffer) {
	d.garbage.AddDisposeIndexBuffer(buf)
	d.checkLate(gldevice.KindIndexBuffer)
}

func (d *Device) AddDisposeEffect(effect gldevice.Effect) {
	d.garbage.AddDisposeEffect(effect)
	d.checkLate(gldevice.KindEffect)
}

func (d *Device) AddDisposeQuery(query gldevice.Query) {
	d.garbage.AddDisposeQuery(query)
	d.checkLate(gldevice.KindQuery)
}

// checkLate logs a disposal queued after the owner thread exited.
func (d *Device) checkLate(kind gldevice.ResourceKind) {
	select {
	case <-d.loop.Done():
		gldevice.Logger().Debug("threaded: disposal after close is never destroyed",
			"backend", d.name, "kind", kind)
	default:
	}
}
