// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/gldevice"
)

// toImageRect converts r, or the full bounds when r is nil, and checks it
// lies inside bounds.
func toImageRect(r *gldevice.Rect, bounds image.Rectangle) (image.Rectangle, bool) {
	if r == nil {
		return bounds, true
	}
	ir := image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
	return ir, r.W > 0 && r.H > 0 && ir.In(bounds)
}

// SwapBuffers copies the back buffer to the front buffer, scaling the source
// rectangle onto the destination rectangle when they differ.
func (d *Device) SwapBuffers(sourceRect, destinationRect *gldevice.Rect, overrideWindow uintptr) error {
	d.enter("SwapBuffers")

	src, ok := toImageRect(sourceRect, d.back.Bounds())
	if !ok {
		return outOfRange("swap source rect %+v", *sourceRect)
	}
	dst, ok := toImageRect(destinationRect, d.front.Bounds())
	if !ok {
		return outOfRange("swap destination rect %+v", *destinationRect)
	}

	if src.Size() == dst.Size() {
		draw.Draw(d.front, dst, d.back, src.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(d.front, dst, d.back, src, draw.Src, nil)
	}

	if overrideWindow != 0 && overrideWindow != d.lastWindow {
		gldevice.Logger().Debug("software: presenting to override window", "window", overrideWindow)
	}
	d.lastWindow = overrideWindow
	d.stats.Frames++
	return nil
}

// ResetBackbuffer reallocates the back buffer. Render target bindings are
// reset to the back buffer.
func (d *Device) ResetBackbuffer(params gldevice.PresentationParameters) error {
	d.enter("ResetBackbuffer")
	if err := d.allocBackbuffer(params); err != nil {
		return err
	}
	gldevice.Logger().Debug("software: back buffer reset",
		"width", params.BackBufferWidth, "height", params.BackBufferHeight)
	return nil
}

// ReadBackbuffer copies a w x h region of the back buffer at (x, y) into
// data as tightly packed texels.
func (d *Device) ReadBackbuffer(x, y, w, h int, data []byte) error {
	d.enter("ReadBackbuffer")
	r := image.Rect(x, y, x+w, y+h)
	if w <= 0 || h <= 0 || !r.In(d.back.Bounds()) {
		return outOfRange("read back buffer rect %v", r)
	}
	n := d.backInfo.rowBytes(w) * h
	if len(data) < n {
		return outOfRange("read back buffer needs %d bytes, have %d", n, len(data))
	}
	draw.Draw(d.backInfo.wrap(data[:n], w, h), image.Rect(0, 0, w, h), d.back, r.Min, draw.Src)
	return nil
}

func (d *Device) BackbufferSize() (w, h int) {
	d.enter("BackbufferSize")
	return d.params.BackBufferWidth, d.params.BackBufferHeight
}

func (d *Device) BackbufferFormat() gldevice.SurfaceFormat {
	d.enter("BackbufferFormat")
	return d.params.BackBufferFormat
}

func (d *Device) BackbufferDepthFormat() gldevice.DepthFormat {
	d.enter("BackbufferDepthFormat")
	return d.params.DepthStencilFormat
}

func (d *Device) BackbufferMultiSampleCount() int {
	d.enter("BackbufferMultiSampleCount")
	return d.params.MultiSampleCount
}

func (d *Device) SetPresentationInterval(interval gldevice.PresentInterval) {
	d.enter("SetPresentationInterval")
	d.interval = interval
}
