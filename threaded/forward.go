// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package threaded

import (
	"github.com/gogpu/gldevice"
	"github.com/gogpu/gputypes"
)

// Presentation

// SwapBuffers presents on the owner thread, then destroys every handle queued
// by AddDispose* before the caller is released. The queues are drained even
// if the backend reports an error.
func (d *Device) SwapBuffers(sourceRect, destinationRect *gldevice.Rect, overrideWindow uintptr) error {
	return d.Invoke(func(b gldevice.Device) error {
		err := b.SwapBuffers(sourceRect, destinationRect, overrideWindow)
		d.checkpoint(b)
		return err
	})
}

func (d *Device) ResetBackbuffer(params gldevice.PresentationParameters) error {
	return d.Invoke(func(b gldevice.Device) error { return b.ResetBackbuffer(params) })
}

func (d *Device) ReadBackbuffer(x, y, w, h int, data []byte) error {
	return d.Invoke(func(b gldevice.Device) error { return b.ReadBackbuffer(x, y, w, h, data) })
}

func (d *Device) BackbufferSize() (w, h int) {
	d.exec(func(b gldevice.Device) { w, h = b.BackbufferSize() })
	return w, h
}

func (d *Device) BackbufferFormat() gldevice.SurfaceFormat {
	return value(d, gldevice.Device.BackbufferFormat)
}

func (d *Device) BackbufferDepthFormat() gldevice.DepthFormat {
	return value(d, gldevice.Device.BackbufferDepthFormat)
}

func (d *Device) BackbufferMultiSampleCount() int {
	return value(d, gldevice.Device.BackbufferMultiSampleCount)
}

func (d *Device) SetPresentationInterval(interval gldevice.PresentInterval) {
	d.exec(func(b gldevice.Device) { b.SetPresentationInterval(interval) })
}

// Drawing

func (d *Device) Clear(options gldevice.ClearOptions, color gputypes.Color, depth float32, stencil int) {
	d.exec(func(b gldevice.Device) { b.Clear(options, color, depth, stencil) })
}

func (d *Device) DrawPrimitives(primitive gldevice.PrimitiveType, vertexStart, primitiveCount int) error {
	return d.Invoke(func(b gldevice.Device) error {
		return b.DrawPrimitives(primitive, vertexStart, primitiveCount)
	})
}

func (d *Device) DrawIndexedPrimitives(primitive gldevice.PrimitiveType, baseVertex, minVertexIndex, numVertices,
	startIndex, primitiveCount int, indices gldevice.Buffer, elementSize gldevice.IndexElementSize,
) error {
	return d.Invoke(func(b gldevice.Device) error {
		return b.DrawIndexedPrimitives(primitive, baseVertex, minVertexIndex, numVertices,
			startIndex, primitiveCount, indices, elementSize)
	})
}

func (d *Device) DrawInstancedPrimitives(primitive gldevice.PrimitiveType, baseVertex, minVertexIndex, numVertices,
	startIndex, primitiveCount, instanceCount int, indices gldevice.Buffer, elementSize gldevice.IndexElementSize,
) error {
	return d.Invoke(func(b gldevice.Device) error {
		return b.DrawInstancedPrimitives(primitive, baseVertex, minVertexIndex, numVertices,
			startIndex, primitiveCount, instanceCount, indices, elementSize)
	})
}

// State

func (d *Device) SetViewport(viewport gldevice.Viewport) {
	d.exec(func(b gldevice.Device) { b.SetViewport(viewport) })
}

func (d *Device) SetScissorRect(scissor gldevice.Rect) {
	d.exec(func(b gldevice.Device) { b.SetScissorRect(scissor) })
}

func (d *Device) GetBlendFactor() gputypes.Color {
	return value(d, gldevice.Device.GetBlendFactor)
}

func (d *Device) SetBlendFactor(factor gputypes.Color) {
	d.exec(func(b gldevice.Device) { b.SetBlendFactor(factor) })
}

func (d *Device) GetMultiSampleMask() int32 {
	return value(d, gldevice.Device.GetMultiSampleMask)
}

func (d *Device) SetMultiSampleMask(mask int32) {
	d.exec(func(b gldevice.Device) { b.SetMultiSampleMask(mask) })
}

func (d *Device) GetReferenceStencil() int {
	return value(d, gldevice.Device.GetReferenceStencil)
}

func (d *Device) SetReferenceStencil(ref int) {
	d.exec(func(b gldevice.Device) { b.SetReferenceStencil(ref) })
}

func (d *Device) SetBlendState(state gldevice.BlendState) {
	d.exec(func(b gldevice.Device) { b.SetBlendState(state) })
}

func (d *Device) SetDepthStencilState(state gldevice.DepthStencilState) {
	d.exec(func(b gldevice.Device) { b.SetDepthStencilState(state) })
}

func (d *Device) ApplyRasterizerState(state gldevice.RasterizerState) {
	d.exec(func(b gldevice.Device) { b.ApplyRasterizerState(state) })
}

func (d *Device) VerifySampler(index int, tex gldevice.Texture, sampler gldevice.SamplerState) error {
	return d.Invoke(func(b gldevice.Device) error { return b.VerifySampler(index, tex, sampler) })
}

func (d *Device) ApplyVertexBufferBindings(bindings []gldevice.VertexBufferBinding, bindingsUpdated bool, baseVertex int) error {
	return d.Invoke(func(b gldevice.Device) error {
		return b.ApplyVertexBufferBindings(bindings, bindingsUpdated, baseVertex)
	})
}

// Render targets

func (d *Device) SetRenderTargets(targets []gldevice.RenderTargetBinding, depthStencil gldevice.Renderbuffer,
	depthFormat gldevice.DepthFormat,
) error {
	return d.Invoke(func(b gldevice.Device) error {
		return b.SetRenderTargets(targets, depthStencil, depthFormat)
	})
}

func (d *Device) ResolveTarget(target gldevice.RenderTargetBinding) error {
	return d.Invoke(func(b gldevice.Device) error { return b.ResolveTarget(target) })
}

// Textures

func (d *Device) CreateTexture2D(format gldevice.SurfaceFormat, width, height, levelCount int,
	isRenderTarget bool,
) (gldevice.Texture, error) {
	return Run(d, func(b gldevice.Device) (gldevice.Texture, error) {
		return b.CreateTexture2D(format, width, height, levelCount, isRenderTarget)
	})
}

func (d *Device) CreateTexture3D(format gldevice.SurfaceFormat, width, height, depth, levelCount int) (gldevice.Texture, error) {
	return Run(d, func(b gldevice.Device) (gldevice.Texture, error) {
		return b.CreateTexture3D(format, width, height, depth, levelCount)
	})
}

func (d *Device) CreateTextureCube(format gldevice.SurfaceFormat, size, levelCount int,
	isRenderTarget bool,
) (gldevice.Texture, error) {
	return Run(d, func(b gldevice.Device) (gldevice.Texture, error) {
		return b.CreateTextureCube(format, size, levelCount, isRenderTarget)
	})
}

func (d *Device) SetTextureData2D(tex gldevice.Texture, x, y, w, h, level int, data []byte) error {
	return d.Invoke(func(b gldevice.Device) error {
		return b.SetTextureData2D(tex, x, y, w, h, level, data)
	})
}

func (d *Device) SetTextureData3D(tex gldevice.Texture, x, y, z, w, h, depth, level int, data []byte) error {
	return d.Invoke(func(b gldevice.Device) error {
		return b.SetTextureData3D(tex, x, y, z, w, h, depth, level, data)
	})
}

func (d *Device) SetTextureDataCube(tex gldevice.Texture, x, y, w, h int, face gldevice.CubeMapFace,
	level int, data []byte,
) error {
	return d.Invoke(func(b gldevice.Device) error {
		return b.SetTextureDataCube(tex, x, y, w, h, face, level, data)
	})
}

func (d *Device) GetTextureData2D(tex gldevice.Texture, x, y, w, h, level int, data []byte) error {
	return d.Invoke(func(b gldevice.Device) error {
		return b.GetTextureData2D(tex, x, y, w, h, level, data)
	})
}

func (d *Device) GetTextureDataCube(tex gldevice.Texture, x, y, w, h int, face gldevice.CubeMapFace,
	level int, data []byte,
) error {
	return d.Invoke(func(b gldevice.Device) error {
		return b.GetTextureDataCube(tex, x, y, w, h, face, level, data)
	})
}

// Renderbuffers

func (d *Device) GenColorRenderbuffer(width, height int, format gldevice.SurfaceFormat, multiSampleCount int,
	tex gldevice.Texture,
) (gldevice.Renderbuffer, error) {
	return Run(d, func(b gldevice.Device) (gldevice.Renderbuffer, error) {
		return b.GenColorRenderbuffer(width, height, format, multiSampleCount, tex)
	})
}

func (d *Device) GenDepthStencilRenderbuffer(width, height int, format gldevice.DepthFormat,
	multiSampleCount int,
) (gldevice.Renderbuffer, error) {
	return Run(d, func(b gldevice.Device) (gldevice.Renderbuffer, error) {
		return b.GenDepthStencilRenderbuffer(width, height, format, multiSampleCount)
	})
}

// Vertex and index buffers

func (d *Device) GenVertexBuffer(dynamic bool, usage gldevice.BufferUsage, sizeInBytes int) (gldevice.Buffer, error) {
	return Run(d, func(b gldevice.Device) (gldevice.Buffer, error) {
		return b.GenVertexBuffer(dynamic, usage, sizeInBytes)
	})
}

func (d *Device) SetVertexBufferData(buf gldevice.Buffer, offset int, data []byte, options gldevice.SetDataOptions) error {
	return d.Invoke(func(b gldevice.Device) error {
		return b.SetVertexBufferData(buf, offset, data, options)
	})
}

func (d *Device) GetVertexBufferData(buf gldevice.Buffer, offset int, data []byte) error {
	return d.Invoke(func(b gldevice.Device) error { return b.GetVertexBufferData(buf, offset, data) })
}

func (d *Device) GenIndexBuffer(dynamic bool, usage gldevice.BufferUsage, sizeInBytes int) (gldevice.Buffer, error) {
	return Run(d, func(b gldevice.Device) (gldevice.Buffer, error) {
		return b.GenIndexBuffer(dynamic, usage, sizeInBytes)
	})
}

func (d *Device) SetIndexBufferData(buf gldevice.Buffer, offset int, data []byte, options gldevice.SetDataOptions) error {
	return d.Invoke(func(b gldevice.Device) error {
		return b.SetIndexBufferData(buf, offset, data, options)
	})
}

func (d *Device) GetIndexBufferData(buf gldevice.Buffer, offset int, data []byte) error {
	return d.Invoke(func(b gldevice.Device) error { return b.GetIndexBufferData(buf, offset, data) })
}

// Effects

func (d *Device) CreateEffect(code []byte) (gldevice.Effect, error) {
	return Run(d, func(b gldevice.Device) (gldevice.Effect, error) { return b.CreateEffect(code) })
}

func (d *Device) CloneEffect(effect gldevice.Effect) (gldevice.Effect, error) {
	return Run(d, func(b gldevice.Device) (gldevice.Effect, error) { return b.CloneEffect(effect) })
}

func (d *Device) SetEffectTechnique(effect gldevice.Effect, technique int) error {
	return d.Invoke(func(b gldevice.Device) error { return b.SetEffectTechnique(effect, technique) })
}

func (d *Device) ApplyEffect(effect gldevice.Effect, pass int) error {
	return d.Invoke(func(b gldevice.Device) error { return b.ApplyEffect(effect, pass) })
}

func (d *Device) BeginPassRestore(effect gldevice.Effect) error {
	return d.Invoke(func(b gldevice.Device) error { return b.BeginPassRestore(effect) })
}

func (d *Device) EndPassRestore(effect gldevice.Effect) error {
	return d.Invoke(func(b gldevice.Device) error { return b.EndPassRestore(effect) })
}

// Queries

func (d *Device) CreateQuery() (gldevice.Query, error) {
	return Run(d, gldevice.Device.CreateQuery)
}

func (d *Device) QueryBegin(query gldevice.Query) {
	d.exec(func(b gldevice.Device) { b.QueryBegin(query) })
}

func (d *Device) QueryEnd(query gldevice.Query) {
	d.exec(func(b gldevice.Device) { b.QueryEnd(query) })
}

func (d *Device) QueryComplete(query gldevice.Query) bool {
	return value(d, func(b gldevice.Device) bool { return b.QueryComplete(query) })
}

func (d *Device) QueryPixelCount(query gldevice.Query) int {
	return value(d, func(b gldevice.Device) int { return b.QueryPixelCount(query) })
}

// Capabilities

func (d *Device) Capabilities() gldevice.Capabilities {
	return value(d, gldevice.Device.Capabilities)
}

func (d *Device) MaxMultiSampleCount(format gldevice.SurfaceFormat, multiSampleCount int) int {
	return value(d, func(b gldevice.Device) int { return b.MaxMultiSampleCount(format, multiSampleCount) })
}

func (d *Device) SetStringMarker(text string) {
	d.exec(func(b gldevice.Device) { b.SetStringMarker(text) })
}
