// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gldevice

import (
	"github.com/gogpu/gputypes"
)

// Resource is an opaque backend resource handle.
// Handles are created and interpreted only by the backend that issued them.
type Resource interface {
	// Kind returns the resource kind of the handle.
	Kind() ResourceKind
}

// Texture is an opaque 2D, 3D or cube texture handle.
type Texture interface {
	Resource

	// Format returns the texture pixel format.
	Format() SurfaceFormat

	// LevelCount returns the number of mipmap levels.
	LevelCount() int
}

// Renderbuffer is an opaque color or depth/stencil renderbuffer handle.
type Renderbuffer interface {
	Resource
}

// Buffer is an opaque vertex or index buffer handle.
type Buffer interface {
	Resource

	// Size returns the buffer size in bytes.
	Size() int
}

// Effect is an opaque compiled effect handle.
type Effect interface {
	Resource
}

// Query is an opaque occlusion query handle.
type Query interface {
	Resource
}

// Disposer is the disposal half of a Device.
//
// On a backend these calls destroy the resource immediately and must run on
// the owner thread. On a threaded device they only queue the handle and may be
// called from any goroutine, including finalizers. Either way the caller
// relinquishes the handle: it must not be used or disposed again.
type Disposer interface {
	AddDisposeTexture(tex Texture)
	AddDisposeRenderbuffer(rb Renderbuffer)
	AddDisposeVertexBuffer(buf Buffer)
	AddDisposeIndexBuffer(buf Buffer)
	AddDisposeEffect(effect Effect)
	AddDisposeQuery(query Query)
}

// Device is the full graphics device capability surface.
//
// A backend implementation is bound to the thread that created it and must
// only be called from that thread. The threaded package wraps any Device so
// it can be called from arbitrary goroutines.
//
// Methods returning an error report backend failures. Methods without an
// error result have no failure mode besides a backend panic.
type Device interface {
	Disposer

	// Presentation

	// SwapBuffers presents the back buffer. sourceRect and destinationRect
	// may be nil to present the full buffer; overrideWindow may be zero.
	SwapBuffers(sourceRect, destinationRect *Rect, overrideWindow uintptr) error
	ResetBackbuffer(params PresentationParameters) error
	ReadBackbuffer(x, y, w, h int, data []byte) error
	BackbufferSize() (w, h int)
	BackbufferFormat() SurfaceFormat
	BackbufferDepthFormat() DepthFormat
	BackbufferMultiSampleCount() int
	SetPresentationInterval(interval PresentInterval)

	// Drawing

	Clear(options ClearOptions, color gputypes.Color, depth float32, stencil int)
	DrawPrimitives(primitive PrimitiveType, vertexStart, primitiveCount int) error
	DrawIndexedPrimitives(primitive PrimitiveType, baseVertex, minVertexIndex, numVertices,
		startIndex, primitiveCount int, indices Buffer, elementSize IndexElementSize) error
	DrawInstancedPrimitives(primitive PrimitiveType, baseVertex, minVertexIndex, numVertices,
		startIndex, primitiveCount, instanceCount int, indices Buffer, elementSize IndexElementSize) error

	// State

	SetViewport(viewport Viewport)
	SetScissorRect(scissor Rect)
	GetBlendFactor() gputypes.Color
	SetBlendFactor(factor gputypes.Color)
	GetMultiSampleMask() int32
	SetMultiSampleMask(mask int32)
	GetReferenceStencil() int
	SetReferenceStencil(ref int)
	SetBlendState(state BlendState)
	SetDepthStencilState(state DepthStencilState)
	ApplyRasterizerState(state RasterizerState)
	VerifySampler(index int, tex Texture, sampler SamplerState) error
	ApplyVertexBufferBindings(bindings []VertexBufferBinding, bindingsUpdated bool, baseVertex int) error

	// Render targets

	// SetRenderTargets binds color targets and an optional depth/stencil
	// renderbuffer. An empty targets slice rebinds the back buffer.
	SetRenderTargets(targets []RenderTargetBinding, depthStencil Renderbuffer, depthFormat DepthFormat) error
	ResolveTarget(target RenderTargetBinding) error

	// Textures

	CreateTexture2D(format SurfaceFormat, width, height, levelCount int, isRenderTarget bool) (Texture, error)
	CreateTexture3D(format SurfaceFormat, width, height, depth, levelCount int) (Texture, error)
	CreateTextureCube(format SurfaceFormat, size, levelCount int, isRenderTarget bool) (Texture, error)
	SetTextureData2D(tex Texture, x, y, w, h, level int, data []byte) error
	SetTextureData3D(tex Texture, x, y, z, w, h, d, level int, data []byte) error
	SetTextureDataCube(tex Texture, x, y, w, h int, face CubeMapFace, level int, data []byte) error
	GetTextureData2D(tex Texture, x, y, w, h, level int, data []byte) error
	GetTextureDataCube(tex Texture, x, y, w, h int, face CubeMapFace, level int, data []byte) error

	// Renderbuffers

	GenColorRenderbuffer(width, height int, format SurfaceFormat, multiSampleCount int, tex Texture) (Renderbuffer, error)
	GenDepthStencilRenderbuffer(width, height int, format DepthFormat, multiSampleCount int) (Renderbuffer, error)

	// Vertex and index buffers

	GenVertexBuffer(dynamic bool, usage BufferUsage, sizeInBytes int) (Buffer, error)
	SetVertexBufferData(buf Buffer, offset int, data []byte, options SetDataOptions) error
	GetVertexBufferData(buf Buffer, offset int, data []byte) error
	GenIndexBuffer(dynamic bool, usage BufferUsage, sizeInBytes int) (Buffer, error)
	SetIndexBufferData(buf Buffer, offset int, data []byte, options SetDataOptions) error
	GetIndexBufferData(buf Buffer, offset int, data []byte) error

	// Effects

	CreateEffect(code []byte) (Effect, error)
	CloneEffect(effect Effect) (Effect, error)
	SetEffectTechnique(effect Effect, technique int) error
	ApplyEffect(effect Effect, pass int) error
	BeginPassRestore(effect Effect) error
	EndPassRestore(effect Effect) error

	// Queries

	CreateQuery() (Query, error)
	QueryBegin(query Query)
	QueryEnd(query Query)
	QueryComplete(query Query) bool
	QueryPixelCount(query Query) int

	// Capabilities

	Capabilities() Capabilities
	MaxMultiSampleCount(format SurfaceFormat, multiSampleCount int) int
	SetStringMarker(text string)

	// Close releases the device and every resource it still owns.
	Close() error
}
