// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gldevice

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// SurfaceFormat is the pixel format of textures, render targets and the back
// buffer. It is the WebGPU texture format shared with the rest of the gogpu
// ecosystem.
type SurfaceFormat = gputypes.TextureFormat

// ResourceKind identifies the kind of a device resource. Each kind has its own
// deferred disposal queue.
type ResourceKind uint8

const (
	// KindTexture is a 2D, 3D or cube texture.
	KindTexture ResourceKind = iota

	// KindRenderbuffer is a color or depth/stencil renderbuffer.
	KindRenderbuffer

	// KindVertexBuffer is a vertex buffer.
	KindVertexBuffer

	// KindIndexBuffer is an index buffer.
	KindIndexBuffer

	// KindEffect is a compiled effect (shader program).
	KindEffect

	// KindQuery is an occlusion query.
	KindQuery

	// NumResourceKinds is the number of resource kinds.
	NumResourceKinds = int(KindQuery) + 1
)

// String returns the string representation of ResourceKind.
func (k ResourceKind) String() string {
	switch k {
	case KindTexture:
		return "Texture"
	case KindRenderbuffer:
		return "Renderbuffer"
	case KindVertexBuffer:
		return "VertexBuffer"
	case KindIndexBuffer:
		return "IndexBuffer"
	case KindEffect:
		return "Effect"
	case KindQuery:
		return "Query"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// DepthFormat is the format of a depth/stencil buffer.
type DepthFormat uint8

const (
	// DepthFormatNone means no depth buffer.
	DepthFormatNone DepthFormat = iota

	// DepthFormatDepth16 is a 16-bit depth buffer.
	DepthFormatDepth16

	// DepthFormatDepth24 is a 24-bit depth buffer.
	DepthFormatDepth24

	// DepthFormatDepth24Stencil8 is a 24-bit depth buffer with 8-bit stencil.
	DepthFormatDepth24Stencil8
)

// String returns the string representation of DepthFormat.
func (f DepthFormat) String() string {
	switch f {
	case DepthFormatNone:
		return "None"
	case DepthFormatDepth16:
		return "Depth16"
	case DepthFormatDepth24:
		return "Depth24"
	case DepthFormatDepth24Stencil8:
		return "Depth24Stencil8"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// PrimitiveType is the topology of submitted geometry.
type PrimitiveType uint8

const (
	PrimitiveTriangleList PrimitiveType = iota
	PrimitiveTriangleStrip
	PrimitiveLineList
	PrimitiveLineStrip
	PrimitivePointList
)

// VertexCount returns the number of vertices needed to draw primitiveCount
// primitives of this type.
func (p PrimitiveType) VertexCount(primitiveCount int) int {
	switch p {
	case PrimitiveTriangleList:
		return primitiveCount * 3
	case PrimitiveTriangleStrip:
		return primitiveCount + 2
	case PrimitiveLineList:
		return primitiveCount * 2
	case PrimitiveLineStrip:
		return primitiveCount + 1
	case PrimitivePointList:
		return primitiveCount
	default:
		return 0
	}
}

// IndexElementSize is the width of an index buffer element.
type IndexElementSize uint8

const (
	IndexElementSize16 IndexElementSize = iota
	IndexElementSize32
)

// Bytes returns the size of one index in bytes.
func (s IndexElementSize) Bytes() int {
	if s == IndexElementSize32 {
		return 4
	}
	return 2
}

// BufferUsage hints how a buffer is accessed.
type BufferUsage uint8

const (
	BufferUsageNone BufferUsage = iota
	BufferUsageWriteOnly
)

// SetDataOptions controls how buffer uploads interact with in-flight draws.
type SetDataOptions uint8

const (
	SetDataNone SetDataOptions = iota
	SetDataDiscard
	SetDataNoOverwrite
)

// ClearOptions selects which buffers Clear affects.
type ClearOptions uint8

const (
	ClearTarget ClearOptions = 1 << iota
	ClearDepthBuffer
	ClearStencil
)

// CubeMapFace selects one face of a cube texture.
type CubeMapFace uint8

const (
	CubeMapPositiveX CubeMapFace = iota
	CubeMapNegativeX
	CubeMapPositiveY
	CubeMapNegativeY
	CubeMapPositiveZ
	CubeMapNegativeZ
)

// PresentInterval is the swap interval used by SwapBuffers.
type PresentInterval uint8

const (
	PresentIntervalDefault PresentInterval = iota
	PresentIntervalOne
	PresentIntervalTwo
	PresentIntervalImmediate
)

// ColorWriteChannels is a mask of color channels written by draws.
type ColorWriteChannels uint8

const (
	ColorWriteRed ColorWriteChannels = 1 << iota
	ColorWriteGreen
	ColorWriteBlue
	ColorWriteAlpha

	ColorWriteNone ColorWriteChannels = 0
	ColorWriteAll                     = ColorWriteRed | ColorWriteGreen | ColorWriteBlue | ColorWriteAlpha
)

// FillMode selects solid or wireframe rasterization.
type FillMode uint8

const (
	FillSolid FillMode = iota
	FillWireFrame
)

// TextureFilter selects texture sampling filtering.
type TextureFilter uint8

const (
	FilterLinear TextureFilter = iota
	FilterPoint
	FilterAnisotropic
	FilterLinearMipPoint
	FilterPointMipLinear
)

// TextureAddressMode selects how out-of-range texture coordinates resolve.
type TextureAddressMode uint8

const (
	AddressWrap TextureAddressMode = iota
	AddressClamp
	AddressMirror
)

// Rect is an integer rectangle in pixels.
type Rect struct {
	X, Y, W, H int
}

// Viewport describes the viewport transform.
type Viewport struct {
	X, Y, Width, Height int
	MinDepth, MaxDepth  float32
}

// BlendState is the output merger blend configuration.
type BlendState struct {
	// Blend holds the color and alpha blend components.
	Blend gputypes.BlendState

	// ColorWriteChannels masks the channels written to render target 0.
	ColorWriteChannels ColorWriteChannels

	// BlendFactor is the constant blend color.
	BlendFactor gputypes.Color

	// MultiSampleMask is the sample coverage mask.
	MultiSampleMask int32
}

// DefaultBlendState returns premultiplied alpha blending writing all channels.
func DefaultBlendState() BlendState {
	return BlendState{
		Blend:              gputypes.BlendStatePremultiplied(),
		ColorWriteChannels: ColorWriteAll,
		BlendFactor:        gputypes.Color{R: 1, G: 1, B: 1, A: 1},
		MultiSampleMask:    -1,
	}
}

// DepthStencilState is the depth and stencil test configuration.
type DepthStencilState struct {
	DepthBufferEnable      bool
	DepthBufferWriteEnable bool
	DepthBufferFunction    gputypes.CompareFunction

	StencilEnable    bool
	StencilFunction  gputypes.CompareFunction
	ReferenceStencil int
	StencilMask      int32
	StencilWriteMask int32
}

// DefaultDepthStencilState returns a state with depth and stencil disabled.
func DefaultDepthStencilState() DepthStencilState {
	return DepthStencilState{
		DepthBufferFunction: gputypes.CompareFunctionAlways,
		StencilFunction:     gputypes.CompareFunctionAlways,
		StencilMask:         -1,
		StencilWriteMask:    -1,
	}
}

// RasterizerState is the rasterizer configuration.
type RasterizerState struct {
	CullMode             gputypes.CullMode
	FillMode             FillMode
	DepthBias            float32
	SlopeScaleDepthBias  float32
	ScissorTestEnable    bool
	MultiSampleAntiAlias bool
}

// SamplerState is the per-slot texture sampler configuration.
type SamplerState struct {
	Filter                  TextureFilter
	AddressU                TextureAddressMode
	AddressV                TextureAddressMode
	AddressW                TextureAddressMode
	MaxAnisotropy           int
	MaxMipLevel             int
	MipMapLevelOfDetailBias float32
}

// VertexElement describes one attribute in a vertex layout.
type VertexElement struct {
	Offset     int
	Format     gputypes.VertexFormat
	UsageIndex int
}

// VertexBufferBinding binds a vertex buffer with its layout to an input slot.
type VertexBufferBinding struct {
	Buffer            Buffer
	Stride            int
	Elements          []VertexElement
	VertexOffset      int
	InstanceFrequency int
}

// RenderTargetBinding selects a texture (and cube face) as a color target.
// Renderbuffer, when set, is the multisample color buffer resolved into
// Texture by ResolveTarget.
type RenderTargetBinding struct {
	Texture      Texture
	Face         CubeMapFace
	LevelCount   int
	Renderbuffer Renderbuffer
}

// PresentationParameters configures the back buffer.
type PresentationParameters struct {
	BackBufferWidth      int
	BackBufferHeight     int
	BackBufferFormat     SurfaceFormat
	DepthStencilFormat   DepthFormat
	MultiSampleCount     int
	PresentationInterval PresentInterval

	// DeviceWindowHandle is the native window the device presents to.
	// Zero means an offscreen device.
	DeviceWindowHandle uintptr
}

// Capabilities reports backend limits and optional features.
type Capabilities struct {
	Renderer string

	MaxTextureSlots       int
	MaxVertexTextureSlots int
	MaxTextureSize        int
	MaxMultiSampleCount   int

	SupportsHardwareInstancing bool
	SupportsNoOverwrite        bool
	SupportsDXT1               bool
	SupportsS3TC               bool
	SupportsSRGBRenderTargets  bool
}
