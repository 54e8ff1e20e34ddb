// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/gldevice"
	"github.com/gogpu/gldevice/internal/affinity"
	"github.com/gogpu/gputypes"
)

// Device limits.
const (
	maxTextureSlots       = 16
	maxVertexTextureSlots = 4
	maxTextureSize        = 4096
	maxMultiSampleCount   = 8
)

// ErrUnbalancedPass is returned by EndPassRestore without a matching
// BeginPassRestore for the same effect.
var ErrUnbalancedPass = errors.New("software: unbalanced pass restore")

// Stats holds device counters.
type Stats struct {
	// Frames is the number of presented frames.
	Frames uint64

	// Draws is the number of draw calls.
	Draws uint64

	// Primitives is the number of primitives submitted, counting instances.
	Primitives uint64

	// Live is the number of live resources per kind.
	Live [gldevice.NumResourceKinds]int

	// Destroyed is the number of destroyed resources per kind.
	Destroyed [gldevice.NumResourceKinds]int
}

// passState is the pipeline state saved by BeginPassRestore.
type passState struct {
	effect       *effect
	pass         int
	blend        gldevice.BlendState
	depthStencil gldevice.DepthStencilState
	rasterizer   gldevice.RasterizerState
}

// Device is an in-memory gldevice.Device bound to the goroutine that created
// it.
type Device struct {
	owner  affinity.Owner
	strict bool
	closed bool
	nextID uint64

	// Back buffer.
	params     gldevice.PresentationParameters
	backInfo   formatInfo
	back       draw.Image
	front      draw.Image
	backDepth  []float32
	backStenc  []uint8
	interval   gldevice.PresentInterval
	lastWindow uintptr

	// Pipeline state.
	viewport     gldevice.Viewport
	scissor      gldevice.Rect
	blend        gldevice.BlendState
	depthStencil gldevice.DepthStencilState
	rasterizer   gldevice.RasterizerState
	samplers     [maxTextureSlots]*texture
	vertices     []gldevice.VertexBufferBinding
	baseVertex   int
	targets      []gldevice.RenderTargetBinding
	targetDepth  *renderbuffer
	effect       *effect
	pass         int
	restore      []passState
	activeQuery  *query

	stats Stats
}

var _ gldevice.Device = (*Device)(nil)

// New creates a software device owned by the calling goroutine.
// It returns an error wrapping gldevice.ErrUnsupported when params requests a
// back buffer format or multisample count the device cannot provide.
func New(params gldevice.PresentationParameters, opts ...Option) (*Device, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	d := &Device{strict: o.strictAffinity}
	if err := d.allocBackbuffer(params); err != nil {
		return nil, err
	}
	d.blend = gldevice.DefaultBlendState()
	d.depthStencil = gldevice.DefaultDepthStencilState()
	d.owner.Bind()

	gldevice.Logger().Info("software: device created",
		"width", params.BackBufferWidth,
		"height", params.BackBufferHeight,
		"format", params.BackBufferFormat,
		"depth", params.DepthStencilFormat,
		"strict", d.strict)
	return d, nil
}

// Factory creates a software device with default options. It has the
// backend.Factory signature.
func Factory(params gldevice.PresentationParameters) (gldevice.Device, error) {
	d, err := New(params)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// enter asserts the caller is the owner goroutine and the device is open.
func (d *Device) enter(op string) {
	if d.strict && !d.owner.IsCurrent() {
		panic(&gldevice.OwnerError{Op: op, Owner: d.owner.ID(), Caller: affinity.GoroutineID()})
	}
	if d.closed {
		panic(fmt.Errorf("%w: software: %s", gldevice.ErrDeviceClosed, op))
	}
}

func unsupported(format string, args ...any) error {
	return fmt.Errorf("%w: software: "+format, append([]any{gldevice.ErrUnsupported}, args...)...)
}

func outOfRange(format string, args ...any) error {
	return fmt.Errorf("%w: software: "+format, append([]any{gldevice.ErrOutOfRange}, args...)...)
}

// newResource returns the common part of a new handle.
func (d *Device) newResource(kind gldevice.ResourceKind) resource {
	d.nextID++
	d.stats.Live[kind]++
	return resource{dev: d, id: d.nextID, kind: kind}
}

// destroy marks r destroyed and updates the counters.
func (d *Device) destroy(r *resource) {
	r.destroyed = true
	d.stats.Live[r.kind]--
	d.stats.Destroyed[r.kind]++
}

// allocBackbuffer validates params and replaces the back buffer.
func (d *Device) allocBackbuffer(params gldevice.PresentationParameters) error {
	w, h := params.BackBufferWidth, params.BackBufferHeight
	if w <= 0 || h <= 0 || w > maxTextureSize || h > maxTextureSize {
		return outOfRange("back buffer size %dx%d", w, h)
	}
	if params.BackBufferFormat == gputypes.TextureFormatUndefined {
		params.BackBufferFormat = gputypes.TextureFormatRGBA8Unorm
	}
	info, err := lookupFormat(params.BackBufferFormat)
	if err != nil {
		return err
	}
	if info.gray {
		return unsupported("back buffer format %v", params.BackBufferFormat)
	}
	if params.MultiSampleCount < 0 || params.MultiSampleCount > maxMultiSampleCount ||
		params.MultiSampleCount&(params.MultiSampleCount-1) != 0 {
		return unsupported("back buffer multisample count %d", params.MultiSampleCount)
	}

	d.params = params
	d.backInfo = info
	d.back = info.newPlane(w, h)
	d.front = info.newPlane(w, h)
	d.backDepth, d.backStenc = newDepthStencil(params.DepthStencilFormat, w*h)
	d.interval = params.PresentationInterval
	d.viewport = gldevice.Viewport{Width: w, Height: h, MaxDepth: 1}
	d.scissor = gldevice.Rect{W: w, H: h}
	d.targets = nil
	d.targetDepth = nil
	return nil
}

func newDepthStencil(format gldevice.DepthFormat, n int) (depth []float32, stencil []uint8) {
	switch format {
	case gldevice.DepthFormatDepth16, gldevice.DepthFormatDepth24:
		depth = make([]float32, n)
	case gldevice.DepthFormatDepth24Stencil8:
		depth = make([]float32, n)
		stencil = make([]uint8, n)
	}
	return depth, stencil
}

// Stats returns a snapshot of the device counters.
func (d *Device) Stats() Stats {
	d.enter("Stats")
	return d.stats
}

// Snapshot returns a copy of the last presented frame in RGBA order.
func (d *Device) Snapshot() *image.RGBA {
	d.enter("Snapshot")
	img := image.NewRGBA(d.front.Bounds())
	draw.Draw(img, img.Bounds(), d.front, image.Point{}, draw.Src)
	if d.backInfo.swapRB {
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+2] = img.Pix[i+2], img.Pix[i]
		}
	}
	return img
}

// Close releases the device. Resources that were never disposed are reported
// and dropped. Close is idempotent.
func (d *Device) Close() error {
	if d.strict && !d.owner.IsCurrent() {
		panic(&gldevice.OwnerError{Op: "Close", Owner: d.owner.ID(), Caller: affinity.GoroutineID()})
	}
	if d.closed {
		return nil
	}

	leaked := 0
	for _, n := range d.stats.Live {
		leaked += n
	}
	if leaked > 0 {
		gldevice.Logger().Warn("software: closing device with live resources", "live", leaked)
	}
	gldevice.Logger().Info("software: device closed",
		"frames", d.stats.Frames, "draws", d.stats.Draws)

	d.closed = true
	d.back, d.front = nil, nil
	d.backDepth, d.backStenc = nil, nil
	d.targets, d.vertices = nil, nil
	d.targetDepth, d.effect, d.activeQuery = nil, nil, nil
	d.samplers = [maxTextureSlots]*texture{}
	d.restore = nil
	return nil
}

// Capabilities reports the device limits.
func (d *Device) Capabilities() gldevice.Capabilities {
	d.enter("Capabilities")
	return gldevice.Capabilities{
		Renderer:                   "gldevice software",
		MaxTextureSlots:            maxTextureSlots,
		MaxVertexTextureSlots:      maxVertexTextureSlots,
		MaxTextureSize:             maxTextureSize,
		MaxMultiSampleCount:        maxMultiSampleCount,
		SupportsHardwareInstancing: true,
		SupportsNoOverwrite:        true,
	}
}

// MaxMultiSampleCount returns the largest supported sample count not above
// multiSampleCount, or 0 if format cannot be multisampled.
func (d *Device) MaxMultiSampleCount(format gldevice.SurfaceFormat, multiSampleCount int) int {
	d.enter("MaxMultiSampleCount")
	if _, ok := formats[format]; !ok {
		return 0
	}
	return clampSamples(multiSampleCount)
}

// clampSamples rounds n down to a supported power of two; 0 and 1 mean no
// multisampling.
func clampSamples(n int) int {
	n = min(n, maxMultiSampleCount)
	if n <= 1 {
		return 0
	}
	s := 1
	for s*2 <= n {
		s *= 2
	}
	return s
}

// SetStringMarker logs a debug marker.
func (d *Device) SetStringMarker(text string) {
	d.enter("SetStringMarker")
	gldevice.Logger().Debug("software: marker", "text", text, "frame", d.stats.Frames)
}
