// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"

	"golang.org/x/image/draw"

	"github.com/gogpu/gldevice"
)

// resource is the common part of every software handle.
type resource struct {
	dev       *Device
	id        uint64
	kind      gldevice.ResourceKind
	destroyed bool
}

// Kind returns the resource kind of the handle.
func (r *resource) Kind() gldevice.ResourceKind { return r.kind }

// ID returns the device-unique handle id.
func (r *resource) ID() uint64 { return r.id }

func (r *resource) base() *resource { return r }

// handle is implemented by every software resource type.
type handle interface {
	gldevice.Resource
	base() *resource
}

// resolve checks that h was issued by d as a live resource of the given kind
// and returns it as its concrete type.
func resolve[P handle](d *Device, op string, kind gldevice.ResourceKind, h gldevice.Resource) (P, error) {
	var zero P
	p, ok := h.(P)
	if !ok {
		return zero, fmt.Errorf("%w: %s: %T is not a software %v", gldevice.ErrInvalidHandle, op, h, kind)
	}
	r := p.base()
	if r.dev != d || r.kind != kind {
		return zero, fmt.Errorf("%w: %s: %v %d", gldevice.ErrInvalidHandle, op, r.kind, r.id)
	}
	if r.destroyed {
		return zero, fmt.Errorf("%w: %s: %v %d", gldevice.ErrResourceDestroyed, op, kind, r.id)
	}
	return p, nil
}

// mustResolve is resolve for operations without an error result.
func mustResolve[P handle](d *Device, op string, kind gldevice.ResourceKind, h gldevice.Resource) P {
	p, err := resolve[P](d, op, kind, h)
	if err != nil {
		panic(err)
	}
	return p
}

// textureDimension is the shape of a texture.
type textureDimension uint8

const (
	dimension2D textureDimension = iota
	dimension3D
	dimensionCube
)

// texture is a 2D, 3D or cube texture.
type texture struct {
	resource
	format       gldevice.SurfaceFormat
	info         formatInfo
	dim          textureDimension
	width        int
	height       int
	depth        int
	renderTarget bool

	// planes[face][level] holds 2D and cube levels; 2D textures have one face.
	planes [][]draw.Image

	// volume[level] holds 3D levels, slice-major.
	volume [][]byte
}

func (t *texture) Format() gldevice.SurfaceFormat { return t.format }

func (t *texture) LevelCount() int {
	if t.dim == dimension3D {
		return len(t.volume)
	}
	return len(t.planes[0])
}

// levelSize returns the dimensions of a mip level.
func (t *texture) levelSize(level int) (w, h, d int) {
	return max(1, t.width>>level), max(1, t.height>>level), max(1, t.depth>>level)
}

// plane returns the image for a face and level.
func (t *texture) plane(face gldevice.CubeMapFace, level int) draw.Image {
	return t.planes[face][level]
}

func (t *texture) release() {
	t.planes = nil
	t.volume = nil
}

// renderbuffer is a color or depth/stencil renderbuffer.
type renderbuffer struct {
	resource
	width            int
	height           int
	multiSampleCount int

	// Color renderbuffers.
	format gldevice.SurfaceFormat
	info   formatInfo
	color  draw.Image
	target *texture

	// Depth/stencil renderbuffers.
	depthFormat gldevice.DepthFormat
	depth       []float32
	stencil     []uint8
}

func (r *renderbuffer) release() {
	r.color = nil
	r.depth = nil
	r.stencil = nil
	r.target = nil
}

// buffer is a vertex or index buffer.
type buffer struct {
	resource
	dynamic bool
	usage   gldevice.BufferUsage
	data    []byte
}

func (b *buffer) Size() int { return len(b.data) }

// effect is a compiled WGSL effect. Each vertex entry point is a technique
// and each fragment entry point a pass.
type effect struct {
	resource
	source     string
	spirv      []byte
	techniques int
	passes     int
	technique  int
}

// query is an occlusion query counting primitives submitted while active.
type query struct {
	resource
	active   bool
	complete bool
	count    int
}
