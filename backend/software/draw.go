// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/gldevice"
	"github.com/gogpu/gputypes"
)

// colorTarget returns the image and format draws and clears write to.
func (d *Device) colorTarget() (draw.Image, formatInfo) {
	if len(d.targets) == 0 {
		return d.back, d.backInfo
	}
	b := d.targets[0]
	t := b.Texture.(*texture)
	face := gldevice.CubeMapFace(0)
	if t.dim == dimensionCube {
		face = b.Face
	}
	return t.plane(face, 0), t.info
}

// depthTarget returns the bound depth and stencil planes.
func (d *Device) depthTarget() ([]float32, []uint8) {
	if len(d.targets) == 0 {
		return d.backDepth, d.backStenc
	}
	if d.targetDepth != nil {
		return d.targetDepth.depth, d.targetDepth.stencil
	}
	return nil, nil
}

// Clear fills the selected buffers of the bound target. The color clear
// honors the scissor rectangle when the scissor test is enabled.
func (d *Device) Clear(options gldevice.ClearOptions, color gputypes.Color, depth float32, stencil int) {
	d.enter("Clear")

	if options&gldevice.ClearTarget != 0 && d.blend.ColorWriteChannels != gldevice.ColorWriteNone {
		dst, info := d.colorTarget()
		r := dst.Bounds()
		if d.rasterizer.ScissorTestEnable {
			s := d.scissor
			r = r.Intersect(image.Rect(s.X, s.Y, s.X+s.W, s.Y+s.H))
		}
		draw.Draw(dst, r, image.NewUniform(info.color(color)), image.Point{}, draw.Src)
	}

	depthPlane, stencilPlane := d.depthTarget()
	if options&gldevice.ClearDepthBuffer != 0 {
		for i := range depthPlane {
			depthPlane[i] = depth
		}
	}
	if options&gldevice.ClearStencil != 0 {
		for i := range stencilPlane {
			stencilPlane[i] = uint8(stencil)
		}
	}
}

// boundVertices returns the number of vertices available in the first vertex
// binding, or -1 when no vertex buffer is bound.
func (d *Device) boundVertices() int {
	if len(d.vertices) == 0 {
		return -1
	}
	b := d.vertices[0]
	return b.Buffer.Size()/b.Stride - b.VertexOffset
}

// record counts a validated draw.
func (d *Device) record(primitives int) {
	d.stats.Draws++
	d.stats.Primitives += uint64(primitives)
	if d.activeQuery != nil {
		d.activeQuery.count += primitives
	}
}

// DrawPrimitives validates and counts a non-indexed draw.
func (d *Device) DrawPrimitives(primitive gldevice.PrimitiveType, vertexStart, primitiveCount int) error {
	d.enter("DrawPrimitives")
	if vertexStart < 0 || primitiveCount < 0 {
		return outOfRange("draw start %d count %d", vertexStart, primitiveCount)
	}
	if avail := d.boundVertices(); avail >= 0 {
		need := d.baseVertex + vertexStart + primitive.VertexCount(primitiveCount)
		if need > avail {
			return outOfRange("draw needs %d vertices, %d bound", need, avail)
		}
	}
	d.record(primitiveCount)
	return nil
}

// checkIndexed validates an indexed draw against its index buffer.
func (d *Device) checkIndexed(op string, primitive gldevice.PrimitiveType, startIndex, primitiveCount int,
	indices gldevice.Buffer, elementSize gldevice.IndexElementSize,
) error {
	ib, err := resolve[*buffer](d, op, gldevice.KindIndexBuffer, indices)
	if err != nil {
		return err
	}
	if startIndex < 0 || primitiveCount < 0 {
		return outOfRange("%s start index %d count %d", op, startIndex, primitiveCount)
	}
	need := (startIndex + primitive.VertexCount(primitiveCount)) * elementSize.Bytes()
	if need > ib.Size() {
		return outOfRange("%s needs %d index bytes, buffer has %d", op, need, ib.Size())
	}
	return nil
}

// DrawIndexedPrimitives validates and counts an indexed draw.
func (d *Device) DrawIndexedPrimitives(primitive gldevice.PrimitiveType, baseVertex, minVertexIndex, numVertices,
	startIndex, primitiveCount int, indices gldevice.Buffer, elementSize gldevice.IndexElementSize,
) error {
	d.enter("DrawIndexedPrimitives")
	if err := d.checkIndexed("DrawIndexedPrimitives", primitive, startIndex, primitiveCount, indices, elementSize); err != nil {
		return err
	}
	if avail := d.boundVertices(); avail >= 0 && baseVertex+minVertexIndex+numVertices > avail {
		return outOfRange("indexed draw spans %d vertices, %d bound", baseVertex+minVertexIndex+numVertices, avail)
	}
	d.record(primitiveCount)
	return nil
}

// DrawInstancedPrimitives validates and counts an instanced indexed draw.
func (d *Device) DrawInstancedPrimitives(primitive gldevice.PrimitiveType, baseVertex, minVertexIndex, numVertices,
	startIndex, primitiveCount, instanceCount int, indices gldevice.Buffer, elementSize gldevice.IndexElementSize,
) error {
	d.enter("DrawInstancedPrimitives")
	if instanceCount < 1 {
		return outOfRange("instance count %d", instanceCount)
	}
	if err := d.checkIndexed("DrawInstancedPrimitives", primitive, startIndex, primitiveCount, indices, elementSize); err != nil {
		return err
	}
	d.record(primitiveCount * instanceCount)
	return nil
}

// SetRenderTargets binds color targets and an optional depth/stencil
// renderbuffer. An empty targets slice rebinds the back buffer.
func (d *Device) SetRenderTargets(targets []gldevice.RenderTargetBinding, depthStencil gldevice.Renderbuffer,
	depthFormat gldevice.DepthFormat,
) error {
	d.enter("SetRenderTargets")
	if len(targets) == 0 {
		d.targets = nil
		d.targetDepth = nil
		return nil
	}

	for i, b := range targets {
		t, err := resolve[*texture](d, "SetRenderTargets", gldevice.KindTexture, b.Texture)
		if err != nil {
			return err
		}
		if !t.renderTarget || t.dim == dimension3D {
			return unsupported("texture %d is not a render target", t.id)
		}
		if b.Face > gldevice.CubeMapNegativeZ {
			return outOfRange("render target %d face %d", i, b.Face)
		}
	}

	var rb *renderbuffer
	if depthStencil != nil && depthFormat != gldevice.DepthFormatNone {
		var err error
		rb, err = resolve[*renderbuffer](d, "SetRenderTargets", gldevice.KindRenderbuffer, depthStencil)
		if err != nil {
			return err
		}
		if rb.depthFormat == gldevice.DepthFormatNone {
			return unsupported("renderbuffer %d has no depth", rb.id)
		}
	}

	d.targets = append(d.targets[:0:0], targets...)
	d.targetDepth = rb
	return nil
}

// ResolveTarget copies a multisample renderbuffer into its texture, if one is
// bound, and regenerates the texture's mip chain.
func (d *Device) ResolveTarget(target gldevice.RenderTargetBinding) error {
	d.enter("ResolveTarget")
	t, err := resolve[*texture](d, "ResolveTarget", gldevice.KindTexture, target.Texture)
	if err != nil {
		return err
	}
	if t.dim == dimension3D {
		return unsupported("resolve of 3D texture %d", t.id)
	}
	face := gldevice.CubeMapFace(0)
	if t.dim == dimensionCube {
		face = target.Face
	}

	if target.Renderbuffer != nil {
		rb, err := resolve[*renderbuffer](d, "ResolveTarget", gldevice.KindRenderbuffer, target.Renderbuffer)
		if err != nil {
			return err
		}
		if rb.color == nil {
			return unsupported("renderbuffer %d has no color", rb.id)
		}
		dst := t.plane(face, 0)
		draw.Draw(dst, dst.Bounds(), rb.color, image.Point{}, draw.Src)
	}

	for level := 1; level < t.LevelCount(); level++ {
		src, dst := t.plane(face, level-1), t.plane(face, level)
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	}
	return nil
}
