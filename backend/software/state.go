// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"github.com/gogpu/gldevice"
	"github.com/gogpu/gputypes"
)

func (d *Device) SetViewport(viewport gldevice.Viewport) {
	d.enter("SetViewport")
	d.viewport = viewport
}

func (d *Device) SetScissorRect(scissor gldevice.Rect) {
	d.enter("SetScissorRect")
	d.scissor = scissor
}

func (d *Device) GetBlendFactor() gputypes.Color {
	d.enter("GetBlendFactor")
	return d.blend.BlendFactor
}

func (d *Device) SetBlendFactor(factor gputypes.Color) {
	d.enter("SetBlendFactor")
	d.blend.BlendFactor = factor
}

func (d *Device) GetMultiSampleMask() int32 {
	d.enter("GetMultiSampleMask")
	return d.blend.MultiSampleMask
}

func (d *Device) SetMultiSampleMask(mask int32) {
	d.enter("SetMultiSampleMask")
	d.blend.MultiSampleMask = mask
}

func (d *Device) GetReferenceStencil() int {
	d.enter("GetReferenceStencil")
	return d.depthStencil.ReferenceStencil
}

func (d *Device) SetReferenceStencil(ref int) {
	d.enter("SetReferenceStencil")
	d.depthStencil.ReferenceStencil = ref
}

// SetBlendState replaces the blend state, including the blend factor and
// multisample mask it carries.
func (d *Device) SetBlendState(state gldevice.BlendState) {
	d.enter("SetBlendState")
	d.blend = state
}

// SetDepthStencilState replaces the depth/stencil state, including the
// reference stencil value it carries.
func (d *Device) SetDepthStencilState(state gldevice.DepthStencilState) {
	d.enter("SetDepthStencilState")
	d.depthStencil = state
}

func (d *Device) ApplyRasterizerState(state gldevice.RasterizerState) {
	d.enter("ApplyRasterizerState")
	d.rasterizer = state
}

// VerifySampler binds tex to a sampler slot. A nil tex unbinds the slot.
func (d *Device) VerifySampler(index int, tex gldevice.Texture, sampler gldevice.SamplerState) error {
	d.enter("VerifySampler")
	if index < 0 || index >= maxTextureSlots {
		return outOfRange("sampler slot %d", index)
	}
	if tex == nil {
		d.samplers[index] = nil
		return nil
	}
	t, err := resolve[*texture](d, "VerifySampler", gldevice.KindTexture, tex)
	if err != nil {
		return err
	}
	if sampler.MaxMipLevel < 0 || sampler.MaxMipLevel >= t.LevelCount() {
		return outOfRange("sampler max mip level %d of %d", sampler.MaxMipLevel, t.LevelCount())
	}
	d.samplers[index] = t
	return nil
}

// ApplyVertexBufferBindings binds vertex buffers. When bindingsUpdated is
// false and bindings are already applied only the base vertex changes.
func (d *Device) ApplyVertexBufferBindings(bindings []gldevice.VertexBufferBinding, bindingsUpdated bool, baseVertex int) error {
	d.enter("ApplyVertexBufferBindings")
	d.baseVertex = baseVertex
	if !bindingsUpdated && d.vertices != nil {
		return nil
	}

	for i, b := range bindings {
		if _, err := resolve[*buffer](d, "ApplyVertexBufferBindings", gldevice.KindVertexBuffer, b.Buffer); err != nil {
			return err
		}
		if b.Stride <= 0 {
			return outOfRange("vertex binding %d stride %d", i, b.Stride)
		}
		for _, e := range b.Elements {
			if e.Offset < 0 || e.Offset >= b.Stride {
				return outOfRange("vertex binding %d element offset %d, stride %d", i, e.Offset, b.Stride)
			}
		}
	}
	d.vertices = append(d.vertices[:0:0], bindings...)
	return nil
}
