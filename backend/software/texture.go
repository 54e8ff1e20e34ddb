// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"
	"math/bits"

	"golang.org/x/image/draw"

	"github.com/gogpu/gldevice"
)

// numCubeFaces is the number of faces of a cube texture.
const numCubeFaces = int(gldevice.CubeMapNegativeZ) + 1

// checkLevels validates a texture size and mip level count.
func checkLevels(levelCount int, dims ...int) error {
	largest := 0
	for _, n := range dims {
		if n <= 0 || n > maxTextureSize {
			return outOfRange("texture size %v", dims)
		}
		largest = max(largest, n)
	}
	if maxLevels := bits.Len(uint(largest)); levelCount < 1 || levelCount > maxLevels {
		return outOfRange("level count %d, texture allows 1..%d", levelCount, maxLevels)
	}
	return nil
}

// newTexture allocates a texture handle.
func (d *Device) newTexture(format gldevice.SurfaceFormat, info formatInfo, dim textureDimension,
	w, h, depth, levelCount int, isRenderTarget bool,
) *texture {
	t := &texture{
		resource:     d.newResource(gldevice.KindTexture),
		format:       format,
		info:         info,
		dim:          dim,
		width:        w,
		height:       h,
		depth:        depth,
		renderTarget: isRenderTarget,
	}

	if dim == dimension3D {
		t.volume = make([][]byte, levelCount)
		for level := range t.volume {
			lw, lh, ld := t.levelSize(level)
			t.volume[level] = make([]byte, info.rowBytes(lw)*lh*ld)
		}
		return t
	}

	faces := 1
	if dim == dimensionCube {
		faces = numCubeFaces
	}
	t.planes = make([][]draw.Image, faces)
	for face := range t.planes {
		t.planes[face] = make([]draw.Image, levelCount)
		for level := range t.planes[face] {
			lw, lh, _ := t.levelSize(level)
			t.planes[face][level] = info.newPlane(lw, lh)
		}
	}
	return t
}

func (d *Device) CreateTexture2D(format gldevice.SurfaceFormat, width, height, levelCount int,
	isRenderTarget bool,
) (gldevice.Texture, error) {
	d.enter("CreateTexture2D")
	info, err := lookupFormat(format)
	if err != nil {
		return nil, err
	}
	if err := checkLevels(levelCount, width, height); err != nil {
		return nil, err
	}
	return d.newTexture(format, info, dimension2D, width, height, 1, levelCount, isRenderTarget), nil
}

func (d *Device) CreateTexture3D(format gldevice.SurfaceFormat, width, height, depth, levelCount int) (gldevice.Texture, error) {
	d.enter("CreateTexture3D")
	info, err := lookupFormat(format)
	if err != nil {
		return nil, err
	}
	if err := checkLevels(levelCount, width, height, depth); err != nil {
		return nil, err
	}
	return d.newTexture(format, info, dimension3D, width, height, depth, levelCount, false), nil
}

func (d *Device) CreateTextureCube(format gldevice.SurfaceFormat, size, levelCount int,
	isRenderTarget bool,
) (gldevice.Texture, error) {
	d.enter("CreateTextureCube")
	info, err := lookupFormat(format)
	if err != nil {
		return nil, err
	}
	if err := checkLevels(levelCount, size); err != nil {
		return nil, err
	}
	return d.newTexture(format, info, dimensionCube, size, size, 1, levelCount, isRenderTarget), nil
}

// region resolves tex and checks a 2D region of one of its planes.
func (d *Device) region(op string, tex gldevice.Texture, dim textureDimension, face gldevice.CubeMapFace,
	x, y, w, h, level int, data []byte,
) (*texture, draw.Image, int, error) {
	t, err := resolve[*texture](d, op, gldevice.KindTexture, tex)
	if err != nil {
		return nil, nil, 0, err
	}
	if t.dim != dim {
		return nil, nil, 0, unsupported("%s on texture %d of another dimension", op, t.id)
	}
	if level < 0 || level >= t.LevelCount() || int(face) >= len(t.planes) {
		return nil, nil, 0, outOfRange("%s level %d face %d", op, level, face)
	}
	plane := t.plane(face, level)
	r := image.Rect(x, y, x+w, y+h)
	if w <= 0 || h <= 0 || !r.In(plane.Bounds()) {
		return nil, nil, 0, outOfRange("%s rect %v of level %v", op, r, plane.Bounds())
	}
	n := t.info.rowBytes(w) * h
	if len(data) < n {
		return nil, nil, 0, outOfRange("%s needs %d bytes, have %d", op, n, len(data))
	}
	return t, plane, n, nil
}

func (d *Device) upload(op string, tex gldevice.Texture, dim textureDimension, face gldevice.CubeMapFace,
	x, y, w, h, level int, data []byte,
) error {
	t, plane, n, err := d.region(op, tex, dim, face, x, y, w, h, level, data)
	if err != nil {
		return err
	}
	draw.Draw(plane, image.Rect(x, y, x+w, y+h), t.info.wrap(data[:n], w, h), image.Point{}, draw.Src)
	return nil
}

func (d *Device) download(op string, tex gldevice.Texture, dim textureDimension, face gldevice.CubeMapFace,
	x, y, w, h, level int, data []byte,
) error {
	t, plane, n, err := d.region(op, tex, dim, face, x, y, w, h, level, data)
	if err != nil {
		return err
	}
	draw.Draw(t.info.wrap(data[:n], w, h), image.Rect(0, 0, w, h), plane, image.Pt(x, y), draw.Src)
	return nil
}

func (d *Device) SetTextureData2D(tex gldevice.Texture, x, y, w, h, level int, data []byte) error {
	d.enter("SetTextureData2D")
	return d.upload("SetTextureData2D", tex, dimension2D, 0, x, y, w, h, level, data)
}

func (d *Device) SetTextureDataCube(tex gldevice.Texture, x, y, w, h int, face gldevice.CubeMapFace,
	level int, data []byte,
) error {
	d.enter("SetTextureDataCube")
	return d.upload("SetTextureDataCube", tex, dimensionCube, face, x, y, w, h, level, data)
}

func (d *Device) GetTextureData2D(tex gldevice.Texture, x, y, w, h, level int, data []byte) error {
	d.enter("GetTextureData2D")
	return d.download("GetTextureData2D", tex, dimension2D, 0, x, y, w, h, level, data)
}

func (d *Device) GetTextureDataCube(tex gldevice.Texture, x, y, w, h int, face gldevice.CubeMapFace,
	level int, data []byte,
) error {
	d.enter("GetTextureDataCube")
	return d.download("GetTextureDataCube", tex, dimensionCube, face, x, y, w, h, level, data)
}

// SetTextureData3D copies a w x h x depth box of tightly packed texels into a
// 3D texture level.
func (d *Device) SetTextureData3D(tex gldevice.Texture, x, y, z, w, h, depth, level int, data []byte) error {
	d.enter("SetTextureData3D")
	t, err := resolve[*texture](d, "SetTextureData3D", gldevice.KindTexture, tex)
	if err != nil {
		return err
	}
	if t.dim != dimension3D {
		return unsupported("SetTextureData3D on texture %d of another dimension", t.id)
	}
	if level < 0 || level >= t.LevelCount() {
		return outOfRange("SetTextureData3D level %d", level)
	}
	lw, lh, ld := t.levelSize(level)
	if x < 0 || y < 0 || z < 0 || w <= 0 || h <= 0 || depth <= 0 ||
		x+w > lw || y+h > lh || z+depth > ld {
		return outOfRange("SetTextureData3D box %d,%d,%d %dx%dx%d of level %dx%dx%d", x, y, z, w, h, depth, lw, lh, ld)
	}
	row := t.info.rowBytes(w)
	if n := row * h * depth; len(data) < n {
		return outOfRange("SetTextureData3D needs %d bytes, have %d", n, len(data))
	}

	vol := t.volume[level]
	stride := t.info.rowBytes(lw)
	for k := 0; k < depth; k++ {
		for j := 0; j < h; j++ {
			dst := ((z+k)*lh+y+j)*stride + t.info.rowBytes(x)
			src := (k*h + j) * row
			copy(vol[dst:dst+row], data[src:src+row])
		}
	}
	return nil
}

// AddDisposeTexture destroys tex immediately and unbinds it.
func (d *Device) AddDisposeTexture(tex gldevice.Texture) {
	d.enter("AddDisposeTexture")
	t := mustResolve[*texture](d, "AddDisposeTexture", gldevice.KindTexture, tex)
	for i, s := range d.samplers {
		if s == t {
			d.samplers[i] = nil
		}
	}
	for _, b := range d.targets {
		if b.Texture == tex {
			d.targets = nil
			d.targetDepth = nil
			break
		}
	}
	t.release()
	d.destroy(&t.resource)
}

// GenColorRenderbuffer creates a multisample color buffer. tex, if set, is the
// texture ResolveTarget copies it into.
func (d *Device) GenColorRenderbuffer(width, height int, format gldevice.SurfaceFormat, multiSampleCount int,
	tex gldevice.Texture,
) (gldevice.Renderbuffer, error) {
	d.enter("GenColorRenderbuffer")
	info, err := lookupFormat(format)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 || width > maxTextureSize || height > maxTextureSize {
		return nil, outOfRange("renderbuffer size %dx%d", width, height)
	}
	var target *texture
	if tex != nil {
		if target, err = resolve[*texture](d, "GenColorRenderbuffer", gldevice.KindTexture, tex); err != nil {
			return nil, err
		}
	}
	return &renderbuffer{
		resource:         d.newResource(gldevice.KindRenderbuffer),
		width:            width,
		height:           height,
		multiSampleCount: clampSamples(multiSampleCount),
		format:           format,
		info:             info,
		color:            info.newPlane(width, height),
		target:           target,
	}, nil
}

func (d *Device) GenDepthStencilRenderbuffer(width, height int, format gldevice.DepthFormat,
	multiSampleCount int,
) (gldevice.Renderbuffer, error) {
	d.enter("GenDepthStencilRenderbuffer")
	if format == gldevice.DepthFormatNone || format > gldevice.DepthFormatDepth24Stencil8 {
		return nil, unsupported("depth format %v", format)
	}
	if width <= 0 || height <= 0 || width > maxTextureSize || height > maxTextureSize {
		return nil, outOfRange("renderbuffer size %dx%d", width, height)
	}
	depth, stencil := newDepthStencil(format, width*height)
	return &renderbuffer{
		resource:         d.newResource(gldevice.KindRenderbuffer),
		width:            width,
		height:           height,
		multiSampleCount: clampSamples(multiSampleCount),
		depthFormat:      format,
		depth:            depth,
		stencil:          stencil,
	}, nil
}

// AddDisposeRenderbuffer destroys rb immediately and unbinds it.
func (d *Device) AddDisposeRenderbuffer(rb gldevice.Renderbuffer) {
	d.enter("AddDisposeRenderbuffer")
	r := mustResolve[*renderbuffer](d, "AddDisposeRenderbuffer", gldevice.KindRenderbuffer, rb)
	if d.targetDepth == r {
		d.targetDepth = nil
	}
	r.release()
	d.destroy(&r.resource)
}
