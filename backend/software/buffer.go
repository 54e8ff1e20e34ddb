// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"github.com/gogpu/gldevice"
)

func (d *Device) genBuffer(kind gldevice.ResourceKind, dynamic bool, usage gldevice.BufferUsage, size int) (*buffer, error) {
	if size <= 0 {
		return nil, outOfRange("%v size %d", kind, size)
	}
	return &buffer{
		resource: d.newResource(kind),
		dynamic:  dynamic,
		usage:    usage,
		data:     make([]byte, size),
	}, nil
}

func (d *Device) setBufferData(op string, kind gldevice.ResourceKind, buf gldevice.Buffer, offset int,
	data []byte, options gldevice.SetDataOptions,
) error {
	b, err := resolve[*buffer](d, op, kind, buf)
	if err != nil {
		return err
	}
	if offset < 0 || offset+len(data) > len(b.data) {
		return outOfRange("%s offset %d length %d, buffer has %d", op, offset, len(data), len(b.data))
	}
	if options == gldevice.SetDataDiscard {
		// Orphan the old storage as a driver would.
		b.data = make([]byte, len(b.data))
	}
	copy(b.data[offset:], data)
	return nil
}

func (d *Device) getBufferData(op string, kind gldevice.ResourceKind, buf gldevice.Buffer, offset int, data []byte) error {
	b, err := resolve[*buffer](d, op, kind, buf)
	if err != nil {
		return err
	}
	if offset < 0 || offset+len(data) > len(b.data) {
		return outOfRange("%s offset %d length %d, buffer has %d", op, offset, len(data), len(b.data))
	}
	copy(data, b.data[offset:])
	return nil
}

func (d *Device) GenVertexBuffer(dynamic bool, usage gldevice.BufferUsage, sizeInBytes int) (gldevice.Buffer, error) {
	d.enter("GenVertexBuffer")
	b, err := d.genBuffer(gldevice.KindVertexBuffer, dynamic, usage, sizeInBytes)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (d *Device) SetVertexBufferData(buf gldevice.Buffer, offset int, data []byte, options gldevice.SetDataOptions) error {
	d.enter("SetVertexBufferData")
	return d.setBufferData("SetVertexBufferData", gldevice.KindVertexBuffer, buf, offset, data, options)
}

func (d *Device) GetVertexBufferData(buf gldevice.Buffer, offset int, data []byte) error {
	d.enter("GetVertexBufferData")
	return d.getBufferData("GetVertexBufferData", gldevice.KindVertexBuffer, buf, offset, data)
}

// AddDisposeVertexBuffer destroys buf immediately and unbinds it.
func (d *Device) AddDisposeVertexBuffer(buf gldevice.Buffer) {
	d.enter("AddDisposeVertexBuffer")
	b := mustResolve[*buffer](d, "AddDisposeVertexBuffer", gldevice.KindVertexBuffer, buf)
	for _, v := range d.vertices {
		if v.Buffer == buf {
			d.vertices = nil
			break
		}
	}
	b.data = nil
	d.destroy(&b.resource)
}

func (d *Device) GenIndexBuffer(dynamic bool, usage gldevice.BufferUsage, sizeInBytes int) (gldevice.Buffer, error) {
	d.enter("GenIndexBuffer")
	b, err := d.genBuffer(gldevice.KindIndexBuffer, dynamic, usage, sizeInBytes)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (d *Device) SetIndexBufferData(buf gldevice.Buffer, offset int, data []byte, options gldevice.SetDataOptions) error {
	d.enter("SetIndexBufferData")
	return d.setBufferData("SetIndexBufferData", gldevice.KindIndexBuffer, buf, offset, data, options)
}

func (d *Device) GetIndexBufferData(buf gldevice.Buffer, offset int, data []byte) error {
	d.enter("GetIndexBufferData")
	return d.getBufferData("GetIndexBufferData", gldevice.KindIndexBuffer, buf, offset, data)
}

// AddDisposeIndexBuffer destroys buf immediately.
func (d *Device) AddDisposeIndexBuffer(buf gldevice.Buffer) {
	d.enter("AddDisposeIndexBuffer")
	b := mustResolve[*buffer](d, "AddDisposeIndexBuffer", gldevice.KindIndexBuffer, buf)
	b.data = nil
	d.destroy(&b.resource)
}
