// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"errors"
	"testing"

	"github.com/gogpu/gldevice"
	"github.com/gogpu/gldevice/backend"
	"github.com/gogpu/gputypes"
)

var (
	red   = gputypes.Color{R: 1, A: 1}
	green = gputypes.Color{G: 1, A: 1}
	blue  = gputypes.Color{B: 1, A: 1}
)

func testParams() gldevice.PresentationParameters {
	return gldevice.PresentationParameters{
		BackBufferWidth:    16,
		BackBufferHeight:   8,
		BackBufferFormat:   gputypes.TextureFormatRGBA8Unorm,
		DepthStencilFormat: gldevice.DepthFormatDepth24Stencil8,
	}
}

func newTestDevice(t *testing.T, opts ...Option) *Device {
	t.Helper()
	d, err := New(testParams(), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// expectPanic runs fn and returns the recovered value.
func expectPanic(t *testing.T, fn func()) (r any) {
	t.Helper()
	defer func() { r = recover() }()
	fn()
	t.Fatal("expected panic")
	return nil
}

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendSoftware) {
		t.Errorf("IsRegistered(%q) = false", backend.BackendSoftware)
	}
}

func TestNewRejectsUnsupported(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*gldevice.PresentationParameters)
		wantErr error
	}{
		{"gray back buffer", func(p *gldevice.PresentationParameters) {
			p.BackBufferFormat = gputypes.TextureFormatR8Unorm
		}, gldevice.ErrUnsupported},
		{"depth format as color", func(p *gldevice.PresentationParameters) {
			p.BackBufferFormat = gputypes.TextureFormatDepth24PlusStencil8
		}, gldevice.ErrUnsupported},
		{"odd multisample", func(p *gldevice.PresentationParameters) { p.MultiSampleCount = 3 }, gldevice.ErrUnsupported},
		{"too many samples", func(p *gldevice.PresentationParameters) { p.MultiSampleCount = 16 }, gldevice.ErrUnsupported},
		{"zero size", func(p *gldevice.PresentationParameters) { p.BackBufferWidth = 0 }, gldevice.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.modify(&p)
			if _, err := New(p); !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewDefaultsFormat(t *testing.T) {
	p := testParams()
	p.BackBufferFormat = gputypes.TextureFormatUndefined
	d, err := New(p)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer d.Close()
	if got := d.BackbufferFormat(); got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("BackbufferFormat() = %v, want RGBA8Unorm", got)
	}
}

func TestBackbufferQueries(t *testing.T) {
	d := newTestDevice(t)
	if w, h := d.BackbufferSize(); w != 16 || h != 8 {
		t.Errorf("BackbufferSize() = %d, %d, want 16, 8", w, h)
	}
	if got := d.BackbufferDepthFormat(); got != gldevice.DepthFormatDepth24Stencil8 {
		t.Errorf("BackbufferDepthFormat() = %v, want Depth24Stencil8", got)
	}
	if got := d.BackbufferMultiSampleCount(); got != 0 {
		t.Errorf("BackbufferMultiSampleCount() = %d, want 0", got)
	}

	p := testParams()
	p.BackBufferWidth, p.BackBufferHeight = 32, 32
	if err := d.ResetBackbuffer(p); err != nil {
		t.Fatalf("ResetBackbuffer() error = %v", err)
	}
	if w, h := d.BackbufferSize(); w != 32 || h != 32 {
		t.Errorf("BackbufferSize() after reset = %d, %d, want 32, 32", w, h)
	}

	p.MultiSampleCount = 5
	if err := d.ResetBackbuffer(p); !errors.Is(err, gldevice.ErrUnsupported) {
		t.Errorf("ResetBackbuffer() error = %v, want ErrUnsupported", err)
	}
}

func TestClearAndReadBackbuffer(t *testing.T) {
	tests := []struct {
		name   string
		format gldevice.SurfaceFormat
		want   [4]byte
	}{
		{"rgba", gputypes.TextureFormatRGBA8Unorm, [4]byte{255, 0, 0, 255}},
		{"bgra", gputypes.TextureFormatBGRA8Unorm, [4]byte{0, 0, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			p.BackBufferFormat = tt.format
			d, err := New(p)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer d.Close()

			d.Clear(gldevice.ClearTarget, red, 1, 0)
			var px [4]byte
			if err := d.ReadBackbuffer(3, 3, 1, 1, px[:]); err != nil {
				t.Fatalf("ReadBackbuffer() error = %v", err)
			}
			if px != tt.want {
				t.Errorf("ReadBackbuffer() = %v, want %v", px, tt.want)
			}

			// Snapshot is always RGBA order.
			if err := d.SwapBuffers(nil, nil, 0); err != nil {
				t.Fatalf("SwapBuffers() error = %v", err)
			}
			if got := d.Snapshot().RGBAAt(0, 0); got.R != 255 || got.B != 0 {
				t.Errorf("Snapshot() pixel = %v, want red", got)
			}
		})
	}
}

func TestReadBackbufferBounds(t *testing.T) {
	d := newTestDevice(t)
	buf := make([]byte, 4)
	if err := d.ReadBackbuffer(16, 0, 1, 1, buf); !errors.Is(err, gldevice.ErrOutOfRange) {
		t.Errorf("ReadBackbuffer() outside error = %v, want ErrOutOfRange", err)
	}
	if err := d.ReadBackbuffer(0, 0, 2, 1, buf); !errors.Is(err, gldevice.ErrOutOfRange) {
		t.Errorf("ReadBackbuffer() short buffer error = %v, want ErrOutOfRange", err)
	}
}

func TestClearHonorsScissor(t *testing.T) {
	d := newTestDevice(t)
	d.Clear(gldevice.ClearTarget, blue, 1, 0)
	d.SetScissorRect(gldevice.Rect{X: 0, Y: 0, W: 4, H: 4})
	d.ApplyRasterizerState(gldevice.RasterizerState{ScissorTestEnable: true})
	d.Clear(gldevice.ClearTarget, red, 1, 0)

	var in, out [4]byte
	_ = d.ReadBackbuffer(1, 1, 1, 1, in[:])
	_ = d.ReadBackbuffer(10, 6, 1, 1, out[:])
	if in[0] != 255 {
		t.Errorf("pixel inside scissor = %v, want red", in)
	}
	if out[2] != 255 || out[0] != 0 {
		t.Errorf("pixel outside scissor = %v, want blue", out)
	}
}

func TestClearDepthStencil(t *testing.T) {
	d := newTestDevice(t)
	d.Clear(gldevice.ClearDepthBuffer|gldevice.ClearStencil, gputypes.Color{}, 0.5, 7)
	if d.backDepth[0] != 0.5 {
		t.Errorf("depth = %v, want 0.5", d.backDepth[0])
	}
	if d.backStenc[len(d.backStenc)-1] != 7 {
		t.Errorf("stencil = %d, want 7", d.backStenc[len(d.backStenc)-1])
	}
}

func TestSwapBuffersScales(t *testing.T) {
	d := newTestDevice(t)
	d.Clear(gldevice.ClearTarget, green, 1, 0)

	src := &gldevice.Rect{W: 4, H: 4}
	if err := d.SwapBuffers(src, nil, 0); err != nil {
		t.Fatalf("SwapBuffers() error = %v", err)
	}
	if got := d.Snapshot().RGBAAt(15, 7); got.G != 255 {
		t.Errorf("Snapshot() corner = %v, want green", got)
	}

	bad := &gldevice.Rect{X: 10, W: 10, H: 1}
	if err := d.SwapBuffers(bad, nil, 0); !errors.Is(err, gldevice.ErrOutOfRange) {
		t.Errorf("SwapBuffers() bad rect error = %v, want ErrOutOfRange", err)
	}
	if got := d.Stats().Frames; got != 1 {
		t.Errorf("Stats().Frames = %d, want 1", got)
	}
}

func TestStateRoundTrip(t *testing.T) {
	d := newTestDevice(t)

	d.SetBlendFactor(red)
	if got := d.GetBlendFactor(); got != red {
		t.Errorf("GetBlendFactor() = %v, want %v", got, red)
	}
	d.SetMultiSampleMask(0x0f)
	if got := d.GetMultiSampleMask(); got != 0x0f {
		t.Errorf("GetMultiSampleMask() = %#x, want 0xf", got)
	}
	d.SetReferenceStencil(3)
	if got := d.GetReferenceStencil(); got != 3 {
		t.Errorf("GetReferenceStencil() = %d, want 3", got)
	}

	bs := gldevice.DefaultBlendState()
	bs.BlendFactor = blue
	d.SetBlendState(bs)
	if got := d.GetBlendFactor(); got != blue {
		t.Errorf("GetBlendFactor() after SetBlendState = %v, want %v", got, blue)
	}

	ds := gldevice.DefaultDepthStencilState()
	ds.ReferenceStencil = 9
	d.SetDepthStencilState(ds)
	if got := d.GetReferenceStencil(); got != 9 {
		t.Errorf("GetReferenceStencil() after SetDepthStencilState = %d, want 9", got)
	}
}

func TestCapabilities(t *testing.T) {
	d := newTestDevice(t)
	c := d.Capabilities()
	if c.MaxTextureSlots != maxTextureSlots || !c.SupportsHardwareInstancing {
		t.Errorf("Capabilities() = %+v", c)
	}

	tests := []struct {
		format gldevice.SurfaceFormat
		in     int
		want   int
	}{
		{gputypes.TextureFormatRGBA8Unorm, 0, 0},
		{gputypes.TextureFormatRGBA8Unorm, 1, 0},
		{gputypes.TextureFormatRGBA8Unorm, 3, 2},
		{gputypes.TextureFormatRGBA8Unorm, 4, 4},
		{gputypes.TextureFormatRGBA8Unorm, 32, 8},
		{gputypes.TextureFormatDepth24PlusStencil8, 4, 0},
	}
	for _, tt := range tests {
		if got := d.MaxMultiSampleCount(tt.format, tt.in); got != tt.want {
			t.Errorf("MaxMultiSampleCount(%v, %d) = %d, want %d", tt.format, tt.in, got, tt.want)
		}
	}

	d.SetStringMarker("frame start")
}

func TestStrictAffinity(t *testing.T) {
	d := newTestDevice(t)

	done := make(chan any)
	go func() {
		defer func() { done <- recover() }()
		d.SetBlendFactor(red)
	}()

	r := <-done
	err, ok := r.(error)
	if !ok || !errors.Is(err, gldevice.ErrNotOwner) {
		t.Fatalf("off-owner call panicked with %v, want ErrNotOwner", r)
	}
	var oe *gldevice.OwnerError
	if !errors.As(err, &oe) || oe.Op != "SetBlendFactor" {
		t.Errorf("panic value = %v, want *OwnerError for SetBlendFactor", err)
	}
}

func TestStrictAffinitySubtest(t *testing.T) {
	d := newTestDevice(t)

	// Subtests run on their own goroutine.
	t.Run("create", func(t *testing.T) {
		r := expectPanic(t, func() {
			_, _ = d.CreateTexture2D(gputypes.TextureFormatRGBA8Unorm, 4, 4, 1, false)
		})
		if err, ok := r.(error); !ok || !errors.Is(err, gldevice.ErrNotOwner) {
			t.Errorf("CreateTexture2D() from subtest panicked with %v, want ErrNotOwner", r)
		}
	})

	if _, err := d.CreateTexture2D(gputypes.TextureFormatRGBA8Unorm, 4, 4, 1, false); err != nil {
		t.Errorf("CreateTexture2D() on owner error = %v", err)
	}
}

func TestRelaxedAffinity(t *testing.T) {
	d := newTestDevice(t, WithStrictAffinity(false))

	done := make(chan any)
	go func() {
		defer func() { done <- recover() }()
		d.SetBlendFactor(red)
	}()
	if r := <-done; r != nil {
		t.Errorf("off-owner call with relaxed affinity panicked: %v", r)
	}
}

func TestCloseIdempotent(t *testing.T) {
	d, err := New(testParams())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := d.CreateQuery(); err != nil {
		t.Fatalf("CreateQuery() error = %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	r := expectPanic(t, func() { d.Clear(gldevice.ClearTarget, red, 0, 0) })
	if err, ok := r.(error); !ok || !errors.Is(err, gldevice.ErrDeviceClosed) {
		t.Errorf("use after Close panicked with %v, want ErrDeviceClosed", r)
	}
}
