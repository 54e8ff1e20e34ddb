// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command gldemo drives a threaded device from many goroutines.
//
// Worker goroutines create, fill and drop textures and vertex buffers while
// the main goroutine clears and presents frames. The last frame is written
// to a PNG file and device statistics are logged.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gldevice"
	_ "github.com/gogpu/gldevice/backend/software"
	"github.com/gogpu/gldevice/internal/parallel"
	"github.com/gogpu/gldevice/threaded"
	"github.com/gogpu/gputypes"
)

func main() {
	var (
		backendName = flag.String("backend", "", "backend name (default: $GLDEVICE_BACKEND or best available)")
		workers     = flag.Int("workers", 8, "number of resource worker goroutines")
		frames      = flag.Int("frames", 60, "number of frames to present")
		objects     = flag.Int("objects", 100, "resources created and dropped per worker")
		width       = flag.Int("width", 320, "back buffer width")
		height      = flag.Int("height", 240, "back buffer height")
		output      = flag.String("output", "gldemo.png", "output file")
		verbose     = flag.Bool("v", false, "log device activity")
	)
	flag.Parse()

	if *verbose {
		gldevice.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	dev, err := threaded.New(gldevice.PresentationParameters{
		BackBufferWidth:  *width,
		BackBufferHeight: *height,
		BackBufferFormat: gputypes.TextureFormatRGBA8Unorm,
	}, threaded.WithBackend(*backendName))
	if err != nil {
		log.Fatalf("Failed to create device: %v", err)
	}

	pool := parallel.New(*workers)
	defer pool.Close()

	jobs := make([]parallel.Job, pool.Workers())
	for w := range jobs {
		jobs[w] = func() error { return churn(dev, w, *objects) }
	}
	producers := pool.Start(jobs)

	for f := 0; f < *frames; f++ {
		if err := drawFrame(dev, f, *frames, *width, *height); err != nil {
			log.Fatalf("Frame %d: %v", f, err)
		}
	}
	if err := producers.Wait(); err != nil {
		log.Printf("Producers: %v", err)
	}

	// One more present so the workers' last drops are reclaimed.
	if err := dev.SwapBuffers(nil, nil, 0); err != nil {
		log.Fatalf("Final present: %v", err)
	}

	img, err := readBackbuffer(dev)
	if err != nil {
		log.Fatalf("Failed to read back buffer: %v", err)
	}
	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	st := dev.Stats()
	if err := dev.Close(); err != nil {
		log.Fatalf("Failed to close device: %v", err)
	}

	slog.Info("gldemo finished",
		"backend", st.Backend,
		"output", *output,
		"forwarded", st.Forwarded,
		"wakes", st.Wakes,
		"checkpoints", st.Checkpoints,
		"texturesDisposed", st.Disposed[gldevice.KindTexture],
		"vertexBuffersDisposed", st.Disposed[gldevice.KindVertexBuffer])
}

// churn creates, fills and drops resources.
func churn(dev *threaded.Device, worker, objects int) error {
	const size = 16
	texels := make([]byte, size*size*4)
	for i := range texels {
		texels[i] = byte(worker*31 + i)
	}

	for i := 0; i < objects; i++ {
		tex, err := dev.CreateTexture2D(gputypes.TextureFormatRGBA8Unorm, size, size, 1, false)
		if err != nil {
			return fmt.Errorf("create texture: %w", err)
		}
		if err := dev.SetTextureData2D(tex, 0, 0, size, size, 0, texels); err != nil {
			return fmt.Errorf("upload texture: %w", err)
		}

		vb, err := dev.GenVertexBuffer(true, gldevice.BufferUsageWriteOnly, len(texels))
		if err != nil {
			return fmt.Errorf("create vertex buffer: %w", err)
		}
		if err := dev.SetVertexBufferData(vb, 0, texels, gldevice.SetDataDiscard); err != nil {
			return fmt.Errorf("upload vertex buffer: %w", err)
		}

		dev.AddDisposeTexture(tex)
		dev.AddDisposeVertexBuffer(vb)
	}
	return nil
}

// drawFrame clears the frame to a fading background with a scissored band.
func drawFrame(dev *threaded.Device, frame, frames, w, h int) error {
	t := float64(frame) / float64(max(1, frames-1))

	dev.SetStringMarker(fmt.Sprintf("frame %d", frame))
	dev.ApplyRasterizerState(gldevice.RasterizerState{})
	dev.Clear(gldevice.ClearTarget, gputypes.Color{R: 0.1 + 0.4*t, G: 0.2, B: 0.5 - 0.3*t, A: 1}, 1, 0)

	band := gldevice.Rect{X: int(t * float64(w-w/8)), Y: h / 3, W: w / 8, H: h / 3}
	dev.SetScissorRect(band)
	dev.ApplyRasterizerState(gldevice.RasterizerState{ScissorTestEnable: true})
	dev.Clear(gldevice.ClearTarget, gputypes.Color{R: 1, G: 0.8, A: 1}, 1, 0)

	if err := dev.DrawPrimitives(gldevice.PrimitiveTriangleList, 0, 2); err != nil {
		return err
	}
	return dev.SwapBuffers(nil, nil, 0)
}

// readBackbuffer copies the back buffer into an RGBA image.
func readBackbuffer(dev *threaded.Device) (*image.RGBA, error) {
	w, h := dev.BackbufferSize()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := dev.ReadBackbuffer(0, 0, w, h, img.Pix); err != nil {
		return nil, err
	}
	if dev.BackbufferFormat() == gputypes.TextureFormatBGRA8Unorm {
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+2] = img.Pix[i+2], img.Pix[i]
		}
	}
	return img, nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
