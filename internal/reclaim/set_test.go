// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package reclaim

import (
	"sync"
	"testing"

	"github.com/gogpu/gldevice"
)

type handle struct {
	kind gldevice.ResourceKind
	id   int
}

func (h *handle) Kind() gldevice.ResourceKind    { return h.kind }
func (h *handle) Format() gldevice.SurfaceFormat { return 0 }
func (h *handle) LevelCount() int                { return 1 }
func (h *handle) Size() int                      { return 0 }

// recorder destroys handles by recording them.
type recorder struct {
	destroyed []*handle
	panicOn   int
}

func (r *recorder) record(res gldevice.Resource) {
	h := res.(*handle)
	if h.id == r.panicOn {
		panic("destroy failed")
	}
	r.destroyed = append(r.destroyed, h)
}

func (r *recorder) AddDisposeTexture(tex gldevice.Texture)          { r.record(tex) }
func (r *recorder) AddDisposeRenderbuffer(rb gldevice.Renderbuffer) { r.record(rb) }
func (r *recorder) AddDisposeVertexBuffer(buf gldevice.Buffer)      { r.record(buf) }
func (r *recorder) AddDisposeIndexBuffer(buf gldevice.Buffer)       { r.record(buf) }
func (r *recorder) AddDisposeEffect(effect gldevice.Effect)         { r.record(effect) }
func (r *recorder) AddDisposeQuery(query gldevice.Query)            { r.record(query) }

func TestSetDrainAllRoutesByKind(t *testing.T) {
	var s Set
	id := 0
	next := func(kind gldevice.ResourceKind) *handle {
		id++
		return &handle{kind: kind, id: id}
	}

	s.AddDisposeTexture(next(gldevice.KindTexture))
	s.AddDisposeTexture(next(gldevice.KindTexture))
	s.AddDisposeRenderbuffer(next(gldevice.KindRenderbuffer))
	s.AddDisposeVertexBuffer(next(gldevice.KindVertexBuffer))
	s.AddDisposeIndexBuffer(next(gldevice.KindIndexBuffer))
	s.AddDisposeEffect(next(gldevice.KindEffect))
	s.AddDisposeQuery(next(gldevice.KindQuery))

	if got := s.Pending().Total(); got != 7 {
		t.Errorf("Pending().Total() = %d, want 7", got)
	}

	r := &recorder{panicOn: -1}
	st := s.DrainAll(r)

	want := DrainStats{2, 1, 1, 1, 1, 1}
	if st != want {
		t.Errorf("DrainAll() = %v, want %v", st, want)
	}
	if len(r.destroyed) != 7 {
		t.Errorf("destroyed %d handles, want 7", len(r.destroyed))
	}
	if got := s.Pending().Total(); got != 0 {
		t.Errorf("Pending().Total() after DrainAll = %d, want 0", got)
	}
	if st := s.DrainAll(r); st.Total() != 0 {
		t.Errorf("second DrainAll() = %v, want nothing", st)
	}
}

func TestSetDrainAllSurvivesPanic(t *testing.T) {
	var s Set
	for i := 1; i <= 5; i++ {
		s.AddDisposeVertexBuffer(&handle{kind: gldevice.KindVertexBuffer, id: i})
	}

	r := &recorder{panicOn: 3}
	st := s.DrainAll(r)

	if st[gldevice.KindVertexBuffer] != 5 {
		t.Errorf("DrainAll() vertex buffers = %d, want 5", st[gldevice.KindVertexBuffer])
	}
	if len(r.destroyed) != 4 {
		t.Errorf("destroyed %d handles, want 4 (all but the panicking one)", len(r.destroyed))
	}
	for _, h := range r.destroyed {
		if h.id == 3 {
			t.Error("panicking handle recorded as destroyed")
		}
	}
}

func TestSetConcurrentProducers(t *testing.T) {
	var s Set

	const producers = 10
	const perProducer = 100
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				h := &handle{kind: gldevice.KindTexture, id: p*perProducer + i + 1}
				s.AddDisposeTexture(h)
			}
		}()
	}
	wg.Wait()

	r := &recorder{panicOn: -1}
	st := s.DrainAll(r)
	if st[gldevice.KindTexture] != producers*perProducer {
		t.Errorf("DrainAll() textures = %d, want %d", st[gldevice.KindTexture], producers*perProducer)
	}

	seen := make(map[int]bool)
	for _, h := range r.destroyed {
		if seen[h.id] {
			t.Errorf("handle %d destroyed twice", h.id)
		}
		seen[h.id] = true
	}
}
