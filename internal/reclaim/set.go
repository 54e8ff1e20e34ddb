// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package reclaim

import (
	"runtime/debug"

	"github.com/gogpu/gldevice"
)

// DrainStats counts the handles destroyed by one DrainAll, per resource kind.
type DrainStats [gldevice.NumResourceKinds]int

// Total returns the number of handles destroyed across all kinds.
func (s DrainStats) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// Set holds one disposal queue per resource kind.
// It implements gldevice.Disposer; every method may be called from any
// goroutine.
type Set struct {
	textures      Queue[gldevice.Texture]
	renderbuffers Queue[gldevice.Renderbuffer]
	vertexBuffers Queue[gldevice.Buffer]
	indexBuffers  Queue[gldevice.Buffer]
	effects       Queue[gldevice.Effect]
	queries       Queue[gldevice.Query]
}

var _ gldevice.Disposer = (*Set)(nil)

func (s *Set) AddDisposeTexture(tex gldevice.Texture)          { s.textures.Push(tex) }
func (s *Set) AddDisposeRenderbuffer(rb gldevice.Renderbuffer) { s.renderbuffers.Push(rb) }
func (s *Set) AddDisposeVertexBuffer(buf gldevice.Buffer)      { s.vertexBuffers.Push(buf) }
func (s *Set) AddDisposeIndexBuffer(buf gldevice.Buffer)       { s.indexBuffers.Push(buf) }
func (s *Set) AddDisposeEffect(effect gldevice.Effect)         { s.effects.Push(effect) }
func (s *Set) AddDisposeQuery(query gldevice.Query)            { s.queries.Push(query) }

// Pending returns the approximate number of queued handles per kind.
func (s *Set) Pending() DrainStats {
	var p DrainStats
	p[gldevice.KindTexture] = s.textures.Pending()
	p[gldevice.KindRenderbuffer] = s.renderbuffers.Pending()
	p[gldevice.KindVertexBuffer] = s.vertexBuffers.Pending()
	p[gldevice.KindIndexBuffer] = s.indexBuffers.Pending()
	p[gldevice.KindEffect] = s.effects.Pending()
	p[gldevice.KindQuery] = s.queries.Pending()
	return p
}

// DrainAll destroys every queued handle through d. It must run on the thread
// that owns d.
//
// A destroy call that panics is logged and skipped so that the remaining
// handles are still destroyed.
func (s *Set) DrainAll(d gldevice.Disposer) DrainStats {
	var st DrainStats
	st[gldevice.KindTexture] = s.textures.Drain(func(v gldevice.Texture) {
		destroy(gldevice.KindTexture, func() { d.AddDisposeTexture(v) })
	})
	st[gldevice.KindRenderbuffer] = s.renderbuffers.Drain(func(v gldevice.Renderbuffer) {
		destroy(gldevice.KindRenderbuffer, func() { d.AddDisposeRenderbuffer(v) })
	})
	st[gldevice.KindVertexBuffer] = s.vertexBuffers.Drain(func(v gldevice.Buffer) {
		destroy(gldevice.KindVertexBuffer, func() { d.AddDisposeVertexBuffer(v) })
	})
	st[gldevice.KindIndexBuffer] = s.indexBuffers.Drain(func(v gldevice.Buffer) {
		destroy(gldevice.KindIndexBuffer, func() { d.AddDisposeIndexBuffer(v) })
	})
	st[gldevice.KindEffect] = s.effects.Drain(func(v gldevice.Effect) {
		destroy(gldevice.KindEffect, func() { d.AddDisposeEffect(v) })
	})
	st[gldevice.KindQuery] = s.queries.Drain(func(v gldevice.Query) {
		destroy(gldevice.KindQuery, func() { d.AddDisposeQuery(v) })
	})

	if total := st.Total(); total > 0 {
		gldevice.Logger().Debug("reclaim: drained disposal queues",
			"total", total,
			"textures", st[gldevice.KindTexture],
			"renderbuffers", st[gldevice.KindRenderbuffer],
			"vertexBuffers", st[gldevice.KindVertexBuffer],
			"indexBuffers", st[gldevice.KindIndexBuffer],
			"effects", st[gldevice.KindEffect],
			"queries", st[gldevice.KindQuery])
	}
	return st
}

func destroy(kind gldevice.ResourceKind, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			gldevice.Logger().Error("reclaim: destroy panicked",
				"kind", kind, "panic", r, "stack", string(debug.Stack()))
		}
	}()
	fn()
}
