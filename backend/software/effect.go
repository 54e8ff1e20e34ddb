// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/gogpu/naga"

	"github.com/gogpu/gldevice"
	"github.com/gogpu/gldevice/internal/cache"
)

// programs caches compiled SPIR-V by source digest across all devices.
var programs = cache.New[[sha256.Size]byte, []byte](256)

// CreateEffect compiles WGSL effect source to SPIR-V. Each @vertex entry
// point is a technique and each @fragment entry point a pass.
func (d *Device) CreateEffect(code []byte) (gldevice.Effect, error) {
	d.enter("CreateEffect")
	source := string(code)
	spirv, cached, err := programs.GetOrCreate(sha256.Sum256(code), func() ([]byte, error) {
		return naga.Compile(source)
	})
	if err != nil {
		return nil, fmt.Errorf("software: compile effect: %w", err)
	}

	e := &effect{
		resource:   d.newResource(gldevice.KindEffect),
		source:     source,
		spirv:      spirv,
		techniques: max(1, strings.Count(source, "@vertex")),
		passes:     max(1, strings.Count(source, "@fragment")),
	}
	gldevice.Logger().Debug("software: effect compiled",
		"id", e.id, "spirvBytes", len(spirv), "cached", cached,
		"techniques", e.techniques, "passes", e.passes)
	return e, nil
}

// CloneEffect returns a new handle sharing the compiled code of effect, with
// its own current technique.
func (d *Device) CloneEffect(eff gldevice.Effect) (gldevice.Effect, error) {
	d.enter("CloneEffect")
	src, err := resolve[*effect](d, "CloneEffect", gldevice.KindEffect, eff)
	if err != nil {
		return nil, err
	}
	clone := *src
	clone.resource = d.newResource(gldevice.KindEffect)
	return &clone, nil
}

func (d *Device) SetEffectTechnique(eff gldevice.Effect, technique int) error {
	d.enter("SetEffectTechnique")
	e, err := resolve[*effect](d, "SetEffectTechnique", gldevice.KindEffect, eff)
	if err != nil {
		return err
	}
	if technique < 0 || technique >= e.techniques {
		return outOfRange("technique %d of %d", technique, e.techniques)
	}
	e.technique = technique
	return nil
}

// ApplyEffect makes pass of effect current for subsequent draws.
func (d *Device) ApplyEffect(eff gldevice.Effect, pass int) error {
	d.enter("ApplyEffect")
	e, err := resolve[*effect](d, "ApplyEffect", gldevice.KindEffect, eff)
	if err != nil {
		return err
	}
	if pass < 0 || pass >= e.passes {
		return outOfRange("pass %d of %d", pass, e.passes)
	}
	d.effect = e
	d.pass = pass
	return nil
}

// BeginPassRestore saves the current effect and pipeline state.
func (d *Device) BeginPassRestore(eff gldevice.Effect) error {
	d.enter("BeginPassRestore")
	e, err := resolve[*effect](d, "BeginPassRestore", gldevice.KindEffect, eff)
	if err != nil {
		return err
	}
	d.restore = append(d.restore, passState{
		effect:       e,
		pass:         d.pass,
		blend:        d.blend,
		depthStencil: d.depthStencil,
		rasterizer:   d.rasterizer,
	})
	return nil
}

// EndPassRestore restores the state saved by the matching BeginPassRestore.
func (d *Device) EndPassRestore(eff gldevice.Effect) error {
	d.enter("EndPassRestore")
	e, err := resolve[*effect](d, "EndPassRestore", gldevice.KindEffect, eff)
	if err != nil {
		return err
	}
	n := len(d.restore)
	if n == 0 || d.restore[n-1].effect != e {
		return fmt.Errorf("%w: effect %d", ErrUnbalancedPass, e.id)
	}
	s := d.restore[n-1]
	d.restore = d.restore[:n-1]
	d.effect = s.effect
	d.pass = s.pass
	d.blend = s.blend
	d.depthStencil = s.depthStencil
	d.rasterizer = s.rasterizer
	return nil
}

// AddDisposeEffect destroys effect immediately.
func (d *Device) AddDisposeEffect(eff gldevice.Effect) {
	d.enter("AddDisposeEffect")
	e := mustResolve[*effect](d, "AddDisposeEffect", gldevice.KindEffect, eff)
	if d.effect == e {
		d.effect = nil
	}
	e.spirv = nil
	d.destroy(&e.resource)
}
