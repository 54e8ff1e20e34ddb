// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import "github.com/gogpu/gldevice"

func (d *Device) CreateQuery() (gldevice.Query, error) {
	d.enter("CreateQuery")
	return &query{resource: d.newResource(gldevice.KindQuery)}, nil
}

// QueryBegin starts counting primitives into q. A query that is already
// active elsewhere is ended first.
func (d *Device) QueryBegin(q gldevice.Query) {
	d.enter("QueryBegin")
	qq := mustResolve[*query](d, "QueryBegin", gldevice.KindQuery, q)
	if d.activeQuery != nil {
		d.activeQuery.active = false
		d.activeQuery.complete = true
	}
	qq.active = true
	qq.complete = false
	qq.count = 0
	d.activeQuery = qq
}

func (d *Device) QueryEnd(q gldevice.Query) {
	d.enter("QueryEnd")
	qq := mustResolve[*query](d, "QueryEnd", gldevice.KindQuery, q)
	if !qq.active {
		return
	}
	qq.active = false
	qq.complete = true
	if d.activeQuery == qq {
		d.activeQuery = nil
	}
}

func (d *Device) QueryComplete(q gldevice.Query) bool {
	d.enter("QueryComplete")
	return mustResolve[*query](d, "QueryComplete", gldevice.KindQuery, q).complete
}

// QueryPixelCount returns the number of primitives counted by q.
func (d *Device) QueryPixelCount(q gldevice.Query) int {
	d.enter("QueryPixelCount")
	return mustResolve[*query](d, "QueryPixelCount", gldevice.KindQuery, q).count
}

// AddDisposeQuery destroys q immediately.
func (d *Device) AddDisposeQuery(q gldevice.Query) {
	d.enter("AddDisposeQuery")
	qq := mustResolve[*query](d, "AddDisposeQuery", gldevice.KindQuery, q)
	if d.activeQuery == qq {
		d.activeQuery = nil
	}
	d.destroy(&qq.resource)
}
