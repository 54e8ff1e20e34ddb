// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import "github.com/gogpu/gldevice/backend"

// init registers the software backend on package import.
func init() {
	backend.Register(backend.BackendSoftware, Factory)
}
