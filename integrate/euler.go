// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package integrate implements the overdamped integrators, the FIRE-2
// minimiser, and the steepest-descent + quadratic line search used to
// relax a netmodel.Network toward mechanical equilibrium.
package integrate

import "github.com/cpmech/fracnet/netmodel"

// OverdampedEulerStep advances positions by the explicit overdamped Euler
// rule x <- x + F/zeta * dt, using the forces already present on net
// (caller must have called ComputeForces beforehand). Does not recompute
// forces afterward; the caller does that if needed.
func OverdampedEulerStep(net *netmodel.Network, zeta, dt float64) {
	coef := dt / zeta
	for i := range net.Nodes.Pos {
		net.Nodes.Pos[i] = net.Nodes.Pos[i].Add(net.Nodes.Force[i].Scale(coef))
	}
}
