// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"github.com/cpmech/fracnet/geom"
	"github.com/cpmech/fracnet/netmodel"
)

// OverdampedEulerHeunStep performs one explicit predictor-corrector step:
// save F_n, take an Euler step at dt, recompute forces, correct positions
// by (F-F_n)/(2*zeta), then set F <- (F+F_n)/2 and v <- F/zeta. Returns an
// error if force recomputation during the predictor fails (geometric
// collapse).
func OverdampedEulerHeunStep(net *netmodel.Network, zeta, dt float64) error {
	n := len(net.Nodes.Pos)
	fn := make([]geom.Vec2, n)
	copy(fn, net.Nodes.Force)

	coef := dt / zeta
	for i := range net.Nodes.Pos {
		net.Nodes.Pos[i] = net.Nodes.Pos[i].Add(fn[i].Scale(coef))
	}

	if err := net.ComputeForces(false, false); err != nil {
		return err
	}

	half := dt / (2 * zeta)
	for i := range net.Nodes.Pos {
		net.Nodes.Pos[i] = net.Nodes.Pos[i].Add(net.Nodes.Force[i].Sub(fn[i]).Scale(half))
	}

	for i := range net.Nodes.Force {
		net.Nodes.Force[i] = net.Nodes.Force[i].Add(fn[i]).Scale(0.5)
		net.Nodes.Vel[i] = net.Nodes.Force[i].Scale(1 / zeta)
	}
	return nil
}
