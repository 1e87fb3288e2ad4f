// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"github.com/cpmech/fracnet/geom"
	"github.com/cpmech/fracnet/netmodel"
)

// HybridStep tries one adaptive overdamped Euler-Heun step; if it
// decreases energy, the step is accepted as-is. Otherwise the position
// and force state is rewound and a steepest-descent + quadratic line
// search is attempted along the (pre-step) force direction. A
// ZeroAlpha/ZeroQuad line-search failure is not itself an error: it means
// the configuration is converged enough to stop, reported via converged.
// dtNext is the adaptive stepper's suggestion for next time, unchanged if
// the line-search path was taken.
func HybridStep(net *netmodel.Network, ap AdaptiveParams, lp LineSearchParams, dtTry float64) (dtAccepted, dtNext float64, converged bool, err error) {
	e0 := net.Energy
	x0 := make([]geom.Vec2, len(net.Nodes.Pos))
	copy(x0, net.Nodes.Pos)
	f0 := make([]geom.Vec2, len(net.Nodes.Force))
	copy(f0, net.Nodes.Force)

	dtAccepted, dtNext, err = AdaptiveEulerHeunStep(net, ap, dtTry)
	if err == nil && net.Energy < e0 {
		return dtAccepted, dtNext, false, nil
	}
	if dtNext == 0 {
		dtNext = dtTry
	}

	// rewind: restore positions/forces/energy, attempt line search instead
	copy(net.Nodes.Pos, x0)
	copy(net.Nodes.Force, f0)
	net.Energy = e0

	_, reason, lerr := SDLineSearch(net, lp)
	if lerr != nil {
		return 0, dtNext, false, lerr
	}
	switch reason {
	case LineSearchOK:
		return 0, dtNext, false, nil
	case ZeroAlpha, ZeroQuad:
		return 0, dtNext, true, nil
	default:
		return 0, dtNext, true, nil
	}
}
