// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"math"

	"github.com/cpmech/fracnet/geom"
	"github.com/cpmech/fracnet/netmodel"
)

// LineSearchFailure enumerates the non-fatal ways a steepest-descent +
// quadratic line search can fail to produce a usable step.
type LineSearchFailure int

const (
	// LineSearchOK indicates Alpha is a usable step size.
	LineSearchOK LineSearchFailure = iota
	// DirectionNotDescent: the chosen direction does not decrease energy.
	DirectionNotDescent
	// ZeroForce: the force vector is (numerically) zero.
	ZeroForce
	// ZeroQuad: the quadratic interpolation degenerated (flat/ill-posed).
	ZeroQuad
	// ZeroAlpha: backtracking collapsed the step to zero.
	ZeroAlpha
)

// LineSearchParams controls the backtracking quadratic line search.
type LineSearchParams struct {
	InitialAlpha float64
	Backtrack    float64 // multiplicative shrink factor, in (0,1)
	MaxIter      int
	MinAlpha     float64
}

// DefaultLineSearchParams returns reasonable defaults.
func DefaultLineSearchParams() LineSearchParams {
	return LineSearchParams{InitialAlpha: 1e-2, Backtrack: 0.5, MaxIter: 30, MinAlpha: 1e-12}
}

// SDLineSearch performs steepest descent along the current forces with a
// two-point quadratic-interpolation backtracking line search, applying
// the accepted step to net.Nodes.Pos and leaving net's forces/energy
// consistent with the new positions. Returns the chosen step alpha and
// LineSearchOK, or zero and the failure reason.
func SDLineSearch(net *netmodel.Network, p LineSearchParams) (alpha float64, reason LineSearchFailure, err error) {
	n := len(net.Nodes.Pos)
	dir := make([]geom.Vec2, n)
	fdotf := 0.0
	for i := range net.Nodes.Force {
		dir[i] = net.Nodes.Force[i]
		fdotf += dir[i].Dot(dir[i])
	}
	if fdotf < 1e-300 {
		return 0, ZeroForce, nil
	}

	e0 := net.Energy
	x0 := make([]geom.Vec2, n)
	copy(x0, net.Nodes.Pos)

	tryAlpha := func(a float64) (float64, error) {
		for i := 0; i < n; i++ {
			net.Nodes.Pos[i] = x0[i].Add(dir[i].Scale(a))
		}
		e, cerr := net.ComputeEnergy()
		return e, cerr
	}

	a := p.InitialAlpha
	e1, cerr := tryAlpha(a)
	if cerr != nil {
		return 0, 0, cerr
	}

	// if the first trial already decreases energy, attempt a quadratic
	// refinement using (0,e0) and (a,e1) plus the directional derivative
	// -fdotf at 0.
	for iter := 0; iter < p.MaxIter; iter++ {
		if e1 < e0 {
			denom := 2 * (e1 - e0 + fdotf*a)
			if math.Abs(denom) < 1e-300 {
				if err := net.ComputeForces(false, true); err != nil {
					return 0, 0, err
				}
				return a, LineSearchOK, nil
			}
			aq := fdotf * a * a / denom
			if aq <= 0 || math.IsNaN(aq) || math.IsInf(aq, 0) {
				return 0, ZeroQuad, nil
			}
			eq, cerr := tryAlpha(aq)
			if cerr != nil {
				return 0, 0, cerr
			}
			if eq < e0 && eq <= e1 {
				if err := net.ComputeForces(false, true); err != nil {
					return 0, 0, err
				}
				return aq, LineSearchOK, nil
			}
			if err := net.ComputeForces(false, true); err != nil {
				return 0, 0, err
			}
			return a, LineSearchOK, nil
		}
		a *= p.Backtrack
		if a < p.MinAlpha {
			for i := 0; i < n; i++ {
				net.Nodes.Pos[i] = x0[i]
			}
			if err := net.ComputeForces(false, true); err != nil {
				return 0, 0, err
			}
			return 0, ZeroAlpha, nil
		}
		e1, cerr = tryAlpha(a)
		if cerr != nil {
			return 0, 0, cerr
		}
	}
	for i := 0; i < n; i++ {
		net.Nodes.Pos[i] = x0[i]
	}
	if err := net.ComputeForces(false, true); err != nil {
		return 0, 0, err
	}
	return 0, DirectionNotDescent, nil
}
