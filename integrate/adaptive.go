// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"math"

	"github.com/cpmech/fracnet/errs"
	"github.com/cpmech/fracnet/geom"
	"github.com/cpmech/fracnet/netmodel"
)

// AdaptiveParams holds the tunables of the adaptive overdamped Euler-Heun
// stepper.
type AdaptiveParams struct {
	MaxInnerIter int
	DtMin, DtMax float64
	QMin, QMax   float64
	EspRel       float64
	EspAbs       float64
	Zeta         float64
}

// DefaultAdaptiveParams returns reasonable defaults.
func DefaultAdaptiveParams() AdaptiveParams {
	return AdaptiveParams{
		MaxInnerIter: 50,
		DtMin:        1e-8,
		DtMax:        1.0,
		QMin:         0.2,
		QMax:         5.0,
		EspRel:       1e-6,
		EspAbs:       1e-10,
		Zeta:         1.0,
	}
}

// AdaptiveEulerHeunStep performs one accepted outer step of the adaptive
// overdamped Euler-Heun integrator starting from dtTry, returning the
// accepted step size dtAccepted and the suggested next dt. Forces on net
// must already reflect the current positions on entry; on return they
// reflect the accepted new positions.
func AdaptiveEulerHeunStep(net *netmodel.Network, p AdaptiveParams, dtTry float64) (dtAccepted, dtNext float64, err error) {
	dt := dtTry
	n := len(net.Nodes.Pos)
	rk := make([]geom.Vec2, n)
	fk := make([]geom.Vec2, n)
	copy(rk, net.Nodes.Pos)
	copy(fk, net.Nodes.Force)

	for iter := 0; iter < p.MaxInnerIter; iter++ {
		// predictor
		coef := dt / p.Zeta
		for i := 0; i < n; i++ {
			net.Nodes.Pos[i] = rk[i].Add(fk[i].Scale(coef))
		}
		if err := net.ComputeForces(false, false); err != nil {
			return 0, 0, err
		}
		fnew := make([]geom.Vec2, n)
		copy(fnew, net.Nodes.Force)

		// corrector
		half := dt / (2 * p.Zeta)
		for i := 0; i < n; i++ {
			net.Nodes.Pos[i] = rk[i].Add(fk[i].Add(fnew[i]).Scale(half))
		}

		// local error estimate
		maxE := 0.0
		for i := 0; i < n; i++ {
			ex := math.Abs(fnew[i].X-fk[i].X) * dt / (2 * p.Zeta)
			ey := math.Abs(fnew[i].Y-fk[i].Y) * dt / (2 * p.Zeta)
			tolx := p.EspAbs + p.EspRel*math.Abs(net.Nodes.Pos[i].X-rk[i].X)
			toly := p.EspAbs + p.EspRel*math.Abs(net.Nodes.Pos[i].Y-rk[i].Y)
			if r := ex / tolx; r > maxE {
				maxE = r
			}
			if r := ey / toly; r > maxE {
				maxE = r
			}
		}

		q := p.QMax
		if maxE > 0 {
			q = 1.0 / (2 * maxE)
			q = q * q
		}
		if math.IsNaN(q) {
			return 0, 0, errs.New(errs.NonConvergent, "adaptive stepper: NaN step factor")
		}
		q = clamp(q, p.QMin, p.QMax)

		if q > 1 {
			if err := net.ComputeForces(false, false); err != nil {
				return 0, 0, err
			}
			dtAccepted = dt
			dtNext = clamp(dt*q, p.DtMin, p.DtMax)
			return dtAccepted, dtNext, nil
		}

		// reject: restore state, shrink dt
		copy(net.Nodes.Pos, rk)
		copy(net.Nodes.Force, fk)
		newDt := dt * q
		if newDt <= p.DtMin {
			if dt <= p.DtMin {
				return 0, 0, errs.New(errs.NonConvergent,
					"adaptive stepper pinned at dtMin=%v without accepting", p.DtMin)
			}
			newDt = p.DtMin
		}
		dt = newDt
	}
	return 0, 0, errs.New(errs.NonConvergent,
		"adaptive stepper exhausted %d inner iterations", p.MaxInnerIter)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
