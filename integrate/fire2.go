// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"math"

	"github.com/cpmech/fracnet/errs"
	"github.com/cpmech/fracnet/netmodel"
)

// Fire2Params holds the tunables of the FIRE-2 minimiser.
type Fire2Params struct {
	Alpha0  float64
	Ndelay  int
	Finc    float64
	Fdec    float64
	Falpha  float64
	Nnegmax int
	Dmax    float64
	DtMin   float64
	DtMax   float64
}

// DefaultFire2Params returns the canonical FIRE-2 tunables.
func DefaultFire2Params() Fire2Params {
	return Fire2Params{
		Alpha0:  0.25,
		Ndelay:  20,
		Finc:    1.1,
		Fdec:    0.5,
		Falpha:  0.99,
		Nnegmax: 2000,
		Dmax:    0.1,
		DtMin:   1e-8,
		DtMax:   0.1,
	}
}

// MinParams holds the convergence tolerances and iteration budget shared
// by the minimisers.
type MinParams struct {
	Ftol    float64
	Etol    float64
	MaxIter int
}

// energyEps is the small offset added to the relative energy-change
// denominator to avoid division by a near-zero sum.
const energyEps = 1e-300

// Fire2 runs the FIRE-2 minimiser on net to Ftol/Etol or maxIter,
// starting from pseudo-time step dt0 and mass-weighted velocity updates.
// Returns the final step size (useful for warm-starting a subsequent
// call) and any geometric-collapse error surfaced by force evaluation.
func Fire2(net *netmodel.Network, p Fire2Params, mp MinParams, dt0 float64) (dtFinal float64, err error) {
	npos, nneg := 0, 0
	alpha := p.Alpha0
	dt := dt0

	if err := net.ComputeForces(false, true); err != nil {
		return 0, err
	}
	if net.ForceSqSum() < mp.Ftol*mp.Ftol {
		return dt, nil
	}

	net.Nodes.ZeroVelocities()
	eCurr := net.Energy

	iter := 0
	for iter < mp.MaxIter {
		iter++

		vdotf := dotVV(net)
		if vdotf > 0 {
			npos++
			nneg = 0
			vdotv := dotVel(net)
			fdotf := net.ForceSqSum()
			scale1 := 1 - alpha
			scale2 := 0.0
			if fdotf > 1e-20 {
				scale2 = alpha * math.Sqrt(vdotv/fdotf)
			}
			if npos > p.Ndelay {
				dt = math.Min(dt*p.Finc, p.DtMax)
				alpha *= p.Falpha
			}
			for i := range net.Nodes.Vel {
				net.Nodes.Vel[i] = net.Nodes.Vel[i].Scale(scale1).Add(net.Nodes.Force[i].Scale(scale2))
			}
		} else {
			nneg++
			npos = 0
			if nneg > p.Nnegmax {
				return dt, nil
			}
			if iter > p.Ndelay {
				dt = math.Max(dt*p.Fdec, p.DtMin)
				alpha = p.Alpha0
			}
			for i := range net.Nodes.Pos {
				net.Nodes.Pos[i] = net.Nodes.Pos[i].Sub(net.Nodes.Vel[i].Scale(0.5 * dt))
			}
			net.Nodes.ZeroVelocities()
		}

		for i := range net.Nodes.Vel {
			net.Nodes.Vel[i] = net.Nodes.Vel[i].Add(net.Nodes.Force[i].Scale(dt / net.Nodes.Mass[i]))
			net.Nodes.Pos[i] = net.Nodes.Pos[i].Add(net.Nodes.Vel[i].Scale(dt))
		}

		ePrev := eCurr
		if err := net.ComputeForces(false, true); err != nil {
			return 0, err
		}
		eCurr = net.Energy

		if npos > p.Ndelay {
			if math.Abs(eCurr-ePrev) < mp.Etol*0.5*(math.Abs(eCurr)+math.Abs(ePrev)+energyEps) {
				return dt, nil
			}
			if net.ForceSqSum() < mp.Ftol*mp.Ftol {
				return dt, nil
			}
		}
	}
	return dt, errs.New(errs.NonConvergent, "FIRE-2 exhausted %d iterations", mp.MaxIter)
}

func dotVV(net *netmodel.Network) float64 {
	sum := 0.0
	for i := range net.Nodes.Vel {
		sum += net.Nodes.Vel[i].Dot(net.Nodes.Force[i])
	}
	return sum
}

func dotVel(net *netmodel.Network) float64 {
	sum := 0.0
	for _, v := range net.Nodes.Vel {
		sum += v.Dot(v)
	}
	return sum
}
