// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netmodel

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/fracnet/geom"
)

// buildSingleBond constructs a two-node/one-bond network whose bond rests
// at r0=2 when bx=6 and sits past its break threshold when bx=7.01.
func buildSingleBond(bx float64) *Network {
	box := geom.NewBox(10, 10, 0)
	net := NewNetwork(box, 2, 1)
	net.Nodes.AddNode(0, geom.Vec2{X: 4, Y: 5}, geom.Vec2{}, 1)
	net.Nodes.AddNode(1, geom.Vec2{X: bx, Y: 5}, geom.Vec2{}, 1)
	fl := HarmonicForceLaw(1, 2, false)
	bl := StrainThresholdBreakLaw(0.5, 2)
	net.Bonds.AddBond(0, 1, fl, bl, 0)
	return net
}

func TestSingleHarmonicBondAtRest(tst *testing.T) {
	chk.PrintTitle("SingleHarmonicBondAtRest")
	net := buildSingleBond(6)
	err := net.ComputeForces(true, true)
	if err != nil {
		tst.Fatalf("ComputeForces failed: %v", err)
	}
	chk.Float64(tst, "energy", 1e-12, net.Energy, 0)
	chk.Float64(tst, "Fx0", 1e-12, net.Nodes.Force[0].X, 0)
	chk.Float64(tst, "Fy0", 1e-12, net.Nodes.Force[0].Y, 0)
	chk.Float64(tst, "Fx1", 1e-12, net.Nodes.Force[1].X, 0)
	chk.Float64(tst, "total.Xx", 1e-12, net.Stress.Total.Xx, 0)
	if net.Breaks.Len() != 0 {
		tst.Errorf("expected no breaks")
	}
}

func TestHarmonicBondStretchedToThreshold(tst *testing.T) {
	chk.PrintTitle("HarmonicBondStretchedToThreshold")
	net := buildSingleBond(7.01)
	err := net.ComputeForces(true, true)
	if err != nil {
		tst.Fatalf("ComputeForces failed: %v", err)
	}
	if net.Breaks.Len() != 1 {
		tst.Fatalf("expected exactly one break event, got %d", net.Breaks.Len())
	}
	recs := net.Breaks.Drain()
	chk.IntAssert(recs[0].Index, 0)

	if net.Bonds.ForceLaw[0].Kind != ForceVirtual {
		tst.Errorf("broken bond must become Virtual")
	}
	if net.Bonds.BreakLaw[0].Kind != BreakNone {
		tst.Errorf("broken bond must become None")
	}
	if !net.Bonds.TagsBits[0].Has(1) {
		tst.Errorf("broken bond must carry the broken tag")
	}

	// next compute_forces: force and energy are zero for the now-virtual bond
	err = net.ComputeForces(true, true)
	if err != nil {
		tst.Fatalf("ComputeForces failed: %v", err)
	}
	chk.Float64(tst, "energy", 1e-12, net.Energy, 0)
	chk.Float64(tst, "Fx0", 1e-12, net.Nodes.Force[0].X, 0)
}

func TestZeroBondsLeavesEverythingZero(tst *testing.T) {
	chk.PrintTitle("ZeroBondsLeavesEverythingZero")
	box := geom.NewBox(10, 10, 0)
	net := NewNetwork(box, 2, 0)
	net.Nodes.AddNode(0, geom.Vec2{X: 1, Y: 1}, geom.Vec2{}, 1)
	net.Nodes.AddNode(1, geom.Vec2{X: 2, Y: 2}, geom.Vec2{}, 1)
	err := net.ComputeForces(true, true)
	if err != nil {
		tst.Fatalf("ComputeForces failed: %v", err)
	}
	chk.Float64(tst, "energy", 1e-12, net.Energy, 0)
	chk.Float64(tst, "Fx0", 1e-12, net.Nodes.Force[0].X, 0)
	chk.Float64(tst, "total.Xx", 1e-12, net.Stress.Total.Xx, 0)
}

func TestForceSumIsZeroNewtonsThirdLaw(tst *testing.T) {
	chk.PrintTitle("ForceSumIsZeroNewtonsThirdLaw")
	box := geom.NewBox(20, 20, 0)
	net := NewNetwork(box, 4, 3)
	net.Nodes.AddNode(0, geom.Vec2{X: 0, Y: 0}, geom.Vec2{}, 1)
	net.Nodes.AddNode(1, geom.Vec2{X: 3, Y: 0.5}, geom.Vec2{}, 1)
	net.Nodes.AddNode(2, geom.Vec2{X: 1, Y: 4}, geom.Vec2{}, 1)
	net.Nodes.AddNode(3, geom.Vec2{X: 5, Y: 5}, geom.Vec2{}, 1)
	net.Bonds.AddBond(0, 1, HarmonicForceLaw(1, 2, false), NoneBreakLaw(), 0)
	net.Bonds.AddBond(1, 2, HarmonicForceLaw(2, 3, false), NoneBreakLaw(), 0)
	net.Bonds.AddBond(2, 3, HarmonicForceLaw(0.5, 1.5, false), NoneBreakLaw(), 0)
	err := net.ComputeForces(false, true)
	if err != nil {
		tst.Fatalf("ComputeForces failed: %v", err)
	}
	var sumX, sumY float64
	for _, f := range net.Nodes.Force {
		sumX += f.X
		sumY += f.Y
	}
	chk.Float64(tst, "sum Fx", 1e-10, sumX, 0)
	chk.Float64(tst, "sum Fy", 1e-10, sumY, 0)
}

func TestShearThenInverseShearRestoresExactly(tst *testing.T) {
	chk.PrintTitle("ShearThenInverseShearRestoresExactly")
	box := geom.NewBox(10, 10, 0)
	net := NewNetwork(box, 2, 0)
	net.Nodes.AddNode(0, geom.Vec2{X: 1, Y: 2}, geom.Vec2{}, 1)
	net.Nodes.AddNode(1, geom.Vec2{X: 3, Y: 4}, geom.Vec2{}, 1)
	x0, y0 := net.Nodes.Pos[0].X, net.Nodes.Pos[0].Y
	xy0 := net.Box.Xy
	net.Shear(0.2)
	net.Shear(-0.2)
	chk.Float64(tst, "xy", 1e-12, net.Box.Xy, xy0)
	chk.Float64(tst, "x0", 1e-12, net.Nodes.Pos[0].X, x0)
	chk.Float64(tst, "y0", 1e-12, net.Nodes.Pos[0].Y, y0)
}
