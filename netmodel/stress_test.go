// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netmodel

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/fracnet/geom"
	"github.com/cpmech/fracnet/tags"
)

func TestStressMergeCommutative(tst *testing.T) {
	chk.PrintTitle("StressMergeCommutative")
	reg := tags.NewRegistry()
	matrix := reg.Add("matrix")

	a := NewStressAccumulator()
	a.InitTag(matrix)
	a.Distribute(geom.Tensor2{Xx: 1, Xy: 2, Yx: 2, Yy: 3}, matrix)

	b := NewStressAccumulator()
	b.InitTag(matrix)
	b.Distribute(geom.Tensor2{Xx: 4, Xy: 1, Yx: 1, Yy: 5}, matrix)

	m1 := Merge(a, b)
	m2 := Merge(b, a)
	chk.Float64(tst, "Total.Xx", 1e-12, m1.Total.Xx, m2.Total.Xx)
	chk.Float64(tst, "Total.Xy", 1e-12, m1.Total.Xy, m2.Total.Xy)
	chk.Float64(tst, "matrix.Xx", 1e-12, m1.Get(matrix).Xx, m2.Get(matrix).Xx)
}

func TestStressMergeDisjointTagsLossless(tst *testing.T) {
	chk.PrintTitle("StressMergeDisjointTagsLossless")
	reg := tags.NewRegistry()
	matrix := reg.Add("matrix")
	sacrificial := reg.Add("sacrificial")

	a := NewStressAccumulator()
	a.InitTag(matrix)
	a.Distribute(geom.Tensor2{Xx: 1}, matrix)

	b := NewStressAccumulator()
	b.InitTag(sacrificial)
	b.Distribute(geom.Tensor2{Xx: 2}, sacrificial)

	m := Merge(a, b)
	if !m.IsInitialised(matrix) || !m.IsInitialised(sacrificial) {
		tst.Fatalf("merge must initialise both tags")
	}
	chk.Float64(tst, "matrix.Xx", 1e-12, m.Get(matrix).Xx, 1)
	chk.Float64(tst, "sacrificial.Xx", 1e-12, m.Get(sacrificial).Xx, 2)
}

func TestStressSymmetryForCentralForces(tst *testing.T) {
	chk.PrintTitle("StressSymmetryForCentralForces")
	box := geom.NewBox(20, 20, 0)
	net := NewNetwork(box, 4, 3)
	net.Nodes.AddNode(0, geom.Vec2{X: 0, Y: 0}, geom.Vec2{}, 1)
	net.Nodes.AddNode(1, geom.Vec2{X: 3, Y: 0.7}, geom.Vec2{}, 1)
	net.Nodes.AddNode(2, geom.Vec2{X: 1, Y: 4}, geom.Vec2{}, 1)
	net.Nodes.AddNode(3, geom.Vec2{X: 5, Y: 5}, geom.Vec2{}, 1)
	net.Bonds.AddBond(0, 1, HarmonicForceLaw(1, 2, false), NoneBreakLaw(), 0)
	net.Bonds.AddBond(1, 2, HarmonicForceLaw(2, 3, false), NoneBreakLaw(), 0)
	net.Bonds.AddBond(2, 3, HarmonicForceLaw(0.5, 1.5, false), NoneBreakLaw(), 0)
	if err := net.ComputeForces(false, true); err != nil {
		tst.Fatalf("ComputeForces failed: %v", err)
	}
	if !net.Stress.Total.IsSymmetric(1e-9) {
		tst.Errorf("total stress should be symmetric for central pairwise forces: %+v", net.Stress.Total)
	}
}
