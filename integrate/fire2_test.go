// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/fracnet/geom"
	"github.com/cpmech/fracnet/netmodel"
)

// buildChain builds three collinear nodes connected by two identical
// harmonic bonds, with the middle node offset by eps along the axis.
func buildChain(eps float64) *netmodel.Network {
	box := geom.NewBox(100, 100, 0)
	net := netmodel.NewNetwork(box, 3, 2)
	net.Nodes.AddNode(0, geom.Vec2{X: 0, Y: 0}, geom.Vec2{}, 1)
	net.Nodes.AddNode(1, geom.Vec2{X: 5 + eps, Y: 0}, geom.Vec2{}, 1)
	net.Nodes.AddNode(2, geom.Vec2{X: 10, Y: 0}, geom.Vec2{}, 1)
	fl := netmodel.HarmonicForceLaw(1, 5, false)
	net.Bonds.AddBond(0, 1, fl, netmodel.NoneBreakLaw(), 0)
	net.Bonds.AddBond(1, 2, fl, netmodel.NoneBreakLaw(), 0)
	return net
}

func TestFire2MinimisesStretchedChain(tst *testing.T) {
	chk.PrintTitle("Fire2MinimisesStretchedChain")
	net := buildChain(0.5)
	p := DefaultFire2Params()
	mp := MinParams{Ftol: 1e-8, Etol: 1e-12, MaxIter: 20000}
	_, err := Fire2(net, p, mp, 0.01)
	if err != nil {
		tst.Fatalf("Fire2 failed: %v", err)
	}
	chk.Float64(tst, "middle x", 1e-4, net.Nodes.Pos[1].X, 5)
	chk.Float64(tst, "middle y", 1e-4, net.Nodes.Pos[1].Y, 0)
	if net.ForceSqSum() >= mp.Ftol*mp.Ftol {
		tst.Errorf("expected |F|^2 < Ftol^2, got %v", net.ForceSqSum())
	}
}

func TestFire2IdempotentAfterConvergence(tst *testing.T) {
	chk.PrintTitle("Fire2IdempotentAfterConvergence")
	net := buildChain(0.3)
	p := DefaultFire2Params()
	mp := MinParams{Ftol: 1e-8, Etol: 1e-12, MaxIter: 20000}
	dt, err := Fire2(net, p, mp, 0.01)
	if err != nil {
		tst.Fatalf("Fire2 failed: %v", err)
	}
	_, err = Fire2(net, p, mp, dt)
	if err != nil {
		tst.Fatalf("second Fire2 call failed: %v", err)
	}
	if net.ForceSqSum() >= mp.Ftol*mp.Ftol {
		tst.Errorf("a minimised configuration must remain minimised: |F|^2=%v", net.ForceSqSum())
	}
}
