// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binfile

import (
	"bytes"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/fracnet/geom"
	"github.com/cpmech/fracnet/netmodel"
)

func buildSampleNetwork() *netmodel.Network {
	box := geom.NewBox(10, 8, 0.5)
	net := netmodel.NewNetwork(box, 3, 2)
	net.Nodes.AddNode(0, geom.Vec2{X: 1, Y: 2}, geom.Vec2{}, 1)
	net.Nodes.AddNode(1, geom.Vec2{X: 3, Y: 4}, geom.Vec2{}, 1)
	net.Nodes.AddNode(2, geom.Vec2{X: 5, Y: 6}, geom.Vec2{}, 1)
	matrix := net.Tags.Add(tagMatrix)
	sacrificial := net.Tags.Add(tagSacrificial)
	net.Stress.InitTag(matrix)
	net.Stress.InitTag(sacrificial)
	net.Bonds.AddBond(0, 1, netmodel.HarmonicForceLaw(2, 5, true), netmodel.StrainThresholdBreakLaw(0.2, 5), matrix)
	net.Bonds.AddBond(1, 2, netmodel.VirtualForceLaw(), netmodel.NoneBreakLaw(), sacrificial)
	return net
}

func TestBinV2RoundTrip(tst *testing.T) {
	chk.PrintTitle("BinV2RoundTrip")
	net := buildSampleNetwork()

	var buf bytes.Buffer
	if err := Save(&buf, net); err != nil {
		tst.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(&buf)
	if err != nil {
		tst.Fatalf("Load failed: %v", err)
	}

	chk.Float64(tst, "Lx", 1e-12, loaded.Box.Lx, net.Box.Lx)
	chk.Float64(tst, "Ly", 1e-12, loaded.Box.Ly, net.Box.Ly)
	chk.Float64(tst, "shear strain", 1e-12, loaded.Box.ShearStrain(), net.Box.ShearStrain())

	if loaded.Nodes.Len() != net.Nodes.Len() {
		tst.Fatalf("node count mismatch: got %d want %d", loaded.Nodes.Len(), net.Nodes.Len())
	}
	for i := range net.Nodes.Pos {
		chk.Float64(tst, "node x", 1e-12, loaded.Nodes.Pos[i].X, net.Nodes.Pos[i].X)
		chk.Float64(tst, "node y", 1e-12, loaded.Nodes.Pos[i].Y, net.Nodes.Pos[i].Y)
	}

	if loaded.Bonds.Len() != net.Bonds.Len() {
		tst.Fatalf("bond count mismatch: got %d want %d", loaded.Bonds.Len(), net.Bonds.Len())
	}
	for i := range net.Bonds.Info {
		wantFL := net.Bonds.ForceLaw[i]
		gotFL := loaded.Bonds.ForceLaw[i]
		if gotFL.Kind != wantFL.Kind {
			tst.Errorf("bond %d force law kind mismatch: got %v want %v", i, gotFL.Kind, wantFL.Kind)
		}
		if wantFL.Kind == netmodel.ForceHarmonic {
			chk.Float64(tst, "bond k", 1e-9, gotFL.UnscaledK(), wantFL.UnscaledK())
			chk.Float64(tst, "bond r0", 1e-12, gotFL.R0, wantFL.R0)
		}
	}

	matrixMask := loaded.Tags.GetByName(tagMatrix)
	if !loaded.Bonds.TagsBits[0].Has(matrixMask) {
		tst.Errorf("expected bond 0 to carry the matrix tag after round trip")
	}
}
