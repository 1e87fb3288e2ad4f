// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netmodel

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/fracnet/geom"
)

func TestHarmonicAtRestIsZero(tst *testing.T) {
	chk.PrintTitle("HarmonicAtRestIsZero")
	fl := HarmonicForceLaw(1.0, 2.0, false)
	d := geom.Vec2{X: 2.0, Y: 0.0}
	f, ok := fl.Force(d)
	if !ok {
		tst.Fatalf("expected valid force")
	}
	chk.Float64(tst, "Fx", 1e-12, f.X, 0)
	chk.Float64(tst, "Fy", 1e-12, f.Y, 0)
	e, ok := fl.Energy(d)
	if !ok {
		tst.Fatalf("expected valid energy")
	}
	chk.Float64(tst, "E", 1e-12, e, 0)
}

func TestStrainThresholdBoundaryDoesNotBreak(tst *testing.T) {
	chk.PrintTitle("StrainThresholdBoundaryDoesNotBreak")
	bl := StrainThresholdBreakLaw(0.5, 2.0)
	d := geom.Vec2{X: 2.0 * 1.5, Y: 0.0} // |d| = r0*(1+lambda) exactly
	if bl.ShouldBreak(d) {
		tst.Errorf("break? must be strictly greater than threshold, not equal")
	}
	th, ok := bl.Threshold(d)
	if !ok {
		tst.Fatalf("expected valid threshold")
	}
	chk.Float64(tst, "threshold", 1e-12, th, 0)
}

func TestNormalizedHarmonicReportsUnscaledK(tst *testing.T) {
	chk.PrintTitle("NormalizedHarmonicReportsUnscaledK")
	fl := HarmonicForceLaw(4.0, 2.0, true)
	chk.Float64(tst, "stored K", 1e-12, fl.K, 2.0)
	chk.Float64(tst, "unscaled K", 1e-12, fl.UnscaledK(), 4.0)
}
