// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestBoxLambdaRoundTrip(tst *testing.T) {
	chk.PrintTitle("BoxLambdaRoundTrip")
	b := NewBox(10, 8, 1.5)
	pts := []Vec2{{1, 2}, {-3, 4}, {9.9, -7.2}, {0, 0}}
	for _, p := range pts {
		got := b.LambdaToX(b.XToLambda(p))
		chk.Float64(tst, "x", 1e-12, got.X, p.X)
		chk.Float64(tst, "y", 1e-12, got.Y, p.Y)
	}
}

func TestBoxWrapIdempotent(tst *testing.T) {
	chk.PrintTitle("BoxWrapIdempotent")
	b := NewBox(5, 5, 0.5)
	pts := []Vec2{{12, -3}, {-100, 200}, {2.5, 2.5}}
	for _, p := range pts {
		w1 := b.Wrap(p)
		w2 := b.Wrap(w1)
		chk.Float64(tst, "x", 1e-9, w1.X, w2.X)
		chk.Float64(tst, "y", 1e-9, w1.Y, w2.Y)
		lam := b.XToLambda(w1)
		if lam.X < -1e-9 || lam.X >= 1+1e-9 || lam.Y < -1e-9 || lam.Y >= 1+1e-9 {
			tst.Errorf("wrap(%v) = %v has fractional coords outside principal image: %v", p, w1, lam)
		}
	}
}

func TestBoxMinImageAntisymmetric(tst *testing.T) {
	chk.PrintTitle("BoxMinImageAntisymmetric")
	b := NewBox(10, 6, 2.0)
	p := Vec2{1, 1}
	q := Vec2{8.5, 5.9}
	d1 := b.MinImage(p, q)
	d2 := b.MinImage(q, p)
	chk.Float64(tst, "x", 1e-12, d1.X, -d2.X)
	chk.Float64(tst, "y", 1e-12, d1.Y, -d2.Y)
}

func TestBoxShearInverse(tst *testing.T) {
	chk.PrintTitle("BoxShearInverse")
	b := NewBox(10, 10, 0.0)
	xy0 := b.Xy
	b.Shear(0.3)
	b.Shear(-0.3)
	chk.Float64(tst, "xy", 1e-12, b.Xy, xy0)
}

func TestBoxElongatePreservesArea(tst *testing.T) {
	chk.PrintTitle("BoxElongatePreservesArea")
	rest := NewBox(10, 10, 0.0)
	b := rest.Clone()
	b.Elongate(rest, 0.2)
	chk.Float64(tst, "area", 1e-9, b.Area(), rest.Area())
}

func TestBoxShearStrain(tst *testing.T) {
	chk.PrintTitle("BoxShearStrain")
	b := NewBox(10, 5, 2.5)
	chk.Float64(tst, "gamma", 1e-12, b.ShearStrain(), 0.5)
}
