// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "github.com/cpmech/gosl/chk"

// Box is a periodic, shear-capable simulation cell with sides Lx, Ly and
// tilt xy. Derived quantities are recomputed whenever Lx, Ly or xy change.
type Box struct {
	Lx, Ly, Xy float64 // primary state

	invLx, invLy, invXy float64
	halfLx, halfLy      float64
	area, invArea       float64
}

// NewBox builds a Box, validating Lx, Ly > 0.
func NewBox(lx, ly, xy float64) *Box {
	if lx <= 0 || ly <= 0 {
		chk.Panic("box sides must be positive: Lx=%v Ly=%v", lx, ly)
	}
	o := &Box{Lx: lx, Ly: ly, Xy: xy}
	o.update()
	return o
}

// update recomputes every derived quantity from Lx, Ly, Xy.
func (o *Box) update() {
	o.invLx = 1.0 / o.Lx
	o.invLy = 1.0 / o.Ly
	o.invXy = -o.Xy / (o.Lx * o.Ly)
	o.halfLx = 0.5 * o.Lx
	o.halfLy = 0.5 * o.Ly
	o.area = o.Lx * o.Ly
	o.invArea = 1.0 / o.area
}

// Set replaces Lx, Ly, Xy and recomputes derived quantities. Panics if the
// new sides are not positive.
func (o *Box) Set(lx, ly, xy float64) {
	if lx <= 0 || ly <= 0 {
		chk.Panic("box sides must be positive: Lx=%v Ly=%v", lx, ly)
	}
	o.Lx, o.Ly, o.Xy = lx, ly, xy
	o.update()
}

// Area returns Lx*Ly.
func (o *Box) Area() float64 { return o.area }

// InvArea returns 1/(Lx*Ly).
func (o *Box) InvArea() float64 { return o.invArea }

// ShearStrain returns xy/Ly.
func (o *Box) ShearStrain() float64 { return o.Xy / o.Ly }

// Shear updates xy <- xy + step*Ly (the affine shear increment).
func (o *Box) Shear(step float64) {
	o.Xy += step * o.Ly
	o.update()
}

// LambdaToX maps a fractional coordinate to Cartesian.
func (o *Box) LambdaToX(lam Vec2) Vec2 {
	return Vec2{
		X: o.Lx*lam.X + o.Xy*lam.Y,
		Y: o.Ly * lam.Y,
	}
}

// XToLambda maps a Cartesian coordinate to fractional.
func (o *Box) XToLambda(x Vec2) Vec2 {
	return Vec2{
		X: o.invLx*x.X + o.invXy*x.Y,
		Y: o.invLy * x.Y,
	}
}

// Wrap folds x into the principal image [0,1)×[0,1) in fractional space and
// maps it back to Cartesian. Folding is repeated in case a single fold does
// not land inside the principal image (large excursions).
func (o *Box) Wrap(x Vec2) Vec2 {
	lam := o.XToLambda(x)
	lam.X = foldUnit(lam.X)
	lam.Y = foldUnit(lam.Y)
	return o.LambdaToX(lam)
}

// foldUnit folds v repeatedly into [0,1).
func foldUnit(v float64) float64 {
	for v < 0 {
		v += 1
	}
	for v >= 1 {
		v -= 1
	}
	return v
}

// MinImage returns the minimum-image vector p2-p1 under the tilted,
// periodic box: fold y first (shifting x by xy with the sign of y's fold),
// then fold x.
func (o *Box) MinImage(p1, p2 Vec2) Vec2 {
	d := p2.Sub(p1)
	for d.Y > o.halfLy {
		d.Y -= o.Ly
		d.X -= o.Xy
	}
	for d.Y < -o.halfLy {
		d.Y += o.Ly
		d.X += o.Xy
	}
	for d.X > o.halfLx {
		d.X -= o.Lx
	}
	for d.X < -o.halfLx {
		d.X += o.Lx
	}
	return d
}

// Elongate applies area-preserving uniaxial elongation along y relative to
// a rest box: Lx <- LxRest/(1+eps), Ly <- LyRest*(1+eps), xy unchanged.
func (o *Box) Elongate(rest *Box, eps float64) {
	o.Set(rest.Lx/(1+eps), rest.Ly*(1+eps), rest.Xy)
}

// Clone returns an independent copy.
func (o *Box) Clone() *Box {
	c := *o
	return &c
}
