// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

// Tensor2 is a fixed 2×2 tensor of float64, used for stresses.
type Tensor2 struct {
	Xx, Xy, Yx, Yy float64
}

// Add returns o+p.
func (o Tensor2) Add(p Tensor2) Tensor2 {
	return Tensor2{o.Xx + p.Xx, o.Xy + p.Xy, o.Yx + p.Yx, o.Yy + p.Yy}
}

// Scale returns o*s.
func (o Tensor2) Scale(s float64) Tensor2 {
	return Tensor2{o.Xx * s, o.Xy * s, o.Yx * s, o.Yy * s}
}

// Trace returns Xx+Yy.
func (o Tensor2) Trace() float64 { return o.Xx + o.Yy }

// IsSymmetric reports whether Xy and Yx agree within tol.
func (o Tensor2) IsSymmetric(tol float64) bool {
	d := o.Xy - o.Yx
	if d < 0 {
		d = -d
	}
	return d <= tol
}
