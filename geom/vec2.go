// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom implements 2D vector/tensor arithmetic and the periodic
// sheared-box geometry used by the spring-network core.
package geom

import "math"

// Vec2 is a fixed-dimension 2-vector of float64.
type Vec2 struct {
	X, Y float64
}

// NewVec2 returns a new Vec2.
func NewVec2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Add returns o+p.
func (o Vec2) Add(p Vec2) Vec2 { return Vec2{o.X + p.X, o.Y + p.Y} }

// Sub returns o-p.
func (o Vec2) Sub(p Vec2) Vec2 { return Vec2{o.X - p.X, o.Y - p.Y} }

// Scale returns o*s.
func (o Vec2) Scale(s float64) Vec2 { return Vec2{o.X * s, o.Y * s} }

// Dot returns the dot product o·p.
func (o Vec2) Dot(p Vec2) float64 { return o.X*p.X + o.Y*p.Y }

// Outer returns the outer product o⊗p as a Tensor2.
func (o Vec2) Outer(p Vec2) Tensor2 {
	return Tensor2{
		Xx: o.X * p.X, Xy: o.X * p.Y,
		Yx: o.Y * p.X, Yy: o.Y * p.Y,
	}
}

// Norm returns the Euclidean length |o|.
func (o Vec2) Norm() float64 { return math.Sqrt(o.X*o.X + o.Y*o.Y) }

// Abs returns the componentwise absolute value.
func (o Vec2) Abs() Vec2 { return Vec2{math.Abs(o.X), math.Abs(o.Y)} }

// MaxComp returns the largest component.
func (o Vec2) MaxComp() float64 {
	if o.X > o.Y {
		return o.X
	}
	return o.Y
}

// MaxAbsComp returns max(|X|,|Y|).
func (o Vec2) MaxAbsComp() float64 { return o.Abs().MaxComp() }
