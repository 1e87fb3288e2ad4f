// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package root implements the ITP (Interpolate-Truncate-Project) bracketed
// root finder used to locate strain values at which a bond first crosses
// its break threshold.
package root

import (
	"math"

	"github.com/cpmech/fracnet/errs"
)

// Params holds the ITP method's tunables.
type Params struct {
	N0      uint
	K1Scale float64
	K2      float64
	Tol     float64
}

// DefaultParams returns the canonical ITP tunables.
func DefaultParams() Params {
	return Params{N0: 1, K1Scale: 0.1, K2: 2.0, Tol: 1e-6}
}

// ITP is a stateful Interpolate-Truncate-Project root finder. A caller
// maintains the bracket [a,b] and the sign invariant on f across calls to
// GuessRoot, narrowing the bracket after each evaluation.
type ITP struct {
	n0      uint
	k1Scale float64
	k1      float64
	k2      float64
	tol     float64
	iters   uint
	nHalf   uint
	nMax    uint
}

// New constructs an ITP solver for the initial bracket [a,b] with the
// given tolerance, using p's n0/k1Scale/k2.
func New(p Params, a, b float64) *ITP {
	if a >= b {
		panic(errs.New(errs.RootError, "ITP: invalid bracket [%v,%v]", a, b))
	}
	if p.Tol <= 0 {
		panic(errs.New(errs.RootError, "ITP: invalid tolerance %v", p.Tol))
	}
	s := &ITP{
		n0:      p.N0,
		k1Scale: p.K1Scale,
		k2:      p.K2,
		tol:     p.Tol,
	}
	s.k1 = p.K1Scale * (b - a)
	s.resetRange(a, b)
	return s
}

// Reset rebrackets the solver to [a,b], zeroing its iteration counter.
func (s *ITP) Reset(a, b float64) {
	if a >= b {
		panic(errs.New(errs.RootError, "ITP: invalid bracket [%v,%v]", a, b))
	}
	s.resetRange(a, b)
}

func (s *ITP) resetRange(a, b float64) {
	s.iters = 0
	s.nHalf = uint(math.Ceil(math.Log2((b - a) / (2 * s.tol))))
	s.nMax = s.nHalf + s.n0
}

// NMax returns the maximum number of iterations to reach the target
// tolerance from the current bracket.
func (s *ITP) NMax() uint {
	return s.nMax
}

// GuessRoot produces the next probe point inside (a,b), given the bracket
// endpoints and their function values fa, fb (with fa and fb of opposite
// sign, per the caller-maintained invariant). It does not itself evaluate
// f or narrow the bracket; the caller re-brackets and calls again.
func (s *ITP) GuessRoot(a, b, fa, fb float64) float64 {
	xHalf := (a + b) * 0.5
	r := s.tol*math.Pow(2, float64(s.nMax)-float64(s.iters)) - (b-a)*0.5
	delta := s.k1 * math.Pow(b-a, s.k2)

	xf := (fb*a - fa*b) / (fb - fa)
	sigma := sign(xHalf - xf)
	var xt float64
	if delta <= math.Abs(xf-xHalf) {
		xt = xf + sigma*delta
	} else {
		xt = xHalf
	}
	var xITP float64
	if math.Abs(xt-xHalf) <= r {
		xITP = xt
	} else {
		xITP = xHalf - sigma*r
	}

	s.iters++
	if xITP <= a || xITP >= b {
		panic(errs.New(errs.RootError, "ITP: guess %v left bracket (%v,%v)", xITP, a, b))
	}
	return xITP
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
