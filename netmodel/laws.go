// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netmodel

import (
	"math"

	"github.com/cpmech/fracnet/geom"
)

// lengthFloor is the minimum bond length below which harmonic force
// evaluation is considered geometrically degenerate.
const lengthFloor = 1e-12

// ForceKind is the closed set of force-law variants. The set is fixed at
// compile time: dispatch below is a tagged switch, never a virtual call,
// and never allocates per bond.
type ForceKind uint8

const (
	// ForceVirtual is a placeholder producing no force or energy.
	ForceVirtual ForceKind = iota
	// ForceHarmonic is a harmonic spring: F = -k(r-r0)/r * d, E = 0.5*k*(r-r0)^2.
	ForceHarmonic
)

// ForceLaw is a closed force-law variant stored inline (no allocation) on
// each bond.
type ForceLaw struct {
	Kind       ForceKind
	K          float64 // stiffness; if Normalized, stored scaled by 1/r0
	R0         float64 // rest length
	Normalized bool
}

// VirtualForceLaw returns the Virtual force law.
func VirtualForceLaw() ForceLaw { return ForceLaw{Kind: ForceVirtual} }

// HarmonicForceLaw returns a Harmonic force law with the given unscaled k
// and rest length r0. If normalized, the stored k is scaled by 1/r0 so
// that K() still reports the unscaled value supplied here.
func HarmonicForceLaw(k, r0 float64, normalized bool) ForceLaw {
	stored := k
	if normalized {
		stored = k / r0
	}
	return ForceLaw{Kind: ForceHarmonic, K: stored, R0: r0, Normalized: normalized}
}

// UnscaledK returns the unscaled stiffness regardless of Normalized.
func (o ForceLaw) UnscaledK() float64 {
	if o.Normalized {
		return o.K * o.R0
	}
	return o.K
}

// Force returns (F, ok). ok is false for Virtual, or for Harmonic when the
// bond length is below the round-error floor (geometrically degenerate).
func (o ForceLaw) Force(d geom.Vec2) (geom.Vec2, bool) {
	switch o.Kind {
	case ForceVirtual:
		return geom.Vec2{}, false
	case ForceHarmonic:
		r := d.Norm()
		if r < lengthFloor {
			return geom.Vec2{}, false
		}
		coef := -o.K * (r - o.R0) / r
		return d.Scale(coef), true
	default:
		return geom.Vec2{}, false
	}
}

// Energy returns (E, ok), following the same validity rule as Force.
func (o ForceLaw) Energy(d geom.Vec2) (float64, bool) {
	switch o.Kind {
	case ForceVirtual:
		return 0, false
	case ForceHarmonic:
		r := d.Norm()
		if r < lengthFloor {
			return 0, false
		}
		dr := r - o.R0
		return 0.5 * o.K * dr * dr, true
	default:
		return 0, false
	}
}

// Data returns a diagnostic scalar for the law (current length), used for
// dump output. Mirrors Force/Energy's validity rule.
func (o ForceLaw) Data(d geom.Vec2) (float64, bool) {
	switch o.Kind {
	case ForceVirtual:
		return 0, false
	case ForceHarmonic:
		r := d.Norm()
		if r < lengthFloor {
			return 0, false
		}
		return r, true
	default:
		return 0, false
	}
}

// BreakKind is the closed set of break-law variants.
type BreakKind uint8

const (
	// BreakNone never breaks.
	BreakNone BreakKind = iota
	// BreakStrainThreshold breaks once the extensional strain exceeds Lambda.
	BreakStrainThreshold
)

// BreakLaw is a closed break-law variant stored inline on each bond.
type BreakLaw struct {
	Kind   BreakKind
	Lambda float64 // strain threshold
	R0     float64 // rest length used to compute strain
}

// NoneBreakLaw returns the None break law.
func NoneBreakLaw() BreakLaw { return BreakLaw{Kind: BreakNone} }

// StrainThresholdBreakLaw returns a StrainThreshold break law.
func StrainThresholdBreakLaw(lambda, r0 float64) BreakLaw {
	return BreakLaw{Kind: BreakStrainThreshold, Lambda: lambda, R0: r0}
}

// strain returns |d|/r0 - 1.
func (o BreakLaw) strain(d geom.Vec2) float64 {
	return d.Norm()/o.R0 - 1
}

// Threshold returns (s(d)-lambda, ok). ok is false for None.
func (o BreakLaw) Threshold(d geom.Vec2) (float64, bool) {
	switch o.Kind {
	case BreakNone:
		return math.Inf(-1), false
	case BreakStrainThreshold:
		return o.strain(d) - o.Lambda, true
	default:
		return math.Inf(-1), false
	}
}

// ShouldBreak reports whether the bond's local strain strictly exceeds its
// threshold. Equality at the boundary does not break.
func (o BreakLaw) ShouldBreak(d geom.Vec2) bool {
	th, ok := o.Threshold(d)
	return ok && th > 0
}
