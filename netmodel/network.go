// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netmodel

import (
	"math"

	"github.com/cpmech/fracnet/errs"
	"github.com/cpmech/fracnet/geom"
	"github.com/cpmech/fracnet/tags"
)

// Network owns the box, rest box, node/bond storage, stress accumulator,
// break queue and tag registry, and implements the force/energy/break
// pipeline and the strain API.
type Network struct {
	Box     *geom.Box
	RestBox *geom.Box // reference geometry at zero strain
	Nodes   *NodeStore
	Bonds   *BondStore
	Stress  *StressAccumulator
	Breaks  BreakQueue
	Tags    *tags.Registry

	Energy float64
}

// NewNetwork builds an empty Network over the given box, preallocating
// room for nNodes nodes and nBonds bonds.
func NewNetwork(box *geom.Box, nNodes, nBonds int) *Network {
	return &Network{
		Box:     box,
		RestBox: box.Clone(),
		Nodes:   NewNodeStore(nNodes),
		Bonds:   NewBondStore(nBonds),
		Stress:  NewStressAccumulator(),
		Tags:    tags.NewRegistry(),
	}
}

// Clone returns a deep, independent copy (used by the protocol to probe
// strains without mutating the caller's network).
func (o *Network) Clone() *Network {
	c := &Network{
		Box:     o.Box.Clone(),
		RestBox: o.RestBox.Clone(),
		Energy:  o.Energy,
	}
	c.Nodes = &NodeStore{
		Pos:   append([]geom.Vec2(nil), o.Nodes.Pos...),
		Vel:   append([]geom.Vec2(nil), o.Nodes.Vel...),
		Force: append([]geom.Vec2(nil), o.Nodes.Force...),
		Mass:  append([]float64(nil), o.Nodes.Mass...),
		ID:    append([]uint64(nil), o.Nodes.ID...),
	}
	c.Bonds = &BondStore{
		Info:     append([]BondInfo(nil), o.Bonds.Info...),
		ForceLaw: append([]ForceLaw(nil), o.Bonds.ForceLaw...),
		BreakLaw: append([]BreakLaw(nil), o.Bonds.BreakLaw...),
		TagsBits: append([]tags.Mask(nil), o.Bonds.TagsBits...),
	}
	stressCopy := *o.Stress
	c.Stress = &stressCopy
	regCopy := *o.Tags
	c.Tags = &regCopy
	c.Breaks.records = append([]BreakRecord(nil), o.Breaks.records...)
	return c
}

// ComputeForces zeroes energy and forces (and, if zeroStress, the stress
// accumulator), then for each bond computes the minimum-image distance,
// optionally tests and applies breaks, accumulates force/stress/energy,
// and aborts the whole step on a geometric degeneracy.
func (o *Network) ComputeForces(evalBreak, zeroStress bool) error {
	o.Energy = 0
	o.Nodes.ZeroForces()
	if zeroStress {
		o.Stress.Zero()
	}
	invArea := o.Box.InvArea()
	for i := range o.Bonds.Info {
		info := o.Bonds.Info[i]
		d := o.Box.MinImage(o.Nodes.Pos[info.Src], o.Nodes.Pos[info.Dst])

		if evalBreak && o.Bonds.BreakLaw[i].ShouldBreak(d) {
			o.Breaks.Push(BreakRecord{
				Index:         info.Index,
				PriorForceLaw: o.Bonds.ForceLaw[i],
				PriorBreakLaw: o.Bonds.BreakLaw[i],
			})
			o.Bonds.ForceLaw[i] = VirtualForceLaw()
			o.Bonds.BreakLaw[i] = NoneBreakLaw()
			o.Bonds.TagsBits[i] = o.Bonds.TagsBits[i].Set(o.Tags.BrokenMask())
		}

		force, ok := o.Bonds.ForceLaw[i].Force(d)
		if !ok && o.Bonds.ForceLaw[i].Kind == ForceHarmonic {
			return errs.New(errs.GeometryDegenerate,
				"bond %d: length below round-error floor", info.Index)
		}
		if ok {
			o.Nodes.Force[info.Src] = o.Nodes.Force[info.Src].Sub(force)
			o.Nodes.Force[info.Dst] = o.Nodes.Force[info.Dst].Add(force)
			sigma := force.Outer(d).Scale(invArea)
			o.Stress.Distribute(sigma, o.Bonds.TagsBits[i])
		}

		if e, ok := o.Bonds.ForceLaw[i].Energy(d); ok {
			o.Energy += e
		}
	}
	return nil
}

// ComputeEnergy is a read-only variant of ComputeForces that returns only
// the total potential energy, without mutating forces, stress or the
// break queue.
func (o *Network) ComputeEnergy() (float64, error) {
	total := 0.0
	for i := range o.Bonds.Info {
		info := o.Bonds.Info[i]
		d := o.Box.MinImage(o.Nodes.Pos[info.Src], o.Nodes.Pos[info.Dst])
		if e, ok := o.Bonds.ForceLaw[i].Energy(d); ok {
			total += e
		}
	}
	return total, nil
}

// ComputeBreaks runs only the break-detection pass, queuing and applying
// breaks exactly as ComputeForces does, without touching forces or
// energy.
func (o *Network) ComputeBreaks() {
	for i := range o.Bonds.Info {
		info := o.Bonds.Info[i]
		d := o.Box.MinImage(o.Nodes.Pos[info.Src], o.Nodes.Pos[info.Dst])
		if o.Bonds.BreakLaw[i].ShouldBreak(d) {
			o.Breaks.Push(BreakRecord{
				Index:         info.Index,
				PriorForceLaw: o.Bonds.ForceLaw[i],
				PriorBreakLaw: o.Bonds.BreakLaw[i],
			})
			o.Bonds.ForceLaw[i] = VirtualForceLaw()
			o.Bonds.BreakLaw[i] = NoneBreakLaw()
			o.Bonds.TagsBits[i] = o.Bonds.TagsBits[i].Set(o.Tags.BrokenMask())
		}
	}
}

// BreakData scans every bond and returns the maximum threshold value
// across bonds with a break law, and the number of bonds currently above
// their threshold.
func (o *Network) BreakData() (maxThreshold float64, brokenCount int) {
	maxThreshold = math.Inf(-1)
	any := false
	for i := range o.Bonds.Info {
		info := o.Bonds.Info[i]
		d := o.Box.MinImage(o.Nodes.Pos[info.Src], o.Nodes.Pos[info.Dst])
		th, ok := o.Bonds.BreakLaw[i].Threshold(d)
		if !ok {
			continue
		}
		any = true
		if th > maxThreshold {
			maxThreshold = th
		}
		if th > 0 {
			brokenCount++
		}
	}
	if !any {
		maxThreshold = math.Inf(-1)
	}
	return
}

// Shear updates the box's xy and applies the affine shift x <- x + step*y
// to every node position.
func (o *Network) Shear(step float64) {
	o.Box.Shear(step)
	for i := range o.Nodes.Pos {
		o.Nodes.Pos[i].X += step * o.Nodes.Pos[i].Y
	}
}

// SetBox replaces the box, remapping node positions through the
// fractional mapping so that lambda coordinates are preserved.
func (o *Network) SetBox(newBox *geom.Box) {
	for i := range o.Nodes.Pos {
		lam := o.Box.XToLambda(o.Nodes.Pos[i])
		o.Nodes.Pos[i] = newBox.LambdaToX(lam)
	}
	o.Box = newBox
}

// WrapNodes folds every node position into the principal image.
func (o *Network) WrapNodes() {
	for i := range o.Nodes.Pos {
		o.Nodes.Pos[i] = o.Box.Wrap(o.Nodes.Pos[i])
	}
}

// ForceRMS returns the RMS of |force[i]| across all nodes, a relaxation
// diagnostic reported with every bond event.
func (o *Network) ForceRMS() float64 {
	if len(o.Nodes.Force) == 0 {
		return 0
	}
	sum := 0.0
	for _, f := range o.Nodes.Force {
		sum += f.Dot(f)
	}
	return math.Sqrt(sum / float64(len(o.Nodes.Force)))
}

// ForceMax returns the maximum |force[i]| across all nodes.
func (o *Network) ForceMax() float64 {
	max := 0.0
	for _, f := range o.Nodes.Force {
		if n := f.Norm(); n > max {
			max = n
		}
	}
	return max
}

// ForceSqSum returns sum_i force[i].Dot(force[i]), used by minimisers
// against Ftol^2.
func (o *Network) ForceSqSum() float64 {
	sum := 0.0
	for _, f := range o.Nodes.Force {
		sum += f.Dot(f)
	}
	return sum
}
