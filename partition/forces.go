// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import (
	"sync"

	"github.com/cpmech/fracnet/errs"
	"github.com/cpmech/fracnet/geom"
	"github.com/cpmech/fracnet/netmodel"
)

// bandResult is one band's contribution to a phase: a force delta over
// every node (only entries for nodes touched by this band's bonds are
// non-zero), an energy increment, a local stress accumulator and break
// queue.
type bandResult struct {
	forceDelta []geom.Vec2
	energy     float64
	stress     *netmodel.StressAccumulator
	breaks     netmodel.BreakQueue
	err        error
}

// ComputeForces recomputes net's forces, energy and (if zeroStress)
// stress by running plan's bands in two passes, even-parity bands first,
// then odd. Bands within a pass run concurrently; each computes its bond
// range's contribution into a private bandResult, and results are merged
// back into net single-threaded once the pass completes. This keeps the
// per-band goroutines free of shared mutable state beyond the net.Bonds
// arrays, which they touch only at their own disjoint index ranges.
//
// plan must have been built with ReorderBonds so BondRanges is populated.
func ComputeForces(net *netmodel.Network, plan *Plan, evalBreak, zeroStress bool) error {
	net.Energy = 0
	net.Nodes.ZeroForces()
	if zeroStress {
		net.Stress.Zero()
	}
	invArea := net.Box.InvArea()

	for phase := 0; phase < 2; phase++ {
		var bands []int
		for b := 0; b < plan.NumBands; b++ {
			if b%2 == phase {
				bands = append(bands, b)
			}
		}

		results := make([]bandResult, len(bands))
		var wg sync.WaitGroup
		for bi, band := range bands {
			wg.Add(1)
			go func(bi, band int) {
				defer wg.Done()
				results[bi] = computeBand(net, band, plan.BondRanges[band], invArea, evalBreak)
			}(bi, band)
		}
		wg.Wait()

		for _, res := range results {
			if res.err != nil {
				return res.err
			}
			for i, fd := range res.forceDelta {
				net.Nodes.Force[i] = net.Nodes.Force[i].Add(fd)
			}
			net.Energy += res.energy
			net.Stress = netmodel.Merge(net.Stress, res.stress)
			net.Breaks.Concat(&res.breaks)
		}
	}
	return nil
}

func computeBand(net *netmodel.Network, band int, bondRange [2]int, invArea float64, evalBreak bool) bandResult {
	res := bandResult{
		forceDelta: make([]geom.Vec2, net.Nodes.Len()),
		stress:     netmodel.NewStressAccumulator(),
	}
	for _, name := range net.Tags.Names() {
		mask := net.Tags.GetByName(name)
		if net.Stress.IsInitialised(mask) {
			res.stress.InitTag(mask)
		}
	}

	for j := bondRange[0]; j < bondRange[1]; j++ {
		info := net.Bonds.Info[j]
		d := net.Box.MinImage(net.Nodes.Pos[info.Src], net.Nodes.Pos[info.Dst])

		if evalBreak && net.Bonds.BreakLaw[j].ShouldBreak(d) {
			res.breaks.Push(netmodel.BreakRecord{
				Index:         info.Index,
				PriorForceLaw: net.Bonds.ForceLaw[j],
				PriorBreakLaw: net.Bonds.BreakLaw[j],
			})
			net.Bonds.ForceLaw[j] = netmodel.VirtualForceLaw()
			net.Bonds.BreakLaw[j] = netmodel.NoneBreakLaw()
			net.Bonds.TagsBits[j] = net.Bonds.TagsBits[j].Set(net.Tags.BrokenMask())
		}

		force, ok := net.Bonds.ForceLaw[j].Force(d)
		if !ok && net.Bonds.ForceLaw[j].Kind == netmodel.ForceHarmonic {
			res.err = errs.New(errs.GeometryDegenerate, "bond %d: length below round-error floor", info.Index)
			return res
		}
		if ok {
			res.forceDelta[info.Src] = res.forceDelta[info.Src].Sub(force)
			res.forceDelta[info.Dst] = res.forceDelta[info.Dst].Add(force)
			sigma := force.Outer(d).Scale(invArea)
			res.stress.Distribute(sigma, net.Bonds.TagsBits[j])
		}
		if e, ok := net.Bonds.ForceLaw[j].Energy(d); ok {
			res.energy += e
		}
	}
	return res
}
