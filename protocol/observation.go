// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"github.com/cpmech/fracnet/geom"
	"github.com/cpmech/fracnet/netmodel"
)

// TagSummary is a tag name paired with the network-wide values reported
// under it: connected-bond count and accumulated stress.
type TagSummary struct {
	Name              string
	ConnectedCount    int
	Stress            geom.Tensor2
	StressInitialised bool
}

// Observation is one row of the time-series output.
type Observation struct {
	Reason         string
	StrainCount    int
	BreakCount     int
	Time           float64
	DomainX        float64
	DomainY        float64
	AxisName       string
	Strain         float64
	ConnectedCount int
	GlobalStress   geom.Tensor2
	Tags           []TagSummary
}

// BondEvent is one row of the bond-break log, snapshotting the broken
// bond's pre-break laws and the network state at the moment it drained
// from the break queue.
type BondEvent struct {
	StrainCount int
	Time        float64

	BondIndex int
	Src, Dst  int
	PosSrc    geom.Vec2
	PosDst    geom.Vec2

	PriorForceLaw netmodel.ForceLaw
	PriorBreakLaw netmodel.BreakLaw

	DomainX float64
	DomainY float64
	Strain  float64

	RMSForce float64
	MaxForce float64

	ConnectedCount int
	GlobalStress   geom.Tensor2
	Tags           []TagSummary
}

// tagSummaries walks net's registered tags (broken first, per
// tags.Registry.Names) and reports connected-bond count and stress for
// each.
func tagSummaries(net *netmodel.Network) []TagSummary {
	names := net.Tags.Names()
	out := make([]TagSummary, len(names))
	for i, name := range names {
		mask := net.Tags.GetByName(name)
		out[i] = TagSummary{
			Name:              name,
			ConnectedCount:    net.Bonds.CountConnectedTag(mask),
			Stress:            net.Stress.Get(mask),
			StressInitialised: net.Stress.IsInitialised(mask),
		}
	}
	return out
}

// newObservation builds an Observation reflecting net's current state.
func newObservation(net *netmodel.Network, axis DeformAxis, reason string, strainCount, breakCount int, t float64) Observation {
	return Observation{
		Reason:         reason,
		StrainCount:    strainCount,
		BreakCount:     breakCount,
		Time:           t,
		DomainX:        net.Box.Lx,
		DomainY:        net.Box.Ly,
		AxisName:       axis.Name(),
		Strain:         axis.CurrentStrain(net),
		ConnectedCount: net.Bonds.CountConnected(),
		GlobalStress:   net.Stress.Total,
		Tags:           tagSummaries(net),
	}
}

// newBondEvent builds a BondEvent for the bond at the given stable index,
// using its pre-break force/break law snapshot from the break record.
func newBondEvent(net *netmodel.Network, axis DeformAxis, strainCount int, t float64, rec netmodel.BreakRecord) BondEvent {
	info := net.Bonds.Info[rec.Index]
	return BondEvent{
		StrainCount:    strainCount,
		Time:           t,
		BondIndex:      rec.Index,
		Src:            info.Src,
		Dst:            info.Dst,
		PosSrc:         net.Nodes.Pos[info.Src],
		PosDst:         net.Nodes.Pos[info.Dst],
		PriorForceLaw:  rec.PriorForceLaw,
		PriorBreakLaw:  rec.PriorBreakLaw,
		DomainX:        net.Box.Lx,
		DomainY:        net.Box.Ly,
		Strain:         axis.CurrentStrain(net),
		RMSForce:       net.ForceRMS(),
		MaxForce:       net.ForceMax(),
		ConnectedCount: net.Bonds.CountConnected(),
		GlobalStress:   net.Stress.Total,
		Tags:           tagSummaries(net),
	}
}
