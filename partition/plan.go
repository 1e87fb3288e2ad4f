// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package partition implements the optional data-parallel force
// accumulation fast path: band assignment by fractional x-coordinate,
// Morton-order intra-band node ordering, and an even/odd two-pass
// scheduler over contiguous per-band bond ranges.
package partition

import (
	"math"

	"github.com/cpmech/fracnet/errs"
	"github.com/cpmech/fracnet/netmodel"
)

// mortonRes is the per-axis resolution used to quantise band-local
// fractional coordinates before bit-interleaving.
const mortonRes = 1024

// Plan assigns every node to a band and every bond to its source node's
// band, then (after ReorderBonds) records each band's contiguous bond
// range.
type Plan struct {
	NumBands   int
	NodeBand   []int
	BondBand   []int
	BondRanges [][2]int // [start,end) per band, valid only after ReorderBonds

	mortonHash []uint64
}

// Build assigns nodes to NumBands = 2*workerCount bands by fractional
// x-coordinate and assigns each bond to its source node's band. workerCount
// below 1 collapses to a single band.
func Build(net *netmodel.Network, workerCount int) *Plan {
	numBands := 2 * workerCount
	if numBands < 1 {
		numBands = 1
	}
	n := net.Nodes.Len()
	nodeBand := make([]int, n)
	mortonHash := make([]uint64, n)
	bandSize := 1.0 / float64(numBands)
	for i, pos := range net.Nodes.Pos {
		lam := net.Box.XToLambda(pos)
		fx := lam.X - math.Floor(lam.X)
		fy := lam.Y - math.Floor(lam.Y)
		band := int(fx * float64(numBands))
		if band >= numBands {
			band = numBands - 1
		}
		if band < 0 {
			band = 0
		}
		nodeBand[i] = band

		px := (fx - float64(band)*bandSize) / bandSize
		mortonHash[i] = morton2D(uint32(px*mortonRes), uint32(fy*mortonRes))
	}

	bondBand := make([]int, net.Bonds.Len())
	for j, info := range net.Bonds.Info {
		bondBand[j] = nodeBand[info.Src]
	}

	return &Plan{NumBands: numBands, NodeBand: nodeBand, BondBand: bondBand, mortonHash: mortonHash}
}

// Validate checks the band invariant required for the even/odd two-pass
// schedule: every bond either lies entirely within one band or connects
// bands of different parity.
func (p *Plan) Validate(net *netmodel.Network) error {
	for j, info := range net.Bonds.Info {
		srcBand, dstBand := p.NodeBand[info.Src], p.NodeBand[info.Dst]
		if srcBand == dstBand {
			continue
		}
		if srcBand%2 != dstBand%2 {
			continue
		}
		return errs.New(errs.InvalidInput, "partition: bond %d spans same-parity bands %d and %d", j, srcBand, dstBand)
	}
	return nil
}

// ReorderNodes permutes net's nodes by (band, Morton hash) so that bands
// occupy contiguous node ranges and nodes within a band follow a 2D
// space-filling order, remaps bond endpoints accordingly (canonicalising
// each pair to src<=dst), and rebuilds the plan's per-node bookkeeping in
// the new order.
func (p *Plan) ReorderNodes(net *netmodel.Network) {
	n := net.Nodes.Len()
	key := make([]float64, n)
	for i := 0; i < n; i++ {
		key[i] = float64(p.NodeBand[i])*1e12 + float64(p.mortonHash[i])
	}
	oldIndex := net.Nodes.Reorder(key)
	newOf := netmodel.OldToNewMap(oldIndex)
	net.Bonds.RemapEndpoints(newOf)
	net.Bonds.CanonicaliseEndpoints()

	nodeBand := make([]int, n)
	mortonHash := make([]uint64, n)
	for newI, oldI := range oldIndex {
		nodeBand[newI] = p.NodeBand[oldI]
		mortonHash[newI] = p.mortonHash[oldI]
	}
	p.NodeBand, p.mortonHash = nodeBand, mortonHash
	for j, info := range net.Bonds.Info {
		p.BondBand[j] = p.NodeBand[info.Src]
	}
}

// ReorderBonds sorts bonds by band so each band owns a contiguous range,
// rebuilds BondBand, and fills BondRanges.
func (p *Plan) ReorderBonds(net *netmodel.Network) {
	key := make([]float64, len(p.BondBand))
	for j, b := range p.BondBand {
		key[j] = float64(b)
	}
	net.Bonds.Reorder(key)
	for j, info := range net.Bonds.Info {
		p.BondBand[j] = p.NodeBand[info.Src]
	}

	ranges := make([][2]int, p.NumBands)
	for b := range ranges {
		ranges[b] = [2]int{0, 0}
	}
	start := 0
	for start < len(p.BondBand) {
		b := p.BondBand[start]
		end := start
		for end < len(p.BondBand) && p.BondBand[end] == b {
			end++
		}
		ranges[b] = [2]int{start, end}
		start = end
	}
	p.BondRanges = ranges
}

// morton2D bit-interleaves two 32-bit coordinates into a 64-bit Z-order
// hash.
func morton2D(x, y uint32) uint64 {
	return spreadBits(uint64(x)) | (spreadBits(uint64(y)) << 1)
}

func spreadBits(v uint64) uint64 {
	v &= 0x00000000FFFFFFFF
	v = (v | (v << 16)) & 0x0000FFFF0000FFFF
	v = (v | (v << 8)) & 0x00FF00FF00FF00FF
	v = (v | (v << 4)) & 0x0F0F0F0F0F0F0F0F
	v = (v | (v << 2)) & 0x3333333333333333
	v = (v | (v << 1)) & 0x5555555555555555
	return v
}
