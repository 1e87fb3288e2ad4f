// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netmodel

import (
	"sort"

	"github.com/cpmech/fracnet/tags"
)

// BondInfo is the endpoint/identity record of a bond. Src and Dst are node
// local indices (may be swapped by CanonicaliseEndpoints so Src<=Dst);
// Index is the bond's stable position, unaffected by endpoint swaps.
type BondInfo struct {
	Src, Dst int
	Index    int
}

// BondStore is a structure-of-arrays store of bonds: endpoint/identity,
// the force-law and break-law variants, and a tag bitset, one of each per
// bond.
type BondStore struct {
	Info     []BondInfo
	ForceLaw []ForceLaw
	BreakLaw []BreakLaw
	TagsBits []tags.Mask
}

// NewBondStore returns an empty BondStore with capacity preallocated.
func NewBondStore(capacity int) *BondStore {
	return &BondStore{
		Info:     make([]BondInfo, 0, capacity),
		ForceLaw: make([]ForceLaw, 0, capacity),
		BreakLaw: make([]BreakLaw, 0, capacity),
		TagsBits: make([]tags.Mask, 0, capacity),
	}
}

// Len returns the number of stored bonds.
func (o *BondStore) Len() int { return len(o.Info) }

// AddBond appends a bond and returns its stable index.
func (o *BondStore) AddBond(src, dst int, fl ForceLaw, bl BreakLaw, initialTags tags.Mask) int {
	idx := len(o.Info)
	o.Info = append(o.Info, BondInfo{Src: src, Dst: dst, Index: idx})
	o.ForceLaw = append(o.ForceLaw, fl)
	o.BreakLaw = append(o.BreakLaw, bl)
	o.TagsBits = append(o.TagsBits, initialTags)
	return idx
}

// RemapEndpoints applies newOf (oldLocal -> newLocal, as produced by
// NodeStore.Reorder/OldToNewMap) to every bond's Src/Dst.
func (o *BondStore) RemapEndpoints(newOf []int) {
	for i := range o.Info {
		o.Info[i].Src = newOf[o.Info[i].Src]
		o.Info[i].Dst = newOf[o.Info[i].Dst]
	}
}

// CanonicaliseEndpoints ensures Src<=Dst for every bond, swapping if
// necessary. The unordered pair is the bond's semantic identity; swapping
// does not change force/break-law evaluation since both depend only on
// the minimum-image distance vector's norm (Force/Energy/Threshold), not
// on the sign convention of d except where noted.
func (o *BondStore) CanonicaliseEndpoints() {
	for i := range o.Info {
		if o.Info[i].Src > o.Info[i].Dst {
			o.Info[i].Src, o.Info[i].Dst = o.Info[i].Dst, o.Info[i].Src
		}
	}
}

// Reorder jointly permutes every per-bond array by a stable sort over key.
func (o *BondStore) Reorder(key []float64) {
	n := len(o.Info)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return key[order[i]] < key[order[j]]
	})
	info := make([]BondInfo, n)
	fl := make([]ForceLaw, n)
	bl := make([]BreakLaw, n)
	tg := make([]tags.Mask, n)
	for newI, oldI := range order {
		info[newI] = o.Info[oldI]
		fl[newI] = o.ForceLaw[oldI]
		bl[newI] = o.BreakLaw[oldI]
		tg[newI] = o.TagsBits[oldI]
	}
	o.Info, o.ForceLaw, o.BreakLaw, o.TagsBits = info, fl, bl, tg
}

// CountConnected returns the number of bonds whose force law is not
// Virtual.
func (o *BondStore) CountConnected() int {
	n := 0
	for _, fl := range o.ForceLaw {
		if fl.Kind != ForceVirtual {
			n++
		}
	}
	return n
}

// CountConnectedTag returns the number of non-Virtual bonds carrying tag.
func (o *BondStore) CountConnectedTag(tag tags.Mask) int {
	n := 0
	for i, fl := range o.ForceLaw {
		if fl.Kind != ForceVirtual && o.TagsBits[i].Has(tag) {
			n++
		}
	}
	return n
}
