// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netmodel

import (
	"github.com/cpmech/fracnet/geom"
	"github.com/cpmech/fracnet/tags"
)

// StressAccumulator holds one Tensor2 per initialised tag plus a running
// total, designed for commutative (order-independent) accumulation across
// parallel partitions.
type StressAccumulator struct {
	Total       geom.Tensor2
	perTag      [tags.NumTags]geom.Tensor2
	initialised [tags.NumTags]bool
}

// NewStressAccumulator returns a zeroed accumulator.
func NewStressAccumulator() *StressAccumulator { return &StressAccumulator{} }

// InitTag marks tag as initialised (zero value) so Distribute will
// accumulate into it.
func (o *StressAccumulator) InitTag(tag tags.Mask) {
	bit := bitIndex(tag)
	o.initialised[bit] = true
}

// Zero resets Total and every initialised tag's tensor to zero, keeping
// the set of initialised tags.
func (o *StressAccumulator) Zero() {
	o.Total = geom.Tensor2{}
	for i := range o.perTag {
		if o.initialised[i] {
			o.perTag[i] = geom.Tensor2{}
		}
	}
}

// Distribute adds sigma to Total and to every initialised tag present in
// bondTags.
func (o *StressAccumulator) Distribute(sigma geom.Tensor2, bondTags tags.Mask) {
	o.Total = o.Total.Add(sigma)
	for i := 0; i < tags.NumTags; i++ {
		if o.initialised[i] && bondTags.Has(tags.Mask(1)<<uint(i)) {
			o.perTag[i] = o.perTag[i].Add(sigma)
		}
	}
}

// Get returns the accumulated tensor for tag (zero if not initialised).
func (o *StressAccumulator) Get(tag tags.Mask) geom.Tensor2 {
	return o.perTag[bitIndex(tag)]
}

// IsInitialised reports whether tag has been initialised.
func (o *StressAccumulator) IsInitialised(tag tags.Mask) bool {
	return o.initialised[bitIndex(tag)]
}

// Merge combines two accumulators commutatively and associatively: totals
// sum, and per-tag values sum wherever either side initialised the tag (a
// tag initialised only on one side becomes initialised in the result).
func Merge(a, b *StressAccumulator) *StressAccumulator {
	out := NewStressAccumulator()
	out.Total = a.Total.Add(b.Total)
	for i := 0; i < tags.NumTags; i++ {
		out.initialised[i] = a.initialised[i] || b.initialised[i]
		if out.initialised[i] {
			out.perTag[i] = a.perTag[i].Add(b.perTag[i])
		}
	}
	return out
}

// bitIndex returns the slot index of a single-bit mask.
func bitIndex(m tags.Mask) int {
	for i := 0; i < tags.NumTags; i++ {
		if m == tags.Mask(1)<<uint(i) {
			return i
		}
	}
	return 0
}
