// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package netmodel implements the node/bond data model, the sum-typed
// force and break laws, the stress accumulator, and the Network that
// ties them together with the periodic box from package geom.
package netmodel

import (
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/fracnet/geom"
)

// NodeStore is a structure-of-arrays store of nodes: positions,
// velocities, forces, masses and stable external ids, indexed by a dense
// local index that reorder may permute.
type NodeStore struct {
	Pos   []geom.Vec2
	Vel   []geom.Vec2
	Force []geom.Vec2
	Mass  []float64
	ID    []uint64

	idToLocal map[uint64]int // rebuilt on demand
}

// NewNodeStore returns an empty NodeStore with capacity preallocated.
func NewNodeStore(capacity int) *NodeStore {
	return &NodeStore{
		Pos:   make([]geom.Vec2, 0, capacity),
		Vel:   make([]geom.Vec2, 0, capacity),
		Force: make([]geom.Vec2, 0, capacity),
		Mass:  make([]float64, 0, capacity),
		ID:    make([]uint64, 0, capacity),
	}
}

// Len returns the number of stored nodes.
func (o *NodeStore) Len() int { return len(o.Pos) }

// AddNode appends a node and returns its freshly minted local index.
func (o *NodeStore) AddNode(id uint64, pos geom.Vec2, vel geom.Vec2, mass float64) int {
	o.Pos = append(o.Pos, pos)
	o.Vel = append(o.Vel, vel)
	o.Force = append(o.Force, geom.Vec2{})
	o.Mass = append(o.Mass, mass)
	o.ID = append(o.ID, id)
	o.idToLocal = nil // invalidate cache
	return len(o.Pos) - 1
}

// LocalOf resolves a stable id to a local index, building the lookup map
// lazily. Panics on an unknown id.
func (o *NodeStore) LocalOf(id uint64) int {
	if o.idToLocal == nil {
		o.idToLocal = make(map[uint64]int, len(o.ID))
		for i, v := range o.ID {
			o.idToLocal[v] = i
		}
	}
	idx, ok := o.idToLocal[id]
	if !ok {
		chk.Panic("unknown node id %d", id)
	}
	return idx
}

// ZeroForces sets every force to the zero vector.
func (o *NodeStore) ZeroForces() {
	for i := range o.Force {
		o.Force[i] = geom.Vec2{}
	}
}

// ZeroVelocities sets every velocity to the zero vector.
func (o *NodeStore) ZeroVelocities() {
	for i := range o.Vel {
		o.Vel[i] = geom.Vec2{}
	}
}

// Reorder jointly permutes every per-node array by a stable sort over
// key, invalidating the id->local cache and returning the permutation
// (oldIndex[newIndex] = oldIndex) so callers (e.g. BondStore) can remap
// endpoints.
func (o *NodeStore) Reorder(key []float64) (oldIndex []int) {
	n := len(o.Pos)
	oldIndex = make([]int, n)
	for i := range oldIndex {
		oldIndex[i] = i
	}
	sort.SliceStable(oldIndex, func(i, j int) bool {
		return key[oldIndex[i]] < key[oldIndex[j]]
	})
	pos := make([]geom.Vec2, n)
	vel := make([]geom.Vec2, n)
	force := make([]geom.Vec2, n)
	mass := make([]float64, n)
	id := make([]uint64, n)
	for newI, oldI := range oldIndex {
		pos[newI] = o.Pos[oldI]
		vel[newI] = o.Vel[oldI]
		force[newI] = o.Force[oldI]
		mass[newI] = o.Mass[oldI]
		id[newI] = o.ID[oldI]
	}
	o.Pos, o.Vel, o.Force, o.Mass, o.ID = pos, vel, force, mass, id
	o.idToLocal = nil
	return oldIndex
}

// OldToNewMap inverts the permutation returned by Reorder: given
// oldIndex[newIndex] = oldIndex, returns newOf[oldIndex] = newIndex, for
// use by BondStore.RemapEndpoints.
func OldToNewMap(oldIndex []int) []int {
	newOf := make([]int, len(oldIndex))
	for newI, oldI := range oldIndex {
		newOf[oldI] = newI
	}
	return newOf
}
