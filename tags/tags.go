// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tags implements a fixed-capacity named-tag registry and the
// per-entity tag bitsets used to partition stress bookkeeping and filter
// dump output.
package tags

import "github.com/cpmech/gosl/chk"

// NumTags is the compile-time tag-table capacity.
const NumTags = 16

// Broken is the reserved slot-0 tag name, set on a bond the instant it
// breaks.
const Broken = "broken"

// Mask is a NumTags-bit set, one bit per registered tag.
type Mask uint32

// Has reports whether bit is set in m.
func (m Mask) Has(bit Mask) bool { return m&bit != 0 }

// Set returns m with bit set.
func (m Mask) Set(bit Mask) Mask { return m | bit }

// Registry is a fixed-capacity, append-only mapping from tag name to slot.
// Slot 0 is always "broken".
type Registry struct {
	names [NumTags]string
	used  [NumTags]bool
}

// NewRegistry returns a Registry with slot 0 reserved for "broken".
func NewRegistry() *Registry {
	o := &Registry{}
	o.names[0] = Broken
	o.used[0] = true
	return o
}

// Add registers name in the first unused slot and returns its single-bit
// mask. Panics if the table is full or name is already registered.
func (o *Registry) Add(name string) Mask {
	for i := 0; i < NumTags; i++ {
		if o.used[i] && o.names[i] == name {
			chk.Panic("tag %q already registered", name)
		}
	}
	for i := 0; i < NumTags; i++ {
		if !o.used[i] {
			o.used[i] = true
			o.names[i] = name
			return Mask(1) << uint(i)
		}
	}
	chk.Panic("tag table full: cannot register %q", name)
	return 0
}

// GetByName returns the mask for a registered name. Panics on unknown name.
func (o *Registry) GetByName(name string) Mask {
	for i := 0; i < NumTags; i++ {
		if o.used[i] && o.names[i] == name {
			return Mask(1) << uint(i)
		}
	}
	chk.Panic("unknown tag %q", name)
	return 0
}

// GetByID returns the mask for slot id. Panics if id is unused or out of
// range.
func (o *Registry) GetByID(id int) Mask {
	if id < 0 || id >= NumTags || !o.used[id] {
		chk.Panic("unknown tag id %d", id)
	}
	return Mask(1) << uint(id)
}

// Has reports whether name is registered.
func (o *Registry) Has(name string) bool {
	for i := 0; i < NumTags; i++ {
		if o.used[i] && o.names[i] == name {
			return true
		}
	}
	return false
}

// NameOf returns the name stored in slot id. Panics if id is unused or out
// of range.
func (o *Registry) NameOf(id int) string {
	if id < 0 || id >= NumTags || !o.used[id] {
		chk.Panic("unknown tag id %d", id)
	}
	return o.names[id]
}

// Names returns every registered tag name, slot 0 ("broken") first.
func (o *Registry) Names() []string {
	var names []string
	for i := 0; i < NumTags; i++ {
		if o.used[i] {
			names = append(names, o.names[i])
		}
	}
	return names
}

// BrokenMask returns the reserved slot-0 mask.
func (o *Registry) BrokenMask() Mask { return Mask(1) }
