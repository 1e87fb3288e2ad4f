// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netmodel

// BreakRecord is one entry of the break queue: the bond index and the
// force/break laws it carried the instant it broke, so callers can report
// or undo the break.
type BreakRecord struct {
	Index         int
	PriorForceLaw ForceLaw
	PriorBreakLaw BreakLaw
}

// BreakQueue is a FIFO of BreakRecord, concatenable across parallel
// partitions.
type BreakQueue struct {
	records []BreakRecord
}

// Push appends a record.
func (o *BreakQueue) Push(r BreakRecord) { o.records = append(o.records, r) }

// Len returns the number of queued records.
func (o *BreakQueue) Len() int { return len(o.records) }

// Drain returns and clears every queued record, in FIFO order.
func (o *BreakQueue) Drain() []BreakRecord {
	out := o.records
	o.records = nil
	return out
}

// Concat appends another queue's records after this queue's, the
// reduction used to merge per-worker queues.
func (o *BreakQueue) Concat(other *BreakQueue) {
	o.records = append(o.records, other.records...)
}
