// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package kmer

import (
	"github.com/grailbio/base/log"
)

// This file implements a fixed-capacity kmer -> count map.  It is a vanilla
// linear-probing hash table whose home slot is the low bits of the kmer
// itself.  The table never grows: callers size it up front from an upper
// bound on the number of distinct keys (a window of n bases has at most n-k+1
// distinct kmers), keeping the load factor under 0.5.

// invalidKmer marks an unused slot.  No kmer of length <= MaxK can take this
// value since it has bits set above bit 2*MaxK.
const invalidKmer = ^Kmer(0)

type tableEntry struct {
	kmer  Kmer
	count uint32
}

// CountTable is logically equivalent to map[Kmer]uint32 with a fixed
// capacity.  Absent keys read as 0.  Thread compatible.
type CountTable struct {
	entries []tableEntry
	mask    Kmer // len(entries)-1
	n       int  // # of used slots
}

// NewCountTable creates an empty table with the given number of slots, which
// must be a power of two.
func NewCountTable(capacity int) *CountTable {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		log.Panicf("kmer.CountTable requires a positive power-of-two capacity, got %d", capacity)
	}
	t := &CountTable{
		entries: make([]tableEntry, capacity),
		mask:    Kmer(capacity - 1),
	}
	for i := range t.entries {
		t.entries[i].kmer = invalidKmer
	}
	return t
}

// Cap returns the number of slots.
func (t *CountTable) Cap() int { return len(t.entries) }

// Len returns the number of distinct keys stored.
func (t *CountTable) Len() int { return t.n }

// find returns the slot holding key, or the first unused slot on key's probe
// sequence.  It panics if the probe visits every slot, which means the table
// was sized too small for its input.
func (t *CountTable) find(key Kmer) *tableEntry {
	if key == invalidKmer {
		log.Panicf("kmer.CountTable: key %#x is reserved", uint32(key))
	}
	i := key & t.mask
	for iter := 0; iter < len(t.entries); iter++ {
		ent := &t.entries[i]
		if ent.kmer == key || ent.kmer == invalidKmer {
			return ent
		}
		i = (i + 1) & t.mask
	}
	log.Panicf("kmer.CountTable: probe for %#x exhausted all %d slots (%d used)", uint32(key), len(t.entries), t.n)
	return nil
}

// Get returns the count stored for key, or 0 if key is absent.
func (t *CountTable) Get(key Kmer) uint32 {
	ent := t.find(key)
	if ent.kmer == invalidKmer {
		return 0
	}
	return ent.count
}

// Put stores value for key, claiming a new slot if key is absent.
func (t *CountTable) Put(key Kmer, value uint32) {
	ent := t.find(key)
	if ent.kmer == invalidKmer {
		ent.kmer = key
		t.n++
	}
	ent.count = value
}

// Incr adds one to key's count and returns the new count.  It is equivalent
// to Put(key, Get(key)+1) but probes once.
func (t *CountTable) Incr(key Kmer) uint32 {
	ent := t.find(key)
	if ent.kmer == invalidKmer {
		ent.kmer = key
		t.n++
	}
	ent.count++
	return ent.count
}

// Scan calls fn once for each stored key, in slot order.
func (t *CountTable) Scan(fn func(key Kmer, count uint32)) {
	for i := range t.entries {
		if ent := &t.entries[i]; ent.kmer != invalidKmer {
			fn(ent.kmer, ent.count)
		}
	}
}

// CountAtLeast returns the number of keys whose count is >= threshold.
func (t *CountTable) CountAtLeast(threshold uint32) int {
	n := 0
	for i := range t.entries {
		if ent := &t.entries[i]; ent.kmer != invalidKmer && ent.count >= threshold {
			n++
		}
	}
	return n
}
