// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package circular

import (
	"sort"

	"github.com/grailbio/dnawindow/kmer"
)

// minTableCapacity is the smallest kmer table a query allocates.
const minTableCapacity = 8

// inDomain returns true iff a length-k query over the window is meaningful.
// k outside [2, min(Len(), kmer.MaxK)] gets the queries' fallback result.
func (w *Window) inDomain(k int) bool {
	return k >= 2 && k <= w.size && k <= kmer.MaxK
}

// code returns the 2-bit code of the base at logical position i.
func (w *Window) code(i int) uint8 {
	return kmer.EncodeNoValidate(w.bases[w.physical(i)])
}

// newRoller returns a Roller primed with the kmer at logical offset 0.
func (w *Window) newRoller(k int) *kmer.Roller {
	r, err := kmer.NewRoller(k)
	if err != nil {
		// inDomain() was checked by the caller.
		panic(err)
	}
	for i := 0; i < k; i++ {
		r.Push(w.code(i))
	}
	return r
}

// tableCapacity returns the table size for at most n distinct keys: the
// smallest power of two >= max(8, 2n), so the load factor stays below 0.5.
func tableCapacity(n int) int {
	if 2*n < minTableCapacity {
		return minTableCapacity
	}
	return CeilExp2(2 * n)
}

// kmerCounts tallies every length-k kmer in the window.  k must satisfy
// inDomain.
func (w *Window) kmerCounts(k int) *kmer.CountTable {
	nKmer := w.size - k + 1
	table := kmer.NewCountTable(tableCapacity(nKmer))
	r := w.newRoller(k)
	table.Incr(r.Forward())
	for i := k; i < w.size; i++ {
		r.Push(w.code(i))
		table.Incr(r.Forward())
	}
	return table
}

// CountRepeats returns the number of distinct length-k substrings of the
// window that occur at two or more starting positions.  Occurrences may
// overlap.  It returns 0 if k < 2, k > Len(), or k > kmer.MaxK.
//
// Example: for window "CCTATAGGTATACATA", CountRepeats(3) == 2 ("TAT" and
// "ATA").
func (w *Window) CountRepeats(k int) int {
	if !w.inDomain(k) {
		return 0
	}
	return w.kmerCounts(k).CountAtLeast(2)
}

// RepeatedKmers returns the distinct length-k substrings counted by
// CountRepeats, sorted lexicographically.  It returns nil when CountRepeats
// would return 0.
func (w *Window) RepeatedKmers(k int) []string {
	if !w.inDomain(k) {
		return nil
	}
	var result []string
	w.kmerCounts(k).Scan(func(km kmer.Kmer, count uint32) {
		if count >= 2 {
			result = append(result, km.String(k))
		}
	})
	sort.Strings(result)
	return result
}

// HasPalindrome returns true iff some length-k substring of the window equals
// its own reverse complement, e.g. "ACCTAGGT" or "TTAA".  It returns false if
// k < 2, k > Len(), or k > kmer.MaxK.  No odd-length substring can match.
func (w *Window) HasPalindrome(k int) bool {
	if !w.inDomain(k) {
		return false
	}
	r := w.newRoller(k)
	if r.IsPalindrome() {
		return true
	}
	for i := k; i < w.size; i++ {
		r.Push(w.code(i))
		if r.IsPalindrome() {
			return true
		}
	}
	return false
}
