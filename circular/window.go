// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package circular

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/dnawindow/kmer"
)

// Window is a fixed-width sliding window of ACGT bases.  Once width bases
// have been slid in, each further Slide evicts the oldest base.
type Window struct {
	// bases stores the raw window contents.  Logical position i (0 = oldest)
	// lives at bases[(head+i) % width].
	bases []byte
	// head is the physical index of the oldest active base.
	head int
	// size is the number of active bases, in [0, width].
	size int
	// counts[c] is the number of active bases with 2-bit code c.
	counts [4]int
}

// NewWindow creates an empty Window that holds up to width bases.  It returns
// an errors.Invalid error if width < 0.
func NewWindow(width int) (*Window, error) {
	if width < 0 {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("circular.NewWindow: width must be >= 0, got %d", width))
	}
	return &Window{bases: make([]byte, width)}, nil
}

// Width returns the window capacity.
func (w *Window) Width() int { return len(w.bases) }

// Len returns the number of active bases.
func (w *Window) Len() int { return w.size }

// IsFull returns true iff Len() == Width().  A zero-width window is always
// full.
func (w *Window) IsFull() bool { return w.size == len(w.bases) }

// Reset empties the window.  Width is unchanged.
func (w *Window) Reset() {
	w.head = 0
	w.size = 0
	w.counts = [4]int{}
}

// Slide appends base b, evicting the oldest base if the window is full.  b
// must be one of 'A', 'C', 'G', 'T'; anything else returns an errors.Invalid
// error and leaves the window unchanged.  A zero-width window accepts and
// drops valid bases.
func (w *Window) Slide(b byte) error {
	code, err := kmer.Encode(b)
	if err != nil {
		return err
	}
	width := len(w.bases)
	if w.size < width {
		tail := w.head + w.size
		if tail >= width {
			tail -= width
		}
		w.bases[tail] = b
		w.size++
		w.counts[code]++
		return nil
	}
	if width == 0 {
		return nil
	}
	w.counts[kmer.EncodeNoValidate(w.bases[w.head])]--
	w.bases[w.head] = b
	w.counts[code]++
	if w.head++; w.head == width {
		w.head = 0
	}
	return nil
}

// Count returns the number of active bases equal to b.  It returns an
// errors.Invalid error if b is not one of 'A', 'C', 'G', 'T'.
func (w *Window) Count(b byte) (int, error) {
	code, err := kmer.Encode(b)
	if err != nil {
		return 0, err
	}
	return w.counts[code], nil
}

// At returns the base at logical position i, where 0 is the oldest active
// base.  It panics if i is not in [0, Len()).
func (w *Window) At(i int) byte {
	if i < 0 || i >= w.size {
		log.Panicf("circular.Window.At: index %d out of range [0, %d)", i, w.size)
	}
	return w.bases[w.physical(i)]
}

// physical maps logical position i in [0, Len()) to an index into w.bases.
func (w *Window) physical(i int) int {
	p := w.head + i
	if p >= len(w.bases) {
		p -= len(w.bases)
	}
	return p
}

// String returns the active bases, oldest first.
func (w *Window) String() string {
	if w.size == 0 {
		return ""
	}
	out := make([]byte, w.size)
	// The active region is at most two contiguous runs of w.bases.
	n := copy(out, w.bases[w.head:min(w.head+w.size, len(w.bases))])
	copy(out[n:], w.bases[:w.size-n])
	return string(out)
}

// CheckPanic verifies the following invariants for a Window, panicking on
// failure:
//   - 0 <= size <= width, and 0 <= head < width when width > 0.
//   - Every active base is one of 'A', 'C', 'G', 'T'.
//   - counts[c] equals the number of active bases with code c, so the counts
//     sum to size.
func (w *Window) CheckPanic(tag string) {
	width := len(w.bases)
	if w.size < 0 || w.size > width {
		log.Panicf("size = %d, width = %d, tag: %s", w.size, width, tag)
	}
	if w.head < 0 || (width > 0 && w.head >= width) || (width == 0 && w.head != 0) {
		log.Panicf("head = %d, width = %d, tag: %s", w.head, width, tag)
	}
	var actual [4]int
	for i := 0; i < w.size; i++ {
		b := w.bases[w.physical(i)]
		if !kmer.Valid(b) {
			log.Panicf("invalid base %q at logical position %d, tag: %s", b, i, tag)
		}
		actual[kmer.EncodeNoValidate(b)]++
	}
	if actual != w.counts {
		log.Panicf("counts out of sync (%v, %v expected), tag: %s", w.counts, actual, tag)
	}
}
