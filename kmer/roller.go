// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package kmer

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Roller maintains the forward and reverse-complement encodings of a
// length-k window of bases as bases are pushed onto its right end.
//
// Once at least k bases have been pushed since the last Reset, Forward()
// encodes the last k bases MSB-first, and ReverseComplement() encodes the
// reverse complement of the same k bases MSB-first.
//
// Example:
//
//	r, _ := kmer.NewRoller(3)
//	for _, b := range []byte("ACGT") {
//	  r.Push(kmer.EncodeNoValidate(b))
//	}
//	// r.Forward() == "CGT", r.ReverseComplement() == "ACG"
type Roller struct {
	k     int
	shift uint // bit offset of the most significant lane, 2*(k-1)
	mask  Kmer // ^(^0 << 2k)

	forward, reverseComplement Kmer
}

// NewRoller creates a Roller for kmers of length k, k in [1, MaxK].
func NewRoller(k int) (*Roller, error) {
	if k < 1 || k > MaxK {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("kmer.NewRoller: k = %d must be in [1, %d]", k, MaxK))
	}
	return &Roller{
		k:     k,
		shift: uint(k-1) * BitsPerBase,
		mask:  ^(^Kmer(0) << (uint(k) * BitsPerBase)),
	}, nil
}

// K returns the kmer length.
func (r *Roller) K() int { return r.k }

// Reset clears both encodings.
func (r *Roller) Reset() {
	r.forward = 0
	r.reverseComplement = 0
}

// Push appends the base with the given 2-bit code.  The oldest base's bits are
// shifted out of both encodings; the new base becomes the least significant
// lane of the forward encoding, and its complement becomes the most
// significant lane of the reverse-complement encoding.
//
// The first k pushes after Reset build the initial encodings; every push
// after that advances the window by one base.
func (r *Roller) Push(code uint8) {
	r.forward = ((r.forward << BitsPerBase) & r.mask) | Kmer(code)
	r.reverseComplement = (r.reverseComplement >> BitsPerBase) | (Kmer(Complement(code)) << r.shift)
}

// Forward returns the forward encoding of the current kmer.
func (r *Roller) Forward() Kmer { return r.forward }

// ReverseComplement returns the encoding of the reverse complement of the
// current kmer.
func (r *Roller) ReverseComplement() Kmer { return r.reverseComplement }

// Canonical returns the smaller of the forward and reverse-complement
// encodings.  A kmer and its reverse complement share one canonical value.
func (r *Roller) Canonical() Kmer {
	if r.forward < r.reverseComplement {
		return r.forward
	}
	return r.reverseComplement
}

// IsPalindrome returns true iff the current kmer equals its own reverse
// complement.  This can only happen for even k.
func (r *Roller) IsPalindrome() bool {
	return r.forward == r.reverseComplement
}
