// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package kmer

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

const (
	// BitsPerBase is the number of bits used to encode one base.
	BitsPerBase = 2
	// MaxK is the largest k for which a Kmer is guaranteed to hold both the
	// forward and reverse-complement encodings.
	MaxK = 13

	invalidCode = uint8(255)
)

var (
	asciiToCode [256]uint8
	codeToASCII = [4]byte{'A', 'C', 'G', 'T'}
)

func init() {
	for i := range asciiToCode {
		asciiToCode[i] = invalidCode
	}
	asciiToCode['A'] = 0
	asciiToCode['C'] = 1
	asciiToCode['G'] = 2
	asciiToCode['T'] = 3
}

// Kmer is a compact encoding of up to MaxK bases.
type Kmer uint32

// Valid returns true iff b is one of 'A', 'C', 'G', 'T'.  Lowercase bases are
// not accepted; callers that read soft-masked input should upper-case first.
func Valid(b byte) bool {
	return asciiToCode[b] != invalidCode
}

// Encode returns the 2-bit code of base b.  It returns an errors.Invalid error
// for anything other than 'A', 'C', 'G', 'T'.
func Encode(b byte) (uint8, error) {
	c := asciiToCode[b]
	if c == invalidCode {
		return 0, errors.E(errors.Invalid, fmt.Sprintf("kmer.Encode: invalid base %q", b))
	}
	return c, nil
}

// EncodeNoValidate is Encode without the error path.  The result is
// meaningless for invalid bases.
func EncodeNoValidate(b byte) uint8 {
	return asciiToCode[b] & 3
}

// Decode returns the base for a 2-bit code.
func Decode(code uint8) byte {
	if code > 3 {
		log.Panicf("kmer.Decode: code %d out of range", code)
	}
	return codeToASCII[code]
}

// Complement returns the code of the Watson-Crick partner of code.
func Complement(code uint8) uint8 {
	return code ^ 3
}

// ComplementBase returns the Watson-Crick partner of base b.
func ComplementBase(b byte) (byte, error) {
	c, err := Encode(b)
	if err != nil {
		return 0, err
	}
	return codeToASCII[Complement(c)], nil
}

// ReverseComplement returns the reverse complement of seq, which must consist
// of ACGT only.
func ReverseComplement(seq string) (string, error) {
	out := make([]byte, len(seq))
	for i, j := 0, len(seq)-1; j >= 0; i, j = i+1, j-1 {
		c, err := ComplementBase(seq[j])
		if err != nil {
			return "", err
		}
		out[i] = c
	}
	return string(out), nil
}

// FromString packs seq into a Kmer.  len(seq) must be in [1, MaxK].
func FromString(seq string) (Kmer, error) {
	if len(seq) == 0 || len(seq) > MaxK {
		return 0, errors.E(errors.Invalid, fmt.Sprintf("kmer.FromString: length %d out of range [1, %d]", len(seq), MaxK))
	}
	var k Kmer
	for i := 0; i < len(seq); i++ {
		c, err := Encode(seq[i])
		if err != nil {
			return 0, err
		}
		k = (k << BitsPerBase) | Kmer(c)
	}
	return k, nil
}

// String unpacks the low k bases of km.
func (km Kmer) String(k int) string {
	var sb strings.Builder
	sb.Grow(k)
	for i := k - 1; i >= 0; i-- {
		sb.WriteByte(codeToASCII[(km>>(uint(i)*BitsPerBase))&3])
	}
	return sb.String()
}
