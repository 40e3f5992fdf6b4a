// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package kmer_test

import (
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/dnawindow/kmer"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDecode(t *testing.T) {
	for i, b := range []byte("ACGT") {
		code, err := kmer.Encode(b)
		expect.NoError(t, err)
		expect.EQ(t, code, uint8(i))
		expect.EQ(t, kmer.Decode(code), b)
		expect.EQ(t, kmer.EncodeNoValidate(b), code)
		expect.True(t, kmer.Valid(b))
	}
	for _, b := range []byte("acgtNn-X \x00\xff") {
		_, err := kmer.Encode(b)
		assert.True(t, errors.Is(errors.Invalid, err), "base %q", b)
		assert.False(t, kmer.Valid(b))
	}
	assert.Panics(t, func() { kmer.Decode(4) })
}

func TestComplement(t *testing.T) {
	pairs := map[byte]byte{'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A'}
	for b, want := range pairs {
		got, err := kmer.ComplementBase(b)
		expect.NoError(t, err)
		expect.EQ(t, got, want)
		expect.EQ(t, kmer.Complement(kmer.EncodeNoValidate(b)), kmer.EncodeNoValidate(want))
	}
	_, err := kmer.ComplementBase('N')
	expect.True(t, errors.Is(errors.Invalid, err))
}

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		seq, want string
	}{
		{"", ""},
		{"A", "T"},
		{"ACGT", "ACGT"},
		{"ACCTAGGT", "ACCTAGGT"},
		{"AACG", "CGTT"},
		{"GATTACA", "TGTAATC"},
	}
	for _, test := range tests {
		got, err := kmer.ReverseComplement(test.seq)
		assert.NoError(t, err)
		assert.Equal(t, test.want, got, "seq %s", test.seq)
	}
	_, err := kmer.ReverseComplement("ACNGT")
	assert.True(t, errors.Is(errors.Invalid, err))
}

func TestFromString(t *testing.T) {
	km, err := kmer.FromString("ACGT")
	expect.NoError(t, err)
	expect.EQ(t, km, kmer.Kmer(0x1b)) // 00 01 10 11
	expect.EQ(t, km.String(4), "ACGT")

	km, err = kmer.FromString("TTTTTTTTTTTTT")
	expect.NoError(t, err)
	expect.EQ(t, km, kmer.Kmer(1<<26-1))
	expect.EQ(t, km.String(13), "TTTTTTTTTTTTT")

	for _, seq := range []string{"", "ACGTACGTACGTAC", "ACGN"} {
		_, err = kmer.FromString(seq)
		assert.True(t, errors.Is(errors.Invalid, err), "seq %q", seq)
	}
}
