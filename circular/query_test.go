// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package circular_test

import (
	"math/rand"
	"testing"

	"github.com/grailbio/dnawindow/circular"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestCountRepeats(t *testing.T) {
	tests := []struct {
		seq  string
		k    int
		want int
	}{
		{"CCTATAGGTATACATA", 3, 2}, // TAT, ATA
		{"GTCGTCGTC", 4, 3},        // GTCG, TCGT, CGTC
		{"ACGTACGTACGTACGTACGT", 13, 4},
		{"ACGTACGTACGTACGTACGT", 20, 0},
		{"AAAA", 2, 1},
		{"AAAA", 3, 1},
		{"AAAA", 4, 0},
		{"ACGT", 2, 0},
		{"AC", 2, 0},
	}
	for _, test := range tests {
		w := newWindow(t, len(test.seq), test.seq)
		expect.EQ(t, w.CountRepeats(test.k), test.want, "seq=%s k=%d", test.seq, test.k)
	}

	w := newWindow(t, 20, "AAAAACCCCCAAAAACCCCC")
	for k := 2; k <= 6; k++ {
		expect.True(t, w.CountRepeats(k) > 0, "k=%d", k)
	}
}

func TestRepeatedKmers(t *testing.T) {
	w := newWindow(t, 16, "CCTATAGGTATACATA")
	expect.EQ(t, w.RepeatedKmers(3), []string{"ATA", "TAT"})
	expect.EQ(t, len(w.RepeatedKmers(15)), 0)
	expect.EQ(t, len(w.RepeatedKmers(1)), 0)
}

func TestHasPalindrome(t *testing.T) {
	tests := []struct {
		seq  string
		k    int
		want bool
	}{
		{"ACCTAGGT", 8, true},
		{"GGACCTAGGTT", 8, true},
		{"TTAA", 4, true},
		{"TTAA", 2, true}, // TA
		{"AAAAAAAA", 2, false},
		{"GAATTCAA", 6, true}, // EcoRI site
		{"GAATTCAA", 5, false},
		{"ACGTACGT", 3, false},
	}
	for _, test := range tests {
		w := newWindow(t, len(test.seq), test.seq)
		expect.EQ(t, w.HasPalindrome(test.k), test.want, "seq=%s k=%d", test.seq, test.k)
	}
}

// The palindrome has to be inside the active window, not merely in the input.
func TestHasPalindromeAfterEviction(t *testing.T) {
	w := newWindow(t, 8, "ACCTAGGT")
	expect.True(t, w.HasPalindrome(8))
	assert.NoError(t, w.Slide('A'))
	expect.EQ(t, w.String(), "CCTAGGTA")
	expect.False(t, w.HasPalindrome(8))
	expect.True(t, w.HasPalindrome(6)) // CCTAGG
}

func TestQueryFallback(t *testing.T) {
	w := newWindow(t, 20, "ACGTACGTACGTACGTACGT")
	for _, k := range []int{-1, 0, 1, 14, 20, 21} {
		expect.EQ(t, w.CountRepeats(k), 0, "k=%d", k)
		expect.False(t, w.HasPalindrome(k), "k=%d", k)
	}
	w = newWindow(t, 10, "ACG")
	expect.EQ(t, w.CountRepeats(4), 0)
	expect.False(t, w.HasPalindrome(4))
}

func oracleCountRepeats(s string, k int) int {
	if k < 2 || k > len(s) {
		return 0
	}
	seen := map[string]int{}
	for i := 0; i+k <= len(s); i++ {
		seen[s[i:i+k]]++
	}
	n := 0
	for _, c := range seen {
		if c >= 2 {
			n++
		}
	}
	return n
}

func oracleComplement(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	}
	return 'A'
}

func oracleHasPalindrome(s string, k int) bool {
	if k < 2 || k > len(s) {
		return false
	}
	for i := 0; i+k <= len(s); i++ {
		pal := true
		for j := 0; j < k; j++ {
			if oracleComplement(s[i+j]) != s[i+k-1-j] {
				pal = false
				break
			}
		}
		if pal {
			return true
		}
	}
	return false
}

// TestWindowFuzz drives long random sequences of slides and queries, and
// cross-checks every result against a mirror of the literal window contents.
func TestWindowFuzz(t *testing.T) {
	rnd := rand.New(rand.NewSource(0))
	nIter := 50
	nOp := 2000
	for iter := 0; iter < nIter; iter++ {
		width := rnd.Intn(64) + 1
		w, err := circular.NewWindow(width)
		assert.NoError(t, err)
		var mirror []byte
		for op := 0; op < nOp; op++ {
			switch choice := rnd.Intn(7); {
			case choice <= 3:
				b := "ACGT"[rnd.Intn(4)]
				assert.NoError(t, w.Slide(b))
				mirror = append(mirror, b)
				if len(mirror) > width {
					mirror = mirror[1:]
				}
			case choice == 4:
				b := "ACGT"[rnd.Intn(4)]
				got, err := w.Count(b)
				assert.NoError(t, err)
				want := 0
				for _, m := range mirror {
					if m == b {
						want++
					}
				}
				assert.EQ(t, got, want, "width=%d op=%d", width, op)
			case choice == 5:
				k := rnd.Intn(12) + 2
				got := w.CountRepeats(k)
				assert.EQ(t, got, oracleCountRepeats(string(mirror), k), "window=%s k=%d", mirror, k)
				assert.EQ(t, w.CountRepeats(k), got, "idempotence")
			default:
				k := rnd.Intn(12) + 2
				got := w.HasPalindrome(k)
				assert.EQ(t, got, oracleHasPalindrome(string(mirror), k), "window=%s k=%d", mirror, k)
				assert.EQ(t, w.HasPalindrome(k), got, "idempotence")
			}
			assert.EQ(t, w.String(), string(mirror))
			assert.EQ(t, w.IsFull(), len(mirror) == width)
		}
		w.CheckPanic("fuzz")
	}
}

// Odd k is handled by the rolling comparison itself; check it never matches.
func TestHasPalindromeOddK(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	seq := make([]byte, 500)
	for i := range seq {
		seq[i] = "ACGT"[rnd.Intn(4)]
	}
	w := newWindow(t, len(seq), string(seq))
	for k := 3; k <= 13; k += 2 {
		expect.False(t, w.HasPalindrome(k), "k=%d", k)
	}
	expect.True(t, w.HasPalindrome(2))
}
