// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package kmer provides 2-bit packed encodings of short ACGT sequences, a
// rolling forward/reverse-complement encoder, and a fixed-capacity
// kmer->count hash table.
//
// Bases are encoded as A=0, C=1, G=2, T=3, so the Watson-Crick complement of a
// code is code^3.  A Kmer stores the oldest base in its most significant 2-bit
// lane.  Kmer is 32 bits wide, which limits k to MaxK.
package kmer
