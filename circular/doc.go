// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package circular provides sliding-window data structures over DNA
// sequence.  Window is a fixed-width ring buffer of ACGT bases that keeps
// per-base counts current in O(1) per slide, and answers repeated-kmer and
// reverse-complement-palindrome queries over its active contents in
// O(window width) per query.
//
// A Window is thread-compatible: callers must serialize Slide and query
// calls on one instance.
package circular
