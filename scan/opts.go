// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package scan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/dnawindow/kmer"
)

// Format names the layout of the input sequence file.
type Format string

const (
	// FormatAuto picks FASTA, FASTQ, or raw from the first nonempty line.
	FormatAuto Format = "auto"
	// FormatFasta is '>'-headed records with wrapped sequence lines.
	FormatFasta Format = "fasta"
	// FormatFastq is four-line '@'/'+' records.
	FormatFastq Format = "fastq"
	// FormatRaw is one unnamed record; line breaks are ignored.
	FormatRaw Format = "raw"
)

// NonACGTPolicy says what to do with bytes that are not A, C, G, or T after
// upper-casing.
type NonACGTPolicy string

const (
	// NonACGTSkip drops the byte; the bases on either side become adjacent.
	NonACGTSkip NonACGTPolicy = "skip"
	// NonACGTReset empties the window, so no kmer spans the byte.
	NonACGTReset NonACGTPolicy = "reset"
)

// Opts configures a scan.
type Opts struct {
	// Width is the sliding window width in bases.
	Width int
	// Ks lists the kmer lengths to query, each in [2, kmer.MaxK].
	Ks []int
	// Stride is the number of bases between report rows once the window is
	// full.  1 reports every position.
	Stride int
	// Format is the input layout.
	Format Format
	// NonACGT is the policy for ambiguous or invalid bases.
	NonACGT NonACGTPolicy
	// Repeats adds a column per k listing the repeated kmers.
	Repeats bool
}

// DefaultOpts sets default values for Opts.
var DefaultOpts = Opts{
	Width:   100,
	Ks:      []int{4, 6, 8},
	Stride:  1,
	Format:  FormatAuto,
	NonACGT: NonACGTReset,
}

// Validate checks opts for consistency.
func (o *Opts) Validate() error {
	if o.Width < 1 {
		return errors.E(errors.Invalid, fmt.Sprintf("scan: width must be positive, got %d", o.Width))
	}
	if len(o.Ks) == 0 {
		return errors.E(errors.Invalid, "scan: at least one k is required")
	}
	for _, k := range o.Ks {
		if k < 2 || k > kmer.MaxK {
			return errors.E(errors.Invalid, fmt.Sprintf("scan: k = %d must be in [2, %d]", k, kmer.MaxK))
		}
	}
	if o.Stride < 1 {
		return errors.E(errors.Invalid, fmt.Sprintf("scan: stride must be positive, got %d", o.Stride))
	}
	switch o.Format {
	case FormatAuto, FormatFasta, FormatFastq, FormatRaw:
	default:
		return errors.E(errors.Invalid, fmt.Sprintf("scan: unknown format %q", o.Format))
	}
	switch o.NonACGT {
	case NonACGTSkip, NonACGTReset:
	default:
		return errors.E(errors.Invalid, fmt.Sprintf("scan: unknown non-ACGT policy %q", o.NonACGT))
	}
	return nil
}

// ParseKs parses a comma-separated list of kmer lengths, e.g. "4,6,8".
func ParseKs(s string) ([]int, error) {
	var ks []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		k, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.E(errors.Invalid, err, fmt.Sprintf("scan: bad k list %q", s))
		}
		ks = append(ks, k)
	}
	return ks, nil
}
