// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package scan

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/dnawindow/circular"
)

// Stats summarizes one scan.
type Stats struct {
	// Records is the number of sequence records read.
	Records int64
	// Bases is the number of bases slid into the window.
	Bases int64
	// Skipped is the number of non-ACGT bytes dropped.
	Skipped int64
	// Resets is the number of times a non-ACGT byte emptied the window.
	Resets int64
	// Rows is the number of report rows written.
	Rows int64
}

func (s Stats) String() string {
	return fmt.Sprintf("records=%d bases=%d skipped=%d resets=%d rows=%d", s.Records, s.Bases, s.Skipped, s.Resets, s.Rows)
}

// Header returns the report column names for opts.
func Header(opts *Opts) []string {
	cols := []string{"#NAME", "END", "A", "C", "G", "T"}
	for _, k := range opts.Ks {
		cols = append(cols, fmt.Sprintf("REPEATS_%d", k), fmt.Sprintf("PALINDROME_%d", k))
	}
	if opts.Repeats {
		for _, k := range opts.Ks {
			cols = append(cols, fmt.Sprintf("REPEATED_%d", k))
		}
	}
	return cols
}

// writeRow appends one report row describing the current window contents.
// end is the 1-based position of the last base in the record.
func writeRow(w *tsv.Writer, opts *Opts, name string, end int64, window *circular.Window) error {
	w.WriteString(name)
	w.WriteInt64(end)
	for _, b := range []byte("ACGT") {
		n, err := window.Count(b)
		if err != nil {
			return err
		}
		w.WriteInt64(int64(n))
	}
	for _, k := range opts.Ks {
		w.WriteInt64(int64(window.CountRepeats(k)))
		if window.HasPalindrome(k) {
			w.WriteByte('1')
		} else {
			w.WriteByte('0')
		}
	}
	if opts.Repeats {
		for _, k := range opts.Ks {
			if kmers := window.RepeatedKmers(k); len(kmers) > 0 {
				w.WriteString(strings.Join(kmers, ","))
			} else {
				w.WriteByte('.')
			}
		}
	}
	return w.EndLine()
}

// Stream reads sequence records from r, slides each record's bases through a
// fresh window of opts.Width bases, and writes a report row to w every
// opts.Stride bases once the window is full.  Lowercase bases are accepted.
// Stream writes the header line but does not flush w.
func Stream(r io.Reader, w *tsv.Writer, opts Opts) (Stats, error) {
	var stats Stats
	if err := opts.Validate(); err != nil {
		return stats, err
	}
	window, err := circular.NewWindow(opts.Width)
	if err != nil {
		return stats, err
	}
	for _, col := range Header(&opts) {
		w.WriteString(col)
	}
	if err := w.EndLine(); err != nil {
		return stats, err
	}

	var (
		name string
		pos  int64 // 1-based position of the last byte read in the record
		full int   // # of slides that left the window full since its last reset
	)
	s := newSeqScanner(r, opts.Format)
	for s.Scan() {
		if s.NewRecord() {
			if stats.Records > 0 {
				log.Debug.Printf("scan: %s: %d bases", name, pos)
			}
			window.Reset()
			name = s.Name()
			pos = 0
			full = 0
			stats.Records++
		}
		for _, b := range s.Bases() {
			pos++
			if 'a' <= b && b <= 'z' {
				b -= 'a' - 'A'
			}
			if err := window.Slide(b); err != nil {
				if !errors.Is(errors.Invalid, err) {
					return stats, err
				}
				stats.Skipped++
				if opts.NonACGT == NonACGTReset && window.Len() > 0 {
					window.Reset()
					full = 0
					stats.Resets++
				}
				continue
			}
			stats.Bases++
			if !window.IsFull() {
				continue
			}
			if full%opts.Stride == 0 {
				if err := writeRow(w, &opts, name, pos, window); err != nil {
					return stats, err
				}
				stats.Rows++
			}
			full++
		}
	}
	if err := s.Err(); err != nil {
		return stats, err
	}
	if stats.Records > 0 {
		log.Debug.Printf("scan: %s: %d bases", name, pos)
	}
	return stats, nil
}

// Run reads the sequence file at inPath, which may be compressed, and writes
// the TSV report to outPath.  Both paths may be anything grailbio/base/file
// understands.
func Run(ctx context.Context, inPath, outPath string, opts Opts) (stats Stats, err error) {
	if err = opts.Validate(); err != nil {
		return
	}
	var in file.File
	if in, err = file.Open(ctx, inPath); err != nil {
		return stats, errors.E(err, fmt.Sprintf("scan: couldn't open %s", inPath))
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader, compressed := compress.NewReader(in.Reader(ctx))
	defer func() {
		if e := reader.Close(); e != nil && err == nil {
			err = e
		}
	}()
	if compressed {
		log.Debug.Printf("scan: %s is compressed", inPath)
	}

	var out file.File
	if out, err = file.Create(ctx, outPath); err != nil {
		return stats, errors.E(err, fmt.Sprintf("scan: couldn't create %s", outPath))
	}
	defer file.CloseAndReport(ctx, out, &err)
	w := tsv.NewWriter(out.Writer(ctx))
	if stats, err = Stream(reader, w, opts); err != nil {
		return stats, errors.E(err, fmt.Sprintf("scan: %s", inPath))
	}
	if err = w.Flush(); err != nil {
		return stats, errors.E(err, fmt.Sprintf("scan: error writing %s", outPath))
	}
	log.Printf("scan: %s -> %s: %v", inPath, outPath, stats)
	return stats, nil
}
