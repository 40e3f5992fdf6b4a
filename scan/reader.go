// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package scan

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const maxLineLen = 1024 * 1024 * 300 // 300 MB

// seqScanner splits FASTA, FASTQ, or raw sequence text into chunks of
// sequence bases.  Each call to Scan yields one chunk; NewRecord reports
// whether the chunk starts a new record.  A record header with no sequence
// yields a single empty chunk.
//
// Example:
//
//	s := newSeqScanner(r, FormatFasta)
//	for s.Scan() {
//	  if s.NewRecord() { ... s.Name() ... }
//	  ... s.Bases() ...
//	}
//	if err := s.Err(); err != nil { ... }
type seqScanner struct {
	sc     *bufio.Scanner
	format Format
	lineNo int

	name      string
	sawHeader bool
	newRecord bool
	bases     []byte
	err       error

	// peeked holds a line read during format detection.
	peeked    []byte
	hasPeeked bool
}

func newSeqScanner(r io.Reader, format Format) *seqScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, maxLineLen)
	return &seqScanner{sc: sc, format: format}
}

// Name returns the name of the record the current chunk belongs to.
func (s *seqScanner) Name() string { return s.name }

// NewRecord returns true iff the current chunk is the first of its record.
func (s *seqScanner) NewRecord() bool { return s.newRecord }

// Bases returns the current chunk.  It is valid until the next call to Scan.
func (s *seqScanner) Bases() []byte { return s.bases }

// Err returns the first error encountered, if any.
func (s *seqScanner) Err() error { return s.err }

func (s *seqScanner) nextLine() ([]byte, bool) {
	if s.hasPeeked {
		s.hasPeeked = false
		return s.peeked, true
	}
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil && s.err == nil {
			s.err = errors.Wrap(err, "couldn't read sequence data")
		}
		return nil, false
	}
	s.lineNo++
	return bytes.TrimRight(s.sc.Bytes(), "\r"), true
}

// detect resolves FormatAuto from the first nonempty line.
func (s *seqScanner) detect() bool {
	for {
		line, ok := s.nextLine()
		if !ok {
			s.format = FormatRaw
			return false
		}
		if len(line) == 0 {
			continue
		}
		switch line[0] {
		case '>':
			s.format = FormatFasta
		case '@':
			s.format = FormatFastq
		default:
			s.format = FormatRaw
		}
		s.peeked = append(s.peeked[:0], line...)
		s.hasPeeked = true
		return true
	}
}

// Scan advances to the next chunk.  It returns false at EOF or on error.
func (s *seqScanner) Scan() bool {
	if s.err != nil {
		return false
	}
	if s.format == FormatAuto && !s.detect() {
		return false
	}
	switch s.format {
	case FormatFasta:
		return s.scanFasta()
	case FormatFastq:
		return s.scanFastq()
	default:
		return s.scanRaw()
	}
}

// recordName returns the name in a header line: the characters after the
// leading '>' or '@', up to the first space.
func recordName(header []byte) string {
	name := string(header[1:])
	if i := strings.IndexAny(name, " \t"); i >= 0 {
		name = name[:i]
	}
	return name
}

func (s *seqScanner) scanFasta() bool {
	for {
		line, ok := s.nextLine()
		if !ok {
			return false
		}
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			s.name = recordName(line)
			s.sawHeader = true
			s.newRecord = true
			s.bases = s.bases[:0]
			// Look ahead: a header directly followed by sequence is reported as one
			// chunk, so that empty records are still visible to the caller.
			next, ok := s.nextLine()
			if ok {
				if len(next) > 0 && next[0] == '>' {
					s.peeked = append(s.peeked[:0], next...)
					s.hasPeeked = true
				} else {
					s.bases = append(s.bases, next...)
				}
			}
			return true
		}
		if !s.sawHeader {
			s.err = errors.Errorf("malformed FASTA data: line %d: sequence before first header", s.lineNo)
			return false
		}
		s.newRecord = false
		s.bases = append(s.bases[:0], line...)
		return true
	}
}

func (s *seqScanner) scanFastq() bool {
	var header []byte
	for {
		line, ok := s.nextLine()
		if !ok {
			return false
		}
		if len(line) != 0 {
			header = line
			break
		}
	}
	if header[0] != '@' {
		s.err = errors.Errorf("malformed FASTQ data: line %d: expected '@', got %q", s.lineNo, header)
		return false
	}
	s.name = recordName(header)
	seq, ok := s.nextLine()
	if !ok {
		s.err = errors.Errorf("malformed FASTQ data: truncated record %s", s.name)
		return false
	}
	s.bases = append(s.bases[:0], seq...)
	plus, ok := s.nextLine()
	if !ok || len(plus) == 0 || plus[0] != '+' {
		s.err = errors.Errorf("malformed FASTQ data: line %d: expected '+' for record %s", s.lineNo, s.name)
		return false
	}
	qual, ok := s.nextLine()
	if !ok || len(qual) != len(s.bases) {
		s.err = errors.Errorf("malformed FASTQ data: line %d: quality length mismatch for record %s", s.lineNo, s.name)
		return false
	}
	s.newRecord = true
	return true
}

func (s *seqScanner) scanRaw() bool {
	line, ok := s.nextLine()
	if !ok {
		return false
	}
	s.newRecord = s.name == ""
	s.name = "raw"
	s.bases = append(s.bases[:0], line...)
	return true
}
