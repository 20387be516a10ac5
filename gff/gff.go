// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package gff provides support for parsing GFF, GFF3 and GTF annotation
// streams and grouping related records into multi-interval features.
//
// The reader has two major functions:
//
//  1. group records into features: plain GFF by the free-text group column,
//     GFF3 by ID/Parent linkage and GTF by transcript_id;
//  2. optionally convert coordinates from the GFF convention (1-based,
//     closed) to the BED interval convention (0-based, half-open) used by
//     downstream interval tools.
package gff

import (
	"io"

	"github.com/genomicsio/gffget/internal/tabular"
)

// maxSkippedLines bounds the number of retained malformed-line diagnostics so
// that a bad file of any size cannot exhaust memory.
const maxSkippedLines = 10

// Reader groups annotation records pulled from a stream into features.  It
// produces a lazy, forward-only sequence of Header, Comment and *Feature
// records; it is not restartable and must not be shared between goroutines.
type Reader struct {
	rows *tabular.Reader
	opts Options

	// The first record of the next feature, read while detecting the current
	// feature's boundary, and the byte length of its source line.
	seed        *Interval
	seedRawSize int

	skipped      int
	skippedLines []SkippedLine
}

// NewReader returns a Reader that groups records read from r.
func NewReader(r io.Reader, opts Options) *Reader {
	return &Reader{rows: tabular.NewReader(r), opts: opts}
}

// Skipped returns the cumulative count of malformed records recovered from so
// far.
func (r *Reader) Skipped() int {
	return r.skipped
}

// SkippedLines returns diagnostics for recovered malformed records.  At most
// maxSkippedLines entries are retained; Skipped still counts the rest.
func (r *Reader) SkippedLines() []SkippedLine {
	return r.skippedLines
}

func (r *Reader) recordSkip(row *tabular.Row, err error) {
	r.skipped++
	if len(r.skippedLines) < maxSkippedLines {
		r.skippedLines = append(r.skippedLines, SkippedLine{
			Line:    row.Line,
			Text:    row.Text,
			Message: err.Error(),
		})
	}
}

// Read returns the next Header, Comment or *Feature from the stream.  It
// returns io.EOF once the stream is exhausted, and continues to do so on
// subsequent calls.  Malformed records are counted, recorded and skipped; a
// ChromMismatchError is returned as is.
func (r *Reader) Read() (Record, error) {
	rawSize := r.seedRawSize

	// Seek a seed interval for the next feature.  Headers and comments
	// encountered here are emitted immediately as standalone records.
	for r.seed == nil {
		row, err := r.rows.Next()
		if err != nil {
			return nil, err
		}
		switch row.Kind {
		case tabular.Header:
			return Header{Text: row.Text, RawSize: row.Size}, nil
		case tabular.Comment:
			return Comment{Text: row.Text, RawSize: row.Size}, nil
		}
		rawSize += row.Size
		interval, err := newInterval(row.Fields, r.opts)
		if err != nil {
			r.recordSkip(row, err)
			continue
		}
		r.seed = interval
	}

	// The seed's identity keys: group for plain GFF, ID for GFF3 (matched
	// against later ID and Parent values) and transcript_id for GTF.
	// Membership of subsequent records is tested against whichever of these
	// the seed carries.
	group, hasGroup := identity(r.seed, "group")
	id, hasID := identity(r.seed, "ID")
	transcript, hasTranscript := identity(r.seed, "transcript_id")

	intervals := []*Interval{r.seed}
	r.seed = nil
	r.seedRawSize = 0

	for {
		row, err := r.rows.Next()
		if err == io.EOF {
			// No more records; the accumulated intervals form the last
			// feature.
			break
		}
		if err != nil {
			return nil, err
		}
		rawSize += row.Size

		// Comments and meta-directives never join or break a feature.
		if row.Kind != tabular.Data {
			continue
		}

		interval, err := newInterval(row.Fields, r.opts)
		if err != nil {
			r.recordSkip(row, err)
			continue
		}

		partOf := false
		if value, ok := identity(interval, "group"); ok && hasGroup && value == group {
			partOf = true
		}
		if value, ok := identity(interval, "ID"); ok && hasID && value == id {
			partOf = true
		}
		if value, ok := identity(interval, "Parent"); ok && hasID && value == id {
			partOf = true
		}
		if value, ok := identity(interval, "transcript_id"); ok && hasTranscript && value == transcript {
			partOf = true
		}

		if !partOf {
			// The record belongs to the next feature: exclude its bytes from
			// this one and carry them forward.
			rawSize -= row.Size
			r.seed = interval
			r.seedRawSize = row.Size
			break
		}
		intervals = append(intervals, interval)
	}

	feature, err := newFeature(intervals, rawSize)
	if err != nil {
		return nil, err
	}
	if r.opts.ConvertToBedCoord {
		ToBedCoords(feature)
	}
	return feature, nil
}

// identity returns the named attribute of interval when it is present and
// non-empty.  Empty identity values never participate in grouping.
func identity(interval *Interval, name string) (string, bool) {
	value, ok := interval.Attributes.Get(name)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
