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

package gff

import (
	"fmt"
	"strconv"
)

// The attribute column is fixed at the ninth field by the GFF family of
// formats; only the scalar columns are repositionable.
const attributesCol = 8

// Options configures column layout, strand normalization and coordinate
// conversion for a Reader.
type Options struct {
	ChromCol   int
	FeatureCol int
	StartCol   int
	EndCol     int
	ScoreCol   int
	StrandCol  int

	// DefaultStrand is the strand recorded for unparseable strand values
	// when FixStrand is set.
	DefaultStrand string
	// FixStrand coerces unparseable strand values (including ".") to
	// DefaultStrand instead of preserving or rejecting them.
	FixStrand bool
	// ConvertToBedCoord rewrites every emitted feature from 1-based closed
	// to 0-based half-open coordinates before it is returned.
	ConvertToBedCoord bool
}

// DefaultOptions returns Options for the standard 9-column GFF layout.
func DefaultOptions() Options {
	return Options{
		ChromCol:      0,
		FeatureCol:    2,
		StartCol:      3,
		EndCol:        4,
		ScoreCol:      5,
		StrandCol:     6,
		DefaultStrand: ".",
	}
}

// Interval is a single annotation record.  Coordinates are format native
// (1-based, closed) at construction time.
type Interval struct {
	Chrom  string
	Start  int
	End    int
	Strand string
	Score  string
	// Type is the record's feature type column (e.g. "exon").
	Type       string
	Attributes Attributes
	// Fields preserves the original source columns verbatim so that the
	// record's text can be reproduced exactly.
	Fields []string
}

// newInterval builds an Interval from one record's fields.  Every configured
// column index is validated against the field count; start and end must be
// integers with start <= end; a strand value outside "+", "-" and "." is
// rejected unless opts.FixStrand is set.
func newInterval(fields []string, opts Options) (*Interval, error) {
	columns := []int{
		opts.ChromCol, opts.StartCol, opts.EndCol,
		opts.StrandCol, opts.FeatureCol, opts.ScoreCol,
		attributesCol,
	}
	for _, col := range columns {
		if col < 0 || col >= len(fields) {
			return nil, &MissingFieldError{Column: col}
		}
	}

	start, err := strconv.Atoi(fields[opts.StartCol])
	if err != nil {
		return nil, fmt.Errorf("parsing start %q: %v", fields[opts.StartCol], err)
	}
	end, err := strconv.Atoi(fields[opts.EndCol])
	if err != nil {
		return nil, fmt.Errorf("parsing end %q: %v", fields[opts.EndCol], err)
	}
	if start > end {
		return nil, fmt.Errorf("start %d greater than end %d", start, end)
	}

	strand := fields[opts.StrandCol]
	switch strand {
	case "+", "-":
	case ".":
		// "." is a valid unknown strand and is preserved unless the caller
		// asked for strand fixing.
		if opts.FixStrand {
			strand = opts.DefaultStrand
		}
	default:
		if !opts.FixStrand {
			return nil, fmt.Errorf("invalid strand %q", strand)
		}
		strand = opts.DefaultStrand
	}

	return &Interval{
		Chrom:      fields[opts.ChromCol],
		Start:      start,
		End:        end,
		Strand:     strand,
		Score:      fields[opts.ScoreCol],
		Type:       fields[opts.FeatureCol],
		Attributes: ParseAttributes(fields[attributesCol]),
		Fields:     fields,
	}, nil
}
