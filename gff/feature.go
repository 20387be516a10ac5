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

import "strings"

// Record is one element of the grouped output stream: a Header, a Comment or
// a *Feature.
type Record interface {
	isRecord()
}

// Header is a meta-directive line passed through untouched.
type Header struct {
	Text string
	// RawSize is the byte length of the source line including its newline.
	RawSize int
}

func (Header) isRecord() {}

// Comment is a comment line passed through untouched.
type Comment struct {
	Text string
	// RawSize is the byte length of the source line including its newline.
	RawSize int
}

func (Comment) isRecord() {}

// Feature is an ordered, non-empty group of intervals sharing one group
// identity.  The scalar fields are copied from the group's first (seed)
// interval; Start and End span all child intervals.  A Feature exclusively
// owns its intervals.
type Feature struct {
	Chrom      string
	Start      int
	End        int
	Strand     string
	Score      string
	Type       string
	Attributes Attributes
	Intervals  []*Interval
	// RawSize is the total number of source bytes consumed while assembling
	// the feature, including skipped lines and comments read along the way
	// but excluding the boundary record that seeds the next feature.
	RawSize int
}

func (*Feature) isRecord() {}

// newFeature assembles a Feature from a non-empty interval slice.  All
// intervals must share the seed's chromosome; a mismatch is fatal for the
// assembly.
func newFeature(intervals []*Interval, rawSize int) (*Feature, error) {
	seed := intervals[0]
	feature := &Feature{
		Chrom:      seed.Chrom,
		Start:      seed.Start,
		End:        seed.End,
		Strand:     seed.Strand,
		Score:      seed.Score,
		Type:       seed.Type,
		Attributes: seed.Attributes,
		Intervals:  intervals,
		RawSize:    rawSize,
	}
	// Intervals need not share a strand, but they must share a chromosome.
	for _, interval := range intervals[1:] {
		if interval.Chrom != feature.Chrom {
			return nil, &ChromMismatchError{Expected: feature.Chrom, Found: interval.Chrom}
		}
		if interval.Start < feature.Start {
			feature.Start = interval.Start
		}
		if interval.End > feature.End {
			feature.End = interval.End
		}
	}
	return feature, nil
}

// Attribute names that can serve as a feature name, in order of preference:
// GTF first, then GFF3, then plain GFF.
var nameAttributes = []string{"gene_id", "transcript_id", "ID", "id", "group"}

// Name returns the feature's name, or the empty string when no naming
// attribute is present.
func (f *Feature) Name() string {
	for _, name := range nameAttributes {
		if value, ok := f.Attributes.Get(name); ok {
			return value
		}
	}
	return ""
}

// Lines reproduces the feature's original source text as one tab-joined line
// per interval.
func (f *Feature) Lines() []string {
	lines := make([]string, len(f.Intervals))
	for i, interval := range f.Intervals {
		lines[i] = strings.Join(interval.Fields, "\t")
	}
	return lines
}
