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
	"strings"
	"testing"
)

func mustInterval(t *testing.T, line string) *Interval {
	t.Helper()
	interval, err := newInterval(fields(line), DefaultOptions())
	if err != nil {
		t.Fatalf("newInterval(%q) returned error: %v", line, err)
	}
	return interval
}

func TestNewFeature_Bounds(t *testing.T) {
	intervals := []*Interval{
		mustInterval(t, "chr1\ttest\texon\t150\t200\t.\t+\t.\tgene_id \"A\""),
		mustInterval(t, "chr1\ttest\texon\t100\t180\t.\t+\t.\tgene_id \"A\""),
		mustInterval(t, "chr1\ttest\texon\t160\t300\t.\t+\t.\tgene_id \"A\""),
	}

	feature, err := newFeature(intervals, 42)
	if err != nil {
		t.Fatalf("newFeature() returned error: %v", err)
	}
	if got, want := feature.Start, 100; got != want {
		t.Errorf("Wrong start: got %d, want %d", got, want)
	}
	if got, want := feature.End, 300; got != want {
		t.Errorf("Wrong end: got %d, want %d", got, want)
	}
	if got, want := feature.Chrom, "chr1"; got != want {
		t.Errorf("Wrong chrom: got %q, want %q", got, want)
	}
	if got, want := feature.RawSize, 42; got != want {
		t.Errorf("Wrong raw size: got %d, want %d", got, want)
	}
	// Scalar fields come from the seed interval.
	if got, want := feature.Type, "exon"; got != want {
		t.Errorf("Wrong type: got %q, want %q", got, want)
	}
}

func TestNewFeature_ChromMismatch(t *testing.T) {
	intervals := []*Interval{
		mustInterval(t, "chr1\ttest\texon\t100\t200\t.\t+\t.\tgene_id \"A\""),
		mustInterval(t, "chr2\ttest\texon\t300\t400\t.\t+\t.\tgene_id \"A\""),
	}

	_, err := newFeature(intervals, 0)
	mismatch, ok := err.(*ChromMismatchError)
	if !ok {
		t.Fatalf("Wrong error type: got %T (%v), want *ChromMismatchError", err, err)
	}
	if got, want := mismatch.Expected, "chr1"; got != want {
		t.Errorf("Wrong expected chrom: got %q, want %q", got, want)
	}
	if got, want := mismatch.Found, "chr2"; got != want {
		t.Errorf("Wrong found chrom: got %q, want %q", got, want)
	}
}

func TestFeatureName(t *testing.T) {
	testCases := []struct {
		name   string
		column string
		want   string
	}{
		{"gene_id wins", `gene_id "G"; transcript_id "T"; ID=I`, "G"},
		{"transcript_id next", `transcript_id "T"; ID=I`, "T"},
		{"gff3 id", "ID=I;Name=foo", "I"},
		{"lowercase id", "id=i", "i"},
		{"plain group", "geneA", "geneA"},
		{"nothing", "Name=foo", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			interval := mustInterval(t, "chr1\ttest\texon\t100\t200\t.\t+\t.\t"+tc.column)
			feature, err := newFeature([]*Interval{interval}, 0)
			if err != nil {
				t.Fatalf("newFeature() returned error: %v", err)
			}
			if got, want := feature.Name(), tc.want; got != want {
				t.Errorf("Wrong name: got %q, want %q", got, want)
			}
		})
	}
}

func TestFeatureLines(t *testing.T) {
	lines := []string{
		"chr1\ttest\texon\t100\t200\t.\t+\t.\tgene_id \"A\"",
		"chr1\ttest\texon\t250\t300\t.\t+\t.\tgene_id \"A\"",
	}
	intervals := []*Interval{
		mustInterval(t, lines[0]),
		mustInterval(t, lines[1]),
	}

	feature, err := newFeature(intervals, 0)
	if err != nil {
		t.Fatalf("newFeature() returned error: %v", err)
	}
	if got, want := strings.Join(feature.Lines(), "\n"), strings.Join(lines, "\n"); got != want {
		t.Errorf("Wrong lines:\ngot  %q\nwant %q", got, want)
	}
}
