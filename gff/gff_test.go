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
	"io"
	"strings"
	"testing"
)

func readAll(t *testing.T, reader *Reader) []Record {
	t.Helper()
	var records []Record
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return records
		}
		if err != nil {
			t.Fatalf("Read() returned error: %v", err)
		}
		records = append(records, record)
	}
}

func features(t *testing.T, records []Record) []*Feature {
	t.Helper()
	var out []*Feature
	for _, record := range records {
		if feature, ok := record.(*Feature); ok {
			out = append(out, feature)
		}
	}
	return out
}

func gtfLine(chrom, transcript string, start, end int) string {
	return fmt.Sprintf("%s\ttest\texon\t%d\t%d\t.\t+\t.\tgene_id \"G\"; transcript_id %q", chrom, start, end, transcript)
}

func TestRead_GroupsGTFByTranscript(t *testing.T) {
	lines := []string{
		gtfLine("chr1", "T1", 100, 200),
		gtfLine("chr1", "T1", 300, 400),
		gtfLine("chr1", "T1", 500, 600),
		gtfLine("chr1", "T2", 700, 800),
	}
	input := strings.Join(lines, "\n") + "\n"

	got := features(t, readAll(t, NewReader(strings.NewReader(input), DefaultOptions())))
	if len(got) != 2 {
		t.Fatalf("Wrong feature count: got %d, want 2", len(got))
	}

	first, second := got[0], got[1]
	if got, want := len(first.Intervals), 3; got != want {
		t.Fatalf("Wrong interval count: got %d, want %d", got, want)
	}
	if got, want := first.Name(), "G"; got != want {
		t.Errorf("Wrong name: got %q, want %q", got, want)
	}
	if got, want := first.Start, 100; got != want {
		t.Errorf("Wrong start: got %d, want %d", got, want)
	}
	if got, want := first.End, 600; got != want {
		t.Errorf("Wrong end: got %d, want %d", got, want)
	}

	// The boundary record belongs to the second feature, bytes included.
	wantFirstSize := len(lines[0]) + len(lines[1]) + len(lines[2]) + 3
	if got, want := first.RawSize, wantFirstSize; got != want {
		t.Errorf("Wrong first raw size: got %d, want %d", got, want)
	}
	if got, want := second.RawSize, len(lines[3])+1; got != want {
		t.Errorf("Wrong second raw size: got %d, want %d", got, want)
	}
	if got, want := len(second.Intervals), 1; got != want {
		t.Errorf("Wrong second interval count: got %d, want %d", got, want)
	}
}

func TestRead_GroupsGFF3ByIDAndParent(t *testing.T) {
	input := strings.Join([]string{
		"ctg123\ttest\tmRNA\t1050\t9000\t.\t+\t.\tID=mRNA1;Name=sonichedgehog",
		"ctg123\ttest\texon\t1050\t1500\t.\t+\t.\tParent=mRNA1",
		"ctg123\ttest\texon\t3000\t3902\t.\t+\t.\tParent=mRNA1",
		"ctg123\ttest\tmRNA\t1050\t9000\t.\t+\t.\tID=mRNA2",
	}, "\n") + "\n"

	got := features(t, readAll(t, NewReader(strings.NewReader(input), DefaultOptions())))
	if len(got) != 2 {
		t.Fatalf("Wrong feature count: got %d, want 2", len(got))
	}
	if got, want := len(got[0].Intervals), 3; got != want {
		t.Errorf("Wrong interval count: got %d, want %d", got, want)
	}
	if got, want := got[0].Name(), "mRNA1"; got != want {
		t.Errorf("Wrong name: got %q, want %q", got, want)
	}
	if got, want := got[1].Name(), "mRNA2"; got != want {
		t.Errorf("Wrong name: got %q, want %q", got, want)
	}
}

func TestRead_GroupsPlainGFFByGroupColumn(t *testing.T) {
	input := strings.Join([]string{
		"chrY\ttest\texon\t100\t200\t.\t+\t.\tgeneA",
		"chrY\ttest\texon\t300\t400\t.\t+\t.\tgeneA",
		"chrY\ttest\texon\t500\t600\t.\t+\t.\tgeneB",
	}, "\n") + "\n"

	got := features(t, readAll(t, NewReader(strings.NewReader(input), DefaultOptions())))
	if len(got) != 2 {
		t.Fatalf("Wrong feature count: got %d, want 2", len(got))
	}
	if got, want := got[0].Name(), "geneA"; got != want {
		t.Errorf("Wrong name: got %q, want %q", got, want)
	}
	if got, want := len(got[0].Intervals), 2; got != want {
		t.Errorf("Wrong interval count: got %d, want %d", got, want)
	}
}

func TestRead_HeadersAndComments(t *testing.T) {
	input := strings.Join([]string{
		"##gff-version 3",
		"# produced by test",
		gtfLine("chr1", "T1", 100, 200),
		"# mid-feature comment",
		gtfLine("chr1", "T1", 300, 400),
	}, "\n") + "\n"

	records := readAll(t, NewReader(strings.NewReader(input), DefaultOptions()))
	if len(records) != 3 {
		t.Fatalf("Wrong record count: got %d, want 3", len(records))
	}

	header, ok := records[0].(Header)
	if !ok {
		t.Fatalf("Wrong first record type: got %T, want Header", records[0])
	}
	if got, want := header.Text, "##gff-version 3"; got != want {
		t.Errorf("Wrong header text: got %q, want %q", got, want)
	}
	if got, want := header.RawSize, len("##gff-version 3")+1; got != want {
		t.Errorf("Wrong header raw size: got %d, want %d", got, want)
	}

	comment, ok := records[1].(Comment)
	if !ok {
		t.Fatalf("Wrong second record type: got %T, want Comment", records[1])
	}
	if got, want := comment.Text, "# produced by test"; got != want {
		t.Errorf("Wrong comment text: got %q, want %q", got, want)
	}

	// The mid-feature comment never joins nor breaks the feature; its bytes
	// count toward the feature's raw size.
	feature, ok := records[2].(*Feature)
	if !ok {
		t.Fatalf("Wrong third record type: got %T, want *Feature", records[2])
	}
	if got, want := len(feature.Intervals), 2; got != want {
		t.Errorf("Wrong interval count: got %d, want %d", got, want)
	}
	wantSize := len(gtfLine("chr1", "T1", 100, 200)) + len("# mid-feature comment") + len(gtfLine("chr1", "T1", 300, 400)) + 3
	if got, want := feature.RawSize, wantSize; got != want {
		t.Errorf("Wrong feature raw size: got %d, want %d", got, want)
	}
}

func TestRead_SkipsMalformedRecords(t *testing.T) {
	input := strings.Join([]string{
		gtfLine("chr1", "T1", 100, 200),
		"chr1\ttoo\tshort",
		gtfLine("chr1", "T1", 300, 400),
		gtfLine("chr1", "T2", 500, 600),
	}, "\n") + "\n"

	reader := NewReader(strings.NewReader(input), DefaultOptions())
	got := features(t, readAll(t, reader))

	if got, want := reader.Skipped(), 1; got != want {
		t.Errorf("Wrong skip count: got %d, want %d", got, want)
	}
	if len(got) != 2 {
		t.Fatalf("Wrong feature count: got %d, want 2", len(got))
	}
	// Grouping continues across the skipped line.
	if got, want := len(got[0].Intervals), 2; got != want {
		t.Errorf("Wrong interval count: got %d, want %d", got, want)
	}

	skipped := reader.SkippedLines()
	if len(skipped) != 1 {
		t.Fatalf("Wrong diagnostic count: got %d, want 1", len(skipped))
	}
	if got, want := skipped[0].Line, 2; got != want {
		t.Errorf("Wrong line number: got %d, want %d", got, want)
	}
	if got, want := skipped[0].Text, "chr1\ttoo\tshort"; got != want {
		t.Errorf("Wrong text: got %q, want %q", got, want)
	}
}

func TestRead_BoundsSkipDiagnostics(t *testing.T) {
	var lines []string
	for i := 0; i < 15; i++ {
		lines = append(lines, fmt.Sprintf("bad\tline\t%d", i))
	}
	lines = append(lines, gtfLine("chr1", "T1", 100, 200))
	input := strings.Join(lines, "\n") + "\n"

	reader := NewReader(strings.NewReader(input), DefaultOptions())
	got := features(t, readAll(t, reader))

	if len(got) != 1 {
		t.Fatalf("Wrong feature count: got %d, want 1", len(got))
	}
	if got, want := reader.Skipped(), 15; got != want {
		t.Errorf("Wrong skip count: got %d, want %d", got, want)
	}
	if got, want := len(reader.SkippedLines()), 10; got != want {
		t.Errorf("Wrong diagnostic count: got %d, want %d", got, want)
	}
}

func TestRead_ConvertToBedCoord(t *testing.T) {
	input := strings.Join([]string{
		gtfLine("chr1", "T1", 100, 200),
		gtfLine("chr1", "T1", 300, 400),
	}, "\n") + "\n"

	opts := DefaultOptions()
	opts.ConvertToBedCoord = true

	got := features(t, readAll(t, NewReader(strings.NewReader(input), opts)))
	if len(got) != 1 {
		t.Fatalf("Wrong feature count: got %d, want 1", len(got))
	}
	feature := got[0]
	if got, want := feature.Start, 99; got != want {
		t.Errorf("Wrong feature start: got %d, want %d", got, want)
	}
	if got, want := feature.End, 400; got != want {
		t.Errorf("Wrong feature end: got %d, want %d", got, want)
	}
	starts := []int{99, 299}
	ends := []int{200, 400}
	for i, interval := range feature.Intervals {
		if got, want := interval.Start, starts[i]; got != want {
			t.Errorf("Wrong interval %d start: got %d, want %d", i, got, want)
		}
		if got, want := interval.End, ends[i]; got != want {
			t.Errorf("Wrong interval %d end: got %d, want %d", i, got, want)
		}
	}
}

func TestRead_ChromMismatchIsFatal(t *testing.T) {
	input := strings.Join([]string{
		gtfLine("chr1", "T1", 100, 200),
		gtfLine("chr2", "T1", 300, 400),
	}, "\n") + "\n"

	reader := NewReader(strings.NewReader(input), DefaultOptions())
	_, err := reader.Read()
	if _, ok := err.(*ChromMismatchError); !ok {
		t.Fatalf("Wrong error type: got %T (%v), want *ChromMismatchError", err, err)
	}
}

func TestRead_EmptyIdentityNeverGroups(t *testing.T) {
	// Records whose attribute column yields only an empty group value must
	// not be merged with each other.
	input := strings.Join([]string{
		"chr1\ttest\texon\t100\t200\t.\t+\t.\t",
		"chr1\ttest\texon\t300\t400\t.\t+\t.\t",
	}, "\n") + "\n"

	got := features(t, readAll(t, NewReader(strings.NewReader(input), DefaultOptions())))
	if len(got) != 2 {
		t.Fatalf("Wrong feature count: got %d, want 2", len(got))
	}
}

func TestRead_EOFAfterExhaustion(t *testing.T) {
	reader := NewReader(strings.NewReader(gtfLine("chr1", "T1", 100, 200)+"\n"), DefaultOptions())
	if _, err := reader.Read(); err != nil {
		t.Fatalf("Read() returned error: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := reader.Read(); err != io.EOF {
			t.Fatalf("Read() after exhaustion: got %v, want io.EOF", err)
		}
	}
}

func TestRead_FinalFeatureWithoutTrailingNewline(t *testing.T) {
	input := gtfLine("chr1", "T1", 100, 200) + "\n" + gtfLine("chr1", "T1", 300, 400)

	got := features(t, readAll(t, NewReader(strings.NewReader(input), DefaultOptions())))
	if len(got) != 1 {
		t.Fatalf("Wrong feature count: got %d, want 1", len(got))
	}
	if got, want := len(got[0].Intervals), 2; got != want {
		t.Errorf("Wrong interval count: got %d, want %d", got, want)
	}
	wantSize := len(gtfLine("chr1", "T1", 100, 200)) + 1 + len(gtfLine("chr1", "T1", 300, 400))
	if got, want := got[0].RawSize, wantSize; got != want {
		t.Errorf("Wrong raw size: got %d, want %d", got, want)
	}
}
