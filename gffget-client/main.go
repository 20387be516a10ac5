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

// This binary provides a command line tool that groups the records of GFF,
// GFF3 and GTF annotation files into features.
package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/pkg/profile"

	"github.com/genomicsio/gffget/gff"
)

var (
	output = flag.String("o", "", "output filename")
	format = flag.String("format", "json", "output format: json, bed or gff")

	bedCoords     = flag.Bool("bed", false, "convert coordinates to 0-based half-open")
	fixStrand     = flag.Bool("fix_strand", false, "replace invalid strand values with the default strand")
	defaultStrand = flag.String("default_strand", ".", "strand value used when fixing invalid strands")

	chromCol  = flag.Int("chrom_col", 0, "column holding the reference sequence name")
	typeCol   = flag.Int("type_col", 2, "column holding the feature type")
	startCol  = flag.Int("start_col", 3, "column holding the start coordinate")
	endCol    = flag.Int("end_col", 4, "column holding the end coordinate")
	scoreCol  = flag.Int("score_col", 5, "column holding the score")
	strandCol = flag.Int("strand_col", 6, "column holding the strand")

	profileDir = flag.String("profile", "", "if set, write a CPU profile to this directory")
)

func main() {
	flag.Parse()

	if *profileDir != "" {
		defer profile.Start(profile.ProfilePath(*profileDir)).Stop()
	}

	w := io.Writer(os.Stdout)
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("Failed to open output file: %v", err)
		}
		defer f.Close()

		w = f
	}

	options := gff.Options{
		ChromCol:          *chromCol,
		FeatureCol:        *typeCol,
		StartCol:          *startCol,
		EndCol:            *endCol,
		ScoreCol:          *scoreCol,
		StrandCol:         *strandCol,
		DefaultStrand:     *defaultStrand,
		FixStrand:         *fixStrand,
		ConvertToBedCoord: *bedCoords,
	}

	// BED output is always 0-based half-open.
	if *format == "bed" {
		options.ConvertToBedCoord = true
	}

	if flag.NArg() == 0 {
		if err := group(os.Stdin, w, options, "standard input"); err != nil {
			log.Fatalf("Failed to group standard input: %v", err)
		}
		return
	}

	for _, target := range flag.Args() {
		f, err := os.Open(target)
		if err != nil {
			log.Fatalf("Failed to open %q: %v", target, err)
		}

		var text io.Reader = f
		if strings.HasSuffix(target, ".gz") {
			text, err = gzip.NewReader(f)
			if err != nil {
				log.Fatalf("Failed to open archive %q: %v", target, err)
			}
		}

		if err := group(text, w, options, target); err != nil {
			log.Fatalf("Failed to group %q: %v", target, err)
		}
		f.Close()
	}
}

// group reads annotation records from r and writes the grouped features to w
// in the requested output format.  A parse summary is logged to stderr.
func group(r io.Reader, w io.Writer, options gff.Options, name string) error {
	reader := gff.NewReader(r, options)

	var count int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading features: %v", err)
		}

		if err := write(w, record); err != nil {
			return fmt.Errorf("writing output: %v", err)
		}
		if _, ok := record.(*gff.Feature); ok {
			count++
		}
	}

	log.Printf("%s: %d features, %d lines skipped", name, count, reader.Skipped())
	for _, skip := range reader.SkippedLines() {
		log.Printf("%s: line %d: %s: %q", name, skip.Line, skip.Message, skip.Text)
	}
	return nil
}

// write renders a single record.  Headers and comments only appear in gff
// output; json and bed output contain features alone.
func write(w io.Writer, record gff.Record) error {
	switch v := record.(type) {
	case gff.Header:
		if *format == "gff" {
			_, err := fmt.Fprintln(w, v.Text)
			return err
		}
	case gff.Comment:
		if *format == "gff" {
			_, err := fmt.Fprintln(w, v.Text)
			return err
		}
	case *gff.Feature:
		return writeFeature(w, v)
	}
	return nil
}

func writeFeature(w io.Writer, feature *gff.Feature) error {
	switch *format {
	case "json":
		return json.NewEncoder(w).Encode(encodeFeature(feature))
	case "bed":
		_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\n",
			feature.Chrom, feature.Start, feature.End, feature.Name(), feature.Score, feature.Strand)
		return err
	case "gff":
		for _, line := range feature.Lines() {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported output format %q", *format)
}

func encodeFeature(feature *gff.Feature) map[string]interface{} {
	intervals := make([]map[string]interface{}, len(feature.Intervals))
	for i, interval := range feature.Intervals {
		intervals[i] = map[string]interface{}{
			"start":  interval.Start,
			"end":    interval.End,
			"strand": interval.Strand,
			"score":  interval.Score,
			"type":   interval.Type,
		}
	}
	encoded := map[string]interface{}{
		"chrom":      feature.Chrom,
		"start":      feature.Start,
		"end":        feature.End,
		"strand":     feature.Strand,
		"score":      feature.Score,
		"type":       feature.Type,
		"attributes": feature.Attributes,
		"intervals":  intervals,
	}
	if name := feature.Name(); name != "" {
		encoded["name"] = name
	}
	return encoded
}
