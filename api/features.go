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

package api

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"

	"github.com/genomicsio/gffget/genomics"
	"github.com/genomicsio/gffget/gff"
)

type featuresRequest struct {
	object          ObjectHandle
	gzipped         bool
	objectSizeLimit uint64
	region          genomics.Region
	options         gff.Options
}

// open returns a grouping reader over the request's annotation object.  The
// returned closer releases the underlying storage stream.
func (req *featuresRequest) open(ctx context.Context) (*gff.Reader, io.Closer, error) {
	data, err := req.object.NewRangeReader(ctx, 0, int64(req.objectSizeLimit))
	if err != nil {
		return nil, nil, newStorageError("opening data", err)
	}

	var text io.Reader = data
	if req.gzipped {
		text, err = gzip.NewReader(data)
		if err != nil {
			data.Close()
			return nil, nil, fmt.Errorf("opening archive: %v", err)
		}
	}

	return gff.NewReader(text, req.options), data, nil
}

// matches reports whether feature intersects the requested region.  Region
// coordinates are 0-based half-open, so unconverted features are shifted for
// the comparison.
func (req *featuresRequest) matches(feature *gff.Feature) bool {
	start, end := feature.Start, feature.End
	if !req.options.ConvertToBedCoord {
		start--
	}
	return req.region.Overlaps(feature.Chrom, start, end)
}

// handle groups the object's records and returns the features intersecting
// the requested region, along with the count of malformed lines skipped.
func (req *featuresRequest) handle(ctx context.Context) ([]*gff.Feature, int, error) {
	reader, closer, err := req.open(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer closer.Close()

	var features []*gff.Feature
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return features, reader.Skipped(), nil
		}
		if err != nil {
			return nil, 0, fmt.Errorf("reading features: %v", err)
		}
		if feature, ok := record.(*gff.Feature); ok && req.matches(feature) {
			features = append(features, feature)
		}
	}
}

// writeLines reproduces the object's source text: headers and comments pass
// through untouched and each matching feature contributes its original
// tab-joined lines.
func (req *featuresRequest) writeLines(ctx context.Context, w io.Writer) error {
	reader, closer, err := req.open(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading features: %v", err)
		}

		switch v := record.(type) {
		case gff.Header:
			if _, err := fmt.Fprintln(w, v.Text); err != nil {
				return err
			}
		case gff.Comment:
			if _, err := fmt.Fprintln(w, v.Text); err != nil {
				return err
			}
		case *gff.Feature:
			if !req.matches(v) {
				continue
			}
			for _, line := range v.Lines() {
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
		}
	}
}
