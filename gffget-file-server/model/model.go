package model

import "github.com/genomicsio/gffget/gff"

// FeaturesResponse is the JSON document served for a features request.
type FeaturesResponse struct {
	Gffget struct {
		Format       string    `json:"format"`
		Features     []Feature `json:"features"`
		SkippedLines int       `json:"skippedLines"`
	} `json:"gffget"`
}

// Feature is a grouped annotation feature.
type Feature struct {
	Chrom      string         `json:"chrom"`
	Start      int            `json:"start"`
	End        int            `json:"end"`
	Strand     string         `json:"strand"`
	Score      string         `json:"score"`
	Type       string         `json:"type"`
	Name       string         `json:"name,omitempty"`
	Attributes gff.Attributes `json:"attributes"`
	Intervals  []Interval     `json:"intervals"`
}

// Interval is a single grouped record within a feature.
type Interval struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Strand string `json:"strand"`
	Score  string `json:"score"`
	Type   string `json:"type"`
}

// NewFeature converts a grouped feature into its response form.
func NewFeature(feature *gff.Feature) Feature {
	intervals := make([]Interval, len(feature.Intervals))
	for i, interval := range feature.Intervals {
		intervals[i] = Interval{
			Start:  interval.Start,
			End:    interval.End,
			Strand: interval.Strand,
			Score:  interval.Score,
			Type:   interval.Type,
		}
	}
	return Feature{
		Chrom:      feature.Chrom,
		Start:      feature.Start,
		End:        feature.End,
		Strand:     feature.Strand,
		Score:      feature.Score,
		Type:       feature.Type,
		Name:       feature.Name(),
		Attributes: feature.Attributes,
		Intervals:  intervals,
	}
}
