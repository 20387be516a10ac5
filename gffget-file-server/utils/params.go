package utils

import (
	"fmt"
	"strconv"

	"github.com/genomicsio/gffget/genomics"
	"github.com/genomicsio/gffget/gff"
)

// ParseFormat validates the requested dialect label.  The grouping reader
// handles all three dialects, so the label only names the response.
func ParseFormat(format string) (string, error) {
	switch format {
	case "":
		return "GFF", nil
	case "GFF", "GFF3", "GTF":
		return format, nil
	}
	return "", fmt.Errorf("unsupported format %q", format)
}

// FeatureParams extracts the annotation ID, requested region and parsing
// options from the request parameters.
func FeatureParams(params map[string]string) (string, genomics.Region, gff.Options, error) {
	id := params["id"]
	if id == "" {
		return "", genomics.Region{}, gff.Options{}, fmt.Errorf("invalid ID")
	}

	region, err := parseRegion(params)
	if err != nil {
		return "", genomics.Region{}, gff.Options{}, err
	}
	if region.End > 0 && region.Start > region.End {
		return "", genomics.Region{}, gff.Options{}, fmt.Errorf("%s: start > end", region)
	}

	options := gff.DefaultOptions()
	options.ConvertToBedCoord = params["bedCoords"] == "true"
	options.FixStrand = params["fixStrand"] == "true"

	return id, region, options, nil
}

func parseRegion(params map[string]string) (genomics.Region, error) {
	var (
		name  = params["referenceName"]
		start = params["start"]
		end   = params["end"]
	)
	if name == "" && start == "" && end == "" {
		return genomics.All, nil
	}
	if name == "" {
		return genomics.Region{}, fmt.Errorf("no reference name specified")
	}

	region := genomics.Region{Reference: name}

	if start != "" {
		n, err := strconv.ParseUint(start, 10, 32)
		if err != nil {
			return genomics.Region{}, fmt.Errorf("parsing start: %v", err)
		}
		region.Start = int(n)
	}

	if end != "" {
		n, err := strconv.ParseUint(end, 10, 32)
		if err != nil {
			return genomics.Region{}, fmt.Errorf("parsing end: %v", err)
		}
		region.End = int(n)
	}

	return region, nil
}
