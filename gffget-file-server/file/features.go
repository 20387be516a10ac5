package file

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/genomicsio/gffget/genomics"
	"github.com/genomicsio/gffget/gff"
	"github.com/genomicsio/gffget/gffget-file-server/model"
	"github.com/genomicsio/gffget/gffget-file-server/utils"
	source "github.com/genomicsio/gffget/source/file"
)

//NewFeaturesHandler builds a gin handler that serves grouped features as JSON
func NewFeaturesHandler(directory string) func(c *gin.Context) {
	return func(c *gin.Context) {
		format, err := utils.ParseFormat(c.Query("format"))
		if err != nil {
			c.String(400, "Unsupported Format")
			return
		}

		id, region, options, err := utils.FeatureParams(map[string]string{
			"id":            c.Param("id"),
			"referenceName": c.Query("referenceName"),
			"start":         c.Query("start"),
			"end":           c.Query("end"),
			"bedCoords":     c.Query("bedCoords"),
			"fixStrand":     c.Query("fixStrand"),
		})
		if err != nil {
			c.String(400, "Error parsing params")
			return
		}

		data, err := source.Open(directory, id)
		if err != nil {
			c.String(404, "Error finding the file")
			return
		}
		defer data.Close()

		response := model.FeaturesResponse{}
		response.Gffget.Format = format
		response.Gffget.Features = make([]model.Feature, 0)

		reader := gff.NewReader(data, options)
		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				c.String(400, "Error parsing file")
				return
			}
			if feature, ok := record.(*gff.Feature); ok && matches(region, options, feature) {
				response.Gffget.Features = append(response.Gffget.Features, model.NewFeature(feature))
			}
		}
		response.Gffget.SkippedLines = reader.Skipped()

		enc := json.NewEncoder(c.Writer)
		enc.SetEscapeHTML(false)
		c.Header("Content-Type", "application/json")
		c.Status(200)
		if err := enc.Encode(&response); err != nil {
			c.String(400, "Error generating result")
			return
		}
	}
}

//NewLinesHandler builds a gin handler that reproduces the annotation text
func NewLinesHandler(directory string) func(c *gin.Context) {
	return func(c *gin.Context) {
		id, region, options, err := utils.FeatureParams(map[string]string{
			"id":            c.Param("id"),
			"referenceName": c.Query("referenceName"),
			"start":         c.Query("start"),
			"end":           c.Query("end"),
			"bedCoords":     c.Query("bedCoords"),
			"fixStrand":     c.Query("fixStrand"),
		})
		if err != nil {
			c.String(400, "Error parsing params")
			return
		}

		data, err := source.Open(directory, id)
		if err != nil {
			c.String(404, "Error finding the file")
			return
		}
		defer data.Close()

		c.Header("Content-Type", "text/plain")
		c.Status(200)

		reader := gff.NewReader(data, options)
		for {
			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				c.String(400, "Error parsing file")
				return
			}

			switch v := record.(type) {
			case gff.Header:
				fmt.Fprintln(c.Writer, v.Text)
			case gff.Comment:
				fmt.Fprintln(c.Writer, v.Text)
			case *gff.Feature:
				if !matches(region, options, v) {
					continue
				}
				for _, line := range v.Lines() {
					fmt.Fprintln(c.Writer, line)
				}
			}
		}
	}
}

// matches reports whether feature intersects region.  Region coordinates are
// 0-based half-open, so unconverted features are shifted for the comparison.
func matches(region genomics.Region, options gff.Options, feature *gff.Feature) bool {
	start, end := feature.Start, feature.End
	if !options.ConvertToBedCoord {
		start--
	}
	return region.Overlaps(feature.Chrom, start, end)
}
