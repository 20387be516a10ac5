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

// Package api implements the gffget annotation retrieval API.
//
// The API groups the records of a stored GFF, GFF3 or GTF object into
// features and serves them as JSON (/features/) or as reconstructed source
// text (/lines/), optionally restricted to a genomic region.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/genomicsio/gffget/genomics"
	"github.com/genomicsio/gffget/gff"
	"github.com/genomicsio/gffget/internal/analytics"
)

const (
	featuresPath = "/features/"
	linesPath    = "/lines/"
)

var (
	errInvalidOrUnspecifiedID = errors.New("invalid or unspecified ID")
	errMissingOrInvalidToken  = errors.New("missing or invalid token")
)

// NewStorageClientFunc is the type of function that constructs the appropriate
// storage.Client to satisfy the incoming request. Any headers that caused this
// particular client to be created are returned to allow subsequent requests to
// be generated correctly.
type NewStorageClientFunc func(*http.Request) (Client, http.Header, error)

// Server provides a gffget protocol server.  Must be created with NewServer.
type Server struct {
	newStorageClient NewStorageClientFunc
	objectSizeLimit  uint64
	whitelist        map[string]bool
}

// NewServer returns a new Server configured to use newStorageClient and
// objectSizeLimit.  The server will call newStorageClient on each request to
// determine which storage client to use, and will read at most
// objectSizeLimit bytes from any single annotation object.
func NewServer(newStorageClient NewStorageClientFunc, objectSizeLimit uint64) *Server {
	return &Server{newStorageClient, objectSizeLimit, make(map[string]bool)}
}

// Whitelist adds buckets to the set of buckets which the server is allowed to
// access. If Whitelist is never called for a given Server then reads from any
// bucket are allowed.
func (server *Server) Whitelist(buckets []string) {
	for _, bucket := range buckets {
		server.whitelist[bucket] = true
	}
}

// Export registers the gffget API endpoints with mux.
func (server *Server) Export(mux *http.ServeMux) {
	mux.Handle(featuresPath, forwardOrigin(server.serveFeatures))
	mux.Handle(linesPath, forwardOrigin(server.serveLines))
}

func (server *Server) serveFeatures(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	track := analytics.TrackerFromContext(ctx)
	track(analytics.Event("Features", "Features Request Received", "", nil))

	query := req.URL.Query()
	format, err := parseFormat(query.Get("format"))
	if err != nil {
		writeError(w, newUnsupportedFormatError(err))
		return
	}

	request, err := server.newFeaturesRequest(req, featuresPath)
	if err != nil {
		writeError(w, err)
		return
	}

	features, skipped, err := request.handle(ctx)
	if err != nil {
		track(analytics.Event("Features", "Features Internal Error", "", nil))
		writeError(w, err)
		return
	}

	encoded := make([]map[string]interface{}, 0, len(features))
	for _, feature := range features {
		encoded = append(encoded, encodeFeature(feature))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"gffget": map[string]interface{}{
			"format":       format,
			"features":     encoded,
			"skippedLines": skipped,
		}})

	count := int64(len(features))
	track(analytics.Event("Features", "Features Response Count", "", &count))
	track(analytics.Event("Features", "Features Response Sent", "", nil))
}

func (server *Server) serveLines(w http.ResponseWriter, req *http.Request) {
	request, err := server.newFeaturesRequest(req, linesPath)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Add("Content-type", "text/plain")
	if err := request.writeLines(req.Context(), w); err != nil {
		writeError(w, err)
		return
	}
}

// newFeaturesRequest resolves the request's object, region and parsing
// options against the server configuration.
func (server *Server) newFeaturesRequest(req *http.Request, prefix string) (*featuresRequest, error) {
	bucket, object, err := parseID(req.URL.Path[len(prefix):])
	if err != nil {
		return nil, newInvalidInputError("parsing annotation ID", err)
	}

	if err := server.checkWhitelist(bucket); err != nil {
		return nil, newPermissionDeniedError("checking whitelist", err)
	}

	query := req.URL.Query()
	region, err := parseRegion(query)
	if err != nil {
		return nil, newInvalidInputError("parsing region", err)
	}
	if region.End > 0 && region.Start > region.End {
		return nil, newInvalidRangeError(fmt.Errorf("%s: start > end", region))
	}

	options := gff.DefaultOptions()
	options.ConvertToBedCoord = query.Get("bedCoords") == "true"
	options.FixStrand = query.Get("fixStrand") == "true"

	storage, _, err := server.newStorageClient(req)
	if err != nil {
		return nil, newStorageError("creating client", err)
	}

	return &featuresRequest{
		object:          storage.NewObjectHandle(bucket, object),
		gzipped:         strings.HasSuffix(object, ".gz"),
		objectSizeLimit: server.objectSizeLimit,
		region:          region,
		options:         options,
	}, nil
}

func (server *Server) checkWhitelist(bucket string) error {
	if len(server.whitelist) == 0 || server.whitelist[bucket] {
		return nil
	}
	return fmt.Errorf("access to bucket %s is not allowed", bucket)
}

// encodeFeature renders feature as the JSON object shape served by the API.
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

// parseID parses path and returns a storage bucket and object, or an error.
func parseID(path string) (string, string, error) {
	if parts := strings.SplitN(path, "/", 2); len(parts) == 2 {
		if parts[0] != "" && parts[1] != "" {
			return parts[0], parts[1], nil
		}
	}
	return "", "", errInvalidOrUnspecifiedID
}

// parseFormat validates the requested dialect label.  All three dialects are
// handled by the same grouping reader, so the label only names the response.
func parseFormat(format string) (string, error) {
	switch format {
	case "":
		return "GFF", nil
	case "GFF", "GFF3", "GTF":
		return format, nil
	}
	return "", fmt.Errorf("unsupported format %q", format)
}

func parseRegion(query url.Values) (genomics.Region, error) {
	var (
		name  = query.Get("referenceName")
		start = query.Get("start")
		end   = query.Get("end")
	)
	if name == "" && start == "" && end == "" {
		return genomics.All, nil
	}
	if name == "" {
		return genomics.Region{}, errors.New("no reference name specified")
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

// apiError is used to capture errors that have been defined in the API.
type apiError struct {
	name  string
	code  int
	cause error
}

func (err *apiError) Error() string {
	return fmt.Sprintf("%s (%d): %v", err.name, err.code, err.cause)
}

func newApiError(name string, code int, context string, err error) error {
	return &apiError{name, code, fmt.Errorf("%s: %v", context, err)}
}

func newInvalidAuthenticationError(context string, err error) error {
	return newApiError("InvalidAuthentication", http.StatusUnauthorized, context, err)
}

func newInvalidInputError(context string, err error) error {
	return newApiError("InvalidInput", http.StatusBadRequest, context, err)
}

func newInvalidRangeError(err error) error {
	return &apiError{"InvalidRange", http.StatusBadRequest, err}
}

func newPermissionDeniedError(context string, err error) error {
	return newApiError("PermissionDenied", http.StatusForbidden, context, err)
}

func newUnsupportedFormatError(err error) error {
	return &apiError{"UnsupportedFormat", http.StatusBadRequest, err}
}

func newNotFoundError(context string, err error) error {
	return newApiError("NotFound", http.StatusNotFound, context, err)
}

// writeError writes either a JSON object or bare HTTP error describing err to
// w.  A JSON object is written only when the error has a name and code defined
// by the API.
func writeError(w http.ResponseWriter, err error) {
	if err, ok := err.(*apiError); ok {
		writeJSON(w, err.code, map[string]interface{}{
			"error":   err.name,
			"message": fmt.Sprintf("%s: %v", http.StatusText(err.code), err.cause),
		})
		return
	}

	writeHTTPError(w, http.StatusInternalServerError, err)
}

func writeHTTPError(w http.ResponseWriter, code int, err error) {
	http.Error(w, fmt.Sprintf("%s: %v", http.StatusText(code), err), code)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Add("Content-type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

type forwardOrigin func(w http.ResponseWriter, req *http.Request)

func (f forwardOrigin) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if origin := req.Header.Get("Origin"); origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
	}
	f(w, req)
}
