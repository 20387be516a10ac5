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

// Package tabular splits line-oriented, tab-delimited text into typed rows.
package tabular

import (
	"bufio"
	"io"
	"strings"
)

// Kind classifies a single input line.
type Kind int

const (
	// Data is a tab-delimited record line.
	Data Kind = iota
	// Header is a meta-directive line starting with "##".
	Header
	// Comment is a line starting with "#" that is not a Header.
	Comment
)

// Row is one classified input line.
type Row struct {
	Kind Kind
	// Fields holds the tab-separated columns of a Data row.  It is nil for
	// Header and Comment rows.
	Fields []string
	// Text is the line without its trailing newline.
	Text string
	// Size is the number of bytes consumed from the stream, including the
	// newline if one was present.
	Size int
	// Line is the 1-based line number.
	Line int
}

// Reader yields classified rows from line-oriented text.  Blank lines are
// consumed silently.
type Reader struct {
	r    *bufio.Reader
	line int
	text string
}

// NewReader returns a Reader that consumes lines from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Line returns the 1-based number of the most recently consumed line.
func (r *Reader) Line() int {
	return r.line
}

// Text returns the raw text of the most recently consumed line, without its
// trailing newline.
func (r *Reader) Text() string {
	return r.text
}

// Next returns the next non-blank row.  It returns io.EOF once the stream is
// exhausted, and continues to do so on subsequent calls.
func (r *Reader) Next() (*Row, error) {
	for {
		text, err := r.r.ReadString('\n')
		if text == "" {
			if err == nil {
				err = io.EOF
			}
			return nil, err
		}
		if err != nil && err != io.EOF {
			return nil, err
		}

		size := len(text)
		text = strings.TrimRight(text, "\r\n")
		r.line++
		r.text = text

		if strings.TrimSpace(text) == "" {
			continue
		}

		row := &Row{Text: text, Size: size, Line: r.line}
		switch {
		case strings.HasPrefix(text, "##"):
			row.Kind = Header
		case strings.HasPrefix(text, "#"):
			row.Kind = Comment
		default:
			row.Kind = Data
			row.Fields = strings.Split(text, "\t")
		}
		return row, nil
	}
}
