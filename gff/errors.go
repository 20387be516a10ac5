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

import "fmt"

// MissingFieldError indicates that a configured column index lies beyond a
// record's field count.
type MissingFieldError struct {
	Column int
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("no field for column %d", e.Column)
}

// ChromMismatchError indicates that an interval matched a feature's group
// identity but disagrees with it on chromosome.  It is fatal for the feature
// being assembled since it signals a contract violation rather than a single
// bad line.
type ChromMismatchError struct {
	Expected string
	Found    string
}

func (e *ChromMismatchError) Error() string {
	return fmt.Sprintf("interval chrom %q does not match feature chrom %q", e.Found, e.Expected)
}

// SkippedLine records one malformed input line that the reader recovered
// from.
type SkippedLine struct {
	// Line is the 1-based line number of the malformed record.
	Line int
	// Text is the raw text of the line.
	Text string
	// Message describes why the record was rejected.
	Message string
}
