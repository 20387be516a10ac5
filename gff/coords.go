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

// ToBedCoords converts entry from GFF coordinates (1-based, closed) to BED
// coordinates (0-based, half-open) by decrementing its start; the end value
// of a closed interval already equals the half-open upper bound.  Converting
// a *Feature also converts every child interval.  A []int is treated as a
// positional coordinate pair and has only its first element decremented.
//
// The conversion is not idempotent: applying it twice shifts the start twice.
// Callers must apply it exactly once per entity.
func ToBedCoords(entry interface{}) interface{} {
	switch v := entry.(type) {
	case *Feature:
		v.Start--
		for _, interval := range v.Intervals {
			ToBedCoords(interval)
		}
	case *Interval:
		v.Start--
	case []int:
		if len(v) > 0 {
			v[0]--
		}
	}
	return entry
}
