// Package genomics contains definitions related to genomic data.
package genomics

import "fmt"

// All defines a Region that matches every position on every reference.
var All = Region{}

// Region defines a region of genomic interest.
type Region struct {
	// Reference specifies the reference sequence (chromosome) name to match.
	// If it is empty, any reference matches the region.
	Reference string
	// Start and End specify a 0-based, half-open range (in base pairs) on the
	// reference.  If End is zero, it is treated as though it was set to the
	// last possible position.
	Start, End int
}

func (region Region) String() string {
	return fmt.Sprintf("[reference:%s, start:%d, end:%d]", region.Reference, region.Start, region.End)
}

// Overlaps reports whether the half-open interval [start, end) on the named
// reference intersects the region.
func (region Region) Overlaps(reference string, start, end int) bool {
	if region.Reference != "" && region.Reference != reference {
		return false
	}
	if region.End > 0 && start >= region.End {
		return false
	}
	return end > region.Start
}
