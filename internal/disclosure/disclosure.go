// Package disclosure computes the public view of a case's evidence: which
// files are visible at a given moment and which are still time-locked.
package disclosure

import (
	"sort"
	"time"

	"github.com/diewo77/case-archive/internal/models"
)

// Timeline is the public partition of a case's files. Every file appears
// in exactly one of the two slices.
type Timeline struct {
	// Available holds files whose AvailableAt is at or before the cut,
	// oldest unlocked first, forming the forward disclosure timeline.
	Available []models.File
	// Restricted holds files still locked at the cut. Also ascending by
	// AvailableAt, so the "next unlock" is always first.
	Restricted []models.File
}

// Partition splits files by comparing AvailableAt against now. The result
// is a deterministic function of now: as now advances, files move from
// Restricted to Available and never back (assuming AvailableAt is not
// edited after publication). Files sharing an AvailableAt keep their
// input order, since stable sorts preserve insertion order.
//
// Recomputed on every read; linear in the file count, no caching.
func Partition(files []models.File, now time.Time) Timeline {
	var t Timeline
	for _, f := range files {
		if f.AvailableAt.After(now) {
			t.Restricted = append(t.Restricted, f)
		} else {
			t.Available = append(t.Available, f)
		}
	}
	sort.SliceStable(t.Available, func(i, j int) bool {
		return t.Available[i].AvailableAt.Before(t.Available[j].AvailableAt)
	})
	sort.SliceStable(t.Restricted, func(i, j int) bool {
		return t.Restricted[i].AvailableAt.Before(t.Restricted[j].AvailableAt)
	})
	return t
}
