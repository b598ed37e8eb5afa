package rivers

import (
	"slices"
)

// Stats holds the values derived from a dataset once after loading.
type Stats struct {
	// MaxLength is the largest record length, or 0 for an empty dataset.
	MaxLength float64
	// SortedDischarges holds every complete record's discharge in ascending
	// order, duplicates retained.
	SortedDischarges []float64
}

// ComputeStats derives the axis statistics from records. Incomplete records
// are ignored.
func ComputeStats(records []Record) Stats {
	var s Stats
	s.SortedDischarges = make([]float64, 0, len(records))
	for _, r := range records {
		if r.Incomplete {
			continue
		}
		s.MaxLength = max(s.MaxLength, r.Length)
		s.SortedDischarges = append(s.SortedDischarges, r.Discharge)
	}
	slices.Sort(s.SortedDischarges)
	return s
}

// Rank returns the index of the first occurrence of d in SortedDischarges,
// or -1 if d does not occur.
func (s Stats) Rank(d float64) int {
	i, found := slices.BinarySearch(s.SortedDischarges, d)
	if !found {
		return -1
	}
	return i
}

// Empty reports whether no record contributed to the statistics.
func (s Stats) Empty() bool {
	return len(s.SortedDischarges) == 0
}
