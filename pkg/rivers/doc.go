// Package rivers provides the river dataset and the statistics derived from it.
//
// A [Dataset] is an ordered sequence of [Record] values loaded once from a CSV
// table with the columns name, length, discharge and countries. Records are
// identified by their position in the table and never change after loading.
//
// [ComputeStats] derives the two values the scatterplot axes are scaled by:
// the maximum river length and the ascending list of all discharges. The
// vertical axis does not plot raw discharge; it plots the rank of a discharge
// in that sorted list (see [Stats.Rank]), so rivers with equal discharge share
// a rank.
//
// # Loading
//
//	ds, err := rivers.LoadFile("rivers.csv")
//	if err != nil {
//	    return err // fatal: the table could not be read
//	}
//	for _, issue := range ds.Issues {
//	    log.Warn("skipping incomplete row", "row", issue.Row, "reason", issue.Reason)
//	}
//
// [Default] returns the embedded table shipped with the binary.
package rivers
