package cli

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/riverplot/pkg/errors"
	"github.com/matzehuels/riverplot/pkg/plot"
	"github.com/matzehuels/riverplot/pkg/rivers"
)

// Sort orders accepted by the stats command.
const (
	sortIndex     = "index"
	sortLength    = "length"
	sortDischarge = "discharge"
	sortName      = "name"
)

var validSorts = []string{sortIndex, sortLength, sortDischarge, sortName}

// statsCommand creates the stats command that summarizes the dataset.
func (c *CLI) statsCommand() *cobra.Command {
	var sortBy string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the dataset and list each river's discharge rank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validSorts, sortBy) {
				return errors.New(errors.ErrCodeInvalidInput, "invalid sort: %q (must be one of: %s)", sortBy, strings.Join(validSorts, ", "))
			}
			ds, err := c.loadDataset()
			if err != nil {
				return err
			}
			for _, issue := range ds.Issues {
				c.Logger.Warn("incomplete record", "row", issue.Row, "name", issue.Name, "reason", issue.Reason)
			}
			printSummary(ds)
			printNewline()
			fmt.Fprintln(os.Stdout, rankTable(ds, sortBy))
			return nil
		},
	}

	cmd.Flags().StringVarP(&sortBy, "sort", "s", sortIndex, "row order: index, length, discharge, name")
	_ = cmd.RegisterFlagCompletionFunc("sort", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return validSorts, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// printSummary prints the derived statistics of ds.
func printSummary(ds *rivers.Dataset) {
	stats := rivers.ComputeStats(ds.Records)

	fmt.Println(StyleTitle.Render("Rivers"))
	printKeyValue("Source", ds.Source)
	printKeyValue("Records", strconv.Itoa(ds.Len()))
	printKeyValue("Incomplete", strconv.Itoa(len(ds.Issues)))
	if stats.Empty() {
		return
	}
	d := stats.SortedDischarges
	printKeyValue("Max length", formatLength(stats.MaxLength))
	printKeyValue("Discharge", formatDischargeRange(d[0], d[len(d)-1]))
}

type rankRow struct {
	index int
	rec   rivers.Record
	rank  int // -1 for incomplete records
}

// rankRows pairs every record with its discharge rank, in sortBy order.
func rankRows(ds *rivers.Dataset, sortBy string) []rankRow {
	stats := rivers.ComputeStats(ds.Records)
	rows := make([]rankRow, len(ds.Records))
	for i, r := range ds.Records {
		rank := -1
		if !r.Incomplete {
			rank = stats.Rank(r.Discharge)
		}
		rows[i] = rankRow{index: i, rec: r, rank: rank}
	}
	sortRankRows(rows, sortBy)
	return rows
}

// rankTable renders one row per record with its discharge rank.
func rankTable(ds *rivers.Dataset, sortBy string) string {
	rows := rankRows(ds, sortBy)

	cells := make([][]string, len(rows))
	for i, row := range rows {
		length, discharge, rank := missing, missing, missing
		if !row.rec.Incomplete {
			length = plot.FormatNumber(row.rec.Length)
			discharge = plot.FormatNumber(row.rec.Discharge)
			rank = strconv.Itoa(row.rank)
		}
		cells[i] = []string{strconv.Itoa(row.index), row.rec.Name, length, discharge, rank, row.rec.FirstCountry()}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("#", "River", "Length (km)", "Discharge (m³/s)", "Rank", "Country").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if row < len(rows) && rows[row].rec.Incomplete {
				return StyleDim
			}
			switch col {
			case 0:
				return StyleDim
			case 2, 3, 4:
				return styleTableNumber
			}
			return StyleValue
		})
	return t.Render()
}

func sortRankRows(rows []rankRow, sortBy string) {
	switch sortBy {
	case sortLength:
		slices.SortStableFunc(rows, func(a, b rankRow) int { return cmp.Compare(b.rec.Length, a.rec.Length) })
	case sortDischarge:
		slices.SortStableFunc(rows, func(a, b rankRow) int { return cmp.Compare(b.rank, a.rank) })
	case sortName:
		slices.SortStableFunc(rows, func(a, b rankRow) int {
			return cmp.Compare(strings.ToLower(a.rec.Name), strings.ToLower(b.rec.Name))
		})
	}
}
