package rivers

import (
	_ "embed"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/riverplot/pkg/errors"
)

// Column names of the input table. Matching is case-insensitive and ignores
// surrounding whitespace; extra columns are ignored.
const (
	ColumnName      = "name"
	ColumnLength    = "length"
	ColumnDischarge = "discharge"
	ColumnCountries = "countries"
)

//go:embed data/rivers.csv
var defaultTable []byte

// DefaultSource is the Source of the dataset returned by [Default].
const DefaultSource = "embedded:rivers.csv"

// Default parses the table embedded in the binary.
func Default() (*Dataset, error) {
	return ReadCSV(strings.NewReader(string(defaultTable)), DefaultSource)
}

// LoadFile reads a dataset from a CSV file on disk.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open dataset %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "open dataset %s", path)
	}
	defer f.Close()
	return ReadCSV(f, path)
}

type columns struct {
	name, length, discharge, countries int
}

// ReadCSV parses a header row followed by river rows. A missing required
// column is fatal; a row with an unreadable length or discharge becomes an
// incomplete record and is reported in Dataset.Issues.
func ReadCSV(r io.Reader, source string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "%s: missing header row", source)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "%s: read header", source)
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "%s", source)
	}

	ds := &Dataset{Source: source}
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "%s: row %d", source, row)
		}
		if isBlank(fields) {
			continue
		}
		rec, reason := parseRow(fields, cols)
		if reason != "" {
			ds.Issues = append(ds.Issues, Issue{Row: row, Name: rec.Name, Reason: reason})
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

func resolveColumns(header []string) (columns, error) {
	cols := columns{-1, -1, -1, -1}
	for i, h := range header {
		if err := errors.ValidateColumnName(h); err != nil {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case ColumnName:
			cols.name = i
		case ColumnLength:
			cols.length = i
		case ColumnDischarge:
			cols.discharge = i
		case ColumnCountries:
			cols.countries = i
		}
	}
	var missing []string
	for _, c := range []struct {
		name string
		idx  int
	}{{ColumnName, cols.name}, {ColumnLength, cols.length}, {ColumnDischarge, cols.discharge}, {ColumnCountries, cols.countries}} {
		if c.idx < 0 {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return cols, errors.New(errors.ErrCodeInvalidDataset, "missing column(s): %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRow(fields []string, cols columns) (Record, string) {
	rec := Record{
		Name:      field(fields, cols.name),
		Countries: field(fields, cols.countries),
	}
	var reasons []string
	var ok bool
	if rec.Length, ok = parseMeasure(field(fields, cols.length)); !ok {
		reasons = append(reasons, "invalid length")
	}
	if rec.Discharge, ok = parseMeasure(field(fields, cols.discharge)); !ok {
		reasons = append(reasons, "invalid discharge")
	}
	if len(reasons) > 0 {
		rec.Incomplete = true
		return rec, strings.Join(reasons, ", ")
	}
	return rec, ""
}

func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

// parseMeasure accepts plain or thousands-grouped non-negative numbers.
func parseMeasure(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
