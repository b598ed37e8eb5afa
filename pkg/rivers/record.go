package rivers

import (
	"strings"
)

// Record is a single river row. Length is in kilometres and Discharge in
// cubic metres per second; Countries is the comma-separated list of countries
// the river flows through.
type Record struct {
	Name      string
	Length    float64
	Discharge float64
	Countries string

	// Incomplete marks rows whose length or discharge could not be read.
	// Such records keep their index but are skipped by statistics, rendering
	// and hit-testing.
	Incomplete bool
}

// FirstCountry returns the first entry of the comma-separated country list,
// trimmed of surrounding whitespace.
func (r Record) FirstCountry() string {
	first, _, _ := strings.Cut(r.Countries, ",")
	return strings.TrimSpace(first)
}

// Issue describes a row that was loaded as incomplete.
type Issue struct {
	Row    int    // 1-based data row (the header is row 0)
	Name   string // river name, if present
	Reason string
}

// Dataset is the loaded, immutable river table.
type Dataset struct {
	Source  string
	Records []Record
	Issues  []Issue
}

// Len returns the number of records, including incomplete ones.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Find returns the index of the first record whose name matches name
// case-insensitively.
func (d *Dataset) Find(name string) (int, bool) {
	if d == nil {
		return -1, false
	}
	name = strings.TrimSpace(name)
	for i, r := range d.Records {
		if strings.EqualFold(r.Name, name) {
			return i, true
		}
	}
	return -1, false
}
