package rivers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/riverplot/pkg/errors"
)

func TestReadCSV(t *testing.T) {
	input := `name,length,discharge,countries
Nile,6650,2830,"Egypt, Sudan"
Amazon,"6,400",209000,Brazil
`
	ds, err := ReadCSV(strings.NewReader(input), "test")
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ds.Len())
	}
	want := Record{Name: "Nile", Length: 6650, Discharge: 2830, Countries: "Egypt, Sudan"}
	if ds.Records[0] != want {
		t.Errorf("Records[0] = %+v, want %+v", ds.Records[0], want)
	}
	if ds.Records[1].Length != 6400 {
		t.Errorf("grouped length = %v, want 6400", ds.Records[1].Length)
	}
	if len(ds.Issues) != 0 {
		t.Errorf("Issues = %v, want none", ds.Issues)
	}
}

func TestReadCSVColumnOrder(t *testing.T) {
	input := "Countries, Discharge ,NAME,length,extra\nChina,30166,Yangtze,6300,x\n"
	ds, err := ReadCSV(strings.NewReader(input), "test")
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	got := ds.Records[0]
	if got.Name != "Yangtze" || got.Length != 6300 || got.Discharge != 30166 || got.Countries != "China" {
		t.Errorf("record = %+v", got)
	}
}

func TestReadCSVIncompleteRows(t *testing.T) {
	input := `name,length,discharge,countries
Good,100,50,A
NoLength,,50,B
BadDischarge,100,lots,C
Negative,-5,10,D
Short,100
`
	ds, err := ReadCSV(strings.NewReader(input), "test")
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if ds.Len() != 5 {
		t.Fatalf("Len() = %d, want 5 (incomplete rows keep their index)", ds.Len())
	}
	wantIncomplete := []bool{false, true, true, true, true}
	for i, want := range wantIncomplete {
		if ds.Records[i].Incomplete != want {
			t.Errorf("Records[%d].Incomplete = %v, want %v", i, ds.Records[i].Incomplete, want)
		}
	}
	if len(ds.Issues) != 4 {
		t.Fatalf("Issues = %d, want 4", len(ds.Issues))
	}
	if ds.Issues[0].Row != 2 || ds.Issues[0].Name != "NoLength" {
		t.Errorf("Issues[0] = %+v", ds.Issues[0])
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing discharge", "name,length,countries\nNile,6650,Egypt\n"},
		{"unterminated quote", "name,length,discharge,countries\n\"Nile,1,2,3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input), "test")
			if err == nil {
				t.Fatal("ReadCSV() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidDataset) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidDataset)
			}
		})
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("name,length,discharge,countries\n"), "test")
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if ds.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ds.Len())
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rivers.csv")
	if err := os.WriteFile(path, []byte("name,length,discharge,countries\nLena,4400,17100,Russia\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if ds.Source != path || ds.Len() != 1 {
		t.Errorf("dataset = %+v", ds)
	}

	_, err = LoadFile(filepath.Join(dir, "missing.csv"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file code = %q, want %q", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestDefault(t *testing.T) {
	ds, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if ds.Len() == 0 {
		t.Fatal("embedded dataset is empty")
	}
	if len(ds.Issues) != 0 {
		t.Errorf("embedded dataset has issues: %v", ds.Issues)
	}
	if _, ok := ds.Find("amazon"); !ok {
		t.Error("Find(amazon) not found")
	}
}

func TestFirstCountry(t *testing.T) {
	tests := []struct {
		countries string
		want      string
	}{
		{"Egypt, Sudan, Ethiopia", "Egypt"},
		{"  Russia ", "Russia"},
		{"", ""},
		{"China,Mongolia", "China"},
	}
	for _, tt := range tests {
		if got := (Record{Countries: tt.countries}).FirstCountry(); got != tt.want {
			t.Errorf("FirstCountry(%q) = %q, want %q", tt.countries, got, tt.want)
		}
	}
}

func TestFind(t *testing.T) {
	ds := &Dataset{Records: []Record{{Name: "Nile"}, {Name: "Amazon"}, {Name: "nile"}}}
	if i, ok := ds.Find(" NILE "); !ok || i != 0 {
		t.Errorf("Find() = %d, %v; want 0, true", i, ok)
	}
	if _, ok := ds.Find("Thames"); ok {
		t.Error("Find(Thames) should not match")
	}
	var nilDS *Dataset
	if _, ok := nilDS.Find("Nile"); ok {
		t.Error("nil dataset should not match")
	}
}
