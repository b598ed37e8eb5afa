package rivers_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/riverplot/pkg/rivers"
)

func ExampleComputeStats() {
	ds, _ := rivers.ReadCSV(strings.NewReader(`name,length,discharge,countries
A,100,50,X
B,200,10,Y
C,300,50,Z
`), "example")

	s := rivers.ComputeStats(ds.Records)
	fmt.Println("max length:", s.MaxLength)
	fmt.Println("sorted:", s.SortedDischarges)
	fmt.Println("rank of A:", s.Rank(ds.Records[0].Discharge))
	fmt.Println("rank of C:", s.Rank(ds.Records[2].Discharge))
	// Output:
	// max length: 300
	// sorted: [10 50 50]
	// rank of A: 1
	// rank of C: 1
}
