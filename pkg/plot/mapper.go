package plot

import (
	"github.com/matzehuels/riverplot/pkg/rivers"
)

// Frame is the canvas size in pixels.
type Frame struct {
	Width, Height float64
}

// Mapper converts records to pixel positions for one frame.
type Mapper struct {
	stats  rivers.Stats
	margin float64
	frame  Frame
}

// NewMapper returns a mapper for the given statistics, margin and frame.
func NewMapper(stats rivers.Stats, margin float64, frame Frame) Mapper {
	return Mapper{stats: stats, margin: margin, frame: frame}
}

// Map returns the pixel position of r. ok is false for incomplete records,
// for discharges that are not part of the statistics and for empty datasets.
//
// A zero maximum length puts every record on the left margin; a single
// discharge value puts every record on the vertical center of the plot area.
func (m Mapper) Map(r rivers.Record) (x, y float64, ok bool) {
	if r.Incomplete || m.stats.Empty() {
		return 0, 0, false
	}
	rank := m.stats.Rank(r.Discharge)
	if rank < 0 {
		return 0, 0, false
	}
	return m.X(r.Length), m.Y(rank), true
}

// X maps a length to its horizontal pixel position.
func (m Mapper) X(length float64) float64 {
	left, right := m.margin, m.frame.Width-m.margin
	if m.stats.MaxLength == 0 {
		return left
	}
	return lerp(length, 0, m.stats.MaxLength, left, right)
}

// Y maps a discharge rank to its vertical pixel position. Higher ranks are
// higher on screen.
func (m Mapper) Y(rank int) float64 {
	bottom, top := m.frame.Height-m.margin, m.margin
	n := len(m.stats.SortedDischarges)
	if n <= 1 {
		return (bottom + top) / 2
	}
	return lerp(float64(rank), 0, float64(n-1), bottom, top)
}

func lerp(v, inLo, inHi, outLo, outHi float64) float64 {
	return outLo + (v-inLo)/(inHi-inLo)*(outHi-outLo)
}
