package plot

import "strconv"

// Selection is an optional record index. The zero value selects nothing.
type Selection struct {
	index int
	set   bool
}

// NoSelection is the empty selection.
var NoSelection = Selection{}

// Select returns a selection of record i.
func Select(i int) Selection {
	return Selection{index: i, set: true}
}

// Index returns the selected record index and whether one is selected.
func (s Selection) Index() (int, bool) {
	return s.index, s.set
}

// IsNone reports whether nothing is selected.
func (s Selection) IsNone() bool {
	return !s.set
}

// Is reports whether record i is the selected one.
func (s Selection) Is(i int) bool {
	return s.set && s.index == i
}

func (s Selection) String() string {
	if !s.set {
		return "none"
	}
	return strconv.Itoa(s.index)
}

// Cursor is the pointer style a frontend should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorHand
)

// String returns the CSS cursor keyword.
func (c Cursor) String() string {
	if c == CursorHand {
		return "pointer"
	}
	return "default"
}
