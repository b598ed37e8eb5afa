package plot

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// FormatNumber formats v with grouped thousands and the shortest fractional
// part that round-trips, e.g. 209000 → "209,000" and 1234.5 → "1,234.5".
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	whole, frac, hasFrac := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return s
	}
	out := numberPrinter.Sprintf("%d", n)
	if n == 0 && strings.HasPrefix(whole, "-") {
		out = "-" + out
	}
	if hasFrac {
		out += "." + frac
	}
	return out
}
