// Package fonts provides the font used for every rendering backend.
//
// The Go Regular typeface ships inside golang.org/x/image, so it is always
// available without system fonts. Raster output draws with it, SVG output
// embeds it as a base64 @font-face, and text measurement for tooltip sizing
// uses the same metrics everywhere so boxes line up across formats.
package fonts

import (
	"encoding/base64"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name for the embedded font.
const FontFamily = "Go Regular"

// FallbackFontFamily provides fallback fonts for viewers that ignore @font-face.
const FallbackFontFamily = `'Go Regular', 'Helvetica Neue', Helvetica, Arial, sans-serif`

var (
	parsed     *truetype.Font
	parsedOnce sync.Once

	faces   = make(map[float64]font.Face)
	facesMu sync.Mutex

	ttfBase64     string
	ttfBase64Once sync.Once
)

func regular() *truetype.Font {
	parsedOnce.Do(func() {
		// goregular.TTF is a known-good font; a parse failure is a build defect.
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			panic("fonts: parse embedded Go Regular: " + err.Error())
		}
		parsed = f
	})
	return parsed
}

// Face returns a font face of the given point size at 72 DPI, so one point
// equals one pixel. Faces are cached per size.
func Face(size float64) font.Face {
	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[size]; ok {
		return f
	}
	f := truetype.NewFace(regular(), &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	faces[size] = f
	return f
}

// Measure returns the advance width of s in pixels at the given size.
func Measure(s string, size float64) float64 {
	adv := font.MeasureString(Face(size), s)
	return float64(adv) / 64
}

// RegularTTF returns the TTF font data.
func RegularTTF() []byte {
	return goregular.TTF
}

// RegularTTFBase64 returns the TTF font data as a base64 string.
// The result is cached after first computation.
func RegularTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}
