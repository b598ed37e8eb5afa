package plot

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/riverplot/pkg/errors"
)

// Layout holds the fixed scene geometry in pixels.
type Layout struct {
	Margin       float64 `toml:"margin" json:"margin"`
	TitleMargin  float64 `toml:"title_margin" json:"title_margin"`
	Padding      float64 `toml:"padding" json:"padding"`
	BorderRadius float64 `toml:"border_radius" json:"border_radius"`
	PointSize    float64 `toml:"point_size" json:"point_size"`
	LineHeight   float64 `toml:"line_height" json:"line_height"`
}

// Palette holds the scene colors as hex strings.
type Palette struct {
	Primary      string `toml:"primary" json:"primary"`
	PrimaryLight string `toml:"primary_light" json:"primary_light"`
	Accent       string `toml:"accent" json:"accent"`
	Background   string `toml:"background" json:"background"`
	Surface      string `toml:"surface" json:"surface"`
	OnSurface    string `toml:"on_surface" json:"on_surface"`
	GridLines    string `toml:"grid_lines" json:"grid_lines"`

	// MutedAlpha is the opacity of secondary tooltip text, in [0, 1].
	MutedAlpha float64 `toml:"muted_alpha" json:"muted_alpha"`
}

// Theme is the read-only configuration of a chart.
type Theme struct {
	Title   string  `toml:"title" json:"title"`
	XLabel  string  `toml:"x_label" json:"x_label"`
	YLabel  string  `toml:"y_label" json:"y_label"`
	Layout  Layout  `toml:"layout" json:"layout"`
	Palette Palette `toml:"palette" json:"palette"`
}

// Text sizes in pixels.
const (
	TitleSize        = 24
	AxisLabelSize    = 14
	TooltipTitleSize = 14
	TooltipBodySize  = 12
)

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Title:  "Rivers in the world",
		XLabel: "Length (km)",
		YLabel: "Discharge (m³/s)",
		Layout: Layout{
			Margin:       80,
			TitleMargin:  40,
			Padding:      20,
			BorderRadius: 4,
			PointSize:    12,
			LineHeight:   24,
		},
		Palette: Palette{
			Primary:      "#424242",
			PrimaryLight: "#616161",
			Accent:       "#FF4081",
			Background:   "#FAFAFA",
			Surface:      "#FFFFFF",
			OnSurface:    "#212121",
			GridLines:    "#E0E0E0",
			MutedAlpha:   float64(0x99) / 255,
		},
	}
}

// LoadTheme reads a TOML theme file and overlays it on [DefaultTheme].
// Keys absent from the file keep their default values; unknown keys are
// rejected.
func LoadTheme(path string) (Theme, error) {
	t := DefaultTheme()
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		if os.IsNotExist(err) {
			return Theme{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open theme %s", path)
		}
		return Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "decode theme %s", path)
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "theme %s: unknown key(s): %s", path, strings.Join(keys, ", "))
	}
	if err := t.Validate(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// Validate checks geometry bounds and color syntax.
func (t Theme) Validate() error {
	l := t.Layout
	for _, v := range []struct {
		name string
		v    float64
	}{
		{"margin", l.Margin}, {"title_margin", l.TitleMargin}, {"padding", l.Padding},
		{"border_radius", l.BorderRadius},
	} {
		if v.v < 0 {
			return errors.New(errors.ErrCodeInvalidTheme, "layout.%s must not be negative, got %g", v.name, v.v)
		}
	}
	if l.PointSize <= 0 {
		return errors.New(errors.ErrCodeInvalidTheme, "layout.point_size must be positive, got %g", l.PointSize)
	}
	if l.LineHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidTheme, "layout.line_height must be positive, got %g", l.LineHeight)
	}
	if a := t.Palette.MutedAlpha; a < 0 || a > 1 {
		return errors.New(errors.ErrCodeInvalidTheme, "palette.muted_alpha must be within [0, 1], got %g", a)
	}
	_, err := t.Palette.resolve()
	return err
}

// Colors are the resolved palette colors.
type Colors struct {
	Primary      color.NRGBA
	PrimaryLight color.NRGBA
	Accent       color.NRGBA
	Background   color.NRGBA
	Surface      color.NRGBA
	OnSurface    color.NRGBA
	GridLines    color.NRGBA
	Muted        color.NRGBA // OnSurface at MutedAlpha
}

func (p Palette) resolve() (Colors, error) {
	var c Colors
	for _, f := range []struct {
		name string
		hex  string
		dst  *color.NRGBA
	}{
		{"primary", p.Primary, &c.Primary},
		{"primary_light", p.PrimaryLight, &c.PrimaryLight},
		{"accent", p.Accent, &c.Accent},
		{"background", p.Background, &c.Background},
		{"surface", p.Surface, &c.Surface},
		{"on_surface", p.OnSurface, &c.OnSurface},
		{"grid_lines", p.GridLines, &c.GridLines},
	} {
		col, err := ParseColor(f.hex)
		if err != nil {
			return Colors{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "palette.%s", f.name)
		}
		*f.dst = col
	}
	c.Muted = c.OnSurface
	c.Muted.A = uint8(p.MutedAlpha*255 + 0.5)
	return c, nil
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7 && len(s) != 9) {
		return color.NRGBA{}, fmt.Errorf("invalid color %q (want #rgb, #rrggbb or #rrggbbaa)", s)
	}
	alpha := uint8(0xff)
	if len(s) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in color %q", s)
		}
		alpha = a
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func Hex(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
