// Package chroma provides the color value type shared by the palette
// pipeline along with conversions to hex and HSL notations.
package chroma

import (
	"fmt"
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple with each channel in [0,255]. Hex and HSL
// representations are always derived from the channels, never stored.
type Color struct {
	R int
	G int
	B int
}

const hexFormat = "#%02x%02x%02x"

// New returns a Color with each channel clamped into [0,255].
func New(r, g, b int) Color {
	return Color{R: clamp(r), G: clamp(g), B: clamp(b)}
}

// FromNative converts a stdlib image/color value, discarding alpha.
func FromNative(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: int(r >> 8), G: int(g >> 8), B: int(b >> 8)}
}

// ParseHex converts a "#rrggbb" string back into a Color.
func ParseHex(s string) (Color, error) {
	var c Color
	n, err := fmt.Sscanf(s, hexFormat, &c.R, &c.G, &c.B)
	if err != nil || n != 3 {
		return Color{}, fmt.Errorf("not a hex color: %q", s)
	}
	return c, nil
}

// Hex renders the color as a lowercase, zero-padded "#rrggbb" string.
func (c Color) Hex() string {
	return fmt.Sprintf(hexFormat, c.R, c.G, c.B)
}

// HSL returns hue in [0,360) and saturation/lightness as percentages in
// [0,100]. A true gray reports hue and saturation of 0. The saturation
// denominator switches at lightness 0.5, matching the conversion the
// filter thresholds were tuned against.
func (c Color) HSL() (h, s, l float64) {
	h, s, l = c.colorful().Hsl()
	return h, s * 100, l * 100
}

// Distance is the Euclidean distance between two colors in raw RGB
// channel space. Cluster assignment and diversity checks both use this
// metric; HSL-space distances must not be mixed in.
func (c Color) Distance(o Color) float64 {
	dr := float64(c.R - o.R)
	dg := float64(c.G - o.G)
	db := float64(c.B - o.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func (c Color) String() string {
	return c.Hex()
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// Pixels flattens an image into its pixel population, normalized to
// 8-bit RGB. Order follows the scan, but no consumer depends on it;
// duplicates are kept since they carry cluster mass.
func Pixels(img image.Image) []Color {
	bounds := img.Bounds()
	pixels := make([]Color, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixels = append(pixels, FromNative(img.At(x, y)))
		}
	}
	return pixels
}
