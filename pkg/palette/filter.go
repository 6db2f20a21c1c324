// Package palette turns quantized image colors into small, visually
// distinctive palettes and aggregates them across groups of images.
package palette

import (
	"sort"

	"github.com/chromageo/chromageo/pkg/chroma"
)

// Filter drops colors judged visually uninteresting and returns the
// survivors ranked by descending saturation. Judged per candidate, in
// order: too dark or too light, too gray, the muddy low-saturation
// middle band, and an earth-tone cap that keeps palettes from drowning
// in browns. If every candidate is rejected the full input is returned
// instead, ranked by descending saturation: a least-boring answer
// always beats an empty one.
func Filter(colors []chroma.Color, maxEarthTones int) []chroma.Color {
	filtered := make([]chroma.Color, 0, len(colors))
	earthTones := 0

	for _, c := range colors {
		h, s, l := c.HSL()

		if l < 15 || l > 85 {
			continue
		}
		if s < 20 {
			continue
		}
		if s < 30 && l > 25 && l < 75 {
			continue
		}

		if isEarthTone(h, s, l) {
			if earthTones >= maxEarthTones {
				continue
			}
			earthTones++
		}

		filtered = append(filtered, c)
	}

	if len(filtered) == 0 {
		filtered = append(filtered, colors...)
	}

	sortBySaturation(filtered)
	return filtered
}

// Earth tones sit in the orange-yellow hue band with moderate
// saturation and mid lightness.
func isEarthTone(h, s, l float64) bool {
	return h >= 15 && h <= 45 && s < 55 && l > 25 && l < 65
}

func sortBySaturation(colors []chroma.Color) {
	sort.SliceStable(colors, func(a, b int) bool {
		_, sa, _ := colors[a].HSL()
		_, sb, _ := colors[b].HSL()
		return sa > sb
	})
}
