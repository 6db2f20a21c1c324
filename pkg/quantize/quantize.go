// Package quantize reduces an image's pixel population to a small
// ordered set of representative colors.
package quantize

import (
	"fmt"
	"image"

	"github.com/chromageo/chromageo/pkg/chroma"
)

// Strategy is a pluggable quantization algorithm. Quantize returns at
// most k colors ordered by descending cluster mass. An image with no
// decodable pixels yields an empty result, never an error; a population
// with fewer than k distinct colors yields fewer than k results.
type Strategy interface {
	Name() string
	Quantize(img image.Image, k int) ([]chroma.Color, error)
}

// New selects a strategy by its configured name.
func New(name string, iterations int, seed int64) (Strategy, error) {
	switch name {
	case NameKMeans:
		return NewKMeans(iterations, seed), nil
	case NameProminent:
		return Prominent{}, nil
	default:
		return nil, fmt.Errorf("unknown quantizer %q (have: %s, %s)", name, NameKMeans, NameProminent)
	}
}

const (
	// NameKMeans selects the iterative clustering strategy.
	NameKMeans = "kmeans"
	// NameProminent selects the prominentcolor-backed strategy.
	NameProminent = "prominent"
)

// distinct returns the unique colors of a population in first-seen
// order, paired with their occurrence counts.
func distinct(pixels []chroma.Color) ([]chroma.Color, map[chroma.Color]int) {
	counts := make(map[chroma.Color]int, len(pixels))
	unique := make([]chroma.Color, 0, len(pixels))
	for _, p := range pixels {
		if counts[p] == 0 {
			unique = append(unique, p)
		}
		counts[p]++
	}
	return unique, counts
}
