package quantize

import (
	"image"
	"math"
	"math/rand"
	"sort"

	"github.com/chromageo/chromageo/pkg/chroma"
)

// KMeans clusters the pixel population iteratively. Centroid
// initialization draws from a seeded random source so runs over the
// same image produce the same palette. Instances hold no mutable
// state, so one strategy can serve concurrent images.
type KMeans struct {
	iterations int
	seed       int64
}

// DefaultIterations caps the number of refinement rounds when no
// earlier convergence is reached.
const DefaultIterations = 20

// NewKMeans returns a KMeans strategy with the given iteration cap and
// random seed. A non-positive cap falls back to DefaultIterations.
func NewKMeans(iterations int, seed int64) *KMeans {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &KMeans{iterations: iterations, seed: seed}
}

var _ Strategy = (*KMeans)(nil)

func (q *KMeans) Name() string { return NameKMeans }

// Quantize flattens the image and clusters its pixels.
func (q *KMeans) Quantize(img image.Image, k int) ([]chroma.Color, error) {
	return q.Centroids(chroma.Pixels(img), k), nil
}

// Centroids clusters the population into at most k groups and returns
// their centers ordered by descending cluster size. Fewer than k
// distinct pixels clamp k down; an empty population yields an empty
// result.
func (q *KMeans) Centroids(pixels []chroma.Color, k int) []chroma.Color {
	if len(pixels) == 0 || k <= 0 {
		return nil
	}

	unique, _ := distinct(pixels)
	if k > len(unique) {
		k = len(unique)
	}

	// Forgy initialization: k distinct pixels, uniformly at random. The
	// source is rebuilt per call, so every call over the same population
	// starts from the same centroids.
	rng := rand.New(rand.NewSource(q.seed))
	centroids := make([]chroma.Color, k)
	for i, j := range rng.Perm(len(unique))[:k] {
		centroids[i] = unique[j]
	}

	assignments := make([]int, len(pixels))
	counts := make([]int, k)

	for iter := 0; iter < q.iterations; iter++ {
		for i := range counts {
			counts[i] = 0
		}
		for i, p := range pixels {
			assignments[i] = nearest(p, centroids)
			counts[assignments[i]]++
		}

		next := recenter(pixels, assignments, centroids)

		converged := true
		for i := range centroids {
			if next[i] != centroids[i] {
				converged = false
				break
			}
		}
		centroids = next
		if converged {
			break
		}
	}

	// Most populous cluster first; equal sizes keep centroid order.
	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})

	out := make([]chroma.Color, k)
	for i, j := range order {
		out[i] = centroids[j]
	}
	return out
}

// nearest returns the index of the closest centroid, breaking distance
// ties toward the lowest index.
func nearest(p chroma.Color, centroids []chroma.Color) int {
	best := 0
	bestDist := math.MaxFloat64
	for i, c := range centroids {
		if d := p.Distance(c); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// recenter moves each centroid to the integer-truncated per-channel
// mean of its assigned pixels. A cluster with no pixels keeps its
// previous center.
func recenter(pixels []chroma.Color, assignments []int, centroids []chroma.Color) []chroma.Color {
	k := len(centroids)
	var sums = make([][3]int, k)
	counts := make([]int, k)

	for i, p := range pixels {
		c := assignments[i]
		sums[c][0] += p.R
		sums[c][1] += p.G
		sums[c][2] += p.B
		counts[c]++
	}

	next := make([]chroma.Color, k)
	for i := range next {
		if counts[i] == 0 {
			next[i] = centroids[i]
			continue
		}
		next[i] = chroma.Color{
			R: sums[i][0] / counts[i],
			G: sums[i][1] / counts[i],
			B: sums[i][2] / counts[i],
		}
	}
	return next
}
