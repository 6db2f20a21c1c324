package palette

import "github.com/chromageo/chromageo/pkg/chroma"

// Diversify keeps a subsequence of colors that are pairwise farther
// apart than minDistance in RGB space. The first color is always kept;
// each later candidate is kept only if it clears every color already
// kept. One greedy pass, no backtracking, input order preserved.
func Diversify(colors []chroma.Color, minDistance float64) []chroma.Color {
	if len(colors) == 0 {
		return nil
	}

	diverse := []chroma.Color{colors[0]}
	for _, c := range colors[1:] {
		distinct := true
		for _, kept := range diverse {
			if c.Distance(kept) <= minDistance {
				distinct = false
				break
			}
		}
		if distinct {
			diverse = append(diverse, c)
		}
	}
	return diverse
}
