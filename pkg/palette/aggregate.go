package palette

import "sort"

// Aggregate flattens the hex colors of every per-image palette in a
// group and returns the count most frequent ones. Equal counts rank by
// first occurrence across the flattened sequence. No palettes or a
// non-positive count means an empty aggregate, not an error.
func Aggregate(palettes [][]string, count int) []string {
	if count <= 0 {
		return []string{}
	}

	occurrences := map[string]int{}
	firstSeen := map[string]int{}
	order := []string{}

	for _, p := range palettes {
		for _, hex := range p {
			if occurrences[hex] == 0 {
				firstSeen[hex] = len(order)
				order = append(order, hex)
			}
			occurrences[hex]++
		}
	}

	sort.SliceStable(order, func(a, b int) bool {
		ca, cb := occurrences[order[a]], occurrences[order[b]]
		if ca != cb {
			return ca > cb
		}
		return firstSeen[order[a]] < firstSeen[order[b]]
	})

	if count < len(order) {
		order = order[:count]
	}
	return order
}
