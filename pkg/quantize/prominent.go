package quantize

import (
	"fmt"
	"image"
	"sort"

	"github.com/chromageo/chromageo/pkg/chroma"

	"github.com/EdlinOrg/prominentcolor"
)

// Prominent delegates quantization to the prominentcolor library. Its
// internal histogram bucketing makes no determinism or color-identity
// promises relative to KMeans, but it honors the same ordering and
// cardinality contract.
type Prominent struct{}

var _ Strategy = Prominent{}

func (Prominent) Name() string { return NameProminent }

// Quantize returns the k most prominent colors of the image, largest
// cluster first.
func (Prominent) Quantize(img image.Image, k int) ([]chroma.Color, error) {
	if k <= 0 {
		return nil, nil
	}

	pixels := chroma.Pixels(img)
	if len(pixels) == 0 {
		return nil, nil
	}

	// The library needs at least k distinct colors to seed its
	// clusters. Degenerate populations skip it and report the distinct
	// colors directly, heaviest first.
	unique, counts := distinct(pixels)
	if len(unique) <= k {
		sort.SliceStable(unique, func(a, b int) bool {
			return counts[unique[a]] > counts[unique[b]]
		})
		return unique, nil
	}

	items, err := prominentcolor.KmeansWithAll(k, img, prominentcolor.ArgumentNoCropping, prominentcolor.DefaultSize, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to quantize image: %w", err)
	}

	colors := make([]chroma.Color, 0, len(items))
	for _, item := range items {
		colors = append(colors, chroma.New(int(item.Color.R), int(item.Color.G), int(item.Color.B)))
	}
	return colors, nil
}
