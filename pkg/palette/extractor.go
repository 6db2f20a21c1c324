package palette

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/chromageo/chromageo/pkg/chroma"
	"github.com/chromageo/chromageo/pkg/quantize"

	"github.com/nfnt/resize"
)

// Config carries the tunables of the per-image pipeline. The caller
// owns where the values come from.
type Config struct {
	Count         int     // colors per palette
	MaxEarthTones int     // cap on near-duplicate browns
	MinDistance   float64 // minimum RGB distance between kept colors
	Overshoot     int     // extra colors requested so the filter has material
	ResizeTo      int     // longer-edge resolution before quantizing
}

// DefaultConfig returns the tuning the palettes were calibrated with.
func DefaultConfig() Config {
	return Config{
		Count:         6,
		MaxEarthTones: 2,
		MinDistance:   30,
		Overshoot:     8,
		ResizeTo:      150,
	}
}

// Extractor runs the whole per-image pipeline: downscale, quantize,
// filter, diversify, truncate, render as hex.
type Extractor struct {
	cfg      Config
	strategy quantize.Strategy
}

// NewExtractor pairs a quantization strategy with a pipeline config.
// Non-positive config fields fall back to their defaults.
func NewExtractor(strategy quantize.Strategy, cfg Config) *Extractor {
	def := DefaultConfig()
	if cfg.Count <= 0 {
		cfg.Count = def.Count
	}
	if cfg.MinDistance <= 0 {
		cfg.MinDistance = def.MinDistance
	}
	if cfg.Overshoot <= 0 {
		cfg.Overshoot = def.Overshoot
	}
	if cfg.ResizeTo <= 0 {
		cfg.ResizeTo = def.ResizeTo
	}
	return &Extractor{cfg: cfg, strategy: strategy}
}

// FromFile decodes an image file and extracts its palette. Decode
// failures are the only errors this pipeline reports; callers are
// expected to skip the image and continue.
func (e *Extractor) FromFile(pathname string) ([]string, error) {
	f, err := os.Open(pathname)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", pathname, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", pathname, err)
	}

	return e.FromImage(img)
}

// FromImage extracts the palette of an already decoded image. An image
// with no usable pixels yields an empty palette, not an error.
func (e *Extractor) FromImage(img image.Image) ([]string, error) {
	colors, err := e.strategy.Quantize(e.downscale(img), e.cfg.Count+e.cfg.Overshoot)
	if err != nil {
		return nil, err
	}
	if len(colors) == 0 {
		return nil, nil
	}

	colors = Filter(colors, e.cfg.MaxEarthTones)
	colors = Diversify(colors, e.cfg.MinDistance)
	if len(colors) > e.cfg.Count {
		colors = colors[:e.cfg.Count]
	}

	return hexes(colors), nil
}

// downscale resizes proportionally so the longer edge matches the
// configured resolution. Color extraction is detail-insensitive, so
// the cheapest resampling wins.
func (e *Extractor) downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return img
	}

	if bounds.Dx() >= bounds.Dy() {
		return resize.Resize(uint(e.cfg.ResizeTo), 0, img, resize.NearestNeighbor)
	}
	return resize.Resize(0, uint(e.cfg.ResizeTo), img, resize.NearestNeighbor)
}

func hexes(colors []chroma.Color) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = c.Hex()
	}
	return out
}
