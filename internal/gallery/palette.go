package gallery

// ImagePalette is one image's extracted colors, hex-encoded and ordered
// most desirable first.
type ImagePalette struct {
	Image  string   `json:"image"`
	Colors []string `json:"colors"`
}

// GroupPalette is the per-group result document. The JSON field names
// are consumed by the visualization layer and must not change.
type GroupPalette struct {
	Group      string         `json:"city"`
	ImageCount int            `json:"image_count"`
	Palettes   []ImagePalette `json:"individual_palettes"`
	Aggregated []string       `json:"aggregated_palette"`
}
