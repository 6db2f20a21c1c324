package palette

import (
	"reflect"
	"testing"

	"github.com/chromageo/chromageo/pkg/chroma"
)

var (
	// saturations noted for the ordering assertions below
	vividRed  = chroma.Color{R: 230, G: 20, B: 20}  // s ≈ 84
	vividTeal = chroma.Color{R: 30, G: 200, B: 220} // s ≈ 76
	midGray   = chroma.Color{R: 128, G: 128, B: 128}
	nearBlack = chroma.Color{R: 10, G: 10, B: 40}
	nearWhite = chroma.Color{R: 250, G: 250, B: 240}
	muddyBlue = chroma.Color{R: 96, G: 128, B: 159} // s ≈ 25, l = 50

	brown1 = chroma.Color{R: 153, G: 102, B: 51} // s = 50
	brown2 = chroma.Color{R: 140, G: 100, B: 60} // s = 40
	brown3 = chroma.Color{R: 160, G: 110, B: 60} // s ≈ 45
)

func TestFilterRejections(t *testing.T) {
	tests := []struct {
		name  string
		input []chroma.Color
		want  []chroma.Color
	}{
		{
			name:  "mid gray is too gray",
			input: []chroma.Color{midGray, vividRed},
			want:  []chroma.Color{vividRed},
		},
		{
			name:  "too dark and too light",
			input: []chroma.Color{nearBlack, vividRed, nearWhite},
			want:  []chroma.Color{vividRed},
		},
		{
			name:  "muddy middle band",
			input: []chroma.Color{muddyBlue, vividRed},
			want:  []chroma.Color{vividRed},
		},
		{
			name:  "survivors ranked by saturation not input order",
			input: []chroma.Color{vividTeal, vividRed},
			want:  []chroma.Color{vividRed, vividTeal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.input, 2)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterEarthToneCap(t *testing.T) {
	got := Filter([]chroma.Color{brown1, brown2, brown3, vividRed}, 2)

	// brown3 exceeds the cap; survivors come back saturation first
	want := []chroma.Color{vividRed, brown1, brown2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}

	if got := Filter([]chroma.Color{brown1, brown2, brown3, vividRed}, 3); len(got) != 4 {
		t.Errorf("cap of 3 should keep all browns, got %v", got)
	}
}

func TestFilterFallback(t *testing.T) {
	// every candidate fails the saturation rule
	grays := []chroma.Color{
		{R: 128, G: 128, B: 128}, // s = 0
		{R: 100, G: 128, B: 128}, // s ≈ 12
		{R: 120, G: 128, B: 128}, // s ≈ 3
	}

	got := Filter(grays, 2)
	if len(got) != len(grays) {
		t.Fatalf("fallback must keep all %d candidates, got %d", len(grays), len(got))
	}

	want := []chroma.Color{grays[1], grays[2], grays[0]}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fallback order = %v, want descending saturation %v", got, want)
	}
}

func TestFilterEmptyInput(t *testing.T) {
	if got := Filter(nil, 2); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
