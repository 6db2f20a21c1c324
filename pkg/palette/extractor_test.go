package palette

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/chromageo/chromageo/pkg/quantize"
)

func testExtractor(count int) *Extractor {
	return NewExtractor(quantize.NewKMeans(quantize.DefaultIterations, 1), Config{
		Count:         count,
		MaxEarthTones: 2,
		MinDistance:   30,
		Overshoot:     8,
		ResizeTo:      150,
	})
}

func TestFromImageEndToEnd(t *testing.T) {
	// four highly saturated quadrants, none of which the filter or the
	// diversity pass has any business removing
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 230, G: 20, B: 20, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 30, G: 200, B: 60, A: 255})
	img.SetRGBA(0, 1, color.RGBA{R: 30, G: 60, B: 220, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 230, G: 220, B: 30, A: 255})

	colors, err := testExtractor(4).FromImage(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// all four survive and rank by descending saturation
	want := []string{"#e61414", "#e6dc1e", "#1e3cdc", "#1ec83c"}
	if !reflect.DeepEqual(colors, want) {
		t.Errorf("FromImage() = %v, want %v", colors, want)
	}
}

func TestFromImageTruncatesToCount(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 230, G: 20, B: 20, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 30, G: 200, B: 60, A: 255})
	img.SetRGBA(0, 1, color.RGBA{R: 30, G: 60, B: 220, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 230, G: 220, B: 30, A: 255})

	colors, err := testExtractor(2).FromImage(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(colors) != 2 {
		t.Errorf("expected palette truncated to 2 colors, got %v", colors)
	}
}

func TestFromImageEmptyImage(t *testing.T) {
	colors, err := testExtractor(6).FromImage(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	if err != nil {
		t.Fatalf("degenerate input must not error: %v", err)
	}
	if len(colors) != 0 {
		t.Errorf("expected an empty palette, got %v", colors)
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	pathname := filepath.Join(dir, "solid.png")
	f, err := os.Create(pathname)
	if err != nil {
		t.Fatal(err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 230, G: 20, B: 20, A: 255})
		}
	}

	err = png.Encode(f, img)
	f.Close()
	if err != nil {
		t.Fatal(err)
	}

	colors, err := testExtractor(6).FromFile(pathname)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"#e61414"}
	if !reflect.DeepEqual(colors, want) {
		t.Errorf("FromFile() = %v, want %v", colors, want)
	}
}

func TestFromFileDecodeFailure(t *testing.T) {
	dir := t.TempDir()

	pathname := filepath.Join(dir, "corrupt.jpg")
	err := os.WriteFile(pathname, []byte("not an image"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	_, err = testExtractor(6).FromFile(pathname)
	if err == nil {
		t.Error("expected a decode error")
	}

	_, err = testExtractor(6).FromFile(filepath.Join(dir, "missing.jpg"))
	if err == nil {
		t.Error("expected an open error")
	}
}
