package gallery

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/chromageo/chromageo/internal/unsplash"
)

func TestStorePrepare(t *testing.T) {
	store := NewStore(t.TempDir())

	err := store.Prepare("lisbon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, dir := range []string{
		store.ImagesDir("lisbon"),
		filepath.Join(store.dir, "metadata"),
		filepath.Join(store.dir, "colors"),
	} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("expected directory at %s", dir)
		}
	}
}

func TestStoreHasImage(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Prepare("lisbon"); err != nil {
		t.Fatal(err)
	}

	if store.HasImage("lisbon", "abc123") {
		t.Error("reported an image that was never downloaded")
	}

	err := os.WriteFile(store.ImagePath("lisbon", "abc123"), []byte("jpeg bytes"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	if !store.HasImage("lisbon", "abc123") {
		t.Error("failed to report a downloaded image")
	}
}

func TestStoreGroupsAndImages(t *testing.T) {
	store := NewStore(t.TempDir())
	for _, group := range []string{"tokyo", "lisbon"} {
		if err := store.Prepare(group); err != nil {
			t.Fatal(err)
		}
	}

	groups, err := store.Groups()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"lisbon", "tokyo"}; !reflect.DeepEqual(groups, want) {
		t.Errorf("Groups() = %v, want %v", groups, want)
	}

	for _, name := range []string{"b.jpg", "a.jpg", "c.png", "notes.txt"} {
		err = os.WriteFile(filepath.Join(store.ImagesDir("lisbon"), name), []byte("x"), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}

	images, err := store.Images("lisbon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		filepath.Join(store.ImagesDir("lisbon"), "a.jpg"),
		filepath.Join(store.ImagesDir("lisbon"), "b.jpg"),
		filepath.Join(store.ImagesDir("lisbon"), "c.png"),
	}
	if !reflect.DeepEqual(images, want) {
		t.Errorf("Images() = %v, want %v", images, want)
	}
}

func TestStoreSaveMetadata(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Prepare("lisbon"); err != nil {
		t.Fatal(err)
	}

	photos := []unsplash.Photo{{ID: "abc123", Color: "#336699", Description: "rooftops"}}
	err := store.SaveMetadata("lisbon", photos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(store.dir, "metadata", "lisbon.json"))
	if err != nil {
		t.Fatal(err)
	}

	var loaded []unsplash.Photo
	if err = json.Unmarshal(content, &loaded); err != nil {
		t.Fatalf("metadata file is not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(loaded, photos) {
		t.Errorf("loaded %v, want %v", loaded, photos)
	}
}

func TestStoreSavePalette(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Prepare("lisbon"); err != nil {
		t.Fatal(err)
	}

	result := &GroupPalette{
		Group:      "lisbon",
		ImageCount: 1,
		Palettes:   []ImagePalette{{Image: "abc123.jpg", Colors: []string{"#e61414"}}},
		Aggregated: []string{"#e61414"},
	}

	err := store.SavePalette(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(store.dir, "colors", "lisbon_colors.json"))
	if err != nil {
		t.Fatal(err)
	}

	// the visualization layer depends on these exact field names
	var raw map[string]any
	if err = json.Unmarshal(content, &raw); err != nil {
		t.Fatalf("palette file is not valid JSON: %v", err)
	}
	for _, key := range []string{"city", "image_count", "individual_palettes", "aggregated_palette"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("palette file is missing the %q field", key)
		}
	}
}
