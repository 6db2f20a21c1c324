// Package gallery owns the on-disk layout shared by the scraper and
// the extractor: downloaded images, photo metadata, and the color
// palette results consumed by the visualization layer.
package gallery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/chromageo/chromageo/internal/unsplash"
)

// Store resolves and manages paths under a single data directory:
//
//	<dir>/images/cities/<group>/<photo-id>.jpg
//	<dir>/metadata/<group>.json
//	<dir>/colors/<group>_colors.json
type Store struct {
	dir string
}

// NewStore returns a Store rooted at the given data directory. Nothing
// is created until a group is prepared.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// ImagesDir returns the directory holding a group's downloaded images.
func (s *Store) ImagesDir(group string) string {
	return filepath.Join(s.dir, "images", "cities", group)
}

// ImagePath returns where a photo with the given id is stored.
func (s *Store) ImagePath(group, id string) string {
	return filepath.Join(s.ImagesDir(group), id+".jpg")
}

// HasImage reports whether a photo has already been downloaded. The
// scraper uses this to skip photos it has seen in earlier runs.
func (s *Store) HasImage(group, id string) bool {
	_, err := os.Stat(s.ImagePath(group, id))
	return err == nil
}

// Prepare creates the directories a group needs before downloading.
func (s *Store) Prepare(group string) error {
	for _, dir := range []string{s.ImagesDir(group), s.metadataDir(), s.colorsDir()} {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return fmt.Errorf("unable to create %s: %w", dir, err)
		}
	}
	return nil
}

// Groups lists every group that has an image directory, sorted by name.
func (s *Store) Groups() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, "images", "cities"))
	if err != nil {
		return nil, fmt.Errorf("unable to list groups: %w", err)
	}

	groups := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			groups = append(groups, entry.Name())
		}
	}

	sort.Strings(groups)
	return groups, nil
}

// Images lists a group's image files (jpg and png), sorted by name.
func (s *Store) Images(group string) ([]string, error) {
	images := []string{}
	for _, pattern := range []string{"*.jpg", "*.png"} {
		matches, err := filepath.Glob(filepath.Join(s.ImagesDir(group), pattern))
		if err != nil {
			return nil, fmt.Errorf("unable to list images of %s: %w", group, err)
		}
		images = append(images, matches...)
	}

	sort.Strings(images)
	return images, nil
}

// SaveMetadata writes a group's photo metadata file.
func (s *Store) SaveMetadata(group string, photos []unsplash.Photo) error {
	return writeJSON(filepath.Join(s.metadataDir(), group+".json"), photos)
}

// SavePalette writes a group's palette result file. Results are
// write-once outputs: a rerun replaces the file as a whole.
func (s *Store) SavePalette(result *GroupPalette) error {
	return writeJSON(filepath.Join(s.colorsDir(), result.Group+"_colors.json"), result)
}

//--------------------------------------------------------------------------------
// private

func (s *Store) metadataDir() string {
	return filepath.Join(s.dir, "metadata")
}

func (s *Store) colorsDir() string {
	return filepath.Join(s.dir, "colors")
}

func writeJSON(pathname string, data any) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode %s: %w", pathname, err)
	}

	err = os.WriteFile(pathname, content, 0644)
	if err != nil {
		return fmt.Errorf("unable to write %s: %w", pathname, err)
	}

	return nil
}
