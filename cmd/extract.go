package cmd

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/chromageo/chromageo/internal/gallery"
	"github.com/chromageo/chromageo/pkg/palette"
	"github.com/chromageo/chromageo/pkg/quantize"
	"github.com/chromageo/chromageo/pkg/util"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/atomic"
)

func init() {
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract [group ...]",
	Short: "Extracts color palettes from downloaded photographs",
	Long: "Extracts a representative color palette from every downloaded " +
		"photograph and writes one aggregated palette per group. With no " +
		"arguments every group found under the data directory is processed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := pidPath.CheckAndSet()
		if err != nil {
			return fail(21, err)
		}

		// clustering pins a core per worker, so step out of the way
		err = util.BeNice(viper.GetInt("nice"))
		if err != nil {
			log.Warn().Err(err).Msg("keeping default priority")
		}

		store := gallery.NewStore(viper.GetString("data-dir"))

		groups := args
		if len(groups) == 0 {
			groups, err = store.Groups()
			if err != nil {
				return fail(22, err)
			}
		}

		extractor := newExtractor()

		for _, group := range groups {
			if cmd.Context().Err() != nil {
				break
			}

			result := extractGroup(cmd.Context(), extractor, store, group)
			if result == nil {
				continue
			}

			err = store.SavePalette(result)
			if err != nil {
				return fail(23, err)
			}
		}

		return nil
	},
}

//--------------------------------------------------------------------------------
// private

// newExtractor assembles the palette pipeline from configuration. An
// unknown quantizer name falls back to the iterative clusterer.
func newExtractor() *palette.Extractor {
	strategy, err := quantize.New(viper.GetString("palette.quantizer"),
		viper.GetInt("palette.max-iterations"), viper.GetInt64("palette.seed"))
	if err != nil {
		log.Warn().Err(err).Str("fallback", quantize.NameKMeans).Msg("using fallback quantizer")
		strategy = quantize.NewKMeans(viper.GetInt("palette.max-iterations"), viper.GetInt64("palette.seed"))
	}

	return palette.NewExtractor(strategy, palette.Config{
		Count:         viper.GetInt("palette.count"),
		MaxEarthTones: viper.GetInt("palette.max-earth-tones"),
		MinDistance:   viper.GetFloat64("palette.min-distance"),
		Overshoot:     viper.GetInt("palette.overshoot"),
		ResizeTo:      viper.GetInt("palette.resize-to"),
	})
}

// extractGroup runs the pipeline over every image of a group. Images
// are independent, so they fan out across palette.workers goroutines
// and only merge again for aggregation.
func extractGroup(ctx context.Context, extractor *palette.Extractor, store *gallery.Store, group string) *gallery.GroupPalette {
	glog := log.With().Str("group", group).Logger()

	images, err := store.Images(group)
	if err != nil {
		glog.Warn().Err(err).Msg("skipping group")
		return nil
	}

	if len(images) == 0 {
		glog.Warn().Msg("no images found")
		return nil
	}

	glog.Info().Str("name", titleCaser.String(group)).Int("images", len(images)).Msg("extracting")

	workers := viper.GetInt("palette.workers")
	if workers < 1 {
		workers = 1
	}

	var failed atomic.Int32
	var wg sync.WaitGroup

	// slots keep image order stable without any cross-image locking
	results := make([]*gallery.ImagePalette, len(images))
	tickets := make(chan struct{}, workers)

	for i, pathname := range images {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		tickets <- struct{}{}

		go func(i int, pathname string) {
			defer util.LogRecover()
			defer wg.Done()
			defer func() { <-tickets }()

			colors, err := extractor.FromFile(pathname)
			if err != nil {
				failed.Inc()
				glog.Warn().Err(err).Str("image", filepath.Base(pathname)).Msg("skipping image")
				return
			}

			if len(colors) == 0 {
				glog.Debug().Str("image", filepath.Base(pathname)).Msg("no usable colors")
				return
			}

			results[i] = &gallery.ImagePalette{Image: filepath.Base(pathname), Colors: colors}
		}(i, pathname)
	}

	wg.Wait()

	palettes := []gallery.ImagePalette{}
	flattened := [][]string{}
	for _, r := range results {
		if r != nil {
			palettes = append(palettes, *r)
			flattened = append(flattened, r.Colors)
		}
	}

	aggregated := palette.Aggregate(flattened, viper.GetInt("palette.count"))

	glog.Info().Int("palettes", len(palettes)).Int32("failed", failed.Load()).
		Strs("aggregated", aggregated).Msg("extracted")

	return &gallery.GroupPalette{
		Group:      group,
		ImageCount: len(images),
		Palettes:   palettes,
		Aggregated: aggregated,
	}
}
