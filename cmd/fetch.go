package cmd

import (
	"context"
	"sort"
	"time"

	"github.com/chromageo/chromageo/internal/gallery"
	"github.com/chromageo/chromageo/internal/unsplash"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [group ...]",
	Short: "Downloads photographs for the configured groups from Unsplash",
	Long: "Downloads photographs for the configured groups from Unsplash. " +
		"With no arguments every group found in the configuration is fetched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := pidPath.CheckAndSet()
		if err != nil {
			return fail(11, err)
		}

		accessKey := viper.GetString("unsplash.access-key")
		if accessKey == "" {
			return fail(12, "no Unsplash access key: set UNSPLASH_ACCESS_KEY or unsplash.access-key")
		}

		groups, err := selectedGroups(args)
		if err != nil {
			return err
		}

		client := unsplash.New(accessKey)
		store := gallery.NewStore(viper.GetString("data-dir"))

		for _, group := range groups {
			if cmd.Context().Err() != nil {
				break
			}

			err = fetchGroup(cmd.Context(), client, store, group.name, group.queries)
			if err != nil {
				return fail(14, "unable to fetch %s: %w", group.name, err)
			}
		}

		return nil
	},
}

//--------------------------------------------------------------------------------
// private

type fetchGroupConfig struct {
	name    string
	queries []string
}

// selectedGroups resolves the requested group names against the
// configured groups table, keeping a stable name order.
func selectedGroups(args []string) ([]fetchGroupConfig, error) {
	configured := viper.GetStringMapStringSlice("groups")
	if len(configured) == 0 {
		return nil, fail(13, "no groups configured: add a [groups] table to the config file")
	}

	names := make([]string, 0, len(configured))
	if len(args) == 0 {
		for name := range configured {
			names = append(names, name)
		}
		sort.Strings(names)
	} else {
		for _, name := range args {
			if _, ok := configured[name]; !ok {
				return nil, fail(13, "unknown group: %s", name)
			}
			names = append(names, name)
		}
	}

	groups := make([]fetchGroupConfig, 0, len(names))
	for _, name := range names {
		groups = append(groups, fetchGroupConfig{name: name, queries: configured[name]})
	}

	return groups, nil
}

func fetchGroup(ctx context.Context, client *unsplash.Client, store *gallery.Store, group string, queries []string) error {
	glog := log.With().Str("group", group).Logger()
	glog.Info().Str("name", titleCaser.String(group)).Msg("fetching")

	err := store.Prepare(group)
	if err != nil {
		return err
	}

	perPage := viper.GetInt("fetch.per-page")
	pages := viper.GetInt("fetch.pages")
	delay := viper.GetDuration("fetch.delay")

	// photos are deduped by id across all of the group's queries
	seen := map[string]bool{}
	photos := []unsplash.Photo{}

	for _, query := range queries {
		for page := 1; page <= pages; page++ {
			results, err := client.Search(ctx, query, page, perPage)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				break
			}

			for _, photo := range results {
				if seen[photo.ID] {
					continue
				}
				seen[photo.ID] = true
				photos = append(photos, photo)
			}

			if pause(ctx, delay) {
				return ctx.Err()
			}
		}
	}

	err = store.SaveMetadata(group, photos)
	if err != nil {
		return err
	}

	downloaded := 0
	downloadDelay := viper.GetDuration("fetch.download-delay")

	for _, photo := range photos {
		if store.HasImage(group, photo.ID) {
			continue
		}

		err = client.Download(ctx, photo.URLs.Small, store.ImagePath(group, photo.ID))
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			glog.Warn().Err(err).Str("id", photo.ID).Msg("unable to download photo")
			continue
		}

		downloaded++
		if pause(ctx, downloadDelay) {
			return ctx.Err()
		}
	}

	glog.Info().Int("photos", len(photos)).Int("downloaded", downloaded).Msg("fetched")
	return nil
}

// pause waits for the given delay unless the context is canceled first,
// reporting whether it was.
func pause(ctx context.Context, delay time.Duration) bool {
	wake := time.NewTimer(delay)
	select {
	case <-ctx.Done():
		wake.Stop()
		return true
	case <-wake.C:
		return false
	}
}
