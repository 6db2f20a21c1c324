package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(paletteCmd)
}

var paletteCmd = &cobra.Command{
	Use:   "palette <image> [image ...]",
	Short: "Prints the color palette of individual image files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		extractor := newExtractor()

		for _, arg := range args {
			colors, err := extractor.FromFile(arg)
			if err != nil {
				return fail(31, "can't extract palette of %s: %w", arg, err)
			}

			cmd.Printf("%s = %s\n", arg, strings.Join(colors, " "))
		}

		return nil
	},
}
