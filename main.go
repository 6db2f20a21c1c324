// Chromageo builds per-city color palettes from photographs: it fetches
// city photos from the Unsplash API, extracts the visually distinctive
// colors of each one, and aggregates them into a palette per city.
package main

import (
	"os"

	"github.com/chromageo/chromageo/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
