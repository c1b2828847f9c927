// Swatch extracts ranked colour palettes from images by clustering
// their pixels in RGB space.
package main

import "github.com/swatchkit/swatch/internal/cli"

func main() {
	cli.Execute()
}
