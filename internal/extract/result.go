package extract

import (
	"fmt"
	"sort"
)

// ColorResult is one ranked palette entry. It is immutable output:
// the engine never touches it after creation.
type ColorResult struct {
	Hex        string `json:"hex"`
	RGB        string `json:"rgb"`
	R          int    `json:"r"`
	G          int    `json:"g"`
	B          int    `json:"b"`
	Percentage string `json:"percentage"`
}

// rank pairs each centre with its cluster size, orders the pairs by
// share of the sampled pixels (descending, stable: ties keep their
// prior relative order) and formats one ColorResult per cluster.
//
// Hex strings are lowercase "#rrggbb"; rgb strings are
// "rgb(r, g, b)". Percentages carry exactly one decimal, formatted
// with fmt's %.1f verb, which rounds halves to even (25.35 -> "25.3",
// 25.45 -> "25.4"). rank is a pure function: identical centres and
// sizes always produce identical output.
func rank(centers []center, sizes []int, pixelCount int) []ColorResult {
	type cluster struct {
		c    center
		size int
	}
	clusters := make([]cluster, len(centers))
	for i, c := range centers {
		clusters[i] = cluster{c: c, size: sizes[i]}
	}
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].size > clusters[j].size
	})

	results := make([]ColorResult, len(clusters))
	for i, cl := range clusters {
		percentage := 100 * float64(cl.size) / float64(pixelCount)
		results[i] = ColorResult{
			Hex:        fmt.Sprintf("#%02x%02x%02x", cl.c.r, cl.c.g, cl.c.b),
			RGB:        fmt.Sprintf("rgb(%d, %d, %d)", cl.c.r, cl.c.g, cl.c.b),
			R:          cl.c.r,
			G:          cl.c.g,
			B:          cl.c.b,
			Percentage: fmt.Sprintf("%.1f", percentage),
		}
	}
	return results
}
