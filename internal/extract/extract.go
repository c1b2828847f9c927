package extract

import (
	"image"
	"math/rand"
	"time"
)

// Extractor runs k-means++ colour extraction. It holds no state
// between calls beyond its options and random source; concurrent
// extractions should each construct their own Extractor so the random
// source is not shared.
type Extractor struct {
	opts Options
	rng  *rand.Rand
}

// New creates an Extractor. A nil rng selects a time-seeded source;
// callers wanting reproducible runs pass rand.New(rand.NewSource(seed)).
func New(opts Options, rng *rand.Rand) *Extractor {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- clustering seeds need no cryptographic strength
	}
	return &Extractor{
		opts: opts.normalized(),
		rng:  rng,
	}
}

// Result is the outcome of one extraction run.
type Result struct {
	// Colors is ordered by percentage, descending. Its length is
	// min(ColorCount, sampled pixel count); empty clusters still
	// contribute their carried-forward centre at 0.0%.
	Colors []ColorResult

	// Duration covers seeding through formatting only. Image decode
	// and sampling time are excluded.
	Duration time.Duration
}

// Extract samples img and clusters the result. See ExtractPixels for
// the clustering contract.
func (e *Extractor) Extract(img image.Image) Result {
	return e.ExtractPixels(SamplePixels(img, e.opts.MaxSize))
}

// ExtractPixels clusters an already-sampled pixel list into a ranked
// palette. An empty list yields an empty result with zero duration.
// The run never fails: exhausting MaxIterations before the centres
// settle simply keeps the last computed centres and sizes.
func (e *Extractor) ExtractPixels(pixels []Pixel) Result {
	if len(pixels) == 0 {
		return Result{}
	}

	start := time.Now()

	k := min(e.opts.ColorCount, len(pixels))
	centers := e.initCenters(pixels, k)
	assignments := make([]int, len(pixels))
	sizes := make([]int, k)

	for iter := 0; iter < e.opts.MaxIterations; iter++ {
		assign(pixels, centers, assignments, sizes)
		next := update(pixels, assignments, sizes, centers)
		settled := converged(centers, next)
		centers = next
		if settled {
			break
		}
	}

	colors := rank(centers, sizes, len(pixels))
	return Result{Colors: colors, Duration: time.Since(start)}
}
