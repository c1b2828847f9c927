// Package extract implements ranked dominant-colour extraction from
// raster images using k-means++ clustering in RGB space.
package extract

// Default option values used when an Options field is left at zero.
const (
	// DefaultColorCount is the number of colours extracted by default.
	DefaultColorCount = 6

	// DefaultMaxSize is the default bound on the longer image edge
	// (in pixels) before clustering. Images are never upscaled.
	DefaultMaxSize = 100

	// DefaultMaxIterations bounds the refinement loop.
	DefaultMaxIterations = 20
)

// Options configures a colour extraction run. The zero value of any
// field selects the corresponding default; fields are otherwise used
// as given.
type Options struct {
	// ColorCount is the number of clusters requested. The effective
	// cluster count is clamped to the number of sampled pixels.
	ColorCount int

	// MaxSize bounds the sampling resolution: the image is scaled so
	// that neither edge exceeds MaxSize pixels.
	MaxSize int

	// MaxIterations bounds the assign/update refinement loop. Hitting
	// the bound is not an error; the last centres are kept.
	MaxIterations int
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	return Options{
		ColorCount:    DefaultColorCount,
		MaxSize:       DefaultMaxSize,
		MaxIterations: DefaultMaxIterations,
	}
}

// normalized returns a copy of o with non-positive fields replaced by
// their defaults.
func (o Options) normalized() Options {
	if o.ColorCount < 1 {
		o.ColorCount = DefaultColorCount
	}
	if o.MaxSize < 1 {
		o.MaxSize = DefaultMaxSize
	}
	if o.MaxIterations < 1 {
		o.MaxIterations = DefaultMaxIterations
	}
	return o
}
