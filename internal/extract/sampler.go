package extract

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Pixel is one opaque sampled texel. Pixels are immutable once
// sampled; the clustering loop only ever reads them.
type Pixel struct {
	R, G, B uint8
}

// SamplePixels renders img at a bounded resolution and returns its
// visible texels as a flat pixel list.
//
// The downscale factor is min(maxSize/width, maxSize/height, 1), so
// images already within maxSize are read at their native resolution
// and are never upscaled. Scaling uses nearest-neighbour sampling, so
// every emitted pixel is a true source texel. Fully transparent
// texels are dropped, not zeroed; a fully transparent image yields an
// empty list, which is a valid input for the engine.
func SamplePixels(img image.Image, maxSize int) []Pixel {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width < 1 || height < 1 {
		return nil
	}

	scale := 1.0
	if maxSize > 0 {
		scale = min(float64(maxSize)/float64(width), float64(maxSize)/float64(height), 1.0)
	}
	targetW := int(float64(width) * scale)
	targetH := int(float64(height) * scale)
	if targetW < 1 || targetH < 1 {
		return nil
	}

	// NRGBA keeps channel values unpremultiplied so partially
	// transparent texels retain their source colour.
	scaled := image.NewNRGBA(image.Rect(0, 0, targetW, targetH))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Src, nil)

	pixels := make([]Pixel, 0, targetW*targetH)
	for y := 0; y < targetH; y++ {
		row := scaled.Pix[y*scaled.Stride : y*scaled.Stride+targetW*4]
		for x := 0; x < len(row); x += 4 {
			if row[x+3] == 0 {
				continue
			}
			pixels = append(pixels, Pixel{R: row[x], G: row[x+1], B: row[x+2]})
		}
	}
	return pixels
}
