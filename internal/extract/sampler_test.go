package extract

import (
	"image"
	"image/color"
	"testing"
)

// solidNRGBA builds a w x h image filled with a single colour.
func solidNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestSamplePixelsNeverUpscales(t *testing.T) {
	img := solidNRGBA(10, 10, color.NRGBA{R: 5, G: 6, B: 7, A: 255})

	pixels := SamplePixels(img, 100)

	if len(pixels) != 100 {
		t.Errorf("got %d pixels, want 100 (native resolution)", len(pixels))
	}
}

func TestSamplePixelsDownscales(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		maxSize int
		want    int
	}{
		{name: "wide image", w: 200, h: 100, maxSize: 100, want: 100 * 50},
		{name: "tall image", w: 100, h: 200, maxSize: 100, want: 50 * 100},
		{name: "square image", w: 400, h: 400, maxSize: 100, want: 100 * 100},
		{name: "within bounds", w: 64, h: 48, maxSize: 100, want: 64 * 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := solidNRGBA(tt.w, tt.h, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
			pixels := SamplePixels(img, tt.maxSize)
			if len(pixels) != tt.want {
				t.Errorf("got %d pixels, want %d", len(pixels), tt.want)
			}
		})
	}
}

func TestSamplePixelsDropsFullyTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 0}) // dropped
	img.SetNRGBA(2, 0, color.NRGBA{G: 255, A: 1}) // barely visible, kept
	img.SetNRGBA(3, 0, color.NRGBA{B: 255, A: 0}) // dropped

	pixels := SamplePixels(img, 100)

	want := []Pixel{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
	}
	if len(pixels) != len(want) {
		t.Fatalf("got %d pixels, want %d", len(pixels), len(want))
	}
	for i := range want {
		if pixels[i] != want[i] {
			t.Errorf("pixels[%d] = %+v, want %+v", i, pixels[i], want[i])
		}
	}
}

func TestSamplePixelsFullyTransparentImage(t *testing.T) {
	img := solidNRGBA(8, 8, color.NRGBA{R: 100, G: 100, B: 100, A: 0})

	if pixels := SamplePixels(img, 100); len(pixels) != 0 {
		t.Errorf("got %d pixels from fully transparent image, want 0", len(pixels))
	}
}

func TestSamplePixelsEmptyImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 0, 0))

	if pixels := SamplePixels(img, 100); len(pixels) != 0 {
		t.Errorf("got %d pixels from empty image, want 0", len(pixels))
	}
}

func TestSamplePixelsKeepsSourceValues(t *testing.T) {
	// Nearest-neighbour downscaling must emit true source texels, not
	// blended ones: a two-colour image can only yield those two values.
	img := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			if x < 100 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
	}

	pixels := SamplePixels(img, 50)

	red := Pixel{R: 255}
	blue := Pixel{B: 255}
	for i, p := range pixels {
		if p != red && p != blue {
			t.Fatalf("pixels[%d] = %+v, want pure red or pure blue", i, p)
		}
	}
}
