package imagecache

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
)

func pngPayload(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func TestFetchDownloadsAndReuses(t *testing.T) {
	payload := pngPayload(t)
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write(payload)
	}))
	defer srv.Close()

	opts := Options{Dir: t.TempDir()}
	url := srv.URL + "/wall.png"

	path, err := Fetch(context.Background(), url, opts)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read cached file: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Error("cached payload differs from served payload")
	}

	// Second fetch reuses the cached copy.
	again, err := Fetch(context.Background(), url, opts)
	if err != nil {
		t.Fatalf("second Fetch() error = %v", err)
	}
	if again != path {
		t.Errorf("second Fetch() = %q, want %q", again, path)
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("server saw %d requests, want 1", got)
	}

	// Refresh forces a fresh download.
	opts.Refresh = true
	if _, err := Fetch(context.Background(), url, opts); err != nil {
		t.Fatalf("refresh Fetch() error = %v", err)
	}
	if got := requests.Load(); got != 2 {
		t.Errorf("server saw %d requests after refresh, want 2", got)
	}
}

func TestFetchRejectsNonImagePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>nope</html>"))
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.URL+"/x.png", Options{Dir: t.TempDir()}); err == nil {
		t.Error("Fetch() error = nil for non-image payload, want error")
	}
}

func TestFetchRejectsNonHTTPURL(t *testing.T) {
	if _, err := Fetch(context.Background(), "ftp://example.com/a.png", Options{Dir: t.TempDir()}); err == nil {
		t.Error("Fetch() error = nil for non-HTTP URL, want error")
	}
}

func TestCacheFilename(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantExt string
	}{
		{name: "png extension kept", url: "https://example.com/a.png", wantExt: ".png"},
		{name: "query stripped", url: "https://example.com/a.jpg?w=100", wantExt: ".jpg"},
		{name: "no extension", url: "https://example.com/image", wantExt: ".img"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cacheFilename(tt.url)
			if len(got) < len(tt.wantExt) || got[len(got)-len(tt.wantExt):] != tt.wantExt {
				t.Errorf("cacheFilename(%q) = %q, want %q suffix", tt.url, got, tt.wantExt)
			}
			if got != cacheFilename(tt.url) {
				t.Errorf("cacheFilename(%q) is not deterministic", tt.url)
			}
		})
	}
}
