// Package imagecache downloads remote images into the user cache
// directory so repeated extractions of the same URL skip the network.
// Only acquisition input is cached; extraction results never are.
package imagecache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	httputil "github.com/swatchkit/swatch/internal/util/http"
)

// Options configures image caching behavior.
type Options struct {
	// Dir is the directory where images are cached.
	// If empty, defaults to <user cache dir>/swatch/images.
	Dir string

	// Refresh forces a fresh download even when a cached copy exists.
	Refresh bool
}

// DefaultDir returns the default cache directory path.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "swatch", "images"), nil
	}
	return filepath.Join(cacheDir, "swatch", "images"), nil
}

// cacheFilename derives a deterministic filename from a URL: the
// SHA-256 of the URL plus the original extension when one is present.
func cacheFilename(url string) string {
	hash := sha256.Sum256([]byte(url))
	name := fmt.Sprintf("%x", hash[:16])

	ext := filepath.Ext(url)
	if idx := strings.IndexByte(ext, '?'); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 {
		ext = ".img"
	}
	return name + ext
}

// Fetch returns a local file path holding the image at url,
// downloading it on a cache miss. The downloaded payload must sniff
// as an image; anything else is rejected rather than cached.
func Fetch(ctx context.Context, url string, opts Options) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	dir := opts.Dir
	if dir == "" {
		defaultDir, err := DefaultDir()
		if err != nil {
			return "", err
		}
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	cachedPath := filepath.Join(dir, cacheFilename(url))

	if !opts.Refresh {
		if _, err := os.Stat(cachedPath); err == nil {
			return cachedPath, nil
		}
	}

	data, err := httputil.Fetch(ctx, url, httputil.FetchOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	if ct := http.DetectContentType(data); !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("refusing to cache non-image payload (%s)", ct)
	}

	if err := os.WriteFile(cachedPath, data, 0o644); err != nil { // #nosec G306 - Cache files need standard read permissions
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}

	return cachedPath, nil
}
