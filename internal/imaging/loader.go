package imaging

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"math/big"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	_ "golang.org/x/image/webp" // Register WebP format

	httputil "github.com/swatchkit/swatch/internal/util/http"
)

// Loader produces a decoded image from an input reference.
type Loader interface {
	Load(input string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load decodes an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, invalidInput(path, "path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, acquisitionFailed(path, "stat", err)
	}
	if info.IsDir() {
		return nil, invalidInput(path, "path is a directory, not a file")
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, acquisitionFailed(path, "open", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, acquisitionFailed(path, "decode", fmt.Errorf("format %q: %w", format, err))
	}

	return img, nil
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
	logger     hclog.Logger
}

// NewSmartLoader creates a SmartLoader. A nil logger discards
// diagnostics.
func NewSmartLoader(logger hclog.Logger) *SmartLoader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SmartLoader{
		fileLoader: NewFileLoader(),
		logger:     logger,
	}
}

// Load loads an image from either a local file path or an HTTP(S) URL.
func (l *SmartLoader) Load(input string) (image.Image, error) {
	if IsURL(input) {
		return l.loadFromURL(input)
	}
	return l.fileLoader.Load(input)
}

// loadFromURL acquires an image with a bounded two-step chain: first
// the response body is streamed directly into the decoder; if that
// fails for any reason, one fallback downloads the full payload,
// verifies it sniffs as an image and re-decodes from memory. There
// are no further retries.
func (l *SmartLoader) loadFromURL(rawURL string) (image.Image, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	img, directErr := l.decodeDirect(rawURL)
	if directErr == nil {
		return img, nil
	}
	l.logger.Debug("direct image load failed, falling back to buffered download",
		"url", rawURL, "error", directErr)

	data, err := httputil.Fetch(context.Background(), rawURL, httputil.FetchOptions{})
	if err != nil {
		return nil, acquisitionFailed(rawURL, "fetch", err)
	}

	if ct := http.DetectContentType(data); !strings.HasPrefix(ct, "image/") {
		return nil, acquisitionFailed(rawURL, "content-type",
			fmt.Errorf("expected image payload, got %s", ct))
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, acquisitionFailed(rawURL, "decode", fmt.Errorf("format %q: %w", format, err))
	}

	return img, nil
}

// decodeDirect streams the response body straight into the decoder.
func (l *SmartLoader) decodeDirect(rawURL string) (image.Image, error) {
	client := &http.Client{Timeout: httputil.DefaultTimeout}

	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", httputil.UserAgent())

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	return img, err
}

// IsURL reports whether input is an HTTP(S) URL reference.
func IsURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return invalidInput(rawURL, fmt.Sprintf("malformed URL: %v", err))
	}
	if parsed.Host == "" {
		return invalidInput(rawURL, "malformed URL: missing host")
	}
	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// isImageFile checks if a file has a supported image extension.
func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ValidateInput checks that input is a plausible image reference
// before any acquisition work happens: a well-formed URL, an existing
// file in a supported format, or an existing directory (scanned
// later).
func ValidateInput(input string) error {
	if input == "" {
		return invalidInput(input, "path cannot be empty")
	}

	if IsURL(input) {
		return validateURL(input)
	}

	info, err := os.Stat(input)
	if err != nil {
		return acquisitionFailed(input, "stat", err)
	}
	if info.IsDir() {
		return nil
	}

	if !isImageFile(input) {
		return invalidInput(input, fmt.Sprintf("unsupported file type %q (supported: %s)",
			filepath.Ext(input), strings.Join(SupportedImageExtensions(), ", ")))
	}

	file, err := os.Open(input) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return acquisitionFailed(input, "open", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return acquisitionFailed(input, "decode", err)
	}
	return nil
}

// ScanDirectoryForImages scans a directory and returns all valid image files.
// It does not recurse into subdirectories, but follows symlinks.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, acquisitionFailed(dirPath, "open", err)
	}

	var imageFiles []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		// For symlinks, stat the target to determine if it's a file.
		info, err := os.Stat(fullPath)
		if err != nil {
			// Skip entries we can't stat (broken symlinks, permission issues).
			continue
		}
		if info.IsDir() {
			continue
		}

		if isImageFile(entry.Name()) {
			imageFiles = append(imageFiles, fullPath)
		}
	}

	if len(imageFiles) == 0 {
		return nil, invalidInput(dirPath, "no supported image files found in directory")
	}

	return imageFiles, nil
}

// SelectRandomImage selects a random image from a list of image paths.
// Uses crypto/rand so the choice is independent of the clustering seed.
func SelectRandomImage(imagePaths []string) (string, error) {
	if len(imagePaths) == 0 {
		return "", fmt.Errorf("image path list is empty")
	}

	maxIndex := big.NewInt(int64(len(imagePaths)))
	randomIndex, err := rand.Int(rand.Reader, maxIndex)
	if err != nil {
		// Fallback to raw random bytes if crypto/rand.Int fails.
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		index := int(binary.LittleEndian.Uint64(buf[:]) % uint64(len(imagePaths)))
		return imagePaths[index], nil
	}

	return imagePaths[randomIndex.Int64()], nil
}

// ResolveInput resolves an input that may be a file, a directory or a
// URL. Directories are scanned for supported images and one is picked
// at random; files and URLs pass through unchanged.
func ResolveInput(input string) (string, error) {
	if IsURL(input) {
		return input, nil
	}

	info, err := os.Stat(input)
	if err != nil {
		return "", acquisitionFailed(input, "stat", err)
	}
	if !info.IsDir() {
		return input, nil
	}

	imageFiles, err := ScanDirectoryForImages(input)
	if err != nil {
		return "", err
	}
	return SelectRandomImage(imageFiles)
}
