// Package seed derives the int64 seed that drives the clustering
// engine's random source, so full extraction runs can be made
// reproducible by content, by path, or by an explicit value.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/swatchkit/swatch/internal/extract"
)

// Mode determines how the clustering seed is generated.
type Mode string

const (
	// ModeContent derives the seed from the sampled pixel data
	// (default, deterministic by image content).
	ModeContent Mode = "content"
	// ModeFilepath derives the seed from the absolute input path or URL.
	ModeFilepath Mode = "filepath"
	// ModeManual uses a user-provided seed value.
	ModeManual Mode = "manual"
	// ModeRandom uses a non-deterministic seed that varies each run.
	ModeRandom Mode = "random"
)

// Config holds configuration for seed generation.
type Config struct {
	Mode  Mode
	Value *int64 // Only used when Mode is ModeManual.
}

// Calculate determines the seed for one extraction run.
// pixels is required for ModeContent; input (path or URL) is required
// for ModeFilepath.
func Calculate(pixels []extract.Pixel, input string, config Config) (int64, error) {
	switch config.Mode {
	case ModeContent:
		return FromPixels(pixels), nil
	case ModeFilepath:
		if input == "" {
			return 0, fmt.Errorf("input path is required for filepath-based seed mode")
		}
		return FromInput(input), nil
	case ModeManual:
		if config.Value == nil {
			return 0, fmt.Errorf("seed value is required for manual seed mode")
		}
		return *config.Value, nil
	case ModeRandom:
		return Random(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
}

// FromPixels hashes the sampled pixel buffer into a seed that is
// stable for identical image content regardless of filename or
// location. An empty buffer hashes to a fixed value; the engine never
// consumes randomness for empty input anyway.
func FromPixels(pixels []extract.Pixel) int64 {
	hasher := sha256.New()

	var countBytes [8]byte
	binary.LittleEndian.PutUint64(countBytes[:], uint64(len(pixels)))
	hasher.Write(countBytes[:])

	buf := make([]byte, 0, len(pixels)*3)
	for _, p := range pixels {
		buf = append(buf, p.R, p.G, p.B)
	}
	hasher.Write(buf)

	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash truncation is intentional
}

// FromInput hashes the input reference into a seed that is stable for
// the same path or URL. Local paths are resolved to absolute form
// first so relative spellings agree.
func FromInput(input string) int64 {
	resolved := input
	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		if abs, err := filepath.Abs(input); err == nil {
			resolved = abs
		}
	}

	hash := sha256.Sum256([]byte(resolved))
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash truncation is intentional
}

// Random returns a non-deterministic seed.
func Random() int64 {
	// #nosec G404 -- intentionally non-deterministic, not security sensitive
	return time.Now().UnixNano() + int64(rand.Intn(1000000))
}

// ValidModes returns a list of valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeContent, ModeFilepath, ModeManual, ModeRandom}
}

// ParseMode converts a string to a Mode.
// Returns an error if the string is not a valid mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: content, filepath, manual, random)", s)
}
