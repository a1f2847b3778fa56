package page

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotImage is returned when the logo file is readable but is not an image.
var ErrNotImage = errors.New("logo is not an image")

// LogoSize is the display size hint for the logo.
type LogoSize string

const (
	LogoSmall  LogoSize = "small"
	LogoMedium LogoSize = "medium"
	LogoLarge  LogoSize = "large"
)

// Height returns the rendered logo height in CSS pixels.
func (s LogoSize) Height() int {
	switch s {
	case LogoSmall:
		return 20
	case LogoLarge:
		return 32
	default:
		return 24
	}
}

// LogoSpec names the logo asset and how to show it.
type LogoSpec struct {
	Path string
	Size LogoSize
	Link string // Optional URL the logo points to
}

// Logo is a logo asset loaded for display.
type Logo struct {
	LogoSpec
	Data        []byte
	ContentType string
	ModTime     time.Time
}

// DisplayLogo loads the image at spec.Path for the navigation area. It fails
// if the file cannot be read or does not hold image data.
func DisplayLogo(spec LogoSpec) (*Logo, error) {
	switch spec.Size {
	case LogoSmall, LogoMedium, LogoLarge:
	default:
		return nil, fmt.Errorf("display logo: %w: size must be %q, %q or %q, got %q",
			ErrInvalidConfig, LogoSmall, LogoMedium, LogoLarge, spec.Size)
	}

	data, err := os.ReadFile(spec.Path)
	if err != nil {
		return nil, fmt.Errorf("display logo: %w", err)
	}

	ct := imageContentType(spec.Path, data)
	if ct == "" {
		return nil, fmt.Errorf("display logo %s: %w", spec.Path, ErrNotImage)
	}

	logo := &Logo{
		LogoSpec:    spec,
		Data:        data,
		ContentType: ct,
		ModTime:     time.Now(),
	}
	if info, err := os.Stat(spec.Path); err == nil {
		logo.ModTime = info.ModTime()
	}
	return logo, nil
}

// imageContentType sniffs data, falling back to the extension for formats
// like SVG that sniffing reports as text.
func imageContentType(path string, data []byte) string {
	if len(data) == 0 {
		return ""
	}
	if ct := http.DetectContentType(data); strings.HasPrefix(ct, "image/") {
		return ct
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); strings.HasPrefix(ct, "image/svg") {
		return ct
	}
	return ""
}
