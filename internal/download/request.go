package download

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ytget/yt-grabber/internal/model"
)

// ResolutionBest selects the best available video quality
const ResolutionBest = "best"

// Resolutions lists the selectable video resolutions in UI order
var Resolutions = []string{ResolutionBest, "1080", "720", "480", "360", "240"}

// Request validation errors
var (
	ErrEmptyURL           = errors.New("URL is empty")
	ErrNoOutputDir        = errors.New("output directory is not set")
	ErrUnsupportedContent = errors.New("unsupported content type")
	ErrBadResolution      = errors.New("unsupported resolution")
	ErrDuplicateRun       = errors.New("task already exists")
)

// Request describes one download run
type Request struct {
	URL         string
	ContentType model.ContentType
	OutputDir   string
	Resolution  string // only used for video; empty means best
}

// Normalize trims the inputs and fills the default resolution
func (r Request) Normalize() Request {
	r.URL = strings.TrimSpace(r.URL)
	r.OutputDir = strings.TrimSpace(r.OutputDir)
	r.Resolution = strings.TrimSpace(r.Resolution)
	if r.Resolution == "" {
		r.Resolution = ResolutionBest
	}
	return r
}

// Validate reports the first problem with the request
func (r Request) Validate() error {
	if r.URL == "" {
		return ErrEmptyURL
	}
	if r.OutputDir == "" {
		return ErrNoOutputDir
	}
	if !slices.Contains(model.ContentTypes, r.ContentType) {
		return fmt.Errorf("%w: %q", ErrUnsupportedContent, r.ContentType)
	}
	if r.ContentType == model.ContentVideo && !slices.Contains(Resolutions, r.Resolution) {
		return fmt.Errorf("%w: %q", ErrBadResolution, r.Resolution)
	}
	return nil
}
