package extractor

import (
	"context"
	"errors"

	"github.com/vidgrab/vidgrab/models"
)

var (
	// ErrUnsupportedPlatform means the URL matched no registered extractor.
	ErrUnsupportedPlatform = errors.New("unsupported video platform")

	// ErrSelectorNotFound means the requested itag no longer resolves to a
	// stream in the current format list.
	ErrSelectorNotFound = errors.New("selected quality not available")

	// ErrExtractionFailed covers transport and decoding failures from the
	// remote platform (unreachable, private, region-locked, deleted).
	ErrExtractionFailed = errors.New("extraction failed")
)

// ProgressFunc receives monotonically non-decreasing percentages 0-100.
// Extractors may call it as coarsely as they like, but must report 100
// before returning successfully.
type ProgressFunc func(percent int)

// DownloadResult describes a finished download along with the metadata
// the extractor saw at download time, for serving and history recording.
type DownloadResult struct {
	Path         string
	Filename     string
	VideoID      string
	Title        string
	Author       string
	DurationSec  int
	QualityLabel string
}

// Extractor turns a platform URL into metadata and raw media bytes.
type Extractor interface {
	// FetchInfo returns display metadata and the selectable format list.
	FetchInfo(ctx context.Context, url string) (*models.VideoInfo, error)

	// Download saves the stream identified by selector to a local file.
	Download(ctx context.Context, url, selector string, progress ProgressFunc) (*DownloadResult, error)
}

// Matcher reports whether an extractor can service the given URL.
type Matcher func(url string) bool

type registration struct {
	matches Matcher
	ext     Extractor
}

// Registry dispatches URLs to extractors by registered predicate. New
// platforms register here without touching the download coordinator.
type Registry struct {
	entries []registration
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(m Matcher, e Extractor) {
	r.entries = append(r.entries, registration{matches: m, ext: e})
}

// Resolve returns the first registered extractor whose predicate accepts
// the URL, in registration order.
func (r *Registry) Resolve(url string) (Extractor, error) {
	for _, reg := range r.entries {
		if reg.matches(url) {
			return reg.ext, nil
		}
	}
	return nil, ErrUnsupportedPlatform
}
