package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/yt-grabber/internal/model"
)

// Timeout constants
const (
	DefaultExpandTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// ErrNotPlaylist is returned for URLs without a playlist id
var ErrNotPlaylist = errors.New("not a playlist URL")

// PlaylistFetcher lists the entries of a playlist by id
type PlaylistFetcher func(ctx context.Context, playlistID string) ([]model.PlaylistEntry, error)

// PlaylistExpander turns playlist URLs into per-video URLs
type PlaylistExpander struct {
	fetch   PlaylistFetcher
	timeout time.Duration
}

// NewPlaylistExpander creates an expander backed by the ytdlp library
func NewPlaylistExpander() *PlaylistExpander {
	return &PlaylistExpander{
		fetch:   fetchWithYTDLP,
		timeout: DefaultExpandTimeout,
	}
}

// NewPlaylistExpanderWithFetcher creates an expander around a custom fetcher
func NewPlaylistExpanderWithFetcher(fetch PlaylistFetcher) *PlaylistExpander {
	return &PlaylistExpander{fetch: fetch, timeout: DefaultExpandTimeout}
}

// SetTimeout sets the timeout for a single expansion
func (e *PlaylistExpander) SetTimeout(timeout time.Duration) {
	e.timeout = timeout
}

// Expand lists the playlist behind url. URLs without a playlist id return
// ErrNotPlaylist.
func (e *PlaylistExpander) Expand(ctx context.Context, url string) ([]model.PlaylistEntry, error) {
	playlistID := ExtractPlaylistID(url)
	if playlistID == "" {
		return nil, fmt.Errorf("%s: %w", url, ErrNotPlaylist)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	entries, err := e.fetch(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}
	return entries, nil
}

// ExpandURLs replaces every playlist URL with the URLs of its videos and
// keeps other URLs as they are, preserving order
func (e *PlaylistExpander) ExpandURLs(ctx context.Context, urls []string) ([]string, error) {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if !IsPlaylistURL(u) {
			out = append(out, u)
			continue
		}
		entries, err := e.Expand(ctx, u)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			out = append(out, entry.URL)
		}
	}
	return out, nil
}

// IsPlaylistURL reports whether url carries a playlist id
func IsPlaylistURL(url string) bool {
	return ExtractPlaylistID(url) != ""
}

// ExtractPlaylistID extracts the playlist ID from various URL formats
func ExtractPlaylistID(url string) string {
	_, after, found := strings.Cut(url, PlaylistParam)
	if !found {
		return ""
	}
	id, _, _ := strings.Cut(after, ParamSeparator)
	return id
}

func fetchWithYTDLP(ctx context.Context, playlistID string) ([]model.PlaylistEntry, error) {
	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]model.PlaylistEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, model.PlaylistEntry{
			VideoID: it.VideoID,
			Title:   it.Title,
			URL:     fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	return entries, nil
}
