package download

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ytget/yt-grabber/internal/model"
)

// yt-dlp defaults
const (
	OutputTemplate       = "%(title)s.%(ext)s"
	DefaultSocketTimeout = 10 * time.Second
	DefaultRetries       = 10
	DefaultSubFormat     = "srt"
	VideoMergeFormat     = "mp4"
	bestVideoFormat      = "bestvideo+bestaudio/best"
	cappedVideoFormat    = "bestvideo[height<=%s]+bestaudio/best"
)

// DefaultSubLangs are the subtitle languages requested by default
var DefaultSubLangs = []string{"ru", "en", "ja", "ko"}

// Settings holds the yt-dlp knobs that are not part of a request
type Settings struct {
	SubLangs      []string
	SubFormat     string
	SocketTimeout time.Duration
	Retries       int
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		SubLangs:      append([]string(nil), DefaultSubLangs...),
		SubFormat:     DefaultSubFormat,
		SocketTimeout: DefaultSocketTimeout,
		Retries:       DefaultRetries,
	}
}

// Options is the yt-dlp configuration for one request
type Options struct {
	Output            string
	SocketTimeout     time.Duration
	Retries           int
	Format            string
	MergeOutputFormat string
	SkipDownload      bool
	WriteSubs         bool
	WriteAutoSubs     bool
	SubLangs          []string
	ConvertSubs       string
	WriteThumbnail    bool
}

// BuildOptions maps a request onto yt-dlp options
func BuildOptions(req Request, settings Settings) Options {
	opts := Options{
		Output:        filepath.Join(req.OutputDir, OutputTemplate),
		SocketTimeout: settings.SocketTimeout,
		Retries:       settings.Retries,
	}

	switch req.ContentType {
	case model.ContentVideo:
		if req.Resolution == "" || req.Resolution == ResolutionBest {
			opts.Format = bestVideoFormat
		} else {
			opts.Format = fmt.Sprintf(cappedVideoFormat, req.Resolution)
		}
		opts.MergeOutputFormat = VideoMergeFormat
	case model.ContentSubtitles:
		opts.SkipDownload = true
		opts.WriteSubs = true
		opts.WriteAutoSubs = true
		opts.SubLangs = append([]string(nil), settings.SubLangs...)
		opts.ConvertSubs = settings.SubFormat
	case model.ContentThumbnail:
		opts.SkipDownload = true
		opts.WriteThumbnail = true
	}

	return opts
}
