package download

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ytget/yt-grabber/internal/model"
)

func TestBuildOptions(t *testing.T) {
	settings := DefaultSettings()
	out := filepath.Join("/tmp", "media")

	tests := []struct {
		name     string
		req      Request
		expected Options
	}{
		{
			name: "video best",
			req:  Request{URL: "u", ContentType: model.ContentVideo, OutputDir: out, Resolution: "best"},
			expected: Options{
				Output:            filepath.Join(out, OutputTemplate),
				SocketTimeout:     DefaultSocketTimeout,
				Retries:           DefaultRetries,
				Format:            "bestvideo+bestaudio/best",
				MergeOutputFormat: "mp4",
			},
		},
		{
			name: "video capped",
			req:  Request{URL: "u", ContentType: model.ContentVideo, OutputDir: out, Resolution: "720"},
			expected: Options{
				Output:            filepath.Join(out, OutputTemplate),
				SocketTimeout:     DefaultSocketTimeout,
				Retries:           DefaultRetries,
				Format:            "bestvideo[height<=720]+bestaudio/best",
				MergeOutputFormat: "mp4",
			},
		},
		{
			name: "subtitles",
			req:  Request{URL: "u", ContentType: model.ContentSubtitles, OutputDir: out, Resolution: "720"},
			expected: Options{
				Output:        filepath.Join(out, OutputTemplate),
				SocketTimeout: DefaultSocketTimeout,
				Retries:       DefaultRetries,
				SkipDownload:  true,
				WriteSubs:     true,
				WriteAutoSubs: true,
				SubLangs:      []string{"ru", "en", "ja", "ko"},
				ConvertSubs:   "srt",
			},
		},
		{
			name: "thumbnail",
			req:  Request{URL: "u", ContentType: model.ContentThumbnail, OutputDir: out},
			expected: Options{
				Output:         filepath.Join(out, OutputTemplate),
				SocketTimeout:  DefaultSocketTimeout,
				Retries:        DefaultRetries,
				SkipDownload:   true,
				WriteThumbnail: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildOptions(tt.req, settings)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("BuildOptions() =\n%+v\nexpected\n%+v", got, tt.expected)
			}
		})
	}
}

func TestBuildOptions_DoesNotShareSubLangs(t *testing.T) {
	settings := DefaultSettings()
	opts := BuildOptions(Request{ContentType: model.ContentSubtitles, OutputDir: "x"}, settings)
	opts.SubLangs[0] = "de"
	if settings.SubLangs[0] != "ru" {
		t.Error("options must not alias settings")
	}
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		req      Request
		expected error
	}{
		{"valid video", Request{URL: "u", ContentType: model.ContentVideo, OutputDir: "d"}, nil},
		{"valid subtitles ignores resolution", Request{URL: "u", ContentType: model.ContentSubtitles, OutputDir: "d", Resolution: "999"}, nil},
		{"empty url", Request{URL: "  ", ContentType: model.ContentVideo, OutputDir: "d"}, ErrEmptyURL},
		{"no dir", Request{URL: "u", ContentType: model.ContentVideo}, ErrNoOutputDir},
		{"bad type", Request{URL: "u", ContentType: "audio", OutputDir: "d"}, ErrUnsupportedContent},
		{"bad resolution", Request{URL: "u", ContentType: model.ContentVideo, OutputDir: "d", Resolution: "4320"}, ErrBadResolution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Normalize().Validate()
			if !errors.Is(err, tt.expected) {
				t.Errorf("Validate() = %v, expected %v", err, tt.expected)
			}
		})
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		p        Progress
		expected int
	}{
		{Progress{Downloaded: 50, Total: 200}, 25},
		{Progress{Downloaded: 199, Total: 200}, 99},
		{Progress{Downloaded: 10, Total: 0}, 0},
		{Progress{Downloaded: 300, Total: 200}, 100},
	}
	for _, tt := range tests {
		if got := tt.p.Percent(); got != tt.expected {
			t.Errorf("%+v.Percent() = %d, expected %d", tt.p, got, tt.expected)
		}
	}
}
