package model

import (
	"path/filepath"
	"strings"
	"time"
)

// DownloadTask represents a single download run for one URL and content type
type DownloadTask struct {
	ID          string
	URL         string
	ContentType ContentType
	Resolution  string // "best" or a maximum height such as "720"
	OutputDir   string
	Status      TaskStatus
	Percent     int       // 0 to 100
	Downloaded  int64     // bytes downloaded so far
	Total       int64     // total bytes, 0 if unknown
	LastError   string    // last error message if any
	StartedAt   time.Time // when the task was created
	FinishedAt  time.Time // when the task reached a terminal state
	Title       string    // video title, when the downloader reports one
	OutputPath  string    // file reported by the downloader, if any
}

// TranslationTask represents a single subtitle translation run
type TranslationTask struct {
	ID          string
	InputPath   string
	OutputPath  string
	LanguageTag string // two-character tag taken from the input file name
	TargetLang  string
	Status      TaskStatus
	Percent     int // 0 to 100
	Lines       int // total lines in the document
	Translated  int // lines replaced by a translation
	Fallbacks   int // translatable lines kept as-is after exhausting retries
	LastError   string
	StartedAt   time.Time
	FinishedAt  time.Time
}

// GetDisplayTitle returns title or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}
	return dt.URL
}

// GetDisplayTitle returns the input file name without its directory
func (tt *TranslationTask) GetDisplayTitle() string {
	if tt.InputPath == "" {
		return ""
	}
	return filepath.Base(tt.InputPath)
}

// Duration returns how long the task ran, or zero while it is still active
func (tt *TranslationTask) Duration() time.Duration {
	if tt.FinishedAt.IsZero() || tt.StartedAt.IsZero() {
		return 0
	}
	return tt.FinishedAt.Sub(tt.StartedAt)
}
