package config

import (
	"slices"

	"fyne.io/fyne/v2"

	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyResolution         = "video_resolution"
	KeyTargetLang         = "translation_target_language"
	KeyMaxAttempts        = "translation_max_attempts"
	KeyMaxParallel        = "max_parallel_downloads"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
	fallbackDownloadDir       = "downloads"
)

// Settings manages the choices made in the GUI
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = fallbackDownloadDir
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetResolution returns the selected video resolution
func (s *Settings) GetResolution() string {
	res := s.app.Preferences().String(KeyResolution)
	if !slices.Contains(download.Resolutions, res) {
		return download.ResolutionBest
	}
	return res
}

// SetResolution sets the video resolution; unknown values fall back to best
func (s *Settings) SetResolution(res string) {
	if !slices.Contains(download.Resolutions, res) {
		res = download.ResolutionBest
	}
	s.app.Preferences().SetString(KeyResolution, res)
}

// GetTargetLanguage returns the translation target language
func (s *Settings) GetTargetLanguage() string {
	return s.app.Preferences().StringWithFallback(KeyTargetLang, DefaultTargetLang)
}

// SetTargetLanguage stores lang after checking it is a valid language tag
func (s *Settings) SetTargetLanguage(lang string) error {
	if err := ValidateLanguage(lang); err != nil {
		return err
	}
	s.app.Preferences().SetString(KeyTargetLang, lang)
	return nil
}

// GetMaxAttempts returns the per-line translation attempt limit
func (s *Settings) GetMaxAttempts() int {
	value := s.app.Preferences().Int(KeyMaxAttempts)
	if value <= 0 {
		return DefaultMaxAttempts
	}
	return value
}

// SetMaxAttempts sets the per-line translation attempt limit
func (s *Settings) SetMaxAttempts(n int) {
	s.app.Preferences().SetInt(KeyMaxAttempts, max(n, 1))
}

// GetMaxParallelDownloads returns the maximum number of parallel downloads
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	count = min(max(count, 1), MaxParallelLimit)
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetLanguage returns the configured interface language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to reveal translated files when done
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal translated files when done
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// ApplyTo overlays the GUI choices onto cfg
func (s *Settings) ApplyTo(cfg *Config) {
	cfg.Download.OutputDir = s.GetDownloadDirectory()
	cfg.Download.Resolution = s.GetResolution()
	cfg.Download.MaxParallel = s.GetMaxParallelDownloads()
	cfg.Translation.TargetLang = s.GetTargetLanguage()
	cfg.Translation.MaxAttempts = s.GetMaxAttempts()
}
