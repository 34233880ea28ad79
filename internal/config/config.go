package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/platform"
	"github.com/ytget/yt-grabber/internal/subtitle"
	"github.com/ytget/yt-grabber/internal/translate"
)

//go:embed sample_config.toml
var sampleConfig string

// Default locations
const (
	defaultConfigPath = "~/.config/yt-grabber/config.toml"
	projectConfigName = "yt-grabber.toml"
)

// Default values
const (
	DefaultTargetLang        = "ru"
	DefaultSourceLang        = translate.AutoDetect
	DefaultMaxAttempts       = translate.DefaultMaxAttempts
	DefaultRetryDelaySeconds = 1.0
	DefaultTimeoutSeconds    = 15
	DefaultRequestsPerSecond = translate.DefaultRequestsPerSec
	DefaultMaxParallel       = download.DefaultMaxParallel
	MaxParallelLimit         = 10
)

// Download contains configuration for yt-dlp runs.
type Download struct {
	OutputDir            string   `toml:"output_dir"`
	Resolution           string   `toml:"resolution"`
	SubLangs             []string `toml:"sub_langs"`
	SubFormat            string   `toml:"sub_format"`
	SocketTimeoutSeconds int      `toml:"socket_timeout_seconds"`
	Retries              int      `toml:"retries"`
	MaxParallel          int      `toml:"max_parallel"`
	ExpandPlaylists      bool     `toml:"expand_playlists"`
}

// Translation contains configuration for subtitle translation.
type Translation struct {
	TargetLang        string  `toml:"target_lang"`
	SourceLang        string  `toml:"source_lang"`
	MaxAttempts       int     `toml:"max_attempts"`
	RetryDelaySeconds float64 `toml:"retry_delay_seconds"`
	OutputSuffix      string  `toml:"output_suffix"`
	OutputExt         string  `toml:"output_ext"`
	Endpoint          string  `toml:"endpoint"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// Config encapsulates all configuration values for the grabber.
type Config struct {
	Download    Download    `toml:"download"`
	Translation Translation `toml:"translation"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	outputDir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		outputDir = ""
	}
	return Config{
		Download: Download{
			OutputDir:            outputDir,
			Resolution:           download.ResolutionBest,
			SubLangs:             append([]string(nil), download.DefaultSubLangs...),
			SubFormat:            download.DefaultSubFormat,
			SocketTimeoutSeconds: int(download.DefaultSocketTimeout / time.Second),
			Retries:              download.DefaultRetries,
			MaxParallel:          DefaultMaxParallel,
		},
		Translation: Translation{
			TargetLang:        DefaultTargetLang,
			SourceLang:        DefaultSourceLang,
			MaxAttempts:       DefaultMaxAttempts,
			RetryDelaySeconds: DefaultRetryDelaySeconds,
			OutputSuffix:      subtitle.DefaultOutputSuffix,
			OutputExt:         subtitle.DefaultOutputExt,
			Endpoint:          translate.DefaultGoogleEndpoint,
			TimeoutSeconds:    DefaultTimeoutSeconds,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: defaults are returned with exists=false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// Sample returns the annotated sample configuration.
func Sample() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Marshal renders the effective configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// DownloadSettings returns the yt-dlp settings for the download service.
func (c *Config) DownloadSettings() download.Settings {
	return download.Settings{
		SubLangs:      append([]string(nil), c.Download.SubLangs...),
		SubFormat:     c.Download.SubFormat,
		SocketTimeout: time.Duration(c.Download.SocketTimeoutSeconds) * time.Second,
		Retries:       c.Download.Retries,
	}
}

// RetryDelay returns the pause between translation attempts.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Translation.RetryDelaySeconds * float64(time.Second))
}

// RequestTimeout returns the HTTP timeout for one translation request.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Translation.TimeoutSeconds) * time.Second
}
