// Package app wires configuration into the download and translation services
// shared by the desktop and command-line front-ends.
package app

import (
	"log"
	"net/http"

	"github.com/ytget/yt-grabber/internal/config"
	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/platform"
	"github.com/ytget/yt-grabber/internal/translate"
)

// Services bundles the background services used by a front-end
type Services struct {
	Config       *config.Config
	Downloads    download.Downloader
	Translations translate.Translator
	Playlists    *platform.PlaylistExpander

	opts options
}

type options struct {
	client      translate.Client
	runner      download.Runner
	logger      *log.Logger
	attemptHook func(translate.AttemptFailure)
}

// Option customises service construction
type Option func(*options)

// WithTranslationClient replaces the Google client
func WithTranslationClient(c translate.Client) Option {
	return func(o *options) { o.client = c }
}

// WithRunner replaces the yt-dlp runner
func WithRunner(r download.Runner) Option {
	return func(o *options) { o.runner = r }
}

// WithLogger sets the logger used for per-line retry reports
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithAttemptHook observes every failed translation attempt
func WithAttemptHook(fn func(translate.AttemptFailure)) Option {
	return func(o *options) { o.attemptHook = fn }
}

// New builds the services described by cfg
func New(cfg *config.Config, opts ...Option) *Services {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.client == nil {
		o.client = NewGoogleClient(cfg)
	}
	if o.runner == nil {
		o.runner = download.NewYTDLPRunner()
	}

	downloads := download.NewService(o.runner, cfg.DownloadSettings(), cfg.Download.MaxParallel)
	downloads.SetDownloadDirectory(cfg.Download.OutputDir)

	return &Services{
		Config:       cfg,
		Downloads:    downloads,
		Translations: translate.NewService(NewPipeline(cfg, o.client, o.logger, o.attemptHook), cfg.Translation.TargetLang),
		Playlists:    platform.NewPlaylistExpander(),
		opts:         o,
	}
}

// ReloadTranslations rebuilds the translation service from the current
// Config.Translation. Runs that already started keep their old pipeline.
func (s *Services) ReloadTranslations() {
	s.Translations = translate.NewService(
		NewPipeline(s.Config, s.opts.client, s.opts.logger, s.opts.attemptHook),
		s.Config.Translation.TargetLang,
	)
}

// NewGoogleClient creates the web translation client from cfg
func NewGoogleClient(cfg *config.Config) *translate.GoogleClient {
	opts := []translate.GoogleOption{
		translate.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout()}),
		translate.WithRateLimit(cfg.Translation.RequestsPerSecond),
	}
	if cfg.Translation.Endpoint != "" {
		opts = append(opts, translate.WithEndpoint(cfg.Translation.Endpoint))
	}
	return translate.NewGoogleClient(opts...)
}

// NewPipeline creates a translation pipeline from cfg
func NewPipeline(cfg *config.Config, client translate.Client, logger *log.Logger, hook func(translate.AttemptFailure)) *translate.Pipeline {
	lineOpts := []translate.LineOption{
		translate.WithMaxAttempts(cfg.Translation.MaxAttempts),
		translate.WithRetryDelay(cfg.RetryDelay()),
		translate.WithSource(cfg.Translation.SourceLang),
	}
	if logger != nil {
		lineOpts = append(lineOpts, translate.WithLogger(logger))
	}
	if hook != nil {
		lineOpts = append(lineOpts, translate.WithAttemptHook(hook))
	}
	tr := translate.NewLineTranslator(client, lineOpts...)
	return translate.NewPipeline(tr, translate.WithOutputName(cfg.Translation.OutputSuffix, cfg.Translation.OutputExt))
}
