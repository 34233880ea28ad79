package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"

	"golang.org/x/text/language"

	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/translate"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateTranslation(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDownload() error {
	d := c.Download
	if !slices.Contains(download.Resolutions, d.Resolution) {
		return fmt.Errorf("download.resolution must be one of %v, got %q", download.Resolutions, d.Resolution)
	}
	for _, lang := range d.SubLangs {
		if err := ValidateLanguage(lang); err != nil {
			return fmt.Errorf("download.sub_langs: %w", err)
		}
	}
	if d.SubFormat == "" {
		return errors.New("download.sub_format must be set")
	}
	if d.SocketTimeoutSeconds < 0 {
		return errors.New("download.socket_timeout_seconds must be non-negative")
	}
	if d.Retries < 0 {
		return errors.New("download.retries must be non-negative")
	}
	if d.MaxParallel < 1 || d.MaxParallel > MaxParallelLimit {
		return fmt.Errorf("download.max_parallel must be between 1 and %d", MaxParallelLimit)
	}
	return nil
}

func (c *Config) validateTranslation() error {
	t := c.Translation
	if err := ValidateLanguage(t.TargetLang); err != nil {
		return fmt.Errorf("translation.target_lang: %w", err)
	}
	if t.SourceLang != translate.AutoDetect {
		if err := ValidateLanguage(t.SourceLang); err != nil {
			return fmt.Errorf("translation.source_lang: %w", err)
		}
	}
	if t.MaxAttempts < 1 {
		return errors.New("translation.max_attempts must be at least 1")
	}
	if t.RetryDelaySeconds < 0 {
		return errors.New("translation.retry_delay_seconds must be non-negative")
	}
	if t.TimeoutSeconds < 0 {
		return errors.New("translation.timeout_seconds must be non-negative")
	}
	if t.RequestsPerSecond < 0 {
		return errors.New("translation.requests_per_second must be non-negative")
	}
	if t.Endpoint != "" {
		if u, err := url.Parse(t.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("translation.endpoint must be an absolute URL, got %q", t.Endpoint)
		}
	}
	return nil
}

// ValidateLanguage checks that lang is a well-formed BCP 47 tag such as "ru" or "pt-BR".
func ValidateLanguage(lang string) error {
	if lang == "" {
		return errors.New("language must be set")
	}
	if _, err := language.Parse(lang); err != nil {
		return fmt.Errorf("invalid language %q: %w", lang, err)
	}
	return nil
}
