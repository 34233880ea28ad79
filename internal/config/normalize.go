package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeDownload(); err != nil {
		return err
	}
	c.normalizeTranslation()
	return nil
}

func (c *Config) normalizeDownload() error {
	var err error
	if c.Download.OutputDir, err = expandPath(strings.TrimSpace(c.Download.OutputDir)); err != nil {
		return fmt.Errorf("download.output_dir: %w", err)
	}

	c.Download.Resolution = strings.ToLower(strings.TrimSpace(c.Download.Resolution))
	if c.Download.Resolution == "" {
		c.Download.Resolution = Default().Download.Resolution
	}

	langs := make([]string, 0, len(c.Download.SubLangs))
	for _, lang := range c.Download.SubLangs {
		if lang = strings.ToLower(strings.TrimSpace(lang)); lang != "" {
			langs = append(langs, lang)
		}
	}
	c.Download.SubLangs = langs

	c.Download.SubFormat = strings.ToLower(strings.TrimSpace(c.Download.SubFormat))
	if c.Download.MaxParallel == 0 {
		c.Download.MaxParallel = DefaultMaxParallel
	}
	return nil
}

func (c *Config) normalizeTranslation() {
	t := &c.Translation
	t.TargetLang = strings.TrimSpace(t.TargetLang)
	t.SourceLang = strings.TrimSpace(t.SourceLang)
	if t.SourceLang == "" {
		t.SourceLang = DefaultSourceLang
	}
	t.OutputSuffix = strings.TrimSpace(t.OutputSuffix)
	t.OutputExt = strings.TrimPrefix(strings.TrimSpace(t.OutputExt), ".")
	t.Endpoint = strings.TrimSpace(t.Endpoint)
	if t.TimeoutSeconds == 0 {
		t.TimeoutSeconds = DefaultTimeoutSeconds
	}
}
