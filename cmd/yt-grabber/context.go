package main

import (
	"strings"
	"sync"

	"github.com/ytget/yt-grabber/internal/app"
	"github.com/ytget/yt-grabber/internal/config"
)

type commandContext struct {
	configFlag *string
	options    []app.Option

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string, options []app.Option) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		options:    options,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// services builds fresh services from the loaded config after flag overrides
func (c *commandContext) services(cfg *config.Config) *app.Services {
	return app.New(cfg, c.options...)
}
