package main

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"dvdstream/internal/config"
	"dvdstream/internal/logging"
	"dvdstream/internal/titlestream"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the process logger from config. Logs go to stderr so
// commands that stream sector data to stdout stay clean.
func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil || cfg == nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: os.Stderr,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// locator picks the disc locator: the positional argument when given,
// otherwise the configured drive device.
func (c *commandContext) locator(args []string) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0])
	}
	cfg, _ := c.ensureConfig()
	if cfg != nil {
		return cfg.Drive.Device
	}
	return ""
}

// discPath strips the dvd: scheme from the chosen locator.
func (c *commandContext) discPath(args []string) string {
	return titlestream.StripScheme(c.locator(args))
}
