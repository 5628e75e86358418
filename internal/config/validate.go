package config

import (
	"fmt"
)

// MaxTitle is the largest accepted title number; -1 selects the first title.
const MaxTitle = 99999

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStream(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStream() error {
	if c.Stream.Title < -1 || c.Stream.Title > MaxTitle {
		return fmt.Errorf("stream.title must be between -1 and %d, got %d", MaxTitle, c.Stream.Title)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
