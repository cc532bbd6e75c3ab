package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePull(); err != nil {
		return err
	}
	if err := c.validatePacing(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.Root) == "" {
		return errors.New("paths.root must be set")
	}
	return nil
}

func (c *Config) validatePull() error {
	if c.Pull.Limit <= 0 {
		return errors.New("pull.limit must be positive")
	}
	switch c.Pull.PageFirst {
	case PageFirstLimit, PageFirstPage:
	default:
		return fmt.Errorf("pull.page_first must be %q or %q, got %q", PageFirstLimit, PageFirstPage, c.Pull.PageFirst)
	}
	return nil
}

func (c *Config) validatePacing() error {
	for key, value := range map[string]int{
		"pull.delay_ms":    c.Pull.DelayMS,
		"push.delay_ms":    c.Push.DelayMS,
		"publish.delay_ms": c.Publish.DelayMS,
	} {
		if value < 0 {
			return fmt.Errorf("%s must be >= 0", key)
		}
	}
	if c.API.TimeoutSeconds <= 0 {
		return errors.New("api.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
