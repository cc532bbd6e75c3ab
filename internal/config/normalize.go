package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAPI()
	if err := c.normalizePacing(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.Root) == "" {
		c.Paths.Root = defaultRoot
	}
	if c.Paths.Root, err = expandPath(strings.TrimSpace(c.Paths.Root)); err != nil {
		return fmt.Errorf("paths.root: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.Root, defaultStateDirectoryName)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAPI() {
	if value, ok := os.LookupEnv("GRAPHQL_API_URL"); ok && strings.TrimSpace(value) != "" {
		c.API.URL = value
	}
	if value, ok := os.LookupEnv("AUTH_TOKEN"); ok && strings.TrimSpace(value) != "" {
		c.API.Token = value
	}
	c.API.URL = strings.TrimSpace(c.API.URL)
	c.API.Token = strings.TrimSpace(c.API.Token)
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = defaultAPITimeoutSeconds
	}
}

func (c *Config) normalizePacing() error {
	overrides := []struct {
		env    string
		target *int
	}{
		{"DEFAULT_PULL_LIMIT", &c.Pull.Limit},
		{"PULL_TIME_SPAN", &c.Pull.DelayMS},
		{"PUSH_TIME_SPAN", &c.Push.DelayMS},
		{"PUBLISH_TIME_SPAN", &c.Publish.DelayMS},
	}
	for _, o := range overrides {
		value, ok := os.LookupEnv(o.env)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: %q is not a valid integer", o.env, value)
		}
		*o.target = parsed
	}
	c.Pull.PageFirst = strings.ToLower(strings.TrimSpace(c.Pull.PageFirst))
	if c.Pull.PageFirst == "" {
		c.Pull.PageFirst = defaultPageFirst
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
