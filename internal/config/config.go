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

	"assetsync/internal/zone"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains mirror and log locations.
type Paths struct {
	Root   string `toml:"root"`
	LogDir string `toml:"log_dir"`
}

// API contains connection settings for the content-management GraphQL API.
type API struct {
	URL            string `toml:"url"`
	Token          string `toml:"token"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Pull contains settings for downloading remote assets.
type Pull struct {
	Limit   int `toml:"limit"`
	DelayMS int `toml:"delay_ms"`
	// PageFirst selects the "first" argument sent with each page request:
	// "limit" sends the overall limit on every page, "page" sends the page size.
	PageFirst string `toml:"page_first"`
}

// Push contains pacing for metadata updates and reuploads.
type Push struct {
	DelayMS int `toml:"delay_ms"`
}

// Publish contains pacing for publish mutations.
type Publish struct {
	DelayMS int `toml:"delay_ms"`
}

// Journal controls the run history database.
type Journal struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for assetsync.
//
// Configuration sections by subsystem:
//   - Paths: mirror root and log directory
//   - API: GraphQL endpoint and bearer token
//   - Pull/Push/Publish: limits and pacing delays per mode
//   - Journal: run history database
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	API     API     `toml:"api"`
	Pull    Pull    `toml:"pull"`
	Push    Push    `toml:"push"`
	Publish Publish `toml:"publish"`
	Journal Journal `toml:"journal"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/assetsync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
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
		_, err = os.Stat(expanded)
		if err != nil {
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

	projectPath, err := filepath.Abs("assetsync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the mirror root, its intent zones, and the log
// directory.
func (c *Config) EnsureDirectories() error {
	dirs := append(zone.NewLayout(c.Paths.Root).Dirs(), c.Paths.LogDir)
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SetRoot points the config at a different mirror root. A log directory
// derived from the previous root follows it.
func (c *Config) SetRoot(root string) error {
	if strings.TrimSpace(root) == "" {
		return errors.New("paths.root must be set")
	}
	expanded, err := expandPath(strings.TrimSpace(root))
	if err != nil {
		return fmt.Errorf("paths.root: %w", err)
	}
	if c.Paths.LogDir == filepath.Join(c.Paths.Root, defaultStateDirectoryName) {
		c.Paths.LogDir = filepath.Join(expanded, defaultStateDirectoryName)
	}
	c.Paths.Root = expanded
	return nil
}

// RequireAPI reports whether the remote API settings needed by network modes
// are present.
func (c *Config) RequireAPI() error {
	if strings.TrimSpace(c.API.URL) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/assetsync/config.toml"
		}
		return fmt.Errorf("api.url is required. Set GRAPHQL_API_URL env var or edit %s (create with 'assetsync config init')", defaultPath)
	}
	return nil
}

// PullDelay returns the pause before each download.
func (c *Config) PullDelay() time.Duration {
	return time.Duration(c.Pull.DelayMS) * time.Millisecond
}

// PushDelay returns the pause after each pushed file.
func (c *Config) PushDelay() time.Duration {
	return time.Duration(c.Push.DelayMS) * time.Millisecond
}

// PublishDelay returns the pause after each published file.
func (c *Config) PublishDelay() time.Duration {
	return time.Duration(c.Publish.DelayMS) * time.Millisecond
}

// APITimeout returns the per-request timeout for remote calls.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// JournalPath returns the run history database location.
func (c *Config) JournalPath() string {
	return filepath.Join(c.Paths.LogDir, "journal.db")
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
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
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
