package testsupport

import (
	"path/filepath"
	"testing"

	"assetsync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp mirror root per test.
// Pacing delays are zeroed so engine tests run without sleeping.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Root = filepath.Join(base, "Assets")
	cfgVal.Paths.LogDir = filepath.Join(base, "Assets", ".assetsync")
	cfgVal.API.URL = "http://127.0.0.1:0/graphql"
	cfgVal.API.Token = "test"
	cfgVal.Pull.DelayMS = 0
	cfgVal.Push.DelayMS = 0
	cfgVal.Publish.DelayMS = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAPI points the test config at a remote endpoint.
func WithAPI(url, token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.URL = url
		b.cfg.API.Token = token
	}
}

// WithPullLimit overrides the default pull limit.
func WithPullLimit(limit int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Pull.Limit = limit
	}
}

// WithJournalDisabled turns off the run journal.
func WithJournalDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = false
	}
}

// WithEnsuredDirs creates the mirror root and zone directories.
func WithEnsuredDirs() ConfigOption {
	return func(b *configBuilder) {
		if err := b.cfg.EnsureDirectories(); err != nil {
			b.t.Fatalf("ensure directories: %v", err)
		}
	}
}
