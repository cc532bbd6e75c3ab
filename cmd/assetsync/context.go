package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"assetsync/internal/config"
	"assetsync/internal/logging"
	"assetsync/internal/reconcile"
	"assetsync/internal/services"
	"assetsync/internal/services/cms"
	"assetsync/internal/transfer"
)

type commandContext struct {
	configFlag *string
	rootFlag   *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	// Overridable in tests.
	newRemote func(*config.Config) reconcile.Remote
	newFiles  func(*config.Config) reconcile.Files
}

func newCommandContext(configFlag, rootFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		rootFlag:   rootFlag,
		newRemote:  defaultRemote,
		newFiles:   defaultFiles,
	}
}

func defaultRemote(cfg *config.Config) reconcile.Remote {
	return cms.NewClient(cms.Config{
		URL:            cfg.API.URL,
		Token:          cfg.API.Token,
		TimeoutSeconds: cfg.API.TimeoutSeconds,
	})
}

func defaultFiles(*config.Config) reconcile.Files {
	return transfer.NewClient()
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "load config", "", "", err)
			return
		}
		if c.rootFlag != nil && strings.TrimSpace(*c.rootFlag) != "" {
			if err := cfg.SetRoot(*c.rootFlag); err != nil {
				c.configErr = services.Wrap(services.ErrConfiguration, "apply --root", "", "", err)
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "ensure directories", "", "", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
