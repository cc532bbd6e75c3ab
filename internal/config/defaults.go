package config

const (
	defaultRoot               = "Assets"
	defaultAPITimeoutSeconds  = 30
	defaultPullLimit          = 100
	defaultPullDelayMS        = 100
	defaultPushDelayMS        = 100
	defaultPublishDelayMS     = 1000
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	PageFirstLimit            = "limit"
	PageFirstPage             = "page"
	defaultPageFirst          = PageFirstLimit
	defaultJournalEnabled     = true
	defaultStateDirectoryName = ".assetsync"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Root: defaultRoot,
		},
		API: API{
			TimeoutSeconds: defaultAPITimeoutSeconds,
		},
		Pull: Pull{
			Limit:     defaultPullLimit,
			DelayMS:   defaultPullDelayMS,
			PageFirst: defaultPageFirst,
		},
		Push: Push{
			DelayMS: defaultPushDelayMS,
		},
		Publish: Publish{
			DelayMS: defaultPublishDelayMS,
		},
		Journal: Journal{
			Enabled: defaultJournalEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
