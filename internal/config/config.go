// Package config holds the settings for one archiver invocation. Flags
// are the primary surface; an optional YAML file supplies the same
// settings with explicit flags taking precedence.
package config

import "time"

type Config struct {
	SrcPath    string `yaml:"srcPath"`
	SrcPattern string `yaml:"srcPattern"`
	DstPath    string `yaml:"dstPath"`

	Retention     int  `yaml:"retention"`     // days; 0 archives everything
	CompressLevel int  `yaml:"compressLevel"` // gzip level 1-9
	DryRun        bool `yaml:"dryRun"`

	LogPath      string `yaml:"logPath"`
	NoLog        bool   `yaml:"noLog"`
	Verbose      bool   `yaml:"verbose"`
	LogRetention int    `yaml:"logRetention"` // days of run-log files to keep

	CronSchedule string      `yaml:"cronSchedule"`
	Watch        WatchConfig `yaml:"watch"`
}

type WatchConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Mode           string        `yaml:"mode"`           // "auto", "poll", "fsnotify"
	PollInterval   time.Duration `yaml:"pollInterval"`   // e.g. 30s
	DebounceWindow time.Duration `yaml:"debounceWindow"` // e.g. 2s
}

// Default returns the configuration before any file or flag is applied.
func Default() *Config {
	return &Config{
		Retention:     5,
		CompressLevel: 9,
		LogRetention:  5,
		Watch: WatchConfig{
			Mode:           "auto",
			PollInterval:   30 * time.Second,
			DebounceWindow: 2 * time.Second,
		},
	}
}
