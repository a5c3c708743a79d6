package config

import (
	"fmt"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/PhilCANDIDO/logs-archiver/internal/pattern"
)

// Validate checks the configuration before any file is touched.
// Failures here are fatal and abort the run with a non-zero exit.
func (c *Config) Validate() error {
	if c.SrcPath == "" {
		return fmt.Errorf("src-path is required")
	}
	if c.SrcPattern == "" {
		return fmt.Errorf("src-pattern is required")
	}
	if c.DstPath == "" {
		return fmt.Errorf("dst-path is required")
	}

	st, err := os.Stat(c.SrcPath)
	if err != nil {
		return fmt.Errorf("src-path %q: %w", c.SrcPath, err)
	}
	if !st.IsDir() {
		return fmt.Errorf("src-path %q is not a directory", c.SrcPath)
	}

	if _, err := pattern.Parse(c.SrcPattern); err != nil {
		return fmt.Errorf("src-pattern: %w", err)
	}

	if c.Retention < 0 {
		return fmt.Errorf("retention must be >= 0, got %d", c.Retention)
	}
	if c.CompressLevel < 1 || c.CompressLevel > 9 {
		return fmt.Errorf("compress-level must be between 1 and 9, got %d", c.CompressLevel)
	}
	if c.LogRetention < 0 {
		return fmt.Errorf("log-retention must be >= 0, got %d", c.LogRetention)
	}

	if c.CronSchedule != "" {
		if _, err := cron.ParseStandard(c.CronSchedule); err != nil {
			return fmt.Errorf("invalid cron schedule %q: %w", c.CronSchedule, err)
		}
	}

	if c.CronSchedule != "" && c.Watch.Enabled {
		return fmt.Errorf("cron-schedule and watch are mutually exclusive")
	}

	if c.Watch.Enabled {
		switch c.Watch.Mode {
		case "auto", "poll", "fsnotify":
		default:
			return fmt.Errorf("unknown watch mode %q", c.Watch.Mode)
		}
		if c.Watch.PollInterval <= 0 {
			return fmt.Errorf("watch poll interval must be positive")
		}
	}

	return nil
}
