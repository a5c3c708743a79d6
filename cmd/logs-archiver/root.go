package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PhilCANDIDO/logs-archiver/internal/config"
)

var flags struct {
	cfgFile string

	srcPath    string
	srcPattern string
	dstPath    string

	retention     int
	compressLevel int
	dryRun        bool

	logPath      string
	noLog        bool
	verbose      bool
	logRetention int

	cronSchedule string
	watch        bool
}

var rootCmd = &cobra.Command{
	Use:   "logs-archiver",
	Short: "Retire time-partitioned log files into a compressed archive tree",
	Long: `logs-archiver scans a live source tree for log files past a retention
window, compresses each one into a mirrored archive tree with an atomic
temp-then-rename step, and deletes originals only once their archived
counterpart verifiably exists on disk. Emptied date directories are
pruned afterwards.

Examples:
  # One-shot: archive logs older than 7 days
  logs-archiver --src-path /var/log/hosts --src-pattern '%Y/%m/%d/*.log' \
      --dst-path /archive/hosts --retention 7

  # Preview without touching the filesystem
  logs-archiver --src-path /var/log/hosts --src-pattern '%Y/%m/%d/*.log' \
      --dst-path /archive/hosts --dry-run

  # Run every night at 03:00
  logs-archiver --src-path /var/log/hosts --src-pattern '%Y/%m/%d/*.log' \
      --dst-path /archive/hosts --cron-schedule "0 3 * * *"`,
	SilenceUsage: true,
	RunE:         run,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()

	f.StringVarP(&flags.cfgFile, "config", "c", "", "optional YAML config file")

	f.StringVar(&flags.srcPath, "src-path", "", "root of files to scan (required)")
	f.StringVar(&flags.srcPattern, "src-pattern", "", "placeholder pattern, e.g. '%Y/%m/%d/*.log' (required)")
	f.StringVar(&flags.dstPath, "dst-path", "", "root of the archive tree (required)")

	f.IntVar(&flags.retention, "retention", 5, "retention window in days (0 archives everything)")
	f.IntVar(&flags.compressLevel, "compress-level", 9, "gzip compression level, 1-9")
	f.BoolVar(&flags.dryRun, "dry-run", false, "preview every action without filesystem changes")

	f.StringVar(&flags.logPath, "log-path", "", "directory for run-log files")
	f.BoolVar(&flags.noLog, "no-log", false, "suppress the persisted log, console only")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "include debug-level detail")
	f.IntVar(&flags.logRetention, "log-retention", 5, "days of prior run-log files to keep")

	f.StringVar(&flags.cronSchedule, "cron-schedule", "", "run on a recurring cron schedule instead of once")
	f.BoolVar(&flags.watch, "watch", false, "run whenever the source tree changes")
}

// buildConfig merges the optional config file with explicit flags.
// Flags that were set on the command line always win.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if flags.cfgFile != "" {
		loaded, err := config.Load(flags.cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	set := cmd.Flags().Changed
	if set("src-path") {
		cfg.SrcPath = flags.srcPath
	}
	if set("src-pattern") {
		cfg.SrcPattern = flags.srcPattern
	}
	if set("dst-path") {
		cfg.DstPath = flags.dstPath
	}
	if set("retention") {
		cfg.Retention = flags.retention
	}
	if set("compress-level") {
		cfg.CompressLevel = flags.compressLevel
	}
	if set("dry-run") {
		cfg.DryRun = flags.dryRun
	}
	if set("log-path") {
		cfg.LogPath = flags.logPath
	}
	if set("no-log") {
		cfg.NoLog = flags.noLog
	}
	if set("verbose") {
		cfg.Verbose = flags.verbose
	}
	if set("log-retention") {
		cfg.LogRetention = flags.logRetention
	}
	if set("cron-schedule") {
		cfg.CronSchedule = flags.cronSchedule
	}
	if set("watch") {
		cfg.Watch.Enabled = flags.watch
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
