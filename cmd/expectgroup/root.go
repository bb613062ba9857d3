package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"expectgroup/internal/config"
	"expectgroup/internal/errors"
	"expectgroup/internal/expectations"
	"expectgroup/internal/grouping"
	"expectgroup/internal/report"
	"expectgroup/internal/slogutil"
	"expectgroup/internal/version"
)

var rootCmd = newRootCmd()

// rootOptions holds the root command's flag values.
type rootOptions struct {
	configPath string
	format     string
	outcomes   []string
	top        int
	verbose    int
	quiet      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "expectgroup [path]",
		Short: "Count test expectations per directory",
		Long: `expectgroup reads a test expectations file (a JSON object mapping test
paths to outcomes), groups the test paths by their parent directory, and prints
each directory with the number of tests under it, largest first.

Without arguments it reads ` + expectations.DefaultPath + `.

Examples:
  expectgroup
  expectgroup vendor/test262/expectations.json.zst
  expectgroup --outcome CRASH,TIMEOUT --top 10
  expectgroup --format json`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version.Info(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroup(cmd, opts, args)
		},
	}

	cmd.SetVersionTemplate("expectgroup version {{.Version}}\n")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file (default: .expectgroup.{json,yaml,toml} if present)")
	cmd.Flags().StringVar(&opts.format, "format", "human", "Output format (human, json, yaml, toml)")
	cmd.Flags().StringSliceVar(&opts.outcomes, "outcome", nil, "Only count tests with these outcomes (e.g. FAIL,CRASH)")
	cmd.Flags().IntVar(&opts.top, "top", 0, "Print only the N largest groups (0 for all)")
	cmd.Flags().CountVarP(&opts.verbose, "verbose", "v", "Log progress to stderr (-v info, -vv debug)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress all logging")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// applyFlags layers explicitly set flags over cfg.
// Precedence: positional path / CLI flag > EXPECTGROUP_* env > config file > default
func applyFlags(cmd *cobra.Command, opts *rootOptions, args []string, cfg *config.Config) {
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("outcome") {
		cfg.Outcomes = opts.outcomes
	}
	if flags.Changed("top") {
		cfg.Top = opts.top
	}
}

func runGroup(cmd *cobra.Command, opts *rootOptions, args []string) error {
	loaded, err := config.LoadConfig(".", opts.configPath)
	if err != nil {
		return errors.New(errors.ConfigInvalid, "cannot load configuration", opts.configPath, err)
	}
	cfg := loaded.Config
	applyFlags(cmd, opts, args, cfg)
	if err := cfg.Validate(); err != nil {
		return errors.New(errors.ConfigInvalid, "invalid settings", loaded.ConfigPath, err)
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return errors.New(errors.ConfigInvalid, "invalid settings", loaded.ConfigPath, err)
	}

	logger := newLogger(cmd, opts, cfg)

	logger.Debug("Resolved configuration",
		"input", cfg.Input,
		"format", string(format),
		"configFile", loaded.ConfigPath,
		"usedDefaults", loaded.UsedDefaults)
	for _, ov := range loaded.EnvOverrides {
		logger.Debug("Environment override", "key", ov.Key, "env", ov.EnvVar)
	}

	start := time.Now()
	doc, err := expectations.Load(cfg.Input)
	if err != nil {
		return err
	}
	logger.Debug("Loaded expectations", "path", cfg.Input, "keys", doc.Len(), "took", time.Since(start))

	keys := doc.KeysWithOutcome(cfg.Outcomes...)
	if len(cfg.Outcomes) > 0 && len(keys) == 0 && doc.Len() > 0 {
		logger.Warn("No tests matched the outcome filter", "outcomes", cfg.Outcomes)
	}

	groups := grouping.Count(keys)
	logger.Info("Grouped expectations",
		"keys", len(keys),
		"groups", len(groups),
		"took", time.Since(start))

	return report.Write(cmd.OutOrStdout(), report.New(groups, len(keys)).Top(cfg.Top), format)
}

// newLogger builds the run's stderr logger. -q discards everything.
func newLogger(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) *slog.Logger {
	if opts.quiet {
		return slogutil.NewDiscardLogger()
	}
	level := slogutil.LevelFromVerbosity(opts.verbose, false, slogutil.LevelFromString(cfg.Logging.Level))
	return slogutil.NewRunLogger(cmd.ErrOrStderr(), level)
}
