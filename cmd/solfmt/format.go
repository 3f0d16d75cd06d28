package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"solfmt/internal/cache"
	"solfmt/internal/config"
	"solfmt/internal/driver"
	"solfmt/internal/logging"
	"solfmt/internal/observ"
	"solfmt/internal/version"
)

const stdinPath = "-"

func init() {
	f := rootCmd.Flags()
	f.BoolP("write", "w", false, "write formatted output back to the files")
	f.Bool("check", false, "list files whose formatting differs and exit 1")
	f.String("format", "text", "report format for --check and --write (text|json)")
	f.Int("line-width", 0, "maximum line width (overrides config)")
	f.Int("indent", 0, "spaces per indent level (overrides config)")
	f.Bool("use-tabs", false, "indent with tabs (overrides config)")
	f.String("config", "", "path to a .solfmt.toml or .solfmt.yaml file")
	f.Int("jobs", 0, "max parallel workers (0=auto)")
	f.Bool("backup", false, "keep a .solfmt.bak copy of every rewritten file")
	f.Bool("no-cache", false, "do not read or write the result cache")
	f.Bool("verify", false, "format the output again and fail if it changes")
	f.String("ui", "auto", "progress view for --write/--check (auto|on|off)")
}

type fmtFlags struct {
	write, check, useTabs   bool
	backup, noCache, verify bool
	quiet, timings          bool
	report, configPath, ui  string
	lineWidth, indent, jobs int
	maxDiagnostics          int
}

func readFmtFlags(cmd *cobra.Command) (fmtFlags, error) {
	var fl fmtFlags
	flags := cmd.Flags()
	persistent := cmd.Root().PersistentFlags()

	bools := []struct {
		dst  *bool
		name string
		set  interface{ GetBool(string) (bool, error) }
	}{
		{&fl.write, "write", flags},
		{&fl.check, "check", flags},
		{&fl.useTabs, "use-tabs", flags},
		{&fl.backup, "backup", flags},
		{&fl.noCache, "no-cache", flags},
		{&fl.verify, "verify", flags},
		{&fl.quiet, "quiet", persistent},
		{&fl.timings, "timings", persistent},
	}
	for _, b := range bools {
		v, err := b.set.GetBool(b.name)
		if err != nil {
			return fl, fmt.Errorf("failed to get %s flag: %w", b.name, err)
		}
		*b.dst = v
	}

	var err error
	if fl.report, err = flags.GetString("format"); err != nil {
		return fl, err
	}
	if fl.configPath, err = flags.GetString("config"); err != nil {
		return fl, err
	}
	if fl.ui, err = flags.GetString("ui"); err != nil {
		return fl, err
	}
	if fl.lineWidth, err = flags.GetInt("line-width"); err != nil {
		return fl, err
	}
	if fl.indent, err = flags.GetInt("indent"); err != nil {
		return fl, err
	}
	if fl.jobs, err = flags.GetInt("jobs"); err != nil {
		return fl, err
	}
	if fl.maxDiagnostics, err = persistent.GetInt("max-diagnostics"); err != nil {
		return fl, err
	}
	return fl, nil
}

func (fl fmtFlags) mode() (driver.Mode, error) {
	switch {
	case fl.write && fl.check:
		return 0, errors.New("--write cannot be used with --check")
	case fl.write:
		return driver.ModeWrite, nil
	case fl.check:
		return driver.ModeCheck, nil
	}
	if fl.backup {
		return 0, errors.New("--backup requires --write")
	}
	return driver.ModeStdout, nil
}

func runFormat(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("no paths given (use - to read stdin)")
	}
	fl, err := readFmtFlags(cmd)
	if err != nil {
		return err
	}
	mode, err := fl.mode()
	if err != nil {
		return err
	}
	switch fl.report {
	case "text":
	case "json":
		if mode == driver.ModeStdout {
			return errors.New("--format json needs --check or --write")
		}
	default:
		return fmt.Errorf("unsupported output format %q", fl.report)
	}
	ui, err := readUIMode(fl.ui)
	if err != nil {
		return err
	}
	fromStdin := slices.Contains(args, stdinPath)
	if fromStdin && len(args) > 1 {
		return errors.New("- cannot be combined with other paths")
	}
	if fromStdin && mode == driver.ModeWrite {
		return errors.New("--write cannot be used with stdin")
	}

	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cfg, cfgPath, err := loadConfig(cmd, fl, args)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		logger.Debug("config loaded", logging.FieldConfig, cfgPath)
	}
	excluder, err := config.NewExcluder(cfg.Exclude)
	if err != nil {
		return err
	}

	opts := driver.FormatOptions{
		Mode:           mode,
		Options:        cfg.FormatOptions(),
		MaxDiagnostics: fl.maxDiagnostics,
		Jobs:           fl.jobs,
		Backup:         fl.backup,
		Verify:         fl.verify,
		Version:        version.CacheKey(),
		Exclude:        excluder,
	}
	if fl.timings {
		opts.Timer = observ.NewTimer()
	}
	if !fl.noCache {
		c, err := cache.Open("solfmt")
		if err != nil {
			logger.Warn("result cache disabled", logging.FieldError, err)
		} else {
			opts.Cache = c
		}
	}

	var results []driver.FormatResult
	if fromStdin {
		results = []driver.FormatResult{driver.FormatReader(ctx, "<stdin>", cmd.InOrStdin(), opts)}
	} else {
		results, err = formatWithProgress(cmd, args, opts, fl, ui)
		if err != nil {
			return err
		}
	}
	return renderRun(cmd, results, mode, fl, opts.Timer)
}

// loadConfig finds the config starting at the first target path and
// applies the command-line overrides on top of it.
func loadConfig(cmd *cobra.Command, fl fmtFlags, args []string) (config.Config, string, error) {
	start := "."
	if len(args) > 0 && args[0] != stdinPath {
		start = args[0]
		if info, err := os.Stat(start); err == nil && !info.IsDir() {
			start = filepath.Dir(start)
		}
	}
	res, err := config.Load(config.LoadOptions{StartDir: start, ExplicitPath: fl.configPath})
	if err != nil {
		return config.Config{}, "", err
	}
	cfg := res.Config
	flags := cmd.Flags()
	if flags.Changed("line-width") {
		cfg.LineWidth = fl.lineWidth
	}
	if flags.Changed("indent") {
		cfg.IndentWidth = fl.indent
	}
	if flags.Changed("use-tabs") {
		cfg.UseTabs = fl.useTabs
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", err
	}
	return cfg, res.Path, nil
}

func formatWithProgress(cmd *cobra.Command, args []string, opts driver.FormatOptions, fl fmtFlags, ui uiMode) ([]driver.FormatResult, error) {
	ctx := cmd.Context()
	if opts.Mode == driver.ModeStdout || fl.quiet || fl.report == "json" || ui == uiModeOff {
		return driver.FormatPaths(ctx, args, opts)
	}
	files, err := driver.CollectSourceFiles(ctx, args, opts.Exclude)
	if err != nil {
		return nil, err
	}
	if !shouldUseTUI(ui, len(files)) {
		return driver.FormatPaths(ctx, args, opts)
	}
	title := "formatting"
	if opts.Mode == driver.ModeCheck {
		title = "checking"
	}
	return runFormatWithUI(ctx, title, files, opts)
}
