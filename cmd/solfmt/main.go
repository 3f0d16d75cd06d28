package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"solfmt/internal/logging"
	"solfmt/internal/version"
)

// errReported means the failure was already printed; main only sets the
// exit status.
var errReported = errors.New("failure already reported")

var rootCmd = &cobra.Command{
	Use:   "solfmt [flags] <path>...",
	Short: "Deterministic Solidity formatter",
	Long: `solfmt formats Solidity sources. Directories are walked recursively for
*.sol files; "-" reads from stdin. Without --write or --check the formatted
text is printed to stdout.`,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: setupRoot,
	RunE:              runFormat,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "solfmt: %v\n", err)
		}
		os.Exit(1)
	}
}

// setupRoot applies the persistent flags: colour mode and the logger that
// the rest of the run finds in the command context.
func setupRoot(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return err
	}
	switch strings.ToLower(colorFlag) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	level, err := flags.GetString("log-level")
	if err != nil {
		return err
	}
	if _, ok := logging.ParseLevel(level); !ok {
		return fmt.Errorf("invalid --log-level value %q", level)
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
	logging.SetDefault(logger)
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
	return nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for a given output stream. In auto mode only
// a terminal that did not opt out through NO_COLOR gets colour.
func useColor(cmd *cobra.Command, w io.Writer) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	switch strings.ToLower(colorFlag) {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f) && os.Getenv("NO_COLOR") == ""
}
