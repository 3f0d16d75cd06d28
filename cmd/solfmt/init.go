package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"solfmt/internal/config"
	"solfmt/internal/fsutil"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default .solfmt.toml",
	Long: `Init writes a .solfmt.toml holding the default settings into dir (the
current directory when omitted). An existing file is kept unless --force is
given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	path := filepath.Join(target, config.FileNames[0])
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	var buf bytes.Buffer
	if err := config.WriteTOML(&buf, config.Default()); err != nil {
		return err
	}
	if err := fsutil.WriteAtomic(cmd.Context(), path, buf.Bytes(), fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	}
	return nil
}
