package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"solfmt/internal/diagfmt"
	"solfmt/internal/driver"
)

var treeCmd = &cobra.Command{
	Use:   "tree [flags] file.sol",
	Short: "Print the syntax tree the formatter works on",
	Long: `Tree parses a Solidity file and prints the adapted syntax tree. With
--trivia (the default) every leaf lists the comments and blank lines
attached to it.`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	treeCmd.Flags().Bool("trivia", true, "annotate leaves with attached trivia")
}

func runTree(cmd *cobra.Command, args []string) error {
	withTrivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if result == nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	bag := problems(result.Bag)
	if bag.Len() > 0 {
		errOut := cmd.ErrOrStderr()
		diagfmt.Pretty(errOut, bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, errOut),
			Context: 2,
		})
	}
	if err != nil {
		if bag.Len() > 0 {
			return errReported
		}
		return err
	}

	triv := result.Trivia
	if !withTrivia {
		triv = nil
	}
	return diagfmt.FormatTree(cmd.OutOrStdout(), result.Tree, triv)
}
