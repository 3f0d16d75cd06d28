package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"solfmt/internal/diagfmt"
	"solfmt/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.sol",
	Short: "Print the token stream of a Solidity file",
	Long:  `Tokenize lexes a Solidity file and prints every token with its position and leading trivia`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Tokenize(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		errOut := cmd.ErrOrStderr()
		diagfmt.Pretty(errOut, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, errOut),
			Context: 2,
		})
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
