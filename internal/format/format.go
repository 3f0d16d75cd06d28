package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"solfmt/internal/align"
	"solfmt/internal/diag"
	"solfmt/internal/logging"
	"solfmt/internal/normalize"
	"solfmt/internal/parser"
	"solfmt/internal/source"
	"solfmt/internal/syntax"
	"solfmt/internal/trivia"
)

// ErrNotIdempotent is returned by CheckIdempotent when formatting the
// output again changes it.
var ErrNotIdempotent = errors.New("formatting is not idempotent")

// Result is the outcome of formatting one file.
type Result struct {
	Output      []byte
	Changed     bool
	Rewrites    []normalize.Rewrite
	Ambiguities []trivia.Ambiguity
	Groups      int
}

// FormatFile parses, normalizes, aligns and prints sf. Diagnostics go into
// bag, which may be nil. A parse failure is returned wrapped around
// parser.ErrParseFailure and an unknown node kind around
// syntax.ErrUnrecognizedNodeKind.
func FormatFile(ctx context.Context, sf *source.File, opt Options, bag *diag.Bag) (Result, error) {
	if sf == nil {
		return Result{}, errors.New("format: nil source file")
	}
	if bag == nil {
		bag = diag.NewBag(0)
	}
	opt = opt.withDefaults()
	logger := logging.FromContext(ctx)
	reporter := diag.BagReporter{Bag: bag}

	raw, err := parser.Parse(sf, parser.Options{Reporter: reporter})
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", sf.Path, err)
	}
	tree, err := syntax.Adapt(raw, sf)
	if err != nil {
		var unknown *syntax.UnrecognizedNodeKindError
		if errors.As(err, &unknown) {
			diag.ReportError(reporter, diag.FmtUnrecognizedNodeKind, unknown.Span, err.Error()).Emit()
		}
		return Result{}, fmt.Errorf("%s: %w", sf.Path, err)
	}

	triv := trivia.Classify(tree)
	res := Result{Ambiguities: triv.Ambiguities()}
	for _, a := range res.Ambiguities {
		logger.Debug("comment attached by tie-break",
			logging.FieldPath, sf.Path,
			logging.FieldComment, a.Comment.Text,
		)
		diag.ReportInfo(reporter, diag.FmtAmbiguousComment, a.Comment.Span,
			"comment shares its line with tokens on both sides; attached to the following token").Emit()
	}

	if opt.NormalizeLocations {
		tree, triv, res.Rewrites = normalize.Normalize(tree, triv)
		for _, rw := range res.Rewrites {
			logger.Debug("removed data location",
				logging.FieldPath, sf.Path,
				logging.FieldQualifier, rw.Qualifier,
				logging.FieldType, rw.Type,
				logging.FieldName, rw.Name,
			)
			diag.ReportInfo(reporter, diag.FmtRemovedLocation, rw.Span,
				fmt.Sprintf("%q is a value type; %q removed", rw.Type, rw.Qualifier)).Emit()
		}
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	table := align.Compute(tree, triv, measurer(tree, triv, opt), opt.alignOptions(tree))
	res.Groups = len(table.Groups())
	res.Output = Print(tree, triv, table, opt)
	res.Changed = !bytes.Equal(res.Output, sf.Content)
	return res, nil
}

// FormatSource formats in-memory text. name is used in messages only.
func FormatSource(ctx context.Context, name string, src []byte, opt Options) ([]byte, error) {
	fs := source.NewFileSet()
	res, err := FormatFile(ctx, fs.Get(fs.AddVirtual(name, src)), opt, nil)
	if err != nil {
		return nil, err
	}
	return res.Output, nil
}

// CheckIdempotent formats formatted once more and fails with
// ErrNotIdempotent when anything moves.
func CheckIdempotent(ctx context.Context, name string, formatted []byte, opt Options) error {
	again, err := FormatSource(ctx, name, formatted, opt)
	if err != nil {
		return fmt.Errorf("%w: %s: reformatting failed: %w", ErrNotIdempotent, name, err)
	}
	if bytes.Equal(again, formatted) {
		return nil
	}
	return fmt.Errorf("%w: %s: first difference on line %d", ErrNotIdempotent, name, firstDiffLine(formatted, again))
}

func firstDiffLine(a, b []byte) int {
	line := 1
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return line
		}
		if a[i] == '\n' {
			line++
		}
	}
	return line
}

// CheckRoundTrip formats sf, re-parses the result and compares the token
// sequences. Only removed data locations may differ.
func CheckRoundTrip(ctx context.Context, sf *source.File, opt Options, maxDiag int) (ok bool, msg string) {
	origBag := diag.NewBag(maxDiag)
	res, err := FormatFile(ctx, sf, opt, origBag)
	if err != nil {
		return false, "fmt-check: formatter failed: " + err.Error()
	}

	fs2 := source.NewFileSet()
	rebuilt := fs2.Get(fs2.AddVirtual(sf.Path, res.Output))
	origTexts, err := parseTokens(sf)
	if err != nil {
		return false, "fmt-check: initial parse failed: " + err.Error()
	}
	newTexts, err := parseTokens(rebuilt)
	if err != nil {
		return false, "fmt-check: reparse failed: " + err.Error()
	}

	removed := make(map[string]int)
	for _, rw := range res.Rewrites {
		removed[rw.Qualifier]++
	}
	// Synthesized braces are the only tokens the printer adds.
	j := 0
	for _, text := range origTexts {
		for {
			if j < len(newTexts) && newTexts[j] == text {
				j++
				break
			}
			if removed[text] > 0 {
				removed[text]--
				break
			}
			if j < len(newTexts) && isBrace(newTexts[j]) {
				j++
				continue
			}
			return false, fmt.Sprintf("fmt-check: token %q lost after round-trip", text)
		}
	}
	for ; j < len(newTexts); j++ {
		if !isBrace(newTexts[j]) {
			return false, fmt.Sprintf("fmt-check: unexpected token %q after round-trip", newTexts[j])
		}
	}
	return true, ""
}

func parseTokens(sf *source.File) ([]string, error) {
	raw, err := parser.Parse(sf, parser.Options{})
	if err != nil {
		return nil, err
	}
	tree, err := syntax.Adapt(raw, sf)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, leaf := range tree.Leaves(tree.Root) {
		// Pragma and assembly text may only differ in whitespace.
		if text := strings.Join(strings.Fields(tree.Tok(leaf).Text), " "); text != "" {
			out = append(out, text)
		}
	}
	return slices.Clip(out), nil
}

func isBrace(text string) bool {
	return text == "{" || text == "}"
}
