package driver

import (
	"fmt"

	"fortio.org/safecast"

	"solfmt/internal/diag"
	"solfmt/internal/parser"
	"solfmt/internal/source"
	"solfmt/internal/syntax"
	"solfmt/internal/trivia"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *syntax.Tree
	Trivia  *trivia.Map
	Bag     *diag.Bag
}

// Parse runs the front half of the pipeline (parse, adapt, classify) for
// the tree debug command. On a parse failure the result still carries the
// diagnostics; Tree is nil.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	res := &ParseResult{FileSet: fs, File: file, Bag: bag}

	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, err
	}
	raw, err := parser.Parse(file, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	if err != nil {
		return res, fmt.Errorf("%s: %w", file.Path, err)
	}
	res.Tree, err = syntax.Adapt(raw, file)
	if err != nil {
		return res, fmt.Errorf("%s: %w", file.Path, err)
	}
	res.Trivia = trivia.Classify(res.Tree)
	return res, nil
}
