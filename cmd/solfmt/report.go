package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"solfmt/internal/diag"
	"solfmt/internal/diagfmt"
	"solfmt/internal/driver"
	"solfmt/internal/observ"
)

type fileReport struct {
	Path        string                   `json:"path"`
	Changed     bool                     `json:"changed"`
	Cached      bool                     `json:"cached,omitempty"`
	Rewrites    int                      `json:"rewrites,omitempty"`
	Ambiguities int                      `json:"ambiguities,omitempty"`
	Backup      string                   `json:"backup,omitempty"`
	Error       string                   `json:"error,omitempty"`
	Diagnostics []diagfmt.DiagnosticJSON `json:"diagnostics,omitempty"`
}

type runReport struct {
	Mode    string         `json:"mode"`
	Files   []fileReport   `json:"files"`
	Summary driver.Summary `json:"summary"`
	Timings *observ.Report `json:"timings,omitempty"`
}

// renderRun prints the results of a run and turns failures into the exit
// status: any per-file error, or any pending change in check mode.
func renderRun(cmd *cobra.Command, results []driver.FormatResult, mode driver.Mode, fl fmtFlags, timer *observ.Timer) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if fl.report == "json" {
		if err := renderJSON(out, results, mode, timer); err != nil {
			return err
		}
	} else {
		renderFailures(cmd, errOut, results, fl.quiet)
		if err := renderText(out, results, mode, fl.quiet); err != nil {
			return err
		}
		if timer != nil {
			fmt.Fprint(errOut, timer.Summary())
		}
	}

	sum := driver.Summarize(results)
	if sum.Failed > 0 {
		return errReported
	}
	if mode == driver.ModeCheck && sum.Changed > 0 {
		return errReported
	}
	return nil
}

func renderText(out io.Writer, results []driver.FormatResult, mode driver.Mode, quiet bool) error {
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		var err error
		switch mode {
		case driver.ModeStdout:
			_, err = out.Write(res.Formatted)
		case driver.ModeCheck:
			if res.Changed && !quiet {
				_, err = fmt.Fprintln(out, res.Path)
			}
		case driver.ModeWrite:
			if res.Changed && !quiet {
				_, err = fmt.Fprintf(out, "formatted %s\n", res.Path)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// renderFailures prints the diagnostics of failed files, or the bare error
// when the failure left none (I/O errors, cancellation). Quiet runs get one
// line per diagnostic and no source excerpts.
func renderFailures(cmd *cobra.Command, w io.Writer, results []driver.FormatResult, quiet bool) {
	opts := diagfmt.PrettyOpts{
		Color:     useColor(cmd, w),
		Context:   2,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	}
	for _, res := range results {
		if res.Err == nil {
			continue
		}
		if bag := problems(res.Bag); bag.Len() > 0 {
			if quiet {
				fmt.Fprintln(w, diag.FormatShortDiagnostics(bag.Items(), res.FileSet, false))
				continue
			}
			diagfmt.Pretty(w, bag, res.FileSet, opts)
			continue
		}
		fmt.Fprintf(w, "solfmt: %s: %v\n", res.Path, res.Err)
	}
}

// problems keeps the warnings and errors of bag, sorted. Informational
// notes (removed qualifiers, comment tie-breaks) only reach the log.
func problems(bag *diag.Bag) *diag.Bag {
	out := diag.NewBag(0)
	if bag == nil {
		return out
	}
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevWarning {
			out.Add(d)
		}
	}
	out.Sort()
	out.Dedup()
	return out
}

func renderJSON(out io.Writer, results []driver.FormatResult, mode driver.Mode, timer *observ.Timer) error {
	report := runReport{
		Mode:    mode.String(),
		Files:   make([]fileReport, 0, len(results)),
		Summary: driver.Summarize(results),
	}
	for _, res := range results {
		fr := fileReport{
			Path:        res.Path,
			Changed:     res.Changed,
			Cached:      res.Cached,
			Rewrites:    res.Rewrites,
			Ambiguities: res.Ambiguities,
			Backup:      res.BackupPath,
		}
		if res.Err != nil {
			fr.Error = res.Err.Error()
		}
		if bag := problems(res.Bag); bag.Len() > 0 {
			fr.Diagnostics = diagfmt.BuildDiagnosticsOutput(bag, res.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         diagfmt.PathModeAuto,
				IncludeNotes:     true,
			}).Diagnostics
		}
		report.Files = append(report.Files, fr)
	}
	if timer != nil {
		r := timer.Report()
		report.Timings = &r
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
