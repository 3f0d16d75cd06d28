package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"solfmt/internal/cache"
	"solfmt/internal/diag"
	"solfmt/internal/format"
	"solfmt/internal/fsutil"
	"solfmt/internal/logging"
	"solfmt/internal/observ"
	"solfmt/internal/source"
)

// ErrNoSources is returned when the given paths contain no files to format.
var ErrNoSources = errors.New("no source files found")

// Mode selects what happens to the formatted text.
type Mode uint8

const (
	// ModeStdout returns the text in FormatResult.Formatted.
	ModeStdout Mode = iota
	// ModeCheck only reports whether a file would change.
	ModeCheck
	// ModeWrite writes changed files back in place.
	ModeWrite
)

func (m Mode) String() string {
	switch m {
	case ModeCheck:
		return "check"
	case ModeWrite:
		return "write"
	default:
		return "stdout"
	}
}

// FormatOptions configures a run.
type FormatOptions struct {
	Mode           Mode
	Options        format.Options
	MaxDiagnostics int
	Jobs           int // <= 0 means GOMAXPROCS
	Backup         bool
	Verify         bool
	Cache          *cache.Cache // nil disables caching
	Version        string       // part of the cache key
	Exclude        Excluder
	Timer          *observ.Timer
	Progress       ProgressSink
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path        string
	Changed     bool
	Cached      bool
	Err         error
	Formatted   []byte
	BackupPath  string
	Rewrites    int
	Ambiguities int
	Groups      int

	// FileSet and Bag are set when the file went through the pipeline
	// (not on cache hits); they let the caller render diagnostics.
	FileSet *source.FileSet
	Bag     *diag.Bag
}

// FormatPaths formats the files under paths in parallel. Per-file failures
// are reported in FormatResult.Err; the returned error is only set when
// collecting fails or ctx is cancelled. Results keep the sorted file order.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)
	if opts.Progress == nil {
		opts.Progress = nopSink{}
	}

	var files []string
	err := track(opts.Timer, "collect", func() error {
		var err error
		files, err = CollectSourceFiles(ctx, paths, opts.Exclude)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoSources
	}
	for _, path := range files {
		opts.Progress.OnEvent(Event{File: path, Stage: StageRead, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	logger.Debug("formatting",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs,
		logging.FieldMode, opts.Mode.String(),
	)

	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = FormatResult{Path: path, Err: err}
				return err
			}
			results[i] = formatOne(gctx, path, opts)
			return nil
		})
	}
	err = g.Wait()

	sum := Summarize(results)
	logger.Debug("run finished",
		logging.FieldFilesProcessed, sum.Processed,
		logging.FieldFilesChanged, sum.Changed,
		logging.FieldFilesFailed, sum.Failed,
	)
	return results, err
}

// FormatReader formats everything readable from r, e.g. stdin. name is
// used in messages only. ModeWrite behaves like ModeStdout.
func FormatReader(ctx context.Context, name string, r io.Reader, opts FormatOptions) FormatResult {
	if opts.Progress == nil {
		opts.Progress = nopSink{}
	}
	res := FormatResult{Path: name}
	data, err := io.ReadAll(r)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", name, err)
		return res
	}
	out, _, err := formatContent(ctx, name, data, opts, &res)
	if err != nil {
		res.Err = err
		return res
	}
	res.Changed = !bytes.Equal(out, data)
	if opts.Mode != ModeCheck {
		res.Formatted = out
	}
	return res
}

func formatOne(ctx context.Context, path string, opts FormatOptions) FormatResult {
	start := time.Now()
	logger := logging.FromContext(ctx)
	sink := opts.Progress
	res := FormatResult{Path: path}
	fail := func(stage Stage, err error) FormatResult {
		res.Err = err
		logger.Debug("format failed", logging.FieldPath, path, logging.FieldError, err)
		sink.OnEvent(Event{File: path, Stage: stage, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		return res
	}

	sink.OnEvent(Event{File: path, Stage: StageRead, Status: StatusWorking})
	var (
		data []byte
		perm os.FileMode
	)
	err := track(opts.Timer, "read", func() error {
		var err error
		data, perm, err = fsutil.ReadFile(ctx, path)
		return err
	})
	if err != nil {
		return fail(StageRead, err)
	}

	out, stage, err := formatContent(ctx, path, data, opts, &res)
	if err != nil {
		return fail(stage, err)
	}
	res.Changed = !bytes.Equal(out, data)

	switch opts.Mode {
	case ModeStdout:
		res.Formatted = out
	case ModeWrite:
		if !res.Changed {
			break
		}
		stage = StageWrite
		sink.OnEvent(Event{File: path, Stage: StageWrite, Status: StatusWorking})
		err := track(opts.Timer, "write", func() error {
			if opts.Backup {
				created, err := fsutil.CreateBackup(ctx, path)
				if err != nil {
					return err
				}
				if created {
					res.BackupPath = fsutil.BackupPath(path)
				}
			}
			return fsutil.WriteAtomic(ctx, path, out, perm)
		})
		if err != nil {
			return fail(StageWrite, err)
		}
	case ModeCheck:
	}

	logger.Debug("file done",
		logging.FieldPath, path,
		logging.FieldChanged, res.Changed,
		logging.FieldCached, res.Cached,
		logging.FieldDuration, time.Since(start),
	)
	sink.OnEvent(Event{
		File:    path,
		Stage:   stage,
		Status:  StatusDone,
		Changed: res.Changed,
		Cached:  res.Cached,
		Elapsed: time.Since(start),
	})
	return res
}

// formatContent runs the pipeline on data, going through the cache when
// one is configured. The returned stage names where a failure happened.
func formatContent(ctx context.Context, name string, data []byte, opts FormatOptions, res *FormatResult) ([]byte, Stage, error) {
	logger := logging.FromContext(ctx)
	key := cache.Key(data, opts.Options.Fingerprint(), opts.Version)
	if opts.Cache != nil {
		entry, ok, err := opts.Cache.Get(key)
		switch {
		case err != nil:
			logger.Warn("cache read failed", logging.FieldPath, name, logging.FieldError, err)
		case ok && (entry.Verified || !opts.Verify):
			logger.Debug("cache hit", logging.FieldPath, name)
			res.Cached = true
			res.Rewrites, res.Ambiguities, res.Groups = entry.Rewrites, entry.Ambiguities, entry.Groups
			return entry.Output, StageFormat, nil
		}
	}

	opts.Progress.OnEvent(Event{File: name, Stage: StageFormat, Status: StatusWorking})
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddNormalized(name, data, 0))
	bag := diag.NewBag(opts.MaxDiagnostics)
	res.FileSet, res.Bag = fs, bag

	var out format.Result
	err := track(opts.Timer, "format", func() error {
		var err error
		out, err = format.FormatFile(ctx, sf, opts.Options, bag)
		return err
	})
	if err != nil {
		return nil, StageFormat, err
	}
	res.Rewrites, res.Ambiguities, res.Groups = len(out.Rewrites), len(out.Ambiguities), out.Groups
	logger.Debug("formatted",
		logging.FieldPath, name,
		logging.FieldRewrites, res.Rewrites,
		logging.FieldAmbiguities, res.Ambiguities,
		logging.FieldGroups, res.Groups,
	)

	if opts.Verify {
		opts.Progress.OnEvent(Event{File: name, Stage: StageVerify, Status: StatusWorking})
		err := track(opts.Timer, "verify", func() error {
			return format.CheckIdempotent(ctx, name, out.Output, opts.Options)
		})
		if err != nil {
			diag.ReportError(diag.BagReporter{Bag: bag}, diag.FmtNotIdempotent, source.Span{File: sf.ID}, err.Error()).Emit()
			return nil, StageVerify, err
		}
	}

	if opts.Cache != nil {
		err := opts.Cache.Put(key, cache.Entry{
			Output:      out.Output,
			Rewrites:    res.Rewrites,
			Ambiguities: res.Ambiguities,
			Groups:      res.Groups,
			Verified:    opts.Verify,
		})
		if err != nil {
			logger.Warn("cache write failed", logging.FieldPath, name, logging.FieldError, err)
		}
	}
	return out.Output, StageFormat, nil
}

func track(t *observ.Timer, name string, fn func() error) error {
	if t == nil {
		return fn()
	}
	return t.Track(name, fn)
}

// Summary counts the outcomes of a run.
type Summary struct {
	Processed int `json:"processed"`
	Changed   int `json:"changed"`
	Cached    int `json:"cached"`
	Failed    int `json:"failed"`
}

func Summarize(results []FormatResult) Summary {
	var s Summary
	for _, r := range results {
		s.Processed++
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Changed:
			s.Changed++
		}
		if r.Cached {
			s.Cached++
		}
	}
	return s
}
