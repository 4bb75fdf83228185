// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/plate-engine/platebake/lib/atomicfile"
	"github.com/plate-engine/platebake/lib/bake"
	"github.com/plate-engine/platebake/lib/binhash"
	"github.com/plate-engine/platebake/lib/document"
	"github.com/plate-engine/platebake/lib/manifest"
	"github.com/plate-engine/platebake/lib/pack"
)

// Staleness selects how [Run] decides whether an output is current.
type Staleness string

const (
	StalenessMtime Staleness = "mtime"
	StalenessHash  Staleness = "hash"
)

// EngineOutput is the engine configuration's output name at the root
// of the target directory.
const EngineOutput = "engine.boot"

// Options configures [Run].
type Options struct {
	// Source is the directory searched for asset sources.
	Source string

	// Target is the directory baked files are written to. It is
	// created if missing.
	Target string

	// Engine is the engine configuration source. Empty skips the
	// engine bake.
	Engine string

	// Workers bounds concurrent bakes. Zero means runtime.NumCPU.
	Workers int

	// Staleness defaults to StalenessMtime.
	Staleness Staleness

	// Force rebuilds every asset regardless of staleness.
	Force bool

	// Backup moves the previous output aside while it is rebuilt.
	Backup bool

	// Verify decodes every produced file and checks its header
	// against its body before it is written.
	Verify bool

	// Logger receives progress. Nil discards.
	Logger *slog.Logger

	// Now stamps manifest entries. Nil uses time.Now.
	Now func() time.Time
}

// Status is the outcome of one asset.
type Status string

const (
	StatusBuilt   Status = "built"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result is the outcome of one asset.
type Result struct {
	// Source and Output are slash-separated and relative to the
	// source and target directories. The engine's Source is the path
	// as configured.
	Source string    `json:"source"`
	Output string    `json:"output"`
	Kind   bake.Kind `json:"kind"`
	Status Status    `json:"status"`
	Err    error     `json:"-"`
}

// Report collects every [Result] of a run, engine first, then assets
// in walk order.
type Report struct {
	Results []Result `json:"results"`
	Built   int      `json:"built"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
}

func (r *Report) add(result Result) {
	r.Results = append(r.Results, result)
	switch result.Status {
	case StatusBuilt:
		r.Built++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// Failures returns the failed results.
func (r *Report) Failures() []Result {
	var failures []Result
	for _, result := range r.Results {
		if result.Status == StatusFailed {
			failures = append(failures, result)
		}
	}
	return failures
}

// Err joins every failure's error, or returns nil when nothing failed.
func (r *Report) Err() error {
	var errs []error
	for _, result := range r.Failures() {
		errs = append(errs, result.Err)
	}
	return errors.Join(errs...)
}

// job is one source to bake.
type job struct {
	sourcePath string // on disk
	outputPath string // on disk
	source     string // reported
	output     string // manifest key
	kind       string
	format     document.Format
}

type builder struct {
	options  Options
	logger   *slog.Logger
	manifest *manifest.Manifest

	// manifestMutex guards manifest, which workers update
	// concurrently.
	manifestMutex sync.Mutex
}

// Run builds every stale asset under options.Source. The returned
// error reports problems with the run itself (unreadable source
// directory, cancellation, manifest I/O); per-asset failures are in
// the report.
func Run(ctx context.Context, options Options) (*Report, error) {
	if options.Source == "" || options.Target == "" {
		return nil, errors.New("build: source and target directories are required")
	}
	if options.Staleness == "" {
		options.Staleness = StalenessMtime
	}
	if options.Staleness != StalenessMtime && options.Staleness != StalenessHash {
		return nil, fmt.Errorf("build: unknown staleness mode %q", options.Staleness)
	}
	if options.Workers <= 0 {
		options.Workers = runtime.NumCPU()
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	info, err := os.Stat(options.Source)
	if err != nil {
		return nil, fmt.Errorf("build: source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("build: source %s is not a directory", options.Source)
	}
	if err := os.MkdirAll(options.Target, 0755); err != nil {
		return nil, fmt.Errorf("build: creating target directory: %w", err)
	}

	b := &builder{options: options, logger: logger}
	manifestPath := filepath.Join(options.Target, manifest.FileName)
	if options.Staleness == StalenessHash {
		b.manifest, err = manifest.Load(manifestPath)
		if errors.Is(err, manifest.ErrVersion) {
			logger.Warn("discarding build manifest from another version", "path", manifestPath, "error", err)
			b.manifest, err = manifest.New(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("build: %w", err)
		}
	}

	logger.Debug("building assets",
		"source", options.Source,
		"target", options.Target,
		"staleness", options.Staleness,
		"workers", options.Workers,
		"force", options.Force,
	)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	report := &Report{}
	if options.Engine != "" {
		if engineJob, ok := b.engineJob(); ok {
			report.add(b.run(engineJob))
		}
	}

	jobs, err := b.discover()
	if err != nil {
		return report, err
	}

	results := make([]Result, len(jobs))
	group, groupContext := errgroup.WithContext(ctx)
	group.SetLimit(options.Workers)
	for i, current := range jobs {
		if groupContext.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupContext.Err(); err != nil {
				return err
			}
			results[i] = b.run(current)
			return nil
		})
	}
	waitErr := group.Wait()

	for _, result := range results {
		// Zero results belong to jobs cancelled before they started.
		if result.Status != "" {
			report.add(result)
		}
	}

	if b.manifest != nil && waitErr == nil {
		keep := make(map[string]bool, len(report.Results))
		for _, result := range report.Results {
			keep[result.Output] = true
		}
		for _, output := range b.manifest.Prune(keep) {
			logger.Debug("forgetting output with no source", "output", output)
		}
		if err := b.manifest.Save(manifestPath); err != nil {
			return report, fmt.Errorf("build: saving manifest: %w", err)
		}
	}

	if waitErr == nil {
		waitErr = ctx.Err()
	}
	if waitErr != nil {
		return report, fmt.Errorf("build: %w", waitErr)
	}

	if report.Built == 0 && report.Failed == 0 {
		logger.Info("nothing to do")
	} else {
		logger.Info("build finished", "built", report.Built, "skipped", report.Skipped, "failed", report.Failed)
	}
	return report, nil
}

// engineJob returns the engine bake, or false when the engine source
// does not exist.
func (b *builder) engineJob() (job, bool) {
	enginePath := b.options.Engine
	if _, err := os.Stat(enginePath); errors.Is(err, fs.ErrNotExist) {
		b.logger.Warn("no engine configuration found", "path", enginePath)
		return job{}, false
	}
	format, ok := document.FormatFromPath(enginePath)
	if !ok {
		format = document.JSON
	}
	return job{
		sourcePath: enginePath,
		outputPath: filepath.Join(b.options.Target, EngineOutput),
		source:     filepath.ToSlash(enginePath),
		output:     EngineOutput,
		kind:       string(bake.KindBootloader),
		format:     format,
	}, true
}

// discover walks the source directory. Hidden directories and the
// target directory (when nested in the source) are not descended into.
func (b *builder) discover() ([]job, error) {
	targetAbsolute, _ := filepath.Abs(b.options.Target)
	engineAbsolute := ""
	if b.options.Engine != "" {
		engineAbsolute, _ = filepath.Abs(b.options.Engine)
	}

	var jobs []job
	err := filepath.WalkDir(b.options.Source, func(sourcePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if sourcePath != b.options.Source && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if absolute, _ := filepath.Abs(sourcePath); absolute == targetAbsolute {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		source, ok := bake.Classify(entry.Name())
		if !ok {
			return nil
		}
		if absolute, _ := filepath.Abs(sourcePath); absolute == engineAbsolute {
			return nil
		}

		relative, err := filepath.Rel(b.options.Source, sourcePath)
		if err != nil {
			return err
		}
		outputRelative := filepath.Join(filepath.Dir(relative), source.Output())
		jobs = append(jobs, job{
			sourcePath: sourcePath,
			outputPath: filepath.Join(b.options.Target, outputRelative),
			source:     filepath.ToSlash(relative),
			output:     filepath.ToSlash(outputRelative),
			kind:       source.Kind,
			format:     source.Format,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("build: walking %s: %w", b.options.Source, err)
	}
	return jobs, nil
}

// run bakes one job if it is stale.
func (b *builder) run(current job) Result {
	result := Result{
		Source: current.source,
		Output: current.output,
		Kind:   bake.Kind(current.kind),
	}
	logger := b.logger.With("source", current.source, "output", current.output)

	data, err := os.ReadFile(current.sourcePath)
	if err != nil {
		return b.fail(logger, result, err)
	}

	stale, sourceDigest, err := b.stale(current, data)
	if err != nil {
		return b.fail(logger, result, err)
	}
	if !stale {
		logger.Debug("nothing to build")
		result.Status = StatusSkipped
		return result
	}

	kind, err := bake.ParseKind(current.kind)
	if err != nil {
		return b.fail(logger, result, err)
	}

	restore, err := b.backup(current.outputPath)
	if err != nil {
		return b.fail(logger, result, err)
	}

	output, err := bake.BakeSource(kind, current.format, data, bake.Options{
		Sources: os.DirFS(filepath.Dir(current.sourcePath)),
	})
	if err == nil && b.options.Verify {
		_, err = bake.Verify(output)
	}
	if err == nil {
		err = b.write(current.outputPath, output)
	}
	if restoreErr := restore(err == nil); restoreErr != nil {
		if err == nil {
			logger.Warn("removing backup", "error", restoreErr)
		} else {
			err = errors.Join(err, restoreErr)
		}
	}
	if err != nil {
		return b.fail(logger, result, err)
	}

	if b.manifest != nil {
		b.manifestMutex.Lock()
		b.manifest.Record(current.output, manifest.Entry{
			Source:       current.source,
			Kind:         current.kind,
			SourceDigest: sourceDigest,
			OutputDigest: binhash.HashBytes(binhash.Output, output),
		}, b.options.Now())
		b.manifestMutex.Unlock()
	}

	logger.Info("built", "kind", kind, "bytes", len(output))
	result.Status = StatusBuilt
	return result
}

func (b *builder) fail(logger *slog.Logger, result Result, err error) Result {
	logger.Error("build failed", "error", err)
	if b.manifest != nil {
		b.manifestMutex.Lock()
		b.manifest.Forget(result.Output)
		b.manifestMutex.Unlock()
	}
	result.Status = StatusFailed
	result.Err = fmt.Errorf("%s: %w", result.Source, err)
	return result
}

// stale reports whether current needs baking. In hash mode it also
// returns the source digest for the manifest.
func (b *builder) stale(current job, data []byte) (bool, binhash.Digest, error) {
	var sourceDigest binhash.Digest
	if b.options.Staleness == StalenessHash {
		sourceDigest = binhash.HashBytes(binhash.Source, data)
	}
	if b.options.Force {
		return true, sourceDigest, nil
	}

	switch b.options.Staleness {
	case StalenessHash:
		outputDigest, err := binhash.HashFile(binhash.Output, current.outputPath)
		if errors.Is(err, fs.ErrNotExist) {
			return true, sourceDigest, nil
		}
		if err != nil {
			return false, sourceDigest, err
		}
		b.manifestMutex.Lock()
		fresh := b.manifest.Fresh(current.output, sourceDigest, outputDigest)
		b.manifestMutex.Unlock()
		return !fresh, sourceDigest, nil

	default:
		sourceInfo, err := os.Stat(current.sourcePath)
		if err != nil {
			return false, sourceDigest, err
		}
		outputInfo, err := os.Stat(current.outputPath)
		if errors.Is(err, fs.ErrNotExist) {
			return true, sourceDigest, nil
		}
		if err != nil {
			return false, sourceDigest, err
		}
		return sourceInfo.ModTime().After(outputInfo.ModTime()), sourceDigest, nil
	}
}

// backup moves an existing output to <outputPath>.bk when backups
// are enabled. The returned function finishes the backup: on success
// it removes the .bk file, otherwise it moves it back into place.
func (b *builder) backup(outputPath string) (func(succeeded bool) error, error) {
	noop := func(bool) error { return nil }
	if !b.options.Backup {
		return noop, nil
	}

	backupPath := outputPath + pack.BackupSuffix
	err := os.Rename(outputPath, backupPath)
	if errors.Is(err, fs.ErrNotExist) {
		return noop, nil
	}
	if err != nil {
		return nil, fmt.Errorf("backing up previous output: %w", err)
	}

	return func(succeeded bool) error {
		if succeeded {
			return os.Remove(backupPath)
		}
		if err := os.Rename(backupPath, outputPath); err != nil {
			return fmt.Errorf("restoring backup: %w", err)
		}
		return nil
	}, nil
}

// write replaces outputPath with data atomically.
func (b *builder) write(outputPath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return atomicfile.WriteFile(outputPath, data, 0644)
}
