// Package batch converts every file of a source tree into a mirrored
// destination tree. A failing file is recorded and the batch goes on unless
// StopOnError is set.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/greatbody/charset-convertor/internal/converter"
	"github.com/greatbody/charset-convertor/internal/logging"
	"github.com/greatbody/charset-convertor/internal/transcoder"
	"github.com/greatbody/charset-convertor/internal/tree"
)

// LockName is the lock file created in the destination root.
const LockName = ".charset-convertor.lock"

var (
	// ErrBatchFailed is returned when at least one file failed.
	ErrBatchFailed = errors.New("batch failed")
	// ErrLocked is returned when another run holds the destination lock.
	ErrLocked = errors.New("destination is locked by another run")
	// ErrNestedDirs is returned when one root contains the other.
	ErrNestedDirs = errors.New("source and destination overlap")
)

// Options configures a batch run.
type Options struct {
	SourceDir      string
	DestinationDir string
	Convert        converter.Options
	Filter         tree.Filter
	// Workers bounds the number of files converted at once; <1 means 1.
	Workers     int
	StopOnError bool
	Lock        bool
	Logger      *slog.Logger
}

// FileFailure is one file that could not be converted.
type FileFailure struct {
	Path string
	Kind converter.Kind
	Err  error
}

// Report summarizes a run.
type Report struct {
	RunID     string
	Files     int
	Converted int
	Failed    []FileFailure
	BytesIn   int64
	BytesOut  int64
	Elapsed   time.Duration
}

// OK reports whether every listed file was converted.
func (r *Report) OK() bool {
	return len(r.Failed) == 0 && r.Converted == r.Files
}

// Run converts the tree. The returned report is never nil, even on error.
func Run(ctx context.Context, opts Options) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: uuid.NewString()}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	log = log.With("run_id", report.RunID)

	err := run(ctx, opts, report, log)
	report.Elapsed = time.Since(start)
	log.Info("Total elapsed time", "elapsed", report.Elapsed.Round(time.Millisecond))

	if len(report.Failed) > 0 {
		failed := fmt.Errorf("%w: %d of %d files", ErrBatchFailed, len(report.Failed), report.Files)
		err = errors.Join(failed, err)
	}
	if err != nil {
		log.Error("FAILURE", "error", err)
		return report, err
	}
	log.Info("SUCCESS", "files", report.Converted,
		"read", humanize.Bytes(uint64(report.BytesIn)),
		"written", humanize.Bytes(uint64(report.BytesOut)))
	return report, nil
}

func run(ctx context.Context, opts Options, report *Report, log *slog.Logger) error {
	src, dst, err := roots(opts.SourceDir, opts.DestinationDir)
	if err != nil {
		return err
	}
	// an unknown encoding would fail every file the same way
	if _, err := transcoder.Resolve(opts.Convert.SourceEncoding); err != nil {
		return err
	}
	if _, err := transcoder.Resolve(opts.Convert.TargetEncoding); err != nil {
		return err
	}

	files, err := tree.Walk(src, opts.Filter)
	if err != nil {
		return fmt.Errorf("list source files: %w", err)
	}
	report.Files = len(files)

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if opts.Lock {
		lock := flock.New(filepath.Join(dst, LockName))
		ok, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return fmt.Errorf("%s: %w", dst, ErrLocked)
		}
		// the lock file is removed so the destination mirrors only the source
		defer func() {
			if err := lock.Unlock(); err != nil {
				log.Warn("failed to release destination lock", "error", err)
				return
			}
			if err := os.Remove(lock.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
				log.Warn("failed to remove destination lock", "path", lock.Path(), "error", err)
			}
		}()
	}

	log.Info("Starting conversion",
		"source", src, "destination", dst, "files", len(files),
		"from", opts.Convert.SourceEncoding, "to", opts.Convert.TargetEncoding,
		"fold_width", opts.Convert.FoldWidth)

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	for _, rel := range files {
		rel := rel
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			res, err := convertOne(src, dst, rel, opts.Convert, log)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed = append(report.Failed, FileFailure{
					Path: filepath.Join(src, rel),
					Kind: converter.KindOf(err),
					Err:  err,
				})
				log.Error("Unable to convert file", "file", filepath.Join(src, rel), "error", err)
				if opts.StopOnError {
					return err
				}
				return nil
			}
			report.Converted++
			report.BytesIn += int64(res.BytesIn)
			report.BytesOut += int64(res.BytesOut)
			return nil
		})
	}
	err = g.Wait()
	sort.Slice(report.Failed, func(i, j int) bool {
		return report.Failed[i].Path < report.Failed[j].Path
	})
	if err != nil {
		return err
	}
	return ctx.Err()
}

func convertOne(src, dst, rel string, opts converter.Options, log *slog.Logger) (converter.Result, error) {
	srcPath, dstPath, err := tree.Mirror(src, dst, rel)
	if err != nil {
		return converter.Result{}, &converter.ConversionError{Path: filepath.Join(src, rel), Kind: converter.KindIO, Err: err}
	}
	log.Info("Converting", "from", srcPath, "into", dstPath)
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return converter.Result{}, &converter.ConversionError{Path: srcPath, Kind: converter.KindIO, Err: err}
	}
	res, err := converter.ConvertFile(converter.Job{Source: srcPath, Destination: dstPath, Options: opts})
	if err != nil {
		return res, err
	}
	log.Debug("Converted", "file", srcPath,
		"read", humanize.Bytes(uint64(res.BytesIn)),
		"written", humanize.Bytes(uint64(res.BytesOut)),
		"chars", res.Chars)
	return res, nil
}

func roots(src, dst string) (string, string, error) {
	if strings.TrimSpace(src) == "" || strings.TrimSpace(dst) == "" {
		return "", "", errors.New("source and destination directories are required")
	}
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return "", "", err
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return "", "", err
	}
	if within(absSrc, absDst) || within(absDst, absSrc) {
		return "", "", fmt.Errorf("%s and %s: %w", absSrc, absDst, ErrNestedDirs)
	}
	return absSrc, absDst, nil
}

// within reports whether path is base or below it.
func within(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
