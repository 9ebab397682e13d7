package runner

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/wordfreq/internal/logging"
	"github.com/yaklabco/wordfreq/pkg/fsutil"
	"github.com/yaklabco/wordfreq/pkg/tally"
	"github.com/yaklabco/wordfreq/pkg/walk"
)

// Runner counts tokens under each input path with a shared Matcher.
type Runner struct {
	// Matcher extracts tokens from file content.
	Matcher tally.Matcher
}

// New creates a new Runner with the given matcher.
func New(matcher tally.Matcher) *Runner {
	return &Runner{Matcher: matcher}
}

// Run processes every input path and hands each completed path to
// opts.Emit in input order.
//
// Per-entry failures go to opts.OnError and never stop a path. An
// allocation failure stops the current path only: it is reported, marked
// Aborted, and not emitted. Run returns an error only for cancellation or
// a failing Emit.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if r.Matcher == nil {
		return nil, errors.New("runner: nil matcher")
	}
	if opts.Emit == nil {
		return nil, errors.New("runner: nil emit function")
	}

	paths := opts.effectivePaths()
	result := &Result{Paths: make([]PathResult, 0, len(paths))}

	var err error
	if opts.Jobs > 1 && len(paths) > 1 {
		err = r.runParallel(ctx, paths, opts, result)
	} else {
		err = r.runSequential(ctx, paths, opts, result)
	}

	if err != nil {
		return result, err
	}
	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func (r *Runner) runSequential(ctx context.Context, paths []string, opts Options, result *Result) error {
	for _, path := range paths {
		if ctx.Err() != nil {
			return nil
		}

		buf := fsutil.NewBuffer(opts.MaxBufferBytes)
		if err := r.finish(opts, result, r.countPath(ctx, path, buf, opts)); err != nil {
			return err
		}
	}
	return nil
}

// slot holds one path's result until every earlier path has been emitted.
type slot struct {
	done   chan struct{}
	result PathResult
}

func (r *Runner) runParallel(ctx context.Context, paths []string, opts Options, result *Result) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	slots := make([]slot, len(paths))
	for i := range slots {
		slots[i].done = make(chan struct{})
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Jobs)

	launched := make(chan struct{})
	go func() {
		defer close(launched)
		for i, path := range paths {
			group.Go(func() error {
				defer close(slots[i].done)
				// Each worker owns its buffer.
				buf := fsutil.NewBuffer(opts.MaxBufferBytes)
				slots[i].result = r.countPath(groupCtx, path, buf, opts)
				return nil
			})
		}
	}()

	var emitErr error
	for i := range slots {
		<-slots[i].done
		if emitErr == nil {
			emitErr = r.finish(opts, result, slots[i].result)
			if emitErr != nil {
				cancel()
			}
		}
		slots[i].result.Table = nil
	}

	<-launched
	_ = group.Wait()

	return emitErr
}

// finish emits a completed path unless it was aborted or cancelled.
func (r *Runner) finish(opts Options, result *Result, pr PathResult) error {
	if errors.Is(pr.Err, context.Canceled) || errors.Is(pr.Err, context.DeadlineExceeded) {
		return nil
	}

	result.accumulate(pr)
	if pr.Aborted {
		return nil
	}

	if err := opts.Emit(pr); err != nil {
		return fmt.Errorf("emit %s: %w", pr.Path, err)
	}
	return nil
}

// countPath walks one input path into a fresh table.
func (r *Runner) countPath(ctx context.Context, path string, buf *fsutil.Buffer, opts Options) PathResult {
	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	logger := logging.FromContext(ctx)
	table := tally.NewTable()
	pr := PathResult{Path: path, Table: table}

	err := walk.Walk(ctx, path, opts.Walk, func(file walk.File, walkErr error) error {
		if walkErr != nil {
			pr.Stats.EntriesErrored++
			opts.reportError(path, walkErr)
			return nil
		}

		pr.Stats.FilesDiscovered++

		if err := fsutil.ReadInto(ctx, file.Path, buf); err != nil {
			if errors.Is(err, fsutil.ErrAllocation) || ctx.Err() != nil {
				return err
			}
			pr.Stats.FilesErrored++
			opts.reportError(path, err)
			return nil
		}

		pr.Stats.FilesProcessed++
		pr.Stats.BytesRead += int64(buf.Len())
		table.Scan(r.Matcher, buf.Bytes())
		return nil
	})

	pr.Stats.Tokens = table.Total()
	pr.Stats.Distinct = table.Len()

	switch {
	case err == nil:
	case errors.Is(err, fsutil.ErrAllocation):
		pr.Aborted = true
		pr.Err = err
		opts.reportError(path, err)
		logger.Debug("path aborted", logging.FieldBufferCap, buf.Cap())
	default:
		pr.Err = err
	}

	logger.Debug("path counted",
		logging.FieldFilesDiscovered, pr.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, pr.Stats.FilesProcessed,
		logging.FieldFilesErrored, pr.Stats.FilesErrored,
		logging.FieldEntriesErrored, pr.Stats.EntriesErrored,
		logging.FieldTokens, pr.Stats.Tokens,
		logging.FieldDistinct, pr.Stats.Distinct,
		logging.FieldBytesRead, pr.Stats.BytesRead,
	)

	return pr
}
