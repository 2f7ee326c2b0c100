package lint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/semaphore"

	"github.com/chronolog-dev/chronolog/pkg/changelog"
	"github.com/chronolog-dev/chronolog/pkg/noteio"
)

var ErrLintWorkerFailed = errors.New("lint worker failed")

// Runner lints a set of files concurrently and broadcasts progress events
// to subscribers.
type Runner struct {
	linter *Linter
	subs   []func(any)
	jobs   int64
	mu     sync.Mutex
}

// NewRunner creates a runner for the given linter.
func NewRunner(linter *Linter, opts ...RunnerOpt) *Runner {
	r := &Runner{
		linter: linter,
		jobs:   int64(runtime.GOMAXPROCS(0)),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

type RunnerOpt func(*Runner)

// WithJobs bounds the number of files linted concurrently.
func WithJobs(jobs int64) RunnerOpt {
	return func(r *Runner) {
		if jobs > 0 {
			r.jobs = jobs
		}
	}
}

// Subscribe registers a callback for progress events.
func (r *Runner) Subscribe(f func(any)) {
	r.subs = append(r.subs, f)
}

func (r *Runner) broadcastEvent(evt any) {
	for _, sub := range r.subs {
		sub(evt)
	}
}

// Result is the outcome for one file.
type Result struct {
	File   string
	Issues []Issue
}

// Run lints every file and returns per-file results in path order. The
// returned error aggregates read failures and error-severity findings.
func (r *Runner) Run(ctx context.Context, paths []string) ([]Result, error) {
	sem := semaphore.NewWeighted(r.jobs)
	errChan := make(chan error, len(paths))
	results := make([]Result, len(paths))

	r.broadcastEvent(EventSetFileTotal(len(paths)))

	for i, path := range paths {
		logger := slog.With(slog.String("file", path))

		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLintWorkerFailed, err)
		}

		r.broadcastEvent(EventLintingFile(path))

		go func() {
			defer sem.Release(1)

			logger.Debug("linting file")

			issues, err := r.lintFile(path)
			if err != nil {
				r.mu.Lock()
				results[i] = Result{File: path}
				r.mu.Unlock()

				r.broadcastEvent(EventLintedFile{File: path, Err: err})
				errChan <- err

				return
			}

			r.mu.Lock()
			results[i] = Result{File: path, Issues: issues}
			r.mu.Unlock()

			var evtErr error
			if hasErrors(issues) {
				evtErr = Err(issues)
				errChan <- evtErr
			}

			r.broadcastEvent(EventLintedFile{File: path, Issues: issues, Err: evtErr})

			logger.Debug("finished linting file", slog.Int("issues", len(issues)))
		}()
	}

	if err := sem.Acquire(ctx, r.jobs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLintWorkerFailed, err)
	}

	close(errChan)

	var merr error
	for err := range errChan {
		merr = multierror.Append(merr, err)
	}

	r.broadcastEvent(EventDone{Err: merr})

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].File < results[j].File
	})

	return results, merr
}

func (r *Runner) lintFile(path string) ([]Issue, error) {
	f, name, err := noteio.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := changelog.Parse(f, name)
	if err != nil {
		return nil, err
	}

	return r.linter.Lint(c), nil
}

func hasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}

	return false
}
