package logtui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chronolog-dev/chronolog/pkg/lint"
	"github.com/chronolog-dev/chronolog/pkg/log"
)

// FileLinter is the subset of [lint.Runner] the TUI drives.
type FileLinter interface {
	Run(ctx context.Context, paths []string) ([]lint.Result, error)
	Subscribe(f func(any))
}

// LintTUI wraps a [FileLinter] with a terminal progress display. Log output
// written while the program runs is routed above the progress area.
type LintTUI struct {
	runner   FileLinter
	p        *tea.Program
	w        io.Writer
	progOpts []tea.ProgramOption
}

type LintTUIOpts func(*LintTUI)

// WithInput sets the reader the program takes key events from. Without it the
// program opens the controlling terminal.
func WithInput(r io.Reader) LintTUIOpts {
	return func(c *LintTUI) {
		c.progOpts = append(c.progOpts, tea.WithInput(r))
	}
}

func NewLintTUI(w io.Writer, logLevel string, runner FileLinter, opts ...LintTUIOpts) (*LintTUI, error) {
	c := &LintTUI{
		runner: runner,
		w:      w,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.runner.Subscribe(c.broadcastEvent)

	logger, err := log.CreateHandler(c, logLevel, log.FormatText)
	if err != nil {
		return nil, fmt.Errorf("failed to create log handler: %w", err)
	}

	slog.SetDefault(slog.New(logger))

	return c, nil
}

func (c *LintTUI) broadcastEvent(evt any) {
	if c.p != nil {
		c.p.Send(evt)
	}
}

func (c *LintTUI) Write(p []byte) (int, error) {
	c.broadcastEvent(teaMsgWriteLog(string(p)))

	return len(p), nil
}

func (c *LintTUI) Subscribe(f func(any)) {
	c.runner.Subscribe(f)
}

// Run lints the given paths while displaying progress.
func (c *LintTUI) Run(ctx context.Context, paths []string) ([]lint.Result, error) {
	c.p = tea.NewProgram(NewLintModel(),
		append([]tea.ProgramOption{tea.WithOutput(c.w)}, c.progOpts...)...)

	var (
		results []lint.Result
		runErr  error
	)

	done := make(chan struct{})

	go func() {
		defer close(done)

		results, runErr = c.runner.Run(ctx, paths)
	}()

	if _, err := c.p.Run(); err != nil {
		return nil, fmt.Errorf("failed to launch tui: %w", err)
	}

	<-done

	return results, runErr
}
