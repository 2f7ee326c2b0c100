package logtui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chronolog-dev/chronolog/pkg/lint"
)

// LintModel shows per-file progress for a lint run.
type LintModel struct {
	err            error
	startedFiles   []string
	completedFiles []string
	failedFiles    []string
	spinner        spinner.Model
	progress       progress.Model
	totalFiles     int
	width          int
	height         int
	mu             sync.RWMutex
	done           bool
}

func NewLintModel() *LintModel {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	s := spinner.New()
	s.Style = spinnerStyle

	return &LintModel{
		startedFiles:   []string{},
		completedFiles: []string{},
		failedFiles:    []string{},
		spinner:        s,
		progress:       p,
		mu:             sync.RWMutex{},
	}
}

func (m *LintModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.progress.SetPercent(0))
}

//nolint:ireturn // Third-party.
func (m *LintModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if keyExits(msg) {
			return m, tea.Quit
		}

	case teaMsgWriteLog:
		return m, writeLog(msg, m.width)

	case lint.EventSetFileTotal:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.totalFiles = int(msg)

	case lint.EventLintingFile:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.startedFiles = append(m.startedFiles, string(msg))

	case lint.EventLintedFile:
		m.mu.Lock()
		defer m.mu.Unlock()

		line := fileStatusLine(msg)
		if msg.Err != nil {
			m.failedFiles = append(m.failedFiles, msg.File)
		}

		m.completedFiles = append(m.completedFiles, msg.File)
		completedCount := len(m.completedFiles)
		progressCmd := m.progress.SetPercent(float64(completedCount) / float64(m.totalFiles))

		if m.totalFiles == completedCount {
			m.done = true

			return m, tea.Sequence(
				tea.Println(line),
				finalPause(),
				tea.Quit,
			)
		}

		return m, tea.Batch(
			progressCmd,
			tea.Println(line),
		)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case progress.FrameMsg:
		newModel, cmd := m.progress.Update(msg)
		if newModel, ok := newModel.(progress.Model); ok {
			m.progress = newModel
		}

		return m, cmd

	case error:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.err = msg

		return m, tea.Sequence(finalPause(), tea.Quit)
	}

	return m, nil
}

func (m *LintModel) View() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return getErrorMessage(m.err, m.width)
	}

	completedCount := len(m.completedFiles)

	if m.done {
		failedCount := len(m.failedFiles)
		if failedCount > 0 {
			return doneStyle.Render(fmt.Sprintf(
				"Done! Linted %d files, %d failed.\n", completedCount, failedCount))
		}

		return doneStyle.Render(fmt.Sprintf("Done! Linted %d files.\n", completedCount))
	}

	w := lipgloss.Width(strconv.Itoa(m.totalFiles))
	fileCount := fmt.Sprintf(" %*d/%*d", w, completedCount, w, m.totalFiles)

	prog := m.progress.View()
	progRendered := progressStyle.Render(prog + fileCount)
	progCellsRemaining := max(0, m.width-lipgloss.Width(progRendered))
	gap := strings.Repeat(" ", progCellsRemaining)
	progOut := progRendered + gap + "\n"

	inProgressFiles := differenceStringSlices(m.startedFiles, m.completedFiles)

	spinners := []string{}
	for _, file := range inProgressFiles {
		spin := m.spinner.View() + " "
		cellsAvail := max(0, m.width-lipgloss.Width(spin))

		fileName := currentNameStyle.Render(file)
		info := lipgloss.NewStyle().MaxWidth(cellsAvail).Render("Linting " + fileName)

		cellsRemaining := max(0, m.width-lipgloss.Width(spin+info))
		gap := strings.Repeat(" ", cellsRemaining)

		spinners = append(spinners, spin+info+gap)
	}

	return strings.Join(spinners, "\n") + "\n" + progOut
}

func fileStatusLine(msg lint.EventLintedFile) string {
	switch {
	case msg.Err != nil:
		return fmt.Sprintf("%s %s", errorMark, msg.File)
	case len(msg.Issues) > 0:
		return fmt.Sprintf("%s %s (%d warnings)", warnMark, msg.File, len(msg.Issues))
	default:
		return fmt.Sprintf("%s %s", checkMark, msg.File)
	}
}

func differenceStringSlices(a, b []string) []string {
	difference := []string{}

	for _, x := range a {
		if !slices.Contains(b, x) {
			difference = append(difference, x)
		}
	}

	return difference
}
