package controller

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "tsguard.dev/pkg/tsguard/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	pathStyle  = lipgloss.NewStyle().Underline(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	addStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	delStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// reservedLines is the header and footer height around the viewport.
const reservedLines = 4

// TUI implements UI using Bubble Tea. Results are buffered and shown once the
// summary arrives: printed directly when they fit the terminal, otherwise in a
// scrollable viewport.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	mode    StartMode
	lines   []string
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start resets the buffered output.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.mode = resolveStartConfig(options).mode
	t.lines = nil
	t.program = nil
	t.done = nil

	if t.mode == ModeWatch {
		_, err := fmt.Fprintln(t.output, titleStyle.Render("tsguard")+faintStyle.Render("  watching for changes (Ctrl+C to stop)"))
		return err
	}

	return nil
}

// Close stops a running program.
func (t *TUI) Close(_ context.Context) {
	t.mu.Lock()
	program, done := t.program, t.done
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()
	<-done
}

// Wait blocks until the user leaves the viewport.
func (t *TUI) Wait(ctx context.Context) {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return
	}

	select {
	case <-ctx.Done():
	case <-done:
	}
}

// DisplayFileResult buffers a file's diagnostics.
func (t *TUI) DisplayFileResult(ctx context.Context, result m.FileResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	lines := renderFileResult(result)
	if len(lines) == 0 {
		return
	}

	t.emit(lines)
}

// DisplayDiff buffers a colored unified diff.
func (t *TUI) DisplayDiff(ctx context.Context, _ m.Path, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if diff == "" {
		return
	}

	t.emit(renderDiff(diff))
}

// DisplaySummary appends the summary and shows the buffered output.
func (t *TUI) DisplaySummary(ctx context.Context, summary m.Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	lines := append(t.lines, renderSummary(summary)...)
	t.lines = nil
	mode := t.mode
	t.mu.Unlock()

	width, height, isTerm := terminalSize(t.output)
	if mode == ModeWatch || !isTerm || len(lines)+reservedLines <= height {
		_, err := fmt.Fprintln(t.output, strings.Join(lines, "\n"))
		return err
	}

	model := newResultsModel(strings.Join(lines, "\n"), summaryLine(summary), width, height)
	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	done := make(chan struct{})

	t.mu.Lock()
	t.program = program
	t.done = done
	t.mu.Unlock()

	go func() {
		defer close(done)

		_, _ = program.Run()
	}()

	return nil
}

// emit prints immediately in watch mode and buffers otherwise.
func (t *TUI) emit(lines []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.mode == ModeWatch {
		_, _ = fmt.Fprintln(t.output, strings.Join(lines, "\n"))
		return
	}

	t.lines = append(t.lines, lines...)
}

func renderFileResult(result m.FileResult) []string {
	if result.Err != nil {
		return []string{pathStyle.Render(string(result.Path)), "  " + errorStyle.Render("error") + "  " + result.Err.Error(), ""}
	}

	if len(result.Diagnostics) == 0 && result.Fixed == 0 {
		return nil
	}

	lines := []string{pathStyle.Render(string(result.Path))}

	for _, d := range result.Diagnostics {
		severity := errorStyle.Render(string(d.Severity))
		if d.Severity == m.SeverityWarning {
			severity = warnStyle.Render(string(d.Severity))
		}

		lines = append(lines, fmt.Sprintf("  %s  %s  %s  %s",
			faintStyle.Render(fmt.Sprintf("%d:%d", d.Line, d.Column)),
			severity,
			d.Message,
			faintStyle.Render(d.RuleID+"/"+string(d.MessageID)),
		))
	}

	if result.Fixed > 0 {
		lines = append(lines, "  "+okStyle.Render("fixed "+plural(result.Fixed, "problem")))
	}

	return append(lines, "")
}

func renderDiff(diff string) []string {
	raw := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	lines := make([]string, 0, len(raw)+1)

	for _, line := range raw {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines = append(lines, pathStyle.Render(line))
		case strings.HasPrefix(line, "+"):
			lines = append(lines, addStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			lines = append(lines, delStyle.Render(line))
		case strings.HasPrefix(line, "@@"):
			lines = append(lines, faintStyle.Render(line))
		default:
			lines = append(lines, line)
		}
	}

	return append(lines, "")
}

func renderSummary(summary m.Summary) []string {
	lines := make([]string, 0, len(summary.ByRule)+3)

	for _, rc := range sortedRuleCounts(summary) {
		lines = append(lines, fmt.Sprintf("  %-24s %d", rc.rule, rc.count))
	}

	verdict := okStyle.Render(summaryLine(summary))
	if summary.Diagnostics > 0 {
		verdict = errorStyle.Render(summaryLine(summary))
	}

	lines = append(lines, verdict)

	if summary.Fixed > 0 {
		lines = append(lines, okStyle.Render("Fixed "+plural(summary.Fixed, "problem")))
	}

	if summary.Errors > 0 {
		lines = append(lines, warnStyle.Render(plural(summary.Errors, "file")+" could not be linted"))
	}

	return lines
}

// resultsModel is the Bubble Tea model browsing the buffered output.
type resultsModel struct {
	viewport viewport.Model
	content  string
	status   string
	quitting bool
}

func newResultsModel(content, status string, width, height int) resultsModel {
	vp := viewport.New(width, viewportHeight(height))
	vp.SetContent(content)

	return resultsModel{
		viewport: vp,
		content:  content,
		status:   status,
	}
}

func viewportHeight(height int) int {
	if h := height - reservedLines; h > 1 {
		return h
	}

	return 1
}

func (rm resultsModel) Init() tea.Cmd {
	return nil
}

func (rm resultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.viewport.Width = msg.Width
		rm.viewport.Height = viewportHeight(msg.Height)

		return rm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			rm.quitting = true
			return rm, tea.Quit
		case "g", "home":
			rm.viewport.GotoTop()
			return rm, nil
		case "G", "end":
			rm.viewport.GotoBottom()
			return rm, nil
		}
	}

	var cmd tea.Cmd
	rm.viewport, cmd = rm.viewport.Update(msg)

	return rm, cmd
}

func (rm resultsModel) View() string {
	if rm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("tsguard") + "  " + rm.status + "\n\n")
	b.WriteString(rm.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(faintStyle.Render(fmt.Sprintf("%3.f%%  ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit",
		rm.viewport.ScrollPercent()*100)))

	return b.String()
}
