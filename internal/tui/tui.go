// Package tui provides the interactive conflict prompt used by "fsops mv --ask" and
// "fsops cp --ask".
//
// When the destination of a move or copy already exists, ConflictPromptModel shows
// both files side by side and lets the user pick one of the six conflict policies.
// The choice is read back from the final model once the Bubble Tea program exits.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"fsops/internal/logging"
	"fsops/internal/tui/styles"
	"fsops/pkg/fileops"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
)

// PromptState is the lifecycle of a conflict prompt.
type PromptState int

const (
	StateChoosing PromptState = iota
	StateChosen
	StateCancelled
)

func (s PromptState) String() string {
	switch s {
	case StateChosen:
		return "chosen"
	case StateCancelled:
		return "cancelled"
	}
	return "choosing"
}

// FileSummary is what the prompt shows about one side of the conflict.
type FileSummary struct {
	Path    string
	Size    int64
	ModTime time.Time
	Exists  bool
}

// ConflictInfo describes a move or copy whose destination exists.
type ConflictInfo struct {
	Op          fileops.Operation
	Source      FileSummary
	Destination FileSummary
}

// DescribeConflict stats both paths on fsys. Missing files are reported with
// Exists set to false rather than as an error.
func DescribeConflict(fsys afero.Fs, op fileops.Operation, source, destination string) ConflictInfo {
	summarize := func(path string) FileSummary {
		s := FileSummary{Path: path}
		if info, err := fsys.Stat(path); err == nil {
			s.Size = info.Size()
			s.ModTime = info.ModTime()
			s.Exists = true
		}
		return s
	}
	return ConflictInfo{Op: op, Source: summarize(source), Destination: summarize(destination)}
}

// ConflictPromptModel lets the user choose a conflict policy.
type ConflictPromptModel struct {
	info   ConflictInfo
	logger *logging.AppLogger

	cursor int
	state  PromptState
	width  int
}

// NewConflictPromptModel starts with the cursor on initial.
func NewConflictPromptModel(info ConflictInfo, initial fileops.ConflictPolicy, logger *logging.AppLogger) *ConflictPromptModel {
	m := &ConflictPromptModel{info: info, logger: logger, width: 80}
	for i, p := range fileops.Policies {
		if p == initial {
			m.cursor = i
		}
	}
	return m
}

func (m *ConflictPromptModel) Init() tea.Cmd {
	return nil
}

func (m *ConflictPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.logger.LogMessage(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.state != StateChoosing {
			return m, tea.Quit
		}
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *ConflictPromptModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(fileops.Policies)-1 {
			m.cursor++
		}
	case "1", "2", "3", "4", "5", "6":
		m.cursor = int(msg.String()[0] - '1')
		return m.transition(StateChosen)
	case "enter", " ":
		return m.transition(StateChosen)
	case "esc", "q", "ctrl+c":
		return m.transition(StateCancelled)
	}
	return m, nil
}

func (m *ConflictPromptModel) transition(to PromptState) (tea.Model, tea.Cmd) {
	m.logger.LogStateTransition("ConflictPrompt", m.state.String(), to.String())
	m.state = to
	return m, tea.Quit
}

// State reports whether the user has chosen, cancelled or is still choosing.
func (m *ConflictPromptModel) State() PromptState {
	return m.state
}

// Choice returns the selected policy and whether one was chosen.
func (m *ConflictPromptModel) Choice() (fileops.ConflictPolicy, bool) {
	if m.state != StateChosen {
		return fileops.FailOnConflict, false
	}
	return fileops.Policies[m.cursor], true
}

func (m *ConflictPromptModel) View() string {
	switch m.state {
	case StateChosen:
		p, _ := m.Choice()
		return styles.SuccessStyle.Render("Using policy: "+p.String()) + "\n"
	case StateCancelled:
		return styles.ErrorStyle.Render("Cancelled, nothing was changed") + "\n"
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Destination already exists (%s)", m.info.Op)))
	b.WriteString("\n")
	b.WriteString(m.renderComparison())
	b.WriteString("\n\n")

	for i, p := range fileops.Policies {
		label := fmt.Sprintf("%d. %-10s", i+1, p.String())
		desc := styles.ItemDescriptionStyle.Render(p.Description())
		if i == m.cursor {
			b.WriteString(styles.SelectedItemStyle.Render("> "+label) + " " + desc)
		} else {
			b.WriteString(styles.NormalTextStyle.Render("  "+label) + " " + desc)
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpStyle.Render("↑/k ↓/j move • enter select • 1-6 quick pick • esc cancel"))
	return b.String()
}

func (m *ConflictPromptModel) renderComparison() string {
	pane := func(title string, f FileSummary) string {
		body := styles.PathStyle.Render(f.Path)
		if f.Exists {
			body += fmt.Sprintf("\n%d bytes\nmodified %s", f.Size, f.ModTime.Format(time.DateTime))
		} else {
			body += "\n" + styles.ErrorStyle.Render("missing")
		}
		return styles.PaneStyle.Render(styles.SubtitleStyle.Render(title) + "\n" + body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		pane("Source", m.info.Source),
		" ",
		pane("Destination", m.info.Destination),
	)
}

// RunConflictPrompt shows the prompt on the given terminal streams and returns the
// chosen policy. ok is false when the user cancelled.
func RunConflictPrompt(in io.Reader, out io.Writer, info ConflictInfo, initial fileops.ConflictPolicy, logger *logging.AppLogger) (policy fileops.ConflictPolicy, ok bool, err error) {
	start := time.Now()
	defer logger.LogPerformance("conflict prompt", start)

	model := NewConflictPromptModel(info, initial, logger)
	final, err := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return fileops.FailOnConflict, false, fmt.Errorf("conflict prompt failed: %w", err)
	}

	policy, ok = final.(*ConflictPromptModel).Choice()
	return policy, ok, nil
}
