package wizard

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deltaddl/deltaddl/internal/ellie"
	"github.com/deltaddl/deltaddl/internal/model"
)

// SourceResult is returned when the source step completes.
type SourceResult struct {
	Raw    []byte
	Origin string // file path, model ID, or "sample"
}

// source modes
const (
	modeFile = iota
	modeEllie
	modeSample
	modeCount
)

// field indexes for the Ellie form
const (
	fieldModelID = iota
	fieldToken
	fieldEnvironment
	fieldCount
)

// SourceModel is the bubbletea model for the model source step. The user
// either points at a local JSON file, fetches a model from the Ellie.ai API,
// or starts from the bundled sample.
type SourceModel struct {
	mode    int
	file    textinput.Model
	inputs  []textinput.Model
	focused int

	loading   bool
	spinner   spinner.Model
	err       error
	statusMsg string

	result *SourceResult
	done   bool
	width  int
}

type sourceDoneMsg struct {
	raw    []byte
	origin string
	err    error
}

// NewSourceModel creates the source step with optional Ellie defaults from
// the configuration.
func NewSourceModel(environment, token string) SourceModel {
	file := textinput.New()
	file.Placeholder = "model.json"
	file.CharLimit = 512
	file.Focus()

	inputs := make([]textinput.Model, fieldCount)

	inputs[fieldModelID] = textinput.New()
	inputs[fieldModelID].Placeholder = "1234"
	inputs[fieldModelID].CharLimit = 64

	inputs[fieldToken] = textinput.New()
	inputs[fieldToken].Placeholder = ""
	inputs[fieldToken].EchoMode = textinput.EchoPassword
	inputs[fieldToken].EchoCharacter = '*'
	inputs[fieldToken].CharLimit = 256
	inputs[fieldToken].SetValue(token)

	inputs[fieldEnvironment] = textinput.New()
	inputs[fieldEnvironment].Placeholder = ellie.DefaultEnvironment
	inputs[fieldEnvironment].CharLimit = 128
	inputs[fieldEnvironment].SetValue(environment)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return SourceModel{
		file:    file,
		inputs:  inputs,
		spinner: s,
		width:   80,
	}
}

func (m SourceModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SourceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil // ignore input while fetching
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			m.err = fmt.Errorf("cancelled")
			return m, tea.Quit

		case "ctrl+t":
			m.mode = (m.mode + 1) % modeCount
			return m, m.updateFocus()

		case "tab", "down":
			if m.mode == modeEllie {
				m.focused = (m.focused + 1) % fieldCount
				return m, m.updateFocus()
			}
			return m, nil

		case "shift+tab", "up":
			if m.mode == modeEllie {
				m.focused--
				if m.focused < 0 {
					m.focused = fieldCount - 1
				}
				return m, m.updateFocus()
			}
			return m, nil

		case "enter":
			switch m.mode {
			case modeFile:
				return m, m.startFileLoad()
			case modeSample:
				return m, m.startSampleLoad()
			default:
				if m.focused == fieldEnvironment {
					return m, m.startFetch()
				}
				m.focused = (m.focused + 1) % fieldCount
				return m, m.updateFocus()
			}
		}

	case sourceDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.statusMsg = fmt.Sprintf("Load failed: %v", msg.err)
			return m, nil
		}
		m.result = &SourceResult{Raw: msg.raw, Origin: msg.origin}
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Update the focused text input
	if !m.loading {
		var cmd tea.Cmd
		switch m.mode {
		case modeFile:
			m.file, cmd = m.file.Update(msg)
		case modeEllie:
			m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		}
		return m, cmd
	}

	return m, nil
}

func (m SourceModel) View() string {
	var b strings.Builder

	title := titleStyle.Render("Step 1: Model Source")
	b.WriteString(title + "\n\n")

	modes := []string{"Local file", "Ellie.ai API", "Sample model"}
	var parts []string
	for i, name := range modes {
		marker := "○"
		if i == m.mode {
			marker = "●"
		}
		parts = append(parts, fmt.Sprintf("%s %s", marker, name))
	}
	b.WriteString(fmt.Sprintf("  Source: %s  (ctrl+t to toggle)\n\n", strings.Join(parts, "  ")))

	switch m.mode {
	case modeFile:
		b.WriteString("  " + dimStyle.Render(fmt.Sprintf("%-12s ", "File path")) + m.file.View() + "\n")
	case modeEllie:
		labels := []string{"Model ID", "Token", "Environment"}
		for i := 0; i < fieldCount; i++ {
			cursor := "  "
			if i == m.focused {
				cursor = highlightStyle.Render("> ")
			}
			label := dimStyle.Render(fmt.Sprintf("%-12s ", labels[i]))
			b.WriteString(cursor + label + m.inputs[i].View() + "\n")
		}
	case modeSample:
		b.WriteString(dimStyle.Render("  Use the bundled Logistics Hub example model.\n"))
	}

	b.WriteString("\n")

	if m.loading {
		b.WriteString(fmt.Sprintf("  %s Loading model...\n", m.spinner.View()))
	} else if m.err != nil {
		b.WriteString(errStyle.Render("  "+m.statusMsg) + "\n")
		b.WriteString(dimStyle.Render("  Fix the issue and press Enter to retry\n"))
	} else {
		b.WriteString(dimStyle.Render("  Press Enter to load • tab to navigate • esc to cancel\n"))
	}

	return b.String()
}

// Result returns the loaded model document, or nil if not completed.
func (m SourceModel) Result() *SourceResult {
	return m.result
}

// Done returns true if the model has finished (success or cancelled).
func (m SourceModel) Done() bool {
	return m.done
}

// Cancelled returns true if the user cancelled.
func (m SourceModel) Cancelled() bool {
	return m.done && m.result == nil
}

func (m *SourceModel) updateFocus() tea.Cmd {
	if m.mode == modeFile {
		for i := range m.inputs {
			m.inputs[i].Blur()
		}
		return m.file.Focus()
	}
	m.file.Blur()
	cmds := make([]tea.Cmd, fieldCount)
	for i := 0; i < fieldCount; i++ {
		if i == m.focused {
			cmds[i] = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

func (m *SourceModel) startFileLoad() tea.Cmd {
	path := m.file.Value()
	if path == "" {
		m.err = fmt.Errorf("file path is required")
		m.statusMsg = "Load failed: file path is required"
		return nil
	}

	m.loading = true
	m.err = nil
	m.statusMsg = ""

	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			data, err := os.ReadFile(path)
			if err != nil {
				return sourceDoneMsg{err: err}
			}
			return sourceDoneMsg{raw: data, origin: path}
		},
	)
}

func (m *SourceModel) startSampleLoad() tea.Cmd {
	return func() tea.Msg {
		return sourceDoneMsg{raw: []byte(model.SampleJSON), origin: "sample"}
	}
}

func (m *SourceModel) startFetch() tea.Cmd {
	modelID := m.inputs[fieldModelID].Value()
	token := m.inputs[fieldToken].Value()
	environment := m.inputs[fieldEnvironment].Value()

	m.loading = true
	m.err = nil
	m.statusMsg = ""

	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			client := ellie.New(environment, token)
			data, err := client.FetchModel(ctx, modelID)
			if err != nil {
				return sourceDoneMsg{err: err}
			}
			return sourceDoneMsg{raw: data, origin: modelID}
		},
	)
}

// styles
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).BorderStyle(lipgloss.DoubleBorder()).BorderBottom(true).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)
