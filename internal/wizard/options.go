package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deltaddl/deltaddl/internal/ddl"
	"github.com/deltaddl/deltaddl/internal/sanitize"
)

// option rows
const (
	optCreateDatabase = iota
	optIncludeConstraintInfo
	optIncludeComments
	optAddClustering
	optUseDelta
	optIncludePK
	optConstraints
	optIncludeValidation
	optSanitizeMethod
	optCount
)

var optionLabels = [optCount]string{
	"Create database statement",
	"Constraint information block",
	"Column and table comments",
	"Clustering on primary key",
	"USING DELTA clause",
	"Primary key constraints",
	"Relationship output",
	"Validation example queries",
	"Identifier sanitization",
}

// OptionsModel is the bubbletea model for the generation options step.
// Boolean rows toggle with space; the relationship and sanitization rows
// cycle through their variants.
type OptionsModel struct {
	opts      ddl.Options
	cursor    int
	done      bool
	cancelled bool
	width     int
}

// NewOptionsModel creates an options review model starting from the given
// options, typically the configured defaults.
func NewOptionsModel(opts ddl.Options) OptionsModel {
	return OptionsModel{
		opts:  opts,
		width: 80,
	}
}

func (m OptionsModel) Init() tea.Cmd {
	return nil
}

func (m OptionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.done = true
			m.cancelled = true
			return m, tea.Quit

		case "j", "down":
			if m.cursor < optCount-1 {
				m.cursor++
			}

		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}

		case " ", "e":
			m.toggle()

		case "enter", "f":
			m.done = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *OptionsModel) toggle() {
	switch m.cursor {
	case optCreateDatabase:
		m.opts.CreateDatabase = !m.opts.CreateDatabase
	case optIncludeConstraintInfo:
		m.opts.IncludeConstraintInfo = !m.opts.IncludeConstraintInfo
	case optIncludeComments:
		m.opts.IncludeComments = !m.opts.IncludeComments
	case optAddClustering:
		m.opts.AddClustering = !m.opts.AddClustering
	case optUseDelta:
		m.opts.UseDelta = !m.opts.UseDelta
	case optIncludePK:
		m.opts.IncludePK = !m.opts.IncludePK
	case optConstraints:
		m.opts.Constraints = nextConstraintStyle(m.opts.Constraints)
	case optIncludeValidation:
		m.opts.IncludeValidation = !m.opts.IncludeValidation
	case optSanitizeMethod:
		m.opts.SanitizeMethod = nextSanitizeMethod(m.opts.SanitizeMethod)
	}
}

func (m OptionsModel) View() string {
	var b strings.Builder

	title := titleStyle.Render("Step 3: Generation Options")
	b.WriteString(title + "\n\n")

	for i := 0; i < optCount; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = highlightStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%-30s %s\n", cursor, optionLabels[i], m.valueFor(i)))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  space toggle • enter confirm • q cancel\n"))

	return b.String()
}

func (m OptionsModel) valueFor(row int) string {
	onOff := func(v bool) string {
		if v {
			return successStyle.Render("on")
		}
		return dimStyle.Render("off")
	}

	switch row {
	case optCreateDatabase:
		return onOff(m.opts.CreateDatabase)
	case optIncludeConstraintInfo:
		return onOff(m.opts.IncludeConstraintInfo)
	case optIncludeComments:
		return onOff(m.opts.IncludeComments)
	case optAddClustering:
		return onOff(m.opts.AddClustering)
	case optUseDelta:
		return onOff(m.opts.UseDelta)
	case optIncludePK:
		return onOff(m.opts.IncludePK)
	case optConstraints:
		return string(m.opts.Constraints)
	case optIncludeValidation:
		return onOff(m.opts.IncludeValidation)
	case optSanitizeMethod:
		return string(m.opts.SanitizeMethod)
	}
	return ""
}

// Result returns the chosen options. The second return value is false if the
// user cancelled.
func (m OptionsModel) Result() (ddl.Options, bool) {
	return m.opts, !m.cancelled
}

// Done returns true if the model has finished.
func (m OptionsModel) Done() bool {
	return m.done
}

// Cancelled returns true if the user cancelled.
func (m OptionsModel) Cancelled() bool {
	return m.done && m.cancelled
}

func nextConstraintStyle(current ddl.ConstraintStyle) ddl.ConstraintStyle {
	styles := []ddl.ConstraintStyle{ddl.ConstraintAlter, ddl.ConstraintComments, ddl.ConstraintNone}
	for i, s := range styles {
		if s == current {
			return styles[(i+1)%len(styles)]
		}
	}
	return styles[0]
}

func nextSanitizeMethod(current sanitize.Method) sanitize.Method {
	methods := sanitize.AllMethods
	for i, s := range methods {
		if s == current {
			return methods[(i+1)%len(methods)]
		}
	}
	return methods[0]
}
