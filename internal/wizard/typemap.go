package wizard

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deltaddl/deltaddl/internal/model"
	"github.com/deltaddl/deltaddl/internal/typemap"
)

// TypeMapModel is the bubbletea model for the type mapping review step.
type TypeMapModel struct {
	typeMap   *typemap.TypeMap
	types     []string // source types actually in use, sorted
	cursor    int
	done      bool
	cancelled bool
	width     int
	height    int
}

// NewTypeMapModel creates a type mapping review model. It scans the parsed
// model for data types actually in use so the review only shows what matters.
func NewTypeMapModel(m *model.Model, existing *typemap.TypeMap) TypeMapModel {
	tm := existing
	if tm == nil {
		tm = typemap.Default()
	}

	typeSet := make(map[string]bool)
	for _, e := range m.Entities {
		for _, a := range e.Attributes {
			typeSet[strings.ToUpper(a.DataType)] = true
		}
	}

	types := make([]string, 0, len(typeSet))
	for typ := range typeSet {
		types = append(types, typ)
	}
	sort.Strings(types)

	return TypeMapModel{
		typeMap: tm,
		types:   types,
		width:   100,
		height:  24,
	}
}

func (m TypeMapModel) Init() tea.Cmd {
	return nil
}

func (m TypeMapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if len(m.types) == 0 {
			switch msg.String() {
			case "enter", "f":
				m.done = true
				return m, tea.Quit
			case "q", "esc", "ctrl+c":
				m.done = true
				m.cancelled = true
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.done = true
			m.cancelled = true
			return m, tea.Quit

		case "j", "down":
			if m.cursor < len(m.types)-1 {
				m.cursor++
			}

		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}

		case "e": // edit: cycle through Databricks types
			if m.cursor < len(m.types) {
				sourceType := m.types[m.cursor]
				current := m.typeMap.Resolve(sourceType)
				next := nextDeltaType(current)
				m.typeMap.Override(sourceType, next)
			}

		case "d": // restore default
			if m.cursor < len(m.types) {
				sourceType := m.types[m.cursor]
				m.typeMap.RestoreDefault(sourceType)
			}

		case "enter", "f":
			m.done = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m TypeMapModel) View() string {
	var b strings.Builder

	title := titleStyle.Render("Step 2: Type Mapping Review")
	b.WriteString(title + "\n\n")

	if len(m.types) == 0 {
		b.WriteString("  No typed attributes found in the model.\n\n")
		b.WriteString(dimStyle.Render("  Press enter to confirm • q to cancel\n"))
		return b.String()
	}

	// Header
	b.WriteString(fmt.Sprintf("  %-30s %-16s %s\n", "Source Type", "Databricks Type", "Status"))
	b.WriteString("  " + strings.Repeat("─", 60) + "\n")

	// Visible window
	maxVisible := m.height - 10
	if maxVisible < 5 {
		maxVisible = 5
	}
	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := start + maxVisible
	if end > len(m.types) {
		end = len(m.types)
	}

	for i := start; i < end; i++ {
		sourceType := m.types[i]
		deltaType := m.typeMap.Resolve(sourceType)

		cursor := "  "
		if i == m.cursor {
			cursor = highlightStyle.Render("> ")
		}

		status := dimStyle.Render("default")
		if m.typeMap.IsOverridden(sourceType) {
			status = successStyle.Render("override ★")
		}

		b.WriteString(fmt.Sprintf("%s%-30s %-16s %s\n",
			cursor, sourceType, string(deltaType), status))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  e edit • d restore default • enter confirm • q cancel\n"))

	return b.String()
}

// Result returns the type mapping.
func (m TypeMapModel) Result() *typemap.TypeMap {
	if m.cancelled {
		return nil
	}
	return m.typeMap
}

// Done returns true if the model has finished.
func (m TypeMapModel) Done() bool {
	return m.done
}

// Cancelled returns true if the user cancelled.
func (m TypeMapModel) Cancelled() bool {
	return m.done && m.cancelled
}

// nextDeltaType returns the next Databricks type in the cycle.
func nextDeltaType(current typemap.DeltaType) typemap.DeltaType {
	types := typemap.AllDeltaTypes
	for i, t := range types {
		if t == current {
			return types[(i+1)%len(types)]
		}
	}
	return types[0]
}
