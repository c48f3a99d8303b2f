package wizard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deltaddl/deltaddl/internal/config"
	"github.com/deltaddl/deltaddl/internal/ddl"
	"github.com/deltaddl/deltaddl/internal/model"
	"github.com/deltaddl/deltaddl/internal/typemap"
)

// Wizard orchestrates the interactive generation flow: model source, type
// mapping review, generation options, then DDL output.
type Wizard struct {
	cfg *config.Config

	// Accumulated data
	raw     []byte
	origin  string
	model   *model.Model
	typeMap *typemap.TypeMap
	opts    ddl.Options
}

// New creates a new Wizard. The config may be nil, in which case built-in
// defaults apply.
func New(cfg *config.Config) *Wizard {
	return &Wizard{cfg: cfg}
}

// Run executes the wizard steps in order and writes the generated DDL file.
func (w *Wizard) Run() error {
	if err := w.runSource(); err != nil {
		return err
	}
	if err := w.runTypeMapping(); err != nil {
		return err
	}
	if err := w.runOptions(); err != nil {
		return err
	}
	return w.generate()
}

func (w *Wizard) runSource() error {
	var environment, token string
	if w.cfg != nil {
		environment = w.cfg.Ellie.Environment
		token = w.cfg.Ellie.Token
	}

	m := NewSourceModel(environment, token)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running source step: %w", err)
	}

	sm := finalModel.(SourceModel)
	if sm.Cancelled() {
		return fmt.Errorf("cancelled")
	}

	result := sm.Result()
	if result == nil {
		return fmt.Errorf("no model loaded")
	}

	w.raw = result.Raw
	w.origin = result.Origin

	parsed, err := model.Parse(w.raw)
	if err != nil {
		return fmt.Errorf("parsing model: %w", err)
	}
	w.model = parsed

	for _, d := range parsed.Diagnostics {
		fmt.Printf("  warning: %s\n", d)
	}
	fmt.Printf("\nLoaded %q: %d entities, %d relationships.\n\n",
		parsed.Name, len(parsed.Entities), len(parsed.Relationships))
	return nil
}

func (w *Wizard) runTypeMapping() error {
	// Load a saved type map if one is configured.
	var existing *typemap.TypeMap
	if w.cfg != nil && w.cfg.Output.TypeMapPath != "" {
		tm, err := typemap.LoadYAML(config.ExpandHome(w.cfg.Output.TypeMapPath))
		if err == nil {
			existing = tm
		}
	}

	m := NewTypeMapModel(w.model, existing)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running type mapping review: %w", err)
	}

	tmm := finalModel.(TypeMapModel)
	if tmm.Cancelled() {
		return fmt.Errorf("cancelled")
	}

	result := tmm.Result()
	if result == nil {
		return fmt.Errorf("no type mapping result")
	}
	w.typeMap = result

	// Persist overrides so the next run starts from them.
	if w.cfg != nil && w.cfg.Output.TypeMapPath != "" {
		path := config.ExpandHome(w.cfg.Output.TypeMapPath)
		if err := result.WriteYAML(path); err != nil {
			return fmt.Errorf("saving type mapping: %w", err)
		}
	}
	return nil
}

func (w *Wizard) runOptions() error {
	base := ddl.DefaultOptions()
	if w.cfg != nil {
		base = w.cfg.Options()
	}

	m := NewOptionsModel(base)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running options step: %w", err)
	}

	om := finalModel.(OptionsModel)
	if om.Cancelled() {
		return fmt.Errorf("cancelled")
	}

	opts, ok := om.Result()
	if !ok {
		return fmt.Errorf("no options result")
	}
	w.opts = opts
	return nil
}

func (w *Wizard) generate() error {
	gen := ddl.Generator{
		Model:   w.model,
		Options: w.opts,
		TypeMap: w.typeMap,
	}
	res, err := gen.Generate()
	if err != nil {
		return fmt.Errorf("generating DDL: %w", err)
	}

	outDir := "output"
	if w.cfg != nil && w.cfg.Output.Directory != "" {
		outDir = w.cfg.Output.Directory
	}
	outDir = config.ExpandHome(outDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outDir, ddl.OutputFilename(w.model.Name))
	if err := os.WriteFile(path, []byte(res.DDL), 0o644); err != nil {
		return fmt.Errorf("writing DDL file: %w", err)
	}

	for _, warn := range res.Warnings {
		fmt.Println("  " + errStyle.Render("warning: "+warn))
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("\nDDL written to %s (%d lines).", path, strings.Count(res.DDL, "\n")+1)))
	return nil
}
