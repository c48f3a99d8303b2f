package wizard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSourceModeToggle(t *testing.T) {
	m := NewSourceModel("", "")

	if m.mode != modeFile {
		t.Fatalf("expected file mode initially, got %d", m.mode)
	}

	updated, _ := m.Update(key("ctrl+t"))
	m = updated.(SourceModel)
	if m.mode != modeEllie {
		t.Errorf("expected ellie mode after toggle, got %d", m.mode)
	}

	updated, _ = m.Update(key("ctrl+t"))
	m = updated.(SourceModel)
	if m.mode != modeSample {
		t.Errorf("expected sample mode after second toggle, got %d", m.mode)
	}

	updated, _ = m.Update(key("ctrl+t"))
	m = updated.(SourceModel)
	if m.mode != modeFile {
		t.Errorf("expected toggle back to file mode, got %d", m.mode)
	}
}

func TestSourceViewPerMode(t *testing.T) {
	m := NewSourceModel("", "")

	view := m.View()
	if !strings.Contains(view, "File path") {
		t.Error("file mode view missing file input")
	}

	updated, _ := m.Update(key("ctrl+t"))
	m = updated.(SourceModel)
	view = m.View()
	if !strings.Contains(view, "Model ID") || !strings.Contains(view, "Environment") {
		t.Error("ellie mode view missing form fields")
	}

	updated, _ = m.Update(key("ctrl+t"))
	m = updated.(SourceModel)
	view = m.View()
	if !strings.Contains(view, "Logistics Hub") {
		t.Error("sample mode view missing sample description")
	}
}

func TestSourceCancel(t *testing.T) {
	m := NewSourceModel("", "")

	updated, _ := m.Update(key("esc"))
	m = updated.(SourceModel)

	if !m.Cancelled() {
		t.Error("expected cancelled after esc")
	}
	if m.Result() != nil {
		t.Error("cancelled model should not report a result")
	}
}

func TestSourceFileLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(`{"model": {"name": "Test"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewSourceModel("", "")
	m.file.SetValue(path)

	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected a load command")
	}
}

func TestSourceFileLoadRequiresPath(t *testing.T) {
	m := NewSourceModel("", "")

	updated, _ := m.Update(key("enter"))
	m = updated.(SourceModel)

	if m.err == nil {
		t.Error("expected error for empty file path")
	}
	if m.Done() {
		t.Error("empty path should not finish the step")
	}
}

func TestSourceDoneMsgSuccess(t *testing.T) {
	m := NewSourceModel("", "")
	m.loading = true

	updated, _ := m.Update(sourceDoneMsg{raw: []byte(`{}`), origin: "model.json"})
	m = updated.(SourceModel)

	if !m.Done() {
		t.Error("expected done after successful load")
	}
	result := m.Result()
	if result == nil || result.Origin != "model.json" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestSourceDoneMsgError(t *testing.T) {
	m := NewSourceModel("", "")
	m.loading = true

	updated, _ := m.Update(sourceDoneMsg{err: os.ErrNotExist})
	m = updated.(SourceModel)

	if m.Done() {
		t.Error("failed load should keep the step open for retry")
	}
	if m.err == nil {
		t.Error("expected error recorded")
	}
	if !strings.Contains(m.View(), "Load failed") {
		t.Error("view missing failure message")
	}
}

func TestSourceConfigDefaultsPrefilled(t *testing.T) {
	m := NewSourceModel("app", "tok")

	if m.inputs[fieldEnvironment].Value() != "app" {
		t.Errorf("expected environment prefilled, got %q", m.inputs[fieldEnvironment].Value())
	}
	if m.inputs[fieldToken].Value() != "tok" {
		t.Errorf("expected token prefilled, got %q", m.inputs[fieldToken].Value())
	}
}

func TestSourceIgnoresKeysWhileLoading(t *testing.T) {
	m := NewSourceModel("", "")
	m.loading = true

	updated, _ := m.Update(key("ctrl+t"))
	m = updated.(SourceModel)
	if m.mode != modeFile {
		t.Error("mode should not change while loading")
	}
}
