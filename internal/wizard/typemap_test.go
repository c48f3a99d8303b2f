package wizard

import (
	"strings"
	"testing"

	"github.com/deltaddl/deltaddl/internal/model"
	"github.com/deltaddl/deltaddl/internal/typemap"
)

func sampleModel(t *testing.T) *model.Model {
	t.Helper()
	m, err := model.Parse([]byte(model.SampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestTypeMapCollectsTypesInUse(t *testing.T) {
	m := NewTypeMapModel(sampleModel(t), nil)

	if len(m.types) == 0 {
		t.Fatal("expected types collected from the sample model")
	}
	for _, typ := range m.types {
		if typ != strings.ToUpper(typ) {
			t.Errorf("expected upper-cased type, got %q", typ)
		}
	}
}

func TestTypeMapCycleOverride(t *testing.T) {
	m := NewTypeMapModel(sampleModel(t), nil)
	sourceType := m.types[0]
	before := m.typeMap.Resolve(sourceType)

	updated, _ := m.Update(key("e"))
	m = updated.(TypeMapModel)

	after := m.typeMap.Resolve(sourceType)
	if before == after {
		t.Errorf("expected type to change, still %s", after)
	}
	if !m.typeMap.IsOverridden(sourceType) {
		t.Error("expected override recorded")
	}

	updated, _ = m.Update(key("d"))
	m = updated.(TypeMapModel)
	if m.typeMap.IsOverridden(sourceType) {
		t.Error("expected override cleared after restore")
	}
}

func TestTypeMapConfirmReturnsResult(t *testing.T) {
	m := NewTypeMapModel(sampleModel(t), nil)

	updated, _ := m.Update(key("enter"))
	m = updated.(TypeMapModel)

	if !m.Done() {
		t.Error("expected done after enter")
	}
	if m.Result() == nil {
		t.Error("expected a type map result")
	}
}

func TestTypeMapCancel(t *testing.T) {
	m := NewTypeMapModel(sampleModel(t), nil)

	updated, _ := m.Update(key("q"))
	m = updated.(TypeMapModel)

	if !m.Cancelled() {
		t.Error("expected cancelled after q")
	}
	if m.Result() != nil {
		t.Error("cancelled model should not report a result")
	}
}

func TestTypeMapExistingPreserved(t *testing.T) {
	tm := typemap.Default()
	tm.Override("INTEGER", typemap.DeltaBigInt)

	m := NewTypeMapModel(sampleModel(t), tm)
	if m.typeMap.Resolve("INTEGER") != typemap.DeltaBigInt {
		t.Error("expected existing override preserved")
	}
}

func TestNextDeltaTypeCycles(t *testing.T) {
	first := typemap.AllDeltaTypes[0]
	last := typemap.AllDeltaTypes[len(typemap.AllDeltaTypes)-1]

	if nextDeltaType(last) != first {
		t.Error("expected cycle to wrap around")
	}
	if nextDeltaType("NOT_A_TYPE") != first {
		t.Error("expected unknown type to restart the cycle")
	}
}

func TestTypeMapView(t *testing.T) {
	m := NewTypeMapModel(sampleModel(t), nil)

	view := m.View()
	if !strings.Contains(view, "Type Mapping Review") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, "Databricks Type") {
		t.Error("view missing column header")
	}
}
