package typemap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DeltaType represents a Databricks SQL data type.
type DeltaType string

const (
	DeltaString    DeltaType = "STRING"
	DeltaInt       DeltaType = "INT"
	DeltaBigInt    DeltaType = "BIGINT"
	DeltaSmallInt  DeltaType = "SMALLINT"
	DeltaTinyInt   DeltaType = "TINYINT"
	DeltaDouble    DeltaType = "DOUBLE"
	DeltaDecimal   DeltaType = "DECIMAL"
	DeltaBoolean   DeltaType = "BOOLEAN"
	DeltaDate      DeltaType = "DATE"
	DeltaTimestamp DeltaType = "TIMESTAMP"
)

// AllDeltaTypes lists the known target types for cycling in the wizard.
var AllDeltaTypes = []DeltaType{
	DeltaString,
	DeltaInt,
	DeltaBigInt,
	DeltaSmallInt,
	DeltaTinyInt,
	DeltaDouble,
	DeltaDecimal,
	DeltaBoolean,
	DeltaDate,
	DeltaTimestamp,
}

// TypeMap holds the mapping from source model types to Databricks types.
// Source type keys are upper-case; lookups are case-insensitive.
type TypeMap struct {
	Mappings  map[string]DeltaType `yaml:"mappings"`
	Overrides map[string]DeltaType `yaml:"overrides,omitempty"`
	defaults  map[string]DeltaType // not serialized; populated by Default
}

// Default returns the default source type mapping for Databricks.
func Default() *TypeMap {
	m := map[string]DeltaType{
		"VARCHAR":          DeltaString,
		"VARCHAR(255)":     DeltaString,
		"CHAR":             DeltaString,
		"TEXT":             DeltaString,
		"FLOAT":            DeltaDouble,
		"DOUBLE PRECISION": DeltaDouble,
		"INTEGER":          DeltaInt,
		"SMALLINT":         DeltaSmallInt,
		"TIMESTAMP":        DeltaTimestamp,
		"TIMESTAMP_TZ":     DeltaTimestamp,
		"DATE":             DeltaDate,
		"BOOLEAN":          DeltaBoolean,
		"DECIMAL":          DeltaDecimal,
		"NUMBER":           DeltaDecimal,
		"BIGINT":           DeltaBigInt,
		"TINYINT":          DeltaTinyInt,
	}

	tm := &TypeMap{
		Mappings:  m,
		Overrides: make(map[string]DeltaType),
		defaults:  make(map[string]DeltaType, len(m)),
	}
	for k, v := range m {
		tm.defaults[k] = v
	}
	return tm
}

// Lookup maps a source type to its Databricks type. The second return value
// reports whether the type was covered by the mapping table: unrecognized
// types pass through upper-cased so arbitrary tokens can still be emitted,
// and callers may warn on them.
func (tm *TypeMap) Lookup(sourceType string) (DeltaType, bool) {
	upper := strings.ToUpper(sourceType)

	if t, ok := tm.Mappings[upper]; ok {
		return t, true
	}

	// VARCHAR/CHAR with any length argument
	if strings.HasPrefix(upper, "VARCHAR(") || strings.HasPrefix(upper, "CHAR(") {
		return DeltaString, true
	}

	return DeltaType(upper), false
}

// Resolve returns the Databricks type for the given source type.
func (tm *TypeMap) Resolve(sourceType string) DeltaType {
	t, _ := tm.Lookup(sourceType)
	return t
}

// Override applies a user override for a source type.
func (tm *TypeMap) Override(sourceType string, target DeltaType) {
	key := strings.ToUpper(sourceType)
	tm.Mappings[key] = target
	if tm.Overrides == nil {
		tm.Overrides = make(map[string]DeltaType)
	}
	// Track override only if different from default
	if tm.defaults != nil {
		if def, ok := tm.defaults[key]; ok && def == target {
			delete(tm.Overrides, key)
			return
		}
	}
	tm.Overrides[key] = target
}

// RestoreDefault restores the default mapping for a source type.
func (tm *TypeMap) RestoreDefault(sourceType string) {
	key := strings.ToUpper(sourceType)
	if tm.defaults != nil {
		if def, ok := tm.defaults[key]; ok {
			tm.Mappings[key] = def
			delete(tm.Overrides, key)
		}
	}
}

// IsOverridden returns true if the source type has been overridden from its default.
func (tm *TypeMap) IsOverridden(sourceType string) bool {
	if tm.Overrides == nil {
		return false
	}
	_, ok := tm.Overrides[strings.ToUpper(sourceType)]
	return ok
}

// SortedTypes returns the source type names sorted alphabetically.
func (tm *TypeMap) SortedTypes() []string {
	types := make([]string, 0, len(tm.Mappings))
	for k := range tm.Mappings {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}

// WriteYAML writes the type mapping to a YAML file.
func (tm *TypeMap) WriteYAML(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data, err := yaml.Marshal(tm)
	if err != nil {
		return fmt.Errorf("marshaling type map: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// LoadYAML reads a type mapping from a YAML file. Loaded mappings are layered
// on top of the defaults so a partial override file is enough.
func LoadYAML(path string) (*TypeMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading type map file: %w", err)
	}

	loaded := &TypeMap{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing type map: %w", err)
	}

	tm := Default()
	for k, v := range loaded.Mappings {
		tm.Override(k, v)
	}
	for k, v := range loaded.Overrides {
		tm.Override(k, v)
	}
	return tm, nil
}
