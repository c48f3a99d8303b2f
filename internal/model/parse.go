package model

import (
	"encoding/json"
	"fmt"
)

const (
	// DefaultName names a model whose document omits the name field.
	DefaultName = "Unnamed Model"
	// ErrorName names a model whose document had the wrong shape at some
	// nesting level and was degraded to empty containers.
	ErrorName = "Error Model"
	// DefaultDataType is assumed for attributes without a declared type.
	DefaultDataType = "STRING"
)

// Parse extracts a Model from a raw model document. It fails only for
// document-level problems: input that is not valid JSON, or a root that is
// not a JSON object. Every other structural problem degrades locally: missing
// fields become typed defaults, wrong-shaped records are skipped, and a
// diagnostic is recorded on the Model.
func Parse(data []byte) (*Model, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	root, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid model: document root must be a JSON object")
	}

	m := &Model{Name: DefaultName}

	raw, present := root["model"]
	if !present {
		m.diag("document has no \"model\" key; using an empty model")
		return m, nil
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		m.Name = ErrorName
		m.diag("\"model\" is not an object; using an empty model")
		return m, nil
	}

	m.Name = getString(obj, "name", DefaultName)
	m.parseEntities(obj)
	m.parseRelationships(obj)
	return m, nil
}

func (m *Model) parseEntities(obj map[string]any) {
	list, ok := getList(obj, "entities")
	if !ok {
		m.diag("\"entities\" is missing or not a list")
		return
	}

	for i, raw := range list {
		ent, ok := raw.(map[string]any)
		if !ok {
			m.diag(fmt.Sprintf("entity %d is not an object; skipped", i))
			continue
		}

		e := Entity{
			Name:        getString(ent, "name", ""),
			Description: getString(getMap(ent, "metadata"), "Description", ""),
		}

		attrs, _ := getList(ent, "attributes")
		for j, rawAttr := range attrs {
			attr, ok := rawAttr.(map[string]any)
			if !ok {
				m.diag(fmt.Sprintf("entity %q attribute %d is not an object; skipped", e.Name, j))
				continue
			}
			meta := getMap(attr, "metadata")
			e.Attributes = append(e.Attributes, Attribute{
				Name:         getString(attr, "name", ""),
				DataType:     getString(meta, "Data type", DefaultDataType),
				IsPrimaryKey: getBool(meta, "PK"),
				IsNotNull:    getBool(meta, "Not null"),
				IsForeignKey: getBool(meta, "FK"),
				Description:  getString(meta, "description", ""),
			})
		}

		m.Entities = append(m.Entities, e)
	}
}

func (m *Model) parseRelationships(obj map[string]any) {
	list, ok := getList(obj, "relationships")
	if !ok {
		m.diag("\"relationships\" is missing or not a list")
		return
	}

	for i, raw := range list {
		rel, ok := raw.(map[string]any)
		if !ok {
			m.diag(fmt.Sprintf("relationship %d is not an object; skipped", i))
			continue
		}
		m.Relationships = append(m.Relationships, Relationship{
			Source: parseEnd(getMap(rel, "sourceEntity"), "startType"),
			Target: parseEnd(getMap(rel, "targetEntity"), "endType"),
		})
	}
}

func parseEnd(end map[string]any, cardinalityKey string) RelationshipEnd {
	e := RelationshipEnd{
		Name:        getString(end, "name", ""),
		Cardinality: getString(end, cardinalityKey, ""),
	}
	names, _ := getList(end, "attributeNames")
	for _, n := range names {
		if s, ok := n.(string); ok {
			e.AttributeNames = append(e.AttributeNames, s)
		}
	}
	return e
}

func (m *Model) diag(msg string) {
	m.Diagnostics = append(m.Diagnostics, msg)
}

// Field accessors. Every default the parser substitutes is declared here,
// once, instead of being scattered per call site.

func getString(obj map[string]any, key, def string) string {
	if obj == nil {
		return def
	}
	if s, ok := obj[key].(string); ok {
		return s
	}
	return def
}

func getBool(obj map[string]any, key string) bool {
	if obj == nil {
		return false
	}
	b, _ := obj[key].(bool)
	return b
}

func getMap(obj map[string]any, key string) map[string]any {
	if obj == nil {
		return nil
	}
	m, _ := obj[key].(map[string]any)
	return m
}

func getList(obj map[string]any, key string) ([]any, bool) {
	if obj == nil {
		return nil, false
	}
	l, ok := obj[key].([]any)
	return l, ok
}
