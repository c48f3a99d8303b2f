package model

// Model is the root of a parsed physical data model. It is immutable once
// parsed; one Model serves one generation request.
type Model struct {
	Name          string
	Entities      []Entity
	Relationships []Relationship

	// Diagnostics records structural problems that were recovered from by
	// substituting defaults. Generation proceeds regardless.
	Diagnostics []string
}

// Entity is a modeled table.
type Entity struct {
	Name        string
	Description string
	Attributes  []Attribute
}

// Attribute is a modeled column.
type Attribute struct {
	Name         string
	DataType     string
	IsPrimaryKey bool
	IsNotNull    bool
	IsForeignKey bool // informational; does not drive emission
	Description  string
}

// RelationshipEnd is one side of a relationship: an entity and the ordered
// attribute names forming its half of the join key.
type RelationshipEnd struct {
	Name           string
	Cardinality    string // startType/endType, e.g. "one"/"many"; informational
	AttributeNames []string
}

// Relationship is a directed foreign-key-style link between two entities.
// Constraints always read target-references-source; cardinality is carried
// but not interpreted.
type Relationship struct {
	Source RelationshipEnd
	Target RelationshipEnd
}

// Emittable reports whether the entity produces a CREATE TABLE statement.
// Entities without a name or with zero attributes are skipped silently.
func (e *Entity) Emittable() bool {
	return e.Name != "" && len(e.Attributes) > 0
}

// PrimaryKeys returns the attributes flagged as primary key, preserving
// attribute input order.
func (e *Entity) PrimaryKeys() []Attribute {
	var pks []Attribute
	for _, a := range e.Attributes {
		if a.IsPrimaryKey {
			pks = append(pks, a)
		}
	}
	return pks
}

// Complete reports whether both sides of the relationship carry an entity
// name and at least one attribute name. Incomplete relationships are skipped
// entirely; no partial constraint is ever emitted.
func (r *Relationship) Complete() bool {
	return r.Source.Name != "" && r.Target.Name != "" &&
		len(r.Source.AttributeNames) > 0 && len(r.Target.AttributeNames) > 0
}
