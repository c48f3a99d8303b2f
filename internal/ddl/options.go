package ddl

import "github.com/deltaddl/deltaddl/internal/sanitize"

// ConstraintStyle selects how relationship constraints are emitted. The three
// variants are mutually exclusive by construction.
type ConstraintStyle string

const (
	// ConstraintAlter emits foreign keys as ALTER TABLE ADD CONSTRAINT
	// statements (informational only in Databricks).
	ConstraintAlter ConstraintStyle = "alter"
	// ConstraintComments emits relationships as SQL comments instead.
	ConstraintComments ConstraintStyle = "comments"
	// ConstraintNone omits relationship output entirely.
	ConstraintNone ConstraintStyle = "none"
)

// Options controls DDL generation.
type Options struct {
	CreateDatabase        bool            `json:"create_database" yaml:"create_database"`
	IncludeConstraintInfo bool            `json:"include_constraint_info" yaml:"include_constraint_info"`
	IncludeComments       bool            `json:"include_comments" yaml:"include_comments"`
	AddClustering         bool            `json:"add_clustering" yaml:"add_clustering"`
	UseDelta              bool            `json:"use_delta" yaml:"use_delta"`
	IncludePK             bool            `json:"include_pk" yaml:"include_pk"`
	Constraints           ConstraintStyle `json:"constraints" yaml:"constraints"`
	IncludeValidation     bool            `json:"include_validation" yaml:"include_validation"`
	SanitizeMethod        sanitize.Method `json:"sanitize_method" yaml:"sanitize_method"`
}

// DefaultOptions returns the generation defaults.
func DefaultOptions() Options {
	return Options{
		CreateDatabase:        true,
		IncludeConstraintInfo: true,
		IncludeComments:       true,
		AddClustering:         false,
		UseDelta:              true,
		IncludePK:             true,
		Constraints:           ConstraintAlter,
		IncludeValidation:     false,
		SanitizeMethod:        sanitize.MethodUnderscore,
	}
}

// StyleFromFlags maps the legacy pair of booleans onto a ConstraintStyle.
// If both are requested the ALTER form takes precedence.
func StyleFromFlags(foreignKeys, fkComments bool) ConstraintStyle {
	switch {
	case foreignKeys:
		return ConstraintAlter
	case fkComments:
		return ConstraintComments
	default:
		return ConstraintNone
	}
}

// normalized returns a copy with unset enum fields replaced by defaults so
// zero-valued option records coming from JSON/YAML behave predictably.
func (o Options) normalized() Options {
	if o.Constraints == "" {
		o.Constraints = ConstraintNone
	}
	o.SanitizeMethod = sanitize.ParseMethod(string(o.SanitizeMethod))
	return o
}
