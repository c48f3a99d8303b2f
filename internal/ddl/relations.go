package ddl

import (
	"strings"

	"github.com/deltaddl/deltaddl/internal/model"
)

// ForEntity returns every relationship where the entity appears as source or
// target, preserving input order.
func ForEntity(name string, relationships []model.Relationship) []model.Relationship {
	var out []model.Relationship
	for _, r := range relationships {
		if r.Source.Name == name || r.Target.Name == name {
			out = append(out, r)
		}
	}
	return out
}

// constraintKey identifies a relationship-derived statement for
// deduplication. Two relationship records with the same target entity, target
// columns, source entity, and source columns collapse to one statement.
type constraintKey struct {
	target     string
	targetCols string
	source     string
	sourceCols string
}

func keyFor(target string, targetCols []string, source string, sourceCols []string) constraintKey {
	return constraintKey{
		target:     target,
		targetCols: strings.Join(targetCols, ","),
		source:     source,
		sourceCols: strings.Join(sourceCols, ","),
	}
}

// dedupSet tracks emitted constraint keys within a single generation run.
type dedupSet map[constraintKey]struct{}

// seen records the key and reports whether it was already present.
func (d dedupSet) seen(k constraintKey) bool {
	if _, ok := d[k]; ok {
		return true
	}
	d[k] = struct{}{}
	return false
}
