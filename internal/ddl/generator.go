package ddl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deltaddl/deltaddl/internal/model"
	"github.com/deltaddl/deltaddl/internal/sanitize"
	"github.com/deltaddl/deltaddl/internal/typemap"
)

// Generator produces a Databricks DDL document from a parsed model. It is a
// pure function of its fields: no I/O, no shared state, safe to call from the
// CLI, the wizard, and the HTTP server alike.
type Generator struct {
	Model   *model.Model
	Options Options
	TypeMap *typemap.TypeMap // nil means typemap.Default()
}

// Result contains the generated DDL document.
type Result struct {
	DDL string
	// Warnings lists non-fatal findings, currently data types that were not
	// covered by the type mapping and passed through verbatim.
	Warnings []string
}

const constraintInfoBlock = `-- Important information about Databricks constraints:
-- 1. Primary and foreign key constraints in Databricks are informational only and not enforced
-- 2. They serve as documentation for relationships between tables
-- 3. Databricks does not automatically validate that these constraints are satisfied
-- 4. You must implement data validation in your ETL processes to maintain data integrity
-- For more information, see: https://docs.databricks.com/en/tables/constraints.html`

// Generate assembles the DDL document. Sections appear in fixed order: header
// comment, constraint info, database creation, tables, primary keys, foreign
// keys or relationship comments, validation queries. Sections are separated
// by a blank line. Entities without a name or attributes and relationships
// missing either side are skipped silently.
func (g *Generator) Generate() (*Result, error) {
	if g.Model == nil {
		return nil, errors.New("invalid model: no model document")
	}

	opts := g.Options.normalized()
	tm := g.TypeMap
	if tm == nil {
		tm = typemap.Default()
	}

	res := &Result{}
	var sections []string

	sections = append(sections, fmt.Sprintf("-- DDL for %s", g.Model.Name))
	sections = append(sections, "-- Note: In Databricks, primary key and foreign key constraints are declarative and not enforced")

	if opts.IncludeConstraintInfo {
		sections = append(sections, constraintInfoBlock)
	}

	if opts.CreateDatabase {
		db := sanitize.ConstraintPart(g.Model.Name)
		sections = append(sections, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s;", db))
		sections = append(sections, fmt.Sprintf("USE %s;", db))
	}

	for i := range g.Model.Entities {
		e := &g.Model.Entities[i]
		if !e.Emittable() {
			continue
		}
		sections = append(sections, g.tableStatement(e, tm, opts, res))
	}

	if opts.IncludePK {
		sections = append(sections, g.primaryKeySections(opts)...)
	}

	switch opts.Constraints {
	case ConstraintAlter:
		sections = append(sections, g.foreignKeySections(opts)...)
	case ConstraintComments:
		sections = append(sections, g.fkCommentSections(opts)...)
	}

	if opts.IncludeValidation {
		sections = append(sections, g.validationSections(opts)...)
	}

	res.DDL = strings.Join(sections, "\n\n")
	return res, nil
}

func (g *Generator) tableStatement(e *model.Entity, tm *typemap.TypeMap, opts Options, res *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", sanitize.Identifier(e.Name, opts.SanitizeMethod))

	cols := make([]string, 0, len(e.Attributes))
	for _, a := range e.Attributes {
		dataType, mapped := tm.Lookup(a.DataType)
		if !mapped {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("unmapped data type %q on %s.%s emitted as %s", a.DataType, e.Name, a.Name, dataType))
		}

		col := fmt.Sprintf("  %s %s", sanitize.Identifier(a.Name, opts.SanitizeMethod), dataType)
		if a.IsNotNull {
			col += " NOT NULL"
		}
		if a.Description != "" && opts.IncludeComments {
			col += fmt.Sprintf(" COMMENT '%s'", escapeComment(a.Description))
		}
		cols = append(cols, col)
	}
	b.WriteString(strings.Join(cols, ",\n"))
	b.WriteString("\n)")

	// Clustering keys on the first primary-key attribute only.
	if opts.AddClustering {
		if pk := firstPrimaryKey(e, opts.SanitizeMethod); pk != "" {
			fmt.Fprintf(&b, "\nCLUSTERED BY (%s)", pk)
		}
	}

	if e.Description != "" && opts.IncludeComments {
		fmt.Fprintf(&b, "\nCOMMENT '%s'", escapeComment(e.Description))
	}

	if opts.UseDelta {
		b.WriteString("\nUSING DELTA")
	}
	b.WriteString(";")
	return b.String()
}

func (g *Generator) primaryKeySections(opts Options) []string {
	out := []string{"-- Adding Primary Key Constraints (Informational, not enforced)"}

	for i := range g.Model.Entities {
		e := &g.Model.Entities[i]
		if !e.Emittable() {
			continue
		}

		pks := primaryKeyNames(e, opts.SanitizeMethod)
		if len(pks) == 0 {
			continue
		}

		out = append(out, fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT pk_%s PRIMARY KEY (%s);",
			sanitize.Identifier(e.Name, opts.SanitizeMethod),
			sanitize.ConstraintPart(e.Name),
			strings.Join(pks, ", ")))
	}
	return out
}

func (g *Generator) foreignKeySections(opts Options) []string {
	out := []string{"-- Adding Foreign Key Constraints (Informational, not enforced)"}
	added := dedupSet{}

	for _, r := range g.Model.Relationships {
		if !r.Complete() {
			continue
		}

		source := sanitize.Identifier(r.Source.Name, opts.SanitizeMethod)
		target := sanitize.Identifier(r.Target.Name, opts.SanitizeMethod)
		sourceCols := sanitizeAll(r.Source.AttributeNames, opts.SanitizeMethod)
		targetCols := sanitizeAll(r.Target.AttributeNames, opts.SanitizeMethod)

		if added.seen(keyFor(target, targetCols, source, sourceCols)) {
			continue
		}

		out = append(out, fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT fk_%s_%s FOREIGN KEY (%s) REFERENCES %s(%s);",
			target,
			sanitize.ConstraintPart(r.Target.Name),
			sanitize.ConstraintPart(r.Source.Name),
			strings.Join(targetCols, ", "),
			source,
			strings.Join(sourceCols, ", ")))
	}
	return out
}

// fkCommentSections renders relationships as comments, one line per
// relationship using only the first attribute pair.
func (g *Generator) fkCommentSections(opts Options) []string {
	out := []string{"-- Foreign Key Relationships (as comments)"}
	added := dedupSet{}

	for _, r := range g.Model.Relationships {
		if !r.Complete() {
			continue
		}

		source := sanitize.Identifier(r.Source.Name, opts.SanitizeMethod)
		target := sanitize.Identifier(r.Target.Name, opts.SanitizeMethod)
		sourceAttr := sanitize.Identifier(r.Source.AttributeNames[0], opts.SanitizeMethod)
		targetAttr := sanitize.Identifier(r.Target.AttributeNames[0], opts.SanitizeMethod)

		if added.seen(keyFor(target, []string{targetAttr}, source, []string{sourceAttr})) {
			continue
		}

		out = append(out, fmt.Sprintf("-- Foreign Key Relationship: %s.%s references %s.%s",
			target, targetAttr, source, sourceAttr))
	}
	return out
}

func (g *Generator) validationSections(opts Options) []string {
	out := []string{
		"-- Example data validation queries for maintaining data integrity",
		"-- These queries can help identify constraint violations that Databricks does not enforce",
	}

	// Duplicate detection per entity with a primary key.
	for i := range g.Model.Entities {
		e := &g.Model.Entities[i]
		if e.Name == "" {
			continue
		}
		pks := primaryKeyNames(e, opts.SanitizeMethod)
		if len(pks) == 0 {
			continue
		}

		name := sanitize.Identifier(e.Name, opts.SanitizeMethod)
		cols := strings.Join(pks, ", ")
		out = append(out, fmt.Sprintf(`-- Validate primary key uniqueness in %s
SELECT %s, COUNT(*) AS count
FROM %s
GROUP BY %s
HAVING COUNT(*) > 1;`, name, cols, name, cols))
	}

	// Orphan detection per single-column relationship. Composite keys are
	// not supported here.
	added := dedupSet{}
	for _, r := range g.Model.Relationships {
		if !r.Complete() {
			continue
		}
		if len(r.Source.AttributeNames) != 1 || len(r.Target.AttributeNames) != 1 {
			continue
		}

		source := sanitize.Identifier(r.Source.Name, opts.SanitizeMethod)
		target := sanitize.Identifier(r.Target.Name, opts.SanitizeMethod)
		sourceAttr := sanitize.Identifier(r.Source.AttributeNames[0], opts.SanitizeMethod)
		targetAttr := sanitize.Identifier(r.Target.AttributeNames[0], opts.SanitizeMethod)

		if added.seen(keyFor(target, []string{targetAttr}, source, []string{sourceAttr})) {
			continue
		}

		out = append(out, fmt.Sprintf(`-- Validate foreign key integrity between %s and %s
SELECT t.*
FROM %s t
LEFT JOIN %s s ON t.%s = s.%s
WHERE t.%s IS NOT NULL
  AND s.%s IS NULL;`, target, source, target, source, targetAttr, sourceAttr, targetAttr, sourceAttr))
	}

	return out
}

// OutputFilename returns the download-style filename for a model's DDL.
func OutputFilename(modelName string) string {
	return sanitize.ConstraintPart(modelName) + "_databricks_ddl.sql"
}

func primaryKeyNames(e *model.Entity, method sanitize.Method) []string {
	var pks []string
	for _, a := range e.PrimaryKeys() {
		if name := sanitize.Identifier(a.Name, method); name != "" {
			pks = append(pks, name)
		}
	}
	return pks
}

func firstPrimaryKey(e *model.Entity, method sanitize.Method) string {
	if pks := primaryKeyNames(e, method); len(pks) > 0 {
		return pks[0]
	}
	return ""
}

func sanitizeAll(names []string, method sanitize.Method) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = sanitize.Identifier(n, method)
	}
	return out
}

func escapeComment(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
