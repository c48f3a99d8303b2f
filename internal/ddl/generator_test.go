package ddl

import (
	"strings"
	"testing"

	"github.com/deltaddl/deltaddl/internal/model"
	"github.com/deltaddl/deltaddl/internal/sanitize"
)

func customerOrderModel() *model.Model {
	return &model.Model{
		Name: "Logistics Hub",
		Entities: []model.Entity{
			{
				Name:        "Customer",
				Description: "Customer information",
				Attributes: []model.Attribute{
					{Name: "customer_id", DataType: "BIGINT", IsPrimaryKey: true, IsNotNull: true},
					{Name: "customer_name", DataType: "VARCHAR", IsNotNull: true},
				},
			},
			{
				Name: "Order",
				Attributes: []model.Attribute{
					{Name: "order_id", DataType: "BIGINT", IsPrimaryKey: true},
					{Name: "customer_id", DataType: "BIGINT", IsForeignKey: true},
				},
			},
		},
		Relationships: []model.Relationship{
			{
				Source: model.RelationshipEnd{Name: "Customer", Cardinality: "one", AttributeNames: []string{"customer_id"}},
				Target: model.RelationshipEnd{Name: "Order", Cardinality: "many", AttributeNames: []string{"customer_id"}},
			},
		},
	}
}

func generate(t *testing.T, m *model.Model, opts Options) string {
	t.Helper()
	g := &Generator{Model: m, Options: opts}
	res, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return res.DDL
}

func TestGenerateTableStatement(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeComments = false
	ddl := generate(t, customerOrderModel(), opts)

	want := "CREATE TABLE IF NOT EXISTS Customer (\n" +
		"  customer_id BIGINT NOT NULL,\n" +
		"  customer_name STRING NOT NULL\n" +
		")\n" +
		"USING DELTA;"
	if !strings.Contains(ddl, want) {
		t.Errorf("missing table statement.\nwant:\n%s\ngot:\n%s", want, ddl)
	}
}

func TestGenerateSectionOrder(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeValidation = true
	ddl := generate(t, customerOrderModel(), opts)

	markers := []string{
		"-- DDL for Logistics Hub",
		"-- Important information about Databricks constraints:",
		"CREATE DATABASE IF NOT EXISTS logistics_hub;",
		"USE logistics_hub;",
		"CREATE TABLE IF NOT EXISTS Customer",
		"CREATE TABLE IF NOT EXISTS Order",
		"-- Adding Primary Key Constraints",
		"ALTER TABLE Customer ADD CONSTRAINT pk_customer PRIMARY KEY (customer_id);",
		"-- Adding Foreign Key Constraints",
		"ALTER TABLE Order ADD CONSTRAINT fk_order_customer FOREIGN KEY (customer_id) REFERENCES Customer(customer_id);",
		"-- Example data validation queries",
		"-- Validate primary key uniqueness in Customer",
		"-- Validate foreign key integrity between Order and Customer",
	}

	last := -1
	for _, m := range markers {
		idx := strings.Index(ddl, m)
		if idx < 0 {
			t.Fatalf("missing %q in output:\n%s", m, ddl)
		}
		if idx < last {
			t.Errorf("%q appears out of order", m)
		}
		last = idx
	}
}

func TestGenerateSectionsSeparatedByBlankLine(t *testing.T) {
	ddl := generate(t, customerOrderModel(), DefaultOptions())
	if !strings.Contains(ddl, "USE logistics_hub;\n\nCREATE TABLE") {
		t.Error("sections should be separated by a blank line")
	}
}

func TestUnderscoreSanitization(t *testing.T) {
	m := &model.Model{
		Name: "M",
		Entities: []model.Entity{{
			Name:       "Address Book",
			Attributes: []model.Attribute{{Name: "Address ID", DataType: "BIGINT"}},
		}},
	}

	opts := DefaultOptions()
	ddl := generate(t, m, opts)

	if !strings.Contains(ddl, "CREATE TABLE IF NOT EXISTS Address_Book") {
		t.Error("table name should have underscores")
	}
	if !strings.Contains(ddl, "  Address_ID BIGINT") {
		t.Error("column name should be Address_ID with case preserved")
	}
}

func TestBacktickSanitization(t *testing.T) {
	m := &model.Model{
		Name: "M",
		Entities: []model.Entity{{
			Name:       "Address Book",
			Attributes: []model.Attribute{{Name: "Address ID", DataType: "BIGINT"}},
		}},
	}

	opts := DefaultOptions()
	opts.SanitizeMethod = sanitize.MethodBacktick
	ddl := generate(t, m, opts)

	if !strings.Contains(ddl, "CREATE TABLE IF NOT EXISTS `Address Book`") {
		t.Error("table name should be backtick-quoted verbatim")
	}
	if !strings.Contains(ddl, "  `Address ID` BIGINT") {
		t.Error("column name should be backtick-quoted verbatim")
	}
}

func TestForeignKeyDeduplication(t *testing.T) {
	m := customerOrderModel()
	// Same constraint twice, distinct records.
	m.Relationships = append(m.Relationships, m.Relationships[0])

	ddl := generate(t, m, DefaultOptions())

	stmt := "ALTER TABLE Order ADD CONSTRAINT fk_order_customer"
	if got := strings.Count(ddl, stmt); got != 1 {
		t.Errorf("expected exactly 1 FK statement, got %d", got)
	}
}

func TestIncompleteRelationshipSkipped(t *testing.T) {
	m := customerOrderModel()
	m.Relationships = []model.Relationship{
		{
			Source: model.RelationshipEnd{Name: "Customer"},
			Target: model.RelationshipEnd{Name: "Order", AttributeNames: []string{"customer_id"}},
		},
	}

	ddl := generate(t, m, DefaultOptions())
	if strings.Contains(ddl, "FOREIGN KEY") {
		t.Error("incomplete relationship must not produce a constraint")
	}
}

func TestEntityWithoutAttributesSkipped(t *testing.T) {
	m := customerOrderModel()
	m.Entities = append(m.Entities, model.Entity{Name: "Ghost"})
	m.Entities = append(m.Entities, model.Entity{Attributes: []model.Attribute{{Name: "x"}}})

	ddl := generate(t, m, DefaultOptions())
	if strings.Contains(ddl, "Ghost") {
		t.Error("entity without attributes should not appear in output")
	}
}

func TestConstraintCommentsForm(t *testing.T) {
	opts := DefaultOptions()
	opts.Constraints = ConstraintComments
	ddl := generate(t, customerOrderModel(), opts)

	if strings.Contains(ddl, "FOREIGN KEY") {
		t.Error("comments form must not emit ALTER statements")
	}
	want := "-- Foreign Key Relationship: Order.customer_id references Customer.customer_id"
	if !strings.Contains(ddl, want) {
		t.Errorf("missing relationship comment:\n%s", ddl)
	}
}

func TestConstraintNone(t *testing.T) {
	opts := DefaultOptions()
	opts.Constraints = ConstraintNone
	ddl := generate(t, customerOrderModel(), opts)

	if strings.Contains(ddl, "FOREIGN KEY") || strings.Contains(ddl, "Foreign Key Relationship:") {
		t.Error("none form must not emit any relationship output")
	}
}

func TestStyleFromFlags(t *testing.T) {
	if StyleFromFlags(true, true) != ConstraintAlter {
		t.Error("alter takes precedence when both flags are set")
	}
	if StyleFromFlags(false, true) != ConstraintComments {
		t.Error("comments when only fk comments requested")
	}
	if StyleFromFlags(false, false) != ConstraintNone {
		t.Error("none when neither requested")
	}
}

func TestEmptyModelStillHasHeader(t *testing.T) {
	m := &model.Model{Name: model.DefaultName}
	ddl := generate(t, m, DefaultOptions())

	if !strings.Contains(ddl, "-- DDL for Unnamed Model") {
		t.Error("header missing for empty model")
	}
	if !strings.Contains(ddl, "-- Important information about Databricks constraints:") {
		t.Error("constraint info block missing for empty model")
	}
	if strings.Contains(ddl, "CREATE TABLE") {
		t.Error("empty model must not emit tables")
	}
}

func TestNilModelIsAnError(t *testing.T) {
	g := &Generator{Options: DefaultOptions()}
	if _, err := g.Generate(); err == nil {
		t.Fatal("expected error for nil model")
	}
}

func TestClusteringUsesFirstPrimaryKeyOnly(t *testing.T) {
	m := &model.Model{
		Name: "M",
		Entities: []model.Entity{{
			Name: "T",
			Attributes: []model.Attribute{
				{Name: "a", DataType: "BIGINT", IsPrimaryKey: true},
				{Name: "b", DataType: "BIGINT", IsPrimaryKey: true},
			},
		}},
	}

	opts := DefaultOptions()
	opts.AddClustering = true
	ddl := generate(t, m, opts)

	if !strings.Contains(ddl, "CLUSTERED BY (a)") {
		t.Error("expected clustering on first primary key")
	}
	if strings.Contains(ddl, "CLUSTERED BY (a, b)") {
		t.Error("clustering must not include the full composite key")
	}
	// The PK constraint itself still carries both columns.
	if !strings.Contains(ddl, "PRIMARY KEY (a, b);") {
		t.Error("composite primary key should keep attribute order")
	}
}

func TestCommentEscaping(t *testing.T) {
	m := &model.Model{
		Name: "M",
		Entities: []model.Entity{{
			Name:        "T",
			Description: "the 'main' table",
			Attributes: []model.Attribute{
				{Name: "c", DataType: "TEXT", Description: "it's a column"},
			},
		}},
	}

	ddl := generate(t, m, DefaultOptions())

	if !strings.Contains(ddl, "COMMENT 'it''s a column'") {
		t.Error("single quotes in column descriptions should be doubled")
	}
	if !strings.Contains(ddl, "COMMENT 'the ''main'' table'") {
		t.Error("single quotes in table descriptions should be doubled")
	}
}

func TestCommentsDisabled(t *testing.T) {
	m := &model.Model{
		Name: "M",
		Entities: []model.Entity{{
			Name:        "T",
			Description: "desc",
			Attributes:  []model.Attribute{{Name: "c", DataType: "TEXT", Description: "col desc"}},
		}},
	}

	opts := DefaultOptions()
	opts.IncludeComments = false
	ddl := generate(t, m, opts)

	if strings.Contains(ddl, "COMMENT") {
		t.Error("no COMMENT clauses expected when comments are disabled")
	}
}

func TestVarcharLengthMapsToString(t *testing.T) {
	m := &model.Model{
		Name: "M",
		Entities: []model.Entity{{
			Name:       "T",
			Attributes: []model.Attribute{{Name: "c", DataType: "varchar(100)"}},
		}},
	}

	ddl := generate(t, m, DefaultOptions())
	if !strings.Contains(ddl, "  c STRING") {
		t.Errorf("varchar(100) should map to STRING:\n%s", ddl)
	}
}

func TestUnmappedTypeWarning(t *testing.T) {
	m := &model.Model{
		Name: "M",
		Entities: []model.Entity{{
			Name:       "T",
			Attributes: []model.Attribute{{Name: "shape", DataType: "geometry"}},
		}},
	}

	g := &Generator{Model: m, Options: DefaultOptions()}
	res, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(res.DDL, "  shape GEOMETRY") {
		t.Error("unmapped type should pass through upper-cased")
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(res.Warnings))
	}
	if !strings.Contains(res.Warnings[0], "geometry") {
		t.Errorf("warning should name the source type: %s", res.Warnings[0])
	}
}

func TestValidationSkipsCompositeRelationships(t *testing.T) {
	m := customerOrderModel()
	m.Relationships = []model.Relationship{{
		Source: model.RelationshipEnd{Name: "Customer", AttributeNames: []string{"a", "b"}},
		Target: model.RelationshipEnd{Name: "Order", AttributeNames: []string{"a", "b"}},
	}}

	opts := DefaultOptions()
	opts.IncludeValidation = true
	ddl := generate(t, m, opts)

	if strings.Contains(ddl, "LEFT JOIN") {
		t.Error("composite-key relationships should not produce orphan queries")
	}
}

func TestValidationQueries(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeValidation = true
	ddl := generate(t, customerOrderModel(), opts)

	pk := "SELECT customer_id, COUNT(*) AS count\nFROM Customer\nGROUP BY customer_id\nHAVING COUNT(*) > 1;"
	if !strings.Contains(ddl, pk) {
		t.Errorf("missing duplicate-detection query:\n%s", ddl)
	}

	orphan := "LEFT JOIN Customer s ON t.customer_id = s.customer_id"
	if !strings.Contains(ddl, orphan) {
		t.Errorf("missing orphan-detection query:\n%s", ddl)
	}
}

func TestOutputFilename(t *testing.T) {
	if got := OutputFilename("Logistics Hub"); got != "logistics_hub_databricks_ddl.sql" {
		t.Errorf("OutputFilename = %q", got)
	}
}
