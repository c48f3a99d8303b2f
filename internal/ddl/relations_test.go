package ddl

import (
	"testing"

	"github.com/deltaddl/deltaddl/internal/model"
)

func TestForEntity(t *testing.T) {
	rels := []model.Relationship{
		{
			Source: model.RelationshipEnd{Name: "Customer", AttributeNames: []string{"customer_id"}},
			Target: model.RelationshipEnd{Name: "Order", AttributeNames: []string{"customer_id"}},
		},
		{
			Source: model.RelationshipEnd{Name: "Order", AttributeNames: []string{"order_id"}},
			Target: model.RelationshipEnd{Name: "OrderLine", AttributeNames: []string{"order_id"}},
		},
		{
			Source: model.RelationshipEnd{Name: "Product", AttributeNames: []string{"product_id"}},
			Target: model.RelationshipEnd{Name: "OrderLine", AttributeNames: []string{"product_id"}},
		},
	}

	got := ForEntity("Order", rels)
	if len(got) != 2 {
		t.Fatalf("expected 2 relationships for Order, got %d", len(got))
	}
	// Input order preserved.
	if got[0].Target.Name != "Order" || got[1].Source.Name != "Order" {
		t.Error("relationships out of input order")
	}

	if got := ForEntity("Warehouse", rels); len(got) != 0 {
		t.Errorf("expected no relationships for Warehouse, got %d", len(got))
	}
}

func TestDedupSet(t *testing.T) {
	d := dedupSet{}

	k1 := keyFor("Order", []string{"customer_id"}, "Customer", []string{"customer_id"})
	if d.seen(k1) {
		t.Error("first occurrence should not be seen")
	}
	if !d.seen(k1) {
		t.Error("second occurrence should be seen")
	}

	// Different column set is a different key.
	k2 := keyFor("Order", []string{"cust_id"}, "Customer", []string{"customer_id"})
	if d.seen(k2) {
		t.Error("different columns should produce a distinct key")
	}

	// Swapped direction is a different key.
	k3 := keyFor("Customer", []string{"customer_id"}, "Order", []string{"customer_id"})
	if d.seen(k3) {
		t.Error("reversed direction should produce a distinct key")
	}
}

func TestKeyForJoinsColumns(t *testing.T) {
	a := keyFor("T", []string{"a", "b"}, "S", []string{"c"})
	b := keyFor("T", []string{"a,b"}, "S", []string{"c"})
	// Composite columns are joined with a comma before keying, matching the
	// upstream constraint identity format.
	if a != b {
		t.Error("expected comma-joined column keys to match")
	}
}
