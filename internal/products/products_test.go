package products

import (
	"reflect"
	"testing"
)

func TestFilterAttributes(t *testing.T) {
	allowed := []string{"size", "color"}
	attributes := []Attribute{
		{Name: "size", Value: "M"},
		{Name: "material", Value: "cotton"},
		{Name: "color", Value: "blue"},
	}

	got := filterAttributes(attributes, allowed)
	want := []Attribute{
		{Name: "size", Value: "M"},
		{Name: "color", Value: "blue"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("filterAttributes() = %v, want %v", got, want)
	}
}

func TestFilterAttributesNothingAllowed(t *testing.T) {
	attributes := []Attribute{{Name: "size", Value: "M"}}

	got := filterAttributes(attributes, nil)
	if len(got) != 0 {
		t.Errorf("expected every attribute dropped, got %v", got)
	}
	if got == nil {
		t.Error("expected an empty slice, not nil")
	}
}

func TestRestrictToCategory(t *testing.T) {
	list := []Product{
		{ID: "p1", Category: Category{ID: "c1"}},
		{ID: "p2", Category: Category{ID: "c2"}},
		{ID: "p3", Category: Category{ID: "c1"}},
	}

	got := restrictToCategory(list, "c1")
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p3" {
		t.Errorf("restrictToCategory() = %v, want products p1 and p3", got)
	}
}

func TestRestrictToGenders(t *testing.T) {
	list := []Product{
		{ID: "p1", Gender: "MEN"},
		{ID: "p2", Gender: "WOMEN"},
		{ID: "p3", Gender: "UNISEX"},
	}

	got := restrictToGenders(list, []string{"MEN", "UNISEX"})
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p3" {
		t.Errorf("restrictToGenders() = %v, want products p1 and p3", got)
	}

	// An empty gender list keeps everything.
	if got := restrictToGenders(list, nil); len(got) != 3 {
		t.Errorf("restrictToGenders(nil) = %v, want all products", got)
	}
}
