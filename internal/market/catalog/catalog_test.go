package catalog

import (
	"errors"
	"testing"
)

func TestParseValid(t *testing.T) {
	raw := []byte(`
- name: Cloth
  durability: 20
  baseprice: 10
  minProductionRate: -5
  maxProductionRate: 10
- name: Grain
  durability: 7
  baseprice: 6
  minProductionRate: -10
  maxProductionRate: 30
`)
	entries, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Cloth" || entries[0].Durability != 20 || entries[0].BasePrice != 10 {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].MinProductionRate != -10 || entries[1].MaxProductionRate != 30 {
		t.Errorf("unexpected production rates: %+v", entries[1])
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not yaml", `{{{`},
		{"empty", ``},
		{"missing name", "- durability: 5\n  baseprice: 10\n  maxProductionRate: 2\n"},
		{"zero durability", "- name: X\n  durability: 0\n  baseprice: 10\n  maxProductionRate: 2\n"},
		{"zero baseprice", "- name: X\n  durability: 5\n  baseprice: 0\n  maxProductionRate: 2\n"},
		{"zero max rate", "- name: X\n  durability: 5\n  baseprice: 10\n  maxProductionRate: 0\n"},
		{"min above max", "- name: X\n  durability: 5\n  baseprice: 10\n  minProductionRate: 3\n  maxProductionRate: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestDefaultCatalogParses(t *testing.T) {
	entries := Default()
	if len(entries) == 0 {
		t.Fatal("embedded catalog is empty")
	}
}
