package staticcatalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProviderDefaults(t *testing.T) {
	p, err := NewProvider("")
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	farm, ok := p.Definition("farm")
	if !ok {
		t.Fatal("expected built-in farm definition")
	}
	if farm.FootprintWidth != 3 || farm.FootprintHeight != 3 {
		t.Fatalf("unexpected farm footprint: %dx%d", farm.FootprintWidth, farm.FootprintHeight)
	}
	if farm.MaxHealth != 100 || farm.ConstructionSeconds != 30 {
		t.Fatalf("unexpected farm attributes: %+v", farm)
	}

	if _, ok := p.Definition("mine"); !ok {
		t.Fatal("expected built-in mine definition")
	}
	if _, ok := p.Definition("refinery"); ok {
		t.Fatal("unexpected definition for unknown type")
	}
}

func TestProviderMissingFileUsesDefaults(t *testing.T) {
	p, err := NewProvider(t.TempDir())
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if _, ok := p.Definition("depot"); !ok {
		t.Fatal("expected defaults when catalog.json is absent")
	}
}

func TestProviderFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	raw := `[
		{"type_id": "farm", "footprint_width": 5, "footprint_height": 5, "max_health": 300, "construction_seconds": 90},
		{"type_id": "sawmill", "footprint_width": 2, "footprint_height": 3, "max_health": 80, "construction_seconds": 20}
	]`
	if err := os.WriteFile(filepath.Join(dir, "catalog.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	p, err := NewProvider(dir)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	farm, ok := p.Definition("farm")
	if !ok {
		t.Fatal("expected farm definition")
	}
	if farm.FootprintWidth != 5 || farm.MaxHealth != 300 {
		t.Fatalf("catalog file should override defaults, got %+v", farm)
	}

	if _, ok := p.Definition("sawmill"); !ok {
		t.Fatal("expected sawmill from catalog file")
	}
	if _, ok := p.Definition("mine"); !ok {
		t.Fatal("defaults not named by the file must survive")
	}
}

func TestProviderMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "catalog.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if _, err := NewProvider(dir); err == nil {
		t.Fatal("expected error for malformed catalog.json")
	}
}
