package registry

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/stuttgart-things/banner/internal/palette"
)

func TestLoadAndSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.Join("/home/user/.config/banner", "palettes.yaml")

	// Create a registry, save it, reload it
	reg := NewRegistry()
	if err := AddEntry(reg, PaletteEntry{
		Name:        "Sunset",
		Colors:      []string{"#ff5f6d", "#ffc371"},
		Description: "warm evening",
	}); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	if err := Save(fs, path, reg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(fs, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(loaded.Palettes) != 1 {
		t.Fatalf("expected 1 palette, got %d", len(loaded.Palettes))
	}
	if loaded.Palettes[0].Name != "sunset" {
		t.Errorf("expected name sunset, got %s", loaded.Palettes[0].Name)
	}
	if loaded.Palettes[0].Description != "warm evening" {
		t.Errorf("expected description to survive, got %q", loaded.Palettes[0].Description)
	}
	if loaded.APIVersion != DefaultAPIVersion {
		t.Errorf("expected apiVersion %s, got %s", DefaultAPIVersion, loaded.APIVersion)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nonexistent/palettes.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadOrNew(t *testing.T) {
	reg, err := LoadOrNew(afero.NewMemMapFs(), "/nonexistent/palettes.yaml")
	if err != nil {
		t.Fatalf("LoadOrNew: %v", err)
	}
	if reg.Kind != DefaultKind || len(reg.Palettes) != 0 {
		t.Errorf("expected empty registry, got %+v", reg)
	}
}

func TestLoadMalformed(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/p.yaml", []byte("palettes: {"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrNew(fs, "/p.yaml"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestAddEntryReplace(t *testing.T) {
	reg := NewRegistry()
	_ = AddEntry(reg, PaletteEntry{Name: "a", Colors: []string{"red"}})
	_ = AddEntry(reg, PaletteEntry{Name: "A", Colors: []string{"blue", "green"}})

	if len(reg.Palettes) != 1 {
		t.Fatalf("expected 1 palette after replace, got %d", len(reg.Palettes))
	}
	if len(reg.Palettes[0].Colors) != 2 {
		t.Errorf("expected replaced colors, got %v", reg.Palettes[0].Colors)
	}
}

func TestAddEntryRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		entry PaletteEntry
	}{
		{"empty name", PaletteEntry{Name: " ", Colors: []string{"red"}}},
		{"no colors", PaletteEntry{Name: "x"}},
		{"bad color", PaletteEntry{Name: "x", Colors: []string{"#12345g"}}},
	}

	for _, tt := range tests {
		reg := NewRegistry()
		if err := AddEntry(reg, tt.entry); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
		if len(reg.Palettes) != 0 {
			t.Errorf("%s: registry changed on error", tt.name)
		}
	}
}

func TestRemoveEntry(t *testing.T) {
	reg := NewRegistry()
	_ = AddEntry(reg, PaletteEntry{Name: "a", Colors: []string{"red"}})
	_ = AddEntry(reg, PaletteEntry{Name: "b", Colors: []string{"red"}})

	if err := RemoveEntry(reg, "a"); err != nil {
		t.Fatalf("RemoveEntry: %v", err)
	}
	if len(reg.Palettes) != 1 {
		t.Fatalf("expected 1 palette, got %d", len(reg.Palettes))
	}
	if reg.Palettes[0].Name != "b" {
		t.Errorf("expected b, got %s", reg.Palettes[0].Name)
	}
}

func TestRemoveEntryNotFound(t *testing.T) {
	reg := NewRegistry()
	if err := RemoveEntry(reg, "nonexistent"); err == nil {
		t.Fatal("expected error for missing entry")
	}
}

func TestFindEntry(t *testing.T) {
	reg := NewRegistry()
	_ = AddEntry(reg, PaletteEntry{Name: "a", Colors: []string{"red"}, Description: "d"})

	found := FindEntry(reg, "A")
	if found == nil {
		t.Fatal("expected to find entry")
	}
	if found.Description != "d" {
		t.Errorf("expected description d, got %s", found.Description)
	}

	if FindEntry(reg, "missing") != nil {
		t.Error("expected nil for missing entry")
	}
}

func TestApply(t *testing.T) {
	reg := NewRegistry()
	_ = AddEntry(reg, PaletteEntry{Name: "mine", Colors: []string{"#010203", "#040506"}})
	_ = AddEntry(reg, PaletteEntry{Name: "neon", Colors: []string{"#000000"}})

	table := palette.NewTable()
	if err := Apply(reg, table); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	stops, err := table.Lookup("mine")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got := stops.Hex(); len(got) != 2 || got[0] != "#010203" {
		t.Errorf("unexpected stops %v", got)
	}

	neon, _ := table.Lookup("neon")
	if len(neon) != 1 {
		t.Errorf("expected user palette to shadow builtin, got %v", neon.Hex())
	}
}

func TestSaveCreatesDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.Join("/a", "sub", "palettes.yaml")

	if err := Save(fs, path, NewRegistry()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if ok, _ := afero.Exists(fs, path); !ok {
		t.Fatal("expected file to exist")
	}
}
