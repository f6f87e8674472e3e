package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/codeprompt/companion/internal/models"
)

func newTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "codeprompt-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	store, err := NewStorage(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	return store, tmpDir
}

func TestLoadMissingFiles(t *testing.T) {
	store, _ := newTestStorage(t)

	prompts, err := store.LoadCustomPrompts()
	if err != nil {
		t.Fatalf("Missing prompts file should not error: %v", err)
	}
	if len(prompts) != 0 {
		t.Errorf("Expected empty collection, got %d prompts", len(prompts))
	}

	favorites, err := store.LoadFavorites()
	if err != nil || len(favorites) != 0 {
		t.Errorf("Expected empty favorites, got %v (%v)", favorites, err)
	}

	record, err := store.LoadAnalytics()
	if err != nil {
		t.Fatalf("Missing analytics file should not error: %v", err)
	}
	if record.UsageCount == nil || record.LastUsed == nil || record.CategoryUsage == nil {
		t.Error("Analytics maps must be initialized")
	}

	templates, err := store.LoadTemplates()
	if err != nil || len(templates) != 0 {
		t.Errorf("Expected empty templates, got %v (%v)", templates, err)
	}
}

func TestSaveLoadCustomPrompts(t *testing.T) {
	store, _ := newTestStorage(t)

	prompts := []models.Prompt{
		{ID: "p1", Label: "One", Text: "first", Category: "css", Tags: []string{"a"}, CreatedAt: 1},
		{ID: "p2", Label: "Two", Text: "second", Category: "react", Tags: []string{}, CreatedAt: 2},
	}
	if err := store.SaveCustomPrompts(prompts); err != nil {
		t.Fatalf("Failed to save prompts: %v", err)
	}

	loaded, err := store.LoadCustomPrompts()
	if err != nil {
		t.Fatalf("Failed to load prompts: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 prompts, got %d", len(loaded))
	}
	if loaded[0].ID != "p1" || loaded[1].ID != "p2" {
		t.Error("Insertion order must be preserved")
	}
	if loaded[0].Label != "One" || loaded[0].Text != "first" {
		t.Errorf("Prompt fields not round-tripped: %+v", loaded[0])
	}
}

func TestSaveLoadFavorites(t *testing.T) {
	store, _ := newTestStorage(t)

	if err := store.SaveFavorites([]string{"p2", "p1"}); err != nil {
		t.Fatalf("Failed to save favorites: %v", err)
	}
	loaded, err := store.LoadFavorites()
	if err != nil {
		t.Fatalf("Failed to load favorites: %v", err)
	}
	if len(loaded) != 2 || loaded[0] != "p2" || loaded[1] != "p1" {
		t.Errorf("Favorites not round-tripped in order: %v", loaded)
	}
}

func TestSaveLoadAnalytics(t *testing.T) {
	store, _ := newTestStorage(t)

	record := models.NewAnalyticsRecord()
	record.UsageCount["p1"] = 3
	record.LastUsed["p1"] = 12345
	record.CategoryUsage["css"] = 3

	if err := store.SaveAnalytics(record); err != nil {
		t.Fatalf("Failed to save analytics: %v", err)
	}
	loaded, err := store.LoadAnalytics()
	if err != nil {
		t.Fatalf("Failed to load analytics: %v", err)
	}
	if loaded.UsageCount["p1"] != 3 || loaded.LastUsed["p1"] != 12345 || loaded.CategoryUsage["css"] != 3 {
		t.Errorf("Analytics not round-tripped: %+v", loaded)
	}
}

func TestCorruptFileIsAnError(t *testing.T) {
	store, tmpDir := newTestStorage(t)

	path := filepath.Join(tmpDir, "custom_prompts.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}
	if _, err := store.LoadCustomPrompts(); err == nil {
		t.Error("Corrupt file should be reported, not silently ignored")
	}
}

func TestInitLibrary(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "codeprompt-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	nested := filepath.Join(tmpDir, "deep", "library")
	store, err := NewStorage(nested)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	if err := store.InitLibrary(); err != nil {
		t.Fatalf("Failed to init library: %v", err)
	}
	if info, err := os.Stat(nested); err != nil || !info.IsDir() {
		t.Error("InitLibrary should create the data directory")
	}
	if store.GetBaseDir() != nested {
		t.Errorf("GetBaseDir mismatch: %q", store.GetBaseDir())
	}
}
