package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/codeprompt/companion/internal/models"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Missing config file should not error: %v", err)
	}
	if !cfg.Features.Favorites || !cfg.Features.Analytics || !cfg.Features.Templates || !cfg.Features.Search {
		t.Error("All features should default to enabled")
	}
	if cfg.SortOrder != models.SortAlphabetical {
		t.Errorf("Default sort order should be alphabetical, got %q", cfg.SortOrder)
	}
	if cfg.Templates.MaxTemplates != 100 || cfg.Templates.AllowDuplicates {
		t.Errorf("Unexpected template defaults: %+v", cfg.Templates)
	}
	if cfg.MaxHistoryItems != 10 {
		t.Errorf("Default history size should be 10, got %d", cfg.MaxHistoryItems)
	}
}

func TestLoadOverrides(t *testing.T) {
	tmpDir := t.TempDir()

	content := `
features:
  favorites: true
  analytics: false
  templates: true
  search: true
sortOrder: mostUsed
analytics:
  trackUsage: false
  storeDuration: 7
templates:
  maxTemplates: 5
  allowDuplicates: true
maxHistoryItems: 3
`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Features.Analytics {
		t.Error("Analytics feature should be disabled")
	}
	if cfg.SortOrder != models.SortMostUsed {
		t.Errorf("Expected mostUsed sort order, got %q", cfg.SortOrder)
	}
	if cfg.Analytics.TrackUsage || cfg.Analytics.StoreDuration != 7 {
		t.Errorf("Unexpected analytics settings: %+v", cfg.Analytics)
	}
	if cfg.Templates.MaxTemplates != 5 || !cfg.Templates.AllowDuplicates {
		t.Errorf("Unexpected template settings: %+v", cfg.Templates)
	}
	if cfg.MaxHistoryItems != 3 {
		t.Errorf("Expected history size 3, got %d", cfg.MaxHistoryItems)
	}
}

func TestLoadNormalizesBadValues(t *testing.T) {
	tmpDir := t.TempDir()

	content := `
sortOrder: backwards
maxHistoryItems: -1
templates:
  maxTemplates: 0
`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.SortOrder != models.SortAlphabetical {
		t.Errorf("Bad sort order should fall back to alphabetical, got %q", cfg.SortOrder)
	}
	if cfg.MaxHistoryItems != 10 {
		t.Errorf("Non-positive history size should be repaired, got %d", cfg.MaxHistoryItems)
	}
	if cfg.Templates.MaxTemplates != 100 {
		t.Errorf("Non-positive template cap should be repaired, got %d", cfg.Templates.MaxTemplates)
	}
}

func TestLoadMalformedFileIsAnError(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("{{{"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := Load(tmpDir); err == nil {
		t.Error("Malformed config should be reported, not silently ignored")
	}
}

func TestDataDirEnvOverride(t *testing.T) {
	t.Setenv("CODEPROMPT_DIR", "/tmp/custom-codeprompt")

	dir, err := DataDir()
	if err != nil {
		t.Fatalf("Failed to resolve data dir: %v", err)
	}
	if dir != "/tmp/custom-codeprompt" {
		t.Errorf("Expected env override, got %q", dir)
	}
}
