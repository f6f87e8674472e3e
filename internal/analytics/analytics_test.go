package analytics

import (
	"os"
	"testing"

	"github.com/codeprompt/companion/internal/config"
	"github.com/codeprompt/companion/internal/models"
	"github.com/codeprompt/companion/internal/storage"
)

func newTestTracker(t *testing.T, cfg *config.Config) (*Tracker, string) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "codeprompt-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	store, err := storage.NewStorage(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	tracker, err := NewTracker(cfg, store)
	if err != nil {
		t.Fatalf("Failed to create tracker: %v", err)
	}
	return tracker, tmpDir
}

func TestRecordUsage(t *testing.T) {
	tracker, _ := newTestTracker(t, config.Default())

	for i := 0; i < 3; i++ {
		if err := tracker.RecordUsage("p1", "css"); err != nil {
			t.Fatalf("Failed to record usage: %v", err)
		}
	}
	if err := tracker.RecordUsage("p2", "css"); err != nil {
		t.Fatalf("Failed to record usage: %v", err)
	}

	record := tracker.Snapshot()
	if record.UsageCount["p1"] != 3 {
		t.Errorf("Expected 3 uses of p1, got %d", record.UsageCount["p1"])
	}
	if record.UsageCount["p2"] != 1 {
		t.Errorf("Expected 1 use of p2, got %d", record.UsageCount["p2"])
	}
	if record.CategoryUsage["css"] != 4 {
		t.Errorf("Expected 4 css uses, got %d", record.CategoryUsage["css"])
	}
	if record.LastUsed["p1"] == 0 {
		t.Error("Last-used timestamp should be set")
	}
	if record.TotalUses() != 4 {
		t.Errorf("Expected 4 total uses, got %d", record.TotalUses())
	}
}

func TestRecordUsageEmptyCategory(t *testing.T) {
	tracker, _ := newTestTracker(t, config.Default())

	if err := tracker.RecordUsage("p1", ""); err != nil {
		t.Fatalf("Failed to record usage: %v", err)
	}
	record := tracker.Snapshot()
	if len(record.CategoryUsage) != 0 {
		t.Errorf("Empty category should not be counted: %v", record.CategoryUsage)
	}
	if record.UsageCount["p1"] != 1 {
		t.Errorf("Prompt counter should still increment, got %d", record.UsageCount["p1"])
	}
}

func TestRecordUsageDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Analytics.TrackUsage = false
	tracker, _ := newTestTracker(t, cfg)

	if err := tracker.RecordUsage("p1", "css"); err != nil {
		t.Fatalf("Disabled tracking should be a no-op, not an error: %v", err)
	}
	if tracker.Snapshot().TotalUses() != 0 {
		t.Error("Nothing should be recorded while tracking is disabled")
	}
}

func TestRecordSurvivesReload(t *testing.T) {
	tracker, tmpDir := newTestTracker(t, config.Default())

	if err := tracker.RecordUsage("p1", "css"); err != nil {
		t.Fatalf("Failed to record usage: %v", err)
	}

	store, err := storage.NewStorage(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	reloaded, err := NewTracker(config.Default(), store)
	if err != nil {
		t.Fatalf("Failed to reload tracker: %v", err)
	}
	if reloaded.Snapshot().UsageCount["p1"] != 1 {
		t.Error("Usage record should survive a reload")
	}
}

func TestAnnotate(t *testing.T) {
	tracker, _ := newTestTracker(t, config.Default())

	if err := tracker.RecordUsage("p1", "css"); err != nil {
		t.Fatalf("Failed to record usage: %v", err)
	}

	prompts := []models.Prompt{{ID: "p1"}, {ID: "p2"}}
	tracker.Annotate(prompts)

	if prompts[0].UseCount != 1 || prompts[0].LastUsed == 0 {
		t.Errorf("p1 should carry usage data: count=%d lastUsed=%d", prompts[0].UseCount, prompts[0].LastUsed)
	}
	if prompts[1].UseCount != 0 || prompts[1].LastUsed != 0 {
		t.Error("Never-used prompt should have zero usage data")
	}
}
