// Package analytics tracks prompt usage: a per-prompt use counter, a
// per-prompt last-used timestamp and a per-category counter. Counters
// only grow; there is no decay, eviction or capping for the lifetime of
// the store.
package analytics

import (
	"github.com/codeprompt/companion/internal/config"
	apperrors "github.com/codeprompt/companion/internal/errors"
	"github.com/codeprompt/companion/internal/models"
	"github.com/codeprompt/companion/internal/storage"
)

// Tracker owns the analytics record and persists it through storage.
type Tracker struct {
	cfg     *config.Config
	storage *storage.Storage
	record  *models.AnalyticsRecord
}

// NewTracker loads the persisted record, or starts from an all-empty
// one on first use.
func NewTracker(cfg *config.Config, store *storage.Storage) (*Tracker, error) {
	record, err := store.LoadAnalytics()
	if err != nil {
		return nil, apperrors.StorageError("load analytics", err)
	}
	return &Tracker{cfg: cfg, storage: store, record: record}, nil
}

// RecordUsage increments the prompt's use counter, stamps its last-used
// time and increments the category counter, then persists the whole
// record in one write. A no-op when usage tracking is disabled.
func (t *Tracker) RecordUsage(promptID, category string) error {
	if !t.cfg.Analytics.TrackUsage || !t.cfg.Features.Analytics {
		return nil
	}

	t.record.UsageCount[promptID]++
	t.record.LastUsed[promptID] = models.Now()
	if category != "" {
		t.record.CategoryUsage[category]++
	}

	return t.storage.SaveAnalytics(t.record)
}

// Snapshot returns the current record. Callers must treat it as
// read-only; the maps are shared with the tracker.
func (t *Tracker) Snapshot() *models.AnalyticsRecord {
	return t.record
}

// Annotate copies usage data onto the derived fields of each prompt so
// sorting and views can work from the prompt slice alone.
func (t *Tracker) Annotate(prompts []models.Prompt) {
	for i := range prompts {
		prompts[i].UseCount = t.record.UsageCount[prompts[i].ID]
		prompts[i].LastUsed = t.record.LastUsed[prompts[i].ID]
	}
}
