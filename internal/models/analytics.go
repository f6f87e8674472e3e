package models

// AnalyticsRecord holds the usage counters, keyed by prompt id and by
// category. Counters are monotonically non-decreasing; LastUsed is
// overwritten on each use.
type AnalyticsRecord struct {
	UsageCount    map[string]int   `json:"usageCount"`
	LastUsed      map[string]int64 `json:"lastUsed"`
	CategoryUsage map[string]int   `json:"categoryUsage"`
}

// NewAnalyticsRecord returns an all-empty record.
func NewAnalyticsRecord() *AnalyticsRecord {
	return &AnalyticsRecord{
		UsageCount:    make(map[string]int),
		LastUsed:      make(map[string]int64),
		CategoryUsage: make(map[string]int),
	}
}

// TotalUses sums the per-prompt usage counters.
func (a *AnalyticsRecord) TotalUses() int {
	total := 0
	for _, n := range a.UsageCount {
		total += n
	}
	return total
}
