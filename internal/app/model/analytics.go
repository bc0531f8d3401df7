package model

import "time"

// AnalyticsWindowDays bounds the per-day histogram to a trailing window.
const AnalyticsWindowDays = 30

// TopSourcesLimit caps the ranked-source list.
const TopSourcesLimit = 10

// SourceCount is one entry of the top-sources ranking.
type SourceCount struct {
	SourceIP string `json:"source_ip"`
	Views    int64  `json:"views"`
}

// AnalyticsSnapshot is a point-in-time aggregation over an asset's view
// events. It is derived on demand and never stored.
type AnalyticsSnapshot struct {
	AssetID       uint             `json:"asset_id"`
	TotalViews    int64            `json:"total_views"`
	UniqueSources int64            `json:"unique_sources"`
	ViewsByDay    map[string]int64 `json:"views_by_day"`
	TopSources    []SourceCount    `json:"top_sources"`
	ComputedAt    time.Time        `json:"computed_at"`
}
