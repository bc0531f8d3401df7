package model

import "time"

// ViewEvent is one durable record of a playback-related access to an asset.
// The set is append-only: analytics are pure aggregations over it.
type ViewEvent struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	AssetID    uint      `json:"asset_id" gorm:"not null;index"`
	SourceIP   string    `json:"source_ip" gorm:"size:64;not null"`
	OccurredAt time.Time `json:"occurred_at" gorm:"not null;index"`
}

const (
	ViewStreamName     = "VIEWS"
	ViewStreamSubject  = "views.events"
	ViewConsumerName   = "view-counter"
	ViewStreamMaxBytes = 1024 * 1024 * 100 // 100MB
)
