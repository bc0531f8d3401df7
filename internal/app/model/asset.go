package model

import "time"

// Media asset types accepted by the service.
const (
	AssetTypeVideo = "video"
	AssetTypeAudio = "audio"
)

// MediaAsset describes an uploaded media record stored in Postgres.
// FileURL is the real storage location; it is never handed to viewers
// directly, only through a short-lived streaming link.
type MediaAsset struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"type:text;not null"`
	Type      string    `json:"type" gorm:"size:16;not null;index"`
	FileURL   string    `json:"file_url" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// ValidAssetType reports whether t is one of the accepted media types.
func ValidAssetType(t string) bool {
	return t == AssetTypeVideo || t == AssetTypeAudio
}
