package model

import "time"

// StreamLinkTTL is the fixed validity window of a streaming link.
const StreamLinkTTL = 10 * time.Minute

// StreamingLink binds an opaque public id to an asset's real location for a
// fixed window. Links live only in the issuer's in-memory store; they do not
// survive a restart.
type StreamingLink struct {
	ID        string
	AssetID   uint
	TargetURL string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the link is past its validity window at now.
func (l *StreamingLink) Expired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}
