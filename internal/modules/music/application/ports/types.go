package ports

import "time"

// TrackInfo is a resolved, playable track descriptor.
type TrackInfo struct {
	Identifier string
	Encoded    string // transport-encoded track data
	Title      string
	Artist     string
	Duration   time.Duration
	URI        string
	SourceName string // e.g., "youtube", "soundcloud"
	IsStream   bool
}
