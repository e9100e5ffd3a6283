package domain

import (
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Track is a queued reference to a playable audio item. The URL is resolved
// lazily into a stream right before playback.
type Track struct {
	URL         string
	RequesterID snowflake.ID
	EnqueuedAt  time.Time
}

// NewTrack creates a Track with the current time as EnqueuedAt.
func NewTrack(url string, requesterID snowflake.ID) Track {
	return Track{
		URL:         url,
		RequesterID: requesterID,
		EnqueuedAt:  time.Now().UTC(),
	}
}

// IsTrackURL checks whether the input looks like a track URL.
func IsTrackURL(input string) bool {
	input = strings.TrimSpace(input)
	return strings.HasPrefix(input, "http://") ||
		strings.HasPrefix(input, "https://") ||
		strings.HasPrefix(input, "www.")
}
