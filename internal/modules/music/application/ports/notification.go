package ports

import (
	"github.com/disgoorg/snowflake/v2"
)

// NotificationSender posts playback status messages to text channels.
type NotificationSender interface {
	// SendNowPlaying announces the track that just started.
	SendNowPlaying(channelID snowflake.ID, url string) error

	// SendTrackSkipped announces that a track could not be resolved and was
	// dropped from the queue.
	SendTrackSkipped(channelID snowflake.ID, url string) error
}
