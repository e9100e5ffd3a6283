package usecases

import (
	"github.com/disgoorg/snowflake/v2"
)

// EnqueueInput contains the input for the Enqueue transition.
type EnqueueInput struct {
	GuildID        snowflake.ID
	URL            string
	RequesterID    snowflake.ID
	TextChannelID  snowflake.ID // channel for status messages, bound at queue creation
	VoiceChannelID snowflake.ID // channel to join, bound at queue creation
}

// EnqueueOutput contains the result of the Enqueue transition.
type EnqueueOutput struct {
	Created  bool // true if this call established the guild's session
	Position int  // 0-indexed position in the queue (0 = head)
}
