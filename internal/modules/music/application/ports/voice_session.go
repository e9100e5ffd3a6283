package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// VoiceConnector establishes and destroys a guild's voice session.
type VoiceConnector interface {
	// JoinChannel connects the bot to the specified voice channel. It returns
	// once the session is established (or fails); readiness is additionally
	// announced as a SessionReadyEvent.
	JoinChannel(ctx context.Context, guildID, channelID snowflake.ID) error

	// LeaveChannel destroys the guild's player and disconnects from voice.
	// Leaving a guild with no session is a no-op.
	LeaveChannel(ctx context.Context, guildID snowflake.ID) error
}

// AudioPlayer drives audio playback on an established voice session.
type AudioPlayer interface {
	// Play starts playback of the resolved track.
	Play(ctx context.Context, guildID snowflake.ID, track *TrackInfo) error

	// Stop stops the current playback. The transport reports the resulting
	// idle as a PlayerIdleEvent with reason stopped.
	Stop(ctx context.Context, guildID snowflake.ID) error
}
