package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// TrackEndReason represents why the player went idle.
type TrackEndReason string

const (
	// TrackEndFinished means the track finished normally.
	TrackEndFinished TrackEndReason = "finished"
	// TrackEndLoadFailed means the track failed to load mid-playback.
	TrackEndLoadFailed TrackEndReason = "load_failed"
	// TrackEndStopped means playback was stopped explicitly.
	TrackEndStopped TrackEndReason = "stopped"
	// TrackEndReplaced means the track was replaced by another.
	TrackEndReplaced TrackEndReason = "replaced"
	// TrackEndCleanup means the player was cleaned up.
	TrackEndCleanup TrackEndReason = "cleanup"
)

// ShouldAdvanceQueue returns true if this end reason should advance the queue.
func (r TrackEndReason) ShouldAdvanceQueue() bool {
	return r == TrackEndFinished || r == TrackEndLoadFailed
}

// SessionReadyEvent is published once a guild's voice session is established.
type SessionReadyEvent struct {
	GuildID snowflake.ID
}

// SessionDisconnectedEvent is published when a guild's voice session drops,
// whether by our own leave or by an external actor.
type SessionDisconnectedEvent struct {
	GuildID snowflake.ID
}

// PlayerIdleEvent is published when the guild's player stops producing audio.
type PlayerIdleEvent struct {
	GuildID snowflake.ID
	Reason  TrackEndReason
}
