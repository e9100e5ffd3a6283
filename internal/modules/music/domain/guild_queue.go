package domain

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// State is the lifecycle state of a guild's queue and voice session.
//
// A GuildQueue is created in StateConnecting while the voice join is pending.
// Once the session is ready it moves between StateIdle and StatePlaying as
// tracks start and finish. An explicit stop moves it to StateStopped with the
// session kept open; StateClosed is absorbing and means the queue has been
// (or is being) removed from the registry.
type State int

const (
	StateConnecting State = iota
	StateIdle
	StatePlaying
	StateStopped
	StateClosed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateStopped:
		return "stopped"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// GuildQueue is the per-guild mutable record: pending tracks, lifecycle state,
// and the channels the session is bound to. All mutation must happen with the
// queue locked; each guild's transitions are serialized by this single lock
// while separate guilds proceed independently.
type GuildQueue struct {
	mu sync.Mutex

	guildID        snowflake.ID
	voiceChannelID snowflake.ID // channel the session joins; set once at creation
	textChannelID  snowflake.ID // channel for status messages; set once at creation

	tracks TrackQueue
	state  State
}

// NewGuildQueue creates a GuildQueue in StateConnecting holding the first track.
func NewGuildQueue(guildID, voiceChannelID, textChannelID snowflake.ID, first Track) *GuildQueue {
	q := &GuildQueue{
		guildID:        guildID,
		voiceChannelID: voiceChannelID,
		textChannelID:  textChannelID,
		tracks:         NewTrackQueue(),
		state:          StateConnecting,
	}
	q.tracks.Push(first)
	return q
}

// Lock acquires the guild's transition lock.
func (q *GuildQueue) Lock() { q.mu.Lock() }

// Unlock releases the guild's transition lock.
func (q *GuildQueue) Unlock() { q.mu.Unlock() }

// GuildID returns the guild ID.
func (q *GuildQueue) GuildID() snowflake.ID {
	// No lock: guildID is immutable after creation
	return q.guildID
}

// VoiceChannelID returns the voice channel the session is bound to.
func (q *GuildQueue) VoiceChannelID() snowflake.ID {
	return q.voiceChannelID
}

// TextChannelID returns the text channel used for status messages.
func (q *GuildQueue) TextChannelID() snowflake.ID {
	return q.textChannelID
}

// State returns the current lifecycle state. Caller must hold the lock.
func (q *GuildQueue) State() State {
	return q.state
}

// SetState transitions to the given state. StateClosed is absorbing: once
// closed, the state never changes again. Caller must hold the lock.
func (q *GuildQueue) SetState(s State) {
	if q.state == StateClosed {
		return
	}
	q.state = s
}

// Tracks returns the track queue for mutation. Caller must hold the lock.
func (q *GuildQueue) Tracks() *TrackQueue {
	return &q.tracks
}
