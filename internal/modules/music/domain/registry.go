package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// QueueRegistry maps guild IDs to their GuildQueue. It is the single
// authoritative source of "this guild has an active or being-established
// session": a queue exists here if and only if such a session (or a
// still-connecting attempt) exists, and no other component may construct
// a GuildQueue outside of GetOrCreate.
type QueueRegistry interface {
	// Get returns the GuildQueue for the given guild, or nil if not registered.
	Get(guildID snowflake.ID) *GuildQueue

	// GetOrCreate returns the registered GuildQueue, or registers the one
	// produced by factory if none exists. created reports whether factory ran.
	// The operation is atomic: no two concurrent callers observe created=true
	// for the same guild.
	GetOrCreate(guildID snowflake.ID, factory func() *GuildQueue) (queue *GuildQueue, created bool)

	// Remove unregisters the guild. Removing an absent guild is a no-op.
	Remove(guildID snowflake.ID)
}
