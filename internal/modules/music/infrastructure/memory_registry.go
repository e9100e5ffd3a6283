package infrastructure

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/soracane/playme/internal/modules/music/domain"
)

// MemoryRegistry is an in-memory implementation of QueueRegistry. The single
// mutex makes Get, GetOrCreate, and Remove atomic with respect to each other.
type MemoryRegistry struct {
	mu     sync.Mutex
	queues map[snowflake.ID]*domain.GuildQueue
}

// NewMemoryRegistry creates a new MemoryRegistry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		queues: make(map[snowflake.ID]*domain.GuildQueue),
	}
}

// Get returns the GuildQueue for the given guild, or nil if not registered.
func (r *MemoryRegistry) Get(guildID snowflake.ID) *domain.GuildQueue {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.queues[guildID]
}

// GetOrCreate returns the registered GuildQueue, or registers the one
// produced by factory. Exactly one concurrent caller per guild observes
// created=true.
func (r *MemoryRegistry) GetOrCreate(
	guildID snowflake.ID,
	factory func() *domain.GuildQueue,
) (*domain.GuildQueue, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if queue, ok := r.queues[guildID]; ok {
		return queue, false
	}

	queue := factory()
	r.queues[guildID] = queue
	return queue, true
}

// Remove unregisters the guild. Removing an absent guild is a no-op.
func (r *MemoryRegistry) Remove(guildID snowflake.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.queues, guildID)
}

// Count returns the number of registered guilds (for testing/monitoring).
func (r *MemoryRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.queues)
}

// Ensure MemoryRegistry implements QueueRegistry.
var _ domain.QueueRegistry = (*MemoryRegistry)(nil)
