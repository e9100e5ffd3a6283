package events

import (
	"log/slog"
	"sync"

	"github.com/soracane/playme/internal/modules/music/application/ports"
	"github.com/soracane/playme/internal/modules/music/domain"
)

// DefaultEventBufferSize is the default buffer size for event channels.
const DefaultEventBufferSize = 100

// Compile-time check that Bus implements ports.EventPublisher.
var _ ports.EventPublisher = (*Bus)(nil)

// Bus provides a channel-based event bus carrying transport events back into
// the playback state machine. Events for the same guild are delivered in
// publish order per channel.
type Bus struct {
	sessionReady        chan domain.SessionReadyEvent
	sessionDisconnected chan domain.SessionDisconnectedEvent
	playerIdle          chan domain.PlayerIdleEvent

	closed bool
	mu     sync.RWMutex
}

// NewBus creates a new Bus with the given buffer size.
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultEventBufferSize
	}

	return &Bus{
		sessionReady:        make(chan domain.SessionReadyEvent, bufferSize),
		sessionDisconnected: make(chan domain.SessionDisconnectedEvent, bufferSize),
		playerIdle:          make(chan domain.PlayerIdleEvent, bufferSize),
	}
}

// PublishSessionReady publishes a SessionReadyEvent.
// Non-blocking: if the channel buffer is full, the event is dropped with a warning.
func (b *Bus) PublishSessionReady(event domain.SessionReadyEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", "SessionReady")
		return
	}

	select {
	case b.sessionReady <- event:
		slog.Debug("published event", "type", "SessionReady", "guild", event.GuildID)
	default:
		slog.Warn("event buffer full, dropping event", "type", "SessionReady")
	}
}

// PublishSessionDisconnected publishes a SessionDisconnectedEvent.
// Non-blocking: if the channel buffer is full, the event is dropped with a warning.
func (b *Bus) PublishSessionDisconnected(event domain.SessionDisconnectedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", "SessionDisconnected")
		return
	}

	select {
	case b.sessionDisconnected <- event:
		slog.Debug("published event", "type", "SessionDisconnected", "guild", event.GuildID)
	default:
		slog.Warn("event buffer full, dropping event", "type", "SessionDisconnected")
	}
}

// PublishPlayerIdle publishes a PlayerIdleEvent.
// Non-blocking: if the channel buffer is full, the event is dropped with a warning.
func (b *Bus) PublishPlayerIdle(event domain.PlayerIdleEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", "PlayerIdle")
		return
	}

	select {
	case b.playerIdle <- event:
		slog.Debug("published event",
			"type", "PlayerIdle",
			"guild", event.GuildID,
			"reason", string(event.Reason),
		)
	default:
		slog.Warn("event buffer full, dropping event", "type", "PlayerIdle")
	}
}

// SessionReady returns the channel for SessionReadyEvent.
func (b *Bus) SessionReady() <-chan domain.SessionReadyEvent {
	return b.sessionReady
}

// SessionDisconnected returns the channel for SessionDisconnectedEvent.
func (b *Bus) SessionDisconnected() <-chan domain.SessionDisconnectedEvent {
	return b.sessionDisconnected
}

// PlayerIdle returns the channel for PlayerIdleEvent.
func (b *Bus) PlayerIdle() <-chan domain.PlayerIdleEvent {
	return b.playerIdle
}

// Close closes all event channels.
// After calling Close, publishing will no longer send events.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.sessionReady)
	close(b.sessionDisconnected)
	close(b.playerIdle)

	slog.Debug("event bus closed")
}
