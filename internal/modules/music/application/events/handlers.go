package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/soracane/playme/internal/modules/music/domain"
)

// PlaybackTransitions is the event-driven surface of the playback state
// machine. Every transport event is delivered as a call to one of these
// transition methods.
type PlaybackTransitions interface {
	OnSessionReady(ctx context.Context, guildID snowflake.ID)
	OnSessionDisconnected(ctx context.Context, guildID snowflake.ID)
	OnPlayerIdle(ctx context.Context, guildID snowflake.ID, reason domain.TrackEndReason)
}

// PlaybackEventHandler consumes transport events from the bus and feeds them
// into the playback state machine.
type PlaybackEventHandler struct {
	transitions PlaybackTransitions
	bus         *Bus

	wg   sync.WaitGroup
	done chan struct{}
}

// NewPlaybackEventHandler creates a new PlaybackEventHandler.
func NewPlaybackEventHandler(transitions PlaybackTransitions, bus *Bus) *PlaybackEventHandler {
	return &PlaybackEventHandler{
		transitions: transitions,
		bus:         bus,
		done:        make(chan struct{}),
	}
}

// Start begins listening for events in background goroutines.
func (h *PlaybackEventHandler) Start(ctx context.Context) {
	h.wg.Add(3)

	// Handle SessionReady events
	go func() {
		defer h.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-h.done:
				return
			case event, ok := <-h.bus.SessionReady():
				if !ok {
					return
				}
				h.transitions.OnSessionReady(ctx, event.GuildID)
			}
		}
	}()

	// Handle SessionDisconnected events
	go func() {
		defer h.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-h.done:
				return
			case event, ok := <-h.bus.SessionDisconnected():
				if !ok {
					return
				}
				h.transitions.OnSessionDisconnected(ctx, event.GuildID)
			}
		}
	}()

	// Handle PlayerIdle events
	go func() {
		defer h.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-h.done:
				return
			case event, ok := <-h.bus.PlayerIdle():
				if !ok {
					return
				}
				h.transitions.OnPlayerIdle(ctx, event.GuildID, event.Reason)
			}
		}
	}()

	slog.Debug("playback event handler started")
}

// Stop stops the event handler and waits for goroutines to finish.
func (h *PlaybackEventHandler) Stop() {
	close(h.done)
	h.wg.Wait()
	slog.Debug("playback event handler stopped")
}
