package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/soracane/playme/internal/modules/music/application/ports"
	"github.com/soracane/playme/internal/modules/music/domain"
)

// PlaybackController drives the per-guild queue and session state machine.
// Commands (Enqueue, Stop, Leave) and transport events (session ready,
// session disconnected, player idle) are all transitions on a GuildQueue;
// each transition runs under that guild's lock, so a guild's mutations are
// fully serialized while separate guilds proceed in parallel.
type PlaybackController struct {
	registry domain.QueueRegistry
	source   ports.TrackSource
	voice    ports.VoiceConnector
	player   ports.AudioPlayer
	notifier ports.NotificationSender
}

// NewPlaybackController creates a new PlaybackController.
func NewPlaybackController(
	registry domain.QueueRegistry,
	source ports.TrackSource,
	voice ports.VoiceConnector,
	player ports.AudioPlayer,
	notifier ports.NotificationSender,
) *PlaybackController {
	return &PlaybackController{
		registry: registry,
		source:   source,
		voice:    voice,
		player:   player,
		notifier: notifier,
	}
}

// Enqueue appends a track to the guild's queue, establishing the voice
// session first if the guild has none. Exactly one caller observes
// Created=true per session, so at most one join is ever issued; everyone
// else appends behind the pending connection.
func (c *PlaybackController) Enqueue(
	ctx context.Context,
	input EnqueueInput,
) (*EnqueueOutput, error) {
	if !c.source.Validate(input.URL) {
		return nil, ErrInvalidURL
	}

	track := domain.NewTrack(input.URL, input.RequesterID)

	var queue *domain.GuildQueue
	for {
		var created bool
		queue, created = c.registry.GetOrCreate(input.GuildID, func() *domain.GuildQueue {
			return domain.NewGuildQueue(
				input.GuildID,
				input.VoiceChannelID,
				input.TextChannelID,
				track,
			)
		})
		if created {
			break
		}

		queue.Lock()
		if queue.State() == domain.StateClosed {
			// Lost a race with teardown; the registry entry is gone or about
			// to be. Retry against a fresh queue.
			queue.Unlock()
			continue
		}
		position := queue.Tracks().Push(track)
		queue.Unlock()

		slog.Debug("track appended to existing queue",
			"guild", input.GuildID,
			"url", input.URL,
			"position", position,
		)

		return &EnqueueOutput{Position: position}, nil
	}

	// This call created the queue: establish the session. The queue is
	// deliberately not locked here so concurrent enqueues can append while
	// the join is pending. Readiness re-enters via OnSessionReady.
	if err := c.voice.JoinChannel(ctx, input.GuildID, input.VoiceChannelID); err != nil {
		queue.Lock()
		queue.SetState(domain.StateClosed)
		queue.Unlock()
		c.registry.Remove(input.GuildID)

		slog.Warn("voice join failed, aborting queue creation",
			"guild", input.GuildID,
			"channel", input.VoiceChannelID,
			"error", err,
		)

		return nil, fmt.Errorf("%w: %w", ErrJoinFailed, err)
	}

	queue.Lock()
	closed := queue.State() == domain.StateClosed
	queue.Unlock()
	if closed {
		// A Leave or forced disconnect tore the queue down while the join was
		// in flight. The session that just came up must not be leaked.
		if err := c.voice.LeaveChannel(ctx, input.GuildID); err != nil {
			slog.Warn("failed to leave voice channel after aborted join",
				"guild", input.GuildID,
				"error", err,
			)
		}
		return nil, fmt.Errorf("%w: queue torn down during connect", ErrJoinFailed)
	}

	return &EnqueueOutput{Created: true}, nil
}

// OnSessionReady handles the session-established event. Playback of the head
// track starts here and only here; the StateConnecting guard makes the
// transition (and its playNext) run at most once per established session.
func (c *PlaybackController) OnSessionReady(ctx context.Context, guildID snowflake.ID) {
	queue := c.registry.Get(guildID)
	if queue == nil {
		slog.Debug("session ready for unregistered guild, ignoring", "guild", guildID)
		return
	}

	queue.Lock()
	defer queue.Unlock()

	if queue.State() != domain.StateConnecting {
		slog.Debug("session ready in unexpected state, ignoring",
			"guild", guildID,
			"state", queue.State().String(),
		)
		return
	}

	queue.SetState(domain.StateIdle)
	c.playNext(ctx, queue)
}

// OnSessionDisconnected handles a dropped voice session, from any state and
// regardless of who caused it. This is the single transport-triggered
// teardown path and is idempotent: a second event for an already-removed
// guild is a no-op. The session itself is already gone, so the transport is
// not called again.
func (c *PlaybackController) OnSessionDisconnected(_ context.Context, guildID snowflake.ID) {
	queue := c.registry.Get(guildID)
	if queue == nil {
		return
	}

	queue.Lock()
	queue.SetState(domain.StateClosed)
	queue.Unlock()

	c.registry.Remove(guildID)

	slog.Info("voice session disconnected, queue removed", "guild", guildID)
}

// OnPlayerIdle handles the player going idle. A natural end of track (or a
// mid-playback load failure) advances the queue; an idle caused by an
// explicit Stop is suppressed because Stop set StateStopped before stopping
// the player.
func (c *PlaybackController) OnPlayerIdle(
	ctx context.Context,
	guildID snowflake.ID,
	reason domain.TrackEndReason,
) {
	if !reason.ShouldAdvanceQueue() {
		return
	}

	queue := c.registry.Get(guildID)
	if queue == nil {
		return
	}

	queue.Lock()
	defer queue.Unlock()

	if queue.State() != domain.StatePlaying {
		slog.Debug("player idle outside playback, ignoring",
			"guild", guildID,
			"state", queue.State().String(),
			"reason", string(reason),
		)
		return
	}

	queue.Tracks().PopHead()
	queue.SetState(domain.StateIdle)
	c.playNext(ctx, queue)
}

// Stop clears the queue and stops the player, leaving the session open and
// the guild registered. StateStopped is set before the player is told to
// stop so the idle event that follows cannot auto-advance.
func (c *PlaybackController) Stop(ctx context.Context, guildID snowflake.ID) error {
	queue := c.registry.Get(guildID)
	if queue == nil {
		return ErrNoActiveQueue
	}

	queue.Lock()
	defer queue.Unlock()

	if queue.State() == domain.StateClosed {
		return ErrNoActiveQueue
	}

	cleared := queue.Tracks().Clear()
	queue.SetState(domain.StateStopped)

	if err := c.player.Stop(ctx, guildID); err != nil {
		return fmt.Errorf("failed to stop player: %w", err)
	}

	slog.Info("playback stopped and queue cleared",
		"guild", guildID,
		"cleared", cleared,
	)

	return nil
}

// Leave destroys the session and removes the guild from the registry.
func (c *PlaybackController) Leave(ctx context.Context, guildID snowflake.ID) error {
	queue := c.registry.Get(guildID)
	if queue == nil {
		return ErrNoActiveQueue
	}

	queue.Lock()
	defer queue.Unlock()

	if queue.State() == domain.StateClosed {
		return ErrNoActiveQueue
	}

	queue.SetState(domain.StateClosed)

	if err := c.voice.LeaveChannel(ctx, guildID); err != nil {
		// The registry entry still has to go; an orphaned entry would block
		// this guild from ever reconnecting.
		slog.Warn("failed to leave voice channel", "guild", guildID, "error", err)
	}

	c.registry.Remove(guildID)

	slog.Info("left voice channel on request", "guild", guildID)

	return nil
}

// playNext starts playback of the head track, skipping past tracks that fail
// to resolve or start. An empty queue tears the session down: that is the
// normal queue-exhausted exit. Caller must hold the queue's lock; holding it
// across the resolve/play calls is what prevents a second concurrent
// playNext for the same guild.
func (c *PlaybackController) playNext(ctx context.Context, queue *domain.GuildQueue) {
	guildID := queue.GuildID()

	for {
		head := queue.Tracks().Head()
		if head == nil {
			queue.SetState(domain.StateClosed)
			if err := c.voice.LeaveChannel(ctx, guildID); err != nil {
				slog.Warn("failed to leave voice channel after queue exhausted",
					"guild", guildID,
					"error", err,
				)
			}
			c.registry.Remove(guildID)

			slog.Info("queue exhausted, session destroyed", "guild", guildID)
			return
		}

		resolved, err := c.source.Resolve(ctx, head.URL)
		if err != nil {
			c.skipHead(queue, head.URL, err)
			continue
		}

		if err := c.player.Play(ctx, guildID, resolved); err != nil {
			c.skipHead(queue, head.URL, err)
			continue
		}

		queue.SetState(domain.StatePlaying)

		if err := c.notifier.SendNowPlaying(queue.TextChannelID(), head.URL); err != nil {
			slog.Warn("failed to send now playing message", "guild", guildID, "error", err)
		}

		slog.Info("started track",
			"guild", guildID,
			"url", head.URL,
			"title", resolved.Title,
		)
		return
	}
}

// skipHead drops an unplayable head track and notifies the text channel.
// A bad URL must never wedge the queue.
func (c *PlaybackController) skipHead(queue *domain.GuildQueue, url string, cause error) {
	slog.Warn("skipping unplayable track",
		"guild", queue.GuildID(),
		"url", url,
		"error", cause,
	)

	if err := c.notifier.SendTrackSkipped(queue.TextChannelID(), url); err != nil {
		slog.Warn("failed to send track skipped message",
			"guild", queue.GuildID(),
			"error", err,
		)
	}

	queue.Tracks().PopHead()
}
