package presentation

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/soracane/playme/internal/bot"
	"github.com/soracane/playme/internal/modules/music/application/ports"
	"github.com/soracane/playme/internal/modules/music/application/usecases"
)

// PlaybackControls is the subset of the playback controller driven by commands.
type PlaybackControls interface {
	Enqueue(ctx context.Context, input usecases.EnqueueInput) (*usecases.EnqueueOutput, error)
	Stop(ctx context.Context, guildID snowflake.ID) error
	Leave(ctx context.Context, guildID snowflake.ID) error
}

// Handlers holds the command handlers for the music module.
type Handlers struct {
	playback   PlaybackControls
	voiceState ports.VoiceStateProvider
}

// NewHandlers creates new Handlers.
func NewHandlers(playback PlaybackControls, voiceState ports.VoiceStateProvider) *Handlers {
	return &Handlers{
		playback:   playback,
		voiceState: voiceState,
	}
}

// HandlePlayMe handles the /playme command.
func (h *Handlers) HandlePlayMe(
	s *discordgo.Session,
	m *discordgo.MessageCreate,
	args []string,
	r bot.Replier,
) error {
	ctx := context.Background()

	if len(args) == 0 {
		return r.Reply("Please provide a valid track URL.")
	}

	guildID, err := snowflake.Parse(m.GuildID)
	if err != nil {
		return fmt.Errorf("failed to parse guild ID: %w", err)
	}

	requesterID, err := snowflake.Parse(m.Author.ID)
	if err != nil {
		return fmt.Errorf("failed to parse author ID: %w", err)
	}

	textChannelID, err := snowflake.Parse(m.ChannelID)
	if err != nil {
		return fmt.Errorf("failed to parse channel ID: %w", err)
	}

	voiceChannelID, err := h.voiceState.GetUserVoiceChannel(guildID, requesterID)
	if err != nil {
		return fmt.Errorf("failed to look up voice state: %w", err)
	}
	if voiceChannelID == 0 {
		return r.Reply("You need to be in a voice channel to play music!")
	}

	output, err := h.playback.Enqueue(ctx, usecases.EnqueueInput{
		GuildID:        guildID,
		URL:            args[0],
		RequesterID:    requesterID,
		TextChannelID:  textChannelID,
		VoiceChannelID: voiceChannelID,
	})

	switch {
	case errors.Is(err, usecases.ErrInvalidURL):
		return r.Reply("Please provide a valid track URL.")
	case errors.Is(err, usecases.ErrJoinFailed):
		return r.Reply("There was an error connecting to the voice channel.")
	case err != nil:
		return err
	}

	// The first track announces itself via the now-playing notification.
	if !output.Created {
		return r.Reply("Song added to the queue!")
	}
	return nil
}

// HandleStop handles the /stop command.
func (h *Handlers) HandleStop(
	s *discordgo.Session,
	m *discordgo.MessageCreate,
	args []string,
	r bot.Replier,
) error {
	ctx := context.Background()

	guildID, err := snowflake.Parse(m.GuildID)
	if err != nil {
		return fmt.Errorf("failed to parse guild ID: %w", err)
	}

	err = h.playback.Stop(ctx, guildID)
	if errors.Is(err, usecases.ErrNoActiveQueue) {
		return r.Reply("There is no music playing.")
	}
	if err != nil {
		return err
	}

	return r.Reply("Stopped the music and cleared the queue!")
}

// HandleLeave handles the /leave command.
func (h *Handlers) HandleLeave(
	s *discordgo.Session,
	m *discordgo.MessageCreate,
	args []string,
	r bot.Replier,
) error {
	ctx := context.Background()

	guildID, err := snowflake.Parse(m.GuildID)
	if err != nil {
		return fmt.Errorf("failed to parse guild ID: %w", err)
	}

	err = h.playback.Leave(ctx, guildID)
	if errors.Is(err, usecases.ErrNoActiveQueue) {
		return r.Reply("I'm not in a voice channel.")
	}
	if err != nil {
		return err
	}

	return r.Reply("Disconnected from the voice channel.")
}
