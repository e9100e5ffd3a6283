package presentation

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/soracane/playme/internal/bot"
	"github.com/soracane/playme/internal/modules/music/application/usecases"
)

// mockControls is a test double for PlaybackControls.
type mockControls struct {
	enqueueOutput *usecases.EnqueueOutput
	enqueueErr    error
	enqueueInputs []usecases.EnqueueInput

	stopErr  error
	leaveErr error
}

func (m *mockControls) Enqueue(
	_ context.Context,
	input usecases.EnqueueInput,
) (*usecases.EnqueueOutput, error) {
	m.enqueueInputs = append(m.enqueueInputs, input)
	return m.enqueueOutput, m.enqueueErr
}

func (m *mockControls) Stop(_ context.Context, _ snowflake.ID) error {
	return m.stopErr
}

func (m *mockControls) Leave(_ context.Context, _ snowflake.ID) error {
	return m.leaveErr
}

// mockVoiceState is a test double for ports.VoiceStateProvider.
type mockVoiceState struct {
	channelID snowflake.ID
	err       error
}

func (m *mockVoiceState) GetUserVoiceChannel(_, _ snowflake.ID) (snowflake.ID, error) {
	return m.channelID, m.err
}

func testMessage() *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			GuildID:   "1001",
			ChannelID: "3003",
			Author:    &discordgo.User{ID: "4004"},
		},
	}
}

func lastReply(t *testing.T, r *bot.MockReplier) string {
	t.Helper()
	if len(r.Replies) == 0 {
		t.Fatal("expected a reply, got none")
	}
	return r.Replies[len(r.Replies)-1]
}

func TestHandlePlayMe_AddedToQueue(t *testing.T) {
	controls := &mockControls{enqueueOutput: &usecases.EnqueueOutput{Position: 2}}
	voiceState := &mockVoiceState{channelID: snowflake.ID(2002)}
	handlers := NewHandlers(controls, voiceState)
	replier := &bot.MockReplier{}

	err := handlers.HandlePlayMe(nil, testMessage(), []string{"https://example.com/a"}, replier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := lastReply(t, replier); got != "Song added to the queue!" {
		t.Errorf("unexpected reply: %q", got)
	}

	if len(controls.enqueueInputs) != 1 {
		t.Fatalf("expected 1 enqueue, got %d", len(controls.enqueueInputs))
	}
	input := controls.enqueueInputs[0]
	if input.GuildID != snowflake.ID(1001) {
		t.Errorf("unexpected guild ID: %v", input.GuildID)
	}
	if input.URL != "https://example.com/a" {
		t.Errorf("unexpected URL: %q", input.URL)
	}
	if input.VoiceChannelID != snowflake.ID(2002) {
		t.Errorf("unexpected voice channel: %v", input.VoiceChannelID)
	}
	if input.TextChannelID != snowflake.ID(3003) {
		t.Errorf("unexpected text channel: %v", input.TextChannelID)
	}
	if input.RequesterID != snowflake.ID(4004) {
		t.Errorf("unexpected requester: %v", input.RequesterID)
	}
}

func TestHandlePlayMe_CreatedSessionSkipsQueuedReply(t *testing.T) {
	controls := &mockControls{enqueueOutput: &usecases.EnqueueOutput{Created: true}}
	voiceState := &mockVoiceState{channelID: snowflake.ID(2002)}
	handlers := NewHandlers(controls, voiceState)
	replier := &bot.MockReplier{}

	err := handlers.HandlePlayMe(nil, testMessage(), []string{"https://example.com/a"}, replier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The now-playing notification covers the first track
	if len(replier.Replies) != 0 {
		t.Errorf("expected no reply for the session-creating enqueue, got %v", replier.Replies)
	}
}

func TestHandlePlayMe_MissingArgument(t *testing.T) {
	handlers := NewHandlers(&mockControls{}, &mockVoiceState{})
	replier := &bot.MockReplier{}

	err := handlers.HandlePlayMe(nil, testMessage(), nil, replier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := lastReply(t, replier); got != "Please provide a valid track URL." {
		t.Errorf("unexpected reply: %q", got)
	}
}

func TestHandlePlayMe_UserNotInVoiceChannel(t *testing.T) {
	controls := &mockControls{}
	handlers := NewHandlers(controls, &mockVoiceState{channelID: 0})
	replier := &bot.MockReplier{}

	err := handlers.HandlePlayMe(nil, testMessage(), []string{"https://example.com/a"}, replier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := lastReply(t, replier); got != "You need to be in a voice channel to play music!" {
		t.Errorf("unexpected reply: %q", got)
	}
	if len(controls.enqueueInputs) != 0 {
		t.Error("expected no enqueue when the user is not in voice")
	}
}

func TestHandlePlayMe_ErrorReplies(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid URL", usecases.ErrInvalidURL, "Please provide a valid track URL."},
		{"join failed", usecases.ErrJoinFailed, "There was an error connecting to the voice channel."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controls := &mockControls{enqueueErr: tt.err}
			handlers := NewHandlers(controls, &mockVoiceState{channelID: snowflake.ID(2002)})
			replier := &bot.MockReplier{}

			err := handlers.HandlePlayMe(
				nil, testMessage(), []string{"https://example.com/a"}, replier,
			)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := lastReply(t, replier); got != tt.want {
				t.Errorf("unexpected reply: %q", got)
			}
		})
	}
}

func TestHandlePlayMe_UnknownErrorPropagates(t *testing.T) {
	cause := errors.New("lavalink exploded")
	controls := &mockControls{enqueueErr: cause}
	handlers := NewHandlers(controls, &mockVoiceState{channelID: snowflake.ID(2002)})
	replier := &bot.MockReplier{}

	err := handlers.HandlePlayMe(nil, testMessage(), []string{"https://example.com/a"}, replier)
	if !errors.Is(err, cause) {
		t.Fatalf("expected error to propagate, got %v", err)
	}
	if len(replier.Replies) != 0 {
		t.Errorf("expected no reply, got %v", replier.Replies)
	}
}

func TestHandleStop(t *testing.T) {
	handlers := NewHandlers(&mockControls{}, &mockVoiceState{})
	replier := &bot.MockReplier{}

	err := handlers.HandleStop(nil, testMessage(), nil, replier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := lastReply(t, replier); got != "Stopped the music and cleared the queue!" {
		t.Errorf("unexpected reply: %q", got)
	}
}

func TestHandleStop_NoActiveQueue(t *testing.T) {
	handlers := NewHandlers(&mockControls{stopErr: usecases.ErrNoActiveQueue}, &mockVoiceState{})
	replier := &bot.MockReplier{}

	err := handlers.HandleStop(nil, testMessage(), nil, replier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := lastReply(t, replier); got != "There is no music playing." {
		t.Errorf("unexpected reply: %q", got)
	}
}

func TestHandleLeave(t *testing.T) {
	handlers := NewHandlers(&mockControls{}, &mockVoiceState{})
	replier := &bot.MockReplier{}

	err := handlers.HandleLeave(nil, testMessage(), nil, replier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := lastReply(t, replier); got != "Disconnected from the voice channel." {
		t.Errorf("unexpected reply: %q", got)
	}
}

func TestHandleLeave_NoActiveQueue(t *testing.T) {
	handlers := NewHandlers(&mockControls{leaveErr: usecases.ErrNoActiveQueue}, &mockVoiceState{})
	replier := &bot.MockReplier{}

	err := handlers.HandleLeave(nil, testMessage(), nil, replier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := lastReply(t, replier); got != "I'm not in a voice channel." {
		t.Errorf("unexpected reply: %q", got)
	}
}
