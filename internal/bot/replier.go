package bot

import "github.com/bwmarrin/discordgo"

// Replier provides an abstraction for replying to command messages.
// This interface enables testing handlers without a live Discord connection.
type Replier interface {
	// Reply sends a plain text reply to the command message.
	Reply(content string) error
}

// DiscordReplier implements Replier using a live Discord session.
type DiscordReplier struct {
	session *discordgo.Session
	message *discordgo.Message
}

// NewDiscordReplier creates a new DiscordReplier for the given message.
func NewDiscordReplier(s *discordgo.Session, m *discordgo.Message) *DiscordReplier {
	return &DiscordReplier{
		session: s,
		message: m,
	}
}

// Reply sends a reply referencing the original message via the Discord API.
func (r *DiscordReplier) Reply(content string) error {
	_, err := r.session.ChannelMessageSendReply(r.message.ChannelID, content, r.message.Reference())
	return err
}

// MockReplier is a test double for Replier.
type MockReplier struct {
	Replies []string
	Err     error
}

// Reply records the reply for testing.
func (m *MockReplier) Reply(content string) error {
	m.Replies = append(m.Replies, content)
	return m.Err
}
