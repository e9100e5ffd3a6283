package infrastructure

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/soracane/playme/internal/modules/music/application/ports"
)

// Notifier implements ports.NotificationSender with plain text messages.
type Notifier struct {
	session *discordgo.Session
}

// NewNotifier creates a new Notifier.
func NewNotifier(session *discordgo.Session) *Notifier {
	return &Notifier{
		session: session,
	}
}

// SendNowPlaying announces the track that just started.
func (n *Notifier) SendNowPlaying(channelID snowflake.ID, url string) error {
	_, err := n.session.ChannelMessageSend(channelID.String(), fmt.Sprintf("Now playing: %s", url))
	return err
}

// SendTrackSkipped announces that a track could not be played and was dropped.
func (n *Notifier) SendTrackSkipped(channelID snowflake.ID, url string) error {
	_, err := n.session.ChannelMessageSend(
		channelID.String(),
		fmt.Sprintf("Skipping %s, it could not be played.", url),
	)
	return err
}

// Ensure Notifier implements ports.NotificationSender.
var _ ports.NotificationSender = (*Notifier)(nil)
