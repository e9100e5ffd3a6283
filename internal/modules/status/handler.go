package status

import (
	"github.com/bwmarrin/discordgo"
	"github.com/soracane/playme/internal/bot"
)

// PingHandler handles the /ping command.
type PingHandler struct{}

// NewPingHandler creates a new PingHandler.
func NewPingHandler() *PingHandler {
	return &PingHandler{}
}

// Handle processes the ping command and sends the response.
func (h *PingHandler) Handle(
	s *discordgo.Session,
	m *discordgo.MessageCreate,
	args []string,
	r bot.Replier,
) error {
	return r.Reply("Pong!")
}
