package status

import (
	"github.com/soracane/playme/internal/bot"
)

func init() {
	bot.Register(&StatusModule{})
}

// StatusModule provides liveness commands like /ping.
type StatusModule struct {
	handler *PingHandler
}

// Name returns the module name.
func (m *StatusModule) Name() string {
	return "status"
}

// Commands returns the commands for this module.
func (m *StatusModule) Commands() []bot.Command {
	return []bot.Command{
		{
			Name:        "ping",
			Usage:       "/ping",
			Description: "Replies with Pong!",
		},
	}
}

// CommandHandlers returns the command handlers for this module.
func (m *StatusModule) CommandHandlers() map[string]bot.MessageHandler {
	return map[string]bot.MessageHandler{
		"ping": m.handler.Handle,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *StatusModule) EventHandlers() []bot.EventHandler {
	return nil
}

// Init initializes the module.
func (m *StatusModule) Init(deps bot.ModuleDependencies) error {
	m.handler = NewPingHandler()
	return nil
}

// Shutdown cleans up module resources.
func (m *StatusModule) Shutdown() error {
	return nil
}
