package bot

import "github.com/bwmarrin/discordgo"

// MessageHandler handles a parsed text command. args holds the tokens after
// the command name. The Replier posts the response into the originating channel.
type MessageHandler func(s *discordgo.Session, m *discordgo.MessageCreate, args []string, r Replier) error

// EventHandler is a generic handler for any Discord event.
// It should be a function matching one of discordgo's handler signatures,
// e.g., func(s *discordgo.Session, e *discordgo.VoiceStateUpdate)
type EventHandler any

// Command describes a text command for help and diagnostics output.
type Command struct {
	Name        string // first token without the leading slash, e.g. "playme"
	Usage       string // argument hint, e.g. "<url>"
	Description string
}

// ModuleDependencies provides dependencies that modules may need during initialization.
type ModuleDependencies struct {
	Session *discordgo.Session
}

// Module defines the interface that all bot modules must implement.
type Module interface {
	// Name returns the unique identifier for this module.
	Name() string

	// Commands returns the text commands that this module provides.
	Commands() []Command

	// CommandHandlers returns a map of command names to their handlers.
	CommandHandlers() map[string]MessageHandler

	// EventHandlers returns event handlers for this module.
	// Each handler should match a discordgo handler signature.
	EventHandlers() []EventHandler

	// Init initializes the module with the provided dependencies.
	Init(deps ModuleDependencies) error

	// Shutdown gracefully shuts down the module.
	Shutdown() error
}

// ConfigurableModule is an optional interface for modules that need configuration.
// Modules implementing this interface will have LoadConfig called before Init.
type ConfigurableModule interface {
	// LoadConfig loads and validates module-specific configuration.
	// Called before Init() and before Discord connection is established.
	// Should return an error if required configuration is missing or invalid.
	LoadConfig() error
}
