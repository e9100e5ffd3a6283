package music

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/soracane/playme/internal/bot"
	"github.com/soracane/playme/internal/modules/music/application/events"
	"github.com/soracane/playme/internal/modules/music/application/usecases"
	"github.com/soracane/playme/internal/modules/music/infrastructure"
	"github.com/soracane/playme/internal/modules/music/presentation"
)

func init() {
	bot.Register(&MusicModule{})
}

// Compile-time interface checks.
var _ bot.ConfigurableModule = (*MusicModule)(nil)

// MusicModule provides music playback commands.
type MusicModule struct {
	config          *Config
	handlers        *presentation.Handlers
	lavalinkAdapter *infrastructure.LavalinkAdapter

	eventBus        *events.Bus
	playbackHandler *events.PlaybackEventHandler

	ctx    context.Context
	cancel context.CancelFunc
}

// Name returns the module name.
func (m *MusicModule) Name() string {
	return "music"
}

// Commands returns the commands for this module.
func (m *MusicModule) Commands() []bot.Command {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *MusicModule) CommandHandlers() map[string]bot.MessageHandler {
	return map[string]bot.MessageHandler{
		"playme": m.handlers.HandlePlayMe,
		"stop":   m.handlers.HandleStop,
		"leave":  m.handlers.HandleLeave,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *MusicModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		func(s *discordgo.Session, event *discordgo.VoiceServerUpdate) {
			m.handleVoiceServerUpdate(s, event)
		},
		func(s *discordgo.Session, event *discordgo.VoiceStateUpdate) {
			m.handleVoiceStateUpdate(s, event)
		},
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *MusicModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *MusicModule) Init(deps bot.ModuleDependencies) error {
	// Check if session is available
	if deps.Session == nil {
		slog.Warn("music module initialized without session, Lavalink integration disabled")
		return m.initWithoutLavalink()
	}

	return m.initWithLavalink(deps)
}

func (m *MusicModule) initWithoutLavalink() error {
	// Commands will fail at runtime if called, but the module can load
	m.handlers = presentation.NewHandlers(nil, nil)
	return nil
}

func (m *MusicModule) initWithLavalink(deps bot.ModuleDependencies) error {
	// Create cancellable context for the event handler loops
	m.ctx, m.cancel = context.WithCancel(context.Background())

	// Create event bus (needed by Lavalink adapter for publishing events)
	m.eventBus = events.NewBus(events.DefaultEventBufferSize)

	lavalinkConfig := infrastructure.LavalinkConfig{
		Address:  m.config.LavalinkAddress,
		Password: m.config.LavalinkPassword,
	}

	lavalinkAdapter, err := infrastructure.NewLavalinkAdapter(
		deps.Session,
		m.eventBus,
		lavalinkConfig,
	)
	if err != nil {
		return err
	}
	m.lavalinkAdapter = lavalinkAdapter

	// Create infrastructure
	registry := infrastructure.NewMemoryRegistry()
	voiceState := infrastructure.NewVoiceStateProvider(deps.Session)
	notifier := infrastructure.NewNotifier(deps.Session)

	// Create the playback controller
	controller := usecases.NewPlaybackController(
		registry,
		lavalinkAdapter,
		lavalinkAdapter,
		lavalinkAdapter,
		notifier,
	)

	// Wire bus events into the controller
	m.playbackHandler = events.NewPlaybackEventHandler(controller, m.eventBus)
	m.playbackHandler.Start(m.ctx)

	// Create presentation handlers
	m.handlers = presentation.NewHandlers(controller, voiceState)

	slog.Info("music module initialized with Lavalink")

	return nil
}

// Shutdown cleans up module resources.
func (m *MusicModule) Shutdown() error {
	// Cancel context first to signal event handler loops to stop
	if m.cancel != nil {
		m.cancel()
	}

	if m.playbackHandler != nil {
		m.playbackHandler.Stop()
	}

	// Close event bus
	if m.eventBus != nil {
		m.eventBus.Close()
	}

	// Close Lavalink connection
	if m.lavalinkAdapter != nil {
		m.lavalinkAdapter.Link().Close()
	}

	return nil
}

// Event handlers.

func (m *MusicModule) handleVoiceServerUpdate(
	_ *discordgo.Session,
	event *discordgo.VoiceServerUpdate,
) {
	if m.lavalinkAdapter != nil {
		m.lavalinkAdapter.OnVoiceServerUpdate(event)
	}
}

func (m *MusicModule) handleVoiceStateUpdate(
	_ *discordgo.Session,
	event *discordgo.VoiceStateUpdate,
) {
	if m.lavalinkAdapter != nil {
		m.lavalinkAdapter.OnVoiceStateUpdate(event)
	}
}
