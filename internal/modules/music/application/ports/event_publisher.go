package ports

import "github.com/soracane/playme/internal/modules/music/domain"

// EventPublisher defines the interface for publishing transport events
// asynchronously back into the playback state machine.
type EventPublisher interface {
	PublishSessionReady(event domain.SessionReadyEvent)
	PublishSessionDisconnected(event domain.SessionDisconnectedEvent)
	PublishPlayerIdle(event domain.PlayerIdleEvent)
}
