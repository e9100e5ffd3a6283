package usecases

import (
	"context"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/soracane/playme/internal/modules/music/application/ports"
	"github.com/soracane/playme/internal/modules/music/domain"
	"github.com/soracane/playme/internal/modules/music/infrastructure"
)

// mockTrackSource is a test double for ports.TrackSource.
type mockTrackSource struct {
	mu sync.Mutex

	resolveErr   map[string]error // URL -> error; absent = resolves fine
	resolvedURLs []string
}

func newMockTrackSource() *mockTrackSource {
	return &mockTrackSource{
		resolveErr: make(map[string]error),
	}
}

func (m *mockTrackSource) Validate(url string) bool {
	return domain.IsTrackURL(url)
}

func (m *mockTrackSource) Resolve(_ context.Context, url string) (*ports.TrackInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.resolvedURLs = append(m.resolvedURLs, url)

	if err, ok := m.resolveErr[url]; ok {
		return nil, err
	}
	return &ports.TrackInfo{
		Identifier: url,
		Encoded:    "encoded:" + url,
		Title:      "title of " + url,
		URI:        url,
	}, nil
}

func (m *mockTrackSource) failURL(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolveErr[url] = err
}

// mockVoiceConnector is a test double for ports.VoiceConnector.
type mockVoiceConnector struct {
	mu sync.Mutex

	joinErr    error
	joinCalls  []snowflake.ID // guild IDs
	leaveCalls []snowflake.ID
	leaveErr   error

	// joinBarrier, when non-nil, blocks JoinChannel until closed.
	joinBarrier chan struct{}
}

func newMockVoiceConnector() *mockVoiceConnector {
	return &mockVoiceConnector{}
}

func (m *mockVoiceConnector) JoinChannel(_ context.Context, guildID, _ snowflake.ID) error {
	m.mu.Lock()
	m.joinCalls = append(m.joinCalls, guildID)
	barrier := m.joinBarrier
	err := m.joinErr
	m.mu.Unlock()

	if barrier != nil {
		<-barrier
	}
	return err
}

func (m *mockVoiceConnector) LeaveChannel(_ context.Context, guildID snowflake.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaveCalls = append(m.leaveCalls, guildID)
	return m.leaveErr
}

func (m *mockVoiceConnector) joinCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.joinCalls)
}

func (m *mockVoiceConnector) leaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.leaveCalls)
}

// mockAudioPlayer is a test double for ports.AudioPlayer.
type mockAudioPlayer struct {
	mu sync.Mutex

	playErr    map[string]error // encoded track -> error
	played     []string         // encoded tracks in play order
	stopCalls  []snowflake.ID
	stopErr    error
}

func newMockAudioPlayer() *mockAudioPlayer {
	return &mockAudioPlayer{
		playErr: make(map[string]error),
	}
}

func (m *mockAudioPlayer) Play(_ context.Context, _ snowflake.ID, track *ports.TrackInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.playErr[track.Encoded]; ok {
		return err
	}
	m.played = append(m.played, track.Encoded)
	return nil
}

func (m *mockAudioPlayer) Stop(_ context.Context, guildID snowflake.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls = append(m.stopCalls, guildID)
	return m.stopErr
}

func (m *mockAudioPlayer) playedURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.played))
	copy(result, m.played)
	return result
}

// mockNotifier is a test double for ports.NotificationSender.
type mockNotifier struct {
	mu sync.Mutex

	nowPlaying []string // URLs announced
	skipped    []string
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{}
}

func (m *mockNotifier) SendNowPlaying(_ snowflake.ID, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nowPlaying = append(m.nowPlaying, url)
	return nil
}

func (m *mockNotifier) SendTrackSkipped(_ snowflake.ID, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipped = append(m.skipped, url)
	return nil
}

// fixture bundles a controller with its mocks and a real in-memory registry.
type fixture struct {
	controller *PlaybackController
	registry   *infrastructure.MemoryRegistry
	source     *mockTrackSource
	voice      *mockVoiceConnector
	player     *mockAudioPlayer
	notifier   *mockNotifier
}

func newFixture() *fixture {
	registry := infrastructure.NewMemoryRegistry()
	source := newMockTrackSource()
	voice := newMockVoiceConnector()
	player := newMockAudioPlayer()
	notifier := newMockNotifier()

	return &fixture{
		controller: NewPlaybackController(registry, source, voice, player, notifier),
		registry:   registry,
		source:     source,
		voice:      voice,
		player:     player,
		notifier:   notifier,
	}
}

const (
	testGuildID     = snowflake.ID(1001)
	testVoiceID     = snowflake.ID(2002)
	testTextID      = snowflake.ID(3003)
	testRequesterID = snowflake.ID(4004)
)

func enqueueInput(url string) EnqueueInput {
	return EnqueueInput{
		GuildID:        testGuildID,
		URL:            url,
		RequesterID:    testRequesterID,
		TextChannelID:  testTextID,
		VoiceChannelID: testVoiceID,
	}
}
