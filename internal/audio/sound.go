package audio

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Default cue settings.
const (
	DefaultSoundURL = "https://assets.mixkit.co/active_storage/sfx/2869/2869-preview.mp3"
	DefaultVolume   = 0.5
)

// Handle is one playable audio resource.
type Handle interface {
	// Rewind moves the playback position back to the start.
	Rewind() error
	// Start begins playback from the current position.
	// Starting a handle that is already playing is a no-op.
	Start() error
	// Close stops playback and releases the resource.
	Close() error
}

// HandleFactory constructs a Handle bound to url at a fixed volume (0.0-1.0).
type HandleFactory func(url string, volume float64) (Handle, error)

// NotificationSound plays a short cue without overlapping itself.
// It owns a single Handle, created on the first Play.
// Not meant to be shared between independent owners.
type NotificationSound struct {
	mu      sync.Mutex
	logger  *slog.Logger
	url     string
	volume  float64
	factory HandleFactory
	handle  Handle
	closed  bool

	// In-flight Start calls
	pending sync.WaitGroup
}

// Option configures a NotificationSound.
type Option func(*NotificationSound)

// WithURL overrides the cue source.
func WithURL(url string) Option {
	return func(s *NotificationSound) {
		if url != "" {
			s.url = url
		}
	}
}

// WithVolume sets the volume (0.0 to 1.0) the handle is created with.
func WithVolume(volume float64) Option {
	return func(s *NotificationSound) {
		s.volume = clampVolume(volume)
	}
}

// WithHandleFactory replaces the beep-backed handle constructor.
func WithHandleFactory(factory HandleFactory) Option {
	return func(s *NotificationSound) {
		if factory != nil {
			s.factory = factory
		}
	}
}

// NewNotificationSound creates a notification sound. No audio resource is
// created until the first Play.
func NewNotificationSound(logger *slog.Logger, opts ...Option) *NotificationSound {
	if logger == nil {
		logger = slog.Default()
	}

	s := &NotificationSound{
		logger:  logger,
		url:     DefaultSoundURL,
		volume:  DefaultVolume,
		factory: NewStreamHandle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Play restarts the cue from the beginning. Failures are logged and never
// returned; a trigger during playback truncates it.
func (s *NotificationSound) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if s.handle == nil {
		h, err := s.factory(s.url, s.volume)
		if err != nil {
			s.logger.Warn("failed to create notification sound", "url", s.url, "error", err)
			return
		}
		s.handle = h
		s.logger.Debug("notification sound created", "url", s.url, "volume", s.volume)
	}

	if err := s.handle.Rewind(); err != nil {
		s.logger.Warn("failed to rewind notification sound", "error", err)
	}

	h := s.handle
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := h.Start(); err != nil {
			s.logger.Warn("failed to play notification sound", "url", s.url, "error", err)
		}
	}()
}

// Wait blocks until every Start issued so far has returned.
func (s *NotificationSound) Wait() {
	s.pending.Wait()
}

// Drain waits for pending starts and then for the cue to finish playing,
// or until ctx is done.
func (s *NotificationSound) Drain(ctx context.Context) error {
	s.Wait()

	s.mu.Lock()
	h := s.handle
	s.mu.Unlock()

	p, ok := h.(interface{ Playing() bool })
	if !ok {
		return nil
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for p.Playing() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// Close waits for pending starts and releases the handle.
// Play is a no-op afterwards.
func (s *NotificationSound) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.pending.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle == nil {
		return nil
	}
	err := s.handle.Close()
	s.handle = nil
	s.logger.Debug("notification sound closed")
	return err
}

func clampVolume(volume float64) float64 {
	if volume < 0 {
		return 0
	}
	if volume > 1 {
		return 1
	}
	return volume
}
