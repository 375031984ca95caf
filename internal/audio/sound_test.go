package audio

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	mu        sync.Mutex
	position  int
	rewinds   int
	starts    int
	closed    bool
	startErr  error
	rewindErr error
	playing   atomic.Bool
}

func (h *fakeHandle) Rewind() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rewinds++
	if h.rewindErr != nil {
		return h.rewindErr
	}
	h.position = 0
	return nil
}

func (h *fakeHandle) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts++
	if h.startErr != nil {
		return h.startErr
	}
	// Simulate playback advancing past the start.
	h.position = 42
	return nil
}

func (h *fakeHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

func (h *fakeHandle) Playing() bool { return h.playing.Load() }

func (h *fakeHandle) counts() (rewinds, starts int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rewinds, h.starts
}

type recordingFactory struct {
	mu      sync.Mutex
	calls   int
	url     string
	volume  float64
	handle  *fakeHandle
	failFor int // fail the first n calls
}

func (f *recordingFactory) New(url string, volume float64) (Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.url = url
	f.volume = volume
	if f.calls <= f.failFor {
		return nil, errors.New("audio unavailable")
	}
	return f.handle, nil
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestNotificationSound_LazyCreation(t *testing.T) {
	factory := &recordingFactory{handle: &fakeHandle{}}
	s := NewNotificationSound(nil, WithHandleFactory(factory.New))

	assert.Equal(t, 0, factory.calls, "handle must not be created before the first Play")

	s.Play()
	s.Wait()

	assert.Equal(t, 1, factory.calls)
	assert.Equal(t, DefaultSoundURL, factory.url)
	assert.Equal(t, 0.5, factory.volume)
}

func TestNotificationSound_ReusesHandleAndRewinds(t *testing.T) {
	h := &fakeHandle{}
	factory := &recordingFactory{handle: h}
	s := NewNotificationSound(nil, WithHandleFactory(factory.New))

	s.Play()
	s.Wait()
	s.Play()
	s.Wait()

	assert.Equal(t, 1, factory.calls)
	rewinds, starts := h.counts()
	assert.Equal(t, 2, rewinds)
	assert.Equal(t, 2, starts)
}

func TestNotificationSound_StartFailureIsSwallowed(t *testing.T) {
	var logs bytes.Buffer
	h := &fakeHandle{startErr: errors.New("play() blocked by autoplay policy")}
	factory := &recordingFactory{handle: h}
	s := NewNotificationSound(testLogger(&logs), WithHandleFactory(factory.New))

	assert.NotPanics(t, func() {
		s.Play()
		s.Wait()
	})

	assert.Contains(t, logs.String(), "failed to play notification sound")
	assert.Contains(t, logs.String(), "autoplay policy")
}

func TestNotificationSound_FactoryFailureIsSwallowed(t *testing.T) {
	var logs bytes.Buffer
	h := &fakeHandle{}
	factory := &recordingFactory{handle: h, failFor: 1}
	s := NewNotificationSound(testLogger(&logs), WithHandleFactory(factory.New))

	s.Play()
	s.Wait()
	assert.Contains(t, logs.String(), "failed to create notification sound")
	_, starts := h.counts()
	assert.Equal(t, 0, starts)

	// The next trigger tries again.
	s.Play()
	s.Wait()
	assert.Equal(t, 2, factory.calls)
	_, starts = h.counts()
	assert.Equal(t, 1, starts)
}

func TestNotificationSound_RewindFailureStillStarts(t *testing.T) {
	var logs bytes.Buffer
	h := &fakeHandle{rewindErr: errors.New("seek failed")}
	factory := &recordingFactory{handle: h}
	s := NewNotificationSound(testLogger(&logs), WithHandleFactory(factory.New))

	s.Play()
	s.Wait()

	_, starts := h.counts()
	assert.Equal(t, 1, starts)
	assert.Contains(t, logs.String(), "failed to rewind notification sound")
}

func TestNotificationSound_Options(t *testing.T) {
	factory := &recordingFactory{handle: &fakeHandle{}}
	s := NewNotificationSound(nil,
		WithHandleFactory(factory.New),
		WithURL("https://cdn.example.com/pop.mp3"),
		WithVolume(3),
	)

	s.Play()
	s.Wait()

	assert.Equal(t, "https://cdn.example.com/pop.mp3", factory.url)
	assert.Equal(t, 1.0, factory.volume)
}

func TestNotificationSound_InstancesDoNotShareHandles(t *testing.T) {
	a := &recordingFactory{handle: &fakeHandle{}}
	b := &recordingFactory{handle: &fakeHandle{}}

	s1 := NewNotificationSound(nil, WithHandleFactory(a.New))
	s2 := NewNotificationSound(nil, WithHandleFactory(b.New))

	s1.Play()
	s2.Play()
	s1.Wait()
	s2.Wait()

	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}

func TestNotificationSound_Close(t *testing.T) {
	h := &fakeHandle{}
	factory := &recordingFactory{handle: h}
	s := NewNotificationSound(nil, WithHandleFactory(factory.New))

	require.NoError(t, s.Close(), "closing an unused sound is fine")

	s = NewNotificationSound(nil, WithHandleFactory(factory.New))
	s.Play()
	require.NoError(t, s.Close())
	assert.True(t, h.closed)

	s.Play()
	s.Wait()
	assert.Equal(t, 1, factory.calls, "Play after Close does nothing")
}

func TestNotificationSound_Drain(t *testing.T) {
	h := &fakeHandle{}
	h.playing.Store(true)
	factory := &recordingFactory{handle: h}
	s := NewNotificationSound(nil, WithHandleFactory(factory.New))

	s.Play()

	go func() {
		time.Sleep(100 * time.Millisecond)
		h.playing.Store(false)
	}()
	require.NoError(t, s.Drain(context.Background()))

	h.playing.Store(true)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Drain(ctx), context.DeadlineExceeded)
}

func TestNewStreamHandle_RejectsNonHTTP(t *testing.T) {
	_, err := NewStreamHandle("file:///tmp/ding.mp3", 0.5)
	assert.ErrorIs(t, err, ErrUnsupportedURL)

	h, err := NewStreamHandle(DefaultSoundURL, 0.5)
	require.NoError(t, err)
	assert.NoError(t, h.Rewind(), "rewinding an unloaded handle is a no-op")
	assert.NoError(t, h.Close())
}

func TestVolumeToExponent(t *testing.T) {
	assert.InDelta(t, -1.0, volumeToExponent(0.5), 1e-9)
	assert.InDelta(t, 0.0, volumeToExponent(1), 1e-9)
	assert.Equal(t, -10.0, volumeToExponent(0))
}
