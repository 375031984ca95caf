package audio

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
)

// fetchTimeout bounds the download of a sound asset.
const fetchTimeout = 10 * time.Second

// ErrUnsupportedURL is returned for sources that are not http(s).
var ErrUnsupportedURL = errors.New("sound url must be http or https")

// The speaker is process-global; it is initialized once at the rate of the
// first decoded asset.
var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerRate        beep.SampleRate
)

// StreamHandle is a Handle that plays a remote MP3 through the beep speaker.
// The asset is downloaded and decoded on the first Start.
type StreamHandle struct {
	url    string
	volume float64
	client *http.Client

	loadMu sync.Mutex // serializes the one-time load

	mu     sync.Mutex
	stream beep.StreamSeeker
	ctrl   *beep.Ctrl

	playing atomic.Bool
}

var _ Handle = (*StreamHandle)(nil)

// NewStreamHandle creates a handle for the MP3 at rawURL.
// It matches HandleFactory.
func NewStreamHandle(rawURL string, volume float64) (Handle, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse sound url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}

	return &StreamHandle{
		url:    u.String(),
		volume: clampVolume(volume),
		client: &http.Client{Timeout: fetchTimeout},
	}, nil
}

// Rewind seeks the decoded stream back to the first sample.
// Before the first Start there is nothing to rewind.
func (h *StreamHandle) Rewind() error {
	h.mu.Lock()
	stream := h.stream
	h.mu.Unlock()

	if stream == nil {
		return nil
	}

	speaker.Lock()
	defer speaker.Unlock()
	return stream.Seek(0)
}

// Start loads the asset if needed and queues it on the speaker unless it is
// already queued.
func (h *StreamHandle) Start() error {
	ctrl, err := h.load()
	if err != nil {
		return err
	}

	if !h.playing.CompareAndSwap(false, true) {
		return nil
	}

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		h.playing.Store(false)
	})))
	return nil
}

// Playing reports whether the cue is currently queued on the speaker.
func (h *StreamHandle) Playing() bool {
	return h.playing.Load()
}

// Close detaches the stream from the speaker.
func (h *StreamHandle) Close() error {
	h.mu.Lock()
	ctrl := h.ctrl
	h.stream = nil
	h.ctrl = nil
	h.mu.Unlock()

	if ctrl != nil {
		speaker.Lock()
		ctrl.Streamer = nil
		speaker.Unlock()
	}
	return nil
}

// load downloads, decodes and buffers the asset once.
func (h *StreamHandle) load() (*beep.Ctrl, error) {
	h.loadMu.Lock()
	defer h.loadMu.Unlock()

	h.mu.Lock()
	ctrl := h.ctrl
	h.mu.Unlock()
	if ctrl != nil {
		return ctrl, nil
	}

	buffer, err := h.fetch()
	if err != nil {
		return nil, err
	}

	rate, err := ensureSpeaker(buffer.Format().SampleRate)
	if err != nil {
		return nil, err
	}

	stream := buffer.Streamer(0, buffer.Len())

	var out beep.Streamer = stream
	if buffer.Format().SampleRate != rate {
		out = beep.Resample(4, buffer.Format().SampleRate, rate, out)
	}
	if h.volume < 1.0 {
		out = &effects.Volume{
			Streamer: out,
			Base:     2,
			Volume:   volumeToExponent(h.volume),
			Silent:   h.volume == 0,
		}
	}

	ctrl = &beep.Ctrl{Streamer: out}

	h.mu.Lock()
	h.stream = stream
	h.ctrl = ctrl
	h.mu.Unlock()

	return ctrl, nil
}

// fetch downloads and decodes the MP3 into memory.
func (h *StreamHandle) fetch() (*beep.Buffer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sound: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch sound: unexpected status %s", resp.Status)
	}

	streamer, format, err := mp3.Decode(resp.Body)
	if err != nil {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode sound: %w", err)
	}

	return buffer, nil
}

// ensureSpeaker initializes the speaker if needed and returns its rate.
func ensureSpeaker(sampleRate beep.SampleRate) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	if speakerInitialized {
		return speakerRate, nil
	}

	// Use a reasonable buffer size for low latency
	bufferSize := sampleRate.N(100 * time.Millisecond)

	if err := speaker.Init(sampleRate, bufferSize); err != nil {
		return 0, fmt.Errorf("failed to initialize speaker: %w", err)
	}

	speakerRate = sampleRate
	speakerInitialized = true
	return speakerRate, nil
}

// volumeToExponent converts a linear volume (0-1) into the base-2 exponent
// used by effects.Volume, so 0.5 halves the amplitude.
func volumeToExponent(volume float64) float64 {
	if volume <= 0 {
		return -10
	}
	return math.Log2(volume)
}
