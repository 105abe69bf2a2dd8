// Package audiosink provides vlc.AudioCallback implementations that record
// or play the PCM libvlc decodes.
package audiosink

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/renameio/v2"

	"github.com/thesyncim/vlc"
)

// ErrUnsupportedFormat is returned for PCM formats other than S16N.
var ErrUnsupportedFormat = errors.New("audiosink: only S16N is supported")

const wavFormatPCM = 1

// WAVRecorder writes libvlc audio to a WAV file. The file only appears at
// its final path once Close succeeds.
type WAVRecorder struct {
	format vlc.AudioFormat

	mu      sync.Mutex
	pending *renameio.PendingFile
	enc     *wav.Encoder
	buf     *audio.IntBuffer
	frames  int
	err     error
	closed  bool
	drained chan struct{}
	once    sync.Once
}

// NewWAVRecorder creates a recorder for path. format must be S16N.
func NewWAVRecorder(path string, format vlc.AudioFormat) (*WAVRecorder, error) {
	if format.Format != "S16N" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format.Format)
	}
	if format.Rate <= 0 || format.Channels <= 0 {
		return nil, fmt.Errorf("audiosink: invalid format %d Hz, %d channels", format.Rate, format.Channels)
	}
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &WAVRecorder{
		format:  format,
		pending: pending,
		enc:     wav.NewEncoder(pending, format.Rate, 16, format.Channels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: format.Channels, SampleRate: format.Rate},
			SourceBitDepth: 16,
		},
		drained: make(chan struct{}),
	}, nil
}

// Play implements vlc.AudioCallback.
func (r *WAVRecorder) Play(samples []byte, sampleCount int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.err != nil {
		return
	}

	n := sampleCount * r.format.Channels
	if cap(r.buf.Data) < n {
		r.buf.Data = make([]int, n)
	}
	r.buf.Data = r.buf.Data[:n]
	for i := range n {
		r.buf.Data[i] = int(int16(binary.NativeEndian.Uint16(samples[i*2:])))
	}
	if err := r.enc.Write(r.buf); err != nil {
		r.err = fmt.Errorf("write wav: %w", err)
		return
	}
	r.frames += sampleCount
}

func (r *WAVRecorder) Pause(time.Duration)  {}
func (r *WAVRecorder) Resume(time.Duration) {}
func (r *WAVRecorder) Flush(time.Duration)  {}

// Drain implements vlc.AudioCallback. It marks the end of the stream.
func (r *WAVRecorder) Drain() {
	r.once.Do(func() { close(r.drained) })
}

// Drained is closed once libvlc has drained its audio output.
func (r *WAVRecorder) Drained() <-chan struct{} {
	return r.drained
}

// Duration returns the length of audio recorded so far.
func (r *WAVRecorder) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Duration(r.frames) * time.Second / time.Duration(r.format.Rate)
}

// Err returns the first write error.
func (r *WAVRecorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Close finalises the WAV header and moves the file into place. If a write
// failed the partial file is discarded and the write error returned.
func (r *WAVRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return r.err
	}
	r.closed = true

	if r.err != nil {
		_ = r.pending.Cleanup()
		return r.err
	}
	if err := r.enc.Close(); err != nil {
		_ = r.pending.Cleanup()
		r.err = fmt.Errorf("finalise wav: %w", err)
		return r.err
	}
	if err := r.pending.CloseAtomicallyReplace(); err != nil {
		r.err = err
		return err
	}
	return nil
}

// Abort discards the recording.
func (r *WAVRecorder) Abort() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.pending.Cleanup()
}
