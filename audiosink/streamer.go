package audiosink

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/faiface/beep"

	"github.com/thesyncim/vlc"
)

// Streamer exposes libvlc audio as a beep.Streamer. libvlc pushes PCM
// through the vlc.AudioCallback methods and beep pulls it with Stream.
// When the consumer falls behind the oldest frames are dropped.
type Streamer struct {
	format   vlc.AudioFormat
	capacity int

	mu      sync.Mutex
	buffer  [][2]float64
	paused  bool
	drained bool
	dropped int
}

// NewStreamer buffers up to bufferSize of audio in format, which must be
// S16N with one or two channels.
func NewStreamer(format vlc.AudioFormat, bufferSize time.Duration) (*Streamer, error) {
	if format.Format != "S16N" || format.Channels < 1 || format.Channels > 2 {
		return nil, ErrUnsupportedFormat
	}
	capacity := int(bufferSize * time.Duration(format.Rate) / time.Second)
	if capacity <= 0 {
		capacity = format.Rate / 10
	}
	return &Streamer{format: format, capacity: capacity}, nil
}

// Format returns the beep format matching the libvlc output.
func (s *Streamer) Format() beep.Format {
	return beep.Format{SampleRate: beep.SampleRate(s.format.Rate), NumChannels: 2, Precision: 2}
}

// Play implements vlc.AudioCallback.
func (s *Streamer) Play(samples []byte, sampleCount int, _ time.Duration) {
	channels := s.format.Channels
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range sampleCount {
		var frame [2]float64
		off := i * channels * 2
		frame[0] = float64(int16(binary.NativeEndian.Uint16(samples[off:]))) / 32768.0
		frame[1] = frame[0]
		if channels == 2 {
			frame[1] = float64(int16(binary.NativeEndian.Uint16(samples[off+2:]))) / 32768.0
		}
		s.buffer = append(s.buffer, frame)
	}
	if over := len(s.buffer) - s.capacity; over > 0 {
		s.buffer = append(s.buffer[:0], s.buffer[over:]...)
		s.dropped += over
	}
}

// Pause implements vlc.AudioCallback.
func (s *Streamer) Pause(time.Duration) {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

// Resume implements vlc.AudioCallback.
func (s *Streamer) Resume(time.Duration) {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

// Flush implements vlc.AudioCallback.
func (s *Streamer) Flush(time.Duration) {
	s.mu.Lock()
	s.buffer = s.buffer[:0]
	s.mu.Unlock()
}

// Drain implements vlc.AudioCallback. Stream ends once the buffer empties.
func (s *Streamer) Drain() {
	s.mu.Lock()
	s.drained = true
	s.mu.Unlock()
}

// Stream implements beep.Streamer. Underruns are filled with silence until
// the stream has been drained.
func (s *Streamer) Stream(samples [][2]float64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		clear(samples)
		return len(samples), true
	}
	n := copy(samples, s.buffer)
	s.buffer = append(s.buffer[:0], s.buffer[n:]...)
	if n < len(samples) {
		if s.drained {
			return n, n > 0
		}
		clear(samples[n:])
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (s *Streamer) Err() error { return nil }

// Dropped returns the number of frames discarded because the consumer was
// too slow.
func (s *Streamer) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}
