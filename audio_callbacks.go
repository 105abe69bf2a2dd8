package vlc

import (
	"sync"
	"time"
	"unsafe"
)

// AudioFormat is the PCM format requested from libvlc.
type AudioFormat struct {
	Format   string // fourcc: "S16N", "S32N" or "FL32"
	Rate     int
	Channels int
}

// DefaultAudioFormat is 16 bit native-endian stereo at 44.1kHz.
var DefaultAudioFormat = AudioFormat{Format: "S16N", Rate: 44100, Channels: 2}

// BytesPerSample returns the size of one sample of one channel.
func (f AudioFormat) BytesPerSample() int {
	switch f.Format {
	case "S32N", "FL32":
		return 4
	default:
		return 2
	}
}

// FrameSize returns the size of one sample across all channels.
func (f AudioFormat) FrameSize() int {
	return f.BytesPerSample() * f.Channels
}

// AudioCallback receives decoded PCM instead of it going to an audio output.
// Methods run on libvlc's audio thread.
type AudioCallback interface {
	// Play delivers sampleCount frames. samples is only valid during the call.
	Play(samples []byte, sampleCount int, pts time.Duration)
	Pause(pts time.Duration)
	Resume(pts time.Duration)
	Flush(pts time.Duration)
	Drain()
}

type audioRenderer struct {
	id       uintptr
	format   AudioFormat
	callback AudioCallback
}

var (
	audioRenderersMu sync.RWMutex
	audioRenderers   = make(map[uintptr]*audioRenderer)
	audioCounter     uintptr
)

// SetAudioCallback diverts decoded audio to cb in the given format. Must be
// called before playback starts.
func (p *MediaPlayer) SetAudioCallback(format AudioFormat, cb AudioCallback) {
	r := &audioRenderer{format: format, callback: cb}

	audioRenderersMu.Lock()
	audioCounter++
	r.id = audioCounter
	audioRenderers[r.id] = r
	audioRenderersMu.Unlock()

	if p.audio != nil {
		p.audio.unregister()
	}
	p.audio = r

	lib := p.f.lib
	lib.audioSetCallbacks(p.handle, lib.audioPlayCb, lib.audioPauseCb, lib.audioResumeCb, lib.audioFlushCb, lib.audioDrainCb, r.id)
	lib.audioSetFormat(p.handle, format.Format, uint32(format.Rate), uint32(format.Channels))
}

func lookupAudioRenderer(id uintptr) *audioRenderer {
	audioRenderersMu.RLock()
	defer audioRenderersMu.RUnlock()
	return audioRenderers[id]
}

func (r *audioRenderer) unregister() {
	audioRenderersMu.Lock()
	delete(audioRenderers, r.id)
	audioRenderersMu.Unlock()
}

// pts values arrive in microseconds.
func usDuration(us uintptr) time.Duration {
	return time.Duration(int64(us)) * time.Microsecond
}

func audioPlayTrampoline(data, samples, count, pts uintptr) {
	r := lookupAudioRenderer(data)
	if r == nil || samples == 0 {
		return
	}
	n := int(uint32(count))
	pcm := unsafe.Slice((*byte)(unsafe.Pointer(samples)), n*r.format.FrameSize())
	r.callback.Play(pcm, n, usDuration(pts))
}

func audioPauseTrampoline(data, pts uintptr) {
	if r := lookupAudioRenderer(data); r != nil {
		r.callback.Pause(usDuration(pts))
	}
}

func audioResumeTrampoline(data, pts uintptr) {
	if r := lookupAudioRenderer(data); r != nil {
		r.callback.Resume(usDuration(pts))
	}
}

func audioFlushTrampoline(data, pts uintptr) {
	if r := lookupAudioRenderer(data); r != nil {
		r.callback.Flush(usDuration(pts))
	}
}

func audioDrainTrampoline(data uintptr) {
	if r := lookupAudioRenderer(data); r != nil {
		r.callback.Drain()
	}
}
