package vlc

import (
	"fmt"
	"sync/atomic"
	"time"
)

// MediaPlayer wraps a native media player. Lifecycle: create, attach
// listeners, bind media, control, Release.
type MediaPlayer struct {
	f        *Factory
	handle   uintptr
	events   *MediaPlayerEventService
	video    *videoRenderer
	audio    *audioRenderer
	released atomic.Bool
}

func newMediaPlayer(f *Factory, handle uintptr) *MediaPlayer {
	p := &MediaPlayer{f: f, handle: handle}
	svc := newEventService(f, f.lib.mediaPlayerEventManager(handle), MediaPlayerMediaChanged, MediaPlayerChapterChanged,
		func(raw rawEvent) notifier[MediaPlayerEventListener] {
			return createMediaPlayerEvent(p, raw)
		})
	p.events = &MediaPlayerEventService{svc: svc}
	f.metrics.handleAcquired("media_player")
	return p
}

// Events returns the media player event service.
func (p *MediaPlayer) Events() *MediaPlayerEventService {
	return p.events
}

// SetMedia binds m to the player. The player takes its own reference, so the
// caller may release m afterwards.
func (p *MediaPlayer) SetMedia(m *Media) {
	if m == nil {
		p.f.lib.mediaPlayerSetMedia(p.handle, 0)
		return
	}
	p.f.lib.mediaPlayerSetMedia(p.handle, m.handle)
}

// Media returns an owned reference to the current media, or nil.
func (p *MediaPlayer) Media() *Media {
	handle := p.f.lib.mediaPlayerGetMedia(p.handle)
	if handle == 0 {
		return nil
	}
	return newMedia(p.f, handle)
}

// PlayMedia binds new media for mrl and starts playback.
func (p *MediaPlayer) PlayMedia(mrl string, options ...string) error {
	m, err := p.f.NewMedia(mrl, options...)
	if err != nil {
		return err
	}
	p.SetMedia(m)
	m.Release()
	return p.Play()
}

// Play starts playback asynchronously.
func (p *MediaPlayer) Play() error {
	if p.f.lib.mediaPlayerPlay(p.handle) != 0 {
		return p.f.lib.nativeErr("libvlc_media_player_play")
	}
	return nil
}

// Pause toggles pause.
func (p *MediaPlayer) Pause() {
	p.f.lib.mediaPlayerPause(p.handle)
}

// SetPause pauses or resumes; no-op when the media cannot pause.
func (p *MediaPlayer) SetPause(pause bool) {
	p.f.lib.mediaPlayerSetPause(p.handle, boolInt(pause))
}

// Stop stops playback.
func (p *MediaPlayer) Stop() {
	p.f.lib.mediaPlayerStop(p.handle)
}

// IsPlaying reports whether the player is playing.
func (p *MediaPlayer) IsPlaying() bool {
	return p.f.lib.mediaPlayerIsPlaying(p.handle) != 0
}

// State returns the player state.
func (p *MediaPlayer) State() State {
	return State(p.f.lib.mediaPlayerGetState(p.handle))
}

// Length returns the media length, or -1 if unknown.
func (p *MediaPlayer) Length() time.Duration {
	return msDuration(p.f.lib.mediaPlayerGetLength(p.handle))
}

// Time returns the playback time, or -1 without media.
func (p *MediaPlayer) Time() time.Duration {
	return msDuration(p.f.lib.mediaPlayerGetTime(p.handle))
}

// SetTime seeks to t. Not all formats support seeking.
func (p *MediaPlayer) SetTime(t time.Duration) {
	p.f.lib.mediaPlayerSetTime(p.handle, t.Milliseconds())
}

// Position returns the playback position in [0, 1].
func (p *MediaPlayer) Position() float32 {
	return p.f.lib.mediaPlayerGetPosition(p.handle)
}

// SetPosition seeks to pos in [0, 1].
func (p *MediaPlayer) SetPosition(pos float32) {
	p.f.lib.mediaPlayerSetPosition(p.handle, pos)
}

// Rate returns the playback rate.
func (p *MediaPlayer) Rate() float32 {
	return p.f.lib.mediaPlayerGetRate(p.handle)
}

// SetRate changes the playback rate; 1 is normal speed.
func (p *MediaPlayer) SetRate(rate float32) error {
	if p.f.lib.mediaPlayerSetRate(p.handle, rate) != 0 {
		return p.f.lib.nativeErr("libvlc_media_player_set_rate")
	}
	return nil
}

// IsSeekable reports whether the current media supports seeking.
func (p *MediaPlayer) IsSeekable() bool {
	return p.f.lib.mediaPlayerIsSeekable(p.handle) != 0
}

// CanPause reports whether the current media can be paused.
func (p *MediaPlayer) CanPause() bool {
	return p.f.lib.mediaPlayerCanPause(p.handle) != 0
}

// NextFrame displays the next video frame when paused.
func (p *MediaPlayer) NextFrame() {
	p.f.lib.mediaPlayerNextFrame(p.handle)
}

// Volume returns the software volume in percent, or -1 if undefined.
func (p *MediaPlayer) Volume() int {
	return int(p.f.lib.audioGetVolume(p.handle))
}

// SetVolume sets the software volume in percent (0 = mute, 100 = 0dB).
func (p *MediaPlayer) SetVolume(volume int) error {
	if p.f.lib.audioSetVolume(p.handle, int32(volume)) != 0 {
		return fmt.Errorf("volume %d: %w", volume, p.f.lib.nativeErr("libvlc_audio_set_volume"))
	}
	return nil
}

// IsMuted reports the mute status.
func (p *MediaPlayer) IsMuted() bool {
	return p.f.lib.audioGetMute(p.handle) > 0
}

// SetMute mutes or unmutes audio.
func (p *MediaPlayer) SetMute(mute bool) {
	p.f.lib.audioSetMute(p.handle, boolInt(mute))
}

// SetFullScreen toggles libvlc's native full-screen mode.
func (p *MediaPlayer) SetFullScreen(on bool) {
	p.f.lib.setFullscreen(p.handle, boolInt(on))
}

// IsFullScreen reports libvlc's native full-screen mode.
func (p *MediaPlayer) IsFullScreen() bool {
	return p.f.lib.getFullscreen(p.handle) != 0
}

// SetKeyInput enables or disables native keyboard event handling.
func (p *MediaPlayer) SetKeyInput(on bool) {
	p.f.lib.videoSetKeyInput(p.handle, uint32(boolInt(on)))
}

// SetMouseInput enables or disables native mouse event handling.
func (p *MediaPlayer) SetMouseInput(on bool) {
	p.f.lib.videoSetMouseInput(p.handle, uint32(boolInt(on)))
}

// VideoSize returns the pixel dimensions of video output num.
func (p *MediaPlayer) VideoSize(num int) (width, height int, err error) {
	var w, h uint32
	if p.f.lib.videoGetSize(p.handle, uint32(num), &w, &h) != 0 {
		return 0, 0, p.f.lib.nativeErr("libvlc_video_get_size")
	}
	return int(w), int(h), nil
}

// TakeSnapshot saves the current frame of output num as PNG. Zero width or
// height keeps the aspect ratio. Completion is reported by
// MediaPlayerSnapshotTaken.
func (p *MediaPlayer) TakeSnapshot(num int, path string, width, height int) error {
	if p.f.lib.videoTakeSnapshot(p.handle, uint32(num), path, uint32(width), uint32(height)) != 0 {
		return p.f.lib.nativeErr("libvlc_video_take_snapshot")
	}
	return nil
}

// SetXWindow renders into an X11 window.
func (p *MediaPlayer) SetXWindow(drawable uint32) {
	p.f.lib.mediaPlayerSetXWindow(p.handle, drawable)
}

// SetNSObject renders into a Cocoa NSView.
func (p *MediaPlayer) SetNSObject(view uintptr) {
	p.f.lib.mediaPlayerSetNSObject(p.handle, view)
}

// SetHWND renders into a Win32 window.
func (p *MediaPlayer) SetHWND(hwnd uintptr) {
	p.f.lib.mediaPlayerSetHWND(p.handle, hwnd)
}

// Release detaches events, destroys the native player and drops any
// renderer state. Further calls are no-ops.
func (p *MediaPlayer) Release() {
	if !p.released.CompareAndSwap(false, true) {
		return
	}
	p.events.svc.release()
	p.f.lib.mediaPlayerRelease(p.handle)
	// The native player has joined its video and audio threads by now.
	if p.video != nil {
		p.video.unregister()
	}
	if p.audio != nil {
		p.audio.unregister()
	}
	p.f.metrics.handleReleased("media_player")
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func msDuration(ms int64) time.Duration {
	if ms < 0 {
		return -1
	}
	return time.Duration(ms) * time.Millisecond
}
