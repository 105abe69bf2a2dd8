package vlc

import (
	"fmt"
	"sync/atomic"
)

// MediaListPlayer plays a MediaList through a MediaPlayer.
type MediaListPlayer struct {
	f        *Factory
	handle   uintptr
	events   *MediaListPlayerEventService
	player   *MediaPlayer
	list     *MediaList
	released atomic.Bool
}

func newMediaListPlayer(f *Factory, handle uintptr) *MediaListPlayer {
	lp := &MediaListPlayer{f: f, handle: handle}
	svc := newEventService(f, f.lib.mediaListPlayerEventManager(handle), MediaListPlayerPlayed, MediaListPlayerStopped,
		func(raw rawEvent) notifier[MediaListPlayerEventListener] {
			return createMediaListPlayerEvent(lp, raw)
		})
	lp.events = &MediaListPlayerEventService{svc: svc}
	f.metrics.handleAcquired("media_list_player")
	return lp
}

// Events returns the media list player event service.
func (lp *MediaListPlayer) Events() *MediaListPlayerEventService {
	return lp.events
}

// SetMediaPlayer makes lp drive p. The caller still owns p.
func (lp *MediaListPlayer) SetMediaPlayer(p *MediaPlayer) {
	lp.f.lib.mediaListPlayerSetMediaPlayer(lp.handle, p.handle)
	lp.player = p
}

// MediaPlayer returns the player set with SetMediaPlayer.
func (lp *MediaListPlayer) MediaPlayer() *MediaPlayer {
	return lp.player
}

// SetMediaList sets the list to play. The caller still owns ml.
func (lp *MediaListPlayer) SetMediaList(ml *MediaList) {
	lp.f.lib.mediaListPlayerSetMediaList(lp.handle, ml.handle)
	lp.list = ml
}

// MediaList returns the list set with SetMediaList.
func (lp *MediaListPlayer) MediaList() *MediaList {
	return lp.list
}

// Play starts playing the list.
func (lp *MediaListPlayer) Play() {
	lp.f.lib.mediaListPlayerPlay(lp.handle)
}

// Pause toggles pause.
func (lp *MediaListPlayer) Pause() {
	lp.f.lib.mediaListPlayerPause(lp.handle)
}

// SetPause pauses or resumes.
func (lp *MediaListPlayer) SetPause(pause bool) {
	lp.f.lib.mediaListPlayerSetPause(lp.handle, boolInt(pause))
}

// Stop stops playback.
func (lp *MediaListPlayer) Stop() {
	lp.f.lib.mediaListPlayerStop(lp.handle)
}

// IsPlaying reports whether the list is playing.
func (lp *MediaListPlayer) IsPlaying() bool {
	return lp.f.lib.mediaListPlayerIsPlaying(lp.handle) != 0
}

// State returns the list player state.
func (lp *MediaListPlayer) State() State {
	return State(lp.f.lib.mediaListPlayerGetState(lp.handle))
}

// PlayItem plays the item at index.
func (lp *MediaListPlayer) PlayItem(index int) error {
	if lp.f.lib.mediaListPlayerPlayItemAt(lp.handle, int32(index)) != 0 {
		return fmt.Errorf("play item %d: %w", index, lp.f.lib.nativeErr("libvlc_media_list_player_play_item_at_index"))
	}
	return nil
}

// PlayMedia plays m, which must belong to the current list.
func (lp *MediaListPlayer) PlayMedia(m *Media) error {
	if lp.f.lib.mediaListPlayerPlayItem(lp.handle, m.handle) != 0 {
		return lp.f.lib.nativeErr("libvlc_media_list_player_play_item")
	}
	return nil
}

// Next plays the next item.
func (lp *MediaListPlayer) Next() error {
	if lp.f.lib.mediaListPlayerNext(lp.handle) != 0 {
		return lp.f.lib.nativeErr("libvlc_media_list_player_next")
	}
	return nil
}

// Previous plays the previous item.
func (lp *MediaListPlayer) Previous() error {
	if lp.f.lib.mediaListPlayerPrevious(lp.handle) != 0 {
		return lp.f.lib.nativeErr("libvlc_media_list_player_previous")
	}
	return nil
}

// SetMode sets how playback advances at the end of an item.
func (lp *MediaListPlayer) SetMode(mode PlaybackMode) {
	lp.f.lib.mediaListPlayerSetMode(lp.handle, int32(mode))
}

// Release detaches events and destroys the native list player. The player
// and list it was bound to are not released. Further calls are no-ops.
func (lp *MediaListPlayer) Release() {
	if !lp.released.CompareAndSwap(false, true) {
		return
	}
	lp.events.svc.release()
	lp.f.lib.mediaListPlayerRelease(lp.handle)
	lp.player = nil
	lp.list = nil
	lp.f.metrics.handleReleased("media_list_player")
}
