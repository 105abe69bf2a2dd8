package vlc

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Media wraps one native media reference. The reference is released exactly
// once by Release; the native object lives on while other owners (a list, a
// player) hold their own references.
type Media struct {
	f        *Factory
	handle   uintptr
	events   *MediaEventService
	released atomic.Bool
}

func newMedia(f *Factory, handle uintptr) *Media {
	m := &Media{f: f, handle: handle}
	svc := newEventService(f, f.lib.mediaEventManager(handle), MediaMetaChanged, MediaThumbnailGenerated,
		func(raw rawEvent) notifier[MediaEventListener] {
			return createMediaEvent(m, raw)
		})
	m.events = &MediaEventService{svc: svc}
	f.metrics.handleAcquired("media")
	return m
}

// MediaRef is a non-owning reference to native media, as delivered by events.
// It is only valid while the event is being handled unless turned into an
// owned Media with NewMedia.
type MediaRef struct {
	f      *Factory
	handle uintptr
}

func (m *Media) ref(handle uintptr) MediaRef {
	return MediaRef{f: m.f, handle: handle}
}

// Valid reports whether the reference points at native media.
func (r MediaRef) Valid() bool {
	return r.handle != 0
}

// MRL returns the media resource locator.
func (r MediaRef) MRL() string {
	if r.handle == 0 {
		return ""
	}
	return r.f.lib.takeString(r.f.lib.mediaGetMRL(r.handle))
}

// NewMedia retains the native media and returns a new owner for it. The
// caller must Release the result.
func (r MediaRef) NewMedia() (*Media, error) {
	if r.handle == 0 {
		return nil, fmt.Errorf("%w: nil media reference", ErrNativeCall)
	}
	r.f.lib.mediaRetain(r.handle)
	return newMedia(r.f, r.handle), nil
}

// Events returns the media event service.
func (m *Media) Events() *MediaEventService {
	return m.events
}

// Ref returns a non-owning reference to this media.
func (m *Media) Ref() MediaRef {
	return m.ref(m.handle)
}

// MRL returns the media resource locator.
func (m *Media) MRL() string {
	return m.f.lib.takeString(m.f.lib.mediaGetMRL(m.handle))
}

// State returns the current media state.
func (m *Media) State() State {
	return State(m.f.lib.mediaGetState(m.handle))
}

// Type returns the media type.
func (m *Media) Type() MediaType {
	return MediaType(m.f.lib.mediaGetType(m.handle))
}

// Duration returns the media duration, or -1 if unknown.
func (m *Media) Duration() time.Duration {
	ms := m.f.lib.mediaGetDuration(m.handle)
	if ms < 0 {
		return -1
	}
	return time.Duration(ms) * time.Millisecond
}

// Meta returns a metadata value. Media should be parsed first.
func (m *Media) Meta(key Meta) string {
	return m.f.lib.takeString(m.f.lib.mediaGetMeta(m.handle, int32(key)))
}

// SetMeta sets a metadata value in memory; SaveMeta persists it.
func (m *Media) SetMeta(key Meta, value string) {
	m.f.lib.mediaSetMeta(m.handle, int32(key), value)
}

// SaveMeta writes metadata back to the media.
func (m *Media) SaveMeta() error {
	if m.f.lib.mediaSaveMeta(m.handle) == 0 {
		return m.f.lib.nativeErr("libvlc_media_save_meta")
	}
	return nil
}

// AddOptions adds input options such as ":no-audio" or ":start-time=10".
func (m *Media) AddOptions(options ...string) {
	for _, opt := range options {
		m.f.lib.mediaAddOption(m.handle, opt)
	}
}

// Parse starts an asynchronous parse. Completion is reported through
// MediaParsedChanged. A zero timeout uses libvlc's default; a negative one
// waits indefinitely.
func (m *Media) Parse(flags ParseFlag, timeout time.Duration) error {
	var ms int32
	switch {
	case timeout > 0:
		ms = int32(timeout.Milliseconds())
	case timeout == 0:
		ms = -1
	}
	if rc := m.f.lib.mediaParseWithOptions(m.handle, int32(flags), ms); rc != 0 {
		return m.f.lib.nativeErr("libvlc_media_parse_with_options")
	}
	return nil
}

// StopParse cancels a running asynchronous parse.
func (m *Media) StopParse() {
	m.f.lib.mediaParseStop(m.handle)
}

// ParsedStatus returns the outcome of the last parse.
func (m *Media) ParsedStatus() ParsedStatus {
	return ParsedStatus(m.f.lib.mediaGetParsedStatus(m.handle))
}

// SubItems returns the sub-items list, e.g. the entries of a parsed playlist.
// The caller must Release the list.
func (m *Media) SubItems() (*MediaList, error) {
	handle := m.f.lib.mediaSubitems(m.handle)
	if handle == 0 {
		return nil, m.f.lib.nativeErr("libvlc_media_subitems")
	}
	return newMediaList(m.f, handle), nil
}

// Duplicate creates an independent copy of the media.
func (m *Media) Duplicate() (*Media, error) {
	handle := m.f.lib.mediaDuplicate(m.handle)
	if handle == 0 {
		return nil, m.f.lib.nativeErr("libvlc_media_duplicate")
	}
	return newMedia(m.f, handle), nil
}

// Release detaches events and drops this owner's native reference. Further
// calls are no-ops; any other method call after Release is undefined.
func (m *Media) Release() {
	if !m.released.CompareAndSwap(false, true) {
		return
	}
	m.events.svc.release()
	m.f.lib.mediaRelease(m.handle)
	m.f.metrics.handleReleased("media")
}
