package vlc

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// fakeLibVLC is an in-memory libvlc. It hands out unique handles, records
// every create/release/attach call and raises media list events through the
// normal dispatch path.
type fakeLibVLC struct {
	api *libvlcAPI

	mu       sync.Mutex
	calls    []string
	next     uintptr
	managers map[uintptr]uintptr // event manager -> object
	attached map[uintptr]map[EventType]uintptr
	detached map[uintptr][]EventType
	lists    map[uintptr][]uintptr
	released map[uintptr]int
	failNext map[string]bool
}

func newFakeLibVLC() *fakeLibVLC {
	f := &fakeLibVLC{
		next:     0x1000,
		managers: make(map[uintptr]uintptr),
		attached: make(map[uintptr]map[EventType]uintptr),
		detached: make(map[uintptr][]EventType),
		lists:    make(map[uintptr][]uintptr),
		released: make(map[uintptr]int),
		failNext: make(map[string]bool),
	}
	f.api = f.build()
	return f
}

// installFakeLibVLC makes NewFactory use a fresh fake for the duration of t.
func installFakeLibVLC(t testing.TB) *fakeLibVLC {
	t.Helper()
	fake := newFakeLibVLC()
	prev := defaultLibrary
	defaultLibrary = func() (*libvlcAPI, error) { return fake.api, nil }
	t.Cleanup(func() { defaultLibrary = prev })
	return fake
}

func (f *fakeLibVLC) record(format string, args ...any) {
	f.mu.Lock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	f.mu.Unlock()
}

func (f *fakeLibVLC) newHandle(kind string) uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext[kind] {
		delete(f.failNext, kind)
		return 0
	}
	f.next += 0x10
	f.calls = append(f.calls, kind)
	return f.next
}

func (f *fakeLibVLC) manager(object uintptr) uintptr {
	if object == 0 {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m := object + 1
	f.managers[m] = object
	return m
}

func (f *fakeLibVLC) release(kind string, handle uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released[handle]++
	f.calls = append(f.calls, kind)
}

// fail makes the next call of kind fail.
func (f *fakeLibVLC) fail(kind string) {
	f.mu.Lock()
	f.failNext[kind] = true
	f.mu.Unlock()
}

func (f *fakeLibVLC) shouldFail(kind string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext[kind] {
		delete(f.failNext, kind)
		return true
	}
	return false
}

// releases returns the recorded calls whose name ends in "release".
func (f *fakeLibVLC) releases() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		if strings.HasSuffix(c, "release") {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeLibVLC) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeLibVLC) releaseCount(handle uintptr) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.released[handle]
}

// attachedTypes returns the event types currently attached on manager.
func (f *fakeLibVLC) attachedTypes(manager uintptr) []EventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []EventType
	for _, t := range EventTypes() {
		if _, ok := f.attached[manager][t]; ok {
			out = append(out, t)
		}
	}
	return out
}

func (f *fakeLibVLC) detachedTypes(manager uintptr) []EventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]EventType(nil), f.detached[manager]...)
}

// raise delivers an event for object to whatever is attached, the way the
// trampoline would.
func (f *fakeLibVLC) raise(object uintptr, raw rawEvent) {
	f.mu.Lock()
	userData, ok := f.attached[object+1][raw.Type]
	f.mu.Unlock()
	if !ok {
		return
	}
	raw.Object = object
	dispatchEvent(userData, raw)
}

func (f *fakeLibVLC) listItems(list uintptr) []uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uintptr(nil), f.lists[list]...)
}

func (f *fakeLibVLC) build() *libvlcAPI {
	noop := func(uintptr) {}
	return &libvlcAPI{
		new:        func(int32, **byte) uintptr { return f.newHandle("new") },
		release:    func(h uintptr) { f.release("release", h) },
		getVersion: func() uintptr { return 0 },
		compiler:   func() uintptr { return 0 },
		errmsg:     func() uintptr { return 0 },
		free:       noop,

		eventAttach: func(manager uintptr, eventType int32, _ uintptr, userData uintptr) int32 {
			if f.shouldFail("event_attach") {
				return -1
			}
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.attached[manager] == nil {
				f.attached[manager] = make(map[EventType]uintptr)
			}
			f.attached[manager][EventType(eventType)] = userData
			return 0
		},
		eventDetach: func(manager uintptr, eventType int32, _ uintptr, _ uintptr) {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.attached[manager], EventType(eventType))
			f.detached[manager] = append(f.detached[manager], EventType(eventType))
		},
		eventTypeName: func(int32) uintptr { return 0 },

		mediaNewLocation:      func(uintptr, string) uintptr { return f.newHandle("media_new") },
		mediaNewPath:          func(uintptr, string) uintptr { return f.newHandle("media_new") },
		mediaRetain:           func(h uintptr) { f.record("media_retain") },
		mediaRelease:          func(h uintptr) { f.release("media_release", h) },
		mediaDuplicate:        func(uintptr) uintptr { return f.newHandle("media_new") },
		mediaEventManager:     f.manager,
		mediaGetMRL:           func(uintptr) uintptr { return 0 },
		mediaGetState:         func(uintptr) int32 { return int32(StateNothingSpecial) },
		mediaGetDuration:      func(uintptr) int64 { return -1 },
		mediaGetMeta:          func(uintptr, int32) uintptr { return 0 },
		mediaSetMeta:          func(uintptr, int32, string) {},
		mediaAddOption:        func(uintptr, string) {},
		mediaParseWithOptions: func(uintptr, int32, int32) int32 { return 0 },
		mediaGetParsedStatus:  func(uintptr) int32 { return 0 },
		mediaSubitems:         func(uintptr) uintptr { return 0 },
		mediaParseStop:        noop,
		mediaGetType:          func(uintptr) int32 { return 0 },
		mediaSaveMeta:         func(uintptr) int32 { return 1 },

		mediaListNew:          func(uintptr) uintptr { return f.newHandle("media_list_new") },
		mediaListRelease:      func(h uintptr) { f.release("media_list_release", h) },
		mediaListEventManager: f.manager,
		mediaListLock:         func(uintptr) { f.record("media_list_lock") },
		mediaListUnlock:       func(uintptr) { f.record("media_list_unlock") },
		mediaListAddMedia: func(list, media uintptr) int32 {
			if f.shouldFail("media_list_add") {
				return -1
			}
			f.mu.Lock()
			index := len(f.lists[list])
			f.lists[list] = append(f.lists[list], media)
			f.mu.Unlock()
			f.raise(list, rawEvent{Type: MediaListItemAdded, U: [2]uint64{uint64(media), uint64(index)}})
			return 0
		},
		mediaListInsertMedia: func(list, media uintptr, index int32) int32 {
			f.mu.Lock()
			items := f.lists[list]
			if int(index) > len(items) || index < 0 {
				f.mu.Unlock()
				return -1
			}
			items = append(items[:index], append([]uintptr{media}, items[index:]...)...)
			f.lists[list] = items
			f.mu.Unlock()
			f.raise(list, rawEvent{Type: MediaListItemAdded, U: [2]uint64{uint64(media), uint64(index)}})
			return 0
		},
		mediaListRemoveIndex: func(list uintptr, index int32) int32 {
			f.mu.Lock()
			items := f.lists[list]
			if int(index) >= len(items) || index < 0 {
				f.mu.Unlock()
				return -1
			}
			media := items[index]
			f.lists[list] = append(items[:index:index], items[index+1:]...)
			f.mu.Unlock()
			f.raise(list, rawEvent{Type: MediaListItemDeleted, U: [2]uint64{uint64(media), uint64(index)}})
			return 0
		},
		mediaListCount: func(list uintptr) int32 {
			f.mu.Lock()
			defer f.mu.Unlock()
			return int32(len(f.lists[list]))
		},
		mediaListItemAtIndex: func(list uintptr, index int32) uintptr {
			f.mu.Lock()
			defer f.mu.Unlock()
			items := f.lists[list]
			if int(index) >= len(items) || index < 0 {
				return 0
			}
			f.calls = append(f.calls, "media_retain")
			return items[index]
		},
		mediaListIndexOfItem: func(list, media uintptr) int32 {
			f.mu.Lock()
			defer f.mu.Unlock()
			for i, m := range f.lists[list] {
				if m == media {
					return int32(i)
				}
			}
			return -1
		},
		mediaListIsReadonly: func(uintptr) int32 { return 0 },

		mediaPlayerNew:          func(uintptr) uintptr { return f.newHandle("media_player_new") },
		mediaPlayerRelease:      func(h uintptr) { f.release("media_player_release", h) },
		mediaPlayerEventManager: f.manager,
		mediaPlayerSetMedia:     func(uintptr, uintptr) { f.record("media_player_set_media") },
		mediaPlayerGetMedia:     func(uintptr) uintptr { return 0 },
		mediaPlayerPlay:         func(uintptr) int32 { f.record("media_player_play"); return 0 },
		mediaPlayerSetPause:     func(uintptr, int32) {},
		mediaPlayerPause:        func(uintptr) { f.record("media_player_pause") },
		mediaPlayerStop:         noop,
		mediaPlayerIsPlaying:    func(uintptr) int32 { return 0 },
		mediaPlayerGetLength:    func(uintptr) int64 { return -1 },
		mediaPlayerGetTime:      func(uintptr) int64 { return -1 },
		mediaPlayerSetTime:      func(uintptr, int64) {},
		mediaPlayerGetPosition:  func(uintptr) float32 { return 0 },
		mediaPlayerSetPosition:  func(uintptr, float32) {},
		mediaPlayerGetState:     func(uintptr) int32 { return 0 },
		mediaPlayerGetRate:      func(uintptr) float32 { return 1 },
		mediaPlayerSetRate:      func(uintptr, float32) int32 { return 0 },
		mediaPlayerIsSeekable:   func(uintptr) int32 { return 0 },
		mediaPlayerCanPause:     func(uintptr) int32 { return 0 },
		mediaPlayerNextFrame:    noop,
		mediaPlayerSetXWindow:   func(uintptr, uint32) { f.record("media_player_set_xwindow") },
		mediaPlayerSetNSObject:  func(uintptr, uintptr) { f.record("media_player_set_nsobject") },
		mediaPlayerSetHWND:      func(uintptr, uintptr) { f.record("media_player_set_hwnd") },
		setFullscreen:           func(_ uintptr, on int32) { f.record("set_fullscreen %d", on) },
		getFullscreen:           func(uintptr) int32 { return 0 },
		videoSetKeyInput:        func(_ uintptr, on uint32) { f.record("video_set_key_input %d", on) },
		videoSetMouseInput:      func(_ uintptr, on uint32) { f.record("video_set_mouse_input %d", on) },
		videoGetSize: func(_ uintptr, _ uint32, w, h *uint32) int32 {
			*w, *h = 640, 360
			return 0
		},
		videoTakeSnapshot: func(uintptr, uint32, string, uint32, uint32) int32 { return 0 },
		videoSetCallbacks: func(uintptr, uintptr, uintptr, uintptr, uintptr) {
			f.record("video_set_callbacks")
		},
		videoSetFormatCallbacks: func(uintptr, uintptr, uintptr) { f.record("video_set_format_callbacks") },
		audioSetCallbacks: func(uintptr, uintptr, uintptr, uintptr, uintptr, uintptr, uintptr) {
			f.record("audio_set_callbacks")
		},
		audioSetFormat: func(_ uintptr, format string, rate, channels uint32) {
			f.record("audio_set_format %s %d %d", format, rate, channels)
		},
		audioGetVolume: func(uintptr) int32 { return 100 },
		audioSetVolume: func(uintptr, int32) int32 { return 0 },
		audioGetMute:   func(uintptr) int32 { return 0 },
		audioSetMute:   func(uintptr, int32) {},

		mediaListPlayerNew:            func(uintptr) uintptr { return f.newHandle("media_list_player_new") },
		mediaListPlayerRelease:        func(h uintptr) { f.release("media_list_player_release", h) },
		mediaListPlayerEventManager:   f.manager,
		mediaListPlayerSetMediaPlayer: func(uintptr, uintptr) { f.record("media_list_player_set_media_player") },
		mediaListPlayerSetMediaList:   func(uintptr, uintptr) { f.record("media_list_player_set_media_list") },
		mediaListPlayerPlay:           func(uintptr) { f.record("media_list_player_play") },
		mediaListPlayerPause:          noop,
		mediaListPlayerSetPause:       func(uintptr, int32) {},
		mediaListPlayerIsPlaying:      func(uintptr) int32 { return 0 },
		mediaListPlayerGetState:       func(uintptr) int32 { return 0 },
		mediaListPlayerPlayItemAt: func(_ uintptr, index int32) int32 {
			if index < 0 {
				return -1
			}
			return 0
		},
		mediaListPlayerPlayItem: func(uintptr, uintptr) int32 { return 0 },
		mediaListPlayerStop:     noop,
		mediaListPlayerNext:     func(uintptr) int32 { return -1 },
		mediaListPlayerPrevious: func(uintptr) int32 { return 0 },
		mediaListPlayerSetMode:  func(_ uintptr, mode int32) { f.record("media_list_player_set_mode %d", mode) },
	}
}
