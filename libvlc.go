package vlc

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotAvailable is returned when libvlc could not be loaded.
	ErrNotAvailable = errors.New("vlc: libvlc not available")
	// ErrReleased is returned by operations on a released component.
	ErrReleased = errors.New("vlc: already released")
	// ErrNativeCall wraps a failed libvlc call.
	ErrNativeCall = errors.New("vlc: native call failed")
)

// libvlcAPI holds one function pointer per libvlc entry point used by the
// binding. Handles are opaque native pointers carried as uintptr.
type libvlcAPI struct {
	// core
	new        func(argc int32, argv **byte) uintptr
	release    func(instance uintptr)
	getVersion func() uintptr
	compiler   func() uintptr
	errmsg     func() uintptr
	free       func(ptr uintptr)

	// events
	eventAttach   func(manager uintptr, eventType int32, callback uintptr, userData uintptr) int32
	eventDetach   func(manager uintptr, eventType int32, callback uintptr, userData uintptr)
	eventTypeName func(eventType int32) uintptr

	// media
	mediaNewLocation      func(instance uintptr, mrl string) uintptr
	mediaNewPath          func(instance uintptr, path string) uintptr
	mediaRetain           func(media uintptr)
	mediaRelease          func(media uintptr)
	mediaDuplicate        func(media uintptr) uintptr
	mediaEventManager     func(media uintptr) uintptr
	mediaGetMRL           func(media uintptr) uintptr
	mediaGetState         func(media uintptr) int32
	mediaGetDuration      func(media uintptr) int64
	mediaGetMeta          func(media uintptr, meta int32) uintptr
	mediaSetMeta          func(media uintptr, meta int32, value string)
	mediaAddOption        func(media uintptr, option string)
	mediaParseWithOptions func(media uintptr, flags int32, timeoutMs int32) int32
	mediaGetParsedStatus  func(media uintptr) int32
	mediaSubitems         func(media uintptr) uintptr
	mediaParseStop        func(media uintptr)
	mediaGetType          func(media uintptr) int32
	mediaSaveMeta         func(media uintptr) int32

	// media list
	mediaListNew          func(instance uintptr) uintptr
	mediaListRelease      func(list uintptr)
	mediaListEventManager func(list uintptr) uintptr
	mediaListLock         func(list uintptr)
	mediaListUnlock       func(list uintptr)
	mediaListAddMedia     func(list uintptr, media uintptr) int32
	mediaListInsertMedia  func(list uintptr, media uintptr, index int32) int32
	mediaListRemoveIndex  func(list uintptr, index int32) int32
	mediaListCount        func(list uintptr) int32
	mediaListItemAtIndex  func(list uintptr, index int32) uintptr
	mediaListIndexOfItem  func(list uintptr, media uintptr) int32
	mediaListIsReadonly   func(list uintptr) int32

	// media player
	mediaPlayerNew          func(instance uintptr) uintptr
	mediaPlayerRelease      func(player uintptr)
	mediaPlayerEventManager func(player uintptr) uintptr
	mediaPlayerSetMedia     func(player uintptr, media uintptr)
	mediaPlayerGetMedia     func(player uintptr) uintptr
	mediaPlayerPlay         func(player uintptr) int32
	mediaPlayerSetPause     func(player uintptr, pause int32)
	mediaPlayerPause        func(player uintptr)
	mediaPlayerStop         func(player uintptr)
	mediaPlayerIsPlaying    func(player uintptr) int32
	mediaPlayerGetLength    func(player uintptr) int64
	mediaPlayerGetTime      func(player uintptr) int64
	mediaPlayerSetTime      func(player uintptr, ms int64)
	mediaPlayerGetPosition  func(player uintptr) float32
	mediaPlayerSetPosition  func(player uintptr, pos float32)
	mediaPlayerGetState     func(player uintptr) int32
	mediaPlayerGetRate      func(player uintptr) float32
	mediaPlayerSetRate      func(player uintptr, rate float32) int32
	mediaPlayerIsSeekable   func(player uintptr) int32
	mediaPlayerCanPause     func(player uintptr) int32
	mediaPlayerNextFrame    func(player uintptr)
	mediaPlayerSetXWindow   func(player uintptr, drawable uint32)
	mediaPlayerSetNSObject  func(player uintptr, view uintptr)
	mediaPlayerSetHWND      func(player uintptr, hwnd uintptr)
	setFullscreen           func(player uintptr, on int32)
	getFullscreen           func(player uintptr) int32
	videoSetKeyInput        func(player uintptr, on uint32)
	videoSetMouseInput      func(player uintptr, on uint32)
	videoGetSize            func(player uintptr, num uint32, width *uint32, height *uint32) int32
	videoTakeSnapshot       func(player uintptr, num uint32, path string, width uint32, height uint32) int32
	videoSetCallbacks       func(player uintptr, lock, unlock, display uintptr, opaque uintptr)
	videoSetFormatCallbacks func(player uintptr, setup, cleanup uintptr)
	audioSetCallbacks       func(player uintptr, play, pause, resume, flush, drain uintptr, opaque uintptr)
	audioSetFormat          func(player uintptr, format string, rate uint32, channels uint32)
	audioGetVolume          func(player uintptr) int32
	audioSetVolume          func(player uintptr, volume int32) int32
	audioGetMute            func(player uintptr) int32
	audioSetMute            func(player uintptr, mute int32)

	// media list player
	mediaListPlayerNew            func(instance uintptr) uintptr
	mediaListPlayerRelease        func(listPlayer uintptr)
	mediaListPlayerEventManager   func(listPlayer uintptr) uintptr
	mediaListPlayerSetMediaPlayer func(listPlayer uintptr, player uintptr)
	mediaListPlayerSetMediaList   func(listPlayer uintptr, list uintptr)
	mediaListPlayerPlay           func(listPlayer uintptr)
	mediaListPlayerPause          func(listPlayer uintptr)
	mediaListPlayerSetPause       func(listPlayer uintptr, pause int32)
	mediaListPlayerIsPlaying      func(listPlayer uintptr) int32
	mediaListPlayerGetState       func(listPlayer uintptr) int32
	mediaListPlayerPlayItemAt     func(listPlayer uintptr, index int32) int32
	mediaListPlayerPlayItem       func(listPlayer uintptr, media uintptr) int32
	mediaListPlayerStop           func(listPlayer uintptr)
	mediaListPlayerNext           func(listPlayer uintptr) int32
	mediaListPlayerPrevious       func(listPlayer uintptr) int32
	mediaListPlayerSetMode        func(listPlayer uintptr, mode int32)

	// Native entry points of the shared trampolines, zero when the library
	// was not loaded through purego.
	eventCallback  uintptr
	videoFormatCb  uintptr
	videoCleanupCb uintptr
	videoLockCb    uintptr
	videoUnlockCb  uintptr
	videoDisplayCb uintptr
	audioPlayCb    uintptr
	audioPauseCb   uintptr
	audioResumeCb  uintptr
	audioFlushCb   uintptr
	audioDrainCb   uintptr
}

var (
	libvlcOnce    sync.Once
	libvlcLoaded  *libvlcAPI
	libvlcInitErr error
)

// defaultLibrary resolves the process-wide libvlc binding. Tests replace it
// with a fake.
var defaultLibrary = func() (*libvlcAPI, error) {
	libvlcOnce.Do(func() {
		libvlcLoaded, libvlcInitErr = loadLibVLC("")
	})
	return libvlcLoaded, libvlcInitErr
}

// IsAvailable reports whether libvlc could be loaded.
func IsAvailable() bool {
	_, err := defaultLibrary()
	return err == nil
}

// Version returns the libvlc version string, or "" if libvlc is not loaded.
func Version() string {
	lib, err := defaultLibrary()
	if err != nil {
		return ""
	}
	return goStringFromPtr(lib.getVersion())
}

// Compiler returns the compiler used to build libvlc.
func Compiler() string {
	lib, err := defaultLibrary()
	if err != nil || lib.compiler == nil {
		return ""
	}
	return goStringFromPtr(lib.compiler())
}

// eventName returns libvlc's own name for t, "" when it has none. The
// string is static and must not be freed.
func (l *libvlcAPI) eventName(t EventType) string {
	if l.eventTypeName == nil {
		return ""
	}
	return goStringFromPtr(l.eventTypeName(int32(t)))
}

// lastError returns libvlc's thread-local error message.
func (l *libvlcAPI) lastError() string {
	if l.errmsg == nil {
		return "unknown error"
	}
	ptr := l.errmsg()
	if ptr == 0 {
		return "unknown error"
	}
	return goStringFromPtr(ptr)
}

// nativeErr wraps ErrNativeCall with the operation name and libvlc's message.
func (l *libvlcAPI) nativeErr(op string) error {
	return fmt.Errorf("%w: %s: %s", ErrNativeCall, op, l.lastError())
}

// takeString copies a malloc'd C string and frees it with libvlc_free.
func (l *libvlcAPI) takeString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	s := goStringFromPtr(ptr)
	if l.free != nil {
		l.free(ptr)
	}
	return s
}
