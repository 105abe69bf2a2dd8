//go:build darwin || linux

// libvlc loader. The shared library is opened with purego at runtime, so the
// binding builds with CGO_ENABLED=0 and only needs libvlc when used.

package vlc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
)

var (
	trampolineOnce sync.Once
	trampolines    struct {
		event                                uintptr
		videoFormat, videoCleanup            uintptr
		videoLock, videoUnlock, videoDisplay uintptr
		audioPlay, audioPause, audioResume   uintptr
		audioFlush, audioDrain               uintptr
	}
)

// initTrampolines creates the shared native callbacks exactly once. purego
// callbacks are never freed, so they must not be created per object.
func initTrampolines() {
	trampolineOnce.Do(func() {
		trampolines.event = purego.NewCallback(eventTrampoline)
		trampolines.videoFormat = purego.NewCallback(videoFormatTrampoline)
		trampolines.videoCleanup = purego.NewCallback(videoCleanupTrampoline)
		trampolines.videoLock = purego.NewCallback(videoLockTrampoline)
		trampolines.videoUnlock = purego.NewCallback(videoUnlockTrampoline)
		trampolines.videoDisplay = purego.NewCallback(videoDisplayTrampoline)
		trampolines.audioPlay = purego.NewCallback(audioPlayTrampoline)
		trampolines.audioPause = purego.NewCallback(audioPauseTrampoline)
		trampolines.audioResume = purego.NewCallback(audioResumeTrampoline)
		trampolines.audioFlush = purego.NewCallback(audioFlushTrampoline)
		trampolines.audioDrain = purego.NewCallback(audioDrainTrampoline)
	})
}

// loadLibVLC opens the first usable libvlc among getLibVLCPaths.
func loadLibVLC(libraryPath string) (*libvlcAPI, error) {
	paths := getLibVLCPaths(libraryPath)

	var lastErr error
	for _, path := range paths {
		handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			lastErr = err
			continue
		}
		lib, err := loadLibVLCSymbols(handle)
		if err != nil {
			purego.Dlclose(handle)
			lastErr = err
			continue
		}
		return lib, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAvailable, lastErr)
	}
	return nil, fmt.Errorf("%w: %w", ErrNotAvailable, errors.New("libvlc not found in any standard location"))
}

// getLibVLCPaths lists candidates in load order: VLC_LIB_PATH, the
// configured library path, libraries next to VLC_PLUGIN_PATH, the
// executable directory, build/ under the module root, then system
// locations. VLC_LIB_PATH and the library path may name a file or a
// directory.
func getLibVLCPaths(libraryPath string) []string {
	var paths []string

	libName := "libvlc.so.5"
	if runtime.GOOS == "darwin" {
		libName = "libvlc.dylib"
	}

	if envPath := os.Getenv("VLC_LIB_PATH"); envPath != "" {
		paths = append(paths, libCandidate(envPath, libName))
	}
	if libraryPath != "" {
		paths = append(paths, libCandidate(libraryPath, libName))
	}

	// Plugins live in <libdir>/vlc/plugins on Linux and next to lib/ in the
	// macOS bundle.
	if plugins := os.Getenv("VLC_PLUGIN_PATH"); plugins != "" {
		paths = append(paths,
			filepath.Join(plugins, "..", "..", libName),
			filepath.Join(plugins, "..", "lib", libName),
		)
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, libName),
			filepath.Join(exeDir, "..", "lib", libName),
		)
	}

	if root := findModuleRoot(); root != "" {
		paths = append(paths, filepath.Join(root, "build", libName))
	}

	switch runtime.GOOS {
	case "darwin":
		paths = append(paths,
			"libvlc.dylib",
			"/Applications/VLC.app/Contents/MacOS/lib/libvlc.dylib",
			"/usr/local/lib/libvlc.dylib",
			"/opt/homebrew/lib/libvlc.dylib",
		)
	case "linux":
		paths = append(paths,
			"libvlc.so.5",
			"libvlc.so",
			"/usr/lib/x86_64-linux-gnu/libvlc.so.5",
			"/usr/lib/aarch64-linux-gnu/libvlc.so.5",
			"/usr/local/lib/libvlc.so.5",
			"/usr/lib/libvlc.so.5",
		)
	}

	return paths
}

// libCandidate resolves a directory to the library inside it.
func libCandidate(path, libName string) string {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return filepath.Join(path, libName)
	}
	return path
}

func loadLibVLCSymbols(handle uintptr) (lib *libvlcAPI, err error) {
	// RegisterLibFunc panics on a missing symbol; report it as a load error
	// so an incompatible libvlc falls through to the next candidate.
	defer func() {
		if r := recover(); r != nil {
			lib, err = nil, fmt.Errorf("resolve libvlc symbols: %v", r)
		}
	}()

	lib = &libvlcAPI{}

	// Core
	purego.RegisterLibFunc(&lib.new, handle, "libvlc_new")
	purego.RegisterLibFunc(&lib.release, handle, "libvlc_release")
	purego.RegisterLibFunc(&lib.getVersion, handle, "libvlc_get_version")
	purego.RegisterLibFunc(&lib.compiler, handle, "libvlc_get_compiler")
	purego.RegisterLibFunc(&lib.errmsg, handle, "libvlc_errmsg")
	purego.RegisterLibFunc(&lib.free, handle, "libvlc_free")

	// Events
	purego.RegisterLibFunc(&lib.eventAttach, handle, "libvlc_event_attach")
	purego.RegisterLibFunc(&lib.eventDetach, handle, "libvlc_event_detach")
	purego.RegisterLibFunc(&lib.eventTypeName, handle, "libvlc_event_type_name")

	// Media
	purego.RegisterLibFunc(&lib.mediaNewLocation, handle, "libvlc_media_new_location")
	purego.RegisterLibFunc(&lib.mediaNewPath, handle, "libvlc_media_new_path")
	purego.RegisterLibFunc(&lib.mediaRetain, handle, "libvlc_media_retain")
	purego.RegisterLibFunc(&lib.mediaRelease, handle, "libvlc_media_release")
	purego.RegisterLibFunc(&lib.mediaDuplicate, handle, "libvlc_media_duplicate")
	purego.RegisterLibFunc(&lib.mediaEventManager, handle, "libvlc_media_event_manager")
	purego.RegisterLibFunc(&lib.mediaGetMRL, handle, "libvlc_media_get_mrl")
	purego.RegisterLibFunc(&lib.mediaGetState, handle, "libvlc_media_get_state")
	purego.RegisterLibFunc(&lib.mediaGetDuration, handle, "libvlc_media_get_duration")
	purego.RegisterLibFunc(&lib.mediaGetMeta, handle, "libvlc_media_get_meta")
	purego.RegisterLibFunc(&lib.mediaSetMeta, handle, "libvlc_media_set_meta")
	purego.RegisterLibFunc(&lib.mediaSaveMeta, handle, "libvlc_media_save_meta")
	purego.RegisterLibFunc(&lib.mediaAddOption, handle, "libvlc_media_add_option")
	purego.RegisterLibFunc(&lib.mediaParseWithOptions, handle, "libvlc_media_parse_with_options")
	purego.RegisterLibFunc(&lib.mediaParseStop, handle, "libvlc_media_parse_stop")
	purego.RegisterLibFunc(&lib.mediaGetParsedStatus, handle, "libvlc_media_get_parsed_status")
	purego.RegisterLibFunc(&lib.mediaSubitems, handle, "libvlc_media_subitems")
	purego.RegisterLibFunc(&lib.mediaGetType, handle, "libvlc_media_get_type")

	// Media list
	purego.RegisterLibFunc(&lib.mediaListNew, handle, "libvlc_media_list_new")
	purego.RegisterLibFunc(&lib.mediaListRelease, handle, "libvlc_media_list_release")
	purego.RegisterLibFunc(&lib.mediaListEventManager, handle, "libvlc_media_list_event_manager")
	purego.RegisterLibFunc(&lib.mediaListLock, handle, "libvlc_media_list_lock")
	purego.RegisterLibFunc(&lib.mediaListUnlock, handle, "libvlc_media_list_unlock")
	purego.RegisterLibFunc(&lib.mediaListAddMedia, handle, "libvlc_media_list_add_media")
	purego.RegisterLibFunc(&lib.mediaListInsertMedia, handle, "libvlc_media_list_insert_media")
	purego.RegisterLibFunc(&lib.mediaListRemoveIndex, handle, "libvlc_media_list_remove_index")
	purego.RegisterLibFunc(&lib.mediaListCount, handle, "libvlc_media_list_count")
	purego.RegisterLibFunc(&lib.mediaListItemAtIndex, handle, "libvlc_media_list_item_at_index")
	purego.RegisterLibFunc(&lib.mediaListIndexOfItem, handle, "libvlc_media_list_index_of_item")
	purego.RegisterLibFunc(&lib.mediaListIsReadonly, handle, "libvlc_media_list_is_readonly")

	// Media player
	purego.RegisterLibFunc(&lib.mediaPlayerNew, handle, "libvlc_media_player_new")
	purego.RegisterLibFunc(&lib.mediaPlayerRelease, handle, "libvlc_media_player_release")
	purego.RegisterLibFunc(&lib.mediaPlayerEventManager, handle, "libvlc_media_player_event_manager")
	purego.RegisterLibFunc(&lib.mediaPlayerSetMedia, handle, "libvlc_media_player_set_media")
	purego.RegisterLibFunc(&lib.mediaPlayerGetMedia, handle, "libvlc_media_player_get_media")
	purego.RegisterLibFunc(&lib.mediaPlayerPlay, handle, "libvlc_media_player_play")
	purego.RegisterLibFunc(&lib.mediaPlayerSetPause, handle, "libvlc_media_player_set_pause")
	purego.RegisterLibFunc(&lib.mediaPlayerPause, handle, "libvlc_media_player_pause")
	purego.RegisterLibFunc(&lib.mediaPlayerStop, handle, "libvlc_media_player_stop")
	purego.RegisterLibFunc(&lib.mediaPlayerIsPlaying, handle, "libvlc_media_player_is_playing")
	purego.RegisterLibFunc(&lib.mediaPlayerGetLength, handle, "libvlc_media_player_get_length")
	purego.RegisterLibFunc(&lib.mediaPlayerGetTime, handle, "libvlc_media_player_get_time")
	purego.RegisterLibFunc(&lib.mediaPlayerSetTime, handle, "libvlc_media_player_set_time")
	purego.RegisterLibFunc(&lib.mediaPlayerGetPosition, handle, "libvlc_media_player_get_position")
	purego.RegisterLibFunc(&lib.mediaPlayerSetPosition, handle, "libvlc_media_player_set_position")
	purego.RegisterLibFunc(&lib.mediaPlayerGetState, handle, "libvlc_media_player_get_state")
	purego.RegisterLibFunc(&lib.mediaPlayerGetRate, handle, "libvlc_media_player_get_rate")
	purego.RegisterLibFunc(&lib.mediaPlayerSetRate, handle, "libvlc_media_player_set_rate")
	purego.RegisterLibFunc(&lib.mediaPlayerIsSeekable, handle, "libvlc_media_player_is_seekable")
	purego.RegisterLibFunc(&lib.mediaPlayerCanPause, handle, "libvlc_media_player_can_pause")
	purego.RegisterLibFunc(&lib.mediaPlayerNextFrame, handle, "libvlc_media_player_next_frame")
	purego.RegisterLibFunc(&lib.mediaPlayerSetXWindow, handle, "libvlc_media_player_set_xwindow")
	purego.RegisterLibFunc(&lib.mediaPlayerSetNSObject, handle, "libvlc_media_player_set_nsobject")
	purego.RegisterLibFunc(&lib.mediaPlayerSetHWND, handle, "libvlc_media_player_set_hwnd")
	purego.RegisterLibFunc(&lib.setFullscreen, handle, "libvlc_set_fullscreen")
	purego.RegisterLibFunc(&lib.getFullscreen, handle, "libvlc_get_fullscreen")
	purego.RegisterLibFunc(&lib.videoSetKeyInput, handle, "libvlc_video_set_key_input")
	purego.RegisterLibFunc(&lib.videoSetMouseInput, handle, "libvlc_video_set_mouse_input")
	purego.RegisterLibFunc(&lib.videoGetSize, handle, "libvlc_video_get_size")
	purego.RegisterLibFunc(&lib.videoTakeSnapshot, handle, "libvlc_video_take_snapshot")
	purego.RegisterLibFunc(&lib.videoSetCallbacks, handle, "libvlc_video_set_callbacks")
	purego.RegisterLibFunc(&lib.videoSetFormatCallbacks, handle, "libvlc_video_set_format_callbacks")
	purego.RegisterLibFunc(&lib.audioSetCallbacks, handle, "libvlc_audio_set_callbacks")
	purego.RegisterLibFunc(&lib.audioSetFormat, handle, "libvlc_audio_set_format")
	purego.RegisterLibFunc(&lib.audioGetVolume, handle, "libvlc_audio_get_volume")
	purego.RegisterLibFunc(&lib.audioSetVolume, handle, "libvlc_audio_set_volume")
	purego.RegisterLibFunc(&lib.audioGetMute, handle, "libvlc_audio_get_mute")
	purego.RegisterLibFunc(&lib.audioSetMute, handle, "libvlc_audio_set_mute")

	// Media list player
	purego.RegisterLibFunc(&lib.mediaListPlayerNew, handle, "libvlc_media_list_player_new")
	purego.RegisterLibFunc(&lib.mediaListPlayerRelease, handle, "libvlc_media_list_player_release")
	purego.RegisterLibFunc(&lib.mediaListPlayerEventManager, handle, "libvlc_media_list_player_event_manager")
	purego.RegisterLibFunc(&lib.mediaListPlayerSetMediaPlayer, handle, "libvlc_media_list_player_set_media_player")
	purego.RegisterLibFunc(&lib.mediaListPlayerSetMediaList, handle, "libvlc_media_list_player_set_media_list")
	purego.RegisterLibFunc(&lib.mediaListPlayerPlay, handle, "libvlc_media_list_player_play")
	purego.RegisterLibFunc(&lib.mediaListPlayerPause, handle, "libvlc_media_list_player_pause")
	purego.RegisterLibFunc(&lib.mediaListPlayerSetPause, handle, "libvlc_media_list_player_set_pause")
	purego.RegisterLibFunc(&lib.mediaListPlayerIsPlaying, handle, "libvlc_media_list_player_is_playing")
	purego.RegisterLibFunc(&lib.mediaListPlayerGetState, handle, "libvlc_media_list_player_get_state")
	purego.RegisterLibFunc(&lib.mediaListPlayerPlayItemAt, handle, "libvlc_media_list_player_play_item_at_index")
	purego.RegisterLibFunc(&lib.mediaListPlayerPlayItem, handle, "libvlc_media_list_player_play_item")
	purego.RegisterLibFunc(&lib.mediaListPlayerStop, handle, "libvlc_media_list_player_stop")
	purego.RegisterLibFunc(&lib.mediaListPlayerNext, handle, "libvlc_media_list_player_next")
	purego.RegisterLibFunc(&lib.mediaListPlayerPrevious, handle, "libvlc_media_list_player_previous")
	purego.RegisterLibFunc(&lib.mediaListPlayerSetMode, handle, "libvlc_media_list_player_set_playback_mode")

	initTrampolines()
	lib.eventCallback = trampolines.event
	lib.videoFormatCb = trampolines.videoFormat
	lib.videoCleanupCb = trampolines.videoCleanup
	lib.videoLockCb = trampolines.videoLock
	lib.videoUnlockCb = trampolines.videoUnlock
	lib.videoDisplayCb = trampolines.videoDisplay
	lib.audioPlayCb = trampolines.audioPlay
	lib.audioPauseCb = trampolines.audioPause
	lib.audioResumeCb = trampolines.audioResume
	lib.audioFlushCb = trampolines.audioFlush
	lib.audioDrainCb = trampolines.audioDrain

	return lib, nil
}
