// Package vlc is a Go binding for libvlc, plus embeddable player components
// built on it.
//
// Key pieces include:
//   - Factory, Media, MediaList, MediaPlayer and MediaListPlayer (thin owners of native handles)
//   - Typed events and listener interfaces per object, delivered by an event service
//   - Callback rendering (BufferFormatCallback/RenderCallback) and PCM audio callbacks
//   - MediaPlayerComponent and MediaListPlayerComponent
//
// # Architecture
//
//	Events:    libvlc event manager -> shared trampoline -> event service -> typed event -> listeners
//	Video:     libvlc vout -> lock/unlock/display trampolines -> pinned Go buffers -> RenderCallback
//	Audio:     libvlc aout -> play/pause/flush trampolines -> AudioCallback
//	Component: player -> list player (bound to player) -> media list (bound to list player)
//
// Listeners run on libvlc threads. They must not block and must not call
// back into libvlc. Listeners may be added and removed at any time,
// including from inside a listener.
//
// # Native Library
//
// libvlc is loaded at runtime with purego (no cgo). VLC_LIB_PATH, naming the
// libvlc shared object or the directory containing it, is tried first, then
// the configured library path and the library beside VLC_PLUGIN_PATH. After
// those come the executable directory, build/ under the module root and the
// system locations. IsAvailable reports whether loading succeeded.
//
// # Ownership
//
// Every object created by a Factory owns one native reference and must be
// released exactly once. Release is idempotent; using an object after
// Release is undefined. Release objects before the Factory that made them.
package vlc
