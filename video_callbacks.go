package vlc

import (
	"runtime"
	"sync"
	"unsafe"
)

// Common chroma fourccs for callback rendering.
const (
	ChromaRV32 = "RV32" // 32 bit BGRX, one plane
	ChromaRGBA = "RGBA" // 32 bit RGBA, one plane
	ChromaI420 = "I420" // planar YUV 4:2:0
)

// maxPlanes mirrors PICTURE_PLANE_MAX in libvlc.
const maxPlanes = 5

// BufferFormat describes the video buffers libvlc renders into.
type BufferFormat struct {
	Chroma  string
	Width   int
	Height  int
	Pitches []int
	Lines   []int
}

// NewRV32BufferFormat returns a single plane 32 bit BGRX format.
func NewRV32BufferFormat(width, height int) BufferFormat {
	return BufferFormat{
		Chroma:  ChromaRV32,
		Width:   width,
		Height:  height,
		Pitches: []int{width * 4},
		Lines:   []int{height},
	}
}

// NewRGBABufferFormat returns a single plane 32 bit RGBA format.
func NewRGBABufferFormat(width, height int) BufferFormat {
	f := NewRV32BufferFormat(width, height)
	f.Chroma = ChromaRGBA
	return f
}

// NewI420BufferFormat returns a three plane YUV 4:2:0 format. Chroma planes
// are half size, rounded up.
func NewI420BufferFormat(width, height int) BufferFormat {
	cw, ch := (width+1)/2, (height+1)/2
	return BufferFormat{
		Chroma:  ChromaI420,
		Width:   width,
		Height:  height,
		Pitches: []int{width, cw, cw},
		Lines:   []int{height, ch, ch},
	}
}

// PlaneSize returns the byte size of plane i.
func (f BufferFormat) PlaneSize(i int) int {
	return f.Pitches[i] * f.Lines[i]
}

func (f BufferFormat) valid() bool {
	if len(f.Chroma) != 4 || len(f.Pitches) == 0 || len(f.Pitches) != len(f.Lines) || len(f.Pitches) > maxPlanes {
		return false
	}
	for i := range f.Pitches {
		if f.PlaneSize(i) <= 0 {
			return false
		}
	}
	return true
}

// BufferFormatCallback negotiates the buffer format for callback rendering.
type BufferFormatCallback interface {
	// BufferFormat is called with the source video size and returns the
	// format to render into.
	BufferFormat(sourceWidth, sourceHeight int) BufferFormat
	// Allocated is called once the native-visible buffers exist.
	Allocated(buffers [][]byte)
}

// RenderCallback receives rendered frames. buffers are only valid during
// the call.
type RenderCallback interface {
	Display(player *MediaPlayer, buffers [][]byte, format BufferFormat)
}

// videoRenderer holds the state behind one player's video callbacks.
type videoRenderer struct {
	id          uintptr
	player      *MediaPlayer
	formatCb    BufferFormatCallback
	renderCb    RenderCallback
	lockBuffers bool

	mu      sync.Mutex // held between lock and unlock
	format  BufferFormat
	buffers [][]byte
	pinner  runtime.Pinner
}

var (
	renderersMu     sync.RWMutex
	videoRenderers  = make(map[uintptr]*videoRenderer)
	rendererCounter uintptr
)

// SetVideoCallbacks switches the player to callback rendering: libvlc draws
// into Go-owned buffers negotiated by formatCb and hands every frame to
// renderCb. With lockBuffers the buffers are also locked into RAM.
// Must be called before playback starts. Replacing earlier callbacks blocks
// until a frame the previous renderer has locked is unlocked.
func (p *MediaPlayer) SetVideoCallbacks(formatCb BufferFormatCallback, renderCb RenderCallback, lockBuffers bool) {
	r := &videoRenderer{
		player:      p,
		formatCb:    formatCb,
		renderCb:    renderCb,
		lockBuffers: lockBuffers,
	}

	renderersMu.Lock()
	rendererCounter++
	r.id = rendererCounter
	videoRenderers[r.id] = r
	renderersMu.Unlock()

	lib := p.f.lib
	lib.videoSetFormatCallbacks(p.handle, lib.videoFormatCb, lib.videoCleanupCb)
	lib.videoSetCallbacks(p.handle, lib.videoLockCb, lib.videoUnlockCb, lib.videoDisplayCb, r.id)

	old := p.video
	p.video = r
	if old != nil {
		old.unregister()
	}
}

func lookupVideoRenderer(id uintptr) *videoRenderer {
	renderersMu.RLock()
	defer renderersMu.RUnlock()
	return videoRenderers[id]
}

// unregister frees the buffers, waiting for an in-flight frame, and only
// then drops r from the registry so the frame's unlock still finds it.
func (r *videoRenderer) unregister() {
	r.freeBuffers()
	renderersMu.Lock()
	delete(videoRenderers, r.id)
	renderersMu.Unlock()
}

// setup negotiates the format and allocates one buffer per plane. It returns
// the number of pictures in the pool, 0 to abort.
func (r *videoRenderer) setup(sourceWidth, sourceHeight int) (BufferFormat, int) {
	format := r.formatCb.BufferFormat(sourceWidth, sourceHeight)
	if !format.valid() {
		r.player.f.logger.Warn().Str("chroma", format.Chroma).Int("planes", len(format.Pitches)).Msg("invalid buffer format")
		return format, 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.freeBuffersLocked()

	r.format = format
	r.buffers = make([][]byte, len(format.Pitches))
	for i := range r.buffers {
		buf := make([]byte, format.PlaneSize(i))
		r.pinner.Pin(&buf[0])
		if r.lockBuffers {
			if err := lockMemory(buf); err != nil {
				r.player.f.logger.Warn().Err(err).Msg("video buffer lock failed")
			}
		}
		r.buffers[i] = buf
	}
	r.formatCb.Allocated(r.buffers)
	return format, 1
}

func (r *videoRenderer) freeBuffers() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.freeBuffersLocked()
}

func (r *videoRenderer) freeBuffersLocked() {
	if r.buffers == nil {
		return
	}
	if r.lockBuffers {
		for _, buf := range r.buffers {
			_ = unlockMemory(buf)
		}
	}
	r.pinner.Unpin()
	r.buffers = nil
}

// planePointers returns the native addresses of the buffers. Called with mu
// held.
func (r *videoRenderer) planePointers() []uintptr {
	ptrs := make([]uintptr, len(r.buffers))
	for i, buf := range r.buffers {
		ptrs[i] = uintptr(unsafe.Pointer(&buf[0]))
	}
	return ptrs
}

func (r *videoRenderer) display() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.buffers == nil {
		return
	}
	r.renderCb.Display(r.player, r.buffers, r.format)
}

// Native trampolines. See libvlc_video_format_cb, libvlc_video_lock_cb and
// friends for the C signatures.

func videoFormatTrampoline(opaque, chroma, width, height, pitches, lines uintptr) uintptr {
	if opaque == 0 {
		return 0
	}
	r := lookupVideoRenderer(*(*uintptr)(unsafe.Pointer(opaque)))
	if r == nil {
		return 0
	}

	w := (*uint32)(unsafe.Pointer(width))
	h := (*uint32)(unsafe.Pointer(height))
	format, pool := r.setup(int(*w), int(*h))
	if pool == 0 {
		return 0
	}

	copy(unsafe.Slice((*byte)(unsafe.Pointer(chroma)), 4), format.Chroma)
	*w = uint32(format.Width)
	*h = uint32(format.Height)
	nativePitches := unsafe.Slice((*uint32)(unsafe.Pointer(pitches)), maxPlanes)
	nativeLines := unsafe.Slice((*uint32)(unsafe.Pointer(lines)), maxPlanes)
	for i := range format.Pitches {
		nativePitches[i] = uint32(format.Pitches[i])
		nativeLines[i] = uint32(format.Lines[i])
	}
	return uintptr(pool)
}

func videoCleanupTrampoline(opaque uintptr) {
	if r := lookupVideoRenderer(opaque); r != nil {
		r.freeBuffers()
	}
}

func videoLockTrampoline(opaque, planes uintptr) uintptr {
	r := lookupVideoRenderer(opaque)
	if r == nil {
		return 0
	}
	r.mu.Lock()
	nativePlanes := unsafe.Slice((*uintptr)(unsafe.Pointer(planes)), maxPlanes)
	copy(nativePlanes, r.planePointers())
	return 0
}

func videoUnlockTrampoline(opaque, picture, planes uintptr) {
	if r := lookupVideoRenderer(opaque); r != nil {
		r.mu.Unlock()
	}
}

func videoDisplayTrampoline(opaque, picture uintptr) {
	if r := lookupVideoRenderer(opaque); r != nil {
		r.display()
	}
}
