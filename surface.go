package vlc

import (
	"image"
	"image/color"
	"sync"
	"sync/atomic"
)

// VideoSurface is where a player renders video.
type VideoSurface interface {
	Attach(p *MediaPlayer)
}

// XWindowSurface renders into an X11 window id.
type XWindowSurface uint32

// Attach implements VideoSurface.
func (s XWindowSurface) Attach(p *MediaPlayer) { p.SetXWindow(uint32(s)) }

// NSViewSurface renders into a Cocoa NSView.
type NSViewSurface uintptr

// Attach implements VideoSurface.
func (s NSViewSurface) Attach(p *MediaPlayer) { p.SetNSObject(uintptr(s)) }

// HWNDSurface renders into a Win32 window handle.
type HWNDSurface uintptr

// Attach implements VideoSurface.
func (s HWNDSurface) Attach(p *MediaPlayer) { p.SetHWND(uintptr(s)) }

// CallbackSurface renders into Go memory through the video callbacks.
type CallbackSurface struct {
	Format      BufferFormatCallback
	Render      RenderCallback
	LockBuffers bool
}

// Attach implements VideoSurface. A nil Format renders at the source size
// in RV32, a nil Render keeps frames in an ImageRenderer.
func (s CallbackSurface) Attach(p *MediaPlayer) {
	format, render := s.Format, s.Render
	if format == nil {
		format = SizedBufferFormat{Chroma: ChromaRV32}
	}
	if render == nil {
		render = &ImageRenderer{}
	}
	p.SetVideoCallbacks(format, render, s.LockBuffers)
}

// SizedBufferFormat is a BufferFormatCallback producing RV32, RGBA or I420
// buffers. A zero Width or Height uses the source video size; otherwise Mode
// decides how the source is scaled into Width x Height.
type SizedBufferFormat struct {
	Chroma string
	Width  int
	Height int
	Mode   ScaleMode
}

// BufferFormat implements BufferFormatCallback.
func (s SizedBufferFormat) BufferFormat(sourceWidth, sourceHeight int) BufferFormat {
	w, h := sourceWidth, sourceHeight
	if s.Width > 0 && s.Height > 0 {
		w, h = scaledSize(sourceWidth, sourceHeight, s.Width, s.Height, s.Mode)
	}
	switch s.Chroma {
	case ChromaRGBA:
		return NewRGBABufferFormat(w, h)
	case ChromaI420:
		return NewI420BufferFormat(w, h)
	default:
		return NewRV32BufferFormat(w, h)
	}
}

// Allocated implements BufferFormatCallback.
func (SizedBufferFormat) Allocated([][]byte) {}

// ImageRenderer is a RenderCallback that keeps the latest frame as an RGBA
// image. It accepts RV32, RGBA and I420 buffers.
type ImageRenderer struct {
	// OnFrame, if set, is called on the video thread after each frame with
	// the renderer's image. The image must not be retained.
	OnFrame func(img *image.RGBA)

	mu     sync.Mutex
	img    *image.RGBA
	frames atomic.Uint64
}

// Display implements RenderCallback. Frames in other chromas, or with planes
// too short for their pitches and lines, are dropped.
func (r *ImageRenderer) Display(_ *MediaPlayer, buffers [][]byte, format BufferFormat) {
	if !format.Holds(buffers) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.img == nil || r.img.Rect.Dx() != format.Width || r.img.Rect.Dy() != format.Height {
		r.img = image.NewRGBA(image.Rect(0, 0, format.Width, format.Height))
	}
	copyFrame(r.img, buffers, format)
	r.frames.Add(1)
	if r.OnFrame != nil {
		r.OnFrame(r.img)
	}
}

// Frame returns a copy of the latest frame, or nil before the first one.
func (r *ImageRenderer) Frame() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.img == nil {
		return nil
	}
	out := image.NewRGBA(r.img.Rect)
	copy(out.Pix, r.img.Pix)
	return out
}

// Frames returns the number of frames displayed.
func (r *ImageRenderer) Frames() uint64 {
	return r.frames.Load()
}

// Holds reports whether planes carry a whole frame in f. Only RV32, RGBA
// and I420 are understood; any other chroma reports false.
func (f BufferFormat) Holds(planes [][]byte) bool {
	if f.Width <= 0 || f.Height <= 0 {
		return false
	}
	if len(planes) == 0 || len(planes) != len(f.Pitches) || len(planes) != len(f.Lines) {
		return false
	}
	// minimum pitch and line count per plane
	var need [][2]int
	switch f.Chroma {
	case ChromaRV32, ChromaRGBA:
		need = [][2]int{{f.Width * 4, f.Height}}
	case ChromaI420:
		cw, ch := (f.Width+1)/2, (f.Height+1)/2
		need = [][2]int{{f.Width, f.Height}, {cw, ch}, {cw, ch}}
	default:
		return false
	}
	if len(planes) < len(need) {
		return false
	}
	for i, n := range need {
		pitch, lines := f.Pitches[i], f.Lines[i]
		if pitch < n[0] || lines < n[1] || len(planes[i]) < pitch*(n[1]-1)+n[0] {
			return false
		}
	}
	return true
}

// copyFrame converts RV32 (BGRX), RGBA or I420 planes into dst. The planes
// must satisfy BufferFormat.Holds.
func copyFrame(dst *image.RGBA, planes [][]byte, format BufferFormat) {
	if format.Chroma == ChromaI420 {
		copyI420(dst, planes, format)
		return
	}
	src := planes[0]
	pitch := format.Pitches[0]
	rowBytes := format.Width * 4
	for y := 0; y < format.Height; y++ {
		row := src[y*pitch : y*pitch+rowBytes]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+rowBytes]
		if format.Chroma == ChromaRGBA {
			copy(out, row)
			continue
		}
		for x := 0; x < rowBytes; x += 4 {
			out[x+0] = row[x+2]
			out[x+1] = row[x+1]
			out[x+2] = row[x+0]
			out[x+3] = 0xff
		}
	}
}

func copyI420(dst *image.RGBA, planes [][]byte, format BufferFormat) {
	yp, up, vp := format.Pitches[0], format.Pitches[1], format.Pitches[2]
	for y := 0; y < format.Height; y++ {
		out := dst.Pix[y*dst.Stride:]
		cy := y / 2
		for x := 0; x < format.Width; x++ {
			r, g, b := color.YCbCrToRGB(planes[0][y*yp+x], planes[1][cy*up+x/2], planes[2][cy*vp+x/2])
			out[x*4+0] = r
			out[x*4+1] = g
			out[x*4+2] = b
			out[x*4+3] = 0xff
		}
	}
}

// FullScreenStrategy switches a component in and out of full screen.
type FullScreenStrategy interface {
	EnterFullScreenMode()
	ExitFullScreenMode()
	IsFullScreenMode() bool
}

// NativeFullScreen delegates full screen to libvlc's own video window. It
// has no effect with callback rendering.
type NativeFullScreen struct {
	Player *MediaPlayer
}

func (s NativeFullScreen) EnterFullScreenMode()   { s.Player.SetFullScreen(true) }
func (s NativeFullScreen) ExitFullScreenMode()    { s.Player.SetFullScreen(false) }
func (s NativeFullScreen) IsFullScreenMode() bool { return s.Player.IsFullScreen() }

// InputEvents selects how keyboard and mouse input reaches the player.
type InputEvents int

const (
	// InputEventsDefault leaves libvlc's native input handling on.
	InputEventsDefault InputEvents = iota
	// InputEventsNone disables native handling and input on the surface.
	InputEventsNone
	// InputEventsDisableNative disables native handling; the surface still
	// receives input.
	InputEventsDisableNative
)

func (i InputEvents) String() string {
	switch i {
	case InputEventsDefault:
		return "default"
	case InputEventsNone:
		return "none"
	case InputEventsDisableNative:
		return "disable-native"
	default:
		return "unknown"
	}
}

// InputSurface is implemented by surfaces that handle input themselves.
type InputSurface interface {
	SetInputEnabled(enabled bool)
}

func applyInputEvents(p *MediaPlayer, surface VideoSurface, mode InputEvents) {
	if mode == InputEventsDefault {
		return
	}
	p.SetKeyInput(false)
	p.SetMouseInput(false)
	if s, ok := surface.(InputSurface); ok {
		s.SetInputEnabled(mode != InputEventsNone)
	}
}
