// Package fyneui renders a vlc.MediaPlayer into a fyne widget.
package fyneui

import (
	"image"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/thesyncim/vlc"
)

// Surface is a fyne widget that libvlc renders into through the video
// callbacks. It is a vlc.VideoSurface, so it can be passed to
// vlc.WithVideoSurface.
type Surface struct {
	widget.BaseWidget

	width       int
	height      int
	lockBuffers bool

	image  *canvas.Image
	player *vlc.MediaPlayer

	mu      sync.Mutex
	front   *image.RGBA
	back    *image.RGBA
	pending atomic.Bool
	dropped atomic.Uint64

	inputEnabled atomic.Bool

	// OnDoubleTapped, if set, is called on the UI goroutine when the surface
	// is double tapped with input enabled.
	OnDoubleTapped func()
}

// NewSurface creates a surface. A zero width or height renders at the
// source video size.
func NewSurface(width, height int, lockBuffers bool) *Surface {
	s := &Surface{width: width, height: height, lockBuffers: lockBuffers}
	s.image = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	s.image.FillMode = canvas.ImageFillContain
	s.image.ScaleMode = canvas.ImageScaleFastest
	if width > 0 && height > 0 {
		s.image.SetMinSize(fyne.NewSize(float32(width), float32(height)))
	}
	s.inputEnabled.Store(true)
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer implements fyne.Widget.
func (s *Surface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.image)
}

// Attach implements vlc.VideoSurface.
func (s *Surface) Attach(p *vlc.MediaPlayer) {
	s.player = p
	p.SetVideoCallbacks(s, s, s.lockBuffers)
}

// SetInputEnabled implements vlc.InputSurface.
func (s *Surface) SetInputEnabled(enabled bool) {
	s.inputEnabled.Store(enabled)
}

// Tapped toggles pause.
func (s *Surface) Tapped(*fyne.PointEvent) {
	if s.inputEnabled.Load() && s.player != nil {
		s.player.Pause()
	}
}

// DoubleTapped calls OnDoubleTapped.
func (s *Surface) DoubleTapped(*fyne.PointEvent) {
	if s.inputEnabled.Load() && s.OnDoubleTapped != nil {
		s.OnDoubleTapped()
	}
}

// BufferFormat implements vlc.BufferFormatCallback.
func (s *Surface) BufferFormat(sourceWidth, sourceHeight int) vlc.BufferFormat {
	if s.width > 0 && s.height > 0 {
		return vlc.NewRGBABufferFormat(s.width, s.height)
	}
	return vlc.NewRGBABufferFormat(sourceWidth, sourceHeight)
}

// Allocated implements vlc.BufferFormatCallback.
func (s *Surface) Allocated(buffers [][]byte) {
	s.mu.Lock()
	s.front, s.back = nil, nil
	s.mu.Unlock()
}

// Display implements vlc.RenderCallback. Frames arriving while the previous
// one has not reached the canvas yet are dropped.
func (s *Surface) Display(_ *vlc.MediaPlayer, buffers [][]byte, format vlc.BufferFormat) {
	if s.pending.Load() {
		s.dropped.Add(1)
		return
	}
	img := s.store(buffers, format)
	if img == nil {
		return
	}
	s.pending.Store(true)
	fyne.Do(func() {
		s.image.Image = img
		s.image.Refresh()
		s.pending.Store(false)
	})
}

// store copies the frame into the back image, swaps it to the front and
// returns it. Anything but a whole RGBA frame is ignored.
func (s *Surface) store(buffers [][]byte, format vlc.BufferFormat) *image.RGBA {
	if format.Chroma != vlc.ChromaRGBA || !format.Holds(buffers) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rect := image.Rect(0, 0, format.Width, format.Height)
	if s.back == nil || s.back.Rect != rect {
		s.back = image.NewRGBA(rect)
	}
	src, pitch, row := buffers[0], format.Pitches[0], format.Width*4
	for y := 0; y < format.Height; y++ {
		copy(s.back.Pix[y*s.back.Stride:y*s.back.Stride+row], src[y*pitch:y*pitch+row])
	}
	s.front, s.back = s.back, s.front
	return s.front
}

// Dropped returns the number of frames skipped because the UI was busy.
func (s *Surface) Dropped() uint64 {
	return s.dropped.Load()
}

// WindowFullScreen is a vlc.FullScreenStrategy backed by a fyne window.
type WindowFullScreen struct {
	Window fyne.Window
}

func (w WindowFullScreen) EnterFullScreenMode()   { w.Window.SetFullScreen(true) }
func (w WindowFullScreen) ExitFullScreenMode()    { w.Window.SetFullScreen(false) }
func (w WindowFullScreen) IsFullScreenMode() bool { return w.Window.FullScreen() }
