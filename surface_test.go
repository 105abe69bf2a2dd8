package vlc

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizedBufferFormat(t *testing.T) {
	source := SizedBufferFormat{}.BufferFormat(1280, 720)
	assert.Equal(t, NewRV32BufferFormat(1280, 720), source)

	fixed := SizedBufferFormat{Chroma: ChromaRGBA, Width: 320, Height: 200}.BufferFormat(1280, 720)
	assert.Equal(t, NewRGBABufferFormat(320, 200), fixed)
}

func TestImageRendererConvertsRV32(t *testing.T) {
	var seen *image.RGBA
	r := &ImageRenderer{OnFrame: func(img *image.RGBA) { seen = img }}
	assert.Nil(t, r.Frame())

	// 2x1 BGRX with a padded pitch.
	format := BufferFormat{Chroma: ChromaRV32, Width: 2, Height: 1, Pitches: []int{12}, Lines: []int{1}}
	plane := []byte{10, 20, 30, 0, 40, 50, 60, 0, 99, 99, 99, 99}
	r.Display(nil, [][]byte{plane}, format)

	frame := r.Frame()
	require.NotNil(t, frame)
	assert.Equal(t, []byte{30, 20, 10, 255, 60, 50, 40, 255}, frame.Pix)
	assert.Equal(t, uint64(1), r.Frames())
	require.NotNil(t, seen)
	assert.NotSame(t, seen, frame, "Frame returns a copy")
}

func TestImageRendererCopiesRGBA(t *testing.T) {
	r := &ImageRenderer{}
	format := NewRGBABufferFormat(1, 2)
	r.Display(nil, [][]byte{{1, 2, 3, 4, 5, 6, 7, 8}}, format)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, r.Frame().Pix)

	r.Display(nil, nil, format)
	assert.Equal(t, uint64(1), r.Frames())
}

func TestInputEventsString(t *testing.T) {
	assert.Equal(t, "default", InputEventsDefault.String())
	assert.Equal(t, "none", InputEventsNone.String())
	assert.Equal(t, "disable-native", InputEventsDisableNative.String())
}

func TestScaledSize(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		maxW, maxH int
		mode       ScaleMode
		wantW      int
		wantH      int
	}{
		{"stretch", 1920, 1080, 640, 640, ScaleStretch, 640, 640},
		{"fit wide", 1920, 1080, 640, 640, ScaleFit, 640, 360},
		{"fit tall", 1080, 1920, 640, 640, ScaleFit, 360, 640},
		{"fit rounds to even", 1000, 333, 500, 500, ScaleFit, 500, 166},
		{"unknown source", 0, 0, 320, 240, ScaleFit, 320, 240},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := scaledSize(tt.srcW, tt.srcH, tt.maxW, tt.maxH, tt.mode)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}

	f := SizedBufferFormat{Width: 640, Height: 640, Mode: ScaleFit}.BufferFormat(1920, 1080)
	assert.Equal(t, NewRV32BufferFormat(640, 360), f)
}

func TestParseScaleMode(t *testing.T) {
	for in, want := range map[string]ScaleMode{"": ScaleStretch, "stretch": ScaleStretch, "fit": ScaleFit} {
		got, ok := ParseScaleMode(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseScaleMode("fill")
	assert.False(t, ok)
	assert.Equal(t, "fit", ScaleFit.String())
}

func TestImageRendererConvertsI420(t *testing.T) {
	r := &ImageRenderer{}
	format := SizedBufferFormat{Chroma: ChromaI420}.BufferFormat(2, 2)
	require.Equal(t, NewI420BufferFormat(2, 2), format)
	assert.Equal(t, []int{2, 1, 1}, format.Pitches)

	// Neutral chroma keeps the luma value on every channel.
	r.Display(nil, [][]byte{{100, 150, 200, 250}, {128}, {128}}, format)
	assert.Equal(t, []byte{
		100, 100, 100, 255, 150, 150, 150, 255,
		200, 200, 200, 255, 250, 250, 250, 255,
	}, r.Frame().Pix)

	r.Display(nil, [][]byte{{1, 2, 3, 4}}, format)
	assert.Equal(t, uint64(1), r.Frames(), "plane count mismatch is dropped")
}

func TestImageRendererDropsUnusableFrames(t *testing.T) {
	tests := []struct {
		name   string
		planes [][]byte
		format BufferFormat
	}{
		{
			"packed 24 bit chroma",
			[][]byte{make([]byte, 24)},
			BufferFormat{Chroma: "RV24", Width: 4, Height: 2, Pitches: []int{12}, Lines: []int{2}},
		},
		{
			"plane shorter than its lines",
			[][]byte{make([]byte, 16)},
			NewRV32BufferFormat(2, 4),
		},
		{
			"pitch narrower than a row",
			[][]byte{make([]byte, 64)},
			BufferFormat{Chroma: ChromaRGBA, Width: 4, Height: 2, Pitches: []int{8}, Lines: []int{8}},
		},
		{
			"short chroma plane",
			[][]byte{make([]byte, 16), {128}, make([]byte, 4)},
			NewI420BufferFormat(4, 4),
		},
		{
			"missing lines",
			[][]byte{make([]byte, 32)},
			BufferFormat{Chroma: ChromaRV32, Width: 4, Height: 2, Pitches: []int{16}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &ImageRenderer{OnFrame: func(*image.RGBA) { t.Error("unexpected frame") }}
			require.NotPanics(t, func() { r.Display(nil, tt.planes, tt.format) })
			assert.Zero(t, r.Frames())
			assert.Nil(t, r.Frame())
		})
	}
}

func TestImageRendererAcceptsTightPlanes(t *testing.T) {
	// The last row needs no padding past its own width.
	r := &ImageRenderer{}
	format := BufferFormat{Chroma: ChromaRV32, Width: 1, Height: 2, Pitches: []int{8}, Lines: []int{2}}
	r.Display(nil, [][]byte{{1, 2, 3, 0, 9, 9, 9, 9, 4, 5, 6, 0}}, format)
	require.Equal(t, uint64(1), r.Frames())
	assert.Equal(t, []byte{3, 2, 1, 255, 6, 5, 4, 255}, r.Frame().Pix)
}
