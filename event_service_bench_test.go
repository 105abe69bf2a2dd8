package vlc

import (
	"sync/atomic"
	"testing"
)

// BenchmarkDispatch measures the path from the trampoline registry to the
// listeners, without a native library.
func BenchmarkDispatch(b *testing.B) {
	f, _ := newTestFactory(b)
	player, err := f.NewMediaPlayer()
	if err != nil {
		b.Fatal(err)
	}
	defer player.Release()

	var calls atomic.Int32
	for range 4 {
		player.Events().AddMediaPlayerEventListener(&playerCounter{calls: &calls})
	}
	id := player.events.svc.id

	b.Run("Playing", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			dispatchEvent(id, rawEvent{Type: MediaPlayerPlaying})
		}
	})

	b.Run("Dropped", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			dispatchEvent(id, rawEvent{Type: MediaListItemAdded})
		}
	})

	b.Run("Parallel", func(b *testing.B) {
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				dispatchEvent(id, rawEvent{Type: MediaPlayerPlaying})
			}
		})
	})
}

// BenchmarkImageRenderer measures frame conversion for a 720p picture.
func BenchmarkImageRenderer(b *testing.B) {
	for _, chroma := range []string{ChromaRV32, ChromaRGBA, ChromaI420} {
		b.Run(chroma, func(b *testing.B) {
			format := SizedBufferFormat{Chroma: chroma}.BufferFormat(1280, 720)
			planes := make([][]byte, len(format.Pitches))
			for i := range planes {
				planes[i] = make([]byte, format.PlaneSize(i))
			}
			r := &ImageRenderer{}

			b.SetBytes(int64(1280 * 720 * 4))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				r.Display(nil, planes, format)
			}
		})
	}
}
