package vlc

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingListListener struct {
	MediaListEventAdapter
	endReached atomic.Int32
	onEnd      func()
}

func (l *countingListListener) MediaListEndReached(*MediaList) {
	l.endReached.Add(1)
	if l.onEnd != nil {
		l.onEnd()
	}
}

func newTestFactory(t testing.TB) (*Factory, *fakeLibVLC) {
	t.Helper()
	fake := installFakeLibVLC(t)
	f, err := NewFactory()
	require.NoError(t, err)
	t.Cleanup(f.Release)
	return f, fake
}

func TestListenerAddedBeforeEventReceivesIt(t *testing.T) {
	f, fake := newTestFactory(t)
	list, err := f.NewMediaList()
	require.NoError(t, err)
	defer list.Release()

	first, second := &countingListListener{}, &countingListListener{}
	list.Events().AddMediaListEventListener(first)
	list.Events().AddMediaListEventListener(second)

	fake.raise(list.handle, rawEvent{Type: MediaListEndReached})
	assert.EqualValues(t, 1, first.endReached.Load())
	assert.EqualValues(t, 1, second.endReached.Load())

	list.Events().RemoveMediaListEventListener(first)
	fake.raise(list.handle, rawEvent{Type: MediaListEndReached})
	assert.EqualValues(t, 1, first.endReached.Load(), "removed listener must not be notified")
	assert.EqualValues(t, 2, second.endReached.Load())
}

func TestRemoveAbsentListenerIsNoop(t *testing.T) {
	f, _ := newTestFactory(t)
	list, err := f.NewMediaList()
	require.NoError(t, err)
	defer list.Release()

	present := &countingListListener{}
	list.Events().AddMediaListEventListener(present)
	list.Events().RemoveMediaListEventListener(&countingListListener{})
	assert.Equal(t, 1, list.events.svc.count())
}

func TestEventServiceAttachesOnlyItsRange(t *testing.T) {
	f, fake := newTestFactory(t)

	tests := []struct {
		name        string
		create      func() (handle uintptr, release func())
		first, last EventType
	}{
		{
			name: "media",
			create: func() (uintptr, func()) {
				m, err := f.NewMedia("file:///a.mkv")
				require.NoError(t, err)
				return m.handle, m.Release
			},
			first: MediaMetaChanged, last: MediaThumbnailGenerated,
		},
		{
			name: "media list",
			create: func() (uintptr, func()) {
				l, err := f.NewMediaList()
				require.NoError(t, err)
				return l.handle, l.Release
			},
			first: MediaListItemAdded, last: MediaListEndReached,
		},
		{
			name: "media player",
			create: func() (uintptr, func()) {
				p, err := f.NewMediaPlayer()
				require.NoError(t, err)
				return p.handle, p.Release
			},
			first: MediaPlayerMediaChanged, last: MediaPlayerChapterChanged,
		},
		{
			name: "media list player",
			create: func() (uintptr, func()) {
				lp, err := f.NewMediaListPlayer()
				require.NoError(t, err)
				return lp.handle, lp.Release
			},
			first: MediaListPlayerPlayed, last: MediaListPlayerStopped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handle, release := tt.create()
			manager := handle + 1

			var want []EventType
			for _, et := range EventTypes() {
				if et.InRange(tt.first, tt.last) {
					want = append(want, et)
				}
			}
			require.NotEmpty(t, want)
			if diff := cmp.Diff(want, fake.attachedTypes(manager)); diff != "" {
				t.Fatalf("attached types mismatch (-want +got):\n%s", diff)
			}

			release()
			assert.Empty(t, fake.attachedTypes(manager))
			if diff := cmp.Diff(want, fake.detachedTypes(manager)); diff != "" {
				t.Fatalf("detached types mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDispatchDropsOutOfRangeAndNilEvents(t *testing.T) {
	f, _ := newTestFactory(t)
	list, err := f.NewMediaList()
	require.NoError(t, err)
	defer list.Release()
	l := &countingListListener{}
	list.Events().AddMediaListEventListener(l)

	id := list.events.svc.id
	dispatchEvent(id, rawEvent{Type: MediaPlayerPlaying})
	dispatchEvent(id, rawEvent{Type: MediaListViewItemAdded})
	dispatchEvent(id+1000, rawEvent{Type: MediaListEndReached})
	assert.Zero(t, l.endReached.Load())

	player, err := f.NewMediaPlayer()
	require.NoError(t, err)
	defer player.Release()
	var calls atomic.Int32
	player.Events().AddMediaPlayerEventListener(&playerCounter{calls: &calls})
	dispatchEvent(player.events.svc.id, rawEvent{Type: MediaPlayerNothingSpecial})
	assert.Zero(t, calls.Load())
	dispatchEvent(player.events.svc.id, rawEvent{Type: MediaPlayerPlaying})
	assert.EqualValues(t, 1, calls.Load())

	assert.NotPanics(t, func() { eventTrampoline(0, id) })
}

type playerCounter struct {
	MediaPlayerEventAdapter
	calls *atomic.Int32
}

func (p *playerCounter) MediaPlayerPlaying(*MediaPlayer) { p.calls.Add(1) }

func TestListenerMayAddListenerDuringDispatch(t *testing.T) {
	f, fake := newTestFactory(t)
	list, err := f.NewMediaList()
	require.NoError(t, err)
	defer list.Release()

	late := &countingListListener{}
	var once sync.Once
	early := &countingListListener{}
	early.onEnd = func() {
		once.Do(func() { list.Events().AddMediaListEventListener(late) })
	}
	list.Events().AddMediaListEventListener(early)

	fake.raise(list.handle, rawEvent{Type: MediaListEndReached})
	assert.Zero(t, late.endReached.Load(), "dispatch iterates the snapshot taken at its start")

	fake.raise(list.handle, rawEvent{Type: MediaListEndReached})
	assert.EqualValues(t, 2, early.endReached.Load())
	assert.EqualValues(t, 1, late.endReached.Load())
}

func TestConcurrentAddRemoveDuringDispatch(t *testing.T) {
	f, fake := newTestFactory(t)
	list, err := f.NewMediaList()
	require.NoError(t, err)
	defer list.Release()

	stable := &countingListListener{}
	list.Events().AddMediaListEventListener(stable)

	const events = 500
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range events {
			fake.raise(list.handle, rawEvent{Type: MediaListEndReached})
		}
	}()
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				l := &countingListListener{}
				list.Events().AddMediaListEventListener(l)
				list.Events().RemoveMediaListEventListener(l)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, events, stable.endReached.Load())
	assert.Equal(t, 1, list.events.svc.count())
}

func TestEventServiceReleaseIsIdempotent(t *testing.T) {
	f, fake := newTestFactory(t)
	list, err := f.NewMediaList()
	require.NoError(t, err)

	l := &countingListListener{}
	list.Events().AddMediaListEventListener(l)
	id := list.events.svc.id

	list.Release()
	list.Release()

	assert.Equal(t, 1, fake.releaseCount(list.handle))
	assert.Len(t, fake.detachedTypes(list.handle+1), 5)
	assert.Zero(t, list.events.svc.count())

	dispatchEvent(id, rawEvent{Type: MediaListEndReached})
	assert.Zero(t, l.endReached.Load())
}

func TestNoEventManagerDisablesEvents(t *testing.T) {
	f, fake := newTestFactory(t)
	fake.api.mediaListEventManager = func(uintptr) uintptr { return 0 }

	list, err := f.NewMediaList()
	require.NoError(t, err)
	assert.Empty(t, list.events.svc.attached)
	list.Release()
}

func TestDecodeRawEvent(t *testing.T) {
	mem := nativeBlock(t, 32)
	buf := nativeAt[[4]uint64](mem, 0)
	*nativeAt[int32](mem, 0) = int32(MediaListItemDeleted)
	buf[1] = 0xdead
	buf[2] = 0xbeef
	buf[3] = 7

	raw, ok := decodeRawEvent(nativeAddr(mem, 0))
	require.True(t, ok)
	assert.Equal(t, rawEvent{Type: MediaListItemDeleted, Object: 0xdead, U: [2]uint64{0xbeef, 7}}, raw)
	assert.Equal(t, uintptr(0xbeef), raw.pointerAt0())
	assert.EqualValues(t, 7, raw.int32At8())

	_, ok = decodeRawEvent(0)
	assert.False(t, ok)
}
