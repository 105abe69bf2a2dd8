package vlc

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListListener struct {
	MediaListEventAdapter
	mu      sync.Mutex
	added   []int
	deleted []int
}

func (l *recordingListListener) MediaListItemAdded(_ *MediaList, _ MediaRef, index int) {
	l.mu.Lock()
	l.added = append(l.added, index)
	l.mu.Unlock()
}

func (l *recordingListListener) MediaListItemDeleted(_ *MediaList, _ MediaRef, index int) {
	l.mu.Lock()
	l.deleted = append(l.deleted, index)
	l.mu.Unlock()
}

func newTestList(t *testing.T) (*MediaList, *recordingListListener, *fakeLibVLC) {
	t.Helper()
	f, fake := newTestFactory(t)
	list, err := f.NewMediaList()
	require.NoError(t, err)
	t.Cleanup(list.Release)
	l := &recordingListListener{}
	list.Events().AddMediaListEventListener(l)
	return list, l, fake
}

func TestMediaListAddRaisesEvents(t *testing.T) {
	list, l, fake := newTestList(t)

	require.NoError(t, list.Add("file:///a.mkv"))
	require.NoError(t, list.Add("file:///b.mkv"))
	require.NoError(t, list.Insert(0, "file:///c.mkv"))

	assert.Equal(t, 3, list.Count())
	assert.Equal(t, []int{0, 1, 0}, l.added)
	assert.Len(t, fake.listItems(list.handle), 3)
}

func TestMediaListMutationRunsUnderLock(t *testing.T) {
	list, _, fake := newTestList(t)
	f := list.f
	m, err := f.NewMedia("file:///a.mkv")
	require.NoError(t, err)
	defer m.Release()

	before := len(fake.callLog())
	require.NoError(t, list.AddMedia(m))
	got := fake.callLog()[before:]
	if diff := cmp.Diff([]string{"media_list_lock", "media_list_unlock"}, got); diff != "" {
		t.Fatalf("call log mismatch (-want +got):\n%s", diff)
	}
}

func TestMediaListFailedMutationRaisesNoEvent(t *testing.T) {
	list, l, fake := newTestList(t)

	fake.fail("media_list_add")
	err := list.Add("file:///a.mkv")
	require.ErrorIs(t, err, ErrNativeCall)

	err = list.Remove(3)
	require.ErrorIs(t, err, ErrNativeCall)

	err = list.Insert(5, "file:///b.mkv")
	require.ErrorIs(t, err, ErrNativeCall)

	assert.Empty(t, l.added)
	assert.Empty(t, l.deleted)
	assert.Zero(t, list.Count())
}

func TestMediaListAddReleasesLocalReference(t *testing.T) {
	list, _, fake := newTestList(t)

	require.NoError(t, list.Add("file:///a.mkv"))
	handle := fake.listItems(list.handle)[0]
	assert.Equal(t, 1, fake.releaseCount(handle))
}

func TestMediaListClearRemovesLastFirst(t *testing.T) {
	list, l, _ := newTestList(t)
	for _, mrl := range []string{"a", "b", "c"} {
		require.NoError(t, list.Add(mrl))
	}

	require.NoError(t, list.Clear())
	assert.Equal(t, []int{2, 1, 0}, l.deleted)
	assert.Zero(t, list.Count())
}

func TestMediaListItemAndIndexOf(t *testing.T) {
	list, _, fake := newTestList(t)
	require.NoError(t, list.Add("a"))
	require.NoError(t, list.Add("b"))

	item, err := list.Item(1)
	require.NoError(t, err)
	assert.Equal(t, fake.listItems(list.handle)[1], item.handle)
	assert.Equal(t, 1, list.IndexOf(item))
	item.Release()
	item.Release()
	assert.Equal(t, 2, fake.releaseCount(item.handle), "one from Add, one from the owned item")

	_, err = list.Item(9)
	assert.ErrorIs(t, err, ErrNativeCall)
	assert.False(t, list.IsReadOnly())
}
