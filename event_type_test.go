package vlc

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventTypeMetadata(t *testing.T) {
	tests := []struct {
		typ      EventType
		name     string
		category EventCategory
	}{
		{MediaMetaChanged, "MediaMetaChanged", CategoryMedia},
		{MediaThumbnailGenerated, "MediaThumbnailGenerated", CategoryMedia},
		{MediaPlayerMediaChanged, "MediaPlayerMediaChanged", CategoryMediaPlayer},
		{MediaPlayerChapterChanged, "MediaPlayerChapterChanged", CategoryMediaPlayer},
		{MediaListEndReached, "MediaListEndReached", CategoryMediaList},
		{MediaListPlayerNextItemSet, "MediaListPlayerNextItemSet", CategoryMediaListPlayer},
		{RendererDiscovererItemDeleted, "RendererDiscovererItemDeleted", CategoryDiscoverer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.typ.Known())
			assert.Equal(t, tt.name, tt.typ.String())
			assert.Equal(t, tt.category, tt.typ.Category())
		})
	}
}

func TestEventTypeValues(t *testing.T) {
	assert.EqualValues(t, 0x7, MediaThumbnailGenerated)
	assert.EqualValues(t, 0x109, MediaPlayerEndReached)
	assert.EqualValues(t, 0x11D, MediaPlayerChapterChanged)
	assert.EqualValues(t, 0x204, MediaListEndReached)
	assert.EqualValues(t, 0x402, MediaListPlayerStopped)
}

func TestUnknownEventType(t *testing.T) {
	for _, et := range []EventType{-1, 0x8, 0x11E, 0x205, 0x600} {
		assert.False(t, et.Known())
		assert.Equal(t, "unknown", et.String())
		assert.Equal(t, CategoryUnknown, et.Category())
	}
}

func TestEventTypesSortedAndUnique(t *testing.T) {
	types := EventTypes()
	assert.True(t, sort.SliceIsSorted(types, func(i, j int) bool { return types[i] < types[j] }))
	seen := make(map[EventType]bool)
	for _, et := range types {
		assert.False(t, seen[et], "duplicate %v", et)
		seen[et] = true
	}
	assert.Len(t, types, 8+30+5+4+3+4)
}

func TestEventTypeInRange(t *testing.T) {
	assert.True(t, MediaListItemAdded.InRange(MediaListItemAdded, MediaListEndReached))
	assert.True(t, MediaListEndReached.InRange(MediaListItemAdded, MediaListEndReached))
	assert.False(t, MediaListViewItemAdded.InRange(MediaListItemAdded, MediaListEndReached))
	assert.False(t, MediaPlayerChapterChanged.InRange(MediaListItemAdded, MediaListEndReached))
}
