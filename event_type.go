package vlc

// EventType identifies a native libvlc event (libvlc_event_e).
type EventType int32

// Media events.
const (
	MediaMetaChanged EventType = iota
	MediaSubItemAdded
	MediaDurationChanged
	MediaParsedChanged
	MediaFreed
	MediaStateChanged
	MediaSubItemTreeAdded
	MediaThumbnailGenerated
)

// Media player events.
const (
	MediaPlayerMediaChanged EventType = iota + 0x100
	MediaPlayerNothingSpecial
	MediaPlayerOpening
	MediaPlayerBuffering
	MediaPlayerPlaying
	MediaPlayerPaused
	MediaPlayerStopped
	MediaPlayerForward
	MediaPlayerBackward
	MediaPlayerEndReached
	MediaPlayerEncounteredError
	MediaPlayerTimeChanged
	MediaPlayerPositionChanged
	MediaPlayerSeekableChanged
	MediaPlayerPausableChanged
	MediaPlayerTitleChanged
	MediaPlayerSnapshotTaken
	MediaPlayerLengthChanged
	MediaPlayerVout
	MediaPlayerScrambledChanged
	MediaPlayerESAdded
	MediaPlayerESDeleted
	MediaPlayerESSelected
	MediaPlayerCorked
	MediaPlayerUncorked
	MediaPlayerMuted
	MediaPlayerUnmuted
	MediaPlayerAudioVolume
	MediaPlayerAudioDevice
	MediaPlayerChapterChanged
)

// Media list events.
const (
	MediaListItemAdded EventType = iota + 0x200
	MediaListWillAddItem
	MediaListItemDeleted
	MediaListWillDeleteItem
	MediaListEndReached
)

// Media list view events. libvlc still declares them but never raises them.
const (
	MediaListViewItemAdded EventType = iota + 0x300
	MediaListViewWillAddItem
	MediaListViewItemDeleted
	MediaListViewWillDeleteItem
)

// Media list player events.
const (
	MediaListPlayerPlayed EventType = iota + 0x400
	MediaListPlayerNextItemSet
	MediaListPlayerStopped
)

// Discoverer events.
const (
	MediaDiscovererStarted EventType = iota + 0x500
	MediaDiscovererEnded
	RendererDiscovererItemAdded
	RendererDiscovererItemDeleted
)

// EventCategory groups event types by the object that raises them.
type EventCategory uint8

const (
	CategoryUnknown EventCategory = iota
	CategoryMedia
	CategoryMediaPlayer
	CategoryMediaList
	CategoryMediaListView
	CategoryMediaListPlayer
	CategoryDiscoverer
)

func (c EventCategory) String() string {
	switch c {
	case CategoryMedia:
		return "media"
	case CategoryMediaPlayer:
		return "media-player"
	case CategoryMediaList:
		return "media-list"
	case CategoryMediaListView:
		return "media-list-view"
	case CategoryMediaListPlayer:
		return "media-list-player"
	case CategoryDiscoverer:
		return "discoverer"
	default:
		return "unknown"
	}
}

type eventMeta struct {
	Type     EventType
	Name     string
	Category EventCategory
}

// Static table in ascending type order, mirroring libvlc_event_e.
var eventTable = []eventMeta{
	{MediaMetaChanged, "MediaMetaChanged", CategoryMedia},
	{MediaSubItemAdded, "MediaSubItemAdded", CategoryMedia},
	{MediaDurationChanged, "MediaDurationChanged", CategoryMedia},
	{MediaParsedChanged, "MediaParsedChanged", CategoryMedia},
	{MediaFreed, "MediaFreed", CategoryMedia},
	{MediaStateChanged, "MediaStateChanged", CategoryMedia},
	{MediaSubItemTreeAdded, "MediaSubItemTreeAdded", CategoryMedia},
	{MediaThumbnailGenerated, "MediaThumbnailGenerated", CategoryMedia},

	{MediaPlayerMediaChanged, "MediaPlayerMediaChanged", CategoryMediaPlayer},
	{MediaPlayerNothingSpecial, "MediaPlayerNothingSpecial", CategoryMediaPlayer},
	{MediaPlayerOpening, "MediaPlayerOpening", CategoryMediaPlayer},
	{MediaPlayerBuffering, "MediaPlayerBuffering", CategoryMediaPlayer},
	{MediaPlayerPlaying, "MediaPlayerPlaying", CategoryMediaPlayer},
	{MediaPlayerPaused, "MediaPlayerPaused", CategoryMediaPlayer},
	{MediaPlayerStopped, "MediaPlayerStopped", CategoryMediaPlayer},
	{MediaPlayerForward, "MediaPlayerForward", CategoryMediaPlayer},
	{MediaPlayerBackward, "MediaPlayerBackward", CategoryMediaPlayer},
	{MediaPlayerEndReached, "MediaPlayerEndReached", CategoryMediaPlayer},
	{MediaPlayerEncounteredError, "MediaPlayerEncounteredError", CategoryMediaPlayer},
	{MediaPlayerTimeChanged, "MediaPlayerTimeChanged", CategoryMediaPlayer},
	{MediaPlayerPositionChanged, "MediaPlayerPositionChanged", CategoryMediaPlayer},
	{MediaPlayerSeekableChanged, "MediaPlayerSeekableChanged", CategoryMediaPlayer},
	{MediaPlayerPausableChanged, "MediaPlayerPausableChanged", CategoryMediaPlayer},
	{MediaPlayerTitleChanged, "MediaPlayerTitleChanged", CategoryMediaPlayer},
	{MediaPlayerSnapshotTaken, "MediaPlayerSnapshotTaken", CategoryMediaPlayer},
	{MediaPlayerLengthChanged, "MediaPlayerLengthChanged", CategoryMediaPlayer},
	{MediaPlayerVout, "MediaPlayerVout", CategoryMediaPlayer},
	{MediaPlayerScrambledChanged, "MediaPlayerScrambledChanged", CategoryMediaPlayer},
	{MediaPlayerESAdded, "MediaPlayerESAdded", CategoryMediaPlayer},
	{MediaPlayerESDeleted, "MediaPlayerESDeleted", CategoryMediaPlayer},
	{MediaPlayerESSelected, "MediaPlayerESSelected", CategoryMediaPlayer},
	{MediaPlayerCorked, "MediaPlayerCorked", CategoryMediaPlayer},
	{MediaPlayerUncorked, "MediaPlayerUncorked", CategoryMediaPlayer},
	{MediaPlayerMuted, "MediaPlayerMuted", CategoryMediaPlayer},
	{MediaPlayerUnmuted, "MediaPlayerUnmuted", CategoryMediaPlayer},
	{MediaPlayerAudioVolume, "MediaPlayerAudioVolume", CategoryMediaPlayer},
	{MediaPlayerAudioDevice, "MediaPlayerAudioDevice", CategoryMediaPlayer},
	{MediaPlayerChapterChanged, "MediaPlayerChapterChanged", CategoryMediaPlayer},

	{MediaListItemAdded, "MediaListItemAdded", CategoryMediaList},
	{MediaListWillAddItem, "MediaListWillAddItem", CategoryMediaList},
	{MediaListItemDeleted, "MediaListItemDeleted", CategoryMediaList},
	{MediaListWillDeleteItem, "MediaListWillDeleteItem", CategoryMediaList},
	{MediaListEndReached, "MediaListEndReached", CategoryMediaList},

	{MediaListViewItemAdded, "MediaListViewItemAdded", CategoryMediaListView},
	{MediaListViewWillAddItem, "MediaListViewWillAddItem", CategoryMediaListView},
	{MediaListViewItemDeleted, "MediaListViewItemDeleted", CategoryMediaListView},
	{MediaListViewWillDeleteItem, "MediaListViewWillDeleteItem", CategoryMediaListView},

	{MediaListPlayerPlayed, "MediaListPlayerPlayed", CategoryMediaListPlayer},
	{MediaListPlayerNextItemSet, "MediaListPlayerNextItemSet", CategoryMediaListPlayer},
	{MediaListPlayerStopped, "MediaListPlayerStopped", CategoryMediaListPlayer},

	{MediaDiscovererStarted, "MediaDiscovererStarted", CategoryDiscoverer},
	{MediaDiscovererEnded, "MediaDiscovererEnded", CategoryDiscoverer},
	{RendererDiscovererItemAdded, "RendererDiscovererItemAdded", CategoryDiscoverer},
	{RendererDiscovererItemDeleted, "RendererDiscovererItemDeleted", CategoryDiscoverer},
}

func lookupEvent(t EventType) (eventMeta, bool) {
	lo, hi := 0, len(eventTable)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case eventTable[mid].Type == t:
			return eventTable[mid], true
		case eventTable[mid].Type < t:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return eventMeta{}, false
}

// EventTypes returns every known event type in ascending order.
func EventTypes() []EventType {
	types := make([]EventType, len(eventTable))
	for i, m := range eventTable {
		types[i] = m.Type
	}
	return types
}

// String returns the libvlc name of the event type without the libvlc_ prefix.
func (t EventType) String() string {
	if m, ok := lookupEvent(t); ok {
		return m.Name
	}
	return "unknown"
}

// Category returns the kind of object that raises the event.
func (t EventType) Category() EventCategory {
	if m, ok := lookupEvent(t); ok {
		return m.Category
	}
	return CategoryUnknown
}

// Known reports whether t is a declared libvlc event type.
func (t EventType) Known() bool {
	_, ok := lookupEvent(t)
	return ok
}

// InRange reports whether t lies within [first, last].
func (t EventType) InRange(first, last EventType) bool {
	return t >= first && t <= last
}
