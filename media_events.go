package vlc

import "time"

// MediaEventListener receives events raised by a Media. Methods run on a
// libvlc thread: they must return quickly and must not call back into the
// binding. Implementations must be comparable (typically a pointer) so they
// can be removed again.
type MediaEventListener interface {
	MediaMetaChanged(media *Media, meta Meta)
	MediaSubItemAdded(media *Media, newChild MediaRef)
	MediaDurationChanged(media *Media, duration time.Duration)
	MediaParsedChanged(media *Media, status ParsedStatus)
	MediaFreed(media *Media, freed MediaRef)
	MediaStateChanged(media *Media, state State)
	MediaSubItemTreeAdded(media *Media, item MediaRef)
	MediaThumbnailGenerated(media *Media, picture uintptr)
}

// MediaEventAdapter implements MediaEventListener with no-ops. Embed it and
// override the methods of interest.
type MediaEventAdapter struct{}

func (MediaEventAdapter) MediaMetaChanged(*Media, Meta)              {}
func (MediaEventAdapter) MediaSubItemAdded(*Media, MediaRef)         {}
func (MediaEventAdapter) MediaDurationChanged(*Media, time.Duration) {}
func (MediaEventAdapter) MediaParsedChanged(*Media, ParsedStatus)    {}
func (MediaEventAdapter) MediaFreed(*Media, MediaRef)                {}
func (MediaEventAdapter) MediaStateChanged(*Media, State)            {}
func (MediaEventAdapter) MediaSubItemTreeAdded(*Media, MediaRef)     {}
func (MediaEventAdapter) MediaThumbnailGenerated(*Media, uintptr)    {}

// MediaEvent is a typed media event.
type MediaEvent interface {
	Type() EventType
	notify(listener MediaEventListener)
}

// MediaMetaChangedEvent reports a metadata change.
type MediaMetaChangedEvent struct {
	Media *Media
	Meta  Meta
}

func (MediaMetaChangedEvent) Type() EventType { return MediaMetaChanged }
func (e MediaMetaChangedEvent) notify(l MediaEventListener) {
	l.MediaMetaChanged(e.Media, e.Meta)
}

// MediaSubItemAddedEvent reports a new sub-item, e.g. a playlist entry.
type MediaSubItemAddedEvent struct {
	Media    *Media
	NewChild MediaRef
}

func (MediaSubItemAddedEvent) Type() EventType { return MediaSubItemAdded }
func (e MediaSubItemAddedEvent) notify(l MediaEventListener) {
	l.MediaSubItemAdded(e.Media, e.NewChild)
}

// MediaDurationChangedEvent reports a new duration.
type MediaDurationChangedEvent struct {
	Media    *Media
	Duration time.Duration
}

func (MediaDurationChangedEvent) Type() EventType { return MediaDurationChanged }
func (e MediaDurationChangedEvent) notify(l MediaEventListener) {
	l.MediaDurationChanged(e.Media, e.Duration)
}

// MediaParsedChangedEvent reports the end of an asynchronous parse.
type MediaParsedChangedEvent struct {
	Media  *Media
	Status ParsedStatus
}

func (MediaParsedChangedEvent) Type() EventType { return MediaParsedChanged }
func (e MediaParsedChangedEvent) notify(l MediaEventListener) {
	l.MediaParsedChanged(e.Media, e.Status)
}

// MediaFreedEvent reports that the native media is being destroyed.
type MediaFreedEvent struct {
	Media *Media
	Freed MediaRef
}

func (MediaFreedEvent) Type() EventType { return MediaFreed }
func (e MediaFreedEvent) notify(l MediaEventListener) {
	l.MediaFreed(e.Media, e.Freed)
}

// MediaStateChangedEvent reports a media state transition.
type MediaStateChangedEvent struct {
	Media *Media
	State State
}

func (MediaStateChangedEvent) Type() EventType { return MediaStateChanged }
func (e MediaStateChangedEvent) notify(l MediaEventListener) {
	l.MediaStateChanged(e.Media, e.State)
}

// MediaSubItemTreeAddedEvent reports that a sub-item tree was added.
type MediaSubItemTreeAddedEvent struct {
	Media *Media
	Item  MediaRef
}

func (MediaSubItemTreeAddedEvent) Type() EventType { return MediaSubItemTreeAdded }
func (e MediaSubItemTreeAddedEvent) notify(l MediaEventListener) {
	l.MediaSubItemTreeAdded(e.Media, e.Item)
}

// MediaThumbnailGeneratedEvent carries the native picture handle of a
// generated thumbnail; it is only valid during the callback.
type MediaThumbnailGeneratedEvent struct {
	Media   *Media
	Picture uintptr
}

func (MediaThumbnailGeneratedEvent) Type() EventType { return MediaThumbnailGenerated }
func (e MediaThumbnailGeneratedEvent) notify(l MediaEventListener) {
	l.MediaThumbnailGenerated(e.Media, e.Picture)
}

// createMediaEvent converts a raw native event; nil for anything that is not
// a media event.
func createMediaEvent(m *Media, raw rawEvent) MediaEvent {
	switch raw.Type {
	case MediaMetaChanged:
		return MediaMetaChangedEvent{Media: m, Meta: Meta(raw.int32At0())}
	case MediaSubItemAdded:
		return MediaSubItemAddedEvent{Media: m, NewChild: m.ref(raw.pointerAt0())}
	case MediaDurationChanged:
		return MediaDurationChangedEvent{Media: m, Duration: time.Duration(raw.int64At0()) * time.Millisecond}
	case MediaParsedChanged:
		return MediaParsedChangedEvent{Media: m, Status: ParsedStatus(raw.int32At0())}
	case MediaFreed:
		return MediaFreedEvent{Media: m, Freed: m.ref(raw.pointerAt0())}
	case MediaStateChanged:
		return MediaStateChangedEvent{Media: m, State: State(raw.int32At0())}
	case MediaSubItemTreeAdded:
		return MediaSubItemTreeAddedEvent{Media: m, Item: m.ref(raw.pointerAt0())}
	case MediaThumbnailGenerated:
		return MediaThumbnailGeneratedEvent{Media: m, Picture: raw.pointerAt0()}
	default:
		return nil
	}
}

// MediaEventService manages the listeners of one Media.
type MediaEventService struct {
	svc *eventService[MediaEventListener]
}

// AddMediaEventListener registers listener. Safe to call while events are
// being dispatched; the listener sees events raised after the call returns.
func (s *MediaEventService) AddMediaEventListener(listener MediaEventListener) {
	s.svc.add(listener)
}

// RemoveMediaEventListener unregisters listener. Absent listeners are ignored.
func (s *MediaEventService) RemoveMediaEventListener(listener MediaEventListener) {
	s.svc.remove(listener)
}
