package vlc

// MediaListEventListener receives events raised by a MediaList. libvlc raises
// them with the list lock held, so handlers must not touch the list.
type MediaListEventListener interface {
	MediaListItemAdded(list *MediaList, item MediaRef, index int)
	MediaListWillAddItem(list *MediaList, item MediaRef, index int)
	MediaListItemDeleted(list *MediaList, item MediaRef, index int)
	MediaListWillDeleteItem(list *MediaList, item MediaRef, index int)
	MediaListEndReached(list *MediaList)
}

// MediaListEventAdapter implements MediaListEventListener with no-ops.
type MediaListEventAdapter struct{}

func (MediaListEventAdapter) MediaListItemAdded(*MediaList, MediaRef, int)      {}
func (MediaListEventAdapter) MediaListWillAddItem(*MediaList, MediaRef, int)    {}
func (MediaListEventAdapter) MediaListItemDeleted(*MediaList, MediaRef, int)    {}
func (MediaListEventAdapter) MediaListWillDeleteItem(*MediaList, MediaRef, int) {}
func (MediaListEventAdapter) MediaListEndReached(*MediaList)                    {}

// MediaListEvent is a typed media list event.
type MediaListEvent interface {
	Type() EventType
	notify(listener MediaListEventListener)
}

// MediaListItemEvent covers the four item events; Kind tells them apart.
type MediaListItemEvent struct {
	Kind  EventType
	List  *MediaList
	Item  MediaRef
	Index int
}

func (e MediaListItemEvent) Type() EventType { return e.Kind }

func (e MediaListItemEvent) notify(l MediaListEventListener) {
	switch e.Kind {
	case MediaListItemAdded:
		l.MediaListItemAdded(e.List, e.Item, e.Index)
	case MediaListWillAddItem:
		l.MediaListWillAddItem(e.List, e.Item, e.Index)
	case MediaListItemDeleted:
		l.MediaListItemDeleted(e.List, e.Item, e.Index)
	case MediaListWillDeleteItem:
		l.MediaListWillDeleteItem(e.List, e.Item, e.Index)
	}
}

// MediaListEndReachedEvent reports the end of a list being played.
type MediaListEndReachedEvent struct {
	List *MediaList
}

func (MediaListEndReachedEvent) Type() EventType { return MediaListEndReached }
func (e MediaListEndReachedEvent) notify(l MediaListEventListener) {
	l.MediaListEndReached(e.List)
}

func createMediaListEvent(ml *MediaList, raw rawEvent) MediaListEvent {
	switch raw.Type {
	case MediaListItemAdded, MediaListWillAddItem, MediaListItemDeleted, MediaListWillDeleteItem:
		return MediaListItemEvent{
			Kind:  raw.Type,
			List:  ml,
			Item:  MediaRef{f: ml.f, handle: raw.pointerAt0()},
			Index: int(raw.int32At8()),
		}
	case MediaListEndReached:
		return MediaListEndReachedEvent{List: ml}
	default:
		return nil
	}
}

// MediaListEventService manages the listeners of one MediaList.
type MediaListEventService struct {
	svc *eventService[MediaListEventListener]
}

// AddMediaListEventListener registers listener.
func (s *MediaListEventService) AddMediaListEventListener(listener MediaListEventListener) {
	s.svc.add(listener)
}

// RemoveMediaListEventListener unregisters listener. Absent listeners are
// ignored.
func (s *MediaListEventService) RemoveMediaListEventListener(listener MediaListEventListener) {
	s.svc.remove(listener)
}
