package vlc

import (
	"fmt"
	"sync/atomic"
)

// MediaList is an ordered sequence of media. Mutations run under libvlc's own
// list lock.
type MediaList struct {
	f        *Factory
	handle   uintptr
	events   *MediaListEventService
	released atomic.Bool
}

func newMediaList(f *Factory, handle uintptr) *MediaList {
	ml := &MediaList{f: f, handle: handle}
	svc := newEventService(f, f.lib.mediaListEventManager(handle), MediaListItemAdded, MediaListEndReached,
		func(raw rawEvent) notifier[MediaListEventListener] {
			return createMediaListEvent(ml, raw)
		})
	ml.events = &MediaListEventService{svc: svc}
	f.metrics.handleAcquired("media_list")
	return ml
}

// Events returns the media list event service.
func (l *MediaList) Events() *MediaListEventService {
	return l.events
}

func (l *MediaList) locked(fn func()) {
	l.f.lib.mediaListLock(l.handle)
	defer l.f.lib.mediaListUnlock(l.handle)
	fn()
}

// Add creates media for mrl and appends it. The list holds its own reference.
func (l *MediaList) Add(mrl string, options ...string) error {
	m, err := l.f.NewMedia(mrl, options...)
	if err != nil {
		return err
	}
	defer m.Release()
	return l.AddMedia(m)
}

// AddMedia appends m. The caller keeps its own reference to m. A failed
// append raises no event.
func (l *MediaList) AddMedia(m *Media) error {
	var rc int32
	l.locked(func() { rc = l.f.lib.mediaListAddMedia(l.handle, m.handle) })
	if rc != 0 {
		return l.f.lib.nativeErr("libvlc_media_list_add_media")
	}
	return nil
}

// Insert creates media for mrl and inserts it at index.
func (l *MediaList) Insert(index int, mrl string, options ...string) error {
	m, err := l.f.NewMedia(mrl, options...)
	if err != nil {
		return err
	}
	defer m.Release()
	return l.InsertMedia(index, m)
}

// InsertMedia inserts m at index.
func (l *MediaList) InsertMedia(index int, m *Media) error {
	var rc int32
	l.locked(func() { rc = l.f.lib.mediaListInsertMedia(l.handle, m.handle, int32(index)) })
	if rc != 0 {
		return fmt.Errorf("insert at %d: %w", index, l.f.lib.nativeErr("libvlc_media_list_insert_media"))
	}
	return nil
}

// Remove deletes the item at index.
func (l *MediaList) Remove(index int) error {
	var rc int32
	l.locked(func() { rc = l.f.lib.mediaListRemoveIndex(l.handle, int32(index)) })
	if rc != 0 {
		return fmt.Errorf("remove %d: %w", index, l.f.lib.nativeErr("libvlc_media_list_remove_index"))
	}
	return nil
}

// Clear removes every item, last first.
func (l *MediaList) Clear() error {
	var err error
	l.locked(func() {
		for i := l.f.lib.mediaListCount(l.handle) - 1; i >= 0; i-- {
			if l.f.lib.mediaListRemoveIndex(l.handle, i) != 0 {
				err = l.f.lib.nativeErr("libvlc_media_list_remove_index")
				return
			}
		}
	})
	return err
}

// Count returns the number of items.
func (l *MediaList) Count() int {
	var n int32
	l.locked(func() { n = l.f.lib.mediaListCount(l.handle) })
	return int(n)
}

// Item returns an owned reference to the media at index. The caller must
// Release it.
func (l *MediaList) Item(index int) (*Media, error) {
	var handle uintptr
	l.locked(func() { handle = l.f.lib.mediaListItemAtIndex(l.handle, int32(index)) })
	if handle == 0 {
		return nil, fmt.Errorf("item %d: %w", index, l.f.lib.nativeErr("libvlc_media_list_item_at_index"))
	}
	return newMedia(l.f, handle), nil
}

// MRLs returns the MRL of every item in order.
func (l *MediaList) MRLs() []string {
	var mrls []string
	l.locked(func() {
		n := l.f.lib.mediaListCount(l.handle)
		mrls = make([]string, 0, n)
		for i := int32(0); i < n; i++ {
			handle := l.f.lib.mediaListItemAtIndex(l.handle, i)
			if handle == 0 {
				continue
			}
			mrls = append(mrls, l.f.lib.takeString(l.f.lib.mediaGetMRL(handle)))
			l.f.lib.mediaRelease(handle)
		}
	})
	return mrls
}

// IndexOf returns the position of m, or -1.
func (l *MediaList) IndexOf(m *Media) int {
	var idx int32
	l.locked(func() { idx = l.f.lib.mediaListIndexOfItem(l.handle, m.handle) })
	return int(idx)
}

// IsReadOnly reports whether the list rejects mutations.
func (l *MediaList) IsReadOnly() bool {
	return l.f.lib.mediaListIsReadonly(l.handle) != 0
}

// Release detaches events and drops this owner's native reference. Further
// calls are no-ops.
func (l *MediaList) Release() {
	if !l.released.CompareAndSwap(false, true) {
		return
	}
	l.events.svc.release()
	l.f.lib.mediaListRelease(l.handle)
	l.f.metrics.handleReleased("media_list")
}
