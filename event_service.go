package vlc

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// dispatcher is implemented by every event service regardless of its
// listener type, so the shared trampoline can route native events.
type dispatcher interface {
	dispatch(raw rawEvent)
}

// Global callback state. libvlc hands the registration id back as the
// callback user data.
var (
	dispatchersMu     sync.RWMutex
	dispatchers       = make(map[uintptr]dispatcher)
	dispatcherCounter uintptr
)

func registerDispatcher(d dispatcher) uintptr {
	dispatchersMu.Lock()
	defer dispatchersMu.Unlock()
	dispatcherCounter++
	id := dispatcherCounter
	dispatchers[id] = d
	return id
}

func unregisterDispatcher(id uintptr) {
	dispatchersMu.Lock()
	delete(dispatchers, id)
	dispatchersMu.Unlock()
}

// eventTrampoline is the single libvlc_callback_t shared by every event
// manager. It runs on a libvlc-owned thread: it must not block and must not
// call back into libvlc.
func eventTrampoline(event uintptr, userData uintptr) {
	raw, ok := decodeRawEvent(event)
	if !ok {
		return
	}
	dispatchEvent(userData, raw)
}

func dispatchEvent(id uintptr, raw rawEvent) {
	dispatchersMu.RLock()
	d, ok := dispatchers[id]
	dispatchersMu.RUnlock()

	if !ok || d == nil {
		return
	}
	d.dispatch(raw)
}

// notifier is a typed event able to deliver itself to a listener of type L.
type notifier[L any] interface {
	Type() EventType
	notify(listener L)
}

// eventService bridges one native event manager to a copy-on-write list of
// listeners. Only event types within [first, last] are attached.
type eventService[L comparable] struct {
	lib      *libvlcAPI
	manager  uintptr
	first    EventType
	last     EventType
	category EventCategory
	create   func(raw rawEvent) notifier[L]
	metrics  *EventMetrics
	logger   zerolog.Logger

	id        uintptr
	mu        sync.Mutex // serialises writers; readers use the snapshot
	listeners atomic.Pointer[[]L]
	attached  []EventType
	released  atomic.Bool
}

func newEventService[L comparable](f *Factory, manager uintptr, first, last EventType, create func(raw rawEvent) notifier[L]) *eventService[L] {
	s := &eventService[L]{
		lib:      f.lib,
		manager:  manager,
		first:    first,
		last:     last,
		category: first.Category(),
		create:   create,
		metrics:  f.metrics,
		logger:   f.logger.With().Str("events", first.Category().String()).Logger(),
	}
	empty := make([]L, 0)
	s.listeners.Store(&empty)
	s.id = registerDispatcher(s)
	s.registerNativeEventListener()
	return s
}

// add appends listener to a fresh copy of the listener list.
func (s *eventService[L]) add(listener L) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := *s.listeners.Load()
	next := make([]L, len(current), len(current)+1)
	copy(next, current)
	next = append(next, listener)
	s.listeners.Store(&next)
}

// remove drops the first occurrence of listener; absent listeners are ignored.
func (s *eventService[L]) remove(listener L) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := *s.listeners.Load()
	for i, l := range current {
		if l != listener {
			continue
		}
		next := make([]L, 0, len(current)-1)
		next = append(next, current[:i]...)
		next = append(next, current[i+1:]...)
		s.listeners.Store(&next)
		return
	}
}

func (s *eventService[L]) count() int {
	return len(*s.listeners.Load())
}

// registerNativeEventListener attaches the shared trampoline for every event
// type in the service range.
func (s *eventService[L]) registerNativeEventListener() {
	if s.manager == 0 {
		s.logger.Warn().Msg("no native event manager, events disabled")
		return
	}
	for _, t := range EventTypes() {
		if !t.InRange(s.first, s.last) {
			continue
		}
		if rc := s.lib.eventAttach(s.manager, int32(t), s.lib.eventCallback, s.id); rc != 0 {
			s.logger.Warn().Stringer("type", t).Str("native", s.lib.eventName(t)).Int32("rc", rc).Msg("event attach failed")
			continue
		}
		s.attached = append(s.attached, t)
	}
}

// deregisterNativeEventListener detaches exactly what was attached.
func (s *eventService[L]) deregisterNativeEventListener() {
	for _, t := range s.attached {
		s.lib.eventDetach(s.manager, int32(t), s.lib.eventCallback, s.id)
	}
	s.attached = nil
}

// dispatch converts the raw event and fans it out to the current listener
// snapshot. Unrecognised events are dropped.
func (s *eventService[L]) dispatch(raw rawEvent) {
	if !raw.Type.InRange(s.first, s.last) {
		return
	}
	ev := s.create(raw)
	if ev == nil {
		return
	}
	s.metrics.eventDispatched(s.category, ev.Type())
	for _, l := range *s.listeners.Load() {
		ev.notify(l)
	}
}

// release clears listeners and detaches from the native event manager. It
// must run before the owning native object is destroyed.
func (s *eventService[L]) release() {
	if !s.released.CompareAndSwap(false, true) {
		return
	}

	s.mu.Lock()
	empty := make([]L, 0)
	s.listeners.Store(&empty)
	s.mu.Unlock()

	s.deregisterNativeEventListener()
	unregisterDispatcher(s.id)
}
