package vlc

// MediaListPlayerEventListener receives events raised by a MediaListPlayer.
type MediaListPlayerEventListener interface {
	MediaListPlayerPlayed(player *MediaListPlayer)
	MediaListPlayerNextItemSet(player *MediaListPlayer, item MediaRef)
	MediaListPlayerStopped(player *MediaListPlayer)
}

// MediaListPlayerEventAdapter implements MediaListPlayerEventListener with
// no-ops.
type MediaListPlayerEventAdapter struct{}

func (MediaListPlayerEventAdapter) MediaListPlayerPlayed(*MediaListPlayer)                {}
func (MediaListPlayerEventAdapter) MediaListPlayerNextItemSet(*MediaListPlayer, MediaRef) {}
func (MediaListPlayerEventAdapter) MediaListPlayerStopped(*MediaListPlayer)               {}

// MediaListPlayerEvent is a typed media list player event.
type MediaListPlayerEvent interface {
	Type() EventType
	notify(listener MediaListPlayerEventListener)
}

// MediaListPlayerPlayedEvent reports that the whole list has been played.
type MediaListPlayerPlayedEvent struct {
	Player *MediaListPlayer
}

func (MediaListPlayerPlayedEvent) Type() EventType { return MediaListPlayerPlayed }
func (e MediaListPlayerPlayedEvent) notify(l MediaListPlayerEventListener) {
	l.MediaListPlayerPlayed(e.Player)
}

// MediaListPlayerNextItemSetEvent reports the item about to be played.
type MediaListPlayerNextItemSetEvent struct {
	Player *MediaListPlayer
	Item   MediaRef
}

func (MediaListPlayerNextItemSetEvent) Type() EventType { return MediaListPlayerNextItemSet }
func (e MediaListPlayerNextItemSetEvent) notify(l MediaListPlayerEventListener) {
	l.MediaListPlayerNextItemSet(e.Player, e.Item)
}

// MediaListPlayerStoppedEvent reports that list playback stopped.
type MediaListPlayerStoppedEvent struct {
	Player *MediaListPlayer
}

func (MediaListPlayerStoppedEvent) Type() EventType { return MediaListPlayerStopped }
func (e MediaListPlayerStoppedEvent) notify(l MediaListPlayerEventListener) {
	l.MediaListPlayerStopped(e.Player)
}

func createMediaListPlayerEvent(p *MediaListPlayer, raw rawEvent) MediaListPlayerEvent {
	switch raw.Type {
	case MediaListPlayerPlayed:
		return MediaListPlayerPlayedEvent{Player: p}
	case MediaListPlayerNextItemSet:
		return MediaListPlayerNextItemSetEvent{Player: p, Item: MediaRef{f: p.f, handle: raw.pointerAt0()}}
	case MediaListPlayerStopped:
		return MediaListPlayerStoppedEvent{Player: p}
	default:
		return nil
	}
}

// MediaListPlayerEventService manages the listeners of one MediaListPlayer.
type MediaListPlayerEventService struct {
	svc *eventService[MediaListPlayerEventListener]
}

// AddMediaListPlayerEventListener registers listener.
func (s *MediaListPlayerEventService) AddMediaListPlayerEventListener(listener MediaListPlayerEventListener) {
	s.svc.add(listener)
}

// RemoveMediaListPlayerEventListener unregisters listener. Absent listeners
// are ignored.
func (s *MediaListPlayerEventService) RemoveMediaListPlayerEventListener(listener MediaListPlayerEventListener) {
	s.svc.remove(listener)
}
