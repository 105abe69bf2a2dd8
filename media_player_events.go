package vlc

import "time"

// TrackType identifies an elementary stream kind (libvlc_track_type_t).
type TrackType int32

const (
	TrackUnknown TrackType = -1
	TrackAudio   TrackType = 0
	TrackVideo   TrackType = 1
	TrackText    TrackType = 2
)

// MediaPlayerEventListener receives events raised by a MediaPlayer. Methods
// run on a libvlc thread and must not block or call back into libvlc.
type MediaPlayerEventListener interface {
	MediaPlayerMediaChanged(player *MediaPlayer, media MediaRef)
	MediaPlayerOpening(player *MediaPlayer)
	MediaPlayerBuffering(player *MediaPlayer, cache float32)
	MediaPlayerPlaying(player *MediaPlayer)
	MediaPlayerPaused(player *MediaPlayer)
	MediaPlayerStopped(player *MediaPlayer)
	MediaPlayerForward(player *MediaPlayer)
	MediaPlayerBackward(player *MediaPlayer)
	MediaPlayerFinished(player *MediaPlayer)
	MediaPlayerError(player *MediaPlayer)
	MediaPlayerTimeChanged(player *MediaPlayer, t time.Duration)
	MediaPlayerPositionChanged(player *MediaPlayer, position float32)
	MediaPlayerSeekableChanged(player *MediaPlayer, seekable bool)
	MediaPlayerPausableChanged(player *MediaPlayer, pausable bool)
	MediaPlayerTitleChanged(player *MediaPlayer, title int)
	MediaPlayerSnapshotTaken(player *MediaPlayer, filename string)
	MediaPlayerLengthChanged(player *MediaPlayer, length time.Duration)
	MediaPlayerVideoOutput(player *MediaPlayer, count int)
	MediaPlayerScrambledChanged(player *MediaPlayer, scrambled bool)
	MediaPlayerElementaryStreamAdded(player *MediaPlayer, track TrackType, id int)
	MediaPlayerElementaryStreamDeleted(player *MediaPlayer, track TrackType, id int)
	MediaPlayerElementaryStreamSelected(player *MediaPlayer, track TrackType, id int)
	MediaPlayerCorked(player *MediaPlayer, corked bool)
	MediaPlayerMuted(player *MediaPlayer, muted bool)
	MediaPlayerVolumeChanged(player *MediaPlayer, volume float32)
	MediaPlayerAudioDeviceChanged(player *MediaPlayer, device string)
	MediaPlayerChapterChanged(player *MediaPlayer, chapter int)
}

// MediaPlayerEventAdapter implements MediaPlayerEventListener with no-ops.
type MediaPlayerEventAdapter struct{}

func (MediaPlayerEventAdapter) MediaPlayerMediaChanged(*MediaPlayer, MediaRef)                   {}
func (MediaPlayerEventAdapter) MediaPlayerOpening(*MediaPlayer)                                  {}
func (MediaPlayerEventAdapter) MediaPlayerBuffering(*MediaPlayer, float32)                       {}
func (MediaPlayerEventAdapter) MediaPlayerPlaying(*MediaPlayer)                                  {}
func (MediaPlayerEventAdapter) MediaPlayerPaused(*MediaPlayer)                                   {}
func (MediaPlayerEventAdapter) MediaPlayerStopped(*MediaPlayer)                                  {}
func (MediaPlayerEventAdapter) MediaPlayerForward(*MediaPlayer)                                  {}
func (MediaPlayerEventAdapter) MediaPlayerBackward(*MediaPlayer)                                 {}
func (MediaPlayerEventAdapter) MediaPlayerFinished(*MediaPlayer)                                 {}
func (MediaPlayerEventAdapter) MediaPlayerError(*MediaPlayer)                                    {}
func (MediaPlayerEventAdapter) MediaPlayerTimeChanged(*MediaPlayer, time.Duration)               {}
func (MediaPlayerEventAdapter) MediaPlayerPositionChanged(*MediaPlayer, float32)                 {}
func (MediaPlayerEventAdapter) MediaPlayerSeekableChanged(*MediaPlayer, bool)                    {}
func (MediaPlayerEventAdapter) MediaPlayerPausableChanged(*MediaPlayer, bool)                    {}
func (MediaPlayerEventAdapter) MediaPlayerTitleChanged(*MediaPlayer, int)                        {}
func (MediaPlayerEventAdapter) MediaPlayerSnapshotTaken(*MediaPlayer, string)                    {}
func (MediaPlayerEventAdapter) MediaPlayerLengthChanged(*MediaPlayer, time.Duration)             {}
func (MediaPlayerEventAdapter) MediaPlayerVideoOutput(*MediaPlayer, int)                         {}
func (MediaPlayerEventAdapter) MediaPlayerScrambledChanged(*MediaPlayer, bool)                   {}
func (MediaPlayerEventAdapter) MediaPlayerElementaryStreamAdded(*MediaPlayer, TrackType, int)    {}
func (MediaPlayerEventAdapter) MediaPlayerElementaryStreamDeleted(*MediaPlayer, TrackType, int)  {}
func (MediaPlayerEventAdapter) MediaPlayerElementaryStreamSelected(*MediaPlayer, TrackType, int) {}
func (MediaPlayerEventAdapter) MediaPlayerCorked(*MediaPlayer, bool)                             {}
func (MediaPlayerEventAdapter) MediaPlayerMuted(*MediaPlayer, bool)                              {}
func (MediaPlayerEventAdapter) MediaPlayerVolumeChanged(*MediaPlayer, float32)                   {}
func (MediaPlayerEventAdapter) MediaPlayerAudioDeviceChanged(*MediaPlayer, string)               {}
func (MediaPlayerEventAdapter) MediaPlayerChapterChanged(*MediaPlayer, int)                      {}

// MediaPlayerEvent is a typed media player event.
type MediaPlayerEvent interface {
	Type() EventType
	notify(listener MediaPlayerEventListener)
}

// MediaPlayerSignalEvent is an event without payload (opening, playing,
// paused, corked, ...).
type MediaPlayerSignalEvent struct {
	Kind   EventType
	Player *MediaPlayer
}

func (e MediaPlayerSignalEvent) Type() EventType { return e.Kind }

func (e MediaPlayerSignalEvent) notify(l MediaPlayerEventListener) {
	switch e.Kind {
	case MediaPlayerOpening:
		l.MediaPlayerOpening(e.Player)
	case MediaPlayerPlaying:
		l.MediaPlayerPlaying(e.Player)
	case MediaPlayerPaused:
		l.MediaPlayerPaused(e.Player)
	case MediaPlayerStopped:
		l.MediaPlayerStopped(e.Player)
	case MediaPlayerForward:
		l.MediaPlayerForward(e.Player)
	case MediaPlayerBackward:
		l.MediaPlayerBackward(e.Player)
	case MediaPlayerEndReached:
		l.MediaPlayerFinished(e.Player)
	case MediaPlayerEncounteredError:
		l.MediaPlayerError(e.Player)
	case MediaPlayerCorked:
		l.MediaPlayerCorked(e.Player, true)
	case MediaPlayerUncorked:
		l.MediaPlayerCorked(e.Player, false)
	case MediaPlayerMuted:
		l.MediaPlayerMuted(e.Player, true)
	case MediaPlayerUnmuted:
		l.MediaPlayerMuted(e.Player, false)
	}
}

// MediaPlayerMediaChangedEvent reports new media set on the player.
type MediaPlayerMediaChangedEvent struct {
	Player *MediaPlayer
	Media  MediaRef
}

func (MediaPlayerMediaChangedEvent) Type() EventType { return MediaPlayerMediaChanged }
func (e MediaPlayerMediaChangedEvent) notify(l MediaPlayerEventListener) {
	l.MediaPlayerMediaChanged(e.Player, e.Media)
}

// MediaPlayerFloatEvent carries a float payload: buffering cache percentage,
// position or volume depending on Kind.
type MediaPlayerFloatEvent struct {
	Kind   EventType
	Player *MediaPlayer
	Value  float32
}

func (e MediaPlayerFloatEvent) Type() EventType { return e.Kind }

func (e MediaPlayerFloatEvent) notify(l MediaPlayerEventListener) {
	switch e.Kind {
	case MediaPlayerBuffering:
		l.MediaPlayerBuffering(e.Player, e.Value)
	case MediaPlayerPositionChanged:
		l.MediaPlayerPositionChanged(e.Player, e.Value)
	case MediaPlayerAudioVolume:
		l.MediaPlayerVolumeChanged(e.Player, e.Value)
	}
}

// MediaPlayerDurationEvent carries the new time or length.
type MediaPlayerDurationEvent struct {
	Kind   EventType
	Player *MediaPlayer
	Value  time.Duration
}

func (e MediaPlayerDurationEvent) Type() EventType { return e.Kind }

func (e MediaPlayerDurationEvent) notify(l MediaPlayerEventListener) {
	switch e.Kind {
	case MediaPlayerTimeChanged:
		l.MediaPlayerTimeChanged(e.Player, e.Value)
	case MediaPlayerLengthChanged:
		l.MediaPlayerLengthChanged(e.Player, e.Value)
	}
}

// MediaPlayerIntEvent carries an integer payload: seekable, pausable,
// scrambled flags, title, chapter or video output count.
type MediaPlayerIntEvent struct {
	Kind   EventType
	Player *MediaPlayer
	Value  int
}

func (e MediaPlayerIntEvent) Type() EventType { return e.Kind }

func (e MediaPlayerIntEvent) notify(l MediaPlayerEventListener) {
	switch e.Kind {
	case MediaPlayerSeekableChanged:
		l.MediaPlayerSeekableChanged(e.Player, e.Value != 0)
	case MediaPlayerPausableChanged:
		l.MediaPlayerPausableChanged(e.Player, e.Value != 0)
	case MediaPlayerScrambledChanged:
		l.MediaPlayerScrambledChanged(e.Player, e.Value != 0)
	case MediaPlayerTitleChanged:
		l.MediaPlayerTitleChanged(e.Player, e.Value)
	case MediaPlayerChapterChanged:
		l.MediaPlayerChapterChanged(e.Player, e.Value)
	case MediaPlayerVout:
		l.MediaPlayerVideoOutput(e.Player, e.Value)
	}
}

// MediaPlayerStringEvent carries a snapshot filename or audio device id.
type MediaPlayerStringEvent struct {
	Kind   EventType
	Player *MediaPlayer
	Value  string
}

func (e MediaPlayerStringEvent) Type() EventType { return e.Kind }

func (e MediaPlayerStringEvent) notify(l MediaPlayerEventListener) {
	switch e.Kind {
	case MediaPlayerSnapshotTaken:
		l.MediaPlayerSnapshotTaken(e.Player, e.Value)
	case MediaPlayerAudioDevice:
		l.MediaPlayerAudioDeviceChanged(e.Player, e.Value)
	}
}

// MediaPlayerESEvent reports an elementary stream change.
type MediaPlayerESEvent struct {
	Kind   EventType
	Player *MediaPlayer
	Track  TrackType
	ID     int
}

func (e MediaPlayerESEvent) Type() EventType { return e.Kind }

func (e MediaPlayerESEvent) notify(l MediaPlayerEventListener) {
	switch e.Kind {
	case MediaPlayerESAdded:
		l.MediaPlayerElementaryStreamAdded(e.Player, e.Track, e.ID)
	case MediaPlayerESDeleted:
		l.MediaPlayerElementaryStreamDeleted(e.Player, e.Track, e.ID)
	case MediaPlayerESSelected:
		l.MediaPlayerElementaryStreamSelected(e.Player, e.Track, e.ID)
	}
}

func createMediaPlayerEvent(p *MediaPlayer, raw rawEvent) MediaPlayerEvent {
	switch raw.Type {
	case MediaPlayerMediaChanged:
		return MediaPlayerMediaChangedEvent{Player: p, Media: MediaRef{f: p.f, handle: raw.pointerAt0()}}
	case MediaPlayerOpening, MediaPlayerPlaying, MediaPlayerPaused, MediaPlayerStopped,
		MediaPlayerForward, MediaPlayerBackward, MediaPlayerEndReached, MediaPlayerEncounteredError,
		MediaPlayerCorked, MediaPlayerUncorked, MediaPlayerMuted, MediaPlayerUnmuted:
		return MediaPlayerSignalEvent{Kind: raw.Type, Player: p}
	case MediaPlayerBuffering, MediaPlayerPositionChanged, MediaPlayerAudioVolume:
		return MediaPlayerFloatEvent{Kind: raw.Type, Player: p, Value: raw.float32At0()}
	case MediaPlayerTimeChanged, MediaPlayerLengthChanged:
		return MediaPlayerDurationEvent{Kind: raw.Type, Player: p, Value: time.Duration(raw.int64At0()) * time.Millisecond}
	case MediaPlayerSeekableChanged, MediaPlayerPausableChanged, MediaPlayerScrambledChanged,
		MediaPlayerTitleChanged, MediaPlayerChapterChanged, MediaPlayerVout:
		return MediaPlayerIntEvent{Kind: raw.Type, Player: p, Value: int(raw.int32At0())}
	case MediaPlayerSnapshotTaken, MediaPlayerAudioDevice:
		return MediaPlayerStringEvent{Kind: raw.Type, Player: p, Value: raw.stringAt0()}
	case MediaPlayerESAdded, MediaPlayerESDeleted, MediaPlayerESSelected:
		return MediaPlayerESEvent{Kind: raw.Type, Player: p, Track: TrackType(raw.int32At0()), ID: int(raw.int32At4())}
	default:
		// MediaPlayerNothingSpecial carries nothing worth reporting.
		return nil
	}
}

// MediaPlayerEventService manages the listeners of one MediaPlayer.
type MediaPlayerEventService struct {
	svc *eventService[MediaPlayerEventListener]
}

// AddMediaPlayerEventListener registers listener.
func (s *MediaPlayerEventService) AddMediaPlayerEventListener(listener MediaPlayerEventListener) {
	s.svc.add(listener)
}

// RemoveMediaPlayerEventListener unregisters listener. Absent listeners are
// ignored.
func (s *MediaPlayerEventService) RemoveMediaPlayerEventListener(listener MediaPlayerEventListener) {
	s.svc.remove(listener)
}
