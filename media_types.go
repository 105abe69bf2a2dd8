package vlc

// State is a media or player state (libvlc_state_t).
type State int32

const (
	StateNothingSpecial State = iota
	StateOpening
	StateBuffering
	StatePlaying
	StatePaused
	StateStopped
	StateEnded
	StateError
)

func (s State) String() string {
	switch s {
	case StateNothingSpecial:
		return "nothing-special"
	case StateOpening:
		return "opening"
	case StateBuffering:
		return "buffering"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	case StateEnded:
		return "ended"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Meta identifies a media metadata field (libvlc_meta_t).
type Meta int32

const (
	MetaTitle Meta = iota
	MetaArtist
	MetaGenre
	MetaCopyright
	MetaAlbum
	MetaTrackNumber
	MetaDescription
	MetaRating
	MetaDate
	MetaSetting
	MetaURL
	MetaLanguage
	MetaNowPlaying
	MetaPublisher
	MetaEncodedBy
	MetaArtworkURL
	MetaTrackID
	MetaTrackTotal
	MetaDirector
	MetaSeason
	MetaEpisode
	MetaShowName
	MetaActors
	MetaAlbumArtist
	MetaDiscNumber
	MetaDiscTotal
)

var metaNames = [...]string{
	"title", "artist", "genre", "copyright", "album", "track-number",
	"description", "rating", "date", "setting", "url", "language",
	"now-playing", "publisher", "encoded-by", "artwork-url", "track-id",
	"track-total", "director", "season", "episode", "show-name", "actors",
	"album-artist", "disc-number", "disc-total",
}

func (m Meta) String() string {
	if m < 0 || int(m) >= len(metaNames) {
		return "unknown"
	}
	return metaNames[m]
}

// ParsedStatus is the result of an asynchronous parse
// (libvlc_media_parsed_status_t).
type ParsedStatus int32

const (
	ParsedStatusNone ParsedStatus = iota
	ParsedStatusSkipped
	ParsedStatusFailed
	ParsedStatusTimeout
	ParsedStatusDone
)

func (s ParsedStatus) String() string {
	switch s {
	case ParsedStatusSkipped:
		return "skipped"
	case ParsedStatusFailed:
		return "failed"
	case ParsedStatusTimeout:
		return "timeout"
	case ParsedStatusDone:
		return "done"
	default:
		return "none"
	}
}

// ParseFlag selects what libvlc_media_parse_with_options may do.
type ParseFlag int32

const (
	ParseLocal   ParseFlag = 0x00
	ParseNetwork ParseFlag = 0x01
	FetchLocal   ParseFlag = 0x02
	FetchNetwork ParseFlag = 0x04
	DoInteract   ParseFlag = 0x08
)

// MediaType classifies media (libvlc_media_type_t).
type MediaType int32

const (
	MediaTypeUnknown MediaType = iota
	MediaTypeFile
	MediaTypeDirectory
	MediaTypeDisc
	MediaTypeStream
	MediaTypePlaylist
)

// PlaybackMode controls how a media list player advances.
type PlaybackMode int32

const (
	PlaybackModeDefault PlaybackMode = iota
	PlaybackModeLoop
	PlaybackModeRepeat
)

// ParsePlaybackMode maps "default", "loop" and "repeat" to a PlaybackMode.
func ParsePlaybackMode(s string) (PlaybackMode, bool) {
	switch s {
	case "", "default":
		return PlaybackModeDefault, true
	case "loop":
		return PlaybackModeLoop, true
	case "repeat":
		return PlaybackModeRepeat, true
	default:
		return PlaybackModeDefault, false
	}
}

func (m PlaybackMode) String() string {
	switch m {
	case PlaybackModeLoop:
		return "loop"
	case PlaybackModeRepeat:
		return "repeat"
	default:
		return "default"
	}
}
