package vlc

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	vlclog "github.com/thesyncim/vlc/internal/log"
)

// Factory owns a libvlc instance and creates the native objects bound to it.
type Factory struct {
	lib      *libvlcAPI
	instance uintptr
	args     []string
	logger   zerolog.Logger
	metrics  *EventMetrics
	released atomic.Bool
}

type factoryOptions struct {
	args        []string
	libraryPath string
	logger      *zerolog.Logger
	metrics     *EventMetrics
}

// FactoryOption configures NewFactory.
type FactoryOption func(*factoryOptions)

// WithArgs sets the arguments passed to libvlc_new.
func WithArgs(args ...string) FactoryOption {
	return func(o *factoryOptions) { o.args = append(o.args, args...) }
}

// WithLibraryPath loads libvlc from path instead of the default search list.
func WithLibraryPath(path string) FactoryOption {
	return func(o *factoryOptions) { o.libraryPath = path }
}

// WithLogger sets the logger used by the factory and every object it creates.
func WithLogger(l zerolog.Logger) FactoryOption {
	return func(o *factoryOptions) { o.logger = &l }
}

// WithMetrics records event and handle metrics for objects of this factory.
func WithMetrics(m *EventMetrics) FactoryOption {
	return func(o *factoryOptions) { o.metrics = m }
}

var (
	pathLibsMu sync.Mutex
	pathLibs   = make(map[string]*libvlcAPI)
)

func libraryFor(path string) (*libvlcAPI, error) {
	if path == "" {
		return defaultLibrary()
	}
	pathLibsMu.Lock()
	defer pathLibsMu.Unlock()
	if lib, ok := pathLibs[path]; ok {
		return lib, nil
	}
	lib, err := loadLibVLC(path)
	if err != nil {
		return nil, err
	}
	pathLibs[path] = lib
	return lib, nil
}

// NewFactory loads libvlc and creates a library instance.
func NewFactory(opts ...FactoryOption) (*Factory, error) {
	var o factoryOptions
	for _, opt := range opts {
		opt(&o)
	}

	lib, err := libraryFor(o.libraryPath)
	if err != nil {
		return nil, err
	}

	logger := vlclog.WithComponent("factory")
	if o.logger != nil {
		logger = *o.logger
	}

	argv, backing := cStringArray(o.args)
	var argvPtr **byte
	if len(argv) > 0 {
		argvPtr = &argv[0]
	}
	instance := lib.new(int32(len(o.args)), argvPtr)
	runtime.KeepAlive(backing)
	if instance == 0 {
		return nil, lib.nativeErr("libvlc_new")
	}

	f := &Factory{
		lib:      lib,
		instance: instance,
		args:     o.args,
		logger:   logger,
		metrics:  o.metrics,
	}
	f.metrics.handleAcquired("instance")
	f.logger.Debug().Strs("args", o.args).Msg("libvlc instance created")
	return f, nil
}

// NewFactoryFromConfig creates a factory from a loaded Config. Extra options
// are applied after the configuration.
func NewFactoryFromConfig(cfg Config, opts ...FactoryOption) (*Factory, error) {
	base := []FactoryOption{WithArgs(cfg.Args...), WithLibraryPath(cfg.LibraryPath)}
	return NewFactory(append(base, opts...)...)
}

// Args returns the arguments the instance was created with.
func (f *Factory) Args() []string {
	return append([]string(nil), f.args...)
}

// EventTypeName returns the name libvlc uses for t. Types libvlc does not
// name fall back to t.String().
func (f *Factory) EventTypeName(t EventType) string {
	if name := f.lib.eventName(t); name != "" {
		return name
	}
	return t.String()
}

// SetDefaultLogger installs the logger used by factories and components
// created without an explicit logger.
func SetDefaultLogger(l zerolog.Logger) {
	vlclog.Set(l)
}

// Logger returns the factory logger.
func (f *Factory) Logger() zerolog.Logger {
	return f.logger
}

// NewMedia creates media for an MRL (file://, http://, dvd://, ...).
func (f *Factory) NewMedia(mrl string, options ...string) (*Media, error) {
	handle := f.lib.mediaNewLocation(f.instance, mrl)
	if handle == 0 {
		return nil, fmt.Errorf("media %q: %w", mrl, f.lib.nativeErr("libvlc_media_new_location"))
	}
	m := newMedia(f, handle)
	m.AddOptions(options...)
	return m, nil
}

// NewMediaFromPath creates media for a local file path.
func (f *Factory) NewMediaFromPath(path string, options ...string) (*Media, error) {
	handle := f.lib.mediaNewPath(f.instance, path)
	if handle == 0 {
		return nil, fmt.Errorf("media path %q: %w", path, f.lib.nativeErr("libvlc_media_new_path"))
	}
	m := newMedia(f, handle)
	m.AddOptions(options...)
	return m, nil
}

// NewMediaList creates an empty media list.
func (f *Factory) NewMediaList() (*MediaList, error) {
	handle := f.lib.mediaListNew(f.instance)
	if handle == 0 {
		return nil, f.lib.nativeErr("libvlc_media_list_new")
	}
	return newMediaList(f, handle), nil
}

// NewMediaPlayer creates a media player.
func (f *Factory) NewMediaPlayer() (*MediaPlayer, error) {
	handle := f.lib.mediaPlayerNew(f.instance)
	if handle == 0 {
		return nil, f.lib.nativeErr("libvlc_media_player_new")
	}
	return newMediaPlayer(f, handle), nil
}

// NewMediaListPlayer creates a media list player.
func (f *Factory) NewMediaListPlayer() (*MediaListPlayer, error) {
	handle := f.lib.mediaListPlayerNew(f.instance)
	if handle == 0 {
		return nil, f.lib.nativeErr("libvlc_media_list_player_new")
	}
	return newMediaListPlayer(f, handle), nil
}

// Release destroys the libvlc instance. Objects created by the factory must
// be released first. Subsequent calls are no-ops.
func (f *Factory) Release() {
	if !f.released.CompareAndSwap(false, true) {
		return
	}
	f.lib.release(f.instance)
	f.instance = 0
	f.metrics.handleReleased("instance")
	f.logger.Debug().Msg("libvlc instance released")
}
