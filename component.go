package vlc

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// ComponentState is the lifecycle state of an embeddable component.
type ComponentState int32

const (
	// ComponentConstructed is the state while the after-construct hook runs.
	ComponentConstructed ComponentState = iota
	// ComponentActive is a fully wired, usable component.
	ComponentActive
	// ComponentReleased is terminal.
	ComponentReleased
)

func (s ComponentState) String() string {
	switch s {
	case ComponentConstructed:
		return "constructed"
	case ComponentActive:
		return "active"
	case ComponentReleased:
		return "released"
	default:
		return fmt.Sprintf("ComponentState(%d)", int32(s))
	}
}

// Component is implemented by the embeddable player components.
type Component interface {
	ID() string
	State() ComponentState
	MediaPlayer() *MediaPlayer
	Release()
}

type componentOptions struct {
	factory        *Factory
	factoryOpts    []FactoryOption
	surface        VideoSurface
	formatCb       BufferFormatCallback
	renderCb       RenderCallback
	fullScreen     FullScreenStrategy
	input          InputEvents
	lockBuffers    bool
	chroma         string
	width          int
	height         int
	scale          ScaleMode
	afterConstruct func(Component)
	beforeRelease  func(Component)
	logger         *zerolog.Logger
}

// ComponentOption configures a component.
type ComponentOption func(*componentOptions)

func applyComponentOptions(opts []ComponentOption) componentOptions {
	o := componentOptions{lockBuffers: true, chroma: ChromaRV32}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFactory uses f instead of a component-owned factory. The caller keeps
// ownership of f.
func WithFactory(f *Factory) ComponentOption {
	return func(o *componentOptions) { o.factory = f }
}

// WithFactoryOptions configures the component-owned factory. Ignored with
// WithFactory.
func WithFactoryOptions(opts ...FactoryOption) ComponentOption {
	return func(o *componentOptions) { o.factoryOpts = append(o.factoryOpts, opts...) }
}

// WithVideoSurface renders into s. It takes precedence over the callback
// options.
func WithVideoSurface(s VideoSurface) ComponentOption {
	return func(o *componentOptions) { o.surface = s }
}

// WithBufferFormatCallback sets the buffer format negotiation for callback
// rendering.
func WithBufferFormatCallback(cb BufferFormatCallback) ComponentOption {
	return func(o *componentOptions) { o.formatCb = cb }
}

// WithRenderCallback sets the frame consumer for callback rendering.
func WithRenderCallback(cb RenderCallback) ComponentOption {
	return func(o *componentOptions) { o.renderCb = cb }
}

// WithFullScreenStrategy replaces native full screen.
func WithFullScreenStrategy(s FullScreenStrategy) ComponentOption {
	return func(o *componentOptions) { o.fullScreen = s }
}

// WithInputEvents sets the input policy.
func WithInputEvents(mode InputEvents) ComponentOption {
	return func(o *componentOptions) { o.input = mode }
}

// WithLockBuffers controls whether callback video buffers are locked into
// RAM. Defaults to true.
func WithLockBuffers(lock bool) ComponentOption {
	return func(o *componentOptions) { o.lockBuffers = lock }
}

// WithChroma sets the chroma of the default buffer format (RV32 or RGBA).
func WithChroma(chroma string) ComponentOption {
	return func(o *componentOptions) { o.chroma = chroma }
}

// WithSize fixes the size of the default buffer format instead of using the
// source video size.
func WithSize(width, height int) ComponentOption {
	return func(o *componentOptions) {
		o.width = width
		o.height = height
	}
}

// WithScaleMode sets how the source is scaled into the WithSize size.
func WithScaleMode(mode ScaleMode) ComponentOption {
	return func(o *componentOptions) { o.scale = mode }
}

// WithAfterConstruct runs fn once the component is fully wired, before it
// becomes active.
func WithAfterConstruct(fn func(Component)) ComponentOption {
	return func(o *componentOptions) { o.afterConstruct = fn }
}

// WithBeforeRelease runs fn at the start of Release, while every native
// object is still alive.
func WithBeforeRelease(fn func(Component)) ComponentOption {
	return func(o *componentOptions) { o.beforeRelease = fn }
}

// WithComponentLogger sets the component logger.
func WithComponentLogger(l zerolog.Logger) ComponentOption {
	return func(o *componentOptions) { o.logger = &l }
}

// ComponentOptionsFromConfig maps the video section of cfg to options.
func ComponentOptionsFromConfig(cfg Config) []ComponentOption {
	opts := []ComponentOption{
		WithFactoryOptions(WithArgs(cfg.Args...), WithLibraryPath(cfg.LibraryPath)),
		WithLockBuffers(cfg.LockBuffers()),
	}
	if cfg.Video.Chroma != "" {
		opts = append(opts, WithChroma(cfg.Video.Chroma))
	}
	if cfg.Video.Width > 0 && cfg.Video.Height > 0 {
		opts = append(opts, WithSize(cfg.Video.Width, cfg.Video.Height))
	}
	if mode, ok := ParseScaleMode(cfg.Video.Scale); ok {
		opts = append(opts, WithScaleMode(mode))
	}
	return opts
}

// MediaPlayerComponent composes a media player with its video surface,
// full-screen strategy and input policy.
type MediaPlayerComponent struct {
	id          string
	factory     *Factory
	ownsFactory bool
	player      *MediaPlayer
	surface     VideoSurface
	fullScreen  FullScreenStrategy
	logger      zerolog.Logger
	logLimit    *rate.Limiter
	events      *playerComponentEvents

	// self is the outermost component, handed to hooks.
	self          Component
	beforeRelease func(Component)
	releaseOwned  func()

	releasing atomic.Bool
	state     atomic.Int32
}

// NewMediaPlayerComponent creates a component. With no options it owns a
// default factory and renders through callbacks into an ImageRenderer.
func NewMediaPlayerComponent(opts ...ComponentOption) (*MediaPlayerComponent, error) {
	o := applyComponentOptions(opts)
	c, err := newMediaPlayerComponent(&o)
	if err != nil {
		return nil, err
	}
	c.self = c
	c.activate(o.afterConstruct)
	return c, nil
}

func newMediaPlayerComponent(o *componentOptions) (*MediaPlayerComponent, error) {
	c := &MediaPlayerComponent{
		id:            uuid.NewString(),
		factory:       o.factory,
		beforeRelease: o.beforeRelease,
		logLimit:      rate.NewLimiter(rate.Every(time.Second), 1),
	}

	if c.factory == nil {
		fopts := o.factoryOpts
		if o.logger != nil {
			fopts = append([]FactoryOption{WithLogger(*o.logger)}, fopts...)
		}
		f, err := NewFactory(fopts...)
		if err != nil {
			return nil, fmt.Errorf("component factory: %w", err)
		}
		c.factory = f
		c.ownsFactory = true
	}

	logger := c.factory.Logger()
	if o.logger != nil {
		logger = *o.logger
	}
	c.logger = logger.With().Str("component", c.id).Logger()

	player, err := c.factory.NewMediaPlayer()
	if err != nil {
		c.releaseFactory()
		return nil, fmt.Errorf("component player: %w", err)
	}
	c.player = player

	c.surface = o.surface
	if c.surface == nil {
		format := o.formatCb
		if format == nil {
			format = SizedBufferFormat{Chroma: o.chroma, Width: o.width, Height: o.height, Mode: o.scale}
		}
		render := o.renderCb
		if render == nil {
			render = &ImageRenderer{}
		}
		c.surface = CallbackSurface{Format: format, Render: render, LockBuffers: o.lockBuffers}
	}
	c.surface.Attach(player)

	c.fullScreen = o.fullScreen
	if c.fullScreen == nil {
		c.fullScreen = NativeFullScreen{Player: player}
	}
	applyInputEvents(player, c.surface, o.input)

	c.events = &playerComponentEvents{c: c}
	player.Events().AddMediaPlayerEventListener(c.events)

	c.logger.Debug().Stringer("input", o.input).Bool("owns_factory", c.ownsFactory).Msg("component constructed")
	return c, nil
}

// activate runs the after-construct hook and moves to active. A hook that
// releases the component leaves it released.
func (c *MediaPlayerComponent) activate(hook func(Component)) {
	if hook != nil {
		hook(c.self)
	}
	if c.state.CompareAndSwap(int32(ComponentConstructed), int32(ComponentActive)) {
		c.logger.Debug().Msg("component active")
	}
}

// ID returns the component instance id used in logs.
func (c *MediaPlayerComponent) ID() string { return c.id }

// State returns the lifecycle state.
func (c *MediaPlayerComponent) State() ComponentState {
	return ComponentState(c.state.Load())
}

// Factory returns the factory the component creates objects with.
func (c *MediaPlayerComponent) Factory() *Factory { return c.factory }

// MediaPlayer returns the embedded player.
func (c *MediaPlayerComponent) MediaPlayer() *MediaPlayer { return c.player }

// VideoSurface returns the surface the player renders into.
func (c *MediaPlayerComponent) VideoSurface() VideoSurface { return c.surface }

// FullScreenStrategy returns the active full-screen strategy.
func (c *MediaPlayerComponent) FullScreenStrategy() FullScreenStrategy { return c.fullScreen }

// SetFullScreen enters or leaves full screen.
func (c *MediaPlayerComponent) SetFullScreen(on bool) {
	if on {
		c.fullScreen.EnterFullScreenMode()
	} else {
		c.fullScreen.ExitFullScreenMode()
	}
}

// ToggleFullScreen flips full screen and returns the new mode.
func (c *MediaPlayerComponent) ToggleFullScreen() bool {
	on := !c.fullScreen.IsFullScreenMode()
	c.SetFullScreen(on)
	return on
}

// Release runs the before-release hook, releases the objects the component
// owns and finally the player and any owned factory. Further calls are
// no-ops.
func (c *MediaPlayerComponent) Release() {
	if !c.releasing.CompareAndSwap(false, true) {
		return
	}
	if c.beforeRelease != nil {
		c.beforeRelease(c.self)
	}
	if c.releaseOwned != nil {
		c.releaseOwned()
	}
	c.teardown()
	c.state.Store(int32(ComponentReleased))
	c.logger.Debug().Msg("component released")
}

func (c *MediaPlayerComponent) teardown() {
	c.player.Release()
	c.releaseFactory()
}

func (c *MediaPlayerComponent) releaseFactory() {
	if c.ownsFactory {
		c.factory.Release()
	}
}

// playerComponentEvents logs player activity for the component.
type playerComponentEvents struct {
	MediaPlayerEventAdapter
	c *MediaPlayerComponent
}

func (e *playerComponentEvents) MediaPlayerPlaying(*MediaPlayer) {
	e.c.logger.Debug().Msg("playing")
}

func (e *playerComponentEvents) MediaPlayerFinished(*MediaPlayer) {
	e.c.logger.Debug().Msg("finished")
}

func (e *playerComponentEvents) MediaPlayerError(*MediaPlayer) {
	e.c.logger.Warn().Msg("playback error")
}

func (e *playerComponentEvents) MediaPlayerTimeChanged(_ *MediaPlayer, t time.Duration) {
	if e.c.logLimit.Allow() {
		e.c.logger.Debug().Dur("time", t).Msg("time changed")
	}
}
