package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep/speaker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/thesyncim/vlc"
	"github.com/thesyncim/vlc/audiosink"
	vlclog "github.com/thesyncim/vlc/internal/log"
)

type playOptions struct {
	mode        string
	watch       string
	metricsAddr string
	speaker     bool
	buffer      time.Duration
}

func newPlayCmd(root *rootFlags) *cobra.Command {
	var o playOptions
	cmd := &cobra.Command{
		Use:   "play [flags] MRL...",
		Short: "Play a list of media until it ends",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && o.watch == "" {
				return fmt.Errorf("requires at least one MRL or --watch")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if o.metricsAddr == "" {
				o.metricsAddr = cfg.Metrics.Addr
			}
			return runPlay(cmd.Context(), cfg, o, args)
		},
	}
	cmd.Flags().StringVar(&o.mode, "mode", "default", "playback mode: default, loop or repeat")
	cmd.Flags().StringVar(&o.watch, "watch", "", "append media files created in this directory")
	cmd.Flags().StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().BoolVar(&o.speaker, "speaker", false, "route audio through the Go speaker instead of libvlc's output")
	cmd.Flags().DurationVar(&o.buffer, "buffer", 200*time.Millisecond, "speaker buffer size")
	return cmd
}

// listEnd reports the end of the list. libvlc signals a list played to its
// end with Played; Stopped only follows an explicit stop.
type listEnd struct {
	vlc.MediaListPlayerEventAdapter
	once sync.Once
	done chan struct{}
}

func (e *listEnd) MediaListPlayerPlayed(*vlc.MediaListPlayer) { e.finish() }

func (e *listEnd) MediaListPlayerStopped(*vlc.MediaListPlayer) { e.finish() }

func (e *listEnd) finish() {
	e.once.Do(func() { close(e.done) })
}

func runPlay(ctx context.Context, cfg vlc.Config, o playOptions, args []string) error {
	mode, ok := vlc.ParsePlaybackMode(o.mode)
	if !ok {
		return fmt.Errorf("unknown playback mode %q", o.mode)
	}
	mrls, err := toMRLs(args)
	if err != nil {
		return err
	}
	logger := vlclog.WithComponent("vlcplay")

	opts := append(vlc.ComponentOptionsFromConfig(cfg), vlc.WithComponentLogger(logger))
	var reg *prometheus.Registry
	if o.metricsAddr != "" {
		reg = newMetricsRegistry()
		metrics := vlc.NewEventMetrics(cfg.Metrics.Namespace)
		if err := metrics.Register(reg); err != nil {
			return err
		}
		opts = append(opts, vlc.WithFactoryOptions(vlc.WithMetrics(metrics)))
	}

	c, err := vlc.NewMediaListPlayerComponent(opts...)
	if err != nil {
		return err
	}
	defer c.Release()

	if o.speaker {
		streamer, err := audiosink.NewStreamer(vlc.DefaultAudioFormat, o.buffer)
		if err != nil {
			return err
		}
		sr := streamer.Format().SampleRate
		if err := speaker.Init(sr, sr.N(o.buffer/2)); err != nil {
			return fmt.Errorf("speaker: %w", err)
		}
		defer speaker.Clear()
		c.MediaPlayer().SetAudioCallback(vlc.DefaultAudioFormat, streamer)
		speaker.Play(streamer)
	}

	end := &listEnd{done: make(chan struct{})}
	lp := c.MediaListPlayer()
	lp.Events().AddMediaListPlayerEventListener(end)
	lp.SetMode(mode)
	if err := c.Enqueue(mrls...); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if reg != nil {
		g.Go(func() error { return serveMetrics(gctx, logger, o.metricsAddr, reg) })
	}
	if o.watch != "" {
		enqueue := func(mrls ...string) error {
			if err := c.Enqueue(mrls...); err != nil {
				return err
			}
			if !lp.IsPlaying() {
				lp.Play()
			}
			return nil
		}
		g.Go(func() error { return watchDir(gctx, logger, o.watch, enqueue) })
	}
	g.Go(func() error {
		if len(mrls) > 0 {
			lp.Play()
		}
		done := end.done
		if o.watch != "" {
			// A watched queue never ends on its own.
			done = nil
		}
		select {
		case <-gctx.Done():
		case <-done:
			logger.Info().Msg("end of list")
			cancel()
		}
		lp.Stop()
		return nil
	})
	return g.Wait()
}
