package main

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/thesyncim/vlc"
	"github.com/thesyncim/vlc/audiosink"
	vlclog "github.com/thesyncim/vlc/internal/log"
)

func newRecordCmd(root *rootFlags) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "record --out FILE.wav MRL",
		Short: "Decode the audio of one media to a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			mrl, err := toMRL(args[0])
			if err != nil {
				return err
			}
			return runRecord(cmd.Context(), cfg, mrl, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output WAV file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// playbackEnd closes done when the player finishes or fails.
type playbackEnd struct {
	vlc.MediaPlayerEventAdapter
	once   sync.Once
	done   chan struct{}
	failed atomic.Bool
}

func (e *playbackEnd) MediaPlayerFinished(*vlc.MediaPlayer) {
	e.once.Do(func() { close(e.done) })
}

func (e *playbackEnd) MediaPlayerError(*vlc.MediaPlayer) {
	e.once.Do(func() {
		e.failed.Store(true)
		close(e.done)
	})
}

func runRecord(ctx context.Context, cfg vlc.Config, mrl, out string) error {
	logger := vlclog.WithComponent("record")

	rec, err := audiosink.NewWAVRecorder(out, vlc.DefaultAudioFormat)
	if err != nil {
		return err
	}
	opts := append(vlc.ComponentOptionsFromConfig(cfg), vlc.WithComponentLogger(logger))
	c, err := vlc.NewMediaPlayerComponent(opts...)
	if err != nil {
		_ = rec.Abort()
		return err
	}
	defer c.Release()

	player := c.MediaPlayer()
	end := &playbackEnd{done: make(chan struct{})}
	player.Events().AddMediaPlayerEventListener(end)
	player.SetAudioCallback(vlc.DefaultAudioFormat, rec)
	if err := player.PlayMedia(mrl, ":no-video", ":no-sout-video"); err != nil {
		_ = rec.Abort()
		return err
	}
	logger.Info().Str("mrl", mrl).Str("out", out).Msg("recording")

	select {
	case <-ctx.Done():
		player.Stop()
		_ = rec.Abort()
		return ctx.Err()
	case <-end.done:
	case <-rec.Drained():
	}
	player.Stop()

	if end.failed.Load() {
		_ = rec.Abort()
		return fmt.Errorf("playback of %s failed", mrl)
	}
	if err := rec.Close(); err != nil {
		return err
	}
	logger.Info().Dur("duration", rec.Duration()).Str("out", out).Msg("recorded")
	return nil
}
