package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/thesyncim/vlc"
	vlclog "github.com/thesyncim/vlc/internal/log"
)

var errQuit = errors.New("quit")

// session is what the REPL drives.
type session interface {
	Play()
	Pause()
	Stop()
	Next() error
	Previous() error
	PlayItem(index int) error
	SetMode(mode vlc.PlaybackMode)
	State() vlc.State
	Enqueue(mrls ...string) error
	Items() []string
	Volume() int
	SetVolume(volume int) error
	IsMuted() bool
	SetMute(mute bool)
	Time() time.Duration
	Length() time.Duration
	SetTime(t time.Duration)
}

type componentSession struct {
	*vlc.MediaListPlayer
	c *vlc.MediaListPlayerComponent
	p *vlc.MediaPlayer
}

func newComponentSession(c *vlc.MediaListPlayerComponent) *componentSession {
	return &componentSession{MediaListPlayer: c.MediaListPlayer(), c: c, p: c.MediaPlayer()}
}

func (s *componentSession) Enqueue(mrls ...string) error { return s.c.Enqueue(mrls...) }
func (s *componentSession) Items() []string              { return s.c.MediaList().MRLs() }
func (s *componentSession) Volume() int                  { return s.p.Volume() }
func (s *componentSession) SetVolume(volume int) error   { return s.p.SetVolume(volume) }
func (s *componentSession) IsMuted() bool                { return s.p.IsMuted() }
func (s *componentSession) SetMute(mute bool)            { s.p.SetMute(mute) }
func (s *componentSession) Time() time.Duration          { return s.p.Time() }
func (s *componentSession) Length() time.Duration        { return s.p.Length() }
func (s *componentSession) SetTime(t time.Duration)      { s.p.SetTime(t) }

var replCommands = []string{
	"play", "pause", "stop", "next", "prev", "goto", "add", "list",
	"mode", "vol", "mute", "seek", "status", "help", "quit",
}

const replHelp = `commands:
  play | pause | stop | next | prev
  goto N        play item N
  add MRL...    append to the list
  list          show the list
  mode M        default, loop or repeat
  vol [N]       show or set volume (0-100)
  mute          toggle mute
  seek SECONDS  jump to a position
  status        show state and position
  quit`

// execute runs one REPL line against s. It returns errQuit on quit.
func execute(s session, out io.Writer, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "play":
		s.Play()
	case "pause":
		s.Pause()
	case "stop":
		s.Stop()
	case "next":
		return s.Next()
	case "prev":
		return s.Previous()
	case "goto":
		index, err := intArg(args)
		if err != nil {
			return err
		}
		return s.PlayItem(index)
	case "add":
		if len(args) == 0 {
			return fmt.Errorf("add: missing MRL")
		}
		mrls, err := toMRLs(args)
		if err != nil {
			return err
		}
		return s.Enqueue(mrls...)
	case "list":
		for i, mrl := range s.Items() {
			fmt.Fprintf(out, "%3d  %s\n", i, mrl)
		}
	case "mode":
		if len(args) != 1 {
			return fmt.Errorf("mode: expected one of default, loop, repeat")
		}
		mode, ok := vlc.ParsePlaybackMode(args[0])
		if !ok {
			return fmt.Errorf("mode: unknown mode %q", args[0])
		}
		s.SetMode(mode)
	case "vol":
		if len(args) == 0 {
			fmt.Fprintf(out, "volume %d\n", s.Volume())
			return nil
		}
		volume, err := intArg(args)
		if err != nil {
			return err
		}
		return s.SetVolume(volume)
	case "mute":
		s.SetMute(!s.IsMuted())
	case "seek":
		if len(args) != 1 {
			return fmt.Errorf("seek: expected seconds")
		}
		secs, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("seek: %w", err)
		}
		s.SetTime(time.Duration(secs * float64(time.Second)))
	case "status":
		fmt.Fprintf(out, "%s %s/%s\n", s.State(), s.Time().Truncate(time.Second), s.Length().Truncate(time.Second))
	case "help":
		fmt.Fprintln(out, replHelp)
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

func intArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one number")
	}
	return strconv.Atoi(args[0])
}

func newReplCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl [MRL...]",
		Short: "Control a media list player interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			mrls, err := toMRLs(args)
			if err != nil {
				return err
			}

			opts := append(vlc.ComponentOptionsFromConfig(cfg), vlc.WithComponentLogger(vlclog.WithComponent("repl")))
			c, err := vlc.NewMediaListPlayerComponent(opts...)
			if err != nil {
				return err
			}
			defer c.Release()
			if err := c.Enqueue(mrls...); err != nil {
				return err
			}

			items := make([]readline.PrefixCompleterInterface, 0, len(replCommands))
			for _, name := range replCommands {
				items = append(items, readline.PcItem(name))
			}
			rl, err := readline.NewEx(&readline.Config{
				Prompt:       "vlc> ",
				AutoComplete: readline.NewPrefixCompleter(items...),
			})
			if err != nil {
				return err
			}
			defer rl.Close()

			go func() {
				<-cmd.Context().Done()
				_ = rl.Close()
			}()
			return repl(rl, newComponentSession(c))
		},
	}
}

func repl(rl *readline.Instance, s session) error {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			// io.EOF on ctrl-d or Close.
			return nil
		}
		if err := execute(s, rl.Stdout(), line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintln(rl.Stderr(), err)
		}
	}
}
