// Command vlcplay plays, records and controls media through libvlc.
package main

import (
	"context"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thesyncim/vlc"
	vlclog "github.com/thesyncim/vlc/internal/log"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:          "vlcplay",
		Short:        "Play media through libvlc",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file (YAML or TOML)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level, overrides the config file")

	root.AddCommand(
		newPlayCmd(&flags),
		newReplCmd(&flags),
		newRecordCmd(&flags),
		newVersionCmd(),
	)
	return root
}

// load reads the configuration and configures logging from it.
func (f *rootFlags) load() (vlc.Config, error) {
	cfg, err := vlc.LoadConfig(f.configPath)
	if err != nil {
		return cfg, err
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	vlclog.Configure(vlclog.Config{Level: cfg.LogLevel})
	logger := vlclog.Base()
	logger.Debug().Str("config", f.configPath).Str("level", cfg.LogLevel).Msg("configuration loaded")
	return cfg, nil
}

// toMRL turns a local path into a file:// MRL. Anything that already has a
// scheme is returned unchanged.
func toMRL(arg string) (string, error) {
	if strings.Contains(arg, "://") {
		return arg, nil
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

func toMRLs(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		mrl, err := toMRL(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, mrl)
	}
	return out, nil
}
