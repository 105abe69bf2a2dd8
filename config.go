package vlc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the file form of factory and component settings.
type Config struct {
	// LibraryPath is a libvlc shared object or the directory holding it.
	LibraryPath string `yaml:"library_path" toml:"library_path"`
	// Args are passed verbatim to libvlc_new.
	Args     []string      `yaml:"args" toml:"args"`
	LogLevel string        `yaml:"log_level" toml:"log_level"`
	Video    VideoConfig   `yaml:"video" toml:"video"`
	Metrics  MetricsConfig `yaml:"metrics" toml:"metrics"`
}

// VideoConfig configures callback rendering.
type VideoConfig struct {
	Chroma      string `yaml:"chroma" toml:"chroma"`
	LockBuffers *bool  `yaml:"lock_buffers" toml:"lock_buffers"`
	Width       int    `yaml:"width" toml:"width"`
	Height      int    `yaml:"height" toml:"height"`
	// Scale is "stretch" (default) or "fit".
	Scale string `yaml:"scale" toml:"scale"`
}

// MetricsConfig configures Prometheus export.
type MetricsConfig struct {
	Namespace string `yaml:"namespace" toml:"namespace"`
	Addr      string `yaml:"addr" toml:"addr"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	lock := true
	return Config{
		Args:     []string{"--no-video-title-show"},
		LogLevel: "info",
		Video: VideoConfig{
			Chroma:      ChromaRV32,
			LockBuffers: &lock,
		},
		Metrics: MetricsConfig{Namespace: "vlc"},
	}
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) file on top of
// DefaultConfig and applies environment overrides. An empty path yields the
// defaults plus environment.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &cfg)
		case ".toml":
			err = toml.Unmarshal(data, &cfg)
		default:
			return cfg, fmt.Errorf("config %s: unsupported format %q", path, filepath.Ext(path))
		}
		if err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if v := os.Getenv("VLC_LIB_PATH"); v != "" {
		c.LibraryPath = v
	}
	if v := os.Getenv("VLC_ARGS"); v != "" {
		c.Args = strings.Fields(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks values that would otherwise fail deep inside libvlc.
func (c Config) Validate() error {
	if c.Video.Chroma != "" && len(c.Video.Chroma) != 4 {
		return fmt.Errorf("video.chroma %q: must be a 4 character fourcc", c.Video.Chroma)
	}
	if _, ok := ParseScaleMode(c.Video.Scale); !ok {
		return fmt.Errorf("video.scale %q: must be stretch or fit", c.Video.Scale)
	}
	if c.Video.Width < 0 || c.Video.Height < 0 {
		return fmt.Errorf("video size %dx%d: must not be negative", c.Video.Width, c.Video.Height)
	}
	return nil
}

// LockBuffers reports the effective lock-buffers setting.
func (c Config) LockBuffers() bool {
	if c.Video.LockBuffers == nil {
		return true
	}
	return *c.Video.LockBuffers
}
