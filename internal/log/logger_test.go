package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf})
	t.Cleanup(func() { Set(zerolog.Nop()) })

	l := WithComponent("media-events")
	l.Debug().Str("event", "MediaFreed").Msg("dispatched")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "media-events", entry["component"])
	assert.Equal(t, "vlc", entry["lib"])
	assert.Equal(t, "debug", entry["level"])
}

func TestConfigureLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "warn", Output: &buf})
	t.Cleanup(func() { Set(zerolog.Nop()) })

	l := Base()
	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("shown")
	assert.NotZero(t, buf.Len())
}

func TestSetReplacesBase(t *testing.T) {
	var buf bytes.Buffer
	Set(zerolog.New(&buf).With().Str("app", "vlcplay").Logger())
	t.Cleanup(func() { Set(zerolog.Nop()) })

	l := Base()
	l.Info().Msg("hello")
	w := WithComponent("player")
	w.Info().Msg("child")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	var child map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &child))
	assert.Equal(t, "vlcplay", child["app"])
	assert.Equal(t, "player", child["component"])
}
