package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestToMRL(t *testing.T) {
	mrl, err := toMRL("http://example.com/live.m3u8")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/live.m3u8", mrl)

	dir := t.TempDir()
	mrl, err = toMRL(filepath.Join(dir, "my song.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "file://"+filepath.ToSlash(dir)+"/my%20song.mp3", mrl)
}

func TestIsMediaFile(t *testing.T) {
	assert.True(t, isMediaFile("/tmp/a.MKV"))
	assert.True(t, isMediaFile("b.flac"))
	assert.False(t, isMediaFile("notes.txt"))
	assert.False(t, isMediaFile("noext"))
}

func TestWatchDirEnqueuesNewMedia(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	var (
		mu  sync.Mutex
		got []string
	)
	enqueue := func(mrls ...string) error {
		mu.Lock()
		got = append(got, mrls...)
		mu.Unlock()
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- watchDir(ctx, zerolog.Nop(), dir, enqueue) }()

	want, err := toMRL(filepath.Join(dir, "clip.mp4"))
	require.NoError(t, err)

	// The watcher may not be registered yet, so keep creating until seen.
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "ignored.txt"), nil, 0o644)
		_ = os.Remove(filepath.Join(dir, "clip.mp4"))
		_ = os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("x"), 0o644)
		mu.Lock()
		defer mu.Unlock()
		return len(got) > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	for _, mrl := range got {
		assert.Equal(t, want, mrl)
	}
}

func TestWatchDirMissing(t *testing.T) {
	err := watchDir(context.Background(), zerolog.Nop(), filepath.Join(t.TempDir(), "missing"), nil)
	assert.ErrorContains(t, err, "watch directory")
}

func TestMetricsRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "vlcplay_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	srv := httptest.NewServer(newMetricsRouter(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body.String(), "vlcplay_test_total 1")

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestServeMetricsStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveMetrics(ctx, zerolog.Nop(), "127.0.0.1:0", prometheus.NewRegistry()) }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serveMetrics did not return")
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "vlcplay dev")
	assert.Contains(t, out.String(), "libvlc:")
}

func TestPlayRequiresInput(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"play"})
	assert.ErrorContains(t, cmd.Execute(), "requires at least one MRL or --watch")
}
