package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thesyncim/vlc"
)

var _ vlc.MediaListPlayerEventListener = (*listEnd)(nil)

func TestListEndOnPlayed(t *testing.T) {
	end := &listEnd{done: make(chan struct{})}
	end.MediaListPlayerNextItemSet(nil, vlc.MediaRef{})
	select {
	case <-end.done:
		t.Fatal("done before the list ended")
	default:
	}

	end.MediaListPlayerPlayed(nil)
	select {
	case <-end.done:
	default:
		t.Fatal("played list did not finish the run")
	}
	assert.NotPanics(t, func() { end.MediaListPlayerStopped(nil) })
}

func TestListEndOnStopped(t *testing.T) {
	end := &listEnd{done: make(chan struct{})}
	end.MediaListPlayerStopped(nil)
	_, open := <-end.done
	assert.False(t, open)
	assert.NotPanics(t, func() { end.MediaListPlayerPlayed(nil) })
}
