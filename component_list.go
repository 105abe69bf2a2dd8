package vlc

import "fmt"

// MediaListPlayerComponent adds a media list player and a media list to a
// MediaPlayerComponent.
type MediaListPlayerComponent struct {
	*MediaPlayerComponent

	listPlayer *MediaListPlayer
	list       *MediaList
	listEvents *listComponentEvents
}

// NewMediaListPlayerComponent creates the player, then a list player bound
// to it, then a media list bound to the list player. Options are those of
// NewMediaPlayerComponent.
func NewMediaListPlayerComponent(opts ...ComponentOption) (*MediaListPlayerComponent, error) {
	o := applyComponentOptions(opts)
	base, err := newMediaPlayerComponent(&o)
	if err != nil {
		return nil, err
	}
	c := &MediaListPlayerComponent{MediaPlayerComponent: base}
	base.self = c

	lp, err := base.factory.NewMediaListPlayer()
	if err != nil {
		base.teardown()
		return nil, fmt.Errorf("component list player: %w", err)
	}
	lp.SetMediaPlayer(base.player)
	c.listPlayer = lp

	list, err := base.factory.NewMediaList()
	if err != nil {
		lp.Release()
		base.teardown()
		return nil, fmt.Errorf("component media list: %w", err)
	}
	lp.SetMediaList(list)
	c.list = list

	c.listEvents = &listComponentEvents{c: c}
	lp.Events().AddMediaListPlayerEventListener(c.listEvents)
	list.Events().AddMediaListEventListener(c.listEvents)

	// The list player must not see a dangling list while it tears down.
	base.releaseOwned = func() {
		c.listPlayer.Release()
		c.list.Release()
	}
	base.activate(o.afterConstruct)
	return c, nil
}

// MediaListPlayer returns the embedded list player.
func (c *MediaListPlayerComponent) MediaListPlayer() *MediaListPlayer { return c.listPlayer }

// MediaList returns the embedded media list.
func (c *MediaListPlayerComponent) MediaList() *MediaList { return c.list }

// Enqueue appends every MRL to the list. It stops at the first failure and
// returns ErrReleased once the component is released.
func (c *MediaListPlayerComponent) Enqueue(mrls ...string) error {
	if c.State() == ComponentReleased || c.releasing.Load() {
		return ErrReleased
	}
	for _, mrl := range mrls {
		if err := c.list.Add(mrl); err != nil {
			return err
		}
	}
	return nil
}

type listComponentEvents struct {
	MediaListPlayerEventAdapter
	MediaListEventAdapter
	c *MediaListPlayerComponent
}

func (e *listComponentEvents) MediaListPlayerNextItemSet(_ *MediaListPlayer, item MediaRef) {
	e.c.logger.Debug().Bool("valid", item.Valid()).Msg("next item")
}

func (e *listComponentEvents) MediaListPlayerPlayed(*MediaListPlayer) {
	e.c.logger.Debug().Msg("list played")
}

func (e *listComponentEvents) MediaListItemAdded(_ *MediaList, _ MediaRef, index int) {
	if e.c.logLimit.Allow() {
		e.c.logger.Debug().Int("index", index).Msg("item added")
	}
}

func (e *listComponentEvents) MediaListItemDeleted(_ *MediaList, _ MediaRef, index int) {
	if e.c.logLimit.Allow() {
		e.c.logger.Debug().Int("index", index).Msg("item deleted")
	}
}
