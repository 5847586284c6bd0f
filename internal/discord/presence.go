package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jfmyers9/chorus/internal/playback"
)

type rpcClient interface {
	SetActivity(Activity) error
	Close()
}

// Presence manages Discord Rich Presence updates. It connects lazily on
// the first playing track and reconnects after transport errors.
type Presence struct {
	appID   string
	logger  zerolog.Logger
	mu      sync.Mutex
	client  rpcClient
	connect func(string) (rpcClient, error)
	last    lastActivity
	artwork *artworkLookup
}

type lastActivity struct {
	id, name, artist, album string
	playing                 bool
}

func New(appID string, logger zerolog.Logger) *Presence {
	return &Presence{
		appID:  appID,
		logger: logger.With().Str("component", "discord").Logger(),
		connect: func(appID string) (rpcClient, error) {
			return ipcConnect(appID)
		},
		artwork: newArtworkLookup(),
	}
}

// Update publishes the track as the Discord activity. Paused and nil
// tracks clear the activity; identical consecutive updates are dropped.
func (p *Presence) Update(ctx context.Context, track *playback.Track) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if track == nil || track.State != playback.StatePlaying {
		if p.last.playing {
			p.clearActivity()
			p.last = lastActivity{}
		}
		return nil
	}

	cur := lastActivity{
		id: track.ID, name: track.Name, artist: track.Artist,
		album: track.Album, playing: true,
	}
	if cur == p.last {
		return nil
	}

	if err := p.ensureConnected(); err != nil {
		return fmt.Errorf("discord not available: %w", err)
	}

	start := time.Now().Add(-track.Position)
	end := start.Add(track.Duration)
	startUnix := start.Unix()
	endUnix := end.Unix()

	largeImage := track.Artwork
	if largeImage == "" && p.artwork != nil {
		// Local files carry no Spotify artwork, fall back to the iTunes index
		largeImage = p.artwork.Lookup(track.Artist, track.Album)
	}

	err := p.client.SetActivity(Activity{
		Type:    2, // Listening
		Name:    "Spotify",
		Details: track.Name,
		State:   "by " + track.Artist,
		Timestamps: &Timestamps{
			Start: &startUnix,
			End:   &endUnix,
		},
		Assets: &Assets{
			LargeImage: largeImage,
			LargeText:  track.Album,
			SmallImage: "chorus",
			SmallText:  "chorus",
		},
	})
	if err != nil {
		p.close()
		return err
	}
	p.last = cur
	return nil
}

// Clear removes the current activity, if any.
func (p *Presence) Clear(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clearActivity()
	p.last = lastActivity{}
	return nil
}

// Close drops the IPC connection.
func (p *Presence) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.close()
}

func (p *Presence) ensureConnected() error {
	if p.client != nil {
		return nil
	}
	client, err := p.connect(p.appID)
	if err != nil {
		return err
	}
	p.logger.Info().Msg("Connected to Discord")
	p.client = client
	return nil
}

func (p *Presence) clearActivity() {
	if p.client == nil {
		return
	}
	if err := p.client.SetActivity(Activity{}); err != nil {
		p.logger.Debug().Err(err).Msg("Failed to clear activity")
		p.close()
	}
}

func (p *Presence) close() {
	if p.client == nil {
		return
	}
	p.client.Close()
	p.client = nil
}
