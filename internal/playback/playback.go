package playback

import (
	"context"
	"time"
)

// Track represents the track a player is currently on, with its metadata
// and playback state
type Track struct {
	ID       string        // Spotify track ID
	Name     string        // Track name/title
	Artist   string        // Artist name(s), comma separated
	Album    string        // Album name
	AlbumID  string        // Spotify album ID
	URI      string        // Spotify URI
	Artwork  string        // Cover image URL, if any
	Duration time.Duration // Total track duration
	Position time.Duration // Current playback position
	State    PlayState     // Current playback state
}

// PlayState represents the current playback state of the player
type PlayState int

const (
	StateStopped PlayState = iota // No track playing
	StatePlaying                  // Track is currently playing
	StatePaused                   // Track is paused
)

// String returns a human-readable representation of the PlayState
func (s PlayState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Source defines the interface for reading a player's state
type Source interface {
	// Current returns the currently playing/paused track, or nil if
	// nothing is playing
	Current(ctx context.Context) (*Track, error)
}
