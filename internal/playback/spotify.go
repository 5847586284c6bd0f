package playback

import (
	"context"
	"strings"

	"github.com/jfmyers9/chorus/pkg/spotify"
)

// SpotifySource reads playback state from the Spotify Web API.
type SpotifySource struct {
	client *spotify.Client
}

// NewSpotifySource wraps a Spotify client as a playback source.
func NewSpotifySource(client *spotify.Client) *SpotifySource {
	return &SpotifySource{client: client}
}

// Current returns the track the user's active device is on. Episodes and
// ads map to nil; there is nothing in them worth tracking.
func (s *SpotifySource) Current(ctx context.Context) (*Track, error) {
	activity, err := s.client.Player().Current(ctx)
	if err != nil {
		return nil, err
	}
	return FromActivity(activity), nil
}

// FromActivity maps a player activity to a Track. It returns nil when the
// activity carries no track.
func FromActivity(a *spotify.Activity) *Track {
	if a == nil || a.Item == nil {
		return nil
	}

	track := FromTrack(*a.Item)
	track.Position = a.Progress
	if a.IsPlaying {
		track.State = StatePlaying
	}
	return track
}

// FromTrack maps an API track to a Track with no playback position. The
// state defaults to paused; callers with player context adjust it.
func FromTrack(t spotify.Track) *Track {
	names := make([]string, len(t.Artists))
	for i, artist := range t.Artists {
		names[i] = artist.Name
	}

	track := &Track{
		ID:       t.ID,
		Name:     t.Name,
		Artist:   strings.Join(names, ", "),
		URI:      t.URI,
		Duration: t.Duration,
		State:    StatePaused,
	}
	if t.Album != nil {
		track.Album = t.Album.Name
		track.AlbumID = t.Album.ID
		track.Artwork = pickArtwork(t.Album.Images)
	}
	return track
}

// pickArtwork chooses the smallest image still big enough for rich
// presence and notification surfaces.
func pickArtwork(images []spotify.Image) string {
	if len(images) == 0 {
		return ""
	}

	best := ""
	bestHeight := 0
	for _, img := range images {
		if img.Height >= 300 && (bestHeight == 0 || img.Height < bestHeight) {
			best = img.URL
			bestHeight = img.Height
		}
	}
	if best != "" {
		return best
	}

	// Nothing at 300px or above; take the largest available.
	largest := images[0]
	for _, img := range images[1:] {
		if img.Height > largest.Height {
			largest = img
		}
	}
	return largest.URL
}
