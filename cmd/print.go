package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/jfmyers9/chorus/pkg/spotify"
)

// joinArtists renders an artist list the way Spotify's own clients do
func joinArtists(artists []spotify.PartialArtist) string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// durationMMSS formats a track length as M:SS
func durationMMSS(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// releaseYear renders an album release date to its meaningful precision
func releaseYear(a *spotify.Album) string {
	if a.ReleaseDate.IsZero() {
		return ""
	}
	switch a.ReleasePrecision {
	case spotify.PrecisionDay:
		return a.ReleaseDate.Format("2006-01-02")
	case spotify.PrecisionMonth:
		return a.ReleaseDate.Format("2006-01")
	default:
		return a.ReleaseDate.Format("2006")
	}
}
