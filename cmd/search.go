package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/chorus/internal/config"
	"github.com/jfmyers9/chorus/pkg/spotify"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the Spotify catalog",
	Long: `Search the Spotify catalog for tracks, albums, artists or playlists.

Examples:
  chorus search "kate bush"
  chorus search --type artist,album "boards of canada"
  chorus search --type track --limit 3 "running up that hill"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("type", "t", "track", "Comma separated types: track, album, artist, playlist")
	searchCmd.Flags().IntP("limit", "l", 10, "Results per type")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := newSpotifyClient(cfg)
	if err != nil {
		return err
	}

	typeFlag, _ := cmd.Flags().GetString("type")
	var types []spotify.SearchType
	for _, name := range strings.Split(typeFlag, ",") {
		switch strings.TrimSpace(name) {
		case "track":
			types = append(types, spotify.SearchTypeTrack)
		case "album":
			types = append(types, spotify.SearchTypeAlbum)
		case "artist":
			types = append(types, spotify.SearchTypeArtist)
		case "playlist":
			types = append(types, spotify.SearchTypePlaylist)
		default:
			return fmt.Errorf("unknown search type: %s", name)
		}
	}

	limit, _ := cmd.Flags().GetInt("limit")

	result, err := client.Search(ctx, strings.Join(args, " "), spotify.SearchOptions{
		Types:  types,
		Limit:  limit,
		Market: cfg.Spotify.Market,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	printed := false
	if result.Tracks != nil && len(result.Tracks.Items) > 0 {
		fmt.Println("Tracks:")
		for _, track := range result.Tracks.Items {
			album := ""
			if track.Album != nil {
				album = " [" + track.Album.Name + "]"
			}
			fmt.Printf("  %s - %s%s  %s\n", track.Name, joinArtists(track.Artists), album, track.ID)
		}
		printed = true
	}

	if result.Albums != nil && len(result.Albums.Items) > 0 {
		if printed {
			fmt.Println()
		}
		fmt.Println("Albums:")
		for _, album := range result.Albums.Items {
			year := releaseYear(&album)
			if year != "" {
				year = " (" + year + ")"
			}
			fmt.Printf("  %s - %s%s  %s\n", album.Name, joinArtists(album.Artists), year, album.ID)
		}
		printed = true
	}

	if result.Artists != nil && len(result.Artists.Items) > 0 {
		if printed {
			fmt.Println()
		}
		fmt.Println("Artists:")
		for _, artist := range result.Artists.Items {
			fmt.Printf("  %s  %s\n", artist.Name, artist.ID)
		}
		printed = true
	}

	if result.Playlists != nil && len(result.Playlists.Items) > 0 {
		if printed {
			fmt.Println()
		}
		fmt.Println("Playlists:")
		for _, playlist := range result.Playlists.Items {
			owner := playlist.Owner.DisplayName
			if owner == "" {
				owner = playlist.Owner.ID
			}
			fmt.Printf("  %s by %s (%d tracks)  %s\n", playlist.Name, owner, playlist.TotalTracks, playlist.ID)
		}
		printed = true
	}

	if !printed {
		fmt.Println("No results.")
	}

	return nil
}
