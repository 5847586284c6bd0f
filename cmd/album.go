package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/chorus/internal/config"
)

// albumCmd represents the album command
var albumCmd = &cobra.Command{
	Use:   "album <id>",
	Short: "Show an album from the Spotify catalog",
	Long:  `Look up an album by its Spotify ID and display its metadata and track listing.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAlbum,
}

func init() {
	rootCmd.AddCommand(albumCmd)
}

func runAlbum(cmd *cobra.Command, args []string) error {
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

	album, err := client.Albums().Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get album: %w", err)
	}

	fmt.Println(album.Name)
	fmt.Println(joinArtists(album.Artists))
	fmt.Println()

	if year := releaseYear(album); year != "" {
		fmt.Printf("Released:   %s\n", year)
	}
	if album.Label != "" {
		fmt.Printf("Label:      %s\n", album.Label)
	}
	fmt.Printf("Type:       %s\n", album.AlbumType)
	fmt.Printf("Tracks:     %d\n", album.TotalTracks)
	if album.Popularity > 0 {
		fmt.Printf("Popularity: %d/100\n", album.Popularity)
	}
	fmt.Printf("URI:        %s\n", album.URI)

	if album.Tracks == nil || len(album.Tracks.Items) == 0 {
		return nil
	}

	fmt.Println()
	for _, track := range album.Tracks.Items {
		fmt.Printf("%3d. %s (%s)\n", track.TrackNumber, track.Name, durationMMSS(track.Duration))
	}
	if remaining := album.Tracks.Total - len(album.Tracks.Items); remaining > 0 {
		fmt.Printf("     ... and %d more\n", remaining)
	}

	return nil
}
