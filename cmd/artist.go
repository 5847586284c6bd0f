package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/chorus/internal/config"
)

// artistCmd represents the artist command
var artistCmd = &cobra.Command{
	Use:   "artist <id>",
	Short: "Show an artist from the Spotify catalog",
	Long: `Look up an artist by their Spotify ID and display their profile and
top tracks. The top tracks are market dependent; set spotify.market in the
config to change the default.`,
	Args: cobra.ExactArgs(1),
	RunE: runArtist,
}

func init() {
	rootCmd.AddCommand(artistCmd)
}

func runArtist(cmd *cobra.Command, args []string) error {
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

	artist, err := client.Artists().Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get artist: %w", err)
	}

	fmt.Println(artist.Name)
	fmt.Println()

	if len(artist.Genres) > 0 {
		fmt.Printf("Genres:     %s\n", strings.Join(artist.Genres, ", "))
	}
	fmt.Printf("Followers:  %d\n", artist.Followers)
	fmt.Printf("Popularity: %d/100\n", artist.Popularity)
	fmt.Printf("URI:        %s\n", artist.URI)

	market := cfg.Spotify.Market
	if market == "" {
		market = "US"
	}

	topTracks, err := client.Artists().TopTracks(ctx, artist.ID, market)
	if err != nil {
		return fmt.Errorf("failed to get top tracks: %w", err)
	}
	if len(topTracks) == 0 {
		return nil
	}

	fmt.Printf("\nTop tracks (%s):\n", market)
	for i, track := range topTracks {
		album := ""
		if track.Album != nil {
			album = " - " + track.Album.Name
		}
		fmt.Printf("%3d. %s%s (%s)\n", i+1, track.Name, album, durationMMSS(track.Duration))
	}

	return nil
}
