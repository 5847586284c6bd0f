package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/chorus/internal/config"
)

// trackCmd represents the track command
var trackCmd = &cobra.Command{
	Use:   "track <id>",
	Short: "Show a track from the Spotify catalog",
	Long: `Look up a track by its Spotify ID and display its metadata.

With --features, also fetches the audio analysis summary (energy,
valence, danceability and friends) used by the moods command.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)

	trackCmd.Flags().Bool("features", false, "Include the audio analysis summary")
}

func runTrack(cmd *cobra.Command, args []string) error {
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

	track, err := client.Tracks().Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get track: %w", err)
	}

	fmt.Println(track.Name)
	fmt.Println(joinArtists(track.Artists))
	if track.Album != nil {
		if year := releaseYear(track.Album); year != "" {
			fmt.Printf("%s (%s)\n", track.Album.Name, year)
		} else {
			fmt.Println(track.Album.Name)
		}
	}
	fmt.Println()

	fmt.Printf("Duration:   %s\n", durationMMSS(track.Duration))
	fmt.Printf("Popularity: %d/100\n", track.Popularity)
	if track.TrackNumber > 0 {
		fmt.Printf("Track:      %d (disc %d)\n", track.TrackNumber, track.DiscNumber)
	}
	if track.Explicit {
		fmt.Println("Explicit:   yes")
	}
	fmt.Printf("URI:        %s\n", track.URI)

	if features, _ := cmd.Flags().GetBool("features"); features {
		fs, err := client.Tracks().AudioFeatures(ctx, []string{track.ID})
		if err != nil {
			return fmt.Errorf("failed to get audio features: %w", err)
		}
		if len(fs) == 0 {
			fmt.Println("\nNo audio features available for this track.")
			return nil
		}

		f := fs[0]
		fmt.Println("\nAudio features:")
		fmt.Printf("  Energy:       %.2f\n", f.Energy)
		fmt.Printf("  Valence:      %.2f\n", f.Valence)
		fmt.Printf("  Danceability: %.2f\n", f.Danceability)
		fmt.Printf("  Acousticness: %.2f\n", f.Acousticness)
		fmt.Printf("  Tempo:        %.0f BPM\n", f.Tempo)
	}

	return nil
}
