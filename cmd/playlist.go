package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/chorus/internal/config"
	"github.com/jfmyers9/chorus/internal/moods"
	"github.com/jfmyers9/chorus/pkg/spotify"
)

// playlistCmd represents the playlist command
var playlistCmd = &cobra.Command{
	Use:   "playlist <id>",
	Short: "Show a playlist",
	Long:  `Look up a playlist by its Spotify ID and display its metadata and first page of tracks.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylist,
}

// playlistMoodsCmd represents the playlist moods command
var playlistMoodsCmd = &cobra.Command{
	Use:   "moods <id>",
	Short: "Cluster a playlist into mood groups",
	Long: `Fetch every track of a playlist, look up their audio features, and
group them into named moods with k-means clustering.

Tracks without audio features (local files, some very new releases) are
reported as outliers, as are clusters too small to call a mood.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlaylistMoods,
}

func init() {
	rootCmd.AddCommand(playlistCmd)
	playlistCmd.AddCommand(playlistMoodsCmd)

	playlistMoodsCmd.Flags().Int("groups", 0, "Number of mood groups (overrides config)")
}

func runPlaylist(cmd *cobra.Command, args []string) error {
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

	playlist, err := client.Playlists().Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get playlist: %w", err)
	}

	fmt.Println(playlist.Name)
	owner := playlist.Owner.DisplayName
	if owner == "" {
		owner = playlist.Owner.ID
	}
	fmt.Printf("by %s\n", owner)
	if playlist.Description != "" {
		fmt.Println(playlist.Description)
	}
	fmt.Println()

	visibility := "private"
	if playlist.Public {
		visibility = "public"
	}
	if playlist.Collaborative {
		visibility += ", collaborative"
	}
	fmt.Printf("Visibility: %s\n", visibility)
	fmt.Printf("Tracks:     %d\n", playlist.TotalTracks)
	fmt.Printf("URI:        %s\n", playlist.URI)

	if playlist.Items == nil || len(playlist.Items.Items) == 0 {
		return nil
	}

	fmt.Println()
	for i, item := range playlist.Items.Items {
		fmt.Printf("%3d. %s - %s (%s)\n", i+1, item.Track.Name,
			joinArtists(item.Track.Artists), durationMMSS(item.Track.Duration))
	}
	if remaining := playlist.TotalTracks - len(playlist.Items.Items); remaining > 0 {
		fmt.Printf("     ... and %d more\n", remaining)
	}

	return nil
}

func runPlaylistMoods(cmd *cobra.Command, args []string) error {
	// Large playlists take several pages plus the feature lookups
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := newSpotifyClient(cfg)
	if err != nil {
		return err
	}

	items, err := client.Playlists().AllTracks(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get playlist tracks: %w", err)
	}
	if len(items) == 0 {
		fmt.Println("Playlist is empty.")
		return nil
	}

	// Local files carry no usable ID, so they get no features and fall
	// out as outliers.
	var ids []string
	for _, item := range items {
		if !item.IsLocal && item.Track.ID != "" {
			ids = append(ids, item.Track.ID)
		}
	}

	features, err := client.Tracks().AudioFeatures(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to get audio features: %w", err)
	}
	byID := make(map[string]*spotify.AudioFeatures, len(features))
	for i := range features {
		byID[features[i].ID] = &features[i]
	}

	tracks := make([]moods.Track, 0, len(items))
	for _, item := range items {
		tracks = append(tracks, moods.Track{
			ID:       item.Track.ID,
			Name:     item.Track.Name,
			Artist:   joinArtists(item.Track.Artists),
			Features: byID[item.Track.ID],
		})
	}

	moodCfg := moods.Config{Groups: cfg.Moods.Groups, MinSize: cfg.Moods.MinSize}
	if groups, _ := cmd.Flags().GetInt("groups"); groups > 0 {
		moodCfg.Groups = groups
	}

	groups, outliers, err := moods.Detect(tracks, moodCfg)
	if err != nil {
		return fmt.Errorf("failed to cluster playlist: %w", err)
	}
	if len(groups) == 0 {
		fmt.Printf("Not enough tracks with audio features to form %d groups.\n", moodCfg.Groups)
		return nil
	}

	for _, group := range groups {
		fmt.Printf("%s (%d tracks)\n", group.Name, len(group.Tracks))
		fmt.Printf("  %s\n", group.Description)
		fmt.Printf("  energy %.2f  valence %.2f  dance %.2f  acoustic %.2f\n",
			group.Centroid["energy"], group.Centroid["valence"],
			group.Centroid["danceability"], group.Centroid["acousticness"])
		for _, track := range group.Tracks {
			fmt.Printf("    %s - %s\n", track.Name, track.Artist)
		}
		fmt.Println()
	}

	if len(outliers) > 0 {
		fmt.Printf("Outliers (%d tracks)\n", len(outliers))
		for _, track := range outliers {
			fmt.Printf("    %s - %s\n", track.Name, track.Artist)
		}
	}

	return nil
}
