package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/chorus/internal/config"
	"github.com/jfmyers9/chorus/internal/history"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently recorded plays",
	Long: `Show the most recent plays from the local history database.

The database is written by 'chorus daemon'; this command only reads it.`,
	RunE: runHistory,
}

// historyTopCmd represents the history top command
var historyTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the most played tracks",
	RunE:  runHistoryTop,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyTopCmd)

	historyCmd.Flags().IntP("limit", "l", 20, "Number of plays to show")
	historyTopCmd.Flags().IntP("limit", "l", 10, "Number of tracks to show")
	historyTopCmd.Flags().Int("days", 30, "Look back this many days")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := history.NewStore(config.HistoryFile())
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	plays, err := store.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(plays) == 0 {
		fmt.Println("No plays recorded yet. Is the daemon running?")
		return nil
	}

	for _, play := range plays {
		fmt.Printf("%s  %s - %s\n",
			play.PlayedAt.Local().Format("2006-01-02 15:04"),
			play.TrackName, play.Artist)
	}

	return nil
}

func runHistoryTop(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := history.NewStore(config.HistoryFile())
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	days, _ := cmd.Flags().GetInt("days")
	cutoff := time.Now().AddDate(0, 0, -days)

	tracks, err := store.TopTracks(ctx, cutoff, limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(tracks) == 0 {
		fmt.Printf("No plays recorded in the last %d days.\n", days)
		return nil
	}

	fmt.Printf("Most played in the last %d days:\n", days)
	for _, track := range tracks {
		fmt.Printf("%4d  %s - %s\n", track.Plays, track.TrackName, track.Artist)
	}

	return nil
}
