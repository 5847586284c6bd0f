package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jfmyers9/chorus/internal/config"
	"github.com/jfmyers9/chorus/internal/daemon"
	"github.com/jfmyers9/chorus/internal/history"
	"github.com/jfmyers9/chorus/internal/playback"
	"github.com/jfmyers9/chorus/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Display a terminal UI for now playing",
	Long: `Display a terminal-based user interface showing the currently playing
track with real-time updates.

The TUI polls the Spotify Web API directly and reads recent plays from
the history database written by the daemon. It includes:
- Now playing display with track name, artist, and album
- Progress bar showing playback position
- Play threshold indicator and session stats
- Recent plays from the history database

Press 'q' or Escape to quit.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := newSpotifyClient(cfg)
	if err != nil {
		return err
	}
	source := playback.NewSpotifySource(client)

	// History is optional here; without a daemon the panel stays empty
	store, storeErr := history.NewStore(config.HistoryFile())
	if storeErr == nil {
		defer store.Close()
	}

	app := tui.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Poll the API for playback updates
	pollInterval := time.Duration(cfg.PollInterval) * time.Second
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	poller := daemon.NewPoller(source, pollInterval, zerolog.Nop())
	updates := make(chan daemon.TrackUpdate, 10)
	go func() {
		_ = poller.Run(ctx, updates)
	}()

	// Refresh the recent plays panel from the history database
	if storeErr == nil {
		go refreshHistoryPanels(ctx, app, store)
	}

	return app.Run(ctx, updates)
}

// refreshHistoryPanels periodically feeds the TUI's recent plays and
// today's play count from the history store.
func refreshHistoryPanels(ctx context.Context, app *tui.App, store *history.Store) {
	refresh := func() {
		queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if plays, err := store.Recent(queryCtx, 5); err == nil {
			recent := make([]tui.RecentPlay, len(plays))
			for i, play := range plays {
				recent[i] = tui.RecentPlay{
					Name:     play.TrackName,
					Artist:   play.Artist,
					PlayedAt: play.PlayedAt,
				}
			}
			app.SetRecentPlays(recent)
		}

		now := time.Now()
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if plays, err := store.Since(queryCtx, midnight); err == nil {
			app.SetPlayCount(len(plays))
		}
	}

	refresh()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}
