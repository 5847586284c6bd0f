package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jfmyers9/chorus/internal/history"
	"github.com/jfmyers9/chorus/internal/playback"
	"github.com/jfmyers9/chorus/pkg/spotify"
	"github.com/rs/zerolog"
)

// Config holds daemon configuration
type Config struct {
	PollInterval     time.Duration // How often to poll the playback source
	StateFile        string        // Path to state persistence file
	HistoryDB        string        // Path to the listening history database
	BackfillInterval time.Duration // How often to reconcile against the recently-played feed
	RetentionMaxAge  time.Duration // Drop history older than this (0 keeps everything)
}

// Presence publishes the current track to an external surface, such as
// Discord Rich Presence. Implementations must tolerate frequent updates.
type Presence interface {
	Update(ctx context.Context, track *playback.Track) error
	Clear(ctx context.Context) error
}

// Daemon coordinates the playback poller, play-state tracking, and the
// listening history store
type Daemon struct {
	config   Config
	source   playback.Source
	client   *spotify.Client
	history  *history.Store
	presence Presence
	state    *State
	poller   *Poller
	logger   zerolog.Logger
}

// New creates a new Daemon instance. The Spotify client drives the
// recently-played backfill and may be nil to disable it; presence may be
// nil when no rich presence surface is configured.
func New(cfg Config, source playback.Source, client *spotify.Client, pres Presence, logger zerolog.Logger) (*Daemon, error) {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.BackfillInterval <= 0 {
		cfg.BackfillInterval = 10 * time.Minute
	}

	// Create state
	state, err := NewState(cfg.StateFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create state: %w", err)
	}

	// Create history store
	store, err := history.NewStore(cfg.HistoryDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}

	// Create poller
	poller := NewPoller(source, cfg.PollInterval, logger)

	return &Daemon{
		config:   cfg,
		source:   source,
		client:   client,
		history:  store,
		presence: pres,
		state:    state,
		poller:   poller,
		logger:   logger.With().Str("component", "daemon").Logger(),
	}, nil
}

// Run starts the daemon and blocks until shutdown signal received
func (d *Daemon) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Handle first signal gracefully, second signal forces exit
	go func() {
		<-sigChan
		d.logger.Info().Msg("Shutdown signal received, initiating graceful shutdown")
		cancel()

		// Second signal forces exit
		<-sigChan
		d.logger.Warn().Msg("Second shutdown signal received, forcing exit")
		os.Exit(1)
	}()

	// Run the daemon
	if err := d.run(ctx); err != nil && err != context.Canceled {
		return err
	}

	return nil
}

// run is the main daemon loop
func (d *Daemon) run(ctx context.Context) error {
	d.logger.Info().Msg("Starting daemon")

	var wg sync.WaitGroup
	updates := make(chan TrackUpdate, 10)

	// Start poller
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := d.poller.Run(ctx, updates); err != nil && err != context.Canceled {
			d.logger.Error().Err(err).Msg("Poller error")
		}
	}()

	// Start recently-played reconciler
	if d.client != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.backfill(ctx); err != nil && err != context.Canceled {
				d.logger.Error().Err(err).Msg("Backfill error")
			}
		}()
	}

	// Start play recorder
	wg.Add(1)
	go func() {
		defer wg.Done()
		d.checkRecordEligibility(ctx)
	}()

	// Main loop: handle track updates
	wg.Add(1)
	go func() {
		defer wg.Done()
		d.handleUpdates(ctx, updates)
	}()

	// Wait for all goroutines to finish
	wg.Wait()

	d.logger.Info().Msg("Daemon stopped")
	return nil
}

// handleUpdates processes track updates from the poller
func (d *Daemon) handleUpdates(ctx context.Context, updates <-chan TrackUpdate) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			if update.Err != nil {
				// Log error but continue
				d.logger.Debug().Err(update.Err).Msg("Track update error")
				continue
			}

			if err := d.handleTrackUpdate(update.Track); err != nil {
				d.logger.Error().Err(err).Msg("Failed to handle track update")
			}
		}
	}
}

// handleTrackUpdate processes a single track update
func (d *Daemon) handleTrackUpdate(track *playback.Track) error {
	currentState := d.state.GetState()

	// No track playing - reset state if needed
	if track == nil || track.State == playback.StateStopped {
		if currentState.Track != nil {
			d.logger.Info().Msg("Playback stopped")
			d.clearPresence()
			return d.state.Reset()
		}
		return nil
	}

	// Check if track changed
	trackChanged := currentState.Track == nil ||
		!isSameTrack(currentState.Track, track)

	if trackChanged {
		d.logger.Info().
			Str("track", track.Name).
			Str("artist", track.Artist).
			Msg("Track changed")

		// Update state with new track
		if err := d.state.SetTrack(track); err != nil {
			return fmt.Errorf("failed to set track: %w", err)
		}

		d.updatePresence(track)
		return nil
	}

	// Same track - update position
	if err := d.state.UpdatePosition(track); err != nil {
		return err
	}

	// Presence dedups internally and clears itself on pause
	d.updatePresence(track)
	return nil
}

// updatePresence pushes the track to the presence surface, if any
func (d *Daemon) updatePresence(track *playback.Track) {
	if d.presence == nil {
		return
	}
	ctx := context.Background()
	if err := d.presence.Update(ctx, track); err != nil {
		d.logger.Warn().Err(err).Msg("Failed to update presence")
		// Not a fatal error, continue
	}
}

// clearPresence removes the presence activity, if any
func (d *Daemon) clearPresence() {
	if d.presence == nil {
		return
	}
	ctx := context.Background()
	if err := d.presence.Clear(ctx); err != nil {
		d.logger.Debug().Err(err).Msg("Failed to clear presence")
	}
}

// checkRecordEligibility periodically checks if the current track has been
// played long enough to count
func (d *Daemon) checkRecordEligibility(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second) // Check every 5 seconds
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.checkAndRecord(); err != nil {
				d.logger.Error().Err(err).Msg("Failed to check play eligibility")
			}
		}
	}
}

// checkAndRecord writes the current track to history once it crosses the
// play-counting threshold
func (d *Daemon) checkAndRecord() error {
	state := d.state.GetState()

	// No track or already recorded
	if state.Track == nil || state.Recorded {
		return nil
	}

	// Check if enough of the track has been heard
	playedDuration := d.state.GetPlayedDuration()
	if !history.CountsAsPlay(state.Track.Duration, playedDuration) {
		return nil
	}

	// Track counts as a play
	d.logger.Info().
		Str("track", state.Track.Name).
		Str("artist", state.Track.Artist).
		Dur("played", playedDuration).
		Msg("Recording play")

	ctx := context.Background()
	play := history.Play{
		TrackID:   state.Track.ID,
		TrackName: state.Track.Name,
		Artist:    state.Track.Artist,
		Album:     state.Track.Album,
		AlbumID:   state.Track.AlbumID,
		Duration:  state.Track.Duration,
		PlayedAt:  time.Now(),
	}
	if _, err := d.history.Add(ctx, play); err != nil {
		return fmt.Errorf("failed to record play: %w", err)
	}

	// Mark as recorded in state
	if err := d.state.MarkRecorded(); err != nil {
		return fmt.Errorf("failed to mark recorded: %w", err)
	}

	return nil
}

// backfill periodically reconciles local history against the Spotify
// recently-played feed, catching plays made on other devices or while the
// daemon was not running
func (d *Daemon) backfill(ctx context.Context) error {
	ticker := time.NewTicker(d.config.BackfillInterval)
	defer ticker.Stop()

	// Reconcile immediately on start
	d.runBackfill(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.runBackfill(ctx)
		}
	}
}

// runBackfill pulls the recently-played feed and inserts anything not yet
// in history. The store skips rows it already holds.
func (d *Daemon) runBackfill(ctx context.Context) {
	items, err := d.client.Player().RecentlyPlayed(ctx, 50)
	if err != nil {
		d.logger.Warn().Err(err).Msg("Failed to fetch recently played")
		return
	}
	if len(items) == 0 {
		return
	}

	plays := make([]history.Play, len(items))
	for i, item := range items {
		track := playback.FromTrack(item.Track)
		plays[i] = history.Play{
			TrackID:   track.ID,
			TrackName: track.Name,
			Artist:    track.Artist,
			Album:     track.Album,
			AlbumID:   track.AlbumID,
			Duration:  track.Duration,
			PlayedAt:  item.PlayedAt,
		}
	}

	added, err := d.history.AddBatch(ctx, plays)
	if err != nil {
		d.logger.Error().Err(err).Msg("Failed to backfill history")
		return
	}
	if added > 0 {
		d.logger.Info().Int("count", added).Msg("Backfilled plays")
	}
}

// Shutdown gracefully shuts down the daemon
func (d *Daemon) Shutdown() error {
	d.logger.Info().Msg("Shutting down daemon")

	// Persist any throttled state updates
	if err := d.state.Flush(); err != nil {
		d.logger.Warn().Err(err).Msg("Failed to flush state")
	}

	d.clearPresence()

	ctx := context.Background()

	// Trim old records when retention is configured
	if d.config.RetentionMaxAge > 0 {
		if _, err := d.history.Cleanup(ctx, d.config.RetentionMaxAge); err != nil {
			d.logger.Warn().Err(err).Msg("Failed to clean up history")
		}
	}

	// Close history store
	if err := d.history.Close(); err != nil {
		return fmt.Errorf("failed to close history store: %w", err)
	}

	return nil
}
