package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jfmyers9/chorus/internal/daemon"
	"github.com/jfmyers9/chorus/internal/history"
	"github.com/jfmyers9/chorus/internal/playback"
	"github.com/rivo/tview"
)

const maxRecentPlays = 5

// Config holds TUI configuration options
type Config struct {
	RefreshRate time.Duration // How often to refresh the display
	Theme       string        // Color theme
}

// DefaultConfig returns the default TUI configuration
func DefaultConfig() Config {
	return Config{
		RefreshRate: 500 * time.Millisecond,
		Theme:       "default",
	}
}

// RecentPlay is one row of the recent plays panel
type RecentPlay struct {
	Name     string
	Artist   string
	PlayedAt time.Time
}

// App is the TUI application for displaying Spotify playback
type App struct {
	app        *tview.Application
	nowPlaying *tview.TextView
	progress   *tview.TextView
	status     *tview.TextView
	playPanel  *tview.TextView
	recent     *tview.TextView

	// Configuration
	config Config

	// Mutex protects shared state accessed by both the channel consumer
	// goroutine and the ticker goroutine in handleUpdates.
	mu sync.Mutex

	// Current state (guarded by mu)
	currentTrack *playback.Track
	recentPlays  []RecentPlay
	todayPlays   int

	// Session stats (guarded by mu)
	sessionStart time.Time
	tracksPlayed int

	// Last-rendered content for change detection
	lastNowPlaying string
	lastProgress   string
	lastPlayPanel  string
	lastRecent     string

	// Cached progress bar width to stabilize change detection.
	// Updated only when GetInnerRect returns a positive value.
	lastBarWidth int

	// Context cancel function
	cancelFunc context.CancelFunc
}

// New creates a new TUI application with default config
func New() *App {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a new TUI application with the given config
func NewWithConfig(cfg Config) *App {
	a := &App{
		app:          tview.NewApplication(),
		config:       cfg,
		sessionStart: time.Now(),
	}
	a.setupUI()
	return a
}

// setupUI creates the UI layout
func (a *App) setupUI() {
	// Now playing panel
	a.nowPlaying = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.nowPlaying.SetBorder(true).
		SetTitle(" Now Playing ").
		SetTitleAlign(tview.AlignLeft)

	// Progress bar
	a.progress = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.progress.SetBorder(true)

	// Play status
	a.playPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.playPanel.SetBorder(true).
		SetTitle(" Play ").
		SetTitleAlign(tview.AlignLeft)

	// Recent plays
	a.recent = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.recent.SetBorder(true).
		SetTitle(" Recent ").
		SetTitleAlign(tview.AlignLeft)

	// Status bar
	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[gray]q:quit  esc:quit[-]")

	// Create layout
	// Top row: now playing (takes most space)
	// Middle row: progress bar
	// Bottom row: play status | recent plays
	// Footer: status bar

	bottomRow := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.playPanel, 0, 1, false).
		AddItem(a.recent, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.nowPlaying, 0, 3, false).
		AddItem(a.progress, 3, 1, false).
		AddItem(bottomRow, 7, 1, false).
		AddItem(a.status, 1, 1, false)

	// Handle keyboard input
	a.app.SetInputCapture(a.handleKeyEvent)

	a.app.SetRoot(flex, true)
}

// handleKeyEvent processes keyboard input
func (a *App) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEscape {
		a.app.Stop()
		return nil
	}
	switch event.Rune() {
	case 'q', 'Q':
		a.app.Stop()
		return nil
	}
	return event
}

// Run starts the TUI with a track update channel from the poller
func (a *App) Run(ctx context.Context, updates <-chan daemon.TrackUpdate) error {
	// Create cancellable context
	ctx, a.cancelFunc = context.WithCancel(ctx)

	// Start update goroutine
	go a.handleUpdates(ctx, updates)

	// Run application
	if err := a.app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// handleUpdates processes track updates and refreshes the display.
// It splits work into two goroutines: one consumes channel updates (state only),
// and a single ticker drives all redraws to prevent queued redraw buildup.
// All shared App fields are protected by a.mu.
func (a *App) handleUpdates(ctx context.Context, updates <-chan daemon.TrackUpdate) {
	var lastTrackID string

	// Channel consumer goroutine: updates track info but does NOT trigger
	// redraws. The ticker goroutine is the sole caller of refresh().
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case update := <-updates:
				if update.Err != nil {
					continue
				}

				a.mu.Lock()
				// Check for track change
				if update.Track != nil && update.Track.ID != lastTrackID {
					if lastTrackID != "" {
						a.tracksPlayed++
					}
					lastTrackID = update.Track.ID
				}

				a.currentTrack = update.Track
				a.mu.Unlock()
			}
		}
	}()

	// Single refresh ticker: the only source of redraws
	refreshRate := a.config.RefreshRate
	if refreshRate <= 0 {
		refreshRate = 500 * time.Millisecond
	}
	ticker := time.NewTicker(refreshRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.app.Stop()
			return
		case <-ticker.C:
			a.refresh()
		}
	}
}

// SetRecentPlays replaces the recent plays panel content.
// Called from the history refresher goroutine in the tui command.
func (a *App) SetRecentPlays(plays []RecentPlay) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(plays) > maxRecentPlays {
		plays = plays[:maxRecentPlays]
	}
	a.recentPlays = plays
}

// SetPlayCount updates the number of plays recorded today
func (a *App) SetPlayCount(count int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.todayPlays = count
}

// refresh updates all UI components
func (a *App) refresh() {
	a.app.QueueUpdateDraw(func() {
		a.mu.Lock()
		defer a.mu.Unlock()

		a.updateNowPlaying()
		a.updateProgress()
		a.updatePlayStatus()
		a.updateRecentPlays()
	})
}

// updateNowPlaying updates the now playing panel
func (a *App) updateNowPlaying() {
	var text string

	if a.currentTrack == nil || a.currentTrack.State == playback.StateStopped {
		text = "\n\n[gray]No track playing[-]"
	} else {
		var sb strings.Builder
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("[white::b]%s[-:-:-]\n", tview.Escape(a.currentTrack.Name)))
		sb.WriteString(fmt.Sprintf("[yellow]%s[-]\n", tview.Escape(a.currentTrack.Artist)))
		sb.WriteString(fmt.Sprintf("[gray]%s[-]", tview.Escape(a.currentTrack.Album)))

		// Play state indicator
		stateIcon := "[green]▶[-]" // Play triangle
		if a.currentTrack.State == playback.StatePaused {
			stateIcon = "[yellow]⏸[-]" // Pause icon
		}
		sb.WriteString(fmt.Sprintf("\n\n%s", stateIcon))
		text = sb.String()
	}

	if text != a.lastNowPlaying {
		a.lastNowPlaying = text
		a.nowPlaying.SetText(text)
	}
}

// updateProgress updates the progress bar
func (a *App) updateProgress() {
	var text string

	if a.currentTrack == nil || a.currentTrack.State == playback.StateStopped {
		text = ""
	} else {
		_, _, width, _ := a.progress.GetInnerRect()
		barWidth := width - 14 // Account for time display
		// Only update cached width when GetInnerRect returns a positive value,
		// avoiding flicker from transient zero-width during layout.
		if barWidth > 0 {
			a.lastBarWidth = barWidth
		}
		if a.lastBarWidth < 10 {
			a.lastBarWidth = 10
		}

		progressBar := buildProgressBar(a.currentTrack.Position, a.currentTrack.Duration, a.lastBarWidth)
		posStr := formatDuration(a.currentTrack.Position)
		durStr := formatDuration(a.currentTrack.Duration)
		text = fmt.Sprintf("%s %s %s", posStr, progressBar, durStr)
	}

	if text != a.lastProgress {
		a.lastProgress = text
		a.progress.SetText(text)
	}
}

// updatePlayStatus updates the play status panel
func (a *App) updatePlayStatus() {
	var sb strings.Builder

	if a.currentTrack == nil || a.currentTrack.State == playback.StateStopped {
		sb.WriteString("[gray]No track[-]\n\n")
		sb.WriteString(fmt.Sprintf("Today: %d\n", a.todayPlays))
		sb.WriteString(fmt.Sprintf("Session: %s", formatDuration(time.Since(a.sessionStart))))
	} else {
		// Progress toward counting as a play, based on position
		if history.CountsAsPlay(a.currentTrack.Duration, a.currentTrack.Position) {
			sb.WriteString("[green]✓ Counts as play[-]\n")
		} else if threshold := history.PlayThreshold(a.currentTrack.Duration); threshold > 0 {
			progress := float64(a.currentTrack.Position) / float64(threshold) * 100
			if progress > 100 {
				progress = 100
			}

			// Visual progress indicator
			barWidth := 10
			filled := int(progress / 100 * float64(barWidth))
			bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
			sb.WriteString(fmt.Sprintf("[yellow]%s %.0f%%[-]\n", bar, progress))
		} else {
			sb.WriteString("[gray]Waiting...[-]\n")
		}

		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Today: %d\n", a.todayPlays))
		sb.WriteString(fmt.Sprintf("Session: %s (%d tracks)", formatDuration(time.Since(a.sessionStart)), a.tracksPlayed))
	}

	text := sb.String()
	if text != a.lastPlayPanel {
		a.lastPlayPanel = text
		a.playPanel.SetText(text)
	}
}

// updateRecentPlays updates the recent plays panel
func (a *App) updateRecentPlays() {
	var sb strings.Builder

	if len(a.recentPlays) == 0 {
		sb.WriteString("[gray]No recent plays[-]")
	} else {
		for i, play := range a.recentPlays {
			if i > 0 {
				sb.WriteString("\n")
			}

			// Truncate name if too long
			name := play.Name
			if len(name) > 20 {
				name = name[:17] + "..."
			}
			sb.WriteString(fmt.Sprintf("[white]%s[-] [gray]%s[-]", tview.Escape(name), relativeTime(play.PlayedAt)))
		}
	}

	text := sb.String()
	if text != a.lastRecent {
		a.lastRecent = text
		a.recent.SetText(text)
	}
}

// Stop stops the TUI application
func (a *App) Stop() {
	if a.cancelFunc != nil {
		a.cancelFunc()
	}
	a.app.Stop()
}

// buildProgressBar creates a text-based progress bar
func buildProgressBar(position, duration time.Duration, width int) string {
	if width <= 0 {
		return ""
	}
	if duration == 0 {
		return strings.Repeat("-", width)
	}

	progress := float64(position) / float64(duration)
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}

	filled := int(progress * float64(width))
	empty := width - filled

	bar := "[green]" + strings.Repeat("█", filled) + "[-]" +
		"[gray]" + strings.Repeat("░", empty) + "[-]"

	return bar
}

// relativeTime renders a short "how long ago" label for the recent panel
func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// formatDuration formats a duration as MM:SS or HH:MM:SS for longer durations
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
