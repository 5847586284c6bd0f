package daemon

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jfmyers9/chorus/internal/playback"
)

// defaultPersistInterval throttles how often position-only updates are
// written to disk. Track transitions always persist immediately.
const defaultPersistInterval = 30 * time.Second

// TrackState represents the daemon's tracking state for the currently playing track
type TrackState struct {
	Track         *playback.Track // Currently playing track (nil if stopped)
	StartTime     time.Time       // When playback started (or resumed)
	Recorded      bool            // Whether this play has been written to history
	PausedAt      time.Time       // When track was paused (zero if not paused)
	TotalPlayTime time.Duration   // Accumulated play time (excludes pauses)
}

// State manages the daemon's state with thread-safe access and persistence
type State struct {
	mu              sync.RWMutex
	current         TrackState
	filePath        string // Path to state file for persistence
	persistInterval time.Duration
	lastPersist     time.Time
	dirty           bool // Pending changes skipped by the throttle
}

// persistedState is the JSON representation of state for disk storage
type persistedState struct {
	Track         *playback.Track `json:"track,omitempty"`
	StartTime     time.Time       `json:"start_time"`
	Recorded      bool            `json:"recorded"`
	PausedAt      time.Time       `json:"paused_at,omitempty"`
	TotalPlayTime time.Duration   `json:"total_play_time"`
}

// NewState creates a new State instance
// If filePath is provided, attempts to restore state from disk
func NewState(filePath string) (*State, error) {
	s := &State{
		filePath:        filePath,
		persistInterval: defaultPersistInterval,
	}

	// Try to restore state from disk if file exists
	if filePath != "" {
		if err := s.restore(); err != nil && !os.IsNotExist(err) {
			return s, err
		}
	}

	return s, nil
}

// SetTrack updates the current track and resets state
// This should be called when a new track starts playing
func (s *State) SetTrack(track *playback.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = TrackState{
		Track:         track,
		StartTime:     time.Now(),
		Recorded:      false,
		TotalPlayTime: 0,
	}

	return s.persist()
}

// UpdatePosition updates the playback position based on current track state
// Handles pause/resume by accumulating play time
func (s *State) UpdatePosition(track *playback.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// No current track - this is a new track
	if s.current.Track == nil {
		s.current = TrackState{
			Track:         track,
			StartTime:     time.Now(),
			Recorded:      false,
			TotalPlayTime: 0,
		}
		return s.persist()
	}

	// Track changed - reset state
	if !isSameTrack(s.current.Track, track) {
		s.current = TrackState{
			Track:         track,
			StartTime:     time.Now(),
			Recorded:      false,
			TotalPlayTime: 0,
		}
		return s.persist()
	}

	// Same track - update state based on play state
	switch track.State {
	case playback.StatePlaying:
		// If we were paused, resume and accumulate play time
		if !s.current.PausedAt.IsZero() {
			// Add time played before pause to total
			pauseDuration := s.current.PausedAt.Sub(s.current.StartTime)
			s.current.TotalPlayTime += pauseDuration
			s.current.StartTime = time.Now() // Reset start time to now
			s.current.PausedAt = time.Time{} // Clear pause marker
		}
	case playback.StatePaused:
		// Mark pause time if not already paused
		if s.current.PausedAt.IsZero() {
			s.current.PausedAt = time.Now()
		}
	case playback.StateStopped:
		// Track stopped - reset state
		s.current = TrackState{}
		return s.persist()
	}

	// Position-only churn, let the throttle decide whether to write
	return s.throttledPersist()
}

// MarkRecorded marks the current play as written to history
func (s *State) MarkRecorded() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current.Recorded = true
	return s.persist()
}

// GetState returns a copy of the current state
func (s *State) GetState() TrackState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	return s.current
}

// GetPlayedDuration returns the total time the current track has been played
// This accounts for pauses and resumes
func (s *State) GetPlayedDuration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// If currently paused, return accumulated time up to pause
	if !s.current.PausedAt.IsZero() {
		return s.current.TotalPlayTime + s.current.PausedAt.Sub(s.current.StartTime)
	}

	// If playing, return accumulated time plus current play session
	if s.current.Track != nil && s.current.Track.State == playback.StatePlaying {
		return s.current.TotalPlayTime + time.Since(s.current.StartTime)
	}

	// Stopped or no track
	return s.current.TotalPlayTime
}

// Reset clears the current state
func (s *State) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = TrackState{}
	return s.persist()
}

// Flush writes state to disk if the throttle skipped any updates
// Call on shutdown so accumulated play time survives a restart
func (s *State) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}
	return s.persist()
}

// throttledPersist saves state only when persistInterval has elapsed since
// the last write, marking the state dirty otherwise
// Must be called with lock held
func (s *State) throttledPersist() error {
	if time.Since(s.lastPersist) < s.persistInterval {
		s.dirty = true
		return nil
	}
	return s.persist()
}

// persist saves the current state to disk
// Must be called with lock held
func (s *State) persist() error {
	if s.filePath == "" {
		s.dirty = false
		return nil // No persistence configured
	}

	ps := persistedState{
		Track:         s.current.Track,
		StartTime:     s.current.StartTime,
		Recorded:      s.current.Recorded,
		PausedAt:      s.current.PausedAt,
		TotalPlayTime: s.current.TotalPlayTime,
	}

	data, err := json.MarshalIndent(ps, "", "  ")
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Write atomically via temp file + rename
	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, s.filePath); err != nil {
		return err
	}

	s.lastPersist = time.Now()
	s.dirty = false
	return nil
}

// restore loads state from disk
func (s *State) restore() error {
	if s.filePath == "" {
		return nil
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var ps persistedState
	if err := json.Unmarshal(data, &ps); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = TrackState(ps)

	return nil
}

// isSameTrack compares two tracks to determine if they're the same
// Spotify IDs are authoritative when both sides carry one
func isSameTrack(t1, t2 *playback.Track) bool {
	if t1 == nil || t2 == nil {
		return false
	}
	if t1.ID != "" && t2.ID != "" {
		return t1.ID == t2.ID
	}
	return t1.Name == t2.Name &&
		t1.Artist == t2.Artist &&
		t1.Album == t2.Album
}
