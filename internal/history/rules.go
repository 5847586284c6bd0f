package history

import (
	"time"
)

// Play counting rule constants
const (
	// MinimumTrackDuration is the minimum track length for a play to count (30 seconds)
	MinimumTrackDuration = 30 * time.Second

	// PlayPercentage is the fraction of the track that must be heard (50%)
	PlayPercentage = 0.5

	// MaxPlayThreshold is the maximum listening time ever required (4 minutes)
	MaxPlayThreshold = 4 * time.Minute
)

// CountsAsPlay determines whether a listen should be recorded:
// 1. The track must be longer than 30 seconds
// 2. It must have been heard for at least 50% of its duration OR 4 minutes, whichever comes first
//
// Parameters:
//   - trackDuration: Total duration of the track
//   - playedDuration: How long the track has been heard
//
// Returns:
//   - true if the listen should be recorded as a play
//   - false otherwise
func CountsAsPlay(trackDuration, playedDuration time.Duration) bool {
	// Rule 1: Track must be longer than 30 seconds
	if trackDuration < MinimumTrackDuration {
		return false
	}

	// Rule 2: Calculate the threshold
	// The threshold is the minimum of:
	//   - 50% of track duration
	//   - 4 minutes
	threshold := time.Duration(float64(trackDuration) * PlayPercentage)
	if threshold > MaxPlayThreshold {
		threshold = MaxPlayThreshold
	}

	// Check if we've heard enough to count it
	return playedDuration >= threshold
}

// PlayThreshold calculates the exact listening time at which a track
// counts as played. The daemon uses it to know when to record
func PlayThreshold(trackDuration time.Duration) time.Duration {
	// Track too short to ever count; negative sentinel, check IsEligible
	// or the sign before dividing by this
	if trackDuration < MinimumTrackDuration {
		return time.Duration(-1)
	}

	// Calculate 50% of duration
	threshold := time.Duration(float64(trackDuration) * PlayPercentage)

	// Cap at 4 minutes
	if threshold > MaxPlayThreshold {
		threshold = MaxPlayThreshold
	}

	return threshold
}

// IsEligible checks if a track could ever count based on duration alone
// Use it to filter out tracks that are too short before tracking them
func IsEligible(trackDuration time.Duration) bool {
	return trackDuration >= MinimumTrackDuration
}
